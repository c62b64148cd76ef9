// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prob

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gosdc/encap"
	"github.com/cpmech/gosdc/inp"
	"github.com/cpmech/gosdc/quad"
	"github.com/cpmech/gosdc/sweep"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_linear01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("linear01. scalar linear problem")

	p := &Linear{Lambda: -2, U0: 3}
	u := encap.NewVector(1)
	f := encap.NewVector(1)

	p.Exact(u, 0)
	chk.Scalar(tst, "u(0)", 1e-17, u.V[0], 3.0)
	p.Exact(u, 1)
	chk.Scalar(tst, "u(1)", 1e-15, u.V[0], 3.0*math.Exp(-2.0))

	// the implicit solve satisfies u - Δt*f(u) = rhs
	rhs := encap.NewVector(1)
	rhs.V[0] = 1.5
	Δt := 0.1
	if err := p.Solve(f, u, 0, Δt, rhs); err != nil {
		tst.Errorf("Solve failed:\n%v", err)
		return
	}
	chk.Scalar(tst, "u - Δt*f(u)", 1e-15, u.V[0]-Δt*f.V[0], rhs.V[0])
}

func Test_vdp01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("vdp01. van der Pol implicit solve")

	p := NewVanderPol(5.0, 1.0, 0.5)
	u := encap.NewVector(2)
	f := encap.NewVector(2)
	rhs := encap.NewVector(2)
	rhs.V[0] = 1.0
	rhs.V[1] = 0.4
	Δt := 0.02

	if err := p.Solve(f, u, 0, Δt, rhs); err != nil {
		tst.Errorf("Solve failed:\n%v", err)
		return
	}

	// the Newton result satisfies q - Δt*f(q) = rhs
	g := encap.NewVector(2)
	p.F(g, u, 0)
	chk.Scalar(tst, "x - Δt*fx", 1e-11, u.V[0]-Δt*g.V[0], rhs.V[0])
	chk.Scalar(tst, "y - Δt*fy", 1e-11, u.V[1]-Δt*g.V[1], rhs.V[1])

	// the returned f equals f(q)
	chk.Vector(tst, "f(q)", 1e-13, f.V, g.V)

	// exact solution for nu = 0
	p0 := NewVanderPol(0, 1.0, 0.5)
	p0.Exact(u, 0)
	chk.Vector(tst, "exact at t=0", 1e-15, u.V, []float64{1.0, 0.5})
}

func Test_advdiff02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("advdiff02. spectral derivatives of a sine mode")

	n := 64
	p := NewAdvDiff(n, 0.02, 1.0)
	u := encap.NewVector(n)
	f := encap.NewVector(n)
	for i := 0; i < n; i++ {
		x := float64(i) / float64(n)
		u.V[i] = math.Sin(2.0 * math.Pi * x)
	}

	// F1 = -v*u_x = -2*pi*cos(2*pi*x)
	p.F1(f, u, 0)
	for i := 0; i < n; i++ {
		x := float64(i) / float64(n)
		chk.Scalar(tst, io.Sf("F1[%d]", i), 1e-10, f.V[i], -2.0*math.Pi*math.Cos(2.0*math.Pi*x))
	}

	// F2 = nu*u_xx = -nu*(2*pi)^2*sin(2*pi*x)
	p.F2(f, u, 0)
	c := -0.02 * 4.0 * math.Pi * math.Pi
	for i := 0; i < n; i++ {
		x := float64(i) / float64(n)
		chk.Scalar(tst, io.Sf("F2[%d]", i), 1e-10, f.V[i], c*math.Sin(2.0*math.Pi*x))
	}

	// the implicit solve satisfies u - Δt*f2(u) = rhs
	rhs := encap.NewVector(n)
	rhs.Copy(u)
	Δt := 0.01
	if err := p.SolveF2(f, u, 0, Δt, rhs); err != nil {
		tst.Errorf("SolveF2 failed:\n%v", err)
		return
	}
	g := encap.NewVector(n)
	p.F2(g, u, 0)
	for i := 0; i < n; i++ {
		chk.Scalar(tst, io.Sf("u - Δt*f2 [%d]", i), 1e-10, u.V[i]-Δt*g.V[i], rhs.V[i])
	}
}

func Test_spectral01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("spectral01. spectral interpolation between grids")

	ops := NewSpectralOps(64, 32)
	crse := encap.NewVector(32)
	fine := encap.NewVector(64)
	for i := 0; i < 32; i++ {
		x := float64(i) / 32.0
		crse.V[i] = math.Sin(2.0*math.Pi*x) + 0.5*math.Cos(4.0*math.Pi*x)
	}

	// interpolation of a resolved mode is exact
	ops.Interpolate(fine, crse)
	for i := 0; i < 64; i++ {
		x := float64(i) / 64.0
		chk.Scalar(tst, io.Sf("fine[%d]", i), 1e-11, fine.V[i], math.Sin(2.0*math.Pi*x)+0.5*math.Cos(4.0*math.Pi*x))
	}

	// restriction undoes interpolation
	back := encap.NewVector(32)
	ops.Restrict(back, fine)
	chk.Vector(tst, "restrict(interpolate(u))", 1e-11, back.V, crse.V)
}

func Test_phys01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("phys01. Penning trap fields and energy")

	p := NewSimplePhysics(4.9, 25.0, -1.0, 0.0)
	c := encap.NewCloud(1, 1, 1)
	c.P[0] = 2.0
	c.P[2] = 1.0

	f := encap.CloudComp(1)
	p.EForce(f, c, 0)
	pre := 4.9 * 4.9 // -epsilon*omegaE^2 with epsilon = -1
	chk.Vector(tst, "eforce", 1e-13, f, []float64{pre * 2.0, 0, pre * (-2.0)})

	b := encap.CloudComp(1)
	p.BFieldVecs(b, c, 0)
	chk.Vector(tst, "bvecs", 1e-13, b, []float64{0, 0, 25.0})
	chk.Vector(tst, "bvec", 1e-17, p.BVec(), []float64{0, 0, 25.0})

	// energy of a static particle is purely potential
	e := p.Energy(c, 0)
	epot := -(pre / 2.0 * 2.0 * 2.0) - (pre / 2.0 * (-2.0) * 1.0)
	chk.Scalar(tst, "energy", 1e-12, e, epot)
}

func Test_phys02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("phys02. exact Penning trajectory at t=0")

	p := NewSimplePhysics(4.9, 25.0, -1.0, 0.0)
	q := encap.NewCloud(1, 1, 1)
	p0 := [3]float64{10, 0, 0}
	v0 := [3]float64{100, 0, 100}
	p.ExactPenning(q, p0, v0, 0)
	chk.Vector(tst, "position", 1e-12, q.P, []float64{10, 0, 0})
	chk.Vector(tst, "velocity", 1e-12, q.V, []float64{100, 0, 100})
}

func Test_phys03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("phys03. Boris SDC against the exact Penning trajectory")

	qdr, err := quad.NewQuadrature(quad.GaussLobatto, 5)
	if err != nil {
		tst.Fatalf("NewQuadrature failed:\n%v", err)
	}
	phys := NewSimplePhysics(4.9, 25.0, -1.0, 0.0)
	swp := sweep.NewBoris(sweep.EncapSweeper{Qdr: qdr, Fac: &encap.CloudFactory{Np: 1, Charge: 1, Mass: 1}}, phys)
	if err := swp.Setup(false); err != nil {
		tst.Fatalf("Setup failed:\n%v", err)
	}

	u0 := encap.NewCloud(1, 1, 1)
	u0.P[0] = 10
	u0.V[0] = 100
	u0.V[2] = 100
	swp.SetStartState(u0)

	Δt := 0.015625
	nsteps := 2
	for n := 0; n < nsteps; n++ {
		t := float64(n) * Δt
		if err := swp.Predict(t, Δt, n == 0); err != nil {
			tst.Fatalf("Predict failed:\n%v", err)
		}
		for k := 0; k < 10; k++ {
			if err := swp.Sweep(t, Δt); err != nil {
				tst.Fatalf("Sweep failed:\n%v", err)
			}
		}
		swp.Advance()
	}

	exact := encap.NewCloud(1, 1, 1)
	phys.ExactPenning(exact, [3]float64{10, 0, 0}, [3]float64{100, 0, 100}, float64(nsteps)*Δt)
	num := swp.StartState().(*encap.Cloud)
	io.Pforan("numerical position: %v\n", num.P)
	io.Pforan("exact position:     %v\n", exact.P)
	chk.Vector(tst, "position", 1e-4, num.P, exact.P)
	chk.Vector(tst, "velocity", 1e-3, num.V, exact.V)

	// bounded energy drift
	if math.Abs(swp.Drift) > 1e-3*math.Abs(swp.InitialEnergy) {
		tst.Errorf("energy drift is too large: %g (E0 = %g)", swp.Drift, swp.InitialEnergy)
	}
}

func Test_alloc01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("alloc01. problem allocators")

	sim := new(inp.Simulation)
	sim.Data.SetDefault()
	sim.Solver.SetDefault()
	sim.Problem.SetDefault()
	sim.Levels = []inp.LevelData{{NumNodes: 3, NumSweeps: 1}, {NumNodes: 5, NumSweeps: 1}}

	levels, transfers, u0, err := Allocate(sim)
	if err != nil {
		tst.Errorf("Allocate failed:\n%v", err)
		return
	}
	chk.IntAssert(len(levels), 2)
	chk.IntAssert(len(transfers), 1)
	chk.Scalar(tst, "u0", 1e-17, u0.(*encap.Vector).V[0], 1.0)

	sim.Problem.Name = "no-such-problem"
	if _, _, _, err := Allocate(sim); err == nil {
		tst.Errorf("unknown problem name must fail")
	}
}
