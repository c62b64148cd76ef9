// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ctl

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gosdc/encap"
	"github.com/cpmech/gosdc/inp"
	"github.com/cpmech/gosdc/prob"
)

// linearSim returns the simulation data of the scalar linear test problem
func linearSim(ctype string, nsteps int, Δt float64, niter int, quadtype string, nnodes ...int) (sim *inp.Simulation) {
	sim = new(inp.Simulation)
	sim.Data.SetDefault()
	sim.Solver.SetDefault()
	sim.Problem.SetDefault()
	sim.Solver.Type = ctype
	sim.Solver.NumSteps = nsteps
	sim.Solver.DeltaStep = Δt
	sim.Solver.NumIter = niter
	sim.Solver.QuadType = quadtype
	for _, nn := range nnodes {
		sim.Levels = append(sim.Levels, inp.LevelData{NumNodes: nn, Ndofs: 1, NumSweeps: 1})
	}
	return
}

// runLinear builds and runs a controller for the linear problem and returns
// the end state value after the last step
func runLinear(tst *testing.T, sim *inp.Simulation, comm Communicator) float64 {
	levels, transfers, u0, err := prob.Allocate(sim)
	if err != nil {
		tst.Fatalf("Allocate failed:\n%v", err)
	}
	c := NewController(sim, levels, transfers, comm, false)
	c.Finest().SetStartState(u0)
	if err := c.Run(); err != nil {
		tst.Fatalf("Run failed:\n%v", err)
	}
	// after the final advance, the start state holds the end of the last step
	return c.Finest().StartState().(*encap.Vector).V[0]
}

func Test_sdc01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sdc01. linear test problem: u' = -u")

	// 10 steps with Δt = 0.1, 5 Gauss-Lobatto nodes and 8 iterations
	sim := linearSim("sdc", 10, 0.1, 8, "gauss-lobatto", 5)
	uend := runLinear(tst, sim, Serial{})
	err := math.Abs(uend - math.Exp(-1.0))
	io.Pforan("u(1) = %23.15e  error = %g\n", uend, err)
	if err > 1e-10 {
		tst.Errorf("error at t=1 is too large: %g", err)
	}
}

func Test_sdc02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sdc02. early exit on residual tolerances")

	sim := linearSim("sdc", 10, 0.1, 50, "gauss-lobatto", 5)
	sim.Solver.CheckRes = true
	sim.Levels[0].AbsResTol = 1e-12
	uend := runLinear(tst, sim, Serial{})
	chk.Scalar(tst, "u(1)", 1e-10, uend, math.Exp(-1.0))
}

func Test_sdc03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sdc03. van der Pol with nu = 0: convergence order by Richardson")

	newSim := func(nsteps int, Δt float64) *inp.Simulation {
		sim := new(inp.Simulation)
		sim.Data.SetDefault()
		sim.Solver.SetDefault()
		sim.Problem.SetDefault()
		sim.Solver.Type = "sdc"
		sim.Solver.NumSteps = nsteps
		sim.Solver.DeltaStep = Δt
		sim.Solver.NumIter = 6
		sim.Solver.QuadType = "gauss-legendre"
		sim.Problem.Name = "vanderpol"
		sim.Problem.Nu = 0
		sim.Problem.X0 = 1.0
		sim.Problem.Y0 = 0.5
		sim.Levels = []inp.LevelData{{NumNodes: 3, NumSweeps: 1}}
		return sim
	}

	run := func(nsteps int, Δt float64) (x, y float64) {
		sim := newSim(nsteps, Δt)
		levels, transfers, u0, err := prob.Allocate(sim)
		if err != nil {
			tst.Fatalf("Allocate failed:\n%v", err)
		}
		c := NewController(sim, levels, transfers, Serial{}, false)
		c.Finest().SetStartState(u0)
		if err := c.Run(); err != nil {
			tst.Fatalf("Run failed:\n%v", err)
		}
		q := c.Finest().StartState().(*encap.Vector).V
		return q[0], q[1]
	}

	// the exact solution of the linear oscillator
	tf := 0.88
	xe := 0.5*math.Sin(tf) + 1.0*math.Cos(tf)
	ye := -1.0*math.Sin(tf) + 0.5*math.Cos(tf)

	x1, y1 := run(7, tf/7.0)
	x2, y2 := run(14, tf/14.0)
	e1 := math.Max(math.Abs(x1-xe), math.Abs(y1-ye))
	e2 := math.Max(math.Abs(x2-xe), math.Abs(y2-ye))
	order := math.Log2(e1 / e2)
	io.Pforan("e(Δt) = %g  e(Δt/2) = %g  order = %g\n", e1, e2, order)
	if e2 >= e1 {
		tst.Errorf("error did not decrease under step refinement: %g -> %g", e1, e2)
		return
	}
	if order < 5.0 {
		tst.Errorf("convergence order is too low: %g", order)
	}
}
