// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ctl

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gosdc/encap"
	"github.com/cpmech/gosdc/inp"
	"github.com/cpmech/gosdc/prob"
	"github.com/cpmech/gosdc/sweep"
)

func Test_advdiff01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("advdiff01. spectral advection-diffusion, single-level SDC")

	// 512 modes, Δt = 0.01, 5 Gauss-Lobatto nodes, 32 steps
	sim := new(inp.Simulation)
	sim.Data.SetDefault()
	sim.Solver.SetDefault()
	sim.Problem.SetDefault()
	sim.Solver.Type = "sdc"
	sim.Solver.NumSteps = 32
	sim.Solver.DeltaStep = 0.01
	sim.Solver.NumIter = 4
	sim.Solver.QuadType = "gauss-lobatto"
	sim.Problem.Name = "advdiff"
	sim.Problem.Nu = 0.02
	sim.Problem.V = 1.0
	sim.Levels = []inp.LevelData{{NumNodes: 5, Ndofs: 512, NumSweeps: 1}}

	levels, _, u0, err := prob.Allocate(sim)
	if err != nil {
		tst.Fatalf("Allocate failed:\n%v", err)
	}
	lev := levels[0].(*sweep.Imex)
	if err := lev.Setup(false); err != nil {
		tst.Fatalf("Setup failed:\n%v", err)
	}
	lev.SetStartState(u0)
	p := lev.Prob.(*prob.AdvDiff)

	// max-norm error of the end state against the exact solution
	exact := encap.NewVector(512)
	errNorm := func(t float64) float64 {
		p.Exact(exact, t)
		max := 0.0
		for i, v := range lev.EndState().(*encap.Vector).V {
			d := v - exact.V[i]
			if d < 0 {
				d = -d
			}
			if d > max {
				max = d
			}
		}
		return max
	}

	// the error must shrink monotonically with the iterations within each step
	Δt := sim.Solver.DeltaStep
	var lastErr float64
	for n := 0; n < sim.Solver.NumSteps; n++ {
		t := float64(n) * Δt
		if err := lev.Predict(t, Δt, n == 0); err != nil {
			tst.Fatalf("Predict failed:\n%v", err)
		}
		prev := errNorm(t + Δt)
		for k := 1; k <= sim.Solver.NumIter; k++ {
			if err := lev.Sweep(t, Δt); err != nil {
				tst.Fatalf("Sweep failed:\n%v", err)
			}
			e := errNorm(t + Δt)
			if e > prev*1.01+1e-13 {
				tst.Errorf("step %d iteration %d: error grew: %g -> %g", n, k, prev, e)
				return
			}
			prev = e
		}
		lastErr = prev
		lev.Advance()
	}
	io.Pforan("max-norm error at t = %g: %g\n", float64(sim.Solver.NumSteps)*Δt, lastErr)
	if lastErr > 1e-7 {
		tst.Errorf("final error is too large: %g", lastErr)
	}
}
