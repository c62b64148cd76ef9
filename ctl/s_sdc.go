// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ctl

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// SDC is the single-level controller: per step, one prediction followed by a
// fixed number of sweeps with an optional residual-based early exit
type SDC struct {
	c *Controller
}

// set factory of controllers
func init() {
	runnerallocators["sdc"] = func(c *Controller) Runner {
		if len(c.Levels) != 1 {
			chk.Panic("the SDC controller works with one level only. %d levels were given", len(c.Levels))
		}
		return &SDC{c: c}
	}
}

// Run performs the time-stepping loop
func (o *SDC) Run() (err error) {

	// control
	sol := &o.c.Sim.Solver
	Δt := sol.DeltaStep
	lev := o.c.Levels[0]

	// time loop
	for n := 0; n < sol.NumSteps; n++ {
		t := float64(n) * Δt

		// message
		if o.c.Verbose {
			io.PfWhite("%30.15f\r", t)
		}

		// provisional solution
		err = lev.Predict(t, Δt, n == 0)
		if err != nil {
			return chk.Err("predict failed at step %d:\n%v", n, err)
		}

		// iterations
		for k := 1; k <= sol.NumIter; k++ {
			err = lev.Sweep(t, Δt)
			if err != nil {
				return chk.Err("sweep failed at step %d, iteration %d:\n%v", n, k, err)
			}
			o.c.reportSweep(n, k)
			if sol.CheckRes && lev.Converged(Δt) {
				break
			}
		}

		// next step
		lev.Advance()
	}
	return
}
