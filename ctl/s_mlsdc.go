// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ctl

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// MLSDC is the multilevel controller: per step, a V-cycle over the level
// hierarchy with FAS corrections coupling the levels
type MLSDC struct {
	c *Controller
}

// set factory of controllers
func init() {
	runnerallocators["mlsdc"] = func(c *Controller) Runner {
		if len(c.Levels) < 2 {
			chk.Panic("the MLSDC controller needs at least 2 levels. %d levels were given", len(c.Levels))
		}
		return &MLSDC{c: c}
	}
}

// sweeps performs the configured number of sweeps on one level
func (o *MLSDC) sweeps(t, Δt float64, level int) (err error) {
	for s := 0; s < o.c.Sim.Levels[level].NumSweeps; s++ {
		if err = o.c.Levels[level].Sweep(t, Δt); err != nil {
			return
		}
	}
	return
}

// cycle performs one V-cycle; converged tells whether the finest level
// satisfies its residual tolerances
func (o *MLSDC) cycle(t, Δt float64) (converged bool, err error) {
	lev := o.c.Levels
	trn := o.c.Transfers
	top := len(lev) - 1

	// down leg: sweep, check, restrict, compute FAS correction
	for l := top; l >= 1; l-- {
		if err = o.sweeps(t, Δt, l); err != nil {
			return
		}
		if l == top && lev[top].Converged(Δt) {
			return true, nil
		}
		if err = trn[l-1].RestrictState(t, Δt, lev[l-1], lev[l]); err != nil {
			return
		}
		lev[l-1].Save()
		if err = trn[l-1].FAS(Δt, lev[l-1], lev[l]); err != nil {
			return
		}
	}

	// coarsest level
	if err = o.sweeps(t, Δt, 0); err != nil {
		return
	}

	// up leg: interpolate the coarse correction, then sweep again (the
	// topmost level is swept at the beginning of the next cycle instead)
	for l := 1; l <= top; l++ {
		if err = trn[l-1].InterpolateState(t, Δt, lev[l], lev[l-1], false); err != nil {
			return
		}
		if l < top {
			if err = o.sweeps(t, Δt, l); err != nil {
				return
			}
		}
	}
	return
}

// Run performs the time-stepping loop
func (o *MLSDC) Run() (err error) {

	// control
	sol := &o.c.Sim.Solver
	Δt := sol.DeltaStep
	lev := o.c.Levels
	trn := o.c.Transfers
	top := len(lev) - 1

	// time loop
	for n := 0; n < sol.NumSteps; n++ {
		t := float64(n) * Δt

		// message
		if o.c.Verbose {
			io.PfWhite("%30.15f\r", t)
		}

		// provisional solution on the finest level, spread down by restriction
		err = lev[top].Predict(t, Δt, n == 0)
		if err != nil {
			return chk.Err("predict failed at step %d:\n%v", n, err)
		}
		for l := top; l >= 1; l-- {
			if err = trn[l-1].RestrictState(t, Δt, lev[l-1], lev[l]); err != nil {
				return
			}
			lev[l-1].Save()
		}

		// iterations
		for k := 1; k <= sol.NumIter; k++ {
			converged, err := o.cycle(t, Δt)
			if err != nil {
				return chk.Err("V-cycle failed at step %d, iteration %d:\n%v", n, k, err)
			}
			o.c.reportSweep(n, k)
			if converged {
				break
			}
		}

		// the last cycle may end with an interpolation; refresh the end state
		if lev[top].Quadrature().RightIsNode {
			lev[top].EndState().Copy(lev[top].State(lev[top].NumNodes() - 1))
		}

		// next step
		for l := 0; l <= top; l++ {
			lev[l].Advance()
		}
	}
	return
}
