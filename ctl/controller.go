// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ctl

import (
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gosdc/encap"
	"github.com/cpmech/gosdc/inp"
	"github.com/cpmech/gosdc/out"
	"github.com/cpmech/gosdc/sweep"
	"github.com/cpmech/gosdc/transfer"
)

// Runner implements the actual time-stepping loop of one controller variant
type Runner interface {
	Run() (err error)
}

// runnerallocators holds all available controller variants
var runnerallocators = make(map[string]func(c *Controller) Runner)

// Controller owns a level hierarchy and orchestrates the SDC iterations over
// the time domain. Levels are ordered coarsest first; each adjacent pair is
// coupled by one transfer
type Controller struct {
	Sim       *inp.Simulation     // simulation data
	Levels    []sweep.Sweeper     // level hierarchy; coarsest first
	Transfers []transfer.Transfer // Transfers[i] couples Levels[i] (coarse) and Levels[i+1] (fine)
	Comm      Communicator        // inter-rank exchange; Serial for single-process runs
	Runner    Runner              // sdc, mlsdc or pfasst stepping loop
	Verbose   bool                // show messages; true only on rank 0
	Rep       *out.Report         // per-sweep CSV results; nil disables
}

// NewController returns a controller with the stepping loop selected by
// sim.Solver.Type and all levels set up
func NewController(sim *inp.Simulation, levels []sweep.Sweeper, transfers []transfer.Transfer, comm Communicator, verbose bool) (o *Controller) {

	// check hierarchy
	if len(levels) == 0 {
		chk.Panic("level hierarchy cannot be empty")
	}
	if len(transfers) != len(levels)-1 {
		chk.Panic("need exactly one transfer per adjacent level pair: %d levels but %d transfers", len(levels), len(transfers))
	}
	if len(levels) != len(sim.Levels) {
		chk.Panic("simulation defines %d levels but %d sweepers were given", len(sim.Levels), len(levels))
	}

	// new controller
	o = new(Controller)
	o.Sim = sim
	o.Levels = levels
	o.Transfers = transfers
	o.Comm = comm
	o.Verbose = verbose && comm.Rank() == 0

	// set up levels; all but the finest carry FAS correction storage
	for i, lev := range levels {
		if err := lev.Setup(i < len(levels)-1); err != nil {
			chk.Panic("cannot set up level %d:\n%v", i, err)
		}
	}

	// allocate stepping loop
	if alloc, ok := runnerallocators[sim.Solver.Type]; ok {
		o.Runner = alloc(o)
	} else {
		chk.Panic("cannot find controller type named %q", sim.Solver.Type)
	}
	return
}

// Finest returns the finest level
func (o *Controller) Finest() sweep.Sweeper {
	return o.Levels[len(o.Levels)-1]
}

// reportSweep appends one line of per-sweep results for the finest level
func (o *Controller) reportSweep(step, iter int) {
	if o.Rep == nil {
		return
	}
	lev := o.Finest()
	res := lev.ResidualNorm0(o.Sim.Solver.DeltaStep)
	switch s := lev.(type) {
	case *sweep.Boris:
		// cloud means
		c := s.EndState().(*encap.Cloud)
		var p, v [3]float64
		for i := 0; i < c.Np; i++ {
			for d := 0; d < encap.CLOUDDIM; d++ {
				p[d] += c.P[i*encap.CLOUDDIM+d] / float64(c.Np)
				v[d] += c.V[i*encap.CLOUDDIM+d] / float64(c.Np)
			}
		}
		o.Rep.Write(step, iter, -1, p[0], p[1], p[2], v[0], v[1], v[2], s.Energy, s.Drift, res)
	default:
		var q [6]float64
		if v, ok := lev.EndState().(*encap.Vector); ok {
			for i := 0; i < len(v.V) && i < 6; i++ {
				q[i] = v.V[i]
			}
		}
		o.Rep.Write(step, iter, -1, q[0], q[1], q[2], q[3], q[4], q[5], 0, 0, res)
	}
}

// Run runs the simulation over all time steps
func (o *Controller) Run() (err error) {
	cputime := time.Now()
	defer func() {
		if o.Verbose {
			io.Pfblue2("cpu time = %v\n", time.Now().Sub(cputime))
		}
	}()
	return o.Runner.Run()
}
