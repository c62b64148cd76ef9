// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"

	"github.com/cpmech/gosdc/ctl"
	"github.com/cpmech/gosdc/inp"
	"github.com/cpmech/gosdc/out"
	"github.com/cpmech/gosdc/prob"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			if mpi.Rank() == 0 {
				io.PfRed("ERROR: %v\n", err)
			}
			mpi.Stop(false)
			os.Exit(1)
		}
		mpi.Stop(false)
	}()
	mpi.Start(false)

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "", ".sim", true)
	verbose := io.ArgToBool(1, true)

	// message
	if mpi.Rank() == 0 && verbose {
		io.PfWhite("\ngosdc -- Go Spectral Deferred Corrections\n\n")
		io.Pf("Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n\n")
		io.Pf("\n%v\n", io.ArgsTable(
			"filename path", "fnamepath", fnamepath,
			"show messages", "verbose", verbose,
		))
	}

	// simulation data
	sim := inp.ReadSim(fnamepath)
	if sim == nil {
		chk.Panic("cannot read simulation input data")
	}

	// communicator
	var comm ctl.Communicator
	if mpi.IsOn() && mpi.Size() > 1 {
		comm = ctl.NewMpi()
	} else {
		comm = ctl.Serial{}
	}

	// problem: levels, transfers and initial condition
	levels, transfers, u0, err := prob.Allocate(sim)
	if err != nil {
		chk.Panic("cannot allocate problem:\n%v", err)
	}

	// controller
	c := ctl.NewController(sim, levels, transfers, comm, verbose)
	if sim.Data.Results {
		c.Rep = out.NewReport()
	}
	c.Finest().SetStartState(u0)

	// run simulation
	err = c.Run()
	if err != nil {
		chk.Panic("Run failed:\n%v", err)
	}

	// save results
	if c.Rep != nil && comm.Rank() == 0 {
		c.Rep.Save(sim.Data.DirOut, sim.Data.FnameKey)
	}
}
