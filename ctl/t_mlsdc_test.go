// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ctl

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gosdc/prob"
)

func Test_mlsdc01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mlsdc01. two-level V-cycle on the linear test problem")

	sim := linearSim("mlsdc", 10, 0.1, 8, "gauss-lobatto", 3, 5)
	uend := runLinear(tst, sim, Serial{})
	chk.Scalar(tst, "u(1)", 1e-10, uend, math.Exp(-1.0))
}

func Test_mlsdc02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mlsdc02. V-cycle converges in fewer iterations than SDC")

	Δt := 0.1
	tol := 1e-8

	// iterations until the finest residual is below tol, multilevel
	countML := func() int {
		sim := linearSim("mlsdc", 1, Δt, 50, "gauss-lobatto", 3, 5)
		levels, transfers, u0, err := prob.Allocate(sim)
		if err != nil {
			tst.Fatalf("Allocate failed:\n%v", err)
		}
		c := NewController(sim, levels, transfers, Serial{}, false)
		c.Finest().SetStartState(u0)
		fine := c.Levels[1]
		crse := c.Levels[0]
		trn := c.Transfers[0]
		fine.Predict(0, Δt, true)
		trn.RestrictState(0, Δt, crse, fine)
		crse.Save()
		for k := 1; k <= 50; k++ {
			fine.Sweep(0, Δt)
			if fine.ResidualNorm0(Δt) < tol {
				return k
			}
			trn.RestrictState(0, Δt, crse, fine)
			crse.Save()
			trn.FAS(Δt, crse, fine)
			crse.Sweep(0, Δt)
			trn.InterpolateState(0, Δt, fine, crse, false)
		}
		return 50
	}

	// iterations until the residual is below tol, single level
	countSDC := func() int {
		sim := linearSim("sdc", 1, Δt, 50, "gauss-lobatto", 5)
		levels, transfers, u0, err := prob.Allocate(sim)
		if err != nil {
			tst.Fatalf("Allocate failed:\n%v", err)
		}
		c := NewController(sim, levels, transfers, Serial{}, false)
		c.Finest().SetStartState(u0)
		lev := c.Levels[0]
		lev.Predict(0, Δt, true)
		for k := 1; k <= 50; k++ {
			lev.Sweep(0, Δt)
			if lev.ResidualNorm0(Δt) < tol {
				return k
			}
		}
		return 50
	}

	nml := countML()
	nsdc := countSDC()
	io.Pforan("iterations: mlsdc = %d  sdc = %d\n", nml, nsdc)
	if nml >= nsdc {
		tst.Errorf("V-cycle did not need fewer iterations (%d) than single-level SDC (%d)", nml, nsdc)
	}
}
