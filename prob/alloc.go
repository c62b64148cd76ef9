// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prob

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gosdc/encap"
	"github.com/cpmech/gosdc/inp"
	"github.com/cpmech/gosdc/quad"
	"github.com/cpmech/gosdc/sweep"
	"github.com/cpmech/gosdc/transfer"
)

// allocators holds all available problem allocators. Each one builds the
// level hierarchy (coarsest first), the transfers coupling adjacent levels
// and the initial condition on the finest level
var allocators = make(map[string]func(sim *inp.Simulation) (levels []sweep.Sweeper, transfers []transfer.Transfer, u0 encap.Encapsulation, err error))

// Allocate builds levels, transfers and the initial condition for the
// problem named in the simulation data
func Allocate(sim *inp.Simulation) (levels []sweep.Sweeper, transfers []transfer.Transfer, u0 encap.Encapsulation, err error) {
	alloc, ok := allocators[sim.Problem.Name]
	if !ok {
		err = chk.Err("cannot find problem named %q", sim.Problem.Name)
		return
	}
	return alloc(sim)
}

// quadratures builds one quadrature per level
func quadratures(sim *inp.Simulation) (qdrs []*quad.Quadrature, err error) {
	qdrs = make([]*quad.Quadrature, len(sim.Levels))
	for i, lev := range sim.Levels {
		qdrs[i], err = quad.NewQuadrature(sim.Solver.QuadType, lev.NumNodes)
		if err != nil {
			return
		}
	}
	return
}

// set factory of problems
func init() {

	// scalar linear test problem
	allocators["linear"] = func(sim *inp.Simulation) (levels []sweep.Sweeper, transfers []transfer.Transfer, u0 encap.Encapsulation, err error) {
		qdrs, err := quadratures(sim)
		if err != nil {
			return
		}
		p := &Linear{Lambda: sim.Problem.Lambda, U0: sim.Problem.U0}
		for i, lev := range sim.Levels {
			n := lev.Ndofs
			if n == 0 {
				n = 1
			}
			es := sweep.EncapSweeper{
				Qdr: qdrs[i], Fac: &encap.VectorFactory{N: n},
				AbsTol: lev.AbsResTol, RelTol: lev.RelResTol,
			}
			levels = append(levels, sweep.NewImex(es, p))
			if i > 0 {
				transfers = append(transfers, transfer.NewPoly(transfer.Identity{}))
			}
		}
		n := sim.Levels[len(sim.Levels)-1].Ndofs
		if n == 0 {
			n = 1
		}
		v := encap.NewVector(n)
		p.Exact(v, 0)
		u0 = v
		return
	}

	// spectral advection-diffusion
	allocators["advdiff"] = func(sim *inp.Simulation) (levels []sweep.Sweeper, transfers []transfer.Transfer, u0 encap.Encapsulation, err error) {
		qdrs, err := quadratures(sim)
		if err != nil {
			return
		}
		var fine *AdvDiff
		for i, lev := range sim.Levels {
			if lev.Ndofs < 2 {
				err = chk.Err("advdiff level %d: number of dofs must be at least 2. ndofs = %d is invalid", i, lev.Ndofs)
				return
			}
			p := NewAdvDiff(lev.Ndofs, sim.Problem.Nu, sim.Problem.V)
			fine = p
			es := sweep.EncapSweeper{
				Qdr: qdrs[i], Fac: &encap.VectorFactory{N: lev.Ndofs},
				AbsTol: lev.AbsResTol, RelTol: lev.RelResTol,
			}
			levels = append(levels, sweep.NewImex(es, p))
			if i > 0 {
				transfers = append(transfers, transfer.NewPoly(NewSpectralOps(lev.Ndofs, sim.Levels[i-1].Ndofs)))
			}
		}
		v := encap.NewVector(fine.Ndofs)
		fine.Exact(v, 0)
		u0 = v
		return
	}

	// van der Pol oscillator
	allocators["vanderpol"] = func(sim *inp.Simulation) (levels []sweep.Sweeper, transfers []transfer.Transfer, u0 encap.Encapsulation, err error) {
		qdrs, err := quadratures(sim)
		if err != nil {
			return
		}
		p := NewVanderPol(sim.Problem.Nu, sim.Problem.X0, sim.Problem.Y0)
		for i, lev := range sim.Levels {
			es := sweep.EncapSweeper{
				Qdr: qdrs[i], Fac: &encap.VectorFactory{N: 2},
				AbsTol: lev.AbsResTol, RelTol: lev.RelResTol,
			}
			levels = append(levels, sweep.NewImplicit(es, p))
			if i > 0 {
				transfers = append(transfers, transfer.NewPoly(transfer.Identity{}))
			}
		}
		v := encap.NewVector(2)
		v.V[0] = sim.Problem.X0
		v.V[1] = sim.Problem.Y0
		u0 = v
		return
	}

	// charged particles in a Penning trap
	allocators["boris"] = func(sim *inp.Simulation) (levels []sweep.Sweeper, transfers []transfer.Transfer, u0 encap.Encapsulation, err error) {
		qdrs, err := quadratures(sim)
		if err != nil {
			return
		}
		pd := &sim.Problem
		p := NewSimplePhysics(pd.OmegaE, pd.OmegaB, pd.Epsilon, pd.Sigma)
		for i, lev := range sim.Levels {
			es := sweep.EncapSweeper{
				Qdr: qdrs[i], Fac: &encap.CloudFactory{Np: pd.NumPrtcls, Charge: 1, Mass: 1},
				AbsTol: lev.AbsResTol, RelTol: lev.RelResTol,
			}
			levels = append(levels, sweep.NewBoris(es, p))
			if i > 0 {
				transfers = append(transfers, transfer.NewInjectiveCloud())
			}
		}
		c := encap.NewCloud(pd.NumPrtcls, 1, 1)
		for i := 0; i < pd.NumPrtcls; i++ {
			j := i * encap.CLOUDDIM
			c.P[j+0] = 10
			c.V[j+0] = 100
			c.V[j+2] = 100
		}
		u0 = c
		return
	}
}
