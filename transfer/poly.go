// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transfer

import (
	"github.com/cpmech/gosdc/encap"
	"github.com/cpmech/gosdc/sweep"
)

// Poly transfers state between first-order sweepers using injection in time
// for restriction, Lagrange reconstruction in time for interpolation and a
// user-supplied SpaceOps pair in space
type Poly struct {

	// input
	Space SpaceOps // spatial operators; Identity when levels share the discretisation

	// derived
	tmat [][]float64 // Lagrange evaluation matrix from coarse to fine nodes
	trat int         // temporal coarsening factor
}

// NewPoly returns a new polynomial transfer with the given spatial operators
func NewPoly(space SpaceOps) *Poly {
	return &Poly{Space: space}
}

// setup computes the time matrix and coarsening factor on first use
func (o *Poly) setup(fine, crse sweep.Sweeper) (err error) {
	if o.tmat != nil {
		return
	}
	o.trat, err = timeRatio(fine.NumNodes(), crse.NumNodes())
	if err != nil {
		return
	}
	o.tmat = timeMatrix(fine.Quadrature().T, crse.Quadrature().T)
	return
}

// InterpolateState adds the interpolated coarse correction to the fine states:
//
//	Ufine_m += sum_c tmat[m][c] * interp( Ucrse_c - restrict(Ufine_{c*trat}) )
//
// and re-evaluates the fine right-hand side at every node
func (o *Poly) InterpolateState(t, Δt float64, fine, crse sweep.Sweeper, initial bool) (err error) {
	if err = o.setup(fine, crse); err != nil {
		return
	}
	nc := crse.NumNodes()
	nf := fine.NumNodes()

	if initial {
		cdelta := crse.Factory().Create()
		fdelta := fine.Factory().Create()
		o.Space.Restrict(cdelta, fine.StartState())
		cdelta.Axpy(-1, crse.StartState())
		o.Space.Interpolate(fdelta, cdelta)
		fine.StartState().Axpy(-1, fdelta)
	}

	// coarse corrections, spatially interpolated to fine size
	fdeltas := make([]encap.Encapsulation, nc)
	cdelta := crse.Factory().Create()
	for c := 0; c < nc; c++ {
		o.Space.Restrict(cdelta, fine.State(c*o.trat))
		cdelta.Axpy(-1, crse.State(c))
		fdeltas[c] = fine.Factory().Create()
		o.Space.Interpolate(fdeltas[c], cdelta)
	}

	// add the correction, reconstructed in time at the fine nodes
	for m := 0; m < nf; m++ {
		for c := 0; c < nc; c++ {
			fine.State(m).Axpy(-o.tmat[m][c], fdeltas[c])
		}
		fine.Evaluate(t, Δt, m)
	}
	fine.Save()
	return
}

// RestrictState injects the fine states into the coarse level (start state
// included) and re-evaluates the coarse right-hand side at every node
func (o *Poly) RestrictState(t, Δt float64, crse, fine sweep.Sweeper) (err error) {
	if err = o.setup(fine, crse); err != nil {
		return
	}
	o.Space.Restrict(crse.StartState(), fine.StartState())
	tmp := crse.Factory().Create()
	for c := 0; c < crse.NumNodes(); c++ {
		o.Space.Restrict(tmp, fine.State(c*o.trat))
		crse.SetState(c, tmp)
		crse.Evaluate(t, Δt, c)
	}
	return
}

// FAS computes the 0-to-node tau correction
//
//	tau_c = restrict( Ifine_{c*trat} ) - Icrse_c
//
// plus restrict( taufine_{c*trat} ) when the fine level carries its own
// correction, and stores it on the coarse sweeper
func (o *Poly) FAS(Δt float64, crse, fine sweep.Sweeper) (err error) {
	if err = o.setup(fine, crse); err != nil {
		return
	}
	nc := crse.NumNodes()
	nf := fine.NumNodes()

	ifine := make([]encap.Encapsulation, nf)
	for m := 0; m < nf; m++ {
		ifine[m] = fine.Factory().Create()
	}
	fine.Integrate(Δt, ifine)

	icrse := make([]encap.Encapsulation, nc)
	for c := 0; c < nc; c++ {
		icrse[c] = crse.Factory().Create()
	}
	crse.Integrate(Δt, icrse)

	tau := crse.Factory().Create()
	tmp := crse.Factory().Create()
	for c := 0; c < nc; c++ {
		o.Space.Restrict(tau, ifine[c*o.trat])
		tau.Axpy(-1, icrse[c])
		// carry the correction of an even finer level down the hierarchy
		if fine.Tau(0) != nil {
			o.Space.Restrict(tmp, fine.Tau(c*o.trat))
			tau.Axpy(1, tmp)
		}
		crse.SetTau(c, tau)
	}
	return
}
