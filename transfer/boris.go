// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transfer

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/cpmech/gosdc/encap"
	"github.com/cpmech/gosdc/sweep"
)

// InjectiveCloud transfers particle clouds between Boris sweeper levels that
// share the spatial problem; interpolation and restriction are identity
// copies in space, restriction injects in time, interpolation reconstructs
// the coarse correction in time with Lagrange polynomials, and the FAS
// correction is computed for the velocity/position pair
type InjectiveCloud struct {
	trat int
}

// NewInjectiveCloud returns a new injective transfer for Boris sweepers
func NewInjectiveCloud() *InjectiveCloud {
	return new(InjectiveCloud)
}

// boris casts a Sweeper to a Boris sweeper
func (o *InjectiveCloud) boris(s sweep.Sweeper) *sweep.Boris {
	b, ok := s.(*sweep.Boris)
	if !ok {
		chk.Panic("injective cloud transfer requires Boris sweepers. %T is invalid", s)
	}
	return b
}

// InterpolateState adds the coarse correction, reconstructed in time at every
// fine node, to the fine particle states and re-evaluates the forces
func (o *InjectiveCloud) InterpolateState(t, Δt float64, fine, crse sweep.Sweeper, initial bool) (err error) {
	o.trat, err = timeRatio(fine.NumNodes(), crse.NumNodes())
	if err != nil {
		return
	}
	if initial {
		delta := crse.Factory().Create()
		delta.Copy(fine.StartState())
		delta.Axpy(-1, crse.StartState())
		fine.StartState().Axpy(-1, delta)
	}
	tmat := timeMatrix(fine.Quadrature().T, crse.Quadrature().T)
	deltas := make([]encap.Encapsulation, crse.NumNodes())
	for c := 0; c < crse.NumNodes(); c++ {
		deltas[c] = crse.Factory().Create()
		deltas[c].Copy(fine.State(c * o.trat))
		deltas[c].Axpy(-1, crse.State(c))
	}
	for m := 0; m < fine.NumNodes(); m++ {
		for c := 0; c < crse.NumNodes(); c++ {
			fine.State(m).Axpy(-tmat[m][c], deltas[c])
		}
		fine.Evaluate(t, Δt, m)
	}
	fine.Save()
	return
}

// RestrictState injects the fine particle states into the coarse level
func (o *InjectiveCloud) RestrictState(t, Δt float64, crse, fine sweep.Sweeper) (err error) {
	o.trat, err = timeRatio(fine.NumNodes(), crse.NumNodes())
	if err != nil {
		return
	}
	crse.StartState().Copy(fine.StartState())
	for c := 0; c < crse.NumNodes(); c++ {
		crse.SetState(c, fine.State(c*o.trat))
		crse.Evaluate(t, Δt, c)
	}
	return
}

// FAS computes the 0-to-node tau correction pair (velocity and position
// equations) and stores it on the coarse Boris sweeper
func (o *InjectiveCloud) FAS(Δt float64, crse, fine sweep.Sweeper) (err error) {
	o.trat, err = timeRatio(fine.NumNodes(), crse.NumNodes())
	if err != nil {
		return
	}
	cb := o.boris(crse)
	fb := o.boris(fine)
	nc := crse.NumNodes()
	nf := fine.NumNodes()
	np := cb.Factory().(*encap.CloudFactory).Np

	fineQ := make([][]float64, nf)
	fineQQ := make([][]float64, nf)
	for m := 0; m < nf; m++ {
		fineQ[m] = encap.CloudComp(np)
		fineQQ[m] = encap.CloudComp(np)
	}
	fb.IntegrateQQ(Δt, fineQ, fineQQ)

	crseQ := make([][]float64, nc)
	crseQQ := make([][]float64, nc)
	for c := 0; c < nc; c++ {
		crseQ[c] = encap.CloudComp(np)
		crseQQ[c] = encap.CloudComp(np)
	}
	cb.IntegrateQQ(Δt, crseQ, crseQQ)

	tauq := encap.CloudComp(np)
	tauqq := encap.CloudComp(np)
	for c := 0; c < nc; c++ {
		copy(tauq, fineQ[c*o.trat])
		la.VecAdd(tauq, -1, crseQ[c])
		copy(tauqq, fineQQ[c*o.trat])
		la.VecAdd(tauqq, -1, crseQQ[c])
		cb.SetTauQQ(c, tauq, tauqq)
	}
	return
}
