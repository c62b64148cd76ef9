// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package transfer implements interpolation and restriction between SDC levels
// including the FAS correction
package transfer

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gosdc/encap"
	"github.com/cpmech/gosdc/quad"
	"github.com/cpmech/gosdc/sweep"
)

// Transfer moves state between a coarse/fine sweeper pair
type Transfer interface {

	// InterpolateState adds the coarse correction to the fine level and
	// re-evaluates the fine right-hand side. The start state is included
	// when initial is true
	InterpolateState(t, Δt float64, fine, crse sweep.Sweeper, initial bool) (err error)

	// RestrictState injects the fine states (start state included) into the
	// coarse level and re-evaluates the coarse right-hand side
	RestrictState(t, Δt float64, crse, fine sweep.Sweeper) (err error)

	// FAS computes the tau correction making the coarse collocation problem
	// reproduce the restriction of the fine solution, and stores it on the
	// coarse sweeper
	FAS(Δt float64, crse, fine sweep.Sweeper) (err error)
}

// SpaceOps performs the problem-specific spatial interpolation/restriction
// between encapsulations of different sizes
type SpaceOps interface {
	Interpolate(fine, crse encap.Encapsulation)
	Restrict(crse, fine encap.Encapsulation)
}

// Identity is the SpaceOps for levels sharing the spatial discretisation
type Identity struct{}

// Interpolate copies crse into fine
func (o Identity) Interpolate(fine, crse encap.Encapsulation) { fine.Copy(crse) }

// Restrict copies fine into crse
func (o Identity) Restrict(crse, fine encap.Encapsulation) { crse.Copy(fine) }

// timeRatio returns the temporal coarsening factor and checks consistency
func timeRatio(nfine, ncrse int) (trat int, err error) {
	if ncrse < 1 || nfine < ncrse {
		return 0, chk.Err("inconsistent level pair: nfine = %d, ncrse = %d", nfine, ncrse)
	}
	if ncrse == 1 {
		return 1, nil
	}
	trat = (nfine - 1) / (ncrse - 1)
	if (ncrse-1)*trat != nfine-1 {
		return 0, chk.Err("fine nodes cannot be matched to coarse nodes: nfine = %d, ncrse = %d", nfine, ncrse)
	}
	return
}

// timeMatrix returns the Lagrange evaluation matrix from coarse nodes to fine
// nodes: tmat[m][c] = l_c(tfine[m])
func timeMatrix(tfine, tcrse []float64) (tmat [][]float64) {
	tmat = make([][]float64, len(tfine))
	for m := 0; m < len(tfine); m++ {
		tmat[m] = make([]float64, len(tcrse))
	}
	for c := 0; c < len(tcrse); c++ {
		p := quad.Lagrange(tcrse, c)
		for m := 0; m < len(tfine); m++ {
			tmat[m][c] = p.Evaluate(tfine[m])
		}
	}
	return
}
