// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package sweep implements the SDC sweepers; i.e. the per-level state machines
// performing one spectral deferred correction iteration
package sweep

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gosdc/encap"
	"github.com/cpmech/gosdc/quad"
)

// Sweeper performs one SDC iteration on one level
type Sweeper interface {

	// Setup allocates node storage and computes quadrature matrices.
	// hasCoarser is true on every level except the finest; those levels
	// receive FAS corrections from the next finer level and therefore get
	// correction storage
	Setup(hasCoarser bool) (err error)

	// SetStartState copies u0 into the start state
	SetStartState(u0 encap.Encapsulation)

	// StartState returns the state at the beginning of the current step
	StartState() encap.Encapsulation

	// EndState returns the state at the end of the current step
	EndState() encap.Encapsulation

	// State returns the state at node m
	State(m int) encap.Encapsulation

	// SetState copies u into the state at node m
	SetState(m int, u encap.Encapsulation)

	// NumNodes returns the number of quadrature nodes
	NumNodes() int

	// Quadrature returns the quadrature data of this level
	Quadrature() *quad.Quadrature

	// Factory returns the encapsulation factory of this level
	Factory() encap.Factory

	// Spread initialises all node states with the start state
	Spread()

	// Predict produces the first provisional solution for a new step
	Predict(t, Δt float64, first bool) (err error)

	// Sweep performs one SDC iteration
	Sweep(t, Δt float64) (err error)

	// Evaluate recomputes the right-hand side at node m from the state at node m
	Evaluate(t, Δt float64, m int)

	// Integrate computes dst[m] = Δt * sum_j Q[m][j]*F[j]; i.e. the 0-to-node
	// integrals of the current right-hand side values
	Integrate(Δt float64, dst []encap.Encapsulation)

	// Residual computes dst[m] = Ustart + Δt*sum_j Q[m][j]*F[j] + tau[m] - U[m]
	Residual(Δt float64, dst []encap.Encapsulation)

	// ResidualNorm0 returns the maximum norm of the residual over all nodes
	ResidualNorm0(Δt float64) float64

	// Converged tells whether the residual satisfies the configured tolerances
	Converged(Δt float64) bool

	// Save snapshots the node states and right-hand side values for the next sweep
	Save()

	// Advance moves the end state into the start state for the next step
	Advance()

	// Tau returns the FAS correction at node m (nil storage on the finest level)
	Tau(m int) encap.Encapsulation

	// SetTau copies v into the FAS correction at node m
	SetTau(m int, v encap.Encapsulation)
}

// EncapSweeper holds the state shared by all encapsulation-based sweepers
type EncapSweeper struct {

	// input
	Qdr    *quad.Quadrature // nodes and integration matrices
	Fac    encap.Factory    // creates problem-sized encapsulations
	AbsTol float64          // absolute residual tolerance; zero disables the check
	RelTol float64          // relative residual tolerance; zero disables the check

	// state
	U      []encap.Encapsulation // solution at each node
	SavedU []encap.Encapsulation // solution at each node from the previous sweep
	UStart encap.Encapsulation   // solution at the beginning of the step
	UEnd   encap.Encapsulation   // solution at the end of the step
	TauC   []encap.Encapsulation // FAS correction per node; nil on the finest level

	// derived
	ΔT []float64 // node spacings: ΔT[m] = T[m] - T[m-1]; ΔT[0] = T[0]

	// workspace
	res []encap.Encapsulation // residual per node
}

// allocate creates the shared node storage. Must be called by the Setup
// method of concrete sweepers
func (o *EncapSweeper) allocate(hasCoarser bool) (err error) {
	if o.Qdr == nil || o.Fac == nil {
		return chk.Err("sweeper is missing quadrature or factory")
	}
	n := o.Qdr.NumNodes()
	o.U = make([]encap.Encapsulation, n)
	o.SavedU = make([]encap.Encapsulation, n)
	o.res = make([]encap.Encapsulation, n)
	for m := 0; m < n; m++ {
		o.U[m] = o.Fac.Create()
		o.SavedU[m] = o.Fac.Create()
		o.res[m] = o.Fac.Create()
	}
	o.UStart = o.Fac.Create()
	o.UEnd = o.Fac.Create()
	if hasCoarser {
		o.TauC = make([]encap.Encapsulation, n)
		for m := 0; m < n; m++ {
			o.TauC[m] = o.Fac.Create()
		}
	}
	o.ΔT = make([]float64, n)
	o.ΔT[0] = o.Qdr.T[0]
	for m := 1; m < n; m++ {
		o.ΔT[m] = o.Qdr.T[m] - o.Qdr.T[m-1]
	}
	return
}

// checkSetup panics when the sweeper is used before Setup
func (o *EncapSweeper) checkSetup() {
	if o.U == nil {
		chk.Panic("sweeper was not set up. call Setup first")
	}
}

// SetStartState copies u0 into the start state
func (o *EncapSweeper) SetStartState(u0 encap.Encapsulation) {
	o.checkSetup()
	o.UStart.Copy(u0)
}

// StartState returns the state at the beginning of the current step
func (o *EncapSweeper) StartState() encap.Encapsulation { return o.UStart }

// EndState returns the state at the end of the current step
func (o *EncapSweeper) EndState() encap.Encapsulation { return o.UEnd }

// State returns the state at node m
func (o *EncapSweeper) State(m int) encap.Encapsulation { return o.U[m] }

// SetState copies u into the state at node m
func (o *EncapSweeper) SetState(m int, u encap.Encapsulation) {
	o.U[m].Copy(u)
}

// NumNodes returns the number of quadrature nodes
func (o *EncapSweeper) NumNodes() int { return o.Qdr.NumNodes() }

// Quadrature returns the quadrature data of this level
func (o *EncapSweeper) Quadrature() *quad.Quadrature { return o.Qdr }

// Factory returns the encapsulation factory of this level
func (o *EncapSweeper) Factory() encap.Factory { return o.Fac }

// Spread initialises all node states with the start state
func (o *EncapSweeper) Spread() {
	o.checkSetup()
	for m := 0; m < len(o.U); m++ {
		o.U[m].Copy(o.UStart)
	}
}

// Tau returns the FAS correction at node m; nil on the finest level
func (o *EncapSweeper) Tau(m int) encap.Encapsulation {
	if o.TauC == nil {
		return nil
	}
	return o.TauC[m]
}

// SetTau copies v into the FAS correction at node m
func (o *EncapSweeper) SetTau(m int, v encap.Encapsulation) {
	if o.TauC == nil {
		chk.Panic("cannot set tau correction on a level without coarser levels")
	}
	o.TauC[m].Copy(v)
}

// saveU snapshots the node states
func (o *EncapSweeper) saveU() {
	for m := 0; m < len(o.U); m++ {
		o.SavedU[m].Copy(o.U[m])
	}
}

// integrate computes dst[m] = Δt * sum_j Q[m][j]*F[j], accumulating all given
// right-hand side slices (e.g. explicit and implicit parts)
func (o *EncapSweeper) integrate(Δt float64, dst []encap.Encapsulation, fs ...[]encap.Encapsulation) {
	for m := 0; m < len(dst); m++ {
		dst[m].Zero()
	}
	for _, F := range fs {
		encap.MatApply(dst, Δt, o.Qdr.Q, F, false)
	}
}

// residual computes dst[m] = Ustart + Δt*sum_j Q[m][j]*F[j] + tau[m] - U[m]
func (o *EncapSweeper) residual(Δt float64, dst []encap.Encapsulation, fs ...[]encap.Encapsulation) {
	for m := 0; m < len(dst); m++ {
		dst[m].Copy(o.UStart)
	}
	for _, F := range fs {
		encap.MatApply(dst, Δt, o.Qdr.Q, F, false)
	}
	for m := 0; m < len(dst); m++ {
		if o.TauC != nil {
			dst[m].Axpy(1, o.TauC[m])
		}
		dst[m].Axpy(-1, o.U[m])
	}
}

// residualNorm0 returns the maximum norm of the residual over all nodes
func (o *EncapSweeper) residualNorm0(Δt float64, fs ...[]encap.Encapsulation) (nrm float64) {
	o.residual(Δt, o.res, fs...)
	for m := 0; m < len(o.res); m++ {
		if v := o.res[m].Norm0(); v > nrm {
			nrm = v
		}
	}
	return
}

// converged applies the absolute and relative tolerance checks to a residual norm
func (o *EncapSweeper) converged(resnorm float64) bool {
	if o.AbsTol > 0 && resnorm < o.AbsTol {
		return true
	}
	if o.RelTol > 0 && resnorm < o.RelTol*o.UStart.Norm0() {
		return true
	}
	return false
}

// sintNodeToNode computes the node-to-node integrals of the given (saved)
// right-hand side slices:
//
//	dst[m] = Δt * sum_j S[m][j]*F[j]   for m > 0
//	dst[0] = Δt * sum_j Q[0][j]*F[j]   when the left endpoint is not a node
//
// dst[0] is the integral from the left endpoint to the first node and is zero
// when the first node sits on the left endpoint
func (o *EncapSweeper) sintNodeToNode(Δt float64, dst []encap.Encapsulation, fs ...[]encap.Encapsulation) {
	for m := 0; m < len(dst); m++ {
		dst[m].Zero()
	}
	for _, F := range fs {
		encap.MatApply(dst, Δt, o.Qdr.S, F, false)
	}
	if !o.Qdr.LeftIsNode {
		for _, F := range fs {
			for j := 0; j < len(F); j++ {
				dst[0].Axpy(Δt*o.Qdr.Q[0][j], F[j])
			}
		}
	}
}

// endState sets the end state: a copy of the last node when the right
// endpoint is a node; otherwise one full-interval integration of the given
// (current) right-hand side values
func (o *EncapSweeper) endState(Δt float64, fs ...[]encap.Encapsulation) {
	if o.Qdr.RightIsNode {
		o.UEnd.Copy(o.U[len(o.U)-1])
		return
	}
	o.UEnd.Copy(o.UStart)
	for _, F := range fs {
		for j := 0; j < len(F); j++ {
			o.UEnd.Axpy(Δt*o.Qdr.W[j], F[j])
		}
	}
}
