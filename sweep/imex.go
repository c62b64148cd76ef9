// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweep

import (
	"github.com/cpmech/gosdc/encap"
)

// ImexProblem defines a right-hand side split into an explicitly treated
// (non-stiff) part F1 and an implicitly treated (stiff) part F2
type ImexProblem interface {

	// F1 evaluates the explicit part at (u, t)
	F1(f encap.Encapsulation, u encap.Encapsulation, t float64)

	// F2 evaluates the implicit part at (u, t)
	F2(f encap.Encapsulation, u encap.Encapsulation, t float64)

	// SolveF2 solves u - Δt*f2(u) = rhs for u and sets f to f2(u).
	// Non-convergence of an iterative solver is reported via err; the
	// returned state is then the best estimate and the sweep continues
	SolveF2(f encap.Encapsulation, u encap.Encapsulation, t, Δt float64, rhs encap.Encapsulation) (err error)
}

// Imex is the implicit-explicit sweeper: per substep, F1 is advanced with an
// explicit Euler-like update and F2 with an implicit one, both corrected by
// the spectral integral of the previous iteration
type Imex struct {
	EncapSweeper

	// input
	Prob ImexProblem // the split right-hand side

	// state
	F1v     []encap.Encapsulation // explicit part at each node
	F2v     []encap.Encapsulation // implicit part at each node
	SavedF1 []encap.Encapsulation // explicit part from the previous sweep
	SavedF2 []encap.Encapsulation // implicit part from the previous sweep

	// workspace
	rhs  encap.Encapsulation
	sint []encap.Encapsulation // node-to-node integrals of the previous iteration
}

// NewImex returns a new IMEX sweeper. Setup must be called before use
func NewImex(es EncapSweeper, prob ImexProblem) *Imex {
	return &Imex{EncapSweeper: es, Prob: prob}
}

// Setup allocates node storage and workspaces
func (o *Imex) Setup(hasCoarser bool) (err error) {
	if err = o.allocate(hasCoarser); err != nil {
		return
	}
	n := o.Qdr.NumNodes()
	o.F1v = make([]encap.Encapsulation, n)
	o.F2v = make([]encap.Encapsulation, n)
	o.SavedF1 = make([]encap.Encapsulation, n)
	o.SavedF2 = make([]encap.Encapsulation, n)
	o.sint = make([]encap.Encapsulation, n)
	for m := 0; m < n; m++ {
		o.F1v[m] = o.Fac.Create()
		o.F2v[m] = o.Fac.Create()
		o.SavedF1[m] = o.Fac.Create()
		o.SavedF2[m] = o.Fac.Create()
		o.sint[m] = o.Fac.Create()
	}
	o.rhs = o.Fac.Create()
	return
}

// Evaluate recomputes F1 and F2 at node m from the state at node m
func (o *Imex) Evaluate(t, Δt float64, m int) {
	tm := t + Δt*o.Qdr.T[m]
	o.Prob.F1(o.F1v[m], o.U[m], tm)
	o.Prob.F2(o.F2v[m], o.U[m], tm)
}

// Predict spreads the start state over all nodes and evaluates the
// right-hand side everywhere
func (o *Imex) Predict(t, Δt float64, first bool) (err error) {
	o.checkSetup()
	o.Spread()
	for m := 0; m < len(o.U); m++ {
		o.Evaluate(t, Δt, m)
	}
	o.endState(Δt, o.F1v, o.F2v)
	o.Save()
	return
}

// Sweep performs one IMEX SDC iteration. On entry the previous iteration is
// in the saved slots; node states and right-hand sides are updated in place
func (o *Imex) Sweep(t, Δt float64) (err error) {
	o.checkSetup()
	nn := len(o.U)

	// node-to-node integrals of the previous iteration
	o.sintNodeToNode(Δt, o.sint, o.SavedF1, o.SavedF2)

	// first substep: from the start state to the first node
	if o.Qdr.LeftIsNode {
		o.U[0].Copy(o.UStart)
		o.Evaluate(t, Δt, 0)
	} else {
		// the explicit correction at the start state cancels because the
		// start state does not change during the iteration
		ds := Δt * o.ΔT[0]
		o.rhs.Copy(o.UStart)
		o.rhs.Axpy(-ds, o.SavedF2[0])
		o.rhs.Axpy(1, o.sint[0])
		if o.TauC != nil {
			o.rhs.Axpy(1, o.TauC[0])
		}
		err = o.Prob.SolveF2(o.F2v[0], o.U[0], t+Δt*o.Qdr.T[0], ds, o.rhs)
		if err != nil {
			return
		}
		o.Prob.F1(o.F1v[0], o.U[0], t+Δt*o.Qdr.T[0])
	}

	// remaining substeps: node m to node m+1
	for m := 0; m < nn-1; m++ {
		ds := Δt * o.ΔT[m+1]
		tnext := t + Δt*o.Qdr.T[m+1]
		o.rhs.Copy(o.U[m])
		o.rhs.Axpy(ds, o.F1v[m])
		o.rhs.Axpy(-ds, o.SavedF1[m])
		o.rhs.Axpy(-ds, o.SavedF2[m+1])
		o.rhs.Axpy(1, o.sint[m+1])
		if o.TauC != nil {
			o.rhs.Axpy(1, o.TauC[m+1])
			o.rhs.Axpy(-1, o.TauC[m])
		}
		err = o.Prob.SolveF2(o.F2v[m+1], o.U[m+1], tnext, ds, o.rhs)
		if err != nil {
			return
		}
		o.Prob.F1(o.F1v[m+1], o.U[m+1], tnext)
	}

	o.endState(Δt, o.F1v, o.F2v)
	o.Save()
	return
}

// Integrate computes the 0-to-node integrals of the current right-hand side
func (o *Imex) Integrate(Δt float64, dst []encap.Encapsulation) {
	o.integrate(Δt, dst, o.F1v, o.F2v)
}

// Residual computes the collocation residual at each node
func (o *Imex) Residual(Δt float64, dst []encap.Encapsulation) {
	o.residual(Δt, dst, o.F1v, o.F2v)
}

// ResidualNorm0 returns the maximum norm of the residual over all nodes
func (o *Imex) ResidualNorm0(Δt float64) float64 {
	return o.residualNorm0(Δt, o.F1v, o.F2v)
}

// Converged tells whether the residual satisfies the configured tolerances
func (o *Imex) Converged(Δt float64) bool {
	return o.converged(o.ResidualNorm0(Δt))
}

// Save snapshots node states and right-hand sides for the next sweep
func (o *Imex) Save() {
	o.saveU()
	for m := 0; m < len(o.U); m++ {
		o.SavedF1[m].Copy(o.F1v[m])
		o.SavedF2[m].Copy(o.F2v[m])
	}
}

// Advance moves the end state into the start state and, when both endpoints
// are nodes, shifts the last-node right-hand side data into node 0 for the
// next step
func (o *Imex) Advance() {
	o.checkSetup()
	o.UStart.Copy(o.UEnd)
	if o.Qdr.LeftIsNode && o.Qdr.RightIsNode {
		nn := len(o.U)
		o.F1v[0].Copy(o.F1v[nn-1])
		o.F2v[0].Copy(o.F2v[nn-1])
	}
}
