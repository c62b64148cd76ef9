// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweep

import (
	"github.com/cpmech/gosdc/encap"
)

// ImplicitProblem defines a fully implicitly treated right-hand side
type ImplicitProblem interface {

	// F evaluates the right-hand side at (u, t)
	F(f encap.Encapsulation, u encap.Encapsulation, t float64)

	// Solve solves u - Δt*f(u) = rhs for u and sets f to f(u)
	Solve(f encap.Encapsulation, u encap.Encapsulation, t, Δt float64, rhs encap.Encapsulation) (err error)
}

// Implicit is the implicit-only sweeper: per substep, the whole right-hand
// side is advanced with a backward Euler-like update corrected by the
// spectral integral of the previous iteration
type Implicit struct {
	EncapSweeper

	// input
	Prob ImplicitProblem

	// state
	Fv     []encap.Encapsulation // right-hand side at each node
	SavedF []encap.Encapsulation // right-hand side from the previous sweep

	// workspace
	rhs  encap.Encapsulation
	sint []encap.Encapsulation
}

// NewImplicit returns a new implicit sweeper. Setup must be called before use
func NewImplicit(es EncapSweeper, prob ImplicitProblem) *Implicit {
	return &Implicit{EncapSweeper: es, Prob: prob}
}

// Setup allocates node storage and workspaces
func (o *Implicit) Setup(hasCoarser bool) (err error) {
	if err = o.allocate(hasCoarser); err != nil {
		return
	}
	n := o.Qdr.NumNodes()
	o.Fv = make([]encap.Encapsulation, n)
	o.SavedF = make([]encap.Encapsulation, n)
	o.sint = make([]encap.Encapsulation, n)
	for m := 0; m < n; m++ {
		o.Fv[m] = o.Fac.Create()
		o.SavedF[m] = o.Fac.Create()
		o.sint[m] = o.Fac.Create()
	}
	o.rhs = o.Fac.Create()
	return
}

// Evaluate recomputes the right-hand side at node m
func (o *Implicit) Evaluate(t, Δt float64, m int) {
	o.Prob.F(o.Fv[m], o.U[m], t+Δt*o.Qdr.T[m])
}

// Predict spreads the start state over all nodes and evaluates the
// right-hand side everywhere
func (o *Implicit) Predict(t, Δt float64, first bool) (err error) {
	o.checkSetup()
	o.Spread()
	for m := 0; m < len(o.U); m++ {
		o.Evaluate(t, Δt, m)
	}
	o.endState(Δt, o.Fv)
	o.Save()
	return
}

// Sweep performs one implicit SDC iteration
func (o *Implicit) Sweep(t, Δt float64) (err error) {
	o.checkSetup()
	nn := len(o.U)

	// node-to-node integrals of the previous iteration
	o.sintNodeToNode(Δt, o.sint, o.SavedF)

	// first substep: from the start state to the first node
	if o.Qdr.LeftIsNode {
		o.U[0].Copy(o.UStart)
		o.Evaluate(t, Δt, 0)
	} else {
		ds := Δt * o.ΔT[0]
		o.rhs.Copy(o.UStart)
		o.rhs.Axpy(-ds, o.SavedF[0])
		o.rhs.Axpy(1, o.sint[0])
		if o.TauC != nil {
			o.rhs.Axpy(1, o.TauC[0])
		}
		err = o.Prob.Solve(o.Fv[0], o.U[0], t+Δt*o.Qdr.T[0], ds, o.rhs)
		if err != nil {
			return
		}
	}

	// remaining substeps: node m to node m+1
	for m := 0; m < nn-1; m++ {
		ds := Δt * o.ΔT[m+1]
		o.rhs.Copy(o.U[m])
		o.rhs.Axpy(-ds, o.SavedF[m+1])
		o.rhs.Axpy(1, o.sint[m+1])
		if o.TauC != nil {
			o.rhs.Axpy(1, o.TauC[m+1])
			o.rhs.Axpy(-1, o.TauC[m])
		}
		err = o.Prob.Solve(o.Fv[m+1], o.U[m+1], t+Δt*o.Qdr.T[m+1], ds, o.rhs)
		if err != nil {
			return
		}
	}

	o.endState(Δt, o.Fv)
	o.Save()
	return
}

// Integrate computes the 0-to-node integrals of the current right-hand side
func (o *Implicit) Integrate(Δt float64, dst []encap.Encapsulation) {
	o.integrate(Δt, dst, o.Fv)
}

// Residual computes the collocation residual at each node
func (o *Implicit) Residual(Δt float64, dst []encap.Encapsulation) {
	o.residual(Δt, dst, o.Fv)
}

// ResidualNorm0 returns the maximum norm of the residual over all nodes
func (o *Implicit) ResidualNorm0(Δt float64) float64 {
	return o.residualNorm0(Δt, o.Fv)
}

// Converged tells whether the residual satisfies the configured tolerances
func (o *Implicit) Converged(Δt float64) bool {
	return o.converged(o.ResidualNorm0(Δt))
}

// Save snapshots node states and right-hand sides for the next sweep
func (o *Implicit) Save() {
	o.saveU()
	for m := 0; m < len(o.U); m++ {
		o.SavedF[m].Copy(o.Fv[m])
	}
}

// Advance moves the end state into the start state and, when both endpoints
// are nodes, shifts the last-node right-hand side data into node 0 for the
// next step
func (o *Implicit) Advance() {
	o.checkSetup()
	o.UStart.Copy(o.UEnd)
	if o.Qdr.LeftIsNode && o.Qdr.RightIsNode {
		o.Fv[0].Copy(o.Fv[len(o.U)-1])
	}
}
