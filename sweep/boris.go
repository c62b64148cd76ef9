// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweep

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/cpmech/gosdc/encap"
)

// BorisProblem defines the electric and magnetic fields acting on a particle
// cloud together with its energy
type BorisProblem interface {

	// EForce computes the per-particle electric force (acceleration) at time t
	EForce(f []float64, c *encap.Cloud, t float64)

	// BFieldVecs computes the per-particle magnetic field vectors at time t
	BFieldVecs(b []float64, c *encap.Cloud, t float64)

	// BVec returns the constant external magnetic field vector (length 3)
	// entering the Boris rotation
	BVec() []float64

	// Energy returns the total (kinetic plus potential) energy of the cloud
	Energy(c *encap.Cloud, t float64) float64
}

// Boris is the second-order sweeper for particle dynamics: positions are
// updated explicitly through the iterated-integral matrices and velocities
// semi-implicitly through Boris' rotation method
type Boris struct {
	EncapSweeper

	// input
	Prob BorisProblem

	// state: forces and magnetic field vectors per node; flat [np*3] components
	Forces      [][]float64
	SavedForces [][]float64
	Bvecs       [][]float64
	SavedBvecs  [][]float64

	// FAS corrections for the velocity (q) and position (qq) equations
	TauQ  [][]float64
	TauQQ [][]float64

	// energy bookkeeping
	InitialEnergy float64 // energy at the initial condition
	Energy        float64 // energy after the last sweep
	Drift         float64 // energy drift relative to the initial energy

	// derived: auxiliary node matrices
	st [][]float64 // trapezoidal node-to-node weights
	sx [][]float64 // node-to-node weights for the position update

	// workspace
	sint    [][]float64 // node-to-node S integrals
	ssint   [][]float64 // node-to-node SS integrals
	rhsNew  [][]float64 // current total force (E + v x B) per node
	rhsOld  [][]float64 // previous total force per node
	scratch []float64

	hasEnergy bool
}

// NewBoris returns a new Boris sweeper. Setup must be called before use
func NewBoris(es EncapSweeper, prob BorisProblem) *Boris {
	return &Boris{EncapSweeper: es, Prob: prob}
}

// Setup allocates node storage and computes the auxiliary matrices
func (o *Boris) Setup(hasCoarser bool) (err error) {
	if err = o.allocate(hasCoarser); err != nil {
		return
	}
	if !o.Qdr.LeftIsNode || !o.Qdr.RightIsNode {
		return chk.Err("Boris sweeper requires quadratures with both endpoints as nodes. %q is invalid", o.Qdr.Kind)
	}
	nn := o.Qdr.NumNodes()
	np := o.cloud(o.UStart).Np

	o.Forces = make([][]float64, nn)
	o.SavedForces = make([][]float64, nn)
	o.Bvecs = make([][]float64, nn)
	o.SavedBvecs = make([][]float64, nn)
	o.sint = make([][]float64, nn)
	o.ssint = make([][]float64, nn)
	o.rhsNew = make([][]float64, nn)
	o.rhsOld = make([][]float64, nn)
	for m := 0; m < nn; m++ {
		o.Forces[m] = encap.CloudComp(np)
		o.SavedForces[m] = encap.CloudComp(np)
		o.Bvecs[m] = encap.CloudComp(np)
		o.SavedBvecs[m] = encap.CloudComp(np)
		o.sint[m] = encap.CloudComp(np)
		o.ssint[m] = encap.CloudComp(np)
		o.rhsNew[m] = encap.CloudComp(np)
		o.rhsOld[m] = encap.CloudComp(np)
	}
	if hasCoarser {
		o.TauQ = make([][]float64, nn)
		o.TauQQ = make([][]float64, nn)
		for m := 0; m < nn; m++ {
			o.TauQ[m] = encap.CloudComp(np)
			o.TauQQ[m] = encap.CloudComp(np)
		}
	}
	o.scratch = encap.CloudComp(np)

	// Q_E is strictly lower triangular with the node spacings of the column
	// index; Q_I is lower triangular with zero first row/column and the node
	// spacings of the column index
	qe := la.MatAlloc(nn, nn)
	qi := la.MatAlloc(nn, nn)
	for i := 0; i < nn; i++ {
		for j := 0; j < nn; j++ {
			if j < i {
				qe[i][j] = o.ΔT[j+1]
			}
			if j > 0 && j <= i {
				qi[i][j] = o.ΔT[j]
			}
		}
	}

	// Q_T = (Q_E + Q_I)/2 and Q_x = Q_E*Q_T + (Q_E o Q_E)/2
	qt := la.MatAlloc(nn, nn)
	for i := 0; i < nn; i++ {
		for j := 0; j < nn; j++ {
			qt[i][j] = 0.5 * (qe[i][j] + qi[i][j])
		}
	}
	qx := la.MatAlloc(nn, nn)
	la.MatMul(qx, 1, qe, qt)
	for i := 0; i < nn; i++ {
		for j := 0; j < nn; j++ {
			qx[i][j] += 0.5 * qe[i][j] * qe[i][j]
		}
	}

	// node-to-node forms
	o.sx = la.MatAlloc(nn, nn)
	o.st = la.MatAlloc(nn, nn)
	for i := 1; i < nn; i++ {
		for j := 0; j < nn; j++ {
			o.sx[i][j] = qx[i][j] - qx[i-1][j]
			o.st[i][j] = qt[i][j] - qt[i-1][j]
		}
	}
	return
}

// cloud casts an Encapsulation to a Cloud
func (o *Boris) cloud(u encap.Encapsulation) *encap.Cloud {
	c, ok := u.(*encap.Cloud)
	if !ok {
		chk.Panic("Boris sweeper requires Cloud encapsulations. %T is invalid", u)
	}
	return c
}

// buildRHS computes the total force (electric force plus v x B) at node m,
// from the previous iteration if saved is true
func (o *Boris) buildRHS(dst []float64, m int, saved bool) {
	if saved {
		encap.CrossProd(dst, o.cloud(o.SavedU[m]).V, o.SavedBvecs[m])
		la.VecAdd(dst, 1, o.SavedForces[m])
		return
	}
	encap.CrossProd(dst, o.cloud(o.U[m]).V, o.Bvecs[m])
	la.VecAdd(dst, 1, o.Forces[m])
}

// Evaluate recomputes forces and magnetic field vectors at node m
func (o *Boris) Evaluate(t, Δt float64, m int) {
	tm := t + Δt*o.Qdr.T[m]
	c := o.cloud(o.U[m])
	o.Prob.EForce(o.Forces[m], c, tm)
	o.Prob.BFieldVecs(o.Bvecs[m], c, tm)
}

// SetInitialEnergy captures the energy of the start state as the reference
// for drift computations
func (o *Boris) SetInitialEnergy(t float64) {
	o.InitialEnergy = o.Prob.Energy(o.cloud(o.UStart), t)
	o.hasEnergy = true
}

// Predict spreads the start state over all nodes and evaluates forces everywhere
func (o *Boris) Predict(t, Δt float64, first bool) (err error) {
	o.checkSetup()
	if first && !o.hasEnergy {
		o.SetInitialEnergy(t)
	}
	o.Spread()
	for m := 0; m < len(o.U); m++ {
		o.Evaluate(t, Δt, m)
	}
	o.UEnd.Copy(o.U[len(o.U)-1])
	o.Save()
	return
}

// Sweep performs one second-order SDC iteration: position updates first,
// force re-evaluation at the new positions, then the semi-implicit velocity
// updates via Boris' rotation
func (o *Boris) Sweep(t, Δt float64) (err error) {
	o.checkSetup()
	nn := len(o.U)

	// total forces of the previous iteration
	for m := 0; m < nn; m++ {
		o.buildRHS(o.rhsOld[m], m, true)
		o.buildRHS(o.rhsNew[m], m, false)
	}

	// node-to-node integrals of the previous iteration, with the FAS
	// corrections folded in as node-to-node differences
	for m := 1; m < nn; m++ {
		la.VecFill(o.sint[m], 0)
		la.VecFill(o.ssint[m], 0)
		for l := 0; l < nn; l++ {
			la.VecAdd(o.sint[m], Δt*o.Qdr.S[m][l], o.rhsOld[l])
			la.VecAdd(o.ssint[m], Δt*Δt*o.Qdr.SS[m][l], o.rhsOld[l])
		}
		if o.TauQ != nil {
			la.VecAdd(o.sint[m], 1, o.TauQ[m])
			la.VecAdd(o.sint[m], -1, o.TauQ[m-1])
			la.VecAdd(o.ssint[m], 1, o.TauQQ[m])
			la.VecAdd(o.ssint[m], -1, o.TauQQ[m-1])
		}
	}

	o.U[0].Copy(o.UStart)
	o.Evaluate(t, Δt, 0)
	o.buildRHS(o.rhsNew[0], 0, false)

	vstart := o.cloud(o.UStart).V
	for m := 0; m < nn-1; m++ {
		ds := Δt * o.ΔT[m+1]
		next := o.cloud(o.U[m+1])

		// position update (explicit)
		copy(next.P, o.cloud(o.U[m]).P)
		la.VecAdd(next.P, ds, vstart)
		for l := 0; l <= m; l++ {
			la.VecAdd(next.P, Δt*Δt*o.sx[m+1][l], o.rhsNew[l])
			la.VecAdd(next.P, -Δt*Δt*o.sx[m+1][l], o.rhsOld[l])
		}
		la.VecAdd(next.P, 1, o.ssint[m+1])

		// electric force at the new position
		o.Prob.EForce(o.Forces[m+1], next, t+Δt*o.Qdr.T[m+1])

		// velocity update (semi-implicit, Boris' rotation)
		ck := o.scratch
		la.VecFill(ck, 0)
		la.VecAdd(ck, -0.5*ds, o.rhsOld[m+1])
		la.VecAdd(ck, -0.5*ds, o.rhsOld[m])
		la.VecAdd(ck, 1, o.sint[m+1])
		o.borisSolve(m, ds, ck)

		o.buildRHS(o.rhsNew[m+1], m+1, false)
	}

	o.UEnd.Copy(o.U[nn-1])

	// energy bookkeeping
	if o.hasEnergy {
		o.Energy = o.Prob.Energy(o.cloud(o.UEnd), t+Δt)
		o.Drift = o.Energy - o.InitialEnergy
	}

	o.Save()
	return
}

// borisSolve rotates the velocities from node m to node m+1: half-kick with
// the mean electric force, rotation about the magnetic field, half-kick
func (o *Boris) borisSolve(m int, ds float64, ck []float64) {
	cm := o.cloud(o.U[m])
	cnext := o.cloud(o.U[m+1])
	np := cm.Np
	bvec := o.Prob.BVec()

	var t, s, vm, vp, tmp [3]float64
	for i := 0; i < np; i++ {
		j := i * encap.CLOUDDIM
		beta := cm.Qc[i] / cm.Ms[i] / 2.0 * ds

		// v- : half-kick with the mean electric force and half of the c_k term
		for d := 0; d < 3; d++ {
			emean := 0.5 * (o.Forces[m][j+d] + o.Forces[m+1][j+d])
			vm[d] = cm.V[j+d] + beta*emean + 0.5*ck[j+d]
		}

		// rotation: t = beta*B; v' = v- + v- x t; s = 2t/(1+|t|^2); v+ = v- + v' x s
		tsq := 0.0
		for d := 0; d < 3; d++ {
			t[d] = beta * bvec[d]
			tsq += t[d] * t[d]
		}
		cross3(&tmp, vm, t)
		var vprime [3]float64
		for d := 0; d < 3; d++ {
			vprime[d] = vm[d] + tmp[d]
			s[d] = 2.0 * t[d] / (1.0 + tsq)
		}
		cross3(&tmp, vprime, s)
		for d := 0; d < 3; d++ {
			vp[d] = vm[d] + tmp[d]
		}

		// final half-kick
		for d := 0; d < 3; d++ {
			emean := 0.5 * (o.Forces[m][j+d] + o.Forces[m+1][j+d])
			cnext.V[j+d] = vp[d] + beta*emean + 0.5*ck[j+d]
		}
	}
}

// cross3 computes w = u x v for single 3-vectors
func cross3(w *[3]float64, u, v [3]float64) {
	w[0] = u[1]*v[2] - u[2]*v[1]
	w[1] = u[2]*v[0] - u[0]*v[2]
	w[2] = u[0]*v[1] - u[1]*v[0]
}

// IntegrateQQ computes the 0-to-node integrals of the current total force
// for both the velocity (Q) and position (QQ) equations
func (o *Boris) IntegrateQQ(Δt float64, dstQ, dstQQ [][]float64) {
	nn := len(o.U)
	for m := 0; m < nn; m++ {
		o.buildRHS(o.rhsNew[m], m, false)
	}
	for m := 0; m < nn; m++ {
		la.VecFill(dstQ[m], 0)
		la.VecFill(dstQQ[m], 0)
		for l := 0; l < nn; l++ {
			la.VecAdd(dstQ[m], Δt*o.Qdr.Q[m][l], o.rhsNew[l])
			la.VecAdd(dstQQ[m], Δt*Δt*o.Qdr.QQ[m][l], o.rhsNew[l])
		}
	}
}

// Integrate computes the 0-to-node integrals of the velocity equation packed
// into Cloud encapsulations: positions carry the QQ integral and velocities
// the Q integral
func (o *Boris) Integrate(Δt float64, dst []encap.Encapsulation) {
	nn := len(o.U)
	dstQ := make([][]float64, nn)
	dstQQ := make([][]float64, nn)
	for m := 0; m < nn; m++ {
		c := o.cloud(dst[m])
		dstQ[m] = c.V
		dstQQ[m] = c.P
	}
	o.IntegrateQQ(Δt, dstQ, dstQQ)
}

// Residual computes the collocation residual at each node: positions against
// the integrated velocities and velocities against the integrated forces. The
// FAS corrections TauQ and TauQQ are not added
func (o *Boris) Residual(Δt float64, dst []encap.Encapsulation) {
	nn := len(o.U)
	for m := 0; m < nn; m++ {
		o.buildRHS(o.rhsNew[m], m, false)
	}
	cs := o.cloud(o.UStart)
	for m := 0; m < nn; m++ {
		r := o.cloud(dst[m])
		r.Zero()
		for l := 0; l < nn; l++ {
			la.VecAdd(r.P, Δt*o.Qdr.Q[m][l], o.cloud(o.U[l]).V)
			la.VecAdd(r.V, Δt*o.Qdr.Q[m][l], o.rhsNew[l])
		}
		la.VecAdd(r.P, 1, cs.P)
		la.VecAdd(r.P, -1, o.cloud(o.U[m]).P)
		la.VecAdd(r.V, 1, cs.V)
		la.VecAdd(r.V, -1, o.cloud(o.U[m]).V)
	}
}

// ResidualNorm0 returns the maximum norm of the residual over all nodes
func (o *Boris) ResidualNorm0(Δt float64) (nrm float64) {
	o.Residual(Δt, o.res)
	for m := 0; m < len(o.res); m++ {
		if v := o.res[m].Norm0(); v > nrm {
			nrm = v
		}
	}
	return
}

// Converged tells whether the residual satisfies the configured tolerances
func (o *Boris) Converged(Δt float64) bool {
	return o.converged(o.ResidualNorm0(Δt))
}

// Save snapshots particles, forces and magnetic field vectors for the next sweep
func (o *Boris) Save() {
	o.saveU()
	for m := 0; m < len(o.U); m++ {
		copy(o.SavedForces[m], o.Forces[m])
		copy(o.SavedBvecs[m], o.Bvecs[m])
	}
}

// Advance moves the end state into the start state and shifts the last-node
// force data into node 0 for the next step
func (o *Boris) Advance() {
	o.checkSetup()
	o.UStart.Copy(o.UEnd)
	nn := len(o.U)
	copy(o.Forces[0], o.Forces[nn-1])
	copy(o.Bvecs[0], o.Bvecs[nn-1])
}

// SetTauQQ copies the FAS correction pair at node m
func (o *Boris) SetTauQQ(m int, tauq, tauqq []float64) {
	if o.TauQ == nil {
		chk.Panic("cannot set tau correction on a level without coarser levels")
	}
	copy(o.TauQ[m], tauq)
	copy(o.TauQQ[m], tauqq)
}
