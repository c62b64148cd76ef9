// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prob

import (
	"math"

	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gosdc/encap"
)

// VanderPol is the van der Pol oscillator
//
//	x' = y
//	y' = nu*(1 - x^2)*y - x
//
// treated fully implicitly. The implicit solve runs Newton's method with an
// analytically inverted 2x2 Jacobian. An analytical solution exists only for
// nu = 0 (the linear oscillator)
type VanderPol struct {

	// input
	Nu float64 // nonlinearity parameter
	X0 float64 // initial position
	Y0 float64 // initial velocity

	// Newton control
	NewtonMaxIt int     // maximum number of Newton iterations
	NewtonTol   float64 // relative tolerance

	// statistics
	NfEval  int // number of right-hand side evaluations
	NsolveF int // number of implicit solves
	NnwtIt  int // total number of Newton iterations
}

// NewVanderPol returns a new van der Pol problem
func NewVanderPol(nu, x0, y0 float64) *VanderPol {
	return &VanderPol{Nu: nu, X0: x0, Y0: y0, NewtonMaxIt: 50, NewtonTol: 1e-12}
}

// F evaluates the right-hand side
func (o *VanderPol) F(f encap.Encapsulation, u encap.Encapsulation, t float64) {
	q := u.(*encap.Vector).V
	g := f.(*encap.Vector).V
	g[0] = q[1]
	g[1] = o.Nu*(1.0-q[0]*q[0])*q[1] - q[0]
	o.NfEval++
}

// Solve solves q - Δt*f(q) = rhs with Newton's method and sets f to f(q).
// When the iterations do not converge within NewtonMaxIt, a warning is
// printed and the best estimate is kept
func (o *VanderPol) Solve(f encap.Encapsulation, u encap.Encapsulation, t, Δt float64, rhs encap.Encapsulation) (err error) {
	q := u.(*encap.Vector).V
	g := f.(*encap.Vector).V
	r := rhs.(*encap.Vector).V
	dt := Δt

	// for small dt the system is close to the identity; rhs is a good start
	q[0] = r[0]
	q[1] = r[1]

	// newton iterations with the analytically inverted Jacobian
	residual := o.NewtonTol + 1.0
	var it int
	for it = 0; it < o.NewtonMaxIt && residual > o.NewtonTol; it++ {

		// negative of P(q) := q - dt*f(q) - rhs
		f0 := -(q[0] - dt*q[1] - r[0])
		f1 := -(q[1] - dt*(o.Nu*(1.0-q[0]*q[0])*q[1]-q[0]) - r[1])

		// inv(J(q)) = (1/c) * [a dt; b 1]
		a := dt*o.Nu*q[0]*q[0] - dt*o.Nu + 1.0
		b := -2.0*dt*o.Nu*q[0]*q[1] - dt
		c := 2.0*o.Nu*q[0]*q[1]*dt*dt + dt*dt + dt*o.Nu*q[0]*q[0] - dt*o.Nu + 1.0

		// update
		g[0] = (a*f0 + dt*f1) / c
		g[1] = (b*f0 + f1) / c
		q[0] += g[0]
		q[1] += g[1]

		// relative residual from the last update
		residual = math.Max(math.Abs(g[0]), math.Abs(g[1])) / math.Max(math.Abs(q[0]), math.Abs(q[1]))
		o.NnwtIt++
	}
	if residual > o.NewtonTol {
		io.Pfred("vanderpol: Newton did not converge: res = %g after %d iterations\n", residual, it)
	}

	// set f to f(q)
	g[0] = q[1]
	g[1] = o.Nu*(1.0-q[0]*q[0])*q[1] - q[0]
	o.NsolveF++
	return
}

// Exact computes the analytical solution for nu = 0; for other values of nu
// it returns the initial condition
func (o *VanderPol) Exact(u encap.Encapsulation, t float64) {
	q := u.(*encap.Vector).V
	if o.Nu == 0 {
		q[0] = o.Y0*math.Sin(t) + o.X0*math.Cos(t)
		q[1] = -o.X0*math.Sin(t) + o.Y0*math.Cos(t)
		return
	}
	q[0] = o.X0
	q[1] = o.Y0
}
