// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package prob implements right-hand sides of example initial value problems
package prob

import (
	"math"

	"github.com/cpmech/gosdc/encap"
)

// Linear is the scalar test problem u' = lambda*u with u(0) = u0. The
// right-hand side is treated fully implicitly; the implicit solve is exact.
// Linear satisfies both the implicit and the IMEX sweeper contracts (the
// explicit part is zero)
type Linear struct {
	Lambda float64 // decay rate
	U0     float64 // initial condition
}

// F evaluates the right-hand side
func (o *Linear) F(f encap.Encapsulation, u encap.Encapsulation, t float64) {
	f.Zero()
	f.Axpy(o.Lambda, u)
}

// Solve solves u - Δt*lambda*u = rhs exactly
func (o *Linear) Solve(f encap.Encapsulation, u encap.Encapsulation, t, Δt float64, rhs encap.Encapsulation) (err error) {
	u.Zero()
	u.Axpy(1.0/(1.0-Δt*o.Lambda), rhs)
	o.F(f, u, t)
	return
}

// F1 evaluates the (zero) explicit part
func (o *Linear) F1(f encap.Encapsulation, u encap.Encapsulation, t float64) {
	f.Zero()
}

// F2 evaluates the implicit part
func (o *Linear) F2(f encap.Encapsulation, u encap.Encapsulation, t float64) {
	o.F(f, u, t)
}

// SolveF2 solves the implicit part exactly
func (o *Linear) SolveF2(f encap.Encapsulation, u encap.Encapsulation, t, Δt float64, rhs encap.Encapsulation) (err error) {
	return o.Solve(f, u, t, Δt, rhs)
}

// Exact computes the analytical solution u0*exp(lambda*t)
func (o *Linear) Exact(u encap.Encapsulation, t float64) {
	v := u.(*encap.Vector)
	for i := range v.V {
		v.V[i] = o.U0 * math.Exp(o.Lambda*t)
	}
}
