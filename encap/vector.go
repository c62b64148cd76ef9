// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encap

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Vector is a dense Encapsulation holding one value per degree of freedom
type Vector struct {
	V []float64
}

// NewVector returns a zeroed Vector with n components
func NewVector(n int) *Vector {
	return &Vector{V: make([]float64, n)}
}

// Zero sets all components to zero
func (o *Vector) Zero() {
	la.VecFill(o.V, 0)
}

// Copy sets this vector equal to x
func (o *Vector) Copy(x Encapsulation) {
	copy(o.V, vec(x).V)
}

// Axpy adds a*x to this vector
func (o *Vector) Axpy(a float64, x Encapsulation) {
	la.VecAdd(o.V, a, vec(x).V)
}

// Norm0 returns the maximum absolute component
func (o *Vector) Norm0() (nrm float64) {
	for _, v := range o.V {
		nrm = math.Max(nrm, math.Abs(v))
	}
	return
}

// Ndofs returns the number of components
func (o *Vector) Ndofs() int {
	return len(o.V)
}

// Pack serialises the components into buf
func (o *Vector) Pack(buf []float64) {
	copy(buf, o.V)
}

// Unpack reads the components back from buf
func (o *Vector) Unpack(buf []float64) {
	copy(o.V, buf)
}

// vec casts an Encapsulation to a Vector
func vec(x Encapsulation) *Vector {
	v, ok := x.(*Vector)
	if !ok {
		chk.Panic("encapsulation must be a Vector. %T is invalid", x)
	}
	return v
}

// VectorFactory creates Vector encapsulations of a fixed size
type VectorFactory struct {
	N int // number of degrees of freedom
}

// Create returns a new zeroed Vector
func (o *VectorFactory) Create() Encapsulation {
	return NewVector(o.N)
}

// Ndofs returns the number of packed values
func (o *VectorFactory) Ndofs() int {
	return o.N
}
