// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package encap implements abstract containers for the solution state at one quadrature node
package encap

// Encapsulation is the state of the ODE at one quadrature node. The framework
// never inspects the underlying data beyond these operations; problem-specific
// layouts (dense vectors, particle clouds, etc.) implement this interface.
type Encapsulation interface {

	// Zero sets all data to zero
	Zero()

	// Copy sets this object equal to x
	Copy(x Encapsulation)

	// Axpy adds a*x to this object
	Axpy(a float64, x Encapsulation)

	// Norm0 returns the maximum absolute component
	Norm0() float64

	// Ndofs returns the number of packed values
	Ndofs() int

	// Pack serialises the data into buf; len(buf) must be Ndofs()
	Pack(buf []float64)

	// Unpack reads the data back from buf
	Unpack(buf []float64)
}

// Factory allocates zeroed Encapsulations of a fixed size/shape
type Factory interface {
	Create() Encapsulation
	Ndofs() int
}

// MatApply computes dst[n] += a * sum_m M[n][m]*src[m], over-writing dst with
// zeros first if zero is true. M has dimensions len(dst) by len(src).
func MatApply(dst []Encapsulation, a float64, M [][]float64, src []Encapsulation, zero bool) {
	if zero {
		for n := 0; n < len(dst); n++ {
			dst[n].Zero()
		}
	}
	for n := 0; n < len(dst); n++ {
		for m := 0; m < len(src); m++ {
			dst[n].Axpy(a*M[n][m], src[m])
		}
	}
}
