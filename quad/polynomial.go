// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package quad implements polynomials, quadrature nodes and integration matrices
package quad

import (
	"math/cmplx"
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// constants
const (
	ROOTSNMAX = 100    // maximum number of Durand-Kerner-Weierstrass iterations
	ROOTSTOL  = 1e-24  // sum-of-updates tolerance for root finding
	ROOTSZERO = 1e-12  // roots whose real part is smaller than this in absolute value are snapped to zero
)

// Polynomial holds the coefficients c of c[0] + c[1]*x + ... + c[n]*x**n
type Polynomial struct {
	C []float64 // coefficients; len(C) == order + 1
}

// NewPolynomial returns a zero-filled polynomial of given order
func NewPolynomial(order int) (o *Polynomial) {
	o = new(Polynomial)
	o.C = make([]float64, order+1)
	return
}

// Order returns the order of this polynomial
func (o *Polynomial) Order() int {
	return len(o.C) - 1
}

// Evaluate computes the value of this polynomial at x using Horner's rule
func (o *Polynomial) Evaluate(x float64) (v float64) {
	n := len(o.C) - 1
	v = o.C[n]
	for j := n - 1; j >= 0; j-- {
		v = x*v + o.C[j]
	}
	return
}

// evaluateC computes the value of this polynomial at complex x
func (o *Polynomial) evaluateC(x complex128) (v complex128) {
	n := len(o.C) - 1
	v = complex(o.C[n], 0)
	for j := n - 1; j >= 0; j-- {
		v = x*v + complex(o.C[j], 0)
	}
	return
}

// Differentiate returns the derivative of this polynomial (one order lower)
func (o *Polynomial) Differentiate() (p *Polynomial) {
	p = NewPolynomial(o.Order() - 1)
	for j := 1; j < len(o.C); j++ {
		p.C[j-1] = float64(j) * o.C[j]
	}
	return
}

// Integrate returns the antiderivative of this polynomial with zero constant term
func (o *Polynomial) Integrate() (p *Polynomial) {
	p = NewPolynomial(o.Order() + 1)
	for j := 0; j < len(o.C); j++ {
		p.C[j+1] = o.C[j] / float64(j+1)
	}
	return
}

// Normalize returns this polynomial scaled such that the leading coefficient is one
func (o *Polynomial) Normalize() (p *Polynomial) {
	p = NewPolynomial(o.Order())
	n := len(o.C) - 1
	for j := 0; j < len(o.C); j++ {
		p.C[j] = o.C[j] / o.C[n]
	}
	return
}

// Mul returns the product of this polynomial with another one
func (o *Polynomial) Mul(q *Polynomial) (p *Polynomial) {
	p = NewPolynomial(o.Order() + q.Order())
	for i := 0; i < len(o.C); i++ {
		for j := 0; j < len(q.C); j++ {
			p.C[i+j] += o.C[i] * q.C[j]
		}
	}
	return
}

// Add returns the sum of this polynomial with a*q
func (o *Polynomial) Add(a float64, q *Polynomial) (p *Polynomial) {
	n := imax(o.Order(), q.Order())
	p = NewPolynomial(n)
	for j := 0; j < len(o.C); j++ {
		p.C[j] = o.C[j]
	}
	for j := 0; j < len(q.C); j++ {
		p.C[j] += a * q.C[j]
	}
	return
}

// Roots computes all real parts of the roots of this polynomial using
// Durand-Kerner-Weierstrass iterations on the normalized polynomial.
// Results are sorted in ascending order and values smaller than ROOTSZERO
// are snapped to zero. A warning is printed when the iterations do not
// converge; the best estimate is returned in this case.
func (o *Polynomial) Roots() (roots []float64) {

	// normalized polynomial and initial guess z[k] = (0.4 + 0.9i)**k
	n := o.Order()
	p := o.Normalize()
	z0 := make([]complex128, n)
	z1 := make([]complex128, n)
	for j := 0; j < n; j++ {
		z0[j] = cmplx.Pow(complex(0.4, 0.9), complex(float64(j), 0))
		z1[j] = z0[j]
	}

	// durand-kerner-weierstrass iterations
	converged := false
	for k := 0; k < ROOTSNMAX; k++ {
		for i := 0; i < n; i++ {
			num := p.evaluateC(z0[i])
			den := complex(1, 0)
			for j := 0; j < n; j++ {
				if j == i {
					continue
				}
				den = den * (z0[i] - z0[j])
			}
			z0[i] = z0[i] - num/den
		}
		acc := 0.0
		for j := 0; j < n; j++ {
			acc += cmplx.Abs(z0[j] - z1[j])
		}
		if acc < ROOTSTOL {
			converged = true
			break
		}
		copy(z1, z0)
	}
	if !converged {
		io.Pfred("quad: root finding did not converge after %d iterations\n", ROOTSNMAX)
	}

	// extract real parts
	roots = make([]float64, n)
	for j := 0; j < n; j++ {
		if re := real(z0[j]); re > -ROOTSZERO && re < ROOTSZERO {
			roots[j] = 0
		} else {
			roots[j] = re
		}
	}
	sort.Float64s(roots)
	return
}

// Legendre returns the Legendre polynomial of given order using the
// three-term recurrence (n+1)*P{n+1} = (2n+1)*x*P{n} - n*P{n-1}
func Legendre(order int) (p *Polynomial) {
	if order < 0 {
		chk.Panic("cannot compute Legendre polynomial with negative order = %d", order)
	}
	if order == 0 {
		p = NewPolynomial(0)
		p.C[0] = 1
		return
	}
	if order == 1 {
		p = NewPolynomial(1)
		p.C[1] = 1
		return
	}
	p0 := NewPolynomial(order)
	p1 := NewPolynomial(order)
	p2 := NewPolynomial(order)
	p0.C[0] = 1
	p1.C[1] = 1
	for m := 1; m < order; m++ {
		for j := 1; j < order+1; j++ {
			p2.C[j] = (float64(2*m+1)*p1.C[j-1] - float64(m)*p0.C[j]) / float64(m+1)
		}
		p2.C[0] = -float64(m) * p0.C[0] / float64(m+1)
		for j := 0; j < order+1; j++ {
			p0.C[j] = p1.C[j]
			p1.C[j] = p2.C[j]
		}
	}
	return p2
}

// Lagrange returns the i-th Lagrange basis polynomial through the given
// points; i.e. the polynomial that is one at pts[i] and zero at all other pts
func Lagrange(pts []float64, i int) (p *Polynomial) {
	p = NewPolynomial(0)
	p.C[0] = 1
	den := 1.0
	for m := 0; m < len(pts); m++ {
		if m == i {
			continue
		}
		q := NewPolynomial(1)
		q.C[0] = -pts[m]
		q.C[1] = 1
		p = p.Mul(q)
		den *= pts[i] - pts[m]
	}
	for j := 0; j < len(p.C); j++ {
		p.C[j] /= den
	}
	return
}

// imax returns the maximum of two integers
func imax(a, b int) int {
	if a > b {
		return a
	}
	return b
}
