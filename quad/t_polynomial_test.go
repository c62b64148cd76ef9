// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quad

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_poly01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("poly01. Legendre polynomials")

	l0 := Legendre(0)
	chk.IntAssert(l0.Order(), 0)
	chk.Vector(tst, "P0", 1e-17, l0.C, []float64{1})

	l1 := Legendre(1)
	chk.IntAssert(l1.Order(), 1)
	chk.Vector(tst, "P1", 1e-17, l1.C, []float64{0, 1})

	l2 := Legendre(2)
	chk.IntAssert(l2.Order(), 2)
	chk.Vector(tst, "P2", 1e-17, l2.C, []float64{-0.5, 0, 1.5})

	l2d := l2.Differentiate()
	chk.IntAssert(l2d.Order(), 1)
	chk.Vector(tst, "dP2dx", 1e-17, l2d.C, []float64{0, 3})

	l2i := l2.Integrate()
	chk.IntAssert(l2i.Order(), 3)
	chk.Vector(tst, "intP2dx", 1e-17, l2i.C, []float64{0, -0.5, 0, 0.5})

	chk.Scalar(tst, "P2(1)", 1e-17, l2.Evaluate(1.0), 1.0)
	chk.Scalar(tst, "P2(-1)", 1e-17, l2.Evaluate(-1.0), 1.0)
	chk.Scalar(tst, "P2(0)", 1e-17, l2.Evaluate(0.0), -0.5)
}

func Test_poly02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("poly02. differentiate/integrate laws")

	p := NewPolynomial(4)
	copy(p.C, []float64{3, -1, 2, 0.5, -0.25})

	// differentiate(integrate(p)) == p
	q := p.Integrate().Differentiate()
	chk.Vector(tst, "D(I(p))", 1e-15, q.C, p.C)

	// integrate(differentiate(p)) == p - p[0]
	r := p.Differentiate().Integrate()
	chk.Vector(tst, "I(D(p))", 1e-15, r.C, []float64{0, -1, 2, 0.5, -0.25})
}

func Test_poly03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("poly03. roots of Legendre polynomials")

	// roots of P2 are +/- 1/sqrt(3)
	r2 := Legendre(2).Roots()
	chk.Vector(tst, "roots(P2)", 1e-14, r2, []float64{-0.57735026918962576451, 0.57735026918962576451})

	// P5 has 5 simple roots in (-1,1), symmetric about zero
	r5 := Legendre(5).Roots()
	chk.IntAssert(len(r5), 5)
	for j, r := range r5 {
		if r <= -1 || r >= 1 {
			tst.Errorf("root %d = %g is outside (-1,1)", j, r)
			return
		}
		if j > 0 && r5[j] <= r5[j-1] {
			tst.Errorf("roots are not strictly increasing")
			return
		}
	}
	chk.Scalar(tst, "middle root", 1e-14, r5[2], 0.0)
	chk.Scalar(tst, "symmetry", 1e-14, r5[0]+r5[4], 0.0)
	chk.Scalar(tst, "P5(r0)", 1e-13, Legendre(5).Evaluate(r5[0]), 0.0)
}

func Test_poly04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("poly04. Lagrange basis")

	pts := []float64{0, 0.5, 1}
	for i := 0; i < 3; i++ {
		p := Lagrange(pts, i)
		for j := 0; j < 3; j++ {
			expected := 0.0
			if i == j {
				expected = 1.0
			}
			chk.Scalar(tst, io.Sf("l%d(t%d)", i, j), 1e-15, p.Evaluate(pts[j]), expected)
		}
	}
}
