// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quad

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

func Test_mat01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mat01. S matrix reference values")

	// Gauss-Lobatto with 3 nodes
	q3, err := NewQuadrature(GaussLobatto, 3)
	if err != nil {
		tst.Errorf("NewQuadrature failed:\n%v", err)
		return
	}
	chk.Vector(tst, "S[1]", 1e-14, q3.S[1], []float64{0.20833333333333333, 0.33333333333333333, -0.04166666666666666})
	chk.Vector(tst, "S[2]", 1e-14, q3.S[2], []float64{-0.04166666666666666, 0.33333333333333333, 0.20833333333333333})

	// Gauss-Lobatto with 5 nodes
	q5, err := NewQuadrature(GaussLobatto, 5)
	if err != nil {
		tst.Errorf("NewQuadrature failed:\n%v", err)
		return
	}
	chk.Vector(tst, "S[1]", 1e-14, q5.S[1], []float64{
		0.067728432186156897969267419174073482, 0.11974476934341168251615379970493965,
		-0.021735721866558113665511351745074292, 0.010635824225415491883105056997129926,
		-0.0037001392424145306021611522544979462,
	})
	chk.Vector(tst, "S[2]", 1e-14, q5.S[2], []float64{
		-0.027103432186156897969267419174073483, 0.1834394139796310955018131986775051,
		0.19951349964433589144328912952285207, -0.041597785326236047678849833157352459,
		0.013075139242414530602161152254497946,
	})
	chk.Vector(tst, "S[3]", 1e-14, q5.S[3], []float64{
		0.013075139242414530602161152254497944, -0.041597785326236047678849833157352467,
		0.19951349964433589144328912952285207, 0.1834394139796310955018131986775051,
		-0.027103432186156897969267419174073483,
	})
	chk.Vector(tst, "S[4]", 1e-14, q5.S[4], []float64{
		-0.0037001392424145306021611522544979483, 0.010635824225415491883105056997129916,
		-0.021735721866558113665511351745074289, 0.11974476934341168251615379970493965,
		0.067728432186156897969267419174073482,
	})

	// Clenshaw-Curtis with 4 nodes
	c4, err := NewQuadrature(ClenshawCurtis, 4)
	if err != nil {
		tst.Errorf("NewQuadrature failed:\n%v", err)
		return
	}
	chk.Vector(tst, "S[1]", 1e-14, c4.S[1], []float64{
		0.10243055555555555555555555555555556, 0.16319444444444444444444444444444444,
		-0.024305555555555555555555555555555556, 0.0086805555555555555555555555555555557,
	})
	chk.Vector(tst, "S[2]", 1e-14, c4.S[2], []float64{
		-0.055555555555555555555555555555555556, 0.30555555555555555555555555555555556,
		0.30555555555555555555555555555555556, -0.055555555555555555555555555555555556,
	})
	chk.Vector(tst, "S[3]", 1e-14, c4.S[3], []float64{
		0.0086805555555555555555555555555555545, -0.024305555555555555555555555555555554,
		0.16319444444444444444444444444444444, 0.10243055555555555555555555555555556,
	})
}

func Test_mat02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mat02. structural invariants")

	for _, kind := range []string{GaussLegendre, GaussLobatto, GaussRadau, ClenshawCurtis, Uniform} {
		nmin := 2
		for n := nmin; n <= 9; n++ {
			o, err := NewQuadrature(kind, n)
			if err != nil {
				tst.Errorf("NewQuadrature failed:\n%v", err)
				return
			}

			// last row of Q sums to one when the right endpoint is a node
			if o.RightIsNode {
				sum := 0.0
				for j := 0; j < n; j++ {
					sum += o.Q[n-1][j]
				}
				chk.Scalar(tst, io.Sf("%s n=%d: sum(Q[last])", kind, n), 1e-12, sum, 1.0)
			}

			// full-interval weights sum to one
			sumw := 0.0
			for j := 0; j < n; j++ {
				sumw += o.W[j]
			}
			chk.Scalar(tst, io.Sf("%s n=%d: sum(W)", kind, n), 1e-12, sumw, 1.0)

			// S row 0 is zero and rows of S sum to the node spacings
			chk.Vector(tst, io.Sf("%s n=%d: S[0]", kind, n), 1e-17, o.S[0], make([]float64, n))
			for m := 1; m < n; m++ {
				sum := 0.0
				for j := 0; j < n; j++ {
					sum += o.S[m][j]
				}
				chk.Scalar(tst, io.Sf("%s n=%d: sum(S[%d])", kind, n, m), 1e-12, sum, o.T[m]-o.T[m-1])
			}

			// S is the row difference of Q
			for m := 1; m < n; m++ {
				for j := 0; j < n; j++ {
					chk.Scalar(tst, io.Sf("%s n=%d: S-Q", kind, n), 1e-15, o.S[m][j], o.Q[m][j]-o.Q[m-1][j])
				}
			}

			// QQ = Q * Q
			qq := la.MatAlloc(n, n)
			la.MatMul(qq, 1, o.Q, o.Q)
			chk.Matrix(tst, io.Sf("%s n=%d: QQ", kind, n), 1e-15, o.QQ, qq)
		}
	}
}

func Test_mat03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mat03. polynomial exactness")

	// Gauss-Legendre with n nodes integrates degree 2n-1 exactly;
	// Gauss-Lobatto integrates degree 2n-3
	for n := 2; n <= 9; n++ {
		for _, tc := range []struct {
			kind   string
			maxdeg int
		}{
			{GaussLegendre, 2*n - 1},
			{GaussLobatto, 2*n - 3},
			{GaussRadau, 2*n - 2},
		} {
			o, err := NewQuadrature(tc.kind, n)
			if err != nil {
				tst.Errorf("NewQuadrature failed:\n%v", err)
				return
			}
			for deg := 0; deg <= tc.maxdeg; deg++ {
				num := 0.0
				for j := 0; j < n; j++ {
					num += o.W[j] * math.Pow(o.T[j], float64(deg))
				}
				ana := 1.0 / float64(deg+1) // integral of t**deg over [0,1]
				chk.Scalar(tst, io.Sf("%s n=%d deg=%d", tc.kind, n, deg), 1e-12, num, ana)
			}
		}
	}
}
