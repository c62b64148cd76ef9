// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quad

import (
	"github.com/cpmech/gosl/la"
)

// Quadrature holds a node set together with its integration matrices.
//
//	Q[m][j]  -- weight of f(t[j]) when approximating the integral from 0 to t[m]
//	S[m][j]  -- node-to-node weights: S[m][j] = Q[m][j] - Q[m-1][j]; S[0][:] = 0
//	QQ, SS   -- analogous matrices for the iterated (double) integral
//	W[j]     -- weight of f(t[j]) when approximating the integral over [0,1]
type Quadrature struct {
	*NodeSet
	Q  [][]float64
	S  [][]float64
	QQ [][]float64
	SS [][]float64
	W  []float64
}

// NewQuadrature computes nodes and integration matrices for the given
// quadrature kind and number of nodes
func NewQuadrature(kind string, n int) (o *Quadrature, err error) {
	nodes, err := NewNodeSet(kind, n)
	if err != nil {
		return nil, err
	}
	o = new(Quadrature)
	o.NodeSet = nodes
	o.Q = la.MatAlloc(n, n)
	o.S = la.MatAlloc(n, n)
	o.QQ = la.MatAlloc(n, n)
	o.SS = la.MatAlloc(n, n)
	o.W = make([]float64, n)

	// integrate Lagrange basis polynomials from 0 to each node
	for i := 0; i < n; i++ {
		p := Lagrange(o.T, i).Integrate()
		for m := 0; m < n; m++ {
			o.Q[m][i] = p.Evaluate(o.T[m])
		}
		o.W[i] = p.Evaluate(1.0)
	}

	// iterated integral: QQ = Q * Q
	la.MatMul(o.QQ, 1, o.Q, o.Q)

	// node-to-node forms
	for m := 1; m < n; m++ {
		for j := 0; j < n; j++ {
			o.S[m][j] = o.Q[m][j] - o.Q[m-1][j]
			o.SS[m][j] = o.QQ[m][j] - o.QQ[m-1][j]
		}
	}
	return
}
