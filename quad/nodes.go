// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quad

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// quadrature type keywords (values of "quadtype" in .sim files)
const (
	GaussLegendre  = "gauss-legendre"
	GaussLobatto   = "gauss-lobatto"
	GaussRadau     = "gauss-radau"
	ClenshawCurtis = "clenshaw-curtis"
	Uniform        = "uniform"
)

// NodeSet holds quadrature nodes in [0,1] and endpoint flags
type NodeSet struct {
	Kind        string    // quadrature type keyword
	T           []float64 // node positions in [0,1]; strictly increasing
	LeftIsNode  bool      // first node coincides with 0
	RightIsNode bool      // last node coincides with 1
}

// NewNodeSet computes n quadrature nodes of the given kind
func NewNodeSet(kind string, n int) (o *NodeSet, err error) {
	if n < 1 {
		return nil, chk.Err("number of nodes must be at least 1. n = %d is invalid", n)
	}
	o = new(NodeSet)
	o.Kind = kind
	o.T = make([]float64, n)
	switch kind {

	case GaussLegendre:
		roots := Legendre(n).Roots()
		for j := 0; j < n; j++ {
			o.T[j] = 0.5 * (1.0 + roots[j])
		}

	case GaussLobatto:
		if n < 2 {
			return nil, chk.Err("Gauss-Lobatto quadrature requires at least 2 nodes. n = %d is invalid", n)
		}
		roots := Legendre(n - 1).Differentiate().Roots()
		for j := 0; j < n-2; j++ {
			o.T[j+1] = 0.5 * (1.0 + roots[j])
		}
		o.T[0] = 0.0
		o.T[n-1] = 1.0
		o.LeftIsNode = true
		o.RightIsNode = true

	case GaussRadau:
		// right-sided Radau: roots of P{n} + P{n-1} (which include -1),
		// reflected so that the right endpoint is a node
		roots := Legendre(n).Add(1, Legendre(n-1)).Roots()
		for j := 0; j < n; j++ {
			o.T[j] = 0.5 * (1.0 - roots[n-1-j])
		}
		o.T[n-1] = 1.0
		o.RightIsNode = true

	case ClenshawCurtis:
		if n == 1 {
			o.T[0] = 0.5
			break
		}
		for k := 0; k < n; k++ {
			o.T[k] = 0.5 * (1.0 - math.Cos(float64(k)*math.Pi/float64(n-1)))
		}
		o.LeftIsNode = true
		o.RightIsNode = true

	case Uniform:
		if n == 1 {
			o.T[0] = 0.5
			break
		}
		copy(o.T, utl.LinSpace(0, 1, n))
		o.LeftIsNode = true
		o.RightIsNode = true

	default:
		return nil, chk.Err("cannot find quadrature type named %q", kind)
	}

	// nodes must be strictly increasing
	for j := 1; j < n; j++ {
		if o.T[j] <= o.T[j-1] {
			return nil, chk.Err("%s nodes are not strictly increasing: t[%d] = %g <= t[%d] = %g", kind, j, o.T[j], j-1, o.T[j-1])
		}
	}
	return
}

// NumNodes returns the number of nodes
func (o *NodeSet) NumNodes() int {
	return len(o.T)
}
