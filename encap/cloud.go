// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encap

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// number of spatial dimensions of particle clouds
const CLOUDDIM = 3

// Cloud is an Encapsulation holding a cloud of charged particles in 3D.
// Positions and velocities are the dynamic state; charges and masses are
// fixed attributes shared with copies.
type Cloud struct {
	Np int       // number of particles
	P  []float64 // positions; flat [Np*3]
	V  []float64 // velocities; flat [Np*3]
	Qc []float64 // charges [Np]
	Ms []float64 // masses [Np]
}

// NewCloud returns a zeroed cloud with np particles, all with the given charge and mass
func NewCloud(np int, charge, mass float64) (o *Cloud) {
	o = new(Cloud)
	o.Np = np
	o.P = make([]float64, np*CLOUDDIM)
	o.V = make([]float64, np*CLOUDDIM)
	o.Qc = make([]float64, np)
	o.Ms = make([]float64, np)
	for i := 0; i < np; i++ {
		o.Qc[i] = charge
		o.Ms[i] = mass
	}
	return
}

// Zero sets positions and velocities to zero
func (o *Cloud) Zero() {
	la.VecFill(o.P, 0)
	la.VecFill(o.V, 0)
}

// Copy sets positions, velocities and attributes equal to x
func (o *Cloud) Copy(x Encapsulation) {
	c := cloud(x)
	copy(o.P, c.P)
	copy(o.V, c.V)
	copy(o.Qc, c.Qc)
	copy(o.Ms, c.Ms)
}

// Axpy adds a*x to positions and velocities
func (o *Cloud) Axpy(a float64, x Encapsulation) {
	c := cloud(x)
	la.VecAdd(o.P, a, c.P)
	la.VecAdd(o.V, a, c.V)
}

// Norm0 returns the maximum absolute position or velocity component
func (o *Cloud) Norm0() (nrm float64) {
	for i := 0; i < len(o.P); i++ {
		nrm = math.Max(nrm, math.Abs(o.P[i]))
		nrm = math.Max(nrm, math.Abs(o.V[i]))
	}
	return
}

// Ndofs returns the number of packed values (positions followed by velocities)
func (o *Cloud) Ndofs() int {
	return 2 * o.Np * CLOUDDIM
}

// Pack serialises positions then velocities into buf
func (o *Cloud) Pack(buf []float64) {
	n := o.Np * CLOUDDIM
	copy(buf[:n], o.P)
	copy(buf[n:], o.V)
}

// Unpack reads positions and velocities back from buf
func (o *Cloud) Unpack(buf []float64) {
	n := o.Np * CLOUDDIM
	copy(o.P, buf[:n])
	copy(o.V, buf[n:])
}

// cloud casts an Encapsulation to a Cloud
func cloud(x Encapsulation) *Cloud {
	c, ok := x.(*Cloud)
	if !ok {
		chk.Panic("encapsulation must be a Cloud. %T is invalid", x)
	}
	return c
}

// CloudFactory creates Cloud encapsulations of a fixed shape
type CloudFactory struct {
	Np     int     // number of particles
	Charge float64 // charge given to every particle
	Mass   float64 // mass given to every particle
}

// Create returns a new zeroed Cloud
func (o *CloudFactory) Create() Encapsulation {
	return NewCloud(o.Np, o.Charge, o.Mass)
}

// Ndofs returns the number of packed values
func (o *CloudFactory) Ndofs() int {
	return 2 * o.Np * CLOUDDIM
}

// component helpers ///////////////////////////////////////////////////////////////////////////////

// CloudComp returns a zeroed per-particle 3D component array (e.g. forces); flat [np*3]
func CloudComp(np int) []float64 {
	return make([]float64, np*CLOUDDIM)
}

// CrossProd computes the per-particle cross product w = u x v of two flat component arrays
func CrossProd(w, u, v []float64) {
	for i := 0; i < len(u); i += CLOUDDIM {
		w[i+0] = u[i+1]*v[i+2] - u[i+2]*v[i+1]
		w[i+1] = u[i+2]*v[i+0] - u[i+0]*v[i+2]
		w[i+2] = u[i+0]*v[i+1] - u[i+1]*v[i+0]
	}
}

// CompNorm0 returns the maximum absolute entry of a flat component array
func CompNorm0(u []float64) (nrm float64) {
	for _, v := range u {
		nrm = math.Max(nrm, math.Abs(v))
	}
	return
}
