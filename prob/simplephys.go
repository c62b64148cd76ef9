// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prob

import (
	"math"
	"math/cmplx"

	"github.com/cpmech/gosdc/encap"
)

// SimplePhysics models charged particles in an idealised Penning trap: a
// quadratic external electric potential, a constant magnetic field along z
// and smoothed Coulomb interaction between the particles
type SimplePhysics struct {

	// input
	OmegaE  float64 // electric field frequency
	OmegaB  float64 // magnetic field frequency
	Epsilon float64 // electric field scaling
	Sigma   float64 // Coulomb smoothing parameter

	// derived
	bvec [3]float64
}

// NewSimplePhysics returns a new Penning trap physics description
func NewSimplePhysics(omegaE, omegaB, epsilon, sigma float64) (o *SimplePhysics) {
	o = new(SimplePhysics)
	o.OmegaE = omegaE
	o.OmegaB = omegaB
	o.Epsilon = epsilon
	o.Sigma = sigma
	o.bvec = [3]float64{0, 0, omegaB}
	return
}

// EForce computes the per-particle electric force: the external trap field
// plus the smoothed Coulomb field of the other particles
func (o *SimplePhysics) EForce(f []float64, c *encap.Cloud, t float64) {
	pre := -o.Epsilon * o.OmegaE * o.OmegaE
	for i := 0; i < c.Np; i++ {
		j := i * encap.CLOUDDIM
		factor := pre / (c.Qc[i] / c.Ms[i])
		f[j+0] = factor * c.P[j+0]
		f[j+1] = factor * c.P[j+1]
		f[j+2] = factor * (-2.0) * c.P[j+2]
	}
	o.coulomb(f, nil, c)
}

// coulomb adds the smoothed particle-particle field to f and, when phis is
// not nil, accumulates the potentials
func (o *SimplePhysics) coulomb(f []float64, phis []float64, c *encap.Cloud) {
	if c.Np < 2 && phis == nil {
		return
	}
	var dist [3]float64
	for i := 0; i < c.Np; i++ {
		ii := i * encap.CLOUDDIM
		for k := 0; k < c.Np; k++ {
			if k == i {
				continue
			}
			kk := k * encap.CLOUDDIM
			dist2 := 0.0
			for d := 0; d < 3; d++ {
				dist[d] = c.P[ii+d] - c.P[kk+d]
				dist2 += dist[d] * dist[d]
			}
			r := math.Sqrt(dist2 + o.Sigma*o.Sigma)
			if phis != nil {
				phis[i] += c.Qc[k] / r
			}
			if f != nil {
				r3 := r * r * r
				for d := 0; d < 3; d++ {
					f[ii+d] += dist[d] / r3 * c.Qc[k]
				}
			}
		}
	}
}

// BFieldVecs computes the per-particle magnetic field vectors
func (o *SimplePhysics) BFieldVecs(b []float64, c *encap.Cloud, t float64) {
	for i := 0; i < c.Np; i++ {
		j := i * encap.CLOUDDIM
		s := 1.0 / c.Qc[i] / c.Ms[i]
		b[j+0] = o.bvec[0] * s
		b[j+1] = o.bvec[1] * s
		b[j+2] = o.bvec[2] * s
	}
}

// BVec returns the constant external magnetic field vector
func (o *SimplePhysics) BVec() []float64 {
	return o.bvec[:]
}

// Energy returns the total (kinetic plus potential) energy of the cloud
func (o *SimplePhysics) Energy(c *encap.Cloud, t float64) float64 {
	ekin, epot := 0.0, 0.0
	phis := make([]float64, c.Np)
	o.coulomb(nil, phis, c)
	for i := 0; i < c.Np; i++ {
		j := i * encap.CLOUDDIM
		s := -o.Epsilon * o.OmegaE * o.OmegaE / 2.0 * (c.Qc[i] / c.Ms[i])
		dot := s*c.P[j+0]*c.P[j+0] + s*c.P[j+1]*c.P[j+1] + s*(-2.0)*c.P[j+2]*c.P[j+2]
		epot += c.Qc[i]*phis[i] - dot
		v2 := c.V[j+0]*c.V[j+0] + c.V[j+1]*c.V[j+1] + c.V[j+2]*c.V[j+2]
		ekin += c.Ms[i] / 2.0 * v2
	}
	return ekin + epot
}

// ExactPenning computes the analytical single-particle trajectory of the
// ideal Penning trap, given the initial position and velocity at t = 0
func (o *SimplePhysics) ExactPenning(q *encap.Cloud, p0, v0 [3]float64, t float64) {
	i := complex(0, 1)
	tc := complex(t, 0)

	// axial oscillation
	ωt := cmplx.Sqrt(complex(-2.0*o.Epsilon, 0)) * complex(o.OmegaE, 0)
	z := complex(p0[2], 0)*cmplx.Cos(ωt*tc) + complex(v0[2], 0)/ωt*cmplx.Sin(ωt*tc)
	w := -complex(p0[2], 0)*ωt*cmplx.Sin(ωt*tc) + complex(v0[2], 0)*cmplx.Cos(ωt*tc)

	// circular motions in the plane
	sq := cmplx.Sqrt(complex(o.OmegaB*o.OmegaB+4.0*o.Epsilon*o.OmegaE*o.OmegaE, 0))
	ωm := (complex(o.OmegaB, 0) - sq) / 2.0
	ωp := (complex(o.OmegaB, 0) + sq) / 2.0
	rm := (ωp*complex(p0[0], 0) + complex(v0[1], 0)) / (ωp - ωm)
	rp := complex(p0[0], 0) - rm
	im := (ωp*complex(p0[1], 0) - complex(v0[0], 0)) / (ωp - ωm)
	ip := complex(p0[1], 0) - im
	xy := (rp+i*ip)*cmplx.Exp(-i*ωp*tc) + (rm+i*im)*cmplx.Exp(-i*ωm*tc)
	uv := (-i*ωp*(rp+i*ip))*cmplx.Exp(-i*ωp*tc) - (i*ωm*(rm+i*im))*cmplx.Exp(-i*ωm*tc)

	q.P[0] = real(xy)
	q.P[1] = imag(xy)
	q.P[2] = real(z)
	q.V[0] = real(uv)
	q.V[1] = imag(uv)
	q.V[2] = real(w)
}
