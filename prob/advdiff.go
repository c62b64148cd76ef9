// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prob

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/cpmech/gosdc/encap"
)

// AdvDiff is the 1D periodic advection-diffusion problem
//
//	u_t + v*u_x = nu*u_xx
//
// discretised spectrally: advection is the explicit part, diffusion the
// implicit part and the implicit solve is a diagonal division in Fourier
// space. The FFT plan and workspaces are owned by the problem and reused
// across evaluations
type AdvDiff struct {

	// input
	Ndofs int     // number of spatial degrees of freedom
	Nu    float64 // diffusion coefficient
	V     float64 // advection speed
	T0    float64 // initial spreading time of the exact Gaussian packet

	// derived
	fft *fourier.CmplxFFT
	ddx []complex128 // spectral first derivative
	lap []complex128 // spectral Laplacian

	// workspace
	wk []complex128
	zk []complex128
}

// NewAdvDiff returns a new advection-diffusion problem with ndofs modes
func NewAdvDiff(ndofs int, nu, v float64) (o *AdvDiff) {
	o = new(AdvDiff)
	o.Ndofs = ndofs
	o.Nu = nu
	o.V = v
	o.T0 = 1.0
	o.fft = fourier.NewCmplxFFT(ndofs)
	o.ddx = make([]complex128, ndofs)
	o.lap = make([]complex128, ndofs)
	o.wk = make([]complex128, ndofs)
	o.zk = make([]complex128, ndofs)
	for i := 0; i < ndofs; i++ {
		kx := 2.0 * math.Pi * float64(i)
		if i > ndofs/2 {
			kx = 2.0 * math.Pi * float64(i-ndofs)
		}
		o.ddx[i] = complex(0, kx)
		if kx*kx > 1e-13 {
			o.lap[i] = complex(-kx*kx, 0)
		}
	}
	return
}

// forward loads u into the workspace and transforms to Fourier space
func (o *AdvDiff) forward(u []float64) {
	for i, v := range u {
		o.wk[i] = complex(v, 0)
	}
	o.fft.Coefficients(o.zk, o.wk)
}

// backward transforms the workspace back and stores the real part in f
func (o *AdvDiff) backward(f []float64) {
	o.fft.Sequence(o.wk, o.zk)
	for i := range f {
		f[i] = real(o.wk[i])
	}
}

// F1 evaluates the explicit (advection) part: -v*u_x
func (o *AdvDiff) F1(f encap.Encapsulation, u encap.Encapsulation, t float64) {
	c := complex(-o.V/float64(o.Ndofs), 0)
	o.forward(u.(*encap.Vector).V)
	for i := 0; i < o.Ndofs; i++ {
		o.zk[i] *= c * o.ddx[i]
	}
	o.backward(f.(*encap.Vector).V)
}

// F2 evaluates the implicit (diffusion) part: nu*u_xx
func (o *AdvDiff) F2(f encap.Encapsulation, u encap.Encapsulation, t float64) {
	c := complex(o.Nu/float64(o.Ndofs), 0)
	o.forward(u.(*encap.Vector).V)
	for i := 0; i < o.Ndofs; i++ {
		o.zk[i] *= c * o.lap[i]
	}
	o.backward(f.(*encap.Vector).V)
}

// SolveF2 solves u - Δt*nu*u_xx = rhs by diagonal division in Fourier space
func (o *AdvDiff) SolveF2(f encap.Encapsulation, u encap.Encapsulation, t, Δt float64, rhs encap.Encapsulation) (err error) {
	uv := u.(*encap.Vector).V
	fv := f.(*encap.Vector).V
	rv := rhs.(*encap.Vector).V
	o.forward(rv)
	for i := 0; i < o.Ndofs; i++ {
		o.zk[i] /= (1.0 - complex(o.Nu*Δt, 0)*o.lap[i]) * complex(float64(o.Ndofs), 0)
	}
	o.backward(uv)
	for i := 0; i < o.Ndofs; i++ {
		fv[i] = (uv[i] - rv[i]) / Δt
	}
	return
}

// Exact computes the analytical solution: a periodised Gaussian packet
// advected with speed v and spreading with nu
func (o *AdvDiff) Exact(u encap.Encapsulation, t float64) {
	uv := u.(*encap.Vector).V
	a := 1.0 / math.Sqrt(4.0*math.Pi*o.Nu*(t+o.T0))
	for i := range uv {
		uv[i] = 0
	}
	for ii := -2; ii < 3; ii++ {
		for i := 0; i < o.Ndofs; i++ {
			x := float64(i)/float64(o.Ndofs) - 0.5 + float64(ii) - t*o.V
			uv[i] += a * math.Exp(-x*x/(4.0*o.Nu*(t+o.T0)))
		}
	}
}
