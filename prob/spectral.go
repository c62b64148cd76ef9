// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prob

import (
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gosdc/encap"
)

// SpectralOps transfers periodic grid functions between levels of different
// resolution: interpolation pads the Fourier spectrum with zeros and
// restriction injects every xrat-th grid point
type SpectralOps struct {
	Nfine int // fine grid size
	Ncrse int // coarse grid size

	fftF *fourier.CmplxFFT
	fftC *fourier.CmplxFFT
	wkF  []complex128
	zkF  []complex128
	wkC  []complex128
	zkC  []complex128
}

// NewSpectralOps returns spatial operators between grids of the given sizes
func NewSpectralOps(nfine, ncrse int) (o *SpectralOps) {
	if nfine%ncrse != 0 {
		chk.Panic("fine grid size must be a multiple of the coarse one. %d / %d is invalid", nfine, ncrse)
	}
	o = new(SpectralOps)
	o.Nfine = nfine
	o.Ncrse = ncrse
	o.fftF = fourier.NewCmplxFFT(nfine)
	o.fftC = fourier.NewCmplxFFT(ncrse)
	o.wkF = make([]complex128, nfine)
	o.zkF = make([]complex128, nfine)
	o.wkC = make([]complex128, ncrse)
	o.zkC = make([]complex128, ncrse)
	return
}

// Interpolate fills the fine vector with the spectrally padded coarse one
func (o *SpectralOps) Interpolate(fine, crse encap.Encapsulation) {
	fv := fine.(*encap.Vector).V
	cv := crse.(*encap.Vector).V
	if o.Nfine == o.Ncrse {
		copy(fv, cv)
		return
	}
	for i, v := range cv {
		o.wkC[i] = complex(v, 0)
	}
	o.fftC.Coefficients(o.zkC, o.wkC)

	// pad the spectrum: positive frequencies first, negative last
	for i := range o.zkF {
		o.zkF[i] = 0
	}
	h := o.Ncrse / 2
	scale := complex(float64(o.Nfine)/float64(o.Ncrse), 0)
	for i := 0; i < h; i++ {
		o.zkF[i] = o.zkC[i] * scale
	}
	for i := h; i < o.Ncrse; i++ {
		o.zkF[o.Nfine-o.Ncrse+i] = o.zkC[i] * scale
	}

	o.fftF.Sequence(o.wkF, o.zkF)
	for i := range fv {
		fv[i] = real(o.wkF[i]) / float64(o.Nfine)
	}
}

// Restrict injects every xrat-th fine grid point into the coarse vector
func (o *SpectralOps) Restrict(crse, fine encap.Encapsulation) {
	fv := fine.(*encap.Vector).V
	cv := crse.(*encap.Vector).V
	if o.Nfine == o.Ncrse {
		copy(cv, fv)
		return
	}
	xrat := o.Nfine / o.Ncrse
	for i := range cv {
		cv[i] = fv[i*xrat]
	}
}
