// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ctl

import (
	"github.com/cpmech/gosl/chk"
)

// Serial is the identity communicator for single-process runs; there are no
// neighbours, so point-to-point exchanges are programming errors
type Serial struct{}

// Rank returns 0
func (o Serial) Rank() int { return 0 }

// Size returns 1
func (o Serial) Size() int { return 1 }

// Send panics: a single-process run has no neighbours
func (o Serial) Send(buf []float64, to, tag int) {
	chk.Panic("cannot send to rank %d in a single-process run", to)
}

// Recv panics: a single-process run has no neighbours
func (o Serial) Recv(buf []float64, from, tag int) {
	chk.Panic("cannot receive from rank %d in a single-process run", from)
}

// Isend panics: a single-process run has no neighbours
func (o Serial) Isend(buf []float64, to, tag int) *Request {
	chk.Panic("cannot send to rank %d in a single-process run", to)
	return nil
}

// Irecv panics: a single-process run has no neighbours
func (o Serial) Irecv(buf []float64, from, tag int) *Request {
	chk.Panic("cannot receive from rank %d in a single-process run", from)
	return nil
}

// AllReduceSum returns x
func (o Serial) AllReduceSum(x float64) float64 { return x }

// Barrier does nothing
func (o Serial) Barrier() {}
