// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ctl

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/mpi"
)

// Mpi is the communicator backed by gosl's MPI wrapper. The wrapper exposes
// blocking point-to-point calls only; messages therefore carry their tag as a
// header word which is checked on receipt, and the non-blocking variants run
// the blocking calls on goroutines. Pending sends to the same destination are
// serialised so that messages between a pair of ranks stay ordered
type Mpi struct {
	pending  map[int]*Request // last pending send per destination
	pendingR map[int]*Request // last pending receive per source
	ws       []float64        // reduction workspace
}

// NewMpi returns a new MPI communicator. mpi.Start must have been called
func NewMpi() (o *Mpi) {
	if !mpi.IsOn() {
		chk.Panic("MPI is not on. call mpi.Start first")
	}
	o = new(Mpi)
	o.pending = make(map[int]*Request)
	o.pendingR = make(map[int]*Request)
	o.ws = make([]float64, 1)
	return
}

// Rank returns the index of this process
func (o *Mpi) Rank() int { return mpi.Rank() }

// Size returns the number of processes
func (o *Mpi) Size() int { return mpi.Size() }

// Send transmits buf to rank 'to'; blocking
func (o *Mpi) Send(buf []float64, to, tag int) {
	msg := make([]float64, len(buf)+1)
	msg[0] = float64(tag)
	copy(msg[1:], buf)
	mpi.DblSend(msg, to)
}

// Recv fills buf with a message from rank 'from'; blocking. Messages between
// a pair of ranks arrive in order; a tag mismatch is a protocol error
func (o *Mpi) Recv(buf []float64, from, tag int) {
	msg := make([]float64, len(buf)+1)
	mpi.DblRecv(msg, from)
	if int(msg[0]) != tag {
		chk.Panic("rank %d: expected tag %d from rank %d but got %d", mpi.Rank(), tag, from, int(msg[0]))
	}
	copy(buf, msg[1:])
}

// Isend transmits buf to rank 'to' on a goroutine. A previous pending send to
// the same destination is waited first, keeping the channel ordered; the
// payload is copied immediately so the buffer can be reused right away
func (o *Mpi) Isend(buf []float64, to, tag int) *Request {
	msg := make([]float64, len(buf)+1)
	msg[0] = float64(tag)
	copy(msg[1:], buf)
	prev := o.pending[to]
	req := newRequest()
	o.pending[to] = req
	go func() {
		if prev != nil {
			prev.Wait()
		}
		mpi.DblSend(msg, to)
		req.complete()
	}()
	return req
}

// Irecv posts a receive into buf on a goroutine; the content is valid after
// Wait. Receives from the same source are matched in posting order, so the
// posting order must follow the sender's protocol
func (o *Mpi) Irecv(buf []float64, from, tag int) *Request {
	prev := o.pendingR[from]
	req := newRequest()
	o.pendingR[from] = req
	go func() {
		if prev != nil {
			prev.Wait()
		}
		o.Recv(buf, from, tag)
		req.complete()
	}()
	return req
}

// AllReduceSum returns the sum of x over all ranks
func (o *Mpi) AllReduceSum(x float64) float64 {
	v := []float64{x}
	mpi.AllReduceSum(v, o.ws)
	return v[0]
}

// Barrier synchronises all ranks
func (o *Mpi) Barrier() {
	mpi.Barrier()
}
