// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ctl implements the SDC, MLSDC and PFASST controllers
package ctl

// message tag encoding: tag = BASETAG + level*TAGSPERLEVEL + iteration mod TAGSPERLEVEL
const (
	BASETAG      = 1000
	TAGSPERLEVEL = 100
)

// commTag encodes a (level, iteration) pair into a message tag
func commTag(level, iteration int) int {
	return BASETAG + level*TAGSPERLEVEL + iteration%TAGSPERLEVEL
}

// Request is the handle of a pending non-blocking exchange
type Request struct {
	done chan struct{}
}

// newRequest returns a request to be completed later
func newRequest() *Request {
	return &Request{done: make(chan struct{})}
}

// complete marks the request as finished
func (o *Request) complete() {
	close(o.done)
}

// Wait blocks until the exchange behind this request has finished
func (o *Request) Wait() {
	<-o.done
}

// Communicator exchanges encapsulation payloads between the ranks owning
// neighbouring time steps. Implementations exist for MPI, for multiple
// in-process ranks and for single-process runs
type Communicator interface {

	// Rank returns the index of this process
	Rank() int

	// Size returns the number of processes
	Size() int

	// Send transmits buf to rank 'to'; blocking
	Send(buf []float64, to, tag int)

	// Recv fills buf with a message from rank 'from'; blocking
	Recv(buf []float64, from, tag int)

	// Isend transmits buf to rank 'to' without blocking. The payload is
	// captured when the call is made, so the buffer may be reused right
	// away; Wait on the request tells when the message has left
	Isend(buf []float64, to, tag int) *Request

	// Irecv posts a receive into buf without blocking. The buffer content is
	// valid after Wait returns on the request
	Irecv(buf []float64, from, tag int) *Request

	// AllReduceSum returns the sum of x over all ranks; collective
	AllReduceSum(x float64) float64

	// Barrier synchronises all ranks; collective
	Barrier()
}
