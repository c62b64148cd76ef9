// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ctl

import (
	"sync"

	"github.com/cpmech/gosl/chk"
)

// message carries one tagged payload between two in-process ranks
type message struct {
	tag  int
	data []float64
}

// Group connects several in-process ranks (one goroutine each) through
// channels, mimicking the MPI communicator for tests and shared-memory runs
type Group struct {
	size  int
	chans [][]chan message // chans[from][to]

	// collective state
	mu     sync.Mutex
	cond   *sync.Cond
	count  int
	round  int
	sum    float64
	result float64
}

// NewGroup returns a communication group with the given number of ranks
func NewGroup(size int) (o *Group) {
	o = new(Group)
	o.size = size
	o.chans = make([][]chan message, size)
	for i := 0; i < size; i++ {
		o.chans[i] = make([]chan message, size)
		for j := 0; j < size; j++ {
			o.chans[i][j] = make(chan message, 64)
		}
	}
	o.cond = sync.NewCond(&o.mu)
	return
}

// Comm returns the communicator view of one rank
func (o *Group) Comm(rank int) *GroupComm {
	if rank < 0 || rank >= o.size {
		chk.Panic("rank %d is outside the group of size %d", rank, o.size)
	}
	return &GroupComm{grp: o, rank: rank, pending: make(map[int]*Request), pendingR: make(map[int]*Request)}
}

// GroupComm is the per-rank view of a Group
type GroupComm struct {
	grp      *Group
	rank     int
	pending  map[int]*Request // last pending send per destination
	pendingR map[int]*Request // last pending receive per source
}

// Rank returns the index of this rank
func (o *GroupComm) Rank() int { return o.rank }

// Size returns the number of ranks in the group
func (o *GroupComm) Size() int { return o.grp.size }

// Send transmits a copy of buf to rank 'to'
func (o *GroupComm) Send(buf []float64, to, tag int) {
	data := make([]float64, len(buf))
	copy(data, buf)
	o.grp.chans[o.rank][to] <- message{tag: tag, data: data}
}

// Recv fills buf with the next message from rank 'from'. Messages between a
// pair of ranks arrive in order; a tag mismatch is a protocol error
func (o *GroupComm) Recv(buf []float64, from, tag int) {
	msg := <-o.grp.chans[from][o.rank]
	if msg.tag != tag {
		chk.Panic("rank %d: expected tag %d from rank %d but got %d", o.rank, tag, from, msg.tag)
	}
	if len(msg.data) != len(buf) {
		chk.Panic("rank %d: message size %d does not match buffer size %d", o.rank, len(msg.data), len(buf))
	}
	copy(buf, msg.data)
}

// Isend transmits buf without blocking; the payload is copied immediately so
// the buffer can be reused right away, and the request completes when the
// message has been enqueued. A previous pending send to the same destination
// is waited first, keeping the channel ordered
func (o *GroupComm) Isend(buf []float64, to, tag int) *Request {
	prev := o.pending[to]
	req := newRequest()
	o.pending[to] = req
	data := make([]float64, len(buf))
	copy(data, buf)
	go func() {
		if prev != nil {
			prev.Wait()
		}
		o.grp.chans[o.rank][to] <- message{tag: tag, data: data}
		req.complete()
	}()
	return req
}

// Irecv posts a receive into buf; the content is valid after Wait. Receives
// from the same source are matched in posting order, so the posting order
// must follow the sender's protocol
func (o *GroupComm) Irecv(buf []float64, from, tag int) *Request {
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
func (o *GroupComm) AllReduceSum(x float64) float64 {
	g := o.grp
	g.mu.Lock()
	defer g.mu.Unlock()
	round := g.round
	g.sum += x
	g.count++
	if g.count == g.size {
		g.result = g.sum
		g.sum = 0
		g.count = 0
		g.round++
		g.cond.Broadcast()
		return g.result
	}
	for g.round == round {
		g.cond.Wait()
	}
	return g.result
}

// Barrier synchronises all ranks in the group
func (o *GroupComm) Barrier() {
	o.AllReduceSum(0)
}
