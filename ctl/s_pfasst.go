// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ctl

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gosdc/encap"
)

// tag of the block wrap-around message (last rank to rank 0)
const WRAPTAG = BASETAG - 1

// PFASST is the parallel-in-time controller: P ranks integrate P consecutive
// steps concurrently, each running MLSDC V-cycles and exchanging start states
// with its neighbours.
//
// Wire protocol: one message per level per iteration, sent to rank+1 in the
// fixed order [finest, coarsest, coarsest+1, ...] (the chronological order of
// the last sweep on each level within a V-cycle). The start state a rank uses
// at iteration k is its left neighbour's end state of iteration k-1; the
// predictor plays the role of iteration 0. Receives on the coarsest level are
// (effectively) blocking; on finer levels they are posted non-blocking at the
// beginning of the iteration and waited right before use
type PFASST struct {
	c    *Controller
	sbuf [][]float64 // send buffer per level
	rbuf [][]float64 // receive buffer per level
	tmp  []encap.Encapsulation
	reqs []*Request // posted receives per level
	pend []*Request // pending sends
}

// set factory of controllers
func init() {
	runnerallocators["pfasst"] = func(c *Controller) Runner {
		if len(c.Levels) < 2 {
			chk.Panic("the PFASST controller needs at least 2 levels. %d levels were given", len(c.Levels))
		}
		o := &PFASST{c: c}
		nlev := len(c.Levels)
		o.sbuf = make([][]float64, nlev)
		o.rbuf = make([][]float64, nlev)
		o.tmp = make([]encap.Encapsulation, nlev)
		o.reqs = make([]*Request, nlev)
		for l := 0; l < nlev; l++ {
			o.sbuf[l] = make([]float64, c.Levels[l].Factory().Ndofs())
			o.rbuf[l] = make([]float64, c.Levels[l].Factory().Ndofs())
			o.tmp[l] = c.Levels[l].Factory().Create()
		}
		return o
	}
}

// sendOrder returns the level indices in message order: the finest level
// first (sent during the down leg), then coarsest to finest-1
func (o *PFASST) sendOrder() []int {
	top := len(o.c.Levels) - 1
	order := make([]int, 0, top+1)
	order = append(order, top)
	for l := 0; l < top; l++ {
		order = append(order, l)
	}
	return order
}

// isendEnd posts a non-blocking send of the end state of one level
func (o *PFASST) isendEnd(level, tag int) {
	o.c.Levels[level].EndState().Pack(o.sbuf[level])
	req := o.c.Comm.Isend(o.sbuf[level], o.c.Comm.Rank()+1, tag)
	o.pend = append(o.pend, req)
}

// recvStart stores a received payload as the start state of one level
func (o *PFASST) recvStart(level int) {
	o.tmp[level].Unpack(o.rbuf[level])
	o.c.Levels[level].SetStartState(o.tmp[level])
}

// sweeps performs the configured number of sweeps on one level
func (o *PFASST) sweeps(t, Δt float64, level int) (err error) {
	for s := 0; s < o.c.Sim.Levels[level].NumSweeps; s++ {
		if err = o.c.Levels[level].Sweep(t, Δt); err != nil {
			return
		}
	}
	return
}

// refreshEnd copies the last node state into the end state after an
// interpolation updated the node values
func (o *PFASST) refreshEnd(level int) {
	lev := o.c.Levels[level]
	if lev.Quadrature().RightIsNode {
		lev.EndState().Copy(lev.State(lev.NumNodes() - 1))
	}
}

// predictor computes the provisional solution: a staircase of coarse sweeps
// pipelined across the ranks, interpolated up through the hierarchy
func (o *PFASST) predictor(t, Δt float64, first bool) (err error) {
	lev := o.c.Levels
	trn := o.c.Transfers
	top := len(lev) - 1
	rank := o.c.Comm.Rank()
	size := o.c.Comm.Size()

	// initialise the hierarchy from the (possibly stale) fine start state
	if err = lev[top].Predict(t, Δt, first); err != nil {
		return
	}
	for l := top; l >= 1; l-- {
		if err = trn[l-1].RestrictState(t, Δt, lev[l-1], lev[l]); err != nil {
			return
		}
		lev[l-1].Save()
	}

	// staircase on the coarsest level: rank p waits for rank p-1's end state
	// and then performs p+1 sweeps
	if rank > 0 {
		o.c.Comm.Recv(o.rbuf[0], rank-1, commTag(0, 0))
		o.recvStart(0)
		if err = lev[0].Predict(t, Δt, false); err != nil {
			return
		}
	}
	for s := 0; s <= rank; s++ {
		if err = lev[0].Sweep(t, Δt); err != nil {
			return
		}
	}
	if rank < size-1 {
		o.isendEnd(0, commTag(0, 0))
	}

	// interpolate the provisional solution up through the hierarchy
	for l := 1; l <= top; l++ {
		if err = trn[l-1].InterpolateState(t, Δt, lev[l], lev[l-1], true); err != nil {
			return
		}
		o.refreshEnd(l)
	}

	// make the predictor end states available as "iteration 0" messages
	if rank < size-1 {
		for _, l := range o.sendOrder() {
			o.isendEnd(l, commTag(l, 0))
		}
	}
	return
}

// cycle performs one V-cycle with neighbour exchanges; converged tells
// whether the finest level satisfies its residual tolerances
func (o *PFASST) cycle(t, Δt float64, k int) (converged bool, err error) {
	lev := o.c.Levels
	trn := o.c.Transfers
	top := len(lev) - 1
	rank := o.c.Comm.Rank()
	size := o.c.Comm.Size()

	// post the receives for the start states of this iteration
	if rank > 0 {
		for _, l := range o.sendOrder() {
			o.reqs[l] = o.c.Comm.Irecv(o.rbuf[l], rank-1, commTag(l, k-1))
		}
	}

	// down leg
	for l := top; l >= 1; l-- {
		if rank > 0 {
			o.reqs[l].Wait()
			o.recvStart(l)
		}
		if err = o.sweeps(t, Δt, l); err != nil {
			return
		}
		if l == top {
			converged = lev[top].Converged(Δt)
			if rank < size-1 {
				o.isendEnd(top, commTag(top, k))
			}
		}
		if err = trn[l-1].RestrictState(t, Δt, lev[l-1], lev[l]); err != nil {
			return
		}
		lev[l-1].Save()
		if err = trn[l-1].FAS(Δt, lev[l-1], lev[l]); err != nil {
			return
		}
	}

	// coarsest level: tight coupling
	if rank > 0 {
		o.reqs[0].Wait()
		o.recvStart(0)
	}
	if err = o.sweeps(t, Δt, 0); err != nil {
		return
	}
	if rank < size-1 {
		o.isendEnd(0, commTag(0, k))
	}

	// up leg
	for l := 1; l <= top; l++ {
		if err = trn[l-1].InterpolateState(t, Δt, lev[l], lev[l-1], true); err != nil {
			return
		}
		o.refreshEnd(l)
		if l < top {
			if err = o.sweeps(t, Δt, l); err != nil {
				return
			}
		}
		if l < top && rank < size-1 {
			o.isendEnd(l, commTag(l, k))
		}
	}
	return
}

// drain completes all pending exchanges so that buffers can be reused and no
// message is left in flight at the end of a block
func (o *PFASST) drain(klast int) {
	rank := o.c.Comm.Rank()
	if rank > 0 {
		for _, l := range o.sendOrder() {
			o.c.Comm.Recv(o.rbuf[l], rank-1, commTag(l, klast))
		}
	}
	for _, req := range o.pend {
		req.Wait()
	}
	o.pend = o.pend[:0]
}

// Run performs the block loop: each block integrates P consecutive steps
// concurrently, one per rank
func (o *PFASST) Run() (err error) {

	// control
	sol := &o.c.Sim.Solver
	Δt := sol.DeltaStep
	lev := o.c.Levels
	top := len(lev) - 1
	rank := o.c.Comm.Rank()
	size := o.c.Comm.Size()
	if sol.NumSteps%size != 0 {
		return chk.Err("number of steps (%d) must be a multiple of the number of ranks (%d)", sol.NumSteps, size)
	}
	nblocks := sol.NumSteps / size

	// block loop
	for b := 0; b < nblocks; b++ {
		step := b*size + rank
		t := float64(step) * Δt

		// message
		if o.c.Verbose {
			io.PfWhite("%30.15f\r", t)
		}

		// provisional solution
		if err = o.predictor(t, Δt, step == 0); err != nil {
			return chk.Err("predictor failed at block %d:\n%v", b, err)
		}

		// iterations; the loop exits only when every rank has converged
		klast := sol.NumIter
		for k := 1; k <= sol.NumIter; k++ {
			converged, cerr := o.cycle(t, Δt, k)
			if cerr != nil {
				return chk.Err("V-cycle failed at block %d, iteration %d:\n%v", b, k, cerr)
			}
			nconv := o.c.Comm.AllReduceSum(b2f(converged))
			if int(nconv) == size {
				klast = k
				break
			}
		}

		// cancellation: wait on pending sends and drain in-flight messages
		o.drain(klast)

		// refresh the end state after the final interpolation
		o.refreshEnd(top)

		// block advance
		for l := 0; l <= top; l++ {
			lev[l].Advance()
		}
		if b < nblocks-1 && size > 1 {
			if rank == size-1 {
				lev[top].StartState().Pack(o.sbuf[top])
				o.c.Comm.Send(o.sbuf[top], 0, WRAPTAG)
			}
			if rank == 0 {
				o.c.Comm.Recv(o.rbuf[top], size-1, WRAPTAG)
				o.recvStart(top)
			}
		}
	}
	return
}

// b2f converts a convergence flag into a reduction summand
func b2f(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
