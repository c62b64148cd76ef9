// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements the CSV results writer
package out

import (
	"bytes"
	"os"

	"github.com/cpmech/gosl/io"
)

// Report accumulates per-sweep results and writes them as a CSV file with
// one line per node/particle. A particle index of -1 denotes cloud means or
// scalar problems
type Report struct {
	buf bytes.Buffer
}

// NewReport returns a report with the CSV header in place
func NewReport() (o *Report) {
	o = new(Report)
	io.Ff(&o.buf, "step,iter,particle,x,y,z,u,v,w,energy,drift,residual\n")
	return
}

// Write appends one line of results
func (o *Report) Write(step, iter, particle int, x, y, z, u, v, w, energy, drift, residual float64) {
	io.Ff(&o.buf, "%d,%d,%d,%23.15e,%23.15e,%23.15e,%23.15e,%23.15e,%23.15e,%23.15e,%23.15e,%23.15e\n",
		step, iter, particle, x, y, z, u, v, w, energy, drift, residual)
}

// Save writes the accumulated results to dirout/fnkey.csv
func (o *Report) Save(dirout, fnkey string) {
	os.MkdirAll(dirout, 0777)
	io.WriteFile(io.Sf("%s/%s.csv", dirout, fnkey), &o.buf)
}
