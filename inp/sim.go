// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON file
package inp

import (
	"encoding/json"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Data holds global data for simulations
type Data struct {
	Desc    string `json:"desc"`    // description of simulation
	DirOut  string `json:"dirout"`  // directory for output; e.g. /tmp/gosdc
	Results bool   `json:"results"` // write per-sweep CSV results

	// derived
	FnameKey string // simulation filename key; e.g. mysim01.sim => mysim01
}

// SetDefault sets default values
func (o *Data) SetDefault() {
	o.DirOut = "/tmp/gosdc"
}

// PostProcess performs a post-processing of the just read json file
func (o *Data) PostProcess(simfilepath string) {
	if o.DirOut == "" {
		o.DirOut = "/tmp/gosdc"
	}
	base := filepath.Base(simfilepath)
	o.FnameKey = base[:len(base)-len(filepath.Ext(base))]
}

// SolverData holds time-stepping and iteration data
type SolverData struct {
	Type      string  `json:"type"`      // controller type: "sdc", "mlsdc" or "pfasst"
	NumSteps  int     `json:"nsteps"`    // number of time steps
	DeltaStep float64 `json:"dt"`        // time step size
	NumIter   int     `json:"niter"`     // maximum number of SDC iterations per step/block
	QuadType  string  `json:"quadtype"`  // quadrature type keyword
	CheckRes  bool    `json:"checkres"`  // sdc: stop iterating early when the residual tolerances are met (mlsdc and pfasst always check)
}

// SetDefault sets default values
func (o *SolverData) SetDefault() {
	o.Type = "sdc"
	o.NumSteps = 1
	o.DeltaStep = 0.1
	o.NumIter = 4
	o.QuadType = "gauss-lobatto"
}

// LevelData holds the per-level discretisation data; levels are ordered
// coarsest first
type LevelData struct {
	NumNodes  int     `json:"nnodes"`    // number of quadrature nodes
	Ndofs     int     `json:"ndofs"`     // number of spatial degrees of freedom
	NumSweeps int     `json:"nsweeps"`   // sweeps per V-cycle visit
	AbsResTol float64 `json:"absrestol"` // absolute residual tolerance; zero disables
	RelResTol float64 `json:"relrestol"` // relative residual tolerance; zero disables
}

// SetDefault sets default values
func (o *LevelData) SetDefault() {
	o.NumNodes = 3
	o.NumSweeps = 1
}

// ProblemData holds problem-specific constants
type ProblemData struct {
	Name string `json:"name"` // problem keyword; e.g. "linear", "advdiff", "vanderpol", "boris"

	// linear test problem
	Lambda float64 `json:"lambda"` // decay rate of u' = lambda*u
	U0     float64 `json:"u0"`     // initial condition

	// advection-diffusion
	Nu float64 `json:"nu"` // diffusion coefficient (also vanderpol nonlinearity)
	V  float64 `json:"v"`  // advection speed

	// van der Pol
	X0 float64 `json:"x0"` // initial position
	Y0 float64 `json:"y0"` // initial velocity

	// Boris / particle dynamics
	OmegaE    float64 `json:"omegaE"`    // electric field frequency
	OmegaB    float64 `json:"omegaB"`    // magnetic field frequency
	Epsilon   float64 `json:"epsilon"`   // electric field scaling
	Sigma     float64 `json:"sigma"`     // Coulomb smoothing parameter
	NumPrtcls int     `json:"nparticles"` // number of particles
}

// SetDefault sets default values
func (o *ProblemData) SetDefault() {
	o.Name = "linear"
	o.Lambda = -1.0
	o.U0 = 1.0
	o.Nu = 0.02
	o.V = 1.0
	o.X0 = 1.0
	o.Y0 = 0.5
	o.OmegaE = 4.9
	o.OmegaB = 25.0
	o.Epsilon = -1.0
	o.Sigma = 0.0
	o.NumPrtcls = 1
}

// Simulation holds all simulation data read from a .sim file
type Simulation struct {
	Data    Data        `json:"data"`    // global data
	Solver  SolverData  `json:"solver"`  // time-stepping and iteration data
	Levels  []LevelData `json:"levels"`  // level hierarchy, coarsest first
	Problem ProblemData `json:"problem"` // problem constants
}

// ReadSim reads a simulation file. Returns nil on errors
func ReadSim(simfilepath string) (o *Simulation) {

	// new simulation with default values
	o = new(Simulation)
	o.Data.SetDefault()
	o.Solver.SetDefault()
	o.Problem.SetDefault()

	// read file
	b, err := io.ReadFile(simfilepath)
	if err != nil {
		io.PfRed("sim file cannot be read: %v\n", err)
		return nil
	}

	// decode
	err = json.Unmarshal(b, o)
	if err != nil {
		io.PfRed("sim file is invalid: %v\n", err)
		return nil
	}

	// single-level run when no levels are given
	if len(o.Levels) == 0 {
		lev := LevelData{}
		lev.SetDefault()
		o.Levels = []LevelData{lev}
	}
	for i := range o.Levels {
		if o.Levels[i].NumNodes == 0 {
			o.Levels[i].NumNodes = 3
		}
		if o.Levels[i].NumSweeps == 0 {
			o.Levels[i].NumSweeps = 1
		}
	}

	// derived data and validation
	o.Data.PostProcess(simfilepath)
	if err = o.Validate(); err != nil {
		io.PfRed("sim file is inconsistent: %v\n", err)
		return nil
	}
	return
}

// Validate checks the consistency of the simulation data
func (o *Simulation) Validate() (err error) {
	if o.Solver.DeltaStep <= 0 {
		return chk.Err("time step must be positive. dt = %g is invalid", o.Solver.DeltaStep)
	}
	if o.Solver.NumSteps < 1 {
		return chk.Err("number of steps must be at least 1. nsteps = %d is invalid", o.Solver.NumSteps)
	}
	if o.Solver.NumIter < 1 {
		return chk.Err("number of iterations must be at least 1. niter = %d is invalid", o.Solver.NumIter)
	}
	if len(o.Levels) < 1 {
		return chk.Err("level hierarchy cannot be empty")
	}
	for i, lev := range o.Levels {
		if lev.NumNodes < 1 {
			return chk.Err("level %d: number of nodes must be at least 1. nnodes = %d is invalid", i, lev.NumNodes)
		}
		if i > 0 && lev.NumNodes < o.Levels[i-1].NumNodes {
			return chk.Err("levels must be ordered coarsest first: level %d has %d nodes but level %d has %d", i, lev.NumNodes, i-1, o.Levels[i-1].NumNodes)
		}
	}
	switch o.Solver.Type {
	case "sdc", "mlsdc", "pfasst":
	default:
		return chk.Err("cannot find controller type named %q", o.Solver.Type)
	}
	return
}
