// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neuron

import (
	"fmt"

	"github.com/emer/hhsim/ode"
	"gonum.org/v1/gonum/unit"
)

// Params are the parameters of one simulation
type Params struct {
	Start  unit.Time  `def:"0" desc:"start of the simulated timespan"`
	End    unit.Time  `def:"0.02" desc:"end of the simulated timespan -- must be > Start"`
	Input  Input      `view:"-" desc:"injected current as a function of time -- nil = the model's own input"`
	Solver ode.Config `view:"inline" desc:"integrator tolerances and step limits -- the zero value uses the ode defaults"`
}

func (sp *Params) Defaults() {
	sp.Start = 0
	sp.End = 0.02
	sp.Solver.Defaults()
}

// Validate checks the timespan and solver settings
func (sp *Params) Validate() error {
	if !(sp.End > sp.Start) {
		return fmt.Errorf("%w: [%v, %v]", ErrInvalidTimespan, sp.Start, sp.End)
	}
	cfg := sp.SolverConfig()
	return cfg.Validate()
}

// SolverConfig returns the integrator config, with the ode defaults
// if Solver was never set.  Otherwise, zero tolerances (both of them) and
// zero step factors take their defaults, so setting only some fields works.
// A zero MaxSteps is kept only when other fields were set: it means no limit.
func (sp *Params) SolverConfig() ode.Config {
	cfg := sp.Solver
	var def ode.Config
	def.Defaults()
	if cfg == (ode.Config{}) {
		return def
	}
	if cfg.RelTol == 0 && cfg.AbsTol == 0 {
		cfg.RelTol, cfg.AbsTol = def.RelTol, def.AbsTol
	}
	if cfg.Safety == 0 {
		cfg.Safety = def.Safety
	}
	if cfg.MinFact == 0 {
		cfg.MinFact = def.MinFact
	}
	if cfg.MaxFact == 0 {
		cfg.MaxFact = def.MaxFact
	}
	return cfg
}
