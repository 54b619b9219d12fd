// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/emer/hhsim/hh"
	"github.com/emer/hhsim/neuron"
	"github.com/spf13/viper"
	"gonum.org/v1/gonum/unit"
)

// Config is the full configuration of a run, read from the optional
// config file, HHSIM_ environment variables and command line flags.
type Config struct {
	HH  hh.Params `mapstructure:"hh" desc:"neuron parameters"`
	Sim SimConfig `mapstructure:"sim" desc:"simulation and output settings"`
}

// SimConfig has the settings of the simulation run itself
type SimConfig struct {
	TEnd     float64       `mapstructure:"tend" def:"0.02" desc:"end time of the simulation, in seconds (starts at 0)"`
	Input    float64       `mapstructure:"input" def:"2.7e-5" desc:"injected current, in amperes"`
	Onset    float64       `mapstructure:"onset" desc:"time at which the input turns on"`
	Offset   float64       `mapstructure:"offset" desc:"time at which the input turns off -- 0 = stays on, otherwise must be after Onset"`
	Timeout  time.Duration `mapstructure:"timeout" desc:"wall clock limit on the simulation -- 0 = none"`
	MaxSteps int           `mapstructure:"maxsteps" def:"100000" desc:"maximum number of integration steps"`
	RelTol   float64       `mapstructure:"reltol" def:"1e-3" desc:"relative error tolerance"`
	AbsTol   float64       `mapstructure:"abstol" def:"1e-6" desc:"absolute error tolerance"`
	Out      string        `mapstructure:"out" desc:"file to save the plot to, format by extension -- empty = no plot"`
	All      bool          `mapstructure:"all" desc:"plot all state variables instead of just Vm"`
}

func (cf *Config) Defaults() {
	cf.HH.Defaults()
	cf.Sim.Defaults()
}

func (sc *SimConfig) Defaults() {
	sc.TEnd = 0.02
	sc.Input = 2.7e-5
	sc.Onset = 0
	sc.Offset = 0
	sc.Timeout = 0
	sc.MaxSteps = 100000
	sc.RelTol = 1e-3
	sc.AbsTol = 1e-6
	sc.Out = ""
	sc.All = false
}

// ErrInputWindow is returned for an input that turns off before it turns on
var ErrInputWindow = errors.New("sim.offset must be 0 or after sim.onset")

// Validate checks the input window and timespan
func (sc *SimConfig) Validate() error {
	if sc.Offset != 0 && sc.Offset <= sc.Onset {
		return fmt.Errorf("%w: onset %g, offset %g", ErrInputWindow, sc.Onset, sc.Offset)
	}
	if sc.Onset < 0 || sc.Offset < 0 {
		return fmt.Errorf("%w: onset %g, offset %g must be >= 0", ErrInputWindow, sc.Onset, sc.Offset)
	}
	return nil
}

// InputFunc returns the injected current as a function of time
func (sc *SimConfig) InputFunc() neuron.Input {
	switch {
	case sc.Offset > sc.Onset:
		return neuron.Step(unit.Current(sc.Input), unit.Time(sc.Onset), unit.Time(sc.Offset))
	case sc.Onset > 0:
		return neuron.Step(unit.Current(sc.Input), unit.Time(sc.Onset), unit.Time(math.Inf(1)))
	}
	return neuron.Const(unit.Current(sc.Input))
}

// Params returns the simulation parameters for these settings
func (sc *SimConfig) Params() *neuron.Params {
	p := &neuron.Params{}
	p.Defaults()
	p.End = unit.Time(sc.TEnd)
	p.Input = sc.InputFunc()
	p.Solver.MaxSteps = sc.MaxSteps
	p.Solver.RelTol = sc.RelTol
	p.Solver.AbsTol = sc.AbsTol
	return p
}

// newViper returns a viper instance reading HHSIM_ environment variables,
// e.g., HHSIM_SIM_TEND for sim.tend
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("hhsim")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// loadConfig reads the config file, if any, and decodes all settings
// on top of the defaults.
func loadConfig(v *viper.Viper, file string) (*Config, error) {
	cf := &Config{}
	cf.Defaults()
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", file, err)
		}
	}
	if err := v.Unmarshal(cf); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cf.Sim.Validate(); err != nil {
		return nil, err
	}
	cf.HH.Update()
	return cf, nil
}
