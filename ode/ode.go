// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package ode integrates systems of ordinary differential equations

	dy/dt = f(t, y)

with the adaptive explicit Runge-Kutta method of Dormand and Prince, an
embedded 5(4) pair with first-same-as-last evaluation and a 4th order
continuous extension, so the returned Solution can be evaluated at any time
within the integrated span.

The right-hand side Func must be pure: it is evaluated at points chosen by
the step size controller, including for steps that are later rejected.
*/
package ode

import (
	"errors"
	"fmt"
)

// Func computes the derivative of state y at time t into dy.
// It must not retain or modify y.
type Func func(t float64, y, dy []float64)

var (
	// ErrInvalidSpan is returned when the end time is before the start time.
	ErrInvalidSpan = errors.New("ode: end time before start time")

	// ErrMaxSteps is returned when Config.MaxSteps steps were taken
	// before reaching the end time.
	ErrMaxSteps = errors.New("ode: maximum number of steps exceeded")

	// ErrStepTooSmall is returned when the step size controller drives the
	// step below the resolution of the current time.
	ErrStepTooSmall = errors.New("ode: step size too small")

	// ErrNonFinite is returned when the state contains NaN or Inf values.
	ErrNonFinite = errors.New("ode: non-finite state (NaN or Inf)")

	// ErrOutOfRange is returned by Solution.At for times outside the solution.
	ErrOutOfRange = errors.New("ode: time outside of solution span")
)

// StepError records where an integration failed.
type StepError struct {
	Step int     // number of accepted steps before the failure
	T    float64 // time reached
	H    float64 // step size being attempted
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("ode: step %d (t=%g, h=%g): %v", e.Step, e.T, e.H, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Config has the error tolerances and step size limits for Solve.
type Config struct {
	RelTol   float64 `def:"1e-3" min:"0" desc:"relative error tolerance per step"`
	AbsTol   float64 `def:"1e-6" min:"0" desc:"absolute error tolerance per step"`
	InitStep float64 `def:"0" min:"0" desc:"size of the first step -- 0 = chosen automatically from the derivative at the initial state"`
	MaxStep  float64 `def:"0" min:"0" desc:"maximum step size -- 0 = the whole span"`
	MaxSteps int     `def:"100000" min:"0" desc:"maximum number of attempted steps (accepted + rejected) -- 0 = no limit"`
	Safety   float64 `def:"0.9" desc:"safety factor on the optimal step size estimate"`
	MinFact  float64 `def:"0.2" desc:"minimum factor by which the step size can shrink in one step"`
	MaxFact  float64 `def:"10" desc:"maximum factor by which the step size can grow in one step"`
	NoDense  bool    `desc:"if true, do not keep the continuous extension -- Solution.At is then limited to stored sample times"`
}

func (cf *Config) Defaults() {
	cf.RelTol = 1e-3
	cf.AbsTol = 1e-6
	cf.InitStep = 0
	cf.MaxStep = 0
	cf.MaxSteps = 100000
	cf.Safety = 0.9
	cf.MinFact = 0.2
	cf.MaxFact = 10
	cf.NoDense = false
}

// Validate checks the tolerances and limits.
func (cf *Config) Validate() error {
	switch {
	case cf.RelTol <= 0 && cf.AbsTol <= 0:
		return errors.New("ode: at least one of RelTol, AbsTol must be > 0")
	case cf.RelTol < 0 || cf.AbsTol < 0:
		return errors.New("ode: tolerances must be >= 0")
	case cf.InitStep < 0 || cf.MaxStep < 0 || cf.MaxSteps < 0:
		return errors.New("ode: step limits must be >= 0")
	case cf.Safety <= 0 || cf.Safety > 1:
		return fmt.Errorf("ode: Safety %g not in (0,1]", cf.Safety)
	case cf.MinFact <= 0 || cf.MinFact > 1 || cf.MaxFact < 1:
		return fmt.Errorf("ode: step factor limits [%g, %g] invalid", cf.MinFact, cf.MaxFact)
	}
	return nil
}

// Stats counts the work done by Solve
type Stats struct {
	Steps    int // accepted steps
	Rejected int // rejected steps
	Evals    int // evaluations of Func
}
