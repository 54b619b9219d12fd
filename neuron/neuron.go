// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package neuron defines the contract for single-neuron biophysical models and
integrates their dynamics over time with Simulate.

A Model describes its state as a flat vector, with the membrane potential
(in volts) first, followed by any other state variables (e.g., channel
gating variables), and supplies a RateFunc computing the time derivative of
every component.  Simulate hands both to the adaptive integrator in package
ode, driven by the injected current in Params, and returns the Trajectory.
*/
package neuron

import (
	"gonum.org/v1/gonum/unit"
)

// Input is a current injected into the cell as a function of time.
// It must be a pure function of t.
type Input func(t unit.Time) unit.Current

// Const returns an Input with a constant current
func Const(i unit.Current) Input {
	return func(t unit.Time) unit.Current { return i }
}

// Step returns an Input that injects current i from time on until time off,
// and zero otherwise.
func Step(i unit.Current, on, off unit.Time) Input {
	return func(t unit.Time) unit.Current {
		if t >= on && t < off {
			return i
		}
		return 0
	}
}

// RateFunc computes into du the time derivative (per second) of each
// component of state u at time t (in seconds), with in the injected current.
// in may be nil, in which case the model uses its own input, if any.
// A RateFunc must be pure: the same (u, in, t) always gives the same du.
type RateFunc func(du, u []float64, in Input, t float64)

// Model is the contract every neuron model must satisfy to be simulated.
type Model interface {
	// InitState returns a new initial state vector: membrane potential
	// first, then the other state variables in model order.
	InitState() ([]float64, error)

	// RateFunc returns the derivative function for the state vector,
	// with the same ordering as InitState.
	RateFunc() (RateFunc, error)
}

// Validator is implemented by models that can check their parameters
// before a simulation starts.
type Validator interface {
	Validate() error
}

// Namer is implemented by models that can name their state components,
// in state vector order.
type Namer interface {
	StateNames() []string
}

// Unimplemented can be embedded in a model type under development:
// its contract operations fail with a *NotImplementedError naming the
// missing operation.
type Unimplemented struct{}

func (Unimplemented) InitState() ([]float64, error) {
	return nil, &NotImplementedError{Op: "InitState"}
}

func (Unimplemented) RateFunc() (RateFunc, error) {
	return nil, &NotImplementedError{Op: "RateFunc"}
}
