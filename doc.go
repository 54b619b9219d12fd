// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package hhsim is the overall repository for a small framework for single
neuron biophysical models, currently the Hodgkin-Huxley model, integrated
over time under a time-varying injected current.

This top-level of the repository has no functional code -- everything is organized
into the following sub-repositories:

* chans: ionic channels composed of gating variables with first-order
alpha / beta kinetics, and the Chans struct of per-channel parameters.

* ode: an adaptive Dormand-Prince 5(4) Runge-Kutta integrator with error
control and dense output.

* neuron: the Model contract (InitState and RateFunc) that any single neuron
model implements, and Simulate, which integrates a model over a timespan
into a Trajectory.

* hh: the Hodgkin-Huxley model, built from any set of channels, plus the
standard sodium, potassium and leak channels of the squid giant axon.

* plots: line plots of trajectories, using gonum plot.

* cmd/hhsim: command line simulator, configured by flags or a config file.

* examples: eqplot plots the gate steady states and time constants over
membrane potential.

All physical quantities are in SI units, using the gonum unit types.
*/
package hhsim
