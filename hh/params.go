// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hh

import (
	"github.com/emer/etable/v2/minmax"
	"github.com/emer/hhsim/chans"
	"github.com/emer/hhsim/neuron"
	"gonum.org/v1/gonum/unit"
)

// Params are the parameters of the standard Hodgkin-Huxley neuron, for a
// 1 cm^2 patch of squid giant axon membrane, in SI units.
type Params struct {
	Gbar    chans.Chans      `view:"inline" desc:"[Defaults: .12, .036, .0003] maximal conductances for each channel, in siemens"`
	Erev    chans.Chans      `view:"inline" desc:"[Defaults: .05, -.077, -.054387] reversal potentials for each channel, in volts"`
	C       unit.Capacitance `def:"1e-6" desc:"membrane capacitance, in farads"`
	Vm      unit.Voltage     `def:"-0.06" desc:"initial membrane potential"`
	M0      float64          `def:"0" min:"0" max:"1" desc:"initial sodium activation (m)"`
	H0      float64          `def:"1" min:"0" max:"1" desc:"initial sodium inactivation (h)"`
	N0      float64          `def:"0" min:"0" max:"1" desc:"initial potassium activation (n)"`
	Steady  bool             `desc:"start the gates at their steady state for Vm -- Update sets M0, H0, N0"`
	VmRange minmax.F64       `view:"inline" desc:"[Defaults: -0.1, 0.1] physiological range of membrane potential, in volts -- trajectories outside of it indicate a bad configuration"`
}

func (hp *Params) Defaults() {
	hp.Gbar.SetAll(0.12, 0.036, 0.0003)
	hp.Erev.SetAll(0.05, -0.077, -0.054387)
	hp.C = 1e-6
	hp.Vm = -0.06
	hp.M0 = 0
	hp.H0 = 1
	hp.N0 = 0
	hp.Steady = false
	hp.VmRange = minmax.F64{Min: -0.1, Max: 0.1}
	hp.Update()
}

// Update must be called after any changes to parameters
func (hp *Params) Update() {
	if hp.Steady {
		hp.M0 = steady(AlphaM, BetaM, hp.Vm)
		hp.H0 = steady(AlphaH, BetaH, hp.Vm)
		hp.N0 = steady(AlphaN, BetaN, hp.Vm)
	}
}

func steady(alpha, beta chans.RateFmV, v unit.Voltage) float64 {
	gv := chans.GatingVar{Alpha: alpha, Beta: beta}
	return gv.Steady(v)
}

// InVmRange returns true if v is within VmRange
func (hp *Params) InVmRange(v float64) bool {
	return v >= hp.VmRange.Min && v <= hp.VmRange.Max
}

// Model returns a new model with sodium, potassium and leak channels,
// in that order, and in as its default injected current.
func (hp *Params) Model(in neuron.Input) *Model {
	return New(InitValues{Vm: hp.Vm, C: hp.C, Input: in},
		NewNa(unit.Conductance(hp.Gbar.Na), unit.Voltage(hp.Erev.Na), hp.M0, hp.H0),
		NewK(unit.Conductance(hp.Gbar.K), unit.Voltage(hp.Erev.K), hp.N0),
		NewLeak(unit.Conductance(hp.Gbar.L), unit.Voltage(hp.Erev.L)),
	)
}
