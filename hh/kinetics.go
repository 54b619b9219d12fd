// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hh

import (
	"math"

	"github.com/emer/hhsim/chans"
	"gonum.org/v1/gonum/unit"
)

///////////////////////////////////////////////////////////////////////
//  kinetics.go has the classic Hodgkin & Huxley (1952) rate constants,
//  with the resting potential at -65 mV, converted to SI units

// mV returns v in millivolts, the units the rate constants are fit in
func mV(v unit.Voltage) float64 { return float64(v) * 1000 }

// perMsec converts a rate in 1/msec to a Frequency
func perMsec(r float64) unit.Frequency { return unit.Frequency(r * 1000) }

// vtrap returns x / (exp(x/y) - 1), using the Taylor expansion
// near the removable singularity at x = 0.
func vtrap(x, y float64) float64 {
	if math.Abs(x/y) < 1e-6 {
		return y * (1 - x/y/2)
	}
	return x / (math.Exp(x/y) - 1)
}

// AlphaM is the opening rate of the sodium activation gate
func AlphaM(v unit.Voltage) unit.Frequency {
	return perMsec(0.1 * vtrap(-(mV(v) + 40), 10))
}

// BetaM is the closing rate of the sodium activation gate
func BetaM(v unit.Voltage) unit.Frequency {
	return perMsec(4 * math.Exp(-(mV(v)+65)/18))
}

// AlphaH is the opening rate of the sodium inactivation gate
func AlphaH(v unit.Voltage) unit.Frequency {
	return perMsec(0.07 * math.Exp(-(mV(v)+65)/20))
}

// BetaH is the closing rate of the sodium inactivation gate
func BetaH(v unit.Voltage) unit.Frequency {
	return perMsec(1 / (1 + math.Exp(-(mV(v)+35)/10)))
}

// AlphaN is the opening rate of the potassium activation gate
func AlphaN(v unit.Voltage) unit.Frequency {
	return perMsec(0.01 * vtrap(-(mV(v) + 55), 10))
}

// BetaN is the closing rate of the potassium activation gate
func BetaN(v unit.Voltage) unit.Frequency {
	return perMsec(0.125 * math.Exp(-(mV(v)+65)/80))
}

// NewNa returns the fast sodium channel, Gbar m^3 h (Erev - Vm)
func NewNa(gbar unit.Conductance, erev unit.Voltage, m0, h0 float64) *chans.Channel {
	return &chans.Channel{
		Name: "Na",
		Erev: erev,
		Gbar: gbar,
		Gates: []chans.GatingVar{
			{Name: "m", Init: m0, Alpha: AlphaM, Beta: BetaM},
			{Name: "h", Init: h0, Alpha: AlphaH, Beta: BetaH},
		},
		Combine: chans.PowCombine(3, 1),
	}
}

// NewK returns the delayed rectifier potassium channel, Gbar n^4 (Erev - Vm)
func NewK(gbar unit.Conductance, erev unit.Voltage, n0 float64) *chans.Channel {
	return &chans.Channel{
		Name: "K",
		Erev: erev,
		Gbar: gbar,
		Gates: []chans.GatingVar{
			{Name: "n", Init: n0, Alpha: AlphaN, Beta: BetaN},
		},
		Combine: chans.PowCombine(4),
	}
}

// NewLeak returns a leak channel without gates, Gbar (Erev - Vm)
func NewLeak(gbar unit.Conductance, erev unit.Voltage) *chans.Channel {
	return &chans.Channel{
		Name:    "Leak",
		Erev:    erev,
		Gbar:    gbar,
		Combine: chans.Unity,
	}
}
