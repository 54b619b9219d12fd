// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chans

import (
	"gonum.org/v1/gonum/unit"
)

// RateFmV is a voltage-dependent transition rate of a gating variable.
// It must be a pure function: the integrator calls it an arbitrary number
// of times, at arbitrary voltages.
type RateFmV func(v unit.Voltage) unit.Frequency

// GatingVar is one activation or inactivation variable of a channel,
// following first-order kinetics:
//
//	dx/dt = Alpha(V) (1 - x) - Beta(V) x
type GatingVar struct {
	Name  string  `desc:"name of the gate, e.g., m, h, n -- used to label state components"`
	Init  float64 `desc:"initial fraction of open gates -- conventionally in [0,1] but not enforced"`
	Alpha RateFmV `view:"-" desc:"opening rate as a function of membrane potential"`
	Beta  RateFmV `view:"-" desc:"closing rate as a function of membrane potential"`
}

// Rate returns dx/dt in 1/s for gate value x at membrane potential v.
// x is not clamped to [0,1].
func (gv *GatingVar) Rate(v unit.Voltage, x float64) float64 {
	return float64(gv.Alpha(v))*(1-x) - float64(gv.Beta(v))*x
}

// Steady returns the steady-state gate value alpha / (alpha + beta) at v.
// Returns Init if both rates are zero, as nothing moves the gate.
func (gv *GatingVar) Steady(v unit.Voltage) float64 {
	a, b := float64(gv.Alpha(v)), float64(gv.Beta(v))
	if a+b == 0 {
		return gv.Init
	}
	return a / (a + b)
}

// Tau returns the relaxation time constant 1 / (alpha + beta) at v.
// Returns +Inf if both rates are zero.
func (gv *GatingVar) Tau(v unit.Voltage) unit.Time {
	return unit.Time(1 / float64(gv.Alpha(v)+gv.Beta(v)))
}
