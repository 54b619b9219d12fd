// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package chans provides voltage-gated ionic conductance channels for
Hodgkin-Huxley style single-compartment neuron models.

A Channel has a reversal potential, a maximal conductance and zero or more
GatingVar gating variables, each following first-order kinetics with voltage
dependent opening (alpha) and closing (beta) rates.  The channel current is
the maximal conductance times a combination of the gate values (e.g., m^3 h)
times the driving force (Erev - Vm).

All physical quantities are expressed in SI units using the gonum unit types.
*/
package chans

// Chans are the standard Hodgkin-Huxley ion channels, used to hold per-channel
// parameters such as maximal conductances or reversal potentials.
type Chans struct {
	Na float64 `desc:"fast voltage-gated sodium (Na+) channels -- drive the upstroke of the action potential"`
	K  float64 `desc:"delayed-rectifier potassium (K+) channels -- repolarize the membrane after a spike"`
	L  float64 `desc:"constant leak channels -- determine resting potential together with the other channels at rest"`
}

// SetAll sets all the values
func (ch *Chans) SetAll(na, k, l float64) {
	ch.Na, ch.K, ch.L = na, k, l
}
