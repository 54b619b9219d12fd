// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chans

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/unit"
)

var (
	// ErrNoCombine is returned by Validate for a channel without a Combine function.
	ErrNoCombine = errors.New("chans: channel has no Combine function")

	// ErrNoRate is returned by Validate for a gate missing its Alpha or Beta rate.
	ErrNoRate = errors.New("chans: gating variable is missing a rate function")
)

// CombineFunc maps the current values of a channel's gating variables,
// in declaration order, to the dimensionless fraction of open channels.
// It is called with an empty slice for channels without gates.
type CombineFunc func(x []float64) float64

// Unity is the CombineFunc of channels without gates (e.g., leak):
// all channels are always open.
func Unity(x []float64) float64 { return 1 }

// PowCombine returns a CombineFunc computing the product of each gate
// raised to the corresponding power: PowCombine(3, 1) gives m^3 h.
// Gates beyond len(pows) are ignored.
func PowCombine(pows ...int) CombineFunc {
	return func(x []float64) float64 {
		f := 1.0
		for i, p := range pows {
			if i >= len(x) {
				break
			}
			for j := 0; j < p; j++ {
				f *= x[i]
			}
		}
		return f
	}
}

// Channel is one ionic conductance pathway across the membrane.
type Channel struct {
	Name    string           `desc:"name of the channel, e.g., Na, K, Leak"`
	Erev    unit.Voltage     `desc:"reversal potential -- membrane potential at which net current through the channel is zero"`
	Gbar    unit.Conductance `desc:"maximal conductance, when all channels are open"`
	Gates   []GatingVar      `desc:"gating variables, in the order their values are passed to Combine"`
	Combine CombineFunc      `view:"-" desc:"combines gate values into the fraction of open channels"`
}

// NGates returns the number of gating variables
func (ch *Channel) NGates() int { return len(ch.Gates) }

// Current returns the current flowing into the cell through the channel at
// membrane potential vm, with x the gate values (len(x) == NGates()):
//
//	I = Gbar * Combine(x) * (Erev - vm)
func (ch *Channel) Current(vm unit.Voltage, x []float64) unit.Current {
	return unit.Current(float64(ch.Gbar) * ch.Combine(x) * float64(ch.Erev-vm))
}

// Validate checks that the channel has all of its functions.
func (ch *Channel) Validate() error {
	if ch.Combine == nil {
		return fmt.Errorf("%w: %q", ErrNoCombine, ch.Name)
	}
	for i := range ch.Gates {
		gv := &ch.Gates[i]
		if gv.Alpha == nil || gv.Beta == nil {
			return fmt.Errorf("%w: %s.%s", ErrNoRate, ch.Name, gv.Name)
		}
	}
	return nil
}
