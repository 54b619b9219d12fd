// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neuron

import (
	"fmt"

	"github.com/emer/etable/v2/minmax"
	"github.com/emer/hhsim/ode"
	"gonum.org/v1/gonum/unit"
)

// Trajectory is the result of Simulate: the time-ordered state samples of
// the adaptive steps, with dense output in between.  Component 0 is always
// the membrane potential in volts.
type Trajectory struct {
	*ode.Solution

	// names of the state components, if the model is a Namer
	Names []string
}

// Name returns the name of state component i, or a generic one
func (tr *Trajectory) Name(i int) string {
	if i < len(tr.Names) {
		return tr.Names[i]
	}
	if i == 0 {
		return "Vm"
	}
	return fmt.Sprintf("u%d", i)
}

// Times returns the sample times
func (tr *Trajectory) Times() []unit.Time {
	ts := make([]unit.Time, len(tr.T))
	for i, t := range tr.T {
		ts[i] = unit.Time(t)
	}
	return ts
}

// Voltage returns the membrane potential at each sample
func (tr *Trajectory) Voltage() []unit.Voltage {
	vs := make([]unit.Voltage, len(tr.Y))
	for i, y := range tr.Y {
		vs[i] = unit.Voltage(y[0])
	}
	return vs
}

// VmAt returns the membrane potential at any time in the simulated span
func (tr *Trajectory) VmAt(t unit.Time) (unit.Voltage, error) {
	y, err := tr.At(float64(t), nil)
	if err != nil {
		return 0, err
	}
	return unit.Voltage(y[0]), nil
}

// Range returns the min and max of state component i over the samples
func (tr *Trajectory) Range(i int) minmax.F64 {
	var mm minmax.F64
	for s, y := range tr.Y {
		if s == 0 || y[i] < mm.Min {
			mm.Min = y[i]
		}
		if s == 0 || y[i] > mm.Max {
			mm.Max = y[i]
		}
	}
	return mm
}
