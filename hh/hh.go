// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package hh implements the Hodgkin-Huxley single-compartment neuron model:

	C dVm/dt = I(t) + sum_c Gbar_c * Combine_c(x_c) * (Erev_c - Vm)

where each channel c has gating variables x_c following first-order kinetics
(see package chans).  Model satisfies the neuron.Model contract for any set
of channels; Params builds the classic squid giant axon configuration with
sodium (m^3 h), potassium (n^4) and leak channels.

The state vector is Vm (volts) followed by the gate values of each channel,
in channel order and then gate order within each channel.  Layout gives the
offset of each channel's block of gates.
*/
package hh

import (
	"errors"
	"fmt"

	"github.com/emer/hhsim/chans"
	"github.com/emer/hhsim/neuron"
	"gonum.org/v1/gonum/unit"
)

var (
	// ErrZeroCapacitance is returned by Validate when the membrane capacitance is zero.
	ErrZeroCapacitance = errors.New("hh: membrane capacitance is zero")

	// ErrNilChannel is returned by Validate when the channel list has a nil entry.
	ErrNilChannel = errors.New("hh: nil channel")
)

// VoltPerSecond returns the dimensions of dVm/dt
func VoltPerSecond() *unit.Unit {
	return unit.Volt.Unit().Div(unit.Second)
}

// VmRate returns dVm/dt in volts per second for net current i flowing into
// a membrane of capacitance c (A / F = V / s).
func VmRate(i unit.Current, c unit.Capacitance) float64 {
	return float64(i) / float64(c)
}

var (
	_ neuron.Model     = (*Model)(nil)
	_ neuron.Validator = (*Model)(nil)
	_ neuron.Namer     = (*Model)(nil)
)

// InitValues are the initial conditions and passive properties of the membrane.
type InitValues struct {
	Vm    unit.Voltage     `desc:"initial membrane potential"`
	C     unit.Capacitance `desc:"membrane capacitance -- must be nonzero"`
	Input neuron.Input     `view:"-" desc:"injected current used when the simulation does not supply one -- nil = no current"`
}

// Model is a Hodgkin-Huxley neuron with any number of channels.
// Channels are owned by the model and must not be shared or changed
// while a simulation is running.
type Model struct {
	Chans []*chans.Channel `desc:"ionic channels, in state vector order"`
	Init  InitValues       `view:"inline" desc:"initial conditions and membrane capacitance"`
}

// New returns a new model with given initial values and channels
func New(init InitValues, chs ...*chans.Channel) *Model {
	return &Model{Chans: chs, Init: init}
}

// Layout returns the state vector layout for the current channel list
func (m *Model) Layout() Layout {
	if m == nil {
		return NewLayout(nil)
	}
	return NewLayout(m.Chans)
}

// errNilModel is returned by the contract operations of a nil *Model
var errNilModel = fmt.Errorf("%w: nil *hh.Model", neuron.ErrInvalidModel)

// Validate checks for a nonzero capacitance and complete channels
func (m *Model) Validate() error {
	if m == nil {
		return errNilModel
	}
	if m.Init.C == 0 {
		return ErrZeroCapacitance
	}
	return m.validateChans()
}

func (m *Model) validateChans() error {
	for i, ch := range m.Chans {
		if ch == nil {
			return fmt.Errorf("%w: index %d", ErrNilChannel, i)
		}
		if err := ch.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// InitState returns Vm followed by the Init value of every gate
func (m *Model) InitState() ([]float64, error) {
	if m == nil {
		return nil, errNilModel
	}
	if err := m.validateChans(); err != nil {
		return nil, err
	}
	ly := m.Layout()
	u := make([]float64, ly.N)
	u[0] = float64(m.Init.Vm)
	for ci, ch := range m.Chans {
		for gi := range ch.Gates {
			u[ly.Index(ci, gi)] = ch.Gates[gi].Init
		}
	}
	return u, nil
}

// StateNames returns Vm followed by Channel.Gate names, e.g., Na.m
func (m *Model) StateNames() []string {
	if m == nil {
		return nil
	}
	nms := []string{"Vm"}
	for _, ch := range m.Chans {
		if ch == nil {
			continue
		}
		for gi := range ch.Gates {
			nms = append(nms, ch.Name+"."+ch.Gates[gi].Name)
		}
	}
	return nms
}

// RateFunc returns the Hodgkin-Huxley derivative function.  The channel
// list and its layout are captured when RateFunc is called, so later
// changes to m.Chans do not affect a returned function.
// The injected current is the one passed to the function if non-nil,
// else m.Init.Input, else zero.
func (m *Model) RateFunc() (neuron.RateFunc, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	ly := m.Layout()
	chs := make([]*chans.Channel, len(m.Chans))
	copy(chs, m.Chans)
	c := m.Init.C
	own := m.Init.Input

	return func(du, u []float64, in neuron.Input, t float64) {
		if in == nil {
			in = own
		}
		vm := unit.Voltage(u[0])
		var inet unit.Current
		if in != nil {
			inet = in(unit.Time(t))
		}
		for ci, ch := range chs {
			st := ly.Offsets[ci]
			ed := st + len(ch.Gates)
			inet += ch.Current(vm, u[st:ed])
			for gi := range ch.Gates {
				du[st+gi] = ch.Gates[gi].Rate(vm, u[st+gi])
			}
		}
		du[0] = VmRate(inet, c)
	}, nil
}
