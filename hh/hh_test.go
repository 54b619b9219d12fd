// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hh

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/emer/hhsim/chans"
	"github.com/emer/hhsim/neuron"
	"gonum.org/v1/gonum/unit"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = 1.0e-9

func zeroRate(v unit.Voltage) unit.Frequency { return 0 }

func TestZeroChannels(t *testing.T) {
	m := New(InitValues{Vm: -0.06, C: 1e-6})
	u, err := m.InitState()
	if err != nil {
		t.Fatal(err)
	}
	if len(u) != 1 || u[0] != -0.06 {
		t.Errorf("init state: %v", u)
	}
	rf, err := m.RateFunc()
	if err != nil {
		t.Fatal(err)
	}
	ins := []unit.Current{0, 1e-6, 2.7e-5, -3e-5}
	for i, cur := range ins {
		du := make([]float64, 1)
		rf(du, []float64{-0.07 + .01*float64(i)}, neuron.Const(cur), 0.01)
		cor := float64(cur) / 1e-6
		if dif := math.Abs(du[0] - cor); dif > difTol {
			t.Errorf("idx: %v, dV/dt: %v, cor: %v", i, du[0], cor)
		}
	}
	du := []float64{5}
	rf(du, u, nil, 0)
	if du[0] != 0 {
		t.Errorf("no input should give dV/dt = 0, got: %v", du[0])
	}
}

func TestChannelCurrentInModel(t *testing.T) {
	hp := &Params{}
	hp.Defaults()
	m := hp.Model(nil)
	ly := m.Layout()
	im, ih := ly.Index(0, 0), ly.Index(0, 1)
	if im != 1 || ih != 2 || ly.Index(1, 0) != 3 || ly.Offsets[2] != 4 || ly.N != 4 {
		t.Fatalf("layout: %+v", ly)
	}
	us := [][]float64{
		{-0.065, .05, .6, .3},
		{-0.02, .4, .2, .5},
		{0.03, .9, .1, .7},
	}
	na := m.Chans[0]
	for i, u := range us {
		cor := 0.12 * u[im] * u[im] * u[im] * u[ih] * (0.05 - u[0])
		cur := na.Current(unit.Voltage(u[0]), u[ly.Offsets[0]:ly.Offsets[0]+na.NGates()])
		if dif := math.Abs(float64(cur) - cor); dif > 1e-15 {
			t.Errorf("idx: %v, cur: %v, cor: %v, dif: %v", i, cur, cor, dif)
		}
	}
}

func TestInitState(t *testing.T) {
	hp := &Params{}
	hp.Defaults()
	hp.M0, hp.H0, hp.N0 = .1, .8, .3
	m := hp.Model(nil)
	u, err := m.InitState()
	if err != nil {
		t.Fatal(err)
	}
	cor := []float64{-0.06, .1, .8, .3}
	if len(u) != 1+2+1+0 {
		t.Fatalf("len: %v", len(u))
	}
	for i := range cor {
		if u[i] != cor[i] {
			t.Errorf("idx: %v, u: %v, cor: %v", i, u[i], cor[i])
		}
	}
	nms := m.StateNames()
	cnms := []string{"Vm", "Na.m", "Na.h", "K.n"}
	for i := range cnms {
		if nms[i] != cnms[i] {
			t.Errorf("name idx: %v, %v != %v", i, nms[i], cnms[i])
		}
	}
}

func TestRateFuncIdempotent(t *testing.T) {
	hp := &Params{}
	hp.Defaults()
	m := hp.Model(neuron.Const(2.7e-5))
	rf1, _ := m.RateFunc()
	rf2, _ := m.RateFunc()
	u := []float64{-0.05, .2, .5, .4}
	du1 := make([]float64, 4)
	du2 := make([]float64, 4)
	rf1(du1, u, nil, 0.005)
	rf1(du1, u, nil, 0.005)
	rf2(du2, u, nil, 0.005)
	for i := range du1 {
		if du1[i] != du2[i] {
			t.Errorf("idx: %v, %v != %v", i, du1[i], du2[i])
		}
	}
	if u[0] != -0.05 || u[3] != .4 {
		t.Errorf("state modified: %v", u)
	}
}

func TestRateFuncSnapshot(t *testing.T) {
	hp := &Params{}
	hp.Defaults()
	m := hp.Model(nil)
	rf, _ := m.RateFunc()
	m.Chans = m.Chans[:1]
	du := make([]float64, 4)
	rf(du, []float64{-0.065, .05, .6, .3}, nil, 0)
	if du[3] == 0 {
		t.Errorf("rate function should still include the K channel")
	}
}

func TestRateFuncInput(t *testing.T) {
	m := New(InitValues{Vm: -0.06, C: 1e-6, Input: neuron.Const(1e-6)})
	rf, _ := m.RateFunc()
	du := make([]float64, 1)
	rf(du, []float64{0}, nil, 0)
	if math.Abs(du[0]-1) > difTol {
		t.Errorf("model input: %v != 1", du[0])
	}
	rf(du, []float64{0}, neuron.Const(2e-6), 0)
	if math.Abs(du[0]-2) > difTol {
		t.Errorf("simulation input should override: %v != 2", du[0])
	}
}

func TestGatelessChannel(t *testing.T) {
	called := 0
	ch := &chans.Channel{Name: "Leak", Erev: -0.065, Gbar: 0.0003, Combine: func(x []float64) float64 {
		called++
		if len(x) != 0 {
			t.Errorf("expected empty gates, got: %v", x)
		}
		return 1
	}}
	m := New(InitValues{Vm: -0.06, C: 1e-6}, ch)
	rf, _ := m.RateFunc()
	du := make([]float64, 1)
	rf(du, []float64{-0.06}, nil, 0)
	cor := 0.0003 * (-0.065 + 0.06) / 1e-6
	if math.Abs(du[0]-cor) > difTol || called != 1 {
		t.Errorf("dV/dt: %v, cor: %v, called: %v", du[0], cor, called)
	}
}

func TestValidate(t *testing.T) {
	m := New(InitValues{Vm: -0.06, C: 0})
	if err := m.Validate(); !errors.Is(err, ErrZeroCapacitance) {
		t.Errorf("expected ErrZeroCapacitance, got: %v", err)
	}
	if _, err := m.RateFunc(); !errors.Is(err, ErrZeroCapacitance) {
		t.Errorf("expected ErrZeroCapacitance, got: %v", err)
	}
	m = New(InitValues{Vm: -0.06, C: 1e-6}, nil)
	if err := m.Validate(); !errors.Is(err, ErrNilChannel) {
		t.Errorf("expected ErrNilChannel, got: %v", err)
	}
	if _, err := m.InitState(); !errors.Is(err, ErrNilChannel) {
		t.Errorf("expected ErrNilChannel, got: %v", err)
	}
	m = New(InitValues{Vm: -0.06, C: 1e-6}, &chans.Channel{Name: "X"})
	if err := m.Validate(); !errors.Is(err, chans.ErrNoCombine) {
		t.Errorf("expected ErrNoCombine, got: %v", err)
	}
	_, err := neuron.Simulate(context.Background(), New(InitValues{}), nil)
	if !errors.Is(err, neuron.ErrInvalidModel) || !errors.Is(err, ErrZeroCapacitance) {
		t.Errorf("Simulate should reject zero capacitance: %v", err)
	}
}

func TestNilModel(t *testing.T) {
	var m *Model
	if err := m.Validate(); !errors.Is(err, neuron.ErrInvalidModel) {
		t.Errorf("Validate: expected ErrInvalidModel, got: %v", err)
	}
	if _, err := m.InitState(); !errors.Is(err, neuron.ErrInvalidModel) {
		t.Errorf("InitState: expected ErrInvalidModel, got: %v", err)
	}
	if _, err := m.RateFunc(); !errors.Is(err, neuron.ErrInvalidModel) {
		t.Errorf("RateFunc: expected ErrInvalidModel, got: %v", err)
	}
	if nms := m.StateNames(); nms != nil {
		t.Errorf("StateNames: expected nil, got: %v", nms)
	}
	if ly := m.Layout(); ly.N != 1 {
		t.Errorf("Layout N: %v != 1", ly.N)
	}
	tr, err := neuron.Simulate(context.Background(), m, nil)
	if !errors.Is(err, neuron.ErrInvalidModel) {
		t.Errorf("Simulate: expected ErrInvalidModel, got: %v", err)
	}
	if tr != nil {
		t.Errorf("Simulate: expected no trajectory, got: %v", tr.Len())
	}
}

func TestVmRateUnits(t *testing.T) {
	dv := unit.Ampere.Unit().Div(unit.Farad)
	if !unit.DimensionsMatch(dv, VoltPerSecond()) {
		t.Errorf("A/F dimensions %v do not match V/s", dv)
	}
	if unit.DimensionsMatch(unit.Ampere.Unit().Div(unit.Siemens), VoltPerSecond()) {
		t.Errorf("A/S should be volts, not V/s")
	}
	if r := VmRate(2.7e-5, 1e-6); math.Abs(r-27) > difTol {
		t.Errorf("VmRate: %v != 27", r)
	}
}

func TestKinetics(t *testing.T) {
	// values at rest (-65 mV), in 1/msec
	rates := []struct {
		name string
		fun  chans.RateFmV
		cor  float64
	}{
		{"AlphaM", AlphaM, 2.5 / (math.Exp(2.5) - 1)},
		{"BetaM", BetaM, 4},
		{"AlphaH", AlphaH, 0.07},
		{"BetaH", BetaH, 1 / (1 + math.Exp(3))},
		{"AlphaN", AlphaN, 0.1 / (math.Exp(1) - 1)},
		{"BetaN", BetaN, 0.125},
	}
	for _, r := range rates {
		v := float64(r.fun(-0.065)) / 1000
		if dif := math.Abs(v - r.cor); dif > difTol {
			t.Errorf("%s: %v != %v", r.name, v, r.cor)
		}
	}
	// removable singularities
	sing := []struct {
		fun chans.RateFmV
		v   unit.Voltage
		cor float64
	}{{AlphaM, -0.040, 1}, {AlphaN, -0.055, 0.1}}
	for i, s := range sing {
		for _, dv := range []unit.Voltage{0, 1e-12, -1e-12, 1e-7} {
			r := float64(s.fun(s.v+dv)) / 1000
			if math.IsNaN(r) || math.Abs(r-s.cor) > 1e-5 {
				t.Errorf("idx: %v, dv: %v, rate: %v, cor: %v", i, dv, r, s.cor)
			}
		}
	}
}

func TestSteadyInit(t *testing.T) {
	hp := &Params{}
	hp.Defaults()
	hp.Steady = true
	hp.Vm = -0.065
	hp.Update()
	m := hp.Model(nil)
	rf, _ := m.RateFunc()
	u, _ := m.InitState()
	du := make([]float64, len(u))
	rf(du, u, nil, 0)
	for i := 1; i < len(du); i++ {
		if math.Abs(du[i]) > 1e-9 {
			t.Errorf("gate %v not at steady state: du: %v", m.StateNames()[i], du[i])
		}
	}
	if hp.M0 <= 0 || hp.M0 >= .1 || hp.H0 <= .5 || hp.N0 <= .2 || hp.N0 >= .4 {
		t.Errorf("unexpected resting gates: m: %v, h: %v, n: %v", hp.M0, hp.H0, hp.N0)
	}
}
