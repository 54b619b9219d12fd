// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hh

import (
	"context"
	"math"
	"testing"

	"github.com/emer/hhsim/chans"
	"github.com/emer/hhsim/neuron"
	"gonum.org/v1/gonum/unit"
)

func simParams(in neuron.Input) *neuron.Params {
	p := &neuron.Params{}
	p.Defaults()
	p.Start, p.End = 0, 0.02
	p.Input = in
	return p
}

// Leak only: dV/dt = (I + g (E - V)) / C converges to V = E + I/g
func TestSimLeak(t *testing.T) {
	const (
		erev  = -0.065
		gbar  = 0.0003
		capac = 1.0e-6
		inp   = 2.7e-5
		vm0   = -0.06
	)
	m := New(InitValues{Vm: vm0, C: capac}, NewLeak(gbar, erev))
	tr, err := neuron.Simulate(context.Background(), m, simParams(neuron.Const(inp)))
	if err != nil {
		t.Fatal(err)
	}
	vinf := erev + inp/gbar
	tau := capac / gbar
	if math.Abs(vinf-0.025) > 1e-12 {
		t.Fatalf("fixed point: %v", vinf)
	}
	for i, tm := range tr.T {
		v := tr.Y[i][0]
		cor := vinf + (vm0-vinf)*math.Exp(-tm/tau)
		if dif := math.Abs(v - cor); dif > 5e-5 {
			t.Errorf("idx: %v, t: %v, v: %v, cor: %v, dif: %v", i, tm, v, cor, dif)
		}
		if i > 0 && v < tr.Y[i-1][0] {
			t.Errorf("not monotonic at idx: %v: %v < %v", i, v, tr.Y[i-1][0])
		}
		if v > vinf {
			t.Errorf("overshoot at idx: %v: %v > %v", i, v, vinf)
		}
	}

	// tighter tolerances approach the analytic solution
	p := simParams(neuron.Const(inp))
	p.Solver.RelTol = 1e-10
	p.Solver.AbsTol = 1e-13
	tr, err = neuron.Simulate(context.Background(), m, p)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i <= 20; i++ {
		tm := 0.001 * float64(i)
		v, err := tr.VmAt(unit.Time(tm))
		if err != nil {
			t.Fatal(err)
		}
		cor := vinf + (vm0-vinf)*math.Exp(-tm/tau)
		if dif := math.Abs(float64(v) - cor); dif > 1e-8 {
			t.Errorf("tight: t: %v, v: %v, cor: %v, dif: %v", tm, v, cor, dif)
		}
	}
}

// Gates with zero rates stay at their initial value
func TestSimFrozenGate(t *testing.T) {
	ch := &chans.Channel{
		Name:    "X",
		Erev:    -0.07,
		Gbar:    0.001,
		Gates:   []chans.GatingVar{{Name: "x", Init: .4, Alpha: zeroRate, Beta: zeroRate}},
		Combine: chans.PowCombine(1),
	}
	m := New(InitValues{Vm: -0.06, C: 1e-6}, ch)
	tr, err := neuron.Simulate(context.Background(), m, simParams(neuron.Const(1e-5)))
	if err != nil {
		t.Fatal(err)
	}
	if tr.Len() < 2 {
		t.Fatalf("expected steps, got: %v", tr.Len())
	}
	for i, y := range tr.Y {
		if y[1] != .4 {
			t.Errorf("idx: %v, gate: %v != .4", i, y[1])
		}
	}
	if tr.Y[tr.Len()-1][0] == -0.06 {
		t.Errorf("voltage should still change")
	}
}

// Standard 3-channel HH neuron
func TestSimStandard(t *testing.T) {
	hp := &Params{}
	hp.Defaults()
	m := hp.Model(nil)
	tr, err := neuron.Simulate(context.Background(), m, simParams(neuron.Const(2.7e-5)))
	if err != nil {
		t.Fatal(err)
	}
	u0, _ := m.InitState()
	if tr.T[0] != 0 {
		t.Errorf("first time: %v", tr.T[0])
	}
	for i := range u0 {
		if tr.Y[0][i] != u0[i] {
			t.Errorf("first sample idx: %v, %v != %v", i, tr.Y[0][i], u0[i])
		}
	}
	if st := tr.Stats; st.Steps != tr.Len()-1 || st.Evals < 6*st.Steps {
		t.Errorf("stats: %+v for %v samples", st, tr.Len())
	}
	if tr.Dim() != 4 || len(tr.Names) != 4 || tr.Name(3) != "K.n" {
		t.Errorf("dims: %v, names: %v", tr.Dim(), tr.Names)
	}
	for i, y := range tr.Y {
		for j, v := range y {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("idx: %v, comp: %v not finite", i, j)
			}
		}
		if !hp.InVmRange(y[0]) {
			t.Errorf("idx: %v, t: %v, vm: %v out of range", i, tr.T[i], y[0])
		}
	}
	rg := tr.Range(0)
	if rg.Max < 0 {
		t.Errorf("expected action potentials with this input, max vm: %v", rg.Max)
	}
	if _, t1 := tr.Span(); t1 != 0.02 {
		t.Errorf("end: %v", t1)
	}
}
