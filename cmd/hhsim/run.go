// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/charmbracelet/log"
	"github.com/emer/hhsim/neuron"
	"github.com/emer/hhsim/plots"
	"gonum.org/v1/plot"
)

// run simulates the configured neuron, logs a summary and saves the plot
func run(ctx context.Context, cf *Config, lg *log.Logger) (*neuron.Trajectory, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if cf.Sim.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cf.Sim.Timeout)
		defer cancel()
	}
	m := cf.HH.Model(nil)
	lg.Debug("simulating", "tend", cf.Sim.TEnd, "input", cf.Sim.Input, "vm0", float64(cf.HH.Vm),
		"m0", cf.HH.M0, "h0", cf.HH.H0, "n0", cf.HH.N0)

	st := time.Now()
	tr, err := neuron.Simulate(ctx, m, cf.Sim.Params())
	if err != nil {
		if tr != nil && tr.Solution != nil {
			t0, t1 := tr.Span()
			lg.Error("simulation stopped", "from", t0, "to", t1, "steps", tr.Stats.Steps, "err", err)
		}
		return tr, err
	}
	vr := tr.Range(0)
	lg.Info("simulated", "steps", tr.Stats.Steps, "rejected", tr.Stats.Rejected, "evals", tr.Stats.Evals,
		"samples", tr.Len(), "vmin", vr.Min, "vmax", vr.Max,
		"size", Size(tr).HR(), "elapsed", time.Since(st))
	if !cf.HH.InVmRange(vr.Min) || !cf.HH.InVmRange(vr.Max) {
		lg.Warn("membrane potential left its physiological range", "vmin", vr.Min, "vmax", vr.Max,
			"range", fmt.Sprintf("[%g, %g]", cf.HH.VmRange.Min, cf.HH.VmRange.Max))
	}
	if cf.Sim.Out == "" {
		return tr, nil
	}
	var p *plot.Plot
	if cf.Sim.All {
		p, err = plots.States(tr)
	} else {
		p, err = plots.Voltage(tr)
	}
	if err == nil {
		err = plots.Save(p, cf.Sim.Out)
	}
	if err != nil {
		return tr, fmt.Errorf("plotting to %s: %w", cf.Sim.Out, err)
	}
	lg.Info("saved plot", "file", cf.Sim.Out)
	return tr, nil
}

// Size returns the memory used by the sample times and states of the trajectory
func Size(tr *neuron.Trajectory) datasize.ByteSize {
	if tr == nil || tr.Solution == nil {
		return 0
	}
	return datasize.ByteSize(tr.Len()*(tr.Dim()+1)*8) * datasize.B
}
