// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plots renders neuron trajectories as line charts, with time on
// the x axis, using gonum plot.
package plots

import (
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/emer/hhsim/neuron"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Default size of rendered plots
const (
	Width  = 8 * vg.Inch
	Height = 5 * vg.Inch
)

// ErrEmpty is returned for a trajectory without samples
var ErrEmpty = errors.New("plots: empty trajectory")

// Voltage returns a plot of the membrane potential over time
func Voltage(tr *neuron.Trajectory) (*plot.Plot, error) {
	return lines(tr, "Membrane Potential", "Vm (V)", 0)
}

// States returns a plot of all state components over time
func States(tr *neuron.Trajectory) (*plot.Plot, error) {
	if empty(tr) {
		return nil, ErrEmpty
	}
	idx := make([]int, tr.Dim())
	for i := range idx {
		idx[i] = i
	}
	return lines(tr, "State Variables", "value", idx...)
}

func lines(tr *neuron.Trajectory, title, ylabel string, idx ...int) (*plot.Plot, error) {
	if empty(tr) {
		return nil, ErrEmpty
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	for ci, i := range idx {
		xys := make(plotter.XYs, tr.Len())
		for s := range xys {
			xys[s].X = tr.T[s]
			xys[s].Y = tr.Y[s][i]
		}
		ln, err := plotter.NewLine(xys)
		if err != nil {
			return nil, err
		}
		ln.Color = plotutil.Color(ci)
		ln.Width = vg.Points(1.5)
		p.Add(ln)
		p.Legend.Add(tr.Name(i), ln)
	}
	p.Legend.Top = true
	return p, nil
}

func empty(tr *neuron.Trajectory) bool {
	return tr == nil || tr.Solution == nil || tr.Len() == 0
}

// Render writes the plot to w in given format: png, svg, pdf, eps, jpg, tif
func Render(p *plot.Plot, w io.Writer, format string) error {
	wt, err := p.WriterTo(Width, Height, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// Save saves the plot to a file, with the format given by its extension
func Save(p *plot.Plot, fname string) error {
	if strings.TrimPrefix(filepath.Ext(fname), ".") == "" {
		return errors.New("plots: file name needs an extension for the format: " + fname)
	}
	return p.Save(Width, Height, fname)
}
