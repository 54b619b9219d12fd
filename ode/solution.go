// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ode

import (
	"math"
	"sort"
)

// Solution is the sampled trajectory produced by Solve: the state Y[i] at
// each accepted step time T[i], starting with the initial state.
// Unless Config.NoDense was set, the state can also be evaluated at any
// time in between with At.
type Solution struct {
	T     []float64   // times of the accepted steps, increasing, T[0] = start
	Y     [][]float64 // states at T, each a separate slice
	Stats Stats       // work counters

	segs []segment
}

// segment holds the continuous extension coefficients for one step.
type segment struct {
	h float64
	r [5][]float64
}

// Len returns the number of samples
func (sl *Solution) Len() int { return len(sl.T) }

// Dim returns the number of state components
func (sl *Solution) Dim() int {
	if len(sl.Y) == 0 {
		return 0
	}
	return len(sl.Y[0])
}

// Span returns the first and last times of the solution
func (sl *Solution) Span() (t0, t1 float64) {
	if len(sl.T) == 0 {
		return 0, 0
	}
	return sl.T[0], sl.T[len(sl.T)-1]
}

// Component returns a new slice with component i of each sample.
func (sl *Solution) Component(i int) []float64 {
	c := make([]float64, len(sl.Y))
	for s, y := range sl.Y {
		c[s] = y[i]
	}
	return c
}

func (sl *Solution) add(t float64, y []float64) {
	yc := make([]float64, len(y))
	copy(yc, y)
	sl.T = append(sl.T, t)
	sl.Y = append(sl.Y, yc)
}

// addSegment records the dense output for the step of size h from y to ynew,
// with k the stage derivatives of that step.
func (sl *Solution) addSegment(h float64, y, ynew []float64, k [7][]float64) {
	n := len(y)
	var sg segment
	sg.h = h
	for i := range sg.r {
		sg.r[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		ydif := ynew[i] - y[i]
		bspl := h*k[0][i] - ydif
		sg.r[0][i] = y[i]
		sg.r[1][i] = ydif
		sg.r[2][i] = bspl
		sg.r[3][i] = ydif - h*k[6][i] - bspl
		d := 0.0
		for s, w := range dpD {
			if w != 0 {
				d += w * k[s][i]
			}
		}
		sg.r[4][i] = h * d
	}
	sl.segs = append(sl.segs, sg)
}

// At returns the state at time t, writing into dst if it has the right
// length (otherwise a new slice is allocated).  Sample times return the
// stored state exactly, other times use the 4th order continuous extension.
// Returns ErrOutOfRange for NaN or outside of the solution span, or for times between
// samples when the solution has no dense output.
func (sl *Solution) At(t float64, dst []float64) ([]float64, error) {
	n := sl.Dim()
	if len(dst) != n {
		dst = make([]float64, n)
	}
	t0, t1 := sl.Span()
	if len(sl.T) == 0 || math.IsNaN(t) || t < t0 || t > t1 {
		return dst, ErrOutOfRange
	}
	i := sort.SearchFloat64s(sl.T, t)
	if sl.T[i] == t {
		copy(dst, sl.Y[i])
		return dst, nil
	}
	if len(sl.segs) < len(sl.T)-1 {
		return dst, ErrOutOfRange
	}
	sg := &sl.segs[i-1]
	th := (t - sl.T[i-1]) / sg.h
	th1 := 1 - th
	for j := 0; j < n; j++ {
		dst[j] = sg.r[0][j] + th*(sg.r[1][j]+th1*(sg.r[2][j]+th*(sg.r[3][j]+th1*sg.r[4][j])))
	}
	return dst, nil
}
