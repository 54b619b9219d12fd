// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ode

import (
	"context"
	"math"

	"gonum.org/v1/gonum/floats"
)

///////////////////////////////////////////////////////////////////////
//  Dormand-Prince 5(4) coefficients

var (
	dpC = [7]float64{0, 1.0 / 5, 3.0 / 10, 4.0 / 5, 8.0 / 9, 1, 1}

	dpA = [7][6]float64{
		{},
		{1.0 / 5},
		{3.0 / 40, 9.0 / 40},
		{44.0 / 45, -56.0 / 15, 32.0 / 9},
		{19372.0 / 6561, -25360.0 / 2187, 64448.0 / 6561, -212.0 / 729},
		{9017.0 / 3168, -355.0 / 33, 46732.0 / 5247, 49.0 / 176, -5103.0 / 18656},
		{35.0 / 384, 0, 500.0 / 1113, 125.0 / 192, -2187.0 / 6784, 11.0 / 84},
	}

	// difference between the 5th and 4th order weights, for the error estimate
	dpE = [7]float64{71.0 / 57600, 0, -71.0 / 16695, 71.0 / 1920, -17253.0 / 339200, 22.0 / 525, -1.0 / 40}

	// continuous extension weights (Hairer, Norsett & Wanner)
	dpD = [7]float64{
		-12715105075.0 / 11282082432, 0, 87487479700.0 / 32700410799, -10690763975.0 / 1880347072,
		701980252875.0 / 199316789632, -1453857185.0 / 822651844, 69997945.0 / 29380423,
	}
)

// dopri holds the stage buffers for one system, reused across steps.
type dopri struct {
	f     Func
	k     [7][]float64
	ytmp  []float64
	ynew  []float64
	yerr  []float64
	evals int
}

func newDopri(f Func, n int) *dopri {
	dp := &dopri{f: f, ytmp: make([]float64, n), ynew: make([]float64, n), yerr: make([]float64, n)}
	for i := range dp.k {
		dp.k[i] = make([]float64, n)
	}
	return dp
}

func (dp *dopri) eval(t float64, y, dy []float64) {
	dp.f(t, y, dy)
	dp.evals++
}

// step computes ynew and yerr for a step of size h from (t, y).
// k[0] must already hold f(t, y); on return k[6] holds f(t+h, ynew).
func (dp *dopri) step(t, h float64, y []float64) {
	for s := 1; s < 7; s++ {
		copy(dp.ytmp, y)
		for j := 0; j < s; j++ {
			if a := dpA[s][j]; a != 0 {
				floats.AddScaled(dp.ytmp, h*a, dp.k[j])
			}
		}
		if s == 6 {
			copy(dp.ynew, dp.ytmp) // last row of A is the 5th order weights
		}
		dp.eval(t+dpC[s]*h, dp.ytmp, dp.k[s])
	}
	for i := range dp.yerr {
		dp.yerr[i] = 0
	}
	for s, e := range dpE {
		if e != 0 {
			floats.AddScaled(dp.yerr, h*e, dp.k[s])
		}
	}
}

// errNorm is the RMS of the error estimate relative to the tolerances.
func (dp *dopri) errNorm(y []float64, cf *Config) float64 {
	n := len(y)
	if n == 0 {
		return 0
	}
	sum := 0.0
	for i := range y {
		sk := cf.AbsTol + cf.RelTol*math.Max(math.Abs(y[i]), math.Abs(dp.ynew[i]))
		e := dp.yerr[i] / sk
		sum += e * e
	}
	return math.Sqrt(sum / float64(n))
}

// initStep estimates a first step size from the scale of the derivatives
// at the initial state (Hairer, Norsett & Wanner, II.4).
func (dp *dopri) initStep(t float64, y []float64, span float64, cf *Config) float64 {
	n := len(y)
	if n == 0 {
		return span
	}
	sk := make([]float64, n)
	for i := range y {
		sk[i] = cf.AbsTol + cf.RelTol*math.Abs(y[i])
	}
	rms := func(v []float64) float64 {
		sum := 0.0
		for i := range v {
			e := v[i] / sk[i]
			sum += e * e
		}
		return math.Sqrt(sum / float64(n))
	}
	d0, d1 := rms(y), rms(dp.k[0])
	h0 := 1e-6
	if d0 >= 1e-5 && d1 >= 1e-5 {
		h0 = 0.01 * d0 / d1
	}
	h0 = math.Min(h0, span)
	floats.AddScaledTo(dp.ytmp, y, h0, dp.k[0])
	f1 := dp.k[1]
	dp.eval(t+h0, dp.ytmp, f1)
	floats.SubTo(dp.yerr, f1, dp.k[0])
	d2 := rms(dp.yerr) / h0
	var h1 float64
	if dm := math.Max(d1, d2); dm <= 1e-15 {
		h1 = math.Max(1e-6, h0*1e-3)
	} else {
		h1 = math.Pow(0.01/dm, 1.0/5)
	}
	h := math.Min(math.Min(100*h0, h1), span)
	if !(h > 0) {
		h = math.Min(1e-6, span)
	}
	return h
}

func finite(y []float64) bool {
	for _, v := range y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Solve integrates f from state y0 at time t0 to time t1, returning all
// accepted steps.  y0 is not modified.  A nil cfg uses the Defaults.
// If t1 == t0 the solution holds only the initial sample.
//
// The context is checked before every step, so a deadline bounds the
// wall-clock time of the integration; Config.MaxSteps bounds the work.
// On failure, the partial solution up to the last accepted step is
// returned together with a *StepError.
func Solve(ctx context.Context, f Func, y0 []float64, t0, t1 float64, cfg *Config) (*Solution, error) {
	if cfg == nil {
		cfg = &Config{}
		cfg.Defaults()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if t1 < t0 {
		return nil, ErrInvalidSpan
	}
	n := len(y0)
	y := make([]float64, n)
	copy(y, y0)
	sol := &Solution{}
	sol.add(t0, y)
	if t1 == t0 {
		return sol, nil
	}
	if !finite(y) {
		return sol, &StepError{T: t0, Err: ErrNonFinite}
	}

	dp := newDopri(f, n)
	defer func() { sol.Stats.Evals = dp.evals }()
	dp.eval(t0, y, dp.k[0])
	if !finite(dp.k[0]) {
		return sol, &StepError{T: t0, Err: ErrNonFinite}
	}

	span := t1 - t0
	h := cfg.InitStep
	if h == 0 {
		h = dp.initStep(t0, y, span, cfg)
	}
	if cfg.MaxStep > 0 {
		h = math.Min(h, cfg.MaxStep)
	}

	t := t0
	attempts := 0
	rejected := false
	nonFinite := false
	for t < t1 {
		if err := ctx.Err(); err != nil {
			return sol, &StepError{Step: sol.Stats.Steps, T: t, H: h, Err: err}
		}
		if cfg.MaxSteps > 0 && attempts >= cfg.MaxSteps {
			return sol, &StepError{Step: sol.Stats.Steps, T: t, H: h, Err: ErrMaxSteps}
		}
		attempts++
		last := false
		if t+h >= t1 {
			h = t1 - t
			last = true
		}
		if h <= 0 || t+h == t {
			err := ErrStepTooSmall
			if nonFinite {
				err = ErrNonFinite
			}
			return sol, &StepError{Step: sol.Stats.Steps, T: t, H: h, Err: err}
		}

		dp.step(t, h, y)
		en := dp.errNorm(y, cfg)
		if math.IsNaN(en) || math.IsInf(en, 0) || !finite(dp.ynew) {
			nonFinite = true
			rejected = true
			sol.Stats.Rejected++
			h *= cfg.MinFact
			continue
		}
		nonFinite = false
		if en > 1 {
			rejected = true
			sol.Stats.Rejected++
			h *= math.Max(cfg.MinFact, cfg.Safety*math.Pow(en, -1.0/5))
			continue
		}

		if !cfg.NoDense {
			sol.addSegment(h, y, dp.ynew, dp.k)
		}
		if last {
			t = t1
		} else {
			t += h
		}
		copy(y, dp.ynew)
		dp.k[0], dp.k[6] = dp.k[6], dp.k[0]
		sol.add(t, y)
		sol.Stats.Steps++

		fac := cfg.MaxFact
		if en > 0 {
			fac = math.Min(cfg.MaxFact, math.Max(cfg.MinFact, cfg.Safety*math.Pow(en, -1.0/5)))
		}
		if rejected {
			fac = math.Min(fac, 1)
		}
		rejected = false
		h *= fac
		if cfg.MaxStep > 0 {
			h = math.Min(h, cfg.MaxStep)
		}
	}
	return sol, nil
}
