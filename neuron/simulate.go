// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neuron

import (
	"context"
	"errors"
	"fmt"

	"github.com/emer/hhsim/ode"
)

// Simulate integrates model m over the timespan of p, with p.Input as the
// injected current, and returns the trajectory of all accepted steps.
// The first sample is exactly the model's initial state.
//
// All preconditions are checked before any integration: a nil model or one
// whose Validate fails gives ErrInvalidModel, an empty or inverted timespan
// gives ErrInvalidTimespan, and errors from the contract operations (e.g.,
// ErrNotImplemented) are returned as is.  Integration failures from package
// ode are returned wrapped, along with the partial trajectory.
// The context bounds the integration time.
func Simulate(ctx context.Context, m Model, p *Params) (*Trajectory, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil model", ErrInvalidModel)
	}
	if vl, ok := m.(Validator); ok {
		if err := vl.Validate(); err != nil {
			if errors.Is(err, ErrInvalidModel) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %w", ErrInvalidModel, err)
		}
	}
	if p == nil {
		p = &Params{}
		p.Defaults()
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	u0, err := m.InitState()
	if err != nil {
		return nil, err
	}
	if len(u0) == 0 {
		return nil, ErrStateSize
	}
	rf, err := m.RateFunc()
	if err != nil {
		return nil, err
	}

	in := p.Input
	f := func(t float64, y, dy []float64) {
		rf(dy, y, in, t)
	}
	cfg := p.SolverConfig()
	sol, err := ode.Solve(ctx, f, u0, float64(p.Start), float64(p.End), &cfg)
	var tr *Trajectory
	if sol != nil {
		tr = &Trajectory{Solution: sol}
		if nm, ok := m.(Namer); ok {
			tr.Names = nm.StateNames()
		}
	}
	if err != nil {
		return tr, fmt.Errorf("neuron: integration failed: %w", err)
	}
	return tr, nil
}
