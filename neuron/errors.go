// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neuron

import (
	"errors"
)

var (
	// ErrInvalidModel is returned by Simulate for a nil model or one
	// that fails its own validation.
	ErrInvalidModel = errors.New("neuron: invalid model")

	// ErrNotImplemented is matched by *NotImplementedError.
	ErrNotImplemented = errors.New("neuron: not implemented")

	// ErrInvalidTimespan is returned by Simulate when End <= Start.
	ErrInvalidTimespan = errors.New("neuron: invalid timespan")

	// ErrStateSize is returned when a model's initial state is empty.
	ErrStateSize = errors.New("neuron: state vector must hold at least the membrane potential")
)

// NotImplementedError is returned by a model contract operation that
// the model type does not provide.
type NotImplementedError struct {
	Op string // name of the missing operation
}

func (e *NotImplementedError) Error() string {
	return "neuron: " + e.Op + " not implemented"
}

func (e *NotImplementedError) Is(target error) bool {
	return target == ErrNotImplemented
}
