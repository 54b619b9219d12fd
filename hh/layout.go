// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hh

import "github.com/emer/hhsim/chans"

// Layout indexes the state vector: Offsets[ci] is where the gates of
// channel ci start, and N is the total length including Vm at 0.
// A channel without gates has an empty block at its offset.
type Layout struct {
	Offsets []int
	N       int
}

// NewLayout computes the layout for given channels
func NewLayout(chs []*chans.Channel) Layout {
	ly := Layout{Offsets: make([]int, len(chs))}
	idx := 1
	for ci, ch := range chs {
		ly.Offsets[ci] = idx
		if ch != nil {
			idx += len(ch.Gates)
		}
	}
	ly.N = idx
	return ly
}

// Index returns the state index of gate gi of channel ci
func (ly *Layout) Index(ci, gi int) int {
	return ly.Offsets[ci] + gi
}
