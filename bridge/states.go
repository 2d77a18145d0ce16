// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bridge

import "strconv"

// States are the states of the session lifecycle. Whether the
// session is paused is tracked separately, because pausing does
// not affect surface binding.
type States int32

const (
	// Uninitialized is the state before the native session
	// has been created.
	Uninitialized States = iota

	// Created is the state after the native session has been
	// created and before any surface has been attached.
	Created

	// SurfaceBound is the state while a surface is attached.
	SurfaceBound

	// SurfaceUnbound is the state after a surface has been
	// detached and before another one is attached.
	SurfaceUnbound

	// Destroyed is the final state after the native session
	// has been released. No operation is valid in it.
	Destroyed
)

var statesNames = [...]string{"Uninitialized", "Created", "SurfaceBound", "SurfaceUnbound", "Destroyed"}

// String returns the name of the state.
func (s States) String() string {
	if s < 0 || int(s) >= len(statesNames) {
		return "States(" + strconv.Itoa(int(s)) + ")"
	}
	return statesNames[s]
}

// Live returns whether the state is one in which the native
// session exists (Created or later, and not Destroyed).
func (s States) Live() bool {
	return s >= Created && s < Destroyed
}
