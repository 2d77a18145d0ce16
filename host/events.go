// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"fmt"
	"image"
	"io/fs"
	"strconv"

	"cogentcore.org/bridge/bridge"
)

// EventTypes are the types of host lifecycle events.
type EventTypes int32

const (
	// Create is sent once, first, when the host activity is created.
	// It carries the asset source.
	Create EventTypes = iota

	// SurfaceAvailable is sent when the platform window surface
	// has been created. It carries the surface.
	SurfaceAvailable

	// SurfaceChanged is sent when the surface changes size.
	// It carries the new width and height. Platforms may omit it
	// when the size does not change.
	SurfaceChanged

	// SurfaceLost is sent when the surface is about to be destroyed.
	SurfaceLost

	// Foreground is sent when the host comes to the foreground.
	Foreground

	// Background is sent when the host goes to the background.
	Background

	// Destroy is sent last, once, when the host activity is destroyed.
	Destroy
)

var eventTypesNames = [...]string{"Create", "SurfaceAvailable", "SurfaceChanged", "SurfaceLost", "Foreground", "Background", "Destroy"}

// String returns the name of the event type.
func (t EventTypes) String() string {
	if t < 0 || int(t) >= len(eventTypesNames) {
		return "EventTypes(" + strconv.Itoa(int(t)) + ")"
	}
	return eventTypesNames[t]
}

// Event is one host lifecycle event.
type Event struct {
	Type EventTypes

	// Assets is the asset source, for [Create].
	Assets fs.FS

	// Surface is the platform surface, for [SurfaceAvailable].
	Surface any

	// Width and Height are the surface size, for [SurfaceChanged].
	Width, Height int
}

func (e Event) String() string {
	switch e.Type {
	case SurfaceAvailable:
		return fmt.Sprintf("%v %v", e.Type, e.Surface)
	case SurfaceChanged:
		return fmt.Sprintf("%v %dx%d", e.Type, e.Width, e.Height)
	}
	return e.Type.String()
}

// Status is a snapshot of the bridge state after an event,
// for diagnostics and tracing.
type Status struct {
	State  bridge.States
	Paused bool
	Valid  bool
	Size   image.Point
}

func (s Status) String() string {
	str := s.State.String()
	if s.State == bridge.SurfaceBound {
		str += fmt.Sprintf(" %dx%d", s.Size.X, s.Size.Y)
	}
	if s.Paused {
		str += " paused"
	}
	if !s.Valid {
		str += " invalid"
	}
	return str
}
