// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package software

import (
	"image"
	"sync"
)

// Target is a surface that the software backend can draw into.
// Surfaces passed to SurfaceAttach must implement it.
type Target interface {

	// Size returns the current size of the surface in pixels.
	Size() image.Point

	// Present shows the given frame on the surface. The frame is
	// reused for the next frame after Present returns, so it must
	// be copied if it is retained.
	Present(frame *image.RGBA) error
}

// Canvas is an in-memory [Target] that keeps a copy of the last
// presented frame. It is safe for concurrent use.
type Canvas struct {
	name string

	mu        sync.Mutex
	size      image.Point
	frame     *image.RGBA
	presented int
}

// NewCanvas returns a new [Canvas] with the given name and size.
func NewCanvas(name string, width, height int) *Canvas {
	return &Canvas{name: name, size: image.Pt(width, height)}
}

// String returns the name of the canvas.
func (c *Canvas) String() string {
	return c.name
}

func (c *Canvas) Size() image.Point {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// SetSize sets the size of the canvas, as a platform
// would when the window is resized.
func (c *Canvas) SetSize(width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.size = image.Pt(width, height)
}

func (c *Canvas) Present(frame *image.RGBA) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.frame == nil || c.frame.Bounds() != frame.Bounds() {
		c.frame = image.NewRGBA(frame.Bounds())
	}
	copy(c.frame.Pix, frame.Pix)
	c.presented++
	return nil
}

// Frame returns a copy of the last presented frame,
// or nil if nothing has been presented.
func (c *Canvas) Frame() *image.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.frame == nil {
		return nil
	}
	f := image.NewRGBA(c.frame.Bounds())
	copy(f.Pix, c.frame.Pix)
	return f
}

// Presented returns the number of frames presented so far.
func (c *Canvas) Presented() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.presented
}
