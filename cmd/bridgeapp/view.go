// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build android

package main

import (
	"image"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/mobile/app"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/exp/gl/glutil"
	"golang.org/x/mobile/geom"
	"golang.org/x/mobile/gl"
)

// view is the surface that the software backend draws into.
// Frames are presented from the render goroutine and shown on
// the app goroutine at the next paint event.
type view struct {
	app app.App

	// gl state, only used on the app goroutine
	glctx  gl.Context
	images *glutil.Images
	image  *glutil.Image
	sz     size.Event

	mu    sync.Mutex
	size  image.Point
	frame *image.RGBA
	fresh bool
}

// attach is called when the app becomes visible, and returns
// the view as the surface to attach.
func (v *view) attach(e lifecycle.Event) any {
	v.glctx, _ = e.DrawContext.(gl.Context)
	if v.glctx != nil {
		v.images = glutil.NewImages(v.glctx)
	}
	return v
}

// release releases the gl state when the app stops being visible.
func (v *view) release() {
	if v.image != nil {
		v.image.Release()
		v.image = nil
	}
	if v.images != nil {
		v.images.Release()
		v.images = nil
	}
	v.glctx = nil
}

func (v *view) ready() bool {
	return v.glctx != nil && v.images != nil
}

func (v *view) resize(e size.Event) {
	v.sz = e
	v.mu.Lock()
	v.size = image.Pt(e.WidthPx, e.HeightPx)
	v.mu.Unlock()
}

func (v *view) Size() image.Point {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.size
}

func (v *view) Present(frame *image.RGBA) error {
	v.mu.Lock()
	if v.frame == nil || v.frame.Bounds() != frame.Bounds() {
		v.frame = image.NewRGBA(frame.Bounds())
	}
	copy(v.frame.Pix, frame.Pix)
	v.fresh = true
	v.mu.Unlock()
	v.app.Send(paint.Event{})
	return nil
}

// paint uploads the latest frame if there is a new one, and draws it
// over the whole window.
func (v *view) paint() {
	v.mu.Lock()
	if v.fresh && v.frame != nil {
		b := v.frame.Bounds()
		if v.image == nil || v.image.RGBA.Bounds() != b {
			if v.image != nil {
				v.image.Release()
			}
			v.image = v.images.NewImage(b.Dx(), b.Dy())
		}
		draw.Draw(v.image.RGBA, b, v.frame, b.Min, draw.Src)
		v.image.Upload()
		v.fresh = false
	}
	v.mu.Unlock()

	v.glctx.ClearColor(0, 0, 0, 1)
	v.glctx.Clear(gl.COLOR_BUFFER_BIT)
	if v.image == nil {
		return
	}
	v.image.Draw(v.sz,
		geom.Point{},
		geom.Point{X: v.sz.WidthPt},
		geom.Point{Y: v.sz.HeightPt},
		v.image.RGBA.Bounds(),
	)
}
