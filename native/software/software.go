// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package software implements a pure Go [native.Backend] that draws
// a [Scene] into [Target] surfaces. Each session with a bound surface
// runs its own render goroutine, which is started when the surface is
// attached and stopped and joined when it is detached.
//
// The backend registers itself as the "software" library.
package software

import (
	"fmt"
	"image"
	"io/fs"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"cogentcore.org/bridge/base/errors"
	"cogentcore.org/bridge/base/reflectx"
	"cogentcore.org/bridge/native"
)

func init() {
	native.Register("software", func() (native.Backend, error) {
		return New(Options{}), nil
	})
}

var (
	// ErrUnsupportedSurface is returned by SurfaceAttach for surfaces
	// that do not implement [Target].
	ErrUnsupportedSurface = errors.New("software: surface does not implement Target")

	// ErrSurfaceBound is returned by SurfaceAttach when the session
	// is already drawing into a surface.
	ErrSurfaceBound = errors.New("software: surface already bound")
)

// Options are the options for a software [Backend].
type Options struct {

	// FrameRate is the number of frames drawn per second
	// while a surface is bound and the session is not paused.
	FrameRate int `default:"30"`

	// SceneFile is the name of the scene file in the asset source.
	SceneFile string `default:"scene.toml"`
}

// Defaults sets zero and invalid fields to their default values.
func (o *Options) Defaults() {
	if o.FrameRate < 0 {
		o.FrameRate = 0
	}
	errors.Log(reflectx.SetFromDefaultTags(o))
}

// Backend is the software [native.Backend].
// It is safe for concurrent use.
type Backend struct {
	opts Options

	mu       sync.Mutex
	next     native.Handle
	sessions map[native.Handle]*session
}

var _ native.Backend = (*Backend)(nil)

// session is the state of one native session.
type session struct {
	scene  *Scene
	target Target

	paused  atomic.Bool
	resized atomic.Bool
	frames  atomic.Uint64

	// stop and done are non-nil while the render goroutine runs
	stop chan struct{}
	done chan struct{}
}

// New returns a new software [Backend] with the given options.
func New(opts Options) *Backend {
	opts.Defaults()
	return &Backend{opts: opts, sessions: make(map[native.Handle]*session)}
}

// Options returns the options of the backend.
func (b *Backend) Options() Options {
	return b.opts
}

func (b *Backend) Create(assets fs.FS) (native.Handle, error) {
	sc, err := OpenScene(assets, b.opts.SceneFile)
	if err != nil {
		return native.InvalidHandle, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	h := b.next
	b.sessions[h] = &session{scene: sc}
	slog.Debug("software: created session", "handle", h, "shapes", len(sc.Shapes))
	return h, nil
}

func (b *Backend) Destroy(h native.Handle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := b.session(h)
	if s == nil {
		return
	}
	s.stopRender()
	delete(b.sessions, h)
	slog.Debug("software: destroyed session", "handle", h, "frames", s.frames.Load())
}

func (b *Backend) SurfaceAttach(h native.Handle, surface any) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := b.session(h)
	if s == nil {
		return fmt.Errorf("software: unknown session %d", h)
	}
	if s.stop != nil {
		return ErrSurfaceBound
	}
	t, ok := surface.(Target)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnsupportedSurface, surface)
	}
	s.target = t
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.render(t, s.stop, s.done, time.Second/time.Duration(b.opts.FrameRate))
	return nil
}

func (b *Backend) SurfaceResize(h native.Handle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if s := b.session(h); s != nil {
		s.resized.Store(true)
	}
}

func (b *Backend) SurfaceDetach(h native.Handle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if s := b.session(h); s != nil {
		s.stopRender()
	}
}

func (b *Backend) Pause(h native.Handle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if s := b.session(h); s != nil {
		s.paused.Store(true)
	}
}

func (b *Backend) Resume(h native.Handle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if s := b.session(h); s != nil {
		s.paused.Store(false)
	}
}

// Frames returns the number of frames the given session has
// presented over its lifetime.
func (b *Backend) Frames(h native.Handle) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if s := b.sessions[h]; s != nil {
		return s.frames.Load()
	}
	return 0
}

// Sessions returns the number of live sessions.
func (b *Backend) Sessions() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.sessions)
}

// session returns the session for the given handle, logging an
// error if there is none. It must be called with mu locked.
func (b *Backend) session(h native.Handle) *session {
	s := b.sessions[h]
	if s == nil {
		slog.Error("software: unknown session handle", "handle", h)
	}
	return s
}

// stopRender stops the render goroutine if it is running
// and waits for it to exit.
func (s *session) stopRender() {
	if s.stop == nil {
		return
	}
	close(s.stop)
	<-s.done
	s.stop = nil
	s.done = nil
	s.target = nil
}

// render is the render loop for one bound surface. It draws
// one frame every interval until stop is closed, and closes
// done when it exits.
func (s *session) render(t Target, stop <-chan struct{}, done chan<- struct{}, interval time.Duration) {
	defer close(done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	var frame *image.RGBA
	for {
		if !s.paused.Load() {
			frame = s.drawFrame(t, frame)
		}
		select {
		case <-stop:
			return
		case <-ticker.C:
		}
	}
}

// drawFrame draws and presents one frame, reusing the given
// frame buffer unless the surface size has changed.
func (s *session) drawFrame(t Target, frame *image.RGBA) *image.RGBA {
	sz := t.Size()
	if sz.X <= 0 || sz.Y <= 0 {
		return frame
	}
	if s.resized.Swap(false) || frame == nil || frame.Bounds().Size() != sz {
		frame = image.NewRGBA(image.Rectangle{Max: sz})
	}
	s.scene.Render(frame)
	if err := t.Present(frame); err != nil {
		slog.Warn("software: present failed", "err", err)
		return frame
	}
	s.frames.Add(1)
	return frame
}
