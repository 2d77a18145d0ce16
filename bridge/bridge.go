// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bridge provides [Bridge], which owns a single native
// rendering session and mediates every operation on it. Each
// operation is checked against the session lifecycle state before
// anything is passed to the native backend, so that no call is ever
// made with a handle that has been destroyed.
//
// A Bridge is not safe for concurrent use: the platform delivers
// lifecycle callbacks serially, and the bridge relies on that.
// See the host package for the adapter that provides that ordering.
package bridge

import (
	"fmt"
	"image"
	"io/fs"
	"log/slog"

	"cogentcore.org/bridge/base/errors"
	"cogentcore.org/bridge/native"
	"github.com/google/uuid"
)

var (
	// ErrBackendInit wraps the error returned by a native backend
	// that could not create a session. It is fatal for the rendering
	// path: there is no session, and nothing to retry or destroy.
	ErrBackendInit = errors.New("bridge: backend initialization failed")

	// ErrDestroyed is returned by every operation on a bridge whose
	// session has been destroyed.
	ErrDestroyed = errors.New("bridge: session destroyed")

	// ErrSurfaceBound is returned when a surface is attached while
	// another is still bound, which means a surface-lost event
	// was missed.
	ErrSurfaceBound = errors.New("bridge: surface already bound")

	// ErrNilSurface is returned when attaching a nil surface.
	ErrNilSurface = errors.New("bridge: nil surface")

	// ErrNilBackend is returned by [New] for a nil backend.
	ErrNilBackend = errors.New("bridge: nil backend")
)

// Bridge owns one native rendering session, and binds at most one
// platform surface to it at a time.
type Bridge struct {

	// ID uniquely identifies the bridge in log messages.
	ID string

	backend native.Backend
	session Session
	state   States
	paused  bool

	// surface is a weak reference to the bound platform surface;
	// the bridge never releases it.
	surface any
	size    image.Point

	log *slog.Logger
}

// New creates a new native session on the given backend, which reads
// its assets from the given asset source, and returns a [Bridge] that
// owns it. It loads the native libraries with [native.Load] first if
// that has not been done yet. If the backend fails to create the
// session, the returned error wraps [ErrBackendInit] and the
// rendering path should be abandoned.
func New(backend native.Backend, assets fs.FS) (*Bridge, error) {
	if backend == nil {
		return nil, ErrNilBackend
	}
	b := &Bridge{ID: uuid.NewString(), backend: backend}
	b.log = slog.With("session", b.ID)
	if err := native.Load(); err != nil {
		b.log.Warn("bridge: some native libraries failed to load", "err", err)
	}
	h, err := backend.Create(assets)
	if err == nil && !h.Valid() {
		err = errors.New("backend returned an invalid handle")
	}
	if err != nil {
		b.log.Error("bridge: backend initialization failed", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrBackendInit, err)
	}
	b.session.handle = h
	b.state = Created
	b.log.Info("bridge: session created")
	return b, nil
}

// MustNew is like [New], but panics if the session cannot be created.
func MustNew(backend native.Backend, assets fs.FS) *Bridge {
	return errors.Must1(New(backend, assets))
}

// Open is like [New], using the loaded native library with the given name.
func Open(library string, assets fs.FS) (*Bridge, error) {
	if err := native.Load(); err != nil {
		slog.Warn("bridge: some native libraries failed to load", "err", err)
	}
	backend, err := native.Get(library)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBackendInit, err)
	}
	return New(backend, assets)
}

// Destroy detaches any bound surface, releases the native session,
// and invalidates the session handle. Every later operation,
// including another Destroy, returns [ErrDestroyed].
func (b *Bridge) Destroy() error {
	h, err := b.live("destroy")
	if err != nil {
		return err
	}
	if b.state == SurfaceBound {
		b.backend.SurfaceDetach(h)
		b.log.Debug("bridge: surface detached before destroy")
	}
	b.surface = nil
	b.size = image.Point{}
	b.backend.Destroy(h)
	b.session.invalidate()
	b.state = Destroyed
	b.log.Info("bridge: session destroyed")
	return nil
}

// SurfaceAttach binds the given platform surface to the session.
// It returns [ErrSurfaceBound] if a surface is already bound, and
// the backend's error if the backend cannot use the surface; in both
// cases the binding is unchanged. If the surface has a Size method
// returning an [image.Point], that is recorded as the initial size.
func (b *Bridge) SurfaceAttach(surface any) error {
	h, err := b.live("surface attach")
	if err != nil {
		return err
	}
	if b.state == SurfaceBound {
		return b.violation("surface attach", ErrSurfaceBound)
	}
	if surface == nil {
		b.log.Warn("bridge: ignoring nil surface")
		return ErrNilSurface
	}
	if err := b.backend.SurfaceAttach(h, surface); err != nil {
		b.log.Warn("bridge: backend rejected surface", "err", err)
		return fmt.Errorf("bridge: surface attach: %w", err)
	}
	b.surface = surface
	b.size = image.Point{}
	if sz, ok := surface.(interface{ Size() image.Point }); ok {
		b.size = sz.Size()
	}
	b.state = SurfaceBound
	b.log.Debug("bridge: surface attached", "size", b.size)
	return nil
}

// SurfaceResize records the new size of the bound surface and tells
// the backend that it has changed. It does nothing if no surface is
// bound, since platforms deliver stray resize events.
func (b *Bridge) SurfaceResize(width, height int) error {
	h, err := b.live("surface resize")
	if err != nil {
		return err
	}
	if b.state != SurfaceBound {
		b.log.Debug("bridge: ignoring resize with no surface bound", "width", width, "height", height)
		return nil
	}
	b.size = image.Pt(width, height)
	b.backend.SurfaceResize(h)
	b.log.Debug("bridge: surface resized", "size", b.size)
	return nil
}

// SurfaceDetach unbinds the current surface. It does nothing if no
// surface is bound, since platforms deliver duplicate teardown events.
func (b *Bridge) SurfaceDetach() error {
	h, err := b.live("surface detach")
	if err != nil {
		return err
	}
	if b.state != SurfaceBound {
		b.log.Debug("bridge: ignoring detach with no surface bound")
		return nil
	}
	b.backend.SurfaceDetach(h)
	b.surface = nil
	b.size = image.Point{}
	b.state = SurfaceUnbound
	b.log.Debug("bridge: surface detached")
	return nil
}

// Pause tells the backend to suspend rendering work. The surface
// binding is not affected.
func (b *Bridge) Pause() error {
	h, err := b.live("pause")
	if err != nil {
		return err
	}
	b.backend.Pause(h)
	b.paused = true
	b.log.Debug("bridge: paused")
	return nil
}

// Resume tells the backend to resume rendering work suspended by
// [Bridge.Pause]. The surface binding is not affected.
func (b *Bridge) Resume() error {
	h, err := b.live("resume")
	if err != nil {
		return err
	}
	b.backend.Resume(h)
	b.paused = false
	b.log.Debug("bridge: resumed")
	return nil
}

// State returns the current lifecycle state.
func (b *Bridge) State() States {
	return b.state
}

// Paused returns whether rendering is paused.
func (b *Bridge) Paused() bool {
	return b.paused
}

// Bound returns whether a surface is bound.
func (b *Bridge) Bound() bool {
	return b.state == SurfaceBound
}

// Surface returns the bound surface, or nil.
func (b *Bridge) Surface() any {
	return b.surface
}

// Size returns the last known size of the bound surface,
// or the zero point if no surface is bound.
func (b *Bridge) Size() image.Point {
	return b.size
}

// Valid returns whether the session is live.
func (b *Bridge) Valid() bool {
	return b.session.Valid()
}

// Handle returns the session handle, which is
// [native.InvalidHandle] after [Bridge.Destroy].
func (b *Bridge) Handle() native.Handle {
	return b.session.Handle()
}

// live returns the live session handle, or [ErrDestroyed]
// as a protocol violation for the given operation.
func (b *Bridge) live(op string) (native.Handle, error) {
	h, ok := b.session.Live()
	if !ok {
		return native.InvalidHandle, b.violation(op, ErrDestroyed)
	}
	return h, nil
}

// violation reports a protocol violation: an operation that the
// platform should never have delivered in the current state. The
// operation is refused; in debug builds it also panics.
func (b *Bridge) violation(op string, err error) error {
	b.log.Error("bridge: protocol violation", "op", op, "state", b.state, "err", err)
	if Debug {
		panic(fmt.Errorf("%s: %w", op, err))
	}
	return err
}
