// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host provides [Adapter], which turns the host platform's
// activity and surface lifecycle callbacks into operations on a
// [bridge.Bridge]. Callbacks are sent as [Event] values to a single
// event loop goroutine, which is the only goroutine that touches the
// bridge, so they are applied one at a time in delivery order.
package host

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"sync/atomic"

	"cogentcore.org/bridge/base/errors"
	"cogentcore.org/bridge/bridge"
	"cogentcore.org/bridge/native"
)

var (
	// ErrNotCreated is returned for events sent before a
	// successful [Create] event.
	ErrNotCreated = errors.New("host: session not created")

	// ErrAlreadyCreated is returned for a second [Create] event.
	ErrAlreadyCreated = errors.New("host: session already created")

	// ErrDestroyed is returned for events sent after the
	// [Destroy] event has been forwarded.
	ErrDestroyed = errors.New("host: session destroyed")

	// ErrStopped is returned for events sent after the event
	// loop was stopped by its context.
	ErrStopped = errors.New("host: event loop stopped")

	// ErrRunning is returned by [Adapter.Run] if the event loop
	// is already running or has already run.
	ErrRunning = errors.New("host: event loop already started")
)

// request is an event waiting to be processed by the event loop.
type request struct {
	ev   Event
	done chan error
}

// Adapter forwards host lifecycle events to a [bridge.Bridge] that it
// creates on the [Create] event. It performs no validation of its own
// beyond refusing to forward anything after [Destroy]; the bridge
// decides what each event means in its current state.
//
// The On methods may be called from any goroutine, but the platform
// is expected to call them serially. Each one blocks until the event
// loop, started by [Adapter.Start] or [Adapter.Run], has processed it.
type Adapter struct {

	// Backend is the native backend the session is created on.
	Backend native.Backend

	// Observer, if set, is called on the event loop goroutine after
	// each event is forwarded, with the resulting status and error.
	Observer func(ev Event, st Status, err error)

	events    chan request
	stopped   chan struct{}
	running   atomic.Bool
	destroyed atomic.Bool
	status    atomic.Pointer[Status]

	// bridge is only accessed on the event loop goroutine
	bridge *bridge.Bridge
}

// NewAdapter returns a new [Adapter] that creates its session on
// the given backend. Its event loop must be started with
// [Adapter.Start] or [Adapter.Run] before any event is sent.
func NewAdapter(backend native.Backend) *Adapter {
	a := &Adapter{
		Backend: backend,
		events:  make(chan request),
		stopped: make(chan struct{}),
	}
	a.status.Store(&Status{})
	return a
}

// Start runs the event loop on a new goroutine.
func (a *Adapter) Start(ctx context.Context) {
	go func() {
		if err := a.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("host: event loop", "err", err)
		}
	}()
}

// Run runs the event loop on the calling goroutine. It returns nil
// after the [Destroy] event has been forwarded, or the context error
// if the context is done first. Stopping the loop through the context
// does not destroy the session.
func (a *Adapter) Run(ctx context.Context) error {
	if !a.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer close(a.stopped)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case r := <-a.events:
			err := a.forward(r.ev)
			st := a.snapshot()
			a.status.Store(&st)
			if a.Observer != nil {
				a.Observer(r.ev, st, err)
			}
			if r.ev.Type == Destroy {
				a.destroyed.Store(true)
				r.done <- err
				return nil
			}
			r.done <- err
		}
	}
}

// Send sends the given event to the event loop and waits
// for it to be processed, returning the resulting error.
func (a *Adapter) Send(ev Event) error {
	r := request{ev: ev, done: make(chan error, 1)}
	select {
	case a.events <- r:
		return <-r.done
	case <-a.stopped:
		if a.destroyed.Load() {
			return ErrDestroyed
		}
		return ErrStopped
	}
}

// OnCreate creates the rendering session, reading assets from
// the given asset source. It must be the first event. An error
// wrapping [bridge.ErrBackendInit] means that the native backend
// could not be initialized.
func (a *Adapter) OnCreate(assets fs.FS) error {
	return a.Send(Event{Type: Create, Assets: assets})
}

// OnSurfaceAvailable attaches the given platform surface.
func (a *Adapter) OnSurfaceAvailable(surface any) error {
	return a.Send(Event{Type: SurfaceAvailable, Surface: surface})
}

// OnSurfaceChanged reports a new size of the attached surface.
func (a *Adapter) OnSurfaceChanged(width, height int) error {
	return a.Send(Event{Type: SurfaceChanged, Width: width, Height: height})
}

// OnSurfaceLost detaches the attached surface.
func (a *Adapter) OnSurfaceLost() error {
	return a.Send(Event{Type: SurfaceLost})
}

// OnForeground resumes rendering.
func (a *Adapter) OnForeground() error {
	return a.Send(Event{Type: Foreground})
}

// OnBackground pauses rendering.
func (a *Adapter) OnBackground() error {
	return a.Send(Event{Type: Background})
}

// OnDestroy destroys the session. It must be the last event:
// the event loop exits after it, and every later event
// returns [ErrDestroyed].
func (a *Adapter) OnDestroy() error {
	return a.Send(Event{Type: Destroy})
}

// Valid returns whether the adapter holds a live session.
func (a *Adapter) Valid() bool {
	return a.status.Load().Valid
}

// Status returns the bridge status after the last processed event.
func (a *Adapter) Status() Status {
	return *a.status.Load()
}

// Done returns a channel that is closed when the event loop exits.
func (a *Adapter) Done() <-chan struct{} {
	return a.stopped
}

// forward applies the event to the bridge. It must only be
// called on the event loop goroutine.
func (a *Adapter) forward(ev Event) error {
	if ev.Type == Create {
		if a.bridge != nil {
			return ErrAlreadyCreated
		}
		b, err := bridge.New(a.Backend, ev.Assets)
		if err != nil {
			return err
		}
		a.bridge = b
		return nil
	}
	if a.bridge == nil {
		return ErrNotCreated
	}
	switch ev.Type {
	case SurfaceAvailable:
		return a.bridge.SurfaceAttach(ev.Surface)
	case SurfaceChanged:
		return a.bridge.SurfaceResize(ev.Width, ev.Height)
	case SurfaceLost:
		return a.bridge.SurfaceDetach()
	case Foreground:
		return a.bridge.Resume()
	case Background:
		return a.bridge.Pause()
	case Destroy:
		return a.bridge.Destroy()
	}
	return fmt.Errorf("host: unknown event type %v", ev.Type)
}

// snapshot returns the current status of the bridge.
func (a *Adapter) snapshot() Status {
	if a.bridge == nil {
		return Status{}
	}
	return Status{
		State:  a.bridge.State(),
		Paused: a.bridge.Paused(),
		Valid:  a.bridge.Valid(),
		Size:   a.bridge.Size(),
	}
}
