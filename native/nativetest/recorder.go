// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package nativetest provides a [native.Backend] that records every
// call made to it, for testing code that drives native sessions.
package nativetest

import (
	"fmt"
	"io/fs"
	"sync"

	"cogentcore.org/bridge/native"
)

// Call is one recorded call on a [Recorder].
type Call struct {

	// Op is the name of the operation: create, destroy, attach,
	// resize, detach, pause, or resume.
	Op string

	// Handle is the handle the call was made with, or the
	// handle returned for create.
	Handle native.Handle

	// Surface is the surface passed to attach.
	Surface any
}

func (c Call) String() string {
	if c.Op == "attach" {
		return fmt.Sprintf("%s %d %v", c.Op, c.Handle, c.Surface)
	}
	return fmt.Sprintf("%s %d", c.Op, c.Handle)
}

// Recorder is a [native.Backend] that records all calls. Any call
// made with a handle that is not live, an attach while a surface is
// already bound, or a detach or resize while nothing is bound is
// also recorded as a violation. It is safe for concurrent use.
type Recorder struct {

	// CreateErr, if set, is returned by Create.
	CreateErr error

	// AttachErr, if set, is returned by SurfaceAttach.
	AttachErr error

	mu         sync.Mutex
	next       native.Handle
	live       map[native.Handle]bool
	bound      map[native.Handle]bool
	calls      []Call
	violations []Call
}

var _ native.Backend = (*Recorder)(nil)

// New returns a new empty [Recorder].
func New() *Recorder {
	return &Recorder{
		live:  make(map[native.Handle]bool),
		bound: make(map[native.Handle]bool),
	}
}

// Calls returns a copy of all calls recorded so far.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Ops returns the string form of all calls recorded so far.
func (r *Recorder) Ops() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ops := make([]string, len(r.calls))
	for i, c := range r.calls {
		ops[i] = c.String()
	}
	return ops
}

// Violations returns a copy of all calls that broke the
// backend contract.
func (r *Recorder) Violations() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.violations...)
}

// Live returns whether the given handle refers to a live session.
func (r *Recorder) Live(h native.Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.live[h]
}

// Bound returns whether a surface is bound to the given handle.
func (r *Recorder) Bound(h native.Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bound[h]
}

// Reset forgets all recorded calls and violations.
// Live sessions are kept.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
	r.violations = nil
}

func (r *Recorder) Create(assets fs.FS) (native.Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		r.calls = append(r.calls, Call{Op: "create"})
		return native.InvalidHandle, r.CreateErr
	}
	r.next++
	h := r.next
	r.live[h] = true
	r.calls = append(r.calls, Call{Op: "create", Handle: h})
	return h, nil
}

func (r *Recorder) Destroy(h native.Handle) {
	r.record(Call{Op: "destroy", Handle: h})
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.live, h)
	delete(r.bound, h)
}

func (r *Recorder) SurfaceAttach(h native.Handle, surface any) error {
	c := Call{Op: "attach", Handle: h, Surface: surface}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, c)
	if !r.live[h] || r.bound[h] {
		r.violations = append(r.violations, c)
	}
	if r.AttachErr != nil {
		return r.AttachErr
	}
	r.bound[h] = true
	return nil
}

func (r *Recorder) SurfaceResize(h native.Handle) {
	c := Call{Op: "resize", Handle: h}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, c)
	if !r.live[h] || !r.bound[h] {
		r.violations = append(r.violations, c)
	}
}

func (r *Recorder) SurfaceDetach(h native.Handle) {
	c := Call{Op: "detach", Handle: h}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, c)
	if !r.live[h] || !r.bound[h] {
		r.violations = append(r.violations, c)
	}
	delete(r.bound, h)
}

func (r *Recorder) Pause(h native.Handle) {
	r.record(Call{Op: "pause", Handle: h})
}

func (r *Recorder) Resume(h native.Handle) {
	r.record(Call{Op: "resume", Handle: h})
}

// record appends the call, flagging it if the handle is not live.
func (r *Recorder) record(c Call) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, c)
	if !r.live[c.Handle] {
		r.violations = append(r.violations, c)
	}
}
