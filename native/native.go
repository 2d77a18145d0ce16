// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package native defines the outbound interface to a native rendering
// backend: an opaque session [Handle] and the seven operations that
// act on it. It also provides the process-wide registry of backend
// libraries, which must be loaded once with [Load] before any session
// is created.
package native

import (
	"io/fs"

	"cogentcore.org/bridge/base/errors"
)

// Handle is an opaque token identifying a native rendering session.
// It is meaningful only to the [Backend] that returned it.
type Handle uintptr

// InvalidHandle is the sentinel value of a [Handle] that does not
// refer to any session, either because none was created or because
// it has been destroyed.
const InvalidHandle Handle = 0

// Valid returns whether the handle is not [InvalidHandle].
func (h Handle) Valid() bool {
	return h != InvalidHandle
}

// Backend is the interface to a native rendering backend.
// All methods other than Create take a handle previously returned
// by Create and not yet passed to Destroy; the behavior for any
// other handle is undefined. Callers must serialize calls on
// the same handle.
type Backend interface {

	// Create allocates a new native session that reads its assets
	// from the given asset source. An error means that the backend
	// could not be initialized, and there is no session to destroy.
	Create(assets fs.FS) (Handle, error)

	// Destroy releases the session and anything bound to it.
	Destroy(h Handle)

	// SurfaceAttach binds the given platform surface to the session.
	// It returns an error if the backend cannot use the surface,
	// in which case nothing is bound.
	SurfaceAttach(h Handle, surface any) error

	// SurfaceResize tells the session that the bound surface has
	// changed size. The backend queries the new size from the surface.
	SurfaceResize(h Handle)

	// SurfaceDetach unbinds the current surface from the session.
	SurfaceDetach(h Handle)

	// Pause suspends rendering work without releasing the session
	// or its surface.
	Pause(h Handle)

	// Resume restarts rendering work suspended by Pause.
	Resume(h Handle)
}

var (
	// ErrNotLoaded is returned when a library is requested before [Load].
	ErrNotLoaded = errors.New("native: libraries not loaded")

	// ErrUnknownLibrary is returned when no library is registered
	// with the requested name.
	ErrUnknownLibrary = errors.New("native: unknown library")
)
