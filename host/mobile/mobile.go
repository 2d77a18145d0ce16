// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mobile translates golang.org/x/mobile app events
// into [host.Adapter] lifecycle callbacks.
package mobile

import (
	"io/fs"

	"cogentcore.org/bridge/base/errors"
	"cogentcore.org/bridge/host"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/size"
)

// Translator turns x/mobile lifecycle and size events into calls
// on an [host.Adapter]. A single lifecycle event may cross several
// stages; the resulting calls are made in stage order, upward when
// the app comes up and downward when it goes away.
type Translator struct {

	// Adapter receives the translated callbacks.
	Adapter *host.Adapter

	// Assets is the asset source passed on create.
	Assets fs.FS

	// Surface returns the platform surface when the app becomes
	// visible. The event that made it visible is passed so that
	// its draw context can be used.
	Surface func(e lifecycle.Event) any

	stage lifecycle.Stage
}

// NewTranslator returns a new [Translator] for the given adapter and assets.
func NewTranslator(a *host.Adapter, assets fs.FS, surface func(e lifecycle.Event) any) *Translator {
	return &Translator{Adapter: a, Assets: assets, Surface: surface}
}

// Stage returns the last lifecycle stage reached.
func (t *Translator) Stage() lifecycle.Stage {
	return t.stage
}

// Lifecycle translates a lifecycle event. It returns the errors
// of all callbacks made, joined.
func (t *Translator) Lifecycle(e lifecycle.Event) error {
	var errs []error
	add := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}
	if e.Crosses(lifecycle.StageAlive) == lifecycle.CrossOn {
		add(t.Adapter.OnCreate(t.Assets))
	}
	if e.Crosses(lifecycle.StageVisible) == lifecycle.CrossOn {
		var surface any
		if t.Surface != nil {
			surface = t.Surface(e)
		}
		add(t.Adapter.OnSurfaceAvailable(surface))
	}
	if e.Crosses(lifecycle.StageFocused) == lifecycle.CrossOn {
		add(t.Adapter.OnForeground())
	}
	if e.Crosses(lifecycle.StageFocused) == lifecycle.CrossOff {
		add(t.Adapter.OnBackground())
	}
	if e.Crosses(lifecycle.StageVisible) == lifecycle.CrossOff {
		add(t.Adapter.OnSurfaceLost())
	}
	if e.Crosses(lifecycle.StageAlive) == lifecycle.CrossOff {
		add(t.Adapter.OnDestroy())
	}
	t.stage = e.To
	return errors.Join(errs...)
}

// Size translates a size event. Sizes reported while the app is
// not visible are dropped, since there is no surface to resize.
func (t *Translator) Size(e size.Event) error {
	if t.stage < lifecycle.StageVisible {
		return nil
	}
	return t.Adapter.OnSurfaceChanged(e.WidthPx, e.HeightPx)
}

// Handle translates the given app event if it is a lifecycle
// or size event, and ignores it otherwise.
func (t *Translator) Handle(e any) error {
	switch e := e.(type) {
	case lifecycle.Event:
		return t.Lifecycle(e)
	case size.Event:
		return t.Size(e)
	}
	return nil
}
