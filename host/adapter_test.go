// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"context"
	"image"
	"testing"
	"time"

	"cogentcore.org/bridge/bridge"
	"cogentcore.org/bridge/native/nativetest"
	"cogentcore.org/bridge/native/software"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T) (*Adapter, *nativetest.Recorder) {
	t.Helper()
	rec := nativetest.New()
	a := NewAdapter(rec)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	a.Start(ctx)
	return a, rec
}

func TestEventTypes(t *testing.T) {
	assert.Equal(t, "SurfaceAvailable", SurfaceAvailable.String())
	assert.Equal(t, "Destroy", Destroy.String())
	assert.Equal(t, "EventTypes(12)", EventTypes(12).String())

	assert.Equal(t, "SurfaceChanged 900x600", Event{Type: SurfaceChanged, Width: 900, Height: 600}.String())
	assert.Equal(t, "SurfaceAvailable S1", Event{Type: SurfaceAvailable, Surface: software.NewCanvas("S1", 1, 1)}.String())
	assert.Equal(t, "Background", Event{Type: Background}.String())
}

func TestStatus(t *testing.T) {
	st := Status{State: bridge.SurfaceBound, Valid: true, Size: image.Pt(800, 600), Paused: true}
	assert.Equal(t, "SurfaceBound 800x600 paused", st.String())
	assert.Equal(t, "Destroyed invalid", Status{State: bridge.Destroyed}.String())
}

func TestAdapterScenario(t *testing.T) {
	a, rec := newTestAdapter(t)
	assert.False(t, a.Valid())

	require.NoError(t, a.OnCreate(nil))
	assert.True(t, a.Valid())
	require.NoError(t, a.OnSurfaceAvailable(software.NewCanvas("S1", 800, 600)))
	require.NoError(t, a.OnSurfaceChanged(900, 600))
	assert.Equal(t, image.Pt(900, 600), a.Status().Size)
	require.NoError(t, a.OnBackground())
	assert.True(t, a.Status().Paused)
	require.NoError(t, a.OnForeground())
	require.NoError(t, a.OnSurfaceLost())
	assert.Equal(t, bridge.SurfaceUnbound, a.Status().State)
	require.NoError(t, a.OnDestroy())
	assert.False(t, a.Valid())

	select {
	case <-a.Done():
	case <-time.After(time.Second):
		t.Fatal("event loop did not exit after destroy")
	}

	assert.Equal(t, []string{"create 1", "attach 1 S1", "resize 1", "pause 1", "resume 1", "detach 1", "destroy 1"}, rec.Ops())
	assert.Empty(t, rec.Violations())
}

func TestAdapterNotCreated(t *testing.T) {
	a, rec := newTestAdapter(t)
	assert.ErrorIs(t, a.OnSurfaceAvailable(software.NewCanvas("S1", 10, 10)), ErrNotCreated)
	assert.ErrorIs(t, a.OnSurfaceChanged(10, 10), ErrNotCreated)
	assert.ErrorIs(t, a.OnSurfaceLost(), ErrNotCreated)
	assert.ErrorIs(t, a.OnForeground(), ErrNotCreated)
	assert.ErrorIs(t, a.OnBackground(), ErrNotCreated)
	assert.Empty(t, rec.Calls())
}

func TestAdapterAlreadyCreated(t *testing.T) {
	a, rec := newTestAdapter(t)
	require.NoError(t, a.OnCreate(nil))
	assert.ErrorIs(t, a.OnCreate(nil), ErrAlreadyCreated)
	assert.Equal(t, []string{"create 1"}, rec.Ops())
}

func TestAdapterAfterDestroy(t *testing.T) {
	a, rec := newTestAdapter(t)
	require.NoError(t, a.OnCreate(nil))
	require.NoError(t, a.OnDestroy())
	n := len(rec.Calls())

	assert.ErrorIs(t, a.OnSurfaceAvailable(software.NewCanvas("S1", 10, 10)), ErrDestroyed)
	assert.ErrorIs(t, a.OnSurfaceChanged(10, 10), ErrDestroyed)
	assert.ErrorIs(t, a.OnSurfaceLost(), ErrDestroyed)
	assert.ErrorIs(t, a.OnForeground(), ErrDestroyed)
	assert.ErrorIs(t, a.OnBackground(), ErrDestroyed)
	assert.ErrorIs(t, a.OnCreate(nil), ErrDestroyed)
	assert.ErrorIs(t, a.OnDestroy(), ErrDestroyed)
	assert.Len(t, rec.Calls(), n)
}

func TestAdapterCreateFailure(t *testing.T) {
	rec := nativetest.New()
	rec.CreateErr = assert.AnError
	a := NewAdapter(rec)
	a.Start(context.Background())

	err := a.OnCreate(nil)
	assert.ErrorIs(t, err, bridge.ErrBackendInit)
	assert.ErrorIs(t, err, assert.AnError)
	assert.False(t, a.Valid())
	assert.ErrorIs(t, a.OnSurfaceAvailable(software.NewCanvas("S1", 10, 10)), ErrNotCreated)

	// the host may retry
	rec.CreateErr = nil
	require.NoError(t, a.OnCreate(nil))
	assert.True(t, a.Valid())
	require.NoError(t, a.OnDestroy())
}

func TestAdapterObserver(t *testing.T) {
	if bridge.Debug {
		t.Skip("protocol violations panic in debug builds")
	}
	rec := nativetest.New()
	a := NewAdapter(rec)
	var seen []string
	a.Observer = func(ev Event, st Status, err error) {
		s := ev.String() + " -> " + st.String()
		if err != nil {
			s += " !"
		}
		seen = append(seen, s)
	}
	a.Start(context.Background())

	require.NoError(t, a.OnCreate(nil))
	require.NoError(t, a.OnSurfaceAvailable(software.NewCanvas("S1", 800, 600)))
	assert.Error(t, a.OnSurfaceAvailable(software.NewCanvas("S2", 800, 600)))
	require.NoError(t, a.OnBackground())
	require.NoError(t, a.OnDestroy())

	assert.Equal(t, []string{
		"Create -> Created",
		"SurfaceAvailable S1 -> SurfaceBound 800x600",
		"SurfaceAvailable S2 -> SurfaceBound 800x600 !",
		"Background -> SurfaceBound 800x600 paused",
		"Destroy -> Destroyed paused invalid",
	}, seen)
}

func TestAdapterContextStop(t *testing.T) {
	rec := nativetest.New()
	a := NewAdapter(rec)
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- a.Run(ctx) }()

	require.NoError(t, a.OnCreate(nil))
	cancel()
	assert.ErrorIs(t, <-errc, context.Canceled)
	assert.ErrorIs(t, a.OnForeground(), ErrStopped)
	assert.ErrorIs(t, a.Run(context.Background()), ErrRunning)

	// stopping the loop does not destroy the session
	assert.True(t, rec.Live(1))
}
