// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mobile

import (
	"context"
	"testing"

	"cogentcore.org/bridge/bridge"
	"cogentcore.org/bridge/host"
	"cogentcore.org/bridge/native/nativetest"
	"cogentcore.org/bridge/native/software"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
)

func newTestTranslator(t *testing.T) (*Translator, *host.Adapter, *nativetest.Recorder) {
	t.Helper()
	rec := nativetest.New()
	a := host.NewAdapter(rec)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	a.Start(ctx)
	n := 0
	tr := NewTranslator(a, nil, func(e lifecycle.Event) any {
		n++
		return software.NewCanvas("S"+string(rune('0'+n)), 800, 600)
	})
	return tr, a, rec
}

func TestStepwise(t *testing.T) {
	tr, a, rec := newTestTranslator(t)

	require.NoError(t, tr.Handle(lifecycle.Event{From: lifecycle.StageDead, To: lifecycle.StageAlive}))
	require.NoError(t, tr.Handle(size.Event{WidthPx: 800, HeightPx: 600}))
	require.NoError(t, tr.Handle(lifecycle.Event{From: lifecycle.StageAlive, To: lifecycle.StageVisible}))
	require.NoError(t, tr.Handle(size.Event{WidthPx: 900, HeightPx: 600}))
	require.NoError(t, tr.Handle(lifecycle.Event{From: lifecycle.StageVisible, To: lifecycle.StageFocused}))
	require.NoError(t, tr.Handle(paint.Event{}))
	assert.Equal(t, lifecycle.StageFocused, tr.Stage())

	require.NoError(t, tr.Handle(lifecycle.Event{From: lifecycle.StageFocused, To: lifecycle.StageVisible}))
	require.NoError(t, tr.Handle(lifecycle.Event{From: lifecycle.StageVisible, To: lifecycle.StageAlive}))
	assert.Equal(t, bridge.SurfaceUnbound, a.Status().State)
	require.NoError(t, tr.Handle(lifecycle.Event{From: lifecycle.StageAlive, To: lifecycle.StageDead}))

	assert.Equal(t, []string{"create 1", "attach 1 S1", "resize 1", "resume 1", "pause 1", "detach 1", "destroy 1"}, rec.Ops())
	assert.Empty(t, rec.Violations())
	assert.False(t, a.Valid())
}

func TestMultiStageCrossing(t *testing.T) {
	tr, a, rec := newTestTranslator(t)

	require.NoError(t, tr.Lifecycle(lifecycle.Event{From: lifecycle.StageDead, To: lifecycle.StageFocused}))
	assert.Equal(t, []string{"create 1", "attach 1 S1", "resume 1"}, rec.Ops())

	require.NoError(t, tr.Lifecycle(lifecycle.Event{From: lifecycle.StageFocused, To: lifecycle.StageAlive}))
	require.NoError(t, tr.Lifecycle(lifecycle.Event{From: lifecycle.StageAlive, To: lifecycle.StageFocused}))
	assert.Equal(t, bridge.SurfaceBound, a.Status().State)

	require.NoError(t, tr.Lifecycle(lifecycle.Event{From: lifecycle.StageFocused, To: lifecycle.StageDead}))
	assert.Equal(t, []string{
		"create 1", "attach 1 S1", "resume 1",
		"pause 1", "detach 1",
		"attach 1 S2", "resume 1",
		"pause 1", "detach 1", "destroy 1",
	}, rec.Ops())
	assert.Empty(t, rec.Violations())
}

func TestSizeWhileHidden(t *testing.T) {
	tr, _, rec := newTestTranslator(t)
	require.NoError(t, tr.Size(size.Event{WidthPx: 10, HeightPx: 10}))
	require.NoError(t, tr.Lifecycle(lifecycle.Event{From: lifecycle.StageDead, To: lifecycle.StageAlive}))
	require.NoError(t, tr.Size(size.Event{WidthPx: 10, HeightPx: 10}))
	assert.Equal(t, []string{"create 1"}, rec.Ops())
}

func TestNilSurface(t *testing.T) {
	rec := nativetest.New()
	a := host.NewAdapter(rec)
	a.Start(context.Background())
	tr := NewTranslator(a, nil, nil)
	err := tr.Lifecycle(lifecycle.Event{From: lifecycle.StageDead, To: lifecycle.StageVisible})
	assert.ErrorIs(t, err, bridge.ErrNilSurface)
	assert.Equal(t, []string{"create 1"}, rec.Ops())
	require.NoError(t, tr.Lifecycle(lifecycle.Event{From: lifecycle.StageVisible, To: lifecycle.StageDead}))
}
