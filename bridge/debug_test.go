// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build debug

package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViolationPanics(t *testing.T) {
	b, rec := newTestBridge(t)
	require.NoError(t, b.SurfaceAttach("S1"))
	assert.Panics(t, func() { b.SurfaceAttach("S2") })
	require.NoError(t, b.Destroy())
	assert.Panics(t, func() { b.Destroy() })
	assert.Panics(t, func() { b.Pause() })
	assert.Empty(t, rec.Violations())
}
