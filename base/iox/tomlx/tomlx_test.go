// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tomlx

import (
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testStruct struct {
	Name  string
	Rate  int
	Shape []float32
}

func TestSaveOpen(t *testing.T) {
	file := filepath.Join(t.TempDir(), "test.toml")
	in := testStruct{Name: "tri", Rate: 30, Shape: []float32{0.5, 0.25}}
	require.NoError(t, Save(&in, file))

	var out testStruct
	require.NoError(t, Open(&out, file))
	assert.Equal(t, in, out)
}

func TestOpenFS(t *testing.T) {
	fsys := fstest.MapFS{"a.toml": {Data: []byte("Name = \"fs\"\nRate = 60\n")}}
	var out testStruct
	require.NoError(t, OpenFS(&out, fsys, "a.toml"))
	assert.Equal(t, "fs", out.Name)
	assert.Equal(t, 60, out.Rate)

	assert.Error(t, OpenFS(&out, fsys, "missing.toml"))
}

func TestOpenFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.toml")
	b := filepath.Join(dir, "b.toml")
	require.NoError(t, Save(&testStruct{Name: "a", Rate: 1}, a))
	require.NoError(t, Save(&testStruct{Name: "b"}, b))

	var out testStruct
	require.NoError(t, OpenFiles(&out, a, b))
	assert.Equal(t, "b", out.Name)
	assert.Equal(t, 0, out.Rate)
}

func TestReadBytes(t *testing.T) {
	var out testStruct
	assert.Error(t, ReadBytes(&out, []byte("Name = ")))
}
