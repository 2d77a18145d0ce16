// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fsx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.toml")
	require.NoError(t, os.WriteFile(file, nil, 0666))

	ok, err := FileExists(file)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = FileExists(filepath.Join(dir, "b.toml"))
	assert.NoError(t, err)
	assert.False(t, ok)

	ok, err = FileExists(dir)
	assert.NoError(t, err)
	assert.False(t, ok)

	ok, err = FileExistsFS(os.DirFS(dir), "a.toml")
	assert.NoError(t, err)
	assert.True(t, ok)
	ok, err = FileExistsFS(os.DirFS(dir), "b.toml")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestFindFilesOnPaths(t *testing.T) {
	d1, d2 := t.TempDir(), t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(d1, "a.toml"), nil, 0666))
	require.NoError(t, os.WriteFile(filepath.Join(d2, "a.toml"), nil, 0666))
	require.NoError(t, os.WriteFile(filepath.Join(d2, "b.toml"), nil, 0666))

	assert.Equal(t, []string{filepath.Join(d1, "a.toml"), filepath.Join(d2, "a.toml")}, FindFilesOnPaths([]string{d1, d2}, "a.toml"))
	assert.Equal(t, []string{filepath.Join(d2, "b.toml")}, FindFilesOnPaths([]string{d1, d2}, "b.toml"))
	assert.Nil(t, FindFilesOnPaths([]string{d1, d2}, "c.toml"))
	assert.Equal(t, []string{filepath.Join(d2, "b.toml")}, FindFilesOnPaths(nil, filepath.Join(d2, "b.toml")))
}

func TestDirFS(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("x"), 0666))
	fsys, name, err := DirFS(filepath.Join(dir, "a.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "a.yaml", name)
	ok, err := FileExistsFS(fsys, name)
	assert.NoError(t, err)
	assert.True(t, ok)
}
