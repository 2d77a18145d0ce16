// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scene.toml"), []byte("background = \"navy\"\n"), 0666))

	b, err := fs.ReadFile(Dir(dir), "scene.toml")
	require.NoError(t, err)
	assert.Equal(t, "background = \"navy\"\n", string(b))

	_, err = fs.ReadFile(Dir(dir), "missing.toml")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestMemory(t *testing.T) {
	fsys, err := Memory(map[string][]byte{
		"scene.toml":       []byte("background = \"white\"\n"),
		"shaders/tri.wgsl": []byte("// shader"),
	})
	require.NoError(t, err)

	b, err := fs.ReadFile(fsys, "scene.toml")
	require.NoError(t, err)
	assert.Equal(t, "background = \"white\"\n", string(b))

	b, err = fs.ReadFile(fsys, "shaders/tri.wgsl")
	require.NoError(t, err)
	assert.Equal(t, "// shader", string(b))

	_, err = fs.ReadFile(fsys, "missing.toml")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestMobileInvalidPath(t *testing.T) {
	_, err := Mobile().Open("../scene.toml")
	assert.ErrorIs(t, err, fs.ErrInvalid)
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan string, 10)
	errc := make(chan error, 1)
	go func() {
		errc <- Watch(ctx, dir, func(path string) { changed <- path })
	}()

	file := filepath.Join(dir, "scene.toml")
	assert.Eventually(t, func() bool {
		if os.WriteFile(file, []byte("background = \"red\"\n"), 0666) != nil {
			return false
		}
		select {
		case p := <-changed:
			return p == file
		case <-time.After(3 * WatchDelay):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	assert.NoError(t, <-errc)
}

func TestWatchMissing(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "missing"), func(string) {})
	assert.Error(t, err)
}
