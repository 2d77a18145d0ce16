// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"cogentcore.org/bridge/base/iox/imagex"
	"cogentcore.org/bridge/bridge"
	"cogentcore.org/bridge/native"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the given bridge subcommand with the given input
// and arguments, with no config file and an empty asset directory.
func execute(t *testing.T, in, sub string, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	args = append([]string{sub, "--config", filepath.Join(dir, "config.toml"), "--assets", dir, "--log-level", "error"}, args...)
	var out bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(in))
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.Execute()
	return out.String(), err
}

func TestRun(t *testing.T) {
	out, err := execute(t, "", "run", filepath.Join("testdata", "full.txt"))
	require.NoError(t, err)
	assert.Equal(t, `# full
create -> Created
available S1 64 48 -> SurfaceBound 64x48
changed 96 48 -> SurfaceBound 96x48
background -> SurfaceBound 96x48 paused
foreground -> SurfaceBound 96x48
lost -> SurfaceUnbound
destroy -> Destroyed invalid
`, out)
}

func TestRunFailures(t *testing.T) {
	if bridge.Debug {
		t.Skip("protocol violations panic in debug builds")
	}
	out, err := execute(t, "", "run", filepath.Join("testdata", "fails.txt"))
	assert.ErrorContains(t, err, "fails: 1 of 4 steps failed")
	assert.Contains(t, out, "available S2 -> SurfaceBound 800x600 ! bridge: surface already bound")
}

func TestRunErrors(t *testing.T) {
	_, err := execute(t, "", "run", filepath.Join("testdata", "missing.txt"))
	assert.Error(t, err)

	_, err = execute(t, "", "run", filepath.Join("testdata", "full.txt"), "--backend", "vulkan")
	assert.ErrorIs(t, err, native.ErrUnknownLibrary)

	_, err = execute(t, "", "run", filepath.Join("testdata", "full.txt"), "--log-level", "loud")
	assert.ErrorContains(t, err, "loud")

	_, err = execute(t, "", "run")
	assert.Error(t, err)
}

func TestRepl(t *testing.T) {
	out, err := execute(t, "# session\ncreate\navailable S1 10 10\nbogus\nhelp\ndestroy\ntrace\nforeground\n", "repl")
	require.NoError(t, err)
	assert.Contains(t, out, "> create -> Created\n")
	assert.Contains(t, out, "> available S1 10 10 -> SurfaceBound 10x10\n")
	assert.Contains(t, out, `script: unknown op "bogus"`)
	assert.Contains(t, out, "steps: create, available, changed, lost, foreground, background, destroy\n")
	assert.Contains(t, out, "> destroy -> Destroyed invalid\n")
	assert.Contains(t, out, "create -> Created\navailable S1 10 10 -> SurfaceBound 10x10\ndestroy -> Destroyed invalid\n")
	assert.Contains(t, out, "foreground -> Destroyed invalid ! host: session destroyed\n")
}

func TestReplQuit(t *testing.T) {
	out, err := execute(t, "create\nquit\ncreate\n", "repl")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "create -> Created"))
}

func TestBackends(t *testing.T) {
	out, err := execute(t, "", "backends")
	require.NoError(t, err)
	assert.Regexp(t, `software\*\s+ok`, out)
}

func TestRunSnapshot(t *testing.T) {
	file := filepath.Join(t.TempDir(), "frame.png")
	_, err := execute(t, "", "run", filepath.Join("testdata", "full.txt"), "--snapshot", file)
	require.NoError(t, err)
	img, f, err := imagex.Open(file)
	require.NoError(t, err)
	assert.Equal(t, imagex.PNG, f)
	assert.Equal(t, 48, img.Bounds().Dy())

	_, err = execute(t, "", "run", filepath.Join("testdata", "nosurface.txt"), "--snapshot", file)
	assert.ErrorContains(t, err, "no surface")
}
