// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package yamlx

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type step struct {
	Op    string `yaml:"op"`
	Width int    `yaml:"width,omitempty"`
}

func TestSaveOpen(t *testing.T) {
	file := filepath.Join(t.TempDir(), "steps.yaml")
	in := []step{{Op: "create"}, {Op: "changed", Width: 900}}
	require.NoError(t, Save(in, file))

	var out []step
	require.NoError(t, Open(&out, file))
	assert.Equal(t, in, out)
}

func TestKnownFields(t *testing.T) {
	var out step
	err := ReadBytes(&out, []byte("op: create\nheight: 3\n"))
	assert.Error(t, err)
}
