// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package script provides lifecycle scripts: sequences of host
// lifecycle events that are replayed through a [host.Adapter],
// producing a [Trace] of the resulting bridge states. Scripts are
// stored as YAML, or as lines of the form read by [ParseLine].
package script

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/bridge/base/iox/yamlx"
)

// Script is a named sequence of steps.
type Script struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Validate returns an error if any step is not well formed.
func (sc *Script) Validate() error {
	for i, st := range sc.Steps {
		if err := st.Validate(); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

// Open reads the script in the given file. Files with a .yaml or
// .yml extension are read as YAML, and others as lines. The name
// defaults to the file name without its extension.
func Open(file string) (*Script, error) {
	sc := &Script{}
	ext := filepath.Ext(file)
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yamlx.Open(sc, file); err != nil {
			return nil, fmt.Errorf("script: %s: %w", file, err)
		}
	default:
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		sc.Steps, err = ParseLines(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
	}
	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(file), ext)
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return sc, nil
}

// Save writes the script to the given YAML file.
func (sc *Script) Save(file string) error {
	return yamlx.Save(sc, file)
}
