// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config provides the configuration of the bridge tools,
// stored in TOML files.
package config

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"cogentcore.org/bridge/base/errors"
	"cogentcore.org/bridge/base/fsx"
	"cogentcore.org/bridge/base/iox/tomlx"
	"cogentcore.org/bridge/base/logx"
	"cogentcore.org/bridge/base/reflectx"
	"cogentcore.org/bridge/native/software"
	"github.com/jinzhu/copier"
	"github.com/mitchellh/go-homedir"
)

// DefaultFile is the default config file location.
const DefaultFile = "~/.config/bridge/config.toml"

// maxIncludeDepth is the deepest chain of includes that is followed.
const maxIncludeDepth = 8

// Config is the configuration of the bridge tools.
type Config struct {

	// Backend is the name of the native library that sessions are created on.
	Backend string `toml:"backend" default:"software"`

	// Assets is the directory that sessions read their assets from.
	Assets string `toml:"assets" default:"assets"`

	// FrameRate is the number of frames per second that the
	// software backend draws while a surface is attached.
	FrameRate int `toml:"frame_rate" default:"30"`

	// SceneFile is the scene file that the software backend reads
	// from the assets.
	SceneFile string `toml:"scene_file" default:"scene.toml"`

	// LogLevel is the log level: debug, info, warn, or error.
	LogLevel string `toml:"log_level" default:"info"`

	// Includes are other config files that are read before this one,
	// so that settings in this file override theirs. Relative paths
	// are relative to the directory of this file.
	Includes []string `toml:"includes,omitempty"`
}

// Default returns the default configuration, as given by
// the default tags of the fields.
func Default() *Config {
	cfg := &Config{}
	errors.Log(reflectx.SetFromDefaultTags(cfg))
	return cfg
}

// Open returns the configuration read from the given TOML file,
// with any settings it does not have taken from its includes and
// then from [Default]. A leading ~ in the file name is expanded to
// the home directory. If the file does not exist, the defaults are
// returned.
func Open(file string) (*Config, error) {
	cfg := Default()
	path, err := homedir.Expand(file)
	if err != nil {
		return nil, err
	}
	ok, err := fsx.FileExists(path)
	if err != nil {
		return nil, err
	}
	if !ok {
		slog.Debug("config: no config file, using defaults", "file", path)
		return cfg, nil
	}
	if err := open(cfg, path, 0); err != nil {
		return nil, err
	}
	return cfg, nil
}

// open overlays the settings of the given file, after those of its
// includes, onto cfg.
func open(cfg *Config, path string, depth int) error {
	var fc Config
	if err := tomlx.Open(&fc, path); err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}
	if len(fc.Includes) > 0 && depth >= maxIncludeDepth {
		return fmt.Errorf("config: %s: includes nested more than %d deep", path, maxIncludeDepth)
	}
	dir := filepath.Dir(path)
	for _, inc := range fc.Includes {
		ip, err := homedir.Expand(inc)
		if err != nil {
			return err
		}
		files := fsx.FindFilesOnPaths([]string{dir}, ip)
		if len(files) == 0 {
			return fmt.Errorf("config: %s: include %q: %w", path, inc, fs.ErrNotExist)
		}
		if err := open(cfg, files[0], depth+1); err != nil {
			return err
		}
	}
	includes := cfg.Includes
	if err := copier.CopyWithOption(cfg, &fc, copier.Option{IgnoreEmpty: true}); err != nil {
		return err
	}
	if depth > 0 {
		cfg.Includes = includes
	}
	return nil
}

// Save writes the configuration to the given TOML file.
// A leading ~ in the file name is expanded to the home directory.
func (c *Config) Save(file string) error {
	path, err := homedir.Expand(file)
	if err != nil {
		return err
	}
	return tomlx.Save(c, path)
}

// Validate returns an error if any setting is invalid.
func (c *Config) Validate() error {
	var errs []error
	if c.Backend == "" {
		errs = append(errs, errors.New("config: backend must be set"))
	}
	if c.FrameRate <= 0 {
		errs = append(errs, fmt.Errorf("config: frame_rate must be positive, not %d", c.FrameRate))
	}
	if _, err := logx.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("config: %w", err))
	}
	return errors.Join(errs...)
}

// Software returns the software backend options of the configuration.
func (c *Config) Software() software.Options {
	return software.Options{FrameRate: c.FrameRate, SceneFile: c.SceneFile}
}
