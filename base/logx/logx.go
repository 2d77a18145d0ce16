// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx provides a structured logging handler with colored
// level names, and the user-facing log level shared by all packages.
package logx

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// UserLevel is the verbosity [slog.Level] that the user has selected for
// what logging and printing messages should be shown. Messages at
// levels at or above this level will be shown. It should typically
// be set through [SetDefaultLogger] or the log level config setting.
// The default is [slog.LevelInfo], or [slog.LevelDebug] with the debug
// build tag and [slog.LevelWarn] with the release build tag.
var UserLevel = defaultUserLevel

// SetDefaultLogger sets the default [slog] logger to one
// that writes to [os.Stderr] at [UserLevel], with colored
// level names when the terminal supports them.
func SetDefaultLogger() {
	slog.SetDefault(slog.New(NewHandler(os.Stderr, &UserLevel)))
}

// ParseLevel returns the [slog.Level] with the given name
// (debug, info, warn, or error, case insensitive).
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("logx: unknown log level %q", name)
}
