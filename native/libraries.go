// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package native

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"cogentcore.org/bridge/base/errors"
)

// Factory opens a backend library, returning the [Backend] for it.
type Factory func() (Backend, error)

// Libraries is a registry of backend libraries. Libraries are
// registered by name, typically from init functions, and then
// opened all at once by [Libraries.Load], which only does work
// the first time it is called.
type Libraries struct {
	mu        sync.RWMutex
	factories map[string]Factory

	once    sync.Once
	loaded  map[string]Backend
	failed  map[string]error
	loadErr error
}

// DefaultLibraries is the process-wide registry used by the
// package-level functions.
var DefaultLibraries = &Libraries{}

// Register registers a library factory with the given name.
// If a library with the same name is already registered,
// it is replaced. Libraries registered after [Libraries.Load]
// are never opened.
func (l *Libraries) Register(name string, factory Factory) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.factories == nil {
		l.factories = make(map[string]Factory)
	}
	if l.loaded != nil {
		slog.Warn("native: library registered after load will not be opened", "library", name)
	}
	l.factories[name] = factory
}

// Available returns the sorted names of all registered libraries.
func (l *Libraries) Available() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]string, 0, len(l.factories))
	for name := range l.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Load opens every registered library. It is safe to call
// multiple times and from multiple goroutines; only the first
// call does anything, and every call returns the same result.
// A library that fails to open does not prevent the others from
// loading; its error is included in the returned error and is
// returned by [Libraries.Get] for that library.
func (l *Libraries) Load() error {
	l.once.Do(func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.loaded = make(map[string]Backend)
		l.failed = make(map[string]error)
		var errs []error
		for name, factory := range l.factories {
			b, err := factory()
			if err == nil && b == nil {
				err = fmt.Errorf("native: library %q returned no backend", name)
			}
			if err != nil {
				l.failed[name] = err
				errs = append(errs, fmt.Errorf("native: loading %q: %w", name, err))
				continue
			}
			l.loaded[name] = b
			slog.Debug("native: loaded library", "library", name)
		}
		l.loadErr = errors.Join(errs...)
	})
	return l.loadErr
}

// Loaded returns whether [Libraries.Load] has been called.
func (l *Libraries) Loaded() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loaded != nil
}

// Get returns the loaded backend for the library with the given name.
func (l *Libraries) Get(name string) (Backend, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.loaded == nil {
		return nil, ErrNotLoaded
	}
	if b, ok := l.loaded[name]; ok {
		return b, nil
	}
	if err, ok := l.failed[name]; ok {
		return nil, err
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownLibrary, name)
}

// Register registers a library on [DefaultLibraries].
func Register(name string, factory Factory) {
	DefaultLibraries.Register(name, factory)
}

// Available returns the libraries registered on [DefaultLibraries].
func Available() []string {
	return DefaultLibraries.Available()
}

// Load loads [DefaultLibraries]. See [Libraries.Load].
func Load() error {
	return DefaultLibraries.Load()
}

// Loaded returns whether [DefaultLibraries] has been loaded.
func Loaded() bool {
	return DefaultLibraries.Loaded()
}

// Get returns a backend loaded on [DefaultLibraries].
func Get(name string) (Backend, error) {
	return DefaultLibraries.Get(name)
}
