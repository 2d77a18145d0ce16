// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets

import (
	"context"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchDelay is how long [Watch] waits after a change for
// further changes before calling its function.
var WatchDelay = 100 * time.Millisecond

// Watch watches the given file or directory and calls fn with
// the changed path whenever something in it is written, created,
// removed, or renamed. Bursts of changes within [WatchDelay] of
// each other result in one call, for the last path changed.
// It blocks until the context is done, and returns nil then.
func Watch(ctx context.Context, path string, fn func(path string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(path); err != nil {
		return err
	}

	timer := time.NewTimer(WatchDelay)
	timer.Stop()
	last := ""
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			last = event.Name
			timer.Reset(WatchDelay)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("assets: watch error", "path", path, "err", err)
		case <-timer.C:
			fn(last)
		}
	}
}
