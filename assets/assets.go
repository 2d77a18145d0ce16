// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package assets provides asset sources for rendering sessions.
// An asset source is an [fs.FS]; the native backend reads its
// scene and other resources from it on create.
package assets

import (
	"io"
	"io/fs"
	"os"
	"path"
	"time"

	"github.com/hack-pad/hackpadfs"
	"github.com/hack-pad/hackpadfs/mem"
	"golang.org/x/mobile/asset"
)

// Dir returns the asset source for the given directory.
func Dir(dir string) fs.FS {
	return os.DirFS(dir)
}

// Memory returns an in-memory asset source holding the given files,
// keyed by slash-separated path.
func Memory(files map[string][]byte) (fs.FS, error) {
	fsys, err := mem.NewFS()
	if err != nil {
		return nil, err
	}
	for name, data := range files {
		if dir := path.Dir(name); dir != "." {
			if err := hackpadfs.MkdirAll(fsys, dir, 0755); err != nil {
				return nil, err
			}
		}
		if err := hackpadfs.WriteFullFile(fsys, name, data, 0644); err != nil {
			return nil, err
		}
	}
	return fsys, nil
}

// Mobile returns the asset source of the app package on mobile
// platforms, as provided by golang.org/x/mobile/asset. On desktop
// platforms it reads from the assets directory next to the executable.
func Mobile() fs.FS {
	return mobileFS{}
}

// mobileFS is an [fs.FS] over [asset.Open]. The platform asset
// managers only support opening files by name, so directories
// cannot be listed.
type mobileFS struct{}

func (mobileFS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	f, err := asset.Open(name)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return &mobileFile{File: f, name: name}, nil
}

// mobileFile is an [fs.File] over an [asset.File].
type mobileFile struct {
	asset.File
	name string
}

func (f *mobileFile) Stat() (fs.FileInfo, error) {
	size, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return mobileInfo{name: path.Base(f.name), size: size}, nil
}

// mobileInfo is the [fs.FileInfo] of a [mobileFile].
type mobileInfo struct {
	name string
	size int64
}

func (i mobileInfo) Name() string       { return i.name }
func (i mobileInfo) Size() int64        { return i.size }
func (i mobileInfo) Mode() fs.FileMode  { return 0444 }
func (i mobileInfo) ModTime() time.Time { return time.Time{} }
func (i mobileInfo) IsDir() bool        { return false }
func (i mobileInfo) Sys() any           { return nil }
