// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fsx provides file system helpers for finding and
// checking files on disk and in [fs.FS] asset sources.
package fsx

import (
	"io/fs"
	"os"
	"path/filepath"

	"cogentcore.org/bridge/base/errors"
)

// DirFS returns the directory part of given file path as an os.DirFS
// and the filename as a string.  These can then be used to access the file
// using the FS-based interface, consistent with embed and other use-cases.
func DirFS(fpath string) (fs.FS, string, error) {
	fabs, err := filepath.Abs(fpath)
	if err != nil {
		return nil, "", err
	}
	dir, fname := filepath.Split(fabs)
	return os.DirFS(dir), fname, nil
}

// FileExists checks whether given file exists, returning true if so,
// false if not, and error if there is an error in accessing the file.
func FileExists(filePath string) (bool, error) {
	fileInfo, err := os.Stat(filePath)
	if err == nil {
		return !fileInfo.IsDir(), nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// FileExistsFS checks whether given file exists, returning true if so,
// false if not, and error if there is an error in accessing the file.
func FileExistsFS(fsys fs.FS, filePath string) (bool, error) {
	if fsys, ok := fsys.(fs.StatFS); ok {
		fileInfo, err := fsys.Stat(filePath)
		if err == nil {
			return !fileInfo.IsDir(), nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	fp, err := fsys.Open(filePath)
	if err == nil {
		fp.Close()
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// FindFilesOnPaths attempts to locate given file(s) on given list of paths,
// returning the full Abs path to each file found (nil if none).
// An absolute file name is returned as is if it exists.
func FindFilesOnPaths(paths []string, files ...string) []string {
	var res []string
	for _, fn := range files {
		if filepath.IsAbs(fn) {
			if ok, _ := FileExists(fn); ok {
				res = append(res, fn)
			}
			continue
		}
		for _, path := range paths {
			fp := filepath.Join(path, fn)
			ok, _ := FileExists(fp)
			if !ok {
				continue
			}
			if abs, err := filepath.Abs(fp); err == nil {
				fp = abs
			}
			res = append(res, fp)
		}
	}
	return res
}
