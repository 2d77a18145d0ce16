// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tomlx provides functions for reading and writing TOML files.
package tomlx

import (
	"bufio"
	"bytes"
	"io"
	"io/fs"
	"os"

	"cogentcore.org/bridge/base/errors"
	"github.com/pelletier/go-toml/v2"
)

// NewDecoder returns a new [toml.Decoder] that reads from the given reader.
func NewDecoder(r io.Reader) *toml.Decoder {
	return toml.NewDecoder(r)
}

// Open reads the given object from the given filename using TOML encoding.
func Open(v any, filename string) error {
	fp, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	return NewDecoder(bufio.NewReader(fp)).Decode(v)
}

// OpenFS reads the given object from the given filename using TOML encoding,
// using the given [fs.FS] filesystem (e.g., for embed files or assets).
func OpenFS(v any, fsys fs.FS, filename string) error {
	fp, err := fsys.Open(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	return NewDecoder(bufio.NewReader(fp)).Decode(v)
}

// OpenFiles reads the given object from the given filenames using TOML encoding,
// in order, so that later files override earlier ones. All errors are joined.
func OpenFiles(v any, filenames ...string) error {
	var errs []error
	for _, file := range filenames {
		errs = append(errs, Open(v, file))
	}
	return errors.Join(errs...)
}

// ReadBytes reads the given object from the given bytes using TOML encoding.
func ReadBytes(v any, data []byte) error {
	return NewDecoder(bytes.NewReader(data)).Decode(v)
}

// Save writes the given object to the given filename using TOML encoding.
func Save(v any, filename string) error {
	b, err := WriteBytes(v)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0666)
}

// WriteBytes writes the given object, returning bytes of the encoding,
// using TOML encoding.
func WriteBytes(v any) ([]byte, error) {
	var b bytes.Buffer
	if err := toml.NewEncoder(&b).Encode(v); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
