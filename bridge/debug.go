// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build debug

package bridge

// Debug is whether protocol violations panic instead of only being
// logged and refused. It is true when building with the debug tag.
const Debug = true
