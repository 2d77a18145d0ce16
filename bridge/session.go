// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bridge

import "cogentcore.org/bridge/native"

// Session is the owned token for a native rendering session.
// It holds either a live [native.Handle] or nothing. It can only be
// made live by [New], and is invalidated exactly once, by
// [Bridge.Destroy]; after that it permanently holds
// [native.InvalidHandle]. Every native call goes through
// [Session.Live] first.
type Session struct {
	handle native.Handle
}

// Live returns the handle and true if the session is live,
// and [native.InvalidHandle] and false otherwise.
func (s *Session) Live() (native.Handle, bool) {
	if s == nil || !s.handle.Valid() {
		return native.InvalidHandle, false
	}
	return s.handle, true
}

// Valid returns whether the session is live.
func (s *Session) Valid() bool {
	_, ok := s.Live()
	return ok
}

// Handle returns the current handle, which is
// [native.InvalidHandle] once the session is invalid.
func (s *Session) Handle() native.Handle {
	h, _ := s.Live()
	return h
}

// invalidate sets the session to the invalid sentinel and
// returns the handle it held, if it was live.
func (s *Session) invalidate() (native.Handle, bool) {
	h, ok := s.Live()
	s.handle = native.InvalidHandle
	return h, ok
}
