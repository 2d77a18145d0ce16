// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errTest = New("test error")

func returnsErr() (int, error) {
	return 0, errTest
}

func returnsValue() (int, error) {
	return 7, nil
}

func TestLog(t *testing.T) {
	assert.NoError(t, Log(nil))
	assert.Equal(t, errTest, Log(errTest))
	assert.Equal(t, 7, Log1(returnsValue()))
	assert.Equal(t, 0, Log1(returnsErr()))
}

func TestMust(t *testing.T) {
	assert.NotPanics(t, func() { Must(nil) })
	assert.PanicsWithValue(t, errTest, func() { Must(errTest) })
	assert.Equal(t, 7, Must1(returnsValue()))
	assert.Panics(t, func() { Must1(returnsErr()) })
}

func TestIgnore1(t *testing.T) {
	assert.Equal(t, 0, Ignore1(returnsErr()))
}

func TestWrap(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", errTest)
	assert.True(t, Is(wrapped, errTest))
	assert.Equal(t, errTest, Unwrap(wrapped))
	joined := Join(errTest, New("other"))
	assert.True(t, Is(joined, errTest))
}

func TestCallerInfo(t *testing.T) {
	info := func() string { return CallerInfo() }()
	assert.Contains(t, info, "errors_test.go")
}
