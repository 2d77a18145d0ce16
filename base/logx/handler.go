// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/muesli/termenv"
)

// Handler is a [slog.Handler] that writes one line per record,
// with the level name colored according to the terminal profile
// of the output, followed by the message and the attributes
// in key=value form.
type Handler struct {
	out    *termenv.Output
	level  slog.Leveler
	attrs  []slog.Attr
	groups []string

	// mu is shared across all handlers derived from the same root
	mu *sync.Mutex
}

// NewHandler returns a new [Handler] writing to the given writer
// for records at or above the given level. The color profile is
// detected from the writer.
func NewHandler(w io.Writer, level slog.Leveler) *Handler {
	return NewHandlerOutput(termenv.NewOutput(w), level)
}

// NewHandlerOutput returns a new [Handler] writing to the given
// [termenv.Output], which determines the color profile.
func NewHandlerOutput(out *termenv.Output, level slog.Leveler) *Handler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &Handler{out: out, level: level, mu: &sync.Mutex{}}
}

func (h *Handler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(h.levelString(r.Level))
	b.WriteByte(' ')
	b.WriteString(r.Message)
	prefix := strings.Join(h.groups, ".")
	for _, a := range h.attrs {
		writeAttr(&b, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, prefix, a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, b.String())
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := *h
	prefix := strings.Join(h.groups, ".")
	nh.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	nh.attrs = append(nh.attrs, h.attrs...)
	for _, a := range attrs {
		if prefix != "" {
			a.Key = prefix + "." + a.Key
		}
		nh.attrs = append(nh.attrs, a)
	}
	return &nh
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	nh := *h
	nh.groups = append(append([]string{}, h.groups...), name)
	return &nh
}

// levelString returns the colored name of the given level.
func (h *Handler) levelString(l slog.Level) string {
	s := h.out.String(l.String())
	switch {
	case l >= slog.LevelError:
		s = s.Foreground(h.out.Color("1")).Bold()
	case l >= slog.LevelWarn:
		s = s.Foreground(h.out.Color("3"))
	case l >= slog.LevelInfo:
		s = s.Foreground(h.out.Color("4"))
	default:
		s = s.Faint()
	}
	return s.String()
}

func writeAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		p := a.Key
		if prefix != "" {
			p = prefix + "." + a.Key
		}
		for _, ga := range a.Value.Group() {
			writeAttr(b, p, ga)
		}
		return
	}
	b.WriteByte(' ')
	if prefix != "" {
		b.WriteString(prefix)
		b.WriteByte('.')
	}
	b.WriteString(a.Key)
	b.WriteByte('=')
	b.WriteString(a.Value.String())
}
