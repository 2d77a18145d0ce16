// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package script

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"cogentcore.org/bridge/base/errors"
	"cogentcore.org/bridge/host"
	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/mattn/go-shellwords"
)

var (
	// ErrUnknownOp is returned for a step with an unknown op.
	ErrUnknownOp = errors.New("script: unknown op")

	// ErrUsage is returned for a step with the wrong arguments.
	ErrUsage = errors.New("script: usage")
)

// Ops are the step ops, in lifecycle order.
var Ops = []string{"create", "available", "changed", "lost", "foreground", "background", "destroy"}

// events are the host events of the ops.
var events = map[string]host.EventTypes{
	"create":     host.Create,
	"available":  host.SurfaceAvailable,
	"changed":    host.SurfaceChanged,
	"lost":       host.SurfaceLost,
	"foreground": host.Foreground,
	"background": host.Background,
	"destroy":    host.Destroy,
}

// usages are the argument usages of the ops that take arguments.
var usages = map[string]string{
	"available": "available <surface> [<width> <height>]",
	"changed":   "changed <width> <height>",
}

// Step is one host lifecycle event in a script.
type Step struct {

	// Op is the event: create, available, changed, lost,
	// foreground, background, or destroy.
	Op string `yaml:"op"`

	// Surface is the name of the surface made available.
	Surface string `yaml:"surface,omitempty"`

	// Width and Height are the surface size for changed, and
	// optionally the initial surface size for available.
	Width  int `yaml:"width,omitempty"`
	Height int `yaml:"height,omitempty"`
}

// String returns the step in the line format read by [ParseLine].
func (s Step) String() string {
	switch s.Op {
	case "available":
		name := s.Surface
		if name == "" || strings.ContainsAny(name, " \t\"'\\") {
			name = strconv.Quote(name)
		}
		if s.Width == 0 && s.Height == 0 {
			return s.Op + " " + name
		}
		return fmt.Sprintf("%s %s %d %d", s.Op, name, s.Width, s.Height)
	case "changed":
		return fmt.Sprintf("%s %d %d", s.Op, s.Width, s.Height)
	}
	return s.Op
}

// Event returns the host event type of the step.
func (s Step) Event() (host.EventTypes, error) {
	ev, ok := events[s.Op]
	if !ok {
		return 0, unknownOp(s.Op)
	}
	return ev, nil
}

// Validate returns an error if the step is not well formed.
func (s Step) Validate() error {
	if _, err := s.Event(); err != nil {
		return err
	}
	switch s.Op {
	case "available":
		if s.Surface == "" || s.Width < 0 || s.Height < 0 || (s.Width == 0) != (s.Height == 0) {
			return usage(s.Op)
		}
	case "changed":
		if s.Width < 0 || s.Height < 0 {
			return usage(s.Op)
		}
	default:
		if s.Surface != "" || s.Width != 0 || s.Height != 0 {
			return fmt.Errorf("%w: %s takes no arguments", ErrUsage, s.Op)
		}
	}
	return nil
}

// ParseLine parses a step from a shell-like line of words, such
// as "available S1 800 600". Words may be quoted.
func ParseLine(line string) (Step, error) {
	args, err := shellwords.Parse(line)
	if err != nil {
		return Step{}, fmt.Errorf("script: %w", err)
	}
	if len(args) == 0 {
		return Step{}, fmt.Errorf("%w: empty step", ErrUsage)
	}
	st := Step{Op: strings.ToLower(args[0])}
	args = args[1:]
	switch st.Op {
	case "available":
		if len(args) != 1 && len(args) != 3 {
			return st, usage(st.Op)
		}
		st.Surface = args[0]
		if len(args) == 3 {
			if st.Width, st.Height, err = parseSize(args[1], args[2]); err != nil {
				return st, err
			}
		}
	case "changed":
		if len(args) != 2 {
			return st, usage(st.Op)
		}
		if st.Width, st.Height, err = parseSize(args[0], args[1]); err != nil {
			return st, err
		}
	default:
		if _, err := st.Event(); err != nil {
			return st, err
		}
		if len(args) > 0 {
			return st, fmt.Errorf("%w: %s takes no arguments", ErrUsage, st.Op)
		}
	}
	return st, st.Validate()
}

// ParseLines parses steps from lines read from r, one step per
// line, skipping blank lines and lines starting with #.
func ParseLines(r io.Reader) ([]Step, error) {
	var steps []Step
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		st, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		steps = append(steps, st)
	}
	return steps, sc.Err()
}

func parseSize(w, h string) (int, int, error) {
	width, err := strconv.Atoi(w)
	if err != nil {
		return 0, 0, fmt.Errorf("script: width: %w", err)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return 0, 0, fmt.Errorf("script: height: %w", err)
	}
	if width < 0 || height < 0 {
		return 0, 0, fmt.Errorf("script: negative size %dx%d", width, height)
	}
	return width, height, nil
}

func usage(op string) error {
	return fmt.Errorf("%w: %s", ErrUsage, usages[op])
}

// unknownOp returns an [ErrUnknownOp] error, suggesting
// the most similar op if there is a close one.
func unknownOp(op string) error {
	lev := metrics.NewLevenshtein()
	best, score := "", 0.0
	for _, o := range Ops {
		if sim := strutil.Similarity(op, o, lev); sim > score {
			best, score = o, sim
		}
	}
	if score >= 0.5 {
		return fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownOp, op, best)
	}
	return fmt.Errorf("%w %q", ErrUnknownOp, op)
}
