// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package script

import (
	"image"
	"io/fs"
	"strings"

	"cogentcore.org/bridge/host"
	"cogentcore.org/bridge/native/software"
)

// Entry is the outcome of one step.
type Entry struct {
	Step   Step
	Err    error
	Status host.Status
}

func (e Entry) String() string {
	s := e.Step.String() + " -> " + e.Status.String()
	if e.Err != nil {
		s += " ! " + e.Err.Error()
	}
	return s
}

// Trace is the outcome of a sequence of steps.
type Trace []Entry

// String returns the entries one per line.
func (t Trace) String() string {
	var b strings.Builder
	for _, e := range t {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Errors returns the number of steps that failed.
func (t Trace) Errors() int {
	n := 0
	for _, e := range t {
		if e.Err != nil {
			n++
		}
	}
	return n
}

// Runner replays steps through an adapter, whose event loop must
// be running. Surfaces are [software.Canvas] values created on first
// use by name, so the same name always refers to the same surface.
type Runner struct {

	// Adapter receives the events of the steps.
	Adapter *host.Adapter

	// Assets is the asset source passed on create.
	Assets fs.FS

	// DefaultSize is the size of new surfaces made available
	// without a size.
	DefaultSize image.Point

	// Trace is the outcome of all steps so far.
	Trace Trace

	surfaces map[string]*software.Canvas
	bound    *software.Canvas
	last     *software.Canvas
}

// NewRunner returns a new [Runner] for the given adapter and assets.
func NewRunner(a *host.Adapter, assets fs.FS) *Runner {
	return &Runner{
		Adapter:     a,
		Assets:      assets,
		DefaultSize: image.Pt(800, 600),
		surfaces:    make(map[string]*software.Canvas),
	}
}

// Surface returns the surface with the given name, creating it
// at [Runner.DefaultSize] if it does not exist yet.
func (r *Runner) Surface(name string) *software.Canvas {
	if c, ok := r.surfaces[name]; ok {
		return c
	}
	c := software.NewCanvas(name, r.DefaultSize.X, r.DefaultSize.Y)
	r.surfaces[name] = c
	return c
}

// Bound returns the surface that was last made available
// successfully and has not been lost since, if any.
func (r *Runner) Bound() *software.Canvas {
	return r.bound
}

// Last returns the surface that was last made available
// successfully, even if it has been lost since.
func (r *Runner) Last() *software.Canvas {
	return r.last
}

// Run runs all the steps of the script and returns their trace.
func (r *Runner) Run(sc *Script) Trace {
	start := len(r.Trace)
	for _, st := range sc.Steps {
		r.Step(st)
	}
	return r.Trace[start:]
}

// Step runs one step, adds it to the trace, and returns its entry.
func (r *Runner) Step(st Step) Entry {
	err := st.Validate()
	if err == nil {
		err = r.send(st)
	}
	e := Entry{Step: st, Err: err, Status: r.Adapter.Status()}
	r.Trace = append(r.Trace, e)
	return e
}

func (r *Runner) send(st Step) error {
	switch st.Op {
	case "create":
		return r.Adapter.OnCreate(r.Assets)
	case "available":
		c := r.Surface(st.Surface)
		if st.Width > 0 && st.Height > 0 {
			c.SetSize(st.Width, st.Height)
		}
		err := r.Adapter.OnSurfaceAvailable(c)
		if err == nil {
			r.bound, r.last = c, c
		}
		return err
	case "changed":
		if r.bound != nil {
			r.bound.SetSize(st.Width, st.Height)
		}
		return r.Adapter.OnSurfaceChanged(st.Width, st.Height)
	case "lost":
		err := r.Adapter.OnSurfaceLost()
		if err == nil {
			r.bound = nil
		}
		return err
	case "foreground":
		return r.Adapter.OnForeground()
	case "background":
		return r.Adapter.OnBackground()
	case "destroy":
		err := r.Adapter.OnDestroy()
		r.bound = nil
		return err
	}
	return unknownOp(st.Op)
}
