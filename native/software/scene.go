// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package software

import (
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"strconv"
	"strings"

	"cogentcore.org/bridge/base/errors"
	"cogentcore.org/bridge/base/iox/imagex"
	"cogentcore.org/bridge/base/iox/tomlx"
	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// Scene is what a session draws on every frame: a background color,
// an optional background image, and a list of filled polygons. It is read from the asset source
// in TOML format when the session is created.
type Scene struct {

	// Background is the background color, as a color name or #rrggbb.
	Background string `toml:"background"`

	// Image is an image file in the asset source that is drawn
	// over the background, scaled to the whole frame.
	Image string `toml:"image,omitempty"`

	// Shapes are drawn in order on top of the background.
	Shapes []Shape `toml:"shapes"`

	bg     color.RGBA
	img    image.Image
	colors []color.RGBA
}

// Shape is a filled polygon.
type Shape struct {

	// Color is the fill color, as a color name or #rrggbb.
	Color string `toml:"color"`

	// Points are the vertices of the polygon in normalized
	// coordinates, where {0, 0} is the top left of the surface
	// and {1, 1} is the bottom right. Each point has two values.
	Points [][]float32 `toml:"points"`
}

// DefaultScene returns the scene used when the asset source
// has no scene file: a single triangle on a black background.
func DefaultScene() *Scene {
	sc := &Scene{
		Background: "black",
		Shapes: []Shape{
			{Color: "orangered", Points: [][]float32{{0.5, 0.1}, {0.9, 0.9}, {0.1, 0.9}}},
		},
	}
	errors.Must(sc.compile())
	return sc
}

// OpenScene reads the scene from the given file in the asset source.
// If the file does not exist, it returns [DefaultScene].
func OpenScene(assets fs.FS, file string) (*Scene, error) {
	if assets == nil {
		return DefaultScene(), nil
	}
	sc := &Scene{}
	err := tomlx.OpenFS(sc, assets, file)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultScene(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("software: reading scene %q: %w", file, err)
	}
	if err := sc.compile(); err != nil {
		return nil, fmt.Errorf("software: scene %q: %w", file, err)
	}
	if sc.Image != "" {
		sc.img, _, err = imagex.OpenFS(assets, sc.Image)
		if err != nil {
			return nil, fmt.Errorf("software: scene %q: image: %w", file, err)
		}
	}
	return sc, nil
}

// compile validates the scene and resolves its colors.
func (sc *Scene) compile() error {
	var err error
	sc.bg, err = ParseColor(sc.Background)
	if err != nil {
		return err
	}
	sc.colors = make([]color.RGBA, len(sc.Shapes))
	for i, sh := range sc.Shapes {
		if len(sh.Points) < 3 {
			return fmt.Errorf("shape %d has %d points, need at least 3", i, len(sh.Points))
		}
		for j, p := range sh.Points {
			if len(p) != 2 {
				return fmt.Errorf("shape %d point %d has %d values, need 2", i, j, len(p))
			}
		}
		sc.colors[i], err = ParseColor(sh.Color)
		if err != nil {
			return fmt.Errorf("shape %d: %w", i, err)
		}
	}
	return nil
}

// Render draws the scene into the given frame, scaling the shapes
// to the frame bounds.
func (sc *Scene) Render(frame *image.RGBA) {
	b := frame.Bounds()
	draw.Draw(frame, b, image.NewUniform(sc.bg), image.Point{}, draw.Src)
	if sc.img != nil {
		draw.ApproxBiLinear.Scale(frame, b, sc.img, sc.img.Bounds(), draw.Over, nil)
	}
	w, h := float32(b.Dx()), float32(b.Dy())
	if w == 0 || h == 0 {
		return
	}
	r := vector.NewRasterizer(b.Dx(), b.Dy())
	for i, sh := range sc.Shapes {
		r.Reset(b.Dx(), b.Dy())
		r.DrawOp = draw.Over
		r.MoveTo(sh.Points[0][0]*w, sh.Points[0][1]*h)
		for _, p := range sh.Points[1:] {
			r.LineTo(p[0]*w, p[1]*h)
		}
		r.ClosePath()
		r.Draw(frame, b, image.NewUniform(sc.colors[i]), b.Min)
	}
}

// ParseColor parses a color name from [colornames] or
// a hex color of the form #rrggbb or #rgb.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.RGBA{}, fmt.Errorf("unknown color %q", s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
