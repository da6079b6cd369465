// Package rain animates the falling-glyph background.
//
// Field is the column state machine: it knows where every drop is and how to
// advance it, and produces draw commands without drawing. Renderer runs the
// frame loop against a Surface.
package rain

import (
	"fmt"
	"math"
)

const (
	// GlyphSize is both the font size and the column width in pixels.
	GlyphSize = 14.0
	// ResetChance is the per-frame probability that a drop past the bottom
	// edge restarts at the top.
	ResetChance = 0.025

	cycleRows = 30.0
	headRows  = 2.0
	minAlpha  = 0.1
	minSpeed  = 0.5
	speedSpan = 1.5
	startSpan = 100.0
)

// Charset is the glyph pool: digits, katakana and code punctuation.
var Charset = []rune("01アイウエオカキクケコサシスセソタチツテトナニヌネノハヒフヘホマミムメモヤユヨラリルレロワヲン{}[]<>=/+*-;:.,!?@#$%^&()_~`|\\")

// Color is an RGBA fill.
type Color struct {
	R, G, B uint8
	A       float64
}

// CSS renders c as a canvas fillStyle.
func (c Color) CSS() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, trimFloat(c.A))
}

func trimFloat(f float64) string {
	s := fmt.Sprintf("%.3f", f)
	for len(s) > 1 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}

var (
	// Background is the opaque first-frame fill.
	Background = Color{R: 8, G: 12, B: 16, A: 1}
	// Trail is painted over every frame; the incomplete erase leaves trails.
	Trail = Color{R: 8, G: 12, B: 16, A: 0.05}

	headColor = Color{R: 180, G: 255, B: 180}
	bodyColor = Color{R: 0, G: 255, B: 128}
)

// Layer is a parallax depth bucket.
type Layer int

const (
	LayerFlat Layer = iota
	LayerBack
	LayerMid
	LayerFront
)

func (l Layer) String() string {
	switch l {
	case LayerBack:
		return "back"
	case LayerMid:
		return "mid"
	case LayerFront:
		return "front"
	}
	return "flat"
}

type layerStyle struct {
	opacity  float64
	size     float64
	parallax float64
	boost    float64
}

var layerStyles = map[Layer]layerStyle{
	LayerFlat:  {opacity: 1, size: 1, parallax: 0, boost: 0},
	LayerBack:  {opacity: 0.4, size: 0.8, parallax: 0.1, boost: 0.01},
	LayerMid:   {opacity: 0.7, size: 1, parallax: 0.25, boost: 0.025},
	LayerFront: {opacity: 1, size: 1.2, parallax: 0.45, boost: 0.05},
}

func styleFor(l Layer) layerStyle {
	if s, ok := layerStyles[l]; ok {
		return s
	}
	return layerStyles[LayerFlat]
}

// Column is one vertical lane of glyphs. Drop is measured in rows and may be
// negative while the drop is still above the surface.
type Column struct {
	Drop  float64
	Speed float64
	Layer Layer
}

// Glyph is a single draw command.
type Glyph struct {
	Rune  rune
	X, Y  float64
	Size  float64
	Color Color
}

// Random is the subset of *rand.Rand the field needs.
type Random interface {
	Float64() float64
	IntN(n int) int
}

// Field holds the column state for one surface.
type Field struct {
	width, height float64
	parallax      bool
	rng           Random
	cols          []Column
}

// NewField lays out columns for a width x height surface. Parallax layers
// are assigned only when parallax is true.
func NewField(width, height float64, parallax bool, rng Random) *Field {
	f := &Field{parallax: parallax, rng: rng}
	f.Resize(width, height)
	return f
}

// Resize adapts the column count to a new width. Existing columns keep their
// state.
func (f *Field) Resize(width, height float64) {
	f.width = math.Max(width, 0)
	f.height = math.Max(height, 0)
	n := int(f.width / GlyphSize)
	if n < len(f.cols) {
		f.cols = f.cols[:n]
		return
	}
	for len(f.cols) < n {
		f.cols = append(f.cols, f.newColumn())
	}
}

func (f *Field) newColumn() Column {
	c := Column{
		Drop:  -startSpan * f.rng.Float64(),
		Speed: f.randomSpeed(),
	}
	if f.parallax {
		c.Layer = Layer(1 + f.rng.IntN(3))
	}
	return c
}

func (f *Field) randomSpeed() float64 {
	return minSpeed + speedSpan*f.rng.Float64()
}

// Columns returns a copy of the column state.
func (f *Field) Columns() []Column {
	out := make([]Column, len(f.cols))
	copy(out, f.cols)
	return out
}

// Size returns the surface dimensions the field was laid out for.
func (f *Field) Size() (width, height float64) { return f.width, f.height }

// Glyphs returns one draw command per column for the current state. scrollY
// shifts layered columns by their parallax factor.
func (f *Field) Glyphs(scrollY float64) []Glyph {
	out := make([]Glyph, 0, len(f.cols))
	for i, c := range f.cols {
		style := styleFor(c.Layer)
		y := c.Drop * GlyphSize
		if style.parallax != 0 && f.height > 0 {
			y -= math.Mod(scrollY*style.parallax, f.height)
			if y < -GlyphSize && c.Drop >= 0 {
				y += f.height
			}
		}
		out = append(out, Glyph{
			Rune:  Charset[f.rng.IntN(len(Charset))],
			X:     float64(i) * GlyphSize,
			Y:     y,
			Size:  GlyphSize * style.size,
			Color: shade(c.Drop, style.opacity),
		})
	}
	return out
}

// shade brightens glyphs near the head of each 30-row cycle.
func shade(drop, opacity float64) Color {
	phase := math.Mod(drop, cycleRows)
	alpha := math.Min(1, math.Max(minAlpha, 1-phase/cycleRows))
	if phase < headRows {
		c := headColor
		c.A = alpha * opacity
		return c
	}
	c := bodyColor
	c.A = alpha * 0.7 * opacity
	return c
}

// Step advances every column by its speed plus a scroll boost for layered
// columns. Drops past the bottom edge restart at the top with probability
// ResetChance, so columns never fall back into lockstep.
func (f *Field) Step(scrollDelta float64) {
	scroll := math.Abs(scrollDelta)
	for i := range f.cols {
		c := &f.cols[i]
		if c.Drop*GlyphSize > f.height && f.rng.Float64() < ResetChance {
			c.Drop = 0
			c.Speed = f.randomSpeed()
		}
		c.Drop += c.Speed + styleFor(c.Layer).boost*scroll
	}
}
