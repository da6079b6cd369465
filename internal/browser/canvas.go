//go:build js && wasm

package browser

import (
	"strconv"
	"syscall/js"

	"songdeming.dev/portfolio-web/internal/rain"
)

// Canvas is a rain.Surface backed by a 2D canvas sized to the viewport.
type Canvas struct {
	el   js.Value
	ctx  js.Value
	w, h float64
	font float64
}

// NewCanvas wraps el and sizes it to the window. It returns nil when el is
// missing or has no 2D context.
func NewCanvas(el js.Value) *Canvas {
	if !el.Truthy() {
		return nil
	}
	ctx := el.Call("getContext", "2d")
	if !ctx.Truthy() {
		return nil
	}
	c := &Canvas{el: el, ctx: ctx}
	c.Fit()
	return c
}

// Fit matches the backing store to the viewport and device pixel ratio.
func (c *Canvas) Fit() (width, height float64) {
	w := Window()
	c.w = w.Get("innerWidth").Float()
	c.h = w.Get("innerHeight").Float()
	dpr := w.Get("devicePixelRatio").Float()
	if dpr <= 0 {
		dpr = 1
	}
	c.el.Set("width", int(c.w*dpr))
	c.el.Set("height", int(c.h*dpr))
	c.ctx.Call("setTransform", dpr, 0, 0, dpr, 0, 0)
	c.font = 0
	return c.w, c.h
}

// Size implements rain.Surface.
func (c *Canvas) Size() (float64, float64) { return c.w, c.h }

// FillRect implements rain.Surface.
func (c *Canvas) FillRect(col rain.Color, x, y, w, h float64) {
	c.ctx.Set("fillStyle", col.CSS())
	c.ctx.Call("fillRect", x, y, w, h)
}

// FillText implements rain.Surface.
func (c *Canvas) FillText(g rain.Glyph) {
	if g.Size != c.font {
		c.font = g.Size
		c.ctx.Set("font", strconv.FormatFloat(g.Size, 'f', -1, 64)+"px monospace")
	}
	c.ctx.Set("fillStyle", g.Color.CSS())
	c.ctx.Call("fillText", string(g.Rune), g.X, g.Y)
}
