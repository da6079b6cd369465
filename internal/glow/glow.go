// Package glow keeps the state of the pointer-follow glow overlay.
package glow

import (
	"fmt"
	"sync"
)

// Layer is one absolutely positioned gradient disc, centered on the pointer.
type Layer struct {
	Size       int
	Background string
}

var layers = []Layer{
	{
		Size:       400,
		Background: "radial-gradient(circle, hsla(142, 70%, 45%, 0.08) 0%, hsla(142, 70%, 45%, 0.03) 40%, transparent 70%)",
	},
	{
		Size:       150,
		Background: "radial-gradient(circle, hsla(142, 80%, 50%, 0.12) 0%, transparent 70%)",
	},
}

// offscreen keeps the discs out of view until the first pointer event.
const offscreen = -100

// Overlay tracks the pointer position and visibility.
type Overlay struct {
	mu      sync.Mutex
	enabled bool
	x, y    float64
	visible bool
}

// New returns an overlay. Touch-primary devices and reduced motion disable it.
func New(touch, reducedMotion bool) *Overlay {
	return &Overlay{
		enabled: !touch && !reducedMotion,
		x:       offscreen,
		y:       offscreen,
	}
}

// Enabled reports whether the overlay renders at all.
func (o *Overlay) Enabled() bool { return o.enabled }

// Move records the pointer position and shows the overlay.
func (o *Overlay) Move(x, y float64) {
	if !o.enabled {
		return
	}
	o.mu.Lock()
	o.x, o.y = x, y
	o.visible = true
	o.mu.Unlock()
}

// Enter shows the overlay at its last position.
func (o *Overlay) Enter() { o.setVisible(true) }

// Leave fades the overlay out.
func (o *Overlay) Leave() { o.setVisible(false) }

func (o *Overlay) setVisible(v bool) {
	if !o.enabled {
		return
	}
	o.mu.Lock()
	o.visible = v
	o.mu.Unlock()
}

// Position returns the last pointer coordinates.
func (o *Overlay) Position() (x, y float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.x, o.y
}

// Opacity is 1 while the pointer is over the page and 0 otherwise.
func (o *Overlay) Opacity() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.enabled && o.visible {
		return 1
	}
	return 0
}

// Layers returns the gradient discs, largest first. A disabled overlay has
// none.
func (o *Overlay) Layers() []Layer {
	if !o.enabled {
		return nil
	}
	out := make([]Layer, len(layers))
	copy(out, layers)
	return out
}

// Style renders the inline style for l at the current position.
func (o *Overlay) Style(l Layer) string {
	x, y := o.Position()
	return fmt.Sprintf("left:%gpx;top:%gpx;width:%dpx;height:%dpx;transform:translate(-50%%, -50%%);background:%s",
		x, y, l.Size, l.Size, l.Background)
}
