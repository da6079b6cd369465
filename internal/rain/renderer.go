package rain

import (
	"math/rand/v2"

	"songdeming.dev/portfolio-web/internal/motion"
)

// Surface is a 2D drawing target sized in CSS pixels.
type Surface interface {
	Size() (width, height float64)
	FillRect(c Color, x, y, w, h float64)
	FillText(g Glyph)
}

// FrameID identifies a scheduled animation frame.
type FrameID int

// FrameScheduler requests display-synchronized callbacks.
type FrameScheduler interface {
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)
}

// Options configure a Renderer.
type Options struct {
	// Parallax assigns depth layers and scroll response to columns.
	Parallax bool
	// ReducedMotion paints one static frame and never schedules another.
	ReducedMotion bool
	// Rand overrides the random source, mostly for tests.
	Rand Random
}

// OptionsFor derives renderer options from a viewport snapshot. Parallax is
// desktop only; only the OS reduced-motion preference stops the animation.
func OptionsFor(s motion.Snapshot) Options {
	return Options{
		Parallax:      !s.IsMobile,
		ReducedMotion: s.PrefersReducedMotion,
	}
}

// Renderer drives a Field on a Surface. It is meant to be driven from a
// single event loop and is not safe for concurrent use.
type Renderer struct {
	surface Surface
	sched   FrameScheduler
	opts    Options
	field   *Field

	started bool
	running bool
	frame   FrameID
	scrollY float64
	lastY   float64
}

// NewRenderer wires a renderer. Nothing is drawn until Start.
func NewRenderer(surface Surface, sched FrameScheduler, opts Options) *Renderer {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Renderer{surface: surface, sched: sched, opts: opts}
}

// Field exposes the column state. It is nil before Start.
func (r *Renderer) Field() *Field { return r.field }

// Running reports whether a frame is scheduled.
func (r *Renderer) Running() bool { return r.running }

// Start paints the background and, unless motion is reduced, begins the
// frame loop. A renderer without a surface does nothing.
func (r *Renderer) Start() {
	if r.surface == nil || r.started {
		return
	}
	r.started = true
	w, h := r.surface.Size()
	r.field = NewField(w, h, r.opts.Parallax, r.opts.Rand)
	r.surface.FillRect(Background, 0, 0, w, h)
	if r.opts.ReducedMotion || r.sched == nil {
		return
	}
	r.schedule()
}

func (r *Renderer) schedule() {
	r.running = true
	r.frame = r.sched.RequestFrame(r.tick)
}

func (r *Renderer) tick() {
	if !r.running {
		return
	}
	r.Draw()
	r.frame = r.sched.RequestFrame(r.tick)
}

// Draw paints one animation frame and advances the field.
func (r *Renderer) Draw() {
	if r.field == nil {
		return
	}
	w, h := r.field.Size()
	r.surface.FillRect(Trail, 0, 0, w, h)
	for _, g := range r.field.Glyphs(r.scrollY) {
		r.surface.FillText(g)
	}
	var delta float64
	if r.opts.Parallax {
		delta = r.scrollY - r.lastY
		r.lastY = r.scrollY
	}
	r.field.Step(delta)
}

// Resize re-lays the field for new surface dimensions.
func (r *Renderer) Resize(width, height float64) {
	if r.field == nil {
		return
	}
	r.field.Resize(width, height)
	if !r.running {
		r.surface.FillRect(Background, 0, 0, r.field.width, r.field.height)
	}
}

// Scroll records the page scroll offset for parallax.
func (r *Renderer) Scroll(y float64) {
	r.scrollY = y
}

// SetReducedMotion switches between the animated and static modes while
// mounted.
func (r *Renderer) SetReducedMotion(reduced bool) {
	if r.opts.ReducedMotion == reduced {
		return
	}
	r.opts.ReducedMotion = reduced
	if !r.started || r.sched == nil {
		return
	}
	if reduced {
		r.Stop()
		r.surface.FillRect(Background, 0, 0, r.field.width, r.field.height)
		return
	}
	if !r.running {
		r.schedule()
	}
}

// Stop cancels the pending frame. Draw callbacks that still arrive are
// ignored.
func (r *Renderer) Stop() {
	if !r.running {
		return
	}
	r.running = false
	r.sched.CancelFrame(r.frame)
}
