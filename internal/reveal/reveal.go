// Package reveal tracks scroll-into-view state for entrance animations.
//
// An Observer turns raw intersection events into a visibility flag; a
// Stagger sequences the flags of sibling items behind a parent flag.
// Neither type touches the DOM: callers feed them intersection results and
// read the flags back.
package reveal

import (
	"strconv"
	"strings"
	"sync"
)

// Options mirror the intersection observer settings for one element.
type Options struct {
	Threshold   float64
	RootMargin  string
	TriggerOnce bool
}

// DefaultOptions reveal once at 10% visibility, 50px before the element
// reaches the bottom edge.
func DefaultOptions() Options {
	return Options{
		Threshold:   0.1,
		RootMargin:  "0px 0px -50px 0px",
		TriggerOnce: true,
	}
}

// WithThreshold returns a copy of o using threshold t.
func (o Options) WithThreshold(t float64) Options {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	o.Threshold = t
	return o
}

// OptionsFor returns DefaultOptions with threshold applied when it parses
// as a number, as read from a data-reveal-threshold attribute.
func OptionsFor(threshold string) Options {
	opts := DefaultOptions()
	t, err := strconv.ParseFloat(strings.TrimSpace(threshold), 64)
	if err != nil {
		return opts
	}
	return opts.WithThreshold(t)
}

// Replay returns a copy of o that follows the element in and out of view.
func (o Options) Replay() Options {
	o.TriggerOnce = false
	return o
}

// Observer holds the visibility flag for a single element.
type Observer struct {
	mu       sync.Mutex
	opts     Options
	visible  bool
	done     bool
	onChange func(bool)
}

// NewObserver creates an observer with opts.
func NewObserver(opts Options) *Observer {
	return &Observer{opts: opts}
}

// Options returns the observer configuration.
func (o *Observer) Options() Options { return o.opts }

// OnChange registers fn to be called whenever the flag flips.
func (o *Observer) OnChange(fn func(visible bool)) {
	o.mu.Lock()
	o.onChange = fn
	o.mu.Unlock()
}

// Observe applies one intersection event and returns the resulting flag and
// whether it changed. Once a trigger-once observer has fired, later events
// are ignored.
func (o *Observer) Observe(intersecting bool) (visible, changed bool) {
	o.mu.Lock()
	if o.done {
		v := o.visible
		o.mu.Unlock()
		return v, false
	}
	switch {
	case intersecting && !o.visible:
		o.visible = true
		changed = true
		if o.opts.TriggerOnce {
			o.done = true
		}
	case !intersecting && o.visible && !o.opts.TriggerOnce:
		o.visible = false
		changed = true
	}
	visible = o.visible
	fn := o.onChange
	o.mu.Unlock()

	if changed && fn != nil {
		fn(visible)
	}
	return visible, changed
}

// Visible reports the current flag.
func (o *Observer) Visible() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.visible
}

// Done reports whether the observer has latched and the element can be
// unobserved.
func (o *Observer) Done() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.done
}
