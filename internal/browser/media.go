//go:build js && wasm

package browser

import (
	"syscall/js"

	"songdeming.dev/portfolio-web/internal/motion"
)

// Environment answers motion queries from window.matchMedia.
type Environment struct{}

// MatchMedia implements motion.Environment.
func (Environment) MatchMedia(query string) motion.MediaQuery {
	w := Window()
	if !w.Get("matchMedia").Truthy() {
		return nil
	}
	return mediaQuery{mql: w.Call("matchMedia", query)}
}

// TouchCapable implements motion.Environment.
func (Environment) TouchCapable() bool {
	w := Window()
	if w.Get("ontouchstart").Type() != js.TypeUndefined {
		return true
	}
	return w.Get("navigator").Get("maxTouchPoints").Int() > 0
}

type mediaQuery struct {
	mql js.Value
}

func (q mediaQuery) Matches() bool { return q.mql.Get("matches").Bool() }

func (q mediaQuery) Listen(fn func(bool)) func() {
	return On(q.mql, "change", func(ev js.Value) {
		fn(ev.Get("matches").Bool())
	})
}
