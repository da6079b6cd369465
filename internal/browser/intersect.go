//go:build js && wasm

package browser

import (
	"syscall/js"

	"songdeming.dev/portfolio-web/internal/reveal"
)

// Observe reports intersection changes of el under opts. Browsers without
// IntersectionObserver report the element as visible once.
func Observe(el js.Value, opts reveal.Options, fn func(intersecting bool)) (stop func()) {
	ctor := Window().Get("IntersectionObserver")
	if !ctor.Truthy() {
		fn(true)
		return func() {}
	}
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		entries := args[0]
		for i := 0; i < entries.Length(); i++ {
			fn(entries.Index(i).Get("isIntersecting").Bool())
		}
		return nil
	})
	io := ctor.New(cb, map[string]any{
		"threshold":  opts.Threshold,
		"rootMargin": opts.RootMargin,
	})
	io.Call("observe", el)
	return func() {
		io.Call("disconnect")
		cb.Release()
	}
}
