//go:build js && wasm

// Package browser adapts the DOM to the effect packages. Every type here is
// a thin syscall/js wrapper; the behavior lives in rain, glow, reveal,
// motion, progress and nav.
package browser

import "syscall/js"

// Window returns the global window object.
func Window() js.Value { return js.Global() }

// Document returns window.document.
func Document() js.Value { return js.Global().Get("document") }

// Root returns the <html> element.
func Root() js.Value { return Document().Get("documentElement") }

// ByID returns the element with id, or a falsy value.
func ByID(id string) js.Value {
	return Document().Call("getElementById", id)
}

// QueryAll returns every match of selector under root.
func QueryAll(root js.Value, selector string) []js.Value {
	list := root.Call("querySelectorAll", selector)
	n := list.Length()
	out := make([]js.Value, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, list.Index(i))
	}
	return out
}

// Exists reports whether v is a live element reference.
func Exists(v js.Value) bool { return v.Truthy() }

// SetClass adds or removes class on el.
func SetClass(el js.Value, class string, on bool) {
	if !el.Truthy() {
		return
	}
	el.Get("classList").Call("toggle", class, on)
}

// SetHidden toggles the hidden attribute.
func SetHidden(el js.Value, hidden bool) {
	if el.Truthy() {
		el.Set("hidden", hidden)
	}
}

// Attr returns the attribute or "".
func Attr(el js.Value, name string) string {
	v := el.Call("getAttribute", name)
	if v.IsNull() {
		return ""
	}
	return v.String()
}

// On registers fn for event on target and returns a func that removes and
// releases the listener.
func On(target js.Value, event string, fn func(js.Value)) (release func()) {
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		var ev js.Value
		if len(args) > 0 {
			ev = args[0]
		}
		fn(ev)
		return nil
	})
	opts := map[string]any{"passive": event == "scroll" || event == "mousemove" || event == "resize"}
	target.Call("addEventListener", event, cb, opts)
	return func() {
		target.Call("removeEventListener", event, cb)
		cb.Release()
	}
}

// ScrollY is window.scrollY.
func ScrollY() float64 { return Window().Get("scrollY").Float() }

// ViewportHeight is window.innerHeight.
func ViewportHeight() float64 { return Window().Get("innerHeight").Float() }

// DocumentHeight is the scrollable height of the page.
func DocumentHeight() float64 { return Root().Get("scrollHeight").Float() }

// OffsetTop returns the document offset of the element with id.
func OffsetTop(id string) (float64, bool) {
	el := ByID(id)
	if !el.Truthy() {
		return 0, false
	}
	return el.Get("offsetTop").Float(), true
}

// ScrollToTop scrolls the window to the top, smoothly unless reduced.
func ScrollToTop(smooth bool) {
	behavior := "auto"
	if smooth {
		behavior = "smooth"
	}
	Window().Call("scrollTo", map[string]any{"top": 0, "behavior": behavior})
}
