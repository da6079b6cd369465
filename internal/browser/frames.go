//go:build js && wasm

package browser

import (
	"syscall/js"

	"songdeming.dev/portfolio-web/internal/rain"
)

// Frames is a rain.FrameScheduler over requestAnimationFrame.
type Frames struct {
	pending map[rain.FrameID]js.Func
}

// NewFrames returns an empty scheduler.
func NewFrames() *Frames {
	return &Frames{pending: map[rain.FrameID]js.Func{}}
}

// RequestFrame implements rain.FrameScheduler.
func (f *Frames) RequestFrame(fn func()) rain.FrameID {
	var id rain.FrameID
	var cb js.Func
	cb = js.FuncOf(func(js.Value, []js.Value) any {
		delete(f.pending, id)
		cb.Release()
		fn()
		return nil
	})
	id = rain.FrameID(Window().Call("requestAnimationFrame", cb).Int())
	f.pending[id] = cb
	return id
}

// CancelFrame implements rain.FrameScheduler.
func (f *Frames) CancelFrame(id rain.FrameID) {
	cb, ok := f.pending[id]
	if !ok {
		return
	}
	Window().Call("cancelAnimationFrame", int(id))
	delete(f.pending, id)
	cb.Release()
}
