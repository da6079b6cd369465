//go:build js && wasm

package browser

import (
	"errors"
	"syscall/js"
)

// Response is the part of a fetch response the effects read.
type Response struct {
	Status int
	Body   string
}

// Await blocks the calling goroutine until p settles. It must not be called
// from a js.FuncOf callback directly.
func Await(p js.Value) (js.Value, error) {
	type result struct {
		v   js.Value
		err error
	}
	done := make(chan result, 1)
	var then, catch js.Func
	then = js.FuncOf(func(this js.Value, args []js.Value) any {
		done <- result{v: args[0]}
		return nil
	})
	catch = js.FuncOf(func(this js.Value, args []js.Value) any {
		msg := "promise rejected"
		if len(args) > 0 && args[0].Truthy() {
			msg = args[0].Call("toString").String()
		}
		done <- result{err: errors.New(msg)}
		return nil
	})
	p.Call("then", then).Call("catch", catch)
	r := <-done
	then.Release()
	catch.Release()
	return r.v, r.err
}

// PostForm sends form's fields to url as an htmx-style request and returns
// the response text.
func PostForm(url string, form js.Value, headers map[string]any) (Response, error) {
	body := Window().Get("URLSearchParams").New(Window().Get("FormData").New(form))
	h := map[string]any{
		"HX-Request":   "true",
		"Content-Type": "application/x-www-form-urlencoded",
	}
	for k, v := range headers {
		h[k] = v
	}
	res, err := Await(Window().Call("fetch", url, map[string]any{
		"method":      "POST",
		"headers":     h,
		"body":        body,
		"credentials": "same-origin",
	}))
	if err != nil {
		return Response{}, err
	}
	text, err := Await(res.Call("text"))
	if err != nil {
		return Response{}, err
	}
	return Response{Status: res.Get("status").Int(), Body: text.String()}, nil
}
