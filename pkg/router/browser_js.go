//go:build js && wasm

package router

import "syscall/js"

// JSBrowser is the Platform of a real browser window.
type JSBrowser struct {
	window js.Value
}

// NewJSBrowser binds the global window.
func NewJSBrowser() *JSBrowser { return &JSBrowser{window: js.Global()} }

func (b *JSBrowser) location() js.Value { return b.window.Get("location") }

func (b *JSBrowser) title() js.Value { return b.window.Get("document").Get("title") }

// Pathname implements Platform.
func (b *JSBrowser) Pathname() string { return b.location().Get("pathname").String() }

// Hash implements Platform.
func (b *JSBrowser) Hash() string { return b.location().Get("hash").String() }

// PushState implements Platform.
func (b *JSBrowser) PushState(url string) {
	b.window.Get("history").Call("pushState", js.Null(), b.title(), url)
}

// ReplaceState implements Platform.
func (b *JSBrowser) ReplaceState(url string) {
	b.window.Get("history").Call("replaceState", js.Null(), b.title(), url)
}

// SetHash implements Platform.
func (b *JSBrowser) SetHash(hash string) { b.location().Set("hash", hash) }

// ReplaceLocation implements Platform.
func (b *JSBrowser) ReplaceLocation(url string) { b.location().Call("replace", url) }

// Listen implements Platform.
func (b *JSBrowser) Listen(event string, fn func()) func() {
	cb := js.FuncOf(func(js.Value, []js.Value) any {
		fn()
		return nil
	})
	b.window.Call("addEventListener", event, cb, false)
	return func() {
		b.window.Call("removeEventListener", event, cb, false)
		cb.Release()
	}
}
