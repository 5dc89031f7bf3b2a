package router

import (
	"strings"
	"sync"
)

type location struct {
	path   string
	search string
	hash   string
}

func (l location) String() string { return l.path + l.search + l.hash }

func normHash(h string) string {
	if h == "" || h == "#" {
		return ""
	}
	if !strings.HasPrefix(h, "#") {
		return "#" + h
	}
	return h
}

// parseURL resolves url against cur. Only same-origin paths are modelled.
func parseURL(cur location, url string) location {
	if url == "" {
		return cur
	}
	if strings.HasPrefix(url, "#") {
		return location{path: cur.path, search: cur.search, hash: normHash(url)}
	}
	var out location
	if i := strings.IndexByte(url, '#'); i >= 0 {
		out.hash = normHash(url[i:])
		url = url[:i]
	}
	if i := strings.IndexByte(url, '?'); i >= 0 {
		out.search = url[i:]
		url = url[:i]
	}
	if url == "" {
		url = cur.path
	}
	if !strings.HasPrefix(url, "/") {
		url = "/" + url
	}
	out.path = url
	return out
}

type listener struct {
	fn func()
}

// MemoryBrowser is a headless Platform with a session history stack.
// Navigation events fire synchronously on the calling goroutine.
type MemoryBrowser struct {
	mu        sync.Mutex
	entries   []location
	index     int
	reloads   int
	listeners map[string][]*listener
}

// NewMemoryBrowser opens url as the first history entry.
func NewMemoryBrowser(url string) *MemoryBrowser {
	return &MemoryBrowser{
		entries:   []location{parseURL(location{path: "/"}, url)},
		listeners: make(map[string][]*listener),
	}
}

func (b *MemoryBrowser) cur() location { return b.entries[b.index] }

// Pathname implements Platform.
func (b *MemoryBrowser) Pathname() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cur().path
}

// Hash implements Platform.
func (b *MemoryBrowser) Hash() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cur().hash
}

// URL returns the path, query and fragment of the active entry.
func (b *MemoryBrowser) URL() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cur().String()
}

// Len is the number of entries in the session history.
func (b *MemoryBrowser) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// Reloads counts page loads caused by ReplaceLocation changing the path.
func (b *MemoryBrowser) Reloads() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.reloads
}

func (b *MemoryBrowser) push(l location) {
	b.entries = append(b.entries[:b.index+1], l)
	b.index = len(b.entries) - 1
}

// PushState implements Platform. No event fires.
func (b *MemoryBrowser) PushState(url string) {
	b.mu.Lock()
	b.push(parseURL(b.cur(), url))
	b.mu.Unlock()
}

// ReplaceState implements Platform. No event fires.
func (b *MemoryBrowser) ReplaceState(url string) {
	b.mu.Lock()
	b.entries[b.index] = parseURL(b.cur(), url)
	b.mu.Unlock()
}

// SetHash implements Platform. A changed fragment adds an entry and fires
// hashchange.
func (b *MemoryBrowser) SetHash(hash string) {
	b.mu.Lock()
	cur := b.cur()
	next := location{path: cur.path, search: cur.search, hash: normHash(hash)}
	if next.hash == cur.hash {
		b.mu.Unlock()
		return
	}
	b.push(next)
	b.mu.Unlock()
	b.Dispatch(EventHashChange)
}

// ReplaceLocation implements Platform. A different path counts as a reload
// and fires nothing; a different fragment alone fires hashchange.
func (b *MemoryBrowser) ReplaceLocation(url string) {
	b.mu.Lock()
	cur := b.cur()
	next := parseURL(cur, url)
	b.entries[b.index] = next
	if next.path != cur.path || next.search != cur.search {
		b.reloads++
		b.mu.Unlock()
		return
	}
	changed := next.hash != cur.hash
	b.mu.Unlock()
	if changed {
		b.Dispatch(EventHashChange)
	}
}

// Back moves one entry back, if possible.
func (b *MemoryBrowser) Back() bool { return b.Go(-1) }

// Forward moves one entry forward, if possible.
func (b *MemoryBrowser) Forward() bool { return b.Go(1) }

// Go traverses the session history by delta. popstate fires after every
// traversal, followed by hashchange when the fragment differs.
func (b *MemoryBrowser) Go(delta int) bool {
	b.mu.Lock()
	target := b.index + delta
	if delta == 0 || target < 0 || target >= len(b.entries) {
		b.mu.Unlock()
		return false
	}
	from := b.cur()
	b.index = target
	to := b.cur()
	b.mu.Unlock()
	b.Dispatch(EventPopState)
	if from.hash != to.hash && from.path == to.path {
		b.Dispatch(EventHashChange)
	}
	return true
}

// Listen implements Platform.
func (b *MemoryBrowser) Listen(event string, fn func()) func() {
	l := &listener{fn: fn}
	b.mu.Lock()
	b.listeners[event] = append(b.listeners[event], l)
	b.mu.Unlock()
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		list := b.listeners[event]
		for i, x := range list {
			if x == l {
				b.listeners[event] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

// Dispatch fires event to its listeners, e.g. to mimic the popstate some
// browsers deliver right after page load.
func (b *MemoryBrowser) Dispatch(event string) {
	b.mu.Lock()
	list := append([]*listener(nil), b.listeners[event]...)
	b.mu.Unlock()
	for _, l := range list {
		l.fn()
	}
}
