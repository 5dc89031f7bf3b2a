// Package router keeps a normalized application path in sync with a
// browser-like navigation surface.
//
// A Router is created NOT_STARTED: Go, Replace, Refresh and Path do nothing
// and report false until Start is called once. Start picks the navigation
// mode, reconciles the initial location, emits the first "route" and begins
// listening for back/forward or fragment changes.
//
// Every refresh emits "route". "pathchange" follows only when the normalized
// path differs from the previous one. Emission is synchronous: handlers run
// before Go or Replace return and may navigate again.
package router

import (
	"sync"

	"obsui/pkg/emitter"
)

// Event names emitted by a Router.
const (
	EventRoute      = "route"
	EventPathChange = "pathchange"
)

// Config is read once by Start.
type Config struct {
	// Root is the base path of the application. Empty means "/".
	Root string `json:"root" yaml:"root" toml:"root"`
	// UseHash selects fragment navigation instead of the history API.
	UseHash bool `json:"use_hash" yaml:"use_hash" toml:"use_hash"`
}

// Route is the record carried by "route" and "pathchange".
type Route struct {
	OldPath string   `json:"oldPath"`
	Path    string   `json:"path"`
	Route   []string `json:"route"`
}

func (r Route) data() emitter.Data {
	return emitter.Data{"oldPath": r.OldPath, "path": r.Path, "route": r.Route}
}

// RouteOf reads the route record back from a router event.
func RouteOf(e emitter.Event) Route {
	r := Route{OldPath: e.String("oldPath"), Path: e.String("path")}
	r.Route, _ = e.Value("route").([]string)
	return r
}

// Router synchronizes the current path with a Platform.
type Router struct {
	emitter.Emitter

	platform Platform

	mu       sync.Mutex
	started  bool
	nav      strategy
	root     string
	current  string
	guarded  bool
	guard    string
	unlisten func()
}

// New binds a router to p. Handlers may be attached before Start so they see
// the initial route.
func New(p Platform) *Router {
	r := &Router{platform: p}
	r.SetTarget(r)
	return r
}

// Start performs the one-time transition to STARTED. Later calls are no-ops.
func (r *Router) Start(cfg Config) *Router {
	if r == nil || r.platform == nil {
		return r
	}
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		return r
	}
	root := "/"
	if cfg.Root != "" {
		root = cfg.Root
	}
	r.root = NormalizeRoot(root)
	r.nav = strategyFor(cfg.UseHash)
	r.mu.Unlock()

	r.reconcile()
	r.refresh(false)

	r.mu.Lock()
	r.guarded = true
	r.guard = r.nav.current(r.platform, r.root)
	r.unlisten = r.platform.Listen(r.nav.event(), func() { r.refresh(true) })
	r.started = true
	r.mu.Unlock()
	return r
}

// reconcile rewrites the initial location so that only the form matching the
// mode remains. When both a path and a fragment are present the path wins.
func (r *Router) reconcile() {
	p, root := r.platform, r.root
	hash := hashPath(p.Hash())
	path := rootPath(p.Pathname(), root)
	history := r.nav.mode() == ModeHistory
	base := root
	if base == "" {
		base = "/"
	}
	switch {
	case hash != "" && path != "":
		if history {
			p.ReplaceState(root + "/" + path)
		} else {
			p.ReplaceLocation(base + "#/" + path)
		}
	case hash != "" && history:
		p.ReplaceState(root + "/" + hash)
	case path != "" && !history:
		p.ReplaceLocation(base + "#/" + path)
	}
}

// Started reports whether Start has run.
func (r *Router) Started() bool {
	if r == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.started
}

// Root returns the normalized root, "" for "/".
func (r *Router) Root() string {
	if r == nil {
		return ""
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.root
}

// Mode returns the navigation mode chosen by Start.
func (r *Router) Mode() Mode {
	if r == nil {
		return ModeHistory
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.nav == nil {
		return ModeHistory
	}
	return r.nav.mode()
}

func (r *Router) active() (strategy, string, bool) {
	if r == nil {
		return nil, "", false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.nav, r.root, r.started
}

// Go navigates to path, adding a history entry.
func (r *Router) Go(path string) bool {
	nav, root, ok := r.active()
	if !ok {
		return false
	}
	if nav.push(r.platform, root, targetPath(path)) {
		r.refresh(false)
	}
	return true
}

// Replace navigates to path, rewriting the current history entry.
func (r *Router) Replace(path string) bool {
	nav, root, ok := r.active()
	if !ok {
		return false
	}
	if nav.replace(r.platform, root, targetPath(path)) {
		r.refresh(false)
	}
	return true
}

// Refresh re-reads the location and emits "route", plus "pathchange" when the
// path moved.
func (r *Router) Refresh() (Route, bool) {
	if _, _, ok := r.active(); !ok {
		return Route{}, false
	}
	rt, _ := r.refresh(false)
	return rt, true
}

// Path returns the current normalized path with a leading "/".
func (r *Router) Path() (string, bool) {
	nav, root, ok := r.active()
	if !ok {
		return "", false
	}
	return "/" + nav.current(r.platform, root), true
}

// refresh recomputes the path and emits. fromEvent marks platform-driven
// calls: the first of those after Start is swallowed when it reports the
// start path, since some browsers fire popstate on page load. Any refresh
// clears that guard.
func (r *Router) refresh(fromEvent bool) (Route, bool) {
	r.mu.Lock()
	path := r.nav.current(r.platform, r.root)
	swallow := fromEvent && r.guarded && path == r.guard
	r.guarded = false
	r.guard = ""
	if swallow {
		r.mu.Unlock()
		return Route{}, false
	}
	rt := Route{OldPath: r.current, Path: "/" + path, Route: Split(path)}
	moved := rt.Path != r.current
	r.current = rt.Path
	r.mu.Unlock()

	r.Emit(EventRoute, rt.data())
	if moved {
		r.Emit(EventPathChange, rt.data())
	}
	return rt, true
}

// Stop detaches the platform listener. The router keeps answering Path but no
// longer follows external navigation.
func (r *Router) Stop() {
	if r == nil {
		return
	}
	r.mu.Lock()
	un := r.unlisten
	r.unlisten = nil
	r.mu.Unlock()
	if un != nil {
		un()
	}
}
