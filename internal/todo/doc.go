// Package todo is the demo application built on the observer core. It is
// split into small files by concern:
//
//   - service.go: Service type, constructor, persistence and publishing.
//   - views.go: headless app and item views wired to the list and router.
//   - ops.go: todo mutations and listing.
//   - navigate.go: route control through the headless browser.
//   - status.go: Status reporting.
//   - events.go, eventpub_*.go: lifecycle events and publishers.
//   - errors.go: error types and helpers (IsNotFound, IsInvalid).
//   - metrics.go: Prometheus collectors.
//
// A Service owns a modellist.List of todo models, a router.Router running on
// a router.MemoryBrowser and a tree of view.View values that recompute
// visibility whenever the list, a model or the route changes. Every add,
// remove and change is saved to the configured store.
//
// Service methods are safe for concurrent use; they are serialized by one
// mutex and all events run synchronously under it.
package todo
