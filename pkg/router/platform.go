package router

// Platform navigation events.
const (
	EventPopState   = "popstate"
	EventHashChange = "hashchange"
)

// Platform is the browser navigation surface the router drives.
// MemoryBrowser implements it headlessly; JSBrowser binds a real window under
// GOOS=js.
type Platform interface {
	// Pathname is the path of the active location, e.g. "/app/x".
	Pathname() string
	// Hash is the fragment including its leading "#", or "" when empty.
	Hash() string
	// PushState adds a history entry for url without navigating.
	PushState(url string)
	// ReplaceState rewrites the current history entry without navigating.
	ReplaceState(url string)
	// SetHash assigns the fragment. The platform fires EventHashChange when
	// the fragment actually changes.
	SetHash(hash string)
	// ReplaceLocation replaces the current entry with url. Changing the path
	// this way reloads the page.
	ReplaceLocation(url string)
	// Listen registers fn for a platform event and returns its remover.
	Listen(event string, fn func()) (remove func())
}
