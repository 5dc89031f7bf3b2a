package router

// Mode selects how the router reads and writes the location.
type Mode int

const (
	// ModeHistory uses the path and the history API.
	ModeHistory Mode = iota
	// ModeHash uses the location fragment.
	ModeHash
)

func (m Mode) String() string {
	if m == ModeHash {
		return "hash"
	}
	return "history"
}

// strategy is one of the two navigation variants, picked once by Start.
type strategy interface {
	mode() Mode
	// event is the platform event that signals external navigation.
	event() string
	// current returns the normalized path, without leading or trailing "/".
	current(p Platform, root string) string
	// push and replace navigate to path and report whether the router must
	// refresh by itself because the platform fires no event.
	push(p Platform, root, path string) (refresh bool)
	replace(p Platform, root, path string) (refresh bool)
}

type historyStrategy struct{}

func (historyStrategy) mode() Mode    { return ModeHistory }
func (historyStrategy) event() string { return EventPopState }

func (historyStrategy) current(p Platform, root string) string {
	return rootPath(p.Pathname(), root)
}

func (historyStrategy) push(p Platform, root, path string) bool {
	p.PushState(root + path)
	return true
}

func (historyStrategy) replace(p Platform, root, path string) bool {
	p.ReplaceState(root + path)
	return true
}

type hashStrategy struct{}

func (hashStrategy) mode() Mode    { return ModeHash }
func (hashStrategy) event() string { return EventHashChange }

func (hashStrategy) current(p Platform, _ string) string {
	return hashPath(p.Hash())
}

func (hashStrategy) push(p Platform, _, path string) bool {
	p.SetHash("#" + path)
	return false
}

func (hashStrategy) replace(p Platform, _, path string) bool {
	p.ReplaceLocation("#" + path)
	return false
}

func strategyFor(useHash bool) strategy {
	if useHash {
		return hashStrategy{}
	}
	return historyStrategy{}
}
