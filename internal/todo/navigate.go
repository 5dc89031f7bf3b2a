package todo

import (
	"obsui/pkg/router"
	"obsui/pkg/types"
)

// Route describes the router and browser state.
func (s *Service) Route() types.RouteResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.routeLocked()
}

func (s *Service) routeLocked() types.RouteResponse {
	path, _ := s.router.Path()
	return types.RouteResponse{
		Path:          path,
		Route:         router.Split(path),
		Mode:          s.router.Mode().String(),
		HistoryLength: s.browser.Len(),
		URL:           s.browser.URL(),
	}
}

// Go navigates to path with a new history entry.
func (s *Service) Go(path string) (types.RouteResponse, error) {
	return s.navigate(path, s.router.Go)
}

// Replace navigates to path in place.
func (s *Service) Replace(path string) (types.RouteResponse, error) {
	return s.navigate(path, s.router.Replace)
}

func (s *Service) navigate(path string, nav func(string) bool) (types.RouteResponse, error) {
	if path == "" {
		return types.RouteResponse{}, ErrInvalid("path is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !nav(path) {
		return types.RouteResponse{}, ErrInvalid("router not started")
	}
	return s.routeLocked(), nil
}

// Back moves one entry back in the headless history.
func (s *Service) Back() (types.RouteResponse, error) {
	return s.traverse(-1)
}

// Forward moves one entry forward in the headless history.
func (s *Service) Forward() (types.RouteResponse, error) {
	return s.traverse(1)
}

func (s *Service) traverse(delta int) (types.RouteResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.browser.Go(delta) {
		return types.RouteResponse{}, ErrInvalid("no history entry in that direction")
	}
	return s.routeLocked(), nil
}

// Refresh re-reads the location and emits the route again.
func (s *Service) Refresh() types.RouteResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.router.Refresh()
	return s.routeLocked()
}
