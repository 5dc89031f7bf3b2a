package todo

import (
	"time"

	"obsui/pkg/types"
)

// Status builds a status response for /status.
func (s *Service) Status() types.StatusResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	path, _ := s.router.Path()
	kind := "none"
	if s.store != nil {
		kind = s.store.Kind()
	}
	return types.StatusResponse{
		Total:         s.view.total,
		Left:          s.view.total - s.view.done,
		Path:          path,
		Store:         kind,
		Saves:         s.saves,
		Events:        s.events,
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		LastError:     s.lastErr,
	}
}

// Ready reports whether the router has started.
func (s *Service) Ready() bool { return s.router.Started() }
