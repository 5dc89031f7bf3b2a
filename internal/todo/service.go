package todo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"obsui/internal/store"
	"obsui/pkg/model"
	"obsui/pkg/modellist"
	"obsui/pkg/router"
	"obsui/pkg/types"
	"obsui/pkg/view"
)

// Keys of a todo model.
const (
	KeyID        = "id"
	KeyTask      = "task"
	KeyCompleted = "completed"
)

// Defaults applied when corresponding Config fields are unset.
const (
	DefaultStorageKey  = "toDoList"
	DefaultStartURL    = "/"
	defaultSaveTimeout = 5 * time.Second
)

// Defaults returns the properties every new todo starts from.
func Defaults() map[string]any {
	return map[string]any{KeyCompleted: false, KeyTask: "Do something"}
}

var zlog = zerolog.Nop()

// SetLogger installs a structured logger used by the service.
func SetLogger(l zerolog.Logger) { zlog = l }

// Config encapsulates the tunables for Service construction.
type Config struct {
	// Store persists the list. Nil disables persistence.
	Store store.Store
	// StorageKey is the key the list is saved under.
	StorageKey string
	// StartURL is the location the headless browser opens.
	StartURL string
	Router   router.Config
	// Publisher receives lifecycle events. Nil drops them.
	Publisher   EventPublisher
	SaveTimeout time.Duration
}

type summary struct {
	filter types.Filter
	total  int
	done   int
	status string
}

// Service is the todo application.
type Service struct {
	mu      sync.Mutex
	list    *modellist.List
	browser *router.MemoryBrowser
	router  *router.Router
	app     *view.View
	items   map[*model.Model]*itemView
	view    summary
	// path is the route of the last "route" event.
	path string

	store   store.Store
	key     string
	timeout time.Duration
	pub     EventPublisher

	saves     uint64
	events    uint64
	lastErr   string
	startTime time.Time
}

// New builds the service, loads the stored list and starts the router. The
// first route is rendered before New returns.
func New(ctx context.Context, cfg Config) (*Service, error) {
	if cfg.StorageKey == "" {
		cfg.StorageKey = DefaultStorageKey
	}
	if cfg.StartURL == "" {
		cfg.StartURL = DefaultStartURL
	}
	if cfg.SaveTimeout <= 0 {
		cfg.SaveTimeout = defaultSaveTimeout
	}
	if cfg.Publisher == nil {
		cfg.Publisher = noopPublisher{}
	}
	s := &Service{
		store:     cfg.Store,
		key:       cfg.StorageKey,
		timeout:   cfg.SaveTimeout,
		pub:       cfg.Publisher,
		items:     make(map[*model.Model]*itemView),
		startTime: time.Now(),
	}
	s.list = modellist.New(
		modellist.WithDefaults(Defaults()),
		modellist.WithModelSetup(ensureID),
	)
	s.browser = router.NewMemoryBrowser(cfg.StartURL)
	s.router = router.New(s.browser)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.app = s.newAppView()

	if s.store != nil {
		n, err := modellist.Load(ctx, s.store, s.key, s.list, model.Silent())
		if err != nil {
			return nil, fmt.Errorf("load todos: %w", err)
		}
		zlog.Info().Int("count", n).Str("store", s.store.Kind()).Str("key", s.key).Msg("todos loaded")
	}
	for _, m := range s.list.Models() {
		s.track(m)
	}
	s.router.Start(cfg.Router)
	return s, nil
}

// ensureID gives models without an id a fresh one.
func ensureID(m *model.Model) {
	if m.String(KeyID) == "" {
		m.Set(KeyID, uuid.NewString(), model.Silent())
	}
}

// Close detaches the router from the browser. The store is owned by the caller.
func (s *Service) Close() error {
	s.router.Stop()
	return nil
}

// save writes the whole list. Failures are recorded, not returned: they
// happen inside event handlers.
func (s *Service) save() {
	if s.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := modellist.Save(ctx, s.store, s.key, s.list); err != nil {
		s.lastErr = err.Error()
		savesTotal.WithLabelValues("error").Inc()
		zlog.Error().Err(err).Str("key", s.key).Msg("save todos")
		s.publish(Event{Name: EventSaveError, Fields: map[string]any{"error": err.Error()}})
		return
	}
	s.saves++
	s.lastErr = ""
	savesTotal.WithLabelValues("ok").Inc()
}

func (s *Service) publish(e Event) {
	s.events++
	eventsTotal.WithLabelValues(e.Name).Inc()
	zlog.Debug().Str("event", e.Name).Str("todo", e.TodoID).Msg("publish")
	s.pub.Publish(e)
}

func (s *Service) publishTodo(name string, m *model.Model) {
	t := toTodo(m)
	s.publish(Event{Name: name, TodoID: t.ID, Fields: map[string]any{"todo": t}})
}

func toTodo(m *model.Model) types.Todo {
	return types.Todo{
		ID:        m.String(KeyID),
		Task:      m.String(KeyTask),
		Completed: m.Bool(KeyCompleted),
	}
}
