package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"obsui/internal/todo"
	"obsui/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Todos() types.TodosResponse
	Add(task string) (types.Todo, error)
	Get(id string) (types.Todo, error)
	Update(id string, req types.UpdateTodoRequest) (types.Todo, error)
	Remove(id string) error
	ClearCompleted() int
	Route() types.RouteResponse
	Go(path string) (types.RouteResponse, error)
	Replace(path string) (types.RouteResponse, error)
	Back() (types.RouteResponse, error)
	Forward() (types.RouteResponse, error)
	Refresh() types.RouteResponse
	Status() types.StatusResponse
	Ready() bool
}

// EventSource feeds GET /events. todo.Broadcaster implements it.
type EventSource interface {
	Subscribe(buf int) (<-chan todo.Event, func())
}

var defaultCORSMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}

// NewMux builds the HTTP API. events may be nil, in which case /events
// answers 503.
func NewMux(svc Service, events EventSource) http.Handler {
	r := chi.NewRouter()
	r.Use(MetricsMiddleware)
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		methods := corsAllowedMethods
		if len(methods) == 0 {
			methods = defaultCORSMethods
		}
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: methods,
			AllowedHeaders: corsAllowedHeaders,
			MaxAge:         300,
		}))
	}

	r.Route("/todos", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, svc.Todos())
		})
		r.Post("/", func(w http.ResponseWriter, r *http.Request) {
			var req types.CreateTodoRequest
			if !decodeJSON(w, r, &req) {
				return
			}
			td, err := svc.Add(req.Task)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, td)
		})
		r.Post("/clear-completed", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]int{"removed": svc.ClearCompleted()})
		})
		r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
			td, err := svc.Get(chi.URLParam(r, "id"))
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, td)
		})
		r.Patch("/{id}", func(w http.ResponseWriter, r *http.Request) {
			var req types.UpdateTodoRequest
			if !decodeJSON(w, r, &req) {
				return
			}
			td, err := svc.Update(chi.URLParam(r, "id"), req)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, td)
		})
		r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
			if err := svc.Remove(chi.URLParam(r, "id")); err != nil {
				writeServiceError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})
	})

	r.Route("/route", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, svc.Route())
		})
		r.Post("/go", navigateHandler(svc.Go))
		r.Post("/replace", navigateHandler(svc.Replace))
		r.Post("/back", traverseHandler(svc.Back))
		r.Post("/forward", traverseHandler(svc.Forward))
		r.Post("/refresh", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, svc.Refresh())
		})
	})

	r.Get("/events", serveEvents(events))

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Status())
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("starting"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}

func navigateHandler(nav func(string) (types.RouteResponse, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.NavigateRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.Path) == "" {
			writeJSONError(w, http.StatusBadRequest, "path is required")
			return
		}
		rt, err := nav(req.Path)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rt)
	}
}

func traverseHandler(step func() (types.RouteResponse, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rt, err := step()
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rt)
	}
}

// decodeJSON checks the content type, limits the body and decodes it into v.
// It writes the error response and returns false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	// Limit body size (configurable, default 1MiB)
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && zlog != nil {
		zlog.Error().Err(err).Msg("encode response")
	}
}
