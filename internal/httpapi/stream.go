package httpapi

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"obsui/internal/todo"
	"obsui/pkg/types"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     checkOrigin,
}

// checkOrigin accepts same-host origins, plus the CORS allow list when CORS
// is enabled.
func checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if corsEnabled {
		for _, o := range corsAllowedOrigins {
			if o == "*" || strings.EqualFold(o, origin) {
				return true
			}
		}
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

// toStreamEvent converts a service event to its wire form.
func toStreamEvent(e todo.Event) types.StreamEvent {
	out := types.StreamEvent{Type: e.Name}
	if td, ok := e.Fields["todo"].(types.Todo); ok {
		out.Todo = &td
	}
	out.OldPath, _ = e.Fields["oldPath"].(string)
	out.Path, _ = e.Fields["path"].(string)
	out.Route, _ = e.Fields["route"].([]string)
	return out
}

// serveEvents upgrades to a websocket and pushes every service event as a
// JSON text message until the client leaves or the server shuts down.
func serveEvents(src EventSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if src == nil {
			writeJSONError(w, http.StatusServiceUnavailable, "event stream unavailable")
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// the upgrader already replied
			return
		}
		defer conn.Close()

		events, cancel := src.Subscribe(streamBuffer)
		defer cancel()
		streamClients.Inc()
		defer streamClients.Dec()

		ctx, stop := joinContexts(serverBaseCtx, r.Context())
		defer stop()

		// Client messages are ignored; reading surfaces the close.
		gone := make(chan struct{})
		go func() {
			defer close(gone)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		ping := time.NewTicker(pingPeriod)
		defer ping.Stop()
		for {
			select {
			case <-ctx.Done():
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
					time.Now().Add(writeWait))
				return
			case <-gone:
				return
			case e, ok := <-events:
				if !ok {
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(toStreamEvent(e)); err != nil {
					if zlog != nil {
						zlog.Debug().Err(err).Msg("stream write")
					}
					return
				}
			case <-ping.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return
				}
			}
		}
	}
}
