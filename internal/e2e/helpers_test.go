package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"obsui/internal/httpapi"
	"obsui/internal/store"
	"obsui/internal/todo"
)

// newServer opens a SQLite store at dbPath and serves a fresh todo service
// over httptest. Everything is closed with the test.
func newServer(t *testing.T, dbPath string, cfg todo.Config) (*httptest.Server, *todo.Service) {
	t.Helper()
	st, err := store.OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	bc := todo.NewBroadcaster()
	cfg.Store = st
	cfg.Publisher = bc
	svc, err := todo.New(context.Background(), cfg)
	if err != nil {
		_ = st.Close()
		t.Fatalf("todo.New: %v", err)
	}
	srv := httptest.NewServer(httpapi.NewMux(svc, bc))
	t.Cleanup(func() {
		srv.Close()
		_ = svc.Close()
		_ = st.Close()
	})
	return srv, svc
}

func tempDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "todos.db")
}

func httpDo(t *testing.T, method, url string, body any, out any) int {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(context.Background(), method, url, rd)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	defer resp.Body.Close()
	if out != nil && resp.StatusCode < 300 && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s: %v", method, url, err)
		}
	} else {
		_, _ = io.Copy(io.Discard, resp.Body)
	}
	return resp.StatusCode
}
