package cli

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"obsui/internal/config"
)

// run executes one command line against a fresh command tree.
func run(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errb bytes.Buffer
	code = MainWithArgs(context.Background(), args, &out, &errb)
	return code, out.String(), errb.String()
}

func fileStore(dir string) []string {
	return []string{"--store", "file", "--dsn", dir, "--log-level", "off"}
}

func TestMainWithArgs_Codes(t *testing.T) {
	if code, _, _ := run(t); code != 2 {
		t.Fatalf("no args expected 2, got %d", code)
	}
	if code, _, _ := run(t, "--help"); code != 0 {
		t.Fatalf("help expected 0, got %d", code)
	}
	if code, _, stderr := run(t, "nope"); code != 1 || !strings.Contains(stderr, "unknown command") {
		t.Fatalf("unknown command code=%d stderr=%q", code, stderr)
	}
}

func TestTodoCommands_Lifecycle(t *testing.T) {
	dir := t.TempDir()
	base := fileStore(dir)

	code, out, stderr := run(t, append(base, "todo", "add", "buy", "milk")...)
	if code != 0 {
		t.Fatalf("add code=%d stderr=%s", code, stderr)
	}
	milk := strings.TrimSpace(out)
	if milk == "" {
		t.Fatalf("add printed no id")
	}
	if code, _, _ := run(t, append(base, "todo", "add", "walk dog")...); code != 0 {
		t.Fatalf("second add failed")
	}
	if _, err := os.Stat(filepath.Join(dir, config.DefaultStorageKey+".json")); err != nil {
		t.Fatalf("list not persisted: %v", err)
	}

	if code, out, _ := run(t, append(base, "todo", "done", milk)...); code != 0 || !strings.Contains(out, "[x] buy milk") {
		t.Fatalf("done code=%d out=%q", code, out)
	}
	_, out, _ = run(t, append(base, "todo", "ls", "--filter", "completed")...)
	if !strings.Contains(out, milk) || strings.Contains(out, "walk dog") || !strings.Contains(out, "1 left, 1 done, 2 total") {
		t.Fatalf("ls completed:\n%s", out)
	}
	_, out, _ = run(t, append(base, "todo", "ls", "--filter", "active")...)
	if strings.Contains(out, milk) || !strings.Contains(out, "walk dog") {
		t.Fatalf("ls active:\n%s", out)
	}

	if code, out, _ := run(t, append(base, "todo", "undo", milk)...); code != 0 || !strings.Contains(out, "[ ] buy milk") {
		t.Fatalf("undo code=%d out=%q", code, out)
	}
	_, out, _ = run(t, append(base, "todo", "ls", "--filter", "completed")...)
	if !strings.Contains(out, "No tasks completed.") {
		t.Fatalf("empty completed view:\n%s", out)
	}

	run(t, append(base, "todo", "done", milk)...)
	if _, out, _ := run(t, append(base, "todo", "clear")...); !strings.Contains(out, "removed 1") {
		t.Fatalf("clear out=%q", out)
	}
	_, out, _ = run(t, append(base, "todo", "ls")...)
	if strings.Contains(out, milk) || !strings.Contains(out, "1 left, 0 done, 1 total") {
		t.Fatalf("ls after clear:\n%s", out)
	}
}

func TestTodoCommands_Errors(t *testing.T) {
	base := fileStore(t.TempDir())
	if code, _, stderr := run(t, append(base, "todo", "rm", "missing")...); code != 1 || !strings.Contains(stderr, "missing") {
		t.Fatalf("rm missing code=%d stderr=%q", code, stderr)
	}
	if code, _, _ := run(t, append(base, "todo", "ls", "--filter", "someday")...); code != 1 {
		t.Fatalf("bad filter expected 1, got %d", code)
	}
	if code, _, _ := run(t, "--store", "carrier-pigeon", "--log-level", "off", "todo", "ls"); code != 1 {
		t.Fatalf("bad store kind expected 1, got %d", code)
	}
}

func TestFlagsOverrideEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("OBSUI_STORE_KIND", "file")
	t.Setenv("OBSUI_STORE_DSN", dir)
	t.Setenv("OBSUI_STORE_KEY", "fromenv")
	if code, _, stderr := run(t, "--log-level", "off", "--key", "fromflag", "todo", "add", "x"); code != 0 {
		t.Fatalf("add code=%d stderr=%s", code, stderr)
	}
	if _, err := os.Stat(filepath.Join(dir, "fromflag.json")); err != nil {
		t.Fatalf("flag key not used: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "fromenv.json")); err == nil {
		t.Fatalf("env key used despite flag")
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "obsui.yaml")
	body := "log_level: \"off\"\nstore:\n  kind: file\n  dsn: " + dir + "\n  key: fromfile\n"
	if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	if code, _, stderr := run(t, "--config", cfgPath, "todo", "add", "x"); code != 0 {
		t.Fatalf("add code=%d stderr=%s", code, stderr)
	}
	if _, err := os.Stat(filepath.Join(dir, "fromfile.json")); err != nil {
		t.Fatalf("config key not used: %v", err)
	}
	if code, _, _ := run(t, "--config", filepath.Join(dir, "missing.yaml"), "todo", "ls"); code != 1 {
		t.Fatalf("missing config expected 1, got %d", code)
	}
}

func TestRouteCommand(t *testing.T) {
	code, out, _ := run(t, "--log-level", "off", "--root", "/app", "route", "/app/completed/")
	if code != 0 || !strings.Contains(out, "path:     /completed") || !strings.Contains(out, "mode:     history") {
		t.Fatalf("history route code=%d out:\n%s", code, out)
	}
	code, out, _ = run(t, "--log-level", "off", "--hash", "route", "/#/active")
	if code != 0 || !strings.Contains(out, "path:     /active") || !strings.Contains(out, "mode:     hash") {
		t.Fatalf("hash route code=%d out:\n%s", code, out)
	}
}

func TestCompletion(t *testing.T) {
	for _, sh := range []string{"bash", "zsh", "fish", "powershell"} {
		code, out, _ := run(t, "--log-level", "off", "completion", sh)
		if code != 0 || !strings.Contains(out, "obsuid") {
			t.Fatalf("%s completion code=%d", sh, code)
		}
	}
}

func TestNewLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	if l := newLogger(&buf, "off"); l.GetLevel() != zerolog.Disabled {
		t.Fatalf("off level=%v", l.GetLevel())
	}
	if l := newLogger(&buf, "DEBUG"); l.GetLevel() != zerolog.DebugLevel {
		t.Fatalf("debug level=%v", l.GetLevel())
	}
	if l := newLogger(&buf, "loud"); l.GetLevel() != zerolog.InfoLevel {
		t.Fatalf("fallback level=%v", l.GetLevel())
	}
	l := newLogger(&buf, "warn")
	l.Info().Msg("hidden")
	l.Warn().Msg("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("log output %q", buf.String())
	}
}

func TestServer_ServeAndShutdown(t *testing.T) {
	cfg := config.Config{Store: config.StoreConfig{Kind: "sqlite", DSN: filepath.Join(t.TempDir(), "todos.db")}}.WithDefaults()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	srv, err := newServer(ctx, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("newServer: %v", err)
	}
	defer srv.close()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	done := make(chan error, 1)
	go func() { done <- srv.serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		t.Fatalf("healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz status=%d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("serve did not stop")
	}
}
