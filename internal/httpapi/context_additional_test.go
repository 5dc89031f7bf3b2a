package httpapi

import (
	"context"
	"testing"
	"time"
)

func TestSetBaseContext_NilResetsToBackground(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	SetBaseContext(ctx)
	cancel()
	// nolint:staticcheck // SA1012: nil falls back to Background
	SetBaseContext(nil)
	t.Cleanup(func() { SetBaseContext(context.Background()) })
	if serverBaseCtx.Err() != nil {
		t.Fatalf("base context still canceled after reset")
	}
}

func TestJoinContexts_CancelsWhenEitherDone(t *testing.T) {
	for _, first := range []bool{true, false} {
		a, ac := context.WithCancel(context.Background())
		b, bc := context.WithCancel(context.Background())
		j, cancelJ := joinContexts(a, b)
		if first {
			ac()
		} else {
			bc()
		}
		select {
		case <-j.Done():
		case <-time.After(500 * time.Millisecond):
			t.Fatalf("joined context not canceled (first=%v)", first)
		}
		cancelJ()
		ac()
		bc()
	}
}

func TestJoinContexts_ReleaseWithoutParents(t *testing.T) {
	a, ac := context.WithCancel(context.Background())
	defer ac()
	j, cancelJ := joinContexts(a, context.Background())
	cancelJ()
	select {
	case <-j.Done():
	case <-time.After(500 * time.Millisecond):
		t.Fatal("release did not cancel joined context")
	}
	if a.Err() != nil {
		t.Fatal("release canceled a parent")
	}
}
