package session

import (
	"context"
	"testing"

	"spendlog/internal/cache"
	"spendlog/internal/core"
	"spendlog/internal/log"
)

func newTestSession() (*Session, *cache.Cache) {
	c := cache.New(cache.NewMemoryStore())
	return New(c, log.Discard()), c
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession()

	if s.Authenticated(ctx) {
		t.Fatal("fresh session should not be authenticated")
	}

	profile := core.Profile{ID: "u1", Email: "user@example.com"}
	if err := s.Init(ctx, "tok-123", profile); err != nil {
		t.Fatal(err)
	}
	if !s.Authenticated(ctx) {
		t.Fatal("session should be authenticated after Init")
	}
	tok, ok := s.Token(ctx)
	if !ok || tok != "tok-123" {
		t.Fatalf("Token = %q, %v", tok, ok)
	}

	if err := s.Teardown(ctx); err != nil {
		t.Fatal(err)
	}
	if s.Authenticated(ctx) {
		t.Fatal("session should not be authenticated after Teardown")
	}
	if _, ok := s.Token(ctx); ok {
		t.Fatal("token should be gone after Teardown")
	}
	// Profile is retained across logout.
	if p, ok := s.Profile(ctx); !ok || p.ID != "u1" {
		t.Fatalf("profile should survive Teardown, got %+v ok=%v", p, ok)
	}
}
