// Package session owns the credential and cache handle for the active
// user. It is constructed once and injected wherever needed; nothing in
// this module reaches into ambient global state.
package session

import (
	"context"
	"fmt"

	"spendlog/internal/cache"
	"spendlog/internal/core"
	"spendlog/internal/log"
)

// Session is the explicit session object. Init is called on successful
// login, Teardown on logout. Authentication itself happens elsewhere; the
// session only holds the resulting credential.
type Session struct {
	cache  *cache.Cache
	logger *log.Logger
}

func New(c *cache.Cache, logger *log.Logger) *Session {
	return &Session{
		cache:  c,
		logger: logger.WithComponent(log.ComponentSession),
	}
}

// Init stores the credential and profile after a successful login.
func (s *Session) Init(ctx context.Context, token string, profile core.Profile) error {
	if err := s.cache.SaveToken(ctx, token); err != nil {
		return fmt.Errorf("store credential: %w", err)
	}
	if err := s.cache.SaveProfile(ctx, profile); err != nil {
		return fmt.Errorf("store profile: %w", err)
	}
	s.logger.InfoContext(ctx, "Session initialized", "user_id", profile.ID)
	return nil
}

// Teardown clears the credential slot. Cached expenses and profile are
// deliberately kept for re-login convenience.
func (s *Session) Teardown(ctx context.Context) error {
	if err := s.cache.ClearToken(ctx); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	s.logger.InfoContext(ctx, "Session torn down")
	return nil
}

// Authenticated reports whether a credential is present. The remote store
// has the final word; a stored token may still be rejected.
func (s *Session) Authenticated(ctx context.Context) bool {
	_, ok, err := s.cache.Token(ctx)
	return err == nil && ok
}

// Token returns the bearer credential for outbound requests.
func (s *Session) Token(ctx context.Context) (string, bool) {
	token, ok, err := s.cache.Token(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to read credential", log.FieldError, err)
		return "", false
	}
	return token, ok
}

// Profile returns the cached user profile, if any.
func (s *Session) Profile(ctx context.Context) (core.Profile, bool) {
	p, ok, err := s.cache.Profile(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to read profile", log.FieldError, err)
		return core.Profile{}, false
	}
	return p, ok
}
