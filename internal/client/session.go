package client

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/justestif/wellness-journal/internal/journal"
)

// Session is the client's authentication state: the bearer token held by
// the Client, its on-disk copy and the user it belongs to.
type Session struct {
	client *Client
	cache  *SessionCache
	now    func() time.Time

	mu   sync.RWMutex
	user *journal.PublicUser
}

// NewSession ties a client to a session cache.
func NewSession(c *Client, cache *SessionCache) *Session {
	return &Session{client: c, cache: cache, now: time.Now}
}

// Open restores a cached session and confirms it with the server. It returns
// nil without error when there is nothing to restore or when the server no
// longer accepts the token, in which case the cache is cleared.
func (s *Session) Open(ctx context.Context) (*journal.PublicUser, error) {
	cached, err := s.cache.Load()
	if err != nil {
		return nil, err
	}
	if cached == nil || (cached.BaseURL != "" && cached.BaseURL != s.client.BaseURL()) {
		return nil, nil
	}

	s.client.SetToken(cached.Token)
	user, err := s.client.Me(ctx)
	if IsStatus(err, http.StatusUnauthorized) || IsStatus(err, http.StatusNotFound) {
		return nil, s.teardown()
	}
	if err != nil {
		return nil, fmt.Errorf("validating cached session: %w", err)
	}

	s.setUser(user)
	return user, nil
}

// Register creates an account and starts a session for it.
func (s *Session) Register(ctx context.Context, in journal.RegisterInput) (*journal.PublicUser, error) {
	res, err := s.client.Register(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.adopt(res)
}

// Login starts a session from credentials.
func (s *Session) Login(ctx context.Context, in journal.LoginInput) (*journal.PublicUser, error) {
	res, err := s.client.Login(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.adopt(res)
}

// Logout notifies the server and always discards the local session. Tokens
// are stateless, so a failed server call does not keep the session alive.
func (s *Session) Logout(ctx context.Context) error {
	if s.client.Token() != "" {
		_ = s.client.Logout(ctx)
	}
	return s.teardown()
}

// User returns the signed-in user, or nil.
func (s *Session) User() *journal.PublicUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Authenticated reports whether a user is signed in.
func (s *Session) Authenticated() bool {
	return s.User() != nil
}

func (s *Session) adopt(res *AuthResult) (*journal.PublicUser, error) {
	s.client.SetToken(res.Token)
	user := res.User
	s.setUser(&user)

	err := s.cache.Save(&CachedSession{
		BaseURL: s.client.BaseURL(),
		Token:   res.Token,
		User:    user,
		SavedAt: s.now().UTC(),
	})
	if err != nil {
		return &user, fmt.Errorf("caching session: %w", err)
	}
	return &user, nil
}

func (s *Session) teardown() error {
	s.client.SetToken("")
	s.setUser(nil)
	return s.cache.Delete()
}

func (s *Session) setUser(user *journal.PublicUser) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
}
