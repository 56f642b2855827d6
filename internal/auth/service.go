// Package auth implements account registration, password login and the
// stateless bearer tokens that identify callers of the journal API.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/justestif/wellness-journal/internal/journal"
)

const invalidCredentials = "Invalid credentials"

// Result is returned by Register and Login.
type Result struct {
	User  journal.PublicUser `json:"user"`
	Token string             `json:"token"`
}

// Service is the credential service.
type Service struct {
	users      journal.UserStore
	tokens     *TokenIssuer
	bcryptCost int
	now        func() time.Time

	// dummyHash is compared against when the email is unknown so the miss
	// costs the same as a wrong password.
	dummyHash []byte
}

// Option configures a Service.
type Option func(*Service)

// WithTokenTTL sets the lifetime of issued tokens. Non-positive values keep
// DefaultTokenTTL.
func WithTokenTTL(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.tokens.ttl = d
		}
	}
}

// WithBcryptCost sets the bcrypt work factor.
func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		s.bcryptCost = cost
	}
}

// WithClock replaces time.Now for token and account timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
		s.tokens.now = now
	}
}

// New creates a credential service signing tokens with secret.
func New(users journal.UserStore, secret []byte, opts ...Option) (*Service, error) {
	s := &Service{
		users:      users,
		tokens:     NewTokenIssuer(secret, DefaultTokenTTL),
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing dummy password: %w", err)
	}
	s.dummyHash = dummy
	return s, nil
}

// Register creates an account and returns it with a fresh token.
// Returns a *journal.ValidationError for bad input and a journal.ErrConflict
// error when the username or email is taken.
func (s *Service) Register(ctx context.Context, in journal.RegisterInput) (*Result, error) {
	in.Normalize()
	if err := journal.Validate(&in); err != nil {
		return nil, err
	}

	if err := s.checkAvailable(ctx, in.Username, in.Email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &journal.User{
		ID:           uuid.New(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC().Truncate(time.Microsecond),
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration.
		if errors.Is(err, journal.ErrConflict) {
			return nil, journal.Conflict("User already exists")
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return s.issue(user)
}

func (s *Service) checkAvailable(ctx context.Context, username, email string) error {
	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return journal.Conflict("Email already registered")
	}
	if !errors.Is(err, journal.ErrNotFound) {
		return fmt.Errorf("checking email: %w", err)
	}

	_, err = s.users.GetByUsername(ctx, username)
	if err == nil {
		return journal.Conflict("Username already taken")
	}
	if !errors.Is(err, journal.ErrNotFound) {
		return fmt.Errorf("checking username: %w", err)
	}
	return nil
}

// Login verifies the email and password and issues a fresh token. Unknown
// emails and wrong passwords produce the same error.
func (s *Service) Login(ctx context.Context, in journal.LoginInput) (*Result, error) {
	in.Normalize()
	if err := journal.Validate(&in); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, in.Email)
	if errors.Is(err, journal.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(in.Password))
		return nil, journal.Unauthenticated(invalidCredentials)
	}
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, journal.Unauthenticated(invalidCredentials)
	}

	return s.issue(user)
}

// VerifyToken resolves a bearer token to the identity it was issued for.
// It does not touch the user store.
func (s *Service) VerifyToken(token string) (journal.Identity, error) {
	id, err := s.tokens.Verify(token)
	if err != nil {
		return journal.Identity{}, journal.Unauthenticated("Invalid or expired token")
	}
	return id, nil
}

// CurrentUser returns the public view of the user behind id.
func (s *Service) CurrentUser(ctx context.Context, id journal.Identity) (*journal.PublicUser, error) {
	user, err := s.users.Get(ctx, id.UserID)
	if errors.Is(err, journal.ErrNotFound) {
		return nil, journal.NotFound("User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	pub := user.Public()
	return &pub, nil
}

func (s *Service) issue(user *journal.User) (*Result, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &Result{User: user.Public(), Token: token}, nil
}
