// Package moods provides the per-day mood operations of the journal.
package moods

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/justestif/wellness-journal/internal/journal"
)

const notFound = "No mood found for this date"

// Service handles mood upserts and lookups.
type Service struct {
	moods journal.MoodStore
	now   func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now for mood timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New creates a new mood service.
func New(store journal.MoodStore, opts ...Option) *Service {
	s := &Service{moods: store, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Upsert records the owner's mood for in.Date, replacing the emoji and color
// of an existing entry for that day. The entry keeps its ID and createdAt.
func (s *Service) Upsert(ctx context.Context, ownerID uuid.UUID, in journal.MoodInput) (*journal.Mood, error) {
	in.Normalize()
	if err := journal.Validate(&in); err != nil {
		return nil, err
	}

	mood := &journal.Mood{
		UserID:    ownerID,
		Date:      in.Date,
		MoodEmoji: in.MoodEmoji,
		MoodColor: in.MoodColor,
		UpdatedAt: s.now().UTC().Truncate(time.Microsecond),
	}
	if err := s.moods.Upsert(ctx, mood); err != nil {
		return nil, fmt.Errorf("saving mood: %w", err)
	}
	return mood, nil
}

// List returns every mood of the owner, newest date first.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]journal.Mood, error) {
	moods, err := s.moods.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing moods: %w", err)
	}
	return moods, nil
}

// Get returns the owner's mood for date.
func (s *Service) Get(ctx context.Context, ownerID uuid.UUID, date string) (*journal.Mood, error) {
	if !journal.ValidDate(date) {
		return nil, journal.InvalidDate()
	}
	mood, err := s.moods.Get(ctx, ownerID, date)
	if errors.Is(err, journal.ErrNotFound) {
		return nil, journal.NotFound(notFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting mood: %w", err)
	}
	return mood, nil
}

// Delete removes the owner's mood for date.
func (s *Service) Delete(ctx context.Context, ownerID uuid.UUID, date string) error {
	if !journal.ValidDate(date) {
		return journal.InvalidDate()
	}
	err := s.moods.Delete(ctx, ownerID, date)
	if errors.Is(err, journal.ErrNotFound) {
		return journal.NotFound(notFound)
	}
	if err != nil {
		return fmt.Errorf("deleting mood: %w", err)
	}
	return nil
}
