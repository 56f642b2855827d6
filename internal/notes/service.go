// Package notes provides the owner-scoped note operations of the journal.
package notes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/justestif/wellness-journal/internal/journal"
)

const notFound = "Note not found"

// Service handles note creation, retrieval and editing.
type Service struct {
	notes journal.NoteStore
	now   func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now for note timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New creates a new note service.
func New(store journal.NoteStore, opts ...Option) *Service {
	s := &Service{notes: store, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the owner's notes, most recently updated first, optionally
// restricted to one category.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID, category string) ([]journal.Note, error) {
	if category != "" && !journal.IsCategory(category) {
		return nil, journal.InvalidCategory()
	}
	notes, err := s.notes.List(ctx, ownerID, category)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	return notes, nil
}

// Create validates in, applies defaults and stores a note owned by ownerID.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, in journal.NoteInput) (*journal.Note, error) {
	note, err := journal.NewNote(ownerID, in, s.stamp())
	if err != nil {
		return nil, err
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("creating note: %w", err)
	}
	return note, nil
}

// Get returns one of the owner's notes.
func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*journal.Note, error) {
	note, err := s.notes.Get(ctx, ownerID, id)
	if errors.Is(err, journal.ErrNotFound) {
		return nil, journal.NotFound(notFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting note: %w", err)
	}
	return note, nil
}

// Update applies the supplied fields of patch and refreshes updatedAt, even
// when patch is empty. Nothing is written if validation fails.
func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, patch journal.NotePatch) (*journal.Note, error) {
	patch.Normalize()
	if err := journal.Validate(&patch); err != nil {
		return nil, err
	}

	note, err := s.notes.Update(ctx, ownerID, id, patch, s.stamp())
	if errors.Is(err, journal.ErrNotFound) {
		return nil, journal.NotFound(notFound)
	}
	if err != nil {
		return nil, fmt.Errorf("updating note: %w", err)
	}
	return note, nil
}

// Delete removes one of the owner's notes.
func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	err := s.notes.Delete(ctx, ownerID, id)
	if errors.Is(err, journal.ErrNotFound) {
		return journal.NotFound(notFound)
	}
	if err != nil {
		return fmt.Errorf("deleting note: %w", err)
	}
	return nil
}

// stamp truncates to the precision every backend can store.
func (s *Service) stamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}
