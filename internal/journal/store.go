package journal

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore persists user accounts. Create returns ErrConflict when the
// username or email is already taken; lookups return ErrNotFound.
type UserStore interface {
	Create(ctx context.Context, user *User) error
	Get(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}

// NoteStore persists notes. Every method is scoped to ownerID: a note owned
// by another user is reported as ErrNotFound.
type NoteStore interface {
	// List returns the owner's notes, most recently updated first. An empty
	// category returns every note.
	List(ctx context.Context, ownerID uuid.UUID, category string) ([]Note, error)
	Create(ctx context.Context, note *Note) error
	Get(ctx context.Context, ownerID, id uuid.UUID) (*Note, error)
	// Update applies patch atomically, sets updated_at and returns the
	// resulting note.
	Update(ctx context.Context, ownerID, id uuid.UUID, patch NotePatch, updatedAt time.Time) (*Note, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// MoodStore persists at most one mood per (owner, date).
type MoodStore interface {
	// Upsert inserts mood or overwrites the emoji and color of the existing
	// record for the same owner and date in a single statement. On return
	// mood carries the persisted ID and timestamps.
	Upsert(ctx context.Context, mood *Mood) error
	// List returns the owner's moods, newest date first.
	List(ctx context.Context, ownerID uuid.UUID) ([]Mood, error)
	Get(ctx context.Context, ownerID uuid.UUID, date string) (*Mood, error)
	Delete(ctx context.Context, ownerID uuid.UUID, date string) error
}

// Store groups the repositories of one backend.
type Store interface {
	Users() UserStore
	Notes() NoteStore
	Moods() MoodStore
	Close() error
}
