package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/justestif/wellness-journal/internal/journal"
)

const noteColumns = `id, user_id, title, content, category, emoji, background_color, text_color, stickers, created_at, updated_at`

// NoteRepository handles note database operations.
type NoteRepository struct {
	pool *pgxpool.Pool
}

// List retrieves the owner's notes, most recently updated first.
func (r *NoteRepository) List(ctx context.Context, ownerID uuid.UUID, category string) ([]journal.Note, error) {
	query := `
		SELECT ` + noteColumns + `
		FROM notes
		WHERE user_id = $1 AND ($2 = '' OR category = $2)
		ORDER BY updated_at DESC, id
	`
	rows, err := r.pool.Query(ctx, query, ownerID, category)
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	notes := []journal.Note{}
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		notes = append(notes, *note)
	}
	return notes, rows.Err()
}

// Create inserts a new note.
func (r *NoteRepository) Create(ctx context.Context, note *journal.Note) error {
	query := `
		INSERT INTO notes (` + noteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.pool.Exec(ctx, query,
		note.ID,
		note.UserID,
		note.Title,
		note.Content,
		note.Category,
		note.Emoji,
		note.BackgroundColor,
		note.TextColor,
		note.Stickers,
		note.CreatedAt,
		note.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting note: %w", err)
	}
	return nil
}

// Get retrieves one of the owner's notes.
func (r *NoteRepository) Get(ctx context.Context, ownerID, id uuid.UUID) (*journal.Note, error) {
	query := `
		SELECT ` + noteColumns + `
		FROM notes
		WHERE id = $1 AND user_id = $2
	`
	note, err := scanNote(r.pool.QueryRow(ctx, query, id, ownerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, journal.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying note: %w", err)
	}
	return note, nil
}

// Update overwrites the supplied fields in a single statement.
func (r *NoteRepository) Update(ctx context.Context, ownerID, id uuid.UUID, patch journal.NotePatch, updatedAt time.Time) (*journal.Note, error) {
	query := `
		UPDATE notes SET
			title = COALESCE($3, title),
			content = COALESCE($4, content),
			category = COALESCE($5, category),
			emoji = COALESCE($6, emoji),
			background_color = COALESCE($7, background_color),
			text_color = COALESCE($8, text_color),
			stickers = COALESCE($9, stickers),
			updated_at = $10
		WHERE id = $1 AND user_id = $2
		RETURNING ` + noteColumns

	var stickers []string
	if patch.Stickers != nil {
		stickers = *patch.Stickers
	}

	note, err := scanNote(r.pool.QueryRow(ctx, query,
		id,
		ownerID,
		patch.Title,
		patch.Content,
		patch.Category,
		patch.Emoji,
		patch.BackgroundColor,
		patch.TextColor,
		stickers,
		updatedAt,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, journal.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating note: %w", err)
	}
	return note, nil
}

// Delete removes one of the owner's notes.
func (r *NoteRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	query := `DELETE FROM notes WHERE id = $1 AND user_id = $2`
	result, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting note: %w", err)
	}
	if result.RowsAffected() == 0 {
		return journal.ErrNotFound
	}
	return nil
}

func scanNote(row pgx.Row) (*journal.Note, error) {
	var note journal.Note
	err := row.Scan(
		&note.ID,
		&note.UserID,
		&note.Title,
		&note.Content,
		&note.Category,
		&note.Emoji,
		&note.BackgroundColor,
		&note.TextColor,
		&note.Stickers,
		&note.CreatedAt,
		&note.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if note.Stickers == nil {
		note.Stickers = []string{}
	}
	return &note, nil
}
