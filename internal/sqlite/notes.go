package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/justestif/wellness-journal/internal/journal"
)

const noteColumns = `id, user_id, title, content, category, emoji, background_color, text_color, stickers, created_at, updated_at`

// NoteRepository handles note database operations.
type NoteRepository struct {
	conn *sql.DB
}

// List retrieves the owner's notes, most recently updated first.
func (r *NoteRepository) List(ctx context.Context, ownerID uuid.UUID, category string) ([]journal.Note, error) {
	query := `
		SELECT ` + noteColumns + `
		FROM notes
		WHERE user_id = ?1 AND (?2 = '' OR category = ?2)
		ORDER BY updated_at DESC, id
	`
	rows, err := r.conn.QueryContext(ctx, query, ownerID.String(), category)
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
	stickers, err := encodeStickers(note.Stickers)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO notes (` + noteColumns + `)
		VALUES (?1, ?2, ?3, ?4, ?5, ?6, ?7, ?8, ?9, ?10, ?11)
	`
	_, err = r.conn.ExecContext(ctx, query,
		note.ID.String(),
		note.UserID.String(),
		note.Title,
		note.Content,
		note.Category,
		note.Emoji,
		note.BackgroundColor,
		note.TextColor,
		stickers,
		formatTime(note.CreatedAt),
		formatTime(note.UpdatedAt),
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
		WHERE id = ?1 AND user_id = ?2
	`
	note, err := scanNote(r.conn.QueryRowContext(ctx, query, id.String(), ownerID.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, journal.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying note: %w", err)
	}
	return note, nil
}

// Update overwrites the supplied fields in a single statement.
func (r *NoteRepository) Update(ctx context.Context, ownerID, id uuid.UUID, patch journal.NotePatch, updatedAt time.Time) (*journal.Note, error) {
	var stickers *string
	if patch.Stickers != nil {
		encoded, err := encodeStickers(*patch.Stickers)
		if err != nil {
			return nil, err
		}
		stickers = &encoded
	}

	query := `
		UPDATE notes SET
			title = COALESCE(?3, title),
			content = COALESCE(?4, content),
			category = COALESCE(?5, category),
			emoji = COALESCE(?6, emoji),
			background_color = COALESCE(?7, background_color),
			text_color = COALESCE(?8, text_color),
			stickers = COALESCE(?9, stickers),
			updated_at = ?10
		WHERE id = ?1 AND user_id = ?2
		RETURNING ` + noteColumns

	note, err := scanNote(r.conn.QueryRowContext(ctx, query,
		id.String(),
		ownerID.String(),
		patch.Title,
		patch.Content,
		patch.Category,
		patch.Emoji,
		patch.BackgroundColor,
		patch.TextColor,
		stickers,
		formatTime(updatedAt),
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, journal.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating note: %w", err)
	}
	return note, nil
}

// Delete removes one of the owner's notes.
func (r *NoteRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	query := `DELETE FROM notes WHERE id = ?1 AND user_id = ?2`
	result, err := r.conn.ExecContext(ctx, query, id.String(), ownerID.String())
	if err != nil {
		return fmt.Errorf("deleting note: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting note: %w", err)
	}
	if n == 0 {
		return journal.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (*journal.Note, error) {
	var (
		note                 journal.Note
		stickers             string
		createdAt, updatedAt string
	)
	err := row.Scan(
		&note.ID,
		&note.UserID,
		&note.Title,
		&note.Content,
		&note.Category,
		&note.Emoji,
		&note.BackgroundColor,
		&note.TextColor,
		&stickers,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(stickers), &note.Stickers); err != nil {
		return nil, fmt.Errorf("decoding stickers: %w", err)
	}
	if note.Stickers == nil {
		note.Stickers = []string{}
	}
	if note.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if note.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &note, nil
}

func encodeStickers(stickers []string) (string, error) {
	if stickers == nil {
		stickers = []string{}
	}
	b, err := json.Marshal(stickers)
	if err != nil {
		return "", fmt.Errorf("encoding stickers: %w", err)
	}
	return string(b), nil
}
