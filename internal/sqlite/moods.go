package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/justestif/wellness-journal/internal/journal"
)

const moodColumns = `id, user_id, date, mood_emoji, mood_color, created_at, updated_at`

// MoodRepository handles mood database operations.
type MoodRepository struct {
	conn *sql.DB
}

// Upsert creates the mood for (user, date) or overwrites its emoji and color.
func (r *MoodRepository) Upsert(ctx context.Context, mood *journal.Mood) error {
	if mood.ID == uuid.Nil {
		mood.ID = uuid.New()
	}

	query := `
		INSERT INTO moods (` + moodColumns + `)
		VALUES (?1, ?2, ?3, ?4, ?5, ?6, ?6)
		ON CONFLICT (user_id, date) DO UPDATE SET
			mood_emoji = excluded.mood_emoji,
			mood_color = excluded.mood_color,
			updated_at = excluded.updated_at
		RETURNING ` + moodColumns

	saved, err := scanMood(r.conn.QueryRowContext(ctx, query,
		mood.ID.String(),
		mood.UserID.String(),
		mood.Date,
		mood.MoodEmoji,
		mood.MoodColor,
		formatTime(mood.UpdatedAt),
	))
	if err != nil {
		return fmt.Errorf("upserting mood: %w", err)
	}
	*mood = *saved
	return nil
}

// List retrieves the owner's moods, newest date first.
func (r *MoodRepository) List(ctx context.Context, ownerID uuid.UUID) ([]journal.Mood, error) {
	query := `
		SELECT ` + moodColumns + `
		FROM moods
		WHERE user_id = ?1
		ORDER BY date DESC
	`
	rows, err := r.conn.QueryContext(ctx, query, ownerID.String())
	if err != nil {
		return nil, fmt.Errorf("querying moods: %w", err)
	}
	defer rows.Close()

	moods := []journal.Mood{}
	for rows.Next() {
		mood, err := scanMood(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning mood: %w", err)
		}
		moods = append(moods, *mood)
	}
	return moods, rows.Err()
}

// Get retrieves the owner's mood for date.
func (r *MoodRepository) Get(ctx context.Context, ownerID uuid.UUID, date string) (*journal.Mood, error) {
	query := `
		SELECT ` + moodColumns + `
		FROM moods
		WHERE user_id = ?1 AND date = ?2
	`
	mood, err := scanMood(r.conn.QueryRowContext(ctx, query, ownerID.String(), date))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, journal.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying mood: %w", err)
	}
	return mood, nil
}

// Delete removes the owner's mood for date.
func (r *MoodRepository) Delete(ctx context.Context, ownerID uuid.UUID, date string) error {
	query := `DELETE FROM moods WHERE user_id = ?1 AND date = ?2`
	result, err := r.conn.ExecContext(ctx, query, ownerID.String(), date)
	if err != nil {
		return fmt.Errorf("deleting mood: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting mood: %w", err)
	}
	if n == 0 {
		return journal.ErrNotFound
	}
	return nil
}

func scanMood(row rowScanner) (*journal.Mood, error) {
	var (
		mood                 journal.Mood
		createdAt, updatedAt string
	)
	err := row.Scan(
		&mood.ID,
		&mood.UserID,
		&mood.Date,
		&mood.MoodEmoji,
		&mood.MoodColor,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	if mood.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if mood.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &mood, nil
}
