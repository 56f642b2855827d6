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

// MoodRepository handles mood database operations.
type MoodRepository struct {
	pool *pgxpool.Pool
}

// Upsert creates the mood for (user, date) or overwrites its emoji and color.
// The unique (user_id, date) constraint makes concurrent upserts converge on
// one row.
func (r *MoodRepository) Upsert(ctx context.Context, mood *journal.Mood) error {
	day, err := time.Parse(journal.DateLayout, mood.Date)
	if err != nil {
		return fmt.Errorf("parsing mood date: %w", err)
	}
	if mood.ID == uuid.Nil {
		mood.ID = uuid.New()
	}

	query := `
		INSERT INTO moods (id, user_id, date, mood_emoji, mood_color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (user_id, date) DO UPDATE SET
			mood_emoji = EXCLUDED.mood_emoji,
			mood_color = EXCLUDED.mood_color,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, updated_at
	`
	err = r.pool.QueryRow(ctx, query,
		mood.ID,
		mood.UserID,
		day,
		mood.MoodEmoji,
		mood.MoodColor,
		mood.UpdatedAt,
	).Scan(&mood.ID, &mood.CreatedAt, &mood.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upserting mood: %w", err)
	}
	return nil
}

// List retrieves the owner's moods, newest date first.
func (r *MoodRepository) List(ctx context.Context, ownerID uuid.UUID) ([]journal.Mood, error) {
	query := `
		SELECT id, user_id, date, mood_emoji, mood_color, created_at, updated_at
		FROM moods
		WHERE user_id = $1
		ORDER BY date DESC
	`
	rows, err := r.pool.Query(ctx, query, ownerID)
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
	day, err := time.Parse(journal.DateLayout, date)
	if err != nil {
		return nil, journal.ErrNotFound
	}

	query := `
		SELECT id, user_id, date, mood_emoji, mood_color, created_at, updated_at
		FROM moods
		WHERE user_id = $1 AND date = $2
	`
	mood, err := scanMood(r.pool.QueryRow(ctx, query, ownerID, day))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, journal.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying mood: %w", err)
	}
	return mood, nil
}

// Delete removes the owner's mood for date.
func (r *MoodRepository) Delete(ctx context.Context, ownerID uuid.UUID, date string) error {
	day, err := time.Parse(journal.DateLayout, date)
	if err != nil {
		return journal.ErrNotFound
	}

	query := `DELETE FROM moods WHERE user_id = $1 AND date = $2`
	result, err := r.pool.Exec(ctx, query, ownerID, day)
	if err != nil {
		return fmt.Errorf("deleting mood: %w", err)
	}
	if result.RowsAffected() == 0 {
		return journal.ErrNotFound
	}
	return nil
}

func scanMood(row pgx.Row) (*journal.Mood, error) {
	var (
		mood journal.Mood
		day  time.Time
	)
	err := row.Scan(
		&mood.ID,
		&mood.UserID,
		&day,
		&mood.MoodEmoji,
		&mood.MoodColor,
		&mood.CreatedAt,
		&mood.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	mood.Date = day.Format(journal.DateLayout)
	return &mood, nil
}
