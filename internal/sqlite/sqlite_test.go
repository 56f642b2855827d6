package sqlite

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justestif/wellness-journal/internal/journal"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(context.Background(), MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func createUser(t *testing.T, db *DB, username string) *journal.User {
	t.Helper()
	user := &journal.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Users().Create(context.Background(), user))
	return user
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	alice := createUser(t, db, "alice")

	got, err := db.Users().GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)
	assert.True(t, alice.CreatedAt.Equal(got.CreatedAt))

	got, err = db.Users().GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	_, err = db.Users().Get(ctx, uuid.New())
	assert.ErrorIs(t, err, journal.ErrNotFound)

	dup := *alice
	dup.ID = uuid.New()
	dup.Username = "alice2"
	err = db.Users().Create(ctx, &dup)
	assert.ErrorIs(t, err, journal.ErrConflict)
}

func TestNoteRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	older, err := journal.NewNote(alice.ID, journal.NoteInput{Title: "Old", Content: "a", Category: journal.CategoryHealth}, base)
	require.NoError(t, err)
	require.NoError(t, db.Notes().Create(ctx, older))

	newer, err := journal.NewNote(alice.ID, journal.NoteInput{Title: "New", Content: "b", Stickers: []string{"⭐"}}, base.Add(time.Hour))
	require.NoError(t, err)
	require.NoError(t, db.Notes().Create(ctx, newer))

	notes, err := db.Notes().List(ctx, alice.ID, "")
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, newer.ID, notes[0].ID)
	assert.Equal(t, []string{"⭐"}, notes[0].Stickers)
	assert.Equal(t, []string{}, notes[1].Stickers)

	ideas, err := db.Notes().List(ctx, alice.ID, journal.CategoryHealth)
	require.NoError(t, err)
	require.Len(t, ideas, 1)
	assert.Equal(t, older.ID, ideas[0].ID)

	bobs, err := db.Notes().List(ctx, bob.ID, "")
	require.NoError(t, err)
	assert.Empty(t, bobs)

	_, err = db.Notes().Get(ctx, bob.ID, older.ID)
	assert.ErrorIs(t, err, journal.ErrNotFound)

	title := "Renamed"
	updated, err := db.Notes().Update(ctx, alice.ID, older.ID, journal.NotePatch{Title: &title}, base.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "a", updated.Content)
	assert.True(t, updated.UpdatedAt.Equal(base.Add(2*time.Hour)))
	assert.True(t, updated.CreatedAt.Equal(base))

	notes, err = db.Notes().List(ctx, alice.ID, "")
	require.NoError(t, err)
	assert.Equal(t, older.ID, notes[0].ID)

	_, err = db.Notes().Update(ctx, bob.ID, older.ID, journal.NotePatch{Title: &title}, base)
	assert.ErrorIs(t, err, journal.ErrNotFound)

	assert.ErrorIs(t, db.Notes().Delete(ctx, bob.ID, older.ID), journal.ErrNotFound)
	require.NoError(t, db.Notes().Delete(ctx, alice.ID, older.ID))
	_, err = db.Notes().Get(ctx, alice.ID, older.ID)
	assert.ErrorIs(t, err, journal.ErrNotFound)
}

func TestNoteUpdateReplacesStickers(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	note, err := journal.NewNote(alice.ID, journal.NoteInput{Title: "T", Content: "c", Stickers: []string{"a", "b"}}, now)
	require.NoError(t, err)
	require.NoError(t, db.Notes().Create(ctx, note))

	empty := []string{}
	updated, err := db.Notes().Update(ctx, alice.ID, note.ID, journal.NotePatch{Stickers: &empty}, now)
	require.NoError(t, err)
	assert.Equal(t, []string{}, updated.Stickers)
}

func TestMoodRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	first := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	mood := &journal.Mood{UserID: alice.ID, Date: "2024-05-01", MoodEmoji: "😊", MoodColor: "#FFD700", UpdatedAt: first}
	require.NoError(t, db.Moods().Upsert(ctx, mood))
	id := mood.ID

	again := &journal.Mood{UserID: alice.ID, Date: "2024-05-01", MoodEmoji: "😔", MoodColor: "#A9A9A9", UpdatedAt: first.Add(time.Hour)}
	require.NoError(t, db.Moods().Upsert(ctx, again))
	assert.Equal(t, id, again.ID)
	assert.True(t, again.CreatedAt.Equal(first))
	assert.True(t, again.UpdatedAt.Equal(first.Add(time.Hour)))

	require.NoError(t, db.Moods().Upsert(ctx, &journal.Mood{UserID: alice.ID, Date: "2024-05-03", MoodEmoji: "😡", MoodColor: "#FF4500", UpdatedAt: first}))
	require.NoError(t, db.Moods().Upsert(ctx, &journal.Mood{UserID: bob.ID, Date: "2024-05-01", MoodEmoji: "😢", MoodColor: "#4169E1", UpdatedAt: first}))

	moods, err := db.Moods().List(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, moods, 2)
	assert.Equal(t, "2024-05-03", moods[0].Date)
	assert.Equal(t, "😔", moods[1].MoodEmoji)

	got, err := db.Moods().Get(ctx, bob.ID, "2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, "😢", got.MoodEmoji)

	require.NoError(t, db.Moods().Delete(ctx, alice.ID, "2024-05-01"))
	_, err = db.Moods().Get(ctx, alice.ID, "2024-05-01")
	assert.True(t, errors.Is(err, journal.ErrNotFound))
	assert.ErrorIs(t, db.Moods().Delete(ctx, alice.ID, "2024-05-01"), journal.ErrNotFound)

	_, err = db.Moods().Get(ctx, bob.ID, "2024-05-01")
	assert.NoError(t, err)
}

func TestMoodUpsertConcurrentSameDate(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	stamp := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	const writers = 50
	errs := make(chan error, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- db.Moods().Upsert(ctx, &journal.Mood{
				UserID:    alice.ID,
				Date:      "2024-01-01",
				MoodEmoji: "😊",
				MoodColor: fmt.Sprintf("#%06d", i),
				UpdatedAt: stamp.Add(time.Duration(i) * time.Second),
			})
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	moods, err := db.Moods().List(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, moods, 1)
	assert.Equal(t, "2024-01-01", moods[0].Date)
}
