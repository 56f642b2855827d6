package moods

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justestif/wellness-journal/internal/journal"
	"github.com/justestif/wellness-journal/internal/sqlite"
)

func setup(t *testing.T) (*Service, *time.Time, uuid.UUID, uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.New(ctx, sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	owners := make([]uuid.UUID, 2)
	for i, name := range []string{"alice", "bob"} {
		user := &journal.User{ID: uuid.New(), Username: name, Email: name + "@example.com", PasswordHash: "x", CreatedAt: time.Now()}
		require.NoError(t, db.Users().Create(ctx, user))
		owners[i] = user.ID
	}

	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	return New(db.Moods(), WithClock(func() time.Time { return now })), &now, owners[0], owners[1]
}

func TestUpsertTwiceKeepsOneRecord(t *testing.T) {
	svc, now, alice, _ := setup(t)
	ctx := context.Background()

	first, err := svc.Upsert(ctx, alice, journal.MoodInput{Date: "2024-06-01", MoodEmoji: "😊", MoodColor: "#FFD700"})
	require.NoError(t, err)
	created := *now

	*now = now.Add(3 * time.Hour)
	second, err := svc.Upsert(ctx, alice, journal.MoodInput{Date: "2024-06-01", MoodEmoji: "😔", MoodColor: "#A9A9A9"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "😔", second.MoodEmoji)
	assert.Equal(t, "#A9A9A9", second.MoodColor)
	assert.True(t, second.CreatedAt.Equal(created))
	assert.True(t, second.UpdatedAt.Equal(*now))

	moods, err := svc.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, moods, 1)
	assert.Equal(t, "😔", moods[0].MoodEmoji)
}

func TestUpsertValidation(t *testing.T) {
	svc, _, alice, _ := setup(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		in     journal.MoodInput
		fields []string
	}{
		{"missing everything", journal.MoodInput{}, []string{"date", "moodEmoji", "moodColor"}},
		{"impossible day", journal.MoodInput{Date: "2024-02-30", MoodEmoji: "😊", MoodColor: "#FFD700"}, []string{"date"}},
		{"timestamp instead of day", journal.MoodInput{Date: "2024-02-01T10:00:00Z", MoodEmoji: "😊", MoodColor: "#FFD700"}, []string{"date"}},
		{"blank emoji", journal.MoodInput{Date: "2024-02-01", MoodEmoji: "  ", MoodColor: "#FFD700"}, []string{"moodEmoji"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Upsert(ctx, alice, tt.in)
			var verr *journal.ValidationError
			require.ErrorAs(t, err, &verr)
			got := make([]string, len(verr.Fields))
			for i, f := range verr.Fields {
				got[i] = f.Field
			}
			assert.Equal(t, tt.fields, got)
		})
	}
}

func TestListNewestFirstAndScoped(t *testing.T) {
	svc, _, alice, bob := setup(t)
	ctx := context.Background()

	for _, date := range []string{"2024-05-02", "2024-05-10", "2024-04-30"} {
		_, err := svc.Upsert(ctx, alice, journal.MoodInput{Date: date, MoodEmoji: "😊", MoodColor: "#FFD700"})
		require.NoError(t, err)
	}
	_, err := svc.Upsert(ctx, bob, journal.MoodInput{Date: "2024-05-10", MoodEmoji: "😡", MoodColor: "#FF4500"})
	require.NoError(t, err)

	moods, err := svc.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, moods, 3)
	assert.Equal(t, "2024-05-10", moods[0].Date)
	assert.Equal(t, "2024-05-02", moods[1].Date)
	assert.Equal(t, "2024-04-30", moods[2].Date)
	assert.Equal(t, "😊", moods[0].MoodEmoji)

	empty, err := svc.List(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGetAndDelete(t *testing.T) {
	svc, _, alice, bob := setup(t)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, alice, journal.MoodInput{Date: "2024-06-01", MoodEmoji: "😢", MoodColor: "#4169E1"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, alice, "2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, "😢", got.MoodEmoji)

	_, err = svc.Get(ctx, bob, "2024-06-01")
	var jerr *journal.Error
	require.ErrorAs(t, err, &jerr)
	assert.Equal(t, "No mood found for this date", jerr.Message)

	_, err = svc.Get(ctx, alice, "June 1st")
	var verr *journal.ValidationError
	assert.ErrorAs(t, err, &verr)

	assert.ErrorIs(t, svc.Delete(ctx, bob, "2024-06-01"), journal.ErrNotFound)
	require.NoError(t, svc.Delete(ctx, alice, "2024-06-01"))

	_, err = svc.Get(ctx, alice, "2024-06-01")
	assert.ErrorIs(t, err, journal.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, alice, "2024-06-01"), journal.ErrNotFound)
}

func TestConcurrentUpsertsConverge(t *testing.T) {
	svc, _, alice, bob := setup(t)
	ctx := context.Background()

	const writers = 20
	var wg sync.WaitGroup
	errs := make(chan error, 2*writers)
	for i := 0; i < writers; i++ {
		for _, owner := range []uuid.UUID{alice, bob} {
			wg.Add(1)
			go func(owner uuid.UUID) {
				defer wg.Done()
				_, err := svc.Upsert(ctx, owner, journal.MoodInput{Date: "2024-06-01", MoodEmoji: "😊", MoodColor: "#FFD700"})
				errs <- err
			}(owner)
		}
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	for _, owner := range []uuid.UUID{alice, bob} {
		moods, err := svc.List(ctx, owner)
		require.NoError(t, err)
		assert.Len(t, moods, 1)
	}
}
