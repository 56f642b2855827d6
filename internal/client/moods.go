package client

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/justestif/wellness-journal/internal/journal"
)

// Preset is a named mood from the palette.
type Preset struct {
	Name  string
	Emoji string
	Color string
}

// Presets is the mood palette offered by the CLI.
var Presets = []Preset{
	{Name: "Happy", Emoji: "😊", Color: "#FFD700"},
	{Name: "Sad", Emoji: "😔", Color: "#A9A9A9"},
	{Name: "Angry", Emoji: "😡", Color: "#FF4500"},
	{Name: "Crying", Emoji: "😢", Color: "#4169E1"},
}

// PresetByName looks a preset up case-insensitively.
func PresetByName(name string) (Preset, bool) {
	for _, p := range Presets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}

// LocalDate returns the calendar day of t in the local time zone.
func LocalDate(t time.Time) string {
	return t.Local().Format(journal.DateLayout)
}

// MoodAPI is the part of Client the tracker needs.
type MoodAPI interface {
	UpsertMood(ctx context.Context, in journal.MoodInput) (*journal.Mood, error)
	ListMoods(ctx context.Context) ([]journal.Mood, error)
	DeleteMood(ctx context.Context, date string) error
}

// MoodTracker keeps a local view of the user's moods and applies changes
// optimistically. Remote writes for one date run one at a time in the order
// they were made, so the server ends up with the last local change. The lock
// guards only local state and is never held across a remote call.
type MoodTracker struct {
	api MoodAPI

	mu    sync.Mutex
	moods map[string]journal.Mood
	// confirmed is the server state as of the last settled write per date.
	confirmed map[string]journal.Mood
	seq       uint64
	// pending maps a date to the change that last wrote it locally.
	pending map[string]uint64
	// tail maps a date to the done channel of its newest remote write.
	tail map[string]chan struct{}
}

// change is one staged local edit awaiting its remote write.
type change struct {
	date string
	seq  uint64
	prev chan struct{}
	done chan struct{}
}

// NewMoodTracker creates an empty tracker.
func NewMoodTracker(api MoodAPI) *MoodTracker {
	return &MoodTracker{
		api:       api,
		moods:     make(map[string]journal.Mood),
		confirmed: make(map[string]journal.Mood),
		pending:   make(map[string]uint64),
		tail:      make(map[string]chan struct{}),
	}
}

// Load replaces the local view with the server's moods.
func (t *MoodTracker) Load(ctx context.Context) error {
	moods, err := t.api.ListMoods(ctx)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.moods = make(map[string]journal.Mood, len(moods))
	t.confirmed = make(map[string]journal.Mood, len(moods))
	for _, m := range moods {
		t.moods[m.Date] = m
		t.confirmed[m.Date] = m
	}
	return nil
}

// Get returns the local mood for date.
func (t *MoodTracker) Get(date string) (journal.Mood, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	m, ok := t.moods[date]
	return m, ok
}

// Moods returns the local view, newest date first.
func (t *MoodTracker) Moods() []journal.Mood {
	t.mu.Lock()
	out := make([]journal.Mood, 0, len(t.moods))
	for _, m := range t.moods {
		out = append(out, m)
	}
	t.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

// Select shows the new mood locally at once, then saves it. If the save
// fails and no later change for the date is outstanding, the local value is
// restored to what the server holds: the prior value or its absence.
func (t *MoodTracker) Select(ctx context.Context, date, emoji, color string) (*journal.Mood, error) {
	t.mu.Lock()
	optimistic := t.moods[date]
	optimistic.Date = date
	optimistic.MoodEmoji = emoji
	optimistic.MoodColor = color
	c := t.stage(date)
	t.moods[date] = optimistic
	t.mu.Unlock()

	var saved *journal.Mood
	err := t.run(ctx, c, func(ctx context.Context) error {
		var err error
		saved, err = t.api.UpsertMood(ctx, journal.MoodInput{Date: date, MoodEmoji: emoji, MoodColor: color})
		return err
	})

	t.mu.Lock()
	defer t.mu.Unlock()
	if err == nil {
		t.confirmed[date] = *saved
	}
	t.settle(c)
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// Delete removes the mood for date locally at once, then on the server. If
// the delete fails and no later change for the date is outstanding, the
// local value is restored to what the server holds.
func (t *MoodTracker) Delete(ctx context.Context, date string) error {
	t.mu.Lock()
	c := t.stage(date)
	delete(t.moods, date)
	t.mu.Unlock()

	err := t.run(ctx, c, func(ctx context.Context) error {
		return t.api.DeleteMood(ctx, date)
	})

	t.mu.Lock()
	defer t.mu.Unlock()
	if err == nil {
		delete(t.confirmed, date)
	}
	t.settle(c)
	return err
}

// stage registers a local change for date. t.mu must be held.
func (t *MoodTracker) stage(date string) *change {
	t.seq++
	c := &change{
		date: date,
		seq:  t.seq,
		prev: t.tail[date],
		done: make(chan struct{}),
	}
	t.pending[date] = c.seq
	t.tail[date] = c.done
	return c
}

// run waits for the previous write to date, then performs call.
func (t *MoodTracker) run(ctx context.Context, c *change, call func(context.Context) error) error {
	if c.prev != nil {
		select {
		case <-c.prev:
		case <-ctx.Done():
			// Keep the chain intact for later changes.
			go func() {
				<-c.prev
				t.finish(c)
			}()
			return ctx.Err()
		}
	}
	defer t.finish(c)
	return call(ctx)
}

func (t *MoodTracker) finish(c *change) {
	t.mu.Lock()
	if t.tail[c.date] == c.done {
		delete(t.tail, c.date)
	}
	t.mu.Unlock()
	close(c.done)
}

// settle retires c. Once no later change for the date is outstanding, the
// local value mirrors the confirmed server state. t.mu must be held.
func (t *MoodTracker) settle(c *change) {
	if t.pending[c.date] == c.seq {
		delete(t.pending, c.date)
	}
	if _, busy := t.pending[c.date]; busy {
		return
	}
	if m, ok := t.confirmed[c.date]; ok {
		t.moods[c.date] = m
	} else {
		delete(t.moods, c.date)
	}
}
