package journal

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func ptr[T any](v T) *T { return &v }

func TestNewNote_Defaults(t *testing.T) {
	owner := uuid.New()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	note, err := NewNote(owner, NoteInput{Title: "T", Content: "C"}, now)
	if err != nil {
		t.Fatalf("NewNote() error = %v", err)
	}

	if note.Category != "Notes" {
		t.Errorf("Category = %q, want %q", note.Category, "Notes")
	}
	if note.Emoji != "📝" {
		t.Errorf("Emoji = %q, want %q", note.Emoji, "📝")
	}
	if note.BackgroundColor != "#ffffff" {
		t.Errorf("BackgroundColor = %q, want %q", note.BackgroundColor, "#ffffff")
	}
	if note.TextColor != "#000000" {
		t.Errorf("TextColor = %q, want %q", note.TextColor, "#000000")
	}
	if note.Stickers == nil || len(note.Stickers) != 0 {
		t.Errorf("Stickers = %#v, want empty non-nil slice", note.Stickers)
	}
	if note.UserID != owner {
		t.Errorf("UserID = %v, want %v", note.UserID, owner)
	}
	if !note.CreatedAt.Equal(now) || !note.UpdatedAt.Equal(now) {
		t.Errorf("timestamps = %v/%v, want %v", note.CreatedAt, note.UpdatedAt, now)
	}
	if note.ID == uuid.Nil {
		t.Error("ID was not assigned")
	}
}

func TestNewNote_Validation(t *testing.T) {
	tests := []struct {
		name      string
		input     NoteInput
		wantField string
	}{
		{name: "blank title", input: NoteInput{Title: "   ", Content: "C"}, wantField: "title"},
		{name: "blank content", input: NoteInput{Title: "T", Content: "\n\t"}, wantField: "content"},
		{name: "title too long", input: NoteInput{Title: strings.Repeat("x", 101), Content: "C"}, wantField: "title"},
		{name: "content too long", input: NoteInput{Title: "T", Content: strings.Repeat("x", 5001)}, wantField: "content"},
		{name: "unknown category", input: NoteInput{Title: "T", Content: "C", Category: "Recipes"}, wantField: "category"},
		{name: "undefined is not a category", input: NoteInput{Title: "T", Content: "C", Category: "undefined"}, wantField: "category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewNote(uuid.New(), tt.input, time.Now())
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("NewNote() error = %v, want *ValidationError", err)
			}
			if verr.Fields[0].Field != tt.wantField {
				t.Errorf("Field = %q, want %q", verr.Fields[0].Field, tt.wantField)
			}
		})
	}
}

func TestNewNote_TitleLengthCountsCharacters(t *testing.T) {
	title := strings.Repeat("é", 100)
	if _, err := NewNote(uuid.New(), NoteInput{Title: title, Content: "C"}, time.Now()); err != nil {
		t.Fatalf("NewNote() error = %v, want nil for 100 characters", err)
	}
}

func TestNotePatch_NormalizeAndApply(t *testing.T) {
	note := Note{
		Title:           "Old",
		Content:         "Old content",
		Category:        CategoryHealth,
		Emoji:           "💪",
		BackgroundColor: "#eeeeee",
		TextColor:       "#111111",
		Stickers:        []string{"star"},
	}

	patch := NotePatch{
		Title: ptr("  New  "),
		Emoji: ptr(""),
	}
	patch.Normalize()
	if err := Validate(&patch); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	patch.Apply(&note)

	if note.Title != "New" {
		t.Errorf("Title = %q, want %q", note.Title, "New")
	}
	if note.Emoji != DefaultEmoji {
		t.Errorf("Emoji = %q, want default %q", note.Emoji, DefaultEmoji)
	}
	if note.Content != "Old content" || note.Category != CategoryHealth {
		t.Errorf("unsupplied fields changed: %+v", note)
	}
	if len(note.Stickers) != 1 {
		t.Errorf("Stickers = %v, want unchanged", note.Stickers)
	}
}

func TestNotePatch_Validation(t *testing.T) {
	tests := []struct {
		name      string
		patch     NotePatch
		wantField string
	}{
		{name: "empty patch", patch: NotePatch{}},
		{name: "blank title", patch: NotePatch{Title: ptr("  ")}, wantField: "title"},
		{name: "blank content", patch: NotePatch{Content: ptr("")}, wantField: "content"},
		{name: "bad category", patch: NotePatch{Category: ptr("Work")}, wantField: "category"},
		{name: "valid category", patch: NotePatch{Category: ptr(CategoryMood)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.patch.Normalize()
			err := Validate(&tt.patch)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error = %v, want *ValidationError", err)
			}
			if verr.Fields[0].Field != tt.wantField {
				t.Errorf("Field = %q, want %q", verr.Fields[0].Field, tt.wantField)
			}
		})
	}
}

func TestErrorKinds(t *testing.T) {
	err := NotFound("Note not found")
	if !errors.Is(err, ErrNotFound) {
		t.Error("NotFound() does not match ErrNotFound")
	}
	if err.Error() != "Note not found" {
		t.Errorf("Error() = %q", err.Error())
	}
	if errors.Is(Conflict("taken"), ErrNotFound) {
		t.Error("Conflict() matched ErrNotFound")
	}
}
