// Package journal defines the wellness journal domain: users, notes, moods,
// their validation rules and the storage contracts the backends implement.
package journal

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar-day encoding used for mood dates.
const DateLayout = "2006-01-02"

// Note categories.
const (
	CategoryDailyTasks = "Daily Task Tracker"
	CategoryMood       = "Mood Tracker"
	CategoryHealth     = "Health Tracker"
	CategoryNotes      = "Notes"
)

// Note defaults applied when a field is absent.
const (
	DefaultCategory        = CategoryNotes
	DefaultEmoji           = "📝"
	DefaultBackgroundColor = "#ffffff"
	DefaultTextColor       = "#000000"
)

// Categories lists every valid note category in display order.
var Categories = []string{
	CategoryDailyTasks,
	CategoryMood,
	CategoryHealth,
	CategoryNotes,
}

// IsCategory reports whether name is one of Categories.
func IsCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

// User is an account record. PasswordHash never leaves the server.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// PublicUser is the client-facing view of a User.
type PublicUser struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public returns the view of u that is safe to send to clients.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// Identity is the verified caller resolved from a bearer token.
type Identity struct {
	UserID   uuid.UUID
	Username string
}

// Note is a journal entry owned by a single user.
type Note struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"-"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	Category        string    `json:"category"`
	Emoji           string    `json:"emoji"`
	BackgroundColor string    `json:"backgroundColor"`
	TextColor       string    `json:"textColor"`
	Stickers        []string  `json:"stickers"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// NoteInput holds the fields accepted when creating a note.
type NoteInput struct {
	Title           string   `json:"title" validate:"required,max=100"`
	Content         string   `json:"content" validate:"required,max=5000"`
	Category        string   `json:"category,omitempty" validate:"category"`
	Emoji           string   `json:"emoji,omitempty"`
	BackgroundColor string   `json:"backgroundColor,omitempty"`
	TextColor       string   `json:"textColor,omitempty"`
	Stickers        []string `json:"stickers,omitempty"`
}

// Normalize trims title and content and fills in defaults for absent fields.
func (in *NoteInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	in.Category = orDefault(in.Category, DefaultCategory)
	in.Emoji = orDefault(in.Emoji, DefaultEmoji)
	in.BackgroundColor = orDefault(in.BackgroundColor, DefaultBackgroundColor)
	in.TextColor = orDefault(in.TextColor, DefaultTextColor)
	if in.Stickers == nil {
		in.Stickers = []string{}
	}
}

// NewNote validates in and builds a note owned by ownerID, stamped with now.
func NewNote(ownerID uuid.UUID, in NoteInput, now time.Time) (*Note, error) {
	in.Normalize()
	if err := Validate(&in); err != nil {
		return nil, err
	}
	return &Note{
		ID:              uuid.New(),
		UserID:          ownerID,
		Title:           in.Title,
		Content:         in.Content,
		Category:        in.Category,
		Emoji:           in.Emoji,
		BackgroundColor: in.BackgroundColor,
		TextColor:       in.TextColor,
		Stickers:        in.Stickers,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// NotePatch is a partial note update. Nil fields are left unchanged.
type NotePatch struct {
	Title           *string   `json:"title,omitempty" validate:"omitnil,min=1,max=100"`
	Content         *string   `json:"content,omitempty" validate:"omitnil,min=1,max=5000"`
	Category        *string   `json:"category,omitempty" validate:"omitnil,category"`
	Emoji           *string   `json:"emoji,omitempty"`
	BackgroundColor *string   `json:"backgroundColor,omitempty"`
	TextColor       *string   `json:"textColor,omitempty"`
	Stickers        *[]string `json:"stickers,omitempty"`
}

// Normalize trims supplied title and content and resets blank display
// fields to their defaults.
func (p *NotePatch) Normalize() {
	trim := func(s *string) {
		if s != nil {
			*s = strings.TrimSpace(*s)
		}
	}
	trim(p.Title)
	trim(p.Content)
	defaults := []struct {
		field *string
		def   string
	}{
		{p.Category, DefaultCategory},
		{p.Emoji, DefaultEmoji},
		{p.BackgroundColor, DefaultBackgroundColor},
		{p.TextColor, DefaultTextColor},
	}
	for _, d := range defaults {
		if d.field != nil {
			*d.field = orDefault(*d.field, d.def)
		}
	}
	if p.Stickers != nil && *p.Stickers == nil {
		*p.Stickers = []string{}
	}
}

// Apply copies every supplied field of p onto n.
func (p *NotePatch) Apply(n *Note) {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.Category != nil {
		n.Category = *p.Category
	}
	if p.Emoji != nil {
		n.Emoji = *p.Emoji
	}
	if p.BackgroundColor != nil {
		n.BackgroundColor = *p.BackgroundColor
	}
	if p.TextColor != nil {
		n.TextColor = *p.TextColor
	}
	if p.Stickers != nil {
		n.Stickers = *p.Stickers
	}
}

// Mood is the single mood entry a user has for one calendar day.
type Mood struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"-"`
	Date      string    `json:"date"`
	MoodEmoji string    `json:"moodEmoji"`
	MoodColor string    `json:"moodColor"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MoodInput holds the fields accepted by a mood upsert.
type MoodInput struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	MoodEmoji string `json:"moodEmoji" validate:"required"`
	MoodColor string `json:"moodColor" validate:"required"`
}

// Normalize trims surrounding whitespace from every field.
func (in *MoodInput) Normalize() {
	in.Date = strings.TrimSpace(in.Date)
	in.MoodEmoji = strings.TrimSpace(in.MoodEmoji)
	in.MoodColor = strings.TrimSpace(in.MoodColor)
}

// ValidDate reports whether s is a calendar day in DateLayout.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
