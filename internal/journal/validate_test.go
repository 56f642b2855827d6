package journal

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate_RegisterInput(t *testing.T) {
	tests := []struct {
		name      string
		input     RegisterInput
		wantField string
		wantMsg   string
	}{
		{
			name:  "valid",
			input: RegisterInput{Username: "alice", Email: "alice@x.com", Password: "Abcdef1"},
		},
		{
			name:      "username too short",
			input:     RegisterInput{Username: "al", Email: "alice@x.com", Password: "Abcdef1"},
			wantField: "username",
			wantMsg:   "Username must be 3-30 characters",
		},
		{
			name:      "username too long",
			input:     RegisterInput{Username: strings.Repeat("a", 31), Email: "alice@x.com", Password: "Abcdef1"},
			wantField: "username",
			wantMsg:   "Username must be 3-30 characters",
		},
		{
			name:      "username with symbols",
			input:     RegisterInput{Username: "alice!", Email: "alice@x.com", Password: "Abcdef1"},
			wantField: "username",
			wantMsg:   "Username can only contain letters, numbers, and underscores",
		},
		{
			name:      "bad email",
			input:     RegisterInput{Username: "alice", Email: "not-an-email", Password: "Abcdef1"},
			wantField: "email",
			wantMsg:   "Please provide a valid email",
		},
		{
			name:      "short password",
			input:     RegisterInput{Username: "alice", Email: "alice@x.com", Password: "Ab1"},
			wantField: "password",
			wantMsg:   "Password must be at least 6 characters",
		},
		{
			name:      "password without digit",
			input:     RegisterInput{Username: "alice", Email: "alice@x.com", Password: "Abcdefg"},
			wantField: "password",
			wantMsg:   "Password must contain at least one lowercase letter, one uppercase letter, and one number",
		},
		{
			name:      "password without uppercase",
			input:     RegisterInput{Username: "alice", Email: "alice@x.com", Password: "abcdef1"},
			wantField: "password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.input.Normalize()
			err := Validate(&tt.input)

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
			if len(verr.Fields) != 1 {
				t.Fatalf("Validate() fields = %+v, want exactly one", verr.Fields)
			}
			if verr.Fields[0].Field != tt.wantField {
				t.Errorf("Field = %q, want %q", verr.Fields[0].Field, tt.wantField)
			}
			if tt.wantMsg != "" && verr.Fields[0].Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", verr.Fields[0].Message, tt.wantMsg)
			}
		})
	}
}

func TestValidate_ReportsEveryField(t *testing.T) {
	in := RegisterInput{}
	err := Validate(&in)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Validate() error = %v, want *ValidationError", err)
	}
	if len(verr.Fields) != 3 {
		t.Errorf("got %d field errors, want 3: %+v", len(verr.Fields), verr.Fields)
	}
}

func TestRegisterInput_NormalizeEmail(t *testing.T) {
	in := RegisterInput{Username: " alice ", Email: "  Alice@X.COM ", Password: "Abcdef1"}
	in.Normalize()

	if in.Email != "alice@x.com" {
		t.Errorf("Email = %q, want %q", in.Email, "alice@x.com")
	}
	if in.Username != "alice" {
		t.Errorf("Username = %q, want %q", in.Username, "alice")
	}
}

func TestValidate_MoodInput(t *testing.T) {
	tests := []struct {
		name      string
		input     MoodInput
		wantField string
	}{
		{name: "valid", input: MoodInput{Date: "2024-01-01", MoodEmoji: "😊", MoodColor: "#FFD700"}},
		{name: "missing date", input: MoodInput{MoodEmoji: "😊", MoodColor: "#FFD700"}, wantField: "date"},
		{name: "timestamp instead of date", input: MoodInput{Date: "2024-01-01T10:00:00Z", MoodEmoji: "😊", MoodColor: "#FFD700"}, wantField: "date"},
		{name: "impossible day", input: MoodInput{Date: "2024-02-30", MoodEmoji: "😊", MoodColor: "#FFD700"}, wantField: "date"},
		{name: "missing emoji", input: MoodInput{Date: "2024-01-01", MoodEmoji: "  ", MoodColor: "#FFD700"}, wantField: "moodEmoji"},
		{name: "missing color", input: MoodInput{Date: "2024-01-01", MoodEmoji: "😊"}, wantField: "moodColor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.input.Normalize()
			err := Validate(&tt.input)
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

func TestValidDate(t *testing.T) {
	tests := map[string]bool{
		"2024-01-01": true,
		"2024-12-31": true,
		"2024-13-01": false,
		"24-01-01":   false,
		"":           false,
		"undefined":  false,
	}
	for in, want := range tests {
		if got := ValidDate(in); got != want {
			t.Errorf("ValidDate(%q) = %v, want %v", in, got, want)
		}
	}
}
