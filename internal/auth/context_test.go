package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/justestif/wellness-journal/internal/journal"
)

func TestIdentityContext(t *testing.T) {
	if _, ok := IdentityFrom(context.Background()); ok {
		t.Fatal("IdentityFrom() on empty context reported an identity")
	}

	want := journal.Identity{UserID: uuid.New(), Username: "alice"}
	got, ok := IdentityFrom(WithIdentity(context.Background(), want))
	if !ok {
		t.Fatal("IdentityFrom() = false, want true")
	}
	if got != want {
		t.Errorf("IdentityFrom() = %+v, want %+v", got, want)
	}
}
