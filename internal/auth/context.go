package auth

import (
	"context"

	"github.com/justestif/wellness-journal/internal/journal"
)

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying the verified caller.
func WithIdentity(ctx context.Context, id journal.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the caller attached by WithIdentity.
func IdentityFrom(ctx context.Context) (journal.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(journal.Identity)
	return id, ok
}
