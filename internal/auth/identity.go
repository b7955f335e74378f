// Package auth carries the caller identity through request contexts and
// decides whether it may perform privileged writes.
package auth

import (
	"context"

	"github.com/zainmh-10/CreateAILab/internal/domain"
)

// RoleAdmin is the only role allowed to mutate content.
const RoleAdmin = "admin"

// Identity is the verified caller, as asserted by the identity provider.
type Identity struct {
	UserID string
	Role   string
}

type ctxKey struct{}

// WithIdentity returns a child context carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the identity stored in ctx, if any.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	if !ok || id.UserID == "" {
		return Identity{}, false
	}
	return id, true
}

// RequireAdmin returns the actor id when ctx carries an admin identity,
// and domain.ErrUnauthorized otherwise.
func RequireAdmin(ctx context.Context) (string, error) {
	id, ok := FromContext(ctx)
	if !ok || id.Role != RoleAdmin {
		return "", domain.ErrUnauthorized
	}
	return id.UserID, nil
}
