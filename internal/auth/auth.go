// Package auth defines the authenticated-identity boundary. The digest
// pipeline only needs to know who is calling before it spends API quota;
// how that identity is established is the host application's concern.
package auth

import (
	"context"
	"errors"
)

// ErrNotAuthenticated is returned when no authenticated identity is
// available for the current call.
var ErrNotAuthenticated = errors.New("user not authenticated")

// Provider supplies the authenticated user for API calls.
type Provider interface {
	// CurrentUser returns the authenticated user's id, or
	// ErrNotAuthenticated when there is none.
	CurrentUser(ctx context.Context) (string, error)
}

// Static is a Provider backed by a fixed identity, typically loaded from
// configuration for CLI use.
type Static struct {
	UserID string
}

// CurrentUser implements Provider.
func (s Static) CurrentUser(ctx context.Context) (string, error) {
	if s.UserID == "" {
		return "", ErrNotAuthenticated
	}
	return s.UserID, nil
}
