package session

import (
	"context"
	"fmt"
)

// Session is the restored startup state.
type Session struct {
	Token string
	Role  string
}

// CartLoader is the slice of the cart store bootstrap drives.
type CartLoader interface {
	Load(ctx context.Context, token string)
}

// Bootstrap runs the one-time startup sequence: restore the persisted token
// and role, then load the authoritative cart for the session. Without a
// persisted token the cart stays empty and the role defaults.
func Bootstrap(ctx context.Context, store Store, cart CartLoader) (Session, error) {
	token, err := store.Token(ctx)
	if err != nil {
		return Session{}, fmt.Errorf("read persisted token: %w", err)
	}
	if token == "" {
		return Session{Role: DefaultRole}, nil
	}

	role, err := store.Role(ctx)
	if err != nil {
		return Session{}, fmt.Errorf("read persisted role: %w", err)
	}
	if role == "" {
		role = DefaultRole
	}

	cart.Load(ctx, token)
	return Session{Token: token, Role: role}, nil
}
