package session

import (
	"context"
	"strings"
)

// Identity is the authenticated caller
type Identity struct {
	UserID string `json:"userId"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
}

// Credentials are the request headers a Provider may inspect
type Credentials struct {
	Authorization string
	Cookie        string
}

// BearerToken returns the token of a "Bearer <token>" Authorization header
func (c Credentials) BearerToken() string {
	const prefix = "Bearer "
	if !strings.HasPrefix(c.Authorization, prefix) {
		return ""
	}
	return strings.TrimSpace(c.Authorization[len(prefix):])
}

// Provider resolves the caller's identity from request credentials.
// A nil Identity with a nil error means the caller is not signed in.
type Provider interface {
	ResolveSession(ctx context.Context, creds Credentials) (*Identity, error)
}

// ProviderFunc adapts a function to the Provider interface
type ProviderFunc func(ctx context.Context, creds Credentials) (*Identity, error)

func (f ProviderFunc) ResolveSession(ctx context.Context, creds Credentials) (*Identity, error) {
	return f(ctx, creds)
}
