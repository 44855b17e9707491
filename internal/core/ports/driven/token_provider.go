package driven

import "context"

// TokenProvider provides access tokens for authenticated repository host calls.
type TokenProvider interface {
	// GetToken returns the access token.
	// Returns empty string when no credentials are configured.
	GetToken(ctx context.Context) (string, error)

	// AuthMethod returns the authentication method ("pat" or "none").
	AuthMethod() string

	// IsAuthenticated returns true if a token is available.
	IsAuthenticated() bool
}
