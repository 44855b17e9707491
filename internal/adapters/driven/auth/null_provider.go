package auth

import (
	"context"

	"github.com/zaibi117/readme-maker/internal/core/ports/driven"
)

// Ensure NullTokenProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*NullTokenProvider)(nil)

// NullTokenProvider is used when no GitHub token is configured.
// Public repositories remain reachable through unauthenticated calls.
type NullTokenProvider struct{}

// NewNullTokenProvider creates a token provider without credentials.
func NewNullTokenProvider() *NullTokenProvider {
	return &NullTokenProvider{}
}

// GetToken returns an empty string since no token is configured.
func (p *NullTokenProvider) GetToken(_ context.Context) (string, error) {
	return "", nil
}

// AuthMethod returns MethodNone.
func (p *NullTokenProvider) AuthMethod() string {
	return MethodNone
}

// IsAuthenticated always returns false.
func (p *NullTokenProvider) IsAuthenticated() bool {
	return false
}
