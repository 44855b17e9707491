package auth

import (
	"context"
	"strings"

	"github.com/zaibi117/readme-maker/internal/core/domain"
	"github.com/zaibi117/readme-maker/internal/core/ports/driven"
)

// Ensure PATProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*PATProvider)(nil)

// PATProvider provides a static Personal Access Token.
// PATs don't expire and don't require refresh.
type PATProvider struct {
	token string
}

// NewPATProvider creates a token provider for PAT-based authentication.
func NewPATProvider(token string) *PATProvider {
	return &PATProvider{token: strings.TrimSpace(token)}
}

// GetToken returns the PAT, or domain.ErrAuthRequired when it is blank.
func (p *PATProvider) GetToken(_ context.Context) (string, error) {
	if p.token == "" {
		return "", domain.ErrAuthRequired
	}
	return p.token, nil
}

// AuthMethod returns MethodPAT.
func (p *PATProvider) AuthMethod() string {
	return MethodPAT
}

// IsAuthenticated returns true if a token is set.
func (p *PATProvider) IsAuthenticated() bool {
	return p.token != ""
}
