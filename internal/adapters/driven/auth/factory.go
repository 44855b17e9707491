// Package auth provides token providers for authenticated repository access.
package auth

import (
	"github.com/zaibi117/readme-maker/internal/core/domain"
	"github.com/zaibi117/readme-maker/internal/core/ports/driven"
)

// Authentication methods reported by AuthMethod.
const (
	MethodPAT  = "pat"
	MethodNone = "none"
)

// NewTokenProvider returns a PAT provider when settings carry a GitHub
// token and a NullTokenProvider otherwise.
func NewTokenProvider(settings *domain.AppSettings) driven.TokenProvider {
	if settings == nil || settings.GitHubToken == "" {
		return NewNullTokenProvider()
	}
	return NewPATProvider(settings.GitHubToken)
}
