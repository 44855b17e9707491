package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zaibi117/readme-maker/internal/core/domain"
)

func TestNewTokenProvider_WithToken(t *testing.T) {
	provider := NewTokenProvider(&domain.AppSettings{GitHubToken: "ghp_abc"})

	token, err := provider.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ghp_abc", token)
	assert.Equal(t, MethodPAT, provider.AuthMethod())
	assert.True(t, provider.IsAuthenticated())
}

func TestNewTokenProvider_WithoutToken(t *testing.T) {
	for _, settings := range []*domain.AppSettings{nil, {}} {
		provider := NewTokenProvider(settings)

		token, err := provider.GetToken(context.Background())
		require.NoError(t, err)
		assert.Empty(t, token)
		assert.Equal(t, MethodNone, provider.AuthMethod())
		assert.False(t, provider.IsAuthenticated())
	}
}

func TestPATProvider_BlankToken(t *testing.T) {
	provider := NewPATProvider("   ")

	_, err := provider.GetToken(context.Background())

	assert.ErrorIs(t, err, domain.ErrAuthRequired)
	assert.False(t, provider.IsAuthenticated())
}
