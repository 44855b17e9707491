package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileEntry(t *testing.T) {
	f := FileEntry{Path: "src/app/main.go", Size: 120, Type: EntryTypeBlob}
	assert.Equal(t, "main.go", f.Name())
	assert.True(t, f.IsBlob())

	assert.True(t, FileEntry{Path: "x"}.IsBlob(), "empty type counts as blob")
	assert.False(t, FileEntry{Path: "src", Type: EntryTypeTree}.IsBlob())
}

func TestRepoKey(t *testing.T) {
	assert.Equal(t, "octo/hello", RepoKey("Octo", "Hello"))
	assert.Equal(t, RepoKey("octo", "hello"), RepoKey("OCTO", "HELLO"))
}

func TestRepoInfo_FullName(t *testing.T) {
	assert.Equal(t, "octo/hello", RepoInfo{Owner: "octo", Name: "hello"}.FullName())
}

func TestParseRepoRef(t *testing.T) {
	tests := []struct {
		ref   string
		owner string
		repo  string
	}{
		{"octo/hello", "octo", "hello"},
		{"github.com/octo/hello", "octo", "hello"},
		{"https://github.com/octo/hello", "octo", "hello"},
		{"https://github.com/octo/hello.git", "octo", "hello"},
		{"https://github.com/octo/hello/", "octo", "hello"},
		{"  octo/hello  ", "octo", "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			owner, repo, err := ParseRepoRef(tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.owner, owner)
			assert.Equal(t, tt.repo, repo)
		})
	}
}

func TestParseRepoRef_Invalid(t *testing.T) {
	for _, ref := range []string{"", "octo", "octo/", "/hello"} {
		t.Run(ref, func(t *testing.T) {
			_, _, err := ParseRepoRef(ref)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
