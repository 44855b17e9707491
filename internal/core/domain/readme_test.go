package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackReadme(t *testing.T) {
	doc := FallbackReadme("octo", "hello")

	assert.True(t, strings.HasPrefix(doc, "# octo/hello\n"))
	for _, heading := range []string{"## Overview", "## Getting Started", "## Contributing", "## License"} {
		assert.Contains(t, doc, heading)
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "# Title\n\nBody", "# Title\n\nBody"},
		{"markdown fence", "```markdown\n# Title\n\nBody\n```", "# Title\n\nBody"},
		{"bare fence", "```\n# Title\n```\n", "# Title"},
		{"inner fence kept", "# Title\n\n```go\nx := 1\n```", "# Title\n\n```go\nx := 1\n```"},
		{"single line fence", "``````", "``````"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripCodeFence(tt.input))
		})
	}
}
