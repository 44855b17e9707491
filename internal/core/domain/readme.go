package domain

import (
	"fmt"
	"strings"
)

// FallbackReadme renders the minimal document produced when no valid
// summaries are available.
func FallbackReadme(owner, repo string) string {
	return fmt.Sprintf(`# %s/%s

## Overview

This repository contains code that has been automatically analyzed. No file summaries could be produced, so a detailed README could not be generated.

## Getting Started

Please refer to the source files directly for implementation details and usage instructions.

## Contributing

Contributions are welcome! Please feel free to submit a Pull Request.

## License

Please check the repository for license information.
`, owner, repo)
}

// StripCodeFence removes a code fence wrapping the whole text, such as
// "```markdown\n...\n```". Inner fences are kept.
func StripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") || !strings.HasSuffix(trimmed, "```") || len(trimmed) < 6 {
		return trimmed
	}

	firstNL := strings.Index(trimmed, "\n")
	if firstNL == -1 {
		return trimmed
	}
	inner := trimmed[firstNL+1 : len(trimmed)-3]
	return strings.TrimSpace(inner)
}
