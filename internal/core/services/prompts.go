package services

import (
	"slices"
	"strings"

	"github.com/zaibi117/readme-maker/internal/core/ports/driven"
	"github.com/zaibi117/readme-maker/internal/logger"
)

const defaultSummariseChunkPrompt = `Analyze and summarize this code snippet from file "%s" (chunk %d).

Focus on:
- What this code does (main functionality)
- Key functions, classes, or components
- Important logic or algorithms
- Dependencies or imports used

Keep the summary concise (2-4 sentences) and technical.

Code:
` + "```" + `
%s
` + "```"

const defaultGenerateReadmePrompt = `Generate a comprehensive and professional README.md for the GitHub repository "%s".

%s
Based on the following code analysis:

%s

Create a README that includes:

1. **Project Title and Description** - Clear, engaging description
2. **Features** - Key functionality and capabilities
3. **Technologies Used** - Programming languages, frameworks, libraries
4. **Installation** - Step-by-step setup instructions
5. **Usage** - Code examples and basic usage
6. **Project Structure** - Brief overview of main files/directories
7. **Contributing** - Guidelines for contributors
8. **License** - Standard license section

Format requirements:
- Use proper Markdown syntax
- Include code blocks with syntax highlighting
- Use badges if appropriate
- Make it professional and easy to read
- Keep it concise but informative

Generate only the README content, no additional commentary.`

// DefaultPrompts returns the built-in prompt templates keyed by prompt name.
func DefaultPrompts() map[string]string {
	return map[string]string{
		driven.PromptSummariseChunk: defaultSummariseChunkPrompt,
		driven.PromptGenerateReadme: defaultGenerateReadmePrompt,
	}
}

// loadPrompt returns the named template from store, or the built-in one.
// A stored template must use the same formatting verbs, in the same order,
// as the built-in template it replaces.
func loadPrompt(store driven.PromptStore, name string) string {
	builtin := DefaultPrompts()[name]
	if store == nil {
		return builtin
	}

	prompt, err := store.Load(name)
	switch {
	case err != nil:
		logger.Warn("Prompt %q unavailable, using built-in: %v", name, err)
	case prompt == "":
	case !slices.Equal(formatVerbs(prompt), formatVerbs(builtin)):
		logger.Warn("Prompt %q must use the verbs %s, using built-in",
			name, strings.Join(formatVerbs(builtin), " "))
	default:
		return prompt
	}
	return builtin
}

// formatVerbs lists the fmt verbs of template, e.g. ["%s", "%d"]. Flags,
// width and precision are dropped; "%%" is not a verb. A trailing lone
// "%" is reported as "%!".
func formatVerbs(template string) []string {
	var verbs []string
	for i := 0; i < len(template); i++ {
		if template[i] != '%' {
			continue
		}
		j := i + 1
		for j < len(template) && strings.IndexByte("+-# 0123456789.", template[j]) >= 0 {
			j++
		}
		if j >= len(template) {
			verbs = append(verbs, "%!")
			break
		}
		if template[j] != '%' {
			verbs = append(verbs, "%"+string(template[j]))
		}
		i = j
	}
	return verbs
}
