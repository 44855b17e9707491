package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a sensible default
	// or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names.
const (
	// PromptSummariseChunk summarises one chunk of a file.
	// The template expects %s (file path), %d (chunk index) and %s (content) placeholders.
	PromptSummariseChunk = "summarise_chunk"

	// PromptGenerateReadme writes the README from per-file summaries.
	// The template expects %s (repository), %s (context lines) and %s (summaries) placeholders.
	PromptGenerateReadme = "generate_readme"
)
