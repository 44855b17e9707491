package chunker

import "regexp"

// Kind names the structural construct a classifier detects.
type Kind int

// Structural kinds tracked while scanning.
const (
	KindFunction Kind = iota
	KindClass
	KindComponent
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindClass:
		return "class"
	case KindComponent:
		return "component"
	default:
		return "unknown"
	}
}

// Classifier reports whether a trimmed line opens a construct of its Kind.
type Classifier interface {
	Kind() Kind
	Matches(line string) bool
}

// RegexClassifier matches a line against any of its patterns.
type RegexClassifier struct {
	kind     Kind
	patterns []*regexp.Regexp
}

// NewRegexClassifier creates a classifier of kind from regular expressions.
// It panics if a pattern does not compile.
func NewRegexClassifier(kind Kind, patterns ...string) *RegexClassifier {
	c := &RegexClassifier{kind: kind}
	for _, p := range patterns {
		c.patterns = append(c.patterns, regexp.MustCompile(p))
	}
	return c
}

// Kind returns the construct kind.
func (c *RegexClassifier) Kind() Kind {
	return c.kind
}

// Matches returns true if any pattern matches the line.
func (c *RegexClassifier) Matches(line string) bool {
	for _, re := range c.patterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// DefaultClassifiers returns heuristics for JavaScript/TypeScript, Python,
// Java and C# functions, classes and capitalised UI components.
func DefaultClassifiers() []Classifier {
	return []Classifier{
		NewRegexClassifier(KindFunction,
			`^(export\s+)?(async\s+)?function\s+`,
			`^(export\s+)?const\s+\w+\s*=\s*(async\s+)?\(`,
			`^(export\s+)?const\s+\w+\s*=\s*(async\s+)?\w+\s*=>`,
			`^(public|private|protected)\s+\w+\s*\(`,
			`^def\s+\w+`,
			`^(public|private|protected)?\s*(static\s+)?\w+\s+\w+\s*\(`,
		),
		NewRegexClassifier(KindClass,
			`^(export\s+)?(abstract\s+)?class\s+`,
			`^class\s+\w+`,
			`^(public|private|protected)?\s*class\s+`,
		),
		NewRegexClassifier(KindComponent,
			`^(export\s+)?(default\s+)?function\s+[A-Z]\w*\s*\(`,
			`^(export\s+)?const\s+[A-Z]\w*\s*=\s*\(`,
			`^(export\s+)?const\s+[A-Z]\w*\s*:\s*React\.FC`,
			`^(export\s+)?const\s+[A-Z]\w*\s*=\s*React\.memo\(`,
		),
	}
}
