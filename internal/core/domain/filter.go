package domain

// DefaultMaxFileSize is the largest blob, in bytes, that is worth summarising.
const DefaultMaxFileSize = 500000

// FileFilter configures which repository files are selected for processing.
type FileFilter struct {
	// IgnoredDirectories are matched against whole path segments.
	// Entries containing a slash match consecutive segments.
	IgnoredDirectories []string

	// IgnoredFiles are matched against the file name exactly.
	IgnoredFiles []string

	// BinaryExtensions exclude files whose lowercase name ends with them.
	BinaryExtensions []string

	// SourceExtensions include files whose lowercase name ends with them.
	// Files without any extension are always eligible.
	SourceExtensions []string

	// ImportantFiles sort ahead of everything else.
	ImportantFiles []string

	// MaxFileSize excludes larger blobs.
	MaxFileSize int64
}

// DefaultFileFilter returns the built-in selection rules.
func DefaultFileFilter() FileFilter {
	return FileFilter{
		IgnoredDirectories: []string{
			"node_modules", ".git", ".next", "dist", "build", ".vercel", ".netlify",
			"coverage", ".nyc_output", "logs", ".cache", "public/static", "components/ui",
			".vscode", "vendor", "__pycache__", ".venv", "target",
		},
		IgnoredFiles: []string{
			"package-lock.json", "yarn.lock", "pnpm-lock.yaml", "go.sum", "Cargo.lock",
			".gitignore", ".env", ".env.local", ".env.production",
			".DS_Store", "Thumbs.db", "README.md", "settings.json",
		},
		BinaryExtensions: []string{
			".png", ".jpg", ".jpeg", ".gif", ".svg", ".ico", ".webp", ".pdf",
			".zip", ".tar", ".gz", ".rar", ".7z", ".exe", ".dll", ".so", ".dylib",
			".lock", ".log", ".tmp", ".cache", ".woff", ".woff2", ".ttf", ".bin",
		},
		SourceExtensions: []string{
			".js", ".jsx", ".ts", ".tsx", ".vue", ".svelte", ".py", ".rb", ".php",
			".java", ".c", ".cpp", ".cs", ".go", ".rs", ".swift", ".kt", ".scala",
			".html", ".css", ".scss", ".sass", ".less", ".json", ".xml", ".yaml",
			".yml", ".md", ".txt", ".toml", ".ini", ".sh", ".bash", ".zsh", ".fish",
			".sql", ".graphql", ".proto", ".mod",
		},
		ImportantFiles: []string{
			"README.md", "package.json", "index.js", "index.ts", "main.py", "app.py",
			"main.go", "go.mod",
		},
		MaxFileSize: DefaultMaxFileSize,
	}
}
