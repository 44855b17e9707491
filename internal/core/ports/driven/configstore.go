package driven

// ConfigStore is a flat view of the settings file keyed by dotted paths
// such as "llm.provider" or "pipeline.tier".
//
// The typed getters return the zero value when a key is unset or holds a
// different type.
type ConfigStore interface {
	Get(key string) (any, bool)
	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool
	GetStringSlice(key string) []string

	// Set stores a value. File-backed stores persist it immediately.
	Set(key string, value any) error

	Save() error
	Load() error

	// Keys returns all set keys in dotted form, sorted.
	Keys() []string

	// Path is the backing file, shown to users by 'config list'.
	Path() string
}
