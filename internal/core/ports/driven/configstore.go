package driven

// ConfigStore holds settings as flat dot-separated keys such as
// "catalog.path". Getters return the zero value for missing keys and for
// values of another type.
type ConfigStore interface {
	// Get returns the raw value and whether the key is set.
	Get(key string) (any, bool)

	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool

	// Set stores value under key. File-backed stores persist it before
	// returning.
	Set(key string, value any) error
}
