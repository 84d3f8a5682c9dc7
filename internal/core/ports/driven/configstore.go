package driven

// ConfigStore provides application configuration.
// Implementations must be safe for concurrent reads.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	Get(key string) (any, bool)

	// GetString retrieves a string value, "" if absent.
	GetString(key string) string

	// GetInt retrieves an integer value, 0 if absent.
	GetInt(key string) int

	// GetFloat retrieves a float value, 0 if absent.
	GetFloat(key string) float64

	// GetBool retrieves a boolean value, false if absent.
	GetBool(key string) bool

	// Set stores a configuration value.
	Set(key string, value any) error

	// Save persists the configuration.
	Save() error
}
