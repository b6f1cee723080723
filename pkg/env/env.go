package env

import (
	"os"
	"strconv"
	"strings"

	"github.com/makehaven/tasks-display/pkg/debug"
)

// GetOrDefault returns the environment variable value or the default if not set
func GetOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	debug.Debug("%s not set, using default: %s", key, defaultValue)
	return defaultValue
}

// GetBool reports whether the variable is "true", "1", "yes" or "y" (case insensitive).
func GetBool(key string) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "true", "1", "yes", "y":
		return true
	default:
		return false
	}
}

// GetBoolOrDefault returns the environment variable as a boolean or the default value if not set
func GetBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return GetBool(key)
	}
	return defaultValue
}

// GetIntOrDefault returns the environment variable as an int. Unset or
// unparsable values yield the default.
func GetIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		debug.Warning("Invalid integer for %s (%q), using default: %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
