package util

import "os"

// GetEnv retrieves an environment variable or returns a fallback
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
