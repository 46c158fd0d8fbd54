package appconf

import (
	"fmt"
	"os"
	"strings"
)

type MissingEnvironmentKey string

func (k MissingEnvironmentKey) Error() string {
	return fmt.Sprintf("%s environment variable not set", string(k))
}

// SecretFromEnvironment reads key from the environment, falling back to the
// file named by key_FILE.
func SecretFromEnvironment(key string) (string, error) {
	value := os.Getenv(key)
	path := os.Getenv(key + "_FILE")
	if value == "" && path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", key+"_FILE", err)
		}
		value = string(content)
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return "", MissingEnvironmentKey(key)
	}
	return value, nil
}
