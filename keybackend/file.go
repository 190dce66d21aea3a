package keybackend

import (
	"fmt"
	"os"
	"strings"

	"github.com/sagarc03/linkshelf"
)

// LoadSecretFromFile reads the secret from a file. Surrounding whitespace,
// including the trailing newline most editors add, is stripped. An empty file
// is a configuration error.
func LoadSecretFromFile(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is from trusted config file
	if err != nil {
		return "", fmt.Errorf("read secret file: %w: %w", linkshelf.ErrConfiguration, err)
	}

	secret := strings.TrimSpace(string(data))
	if secret == "" {
		return "", fmt.Errorf("read secret file: %s is empty: %w", path, linkshelf.ErrConfiguration)
	}

	return secret, nil
}
