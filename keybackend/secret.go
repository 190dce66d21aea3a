// Package keybackend resolves the link signing secret at startup.
package keybackend

import (
	"fmt"
	"os"

	"github.com/sagarc03/linkshelf"
)

// DefaultSecretEnv is the environment variable consulted when neither an
// inline secret nor a secret file is configured.
const DefaultSecretEnv = "SECRET"

// SecretConfig holds the possible sources of the signing secret.
type SecretConfig struct {
	Secret     string `mapstructure:"secret"`      // Inline secret
	SecretFile string `mapstructure:"secret_file"` // Path to a file holding the secret
	SecretEnv  string `mapstructure:"secret_env"`  // Name of an environment variable holding the secret
}

// LoadSecret resolves the signing secret. Sources are tried in order: the
// inline value, the secret file, then the named environment variable. A
// missing secret is a linkshelf.ErrConfiguration.
func LoadSecret(cfg SecretConfig) (string, error) {
	if cfg.Secret != "" {
		return cfg.Secret, nil
	}

	if cfg.SecretFile != "" {
		secret, err := LoadSecretFromFile(cfg.SecretFile)
		if err != nil {
			return "", err
		}
		return secret, nil
	}

	env := cfg.SecretEnv
	if env == "" {
		env = DefaultSecretEnv
	}

	if secret := os.Getenv(env); secret != "" {
		return secret, nil
	}

	return "", fmt.Errorf("load secret: no secret configured (set link.secret, link.secret_file or $%s): %w", env, linkshelf.ErrConfiguration)
}
