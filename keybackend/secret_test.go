package keybackend_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/linkshelf"
	"github.com/sagarc03/linkshelf/keybackend"
)

func writeSecretFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "secret")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadSecret_Inline(t *testing.T) {
	t.Setenv("LINKSHELF_TEST_SECRET", "from-env")

	secret, err := keybackend.LoadSecret(keybackend.SecretConfig{
		Secret:     "inline",
		SecretFile: writeSecretFile(t, "from-file"),
		SecretEnv:  "LINKSHELF_TEST_SECRET",
	})

	require.NoError(t, err)
	assert.Equal(t, "inline", secret)
}

func TestLoadSecret_FileBeforeEnv(t *testing.T) {
	t.Setenv("LINKSHELF_TEST_SECRET", "from-env")

	secret, err := keybackend.LoadSecret(keybackend.SecretConfig{
		SecretFile: writeSecretFile(t, "from-file\n"),
		SecretEnv:  "LINKSHELF_TEST_SECRET",
	})

	require.NoError(t, err)
	assert.Equal(t, "from-file", secret)
}

func TestLoadSecret_NamedEnv(t *testing.T) {
	t.Setenv("LINKSHELF_TEST_SECRET", "from-env")

	secret, err := keybackend.LoadSecret(keybackend.SecretConfig{SecretEnv: "LINKSHELF_TEST_SECRET"})

	require.NoError(t, err)
	assert.Equal(t, "from-env", secret)
}

func TestLoadSecret_DefaultEnv(t *testing.T) {
	t.Setenv(keybackend.DefaultSecretEnv, "somesecret")

	secret, err := keybackend.LoadSecret(keybackend.SecretConfig{})

	require.NoError(t, err)
	assert.Equal(t, "somesecret", secret)
}

func TestLoadSecret_Missing(t *testing.T) {
	t.Setenv(keybackend.DefaultSecretEnv, "")

	secret, err := keybackend.LoadSecret(keybackend.SecretConfig{})

	assert.ErrorIs(t, err, linkshelf.ErrConfiguration)
	assert.Empty(t, secret)
}

func TestLoadSecretFromFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantErr bool
	}{
		{name: "plain", content: "abc", want: "abc"},
		{name: "trailing newline", content: "abc\n", want: "abc"},
		{name: "inner space kept", content: " a b \n", want: "a b"},
		{name: "empty", content: "", wantErr: true},
		{name: "whitespace only", content: " \n\t", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := keybackend.LoadSecretFromFile(writeSecretFile(t, tt.content))
			if tt.wantErr {
				assert.ErrorIs(t, err, linkshelf.ErrConfiguration)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadSecretFromFile_Missing(t *testing.T) {
	_, err := keybackend.LoadSecretFromFile(filepath.Join(t.TempDir(), "nope"))

	assert.ErrorIs(t, err, linkshelf.ErrConfiguration)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
