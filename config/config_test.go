package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/linkshelf"
	"github.com/sagarc03/linkshelf/config"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 5708, cfg.Server.Port)
	assert.Equal(t, "https", cfg.Server.Scheme)
	assert.Equal(t, "/downloads", cfg.Server.ListingPath)
	assert.Equal(t, "/download", cfg.Server.DownloadPath)
	assert.False(t, cfg.Server.StripPrefix)
	assert.False(t, cfg.Server.TrustProxy)
	assert.Empty(t, cfg.Server.PublicHost)
	assert.Equal(t, "./data", cfg.Storage.Path)
	assert.Equal(t, 24*time.Hour, cfg.Link.Validity)
	assert.Empty(t, cfg.Link.Secret)
	assert.Equal(t, "SECRET", cfg.Link.SecretEnv)
	assert.False(t, cfg.CORS.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_ConfigFile(t *testing.T) {
	configPath := writeConfig(t, "config.yaml", `
server:
  port: 3000
  scheme: http
  listing_path: /files
  download_path: /get
  strip_prefix: true
  trust_proxy: true
  public_host: files.example.com
storage:
  path: /zfspool/p2p
link:
  validity: 12h
  secret: somesecret
  secret_env: DL_SECRET
cors:
  enabled: true
  allowed_origins:
    - https://example.com
log:
  level: debug
  format: json
`)

	cfg, err := config.Load([]string{configPath}, nil)
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "http", cfg.Server.Scheme)
	assert.Equal(t, "/files", cfg.Server.ListingPath)
	assert.Equal(t, "/get", cfg.Server.DownloadPath)
	assert.True(t, cfg.Server.StripPrefix)
	assert.True(t, cfg.Server.TrustProxy)
	assert.Equal(t, "files.example.com", cfg.Server.PublicHost)
	assert.Equal(t, "/zfspool/p2p", cfg.Storage.Path)
	assert.Equal(t, 12*time.Hour, cfg.Link.Validity)
	assert.Equal(t, "somesecret", cfg.Link.Secret)
	assert.Equal(t, "DL_SECRET", cfg.Link.SecretEnv)
	assert.True(t, cfg.CORS.Enabled)
	assert.Equal(t, []string{"https://example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_ConfigFileMerge(t *testing.T) {
	basePath := writeConfig(t, "base.yaml", `
server:
  port: 5708
  listing_path: /downloads
storage:
  path: ./data
link:
  validity: 24h
`)
	overridePath := writeConfig(t, "override.yaml", `
server:
  port: 9000
link:
  validity: 1h
`)

	cfg, err := config.Load([]string{basePath, overridePath}, nil)
	require.NoError(t, err)

	// Overridden values
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, time.Hour, cfg.Link.Validity)

	// Preserved values from base
	assert.Equal(t, "/downloads", cfg.Server.ListingPath)
	assert.Equal(t, "./data", cfg.Storage.Path)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	configPath := writeConfig(t, "config.yaml", `
server:
  port: 3000
link:
  secret: fromfile
`)
	t.Setenv("LINKSHELF_SERVER_PORT", "4000")
	t.Setenv("LINKSHELF_LINK_SECRET", "fromenv")

	cfg, err := config.Load([]string{configPath}, nil)
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, "fromenv", cfg.Link.Secret)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("LINKSHELF_SERVER_PORT", "4000")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", 5708, "")
	flags.String("storage-path", "", "")
	flags.Duration("validity", 0, "")
	require.NoError(t, flags.Parse([]string{"--port", "6000", "--validity", "2h"}))

	cfg, err := config.Load(nil, flags)
	require.NoError(t, err)

	assert.Equal(t, 6000, cfg.Server.Port)
	assert.Equal(t, 2*time.Hour, cfg.Link.Validity)
	// Unchanged flags do not shadow defaults
	assert.Equal(t, "./data", cfg.Storage.Path)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "invalid port",
			content: `
server:
  port: 99999
`,
		},
		{
			name: "invalid scheme",
			content: `
server:
  scheme: ftp
`,
		},
		{
			name: "relative listing path",
			content: `
server:
  listing_path: downloads
`,
		},
		{
			name: "listing and download paths collide",
			content: `
server:
  listing_path: /files
  download_path: /files
`,
		},
		{
			name: "validity below one second",
			content: `
link:
  validity: 500ms
`,
		},
		{
			name: "invalid log level",
			content: `
log:
  level: verbose
`,
		},
		{
			name: "invalid log format",
			content: `
log:
  format: xml
`,
		},
		{
			name: "invalid public host",
			content: `
server:
  public_host: "evil.com/path"
`,
		},
		{
			name: "public host with markup",
			content: `
server:
  public_host: 'evil.com"><b>'
`,
		},
		{
			name: "public host with junk port",
			content: `
server:
  public_host: "host:port:junk"
`,
		},
		{
			name: "listing path needing escapes",
			content: `
server:
  listing_path: "/my files"
`,
		},
		{
			name: "download path with percent",
			content: `
server:
  download_path: "/dl%20here"
`,
		},
		{
			name: "listing path with dot dot",
			content: `
server:
  listing_path: /a/../b
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := writeConfig(t, "config.yaml", tt.content)

			cfg, err := config.Load([]string{configPath}, nil)

			assert.Nil(t, cfg)
			assert.ErrorIs(t, err, linkshelf.ErrConfiguration)
			assert.Contains(t, err.Error(), "validate config")
		})
	}
}

func TestLoad_AcceptsHostAndPathForms(t *testing.T) {
	tests := []struct {
		name        string
		publicHost  string
		listingPath string
	}{
		{name: "ipv6 with port", publicHost: "[::1]:8080", listingPath: "/downloads"},
		{name: "ipv4 with port", publicHost: "10.0.0.1:443", listingPath: "/downloads"},
		{name: "nested listing path", publicHost: "files.example.com", listingPath: "/files/list-v1_~x/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := writeConfig(t, "config.yaml", "server:\n  public_host: \""+tt.publicHost+"\"\n  listing_path: \""+tt.listingPath+"\"\n")

			cfg, err := config.Load([]string{configPath}, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.publicHost, cfg.Server.PublicHost)
			assert.Equal(t, tt.listingPath, cfg.Server.ListingPath)
		})
	}
}

func TestLoad_MissingConfigFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load([]string{filepath.Join(t.TempDir(), "missing.yaml")}, nil)
	require.NoError(t, err)

	assert.Equal(t, 5708, cfg.Server.Port)
}

func TestContext(t *testing.T) {
	_, err := config.FromContext(context.Background())
	assert.Error(t, err)

	cfg, err := config.Load(nil, nil)
	require.NoError(t, err)

	got, err := config.FromContext(config.WithContext(context.Background(), cfg))
	require.NoError(t, err)
	assert.Same(t, cfg, got)
}
