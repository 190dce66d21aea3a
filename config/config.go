package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sagarc03/linkshelf"
	linkshelfhttp "github.com/sagarc03/linkshelf/http"
	"github.com/sagarc03/linkshelf/keybackend"
)

// configKey is the context key for storing the loaded configuration.
type configKey struct{}

// WithContext returns a new context with the config stored.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from context.
// Returns an error if config is not found.
func FromContext(ctx context.Context) (*Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*Config)
	if !ok || cfg == nil {
		return nil, errors.New("config not found in context")
	}
	return cfg, nil
}

// Config is the root configuration struct for linkshelf.
type Config struct {
	Server  ServerConfig             `mapstructure:"server"`
	Storage StorageConfig            `mapstructure:"storage"`
	Link    LinkConfig               `mapstructure:"link"`
	CORS    linkshelfhttp.CORSConfig `mapstructure:"cors"`
	Log     LogConfig                `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Scheme       string `mapstructure:"scheme" validate:"required,oneof=http https"`
	ListingPath  string `mapstructure:"listing_path" validate:"required,basepath"`
	DownloadPath string `mapstructure:"download_path" validate:"required,basepath,nefield=ListingPath"`
	StripPrefix  bool   `mapstructure:"strip_prefix"`
	TrustProxy   bool   `mapstructure:"trust_proxy"`
	PublicHost   string `mapstructure:"public_host" validate:"omitempty,linkhost"`
}

// StorageConfig holds the served directory.
type StorageConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// LinkConfig holds signed link settings.
type LinkConfig struct {
	Validity time.Duration `mapstructure:"validity" validate:"min=1s"`

	keybackend.SecretConfig `mapstructure:",squash"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=text json"`
}

// flagToViperKey maps CLI flag names to viper configuration keys.
var flagToViperKey = map[string]string{
	"storage-path":  "storage.path",
	"port":          "server.port",
	"scheme":        "server.scheme",
	"listing-path":  "server.listing_path",
	"download-path": "server.download_path",
	"strip-prefix":  "server.strip_prefix",
	"trust-proxy":   "server.trust_proxy",
	"public-host":   "server.public_host",
	"validity":      "link.validity",
	"secret-file":   "link.secret_file",
	"log-level":     "log.level",
	"log-format":    "log.format",
}

// bindFlags binds CLI flags to viper keys with custom name mapping.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		viperKey := f.Name
		if mapped, ok := flagToViperKey[viperKey]; ok {
			viperKey = mapped
		}

		// Only bind if the flag was explicitly set
		if f.Changed {
			_ = v.BindPFlag(viperKey, f)
		}
	})
}

// newValidator returns a validator that also knows the linkshelf rules for
// link hostnames and public path prefixes.
func newValidator() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("linkhost", func(fl validator.FieldLevel) bool {
		return linkshelf.IsValidHostname(fl.Field().String())
	})
	_ = validate.RegisterValidation("basepath", func(fl validator.FieldLevel) bool {
		return linkshelf.IsValidBasePath(fl.Field().String())
	})
	return validate
}

// setDefaults configures default values on the viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5708)
	v.SetDefault("server.scheme", linkshelf.DefaultScheme)
	v.SetDefault("server.listing_path", "/downloads")
	v.SetDefault("server.download_path", "/download")
	v.SetDefault("server.strip_prefix", false)
	v.SetDefault("server.trust_proxy", false)
	v.SetDefault("server.public_host", "")

	v.SetDefault("storage.path", "./data")

	v.SetDefault("link.validity", linkshelf.DefaultValidity)
	v.SetDefault("link.secret", "")
	v.SetDefault("link.secret_file", "")
	v.SetDefault("link.secret_env", keybackend.DefaultSecretEnv)

	v.SetDefault("cors.enabled", false)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET"})
	v.SetDefault("cors.allowed_headers", []string{"Accept"})
	v.SetDefault("cors.max_age", 300)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load reads configuration and returns a validated Config struct.
// Order of precedence (highest to lowest): flags > env > config files > defaults
//
// Parameters:
//   - configFiles: list of config file paths (later files override earlier ones)
//   - flags: cobra flag set for flag binding (can be nil)
//
// The signing secret is not resolved here; see keybackend.LoadSecret.
func Load(configFiles []string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Read config files
	if len(configFiles) > 0 {
		v.SetConfigFile(configFiles[0])
		if err := v.ReadInConfig(); err != nil {
			slog.Warn("error reading config file", "file", configFiles[0], "err", err)
		}

		for _, cf := range configFiles[1:] {
			v.SetConfigFile(cf)
			if err := v.MergeInConfig(); err != nil {
				slog.Warn("error merging config file", "file", cf, "err", err)
			}
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				slog.Warn("error reading config file", "err", err)
			}
		}
	}

	// 3. Bind environment variables
	v.SetEnvPrefix("LINKSHELF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Bind flags (if provided)
	if flags != nil {
		bindFlags(v, flags)
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w: %w", linkshelf.ErrConfiguration, err)
	}

	// 6. Validate using go-playground/validator
	if err := newValidator().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w: %w", linkshelf.ErrConfiguration, err)
	}

	return &cfg, nil
}
