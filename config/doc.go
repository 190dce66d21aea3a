// Package config provides configuration loading and validation for linkshelf.
//
// The package handles YAML configuration files, environment variables, and CLI flags
// with automatic merging and validation using go-playground/validator.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. Configuration file(s) - multiple files merged left-to-right
//  3. Environment variables (LINKSHELF_ prefix)
//  4. CLI flags
//
// # Usage
//
//	cfg, err := config.Load([]string{"config.yaml"}, cmd.Flags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Store in context for subcommands
//	ctx = config.WithContext(ctx, cfg)
//
//	// Retrieve later
//	cfg, err = config.FromContext(ctx)
//
// # Environment Variables
//
// All config keys map to environment variables with LINKSHELF_ prefix:
//   - server.port → LINKSHELF_SERVER_PORT
//   - storage.path → LINKSHELF_STORAGE_PATH
//   - link.secret → LINKSHELF_LINK_SECRET
//
// When no secret is configured, the variable named by link.secret_env
// (default SECRET) is consulted at startup.
//
// # Configuration Structure
//
// The Config struct contains:
//   - Server: port, link scheme, public listing and download paths, proxy handling
//   - Storage: the directory being served
//   - Link: validity and secret sources
//   - CORS: cross-origin resource sharing settings
//   - Log: level and format
//
// # Validation
//
// Configuration is validated using struct tags:
//   - Port must be 1-65535
//   - Scheme must be http or https
//   - Listing and download paths must start with / and differ
//   - Validity must be at least one second
//   - Log level must be debug, info, warn, or error
package config
