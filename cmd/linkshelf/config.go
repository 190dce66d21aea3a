package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sagarc03/linkshelf/config"
)

// loadConfig loads and validates configuration for cmd and stores it in the
// command context for the subcommand to pick up.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFiles, _ := cmd.Flags().GetStringSlice("config")

	cfg, err := config.Load(configFiles, cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	cmd.SetContext(config.WithContext(cmd.Context(), cfg))
	return cfg, nil
}
