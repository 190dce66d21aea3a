package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "linkshelf",
	Short:   "Directory browser that hands out expiring download links",
	Long: `Linkshelf renders directory listings over HTTP and signs a
time-limited download link for every file. The links are checked by an
nginx secure_link location; linkshelf itself never serves file contents.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		setupLogging(cfg.Log)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringSlice("config", nil, "config file path(s), merged left to right (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("storage-path", "", "directory to serve (default: ./data, env: LINKSHELF_STORAGE_PATH)")
	rootCmd.PersistentFlags().String("secret-file", "", "file holding the signing secret (env: LINKSHELF_LINK_SECRET_FILE)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "log format: text, json")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
