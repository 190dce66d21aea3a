package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/sagarc03/linkshelf"
	"github.com/sagarc03/linkshelf/config"
	"github.com/sagarc03/linkshelf/keybackend"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <url>",
	Short: "Check a signed download link",
	Long: `Verify a signed download link with the configured secret, the same
check the proxy performs. Useful when links are rejected and you need to tell
a wrong secret from an expired link.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringP("output", "o", "text", "output format: text, json, yaml")

	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	formatter, err := newFormatter(output)
	if err != nil {
		return err
	}

	secret, err := keybackend.LoadSecret(cfg.Link.SecretConfig)
	if err != nil {
		return err
	}

	verifier, err := linkshelf.NewLinkVerifier(secret, time.Now)
	if err != nil {
		return err
	}

	verifyErr := verifier.VerifyURL(args[0])
	result := verifyResult{URL: args[0], Valid: verifyErr == nil}
	if verifyErr != nil {
		result.Reason = verifyErr.Error()
	}

	if err := formatter.FormatVerify(cmd.OutOrStdout(), result); err != nil {
		return err
	}
	return verifyErr
}
