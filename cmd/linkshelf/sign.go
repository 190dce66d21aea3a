package main

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sagarc03/linkshelf"
	"github.com/sagarc03/linkshelf/config"
)

var signCmd = &cobra.Command{
	Use:   "sign <path>",
	Short: "Print a signed download link for one file",
	Long: `Sign a download link for a file under the storage directory, the same
way a listing would. The path is relative to the storage directory and is
given unencoded, e.g. "music/track 01.mp3".`,
	Args: cobra.ExactArgs(1),
	RunE: runSign,
}

func init() {
	signCmd.Flags().String("host", "", "hostname for the link (default: server.public_host)")
	signCmd.Flags().Duration("validity", 0, "link validity (default: link.validity)")
	signCmd.Flags().StringP("output", "o", "text", "output format: text, json, yaml")

	rootCmd.AddCommand(signCmd)
}

func runSign(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	host, _ := cmd.Flags().GetString("host")
	if host == "" {
		host = cfg.Server.PublicHost
	}
	if host == "" {
		return fmt.Errorf("no hostname: pass --host or set server.public_host")
	}

	validity, _ := cmd.Flags().GetDuration("validity")
	if validity == 0 {
		validity = cfg.Link.Validity
	}

	output, _ := cmd.Flags().GetString("output")
	formatter, err := newFormatter(output)
	if err != nil {
		return err
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	segments := strings.Split(strings.Trim(args[0], "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}

	abs, err := a.mapper.ToFilesystemPath(segments)
	if err != nil {
		return err
	}

	rel, err := a.mapper.Relative(abs)
	if err != nil {
		return err
	}

	info, err := a.root.Lstat(rel)
	if err != nil {
		return fmt.Errorf("stat %s: %w", args[0], err)
	}
	if kind := linkshelf.ClassifyMode(info.Mode()); kind != linkshelf.KindFile {
		return fmt.Errorf("%s is a %s, only regular files can be signed: %w", args[0], kind, linkshelf.ErrInvalidInput)
	}

	link, err := a.signer.SignFor(abs, host, validity)
	if err != nil {
		return err
	}

	return formatter.FormatLink(cmd.OutOrStdout(), signResult{
		Path:      "/" + rel,
		URL:       link.URL,
		Token:     link.Token,
		ExpiresAt: link.ExpiresAt,
		Expires:   time.Unix(link.ExpiresAt, 0).UTC(),
	})
}
