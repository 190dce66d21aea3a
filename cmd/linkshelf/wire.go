package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sagarc03/linkshelf"
	"github.com/sagarc03/linkshelf/config"
	"github.com/sagarc03/linkshelf/keybackend"
)

// app holds the process-wide, read-only pieces every command needs.
type app struct {
	root   *os.Root
	mapper *linkshelf.PathMapper
	signer *linkshelf.LinkSigner
}

// newApp resolves the secret and the base directory. Any failure here is a
// startup error and the process must not serve.
func newApp(cfg *config.Config) (*app, error) {
	secret, err := keybackend.LoadSecret(cfg.Link.SecretConfig)
	if err != nil {
		return nil, err
	}

	base, err := filepath.Abs(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve storage path: %w: %w", linkshelf.ErrConfiguration, err)
	}

	info, err := os.Stat(base)
	if err != nil {
		return nil, fmt.Errorf("storage directory: %w: %w", linkshelf.ErrConfiguration, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("storage path %s is not a directory: %w", base, linkshelf.ErrConfiguration)
	}

	root, err := os.OpenRoot(base)
	if err != nil {
		return nil, fmt.Errorf("open storage root: %w: %w", linkshelf.ErrConfiguration, err)
	}

	mapper, err := linkshelf.NewPathMapper(base, cfg.Server.ListingPath, cfg.Server.DownloadPath)
	if err != nil {
		_ = root.Close()
		return nil, err
	}

	signer, err := linkshelf.NewLinkSigner(linkshelf.SignerConfig{
		Secret:   secret,
		Scheme:   cfg.Server.Scheme,
		Validity: cfg.Link.Validity,
	}, mapper)
	if err != nil {
		_ = root.Close()
		return nil, err
	}

	slog.Debug("storage ready", "path", base, "listing_path", mapper.ListingBase(), "download_path", mapper.DownloadBase())

	return &app{
		root:   root,
		mapper: mapper,
		signer: signer,
	}, nil
}

func (a *app) Close() error {
	return a.root.Close()
}
