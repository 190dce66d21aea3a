package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sagarc03/linkshelf"
	"github.com/sagarc03/linkshelf/config"
	"github.com/sagarc03/linkshelf/filesystem"
	linkshelfhttp "github.com/sagarc03/linkshelf/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the linkshelf HTTP server.

The server expects to sit behind nginx, for example:

	location ^~ /downloads/ {
		proxy_pass http://localhost:5708;
		proxy_set_header X-Forwarded-Host $host;
	}
	location ^~ /download/ {
		alias /path/to/files/;
		secure_link $arg_h,$arg_e;
		secure_link_md5 "$secure_link_expires$uri <secret>";
		if ($secure_link = "")  { return 404; }
		if ($secure_link = "0") { return 410; }
	}`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 5708, "HTTP server port")
	serveCmd.Flags().String("scheme", "", "scheme of generated download links (http, https)")
	serveCmd.Flags().String("listing-path", "", "public path prefix of listings (default: /downloads)")
	serveCmd.Flags().String("download-path", "", "public path prefix of downloads (default: /download)")
	serveCmd.Flags().Bool("strip-prefix", false, "serve listings at / because the proxy strips the listing prefix")
	serveCmd.Flags().Bool("trust-proxy", false, "take the link hostname from X-Forwarded-Host")
	serveCmd.Flags().String("public-host", "", "fixed hostname for generated links")
	serveCmd.Flags().Duration("validity", 0, "link validity (default: 24h)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	cfg, err := config.FromContext(ctx)
	if err != nil {
		return err
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	service, err := linkshelf.NewListingService(a.mapper, filesystem.NewDirectoryStore(a.root), a.signer)
	if err != nil {
		return fmt.Errorf("create service: %w", err)
	}

	handlerConfig := linkshelfhttp.HandlerConfig{
		ListingPath: a.mapper.ListingBase(),
		StripPrefix: cfg.Server.StripPrefix,
		Hosts: linkshelfhttp.HostResolver{
			PublicHost: cfg.Server.PublicHost,
			TrustProxy: cfg.Server.TrustProxy,
		},
		CORS: cfg.CORS,
	}

	handler := linkshelfhttp.NewHandler(&handlerConfig, service)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)

	server := &http.Server{
		Addr:              addr,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case <-sigCh:
		case <-ctx.Done():
			return
		}

		slog.Info("shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "err", err)
		}
		cancel()
	}()

	slog.Info("starting server",
		"addr", addr,
		"storage", a.mapper.BaseDir(),
		"listing_path", a.mapper.ListingBase(),
		"download_path", a.mapper.DownloadBase(),
		"validity", a.signer.Validity(),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
