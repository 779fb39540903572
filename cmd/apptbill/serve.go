package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gyeh/apptbill/internal/config"
	"github.com/gyeh/apptbill/internal/exitcode"
	"github.com/gyeh/apptbill/internal/logging"
	"github.com/gyeh/apptbill/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the upload page and transform endpoint",
	RunE:  runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&cfg.Addr, "addr", "", "Listen address (default $APPTBILL_ADDR or :8080)")
	f.Int64Var(&cfg.MaxUploadBytes, "max-upload-bytes", 0, "Largest accepted upload in bytes (default 32 MiB)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)
	if cfg.Addr == "" {
		cfg.Addr = config.EnvOr("APPTBILL_ADDR", ":8080")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := web.NewServer(log, &cfg)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(cfg.Addr)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server failed")
			os.Exit(exitcode.ServeError)
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
			os.Exit(exitcode.ServeError)
		}
	}
	return nil
}
