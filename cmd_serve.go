package main

import (
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/magicnumbers/internal/certificate"
	"github.com/robalobadob/magicnumbers/internal/httpserver"
	"github.com/robalobadob/magicnumbers/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API and live progress for the browser game",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	signer, err := certificate.NewSigner(a.cfg.CertificateSecret)
	if err != nil {
		return err
	}
	srv, err := httpserver.New(a.progress, store.NewMemoryStore(), signer, httpserver.Options{
		ClientOrigin: a.cfg.ClientOrigin,
		ResetPIN:     a.cfg.ResetPIN,
		RunTTL:       a.cfg.RunTTL,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("addr", a.cfg.Addr()).
		Str("storage", a.cfg.Storage.Driver).
		Msg("starting magicnumbers server")
	if err := srv.Start(ctx, a.cfg.Addr()); err != nil {
		log.Error().Err(err).Msg("server exited")
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
