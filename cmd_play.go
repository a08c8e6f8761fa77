package main

import (
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/magicnumbers/internal/certificate"
	"github.com/robalobadob/magicnumbers/internal/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game in the terminal",
	RunE:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	// The player owns the screen; log lines would tear the layout.
	log.Logger = log.Output(io.Discard)

	signer, err := certificate.NewSigner(a.cfg.CertificateSecret)
	if err != nil {
		return err
	}
	return tui.Run(a.progress, signer)
}
