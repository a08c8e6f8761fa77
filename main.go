// main.go
//
// Entry point for the Magic Numbers game.
// Commands:
//   - serve  → JSON API + WebSocket push for the browser front end
//   - play   → the full game in the terminal
//   - status → print the saved progress
//   - reset  → wipe the saved progress (asks first)
//
// Every command loads configuration the same way (defaults, --config file,
// .env, environment) and opens the same local progress store.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/magicnumbers/internal/catalog"
	"github.com/robalobadob/magicnumbers/internal/config"
	"github.com/robalobadob/magicnumbers/internal/kv"
	"github.com/robalobadob/magicnumbers/internal/progress"
)

var rootCmd = &cobra.Command{
	Use:           "magicnumbers",
	Short:         "Missão dos Números Mágicos: learn the numbers 1 to 50",
	Long:          "A number-learning game for young children: five phases, three mini-games each, one crystal per phase and a certificate at the end.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (YAML)")
	rootCmd.AddCommand(serveCmd, playCmd, statusCmd, resetCmd)
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app is what every command needs: configuration and an open progress store.
type app struct {
	cfg      config.Config
	storage  kv.KV
	progress *progress.Store
}

// openApp loads configuration, sets the log level and opens the store.
func openApp(cmd *cobra.Command) (*app, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	cat, err := catalog.Default()
	if err != nil {
		return nil, fmt.Errorf("load phase catalog: %w", err)
	}
	storage, err := kv.Open(cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage.Driver, err)
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return &app{
		cfg:      cfg,
		storage:  storage,
		progress: progress.NewStore(ctx, storage, cat),
	}, nil
}

func (a *app) Close() {
	if err := a.storage.Close(); err != nil {
		log.Warn().Err(err).Msg("close storage")
	}
}
