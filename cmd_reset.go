package main

import (
	"bufio"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var errResetAborted = errors.New("reset cancelled")

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all progress and start again from phase 1",
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().Bool("yes", false, "do not ask for confirmation")
	resetCmd.Flags().String("pin", "", "parent PIN, required when RESET_PIN is set")
}

func runReset(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	yes, _ := cmd.Flags().GetBool("yes")
	pin, _ := cmd.Flags().GetString("pin")

	if !pinMatches(a.cfg.ResetPIN, pin) {
		return errors.New("wrong or missing --pin")
	}
	if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout()) {
		return errResetAborted
	}

	p := a.progress.ResetProgress(cmd.Context())
	fmt.Fprintf(cmd.OutOrStdout(), "%s progresso apagado, fase %d desbloqueada\n",
		color.New(color.FgGreen).Sprint("✓"), p.CurrentPhase)
	return nil
}

// pinMatches reports whether pin satisfies the configured PIN. An empty
// configured PIN accepts anything.
func pinMatches(configured, pin string) bool {
	if configured == "" {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(configured), []byte(pin)) == 1
}

// confirm asks the player before wiping the save.
func confirm(in io.Reader, out io.Writer) bool {
	fmt.Fprint(out, "Tem certeza que deseja recomeçar? Todo o progresso será perdido. [s/N] ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "s", "sim", "y", "yes":
		return true
	}
	return false
}
