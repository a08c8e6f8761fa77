package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/robalobadob/magicnumbers/internal/progress"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show unlocked and completed phases and the crystal count",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	printStatus(cmd.OutOrStdout(), a.progress.Progress())
	return nil
}

// printStatus writes one line per phase followed by the totals.
func printStatus(w io.Writer, p progress.GameProgress) {
	for _, ph := range p.Ordered() {
		var state string
		switch {
		case ph.Completed:
			state = color.New(color.FgGreen).Sprint("COMPLETED")
		case ph.Unlocked:
			state = color.New(color.FgYellow).Sprint("UNLOCKED ")
		default:
			state = color.New(color.FgHiBlack).Sprint("LOCKED   ")
		}
		marker := ""
		if ph.ID == p.CurrentPhase && !p.CompletedGame {
			marker = color.New(color.FgHiMagenta).Sprint(" ←")
		}
		fmt.Fprintf(w, "  %s  Fase %d  %-20s %2d-%-2d%s\n",
			state, ph.ID, ph.Name, ph.Range.Start, ph.Range.End, marker)
	}
	fmt.Fprintf(w, "\nCristais: %s\n", color.New(color.FgCyan).Sprintf("%d/%d", p.TotalCrystals, len(p.Phases)))
	if p.CompletedGame {
		fmt.Fprintf(w, "%s\n", color.New(color.FgHiYellow, color.Bold).Sprint("Jogo completo! Certificado disponível."))
	}
}
