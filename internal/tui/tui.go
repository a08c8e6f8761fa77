// internal/tui/tui.go
//
// Terminal player entry points.
// NewProgram wires a progress store into a bubbletea program and keeps the
// model in step with changes made from other processes sharing the store.

package tui

import (
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/robalobadob/magicnumbers/internal/certificate"
	"github.com/robalobadob/magicnumbers/internal/progress"
)

// Program is an alias for tea.Program, exposed so callers don't need
// to import bubbletea directly.
type Program = tea.Program

// NewProgram creates a player program on the alternate screen. Progress
// changes made elsewhere (another terminal, the HTTP server sharing the
// store) are forwarded to the model.
func NewProgram(ps *progress.Store, signer *certificate.Signer, opts ...tea.ProgramOption) (*Program, func()) {
	allOpts := []tea.ProgramOption{tea.WithAltScreen()}
	allOpts = append(allOpts, opts...)
	p := tea.NewProgram(NewModel(ps, signer), allOpts...)

	// Publishing may happen on the program's own update loop, so the
	// subscriber never blocks: it keeps only the newest snapshot and a
	// single goroutine forwards it in order.
	updates := make(chan progress.GameProgress, 1)
	unsubscribe := ps.Subscribe(func(g progress.GameProgress) {
		select {
		case <-updates:
		default:
		}
		updates <- g
	})

	done := make(chan struct{})
	go func() {
		for {
			select {
			case g := <-updates:
				p.Send(progressMsg(g))
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			unsubscribe()
			close(done)
		})
	}
	return p, cancel
}

// Run starts the player and blocks until it exits.
func Run(ps *progress.Store, signer *certificate.Signer) error {
	p, cancel := NewProgram(ps, signer)
	defer cancel()
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
