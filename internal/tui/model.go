// internal/tui/model.go
//
// Bubbletea model for the terminal player.
// Screens follow the browser flow: menu, learn, play, reward, certificate
// and the reset confirmation. Runs come from the game package and finished
// phases are recorded in the shared progress store.

package tui

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/magicnumbers/internal/certificate"
	"github.com/robalobadob/magicnumbers/internal/feedback"
	"github.com/robalobadob/magicnumbers/internal/game"
	"github.com/robalobadob/magicnumbers/internal/progress"
)

// screen is which page of the player is showing.
type screen int

const (
	screenMenu screen = iota
	screenLearn
	screenPlay
	screenReward
	screenCertificate
	screenConfirmReset
)

// optionsPerRow is how many number tiles are drawn per row.
const optionsPerRow = 5

// progressMsg carries a snapshot published by the progress store.
type progressMsg progress.GameProgress

// Model is the bubbletea model for the terminal player.
type Model struct {
	store  *progress.Store
	signer *certificate.Signer
	keys   KeyMap
	rng    func() *rand.Rand // nil: each run seeds itself

	screen   screen
	progress progress.GameProgress
	cursor   int // menu: phase index; play: option index
	run      *game.Run
	view     game.View
	cue      feedback.Cue
	wrong    bool // last pick was wrong
	cert     *certificate.Certificate
	width    int
}

// NewModel returns a player at the phase menu. signer may be nil, in which
// case the certificate is shown without a verification token.
func NewModel(ps *progress.Store, signer *certificate.Signer) Model {
	p := ps.Progress()
	return Model{
		store:    ps,
		signer:   signer,
		keys:     DefaultKeyMap(),
		progress: p,
		cursor:   p.CurrentPhase - 1,
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case progressMsg:
		m.progress = progress.GameProgress(msg)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.screen {
		case screenMenu:
			return m.updateMenu(msg)
		case screenLearn:
			return m.updateLearn(msg)
		case screenPlay:
			return m.updatePlay(msg)
		case screenReward:
			return m.updateReward(msg)
		case screenCertificate:
			if key.Matches(msg, m.keys.Enter, m.keys.Back) {
				m.toMenu()
			}
		case screenConfirmReset:
			return m.updateConfirmReset(msg)
		}
	}
	return m, nil
}

// ------------------------------------------------------------------ menu ---

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up, m.keys.Left):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down, m.keys.Right):
		if m.cursor < m.store.Catalog().Last()-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Enter):
		id := m.cursor + 1
		if !m.progress.Unlocked(id) {
			m.cue = feedback.Cue{Speech: "Essa fase ainda está bloqueada!", Sound: feedback.SoundPop}
			return m, nil
		}
		m.startRun(id)
	case key.Matches(msg, m.keys.Certificate):
		if m.progress.CompletedGame {
			m.showCertificate()
		}
	case key.Matches(msg, m.keys.Reset):
		m.screen = screenConfirmReset
		m.cue = feedback.Cue{Speech: "Tem certeza que deseja recomeçar? Todo o progresso será perdido."}
	}
	return m, nil
}

func (m Model) updateConfirmReset(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		m.progress = m.store.ResetProgress(context.Background())
		m.toMenu()
	case key.Matches(msg, m.keys.No):
		m.toMenu()
	}
	return m, nil
}

func (m *Model) toMenu() {
	m.screen = screenMenu
	m.run = nil
	m.cert = nil
	m.wrong = false
	m.cue = feedback.Cue{}
	m.progress = m.store.Progress()
	m.cursor = m.progress.CurrentPhase - 1
}

// startRun opens the learn screen of phase id. The caller has checked that
// the phase is unlocked.
func (m *Model) startRun(id int) {
	phase, err := m.store.Catalog().Lookup(id)
	if err != nil {
		log.Debug().Int("phase", id).Msg("unknown phase, back to menu")
		m.toMenu()
		return
	}
	var rng *rand.Rand
	if m.rng != nil {
		rng = m.rng()
	}
	ps := m.store
	m.run = game.NewRun(phase, rng, func(phaseID int) {
		ps.CompletePhase(context.Background(), phaseID)
	})
	m.view = m.run.View()
	m.cue = m.view.Cue
	m.wrong = false
	m.cursor = 0
	m.screen = screenLearn
}

// ----------------------------------------------------------------- learn ---

func (m Model) updateLearn(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.toMenu()
	case key.Matches(msg, m.keys.Enter):
		v, err := m.run.Practice()
		if err != nil {
			return m, nil
		}
		m.view = v
		m.cue = v.Cue
		m.cursor = 0
		m.screen = screenPlay
	}
	return m, nil
}

// ------------------------------------------------------------------ play ---

func (m Model) updatePlay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.view.Board.Options)
	switch {
	case key.Matches(msg, m.keys.Back):
		m.toMenu()
	case key.Matches(msg, m.keys.Left):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Right):
		if m.cursor < n-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.cursor >= optionsPerRow {
			m.cursor -= optionsPerRow
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor+optionsPerRow < n {
			m.cursor += optionsPerRow
		}
	case key.Matches(msg, m.keys.Enter):
		if n == 0 {
			return m, nil
		}
		return m.choose(m.view.Board.Options[m.cursor])
	}
	return m, nil
}

func (m Model) choose(number int) (tea.Model, tea.Cmd) {
	res, err := m.run.Choose(number)
	if err != nil {
		return m, nil
	}
	m.wrong = !res.Correct
	m.cue = res.Cue
	if res.Next != nil {
		m.cue = *res.Next
	}

	prevKind := m.view.Board.Kind
	m.view = m.run.View()

	if res.PhaseFinished {
		m.progress = m.store.Progress()
		m.screen = screenReward
		return m, nil
	}
	if m.view.Board == nil || m.view.Board.Kind != prevKind {
		m.cursor = 0
	} else if n := len(m.view.Board.Options); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	return m, nil
}

// ---------------------------------------------------------------- reward ---

// updateReward auto-advances to the next phase or, after the last phase,
// opens the certificate.
func (m Model) updateReward(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.toMenu()
	case key.Matches(msg, m.keys.Enter):
		next := m.view.PhaseID + 1
		if m.progress.CompletedGame && next > m.store.Catalog().Last() {
			m.showCertificate()
			return m, nil
		}
		if m.progress.Unlocked(next) {
			m.startRun(next)
			return m, nil
		}
		m.toMenu()
	}
	return m, nil
}

func (m *Model) showCertificate() {
	m.screen = screenCertificate
	m.cue = feedback.Cue{Speech: certificate.Text, Sound: feedback.SoundComplete}
	if m.signer == nil {
		m.cert = &certificate.Certificate{
			Title:    certificate.Title,
			Honoree:  certificate.Honoree,
			Text:     certificate.Text,
			Crystals: m.progress.TotalCrystals,
			IssuedAt: time.Now(),
		}
		return
	}
	c, err := m.signer.Issue(m.progress, time.Now())
	if err != nil {
		log.Warn().Err(err).Msg("issue certificate")
		m.toMenu()
		return
	}
	m.cert = &c
}
