// internal/tui/view.go
//
// Rendering for each screen of the terminal player.

package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/magicnumbers/internal/game"
)

func (m Model) View() string {
	var body string
	switch m.screen {
	case screenMenu:
		body = m.viewMenu()
	case screenLearn:
		body = m.viewLearn()
	case screenPlay:
		body = m.viewPlay()
	case screenReward:
		body = m.viewReward()
	case screenCertificate:
		body = m.viewCertificate()
	case screenConfirmReset:
		body = m.viewConfirmReset()
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.viewStatusBar(), body, m.viewCue())
}

func (m Model) viewStatusBar() string {
	return styleStatusBar.Render(fmt.Sprintf("Missão dos Números Mágicos  %s %d/5",
		iconCrystal, m.progress.TotalCrystals))
}

func (m Model) viewCue() string {
	if m.cue.Speech == "" {
		return ""
	}
	s := styleSpeech
	if m.screen == screenPlay && m.wrong {
		s = s.Foreground(colorDanger)
	}
	return s.Render("🔊 " + m.cue.Speech)
}

func (m Model) viewMenu() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Escolha uma fase"))
	b.WriteString("\n")
	for i, p := range m.progress.Ordered() {
		cursor := "  "
		if i == m.cursor {
			cursor = iconCursor + " "
		}
		icon := iconOpen
		switch {
		case p.Completed:
			icon = iconCrystal
		case !p.Unlocked:
			icon = iconLocked
		}
		line := fmt.Sprintf("%s%s Fase %d: %s (%d-%d)", cursor, icon, p.ID, p.Name, p.Range.Start, p.Range.End)
		if p.Unlocked {
			line = lipgloss.NewStyle().Foreground(phaseColor(p.Color)).Render(line)
		} else {
			line = styleLocked.Render(line)
		}
		b.WriteString(line + "\n")
	}
	hints := "enter jogar · r recomeçar · q sair"
	if m.progress.CompletedGame {
		hints = "enter jogar · c certificado · r recomeçar · q sair"
	}
	b.WriteString(styleHint.Render(hints))
	return b.String()
}

func (m Model) viewLearn() string {
	color := phaseColor(m.view.Color)
	var rows []string
	for i := 0; i < len(m.view.Numbers); i += optionsPerRow {
		var tiles []string
		for _, n := range m.view.Numbers[i:min(i+optionsPerRow, len(m.view.Numbers))] {
			tiles = append(tiles, tile(strconv.Itoa(n), color, false))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		styleTitle.Foreground(color).Render(fmt.Sprintf("Fase %d: %s", m.view.PhaseID, m.view.Name)),
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		styleHint.Render("enter praticar · esc menu"),
	)
}

func (m Model) viewPlay() string {
	b := m.view.Board
	if b == nil {
		return ""
	}
	color := phaseColor(m.view.Color)

	var header string
	switch b.Kind {
	case game.KindFind:
		header = fmt.Sprintf("Encontre o número %d  (%d/%d)", b.Target, b.Correct, b.Required)
	case game.KindSequence:
		header = "Coloque em ordem: " + joinInts(b.Placed, " ")
	case game.KindComplete:
		parts := make([]string, len(b.Line))
		for i, n := range b.Line {
			if n == nil {
				parts[i] = "?"
			} else {
				parts[i] = strconv.Itoa(*n)
			}
		}
		header = "Qual número está faltando?  " + strings.Join(parts, " ")
	}

	var rows []string
	for i := 0; i < len(b.Options); i += optionsPerRow {
		var tiles []string
		for j := i; j < min(i+optionsPerRow, len(b.Options)); j++ {
			tiles = append(tiles, tile(strconv.Itoa(b.Options[j]), color, j == m.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		styleTitle.Foreground(color).Render(header),
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		styleHint.Render("setas mover · enter escolher · esc menu"),
	)
}

func (m Model) viewReward() string {
	hint := "enter próxima fase · esc menu"
	if m.view.PhaseID >= len(m.progress.Phases) {
		hint = "enter ver certificado · esc menu"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		styleTitle.Render(fmt.Sprintf("%s Fase %d concluída!", iconCrystal, m.view.PhaseID)),
		styleRight.Render(fmt.Sprintf("Cristais: %d/5", m.progress.TotalCrystals)),
		styleHint.Render(hint),
	)
}

func (m Model) viewCertificate() string {
	if m.cert == nil {
		return ""
	}
	c := m.cert
	lines := []string{
		styleTitle.Render("🏆 " + c.Title),
		c.Honoree,
		"",
		c.Text,
		"",
		fmt.Sprintf("%s × %d", iconCrystal, c.Crystals),
		c.IssuedAt.Format("02/01/2006"),
	}
	if c.ID != "" {
		lines = append(lines, styleLocked.Render("nº "+c.ID))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		styleCertificate.Render(lipgloss.JoinVertical(lipgloss.Center, lines...)),
		styleHint.Render("enter menu"),
	)
}

func (m Model) viewConfirmReset() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		styleTitle.Render("Recomeçar?"),
		styleHint.Render("s sim · n não"),
	)
}

func joinInts(ns []int, sep string) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, sep)
}
