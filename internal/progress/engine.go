// internal/progress/engine.go
//
// Pure state transitions. Nothing here performs I/O; the Store wraps these
// with persistence and change notification.

package progress

import "github.com/robalobadob/magicnumbers/internal/catalog"

const lastPhase = catalog.PhaseCount

// Initial returns the hard-coded starting state: phase 1 unlocked, every
// other phase locked, nothing completed, no crystals.
func Initial(c *catalog.Catalog) GameProgress {
	p := GameProgress{
		CurrentPhase: 1,
		Phases:       make(map[int]Phase, catalog.PhaseCount),
	}
	for _, def := range c.Phases() {
		p.Phases[def.ID] = Phase{
			ID:       def.ID,
			Name:     def.Name,
			Range:    def.Range,
			Color:    def.Color,
			Unlocked: def.ID == 1,
		}
	}
	return p
}

// Complete marks phaseID completed and returns the new state.
//
// Completing is idempotent: the phase's crystals are set, not added, so a
// second call awards nothing. The next phase is unlocked, currentPhase moves
// to the next phase (capped at the last one) and the derived fields are
// recomputed from scratch. An id that is not in p.Phases leaves the state
// unchanged.
func Complete(p GameProgress, phaseID int) GameProgress {
	next := p.Clone()
	ph, ok := next.Phases[phaseID]
	if !ok {
		return next
	}
	ph.Completed = true
	ph.Crystals = CrystalsPerPhase
	next.Phases[phaseID] = ph

	if phaseID < lastPhase {
		if following, ok := next.Phases[phaseID+1]; ok {
			following.Unlocked = true
			next.Phases[phaseID+1] = following
		}
	}

	next.CurrentPhase = min(phaseID+1, lastPhase)
	next.recompute()
	return next
}

// recompute derives TotalCrystals and CompletedGame from the phases.
func (p *GameProgress) recompute() {
	total := 0
	for _, ph := range p.Phases {
		total += ph.Crystals
	}
	p.TotalCrystals = total
	p.CompletedGame = p.Phases[lastPhase].Completed
}
