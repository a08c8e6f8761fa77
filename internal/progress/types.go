// internal/progress/types.go
//
// Data model of the phase-progression state machine.
//   - Phase: static catalog data plus the player's unlock/completion state.
//   - GameProgress: the single aggregate persisted for the player.

package progress

import "github.com/robalobadob/magicnumbers/internal/catalog"

// StorageKey is the fixed key the progress record is persisted under.
const StorageKey = "magicNumbersProgress"

// CrystalsPerPhase is the reward granted once for completing a phase.
const CrystalsPerPhase = 1

// Phase is one of the five stages together with the player's state in it.
type Phase struct {
	ID        int           `json:"id"`
	Name      string        `json:"name"`
	Range     catalog.Range `json:"range"`
	Color     string        `json:"color"`
	Unlocked  bool          `json:"unlocked"`  // monotonic
	Completed bool          `json:"completed"` // monotonic
	Crystals  int           `json:"crystals"`  // 0 or CrystalsPerPhase
}

// GameProgress is the player's whole save.
//
// TotalCrystals and CompletedGame are derived; they are recomputed on every
// transition and after every load, never set independently.
type GameProgress struct {
	CurrentPhase  int           `json:"currentPhase"`
	Phases        map[int]Phase `json:"phases"` // keys 1..5, always all present
	TotalCrystals int           `json:"totalCrystals"`
	CompletedGame bool          `json:"completedGame"`
}

// Phase returns the phase with the given id and whether it exists.
func (p GameProgress) Phase(id int) (Phase, bool) {
	ph, ok := p.Phases[id]
	return ph, ok
}

// Unlocked reports whether the phase exists and is selectable.
func (p GameProgress) Unlocked(id int) bool {
	ph, ok := p.Phases[id]
	return ok && ph.Unlocked
}

// Ordered returns the phases sorted by id.
func (p GameProgress) Ordered() []Phase {
	out := make([]Phase, 0, len(p.Phases))
	for id := 1; id <= catalog.PhaseCount; id++ {
		if ph, ok := p.Phases[id]; ok {
			out = append(out, ph)
		}
	}
	return out
}

// Clone returns a deep copy; the Phases map is never shared between snapshots.
func (p GameProgress) Clone() GameProgress {
	cp := p
	cp.Phases = make(map[int]Phase, len(p.Phases))
	for id, ph := range p.Phases {
		cp.Phases[id] = ph
	}
	return cp
}
