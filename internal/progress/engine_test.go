package progress

import (
	"reflect"
	"testing"

	"github.com/robalobadob/magicnumbers/internal/catalog"
)

func initial(t *testing.T) GameProgress {
	t.Helper()
	return Initial(catalog.MustDefault())
}

// checkInvariants verifies the derived-field and unlock invariants that must
// hold at every observation point.
func checkInvariants(t *testing.T, p GameProgress) {
	t.Helper()
	if len(p.Phases) != catalog.PhaseCount {
		t.Fatalf("len(Phases) = %d, want %d", len(p.Phases), catalog.PhaseCount)
	}
	sum := 0
	for id := 1; id <= catalog.PhaseCount; id++ {
		ph, ok := p.Phases[id]
		if !ok {
			t.Fatalf("phase %d missing", id)
		}
		if ph.ID != id {
			t.Errorf("Phases[%d].ID = %d", id, ph.ID)
		}
		sum += ph.Crystals
	}
	if p.TotalCrystals != sum {
		t.Errorf("TotalCrystals = %d, want Σ crystals = %d", p.TotalCrystals, sum)
	}
	if p.CompletedGame != p.Phases[5].Completed {
		t.Errorf("CompletedGame = %v, want Phases[5].Completed = %v", p.CompletedGame, p.Phases[5].Completed)
	}
	if !p.Phases[1].Unlocked {
		t.Error("phase 1 must always be unlocked")
	}
}

func TestInitial(t *testing.T) {
	p := initial(t)
	checkInvariants(t, p)

	if p.CurrentPhase != 1 {
		t.Errorf("CurrentPhase = %d, want 1", p.CurrentPhase)
	}
	if p.TotalCrystals != 0 || p.CompletedGame {
		t.Errorf("TotalCrystals = %d, CompletedGame = %v; want 0, false", p.TotalCrystals, p.CompletedGame)
	}
	for id := 1; id <= 5; id++ {
		ph := p.Phases[id]
		if ph.Unlocked != (id == 1) {
			t.Errorf("phase %d Unlocked = %v", id, ph.Unlocked)
		}
		if ph.Completed || ph.Crystals != 0 {
			t.Errorf("phase %d Completed = %v, Crystals = %d", id, ph.Completed, ph.Crystals)
		}
	}
	if got := p.Phases[3]; got.Name != "Explorador Mágico" || got.Range.Start != 21 || got.Range.End != 30 {
		t.Errorf("phase 3 static data = %+v", got)
	}
}

func TestComplete_FirstPhase(t *testing.T) {
	p := Complete(initial(t), 1)
	checkInvariants(t, p)

	if p.CurrentPhase != 2 {
		t.Errorf("CurrentPhase = %d, want 2", p.CurrentPhase)
	}
	if !p.Phases[2].Unlocked {
		t.Error("phase 2 should be unlocked")
	}
	if p.Phases[3].Unlocked {
		t.Error("phase 3 should still be locked")
	}
	if p.TotalCrystals != 1 {
		t.Errorf("TotalCrystals = %d, want 1", p.TotalCrystals)
	}
	if p.CompletedGame {
		t.Error("CompletedGame should be false")
	}
}

func TestComplete_AllPhasesInOrder(t *testing.T) {
	p := initial(t)
	for id := 1; id <= 4; id++ {
		p = Complete(p, id)
		checkInvariants(t, p)
	}
	p = Complete(p, 5)
	checkInvariants(t, p)

	if !p.CompletedGame {
		t.Error("CompletedGame should be true")
	}
	if p.TotalCrystals != 5 {
		t.Errorf("TotalCrystals = %d, want 5", p.TotalCrystals)
	}
	if p.CurrentPhase != 5 {
		t.Errorf("CurrentPhase = %d, want 5 (capped)", p.CurrentPhase)
	}
}

func TestComplete_OutOfOrder(t *testing.T) {
	p := Complete(initial(t), 3)
	checkInvariants(t, p)

	if !p.Phases[3].Completed {
		t.Error("phase 3 should be completed")
	}
	if !p.Phases[4].Unlocked {
		t.Error("phase 4 should be unlocked")
	}
	if p.Phases[2].Unlocked {
		t.Error("phase 2 must stay locked")
	}
	if p.TotalCrystals != 1 {
		t.Errorf("TotalCrystals = %d, want 1", p.TotalCrystals)
	}
	if p.CurrentPhase != 4 {
		t.Errorf("CurrentPhase = %d, want 4", p.CurrentPhase)
	}
}

func TestComplete_Idempotent(t *testing.T) {
	once := Complete(initial(t), 2)
	twice := Complete(once, 2)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("second completion changed state:\nonce  = %+v\ntwice = %+v", once, twice)
	}
	if twice.Phases[2].Crystals != 1 {
		t.Errorf("Crystals = %d, want 1", twice.Phases[2].Crystals)
	}
}

func TestComplete_UnknownPhaseIsNoop(t *testing.T) {
	start := Complete(initial(t), 1)
	for _, id := range []int{0, 6, -3, 100} {
		got := Complete(start, id)
		if !reflect.DeepEqual(got, start) {
			t.Errorf("Complete(%d) changed state", id)
		}
	}
}

func TestComplete_DoesNotMutateInput(t *testing.T) {
	start := initial(t)
	_ = Complete(start, 1)
	if start.Phases[1].Completed || start.Phases[2].Unlocked || start.TotalCrystals != 0 {
		t.Error("Complete mutated its input snapshot")
	}
}

func TestComplete_UnlocksAreMonotonic(t *testing.T) {
	orders := [][]int{
		{1, 2, 3, 4, 5},
		{5, 4, 3, 2, 1},
		{2, 2, 4, 1, 3, 5, 1},
		{3, 1, 5},
	}
	for _, order := range orders {
		p := initial(t)
		unlocked := map[int]bool{1: true}
		completed := map[int]bool{}
		for _, id := range order {
			p = Complete(p, id)
			checkInvariants(t, p)
			if id < 5 {
				unlocked[id+1] = true
			}
			completed[id] = true
			for u := range unlocked {
				if !p.Phases[u].Unlocked {
					t.Errorf("order %v: phase %d relocked after completing %d", order, u, id)
				}
			}
			for c := range completed {
				if !p.Phases[c].Completed {
					t.Errorf("order %v: phase %d lost completion after completing %d", order, c, id)
				}
			}
		}
		if p.TotalCrystals != len(completed) {
			t.Errorf("order %v: TotalCrystals = %d, want %d", order, p.TotalCrystals, len(completed))
		}
	}
}

func TestComplete_CompletedGameFollowsLastPhase(t *testing.T) {
	p := Complete(initial(t), 5)
	if !p.CompletedGame {
		t.Error("completing phase 5 first should set CompletedGame")
	}
	p = Complete(p, 2)
	if !p.CompletedGame {
		t.Error("CompletedGame must stay true after completing another phase")
	}
}
