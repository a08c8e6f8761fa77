package game

import (
	"errors"
	"testing"

	"github.com/robalobadob/magicnumbers/internal/catalog"
)

// solve returns the right pick for the run's current board.
func solve(t *testing.T, r *Run) int {
	t.Helper()
	v := r.View()
	if v.Board == nil {
		t.Fatalf("no board at step %s", v.Step)
	}
	switch v.Board.Kind {
	case KindFind:
		return v.Board.Target
	case KindSequence:
		return v.Numbers[len(v.Board.Placed)]
	case KindComplete:
		for i, p := range v.Board.Line {
			if p == nil {
				return v.Numbers[i]
			}
		}
	}
	t.Fatalf("unsolvable board %+v", v.Board)
	return 0
}

func phase(t *testing.T, id int) catalog.Phase {
	t.Helper()
	p, err := catalog.MustDefault().Lookup(id)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestRun_FullPhase(t *testing.T) {
	var finished []int
	r := NewRun(phase(t, 2), testRNG(), func(id int) { finished = append(finished, id) })

	v := r.View()
	if v.Step != StepLearn || v.Board != nil {
		t.Fatalf("new run view = %+v", v)
	}
	if v.Cue.Speech != "Vamos aprender os números de 11 até 20!" {
		t.Errorf("learn cue = %q", v.Cue.Speech)
	}
	if len(v.Numbers) != 10 || v.Numbers[0] != 11 {
		t.Errorf("numbers = %v", v.Numbers)
	}

	if _, err := r.Choose(11); !errors.Is(err, ErrNotPlaying) {
		t.Errorf("Choose during learn error = %v, want ErrNotPlaying", err)
	}

	pv, err := r.Practice()
	if err != nil {
		t.Fatalf("Practice() error: %v", err)
	}
	if pv.Step != StepFind || pv.Board == nil || pv.Board.Kind != KindFind {
		t.Fatalf("after practice view = %+v", pv)
	}
	if _, err := r.Practice(); !errors.Is(err, ErrNotLearning) {
		t.Errorf("second Practice() error = %v, want ErrNotLearning", err)
	}

	steps := []Step{}
	var last Result
	for i := 0; i < 100 && r.Step() != StepFinished; i++ {
		res, err := r.Choose(solve(t, r))
		if err != nil {
			t.Fatalf("Choose error: %v", err)
		}
		if !res.Correct {
			t.Fatalf("solved pick rejected at step %s", r.Step())
		}
		if len(steps) == 0 || steps[len(steps)-1] != res.Step {
			steps = append(steps, res.Step)
		}
		last = res
	}

	want := []Step{StepFind, StepSequence, StepComplete, StepFinished}
	if len(steps) != len(want) {
		t.Fatalf("steps = %v, want %v", steps, want)
	}
	for i := range want {
		if steps[i] != want[i] {
			t.Errorf("steps[%d] = %s, want %s", i, steps[i], want[i])
		}
	}
	if !last.PhaseFinished {
		t.Error("last result should report PhaseFinished")
	}
	if len(finished) != 1 || finished[0] != 2 {
		t.Errorf("onFinish calls = %v, want [2]", finished)
	}

	if _, err := r.Choose(11); !errors.Is(err, ErrNotPlaying) {
		t.Errorf("Choose after finish error = %v, want ErrNotPlaying", err)
	}
	if len(finished) != 1 {
		t.Errorf("onFinish called again: %v", finished)
	}
}

func TestRun_WrongPicksNeverFail(t *testing.T) {
	calls := 0
	r := NewRun(phase(t, 1), testRNG(), func(int) { calls++ })
	if _, err := r.Practice(); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 20; i++ {
		target := solve(t, r)
		wrong := 1
		if target == 1 {
			wrong = 2
		}
		res, err := r.Choose(wrong)
		if err != nil {
			t.Fatalf("wrong pick returned error: %v", err)
		}
		if res.Correct || res.Step != StepFind {
			t.Fatalf("wrong pick changed the run: %+v", res)
		}
	}
	if calls != 0 {
		t.Errorf("onFinish called %d times without winning", calls)
	}
}

func TestRun_FindRoundPromptsNextTarget(t *testing.T) {
	r := NewRun(phase(t, 4), testRNG(), nil)
	_, _ = r.Practice()

	res, err := r.Choose(solve(t, r))
	if err != nil {
		t.Fatal(err)
	}
	if res.Next == nil {
		t.Fatal("expected a prompt for the next find round")
	}
	if want := "Encontre o número"; len(res.Next.Speech) < len(want) || res.Next.Speech[:len(want)] != want {
		t.Errorf("next prompt = %q", res.Next.Speech)
	}
}

func TestRun_IDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewRun(phase(t, 1), nil, nil).ID()
		if len(id) != 16 {
			t.Fatalf("id %q has length %d, want 16", id, len(id))
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}
