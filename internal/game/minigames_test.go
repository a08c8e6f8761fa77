package game

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/robalobadob/magicnumbers/internal/feedback"
)

func testRNG() *rand.Rand { return rand.New(rand.NewPCG(1, 2)) }

func phaseNumbers(start int) []int {
	out := make([]int, 10)
	for i := range out {
		out[i] = start + i
	}
	return out
}

// wrongPick returns a number from options that is not want.
func wrongPick(t *testing.T, options []int, want int) int {
	t.Helper()
	for _, n := range options {
		if n != want {
			return n
		}
	}
	t.Fatal("no wrong option available")
	return 0
}

func TestFindGame_ThreeHitsWin(t *testing.T) {
	g := NewFindGame(phaseNumbers(11), testRNG())

	for round := 1; round <= FindRounds; round++ {
		b := g.Board()
		if !slices.Contains(b.Options, b.Target) {
			t.Fatalf("round %d: target %d not among options %v", round, b.Target, b.Options)
		}
		if len(b.Options) != 10 {
			t.Fatalf("round %d: %d options, want 10", round, len(b.Options))
		}

		miss := g.Choose(wrongPick(t, b.Options, b.Target))
		if miss.Correct || miss.Done {
			t.Errorf("round %d: wrong pick reported %+v", round, miss)
		}
		if miss.Cue != feedback.TryAgain() {
			t.Errorf("round %d: wrong pick cue = %+v", round, miss.Cue)
		}

		hit := g.Choose(b.Target)
		if !hit.Correct {
			t.Fatalf("round %d: right pick not accepted", round)
		}
		if hit.Done != (round == FindRounds) {
			t.Errorf("round %d: Done = %v", round, hit.Done)
		}
	}
	if !g.Done() {
		t.Error("game should be done after three hits")
	}
	if after := g.Choose(g.Board().Target); after.Correct {
		t.Error("picks after the game is done must be ignored")
	}
}

func TestSequenceGame_AscendingOrder(t *testing.T) {
	nums := phaseNumbers(21)
	g := NewSequenceGame(nums, testRNG())

	if b := g.Board(); len(b.Options) != 10 || b.Required != 10 {
		t.Fatalf("initial board = %+v", b)
	}

	if out := g.Choose(22); out.Correct {
		t.Fatal("22 accepted before 21")
	}
	for i, n := range nums {
		out := g.Choose(n)
		if !out.Correct {
			t.Fatalf("pick %d (%d) rejected", i, n)
		}
		if out.Done != (i == len(nums)-1) {
			t.Errorf("pick %d: Done = %v", i, out.Done)
		}
		b := g.Board()
		if slices.Contains(b.Options, n) {
			t.Errorf("placed number %d still offered", n)
		}
		if len(b.Placed) != i+1 {
			t.Errorf("placed = %v after %d picks", b.Placed, i+1)
		}
	}
	if out := g.Choose(21); out.Correct {
		t.Error("picks after completion must be ignored")
	}
}

func TestCompleteGame_FillTheGap(t *testing.T) {
	nums := phaseNumbers(31)
	g := NewCompleteGame(nums, testRNG())
	b := g.Board()

	gap := -1
	for i, p := range b.Line {
		if p == nil {
			if gap >= 0 {
				t.Fatal("more than one gap in the line")
			}
			gap = i
		} else if *p != nums[i] {
			t.Errorf("line[%d] = %d, want %d", i, *p, nums[i])
		}
	}
	if gap < 0 {
		t.Fatal("no gap in the line")
	}
	answer := nums[gap]
	if g.Answer() != answer {
		t.Fatalf("Answer() = %d, want %d", g.Answer(), answer)
	}
	if len(b.Options) != 3 || !slices.Contains(b.Options, answer) {
		t.Fatalf("options = %v, want three including %d", b.Options, answer)
	}

	if out := g.Choose(wrongPick(t, b.Options, answer)); out.Correct || out.Done {
		t.Errorf("wrong pick = %+v", out)
	}
	out := g.Choose(answer)
	if !out.Correct || !out.Done {
		t.Errorf("right pick = %+v", out)
	}
	for i, p := range g.Board().Line {
		if p == nil {
			t.Errorf("gap at %d still open after the right pick", i)
		}
	}
}

func TestCompleteGame_DistractorsArePositive(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		g := NewCompleteGame(phaseNumbers(1), rand.New(rand.NewPCG(seed, seed)))
		opts := g.Board().Options
		seen := map[int]bool{}
		for _, n := range opts {
			if n < 1 {
				t.Errorf("seed %d: option %d below 1 (%v)", seed, n, opts)
			}
			if seen[n] {
				t.Errorf("seed %d: duplicate option %d", seed, n)
			}
			seen[n] = true
		}
	}
}
