// internal/game/minigames.go
//
// The three mini-games. Each is driven purely by picks and an injected random
// source, so they can be played by the HTTP API, the terminal player or tests.

package game

import (
	"math/rand/v2"
	"slices"

	"github.com/robalobadob/magicnumbers/internal/feedback"
)

// FindRounds is how many correct picks the find game needs.
const FindRounds = 3

// ---------------------------------------------------------------- find -----

// FindGame asks for a random number from the phase; three hits win.
type FindGame struct {
	numbers []int
	options []int
	target  int
	correct int
	rng     *rand.Rand
}

// NewFindGame starts a find game over numbers.
func NewFindGame(numbers []int, rng *rand.Rand) *FindGame {
	g := &FindGame{numbers: slices.Clone(numbers), rng: rng}
	g.newRound()
	return g
}

func (g *FindGame) newRound() {
	g.options = shuffled(g.numbers, g.rng)
	g.target = g.options[g.rng.IntN(len(g.options))]
}

func (g *FindGame) Kind() Kind { return KindFind }
func (g *FindGame) Prompt() feedback.Cue { return feedback.FindPrompt(g.target) }
func (g *FindGame) Done() bool { return g.correct >= FindRounds }

func (g *FindGame) Choose(n int) Outcome {
	if g.Done() {
		return Outcome{Done: true}
	}
	if n != g.target {
		return Outcome{Cue: feedback.TryAgain()}
	}
	g.correct++
	if g.Done() {
		return Outcome{Correct: true, Done: true, Cue: feedback.FindCorrect()}
	}
	g.newRound()
	return Outcome{Correct: true, Cue: feedback.FindCorrect()}
}

func (g *FindGame) Board() Board {
	return Board{
		Kind:     KindFind,
		Target:   g.target,
		Options:  slices.Clone(g.options),
		Correct:  g.correct,
		Required: FindRounds,
	}
}

// ------------------------------------------------------------ sequence -----

// SequenceGame wants every number picked in ascending order.
type SequenceGame struct {
	numbers   []int
	placed    []int
	remaining []int
}

// NewSequenceGame starts a sequence game over numbers (ascending).
func NewSequenceGame(numbers []int, rng *rand.Rand) *SequenceGame {
	return &SequenceGame{
		numbers:   slices.Clone(numbers),
		remaining: shuffled(numbers, rng),
	}
}

func (g *SequenceGame) Kind() Kind { return KindSequence }
func (g *SequenceGame) Prompt() feedback.Cue { return feedback.SequencePrompt() }
func (g *SequenceGame) Done() bool { return len(g.placed) == len(g.numbers) }

func (g *SequenceGame) Choose(n int) Outcome {
	if g.Done() {
		return Outcome{Done: true}
	}
	if n != g.numbers[len(g.placed)] {
		return Outcome{Cue: feedback.SequenceWrong()}
	}
	g.placed = append(g.placed, n)
	if i := slices.Index(g.remaining, n); i >= 0 {
		g.remaining = slices.Delete(g.remaining, i, i+1)
	}
	if g.Done() {
		return Outcome{Correct: true, Done: true, Cue: feedback.SequenceDone()}
	}
	return Outcome{Correct: true, Cue: feedback.SequenceStep()}
}

func (g *SequenceGame) Board() Board {
	return Board{
		Kind:     KindSequence,
		Options:  slices.Clone(g.remaining),
		Placed:   slices.Clone(g.placed),
		Correct:  len(g.placed),
		Required: len(g.numbers),
	}
}

// ------------------------------------------------------------ complete -----

// CompleteGame hides one number of the line and offers three candidates.
type CompleteGame struct {
	numbers []int
	missing int // index into numbers
	options []int
	done    bool
}

// distractorGap is how far the wrong candidates sit from the right one.
const distractorGap = 10

// NewCompleteGame starts a fill-the-gap game over numbers.
func NewCompleteGame(numbers []int, rng *rand.Rand) *CompleteGame {
	g := &CompleteGame{numbers: slices.Clone(numbers)}
	g.missing = rng.IntN(len(numbers))
	correct := numbers[g.missing]
	below := correct - distractorGap
	if below < 1 {
		below = correct + 2*distractorGap
	}
	g.options = shuffled([]int{correct, correct + distractorGap, below}, rng)
	return g
}

func (g *CompleteGame) Kind() Kind { return KindComplete }
func (g *CompleteGame) Prompt() feedback.Cue { return feedback.CompletePrompt() }
func (g *CompleteGame) Done() bool { return g.done }

// Answer is the number hidden in the line.
func (g *CompleteGame) Answer() int { return g.numbers[g.missing] }

func (g *CompleteGame) Choose(n int) Outcome {
	if g.done {
		return Outcome{Done: true}
	}
	if n != g.Answer() {
		return Outcome{Cue: feedback.TryAgain()}
	}
	g.done = true
	return Outcome{Correct: true, Done: true, Cue: feedback.CompleteDone()}
}

func (g *CompleteGame) Board() Board {
	line := make([]*int, len(g.numbers))
	for i := range g.numbers {
		if i == g.missing && !g.done {
			continue
		}
		n := g.numbers[i]
		line[i] = &n
	}
	correct := 0
	if g.done {
		correct = 1
	}
	return Board{
		Kind:     KindComplete,
		Options:  slices.Clone(g.options),
		Line:     line,
		Correct:  correct,
		Required: 1,
	}
}

// shuffled returns a shuffled copy of in.
func shuffled(in []int, rng *rand.Rand) []int {
	out := slices.Clone(in)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
