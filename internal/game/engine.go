// internal/game/engine.go
//
// Phase run: one pass of a player through a single phase.
// Responsibilities:
//   - Drive the step machine learn → find → sequence → complete → finished.
//   - Build each mini-game over the phase's numbers as the previous one ends.
//   - Invoke the completion callback exactly once, when the last mini-game is won.
//
// Notes:
//   - The run never decides whether the phase may be played; callers check
//     the unlock state before creating one.
//   - Wrong picks are retried forever; the run has no failure state.
//   - randomID() is a compact hex identifier for correlating server state.

package game

import (
	"crypto/rand"
	"encoding/hex"
	mrand "math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/robalobadob/magicnumbers/internal/catalog"
	"github.com/robalobadob/magicnumbers/internal/feedback"
)

// Run holds the state of one phase attempt.
type Run struct {
	mu        sync.Mutex
	id        string
	phase     catalog.Phase
	numbers   []int
	step      Step
	current   MiniGame
	rng       *mrand.Rand
	onFinish  func(phaseID int)
	reported  bool
	updatedAt time.Time
}

// Result is returned by Choose.
type Result struct {
	Outcome
	Step          Step          `json:"step"`
	PhaseFinished bool          `json:"phaseFinished"`
	Next          *feedback.Cue `json:"next,omitempty"` // prompt of the next game or round
}

// View is a render-ready snapshot of a run.
type View struct {
	ID      string       `json:"id"`
	PhaseID int          `json:"phaseId"`
	Name    string       `json:"name"`
	Color   string       `json:"color"`
	Numbers []int        `json:"numbers"`
	Step    Step         `json:"step"`
	Board   *Board       `json:"board,omitempty"`
	Cue     feedback.Cue `json:"cue"`
}

// NewRun starts a run of phase at the learn step. onFinish is called once,
// with the phase id, when the third mini-game is won. A nil rng uses a
// randomly seeded source.
func NewRun(phase catalog.Phase, rng *mrand.Rand, onFinish func(phaseID int)) *Run {
	if rng == nil {
		rng = mrand.New(mrand.NewPCG(mrand.Uint64(), mrand.Uint64()))
	}
	return &Run{
		id:        randomID(),
		phase:     phase,
		numbers:   phase.Numbers(),
		step:      StepLearn,
		rng:       rng,
		onFinish:  onFinish,
		updatedAt: time.Now(),
	}
}

func (r *Run) ID() string { return r.id }
func (r *Run) PhaseID() int { return r.phase.ID }

// Step reports where the run is.
func (r *Run) Step() Step {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.step
}

// UpdatedAt is the time of the last state change.
func (r *Run) UpdatedAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updatedAt
}

// Practice leaves the learn step and starts the find game.
func (r *Run) Practice() (View, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.step != StepLearn {
		return r.viewLocked(), ErrNotLearning
	}
	r.enterLocked(StepFind)
	v := r.viewLocked()
	v.Cue = feedback.PracticeStart()
	return v, nil
}

// Choose applies a pick to the current mini-game and advances the run when
// that game is won.
func (r *Run) Choose(n int) (Result, error) {
	r.mu.Lock()
	if r.current == nil {
		step := r.step
		r.mu.Unlock()
		return Result{Step: step}, ErrNotPlaying
	}

	out := r.current.Choose(n)
	r.updatedAt = time.Now()
	res := Result{Outcome: out}

	switch {
	case !out.Correct:
		// retry, nothing changes
	case !out.Done:
		if r.current.Kind() == KindFind {
			next := r.current.Prompt()
			res.Next = &next
		}
	default:
		r.advanceLocked()
		if r.current != nil {
			next := r.current.Prompt()
			res.Next = &next
		}
	}
	res.Step = r.step

	finish := r.step == StepFinished && !r.reported
	if finish {
		r.reported = true
		res.PhaseFinished = true
		reward := feedback.PhaseReward()
		res.Next = &reward
	}
	r.mu.Unlock()

	if finish && r.onFinish != nil {
		r.onFinish(r.phase.ID)
	}
	return res, nil
}

// View returns a snapshot of the run.
func (r *Run) View() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.viewLocked()
}

func (r *Run) advanceLocked() {
	switch r.step {
	case StepFind:
		r.enterLocked(StepSequence)
	case StepSequence:
		r.enterLocked(StepComplete)
	case StepComplete:
		r.enterLocked(StepFinished)
	}
}

func (r *Run) enterLocked(step Step) {
	r.step = step
	r.updatedAt = time.Now()
	switch step {
	case StepFind:
		r.current = NewFindGame(r.numbers, r.rng)
	case StepSequence:
		r.current = NewSequenceGame(r.numbers, r.rng)
	case StepComplete:
		r.current = NewCompleteGame(r.numbers, r.rng)
	default:
		r.current = nil
	}
}

func (r *Run) viewLocked() View {
	v := View{
		ID:      r.id,
		PhaseID: r.phase.ID,
		Name:    r.phase.Name,
		Color:   r.phase.Color,
		Numbers: slices.Clone(r.numbers),
		Step:    r.step,
	}
	switch {
	case r.step == StepLearn:
		v.Cue = feedback.LearnIntro(r.phase.Range.Start, r.phase.Range.End)
	case r.step == StepFinished:
		v.Cue = feedback.PhaseReward()
	case r.current != nil:
		b := r.current.Board()
		v.Board = &b
		v.Cue = r.current.Prompt()
	}
	return v
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
