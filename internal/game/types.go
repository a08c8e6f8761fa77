// internal/game/types.go
//
// Core type definitions for the phase run and its mini-games.
// Defines:
//   - Kind: which mini-game is being played.
//   - Step: where a phase run is (learn → find → sequence → complete → finished).
//   - Board: what a front end needs to draw the current mini-game.
//   - Outcome: the result of one pick.

package game

import (
	"errors"

	"github.com/robalobadob/magicnumbers/internal/feedback"
)

// Kind identifies a mini-game.
type Kind string

const (
	KindFind     Kind = "find"     // find the spoken number three times
	KindSequence Kind = "sequence" // pick every number in ascending order
	KindComplete Kind = "complete" // fill the single gap in the line
)

// Step is the position of a run inside its phase.
type Step string

const (
	StepLearn    Step = "learn"
	StepFind     Step = "find"
	StepSequence Step = "sequence"
	StepComplete Step = "complete"
	StepFinished Step = "finished"
)

var (
	// ErrNotPlaying is returned when a pick arrives outside a mini-game step.
	ErrNotPlaying = errors.New("game: no mini-game in progress")
	// ErrNotLearning is returned when practice is requested twice.
	ErrNotLearning = errors.New("game: practice already started")
)

// Board is a render-ready view of a mini-game.
type Board struct {
	Kind     Kind   `json:"kind"`
	Target   int    `json:"target,omitempty"` // find: the number to look for
	Options  []int  `json:"options"`          // numbers the player may pick
	Placed   []int  `json:"placed,omitempty"` // sequence: numbers already in order
	Line     []*int `json:"line,omitempty"`   // complete: the line, nil at the gap
	Correct  int    `json:"correct"`          // correct picks so far
	Required int    `json:"required"`         // correct picks needed to finish
}

// Outcome is the result of a single pick.
// Wrong picks are never errors; they come back with Correct=false and a
// "try again" cue, and the player simply picks again.
type Outcome struct {
	Correct bool         `json:"correct"`
	Done    bool         `json:"done"`
	Cue     feedback.Cue `json:"cue"`
}

// MiniGame is one interactive exercise over a phase's numbers.
type MiniGame interface {
	Kind() Kind
	// Prompt is the cue to give when the game (or a new round) starts.
	Prompt() feedback.Cue
	// Choose applies a pick. After Done reports true, further picks are ignored.
	Choose(n int) Outcome
	Done() bool
	Board() Board
}
