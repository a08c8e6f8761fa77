// internal/feedback/feedback.go
//
// Speech and sound cues for the player.
// The server never plays anything itself: cues travel with API responses and
// the front end speaks/plays them fire-and-forget. Everything here is static.

package feedback

import "fmt"

// Sound names a short synthesized tone.
type Sound string

const (
	SoundNone     Sound = ""
	SoundPop      Sound = "pop"      // wrong answer
	SoundSuccess  Sound = "success"  // right answer
	SoundComplete Sound = "complete" // mini-game or phase finished
)

// Cue is one piece of feedback: a phrase to speak and/or a tone to play.
type Cue struct {
	Speech string `json:"speech,omitempty"`
	Sound  Sound  `json:"sound,omitempty"`
}

// Voice holds the speech synthesis settings used for every phrase.
type Voice struct {
	Lang  string  `json:"lang"`
	Rate  float64 `json:"rate"`
	Pitch float64 `json:"pitch"`
}

// DefaultVoice is slower and higher than normal speech, for small children.
var DefaultVoice = Voice{Lang: "pt-BR", Rate: 0.8, Pitch: 1.2}

// Note is a single oscillator segment of a tone.
type Note struct {
	StartHz  float64 `json:"startHz"`
	EndHz    float64 `json:"endHz"`    // equal to StartHz for a flat note
	OffsetMs int     `json:"offsetMs"` // delay from the start of the tone
	LengthMs int     `json:"lengthMs"`
	Gain     float64 `json:"gain"`
}

// Tones describes how each Sound is synthesized.
var Tones = map[Sound][]Note{
	SoundPop: {
		{StartHz: 800, EndHz: 800, LengthMs: 100, Gain: 0.3},
	},
	SoundSuccess: {
		{StartHz: 600, EndHz: 1200, LengthMs: 300, Gain: 0.3},
	},
	SoundComplete: {
		{StartHz: 523, EndHz: 523, OffsetMs: 0, LengthMs: 300, Gain: 0.2},
		{StartHz: 659, EndHz: 659, OffsetMs: 200, LengthMs: 300, Gain: 0.2},
		{StartHz: 784, EndHz: 784, OffsetMs: 400, LengthMs: 300, Gain: 0.2},
	},
}

func LearnIntro(start, end int) Cue {
	return Cue{Speech: fmt.Sprintf("Vamos aprender os números de %d até %d!", start, end)}
}

func PracticeStart() Cue { return Cue{Speech: "Agora vamos praticar!"} }

func FindPrompt(target int) Cue {
	return Cue{Speech: fmt.Sprintf("Encontre o número %d", target)}
}

func FindCorrect() Cue { return Cue{Speech: "Muito bem!", Sound: SoundSuccess} }

func TryAgain() Cue { return Cue{Speech: "Tente novamente!", Sound: SoundPop} }

func SequencePrompt() Cue { return Cue{Speech: "Coloque os números na ordem certa!"} }

func SequenceStep() Cue { return Cue{Sound: SoundSuccess} }

func SequenceWrong() Cue { return Cue{Speech: "Ops! Tente outro número!", Sound: SoundPop} }

func SequenceDone() Cue { return Cue{Speech: "Perfeito! Você acertou tudo!", Sound: SoundComplete} }

func CompletePrompt() Cue { return Cue{Speech: "Qual número está faltando?"} }

func CompleteDone() Cue {
	return Cue{Speech: "Excelente! Você completou a sequência!", Sound: SoundComplete}
}

// PhaseReward is played once the third mini-game of a phase is won.
func PhaseReward() Cue {
	return Cue{Speech: "Parabéns! Você ganhou um cristal mágico!", Sound: SoundComplete}
}
