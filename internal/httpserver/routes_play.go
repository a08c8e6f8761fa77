// internal/httpserver/routes_play.go
//
// HTTP routes for playing a phase.
//   - POST /phases/{id}/runs   → start a run of an unlocked phase
//   - GET  /runs/{id}          → current board of a run
//   - POST /runs/{id}/practice → leave the learn screen
//   - POST /runs/{id}/choose   → answer the current mini-game
//
// Runs live in the in-memory run store and are pruned when idle. Winning the
// third mini-game completes the phase in the progress store exactly once.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/magicnumbers/internal/game"
	"github.com/robalobadob/magicnumbers/internal/progress"
	"github.com/robalobadob/magicnumbers/internal/store"
)

// mountPlay registers the phase and run routes.
func (s *Server) mountPlay(r chi.Router) {
	r.Post("/phases/{id}/runs", s.handleStartRun)
	r.Route("/runs/{id}", func(r chi.Router) {
		r.Get("/", s.handleGetRun)
		r.Post("/practice", s.handlePractice)
		r.Post("/choose", s.handleChoose)
	})
}

// -----------------------------------------------------------------------------
// /phases/{id}/runs

// handleStartRun creates a run for an unlocked phase.
// - Unknown phase → 404 with a "menu" fallback so the client returns home.
// - Locked phase  → 409.
func (s *Server) handleStartRun(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || !s.progress.Catalog().Has(id) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown_phase", "fallback": "menu"})
		return
	}
	if !s.progress.Progress().Unlocked(id) {
		writeError(w, http.StatusConflict, "phase_locked")
		return
	}
	phase, _ := s.progress.Catalog().Lookup(id)

	run := game.NewRun(phase, nil, s.finishPhase)
	if err := s.runs.Save(r.Context(), run); err != nil {
		log.Error().Err(err).Msg("save run")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	log.Debug().Str("run", run.ID()).Int("phase", id).Msg("run started")
	writeJSON(w, http.StatusCreated, run.View())
}

// finishPhase is every run's completion callback. A run started before a
// reset may finish on a phase that is locked again; that result is dropped.
func (s *Server) finishPhase(phaseID int) {
	if !s.progress.Progress().Unlocked(phaseID) {
		log.Warn().Int("phase", phaseID).Msg("finished run ignored: phase locked")
		return
	}
	s.progress.CompletePhase(context.Background(), phaseID)
}

// -----------------------------------------------------------------------------
// /runs/{id}

// lookupRun fetches the run named in the URL or writes a 404.
func (s *Server) lookupRun(w http.ResponseWriter, r *http.Request) (*game.Run, bool) {
	run, err := s.runs.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown_run", "fallback": "menu"})
		return nil, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return nil, false
	}
	return run, true
}

// handleGetRun returns the run's current view.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, ok := s.lookupRun(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, run.View())
}

// handlePractice moves a run from the learn screen to the first mini-game.
func (s *Server) handlePractice(w http.ResponseWriter, r *http.Request) {
	run, ok := s.lookupRun(w, r)
	if !ok {
		return
	}
	v, err := run.Practice()
	if errors.Is(err, game.ErrNotLearning) {
		writeError(w, http.StatusConflict, "not_learning")
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// chooseReq is the request payload for /runs/{id}/choose.
type chooseReq struct {
	Number int `json:"number"`
}

// chooseRes is the response payload for /runs/{id}/choose.
type chooseRes struct {
	game.Result
	Run                  game.View              `json:"run"`
	Progress             *progress.GameProgress `json:"progress,omitempty"`  // set when the phase was finished
	NextPhase            int                    `json:"nextPhase,omitempty"` // auto-advance target
	CertificateAvailable bool                   `json:"certificateAvailable"`
}

// handleChoose applies a pick. Wrong picks are 200 with correct=false; only
// picking outside a mini-game is an error.
func (s *Server) handleChoose(w http.ResponseWriter, r *http.Request) {
	run, ok := s.lookupRun(w, r)
	if !ok {
		return
	}
	var req chooseReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	res, err := run.Choose(req.Number)
	if errors.Is(err, game.ErrNotPlaying) {
		writeError(w, http.StatusConflict, "not_playing")
		return
	}

	out := chooseRes{Result: res, Run: run.View()}
	if res.PhaseFinished {
		if err := s.runs.Delete(r.Context(), run.ID()); err != nil {
			log.Warn().Err(err).Str("run", run.ID()).Msg("delete finished run")
		}
		p := s.progress.Progress()
		out.Progress = &p
		out.CertificateAvailable = p.CompletedGame
		if run.PhaseID() < s.progress.Catalog().Last() {
			out.NextPhase = run.PhaseID() + 1
		}
	}
	writeJSON(w, http.StatusOK, out)
}
