// internal/httpserver/routes_progress.go
//
// HTTP routes for the player's saved progress.
// Exposes three endpoints under /progress:
//   - GET  /progress          → current snapshot
//   - POST /progress/complete → record a completed phase
//   - POST /progress/reset    → start over (confirmation + optional parent PIN)
//
// Every change is also pushed to /ws subscribers by the progress store.

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// mountProgress registers all /progress routes.
func (s *Server) mountProgress(r chi.Router) {
	r.Route("/progress", func(r chi.Router) {
		r.Get("/", s.handleProgress)
		r.Post("/complete", s.handleComplete)
		r.Post("/reset", s.handleReset)
	})
}

// handleProgress returns the current snapshot.
func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.progress.Progress())
}

// completeReq is the request payload for /progress/complete.
type completeReq struct {
	PhaseID int `json:"phaseId"`
}

// handleComplete records a phase completion reported by the front end.
// Unknown ids leave the progress untouched and still answer 200.
func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	var req completeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	writeJSON(w, http.StatusOK, s.progress.CompletePhase(r.Context(), req.PhaseID))
}

// resetReq is the request payload for /progress/reset.
type resetReq struct {
	Confirm bool   `json:"confirm"` // the player answered "Tem certeza?" with yes
	PIN     string `json:"pin"`     // required only when a reset PIN is configured
}

// handleReset wipes the progress once confirmed (and, if configured, once the
// parent PIN matches).
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req resetReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if !req.Confirm {
		writeError(w, http.StatusBadRequest, "confirmation_required")
		return
	}
	if !s.checkResetPIN(req.PIN) {
		log.Warn().Msg("reset rejected: wrong pin")
		writeError(w, http.StatusForbidden, "invalid_pin")
		return
	}
	writeJSON(w, http.StatusOK, s.progress.ResetProgress(r.Context()))
}

// checkResetPIN reports whether pin unlocks a reset. With no PIN configured
// every request passes.
func (s *Server) checkResetPIN(pin string) bool {
	if s.pinHash == nil {
		return true
	}
	return bcrypt.CompareHashAndPassword(s.pinHash, []byte(pin)) == nil
}
