// internal/httpserver/server.go
//
// HTTP server wiring for the Magic Numbers backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/catalog", "/feedback/sounds".
//   - Progress endpoints: mounted under /progress (routes_progress.go).
//   - Phase play endpoints: /phases/{id}/runs and /runs/* (routes_play.go).
//   - Certificate endpoints: /certificate, /certificate/verify.
//   - Live progress push over WebSocket at /ws (ws.go).
//
// Notes:
//   - CORS is origin-aware for the single configured browser origin.
//   - /ws is mounted outside the Timeout middleware; the upgraded connection
//     outlives the handler.
//   - The server owns no progress state; it delegates to *progress.Store.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/robalobadob/magicnumbers/internal/certificate"
	"github.com/robalobadob/magicnumbers/internal/feedback"
	"github.com/robalobadob/magicnumbers/internal/progress"
	"github.com/robalobadob/magicnumbers/internal/store"
)

// Options carries the configuration the server needs.
type Options struct {
	ClientOrigin string        // browser origin allowed by CORS and /ws
	ResetPIN     string        // optional parent PIN guarding /progress/reset
	RunTTL       time.Duration // idle runs older than this are pruned
}

// Server bundles router, progress store, run registry and certificate signer.
type Server struct {
	r        *chi.Mux
	progress *progress.Store
	runs     store.Store
	signer   *certificate.Signer
	hub      *hub
	origin   string
	pinHash  []byte // bcrypt hash of the reset PIN; nil when no PIN is set
	runTTL   time.Duration
	now      func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(ps *progress.Store, runs store.Store, signer *certificate.Signer, opts Options) (*Server, error) {
	s := &Server{
		r:        chi.NewRouter(),
		progress: ps,
		runs:     runs,
		signer:   signer,
		origin:   opts.ClientOrigin,
		runTTL:   opts.RunTTL,
		now:      time.Now,
	}
	if s.origin == "" {
		s.origin = "http://localhost:5173"
	}
	if s.runTTL <= 0 {
		s.runTTL = 2 * time.Hour
	}
	if opts.ResetPIN != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(opts.ResetPIN), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		s.pinHash = h
	}
	s.hub = newHub(ps)

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)   // one zerolog line per request
	s.r.Use(chimw.Recoverer) // recover from panics
	s.r.Use(s.cors)          // single-origin CORS

	s.r.Get("/ws", s.handleWS)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
		r.Use(jsonContentType)                 // default JSON responses

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"service":"magicnumbers","endpoints":["/health","/catalog","/progress","POST /phases/{id}/runs","/runs/{id}","/certificate","/ws"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"ok":true}`))
		})

		// Static data
		r.Get("/catalog", s.handleCatalog)
		r.Get("/feedback/sounds", s.handleSounds)

		s.mountProgress(r)
		s.mountPlay(r)

		r.Get("/certificate", s.handleCertificate)
		r.Get("/certificate/verify", s.handleVerify)

		// JSON 404 for easier debugging
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
		})
	})

	return s, nil
}

// Start serves HTTP on addr until ctx is cancelled, pruning idle runs in the
// background. A clean shutdown returns nil.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}

	go s.pruneLoop(ctx)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		s.hub.close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.hub.close()
		return srv.Shutdown(shutdownCtx)
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Close detaches the WebSocket hub from the progress store and drops clients.
func (s *Server) Close() { s.hub.close() }

// pruneLoop drops idle runs once per minute.
func (s *Server) pruneLoop(ctx context.Context) {
	t := time.NewTicker(time.Minute)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := s.runs.Prune(now, s.runTTL); n > 0 {
				log.Debug().Int("runs", n).Msg("pruned idle runs")
			}
		}
	}
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", s.origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs method, path, status and latency at debug level.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("reqId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("http")
	})
}

// ------------------------------ static -------------------------------------

// handleCatalog returns the five phases' static data.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"phases": s.progress.Catalog().Phases()})
}

// soundsRes is returned by /feedback/sounds.
type soundsRes struct {
	Voice feedback.Voice                     `json:"voice"`
	Tones map[feedback.Sound][]feedback.Note `json:"tones"`
}

// handleSounds returns the tone and voice definitions for the browser.
func (s *Server) handleSounds(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, soundsRes{Voice: feedback.DefaultVoice, Tones: feedback.Tones})
}

// ---------------------------- certificate ----------------------------------

// handleCertificate issues a certificate once the game is completed.
func (s *Server) handleCertificate(w http.ResponseWriter, r *http.Request) {
	c, err := s.signer.Issue(s.progress.Progress(), s.now())
	switch {
	case errors.Is(err, certificate.ErrNotEarned):
		writeError(w, http.StatusConflict, "not_earned")
		return
	case err != nil:
		log.Error().Err(err).Msg("issue certificate")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// verifyRes is returned by /certificate/verify.
type verifyRes struct {
	Valid       bool                     `json:"valid"`
	Certificate *certificate.Certificate `json:"certificate,omitempty"`
}

// handleVerify checks a certificate token passed as ?token=.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	tok := r.URL.Query().Get("token")
	if tok == "" {
		writeError(w, http.StatusBadRequest, "missing_token")
		return
	}
	c, err := s.signer.Verify(tok)
	if err != nil {
		log.Debug().Err(err).Msg("certificate rejected")
		writeJSON(w, http.StatusOK, verifyRes{Valid: false})
		return
	}
	writeJSON(w, http.StatusOK, verifyRes{Valid: true, Certificate: &c})
}

// ------------------------------- small util --------------------------------

// writeJSON writes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes {"error":code}.
func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
