// internal/progress/store.go
//
// Store owns the player's GameProgress.
// Responsibilities:
//   - Load the record from durable KV storage (soft: bad data means default state).
//   - Apply CompletePhase / ResetProgress as single, whole-snapshot transitions.
//   - Persist after every mutation; a failed write is logged and the in-memory
//     state stays authoritative for the rest of the session.
//   - Notify subscribers (WebSocket hub, terminal player) of every new snapshot.
//
// One Store is constructed in main and handed to whoever needs it; there is
// no package-level instance.

package progress

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/magicnumbers/internal/catalog"
	"github.com/robalobadob/magicnumbers/internal/kv"
)

// Store is the owner of the progress state machine.
type Store struct {
	mu      sync.Mutex // serializes transitions and their writes
	kv      kv.KV
	catalog *catalog.Catalog
	state   GameProgress
	version uint64 // bumped by every transition, under mu

	subMu   sync.RWMutex
	subs    map[int]func(GameProgress)
	nextSub int

	pubMu     sync.Mutex // serializes delivery to subscribers
	published uint64     // version of the last delivered snapshot
}

// NewStore builds a Store and loads the saved progress from storage.
func NewStore(ctx context.Context, storage kv.KV, c *catalog.Catalog) *Store {
	s := &Store{
		kv:      storage,
		catalog: c,
		subs:    make(map[int]func(GameProgress)),
	}
	s.Load(ctx)
	return s
}

// Catalog returns the static phase catalog the store was built with.
func (s *Store) Catalog() *catalog.Catalog { return s.catalog }

// Load re-reads the record from storage, replaces the in-memory state and
// returns it. Missing or unreadable records yield the default state.
func (s *Store) Load(ctx context.Context) GameProgress {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.kv.Get(ctx, StorageKey)
	switch {
	case errors.Is(err, kv.ErrNotFound):
		log.Debug().Str("key", StorageKey).Msg("no saved progress, starting fresh")
		s.state = Initial(s.catalog)
		return s.state.Clone()
	case err != nil:
		log.Warn().Err(err).Str("key", StorageKey).Msg("read progress failed, starting fresh")
		s.state = Initial(s.catalog)
		return s.state.Clone()
	}

	p, err := Decode(data, s.catalog)
	if err != nil {
		log.Warn().Err(err).Str("key", StorageKey).Msg("saved progress partially ignored")
	}
	s.state = p
	log.Debug().Int("crystals", p.TotalCrystals).Int("currentPhase", p.CurrentPhase).Msg("progress loaded")
	return s.state.Clone()
}

// Progress returns the current snapshot.
func (s *Store) Progress() GameProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// CompletePhase records the completion of phaseID, persists and returns the
// new snapshot. Unknown ids are ignored and the current snapshot is returned.
func (s *Store) CompletePhase(ctx context.Context, phaseID int) GameProgress {
	s.mu.Lock()
	if _, ok := s.state.Phases[phaseID]; !ok {
		snap := s.state.Clone()
		s.mu.Unlock()
		log.Debug().Int("phase", phaseID).Msg("complete ignored: unknown phase")
		return snap
	}
	s.state = Complete(s.state, phaseID)
	s.persistLocked(ctx)
	s.version++
	version, snap := s.version, s.state.Clone()
	s.mu.Unlock()

	log.Info().
		Int("phase", phaseID).
		Int("totalCrystals", snap.TotalCrystals).
		Bool("completedGame", snap.CompletedGame).
		Msg("phase completed")
	s.publish(version, snap)
	return snap
}

// ResetProgress replaces the state with the default, persists and returns it.
func (s *Store) ResetProgress(ctx context.Context) GameProgress {
	s.mu.Lock()
	s.state = Initial(s.catalog)
	s.persistLocked(ctx)
	s.version++
	version, snap := s.version, s.state.Clone()
	s.mu.Unlock()

	log.Info().Msg("progress reset")
	s.publish(version, snap)
	return snap
}

// persistLocked writes the current state. Caller holds s.mu.
func (s *Store) persistLocked(ctx context.Context) {
	data, err := Encode(s.state)
	if err != nil {
		log.Error().Err(err).Msg("encode progress")
		return
	}
	if err := s.kv.Set(ctx, StorageKey, data); err != nil {
		log.Warn().Err(err).Str("key", StorageKey).Msg("persist progress failed; keeping in-memory state")
	}
}

// Subscribe registers fn to receive new snapshots in transition order. fn
// runs on the mutating goroutine, must not block and must not mutate the
// store. When transitions race, a snapshot already superseded by a
// delivered one is skipped. The returned func unsubscribes.
func (s *Store) Subscribe(fn func(GameProgress)) (cancel func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) publish(version uint64, p GameProgress) {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()
	if version <= s.published {
		return
	}
	s.published = version

	s.subMu.RLock()
	fns := make([]func(GameProgress), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.RUnlock()

	for _, fn := range fns {
		fn(p.Clone())
	}
}
