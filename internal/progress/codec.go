// internal/progress/codec.go
//
// Encoding of the persisted record and the merge-on-load rules.
//
// Decode never fails hard: an absent, corrupt or partial record still yields
// a valid GameProgress. Stored phases are merged one by one onto the default,
// so a record holding only phase 1 still produces all five phases, and fields
// added to the schema later get their default values. Static fields (id,
// name, range, color) always come from the catalog; only the player's state
// (unlocked, completed, crystals, currentPhase) is read from the record.

package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/robalobadob/magicnumbers/internal/catalog"
)

// ErrEmptyRecord is reported by Decode when there is nothing to decode.
var ErrEmptyRecord = errors.New("progress: empty record")

// Encode serializes p as the persisted JSON record.
func Encode(p GameProgress) ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("progress: encode: %w", err)
	}
	return data, nil
}

type storedRecord struct {
	CurrentPhase *int                       `json:"currentPhase"`
	Phases       map[string]json.RawMessage `json:"phases"`
}

type storedPhase struct {
	Unlocked  *bool `json:"unlocked"`
	Completed *bool `json:"completed"`
	Crystals  *int  `json:"crystals"`
}

// Decode rebuilds a GameProgress from a persisted record.
//
// The returned state is always valid. A non-nil error explains why some or
// all of the record was ignored; callers log it and carry on.
func Decode(data []byte, c *catalog.Catalog) (GameProgress, error) {
	p := Initial(c)
	if len(data) == 0 {
		return p, ErrEmptyRecord
	}

	var rec storedRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return p, fmt.Errorf("progress: decode: %w", err)
	}

	var errs []error
	if rec.CurrentPhase != nil {
		if c.Has(*rec.CurrentPhase) {
			p.CurrentPhase = *rec.CurrentPhase
		} else {
			errs = append(errs, fmt.Errorf("progress: currentPhase %d out of range", *rec.CurrentPhase))
		}
	}

	for key, raw := range rec.Phases {
		id, err := strconv.Atoi(key)
		if err != nil || !c.Has(id) {
			errs = append(errs, fmt.Errorf("progress: ignoring unknown phase key %q", key))
			continue
		}
		var sp storedPhase
		if err := json.Unmarshal(raw, &sp); err != nil {
			errs = append(errs, fmt.Errorf("progress: phase %d: %w", id, err))
			continue
		}
		p.Phases[id] = mergePhase(p.Phases[id], sp)
	}

	// Phase 1 is selectable from the very first launch onward.
	first := p.Phases[1]
	first.Unlocked = true
	p.Phases[1] = first

	p.recompute()
	return p, errors.Join(errs...)
}

func mergePhase(def Phase, sp storedPhase) Phase {
	if sp.Unlocked != nil {
		def.Unlocked = *sp.Unlocked
	}
	if sp.Completed != nil {
		def.Completed = *sp.Completed
	}
	if sp.Crystals != nil {
		def.Crystals = min(max(*sp.Crystals, 0), CrystalsPerPhase)
	}
	return def
}
