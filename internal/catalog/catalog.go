// internal/catalog/catalog.go
//
// Static phase catalog.
// Responsibilities:
//   - Parse the embedded phases.yaml document once at startup.
//   - Validate the fixed shape: five phases, ids 1..5, contiguous ranges from 1.
//   - Expose read-only lookups (Lookup, Has, Phases) for the core and the orchestrators.
//
// The catalog never changes at runtime; callers receive copies.

package catalog

import (
	"errors"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/robalobadob/magicnumbers/assets"
)

// PhaseCount is the fixed number of phases in the game.
const PhaseCount = 5

// Range is an inclusive integer interval.
type Range struct {
	Start int `yaml:"start" json:"start"`
	End   int `yaml:"end" json:"end"`
}

// Len returns the number of integers covered by the range.
func (r Range) Len() int { return r.End - r.Start + 1 }

// Phase is the static definition of one phase.
type Phase struct {
	ID    int    `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Range Range  `yaml:"range" json:"range"`
	Color string `yaml:"color" json:"color"`
}

// Numbers lists the phase's numbers in ascending order.
func (p Phase) Numbers() []int {
	out := make([]int, 0, p.Range.Len())
	for n := p.Range.Start; n <= p.Range.End; n++ {
		out = append(out, n)
	}
	return out
}

// Catalog holds the five phases ordered by id.
type Catalog struct {
	phases []Phase
}

type document struct {
	Phases []Phase `yaml:"phases"`
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	c := &Catalog{phases: doc.Phases}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) validate() error {
	if len(c.phases) != PhaseCount {
		return fmt.Errorf("catalog: want %d phases, got %d", PhaseCount, len(c.phases))
	}
	next := 1
	for i, p := range c.phases {
		if p.ID != i+1 {
			return fmt.Errorf("catalog: phase at position %d has id %d", i+1, p.ID)
		}
		if p.Name == "" {
			return fmt.Errorf("catalog: phase %d has no name", p.ID)
		}
		if p.Range.Start != next {
			return fmt.Errorf("catalog: phase %d starts at %d, want %d", p.ID, p.Range.Start, next)
		}
		if p.Range.End < p.Range.Start {
			return fmt.Errorf("catalog: phase %d has empty range %d-%d", p.ID, p.Range.Start, p.Range.End)
		}
		next = p.Range.End + 1
	}
	return nil
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		data, err := assets.PhasesYAML()
		if err != nil {
			defaultErr = fmt.Errorf("catalog: read embedded: %w", err)
			return
		}
		defaultCat, defaultErr = Parse(data)
	})
	return defaultCat, defaultErr
}

// MustDefault is Default for callers that cannot continue without a catalog.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// ErrUnknownPhase is returned by Lookup for ids outside the catalog.
var ErrUnknownPhase = errors.New("catalog: unknown phase")

// Phases returns a copy of all phases ordered by id.
func (c *Catalog) Phases() []Phase {
	out := make([]Phase, len(c.phases))
	copy(out, c.phases)
	return out
}

// Lookup returns the phase with the given id.
func (c *Catalog) Lookup(id int) (Phase, error) {
	if id < 1 || id > len(c.phases) {
		return Phase{}, fmt.Errorf("%w: %d", ErrUnknownPhase, id)
	}
	return c.phases[id-1], nil
}

// Has reports whether id names a phase.
func (c *Catalog) Has(id int) bool {
	return id >= 1 && id <= len(c.phases)
}

// Last returns the id of the final phase.
func (c *Catalog) Last() int { return len(c.phases) }
