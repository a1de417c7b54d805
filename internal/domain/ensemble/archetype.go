package ensemble

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Built-in archetype names.
const (
	Balanced       = "balanced"
	ProvenProducer = "proven_producer"
	HighUpside     = "high_upside"
	BrandBuilder   = "brand_builder"

	weightTolerance = 0.001
)

// Archetype is a named weighting of the four additive pillars. Weights
// must be non-negative and sum to 1.0.
type Archetype struct {
	Name       string  `koanf:"name" json:"name"`
	Production float64 `koanf:"production" json:"production"`
	Predictive float64 `koanf:"predictive" json:"predictive"`
	Scarcity   float64 `koanf:"scarcity" json:"scarcity"`
	Market     float64 `koanf:"market" json:"market"`
}

// Sum returns the total of all weights.
func (a Archetype) Sum() float64 {
	return a.Production + a.Predictive + a.Scarcity + a.Market
}

// Validate checks that weights sum to 1.0 (±0.001) and none are negative.
func (a Archetype) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidArchetype)
	}
	for _, w := range []float64{a.Production, a.Predictive, a.Scarcity, a.Market} {
		if w < 0 || math.IsNaN(w) {
			return fmt.Errorf("%w: %s has negative weight %f", ErrInvalidArchetype, a.Name, w)
		}
	}
	if math.Abs(a.Sum()-1.0) > weightTolerance {
		return fmt.Errorf("%w: %s weights sum to %.4f, must sum to 1.0", ErrInvalidArchetype, a.Name, a.Sum())
	}
	return nil
}

// Builtins returns the built-in archetypes.
func Builtins() []Archetype {
	return []Archetype{
		{Name: Balanced, Production: 0.40, Predictive: 0.20, Scarcity: 0.20, Market: 0.20},
		{Name: ProvenProducer, Production: 0.55, Predictive: 0.10, Scarcity: 0.20, Market: 0.15},
		{Name: HighUpside, Production: 0.25, Predictive: 0.40, Scarcity: 0.15, Market: 0.20},
		{Name: BrandBuilder, Production: 0.35, Predictive: 0.15, Scarcity: 0.15, Market: 0.35},
	}
}

// Set is a validated collection of archetypes with a default.
type Set struct {
	byName map[string]Archetype
	def    string
}

// NewSet builds a set from the built-ins plus extra. Extra archetypes
// replace built-ins with the same name. The default must exist.
func NewSet(def string, extra ...Archetype) (*Set, error) {
	s := &Set{byName: make(map[string]Archetype, len(extra)+4)}
	for _, a := range Builtins() {
		s.byName[a.Name] = a
	}
	for _, a := range extra {
		a.Name = normalize(a.Name)
		if err := a.Validate(); err != nil {
			return nil, err
		}
		s.byName[a.Name] = a
	}
	if def == "" {
		def = Balanced
	}
	def = normalize(def)
	if _, ok := s.byName[def]; !ok {
		return nil, fmt.Errorf("%w: default %q", ErrUnknownArchetype, def)
	}
	s.def = def
	return s, nil
}

// Default returns the default archetype.
func (s *Set) Default() Archetype { return s.byName[s.def] }

// Resolve returns the named archetype. Unknown or empty names return the
// default and false.
func (s *Set) Resolve(name string) (Archetype, bool) {
	if name == "" {
		return s.Default(), true
	}
	a, ok := s.byName[normalize(name)]
	if !ok {
		return s.Default(), false
	}
	return a, true
}

// Names lists archetype names, sorted.
func (s *Set) Names() []string {
	out := make([]string, 0, len(s.byName))
	for n := range s.byName {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
