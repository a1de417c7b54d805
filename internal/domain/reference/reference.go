// Package reference holds the versioned lookup tables every valuation
// consults: replacement baselines, market rates, position impact,
// conference tiers and program exposure. Tables are read-only once built
// and may be shared across goroutines.
package reference

import (
	"fmt"
	"sort"
	"strings"

	"github.com/okian/varsity/internal/domain/model"
)

// FallbackKey is the position entry used for unrecognised positions.
const FallbackKey = "fallback"

// Bounds for the conference multiplier.
const (
	minConferenceMultiplier = 0.85
	maxConferenceMultiplier = 1.25
)

// PositionEntry is the per-position reference row.
type PositionEntry struct {
	Baseline   float64 `koanf:"baseline"`    // replacement-level score, ~40th percentile
	MeanScore  float64 `koanf:"mean_score"`  // regression target for projections
	Impact     float64 `koanf:"impact"`      // position impact multiplier on WAR
	MarketRate float64 `koanf:"market_rate"` // dollars per WAR
	Scarcity   float64 `koanf:"scarcity"`
	Visibility float64 `koanf:"visibility"`
}

// SportLimits are per-sport season constants.
type SportLimits struct {
	ExpectedSnaps float64 `koanf:"expected_snaps"`
	MaxGames      int     `koanf:"max_games"`
	MaxSnaps      float64 `koanf:"max_snaps"`
}

// Data is one version of the reference tables.
type Data struct {
	Version                     string                   `koanf:"version"`
	Sports                      map[string]SportLimits   `koanf:"sports"`
	Positions                   map[string]PositionEntry `koanf:"positions"`
	Conferences                 map[string]string        `koanf:"conferences"`
	ConferenceTiers             map[string]float64       `koanf:"conference_tiers"`
	DefaultConferenceMultiplier float64                  `koanf:"default_conference_multiplier"`
	Exposure                    map[string]float64       `koanf:"exposure"`
	NILBaseRate                 float64                  `koanf:"nil_base_rate"`
	NILFloor                    float64                  `koanf:"nil_floor"`
	ValueFloor                  float64                  `koanf:"value_floor"`
}

// Position returns the entry for pos. Unknown positions use the fallback
// entry. A known position without a complete entry, or an unknown
// position without a fallback, yields ErrConfigurationMissing.
func (d *Data) Position(pos model.Position) (PositionEntry, error) {
	key := string(pos)
	if pos == model.Unknown {
		key = FallbackKey
	}
	e, ok := d.Positions[key]
	if !ok {
		return PositionEntry{}, fmt.Errorf("%w: no entry for position %q", ErrConfigurationMissing, key)
	}
	if e.MarketRate <= 0 {
		return PositionEntry{}, fmt.Errorf("%w: no market rate for position %q", ErrConfigurationMissing, key)
	}
	if e.Impact <= 0 {
		return PositionEntry{}, fmt.Errorf("%w: no impact multiplier for position %q", ErrConfigurationMissing, key)
	}
	return e, nil
}

// Limits returns the season constants for sport.
func (d *Data) Limits(sport model.Sport) (SportLimits, error) {
	l, ok := d.Sports[string(sport)]
	if !ok || l.ExpectedSnaps <= 0 {
		return SportLimits{}, fmt.Errorf("%w: no season limits for sport %q", ErrConfigurationMissing, sport)
	}
	return l, nil
}

// ConferenceMultiplier returns the tier multiplier for a conference,
// clamped to [0.85, 1.25]. The bool is false when the conference or its
// tier is not in the table and the default multiplier was used.
func (d *Data) ConferenceMultiplier(conference string) (float64, bool) {
	tier, ok := d.Conferences[NormalizeKey(conference)]
	if !ok {
		return clamp(d.DefaultConferenceMultiplier, minConferenceMultiplier, maxConferenceMultiplier), false
	}
	m, ok := d.ConferenceTiers[tier]
	if !ok {
		return clamp(d.DefaultConferenceMultiplier, minConferenceMultiplier, maxConferenceMultiplier), false
	}
	return clamp(m, minConferenceMultiplier, maxConferenceMultiplier), true
}

// ExposureMultiplier returns the program exposure multiplier, 1.0 when
// the tier is unknown.
func (d *Data) ExposureMultiplier(tier model.ExposureTier) float64 {
	if m, ok := d.Exposure[string(tier)]; ok && m > 0 {
		return m
	}
	return 1.0
}

// Validate checks internal consistency.
func (d *Data) Validate() error {
	var problems []string
	if d.Version == "" {
		problems = append(problems, "version is empty")
	}
	if d.ValueFloor <= 0 {
		problems = append(problems, "value_floor must be positive")
	}
	if d.NILFloor <= 0 {
		problems = append(problems, "nil_floor must be positive")
	}
	if d.NILBaseRate <= 0 {
		problems = append(problems, "nil_base_rate must be positive")
	}
	for _, name := range sortedKeys(d.Sports) {
		l := d.Sports[name]
		if l.ExpectedSnaps <= 0 {
			problems = append(problems, fmt.Sprintf("sport %s: expected_snaps must be positive", name))
		}
		if l.MaxSnaps > 0 && l.MaxSnaps < l.ExpectedSnaps {
			problems = append(problems, fmt.Sprintf("sport %s: max_snaps below expected_snaps", name))
		}
	}
	for _, name := range sortedKeys(d.Positions) {
		e := d.Positions[name]
		if e.Baseline < 0 || e.Baseline > 100 {
			problems = append(problems, fmt.Sprintf("position %s: baseline %.1f outside [0,100]", name, e.Baseline))
		}
		if e.Impact <= 0 {
			problems = append(problems, fmt.Sprintf("position %s: impact must be positive", name))
		}
		if e.MarketRate <= 0 {
			problems = append(problems, fmt.Sprintf("position %s: market_rate must be positive", name))
		}
		if e.Scarcity <= 0 || e.Visibility <= 0 {
			problems = append(problems, fmt.Sprintf("position %s: scarcity and visibility must be positive", name))
		}
	}
	for _, tier := range sortedKeys(d.ConferenceTiers) {
		m := d.ConferenceTiers[tier]
		if m < minConferenceMultiplier || m > maxConferenceMultiplier {
			problems = append(problems, fmt.Sprintf("conference tier %s: multiplier %.2f outside [%.2f,%.2f]",
				tier, m, minConferenceMultiplier, maxConferenceMultiplier))
		}
	}
	for _, conf := range sortedKeys(d.Conferences) {
		if _, ok := d.ConferenceTiers[d.Conferences[conf]]; !ok {
			problems = append(problems, fmt.Sprintf("conference %s: unknown tier %q", conf, d.Conferences[conf]))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidReference, strings.Join(problems, "; "))
	}
	return nil
}

// Catalog maps seasons to reference versions. Seasons without a specific
// entry use the default.
type Catalog struct {
	def     *Data
	seasons map[int]*Data
}

// NewCatalog builds a catalog. def must not be nil.
func NewCatalog(def *Data, seasons map[int]*Data) *Catalog {
	c := &Catalog{def: def, seasons: make(map[int]*Data, len(seasons))}
	for s, d := range seasons {
		if d != nil {
			c.seasons[s] = d
		}
	}
	return c
}

// For returns the reference data for season.
func (c *Catalog) For(season int) *Data {
	if d, ok := c.seasons[season]; ok {
		return d
	}
	return c.def
}

// Seasons lists seasons with a dedicated version, ascending.
func (c *Catalog) Seasons() []int {
	out := make([]int, 0, len(c.seasons))
	for s := range c.seasons {
		out = append(out, s)
	}
	sort.Ints(out)
	return out
}

// NormalizeKey lowercases a conference name and joins words with '_'.
func NormalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	}), "_")
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
