// Package performance turns a season of raw statistics into a
// position-normalised 0..100 performance score. Each position group has its
// own Scorer; missing statistics count as zero and lower Completeness
// instead of failing.
package performance

import (
	"fmt"
	"math"

	"github.com/okian/varsity/internal/domain/model"
)

// Score bounds and conference strength range.
const (
	MinScore     = 0.0
	MaxScore     = 100.0
	NeutralScore = 50.0

	minConferenceStrength = 0.85
	maxConferenceStrength = 1.20
)

// Result is a performance score with its explanation.
type Result struct {
	Score        float64            `json:"score"`
	Subscores    map[string]float64 `json:"subscores"`
	Completeness float64            `json:"completeness"` // share of premier stats present
	Missing      []string           `json:"missing,omitempty"`
	Neutral      bool               `json:"neutral"`
}

// Scorer is one position group's scoring function.
type Scorer interface {
	// Group names the position group, e.g. "pass_rush".
	Group() string
	// Score computes the season score. conferenceStrength is applied after
	// the weighted sum and clamped to [0.85, 1.20]; 0 means neutral.
	Score(rec model.SeasonStatRecord, conferenceStrength float64) Result
}

// PremierStat is one weighted stat in a group's formula.
type PremierStat struct {
	Name   string
	Weight float64
	Band   Band
}

// calibratable scorers accept replacement breakpoint bands.
type calibratable interface {
	withBand(stat string, b Band) (Scorer, error)
	bands() []PremierStat
}

// NeutralResult is returned for positions without a scorer.
func NeutralResult() Result {
	return Result{Score: NeutralScore, Subscores: map[string]float64{}, Neutral: true}
}

// premierScorer is the table-driven formula shared by most groups.
type premierScorer struct {
	group string
	stats []PremierStat
}

func newPremierScorer(group string, stats ...PremierStat) *premierScorer {
	return &premierScorer{group: group, stats: stats}
}

func (s *premierScorer) Group() string { return s.group }

func (s *premierScorer) Score(rec model.SeasonStatRecord, conferenceStrength float64) Result {
	values := make([]statValue, len(s.stats))
	for i, ps := range s.stats {
		v, ok := rec.Stat(ps.Name)
		values[i] = statValue{value: v, present: ok}
	}
	return combine(s.stats, values, conferenceStrength)
}

func (s *premierScorer) bands() []PremierStat { return s.stats }

func (s *premierScorer) withBand(stat string, b Band) (Scorer, error) {
	stats, err := replaceBand(s.stats, stat, b)
	if err != nil {
		return nil, err
	}
	return &premierScorer{group: s.group, stats: stats}, nil
}

type statValue struct {
	value   float64
	present bool
}

// combine applies bands and weights, then the conference strength, and
// clamps to [0,100].
func combine(stats []PremierStat, values []statValue, conferenceStrength float64) Result {
	res := Result{Subscores: make(map[string]float64, len(stats))}
	var weighted, totalWeight float64
	present := 0
	for i, ps := range stats {
		v := values[i]
		if v.present {
			present++
		} else {
			res.Missing = append(res.Missing, ps.Name)
		}
		points := ps.Band.Eval(v.value)
		res.Subscores[ps.Name] = round2(points)
		weighted += ps.Weight * points
		totalWeight += ps.Weight
	}
	if totalWeight > 0 {
		weighted /= totalWeight
	}
	if len(stats) > 0 {
		res.Completeness = float64(present) / float64(len(stats))
	}
	res.Score = clamp(weighted*ConferenceStrength(conferenceStrength), MinScore, MaxScore)
	return res
}

// ConferenceStrength clamps a conference multiplier to the range the
// scorer accepts. Zero or negative means neutral.
func ConferenceStrength(m float64) float64 {
	if m <= 0 {
		return 1.0
	}
	return clamp(m, minConferenceStrength, maxConferenceStrength)
}

func replaceBand(stats []PremierStat, stat string, b Band) ([]PremierStat, error) {
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", stat, err)
	}
	out := make([]PremierStat, len(stats))
	copy(out, stats)
	for i := range out {
		if out[i].Name == stat {
			cp := make(Band, len(b))
			copy(cp, b)
			out[i].Band = cp
			return out, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownStat, stat)
}

// ratio returns num/den, present only when the denominator is present and
// positive.
func ratio(rec model.SeasonStatRecord, num, den string) statValue {
	d, dok := rec.Stat(den)
	if !dok || d <= 0 {
		return statValue{}
	}
	n, _ := rec.Stat(num)
	return statValue{value: n / d, present: true}
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

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
