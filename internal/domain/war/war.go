// Package war converts a performance score plus participation and context
// into wins above replacement, a tier and a confidence width.
package war

import (
	"fmt"
	"sort"

	"github.com/okian/varsity/internal/domain/model"
)

// Tier thresholds on WAR.
const (
	EliteThreshold         = 2.0
	AllConferenceThreshold = 1.0
	SolidStarterThreshold  = 0.5
)

// ConfidenceBand maps a minimum participation to a confidence width in
// percent.
type ConfidenceBand struct {
	MinParticipation float64
	WidthPct         float64
}

// DefaultBands are the participation confidence bands: full-season
// starters ±15%, partial ±30%, limited action ±50%.
func DefaultBands() []ConfidenceBand {
	return []ConfidenceBand{
		{MinParticipation: 0.75, WidthPct: 15},
		{MinParticipation: 0.35, WidthPct: 30},
		{MinParticipation: 0, WidthPct: 50},
	}
}

// Input is everything one WAR computation needs.
type Input struct {
	AthleteID   string
	Season      int
	Position    model.Position
	Score       float64
	Baseline    float64
	Impact      float64
	SnapShare   float64
	StarterRate float64
	Context     model.ContextFactors
}

// Calculator computes WAR. The zero value is not usable; use New.
type Calculator struct {
	bands []ConfidenceBand
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithBands replaces the participation confidence bands. Bands are sorted
// by descending participation; the last band is the widest.
func WithBands(bands []ConfidenceBand) Option {
	return func(c *Calculator) {
		if len(bands) == 0 {
			return
		}
		cp := make([]ConfidenceBand, len(bands))
		copy(cp, bands)
		sort.SliceStable(cp, func(i, j int) bool { return cp[i].MinParticipation > cp[j].MinParticipation })
		c.bands = cp
	}
}

// New creates a Calculator.
func New(opts ...Option) *Calculator {
	c := &Calculator{bands: DefaultBands()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Participation is snap_share × (0.7 + 0.3 × starter_rate), both inputs
// clamped to [0,1].
func Participation(snapShare, starterRate float64) float64 {
	return clamp(snapShare, 0, 1) * (0.7 + 0.3*clamp(starterRate, 0, 1))
}

// TierFor classifies a WAR value.
func TierFor(war float64) model.Tier {
	switch {
	case war >= EliteThreshold:
		return model.TierElite
	case war >= AllConferenceThreshold:
		return model.TierAllConference
	case war >= SolidStarterThreshold:
		return model.TierSolidStarter
	case war >= 0:
		return model.TierAverage
	default:
		return model.TierBelowReplacement
	}
}

// Width returns the confidence width for a participation level. It is
// non-increasing in participation.
func (c *Calculator) Width(participation float64) float64 {
	for _, b := range c.bands {
		if participation >= b.MinParticipation {
			return b.WidthPct
		}
	}
	return c.bands[len(c.bands)-1].WidthPct
}

// Calculate computes the WAR result. Negative WAR is kept as is; zero
// participation yields WAR 0 with the widest band.
func (c *Calculator) Calculate(in Input) model.WARResult {
	res := model.WARResult{
		AthleteID:        in.AthleteID,
		Season:           in.Season,
		Position:         in.Position,
		PerformanceScore: in.Score,
		Baseline:         in.Baseline,
		Context:          in.Context,
	}
	if in.SnapShare < 0 || in.SnapShare > 1 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("snap share %.3f clamped to [0,1]", in.SnapShare))
	}
	res.Participation = Participation(in.SnapShare, in.StarterRate)
	res.ConfidenceWidth = c.Width(res.Participation)

	if res.Participation == 0 {
		res.WAR = 0
		res.Tier = TierFor(0)
		return res
	}

	ctx := in.Context
	par := (in.Score - in.Baseline) / 100
	res.WAR = par * res.Participation * in.Impact *
		ctx.Leverage * ctx.OpponentQuality * ctx.ConferenceMultiplier * ctx.TeamAdjustment
	res.Tier = TierFor(res.WAR)
	return res
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
