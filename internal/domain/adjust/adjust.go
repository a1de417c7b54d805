// Package adjust derives the context multipliers the WAR step consumes:
// leverage index, opponent quality, conference multiplier and team
// context. Inputs are season aggregates; every output is clamped to its
// documented range instead of rejecting out-of-range input.
package adjust

import (
	"github.com/okian/varsity/internal/domain/model"
)

// Documented ranges.
const (
	MinLeverage        = 0.3
	MaxLeverage        = 2.0
	MinOpponentQuality = 0.7
	MaxOpponentQuality = 1.3

	defaultLeverage     = 1.0
	leverageFloorTerm   = 0.8
	leverageSpan        = 0.4
	opponentSpan        = MaxOpponentQuality - MinOpponentQuality
	teamAdjustmentSlope = 0.15
	neutralWinPct       = 0.5
)

// LeverageInput is what a leverage source sees for one athlete-season.
type LeverageInput struct {
	SnapShare   float64
	StarterRate float64
	HasSnaps    bool
}

// LeverageSource produces a leverage index. The season-aggregate
// approximation is the default; a per-play feed can implement the same
// interface without changing callers.
type LeverageSource interface {
	Leverage(in LeverageInput) float64
}

// SeasonLeverage approximates leverage from playing-time share and starter
// status as proxies for meaningful game time.
type SeasonLeverage struct{}

// Leverage implements LeverageSource.
func (SeasonLeverage) Leverage(in LeverageInput) float64 {
	if !in.HasSnaps {
		return defaultLeverage
	}
	meaningful := clamp(in.SnapShare, 0, 1) * (0.5 + 0.5*clamp(in.StarterRate, 0, 1))
	return clamp(leverageFloorTerm+leverageSpan*meaningful, MinLeverage, MaxLeverage)
}

// FixedLeverage returns the same leverage for every athlete, clamped.
type FixedLeverage float64

// Leverage implements LeverageSource.
func (f FixedLeverage) Leverage(LeverageInput) float64 {
	return clamp(float64(f), MinLeverage, MaxLeverage)
}

// ConferenceTable resolves a conference to its multiplier.
type ConferenceTable interface {
	ConferenceMultiplier(conference string) (float64, bool)
}

// Adjuster computes context factors.
type Adjuster struct {
	leverage    LeverageSource
	conferences ConferenceTable
}

// New creates an Adjuster. A nil leverage source uses SeasonLeverage.
func New(conferences ConferenceTable, leverage LeverageSource) *Adjuster {
	if leverage == nil {
		leverage = SeasonLeverage{}
	}
	return &Adjuster{leverage: leverage, conferences: conferences}
}

// WithLeverage returns a copy of a using src for leverage.
func (a *Adjuster) WithLeverage(src LeverageSource) *Adjuster {
	if src == nil {
		return a
	}
	return &Adjuster{leverage: src, conferences: a.conferences}
}

// OpponentQuality maps opponent average win% linearly onto [0.7, 1.3] with
// 0.5 at 1.0.
func OpponentQuality(opponentWinPct float64) float64 {
	return clamp(MinOpponentQuality+clamp(opponentWinPct, 0, 1)*opponentSpan, MinOpponentQuality, MaxOpponentQuality)
}

// TeamAdjustment discounts production on winning teams and credits it on
// losing ones: 1 - (winPct - 0.5) * 0.15.
func TeamAdjustment(teamWinPct float64) float64 {
	return 1.0 - (clamp(teamWinPct, 0, 1)-neutralWinPct)*teamAdjustmentSlope
}

// ConferenceMultiplier returns the tier multiplier for conference and
// whether the conference was found.
func (a *Adjuster) ConferenceMultiplier(conference string) (float64, bool) {
	if a.conferences == nil {
		return 1.0, false
	}
	return a.conferences.ConferenceMultiplier(conference)
}

// Factors derives all context multipliers for one athlete-season. A win
// percentage that was not supplied counts as .500, so its factor is 1.0.
func (a *Adjuster) Factors(lev LeverageInput, team model.TeamContext) model.ContextFactors {
	conf, _ := a.ConferenceMultiplier(team.Conference)
	return model.ContextFactors{
		Leverage:             clamp(a.leverage.Leverage(lev), MinLeverage, MaxLeverage),
		OpponentQuality:      OpponentQuality(orNeutral(team.OpponentAvgWinPct)),
		ConferenceMultiplier: conf,
		TeamAdjustment:       TeamAdjustment(orNeutral(team.WinPct)),
	}
}

func orNeutral(pct *float64) float64 {
	if pct == nil {
		return neutralWinPct
	}
	return *pct
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
