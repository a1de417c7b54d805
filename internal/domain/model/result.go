package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tier is the categorical reading of a WAR value.
type Tier string

// WAR tiers, best first.
const (
	TierElite            Tier = "elite"
	TierAllConference    Tier = "all-conference/above-average starter"
	TierSolidStarter     Tier = "solid starter"
	TierAverage          Tier = "average"
	TierBelowReplacement Tier = "below replacement"
)

// WARResult is the wins-above-replacement estimate for one athlete-season.
type WARResult struct {
	AthleteID        string         `json:"athlete_id"`
	Season           int            `json:"season"`
	Position         Position       `json:"position"`
	PerformanceScore float64        `json:"performance_score"`
	Baseline         float64        `json:"replacement_baseline"`
	Participation    float64        `json:"participation"`
	Context          ContextFactors `json:"context"`
	WAR              float64        `json:"war"`
	Tier             Tier           `json:"tier"`
	ConfidenceWidth  float64        `json:"confidence_width_pct"`
	Warnings         []string       `json:"warnings,omitempty"`
}

// Pillar names in the ensemble.
const (
	PillarProduction = "production"
	PillarPredictive = "predictive"
	PillarScarcity   = "scarcity"
	PillarMarket     = "market_context"
	PillarBrand      = "brand"
	PillarRisk       = "risk"
)

// PillarContribution explains one pillar's share of the final value.
// Dollar is the pillar's standalone estimate; Contribution is what it
// added after weighting. Deviation is the signed distance from neutral.
type PillarContribution struct {
	Name         string          `json:"name"`
	Weight       float64         `json:"weight"`
	Dollar       decimal.Decimal `json:"dollar"`
	Contribution decimal.Decimal `json:"contribution"`
	Deviation    float64         `json:"deviation"`
}

// Valuation is the immutable output of one computation pass. A new run
// supersedes it; it is never updated in place.
type Valuation struct {
	RunID            string               `json:"run_id"`
	AthleteID        string               `json:"athlete_id"`
	Season           int                  `json:"season"`
	Sport            Sport                `json:"sport"`
	Position         Position             `json:"position"`
	Archetype        string               `json:"archetype"`
	ReferenceVersion string               `json:"reference_version"`
	WAR              WARResult            `json:"war"`
	PlayerValue      decimal.Decimal      `json:"player_value"`
	NILPotential     decimal.Decimal      `json:"nil_potential"`
	CombinedValue    decimal.Decimal      `json:"combined_value"`
	RiskDiscount     float64              `json:"risk_discount"`
	ConfidenceLow    decimal.Decimal      `json:"confidence_low"`
	ConfidenceHigh   decimal.Decimal      `json:"confidence_high"`
	Pillars          []PillarContribution `json:"pillars"`
	Drivers          []string             `json:"drivers"`
	Warnings         []string             `json:"warnings,omitempty"`
	ComputedAt       time.Time            `json:"computed_at"`
}
