package model

// ExposureTier classifies a program's media reach.
type ExposureTier string

// Program exposure tiers.
const (
	ExposureBlueBlood ExposureTier = "blue_blood"
	ExposurePower     ExposureTier = "power"
	ExposureMid       ExposureTier = "mid"
	ExposureSmall     ExposureTier = "small"
)

// TeamContext is the team-level context for a season. A nil win
// percentage was not supplied.
type TeamContext struct {
	TeamID            string       `json:"team_id"`
	Conference        string       `json:"conference"`
	WinPct            *float64     `json:"win_pct,omitempty"`
	OpponentAvgWinPct *float64     `json:"opponent_avg_win_pct,omitempty"`
	Exposure          ExposureTier `json:"exposure"`
}

// Pct returns a pointer to v for optional fractional inputs.
func Pct(v float64) *float64 { return &v }

// BrandSignals are the visibility inputs for NIL estimation.
type BrandSignals struct {
	Followers         float64 `json:"followers"`
	EngagementRate    float64 `json:"engagement_rate"`
	MediaMentions     float64 `json:"media_mentions"`
	NationalTVAppears float64 `json:"national_tv_appearances"`
}

// RiskProfile holds discount fractions per risk category, each in [0,1)
// before category caps are applied.
type RiskProfile struct {
	Injury    float64 `json:"injury"`
	Variance  float64 `json:"variance"`
	Character float64 `json:"character"`
	SchemeFit float64 `json:"scheme_fit"`
}

// MarketInputs are bounded multipliers supplied by external evaluators.
// Zero values mean "not supplied" and resolve to neutral defaults.
type MarketInputs struct {
	SchemeFit        float64  `json:"scheme_fit"`
	RiskAdjustment   float64  `json:"risk_adjustment"`
	Opportunity      float64  `json:"opportunity"`
	LeverageOverride *float64 `json:"leverage_override,omitempty"`
}

// ContextFactors are the derived multipliers consumed by the WAR step.
type ContextFactors struct {
	Leverage             float64 `json:"leverage_index"`
	OpponentQuality      float64 `json:"opponent_quality"`
	ConferenceMultiplier float64 `json:"conference_multiplier"`
	TeamAdjustment       float64 `json:"team_adjustment"`
}

// NeutralContext returns factors that leave WAR unchanged.
func NeutralContext() ContextFactors {
	return ContextFactors{
		Leverage:             1.0,
		OpponentQuality:      1.0,
		ConferenceMultiplier: 1.0,
		TeamAdjustment:       1.0,
	}
}
