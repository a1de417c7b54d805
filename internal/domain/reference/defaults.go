package reference

// DefaultVersion identifies the built-in calibration.
const DefaultVersion = "2025.1"

// Default returns the built-in reference tables. Every call returns fresh
// maps so callers may layer overrides without touching shared state.
func Default() *Data {
	return &Data{
		Version: DefaultVersion,
		Sports: map[string]SportLimits{
			"football":   {ExpectedSnaps: 850, MaxGames: 15, MaxSnaps: 1100},
			"basketball": {ExpectedSnaps: 1100, MaxGames: 40, MaxSnaps: 1600},
		},
		Positions: map[string]PositionEntry{
			// football
			"QB":   {Baseline: 45, MeanScore: 52, Impact: 4.0, MarketRate: 600_000, Scarcity: 1.25, Visibility: 1.50},
			"RB":   {Baseline: 40, MeanScore: 50, Impact: 1.5, MarketRate: 220_000, Scarcity: 0.90, Visibility: 1.15},
			"WR":   {Baseline: 40, MeanScore: 50, Impact: 1.8, MarketRate: 300_000, Scarcity: 1.00, Visibility: 1.25},
			"TE":   {Baseline: 40, MeanScore: 50, Impact: 1.4, MarketRate: 200_000, Scarcity: 1.00, Visibility: 1.00},
			"OL":   {Baseline: 40, MeanScore: 50, Impact: 1.6, MarketRate: 250_000, Scarcity: 1.10, Visibility: 0.70},
			"DL":   {Baseline: 40, MeanScore: 50, Impact: 1.8, MarketRate: 250_000, Scarcity: 1.05, Visibility: 0.80},
			"EDGE": {Baseline: 42, MeanScore: 51, Impact: 2.5, MarketRate: 350_000, Scarcity: 1.20, Visibility: 1.00},
			"LB":   {Baseline: 40, MeanScore: 50, Impact: 1.6, MarketRate: 200_000, Scarcity: 0.95, Visibility: 0.90},
			"CB":   {Baseline: 42, MeanScore: 51, Impact: 2.0, MarketRate: 280_000, Scarcity: 1.10, Visibility: 0.95},
			"S":    {Baseline: 40, MeanScore: 50, Impact: 1.5, MarketRate: 200_000, Scarcity: 0.95, Visibility: 0.85},
			"K":    {Baseline: 40, MeanScore: 50, Impact: 1.0, MarketRate: 80_000, Scarcity: 0.80, Visibility: 0.60},
			"P":    {Baseline: 40, MeanScore: 50, Impact: 1.0, MarketRate: 60_000, Scarcity: 0.75, Visibility: 0.55},

			// basketball
			"PG": {Baseline: 42, MeanScore: 51, Impact: 3.0, MarketRate: 400_000, Scarcity: 1.10, Visibility: 1.30},
			"SG": {Baseline: 40, MeanScore: 50, Impact: 2.6, MarketRate: 340_000, Scarcity: 1.00, Visibility: 1.20},
			"SF": {Baseline: 40, MeanScore: 50, Impact: 2.6, MarketRate: 340_000, Scarcity: 1.05, Visibility: 1.15},
			"PF": {Baseline: 40, MeanScore: 50, Impact: 2.4, MarketRate: 300_000, Scarcity: 1.00, Visibility: 1.05},
			"C":  {Baseline: 42, MeanScore: 51, Impact: 2.8, MarketRate: 360_000, Scarcity: 1.15, Visibility: 1.05},

			FallbackKey: {Baseline: 50, MeanScore: 50, Impact: 1.0, MarketRate: 100_000, Scarcity: 1.00, Visibility: 1.00},
		},
		Conferences: map[string]string{
			"sec":            "elite",
			"big_ten":        "elite",
			"big_12":         "mid",
			"acc":            "mid",
			"pac_12":         "mid",
			"big_east":       "mid",
			"american":       "lower",
			"mountain_west":  "lower",
			"sun_belt":       "lower",
			"mac":            "lower",
			"conference_usa": "lower",
			"wcc":            "lower",
			"atlantic_10":    "lower",
			"independent":    "mid",
		},
		ConferenceTiers: map[string]float64{
			"elite": 1.18,
			"mid":   1.05,
			"lower": 0.90,
		},
		DefaultConferenceMultiplier: 1.0,
		Exposure: map[string]float64{
			"blue_blood": 1.5,
			"power":      1.2,
			"mid":        1.0,
			"small":      0.8,
		},
		NILBaseRate: 250_000,
		NILFloor:    1_000,
		ValueFloor:  5_000,
	}
}
