package performance

import "github.com/okian/varsity/internal/domain/model"

// Derived stat names.
const (
	StatCompletionPct   = "completion_pct"
	StatYardsPerAttempt = "yards_per_attempt"
	StatFieldGoalPct    = "fg_pct"
)

// passerScorer mixes volume stats with efficiency rates derived from
// attempts. Without attempts the rates count as missing.
type passerScorer struct {
	stats []PremierStat
}

func (s *passerScorer) Group() string { return "passer" }

func (s *passerScorer) Score(rec model.SeasonStatRecord, conferenceStrength float64) Result {
	values := make([]statValue, len(s.stats))
	for i, ps := range s.stats {
		switch ps.Name {
		case StatCompletionPct:
			values[i] = rate(rec, StatCompletionPct, "completions", "pass_attempts")
		case StatYardsPerAttempt:
			values[i] = ratio(rec, "passing_yards", "pass_attempts")
			if !values[i].present {
				v, ok := rec.Stat(StatYardsPerAttempt)
				values[i] = statValue{value: v, present: ok}
			}
		default:
			v, ok := rec.Stat(ps.Name)
			values[i] = statValue{value: v, present: ok}
		}
	}
	return combine(s.stats, values, conferenceStrength)
}

func (s *passerScorer) bands() []PremierStat { return s.stats }

func (s *passerScorer) withBand(stat string, b Band) (Scorer, error) {
	stats, err := replaceBand(s.stats, stat, b)
	if err != nil {
		return nil, err
	}
	return &passerScorer{stats: stats}, nil
}

// kickerScorer rewards accuracy derived from makes over attempts plus
// volume and long-range makes.
type kickerScorer struct {
	stats []PremierStat
}

func (s *kickerScorer) Group() string { return "kicker" }

func (s *kickerScorer) Score(rec model.SeasonStatRecord, conferenceStrength float64) Result {
	values := make([]statValue, len(s.stats))
	for i, ps := range s.stats {
		if ps.Name == StatFieldGoalPct {
			values[i] = rate(rec, StatFieldGoalPct, "fg_made", "fg_attempts")
			continue
		}
		v, ok := rec.Stat(ps.Name)
		values[i] = statValue{value: v, present: ok}
	}
	return combine(s.stats, values, conferenceStrength)
}

func (s *kickerScorer) bands() []PremierStat { return s.stats }

func (s *kickerScorer) withBand(stat string, b Band) (Scorer, error) {
	stats, err := replaceBand(s.stats, stat, b)
	if err != nil {
		return nil, err
	}
	return &kickerScorer{stats: stats}, nil
}

// rate derives num/den as a fraction. When the denominator is absent a
// directly supplied fraction under name is used. Rates are clamped to
// [0,1].
func rate(rec model.SeasonStatRecord, name, num, den string) statValue {
	v := ratio(rec, num, den)
	if !v.present {
		direct, ok := rec.Stat(name)
		if !ok {
			return statValue{}
		}
		v = statValue{value: direct, present: true}
	}
	v.value = clamp(v.value, 0, 1)
	return v
}
