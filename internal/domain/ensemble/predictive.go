package ensemble

import (
	"math"
	"sort"

	"github.com/okian/varsity/internal/domain/model"
)

// Projection tuning.
const (
	reliabilityGames = 12.0
	recencyDecay     = 0.6
	minMultiplier    = 0.5
	maxMultiplier    = 1.5
	spreadSaturation = 25.0
	fullHistory      = 3.0
)

// classCurve is the expected year-over-year development by class.
var classCurve = map[model.ClassYear]float64{
	model.Freshman:  0.06,
	model.Sophomore: 0.04,
	model.Junior:    0.02,
	model.Senior:    0,
	model.Graduate:  -0.02,
}

// SeasonScore is one scored season used for projection.
type SeasonScore struct {
	Season int     `json:"season"`
	Score  float64 `json:"score"`
	Games  int     `json:"games"`
}

// Projection is the predictive pillar's view of next season.
type Projection struct {
	Weighted    float64 `json:"weighted_score"`
	Reliability float64 `json:"reliability"`
	Projected   float64 `json:"projected_score"`
	Multiplier  float64 `json:"multiplier"`
	Confidence  float64 `json:"confidence"`
	Seasons     int     `json:"seasons"`
}

// Project regresses a recency-weighted score toward the position mean by
// reliability games/(games+12), applies the class development curve and
// expresses the result as a multiplier on the current score.
func Project(current SeasonScore, history []SeasonScore, positionMean float64, class model.ClassYear) Projection {
	seasons := make([]SeasonScore, 0, len(history)+1)
	for _, h := range history {
		if h.Season != current.Season {
			seasons = append(seasons, h)
		}
	}
	seasons = append(seasons, current)
	sort.SliceStable(seasons, func(i, j int) bool { return seasons[i].Season > seasons[j].Season })

	var weighted, totalWeight float64
	games := 0
	scores := make([]float64, 0, len(seasons))
	w := 1.0
	for _, s := range seasons {
		weighted += w * s.Score
		totalWeight += w
		w *= recencyDecay
		if s.Games > 0 {
			games += s.Games
		}
		scores = append(scores, s.Score)
	}
	weighted /= totalWeight

	p := Projection{Weighted: weighted, Seasons: len(seasons)}
	p.Reliability = float64(games) / (float64(games) + reliabilityGames)
	regressed := positionMean + p.Reliability*(weighted-positionMean)
	p.Projected = clamp(regressed*(1+classCurve[class]), 0, 100)

	p.Multiplier = 1.0
	if current.Score > 0 {
		p.Multiplier = clamp(p.Projected/current.Score, minMultiplier, maxMultiplier)
	}

	history3 := math.Min(float64(len(seasons))/fullHistory, 1)
	steadiness := 1 - math.Min(stdev(scores)/spreadSaturation, 1)
	p.Confidence = clamp(0.4*history3+0.4*p.Reliability+0.2*steadiness, 0, 1)
	return p
}
