// Package brand estimates NIL potential from visibility signals. The
// estimate is reported on its own and never folded into player value.
package brand

import (
	"math"

	"github.com/okian/varsity/internal/domain/model"
)

// Saturation points and component weights.
const (
	followersSaturation  = 10_000_000
	engagementSaturation = 0.10
	mentionsSaturation   = 200
	nationalTVSaturation = 12

	followersWeight  = 0.45
	engagementWeight = 0.20
	mentionsWeight   = 0.20
	nationalTVWeight = 0.15

	DefaultBaseRate = 250000.0
	DefaultFloor    = 1000.0
)

// Components is the normalised 0..1 score per signal.
type Components struct {
	Followers  float64 `json:"followers"`
	Engagement float64 `json:"engagement"`
	Mentions   float64 `json:"mentions"`
	NationalTV float64 `json:"national_tv"`
}

// Score is the weighted sum of the components, in [0,1].
func (c Components) Score() float64 {
	return followersWeight*c.Followers + engagementWeight*c.Engagement +
		mentionsWeight*c.Mentions + nationalTVWeight*c.NationalTV
}

// Normalize maps raw signals to components. Followers use a log10 scale
// saturating at 10M.
func Normalize(s model.BrandSignals) Components {
	var followers float64
	if s.Followers > 1 {
		followers = math.Log10(s.Followers) / math.Log10(followersSaturation)
	}
	engagement := s.EngagementRate
	if engagement > 1 {
		engagement /= 100
	}
	return Components{
		Followers:  clamp(followers, 0, 1),
		Engagement: clamp(engagement/engagementSaturation, 0, 1),
		Mentions:   clamp(s.MediaMentions/mentionsSaturation, 0, 1),
		NationalTV: clamp(s.NationalTVAppears/nationalTVSaturation, 0, 1),
	}
}

// Estimate is one NIL computation.
type Estimate struct {
	Components Components `json:"components"`
	Score      float64    `json:"score"`
	Value      float64    `json:"value"`
}

// Estimator computes NIL potential.
type Estimator struct {
	base  float64
	floor float64
}

// New creates an Estimator. Non-positive values fall back to defaults.
func New(base, floor float64) *Estimator {
	if base <= 0 {
		base = DefaultBaseRate
	}
	if floor <= 0 {
		floor = DefaultFloor
	}
	return &Estimator{base: base, floor: floor}
}

// Estimate returns max(floor, base × score × program × visibility).
// Multipliers that are not positive count as 1.
func (e *Estimator) Estimate(s model.BrandSignals, programMultiplier, visibility float64) Estimate {
	if programMultiplier <= 0 {
		programMultiplier = 1
	}
	if visibility <= 0 {
		visibility = 1
	}
	c := Normalize(s)
	score := c.Score()
	value := e.base * score * programMultiplier * visibility
	if value < e.floor {
		value = e.floor
	}
	return Estimate{Components: c, Score: score, Value: value}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
