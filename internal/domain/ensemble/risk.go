package ensemble

import (
	"math"

	"github.com/okian/varsity/internal/domain/model"
)

// Per-category discount caps.
const (
	InjuryCap    = 0.40
	VarianceCap  = 0.25
	CharacterCap = 0.30
	SchemeCap    = 0.20
)

// Risk is the per-category discount breakdown and their multiplicative
// total. Total is always in [0,1).
type Risk struct {
	Injury    float64 `json:"injury"`
	Variance  float64 `json:"variance"`
	Character float64 `json:"character"`
	Scheme    float64 `json:"scheme"`
	Total     float64 `json:"total"`
}

// CombineRisk clamps each category to its cap and combines them as
// 1 - Π(1 - d). The variance category is the larger of the supplied value
// and the spread of historical scores (stdev / 100).
func CombineRisk(p model.RiskProfile, scores []float64) Risk {
	r := Risk{
		Injury:    clamp(p.Injury, 0, InjuryCap),
		Variance:  clamp(math.Max(p.Variance, stdev(scores)/100), 0, VarianceCap),
		Character: clamp(p.Character, 0, CharacterCap),
		Scheme:    clamp(p.SchemeFit, 0, SchemeCap),
	}
	keep := (1 - r.Injury) * (1 - r.Variance) * (1 - r.Character) * (1 - r.Scheme)
	r.Total = 1 - keep
	return r
}

func stdev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	var mean float64
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	var ss float64
	for _, x := range xs {
		ss += (x - mean) * (x - mean)
	}
	return math.Sqrt(ss / float64(len(xs)))
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
