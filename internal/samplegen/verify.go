package samplegen

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/okian/varsity/internal/domain/model"
)

// Verify returns one message per bound v breaks. An empty result means
// the valuation is consistent.
func Verify(v *model.Valuation, f Floors) []string {
	var out []string
	fail := func(format string, args ...any) {
		out = append(out, v.AthleteID+": "+fmt.Sprintf(format, args...))
	}

	if s := v.WAR.PerformanceScore; s < 0 || s > 100 {
		fail("performance score %.2f outside [0,100]", s)
	}
	if f.PlayerValue > 0 && v.PlayerValue.LessThan(decimal.NewFromFloat(f.PlayerValue)) {
		fail("player value %s below floor %.2f", v.PlayerValue, f.PlayerValue)
	}
	if f.NIL > 0 && v.NILPotential.LessThan(decimal.NewFromFloat(f.NIL)) {
		fail("nil potential %s below floor %.2f", v.NILPotential, f.NIL)
	}
	if f.PlayerValue > 0 && v.ConfidenceLow.LessThan(decimal.NewFromFloat(f.PlayerValue)) {
		fail("confidence low %s below floor %.2f", v.ConfidenceLow, f.PlayerValue)
	}
	if v.ConfidenceLow.GreaterThan(v.CombinedValue) || v.CombinedValue.GreaterThan(v.ConfidenceHigh) {
		fail("combined value %s outside band [%s, %s]", v.CombinedValue, v.ConfidenceLow, v.ConfidenceHigh)
	}
	if v.RiskDiscount < 0 || v.RiskDiscount >= 1 {
		fail("risk discount %.4f outside [0,1)", v.RiskDiscount)
	}
	if v.RunID == "" {
		fail("missing run id")
	}
	return out
}
