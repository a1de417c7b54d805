// Package dollar converts WAR into a currency player value.
package dollar

// Multiplier bounds and the default floor.
const (
	MinSchemeFit = 0.9
	MaxSchemeFit = 1.15
	MinRiskAdj   = 0.5
	MaxRiskAdj   = 1.0

	DefaultFloor = 5000.0
)

// Converter maps WAR to dollars.
type Converter struct {
	floor float64
}

// Option configures a Converter.
type Option func(*Converter)

// WithFloor sets the minimum player value. Non-positive floors are
// ignored.
func WithFloor(floor float64) Option {
	return func(c *Converter) {
		if floor > 0 {
			c.floor = floor
		}
	}
}

// New creates a Converter.
func New(opts ...Option) *Converter {
	c := &Converter{floor: DefaultFloor}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Floor returns the configured floor.
func (c *Converter) Floor() float64 { return c.floor }

// SchemeFit clamps a scheme fit multiplier; 0 means not supplied.
func SchemeFit(m float64) float64 {
	if m == 0 {
		return 1.0
	}
	return clamp(m, MinSchemeFit, MaxSchemeFit)
}

// RiskAdjustment clamps a risk multiplier; 0 means not supplied.
func RiskAdjustment(m float64) float64 {
	if m == 0 {
		return 1.0
	}
	return clamp(m, MinRiskAdj, MaxRiskAdj)
}

// Raw is WAR × rate × clamped multipliers without the floor.
func (c *Converter) Raw(war, rate, schemeFit, riskAdj float64) float64 {
	return war * rate * SchemeFit(schemeFit) * RiskAdjustment(riskAdj)
}

// Convert returns max(floor, Raw). The result is always positive.
func (c *Converter) Convert(war, rate, schemeFit, riskAdj float64) float64 {
	v := c.Raw(war, rate, schemeFit, riskAdj)
	if v < c.floor {
		return c.floor
	}
	return v
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
