package performance

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for scorer configuration.
var (
	ErrInvalidBand   = errors.New("invalid breakpoint band")
	ErrUnknownStat   = errors.New("unknown premier stat")
	ErrNotCalibrated = errors.New("scorer does not accept breakpoints")
)

// Breakpoint maps a raw stat value to score points.
type Breakpoint struct {
	Raw    float64 `koanf:"raw" json:"raw"`
	Points float64 `koanf:"points" json:"points"`
}

// Band is a piecewise-linear mapping from raw values to 0..100 points.
// Values below the first breakpoint score its points; values past the
// last saturate at its points.
type Band []Breakpoint

// Eval returns the points for x.
func (b Band) Eval(x float64) float64 {
	if len(b) == 0 {
		return 0
	}
	if x <= b[0].Raw {
		return b[0].Points
	}
	for i := 1; i < len(b); i++ {
		if x <= b[i].Raw {
			lo, hi := b[i-1], b[i]
			frac := (x - lo.Raw) / (hi.Raw - lo.Raw)
			return lo.Points + frac*(hi.Points-lo.Points)
		}
	}
	return b[len(b)-1].Points
}

// Validate requires at least two breakpoints, strictly increasing raw
// values and non-decreasing points within [0,100]. Non-decreasing points
// make every band monotonic.
func (b Band) Validate() error {
	if len(b) < 2 {
		return fmt.Errorf("%w: need at least 2 breakpoints, got %d", ErrInvalidBand, len(b))
	}
	for i, bp := range b {
		if bp.Points < 0 || bp.Points > 100 {
			return fmt.Errorf("%w: points %.1f at index %d outside [0,100]", ErrInvalidBand, bp.Points, i)
		}
		if i == 0 {
			continue
		}
		if bp.Raw <= b[i-1].Raw {
			return fmt.Errorf("%w: raw values must increase (index %d)", ErrInvalidBand, i)
		}
		if bp.Points < b[i-1].Points {
			return fmt.Errorf("%w: points must not decrease (index %d)", ErrInvalidBand, i)
		}
	}
	return nil
}

func band(pairs ...float64) Band {
	b := make(Band, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		b = append(b, Breakpoint{Raw: pairs[i], Points: pairs[i+1]})
	}
	return b
}
