package performance

import (
	"errors"
	"fmt"

	"github.com/okian/varsity/internal/domain/model"
)

// Registry maps positions to scorers. It is immutable once built and safe
// for concurrent use.
type Registry struct {
	scorers map[model.Position]Scorer
}

// Option configures a Registry.
type Option func(*Registry) error

// WithScorer installs s for pos, replacing the default.
func WithScorer(pos model.Position, s Scorer) Option {
	return func(r *Registry) error {
		if s == nil {
			return fmt.Errorf("nil scorer for %s", pos)
		}
		r.scorers[pos] = s
		return nil
	}
}

// WithBreakpoints replaces the breakpoint band of one premier stat.
func WithBreakpoints(pos model.Position, stat string, b Band) Option {
	return func(r *Registry) error {
		s, ok := r.scorers[pos]
		if !ok {
			return fmt.Errorf("%w: no scorer for position %s", ErrUnknownStat, pos)
		}
		c, ok := s.(calibratable)
		if !ok {
			return fmt.Errorf("%w: %s", ErrNotCalibrated, s.Group())
		}
		next, err := c.withBand(stat, b)
		if err != nil {
			return fmt.Errorf("%s: %w", pos, err)
		}
		r.scorers[pos] = next
		return nil
	}
}

// NewRegistry builds the default scorer set and applies opts. Every band
// of every calibratable scorer is validated.
func NewRegistry(opts ...Option) (*Registry, error) {
	r := &Registry{scorers: defaultScorers()}
	var errs []error
	for _, opt := range opts {
		if err := opt(r); err != nil {
			errs = append(errs, err)
		}
	}
	for pos, s := range r.scorers {
		c, ok := s.(calibratable)
		if !ok {
			continue
		}
		for _, ps := range c.bands() {
			if err := ps.Band.Validate(); err != nil {
				errs = append(errs, fmt.Errorf("%s/%s: %w", pos, ps.Name, err))
			}
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return r, nil
}

// MustRegistry is NewRegistry without options; the built-in tables are
// always valid.
func MustRegistry() *Registry {
	r, err := NewRegistry()
	if err != nil {
		panic(err)
	}
	return r
}

// Scorer returns the scorer for pos.
func (r *Registry) Scorer(pos model.Position) (Scorer, bool) {
	s, ok := r.scorers[pos]
	return s, ok
}

// Score scores rec for pos. Unknown positions get the neutral result.
func (r *Registry) Score(pos model.Position, rec model.SeasonStatRecord, conferenceStrength float64) Result {
	s, ok := r.scorers[pos]
	if !ok {
		return NeutralResult()
	}
	return s.Score(rec, conferenceStrength)
}
