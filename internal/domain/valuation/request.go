package valuation

import (
	"fmt"
	"strings"

	"github.com/okian/varsity/internal/domain/model"
)

// Request is everything needed to value one athlete-season. Sport and
// season come from Record; nothing is read from ambient state.
type Request struct {
	Athlete   model.Athlete            `json:"athlete"`
	Record    model.SeasonStatRecord   `json:"record"`
	History   []model.SeasonStatRecord `json:"history,omitempty"`
	Team      model.TeamContext        `json:"team"`
	Brand     model.BrandSignals       `json:"brand"`
	Risk      model.RiskProfile        `json:"risk"`
	Market    model.MarketInputs       `json:"market"`
	Archetype string                   `json:"archetype,omitempty"`
}

// Validate checks identity fields. Numeric inputs are clamped later, not
// rejected.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Athlete.ID) == "" {
		return fmt.Errorf("%w: athlete id is required", ErrInvalidRequest)
	}
	if r.Record.AthleteID != "" && r.Record.AthleteID != r.Athlete.ID {
		return fmt.Errorf("%w: record belongs to %q", ErrInvalidRequest, r.Record.AthleteID)
	}
	if _, ok := model.ParseSport(string(r.Record.Sport)); !ok {
		return fmt.Errorf("%w: unknown sport %q", ErrInvalidRequest, r.Record.Sport)
	}
	if r.Record.Season <= 0 {
		return fmt.Errorf("%w: season is required", ErrInvalidRequest)
	}
	return nil
}

// Sport returns the normalised sport of the record.
func (r Request) Sport() model.Sport {
	s, _ := model.ParseSport(string(r.Record.Sport))
	return s
}
