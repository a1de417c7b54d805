// Package types contains read shapes shared by the store and the API.
package types

import (
	"github.com/shopspring/decimal"

	"github.com/okian/varsity/internal/domain/model"
)

// Entry is one row of the valuation leaderboard.
type Entry struct {
	Rank          int             `json:"rank"`
	AthleteID     string          `json:"athlete_id"`
	Season        int             `json:"season"`
	Position      model.Position  `json:"position"`
	WAR           float64         `json:"war"`
	CombinedValue decimal.Decimal `json:"combined_value"`
}

// EntryFrom builds an unranked leaderboard row from a valuation.
func EntryFrom(v *model.Valuation) Entry {
	return Entry{
		AthleteID:     v.AthleteID,
		Season:        v.Season,
		Position:      v.Position,
		WAR:           v.WAR.WAR,
		CombinedValue: v.CombinedValue,
	}
}

// Less orders entries by combined value descending, then athlete id and
// season ascending.
func Less(a, b Entry) bool {
	if c := a.CombinedValue.Cmp(b.CombinedValue); c != 0 {
		return c > 0
	}
	if a.AthleteID != b.AthleteID {
		return a.AthleteID < b.AthleteID
	}
	return a.Season < b.Season
}
