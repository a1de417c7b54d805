package types_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/okian/varsity/internal/domain/model"
	types "github.com/okian/varsity/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEntry(t *testing.T) {
	Convey("Given a valuation", t, func() {
		v := &model.Valuation{
			AthleteID:     "qb-1",
			Season:        2024,
			Position:      model.QB,
			WAR:           model.WARResult{WAR: 1.62},
			CombinedValue: decimal.RequireFromString("1250000.50"),
		}

		Convey("When building an entry", func() {
			e := types.EntryFrom(v)

			Convey("Then it copies the ranking fields", func() {
				So(e.Rank, ShouldEqual, 0)
				So(e.AthleteID, ShouldEqual, "qb-1")
				So(e.Position, ShouldEqual, model.QB)
				So(e.WAR, ShouldEqual, 1.62)
				So(e.CombinedValue.String(), ShouldEqual, "1250000.5")
			})
		})
	})
}

func TestLess(t *testing.T) {
	Convey("Given entries", t, func() {
		rich := types.Entry{AthleteID: "b", CombinedValue: decimal.NewFromInt(200)}
		poor := types.Entry{AthleteID: "a", CombinedValue: decimal.NewFromInt(100)}
		tieA := types.Entry{AthleteID: "a", Season: 2024, CombinedValue: decimal.NewFromInt(200)}

		Convey("Then higher value ranks first", func() {
			So(types.Less(rich, poor), ShouldBeTrue)
			So(types.Less(poor, rich), ShouldBeFalse)
		})

		Convey("Then ties break by athlete id", func() {
			So(types.Less(tieA, rich), ShouldBeTrue)
			So(types.Less(rich, tieA), ShouldBeFalse)
		})

		Convey("Then equal athletes break by season", func() {
			older := types.Entry{AthleteID: "a", Season: 2023, CombinedValue: decimal.NewFromInt(200)}
			So(types.Less(older, tieA), ShouldBeTrue)
			So(types.Less(tieA, older), ShouldBeFalse)
		})
	})
}
