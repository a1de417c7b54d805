package model_test

import (
	"testing"

	"github.com/okian/varsity/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestResolvePosition(t *testing.T) {
	Convey("Given raw position tags", t, func() {
		Convey("When the tag is a football alias", func() {
			p, ok := model.ResolvePosition(model.Football, " de ")
			So(ok, ShouldBeTrue)
			So(p, ShouldEqual, model.EDGE)
		})

		Convey("When the same tag means different things per sport", func() {
			fb, _ := model.ResolvePosition(model.Football, "C")
			bb, _ := model.ResolvePosition(model.Basketball, "C")
			So(fb, ShouldEqual, model.OL)
			So(bb, ShouldEqual, model.C)
		})

		Convey("When the tag is not recognised", func() {
			p, ok := model.ResolvePosition(model.Football, "LONGSNAPPER")
			So(ok, ShouldBeFalse)
			So(p, ShouldEqual, model.Unknown)
		})

		Convey("When the sport is not recognised", func() {
			p, ok := model.ResolvePosition(model.Sport("cricket"), "QB")
			So(ok, ShouldBeFalse)
			So(p, ShouldEqual, model.Unknown)
		})
	})
}

func TestParseSport(t *testing.T) {
	Convey("Given sport names", t, func() {
		s, ok := model.ParseSport("Basketball")
		So(ok, ShouldBeTrue)
		So(s, ShouldEqual, model.Basketball)

		_, ok = model.ParseSport("hockey")
		So(ok, ShouldBeFalse)
	})
}

func TestSeasonStatRecord(t *testing.T) {
	Convey("Given a season record", t, func() {
		limits := model.Limits{MaxGames: 15, MaxSnaps: 1100}
		rec := model.SeasonStatRecord{
			GamesPlayed:  12,
			GamesStarted: 9,
			Snaps:        700,
			Stats:        map[string]float64{"sacks": 8, "tackles": -3},
		}

		Convey("Then absent stats are reported as absent", func() {
			_, ok := rec.Stat("pressures")
			So(ok, ShouldBeFalse)
		})

		Convey("Then negative stats read as zero but present", func() {
			v, ok := rec.Stat("tackles")
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 0)
		})

		Convey("Then the starter rate is started over played", func() {
			So(rec.StarterRate(), ShouldAlmostEqual, 0.75)
		})

		Convey("When the record is within limits", func() {
			So(rec.Violations(limits), ShouldBeEmpty)
		})

		Convey("When counts exceed season maxima", func() {
			bad := rec
			bad.GamesPlayed = 20
			bad.GamesStarted = 25
			bad.Snaps = 1500

			So(len(bad.Violations(limits)), ShouldEqual, 3)

			fixed := bad.Clamped(limits)
			So(fixed.GamesPlayed, ShouldEqual, 15)
			So(fixed.GamesStarted, ShouldEqual, 15)
			So(fixed.Snaps, ShouldEqual, 1100)
			So(fixed.Violations(limits), ShouldBeEmpty)
		})

		Convey("When no games were played", func() {
			empty := model.SeasonStatRecord{}
			So(empty.StarterRate(), ShouldEqual, 0)
		})
	})
}
