package reference_test

import (
	"errors"
	"os"
	"testing"

	"github.com/okian/varsity/internal/domain/model"
	"github.com/okian/varsity/internal/domain/reference"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDefaultData(t *testing.T) {
	Convey("Given the built-in reference tables", t, func() {
		d := reference.Default()

		Convey("Then they validate", func() {
			So(d.Validate(), ShouldBeNil)
		})

		Convey("Then QB is the highest-impact football position", func() {
			qb, err := d.Position(model.QB)
			So(err, ShouldBeNil)
			So(qb.Impact, ShouldEqual, 4.0)
			So(qb.Baseline, ShouldEqual, 45)
			for _, p := range []model.Position{model.RB, model.WR, model.TE, model.OL, model.DL, model.EDGE, model.LB, model.CB, model.S, model.K, model.P} {
				e, err := d.Position(p)
				So(err, ShouldBeNil)
				So(e.Impact, ShouldBeLessThan, qb.Impact)
				So(e.Impact, ShouldBeGreaterThanOrEqualTo, 1.0)
			}
		})

		Convey("Then unknown positions use the fallback entry", func() {
			e, err := d.Position(model.Unknown)
			So(err, ShouldBeNil)
			So(e.Baseline, ShouldEqual, 50)
		})

		Convey("Then each call returns independent maps", func() {
			other := reference.Default()
			delete(other.Positions, "QB")
			_, err := d.Position(model.QB)
			So(err, ShouldBeNil)
		})
	})
}

func TestLookups(t *testing.T) {
	Convey("Given reference data with gaps", t, func() {
		d := reference.Default()
		delete(d.Positions, "WR")
		delete(d.Positions, reference.FallbackKey)

		Convey("When a known position has no entry", func() {
			_, err := d.Position(model.WR)
			So(errors.Is(err, reference.ErrConfigurationMissing), ShouldBeTrue)
		})

		Convey("When an unknown position has no fallback", func() {
			_, err := d.Position(model.Unknown)
			So(errors.Is(err, reference.ErrConfigurationMissing), ShouldBeTrue)
		})

		Convey("When a position has no market rate", func() {
			e := d.Positions["TE"]
			e.MarketRate = 0
			d.Positions["TE"] = e
			_, err := d.Position(model.TE)
			So(errors.Is(err, reference.ErrConfigurationMissing), ShouldBeTrue)
		})

		Convey("When a sport has no limits", func() {
			_, err := d.Limits(model.Sport("hockey"))
			So(errors.Is(err, reference.ErrConfigurationMissing), ShouldBeTrue)
		})
	})

	Convey("Given conference lookups", t, func() {
		d := reference.Default()

		Convey("Then names are normalised before lookup", func() {
			m, ok := d.ConferenceMultiplier("Big Ten")
			So(ok, ShouldBeTrue)
			So(m, ShouldEqual, 1.18)
		})

		Convey("Then unknown conferences use the default multiplier", func() {
			m, ok := d.ConferenceMultiplier("Ivy")
			So(ok, ShouldBeFalse)
			So(m, ShouldEqual, 1.0)
		})

		Convey("Then tier multipliers are clamped", func() {
			d.ConferenceTiers["elite"] = 2.0
			m, _ := d.ConferenceMultiplier("sec")
			So(m, ShouldEqual, 1.25)
		})
	})
}

func TestValidate(t *testing.T) {
	Convey("Given invalid reference data", t, func() {
		d := reference.Default()
		d.ValueFloor = 0
		e := d.Positions["RB"]
		e.Baseline = 140
		d.Positions["RB"] = e
		d.Conferences["ivy"] = "missing"

		err := d.Validate()
		So(errors.Is(err, reference.ErrInvalidReference), ShouldBeTrue)
		So(err.Error(), ShouldContainSubstring, "value_floor")
		So(err.Error(), ShouldContainSubstring, "position RB")
		So(err.Error(), ShouldContainSubstring, "conference ivy")
	})
}

func TestCatalog(t *testing.T) {
	Convey("Given a catalog with a season override", t, func() {
		def := reference.Default()
		s2024 := reference.Default()
		s2024.Version = "2024.3"
		c := reference.NewCatalog(def, map[int]*reference.Data{2024: s2024, 2023: nil})

		So(c.For(2024).Version, ShouldEqual, "2024.3")
		So(c.For(2025).Version, ShouldEqual, reference.DefaultVersion)
		So(c.Seasons(), ShouldResemble, []int{2024})
	})
}

func TestLoadFile(t *testing.T) {
	Convey("Given a YAML reference document", t, func() {
		path := writeTemp(`
version: "2026.0"
value_floor: 7500
positions:
  QB:
    baseline: 47
    mean_score: 53
    impact: 4.0
    market_rate: 750000
    scarcity: 1.3
    visibility: 1.6
conferences:
  ivy: lower
`)
		defer func() { _ = os.Remove(path) }()

		d, err := reference.LoadFile(path)
		So(err, ShouldBeNil)
		So(d.Version, ShouldEqual, "2026.0")
		So(d.ValueFloor, ShouldEqual, 7500)
		So(d.Positions["QB"].MarketRate, ShouldEqual, 750000)
		So(d.Positions["WR"].MarketRate, ShouldEqual, 300000)

		m, ok := d.ConferenceMultiplier("Ivy")
		So(ok, ShouldBeTrue)
		So(m, ShouldEqual, 0.90)
	})

	Convey("Given a document that breaks validation", t, func() {
		path := writeTemp(`
positions:
  RB:
    baseline: 40
`)
		defer func() { _ = os.Remove(path) }()

		_, err := reference.LoadFile(path)
		So(errors.Is(err, reference.ErrInvalidReference), ShouldBeTrue)
	})

	Convey("Given a missing file", t, func() {
		_, err := reference.LoadFile("/non/existent/reference.yaml")
		So(errors.Is(err, reference.ErrLoadReference), ShouldBeTrue)
	})

	Convey("Given catalog paths", t, func() {
		path := writeTemp(`version: "2023.1"`)
		defer func() { _ = os.Remove(path) }()

		c, err := reference.LoadCatalog("", map[string]string{"2023": path})
		So(err, ShouldBeNil)
		So(c.For(2023).Version, ShouldEqual, "2023.1")

		_, err = reference.LoadCatalog("", map[string]string{"last-year": path})
		So(errors.Is(err, reference.ErrLoadReference), ShouldBeTrue)
	})
}

func writeTemp(content string) string {
	f, err := os.CreateTemp("", "varsity-reference-*.yaml")
	if err != nil {
		panic(err)
	}
	if _, err := f.WriteString(content); err != nil {
		panic(err)
	}
	if err := f.Close(); err != nil {
		panic(err)
	}
	return f.Name()
}
