package config_test

import (
	"context"
	"runtime"
	"testing"

	"github.com/okian/varsity/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.QueueSize, convey.ShouldEqual, 10_000)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU()*2)
			convey.So(cfg.DedupeSize, convey.ShouldEqual, 100_000)
			convey.So(cfg.MaxBatchSize, convey.ShouldEqual, 500)
			convey.So(cfg.DefaultArchetype, convey.ShouldEqual, "balanced")
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given a default config", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("When an archetype does not sum to one", func() {
			cfg.Archetypes = map[string]config.Archetype{"lopsided": {Production: 0.9, Market: 0.3}}
			err := cfg.Validate()
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(err.Error(), convey.ShouldContainSubstring, "lopsided")
		})

		convey.Convey("When the default archetype is not defined", func() {
			cfg.DefaultArchetype = "win_now"
			convey.So(cfg.Validate(), convey.ShouldNotBeNil)

			convey.Convey("Then defining it makes the config valid", func() {
				cfg.Archetypes = map[string]config.Archetype{"win_now": {Production: 0.7, Scarcity: 0.3}}
				convey.So(cfg.Validate(), convey.ShouldBeNil)
				convey.So(len(cfg.ArchetypeList()), convey.ShouldEqual, 1)
			})
		})

		convey.Convey("When the log format is unknown", func() {
			cfg.LogFormat = "xml"
			convey.So(cfg.Validate(), convey.ShouldNotBeNil)
		})

		convey.Convey("When a season reference key is not a number", func() {
			cfg.SeasonReferences = map[string]string{"next": "/tmp/x.yaml"}
			convey.So(cfg.Validate(), convey.ShouldNotBeNil)
		})
	})
}
