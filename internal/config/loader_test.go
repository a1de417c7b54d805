package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/varsity/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.QueueSize, convey.ShouldEqual, 10_000)
				convey.So(cfg.DedupeSize, convey.ShouldEqual, 100_000)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("VARSITY_ADDR", ":8080")
			_ = os.Setenv("VARSITY_QUEUE_SIZE", "2000")
			_ = os.Setenv("VARSITY_WORKER_COUNT", "16")
			_ = os.Setenv("VARSITY_LOG_FORMAT", "json")
			_ = os.Setenv("VARSITY_MAX_BATCH_SIZE", "50")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.QueueSize, convey.ShouldEqual, 2000)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 16)
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.MaxBatchSize, convey.ShouldEqual, 50)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":9090"
queue_size: 3000
worker_count: 24
reference_path: /etc/varsity/reference.yaml
season_references:
  "2023": /etc/varsity/reference-2023.yaml
default_archetype: win_now
archetypes:
  win_now:
    production: 0.7
    scarcity: 0.3
breakpoints:
  EDGE:
    sacks:
      - {raw: 0, points: 0}
      - {raw: 6, points: 100}
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("VARSITY_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.QueueSize, convey.ShouldEqual, 3000)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 24)
				convey.So(cfg.ReferencePath, convey.ShouldEqual, "/etc/varsity/reference.yaml")
				convey.So(cfg.SeasonReferences["2023"], convey.ShouldEqual, "/etc/varsity/reference-2023.yaml")
				convey.So(cfg.Archetypes["win_now"].Production, convey.ShouldEqual, 0.7)
				convey.So(len(cfg.Breakpoints["EDGE"]["sacks"]), convey.ShouldEqual, 2)
				convey.So(cfg.Breakpoints["EDGE"]["sacks"][1].Raw, convey.ShouldEqual, 6)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":9090"
queue_size: 3000
worker_count: 24
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("VARSITY_CONFIG", tmpFile)
			_ = os.Setenv("VARSITY_ADDR", ":8080")
			_ = os.Setenv("VARSITY_WORKER_COUNT", "32")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")       // env
				convey.So(cfg.QueueSize, convey.ShouldEqual, 3000)     // file
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 32)     // env
				convey.So(cfg.DedupeSize, convey.ShouldEqual, 100_000) // default
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("VARSITY_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("VARSITY_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("VARSITY_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("VARSITY_QUEUE_SIZE", "invalid")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When an archetype in the file is invalid", func() {
			tmpFile := createTempConfigFile(`
archetypes:
  greedy:
    production: 1.0
    market: 0.5
`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("VARSITY_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then loading fails validation", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"VARSITY_CONFIG",
		"VARSITY_ADDR",
		"VARSITY_QUEUE_SIZE",
		"VARSITY_WORKER_COUNT",
		"VARSITY_DEDUPE_SIZE",
		"VARSITY_LOG_FORMAT",
		"VARSITY_MAX_BATCH_SIZE",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "varsity-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
