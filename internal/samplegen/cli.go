package samplegen

import (
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/varsity/internal/domain/brand"
	"github.com/okian/varsity/internal/domain/dollar"
)

// ParseFlags builds a Config from command line arguments. help reports
// whether -help was given.
func ParseFlags(args []string) (cfg *Config, help bool, err error) {
	cfg = &Config{}
	fs := flag.NewFlagSet("sample-batch", flag.ContinueOnError)
	fs.StringVar(&cfg.BaseURL, "url", "http://localhost:9080", "Base URL of the service")
	fs.IntVar(&cfg.NumAthletes, "athletes", 1000, "Number of athletes to generate")
	fs.IntVar(&cfg.BatchSize, "batch", 100, "Requests per batch")
	fs.IntVar(&cfg.Workers, "workers", runtime.NumCPU(), "Concurrent batch posters")
	fs.Int64Var(&cfg.Seed, "seed", 1, "Generator seed")
	fs.DurationVar(&cfg.Timeout, "timeout", 30*time.Second, "HTTP request timeout")
	fs.StringVar(&cfg.OutputFile, "output", "", "Write generated requests to this JSON file")
	fs.Float64Var(&cfg.Floors.PlayerValue, "value-floor", dollar.DefaultFloor, "Minimum player value")
	fs.Float64Var(&cfg.Floors.NIL, "nil-floor", brand.DefaultFloor, "Minimum NIL potential")
	fs.BoolVar(&cfg.Offline, "offline", false, "Value batches in process instead of calling the service")
	fs.StringVar(&cfg.ReferencePath, "references", "", "Reference tables file for -offline (default built-in)")
	fs.BoolVar(&help, "help", false, "Show help")
	if err := fs.Parse(args); err != nil {
		return nil, false, err
	}
	return cfg, help, nil
}

// ShowHelp prints usage information for the sample batch tool.
func ShowHelp() {
	os.Stdout.WriteString(`Varsity sample batch tool
=========================

Generates deterministic synthetic athlete seasons, values them through
POST /valuations/batch (or an in-process engine with -offline) and checks
every valuation against its floors and score bounds.

Usage:
  go run ./cmd/sample-batch [options]

Options:
  -url string         Base URL of the service (default "http://localhost:9080")
  -athletes int       Number of athletes to generate (default 1000)
  -batch int          Requests per batch (default 100)
  -workers int        Concurrent batch posters (default CPU cores)
  -seed int           Generator seed (default 1)
  -timeout duration   HTTP request timeout (default 30s)
  -output string      Write generated requests to this JSON file
  -value-floor float  Minimum player value (default 5000)
  -nil-floor float    Minimum NIL potential (default 1000)
  -offline            Value batches in process instead of calling the service
  -references string  Reference tables file for -offline (default built-in)
  -help               Show this help message
`)
}
