package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/varsity/internal/samplegen"
	"github.com/okian/varsity/pkg/logger"
)

func main() {
	cfg, help, err := samplegen.ParseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if help {
		samplegen.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stats, err := samplegen.Run(ctx, cfg)
	if stats != nil {
		fmt.Printf("generated=%d batches=%d succeeded=%d failed=%d violations=%d top=%s (%s) duration=%s\n",
			stats.Generated, stats.Batches, stats.Succeeded, stats.Failed, len(stats.Violations),
			stats.TopAthlete, stats.TopValue, stats.Duration)
	}
	if err != nil {
		logger.Get().Error(ctx, "sample batch failed", logger.Error(err))
		os.Exit(1)
	}
}
