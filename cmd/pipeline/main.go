package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skilltrack/internal/app"
	"skilltrack/internal/config"
	"skilltrack/internal/database/seeder"
	"skilltrack/internal/pipeline"

	"github.com/joho/godotenv"
)

func main() {
	workers := flag.Int("workers", 4, "extraction worker count")
	limit := flag.Int("limit", 100, "jobs fetched per page")
	seed := flag.Bool("seed", false, "seed the vocabulary before running")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	container, err := app.NewContainer(cfg, log.Default())
	if err != nil {
		log.Fatalf("failed to build container: %v", err)
	}
	defer func() {
		if err := container.Close(); err != nil {
			log.Printf("cleanup error: %v", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Printf("pipeline=job_skills status=interrupted")
		cancel()
	}()

	if err := app.Migrate(ctx, container); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}
	container.Lookup.Refresh(ctx)

	if *seed {
		if err := seeder.Run(ctx, container.DB, log.Default()); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
		container.Lookup.Refresh(ctx)
		container.Models.Reset()
	}

	start := time.Now()
	if err := container.Pipeline.Run(ctx, pipeline.RunParams{Workers: *workers, Limit: *limit}); err != nil {
		log.Fatalf("pipeline failed after %s: %v", time.Since(start).Round(time.Millisecond), err)
	}
}
