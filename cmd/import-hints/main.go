// Command import-hints decodes an EDX volume's shared hint pool, upserts the
// hints, and claims each adventure's slice of the pool.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/eamon-archive/eamon-import/internal/config"
	"github.com/eamon-archive/eamon-import/internal/importer/hints"
	"github.com/eamon-archive/eamon-import/internal/observability"
	"github.com/eamon-archive/eamon-import/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	sourceDir := flag.String("source", "", "path to source data directory")
	edxVolume := flag.Int("edx", 0, "EDX volume number")
	flag.Parse()

	if *sourceDir == "" || *edxVolume == 0 {
		fmt.Fprintln(os.Stderr, "usage: import-hints -source <dir> -edx <n> [-config <path>]")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	log, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	start := time.Now()
	adventures := postgres.NewAdventureRepository(pool.DB())
	members, err := adventures.ListByEDX(ctx, *edxVolume)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	result, err := hints.Load(*sourceDir, *edxVolume, members)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	for _, w := range result.Warnings {
		log.Warn(w)
	}

	repo := postgres.NewHintRepository(pool.DB())
	for _, h := range result.Hints {
		if err := repo.Save(ctx, h); err != nil {
			fmt.Fprintf(os.Stderr, "error: saving hint %d: %v\n", h.Index, err)
			os.Exit(1)
		}
	}
	for advID, r := range result.Ranges {
		if err := repo.AssignRange(ctx, *edxVolume, r.First, r.Last, advID); err != nil {
			fmt.Fprintf(os.Stderr, "error: assigning range for adventure %d: %v\n", advID, err)
			os.Exit(1)
		}
	}

	log.Info("hint import complete",
		zap.Int("edx", *edxVolume),
		zap.Int("hints", len(result.Hints)),
		zap.Int("ranges", len(result.Ranges)),
		zap.Int("warnings", len(result.Warnings)),
	)
	fmt.Printf("import complete in %s\n", time.Since(start).Round(time.Millisecond))
}
