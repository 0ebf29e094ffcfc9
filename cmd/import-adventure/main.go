// Command import-adventure decodes one legacy adventure data set and upserts
// it into the database.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/eamon-archive/eamon-import/internal/config"
	"github.com/eamon-archive/eamon-import/internal/importer"
	"github.com/eamon-archive/eamon-import/internal/importer/classic"
	"github.com/eamon-archive/eamon-import/internal/importer/edx"
	"github.com/eamon-archive/eamon-import/internal/importer/jsonfmt"
	"github.com/eamon-archive/eamon-import/internal/observability"
	"github.com/eamon-archive/eamon-import/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	format := flag.String("format", "", "source format: edx, classic6, classic7, json")
	sourceDir := flag.String("source", "", "path to source data directory")
	adventureID := flag.Int64("adventure", 0, "adventure id (classic6, classic7, json)")
	edxVolume := flag.Int("edx", 0, "EDX volume number (edx format)")
	flag.Parse()

	if *format == "" || *sourceDir == "" {
		fmt.Fprintln(os.Stderr, "usage: import-adventure -format <fmt> -source <dir> [-adventure <id>] [-edx <n>]")
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

	adventures := postgres.NewAdventureRepository(pool.DB())

	var src importer.Source
	switch *format {
	case "edx":
		if *edxVolume == 0 {
			fmt.Fprintln(os.Stderr, "edx format requires -edx <volume>")
			os.Exit(1)
		}
		members, err := adventures.ListByEDX(ctx, *edxVolume)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		if len(members) == 0 {
			fmt.Fprintf(os.Stderr, "no adventures registered for EDX volume %d\n", *edxVolume)
			os.Exit(1)
		}
		src = edx.NewSource(members)
	case "classic6":
		src = classic.NewV6Source(mustAdventureID(*adventureID))
	case "classic7":
		adv, err := adventures.GetByID(ctx, mustAdventureID(*adventureID))
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		src = classic.NewV7Source(adv.ID, adv.DeadBodyID)
	case "json":
		src = jsonfmt.NewSource(mustAdventureID(*adventureID))
	default:
		fmt.Fprintf(os.Stderr, "unknown format %q (supported: edx, classic6, classic7, json)\n", *format)
		os.Exit(1)
	}

	start := time.Now()
	imp := importer.New(src, postgres.NewStore(pool.DB()), log)
	if err := imp.Run(ctx, *sourceDir); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("import complete in %s\n", time.Since(start).Round(time.Millisecond))
}

func mustAdventureID(id int64) int64 {
	if id == 0 {
		fmt.Fprintln(os.Stderr, "this format requires -adventure <id>")
		os.Exit(1)
	}
	return id
}
