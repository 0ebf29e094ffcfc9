// Command dump-adventure exports one stored adventure as YAML, for eyeballing
// import results and diffing re-imports.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/eamon-archive/eamon-import/internal/adventure"
	"github.com/eamon-archive/eamon-import/internal/config"
	"github.com/eamon-archive/eamon-import/internal/storage/postgres"
)

type dump struct {
	Adventure *adventure.Adventure  `yaml:"adventure"`
	Rooms     []*adventure.Room     `yaml:"rooms"`
	Artifacts []*adventure.Artifact `yaml:"artifacts"`
	Effects   []*adventure.Effect   `yaml:"effects"`
	Monsters  []*adventure.Monster  `yaml:"monsters"`
}

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	adventureID := flag.Int64("adventure", 0, "adventure id")
	outPath := flag.String("out", "", "output file (default stdout)")
	flag.Parse()

	if *adventureID == 0 {
		fmt.Fprintln(os.Stderr, "usage: dump-adventure -adventure <id> [-out <file>] [-config <path>]")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	adventures := postgres.NewAdventureRepository(pool.DB())
	store := postgres.NewStore(pool.DB())

	var d dump
	if d.Adventure, err = adventures.GetByID(ctx, *adventureID); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if d.Rooms, err = store.RoomsByAdventure(ctx, *adventureID); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if d.Artifacts, err = store.ArtifactsByAdventure(ctx, *adventureID); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if d.Effects, err = store.EffectsByAdventure(ctx, *adventureID); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if d.Monsters, err = store.MonstersByAdventure(ctx, *adventureID); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(&d); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := enc.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
