// Package importer orchestrates offline imports of legacy adventure data.
// Format-specific decoders live in subpackages and produce a Batch; this
// package resolves cross-references and hands the result to the storage
// collaborator.
package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eamon-archive/eamon-import/internal/adventure"
)

// Source loads one adventure data set from a format-specific directory
// layout and produces a Batch of decoded entities.
//
// Precondition: dir must exist and contain the files the format requires;
// a missing required file is a fatal error.
// Postcondition: returns a non-nil Batch or a non-nil error. Recoverable
// problems are recorded as Batch warnings, not errors.
type Source interface {
	Load(dir string) (*Batch, error)
}

// Store is the persistence collaborator. Every save is an upsert keyed by
// the entity's natural key (adventure id, local id); re-running an import
// leaves the stored entity set identical.
type Store interface {
	SaveRoom(ctx context.Context, r *adventure.Room) error
	SaveArtifact(ctx context.Context, a *adventure.Artifact) error
	SaveEffect(ctx context.Context, e *adventure.Effect) error
	SaveMonster(ctx context.Context, m *adventure.Monster) error
}

// Importer runs one import: decode, resolve, persist.
type Importer struct {
	source Source
	store  Store
	log    *zap.Logger
}

// New constructs an Importer.
//
// Precondition: source, store, and log must be non-nil.
func New(source Source, store Store, log *zap.Logger) *Importer {
	return &Importer{source: source, store: store, log: log}
}

// Run loads the source directory, resolves deferred cross-references, and
// persists every decoded entity. Warnings accumulated during decoding and
// resolution are logged and do not fail the run.
//
// Precondition: dir must satisfy the source's layout requirements.
// Postcondition: all decoded entities are persisted, or an error is
// returned. Entities persisted before an error remain persisted.
func (imp *Importer) Run(ctx context.Context, dir string) error {
	start := time.Now()
	log := imp.log.With(zap.String("run_id", uuid.NewString()), zap.String("dir", dir))

	batch, err := imp.source.Load(dir)
	if err != nil {
		return fmt.Errorf("loading source: %w", err)
	}
	batch.Warnings = append(batch.Warnings, ResolveDoors(batch)...)

	for _, w := range batch.Warnings {
		log.Warn(w)
	}

	for _, r := range batch.Rooms {
		if err := imp.store.SaveRoom(ctx, r); err != nil {
			return fmt.Errorf("saving room %d: %w", r.RoomID, err)
		}
	}
	for _, a := range batch.Artifacts {
		if err := imp.store.SaveArtifact(ctx, a); err != nil {
			return fmt.Errorf("saving artifact %d: %w", a.ArtifactID, err)
		}
	}
	for _, e := range batch.Effects {
		if err := imp.store.SaveEffect(ctx, e); err != nil {
			return fmt.Errorf("saving effect %d: %w", e.EffectID, err)
		}
	}
	for _, m := range batch.Monsters {
		if err := imp.store.SaveMonster(ctx, m); err != nil {
			return fmt.Errorf("saving monster %d: %w", m.MonsterID, err)
		}
	}

	log.Info("import complete",
		zap.Int("rooms", len(batch.Rooms)),
		zap.Int("artifacts", len(batch.Artifacts)),
		zap.Int("effects", len(batch.Effects)),
		zap.Int("monsters", len(batch.Monsters)),
		zap.Int("warnings", len(batch.Warnings)),
		zap.Duration("elapsed", time.Since(start).Round(time.Millisecond)),
	)
	return nil
}
