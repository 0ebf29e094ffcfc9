package importer

import (
	"fmt"

	"github.com/eamon-archive/eamon-import/internal/adventure"
)

// Batch is the common intermediate format produced by every Source: the full
// decoded entity set of one import run, before cross-reference resolution.
type Batch struct {
	Rooms     []*adventure.Room
	Artifacts []*adventure.Artifact
	Effects   []*adventure.Effect
	Monsters  []*adventure.Monster

	// Warnings records recoverable problems: dropped linkages, skipped
	// optional files. They are logged, never fatal.
	Warnings []string
}

// Warnf appends a formatted warning to the batch.
func (b *Batch) Warnf(format string, args ...any) {
	b.Warnings = append(b.Warnings, fmt.Sprintf(format, args...))
}

// Room returns the decoded room with the given key, or nil.
func (b *Batch) Room(adventureID int64, roomID int) *adventure.Room {
	for _, r := range b.Rooms {
		if r.AdventureID == adventureID && r.RoomID == roomID {
			return r
		}
	}
	return nil
}

// ResolveDoors links door/gate artifacts to the room exits that reference
// them. Decoders leave a door-crossing exit with RoomTo zero and DoorID set;
// this pass copies each door's room-beyond value onto every matching exit in
// the same adventure, regardless of the order the files were decoded in.
//
// A door whose id no exit references is skipped with a warning; whether that
// indicates bad data or authoring-tool quirks is not decidable here, so the
// skip is deliberate.
//
// Postcondition: returns warnings for unmatched doors; the batch is mutated
// in place.
func ResolveDoors(b *Batch) []string {
	type doorKey struct {
		adventureID int64
		doorID      int
	}

	// Phase 1: index unresolved exits by the door id they wait on.
	pending := make(map[doorKey][]*adventure.RoomExit)
	for _, r := range b.Rooms {
		for i := range r.Exits {
			e := &r.Exits[i]
			if e.DoorID != 0 {
				k := doorKey{adventureID: r.AdventureID, doorID: e.DoorID}
				pending[k] = append(pending[k], e)
			}
		}
	}

	// Phase 2: resolve against the fully decoded artifact set.
	var warnings []string
	for _, a := range b.Artifacts {
		if a.Door == nil || a.Door.RoomBeyond == 0 {
			continue
		}
		k := doorKey{adventureID: a.AdventureID, doorID: a.ArtifactID}
		exits, ok := pending[k]
		if !ok {
			warnings = append(warnings, fmt.Sprintf(
				"door artifact #%d (adventure %d) has no matching room exit; skipping",
				a.ArtifactID, a.AdventureID))
			continue
		}
		for _, e := range exits {
			e.RoomTo = a.Door.RoomBeyond
		}
	}
	return warnings
}
