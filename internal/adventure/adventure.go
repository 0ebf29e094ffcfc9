// Package adventure defines the normalized entities produced by the legacy
// data importers, plus the pure decoding rules (offset attribution, location
// codes, friendliness) shared by every source format.
package adventure

import "sort"

// Adventure identifies one game scenario. A single EDX file set can hold
// several adventures back to back; the per-entity offsets partition the
// shared record numbering into per-adventure ranges.
type Adventure struct {
	ID          int64
	Name        string
	Slug        string
	Description string

	// EDX is the numeric id of the legacy EDX file set this adventure was
	// distributed in, zero when the adventure came from another format.
	EDX int

	// 1-based starting record index of this adventure's entities within the
	// combined EDX source files.
	RoomOffset     int
	ArtifactOffset int
	EffectOffset   int
	MonsterOffset  int

	// ProgramFile is the adventure's BASIC main program file name, when
	// recovered. Used for synonym scraping and hint-range recovery.
	ProgramFile string

	// FirstHint/LastHint bound the adventure's slice of the shared EDX hint
	// pool. Zero means unknown; the hints stay globally shared.
	FirstHint int
	LastHint  int

	// DeadBodyID is the first artifact id of the dead-body block in v7
	// listings. Zero means the adventure has none.
	DeadBodyID int
}

// Attribution is the result of mapping a sequential source-record index onto
// an adventure and its local entity numbering.
type Attribution struct {
	AdventureID int64
	LocalID     int
}

// OffsetTable maps 1-based record indices in a combined source file to
// adventures. Entries are kept sorted by ascending offset.
type OffsetTable struct {
	entries []offsetEntry
}

type offsetEntry struct {
	adventureID int64
	offset      int
}

// NewOffsetTable builds an OffsetTable from (adventure id, offset) pairs.
// Offsets are 1-based starting indices.
//
// Precondition: every offset must be >= 1.
// Postcondition: the table is sorted and ready for Attribute calls.
func NewOffsetTable(offsets map[int64]int) OffsetTable {
	entries := make([]offsetEntry, 0, len(offsets))
	for id, off := range offsets {
		entries = append(entries, offsetEntry{adventureID: id, offset: off})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].offset < entries[j].offset })
	return OffsetTable{entries: entries}
}

// Attribute resolves the adventure owning the record at the given 1-based
// index: the adventure with the largest offset not exceeding the index. The
// local id is the record's position within that adventure, also 1-based.
//
// Precondition: index >= 1.
// Postcondition: ok is false only when no offset is <= index.
func (t OffsetTable) Attribute(index int) (Attribution, bool) {
	best := -1
	for i, e := range t.entries {
		if e.offset > index {
			break
		}
		best = i
	}
	if best < 0 {
		return Attribution{}, false
	}
	e := t.entries[best]
	return Attribution{AdventureID: e.adventureID, LocalID: index - e.offset + 1}, true
}

// Len returns the number of adventures in the table.
func (t OffsetTable) Len() int { return len(t.entries) }
