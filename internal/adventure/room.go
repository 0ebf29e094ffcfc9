package adventure

// Exit destination sentinels. Real destinations are positive room ids.
const (
	// ExitNone marks a direction with no connection. Exits that decode to
	// ExitNone are not kept.
	ExitNone = 0
	// ExitMainHall marks the adventure exit back to the main hall.
	ExitMainHall = -999
	// exitMainHallOld is the pre-conversion main hall sentinel still found
	// in older listings.
	exitMainHallOld = -99
)

// Directions lists the ten directional codes in EDX record order. Older
// classic formats only use the first six.
var Directions = []string{"n", "s", "e", "w", "u", "d", "ne", "nw", "se", "sw"}

// Room is one location in an adventure, keyed by (adventure, RoomID).
type Room struct {
	AdventureID int64
	RoomID      int
	Name        string
	Description string
	IsDark      bool
	Exits       []RoomExit
}

// RoomExit is one directional connection owned by a room.
//
// A non-zero DoorID means the connection runs through a door artifact; RoomTo
// stays zero until the matching door supplies the room beyond.
type RoomExit struct {
	Direction string
	RoomTo    int
	DoorID    int
	// EffectID references a narrative effect shown when the exit is used.
	EffectID int
}

// NormalizeExit converts raw source exit values to the stored convention:
// the old -99 main hall sentinel becomes ExitMainHall, everything else is
// passed through.
func NormalizeExit(raw int) int {
	if raw == exitMainHallOld {
		return ExitMainHall
	}
	return raw
}

// Exit returns the room's exit in the given direction, or nil.
func (r *Room) Exit(direction string) *RoomExit {
	for i := range r.Exits {
		if r.Exits[i].Direction == direction {
			return &r.Exits[i]
		}
	}
	return nil
}
