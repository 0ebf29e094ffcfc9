package jsonfmt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// flexInt tolerates the two spellings found in converted data files: JSON
// numbers and numeric strings.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 1 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("numeric string %q: %w", s, err)
		}
		*f = flexInt(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}

// val returns the value of an optional field, or fallback when absent.
func (f *flexInt) val(fallback int) int {
	if f == nil {
		return fallback
	}
	return int(*f)
}

// jsonRoom is one entry of rooms.json. Direction keys are optional; a
// missing key means no exit.
type jsonRoom struct {
	ID          flexInt  `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Light       *bool    `json:"light"`
	N           *flexInt `json:"n"`
	S           *flexInt `json:"s"`
	E           *flexInt `json:"e"`
	W           *flexInt `json:"w"`
	U           *flexInt `json:"u"`
	D           *flexInt `json:"d"`
	NE          *flexInt `json:"ne"`
	NW          *flexInt `json:"nw"`
	SE          *flexInt `json:"se"`
	SW          *flexInt `json:"sw"`
}

// exits returns the room's direction fields in record order.
func (r *jsonRoom) exits() map[string]*flexInt {
	return map[string]*flexInt{
		"n": r.N, "s": r.S, "e": r.E, "w": r.W, "u": r.U, "d": r.D,
		"ne": r.NE, "nw": r.NW, "se": r.SE, "sw": r.SW,
	}
}

// jsonArtifact is one entry of artifacts.json. The fieldN keys follow the
// EDX positional convention: their meaning depends on the type code.
type jsonArtifact struct {
	ID          flexInt  `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Value       flexInt  `json:"value"`
	Type        flexInt  `json:"type"`
	Weight      flexInt  `json:"weight"`
	RoomID      flexInt  `json:"room_id"`
	Field5      *flexInt `json:"field5"`
	Field6      *flexInt `json:"field6"`
	Field7      *flexInt `json:"field7"`
	Field8      *flexInt `json:"field8"`
}

// jsonEffect is one entry of effects.json.
type jsonEffect struct {
	ID   flexInt `json:"id"`
	Text string  `json:"text"`
}

// jsonMonster is one entry of monsters.json.
type jsonMonster struct {
	ID           flexInt  `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Hardiness    flexInt  `json:"hardiness"`
	Agility      flexInt  `json:"agility"`
	Friendliness flexInt  `json:"friendliness"`
	Courage      flexInt  `json:"courage"`
	RoomID       flexInt  `json:"room_id"`
	DefenseOdds  *flexInt `json:"defense_odds"`
	ArmorClass   *flexInt `json:"armor_class"`
	WeaponID     *flexInt `json:"weapon_id"`
	OffenseOdds  *flexInt `json:"offense_odds"`
	WeaponDice   *flexInt `json:"weapon_dice"`
	WeaponSides  *flexInt `json:"weapon_sides"`
}
