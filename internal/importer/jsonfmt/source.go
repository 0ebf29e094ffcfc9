// Package jsonfmt decodes pre-converted classic adventure data: one JSON
// array file per entity kind, produced by an external conversion program.
// Artifact variant fields use the EDX positional convention under generic
// fieldN keys, and locations use the classic thresholds.
package jsonfmt

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/eamon-archive/eamon-import/internal/adventure"
	"github.com/eamon-archive/eamon-import/internal/importer"
)

var _ importer.Source = (*Source)(nil)

// Source implements importer.Source for a directory holding rooms.json,
// artifacts.json, and monsters.json, plus an optional effects.json.
type Source struct {
	adventureID int64
}

// NewSource constructs a Source targeting the given adventure.
func NewSource(adventureID int64) *Source {
	return &Source{adventureID: adventureID}
}

// doorExitBase offsets exit values that reference a door artifact instead of
// a room.
const doorExitBase = 500

func readJSON[T any](dir, name string) ([]T, error) {
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return out, nil
}

// Load decodes the JSON files. A missing effects.json is skipped with a
// warning; the three other files are required.
func (s *Source) Load(dir string) (*importer.Batch, error) {
	batch := &importer.Batch{}

	rooms, err := readJSON[jsonRoom](dir, "rooms.json")
	if err != nil {
		return nil, err
	}
	for i := range rooms {
		batch.Rooms = append(batch.Rooms, s.decodeRoom(&rooms[i]))
	}

	artifacts, err := readJSON[jsonArtifact](dir, "artifacts.json")
	if err != nil {
		return nil, err
	}
	for i := range artifacts {
		batch.Artifacts = append(batch.Artifacts, s.decodeArtifact(&artifacts[i]))
	}

	if _, err := os.Stat(filepath.Join(dir, "effects.json")); err != nil {
		batch.Warnf("no effects.json found in %s; skipping effects", dir)
	} else {
		effects, err := readJSON[jsonEffect](dir, "effects.json")
		if err != nil {
			return nil, err
		}
		for _, e := range effects {
			batch.Effects = append(batch.Effects, &adventure.Effect{
				AdventureID: s.adventureID,
				EffectID:    int(e.ID),
				Text:        importer.FixText(e.Text),
			})
		}
	}

	monsters, err := readJSON[jsonMonster](dir, "monsters.json")
	if err != nil {
		return nil, err
	}
	for i := range monsters {
		batch.Monsters = append(batch.Monsters, s.decodeMonster(&monsters[i]))
	}

	return batch, nil
}

func (s *Source) decodeRoom(r *jsonRoom) *adventure.Room {
	room := &adventure.Room{
		AdventureID: s.adventureID,
		RoomID:      int(r.ID),
		Name:        r.Name,
		Description: importer.FixText(r.Description),
		IsDark:      r.Light != nil && !*r.Light,
	}
	exits := r.exits()
	for _, direction := range adventure.Directions {
		v := exits[direction]
		if v == nil || int(*v) == 0 {
			continue
		}
		raw := adventure.NormalizeExit(int(*v))
		exit := adventure.RoomExit{Direction: direction, RoomTo: raw}
		if raw > doorExitBase {
			exit.DoorID = raw - doorExitBase
			exit.RoomTo = 0 // filled in from the door artifact
		}
		room.Exits = append(room.Exits, exit)
	}
	return room
}

func (s *Source) decodeArtifact(ar *jsonArtifact) *adventure.Artifact {
	a := &adventure.Artifact{
		AdventureID: s.adventureID,
		ArtifactID:  int(ar.ID),
		Name:        importer.SentenceCase(ar.Name),
		Description: importer.FixText(ar.Description),
		Value:       int(ar.Value),
		Type:        adventure.ArtifactType(int(ar.Type)),
		Weight:      int(ar.Weight),
		Location:    adventure.DecodeClassicLocation(int(ar.RoomID)),
	}

	f5, f6, f7, f8 := ar.Field5, ar.Field6, ar.Field7, ar.Field8
	switch a.Type {
	case adventure.TypeWeapon, adventure.TypeMagicWeapon:
		a.Weapon = &adventure.WeaponDetail{
			Odds:  f5.val(0),
			Type:  adventure.WeaponType(f6.val(0)),
			Dice:  f7.val(0),
			Sides: f8.val(0),
		}
	case adventure.TypeContainer:
		a.Container = &adventure.ContainerDetail{KeyID: f5.val(0), IsOpen: f6.val(0) != 0}
	case adventure.TypeLightSource:
		a.Light = &adventure.LightDetail{Quantity: f5.val(0)}
	case adventure.TypeDrinkable, adventure.TypeEdible:
		a.Consumable = &adventure.ConsumableDetail{
			Dice:     f5.val(0),
			Sides:    1,
			Quantity: f6.val(0),
			IsOpen:   f7.val(0) != 0,
		}
	case adventure.TypeReadable:
		a.Readable = &adventure.ReadableDetail{
			FirstEffect: f5.val(0),
			NumEffects:  f6.val(0),
			IsOpen:      f7.val(0) != 0,
		}
	case adventure.TypeDoor:
		a.Door = &adventure.DoorDetail{
			RoomBeyond: f5.val(0),
			KeyID:      f6.val(0),
			IsOpen:     f7.val(0) == 0, // stored as a closed flag
		}
	case adventure.TypeBoundMonster:
		a.BoundMonster = &adventure.BoundMonsterDetail{
			MonsterID: f5.val(0),
			KeyID:     f6.val(0),
			GuardID:   f7.val(0),
		}
	case adventure.TypeWearable:
		a.Wearable = &adventure.WearableDetail{
			ArmorClass: f5.val(0),
			ArmorType:  adventure.ArmorType(f6.val(0)),
		}
	case adventure.TypeDisguisedMonster:
		a.Disguise = &adventure.DisguiseDetail{
			MonsterID:   f5.val(0),
			FirstEffect: f6.val(0),
			NumEffects:  f7.val(0),
		}
	}

	a.ReclassifyDeadBody()
	return a
}

func (s *Source) decodeMonster(m *jsonMonster) *adventure.Monster {
	friendOdds := int(m.Friendliness)
	return &adventure.Monster{
		AdventureID:  s.adventureID,
		MonsterID:    int(m.ID),
		Name:         importer.SentenceCase(m.Name),
		Description:  importer.FixText(m.Description),
		Hardiness:    int(m.Hardiness),
		Agility:      int(m.Agility),
		Friendliness: adventure.FriendlinessFromOdds(friendOdds),
		FriendOdds:   friendOdds,
		Courage:      int(m.Courage),
		RoomID:       int(m.RoomID),
		Count:        1,
		DefenseBonus: m.DefenseOdds.val(0),
		ArmorClass:   m.ArmorClass.val(0),
		WeaponID:     m.WeaponID.val(0),
		AttackOdds:   m.OffenseOdds.val(50),
		WeaponDice:   m.WeaponDice.val(0),
		WeaponSides:  m.WeaponSides.val(0),
	}
}
