package classic

import (
	"strings"

	"github.com/eamon-archive/eamon-import/internal/adventure"
	"github.com/eamon-archive/eamon-import/internal/importer"
)

var _ importer.Source = (*V7Source)(nil)

// V7Source decodes v7.x Dungeon Designer listings. The v7 report adds the
// room light flag, monster group counts, an extended artifact field block,
// and door references encoded as exit values offset by 500.
type V7Source struct {
	adventureID int64
	// deadBodyID is the first artifact id of the listing's dead-body block,
	// zero when the adventure has none.
	deadBodyID int
}

// NewV7Source constructs a V7Source targeting the given adventure.
func NewV7Source(adventureID int64, deadBodyID int) *V7Source {
	return &V7Source{adventureID: adventureID, deadBodyID: deadBodyID}
}

// doorExitBase offsets exit values that reference a door artifact instead of
// a room.
const doorExitBase = 500

var (
	roomV7Re = mustCompileReport(
		`ROOM # ([0-9]+) \[([A-Za-z0-9' /.()\[\]-]+)\]\s+`,
		`DESC:\s+([A-Za-z0-9'\s /.,;()!?-]+)\s+`,
		`DIRECTIONS MOVED IN--\s+`,
		`NORTH\s+:\s+(-?[0-9]+)\s+(\[.+\])?\s+`,
		`SOUTH\s+:\s+(-?[0-9]+)\s+(\[.+\])?\s+`,
		`EAST\s+:\s+(-?[0-9]+)\s+(\[.+\])?\s+`,
		`WEST\s+:\s+(-?[0-9]+)\s+(\[.+\])?\s+`,
		`UP\s+:\s+(-?[0-9]+)\s+(\[.+\])?\s+`,
		`DOWN\s+:\s+(-?[0-9]+)\s+(\[.+\])?\s+`,
		`LIGHT:\s+([0-9])\s+`,
	)

	artifactV7Re = mustCompileReport(
		`ARTIFACT # ([0-9]+) \[([A-Za-z0-9' /.()-]+)\]\s+`,
		`DESC:\s+([A-Za-z0-9'\s /.,;()!?-]+)\s+`,
		`VALUE\.+(-?[0-9]+)\s+`,
		`TYPE\.+(-?[0-9]+)\s+(\[.+\])?\s+`,
		`WEIGHT\.+(-?[0-9]+)\s+`,
		`ROOM\.+(-?[0-9]+)\s+(\[.+\])?\s+`,
		`(ODDS\.+(-?[0-9]+)\s+)?`,
		`(W.TYPE\.+(-?[0-9]+)\s+(\[.+\])?\s+)?`,
		`(DICE\.+(-?[0-9]+)\s+)?`,
		`(SIDES\.+(-?[0-9]+)\s+)?`,
		`(NEXT ROOM\.+(-?[0-9]+)\s+)?`,
		`(KEY#\.+(-?[0-9]+)\s+)?`,
		`(STRENGTH\.+(-?[0-9]+)\s+)?`,
		`(HIDDEN\?\.+(-?[0-9]+)\s+)?`,
		`(HEAL AMT\.+(-?[0-9]+)\s+)?`,
		`(NBR USES\.+(-?[0-9]+)\s+)?`,
		`(1ST EFFECT\.+(-?[0-9]+)\s+)?`,
		`(# EFFECTS\.+(-?[0-9]+)\s+)?`,
		`(OPEN\?\.+(-?[0-9]+)\s+)?`,
		`(COUNTER\?\.+(-?[0-9]+)\s+)?`,
	)

	monsterV7Re = mustCompileReport(
		`MONSTER # ([0-9]+) \[([A-Za-z0-9' /.()-]+)\]\s+`,
		`DESC:\s+([A-Za-z0-9'\s /.,;()!?-]+)\s+`,
		`HARD\.+(-?[0-9]+)\s+`,
		`AGIL\.+(-?[0-9]+)\s+`,
		`# IN GROUP\.+(-?[0-9]+)\s+`,
		`COUR\.+(-?[0-9]+) ?%?\s+`,
		`ROOM\.+(-?[0-9]+)\s+(\[.+\])?\s+`,
		`WGHT\.+(-?[0-9]+)\s+`,
		`ARMOR\.+(-?[0-9]+)\s+`,
		`WEAPON\s?#\.+(-?[0-9]+)\s+(\[.+\])?\s+`,
		`# DICE\.+(-?[0-9]+)\s+`,
		`# SIDES\.+(-?[0-9]+)\s+`,
		`FRIEND\?\.+(-?[0-9]+)\s+(\[.+\])?\s+`,
	)
)

// Load scrapes the four v7 report files.
func (s *V7Source) Load(dir string) (*importer.Batch, error) {
	batch := &importer.Batch{}

	data, err := readReport(dir, "rooms.txt")
	if err != nil {
		return nil, err
	}
	for _, m := range roomV7Re.FindAllStringSubmatch(data, -1) {
		room := &adventure.Room{
			AdventureID: s.adventureID,
			RoomID:      atoi(m[1]),
			Name:        importer.SentenceCase(m[2]),
			Description: importer.FixText(m[3]),
			IsDark:      m[16] == "0",
		}
		for _, d := range classicDirections {
			raw := adventure.NormalizeExit(atoi(m[d.group]))
			if raw == adventure.ExitNone {
				continue
			}
			exit := adventure.RoomExit{Direction: d.code, RoomTo: raw}
			if raw > doorExitBase {
				exit.DoorID = raw - doorExitBase
				exit.RoomTo = 0 // filled in from the door artifact
			}
			room.Exits = append(room.Exits, exit)
		}
		batch.Rooms = append(batch.Rooms, room)
	}

	data, err = readReport(dir, "artifacts.txt")
	if err != nil {
		return nil, err
	}
	for _, m := range artifactV7Re.FindAllStringSubmatch(data, -1) {
		a := &adventure.Artifact{
			AdventureID: s.adventureID,
			ArtifactID:  atoi(m[1]),
			Name:        strings.ToLower(m[2]),
			Description: importer.FixText(m[3]),
			Value:       atoi(m[4]),
			Type:        adventure.ArtifactType(atoi(m[5])),
			Weight:      atoi(m[7]),
			Location:    adventure.DecodeClassicLocation(atoi(m[8])),
		}
		s.decodeArtifactPayload(a, m)

		if s.deadBodyID != 0 && a.ArtifactID >= s.deadBodyID {
			a.SetType(adventure.TypeDeadBody)
			a.DeadBody = &adventure.DeadBodyDetail{GetAll: false}
		}
		a.ReclassifyDeadBody()
		batch.Artifacts = append(batch.Artifacts, a)
	}

	data, err = readReport(dir, "effects.txt")
	if err != nil {
		return nil, err
	}
	batch.Effects = parseEffects(data, s.adventureID)

	data, err = readReport(dir, "monsters.txt")
	if err != nil {
		return nil, err
	}
	for _, m := range monsterV7Re.FindAllStringSubmatch(data, -1) {
		// The v7 listing carries an enumerated friendliness code; there are
		// no random-odds monsters in this format.
		friendliness, _ := adventure.FriendlinessFromCode(atoi(m[16]))
		batch.Monsters = append(batch.Monsters, &adventure.Monster{
			AdventureID:  s.adventureID,
			MonsterID:    atoi(m[1]),
			Name:         strings.ToLower(m[2]),
			Description:  importer.FixText(m[3]),
			Hardiness:    atoi(m[4]),
			Agility:      atoi(m[5]),
			Count:        optional(m[6], 1),
			Courage:      atoi(m[7]),
			RoomID:       atoi(m[8]),
			ArmorClass:   atoi(m[11]),
			WeaponID:     atoi(m[12]),
			WeaponDice:   atoi(m[14]),
			WeaponSides:  atoi(m[15]),
			Friendliness: friendliness,
			FriendOdds:   -1,
			AttackOdds:   50,
		})
	}

	return batch, nil
}

// decodeArtifactPayload maps the optional v7 field block onto the artifact
// type's payload. Group numbering follows the artifact regex: 11 odds,
// 13 weapon type, 16 dice, 18 sides, 20 next room, 22 key, 24 strength,
// 26 hidden, 28 heal amount, 30 uses, 32 first effect, 34 effect count,
// 36 open, 38 counter.
func (s *V7Source) decodeArtifactPayload(a *adventure.Artifact, m []string) {
	switch a.Type {
	case adventure.TypeWeapon, adventure.TypeMagicWeapon:
		a.Weapon = &adventure.WeaponDetail{
			Odds:  optional(m[11], 0),
			Type:  adventure.WeaponType(optional(m[13], 0)),
			Dice:  optional(m[16], 0),
			Sides: optional(m[18], 0),
		}
	case adventure.TypeContainer:
		a.Container = &adventure.ContainerDetail{
			KeyID:  optional(m[22], 0),
			IsOpen: optional(m[36], 0) != 0,
		}
	case adventure.TypeLightSource:
		a.Light = &adventure.LightDetail{Quantity: optional(m[38], 0)}
	case adventure.TypeDrinkable, adventure.TypeEdible:
		c := &adventure.ConsumableDetail{
			Dice:   optional(m[28], 0),
			Sides:  1,
			IsOpen: optional(m[36], 0) != 0,
		}
		if a.Type == adventure.TypeDrinkable {
			c.Quantity = optional(m[30], 0)
		}
		a.Consumable = c
	case adventure.TypeReadable:
		a.Readable = &adventure.ReadableDetail{
			FirstEffect: optional(m[32], 0),
			NumEffects:  optional(m[34], 0),
			IsOpen:      optional(m[36], 0) != 0,
		}
	case adventure.TypeDoor:
		// The door strength field (group 24) has no normalized home and is
		// not imported.
		a.Door = &adventure.DoorDetail{
			RoomBeyond: optional(m[20], 0),
			KeyID:      optional(m[22], 0),
			IsOpen:     optional(m[36], 0) != 0,
			Hidden:     optional(m[26], 0) != 0,
		}
	case adventure.TypeDisguisedMonster:
		a.Disguise = &adventure.DisguiseDetail{
			FirstEffect: optional(m[32], 0),
			NumEffects:  optional(m[34], 0),
		}
	}
}
