package classic

import (
	"strings"

	"github.com/eamon-archive/eamon-import/internal/adventure"
	"github.com/eamon-archive/eamon-import/internal/importer"
)

var _ importer.Source = (*V6Source)(nil)

// V6Source decodes v6.x Dungeon Designer listings. All records belong to a
// single, operator-named adventure.
type V6Source struct {
	adventureID int64
}

// NewV6Source constructs a V6Source targeting the given adventure.
func NewV6Source(adventureID int64) *V6Source {
	return &V6Source{adventureID: adventureID}
}

var (
	roomV6Re = mustCompileReport(
		`ROOM # ([0-9]+) \[([A-Za-z0-9' /.()-]+)\]\s+`,
		`DESC:\s+([A-Za-z0-9'\s /.,;()!?-]+)\s+`,
		`DIRECTIONS MOVED IN--\s+`,
		`NORTH\s+:\s+(-?[0-9]+)\s+(\[.+\])?\s+`,
		`SOUTH\s+:\s+(-?[0-9]+)\s+(\[.+\])?\s+`,
		`EAST\s+:\s+(-?[0-9]+)\s+(\[.+\])?\s+`,
		`WEST\s+:\s+(-?[0-9]+)\s+(\[.+\])?\s+`,
		`UP\s+:\s+(-?[0-9]+)\s+(\[.+\])?\s+`,
		`DOWN\s+:\s+(-?[0-9]+)\s+(\[.+\])?\s+`,
	)

	artifactV6Re = mustCompileReport(
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
	)

	monsterV6Re = mustCompileReport(
		`MONSTER # ([0-9]+) \[([A-Za-z0-9' /.()-]+)\]\s+`,
		`DESC:\s+([A-Za-z0-9'\s /.,;()!?-]+)\s+`,
		`HARD\.+(-?[0-9]+)\s+`,
		`AGIL\.+(-?[0-9]+)\s+(\[.+\])?\s+`,
		`FRIEND\.+(-?[0-9]+) %\s+`,
		`COUR\.+(-?[0-9]+) %\s+`,
		`ROOM\.+(-?[0-9]+)\s+(\[.+\])?\s+`,
		`WGHT\.+(-?[0-9]+)\s+`,
		`D\.ODDS\.+(-?[0-9]+) %\s+`,
		`ARMOUR\.+(-?[0-9]+)\s+`,
		`WEAPON#\.+(-?[0-9]+)\s+(\[.+\])?\s+`,
		`O\.ODDS\.+(-?[0-9]+) %\s+`,
		`W\.DICE\.+(-?[0-9]+)\s+`,
		`W\.SIDES\.+(-?[0-9]+)\s+`,
	)
)

// Load scrapes the four v6 report files.
func (s *V6Source) Load(dir string) (*importer.Batch, error) {
	batch := &importer.Batch{}

	data, err := readReport(dir, "rooms.txt")
	if err != nil {
		return nil, err
	}
	for _, m := range roomV6Re.FindAllStringSubmatch(data, -1) {
		room := &adventure.Room{
			AdventureID: s.adventureID,
			RoomID:      atoi(m[1]),
			Name:        strings.ToLower(m[2]),
			Description: importer.FixText(m[3]),
		}
		for _, d := range classicDirections {
			raw := adventure.NormalizeExit(atoi(m[d.group]))
			if raw == adventure.ExitNone {
				continue
			}
			room.Exits = append(room.Exits, adventure.RoomExit{Direction: d.code, RoomTo: raw})
		}
		batch.Rooms = append(batch.Rooms, room)
	}

	data, err = readReport(dir, "artifacts.txt")
	if err != nil {
		return nil, err
	}
	for _, m := range artifactV6Re.FindAllStringSubmatch(data, -1) {
		a := &adventure.Artifact{
			AdventureID: s.adventureID,
			ArtifactID:  atoi(m[1]),
			Name:        importer.SentenceCase(m[2]),
			Description: importer.FixText(m[3]),
			Value:       atoi(m[4]),
			Type:        adventure.ArtifactType(atoi(m[5])),
			Weight:      atoi(m[7]),
			Location:    adventure.DecodeClassicLocation(atoi(m[8])),
		}
		if a.Type.IsWeapon() {
			a.Weapon = &adventure.WeaponDetail{
				Odds:  optional(m[11], 0),
				Type:  adventure.WeaponType(optional(m[13], 0)),
				Dice:  optional(m[16], 0),
				Sides: optional(m[18], 0),
			}
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
	for _, m := range monsterV6Re.FindAllStringSubmatch(data, -1) {
		friendOdds := atoi(m[7])
		batch.Monsters = append(batch.Monsters, &adventure.Monster{
			AdventureID:  s.adventureID,
			MonsterID:    atoi(m[1]),
			Name:         importer.SentenceCase(m[2]),
			Description:  importer.FixText(m[3]),
			Hardiness:    atoi(m[4]),
			Agility:      atoi(m[5]),
			Friendliness: adventure.FriendlinessFromOdds(friendOdds),
			FriendOdds:   friendOdds,
			Courage:      atoi(m[8]),
			RoomID:       atoi(m[9]),
			Count:        1,
			DefenseBonus: atoi(m[12]),
			ArmorClass:   atoi(m[13]),
			WeaponID:     atoi(m[14]),
			AttackOdds:   atoi(m[16]),
			WeaponDice:   atoi(m[17]),
			WeaponSides:  atoi(m[18]),
		})
	}

	return batch, nil
}
