// Package edx decodes the raw Eamon Deluxe binary data suite: paired
// fixed-width .DAT record files and .DSC description-block files, plus the
// NAME.DAT set header. One EDX file set can hold several adventures; records
// are attributed to adventures through the per-entity offset tables.
package edx

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/eamon-archive/eamon-import/internal/adventure"
	"github.com/eamon-archive/eamon-import/internal/importer"
)

var _ importer.Source = (*Source)(nil)

// Source implements importer.Source for an EDX directory:
//
//	dir/
//	  NAME.DAT      <- set header: adventure count + names
//	  ROOMS.DAT     <- 79-byte name + 11 int16 fields per room
//	  ROOMS.DSC     <- one 255-byte description block per room
//	  ARTIFACT.DAT  <- 35-byte name + 8 int16 fields per artifact
//	  ARTIFACT.DSC
//	  MONSTERS.DAT  <- 35-byte name + 13 int16 fields per monster
//	  MONSTERS.DSC
//	  EFFECT.DSC    <- one 255-byte text block per effect (optional)
type Source struct {
	adventures []*adventure.Adventure

	rooms     adventure.OffsetTable
	artifacts adventure.OffsetTable
	effects   adventure.OffsetTable
	monsters  adventure.OffsetTable
}

// NewSource constructs a Source for the adventures sharing one EDX file set.
// An unset (zero) offset is treated as 1, the value single-adventure sets
// are stored with.
//
// Precondition: adventures must be non-empty.
func NewSource(adventures []*adventure.Adventure) *Source {
	rooms := make(map[int64]int, len(adventures))
	artifacts := make(map[int64]int, len(adventures))
	effects := make(map[int64]int, len(adventures))
	monsters := make(map[int64]int, len(adventures))
	for _, a := range adventures {
		rooms[a.ID] = orOne(a.RoomOffset)
		artifacts[a.ID] = orOne(a.ArtifactOffset)
		effects[a.ID] = orOne(a.EffectOffset)
		monsters[a.ID] = orOne(a.MonsterOffset)
	}
	return &Source{
		adventures: adventures,
		rooms:      adventure.NewOffsetTable(rooms),
		artifacts:  adventure.NewOffsetTable(artifacts),
		effects:    adventure.NewOffsetTable(effects),
		monsters:   adventure.NewOffsetTable(monsters),
	}
}

func orOne(offset int) int {
	if offset < 1 {
		return 1
	}
	return offset
}

// Load decodes the full EDX directory into a Batch. Rooms, artifacts, and
// monsters are required; EFFECT.DSC and per-adventure program files are
// optional and skipped with a warning when absent.
func (s *Source) Load(dir string) (*importer.Batch, error) {
	if err := s.readHeader(dir); err != nil {
		return nil, err
	}

	batch := &importer.Batch{}
	if err := s.loadRooms(dir, batch); err != nil {
		return nil, err
	}
	if err := s.loadArtifacts(dir, batch); err != nil {
		return nil, err
	}
	if err := s.loadMonsters(dir, batch); err != nil {
		return nil, err
	}
	s.loadEffects(dir, batch)
	s.loadSynonyms(dir, batch)
	return batch, nil
}

// headerRe matches the NAME.DAT count line.
var headerRe = regexp.MustCompile(`^\s*([0-9]+)\s*$`)

// readHeader validates the NAME.DAT set header: an adventure count line
// followed by one name line per adventure. A malformed header is fatal.
func (s *Source) readHeader(dir string) error {
	path := filepath.Join(dir, "NAME.DAT")
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		return fmt.Errorf("%s: missing adventure count line", path)
	}
	m := headerRe.FindStringSubmatch(sc.Text())
	if m == nil {
		return fmt.Errorf("%s: malformed adventure count line %q", path, sc.Text())
	}
	count, err := strconv.Atoi(m[1])
	if err != nil || count < 1 {
		return fmt.Errorf("%s: invalid adventure count %q", path, m[1])
	}
	for i := 0; i < count; i++ {
		if !sc.Scan() || strings.TrimSpace(sc.Text()) == "" {
			return fmt.Errorf("%s: header declares %d adventures but name %d is missing", path, count, i+1)
		}
	}
	if count != len(s.adventures) {
		return fmt.Errorf("%s: header declares %d adventures, offset table has %d", path, count, len(s.adventures))
	}
	return sc.Err()
}

func openPair(dir, base string) (dat, dsc *os.File, err error) {
	datPath := filepath.Join(dir, base+".DAT")
	dat, err = os.Open(datPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", datPath, err)
	}
	dscPath := filepath.Join(dir, base+".DSC")
	dsc, err = os.Open(dscPath)
	if err != nil {
		dat.Close()
		return nil, nil, fmt.Errorf("opening %s: %w", dscPath, err)
	}
	return dat, dsc, nil
}

func (s *Source) loadRooms(dir string, batch *importer.Batch) error {
	dat, dsc, err := openPair(dir, "ROOMS")
	if err != nil {
		return err
	}
	defer dat.Close()
	defer dsc.Close()

	datBuf := bufio.NewReader(dat)
	dscBuf := bufio.NewReader(dsc)

	for index := 1; ; index++ {
		nameBytes, done, err := readBlock(datBuf, roomNameLen)
		if done {
			return nil
		}
		if err != nil {
			return fmt.Errorf("room %d: %w", index, err)
		}
		descBytes, _, err := readBlock(dscBuf, descBlockLen)
		if err != nil {
			return fmt.Errorf("room %d description: %w", index, err)
		}
		fieldBytes, _, err := readBlock(datBuf, roomFieldLen)
		if err != nil {
			return fmt.Errorf("room %d fields: %w", index, err)
		}
		values := int16Fields(fieldBytes)

		att, ok := s.rooms.Attribute(index)
		if !ok {
			batch.Warnf("room record %d precedes every adventure offset; skipping", index)
			continue
		}

		room := &adventure.Room{
			AdventureID: att.AdventureID,
			RoomID:      att.LocalID,
			Name:        decodeText(nameBytes),
			Description: decodeText(descBytes),
			IsDark:      values[10] == 0,
		}
		for d, direction := range adventure.Directions {
			raw := adventure.NormalizeExit(values[d])
			if raw == adventure.ExitNone {
				continue
			}
			exit := adventure.RoomExit{Direction: direction, RoomTo: raw}
			if raw > doorExitBase {
				exit.DoorID = raw - doorExitBase
				exit.RoomTo = 0 // filled in from the door artifact
			}
			room.Exits = append(room.Exits, exit)
		}
		batch.Rooms = append(batch.Rooms, room)
	}
}

// doorExitBase offsets exit values that reference a door artifact instead of
// a room.
const doorExitBase = 500

func (s *Source) loadArtifacts(dir string, batch *importer.Batch) error {
	dat, dsc, err := openPair(dir, "ARTIFACT")
	if err != nil {
		return err
	}
	defer dat.Close()
	defer dsc.Close()

	datBuf := bufio.NewReader(dat)
	dscBuf := bufio.NewReader(dsc)

	for index := 1; ; index++ {
		nameBytes, done, err := readBlock(datBuf, entityNameLen)
		if done {
			return nil
		}
		if err != nil {
			return fmt.Errorf("artifact %d: %w", index, err)
		}
		fieldBytes, _, err := readBlock(datBuf, artifactFields)
		if err != nil {
			return fmt.Errorf("artifact %d fields: %w", index, err)
		}
		descBytes, _, err := readBlock(dscBuf, descBlockLen)
		if err != nil {
			return fmt.Errorf("artifact %d description: %w", index, err)
		}
		values := int16Fields(fieldBytes)

		att, ok := s.artifacts.Attribute(index)
		if !ok {
			batch.Warnf("artifact record %d precedes every adventure offset; skipping", index)
			continue
		}

		a := &adventure.Artifact{
			AdventureID: att.AdventureID,
			ArtifactID:  att.LocalID,
			Name:        decodeText(nameBytes),
			Description: decodeText(descBytes),
			Value:       values[0],
			Type:        adventure.ArtifactType(values[1]),
			Weight:      values[2],
			Location:    adventure.DecodeEDXLocation(values[3]),
		}
		decodeArtifactPayload(a, values)
		batch.Artifacts = append(batch.Artifacts, a)
	}
}

// decodeArtifactPayload interprets the last four record fields, whose
// meaning is positional and depends on the artifact's type code.
func decodeArtifactPayload(a *adventure.Artifact, values []int) {
	f5, f6, f7, f8 := values[4], values[5], values[6], values[7]
	switch a.Type {
	case adventure.TypeWeapon, adventure.TypeMagicWeapon:
		a.Weapon = &adventure.WeaponDetail{
			Odds:  f5,
			Type:  adventure.WeaponType(f6),
			Dice:  f7,
			Sides: f8,
		}
	case adventure.TypeContainer:
		a.Container = &adventure.ContainerDetail{KeyID: f5, IsOpen: f6 != 0}
	case adventure.TypeLightSource:
		a.Light = &adventure.LightDetail{Quantity: f5}
	case adventure.TypeDrinkable, adventure.TypeEdible:
		// Heal amount is flat in the original, so dice d 1.
		a.Consumable = &adventure.ConsumableDetail{
			Dice:     f5,
			Sides:    1,
			Quantity: f6,
			IsOpen:   f7 != 0,
		}
	case adventure.TypeReadable:
		// Marking text is stored elsewhere and is not imported.
		a.Readable = &adventure.ReadableDetail{IsOpen: f7 != 0}
	case adventure.TypeDoor:
		a.Door = &adventure.DoorDetail{
			RoomBeyond: f5,
			KeyID:      f6,
			IsOpen:     f7 == 0, // stored as a closed flag
			Hidden:     f8 != 0,
		}
	case adventure.TypeBoundMonster:
		a.BoundMonster = &adventure.BoundMonsterDetail{MonsterID: f5, KeyID: f6, GuardID: f7}
	case adventure.TypeWearable:
		class, typ := adventure.ConvertEDXArmor(f5)
		if f6 != 0 {
			typ = adventure.ArmorType(f6)
		}
		a.Wearable = &adventure.WearableDetail{ArmorClass: class, ArmorType: typ}
	case adventure.TypeDisguisedMonster:
		a.Disguise = &adventure.DisguiseDetail{MonsterID: f5, FirstEffect: f6, NumEffects: f7}
	case adventure.TypeDeadBody:
		a.DeadBody = &adventure.DeadBodyDetail{GetAll: f5 != 0}
	}
}

func (s *Source) loadMonsters(dir string, batch *importer.Batch) error {
	dat, dsc, err := openPair(dir, "MONSTERS")
	if err != nil {
		return err
	}
	defer dat.Close()
	defer dsc.Close()

	datBuf := bufio.NewReader(dat)
	dscBuf := bufio.NewReader(dsc)

	for index := 1; ; index++ {
		nameBytes, done, err := readBlock(datBuf, entityNameLen)
		if done {
			return nil
		}
		if err != nil {
			return fmt.Errorf("monster %d: %w", index, err)
		}
		fieldBytes, _, err := readBlock(datBuf, monsterFields)
		if err != nil {
			return fmt.Errorf("monster %d fields: %w", index, err)
		}
		descBytes, _, err := readBlock(dscBuf, descBlockLen)
		if err != nil {
			return fmt.Errorf("monster %d description: %w", index, err)
		}
		values := int16Fields(fieldBytes)

		att, ok := s.monsters.Attribute(index)
		if !ok {
			batch.Warnf("monster record %d precedes every adventure offset; skipping", index)
			continue
		}

		friendliness, odds := adventure.FriendlinessFromCode(values[10])
		m := &adventure.Monster{
			AdventureID:  att.AdventureID,
			MonsterID:    att.LocalID,
			Name:         decodeText(nameBytes),
			Description:  decodeText(descBytes),
			Hardiness:    values[0],
			Agility:      values[1],
			Count:        values[2],
			Courage:      values[3],
			RoomID:       values[4],
			CombatCode:   adventure.CombatCode(values[5]),
			ArmorClass:   values[6],
			WeaponID:     values[7],
			WeaponDice:   values[8],
			WeaponSides:  values[9],
			Friendliness: friendliness,
			FriendOdds:   odds,
			AttackOdds:   50,
		}
		// values[11] repeats the starting group size; values[12] is damage
		// taken, which starts at zero. Neither is imported.
		batch.Monsters = append(batch.Monsters, m)
	}
}

// loadEffects reads the optional EFFECT.DSC text blocks. Absence is a skip,
// not an error.
func (s *Source) loadEffects(dir string, batch *importer.Batch) {
	path := filepath.Join(dir, "EFFECT.DSC")
	f, err := os.Open(path)
	if err != nil {
		batch.Warnf("no EFFECT.DSC found in %s; skipping effects", dir)
		return
	}
	defer f.Close()

	buf := bufio.NewReader(f)
	for index := 1; ; index++ {
		block, done, err := readBlock(buf, descBlockLen)
		if done {
			return
		}
		if err != nil {
			batch.Warnf("effect %d: %v; stopping effect import", index, err)
			return
		}

		att, ok := s.effects.Attribute(index)
		if !ok {
			batch.Warnf("effect record %d precedes every adventure offset; skipping", index)
			continue
		}

		style := ""
		if len(block) > 0 && block[0] < 0x20 {
			style = adventure.StyleFromColorCode(block[0])
			block = block[1:]
		}
		text, next, inline := importer.ExtractChain(decodeText(block))
		batch.Effects = append(batch.Effects, &adventure.Effect{
			AdventureID: att.AdventureID,
			EffectID:    att.LocalID,
			Text:        text,
			Style:       style,
			Next:        next,
			NextInline:  inline,
		})
	}
}

// loadSynonyms runs the optional synonym scrape over each adventure's
// recovered program source.
func (s *Source) loadSynonyms(dir string, batch *importer.Batch) {
	for _, adv := range s.adventures {
		if adv.ProgramFile == "" {
			continue
		}
		path := filepath.Join(dir, adv.ProgramFile)
		data, err := os.ReadFile(path)
		if err != nil {
			batch.Warnf("adventure %d: program file %s not readable; skipping synonyms", adv.ID, adv.ProgramFile)
			continue
		}
		applySynonyms(adv.ID, importer.DecodeCP437(data), batch)
	}
}
