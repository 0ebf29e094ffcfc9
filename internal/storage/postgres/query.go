package postgres

import (
	"context"
	"fmt"

	"github.com/eamon-archive/eamon-import/internal/adventure"
)

// RoomsByAdventure returns every room of an adventure with exits attached,
// ordered by room id.
func (s *Store) RoomsByAdventure(ctx context.Context, adventureID int64) ([]*adventure.Room, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, room_id, name, description, is_dark
		FROM rooms WHERE adventure_id = $1 ORDER BY room_id`,
		adventureID)
	if err != nil {
		return nil, fmt.Errorf("querying rooms: %w", err)
	}
	defer rows.Close()

	var result []*adventure.Room
	pks := make(map[int64]*adventure.Room)
	for rows.Next() {
		var pk int64
		r := &adventure.Room{AdventureID: adventureID}
		if err := rows.Scan(&pk, &r.RoomID, &r.Name, &r.Description, &r.IsDark); err != nil {
			return nil, fmt.Errorf("scanning room: %w", err)
		}
		pks[pk] = r
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rooms: %w", err)
	}

	exitRows, err := s.db.Query(ctx, `
		SELECT e.room_pk, e.direction, e.room_to, e.door_id, e.effect_id
		FROM room_exits e
		JOIN rooms r ON r.id = e.room_pk
		WHERE r.adventure_id = $1
		ORDER BY e.room_pk, e.id`,
		adventureID)
	if err != nil {
		return nil, fmt.Errorf("querying exits: %w", err)
	}
	defer exitRows.Close()

	for exitRows.Next() {
		var pk int64
		var e adventure.RoomExit
		if err := exitRows.Scan(&pk, &e.Direction, &e.RoomTo, &e.DoorID, &e.EffectID); err != nil {
			return nil, fmt.Errorf("scanning exit: %w", err)
		}
		if r, ok := pks[pk]; ok {
			r.Exits = append(r.Exits, e)
		}
	}
	if err := exitRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating exits: %w", err)
	}
	return result, nil
}

// ArtifactsByAdventure returns every artifact of an adventure ordered by
// artifact id, with the location and payload rebuilt from the flat columns.
func (s *Store) ArtifactsByAdventure(ctx context.Context, adventureID int64) ([]*adventure.Artifact, error) {
	rows, err := s.db.Query(ctx, `
		SELECT artifact_id, name, synonyms, description, type, value, weight,
		       room_id, monster_id, container_id, is_worn, embedded,
		       weapon_odds, weapon_type, dice, sides, key_id, is_open, hidden,
		       quantity, armor_class, armor_type, effect_id, num_effects,
		       monster_ref, guard_id, room_beyond, get_all
		FROM artifacts WHERE adventure_id = $1 ORDER BY artifact_id`,
		adventureID)
	if err != nil {
		return nil, fmt.Errorf("querying artifacts: %w", err)
	}
	defer rows.Close()

	var result []*adventure.Artifact
	for rows.Next() {
		a := &adventure.Artifact{AdventureID: adventureID}
		var (
			typ                         int
			roomID, monsterID, contID   *int
			isWorn, embedded            bool
			p                           payloadCols
		)
		if err := rows.Scan(&a.ArtifactID, &a.Name, &a.Synonyms, &a.Description,
			&typ, &a.Value, &a.Weight,
			&roomID, &monsterID, &contID, &isWorn, &embedded,
			&p.weaponOdds, &p.weaponType, &p.dice, &p.sides, &p.keyID,
			&p.isOpen, &p.hidden, &p.quantity, &p.armorClass, &p.armorType,
			&p.effectID, &p.numEffects, &p.monsterRef, &p.guardID,
			&p.roomBeyond, &p.getAll); err != nil {
			return nil, fmt.Errorf("scanning artifact: %w", err)
		}
		a.Type = adventure.ArtifactType(typ)
		a.Location = unflattenLocation(roomID, monsterID, contID, isWorn, embedded)
		unflattenPayload(a, p)
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating artifacts: %w", err)
	}
	return result, nil
}

// EffectsByAdventure returns every effect of an adventure ordered by id.
func (s *Store) EffectsByAdventure(ctx context.Context, adventureID int64) ([]*adventure.Effect, error) {
	rows, err := s.db.Query(ctx, `
		SELECT effect_id, text, style, next, next_inline
		FROM effects WHERE adventure_id = $1 ORDER BY effect_id`,
		adventureID)
	if err != nil {
		return nil, fmt.Errorf("querying effects: %w", err)
	}
	defer rows.Close()

	var result []*adventure.Effect
	for rows.Next() {
		e := &adventure.Effect{AdventureID: adventureID}
		if err := rows.Scan(&e.EffectID, &e.Text, &e.Style, &e.Next, &e.NextInline); err != nil {
			return nil, fmt.Errorf("scanning effect: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating effects: %w", err)
	}
	return result, nil
}

// MonstersByAdventure returns every monster of an adventure ordered by id.
func (s *Store) MonstersByAdventure(ctx context.Context, adventureID int64) ([]*adventure.Monster, error) {
	rows, err := s.db.Query(ctx, `
		SELECT monster_id, name, description,
		       hardiness, agility, courage, armor_class, count,
		       friendliness, friend_odds, combat_code, attack_odds, defense_bonus,
		       weapon_id, weapon_dice, weapon_sides, room_id
		FROM monsters WHERE adventure_id = $1 ORDER BY monster_id`,
		adventureID)
	if err != nil {
		return nil, fmt.Errorf("querying monsters: %w", err)
	}
	defer rows.Close()

	var result []*adventure.Monster
	for rows.Next() {
		m := &adventure.Monster{AdventureID: adventureID}
		var friendliness string
		var combat int
		if err := rows.Scan(&m.MonsterID, &m.Name, &m.Description,
			&m.Hardiness, &m.Agility, &m.Courage, &m.ArmorClass, &m.Count,
			&friendliness, &m.FriendOdds, &combat, &m.AttackOdds, &m.DefenseBonus,
			&m.WeaponID, &m.WeaponDice, &m.WeaponSides, &m.RoomID); err != nil {
			return nil, fmt.Errorf("scanning monster: %w", err)
		}
		m.Friendliness = adventure.Friendliness(friendliness)
		m.CombatCode = adventure.CombatCode(combat)
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating monsters: %w", err)
	}
	return result, nil
}

func unflattenLocation(roomID, monsterID, containerID *int, isWorn, embedded bool) adventure.Location {
	switch {
	case monsterID != nil && *monsterID == 0 && isWorn:
		return adventure.Location{Kind: adventure.LocWorn}
	case monsterID != nil && *monsterID == 0:
		return adventure.Location{Kind: adventure.LocPlayer}
	case monsterID != nil:
		return adventure.Location{Kind: adventure.LocMonster, MonsterID: *monsterID}
	case roomID != nil && embedded:
		return adventure.Location{Kind: adventure.LocEmbedded, RoomID: *roomID}
	case roomID != nil:
		return adventure.Location{Kind: adventure.LocRoom, RoomID: *roomID}
	case containerID != nil:
		return adventure.Location{Kind: adventure.LocContainer, ContainerID: *containerID}
	}
	return adventure.Location{Kind: adventure.LocNowhere}
}

func unflattenPayload(a *adventure.Artifact, p payloadCols) {
	switch {
	case a.Type.IsWeapon():
		a.Weapon = &adventure.WeaponDetail{
			Odds:  p.weaponOdds,
			Type:  adventure.WeaponType(p.weaponType),
			Dice:  p.dice,
			Sides: p.sides,
		}
	case a.Type == adventure.TypeContainer:
		a.Container = &adventure.ContainerDetail{KeyID: p.keyID, IsOpen: p.isOpen}
	case a.Type == adventure.TypeLightSource:
		a.Light = &adventure.LightDetail{Quantity: p.quantity}
	case a.Type == adventure.TypeDrinkable, a.Type == adventure.TypeEdible:
		a.Consumable = &adventure.ConsumableDetail{
			Dice:     p.dice,
			Sides:    p.sides,
			Quantity: p.quantity,
			IsOpen:   p.isOpen,
		}
	case a.Type == adventure.TypeReadable:
		a.Readable = &adventure.ReadableDetail{
			FirstEffect: p.effectID,
			NumEffects:  p.numEffects,
			IsOpen:      p.isOpen,
		}
	case a.Type == adventure.TypeDoor:
		a.Door = &adventure.DoorDetail{
			RoomBeyond: p.roomBeyond,
			KeyID:      p.keyID,
			IsOpen:     p.isOpen,
			Hidden:     p.hidden,
		}
	case a.Type == adventure.TypeBoundMonster:
		a.BoundMonster = &adventure.BoundMonsterDetail{
			MonsterID: p.monsterRef,
			KeyID:     p.keyID,
			GuardID:   p.guardID,
		}
	case a.Type == adventure.TypeWearable:
		a.Wearable = &adventure.WearableDetail{
			ArmorClass: p.armorClass,
			ArmorType:  adventure.ArmorType(p.armorType),
		}
	case a.Type == adventure.TypeDisguisedMonster:
		a.Disguise = &adventure.DisguiseDetail{
			MonsterID:   p.monsterRef,
			FirstEffect: p.effectID,
			NumEffects:  p.numEffects,
		}
	case a.Type == adventure.TypeDeadBody:
		a.DeadBody = &adventure.DeadBodyDetail{GetAll: p.getAll}
	}
}
