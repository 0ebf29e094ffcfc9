package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eamon-archive/eamon-import/internal/adventure"
	"github.com/eamon-archive/eamon-import/internal/importer"
)

var _ importer.Store = (*Store)(nil)

// Store persists decoded adventure entities. Every save is an upsert keyed
// by (adventure_id, local id); a re-run overwrites every field and leaves
// the stored entity set identical.
type Store struct {
	db *pgxpool.Pool
}

// NewStore creates a Store backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// SaveRoom upserts a room and reconciles its exits: exits present on the
// room are upserted, directions whose connection became zero are deleted.
// No other stored rows are ever deleted.
func (s *Store) SaveRoom(ctx context.Context, r *adventure.Room) error {
	var roomPK int64
	err := s.db.QueryRow(ctx, `
		INSERT INTO rooms (adventure_id, room_id, name, description, is_dark)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (adventure_id, room_id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			is_dark = EXCLUDED.is_dark
		RETURNING id`,
		r.AdventureID, r.RoomID, r.Name, r.Description, r.IsDark,
	).Scan(&roomPK)
	if err != nil {
		return fmt.Errorf("upserting room: %w", err)
	}

	directions := make([]string, 0, len(r.Exits))
	for _, e := range r.Exits {
		directions = append(directions, e.Direction)
	}
	if _, err := s.db.Exec(ctx, `
		DELETE FROM room_exits WHERE room_pk = $1 AND direction != ALL($2::text[])`,
		roomPK, directions,
	); err != nil {
		return fmt.Errorf("pruning room exits: %w", err)
	}

	for _, e := range r.Exits {
		if _, err := s.db.Exec(ctx, `
			INSERT INTO room_exits (room_pk, direction, room_to, door_id, effect_id)
			VALUES ($1,$2,$3,$4,$5)
			ON CONFLICT (room_pk, direction) DO UPDATE SET
				room_to = EXCLUDED.room_to,
				door_id = EXCLUDED.door_id,
				effect_id = EXCLUDED.effect_id`,
			roomPK, e.Direction, e.RoomTo, e.DoorID, e.EffectID,
		); err != nil {
			return fmt.Errorf("upserting exit %s: %w", e.Direction, err)
		}
	}
	return nil
}

// SaveArtifact upserts an artifact, flattening the location and the
// type-dependent payload into the table's nullable and default columns.
func (s *Store) SaveArtifact(ctx context.Context, a *adventure.Artifact) error {
	loc := flattenLocation(a.Location)
	p := flattenPayload(a)

	_, err := s.db.Exec(ctx, `
		INSERT INTO artifacts
			(adventure_id, artifact_id, name, synonyms, description, type, value, weight,
			 room_id, monster_id, container_id, is_worn, embedded,
			 weapon_odds, weapon_type, dice, sides, key_id, is_open, hidden,
			 quantity, armor_class, armor_type, effect_id, num_effects,
			 monster_ref, guard_id, room_beyond, get_all)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,
		        $19,$20,$21,$22,$23,$24,$25,$26,$27,$28,$29)
		ON CONFLICT (adventure_id, artifact_id) DO UPDATE SET
			name = EXCLUDED.name,
			synonyms = EXCLUDED.synonyms,
			description = EXCLUDED.description,
			type = EXCLUDED.type,
			value = EXCLUDED.value,
			weight = EXCLUDED.weight,
			room_id = EXCLUDED.room_id,
			monster_id = EXCLUDED.monster_id,
			container_id = EXCLUDED.container_id,
			is_worn = EXCLUDED.is_worn,
			embedded = EXCLUDED.embedded,
			weapon_odds = EXCLUDED.weapon_odds,
			weapon_type = EXCLUDED.weapon_type,
			dice = EXCLUDED.dice,
			sides = EXCLUDED.sides,
			key_id = EXCLUDED.key_id,
			is_open = EXCLUDED.is_open,
			hidden = EXCLUDED.hidden,
			quantity = EXCLUDED.quantity,
			armor_class = EXCLUDED.armor_class,
			armor_type = EXCLUDED.armor_type,
			effect_id = EXCLUDED.effect_id,
			num_effects = EXCLUDED.num_effects,
			monster_ref = EXCLUDED.monster_ref,
			guard_id = EXCLUDED.guard_id,
			room_beyond = EXCLUDED.room_beyond,
			get_all = EXCLUDED.get_all`,
		a.AdventureID, a.ArtifactID, a.Name, a.Synonyms, a.Description,
		int(a.Type), a.Value, a.Weight,
		loc.roomID, loc.monsterID, loc.containerID, loc.isWorn, loc.embedded,
		p.weaponOdds, p.weaponType, p.dice, p.sides, p.keyID, p.isOpen, p.hidden,
		p.quantity, p.armorClass, p.armorType, p.effectID, p.numEffects,
		p.monsterRef, p.guardID, p.roomBeyond, p.getAll,
	)
	if err != nil {
		return fmt.Errorf("upserting artifact: %w", err)
	}
	return nil
}

// SaveEffect upserts an effect.
func (s *Store) SaveEffect(ctx context.Context, e *adventure.Effect) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO effects (adventure_id, effect_id, text, style, next, next_inline)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (adventure_id, effect_id) DO UPDATE SET
			text = EXCLUDED.text,
			style = EXCLUDED.style,
			next = EXCLUDED.next,
			next_inline = EXCLUDED.next_inline`,
		e.AdventureID, e.EffectID, e.Text, e.Style, e.Next, e.NextInline,
	)
	if err != nil {
		return fmt.Errorf("upserting effect: %w", err)
	}
	return nil
}

// SaveMonster upserts a monster.
func (s *Store) SaveMonster(ctx context.Context, m *adventure.Monster) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO monsters
			(adventure_id, monster_id, name, description,
			 hardiness, agility, courage, armor_class, count,
			 friendliness, friend_odds, combat_code, attack_odds, defense_bonus,
			 weapon_id, weapon_dice, weapon_sides, room_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
		ON CONFLICT (adventure_id, monster_id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			hardiness = EXCLUDED.hardiness,
			agility = EXCLUDED.agility,
			courage = EXCLUDED.courage,
			armor_class = EXCLUDED.armor_class,
			count = EXCLUDED.count,
			friendliness = EXCLUDED.friendliness,
			friend_odds = EXCLUDED.friend_odds,
			combat_code = EXCLUDED.combat_code,
			attack_odds = EXCLUDED.attack_odds,
			defense_bonus = EXCLUDED.defense_bonus,
			weapon_id = EXCLUDED.weapon_id,
			weapon_dice = EXCLUDED.weapon_dice,
			weapon_sides = EXCLUDED.weapon_sides,
			room_id = EXCLUDED.room_id`,
		m.AdventureID, m.MonsterID, m.Name, m.Description,
		m.Hardiness, m.Agility, m.Courage, m.ArmorClass, m.Count,
		string(m.Friendliness), m.FriendOdds, int(m.CombatCode),
		m.AttackOdds, m.DefenseBonus,
		m.WeaponID, m.WeaponDice, m.WeaponSides, m.RoomID,
	)
	if err != nil {
		return fmt.Errorf("upserting monster: %w", err)
	}
	return nil
}

type locationCols struct {
	roomID      *int
	monsterID   *int
	containerID *int
	isWorn      bool
	embedded    bool
}

// flattenLocation maps the tagged location onto the mutually exclusive
// nullable columns. A monster_id of 0 means the player, matching the legacy
// convention.
func flattenLocation(loc adventure.Location) locationCols {
	player := 0
	switch loc.Kind {
	case adventure.LocPlayer:
		return locationCols{monsterID: &player}
	case adventure.LocWorn:
		return locationCols{monsterID: &player, isWorn: true}
	case adventure.LocMonster:
		id := loc.MonsterID
		return locationCols{monsterID: &id}
	case adventure.LocRoom:
		id := loc.RoomID
		return locationCols{roomID: &id}
	case adventure.LocEmbedded:
		id := loc.RoomID
		return locationCols{roomID: &id, embedded: true}
	case adventure.LocContainer:
		id := loc.ContainerID
		return locationCols{containerID: &id}
	}
	return locationCols{}
}

type payloadCols struct {
	weaponOdds int
	weaponType int
	dice       int
	sides      int
	keyID      int
	isOpen     bool
	hidden     bool
	quantity   int
	armorClass int
	armorType  int
	effectID   int
	numEffects int
	monsterRef int
	guardID    int
	roomBeyond int
	getAll     bool
}

// flattenPayload maps the artifact's variant payload onto the flat columns.
func flattenPayload(a *adventure.Artifact) payloadCols {
	p := payloadCols{getAll: true}
	switch {
	case a.Weapon != nil:
		p.weaponOdds = a.Weapon.Odds
		p.weaponType = int(a.Weapon.Type)
		p.dice = a.Weapon.Dice
		p.sides = a.Weapon.Sides
	case a.Container != nil:
		p.keyID = a.Container.KeyID
		p.isOpen = a.Container.IsOpen
	case a.Light != nil:
		p.quantity = a.Light.Quantity
	case a.Consumable != nil:
		p.dice = a.Consumable.Dice
		p.sides = a.Consumable.Sides
		p.quantity = a.Consumable.Quantity
		p.isOpen = a.Consumable.IsOpen
	case a.Readable != nil:
		p.effectID = a.Readable.FirstEffect
		p.numEffects = a.Readable.NumEffects
		p.isOpen = a.Readable.IsOpen
	case a.Door != nil:
		p.roomBeyond = a.Door.RoomBeyond
		p.keyID = a.Door.KeyID
		p.isOpen = a.Door.IsOpen
		p.hidden = a.Door.Hidden
	case a.BoundMonster != nil:
		p.monsterRef = a.BoundMonster.MonsterID
		p.keyID = a.BoundMonster.KeyID
		p.guardID = a.BoundMonster.GuardID
	case a.Wearable != nil:
		p.armorClass = a.Wearable.ArmorClass
		p.armorType = int(a.Wearable.ArmorType)
	case a.Disguise != nil:
		p.monsterRef = a.Disguise.MonsterID
		p.effectID = a.Disguise.FirstEffect
		p.numEffects = a.Disguise.NumEffects
	case a.DeadBody != nil:
		p.getAll = a.DeadBody.GetAll
	}
	return p
}
