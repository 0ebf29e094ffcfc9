package adventure

// ArtifactType is the fixed legacy type enumeration. The numeric values are a
// compatibility contract with the source data and must not be renumbered.
type ArtifactType int

// Artifact types as stored in every legacy format.
const (
	TypeGold             ArtifactType = 0
	TypeTreasure         ArtifactType = 1
	TypeWeapon           ArtifactType = 2
	TypeMagicWeapon      ArtifactType = 3
	TypeContainer        ArtifactType = 4
	TypeLightSource      ArtifactType = 5
	TypeDrinkable        ArtifactType = 6
	TypeReadable         ArtifactType = 7
	TypeDoor             ArtifactType = 8
	TypeEdible           ArtifactType = 9
	TypeBoundMonster     ArtifactType = 10
	TypeWearable         ArtifactType = 11
	TypeDisguisedMonster ArtifactType = 12
	TypeDeadBody         ArtifactType = 13
	TypeUser1            ArtifactType = 14
	TypeUser2            ArtifactType = 15
	TypeUser3            ArtifactType = 16
)

// IsWeapon reports whether the type is a plain or magic weapon.
func (t ArtifactType) IsWeapon() bool { return t == TypeWeapon || t == TypeMagicWeapon }

// WeaponType is the legacy weapon category code.
type WeaponType int

// Weapon categories.
const (
	WeaponAxe   WeaponType = 1
	WeaponBow   WeaponType = 2
	WeaponClub  WeaponType = 3
	WeaponSpear WeaponType = 4
	WeaponSword WeaponType = 5
)

// ArmorType distinguishes body armor from shields.
type ArmorType int

// Armor categories.
const (
	ArmorTypeArmor  ArmorType = 0
	ArmorTypeShield ArmorType = 1
)

// LocationKind says where an artifact starts the game.
type LocationKind int

// Location kinds. Exactly one applies to any artifact.
const (
	LocNowhere LocationKind = iota
	LocPlayer               // carried by the player
	LocWorn                 // worn by the player
	LocMonster              // carried by a monster
	LocRoom                 // free-standing in a room
	LocEmbedded             // embedded in a room, invisible until found
	LocContainer            // inside another artifact
)

// Location is an artifact's decoded starting placement. RoomID, MonsterID and
// ContainerID are meaningful only for the kinds that reference them.
type Location struct {
	Kind        LocationKind
	RoomID      int
	MonsterID   int
	ContainerID int
}

// DecodeEDXLocation decodes the signed offset-location code used by the EDX
// binary and JSON field conventions:
//
//	-999        worn by player
//	-1          carried by player
//	other < 0   carried by monster abs(code)-1
//	> 2000      embedded in room code-2000
//	1001..2000  inside container code-1000
//	0           nowhere
//	else        in room code
func DecodeEDXLocation(code int) Location {
	switch {
	case code == -999:
		return Location{Kind: LocWorn}
	case code == -1:
		return Location{Kind: LocPlayer}
	case code < 0:
		return Location{Kind: LocMonster, MonsterID: -code - 1}
	case code > 2000:
		return Location{Kind: LocEmbedded, RoomID: code - 2000}
	case code > 1000:
		return Location{Kind: LocContainer, ContainerID: code - 1000}
	case code == 0:
		return Location{Kind: LocNowhere}
	default:
		return Location{Kind: LocRoom, RoomID: code}
	}
}

// DecodeClassicLocation decodes the room field of classic v6/v7 listings and
// their JSON conversions. The thresholds differ from the EDX convention and
// are a compatibility contract with existing seed data:
//
//	> 500   inside container code-500
//	> 200   embedded in room code-200
//	< 0     carried by monster abs(code)-1
//	0       nowhere
//	else    in room code
func DecodeClassicLocation(code int) Location {
	switch {
	case code > 500:
		return Location{Kind: LocContainer, ContainerID: code - 500}
	case code > 200:
		return Location{Kind: LocEmbedded, RoomID: code - 200}
	case code < 0:
		return Location{Kind: LocMonster, MonsterID: -code - 1}
	case code == 0:
		return Location{Kind: LocNowhere}
	default:
		return Location{Kind: LocRoom, RoomID: code}
	}
}

// WeaponDetail is the payload of weapon and magic weapon artifacts.
type WeaponDetail struct {
	Odds  int
	Type  WeaponType
	Dice  int
	Sides int
}

// ContainerDetail is the payload of container artifacts.
type ContainerDetail struct {
	KeyID  int
	IsOpen bool
}

// LightDetail is the payload of light source artifacts.
type LightDetail struct {
	// Quantity is the remaining fuel in turns. -1 means never runs out.
	Quantity int
}

// ConsumableDetail is the payload of drinkable and edible artifacts. Healing
// is Dice d 1; the originals store a flat amount.
type ConsumableDetail struct {
	Dice     int
	Sides    int
	Quantity int
	IsOpen   bool
}

// ReadableDetail is the payload of readable artifacts. Marking text lives in
// a store the legacy decoders never populate, so only the linked effects and
// open state are imported.
type ReadableDetail struct {
	FirstEffect int
	NumEffects  int
	IsOpen      bool
}

// DoorDetail is the payload of door/gate artifacts. RoomBeyond is pushed onto
// the matching room exit during cross-reference resolution.
type DoorDetail struct {
	RoomBeyond int
	KeyID      int
	IsOpen     bool
	Hidden     bool
}

// BoundMonsterDetail is the payload of bound monster artifacts.
type BoundMonsterDetail struct {
	MonsterID int
	KeyID     int
	GuardID   int
}

// WearableDetail is the payload of wearable artifacts.
type WearableDetail struct {
	ArmorClass int
	ArmorType  ArmorType
}

// DisguiseDetail is the payload of disguised monster artifacts.
type DisguiseDetail struct {
	MonsterID   int
	FirstEffect int
	NumEffects  int
}

// DeadBodyDetail is the payload of dead body artifacts.
type DeadBodyDetail struct {
	GetAll bool
}

// Artifact is an interactive object, keyed by (adventure, ArtifactID). The
// type-dependent payload lives in exactly one non-nil detail field matching
// Type; gold and treasure carry none.
type Artifact struct {
	AdventureID int64
	ArtifactID  int
	Name        string
	// Synonyms holds comma-joined alternate nouns scraped from the
	// adventure's program source, empty when none were recovered.
	Synonyms    string
	Description string
	Type        ArtifactType
	Value       int
	Weight      int
	Location    Location

	Weapon       *WeaponDetail
	Container    *ContainerDetail
	Light        *LightDetail
	Consumable   *ConsumableDetail
	Readable     *ReadableDetail
	Door         *DoorDetail
	BoundMonster *BoundMonsterDetail
	Wearable     *WearableDetail
	Disguise     *DisguiseDetail
	DeadBody     *DeadBodyDetail
}

// ConvertEDXArmor maps a raw EDX armor class code to the normalized
// (class, type) pair. EDX counts protection in shield-inclusive units: even
// codes are body armor of class raw/2, odd codes are the shield row one unit
// above the even code below them.
func ConvertEDXArmor(raw int) (int, ArmorType) {
	if raw < 0 {
		return 0, ArmorTypeArmor
	}
	if raw%2 == 1 {
		return raw / 2, ArmorTypeShield
	}
	return raw / 2, ArmorTypeArmor
}

// ReclassifyDeadBody applies the post-decode correction rule shared by the
// classic and JSON decoders: an artifact with zero value sitting nowhere is
// assumed to be a dead body.
func (a *Artifact) ReclassifyDeadBody() {
	if a.Value == 0 && a.Location.Kind == LocNowhere {
		a.SetType(TypeDeadBody)
		a.DeadBody = &DeadBodyDetail{GetAll: false}
	}
}

// SetType switches the artifact's type and clears every detail payload, so a
// later reclassification cannot leave a stale variant behind.
func (a *Artifact) SetType(t ArtifactType) {
	a.Type = t
	a.Weapon = nil
	a.Container = nil
	a.Light = nil
	a.Consumable = nil
	a.Readable = nil
	a.Door = nil
	a.BoundMonster = nil
	a.Wearable = nil
	a.Disguise = nil
	a.DeadBody = nil
}
