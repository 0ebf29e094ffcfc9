package adventure

// Friendliness is a monster's disposition toward the player.
type Friendliness string

// Dispositions as stored.
const (
	Hostile Friendliness = "hostile"
	Neutral Friendliness = "neutral"
	Friend  Friendliness = "friend"
	Random  Friendliness = "random"
)

// CombatCode selects how a monster fights.
type CombatCode int

// Combat behavior codes, matching the legacy values.
const (
	// CombatAttacks uses the generic "attacks" verb (slimes, snakes, birds).
	CombatAttacks CombatCode = 1
	// CombatWeapon uses a weapon, or natural weapons if specified. Default.
	CombatWeapon CombatCode = 0
	// CombatAny uses a weapon if it carries one, otherwise natural weapons.
	CombatAny CombatCode = -1
	// CombatNever never fights.
	CombatNever CombatCode = -2
)

// Monster is an NPC or creature, keyed by (adventure, MonsterID).
type Monster struct {
	AdventureID int64
	MonsterID   int
	Name        string
	Description string

	Hardiness  int
	Agility    int
	Courage    int
	ArmorClass int

	Count        int
	Friendliness Friendliness
	// FriendOdds is the percent chance of friendliness when Friendliness is
	// Random. -1 when the format carries no odds.
	FriendOdds int

	CombatCode   CombatCode
	AttackOdds   int
	DefenseBonus int
	WeaponID     int
	// WeaponDice/WeaponSides describe natural weapons only.
	WeaponDice  int
	WeaponSides int

	RoomID int
}

// FriendlinessFromOdds derives a disposition from a v6 percent friend-odds
// field: 0 is hostile, 100 or more is a friend, anything between is random.
func FriendlinessFromOdds(odds int) Friendliness {
	switch {
	case odds == 0:
		return Hostile
	case odds >= 100:
		return Friend
	default:
		return Random
	}
}

// FriendlinessFromCode derives a disposition from the enumerated field used
// by the EDX binary and v7 formats: 1 hostile, 2 neutral, 3 friend. Any other
// value means random, with the code encoding odds+100.
//
// Postcondition: odds is -1 unless the result is Random.
func FriendlinessFromCode(code int) (Friendliness, int) {
	switch code {
	case 1:
		return Hostile, -1
	case 2:
		return Neutral, -1
	case 3:
		return Friend, -1
	default:
		return Random, code - 100
	}
}
