package jsonfmt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eamon-archive/eamon-import/internal/adventure"
	"github.com/eamon-archive/eamon-import/internal/importer"
)

func writeJSON(t *testing.T, dir, name, data string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(data), 0644))
}

func writeFixture(t *testing.T, dir string) {
	t.Helper()
	writeJSON(t, dir, "rooms.json", `[
		{"id": 1, "name": "Courtyard", "description": "AN OPEN  COURTYARD.",
		 "e": 2, "s": "-99", "light": true},
		{"id": 2, "name": "Dungeon", "description": "A GRIM DUNGEON.",
		 "w": 1, "d": 506, "light": false}
	]`)
	writeJSON(t, dir, "artifacts.json", `[
		{"id": 1, "name": "JEWELED CROWN", "description": "IT SPARKLES.",
		 "value": 500, "type": 1, "weight": 3, "room_id": 1},
		{"id": 2, "name": "WAR HAMMER", "description": "WELL BALANCED.",
		 "value": "40", "type": 2, "weight": 10, "room_id": -2,
		 "field5": 10, "field6": "3", "field7": 2, "field8": 6},
		{"id": 6, "name": "TRAP DOOR", "description": "SOLID PLANKS.",
		 "value": 0, "type": 8, "weight": 999, "room_id": 202,
		 "field5": 4, "field6": 0, "field7": 1},
		{"id": 7, "name": "FORGOTTEN CORPSE", "description": "LONG DEAD.",
		 "value": 0, "type": 1, "weight": 100, "room_id": 0}
	]`)
	writeJSON(t, dir, "monsters.json", `[
		{"id": 1, "name": "WARDEN", "description": "HE GLARES AT YOU.",
		 "hardiness": 18, "agility": 12, "friendliness": 0, "courage": 90,
		 "room_id": 2, "armor_class": 2, "weapon_id": 4,
		 "offense_odds": 65, "weapon_dice": 1, "weapon_sides": 8},
		{"id": 2, "name": "STRAY DOG", "description": "IT WAGS ITS TAIL.",
		 "hardiness": 6, "agility": 10, "friendliness": 40, "courage": 50,
		 "room_id": 1}
	]`)
}

func TestLoadRooms(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir)

	batch, err := NewSource(3).Load(dir)
	require.NoError(t, err)

	require.Len(t, batch.Rooms, 2)
	courtyard := batch.Room(3, 1)
	require.NotNil(t, courtyard)
	assert.Equal(t, "Courtyard", courtyard.Name)
	assert.Equal(t, "An open courtyard.", courtyard.Description)
	assert.False(t, courtyard.IsDark)
	assert.Equal(t, 2, courtyard.Exit("e").RoomTo)
	// String-typed exit values decode like numbers.
	assert.Equal(t, adventure.ExitMainHall, courtyard.Exit("s").RoomTo)
	assert.Nil(t, courtyard.Exit("n"))

	dungeon := batch.Room(3, 2)
	require.NotNil(t, dungeon)
	assert.True(t, dungeon.IsDark)
	trapdoor := dungeon.Exit("d")
	require.NotNil(t, trapdoor)
	assert.Equal(t, 6, trapdoor.DoorID)
	assert.Zero(t, trapdoor.RoomTo)
}

func TestLoadArtifacts(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir)

	batch, err := NewSource(3).Load(dir)
	require.NoError(t, err)
	require.Len(t, batch.Artifacts, 4)

	crown := batch.Artifacts[0]
	assert.Equal(t, "Jeweled crown", crown.Name)
	assert.Equal(t, adventure.TypeTreasure, crown.Type)
	assert.Equal(t, adventure.LocRoom, crown.Location.Kind)

	hammer := batch.Artifacts[1]
	assert.Equal(t, 40, hammer.Value)
	assert.Equal(t, adventure.LocMonster, hammer.Location.Kind)
	assert.Equal(t, 1, hammer.Location.MonsterID)
	require.NotNil(t, hammer.Weapon)
	assert.Equal(t, 10, hammer.Weapon.Odds)
	assert.Equal(t, adventure.WeaponClub, hammer.Weapon.Type)
	assert.Equal(t, 2, hammer.Weapon.Dice)
	assert.Equal(t, 6, hammer.Weapon.Sides)

	door := batch.Artifacts[2]
	assert.Equal(t, adventure.TypeDoor, door.Type)
	assert.Equal(t, adventure.LocEmbedded, door.Location.Kind)
	assert.Equal(t, 2, door.Location.RoomID)
	require.NotNil(t, door.Door)
	assert.Equal(t, 4, door.Door.RoomBeyond)
	// field7 stores a closed flag.
	assert.False(t, door.Door.IsOpen)

	corpse := batch.Artifacts[3]
	assert.Equal(t, adventure.TypeDeadBody, corpse.Type)
}

func TestLoadMonsters(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir)

	batch, err := NewSource(3).Load(dir)
	require.NoError(t, err)
	require.Len(t, batch.Monsters, 2)

	warden := batch.Monsters[0]
	assert.Equal(t, "Warden", warden.Name)
	assert.Equal(t, adventure.Hostile, warden.Friendliness)
	assert.Equal(t, 2, warden.ArmorClass)
	assert.Equal(t, 65, warden.AttackOdds)
	assert.Equal(t, 1, warden.Count)

	dog := batch.Monsters[1]
	assert.Equal(t, adventure.Random, dog.Friendliness)
	assert.Equal(t, 40, dog.FriendOdds)
	// Optional combat fields default sensibly.
	assert.Equal(t, 50, dog.AttackOdds)
	assert.Zero(t, dog.WeaponID)
}

func TestLoadMissingEffectsIsWarning(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir)

	batch, err := NewSource(3).Load(dir)
	require.NoError(t, err)
	assert.Empty(t, batch.Effects)
	require.NotEmpty(t, batch.Warnings)
	assert.Contains(t, batch.Warnings[0], "no effects.json")
}

func TestLoadEffects(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir)
	writeJSON(t, dir, "effects.json", `[
		{"id": 1, "text": "THE GROUND  TREMBLES."}
	]`)

	batch, err := NewSource(3).Load(dir)
	require.NoError(t, err)
	require.Len(t, batch.Effects, 1)
	assert.Equal(t, "The ground trembles.", batch.Effects[0].Text)
	assert.Empty(t, batch.Warnings)
}

func TestLoadMissingRequiredFileFails(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir)
	require.NoError(t, os.Remove(filepath.Join(dir, "artifacts.json")))

	_, err := NewSource(3).Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "artifacts.json")
}

func TestLoadEndToEndDoorResolution(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir)

	batch, err := NewSource(3).Load(dir)
	require.NoError(t, err)

	warnings := importer.ResolveDoors(batch)
	assert.Empty(t, warnings)
	assert.Equal(t, 4, batch.Room(3, 2).Exit("d").RoomTo)
}
