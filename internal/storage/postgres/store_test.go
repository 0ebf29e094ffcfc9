package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eamon-archive/eamon-import/internal/adventure"
	"github.com/eamon-archive/eamon-import/internal/storage/postgres"
	"github.com/eamon-archive/eamon-import/internal/testutil"
)

func uniqueSlug(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

func setupStore(t *testing.T) (*postgres.Store, *postgres.AdventureRepository, int64) {
	t.Helper()
	pool := testutil.NewPool(t)
	repo := postgres.NewAdventureRepository(pool)
	adv, err := repo.Create(context.Background(), &adventure.Adventure{
		Name: "Test Cavern",
		Slug: uniqueSlug("test-cavern"),
		EDX:  1,
	})
	require.NoError(t, err)
	return postgres.NewStore(pool), repo, adv.ID
}

func testRoom(adventureID int64) *adventure.Room {
	return &adventure.Room{
		AdventureID: adventureID,
		RoomID:      1,
		Name:        "Cave mouth",
		Description: "Light filters in from outside.",
		Exits: []adventure.RoomExit{
			{Direction: "n", RoomTo: 2},
			{Direction: "s", RoomTo: adventure.ExitMainHall},
			{Direction: "d", RoomTo: 3, DoorID: 4},
		},
	}
}

func TestStoreSaveRoomRoundTrip(t *testing.T) {
	store, _, advID := setupStore(t)
	ctx := context.Background()

	room := testRoom(advID)
	require.NoError(t, store.SaveRoom(ctx, room))

	rooms, err := store.RoomsByAdventure(ctx, advID)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	got := rooms[0]
	assert.Equal(t, room.Name, got.Name)
	assert.Equal(t, room.Description, got.Description)
	assert.False(t, got.IsDark)
	require.Len(t, got.Exits, 3)
	assert.Equal(t, 2, got.Exit("n").RoomTo)
	assert.Equal(t, adventure.ExitMainHall, got.Exit("s").RoomTo)
	assert.Equal(t, 4, got.Exit("d").DoorID)
}

func TestStoreSaveRoomIdempotent(t *testing.T) {
	store, _, advID := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveRoom(ctx, testRoom(advID)))
	require.NoError(t, store.SaveRoom(ctx, testRoom(advID)))

	rooms, err := store.RoomsByAdventure(ctx, advID)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Len(t, rooms[0].Exits, 3)
}

func TestStoreSaveRoomPrunesRemovedExits(t *testing.T) {
	store, _, advID := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveRoom(ctx, testRoom(advID)))

	// A re-import where the south connection became zero drops that exit
	// and only that exit.
	updated := testRoom(advID)
	updated.Exits = updated.Exits[:1]
	require.NoError(t, store.SaveRoom(ctx, updated))

	rooms, err := store.RoomsByAdventure(ctx, advID)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Len(t, rooms[0].Exits, 1)
	assert.NotNil(t, rooms[0].Exit("n"))
	assert.Nil(t, rooms[0].Exit("s"))
}

func TestStoreSaveArtifactRoundTrip(t *testing.T) {
	store, _, advID := setupStore(t)
	ctx := context.Background()

	artifacts := []*adventure.Artifact{
		{
			AdventureID: advID, ArtifactID: 1,
			Name: "Short sword", Synonyms: "sword,blade",
			Description: "A plain short sword.",
			Type:        adventure.TypeWeapon, Value: 25, Weight: 3,
			Location: adventure.Location{Kind: adventure.LocPlayer},
			Weapon:   &adventure.WeaponDetail{Odds: 10, Type: adventure.WeaponSword, Dice: 1, Sides: 6},
		},
		{
			AdventureID: advID, ArtifactID: 2,
			Name: "Iron door", Type: adventure.TypeDoor, Weight: 999,
			Location: adventure.Location{Kind: adventure.LocRoom, RoomID: 4},
			Door:     &adventure.DoorDetail{RoomBeyond: 7, KeyID: 3, IsOpen: false, Hidden: true},
		},
		{
			AdventureID: advID, ArtifactID: 3,
			Name: "Leather armor", Type: adventure.TypeWearable, Value: 50, Weight: 10,
			Location: adventure.Location{Kind: adventure.LocWorn},
			Wearable: &adventure.WearableDetail{ArmorClass: 1, ArmorType: adventure.ArmorTypeArmor},
		},
		{
			AdventureID: advID, ArtifactID: 4,
			Name: "Old bones", Type: adventure.TypeDeadBody, Weight: 100,
			Location: adventure.Location{Kind: adventure.LocNowhere},
			DeadBody: &adventure.DeadBodyDetail{GetAll: false},
		},
	}
	for _, a := range artifacts {
		require.NoError(t, store.SaveArtifact(ctx, a))
	}

	got, err := store.ArtifactsByAdventure(ctx, advID)
	require.NoError(t, err)
	require.Len(t, got, 4)

	sword := got[0]
	assert.Equal(t, "sword,blade", sword.Synonyms)
	assert.Equal(t, adventure.LocPlayer, sword.Location.Kind)
	require.NotNil(t, sword.Weapon)
	assert.Equal(t, adventure.WeaponSword, sword.Weapon.Type)

	door := got[1]
	assert.Equal(t, adventure.LocRoom, door.Location.Kind)
	assert.Equal(t, 4, door.Location.RoomID)
	require.NotNil(t, door.Door)
	assert.Equal(t, 7, door.Door.RoomBeyond)
	assert.True(t, door.Door.Hidden)
	assert.False(t, door.Door.IsOpen)

	armor := got[2]
	assert.Equal(t, adventure.LocWorn, armor.Location.Kind)
	require.NotNil(t, armor.Wearable)

	bones := got[3]
	assert.Equal(t, adventure.LocNowhere, bones.Location.Kind)
	require.NotNil(t, bones.DeadBody)
	assert.False(t, bones.DeadBody.GetAll)
}

func TestStoreSaveArtifactUpsertOverwrites(t *testing.T) {
	store, _, advID := setupStore(t)
	ctx := context.Background()

	a := &adventure.Artifact{
		AdventureID: advID, ArtifactID: 1, Name: "Gem",
		Type: adventure.TypeTreasure, Value: 100,
		Location: adventure.Location{Kind: adventure.LocRoom, RoomID: 1},
	}
	require.NoError(t, store.SaveArtifact(ctx, a))

	a.Value = 250
	a.Location = adventure.Location{Kind: adventure.LocContainer, ContainerID: 5}
	require.NoError(t, store.SaveArtifact(ctx, a))

	got, err := store.ArtifactsByAdventure(ctx, advID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 250, got[0].Value)
	assert.Equal(t, adventure.LocContainer, got[0].Location.Kind)
	assert.Equal(t, 5, got[0].Location.ContainerID)
}

func TestStoreSaveEffectAndMonster(t *testing.T) {
	store, _, advID := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveEffect(ctx, &adventure.Effect{
		AdventureID: advID, EffectID: 1,
		Text: "The torch gutters.", Style: adventure.StyleWarning, Next: 2,
	}))
	require.NoError(t, store.SaveMonster(ctx, &adventure.Monster{
		AdventureID: advID, MonsterID: 1,
		Name: "Troll", Description: "It smells terrible.",
		Hardiness: 30, Agility: 8, Courage: 100, Count: 1,
		Friendliness: adventure.Random, FriendOdds: 25,
		CombatCode: adventure.CombatAny, AttackOdds: 50,
		WeaponDice: 2, WeaponSides: 8, RoomID: 3,
	}))

	effects, err := store.EffectsByAdventure(ctx, advID)
	require.NoError(t, err)
	require.Len(t, effects, 1)
	assert.Equal(t, adventure.StyleWarning, effects[0].Style)
	assert.Equal(t, 2, effects[0].Next)

	monsters, err := store.MonstersByAdventure(ctx, advID)
	require.NoError(t, err)
	require.Len(t, monsters, 1)
	troll := monsters[0]
	assert.Equal(t, adventure.Random, troll.Friendliness)
	assert.Equal(t, 25, troll.FriendOdds)
	assert.Equal(t, adventure.CombatAny, troll.CombatCode)
}

func TestAdventureRepositoryListByEDX(t *testing.T) {
	pool := testutil.NewPool(t)
	repo := postgres.NewAdventureRepository(pool)
	ctx := context.Background()

	_, err := repo.Create(ctx, &adventure.Adventure{
		Name: "Second", Slug: uniqueSlug("second"), EDX: 2, RoomOffset: 40,
	})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &adventure.Adventure{
		Name: "First", Slug: uniqueSlug("first"), EDX: 2, RoomOffset: 1,
	})
	require.NoError(t, err)

	advs, err := repo.ListByEDX(ctx, 2)
	require.NoError(t, err)
	require.Len(t, advs, 2)
	// Ordered by room offset, not insertion.
	assert.Equal(t, "First", advs[0].Name)
	assert.Equal(t, "Second", advs[1].Name)

	none, err := repo.ListByEDX(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAdventureRepositoryGetByIDNotFound(t *testing.T) {
	pool := testutil.NewPool(t)
	repo := postgres.NewAdventureRepository(pool)

	_, err := repo.GetByID(context.Background(), 424242)
	assert.ErrorIs(t, err, postgres.ErrAdventureNotFound)
}

func TestHintRepositorySaveAndAssign(t *testing.T) {
	pool := testutil.NewPool(t)
	repo := postgres.NewAdventureRepository(pool)
	hintRepo := postgres.NewHintRepository(pool)
	ctx := context.Background()

	adv, err := repo.Create(ctx, &adventure.Adventure{
		Name: "Hinted", Slug: uniqueSlug("hinted"), EDX: 3,
	})
	require.NoError(t, err)

	hints := []*adventure.Hint{
		{EDX: 3, Index: 1, Question: "How do I open the gate?", Answers: []adventure.HintAnswer{
			{Index: 1, Answer: "Look for a key."},
			{Index: 2, Answer: "The guard has it."},
		}},
		{EDX: 3, Index: 2, Question: "Where is the treasure?", Answers: []adventure.HintAnswer{
			{Index: 1, Answer: "Below the cellar."},
		}},
	}
	for _, h := range hints {
		require.NoError(t, hintRepo.Save(ctx, h))
	}
	// Saving again leaves the pool unchanged.
	for _, h := range hints {
		require.NoError(t, hintRepo.Save(ctx, h))
	}

	require.NoError(t, hintRepo.AssignRange(ctx, 3, 2, 2, adv.ID))

	got, err := hintRepo.ByEDX(ctx, 3)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Zero(t, got[0].AdventureID)
	assert.Equal(t, adv.ID, got[1].AdventureID)
	require.Len(t, got[0].Answers, 2)
	assert.Equal(t, "The guard has it.", got[0].Answers[1].Answer)

	stored, err := repo.GetByID(ctx, adv.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.FirstHint)
	assert.Equal(t, 2, stored.LastHint)
}
