package adventure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestDecodeEDXLocation(t *testing.T) {
	tests := []struct {
		name string
		code int
		want Location
	}{
		{"worn", -999, Location{Kind: LocWorn}},
		{"player", -1, Location{Kind: LocPlayer}},
		{"monster", -4, Location{Kind: LocMonster, MonsterID: 3}},
		{"nowhere", 0, Location{Kind: LocNowhere}},
		{"room", 7, Location{Kind: LocRoom, RoomID: 7}},
		{"room boundary", 1000, Location{Kind: LocRoom, RoomID: 1000}},
		{"container boundary", 1001, Location{Kind: LocContainer, ContainerID: 1}},
		{"container top", 2000, Location{Kind: LocContainer, ContainerID: 1000}},
		{"embedded boundary", 2001, Location{Kind: LocEmbedded, RoomID: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeEDXLocation(tt.code))
		})
	}
}

func TestDecodeClassicLocation(t *testing.T) {
	tests := []struct {
		name string
		code int
		want Location
	}{
		{"monster", -3, Location{Kind: LocMonster, MonsterID: 2}},
		{"nowhere", 0, Location{Kind: LocNowhere}},
		{"room", 42, Location{Kind: LocRoom, RoomID: 42}},
		{"room boundary", 200, Location{Kind: LocRoom, RoomID: 200}},
		{"embedded boundary", 201, Location{Kind: LocEmbedded, RoomID: 1}},
		{"embedded top", 500, Location{Kind: LocEmbedded, RoomID: 300}},
		{"container boundary", 501, Location{Kind: LocContainer, ContainerID: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeClassicLocation(tt.code))
		})
	}
}

func TestPropertyEDXLocationSingleKind(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		code := rapid.IntRange(-2000, 4000).Draw(t, "code")
		loc := DecodeEDXLocation(code)
		// The reference id fields set must match the kind.
		switch loc.Kind {
		case LocMonster:
			if loc.MonsterID < 0 {
				t.Fatalf("code %d produced negative monster id %d", code, loc.MonsterID)
			}
		case LocRoom, LocEmbedded:
			if loc.RoomID <= 0 {
				t.Fatalf("code %d produced non-positive room id %d", code, loc.RoomID)
			}
		case LocContainer:
			if loc.ContainerID <= 0 {
				t.Fatalf("code %d produced non-positive container id %d", code, loc.ContainerID)
			}
		}
	})
}

func TestConvertEDXArmor(t *testing.T) {
	tests := []struct {
		raw       int
		wantClass int
		wantType  ArmorType
	}{
		{0, 0, ArmorTypeArmor},
		{1, 0, ArmorTypeShield},
		{2, 1, ArmorTypeArmor},
		{3, 1, ArmorTypeShield},
		{6, 3, ArmorTypeArmor},
		{7, 3, ArmorTypeShield},
		{-2, 0, ArmorTypeArmor},
	}
	for _, tt := range tests {
		class, typ := ConvertEDXArmor(tt.raw)
		assert.Equal(t, tt.wantClass, class, "raw %d", tt.raw)
		assert.Equal(t, tt.wantType, typ, "raw %d", tt.raw)
	}
}

func TestReclassifyDeadBody(t *testing.T) {
	a := &Artifact{
		Type:     TypeTreasure,
		Value:    0,
		Location: Location{Kind: LocNowhere},
	}
	a.ReclassifyDeadBody()
	assert.Equal(t, TypeDeadBody, a.Type)
	assert.NotNil(t, a.DeadBody)
	assert.False(t, a.DeadBody.GetAll)
}

func TestReclassifyDeadBodyLeavesPlacedArtifacts(t *testing.T) {
	a := &Artifact{
		Type:     TypeTreasure,
		Value:    0,
		Location: Location{Kind: LocRoom, RoomID: 3},
	}
	a.ReclassifyDeadBody()
	assert.Equal(t, TypeTreasure, a.Type)
	assert.Nil(t, a.DeadBody)

	b := &Artifact{
		Type:     TypeTreasure,
		Value:    10,
		Location: Location{Kind: LocNowhere},
	}
	b.ReclassifyDeadBody()
	assert.Equal(t, TypeTreasure, b.Type)
}

func TestSetTypeClearsPayloads(t *testing.T) {
	a := &Artifact{
		Type:   TypeWeapon,
		Weapon: &WeaponDetail{Odds: 10, Type: WeaponSword, Dice: 1, Sides: 8},
	}
	a.SetType(TypeDeadBody)
	assert.Equal(t, TypeDeadBody, a.Type)
	assert.Nil(t, a.Weapon)
}

func TestIsWeapon(t *testing.T) {
	assert.True(t, TypeWeapon.IsWeapon())
	assert.True(t, TypeMagicWeapon.IsWeapon())
	assert.False(t, TypeTreasure.IsWeapon())
	assert.False(t, TypeDoor.IsWeapon())
}
