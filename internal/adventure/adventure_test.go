package adventure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestOffsetTableAttribute(t *testing.T) {
	table := NewOffsetTable(map[int64]int{1: 1, 2: 51})

	tests := []struct {
		index   int
		wantID  int64
		wantLoc int
	}{
		{1, 1, 1},
		{50, 1, 50},
		{51, 2, 1},
		{120, 2, 70},
	}
	for _, tt := range tests {
		attr, ok := table.Attribute(tt.index)
		require.True(t, ok, "index %d", tt.index)
		assert.Equal(t, tt.wantID, attr.AdventureID, "index %d", tt.index)
		assert.Equal(t, tt.wantLoc, attr.LocalID, "index %d", tt.index)
	}
}

func TestOffsetTableAttributeBelowFirstOffset(t *testing.T) {
	table := NewOffsetTable(map[int64]int{7: 10})
	_, ok := table.Attribute(9)
	assert.False(t, ok)
}

func TestOffsetTableSingleAdventure(t *testing.T) {
	table := NewOffsetTable(map[int64]int{3: 1})
	attr, ok := table.Attribute(17)
	require.True(t, ok)
	assert.Equal(t, int64(3), attr.AdventureID)
	assert.Equal(t, 17, attr.LocalID)
}

func TestPropertyAttributeLocalIDPositive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		first := rapid.IntRange(1, 100).Draw(t, "first")
		second := rapid.IntRange(first+1, 500).Draw(t, "second")
		table := NewOffsetTable(map[int64]int{1: first, 2: second})

		index := rapid.IntRange(first, 1000).Draw(t, "index")
		attr, ok := table.Attribute(index)
		if !ok {
			t.Fatalf("index %d not attributed", index)
		}
		if attr.LocalID < 1 {
			t.Fatalf("index %d produced local id %d", index, attr.LocalID)
		}
		// The attributed range must contain the index.
		if attr.AdventureID == 2 && index < second {
			t.Fatalf("index %d before offset %d attributed to second adventure", index, second)
		}
		if attr.AdventureID == 1 && index >= second {
			t.Fatalf("index %d past offset %d attributed to first adventure", index, second)
		}
	})
}

func TestNormalizeExit(t *testing.T) {
	assert.Equal(t, ExitMainHall, NormalizeExit(-99))
	assert.Equal(t, ExitMainHall, NormalizeExit(-999))
	assert.Equal(t, 12, NormalizeExit(12))
	assert.Equal(t, ExitNone, NormalizeExit(0))
}

func TestRoomExitLookup(t *testing.T) {
	r := &Room{Exits: []RoomExit{
		{Direction: "n", RoomTo: 2},
		{Direction: "d", RoomTo: 5, DoorID: 3},
	}}
	require.NotNil(t, r.Exit("d"))
	assert.Equal(t, 3, r.Exit("d").DoorID)
	assert.Nil(t, r.Exit("sw"))
}
