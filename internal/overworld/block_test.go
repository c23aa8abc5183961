package overworld

import (
	"testing"

	"github.com/lawnchairsociety/openworldmud/server/internal/terrain"
)

func TestFloorDiv(t *testing.T) {
	tests := []struct {
		a, n, want int
	}{
		{0, 8, 0},
		{7, 8, 0},
		{8, 8, 1},
		{15, 8, 1},
		{16, 8, 2},
		{-1, 8, -1},
		{-8, 8, -1},
		{-9, 8, -2},
		{-16, 8, -2},
		{-17, 8, -3},
	}

	for _, tc := range tests {
		if got := floorDiv(tc.a, tc.n); got != tc.want {
			t.Errorf("floorDiv(%d, %d) = %d, want %d", tc.a, tc.n, got, tc.want)
		}
	}
}

func TestFloorMod(t *testing.T) {
	tests := []struct {
		a, n, want int
	}{
		{0, 8, 0},
		{7, 8, 7},
		{8, 8, 0},
		{-1, 8, 7},
		{-8, 8, 0},
		{-9, 8, 7},
	}

	for _, tc := range tests {
		if got := floorMod(tc.a, tc.n); got != tc.want {
			t.Errorf("floorMod(%d, %d) = %d, want %d", tc.a, tc.n, got, tc.want)
		}
	}
}

func TestWorldToBlock(t *testing.T) {
	m, err := NewManager(1)
	if err != nil {
		t.Fatalf("NewManager() failed: %v", err)
	}

	tests := []struct {
		x, y           int
		wantBX, wantBY int
		wantLX, wantLY int
	}{
		{0, 0, 0, 0, 0, 0},
		{8, 0, 1, 0, 0, 0},
		{-1, -1, -1, -1, 7, 7},
		{-9, 3, -2, 0, 7, 3},
		{15, 23, 1, 2, 7, 7},
	}

	for _, tc := range tests {
		coord, lx, ly := m.WorldToBlock(tc.x, tc.y)
		if coord.X != tc.wantBX || coord.Y != tc.wantBY || lx != tc.wantLX || ly != tc.wantLY {
			t.Errorf("WorldToBlock(%d, %d) = (%d,%d) local (%d,%d), want (%d,%d) local (%d,%d)",
				tc.x, tc.y, coord.X, coord.Y, lx, ly, tc.wantBX, tc.wantBY, tc.wantLX, tc.wantLY)
		}
	}
}

func TestBlockTileOutOfRange(t *testing.T) {
	cells := make([]terrain.TileKind, 4)
	for i := range cells {
		cells[i] = terrain.Forest
	}
	b := newBlock(BlockCoord{}, 2, cells)

	if got := b.Tile(1, 1); got != terrain.Forest {
		t.Errorf("Tile(1,1) = %s, want forest", got)
	}
	if got := b.Tile(-1, 0); got != terrain.DefaultKind {
		t.Errorf("Tile(-1,0) = %s, want default kind", got)
	}
	if got := b.Tile(0, 2); got != terrain.DefaultKind {
		t.Errorf("Tile(0,2) = %s, want default kind", got)
	}
}

func TestBlockCellsReturnsCopy(t *testing.T) {
	cells := []terrain.TileKind{terrain.Plains, terrain.Forest, terrain.Hills, terrain.Swamp}
	b := newBlock(BlockCoord{}, 2, cells)

	out := b.Cells()
	out[0] = terrain.Water
	if b.Tile(0, 0) != terrain.Plains {
		t.Error("mutating Cells() result should not affect the block")
	}
}
