package overworld

import (
	"testing"

	"github.com/lawnchairsociety/openworldmud/server/internal/terrain"
)

func newTestManager(t *testing.T, seed int64) *Manager {
	t.Helper()
	m, err := NewManager(seed)
	if err != nil {
		t.Fatalf("NewManager(%d) failed: %v", seed, err)
	}
	return m
}

func TestNewManagerRejectsBadBlockSize(t *testing.T) {
	if _, err := NewManagerSized(1, 0); err == nil {
		t.Error("NewManagerSized should reject block size 0")
	}
	if _, err := NewManagerSized(1, -4); err == nil {
		t.Error("NewManagerSized should reject a negative block size")
	}
}

func TestSameSeedSameBlock(t *testing.T) {
	a := newTestManager(t, 12345)
	b := newTestManager(t, 12345)

	blockA := a.GetOrGenerateBlock(3, 5)
	blockB := b.GetOrGenerateBlock(3, 5)

	cellsA := blockA.Cells()
	cellsB := blockB.Cells()
	for i := range cellsA {
		if cellsA[i] != cellsB[i] {
			t.Fatalf("cell %d differs across managers with the same seed: %s vs %s",
				i, cellsA[i], cellsB[i])
		}
	}
}

func TestDifferentSeedDifferentBlock(t *testing.T) {
	a := newTestManager(t, 12345)
	b := newTestManager(t, 54321)

	cellsA := a.GetOrGenerateBlock(3, 5).Cells()
	cellsB := b.GetOrGenerateBlock(3, 5).Cells()

	same := true
	for i := range cellsA {
		if cellsA[i] != cellsB[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("block (3,5) identical under seeds 12345 and 54321")
	}
}

func TestDistinctBlocksDiffer(t *testing.T) {
	m := newTestManager(t, 99)

	cellsA := m.GetOrGenerateBlock(0, 0).Cells()
	cellsB := m.GetOrGenerateBlock(10, -4).Cells()

	same := true
	for i := range cellsA {
		if cellsA[i] != cellsB[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("two distinct block coordinates produced identical content")
	}
}

func TestTileAtCachesExactlyOneBlock(t *testing.T) {
	m := newTestManager(t, 7)

	first := m.TileAt(3, 4)
	if m.BlockCount() != 1 {
		t.Fatalf("BlockCount() = %d after one query, want 1", m.BlockCount())
	}

	second := m.TileAt(3, 4)
	if first != second {
		t.Errorf("repeated TileAt returned %s then %s", first, second)
	}
	if m.BlockCount() != 1 {
		t.Errorf("BlockCount() = %d after repeated query, want 1", m.BlockCount())
	}

	// Another tile in the same block must not grow the cache either
	m.TileAt(0, 0)
	if m.BlockCount() != 1 {
		t.Errorf("BlockCount() = %d after same-block query, want 1", m.BlockCount())
	}
}

func TestBlockIfExistsDoesNotGenerate(t *testing.T) {
	m := newTestManager(t, 7)

	if m.BlockIfExists(2, 2) != nil {
		t.Error("BlockIfExists returned a block before generation")
	}
	if m.BlockCount() != 0 {
		t.Errorf("BlockCount() = %d, want 0", m.BlockCount())
	}

	m.GetOrGenerateBlock(2, 2)
	if m.BlockIfExists(2, 2) == nil {
		t.Error("BlockIfExists returned nil for a cached block")
	}
}

func TestCrossBlockAdjacency(t *testing.T) {
	m := newTestManager(t, 4242)
	rules := terrain.DefaultRules()

	// Traverse a contiguous rectangle spanning a 4x4 block area, visiting
	// blocks in a scattered order so cross-block seams form in every
	// direction against already-cached neighbors.
	order := []BlockCoord{
		{1, 1}, {-1, -1}, {0, 0}, {1, -1}, {-1, 1},
		{0, -1}, {1, 0}, {-1, 0}, {0, 1},
		{2, 0}, {2, 1}, {2, -1}, {0, 2}, {1, 2}, {-1, 2}, {2, 2},
	}
	for _, c := range order {
		m.GetOrGenerateBlock(c.X, c.Y)
	}

	minX, minY := -8, -8
	maxX, maxY := 23, 23
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			k := m.TileAt(x, y)
			if x+1 <= maxX {
				east := m.TileAt(x+1, y)
				if !rules.CanBeAdjacent(k, east, terrain.East) {
					t.Fatalf("(%d,%d) %s incompatible with east neighbor %s", x, y, k, east)
				}
			}
			if y+1 <= maxY {
				south := m.TileAt(x, y+1)
				if !rules.CanBeAdjacent(k, south, terrain.South) {
					t.Fatalf("(%d,%d) %s incompatible with south neighbor %s", x, y, k, south)
				}
			}
		}
	}

	if m.ContradictionCount() != 0 {
		t.Errorf("ContradictionCount() = %d with default rules, want 0", m.ContradictionCount())
	}
}

func TestIsPassableDelegatesToCatalog(t *testing.T) {
	m := newTestManager(t, 11)

	for y := -16; y < 16; y++ {
		for x := -16; x < 16; x++ {
			if m.IsPassable(x, y) != m.TileAt(x, y).Passable() {
				t.Fatalf("IsPassable(%d,%d) disagrees with the tile catalog", x, y)
			}
		}
	}
}

func TestTileNameAtIsStable(t *testing.T) {
	m := newTestManager(t, 11)

	name := m.TileNameAt(5, 5)
	kind, ok := terrain.ParseKind(name)
	if !ok {
		t.Fatalf("TileNameAt returned unrecognized name %q", name)
	}
	if kind != m.TileAt(5, 5) {
		t.Errorf("TileNameAt = %q but TileAt = %s", name, m.TileAt(5, 5))
	}
}
