// Package overworld provides the public façade over terrain generation:
// world-coordinate tile queries, lazy block generation with a permanent
// cache, and snapshot persistence.
package overworld

import "github.com/lawnchairsociety/openworldmud/server/internal/terrain"

// DefaultBlockSize is the side length of a generated block in world cells
const DefaultBlockSize = 8

// BlockCoord addresses one block on the infinite block grid
type BlockCoord struct {
	X, Y int
}

// Block is an immutable square of generated tiles. Once a block enters the
// manager cache its cells never change.
type Block struct {
	Coord BlockCoord
	Size  int

	cells []terrain.TileKind // row-major
}

// newBlock wraps solved cells in a Block. The cell slice is owned by the
// block after this call.
func newBlock(coord BlockCoord, size int, cells []terrain.TileKind) *Block {
	return &Block{Coord: coord, Size: size, cells: cells}
}

// Tile returns the tile kind at local offsets within the block.
// Out-of-range offsets resolve to the default kind.
func (b *Block) Tile(localX, localY int) terrain.TileKind {
	if localX < 0 || localX >= b.Size || localY < 0 || localY >= b.Size {
		return terrain.DefaultKind
	}
	return b.cells[localY*b.Size+localX]
}

// Cells returns a copy of the block's cells in row-major order
func (b *Block) Cells() []terrain.TileKind {
	out := make([]terrain.TileKind, len(b.cells))
	copy(out, b.cells)
	return out
}

// floorDiv divides toward negative infinity, so world coordinate -1 lands
// in block -1 rather than block 0.
func floorDiv(a, n int) int {
	q := a / n
	if a%n != 0 && (a < 0) != (n < 0) {
		q--
	}
	return q
}

// floorMod returns the always-non-negative local offset matching floorDiv
func floorMod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
