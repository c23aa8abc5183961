package overworld

import (
	"fmt"
	"sync"

	"github.com/lawnchairsociety/openworldmud/server/internal/logger"
	"github.com/lawnchairsociety/openworldmud/server/internal/terrain"
	"github.com/lawnchairsociety/openworldmud/server/internal/wfc"
)

// Manager generates and caches overworld blocks on demand. The cache only
// grows: blocks are generated at most once per coordinate and are immutable
// afterwards, which keeps tile queries reproducible regardless of the order
// the world is explored in.
type Manager struct {
	seed      int64
	blockSize int
	rules     *terrain.Rules

	mu             sync.RWMutex
	blocks         map[BlockCoord]*Block
	contradictions int
}

// NewManager creates a manager with the default block size and rules.
// It fails only if the adjacency rules are malformed (startup check).
func NewManager(seed int64) (*Manager, error) {
	return NewManagerSized(seed, DefaultBlockSize)
}

// NewManagerSized creates a manager with an explicit block size.
// The block size is fixed for the lifetime of the world.
func NewManagerSized(seed int64, blockSize int) (*Manager, error) {
	if blockSize <= 0 {
		return nil, fmt.Errorf("overworld: invalid block size %d", blockSize)
	}

	rules := terrain.DefaultRules()
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("overworld: %w", err)
	}

	return &Manager{
		seed:      seed,
		blockSize: blockSize,
		rules:     rules,
		blocks:    make(map[BlockCoord]*Block),
	}, nil
}

// Seed returns the world seed
func (m *Manager) Seed() int64 {
	return m.seed
}

// BlockSize returns the fixed block side length
func (m *Manager) BlockSize() int {
	return m.blockSize
}

// WorldToBlock maps a world coordinate to its block coordinate and local
// offsets. Negative coordinates floor toward negative infinity, so world
// x = -1 belongs to block -1 and x = blockSize belongs to block 1.
func (m *Manager) WorldToBlock(x, y int) (BlockCoord, int, int) {
	coord := BlockCoord{X: floorDiv(x, m.blockSize), Y: floorDiv(y, m.blockSize)}
	return coord, floorMod(x, m.blockSize), floorMod(y, m.blockSize)
}

// TileAt returns the tile kind at a world coordinate, generating and
// caching the containing block on first visit.
func (m *Manager) TileAt(x, y int) terrain.TileKind {
	coord, lx, ly := m.WorldToBlock(x, y)
	return m.GetOrGenerateBlock(coord.X, coord.Y).Tile(lx, ly)
}

// TileNameAt returns the stable string name of the tile at a world
// coordinate; this is the identifier external collaborators consume.
func (m *Manager) TileNameAt(x, y int) string {
	return m.TileAt(x, y).String()
}

// IsPassable reports whether characters can walk onto the tile at a world
// coordinate.
func (m *Manager) IsPassable(x, y int) bool {
	return m.TileAt(x, y).Passable()
}

// GetOrGenerateBlock returns the block at a block coordinate, generating
// it if it has not been visited yet. Generation of a missing block happens
// under the write lock, so at most one generation is in flight at a time
// and racing callers for the same coordinate share a single cache entry.
func (m *Manager) GetOrGenerateBlock(bx, by int) *Block {
	coord := BlockCoord{X: bx, Y: by}

	m.mu.RLock()
	block, exists := m.blocks[coord]
	m.mu.RUnlock()
	if exists {
		return block
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Another caller may have generated it while we waited for the lock
	if block, exists := m.blocks[coord]; exists {
		return block
	}

	block = m.generateLocked(coord)
	m.blocks[coord] = block
	return block
}

// BlockIfExists returns the cached block at a coordinate, or nil without
// triggering generation.
func (m *Manager) BlockIfExists(bx, by int) *Block {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.blocks[BlockCoord{X: bx, Y: by}]
}

// BlockCount returns the number of cached blocks
func (m *Manager) BlockCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.blocks)
}

// ContradictionCount returns how many solver contradictions have been
// resolved via the fallback since the manager was created. Diagnostic
// only; stays zero with well-formed rules.
func (m *Manager) ContradictionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.contradictions
}

// generateLocked runs the solver for one block, feeding it whatever edge
// cells already exist in the four neighboring cached blocks. Caller holds
// the write lock.
func (m *Manager) generateLocked(coord BlockCoord) *Block {
	size := m.blockSize
	var boundary []wfc.BoundaryCell

	if west := m.blocks[BlockCoord{X: coord.X - 1, Y: coord.Y}]; west != nil {
		for y := 0; y < size; y++ {
			boundary = append(boundary, wfc.BoundaryCell{
				X: 0, Y: y, Dir: terrain.West, Kind: west.Tile(size-1, y),
			})
		}
	}
	if east := m.blocks[BlockCoord{X: coord.X + 1, Y: coord.Y}]; east != nil {
		for y := 0; y < size; y++ {
			boundary = append(boundary, wfc.BoundaryCell{
				X: size - 1, Y: y, Dir: terrain.East, Kind: east.Tile(0, y),
			})
		}
	}
	if north := m.blocks[BlockCoord{X: coord.X, Y: coord.Y - 1}]; north != nil {
		for x := 0; x < size; x++ {
			boundary = append(boundary, wfc.BoundaryCell{
				X: x, Y: 0, Dir: terrain.North, Kind: north.Tile(x, size-1),
			})
		}
	}
	if south := m.blocks[BlockCoord{X: coord.X, Y: coord.Y + 1}]; south != nil {
		for x := 0; x < size; x++ {
			boundary = append(boundary, wfc.BoundaryCell{
				X: x, Y: size - 1, Dir: terrain.South, Kind: south.Tile(x, 0),
			})
		}
	}

	solver := wfc.NewSolver(size, wfc.BlockSeed(m.seed, coord.X, coord.Y), m.rules)
	cells := solver.Solve(boundary)

	if solver.Contradictions > 0 {
		m.contradictions += solver.Contradictions
		logger.Warning("solver resolved contradictions during block generation",
			"bx", coord.X, "by", coord.Y, "count", solver.Contradictions)
	}
	logger.Debug("generated block", "bx", coord.X, "by", coord.Y, "boundary_cells", len(boundary))

	return newBlock(coord, size, cells)
}
