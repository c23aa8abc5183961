package overworld

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/crypto/blake2b"

	"github.com/lawnchairsociety/openworldmud/server/internal/logger"
	"github.com/lawnchairsociety/openworldmud/server/internal/terrain"
)

var (
	ErrNoSaveData = errors.New("overworld: no save data")
)

// SaveData is the self-contained persisted form of a manager: the world
// seed, the block size, and every cached block. It lives under its own key
// inside a larger save file; older saves that lack it simply mean no
// generator was attached.
type SaveData struct {
	WorldSeed int64       `json:"world_seed"`
	BlockSize int         `json:"block_size"`
	Checksum  string      `json:"checksum,omitempty"`
	Blocks    []BlockData `json:"blocks"`
}

// BlockData is one serialized block
type BlockData struct {
	BX    int        `json:"bx"`
	BY    int        `json:"by"`
	Cells []CellData `json:"cells"`
}

// CellData is one serialized cell. It marshals as the compact triple
// [local_x, local_y, "kind_name"] rather than an object.
type CellData struct {
	X    int
	Y    int
	Name string
}

// MarshalJSON encodes the cell as a three-element array
func (c CellData) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{c.X, c.Y, c.Name})
}

// UnmarshalJSON decodes the three-element array form
func (c *CellData) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 3 {
		return fmt.Errorf("cell entry has %d elements, want 3", len(raw))
	}
	if err := json.Unmarshal(raw[0], &c.X); err != nil {
		return fmt.Errorf("cell x: %w", err)
	}
	if err := json.Unmarshal(raw[1], &c.Y); err != nil {
		return fmt.Errorf("cell y: %w", err)
	}
	if err := json.Unmarshal(raw[2], &c.Name); err != nil {
		return fmt.Errorf("cell kind: %w", err)
	}
	return nil
}

// Snapshot captures the manager's full state. Blocks are ordered by
// coordinate so repeated snapshots of the same state are byte-identical.
func (m *Manager) Snapshot() *SaveData {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data := &SaveData{
		WorldSeed: m.seed,
		BlockSize: m.blockSize,
		Blocks:    make([]BlockData, 0, len(m.blocks)),
	}

	for coord, block := range m.blocks {
		bd := BlockData{
			BX:    coord.X,
			BY:    coord.Y,
			Cells: make([]CellData, 0, m.blockSize*m.blockSize),
		}
		for y := 0; y < m.blockSize; y++ {
			for x := 0; x < m.blockSize; x++ {
				bd.Cells = append(bd.Cells, CellData{X: x, Y: y, Name: block.Tile(x, y).String()})
			}
		}
		data.Blocks = append(data.Blocks, bd)
	}

	sort.Slice(data.Blocks, func(i, j int) bool {
		if data.Blocks[i].BY != data.Blocks[j].BY {
			return data.Blocks[i].BY < data.Blocks[j].BY
		}
		return data.Blocks[i].BX < data.Blocks[j].BX
	})

	if sum, err := checksumBlocks(data.Blocks); err == nil {
		data.Checksum = sum
	}

	return data
}

// Serialize marshals the manager's snapshot to JSON
func (m *Manager) Serialize() ([]byte, error) {
	data, err := json.Marshal(m.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("overworld: failed to marshal snapshot: %w", err)
	}
	return data, nil
}

// Restore reconstructs a manager from serialized data. Recoverable defects
// in the payload are tolerated: unknown tile kind names map to the default
// kind, out-of-range cells are skipped, and a checksum mismatch is logged
// but does not abort the load. Only a structurally unreadable payload or an
// unusable block size fails.
func Restore(data []byte) (*Manager, error) {
	if len(data) == 0 {
		return nil, ErrNoSaveData
	}

	var save SaveData
	if err := json.Unmarshal(data, &save); err != nil {
		return nil, fmt.Errorf("overworld: failed to parse save data: %w", err)
	}

	return RestoreSnapshot(&save)
}

// RestoreSnapshot reconstructs a manager from an already-decoded snapshot
func RestoreSnapshot(save *SaveData) (*Manager, error) {
	if save == nil {
		return nil, ErrNoSaveData
	}

	m, err := NewManagerSized(save.WorldSeed, save.BlockSize)
	if err != nil {
		return nil, err
	}

	if save.Checksum != "" {
		if sum, err := checksumBlocks(save.Blocks); err == nil && sum != save.Checksum {
			logger.Warning("world snapshot checksum mismatch, loading anyway",
				"expected", save.Checksum, "actual", sum)
		}
	}

	unknown := 0
	for _, bd := range save.Blocks {
		cells := make([]terrain.TileKind, save.BlockSize*save.BlockSize)
		for i := range cells {
			cells[i] = terrain.DefaultKind
		}
		for _, cell := range bd.Cells {
			if cell.X < 0 || cell.X >= save.BlockSize || cell.Y < 0 || cell.Y >= save.BlockSize {
				continue
			}
			kind, ok := terrain.ParseKind(cell.Name)
			if !ok {
				unknown++
			}
			cells[cell.Y*save.BlockSize+cell.X] = kind
		}
		coord := BlockCoord{X: bd.BX, Y: bd.BY}
		m.blocks[coord] = newBlock(coord, save.BlockSize, cells)
	}

	if unknown > 0 {
		logger.Warning("world snapshot contained unrecognized tile kinds",
			"count", unknown, "replaced_with", terrain.DefaultKind.String())
	}

	return m, nil
}

// checksumBlocks computes the blake2b-256 digest of the serialized block
// list, used to detect corrupted saves.
func checksumBlocks(blocks []BlockData) (string, error) {
	payload, err := json.Marshal(blocks)
	if err != nil {
		return "", err
	}
	sum := blake2b.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
