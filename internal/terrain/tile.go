// Package terrain defines the closed catalog of overworld tile kinds and
// the static adjacency rules that constrain which kinds may neighbor each
// other during generation.
package terrain

// TileKind identifies one terrain type in the overworld catalog
type TileKind int

const (
	Plains TileKind = iota
	Forest
	Hills
	Mountain
	Foothills
	Desert
	Swamp
	Beach
	Water

	// KindCount is the number of tile kinds; keep last
	KindCount
)

// DefaultKind is the safe fallback for unknown or unresolvable tiles.
// Plains is the most permissive walkable kind in the default rules.
const DefaultKind = Plains

// String returns the stable string name of a TileKind
func (k TileKind) String() string {
	switch k {
	case Plains:
		return "plains"
	case Forest:
		return "forest"
	case Hills:
		return "hills"
	case Mountain:
		return "mountain"
	case Foothills:
		return "foothills"
	case Desert:
		return "desert"
	case Swamp:
		return "swamp"
	case Beach:
		return "beach"
	case Water:
		return "water"
	default:
		return "unknown"
	}
}

// Symbol returns the single-rune map symbol for a TileKind
func (k TileKind) Symbol() rune {
	switch k {
	case Plains:
		return '.'
	case Forest:
		return 'f'
	case Hills:
		return 'h'
	case Mountain:
		return '^'
	case Foothills:
		return 'n'
	case Desert:
		return 'd'
	case Swamp:
		return 's'
	case Beach:
		return 'b'
	case Water:
		return '~'
	default:
		return '?'
	}
}

// Passable returns true if characters can walk onto this tile kind
func (k TileKind) Passable() bool {
	switch k {
	case Mountain, Water:
		return false
	default:
		return true
	}
}

// Weight returns the relative selection weight used when the solver
// collapses a cell. Higher weights make a kind more common.
func (k TileKind) Weight() int {
	switch k {
	case Plains:
		return 5
	case Forest:
		return 4
	case Hills:
		return 3
	case Foothills:
		return 3
	case Water:
		return 3
	case Desert:
		return 2
	case Swamp:
		return 2
	case Beach:
		return 2
	case Mountain:
		return 1
	default:
		return 1
	}
}

// Valid returns true if k is a member of the catalog
func (k TileKind) Valid() bool {
	return k >= 0 && k < KindCount
}

// AllKinds returns every tile kind in enumeration order
func AllKinds() []TileKind {
	kinds := make([]TileKind, 0, KindCount)
	for k := TileKind(0); k < KindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// ParseKind maps a stable string name back to a TileKind.
// Unknown names map to DefaultKind so legacy save data never fails to load;
// the second return value reports whether the name was recognized.
func ParseKind(name string) (TileKind, bool) {
	for k := TileKind(0); k < KindCount; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return DefaultKind, false
}

// Direction represents a cardinal direction in the grid
type Direction int

const (
	North Direction = iota
	East
	South
	West

	// DirCount is the number of cardinal directions; keep last
	DirCount
)

// String returns the string representation of a Direction
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// Opposite returns the opposite direction
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case East:
		return West
	case South:
		return North
	case West:
		return East
	default:
		return d
	}
}

// Offset returns the (dx, dy) step for a direction.
// North decreases y, matching the grid orientation used by the solver.
func (d Direction) Offset() (int, int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	}
	return 0, 0
}

// AllDirections returns all four cardinal directions
func AllDirections() []Direction {
	return []Direction{North, East, South, West}
}

// KindSet is a fixed-size bitset over the tile kind enumeration.
// The catalog is closed and small, so a uint16 covers it.
type KindSet uint16

// AllKindsSet returns the set containing every catalog kind
func AllKindsSet() KindSet {
	return KindSet(1<<KindCount) - 1
}

// Has returns true if the set contains k
func (s KindSet) Has(k TileKind) bool {
	return s&(1<<k) != 0
}

// Add returns the set with k included
func (s KindSet) Add(k TileKind) KindSet {
	return s | (1 << k)
}

// Intersect returns the intersection of two sets
func (s KindSet) Intersect(o KindSet) KindSet {
	return s & o
}

// Count returns the number of kinds in the set
func (s KindSet) Count() int {
	count := 0
	for k := TileKind(0); k < KindCount; k++ {
		if s.Has(k) {
			count++
		}
	}
	return count
}

// Kinds returns the members of the set in enumeration order
func (s KindSet) Kinds() []TileKind {
	var kinds []TileKind
	for k := TileKind(0); k < KindCount; k++ {
		if s.Has(k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}
