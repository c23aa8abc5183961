// Package wfc implements the wave-function-collapse constraint solver that
// fills a single overworld block with mutually compatible tile assignments.
//
// The solver is pure: its output depends only on the block seed, the rules,
// and the boundary constraints it is handed. It never reads global random
// state, so generation order elsewhere in the world cannot affect a block.
package wfc

import (
	"math/rand"

	"github.com/lawnchairsociety/openworldmud/server/internal/terrain"
)

// BoundaryCell pins a fixed tile value just outside one edge of the block.
// X, Y is the local cell adjoining the fixed tile; Dir is the direction from
// that cell to the fixed tile. Boundary cells come from already generated
// neighbor blocks and are treated as hard constraints.
type BoundaryCell struct {
	X, Y int
	Dir  terrain.Direction
	Kind terrain.TileKind
}

// Solver assigns tile kinds to a Size x Size grid of cells
type Solver struct {
	Size int

	// Contradictions counts cells whose domain emptied during propagation
	// and were resolved by the deterministic fallback. With a validated
	// rule set this stays zero.
	Contradictions int

	rules     *terrain.Rules
	rng       *rand.Rand
	domains   []terrain.KindSet
	collapsed []bool
	kinds     []terrain.TileKind
	queue     []int
}

// NewSolver creates a solver for one block. blockSeed must already combine
// the world seed with the block coordinate (see BlockSeed) so that every
// block draws from its own deterministic sequence.
func NewSolver(size int, blockSeed int64, rules *terrain.Rules) *Solver {
	return &Solver{
		Size:  size,
		rules: rules,
		rng:   rand.New(rand.NewSource(blockSeed)),
	}
}

// Solve runs the collapse loop and returns the assigned kinds in row-major
// order. Identical inputs always produce identical output. Solve never
// fails: contradictions are resolved via the fallback rule and counted.
func (s *Solver) Solve(boundary []BoundaryCell) []terrain.TileKind {
	n := s.Size * s.Size
	s.domains = make([]terrain.KindSet, n)
	s.collapsed = make([]bool, n)
	s.kinds = make([]terrain.TileKind, n)
	s.queue = s.queue[:0]

	for i := range s.domains {
		s.domains[i] = terrain.AllKindsSet()
	}

	// Apply boundary constraints before anything collapses. The fixed tile
	// sits outside the grid in direction Dir, so the local cell's domain is
	// restricted to kinds the fixed tile accepts on its facing side.
	for _, b := range boundary {
		if b.X < 0 || b.X >= s.Size || b.Y < 0 || b.Y >= s.Size {
			continue
		}
		i := s.idx(b.X, b.Y)
		if s.constrain(i, s.rules.Allowed(b.Kind, b.Dir.Opposite())) {
			s.queue = append(s.queue, i)
		}
	}
	s.propagate()

	for {
		i := s.lowestEntropy()
		if i < 0 {
			break
		}
		s.collapse(i)
		s.queue = append(s.queue, i)
		s.propagate()
	}

	return s.kinds
}

// idx converts local coordinates to a row-major index
func (s *Solver) idx(x, y int) int {
	return y*s.Size + x
}

// lowestEntropy returns the uncollapsed cell with the smallest domain,
// ties broken by row-major position. Returns -1 when every cell is done.
func (s *Solver) lowestEntropy() int {
	best := -1
	bestCount := int(terrain.KindCount) + 1
	for i, done := range s.collapsed {
		if done {
			continue
		}
		count := s.domains[i].Count()
		if count < bestCount {
			best = i
			bestCount = count
		}
	}
	return best
}

// collapse assigns cell i one kind from its domain, chosen by a weighted
// draw from the per-block random sequence.
func (s *Solver) collapse(i int) {
	kinds := s.domains[i].Kinds()
	if len(kinds) == 0 {
		s.resolveContradiction(i)
		return
	}

	total := 0
	for _, k := range kinds {
		total += k.Weight()
	}

	pick := s.rng.Intn(total)
	chosen := kinds[len(kinds)-1]
	for _, k := range kinds {
		pick -= k.Weight()
		if pick < 0 {
			chosen = k
			break
		}
	}

	s.assign(i, chosen)
}

// assign fixes cell i to the given kind
func (s *Solver) assign(i int, kind terrain.TileKind) {
	s.domains[i] = terrain.KindSet(0).Add(kind)
	s.collapsed[i] = true
	s.kinds[i] = kind
}

// constrain intersects cell i's domain with the allowed set, resolving a
// contradiction immediately if the intersection empties. Returns true if
// the domain shrank and neighbors need revisiting.
func (s *Solver) constrain(i int, allowed terrain.KindSet) bool {
	if s.collapsed[i] {
		return false
	}
	next := s.domains[i].Intersect(allowed)
	if next == s.domains[i] {
		return false
	}
	if next == 0 {
		s.resolveContradiction(i)
		return false
	}
	s.domains[i] = next
	return true
}

// propagate drains the work queue, removing now-incompatible kinds from
// the neighbors of every changed cell.
func (s *Solver) propagate() {
	for len(s.queue) > 0 {
		i := s.queue[0]
		s.queue = s.queue[1:]

		x := i % s.Size
		y := i / s.Size

		for _, dir := range terrain.AllDirections() {
			dx, dy := dir.Offset()
			nx, ny := x+dx, y+dy
			if nx < 0 || nx >= s.Size || ny < 0 || ny >= s.Size {
				continue
			}
			ni := s.idx(nx, ny)
			if s.collapsed[ni] {
				continue
			}

			// A neighbor kind survives if at least one kind remaining in
			// this cell's domain supports it.
			var support terrain.KindSet
			for _, k := range s.domains[i].Kinds() {
				support |= s.rules.Allowed(k, dir)
			}

			if s.constrain(ni, support) {
				s.queue = append(s.queue, ni)
			}
		}
	}
}

// resolveContradiction deterministically assigns a cell whose domain has
// emptied: the lowest-ordered catalog kind compatible with every collapsed
// cardinal neighbor, or the default kind when none qualifies. The cell is
// fixed without further propagation so resolution always terminates.
func (s *Solver) resolveContradiction(i int) {
	s.Contradictions++

	x := i % s.Size
	y := i / s.Size

	chosen := terrain.DefaultKind
	for _, k := range terrain.AllKinds() {
		ok := true
		for _, dir := range terrain.AllDirections() {
			dx, dy := dir.Offset()
			nx, ny := x+dx, y+dy
			if nx < 0 || nx >= s.Size || ny < 0 || ny >= s.Size {
				continue
			}
			ni := s.idx(nx, ny)
			if !s.collapsed[ni] {
				continue
			}
			if !s.rules.CanBeAdjacent(k, s.kinds[ni], dir) {
				ok = false
				break
			}
		}
		if ok {
			chosen = k
			break
		}
	}

	s.assign(i, chosen)
}
