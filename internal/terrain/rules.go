package terrain

import "fmt"

// Rules defines the adjacency constraints between tile kinds.
// allowed[k][d] is the set of kinds permitted next to k in direction d.
type Rules struct {
	allowed [KindCount][DirCount]KindSet
}

// NewRules returns an empty rule set with no adjacencies allowed.
// Callers build it up with Allow and must Validate before use.
func NewRules() *Rules {
	return &Rules{}
}

// Allow permits a and b to be adjacent in every direction.
// The permission is symmetric: it applies from both sides.
func (r *Rules) Allow(a, b TileKind) {
	for d := Direction(0); d < DirCount; d++ {
		r.allowed[a][d] = r.allowed[a][d].Add(b)
		r.allowed[b][d] = r.allowed[b][d].Add(a)
	}
}

// AllowDirectional permits b next to a in direction d only, along with the
// mirrored permission of a next to b in the opposite direction.
func (r *Rules) AllowDirectional(a, b TileKind, d Direction) {
	r.allowed[a][d] = r.allowed[a][d].Add(b)
	opp := d.Opposite()
	r.allowed[b][opp] = r.allowed[b][opp].Add(a)
}

// Allowed returns the set of kinds permitted next to k in direction d
func (r *Rules) Allowed(k TileKind, d Direction) KindSet {
	if !k.Valid() {
		return r.allowed[DefaultKind][d]
	}
	return r.allowed[k][d]
}

// CanBeAdjacent returns true if neighbor may be placed next to k in
// direction d. Unknown kinds are treated as DefaultKind so boundary lookups
// against unclassified input never fail.
func (r *Rules) CanBeAdjacent(k, neighbor TileKind, d Direction) bool {
	if !neighbor.Valid() {
		neighbor = DefaultKind
	}
	return r.Allowed(k, d).Has(neighbor)
}

// Validate checks the static integrity of the rule set. It fails if any
// kind has an empty allowed set in some direction (which would make the
// solver unable to terminate without contradiction) or if the relation is
// not symmetric. Call once at startup before any generation.
func (r *Rules) Validate() error {
	for k := TileKind(0); k < KindCount; k++ {
		for d := Direction(0); d < DirCount; d++ {
			if r.allowed[k][d] == 0 {
				return fmt.Errorf("terrain rules: %s has no allowed neighbors to the %s", k, d)
			}
		}
	}
	for a := TileKind(0); a < KindCount; a++ {
		for d := Direction(0); d < DirCount; d++ {
			opp := d.Opposite()
			for _, b := range r.allowed[a][d].Kinds() {
				if !r.allowed[b][opp].Has(a) {
					return fmt.Errorf("terrain rules: %s allows %s to the %s but not vice versa", a, b, d)
				}
			}
		}
	}
	return nil
}

// DefaultRules returns the standard overworld adjacency graph.
// Every kind allows itself, so large regions of a single terrain form
// naturally, and transitions step through intermediate kinds (foothills
// buffer mountains, beaches buffer water). Plains is allowed next to every
// kind: since every allowed set contains it, no domain intersection can
// empty, which keeps the solver contradiction-free under any combination
// of boundary constraints.
func DefaultRules() *Rules {
	r := NewRules()

	// Every kind tolerates itself, and plains tolerates everything
	for k := TileKind(0); k < KindCount; k++ {
		r.Allow(k, k)
		r.Allow(Plains, k)
	}

	r.Allow(Forest, Hills)
	r.Allow(Forest, Foothills)
	r.Allow(Forest, Swamp)

	r.Allow(Hills, Foothills)
	r.Allow(Hills, Desert)
	r.Allow(Hills, Mountain)

	r.Allow(Foothills, Mountain)
	r.Allow(Foothills, Desert)

	r.Allow(Desert, Beach)

	r.Allow(Swamp, Water)
	r.Allow(Swamp, Beach)

	r.Allow(Beach, Water)

	return r
}
