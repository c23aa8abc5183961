package terrain

import "testing"

func TestTileKindString(t *testing.T) {
	tests := []struct {
		kind TileKind
		want string
	}{
		{Plains, "plains"},
		{Forest, "forest"},
		{Hills, "hills"},
		{Mountain, "mountain"},
		{Foothills, "foothills"},
		{Desert, "desert"},
		{Swamp, "swamp"},
		{Beach, "beach"},
		{Water, "water"},
		{TileKind(99), "unknown"},
	}

	for _, tc := range tests {
		if got := tc.kind.String(); got != tc.want {
			t.Errorf("TileKind(%d).String() = %q, want %q", tc.kind, got, tc.want)
		}
	}
}

func TestParseKindRoundTrip(t *testing.T) {
	for _, k := range AllKinds() {
		parsed, ok := ParseKind(k.String())
		if !ok {
			t.Errorf("ParseKind(%q) not recognized", k.String())
		}
		if parsed != k {
			t.Errorf("ParseKind(%q) = %v, want %v", k.String(), parsed, k)
		}
	}
}

func TestParseKindUnknownFallsBack(t *testing.T) {
	kind, ok := ParseKind("lava")
	if ok {
		t.Error("ParseKind should not recognize an unknown name")
	}
	if kind != DefaultKind {
		t.Errorf("ParseKind fallback = %v, want %v", kind, DefaultKind)
	}
}

func TestPassability(t *testing.T) {
	if Mountain.Passable() {
		t.Error("mountain should not be passable")
	}
	if Water.Passable() {
		t.Error("water should not be passable")
	}
	for _, k := range []TileKind{Plains, Forest, Hills, Foothills, Desert, Swamp, Beach} {
		if !k.Passable() {
			t.Errorf("%s should be passable", k)
		}
	}
}

func TestWeightsArePositive(t *testing.T) {
	for _, k := range AllKinds() {
		if k.Weight() <= 0 {
			t.Errorf("%s has non-positive weight %d", k, k.Weight())
		}
	}
}

func TestSymbolsAreUnique(t *testing.T) {
	seen := make(map[rune]TileKind)
	for _, k := range AllKinds() {
		sym := k.Symbol()
		if other, dup := seen[sym]; dup {
			t.Errorf("%s and %s share symbol %q", k, other, sym)
		}
		seen[sym] = k
	}
}

func TestDirectionOpposite(t *testing.T) {
	tests := []struct {
		dir, want Direction
	}{
		{North, South},
		{South, North},
		{East, West},
		{West, East},
	}

	for _, tc := range tests {
		if got := tc.dir.Opposite(); got != tc.want {
			t.Errorf("%s.Opposite() = %s, want %s", tc.dir, got, tc.want)
		}
	}
}

func TestDirectionOffset(t *testing.T) {
	tests := []struct {
		dir          Direction
		wantX, wantY int
	}{
		{North, 0, -1},
		{South, 0, 1},
		{East, 1, 0},
		{West, -1, 0},
	}

	for _, tc := range tests {
		dx, dy := tc.dir.Offset()
		if dx != tc.wantX || dy != tc.wantY {
			t.Errorf("%s.Offset() = (%d, %d), want (%d, %d)", tc.dir, dx, dy, tc.wantX, tc.wantY)
		}
	}
}

func TestKindSet(t *testing.T) {
	var s KindSet
	if s.Count() != 0 {
		t.Errorf("empty set Count() = %d, want 0", s.Count())
	}

	s = s.Add(Forest).Add(Water)
	if !s.Has(Forest) || !s.Has(Water) {
		t.Error("set should contain forest and water")
	}
	if s.Has(Plains) {
		t.Error("set should not contain plains")
	}
	if s.Count() != 2 {
		t.Errorf("Count() = %d, want 2", s.Count())
	}

	kinds := s.Kinds()
	if len(kinds) != 2 || kinds[0] != Forest || kinds[1] != Water {
		t.Errorf("Kinds() = %v, want [forest water]", kinds)
	}

	other := KindSet(0).Add(Water).Add(Beach)
	inter := s.Intersect(other)
	if inter.Count() != 1 || !inter.Has(Water) {
		t.Errorf("Intersect() = %v, want {water}", inter.Kinds())
	}
}

func TestAllKindsSetCoversCatalog(t *testing.T) {
	s := AllKindsSet()
	if s.Count() != int(KindCount) {
		t.Errorf("AllKindsSet().Count() = %d, want %d", s.Count(), KindCount)
	}
	for _, k := range AllKinds() {
		if !s.Has(k) {
			t.Errorf("AllKindsSet() missing %s", k)
		}
	}
}
