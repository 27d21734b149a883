package engine

import (
	"math/rand"
	"reflect"
	"runtime"
	"sort"
	"strings"
	"testing"
)

func TestToggleRespectsOtherSet(t *testing.T) {
	r := ConwayRules()

	if r.Toggle(RuleBirth, 2) {
		t.Error("adding 2 to birth should be rejected while survive holds it")
	}
	if !reflect.DeepEqual(r.Birth(), []int{3}) {
		t.Errorf("birth = %v, expected [3]", r.Birth())
	}

	if !r.Toggle(RuleSurvive, 3) {
		t.Error("removing 3 from survive should succeed")
	}
	if !reflect.DeepEqual(r.Survive(), []int{2}) {
		t.Errorf("survive = %v, expected [2]", r.Survive())
	}

	if !r.Toggle(RuleBirth, 0) {
		t.Error("adding 0 to birth should succeed")
	}
	if !reflect.DeepEqual(r.Birth(), []int{0, 3}) {
		t.Errorf("birth = %v, expected sorted [0 3]", r.Birth())
	}

	if r.Toggle(RuleBirth, 9) || r.Toggle(RuleSurvive, -1) {
		t.Error("out of range values must be ignored")
	}
}

func TestToggleKeepsSetsDisjoint(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	var r RuleSet

	for i := 0; i < 2000; i++ {
		kind := RuleKind(rng.Intn(2))
		r.Toggle(kind, rng.Intn(MaxNeighbors+1))

		if !r.Disjoint() {
			t.Fatalf("step %d: birth %v and survive %v overlap", i, r.Birth(), r.Survive())
		}
		for _, values := range [][]int{r.Birth(), r.Survive()} {
			if !sort.IntsAreSorted(values) {
				t.Fatalf("step %d: values not sorted: %v", i, values)
			}
		}
	}
}

func TestParseRuleSet(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr string
	}{
		{in: "B3/S23", want: "B3/S23"},
		{in: "b12345/s0", want: "B12345/S0"},
		{in: " B/S ", want: "B/S"},
		{in: "B63/S52", want: "B36/S25"},
		{in: "B3/S3", want: "B3/S3"},
		{in: "B23/S23", want: "B23/S23"},
		{in: "B39/S2", wantErr: CodeBadRule},
		{in: "B3", wantErr: CodeBadRule},
		{in: "X3/S2", wantErr: CodeBadRule},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			r, err := ParseRuleSet(tc.in)
			if tc.wantErr != "" {
				if !IsConfigurationError(err, tc.wantErr) {
					t.Fatalf("expected %s, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRuleSet(%q): %v", tc.in, err)
			}
			if r.String() != tc.want {
				t.Errorf("String() = %q, expected %q", r.String(), tc.want)
			}
		})
	}

	if r, _ := ParseRuleSet("B3/S23"); r != ConwayRules() {
		t.Error("B3/S23 should equal ConwayRules()")
	}
}

func TestToggleNeverAddsOverlap(t *testing.T) {
	r := ConwayRules()

	if r.Toggle(RuleBirth, 2) {
		t.Error("adding 2 to birth should be rejected while survive holds it")
	}
	if !r.Toggle(RuleBirth, 3) || r.Born(3) {
		t.Error("removing 3 from birth should succeed")
	}
	if r.Toggle(RuleBirth, 3) {
		t.Error("adding 3 back to birth should be rejected while survive holds it")
	}
	if !r.Disjoint() {
		t.Errorf("rules %s should be disjoint once the overlap is removed", r)
	}
}

func TestParseSeedPatternRejectsOversize(t *testing.T) {
	rows := make([]string, 20000)

	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)
	_, err := ParseSeedPattern(rows)
	runtime.ReadMemStats(&after)

	if !IsConfigurationError(err, CodeBadSeed) {
		t.Fatalf("expected BAD_SEED, got %v", err)
	}
	if grown := after.TotalAlloc - before.TotalAlloc; grown > 1<<20 {
		t.Errorf("rejecting an oversize seed allocated %d bytes", grown)
	}

	square := make([]string, MaxSeedSize)
	for i := range square {
		square[i] = strings.Repeat(".", MaxSeedSize)
	}
	if _, err := ParseSeedPattern(square); err != nil {
		t.Errorf("a %dx%d seed should parse: %v", MaxSeedSize, MaxSeedSize, err)
	}
	if _, err := ParseSeedPattern(append(square, strings.Repeat(".", MaxSeedSize+1))); !IsConfigurationError(err, CodeBadSeed) {
		t.Errorf("a seed over %d rows should be rejected, got %v", MaxSeedSize, err)
	}
}

func TestCountNeighborsBoundaries(t *testing.T) {
	all := make([]Coord, 0, 9)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			all = append(all, C(x, y))
		}
	}
	g := NewCellGrid(3, 3, all...)

	tests := []struct {
		name string
		x, y int
		want int
	}{
		{"corner", 0, 0, 3},
		{"edge", 1, 0, 5},
		{"center", 1, 1, 8},
		{"far corner", 2, 2, 3},
		{"outside diagonal", -1, -1, 1},
		{"far outside", 10, 10, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CountNeighbors(g, tc.x, tc.y); got != tc.want {
				t.Errorf("CountNeighbors(%d,%d) = %d, expected %d", tc.x, tc.y, got, tc.want)
			}
		})
	}
}

func TestSeedStampSkipsWallsAndEdges(t *testing.T) {
	b, err := ParseBoard([]string{
		"#...",
		"....",
		"....",
	})
	if err != nil {
		t.Fatalf("ParseBoard: %v", err)
	}
	p, err := ParseSeedPattern([]string{
		"####",
		"####",
		"####",
		"####",
	})
	if err != nil {
		t.Fatalf("ParseSeedPattern: %v", err)
	}

	// Centered on (1,1): offset (-1,-1), so the pattern covers x,y in -1..2.
	g := p.Stamp(b, C(1, 1))

	if g.Get(C(0, 0)) {
		t.Error("wall at (0,0) must not be seeded")
	}
	if g.Get(C(3, 1)) {
		t.Error("(3,1) is outside the stamped area")
	}
	if got := g.ActiveCount(); got != 8 {
		t.Errorf("expected 8 seeded cells, got %d", got)
	}
}

func TestSeedPatternRoundTrip(t *testing.T) {
	rows := []string{".##.", "#..#", "....", "####"}
	p, err := ParseSeedPattern(rows)
	if err != nil {
		t.Fatalf("ParseSeedPattern: %v", err)
	}
	if !reflect.DeepEqual(p.Rows(), rows) {
		t.Errorf("Rows() = %v, expected %v", p.Rows(), rows)
	}
	if p.ActiveCount() != 8 {
		t.Errorf("ActiveCount() = %d, expected 8", p.ActiveCount())
	}

	clone := p.Clone()
	clone.Toggle(0, 0)
	if p.Get(0, 0) {
		t.Error("Clone must not share storage")
	}

	if _, err := ParseSeedPattern([]string{"##", "#"}); !IsConfigurationError(err, CodeBadSeed) {
		t.Errorf("ragged pattern: expected BAD_SEED, got %v", err)
	}
}

func TestPhaseTransitions(t *testing.T) {
	legal := [][2]Phase{
		{PhaseMenu, PhaseSetup},
		{PhaseSetup, PhaseRunning},
		{PhaseRunning, PhaseWon},
		{PhaseRunning, PhaseLost},
		{PhaseRunning, PhaseSetup},
		{PhaseWon, PhaseSetup},
		{PhaseLost, PhaseMenu},
	}
	for _, tr := range legal {
		if !CanTransition(tr[0], tr[1]) {
			t.Errorf("%v -> %v should be legal", tr[0], tr[1])
		}
	}

	illegal := [][2]Phase{
		{PhaseMenu, PhaseRunning},
		{PhaseSetup, PhaseWon},
		{PhaseMenu, PhaseLost},
		{PhaseRunning, PhaseMenu},
	}
	for _, tr := range illegal {
		if CanTransition(tr[0], tr[1]) {
			t.Errorf("%v -> %v should be illegal", tr[0], tr[1])
		}
	}
}
