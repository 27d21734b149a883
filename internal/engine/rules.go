package engine

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// MaxNeighbors is the largest possible Moore neighbor count.
const MaxNeighbors = 8

// RuleKind selects one of the two sets of a RuleSet.
type RuleKind uint8

const (
	RuleBirth RuleKind = iota
	RuleSurvive
)

// String returns "birth" or "survive".
func (k RuleKind) String() string {
	if k == RuleSurvive {
		return "survive"
	}
	return "birth"
}

// Other returns the opposite rule kind.
func (k RuleKind) Other() RuleKind {
	if k == RuleSurvive {
		return RuleBirth
	}
	return RuleSurvive
}

// RuleSet is a Life-like birth/survive rule. The sets may overlap, as in
// B3/S23; Toggle refuses additions that would create a new overlap.
type RuleSet struct {
	birth   [MaxNeighbors + 1]bool
	survive [MaxNeighbors + 1]bool
}

// ConwayRules returns the classic B3/S23 rule.
func ConwayRules() RuleSet {
	var r RuleSet
	r.birth[3] = true
	r.survive[2] = true
	r.survive[3] = true
	return r
}

// NewRuleSet builds a rule set from explicit values. Values may appear in
// both sets.
func NewRuleSet(birth, survive []int) (RuleSet, error) {
	var r RuleSet
	for _, v := range birth {
		if v < 0 || v > MaxNeighbors {
			return RuleSet{}, configErr(CodeBadRule, "birth value %d out of range 0..%d", v, MaxNeighbors)
		}
		r.birth[v] = true
	}
	for _, v := range survive {
		if v < 0 || v > MaxNeighbors {
			return RuleSet{}, configErr(CodeBadRule, "survive value %d out of range 0..%d", v, MaxNeighbors)
		}
		r.survive[v] = true
	}
	return r, nil
}

// Toggle flips value in the set of the given kind. A value present is
// removed; an absent value is added unless the other set holds it, in which
// case nothing changes. Returns whether the set changed.
func (r *RuleSet) Toggle(kind RuleKind, value int) bool {
	if value < 0 || value > MaxNeighbors {
		return false
	}
	set, other := &r.birth, &r.survive
	if kind == RuleSurvive {
		set, other = &r.survive, &r.birth
	}
	if set[value] {
		set[value] = false
		return true
	}
	if other[value] {
		return false
	}
	set[value] = true
	return true
}

// Has reports whether value is in the set of the given kind.
func (r RuleSet) Has(kind RuleKind, value int) bool {
	if value < 0 || value > MaxNeighbors {
		return false
	}
	if kind == RuleSurvive {
		return r.survive[value]
	}
	return r.birth[value]
}

// Born reports whether a dead cell with n neighbors comes alive.
func (r RuleSet) Born(n int) bool { return r.Has(RuleBirth, n) }

// Survives reports whether a live cell with n neighbors stays alive.
func (r RuleSet) Survives(n int) bool { return r.Has(RuleSurvive, n) }

// Birth returns the birth values in ascending order.
func (r RuleSet) Birth() []int { return setValues(r.birth) }

// Survive returns the survive values in ascending order.
func (r RuleSet) Survive() []int { return setValues(r.survive) }

// Values returns the values of the given kind in ascending order.
func (r RuleSet) Values(kind RuleKind) []int {
	if kind == RuleSurvive {
		return r.Survive()
	}
	return r.Birth()
}

// Disjoint reports whether birth and survive share no value.
func (r RuleSet) Disjoint() bool {
	for v := 0; v <= MaxNeighbors; v++ {
		if r.birth[v] && r.survive[v] {
			return false
		}
	}
	return true
}

func setValues(set [MaxNeighbors + 1]bool) []int {
	values := make([]int, 0, len(set))
	for v, ok := range set {
		if ok {
			values = append(values, v)
		}
	}
	return values
}

// String returns the rule in B/S notation, e.g. "B3/S23".
func (r RuleSet) String() string {
	var sb strings.Builder
	sb.WriteByte('B')
	for _, v := range r.Birth() {
		sb.WriteString(strconv.Itoa(v))
	}
	sb.WriteString("/S")
	for _, v := range r.Survive() {
		sb.WriteString(strconv.Itoa(v))
	}
	return sb.String()
}

// ParseRuleSet parses B/S notation ("B3/S23", "b12345/s0", "B/S").
func ParseRuleSet(s string) (RuleSet, error) {
	parts := strings.Split(strings.ToUpper(strings.TrimSpace(s)), "/")
	if len(parts) != 2 {
		return RuleSet{}, configErr(CodeBadRule, "rule %q is not in B/S notation", s)
	}
	var birth, survive []int
	for _, part := range parts {
		if part == "" {
			return RuleSet{}, configErr(CodeBadRule, "rule %q has an empty section", s)
		}
		values, err := parseDigits(part[1:])
		if err != nil {
			return RuleSet{}, configErr(CodeBadRule, "rule %q: %v", s, err)
		}
		switch part[0] {
		case 'B':
			birth = values
		case 'S':
			survive = values
		default:
			return RuleSet{}, configErr(CodeBadRule, "rule %q: unknown section %q", s, part[0])
		}
	}
	return NewRuleSet(birth, survive)
}

func parseDigits(s string) ([]int, error) {
	values := make([]int, 0, len(s))
	for _, r := range s {
		if r < '0' || r > '0'+MaxNeighbors {
			return nil, fmt.Errorf("invalid neighbor count %q", r)
		}
		values = append(values, int(r-'0'))
	}
	sort.Ints(values)
	return values, nil
}
