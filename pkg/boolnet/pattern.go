package boolnet

import (
	"sort"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Pattern is a subspace defined by fixing some variable handles to 0 or 1,
// represented as a pair of bitsets (§3, §4.2). The teacher hand-rolls
// []uint64 words with a sync.Pool in domain.go; boolnet instead builds on
// github.com/bits-and-blooms/bitset (grounded on Tangerg-lynx/pkg/mime's
// direct use of the same library) so Union/Intersection/IsSuperSet don't
// need reimplementing.
//
// A well-formed Pattern has no conflict: pos and neg never share a bit.
// Some operations (set_ignoring_conflicts, merge_with's intermediate
// union) may produce a pattern with a conflict; callers must clear it
// before the pattern is surfaced, per §3.
type Pattern struct {
	pos *bitset.BitSet
	neg *bitset.BitSet
}

// NewPattern returns the unrestricted pattern (length 0, the full space).
func NewPattern() Pattern {
	return Pattern{pos: bitset.New(0), neg: bitset.New(0)}
}

func (p Pattern) clonePos() *bitset.BitSet {
	if p.pos == nil {
		return bitset.New(0)
	}
	return p.pos.Clone()
}

func (p Pattern) cloneNeg() *bitset.BitSet {
	if p.neg == nil {
		return bitset.New(0)
	}
	return p.neg.Clone()
}

// Len returns |pos| + |neg|, the pattern's length (§3).
func (p Pattern) Len() int {
	return int(p.posSet().Count() + p.negSet().Count())
}

func (p Pattern) posSet() *bitset.BitSet {
	if p.pos == nil {
		return bitset.New(0)
	}
	return p.pos
}

func (p Pattern) negSet() *bitset.BitSet {
	if p.neg == nil {
		return bitset.New(0)
	}
	return p.neg
}

// IsUnrestricted reports whether the pattern has length 0 (the full space).
func (p Pattern) IsUnrestricted() bool {
	return p.posSet().None() && p.negSet().None()
}

// Get reports the fixed value of h, if any: v is the fixed value and ok is
// true only if h is fixed in exactly one direction.
func (p Pattern) Get(h Handle) (v bool, ok bool) {
	inPos := p.posSet().Test(uint(h))
	inNeg := p.negSet().Test(uint(h))
	if inPos && !inNeg {
		return true, true
	}
	if inNeg && !inPos {
		return false, true
	}
	return false, false
}

// HasConflict reports whether h is set in both pos and neg.
func (p Pattern) HasConflict(h Handle) bool {
	return p.posSet().Test(uint(h)) && p.negSet().Test(uint(h))
}

// With returns a new pattern with h fixed to v, leaving p unmodified.
func (p Pattern) With(h Handle, v bool) Pattern {
	q := Pattern{pos: p.clonePos(), neg: p.cloneNeg()}
	q.set(h, v)
	return q
}

// set fixes h to v in place, clearing the opposite bit first so the
// pattern stays conflict-free (unlike setIgnoringConflicts).
func (p *Pattern) set(h Handle, v bool) {
	if v {
		p.pos.Set(uint(h))
		p.neg.Clear(uint(h))
	} else {
		p.neg.Set(uint(h))
		p.pos.Clear(uint(h))
	}
}

// Set fixes h to v in place on this pattern value's underlying bitsets.
// Exported for callers building up a pattern imperatively (e.g. Model
// modifiers); most algorithms here use the immutable With instead.
func (p *Pattern) Set(h Handle, v bool) { p.set(h, v) }

// setIgnoringConflicts sets h to v without clearing the opposite bit
// first. This is the only entry point that may introduce a conflict; it
// is used solely by literal collection (GetLiterals).
func (p *Pattern) setIgnoringConflicts(h Handle, v bool) {
	if p.pos == nil {
		p.pos = bitset.New(0)
	}
	if p.neg == nil {
		p.neg = bitset.New(0)
	}
	if v {
		p.pos.Set(uint(h))
	} else {
		p.neg.Set(uint(h))
	}
}

// Release returns a new pattern with h unfixed in both directions.
func (p Pattern) Release(h Handle) Pattern {
	q := Pattern{pos: p.clonePos(), neg: p.cloneNeg()}
	q.pos.Clear(uint(h))
	q.neg.Clear(uint(h))
	return q
}

// Contains reports self.pos ⊆ other.pos ∧ self.neg ⊆ other.neg: self's
// subspace is a superset of other's (§4.2). Geometric inclusion only
// holds for conflict-free patterns.
func (p Pattern) Contains(other Pattern) bool {
	return isSubset(p.posSet(), other.posSet()) && isSubset(p.negSet(), other.negSet())
}

// isSubset reports whether every bit set in a is also set in b.
func isSubset(a, b *bitset.BitSet) bool {
	return b.IsSuperSet(a)
}

// Equal reports whether the two patterns fix exactly the same bits.
func (p Pattern) Equal(other Pattern) bool {
	return p.posSet().Equal(other.posSet()) && p.negSet().Equal(other.negSet())
}

// Conflicts returns the pattern holding only the bits where p and other
// disagree: p.pos ∩ other.neg, unioned with p.neg ∩ other.pos (§4.2).
func (p Pattern) Conflicts(other Pattern) Pattern {
	a := p.posSet().Clone()
	a.InPlaceIntersection(other.negSet())
	b := p.negSet().Clone()
	b.InPlaceIntersection(other.posSet())
	// The conflict pattern records which variable conflicts, not the
	// direction; mirror it into pos so Len()/iteration see it once.
	a.InPlaceUnion(b)
	return Pattern{pos: a, neg: bitset.New(0)}
}

// MergeWith is defined only when |Conflicts(other)| = 1: it unions both
// sides then releases the single conflicting variable from both (§4.2).
// Calling it when the conflict count differs from 1 is a programmer
// error (§7 "internal invariant violations ... are fatal").
func (p Pattern) MergeWith(other Pattern) Pattern {
	conflict := p.Conflicts(other)
	if conflict.posSet().Count() != 1 {
		panic("boolnet: MergeWith requires exactly one conflicting variable")
	}
	pos := p.posSet().Clone()
	pos.InPlaceUnion(other.posSet())
	neg := p.negSet().Clone()
	neg.InPlaceUnion(other.negSet())
	h, _ := conflict.posSet().NextSet(0)
	pos.Clear(h)
	neg.Clear(h)
	return Pattern{pos: pos, neg: neg}
}

// Relation is the nine-way outcome of Pattern.Relate (§4.2).
type Relation int

const (
	RelIdentical Relation = iota
	RelContains
	RelContained
	RelOverlap
	RelJoinBoth
	RelJoinFirst
	RelJoinSecond
	RelJoinOverlap
	RelDisjoint
)

func (r Relation) String() string {
	switch r {
	case RelIdentical:
		return "Identical"
	case RelContains:
		return "Contains"
	case RelContained:
		return "Contained"
	case RelOverlap:
		return "Overlap"
	case RelJoinBoth:
		return "JoinBoth"
	case RelJoinFirst:
		return "JoinFirst"
	case RelJoinSecond:
		return "JoinSecond"
	case RelJoinOverlap:
		return "JoinOverlap"
	case RelDisjoint:
		return "Disjoint"
	}
	return "?"
}

// Relate classifies the relationship between p and other: total over any
// two patterns, computed purely from the conflict count (§4.2, §8).
func (p Pattern) Relate(other Pattern) (Relation, Pattern) {
	conflict := p.Conflicts(other)
	switch conflict.posSet().Count() {
	case 0:
		switch {
		case p.Equal(other):
			return RelIdentical, p
		case p.Contains(other):
			return RelContains, p
		case other.Contains(p):
			return RelContained, p
		default:
			return RelOverlap, Pattern{}
		}
	case 1:
		m := p.MergeWith(other)
		containsSelf := m.Contains(p)
		containsOther := m.Contains(other)
		switch {
		case containsSelf && containsOther:
			return RelJoinBoth, m
		case containsSelf:
			return RelJoinFirst, m
		case containsOther:
			return RelJoinSecond, m
		default:
			return RelJoinOverlap, m
		}
	default:
		return RelDisjoint, Pattern{}
	}
}

// String renders the pattern over handles [0,n), one character per
// handle: '1' fixed true, '0' fixed false, '-' unrestricted, 'X' a
// conflict. This mirrors the `1-0-1--10-` literal notation used in §8's
// worked examples.
func (p Pattern) String(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		inPos := p.posSet().Test(uint(i))
		inNeg := p.negSet().Test(uint(i))
		switch {
		case inPos && inNeg:
			b.WriteByte('X')
		case inPos:
			b.WriteByte('1')
		case inNeg:
			b.WriteByte('0')
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}

// FixedHandles returns every handle fixed in either direction, in
// ascending order. Exported for callers outside the package that need to
// lower a pattern into another representation (e.g. solver clause text).
func (p Pattern) FixedHandles() []int { return p.handles() }

// handles returns every handle fixed in either direction, in ascending
// order, for display and clause-emission purposes.
func (p Pattern) handles() []int {
	seen := map[int]struct{}{}
	for i, ok := p.posSet().NextSet(0); ok; i, ok = p.posSet().NextSet(i + 1) {
		seen[int(i)] = struct{}{}
	}
	for i, ok := p.negSet().NextSet(0); ok; i, ok = p.negSet().NextSet(i + 1) {
		seen[int(i)] = struct{}{}
	}
	out := make([]int, 0, len(seen))
	for h := range seen {
		out = append(out, h)
	}
	sort.Ints(out)
	return out
}
