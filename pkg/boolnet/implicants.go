package boolnet

import "github.com/samber/lo"

// Implicants is an ordered antichain of well-formed patterns, interpreted
// as their disjunction (§3, §4.3). No pattern in the list contains
// another; an empty list denotes FALSE, and the singleton unrestricted
// pattern denotes TRUE.
//
// Ported from original_source/src/func/implicant.rs's add_candidate /
// merge_raw, which is itself the direct ancestor of §4.3; the teacher
// package has no analogue (it never needs a minimal disjoint-pattern
// antichain), so this file is grounded purely on the ported Rust source
// plus spec.md's restatement of its algorithm.
type Implicants struct {
	patterns []Pattern
}

// NewImplicants returns the antichain representing TRUE: [⊤].
func NewImplicants() Implicants {
	return Implicants{patterns: []Pattern{NewPattern()}}
}

// ClearImplicants returns the antichain representing FALSE: [].
func ClearImplicants() Implicants {
	return Implicants{}
}

// Patterns returns the underlying antichain, in list order. Callers must
// not mutate the returned patterns.
func (im Implicants) Patterns() []Pattern {
	return im.patterns
}

// Len returns the number of patterns in the antichain.
func (im Implicants) Len() int { return len(im.patterns) }

// IsFalse reports whether the antichain is empty (denotes FALSE).
func (im Implicants) IsFalse() bool { return len(im.patterns) == 0 }

// covers reports whether some pattern already in the antichain contains p.
func (im Implicants) covers(p Pattern) bool {
	return lo.SomeBy(im.patterns, func(c Pattern) bool { return c.Contains(p) })
}

// CoversPattern reports whether some implicant contains q: every state of
// q then satisfies the represented function (§4.3).
func (im Implicants) CoversPattern(q Pattern) bool { return im.covers(q) }

// EvalInPattern reports whether some implicant overlaps q: at least one
// state of q satisfies the represented function (§4.3).
func (im Implicants) EvalInPattern(q Pattern) bool {
	return lo.SomeBy(im.patterns, func(p Pattern) bool {
		return p.Conflicts(q).IsUnrestricted()
	})
}

// Eval reports whether state satisfies the represented function: some
// implicant p has state ⊇ p.pos and state ∩ p.neg = ∅ (§4.3). state's
// positive bitset is read as "the set of variables true in this state";
// state's negative bitset is ignored.
func (im Implicants) Eval(state Pattern) bool {
	return lo.SomeBy(im.patterns, func(p Pattern) bool {
		if !isSubset(p.posSet(), state.posSet()) {
			return false
		}
		conflict := p.negSet().Clone()
		conflict.InPlaceIntersection(state.posSet())
		return conflict.None()
	})
}

// AddCandidate folds pattern c into the antichain, preserving the
// no-pattern-contains-another invariant (§4.3). It is idempotent: adding
// the same pattern twice is a no-op the second time.
func (im Implicants) AddCandidate(c Pattern) Implicants {
	var subsumed []bool
	if len(im.patterns) > 0 {
		subsumed = make([]bool, len(im.patterns))
	}
	var queued []Pattern

	for i, p := range im.patterns {
		rel, m := p.Relate(c)
		switch rel {
		case RelDisjoint, RelOverlap:
			// no action
		case RelContains, RelIdentical:
			return im
		case RelContained:
			subsumed[i] = true
		case RelJoinBoth, RelJoinSecond:
			return im.AddCandidate(m)
		case RelJoinFirst:
			subsumed[i] = true
			queued = append(queued, m)
		case RelJoinOverlap:
			queued = append(queued, m)
		}
	}

	next := make([]Pattern, 0, len(im.patterns)+1)
	for i, p := range im.patterns {
		if !subsumed[i] {
			next = append(next, p)
		}
	}
	next = append(next, c)
	result := Implicants{patterns: next}

	for _, q := range queued {
		result = result.AddCandidate(q)
	}
	return result
}

// MergeRaw merges other into im by symmetric pairwise scan: subsumed
// patterns on both sides are dropped, one-conflict joins are folded back
// in as fresh candidates, and the process recurses until no candidate
// remains (§4.3). Termination: a one-conflict join strictly shortens the
// combined pattern list's total literal count, since it removes one
// fixed variable from both operands.
func (im Implicants) MergeRaw(other Implicants) Implicants {
	sSubsumed := make([]bool, len(im.patterns))
	nSubsumed := make([]bool, len(other.patterns))
	candidates := ClearImplicants()

outer:
	for i, b := range im.patterns {
		for j, t := range other.patterns {
			if nSubsumed[j] {
				continue
			}
			rel, m := b.Relate(t)
			switch rel {
			case RelDisjoint, RelOverlap:
				// no action
			case RelContains, RelIdentical:
				nSubsumed[j] = true
			case RelContained:
				sSubsumed[i] = true
				continue outer
			case RelJoinBoth:
				candidates = candidates.AddCandidate(m)
				sSubsumed[i] = true
				nSubsumed[j] = true
				continue outer
			case RelJoinFirst:
				sSubsumed[i] = true
				if !other.covers(m) {
					candidates = candidates.AddCandidate(m)
				}
				continue outer
			case RelJoinSecond:
				nSubsumed[j] = true
				if !im.covers(m) {
					candidates = candidates.AddCandidate(m)
				}
			case RelJoinOverlap:
				if !im.covers(m) && !other.covers(m) {
					candidates = candidates.AddCandidate(m)
				}
			}
		}
	}

	next := make([]Pattern, 0, len(im.patterns)+len(other.patterns))
	for i, p := range im.patterns {
		if !sSubsumed[i] {
			next = append(next, p)
		}
	}
	for j, p := range other.patterns {
		if !nSubsumed[j] {
			next = append(next, p)
		}
	}
	result := Implicants{patterns: next}

	if !candidates.IsFalse() {
		result = result.MergeRaw(candidates)
	}
	return result
}

// Subtract returns the patterns of im not contained in any pattern of
// other (§4.3).
func (im Implicants) Subtract(other Implicants) Implicants {
	kept := lo.Reject(im.patterns, func(p Pattern, _ int) bool {
		return other.covers(p)
	})
	return Implicants{patterns: kept}
}

// ExtendLiteral classifies every pattern by whether h is already fixed:
// conflicting patterns are dropped, trivially-satisfied patterns go to
// `trivial`, others are extended with h fixed to v. The result is
// trivial ∪ {e ∈ extended | no t ∈ trivial contains e} (§4.3).
func (im Implicants) ExtendLiteral(h Handle, v bool) Implicants {
	trivial := make([]Pattern, 0, len(im.patterns))
	extended := make([]Pattern, 0, len(im.patterns))

	for _, p := range im.patterns {
		cSide, tSide := p.negSet(), p.posSet()
		if !v {
			cSide, tSide = p.posSet(), p.negSet()
		}
		if cSide.Test(uint(h)) {
			continue // the extension contradicts an existing fixed bit
		}
		if tSide.Test(uint(h)) {
			trivial = append(trivial, p)
			continue
		}
		extended = append(extended, p.With(h, v))
	}

	selected := make([]Pattern, len(trivial))
	copy(selected, trivial)
	for _, e := range extended {
		if lo.SomeBy(trivial, func(t Pattern) bool { return t.Contains(e) }) {
			continue
		}
		selected = append(selected, e)
	}
	return Implicants{patterns: selected}
}
