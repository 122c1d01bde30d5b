package boolnet

// PrimeImplicants computes the prime implicants of e: the minimal
// antichain of patterns such that every state in any of them satisfies e
// (§4.4). The recursion below is ported from
// original_source/src/func/expr2primes.rs, the direct ancestor of §4.4.
func PrimeImplicants(e Expression) Implicants {
	paths := NewImplicants()
	primeImplicantsRec(e, &paths, false)
	return paths
}

// PrimeImplicantsNegated computes the prime implicants of Not(e) without
// materializing the negated tree, by walking the original expression with
// the polarity flag flipped (§4.4).
func PrimeImplicantsNegated(e Expression) Implicants {
	paths := NewImplicants()
	primeImplicantsRec(e, &paths, true)
	return paths
}

// primeImplicantsRec dispatches to the positive or negative walk
// depending on neg, dissolving paths down to the minimal antichain as it
// descends (§4.4).
func primeImplicantsRec(e Expression, paths *Implicants, neg bool) {
	if neg {
		primeImplicantsNeg(e, paths)
	} else {
		primeImplicantsPure(e, paths)
	}
}

func primeImplicantsPure(e Expression, paths *Implicants) {
	if paths.IsFalse() {
		return
	}
	switch v := e.(type) {
	case *constExpr:
		if v.val {
			// TRUE: leave implicants unchanged.
		} else {
			*paths = ClearImplicants()
		}
	case *atomExpr:
		if !v.neg {
			*paths = paths.ExtendLiteral(v.h, true)
		} else {
			*paths = paths.ExtendLiteral(v.h, false)
		}
	case *operExpr:
		switch v.op {
		case OR:
			piOr(v.children, paths, false)
		case NOR:
			piAnd(v.children, paths, true)
		case AND:
			piAnd(v.children, paths, false)
		case NAND:
			piOr(v.children, paths, true)
		}
	}
}

func primeImplicantsNeg(e Expression, paths *Implicants) {
	if paths.IsFalse() {
		return
	}
	switch v := e.(type) {
	case *constExpr:
		if v.val {
			*paths = ClearImplicants()
		} else {
			// FALSE negated is TRUE: leave implicants unchanged.
		}
	case *atomExpr:
		if !v.neg {
			*paths = paths.ExtendLiteral(v.h, false)
		} else {
			*paths = paths.ExtendLiteral(v.h, true)
		}
	case *operExpr:
		switch v.op {
		case OR:
			piAnd(v.children, paths, true)
		case NOR:
			piOr(v.children, paths, false)
		case AND:
			piOr(v.children, paths, true)
		case NAND:
			piAnd(v.children, paths, false)
		}
	}
}

// piAnd folds extend/recursion conjunctively across children, in order
// (the OPER(AND, ...) dispatch of §4.4).
func piAnd(children []Expression, paths *Implicants, neg bool) {
	for _, c := range children {
		primeImplicantsRec(c, paths, neg)
	}
}

// piOr implements the three-step OR dispatch of §4.4: clone the input as
// source, recurse the first child into paths, then for each remaining
// child subtract what's already covered before recursing and merging.
func piOr(children []Expression, paths *Implicants, neg bool) {
	n := len(children)
	if n < 1 {
		primeImplicantsRec(False, paths, neg)
		return
	}
	if n == 1 {
		primeImplicantsRec(children[0], paths, neg)
		return
	}

	source := *paths
	primeImplicantsRec(children[0], paths, neg)
	for i := 1; i < n; i++ {
		source = source.Subtract(*paths)
		next := source
		primeImplicantsRec(children[i], &next, neg)
		*paths = paths.MergeRaw(next)
	}
}
