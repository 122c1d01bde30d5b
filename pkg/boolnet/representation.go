package boolnet

// ReprKind tags which of the three representations described in §9's
// "polymorphism over representations" note a Representation value holds.
type ReprKind int

const (
	ReprExpr ReprKind = iota
	ReprPrimes
	ReprGen
)

func (k ReprKind) String() string {
	switch k {
	case ReprExpr:
		return "Expr"
	case ReprPrimes:
		return "Primes"
	case ReprGen:
		return "Gen"
	default:
		return "?"
	}
}

// Representation is the common capability set §9 asks for across the
// tree, antichain, and generator encodings of a Boolean function: eval
// against a state and convert to another representation on demand.
// ExprRepresentation and PrimesRepresentation implement it fully;
// genRepresentation stands in for original_source/src/func/gen.rs,
// which lomak itself never wires to a production caller.
type Representation interface {
	Kind() ReprKind
	Eval(state Pattern) bool
	ConvertTo(kind ReprKind) Representation
}

// ExprRepresentation is a Boolean function held as an Expression tree.
type ExprRepresentation struct {
	Expr Expression
}

func (r ExprRepresentation) Kind() ReprKind { return ReprExpr }

// Eval walks the tree directly against state, treating an unset handle
// (Pattern.Get's ok=false) as false, matching Implicants.Eval's convention
// for the Primes representation so the two agree on every fully-specified
// state.
func (r ExprRepresentation) Eval(state Pattern) bool {
	return evalExpr(r.Expr, state)
}

func (r ExprRepresentation) ConvertTo(kind ReprKind) Representation {
	switch kind {
	case ReprExpr:
		return r
	case ReprPrimes:
		return PrimesRepresentation{Primes: PrimeImplicants(r.Expr)}
	case ReprGen:
		return genRepresentation{}
	default:
		panic("boolnet: unknown representation kind")
	}
}

func evalExpr(e Expression, state Pattern) bool {
	switch v := e.(type) {
	case *constExpr:
		return v.val
	case *atomExpr:
		val, ok := state.Get(v.h)
		if !ok {
			val = false
		}
		if v.neg {
			return !val
		}
		return val
	case *operExpr:
		switch v.op {
		case AND:
			for _, c := range v.children {
				if !evalExpr(c, state) {
					return false
				}
			}
			return true
		case NAND:
			for _, c := range v.children {
				if !evalExpr(c, state) {
					return true
				}
			}
			return false
		case OR:
			for _, c := range v.children {
				if evalExpr(c, state) {
					return true
				}
			}
			return false
		case NOR:
			for _, c := range v.children {
				if evalExpr(c, state) {
					return false
				}
			}
			return true
		}
	}
	panic("boolnet: unreachable expression variant")
}

// PrimesRepresentation is a Boolean function held as its prime-implicant
// antichain.
type PrimesRepresentation struct {
	Primes Implicants
}

func (r PrimesRepresentation) Kind() ReprKind { return ReprPrimes }

func (r PrimesRepresentation) Eval(state Pattern) bool { return r.Primes.Eval(state) }

func (r PrimesRepresentation) ConvertTo(kind ReprKind) Representation {
	switch kind {
	case ReprPrimes:
		return r
	case ReprExpr:
		return ExprRepresentation{Expr: primesToExpr(r.Primes)}
	case ReprGen:
		return genRepresentation{}
	default:
		panic("boolnet: unknown representation kind")
	}
}

// primesToExpr rebuilds a disjunction-of-conjunctions Expression from an
// implicant antichain, the inverse direction of PrimeImplicants.
func primesToExpr(im Implicants) Expression {
	patterns := im.Patterns()
	if len(patterns) == 0 {
		return False
	}
	terms := make([]Expression, 0, len(patterns))
	for _, p := range patterns {
		lits := make([]Expression, 0, len(p.FixedHandles()))
		for _, h := range p.FixedHandles() {
			v, ok := p.Get(Handle(h))
			if !ok {
				continue
			}
			if v {
				lits = append(lits, Atom(Handle(h)))
			} else {
				lits = append(lits, Not(Atom(Handle(h))))
			}
		}
		terms = append(terms, And(lits...))
	}
	return Or(terms...)
}

// genRepresentation stands in for the monomial/BDD-free generator of
// original_source/src/func/gen.rs. lomak never calls it from a production
// code path either, so no algorithm is guessed at here.
type genRepresentation struct{}

func (genRepresentation) Kind() ReprKind { return ReprGen }

func (genRepresentation) Eval(Pattern) bool {
	panic("boolnet: Gen representation not implemented — no production caller in lomak either")
}

func (genRepresentation) ConvertTo(ReprKind) Representation {
	panic("boolnet: Gen representation not implemented — no production caller in lomak either")
}
