package boolnet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func namedRegistry(names ...string) *Registry {
	r := NewRegistry()
	for _, n := range names {
		_, _ = r.Ensure(n)
	}
	return r
}

func TestExpression_Format(t *testing.T) {
	r := namedRegistry("A", "B", "C")
	a, _ := r.Handle("A")
	b, _ := r.Handle("B")
	c, _ := r.Handle("C")

	e := Or(And(Atom(a), Atom(b)), Atom(c))
	assert.Equal(t, "A & B | C", e.Format(r))

	e2 := And(Or(Atom(a), Atom(b)), Atom(c))
	assert.Equal(t, "(A | B) & C", e2.Format(r))
}

func TestExpression_FormatNandNor(t *testing.T) {
	r := namedRegistry("A", "B")
	a, _ := r.Handle("A")
	b, _ := r.Handle("B")

	nand := Not(And(Atom(a), Atom(b)))
	assert.Equal(t, "!(A & B)", nand.Format(r))

	nor := Not(Or(Atom(a), Atom(b)))
	assert.Equal(t, "!(A | B)", nor.Format(r))
}

func TestNot_PreservesFlatAtoms(t *testing.T) {
	r := namedRegistry("A")
	a, _ := r.Handle("A")

	na := Not(Atom(a))
	assert.Equal(t, KindNAtom, na.Kind())
	assert.Equal(t, "!A", na.Format(r))

	nna := Not(na)
	assert.Equal(t, KindAtom, nna.Kind())
	assert.True(t, nna.Equal(Atom(a)))
}

func TestAndOr_Collapse(t *testing.T) {
	r := namedRegistry("A")
	a, _ := r.Handle("A")

	assert.True(t, And(Atom(a)).Equal(Atom(a)))
	assert.True(t, And().Equal(True))
	assert.True(t, Or().Equal(False))
}

func TestSimplify_RemovesIdentityAndAbsorbing(t *testing.T) {
	r := namedRegistry("A", "B")
	a, _ := r.Handle("A")
	b, _ := r.Handle("B")

	e := And(True, Atom(a), Or(False, Atom(b)))
	simplified, changed := Simplify(e)
	assert.True(t, changed)
	assert.Equal(t, "A & B", simplified.Format(r))

	e2 := Or(Atom(a), True)
	simplified2, changed2 := Simplify(e2)
	assert.True(t, changed2)
	assert.True(t, simplified2.Equal(True))
}

func TestSimplify_PushesPendingNegation(t *testing.T) {
	r := namedRegistry("A", "B")
	a, _ := r.Handle("A")
	b, _ := r.Handle("B")

	e := Not(And(Atom(a), Atom(b)))
	simplified, changed := Simplify(e)
	assert.False(t, changed) // already in its simplest NAND form
	assert.Equal(t, "!(A & B)", simplified.Format(r))
}

func TestNNF_FlattensNegations(t *testing.T) {
	r := namedRegistry("A", "B")
	a, _ := r.Handle("A")
	b, _ := r.Handle("B")

	e := Not(And(Atom(a), Not(Atom(b))))
	nnf := NNF(e)
	assert.Equal(t, "!A | B", nnf.Format(r))
}

func TestGetLiterals_PropagatesPolarityAcrossNand(t *testing.T) {
	r := namedRegistry("A", "B")
	a, _ := r.Handle("A")
	b, _ := r.Handle("B")

	e := Not(And(Atom(a), Not(Atom(b))))
	lits := GetLiterals(e)

	va, ok := lits.Get(a)
	assert.True(t, ok)
	assert.False(t, va)

	vb, ok := lits.Get(b)
	assert.True(t, ok)
	assert.True(t, vb)
}
