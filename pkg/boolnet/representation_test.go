package boolnet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepresentation_ExprAndPrimesAgree(t *testing.T) {
	a := Handle(0)
	b := Handle(1)
	e := Or(And(Atom(a), Atom(b)), Atom(a))

	expr := ExprRepresentation{Expr: e}
	primes := expr.ConvertTo(ReprPrimes).(PrimesRepresentation)

	for _, s := range []struct {
		av, bv bool
	}{
		{true, true}, {true, false}, {false, true}, {false, false},
	} {
		p := NewPattern()
		p.Set(a, s.av)
		p.Set(b, s.bv)
		assert.Equal(t, expr.Eval(p), primes.Eval(p), "state a=%v b=%v", s.av, s.bv)
	}
}

func TestRepresentation_PrimesRoundTripsThroughExpr(t *testing.T) {
	a := Handle(0)
	b := Handle(1)
	e := Or(And(Atom(a), Atom(b)), Atom(a))

	primes := PrimesRepresentation{Primes: PrimeImplicants(e)}
	back := primes.ConvertTo(ReprExpr).(ExprRepresentation)

	p := NewPattern()
	p.Set(a, true)
	p.Set(b, false)
	assert.True(t, back.Eval(p))

	p2 := NewPattern()
	p2.Set(a, false)
	p2.Set(b, true)
	assert.False(t, back.Eval(p2))
}

func TestRepresentation_GenPanicsUnimplemented(t *testing.T) {
	gen := genRepresentation{}
	assert.Panics(t, func() { gen.Eval(NewPattern()) })
}
