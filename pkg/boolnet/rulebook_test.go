package boolnet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentRules_DeriveRuleThreshold(t *testing.T) {
	r := namedRegistry("A", "B")
	a, _ := r.Handle("A")
	b, _ := r.Handle("B")

	cr := &ComponentRules{}
	cr.Push(1, Atom(a))
	cr.Push(2, Atom(b))

	rule1 := cr.DeriveRule(1)
	assert.Equal(t, "A | B", rule1.Format(r))

	rule2 := cr.DeriveRule(2)
	assert.Equal(t, "B & !A", rule2.Format(r))
}

func TestComponentRules_LockForcesThreshold(t *testing.T) {
	cr := &ComponentRules{}
	cr.Push(1, True)
	cr.Lock(0)
	assert.Empty(t, cr.Assignments())

	cr.Lock(2)
	require.Len(t, cr.Assignments(), 1)
	assert.Equal(t, 2, cr.Assignments()[0].Target)
	assert.True(t, cr.Assignments()[0].Formula.Equal(True))
}

func TestComponentRules_RestrictClampsRange(t *testing.T) {
	cr := &ComponentRules{}
	cr.Push(1, True)
	cr.Push(2, True)
	cr.Push(3, True)

	cr.Restrict(1, 2)
	targets := make([]int, len(cr.Assignments()))
	for i, a := range cr.Assignments() {
		targets[i] = a.Target
	}
	assert.Equal(t, []int{1, 2, 2}, targets)
}

func TestComponentRules_RestrictDegeneratesToLock(t *testing.T) {
	cr := &ComponentRules{}
	cr.Push(1, True)
	cr.Restrict(2, 2)
	require.Len(t, cr.Assignments(), 1)
	assert.Equal(t, 2, cr.Assignments()[0].Target)
}

func TestRuleBook_RuleForCachesUntilVersionBump(t *testing.T) {
	reg := NewRegistry()
	a, _ := reg.Ensure("A")
	rb := NewRuleBook(reg)
	rb.PushRule("A", 1, True)

	v0 := rb.Version()
	rule := rb.RuleFor(a)
	assert.True(t, rule.Equal(True))

	rb.PushRule("A", 1, False)
	assert.Greater(t, rb.Version(), v0)
	rule2 := rb.RuleFor(a)
	assert.False(t, rule2.Equal(True))
}

func TestRuleBook_RuleForUnassignedComponentIsFalse(t *testing.T) {
	reg := NewRegistry()
	a, _ := reg.Ensure("A")
	rb := NewRuleBook(reg)

	rule := rb.RuleFor(a)
	assert.True(t, rule.Equal(False))
}

func TestRuleBook_AllPrimesSelfInhibition(t *testing.T) {
	reg := NewRegistry()
	a, _ := reg.Ensure("A")
	rb := NewRuleBook(reg)
	rb.PushRule("A", 1, Not(Atom(a)))

	primes := rb.AllPrimes()
	vp := primes[a]

	// Stabilizing: PI(!A & !A) = PI(!A) = [0]. Destabilizing: PI(A & A) = [1].
	assert.Equal(t, []string{"0"}, patternStrings(vp.Stabilizing, 1))
	assert.Equal(t, []string{"1"}, patternStrings(vp.Destabilizing, 1))
}
