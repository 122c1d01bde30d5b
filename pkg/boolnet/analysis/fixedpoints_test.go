package analysis

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qdyn/boolnet/pkg/boolnet"
)

func patternStrings(patterns []boolnet.Pattern, n int) []string {
	out := make([]string, len(patterns))
	for i, p := range patterns {
		out[i] = p.String(n)
	}
	sort.Strings(out)
	return out
}

func TestFixedPointBuilder_MutualInhibitionHasTwoFixedPoints(t *testing.T) {
	m := boolnet.NewModel()
	a, _ := m.Ensure("A")
	b, _ := m.Ensure("B")
	require.NoError(t, m.PushRule(a, 1, boolnet.Not(boolnet.Atom(b))))
	require.NoError(t, m.PushRule(b, 1, boolnet.Not(boolnet.Atom(a))))

	fps := NewFixedPointBuilder(m).Solve(0)
	assert.Equal(t, []string{"A", "B"}, fps.Names)
	assert.Equal(t, []string{"01", "10"}, patternStrings(fps.Patterns, 2))
}

func TestFixedPointBuilder_SelfInhibitionHasNoFixedPoint(t *testing.T) {
	m := boolnet.NewModel()
	a, _ := m.Ensure("A")
	require.NoError(t, m.PushRule(a, 1, boolnet.Not(boolnet.Atom(a))))

	fps := NewFixedPointBuilder(m).Solve(0)
	assert.Empty(t, fps.Patterns)
}

func TestFixedPointBuilder_RestrictByNameNarrowsSearch(t *testing.T) {
	m := boolnet.NewModel()
	a, _ := m.Ensure("A")
	b, _ := m.Ensure("B")
	require.NoError(t, m.PushRule(a, 1, boolnet.Not(boolnet.Atom(b))))
	require.NoError(t, m.PushRule(b, 1, boolnet.Not(boolnet.Atom(a))))

	builder := NewFixedPointBuilder(m)
	builder.RestrictByName("A", true)
	fps := builder.Solve(0)

	require.Len(t, fps.Patterns, 1)
	assert.Equal(t, "10", fps.Patterns[0].String(2))
}

func TestFixedPoints_Format(t *testing.T) {
	fps := FixedPoints{Names: []string{"A", "B"}}
	p := boolnet.NewPattern()
	p.Set(0, true)
	fps.Patterns = []boolnet.Pattern{p}

	out := fps.Format()
	assert.Equal(t, "A B\n1-\n", out)
}
