package boolnet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func patternStrings(im Implicants, n int) []string {
	out := make([]string, len(im.Patterns()))
	for i, p := range im.Patterns() {
		out[i] = p.String(n)
	}
	return out
}

func TestImplicants_NewAndClear(t *testing.T) {
	assert.Equal(t, 1, NewImplicants().Len())
	assert.True(t, NewImplicants().Patterns()[0].IsUnrestricted())
	assert.True(t, ClearImplicants().IsFalse())
}

func TestImplicants_AddCandidateDropsSubsumed(t *testing.T) {
	im := ClearImplicants()
	im = im.AddCandidate(patternFromString("1--"))
	im = im.AddCandidate(patternFromString("10-")) // subsumed by 1--
	assert.Equal(t, []string{"1--"}, patternStrings(im, 3))
}

func TestImplicants_AddCandidateJoinsOnSingleConflict(t *testing.T) {
	im := ClearImplicants()
	im = im.AddCandidate(patternFromString("10"))
	im = im.AddCandidate(patternFromString("11")) // joins with 10 on position 1 -> 1-
	assert.Equal(t, []string{"1-"}, patternStrings(im, 2))
}

func TestImplicants_MergeRaw(t *testing.T) {
	im := Implicants{patterns: []Pattern{patternFromString("1--"), patternFromString("0-1")}}
	other := ClearImplicants().AddCandidate(patternFromString("-1-"))

	merged := im.MergeRaw(other)
	assert.ElementsMatch(t, []string{"-1-", "1--", "0-1"}, patternStrings(merged, 3))
}

func TestImplicants_Subtract(t *testing.T) {
	im := Implicants{patterns: []Pattern{patternFromString("1--"), patternFromString("0-1")}}
	other := ClearImplicants().AddCandidate(patternFromString("1--"))

	diff := im.Subtract(other)
	assert.Equal(t, []string{"0-1"}, patternStrings(diff, 3))
}

func TestImplicants_ExtendLiteral(t *testing.T) {
	im := Implicants{patterns: []Pattern{patternFromString("1--"), patternFromString("01-")}}

	extended := im.ExtendLiteral(2, true)
	assert.ElementsMatch(t, []string{"1-1", "011"}, patternStrings(extended, 3))
}

func TestImplicants_EvalAndCoverage(t *testing.T) {
	im := ClearImplicants().AddCandidate(patternFromString("1--"))

	assert.True(t, im.Eval(patternFromString("1--")))
	assert.False(t, im.Eval(patternFromString("0--")))
	assert.True(t, im.CoversPattern(patternFromString("10-")))
	assert.False(t, im.CoversPattern(patternFromString("0--")))
}
