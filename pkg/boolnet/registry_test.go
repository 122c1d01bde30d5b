package boolnet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_EnsureAllocatesOnce(t *testing.T) {
	r := NewRegistry()

	h1, err := r.Ensure("A")
	require.NoError(t, err)
	h2, err := r.Ensure("A")
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, "A", r.Name(h1))
}

func TestRegistry_EnsureRejectsInvalidName(t *testing.T) {
	r := NewRegistry()

	_, err := r.Ensure("1bad")
	require.Error(t, err)

	var be *Error
	require.ErrorAs(t, err, &be)
	assert.Equal(t, KindInvalidName, be.Kind)
}

func TestRegistry_EnsureThresholdByNameAllocatesInOrder(t *testing.T) {
	r := NewRegistry()

	h3, err := r.EnsureThresholdByName("A", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, r.Len())

	h1, ok := r.Handle("A")
	require.True(t, ok)
	h2, ok := r.Handle("A:2")
	require.True(t, ok)
	h3Again, ok := r.Handle("A:3")
	require.True(t, ok)

	assert.Equal(t, h3, h3Again)
	assert.Less(t, h1, h2)
	assert.Less(t, h2, h3)
}

func TestRegistry_EnsureThresholdOutOfRange(t *testing.T) {
	r := NewRegistry()
	_, err := r.EnsureThresholdByName("A", 0)
	require.Error(t, err)
	_, err = r.EnsureThresholdByName("A", 10)
	require.Error(t, err)
}

func TestRegistry_ComponentHandles(t *testing.T) {
	r := NewRegistry()
	_, err := r.EnsureThresholdByName("A", 2)
	require.NoError(t, err)

	handles := r.ComponentHandles("A")
	require.Len(t, handles, 2)

	missing := r.ComponentHandles("B")
	assert.Nil(t, missing)
}

func TestRegistry_Rename(t *testing.T) {
	r := NewRegistry()
	h, err := r.Ensure("A")
	require.NoError(t, err)

	require.NoError(t, r.Rename("A", "B"))
	assert.Equal(t, "B", r.Name(h))

	_, ok := r.Handle("A")
	assert.False(t, ok)
	got, ok := r.Handle("B")
	assert.True(t, ok)
	assert.Equal(t, h, got)
}

func TestRegistry_RenameRejectsCollision(t *testing.T) {
	r := NewRegistry()
	_, err := r.Ensure("A")
	require.NoError(t, err)
	_, err = r.Ensure("B")
	require.NoError(t, err)

	err = r.Rename("A", "B")
	require.Error(t, err)

	var be *Error
	require.ErrorAs(t, err, &be)
	assert.Equal(t, KindNameAlreadyExists, be.Kind)
}

func TestRegistry_RenameUnknownComponent(t *testing.T) {
	r := NewRegistry()
	err := r.Rename("ghost", "A")
	require.Error(t, err)
}

func TestRegistry_VersionBumpsOnAllocationAndRename(t *testing.T) {
	r := NewRegistry()
	v0 := r.Version()

	_, err := r.Ensure("A")
	require.NoError(t, err)
	v1 := r.Version()
	assert.Greater(t, v1, v0)

	// A second Ensure of an already-allocated threshold is not a
	// structural change.
	_, err = r.Ensure("A")
	require.NoError(t, err)
	assert.Equal(t, v1, r.Version())

	require.NoError(t, r.Rename("A", "B"))
	assert.Greater(t, r.Version(), v1)
}

func TestRuleBook_SurvivesRegistryRename(t *testing.T) {
	m := NewModel()
	a, err := m.Ensure("A")
	require.NoError(t, err)
	require.NoError(t, m.PushRule(a, 1, True))

	require.NoError(t, m.Registry.Rename("A", "B"))

	rule := m.Rules.RuleFor(a)
	assert.True(t, rule.Equal(True), "rules pushed under the old name must survive a rename")

	// PushRule and RuleFor under the new name resolve to the same
	// component's rules, not a freshly orphaned one: the earlier TRUE
	// assignment is still there, so TRUE | FALSE derives TRUE.
	require.NoError(t, m.PushRule(a, 1, False))
	assert.True(t, m.Rules.RuleFor(a).Equal(True))
}
