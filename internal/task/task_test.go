package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniqueTags_FirstAppearanceOrder(t *testing.T) {
	t.Parallel()

	tasks := []Task{
		{Name: "one", Tags: []string{"b", "a"}},
		{Name: "two", Tags: []string{"a", "c"}},
		{Name: "three"},
		{Name: "four", Tags: []string{"c", "b", "d"}},
	}
	assert.Equal(t, []string{"b", "a", "c", "d"}, UniqueTags(tasks))
}

func TestClone_IsIndependent(t *testing.T) {
	t.Parallel()

	orig := Task{Name: "x", Checklist: []string{"i1"}, Tags: []string{"t1"}}
	cp := orig.Clone()
	cp.Checklist[0] = "changed"
	cp.Tags[0] = "changed"

	assert.Equal(t, "i1", orig.Checklist[0])
	assert.Equal(t, "t1", orig.Tags[0])
}

func TestValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, Task{Name: "ok"}.Validate())
	require.Error(t, Task{Name: "  "}.Validate())
	require.Error(t, Task{Name: "x", Checklist: []string{"a", ""}}.Validate())
	require.Error(t, Task{Name: "x", Tags: []string{" "}}.Validate())
}

func TestStateAdvance(t *testing.T) {
	t.Parallel()

	s, err := StatePending.Advance(StateCreating)
	require.NoError(t, err)
	assert.Equal(t, StateCreating, s)

	s, err = s.Advance(StateFailed)
	require.NoError(t, err)
	assert.True(t, s.Terminal())

	_, err = s.Advance(StateCreating)
	require.Error(t, err)

	_, err = StatePending.Advance(StateCreated)
	require.Error(t, err)
}

func TestStateString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "created", StateCreated.String())
	assert.Equal(t, "state(9)", State(9).String())
}
