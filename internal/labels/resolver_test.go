package labels

import (
	"context"
	"errors"
	"testing"

	"github.com/metalagman/boardfill/internal/board"
	"github.com/metalagman/boardfill/internal/board/boardtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable() ColorTable {
	return NewColorTable(map[string]board.Color{"b": board.ColorBlue, "Swift": board.ColorSky}, board.ColorNone)
}

func TestResolve_IsIdempotent(t *testing.T) {
	t.Parallel()

	fake := boardtest.New()
	sess := board.NewSession(fake, "board")
	r := NewResolver(testTable())

	first, ok := r.Resolve(context.Background(), sess, "a")
	require.True(t, ok)
	second, ok := r.Resolve(context.Background(), sess, "a")
	require.True(t, ok)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, fake.Count("CreateLabel"))
}

func TestResolve_MatchesExistingCaseInsensitive(t *testing.T) {
	t.Parallel()

	fake := boardtest.New()
	fake.Labels = []board.Label{{ID: "existing", Name: "Backend", Color: board.ColorRed}}
	sess := board.NewSession(fake, "board")

	id, ok := NewResolver(testTable()).Resolve(context.Background(), sess, "backend")
	require.True(t, ok)
	assert.Equal(t, "existing", id)
	assert.Zero(t, fake.Count("CreateLabel"))
}

func TestResolve_UsesTableColorOrFallback(t *testing.T) {
	t.Parallel()

	fake := boardtest.New()
	sess := board.NewSession(fake, "board")
	r := NewResolver(testTable())

	_, ok := r.Resolve(context.Background(), sess, "b")
	require.True(t, ok)
	_, ok = r.Resolve(context.Background(), sess, "swift")
	require.True(t, ok)
	_, ok = r.Resolve(context.Background(), sess, "a")
	require.True(t, ok)

	b, _ := fake.LabelByName("b")
	swift, _ := fake.LabelByName("swift")
	a, _ := fake.LabelByName("a")
	assert.Equal(t, board.ColorBlue, b.Color)
	assert.Equal(t, board.ColorSky, swift.Color)
	assert.Equal(t, board.ColorNone, a.Color)
}

func TestResolve_ListFailureReturnsNoID(t *testing.T) {
	t.Parallel()

	fake := boardtest.New()
	fake.ListLabelsErr = errors.New("boom")
	sess := board.NewSession(fake, "board")

	id, ok := NewResolver(testTable()).Resolve(context.Background(), sess, "a")
	assert.False(t, ok)
	assert.Empty(t, id)
	assert.Zero(t, fake.Count("CreateLabel"))
}

func TestResolve_CreateFailureReturnsNoID(t *testing.T) {
	t.Parallel()

	fake := boardtest.New()
	fake.FailLabelCreate["a"] = nil
	sess := board.NewSession(fake, "board")

	_, ok := NewResolver(testTable()).Resolve(context.Background(), sess, "a")
	assert.False(t, ok)
}

func TestResolve_EmptyTagSkipsRemote(t *testing.T) {
	t.Parallel()

	fake := boardtest.New()
	sess := board.NewSession(fake, "board")

	_, ok := NewResolver(testTable()).Resolve(context.Background(), sess, "  ")
	assert.False(t, ok)
	assert.Empty(t, fake.Calls)
}

func TestResolveAll_OncePerTagAndDropsFailures(t *testing.T) {
	t.Parallel()

	fake := boardtest.New()
	fake.FailLabelCreate["bad"] = nil
	sess := board.NewSession(fake, "board")

	var seen []string
	got := NewResolver(testTable()).ResolveAll(context.Background(), sess,
		[]string{"a", "bad", "b", "a"},
		func(tag, _ string) { seen = append(seen, tag) })

	assert.Len(t, got, 2)
	assert.Contains(t, got, "a")
	assert.Contains(t, got, "b")
	assert.NotContains(t, got, "bad")
	assert.Equal(t, []string{"a", "b"}, seen)
	assert.Equal(t, []string{"a", "bad", "b"}, fake.Args("CreateLabel"))
}

func TestColorTable(t *testing.T) {
	t.Parallel()

	table := testTable()
	assert.True(t, table.Mapped("SWIFT"))
	assert.False(t, table.Mapped("a"))
	assert.Equal(t, board.ColorNone, table.ColorFor("a"))
	assert.Equal(t, board.ColorBlack, table.WithFallback(board.ColorBlack).ColorFor("a"))
	assert.Equal(t, board.ColorNone, table.Fallback())
}
