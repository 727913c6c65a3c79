package catalog

import (
	"testing"

	"github.com/metalagman/boardfill/internal/board"
	"github.com/metalagman/boardfill/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTasks_AreValid(t *testing.T) {
	t.Parallel()

	items := Tasks()
	require.Len(t, items, 5)
	for _, item := range items {
		require.NoError(t, item.Validate(), item.Name)
		assert.NotEmpty(t, item.Checklist, item.Name)
	}
}

func TestTasks_ReturnsCopies(t *testing.T) {
	t.Parallel()

	first := Tasks()
	first[0].Name = "mutated"
	first[0].Tags[0] = "mutated"

	second := Tasks()
	assert.Equal(t, "Swift SDK: Video Synchronization System", second[0].Name)
	assert.Equal(t, "swift", second[0].Tags[0])
}

func TestColors_MapsCatalogTags(t *testing.T) {
	t.Parallel()

	colors := Colors()
	assert.Equal(t, board.ColorBlue, colors.ColorFor("swift"))
	assert.Equal(t, board.ColorRed, colors.ColorFor("priority-high"))

	// "contests" is used by the catalog but has no color of its own.
	assert.False(t, colors.Mapped("contests"))
	assert.Equal(t, FallbackColor, colors.ColorFor("contests"))

	for _, tag := range task.UniqueTags(Tasks()) {
		if tag == "contests" {
			continue
		}
		assert.True(t, colors.Mapped(tag), tag)
	}
}
