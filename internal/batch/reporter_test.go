package batch

import (
	"bytes"
	"errors"
	"testing"

	"github.com/metalagman/boardfill/internal/board"
	"github.com/metalagman/boardfill/internal/cards"
	"github.com/stretchr/testify/assert"
)

func TestReporter_TaskLines(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := NewReporter(&buf)
	r.TaskStarted(2, 5, "Swift SDK")
	r.TaskCreated(cards.Result{CardID: "c1", LostItems: []string{"x"}})
	r.TaskFailed(errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "[2/5]")
	assert.Contains(t, out, "Creating: Swift SDK")
	assert.Contains(t, out, "Created card ID: c1")
	assert.Contains(t, out, "1 checklist item(s) not added: x")
	assert.Contains(t, out, "Failed to create card: boom")
}

func TestFormatLists(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "(none)", FormatLists(nil))
	assert.Equal(t, "A (ID: 1), B (ID: 2)", FormatLists([]board.List{{ID: "1", Name: "A"}, {ID: "2", Name: "B"}}))
}

func TestNewReporter_NilWriter(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() { NewReporter(nil).Summary(Summary{Created: 1, Total: 1}) })
}
