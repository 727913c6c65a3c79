package main

import (
	"bytes"
	"testing"

	"github.com/metalagman/boardfill/internal/journal"
	"github.com/stretchr/testify/assert"
)

func TestPrintRuns(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printRuns(&buf, nil)
	assert.Equal(t, "no runs recorded\n", buf.String())

	buf.Reset()
	printRuns(&buf, []journal.RunRecord{
		{ID: "run-1", CreatedAt: "2026-01-02T03:04:05Z", Status: journal.StatusCompleted, Total: 5, Created: 4, ListID: "l1", ListName: "Backlog"},
	})
	out := buf.String()
	assert.Contains(t, out, "RUN")
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "4/5")
	assert.Contains(t, out, "Backlog (l1)")
}

func TestPrintRun(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printRun(&buf, journal.RunRecord{ID: "run-1", Status: journal.StatusInterrupted, BoardID: "b1", ListID: "l1", Total: 2, Created: 1},
		[]journal.TaskRecord{
			{Index: 0, Name: "first", State: "created", CardID: "card-1", LostItems: []string{"x"}},
			{Index: 1, Name: "second", State: "failed", Error: "boom"},
		})
	out := buf.String()
	assert.Contains(t, out, "Run run-1 (interrupted)")
	assert.Contains(t, out, "Board b1, list l1")
	assert.Contains(t, out, "Created 1/2 cards")
	assert.Contains(t, out, "lost items: x")
	assert.Contains(t, out, "boom")
}
