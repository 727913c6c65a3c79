package main

import (
	"bytes"
	"testing"

	"github.com/metalagman/boardfill/internal/catalog"
	"github.com/metalagman/boardfill/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestWritePlan_RawMarkdown(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tasks := catalog.Tasks()
	require.NoError(t, writePlan(&buf, config.Defaults(), tasks, outputMarkdown, true))

	out := buf.String()
	assert.Contains(t, out, "# 5 cards for list `"+catalog.DefaultListID+"`")
	assert.Contains(t, out, "| contests | none (fallback) |")
	for i, task := range tasks {
		assert.Contains(t, out, task.Name, "task %d", i)
		for _, item := range task.Checklist {
			assert.Contains(t, out, "- [ ] "+item)
		}
	}
}

func TestWritePlan_Rendered(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, writePlan(&buf, config.Defaults(), catalog.Tasks(), outputMarkdown, false))
	assert.Contains(t, buf.String(), "Labels")
}

func TestWritePlan_YAML(t *testing.T) {
	t.Parallel()

	cfg := config.Defaults()
	cfg.Board.ListID = "list-9"
	var buf bytes.Buffer
	require.NoError(t, writePlan(&buf, cfg, catalog.Tasks(), outputYAML, false))

	var doc planDoc
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "list-9", doc.List)
	assert.Len(t, doc.Tasks, 5)
	assert.Equal(t, catalog.Tasks()[0].Checklist, doc.Tasks[0].Checklist)

	colors := map[string]planLabel{}
	for _, l := range doc.Labels {
		colors[l.Tag] = l
	}
	assert.Equal(t, "blue", colors["swift"].Color)
	assert.False(t, colors["contests"].Mapped)
}

func TestWritePlan_UnknownFormat(t *testing.T) {
	t.Parallel()

	err := writePlan(&bytes.Buffer{}, config.Defaults(), catalog.Tasks(), "toml", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "toml")
}
