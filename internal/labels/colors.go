package labels

import (
	"strings"

	"github.com/metalagman/boardfill/internal/board"
)

// ColorTable maps tags to label colors. It is read-only once built.
type ColorTable struct {
	colors   map[string]board.Color
	fallback board.Color
}

// NewColorTable copies entries into a table. Keys are matched case-insensitively.
func NewColorTable(entries map[string]board.Color, fallback board.Color) ColorTable {
	colors := make(map[string]board.Color, len(entries))
	for tag, c := range entries {
		colors[strings.ToLower(tag)] = c
	}
	return ColorTable{colors: colors, fallback: fallback}
}

// ColorFor returns the color for tag, or the fallback when tag is unmapped.
func (t ColorTable) ColorFor(tag string) board.Color {
	if c, ok := t.colors[strings.ToLower(tag)]; ok {
		return c
	}
	return t.fallback
}

// Mapped reports whether tag has an explicit color.
func (t ColorTable) Mapped(tag string) bool {
	_, ok := t.colors[strings.ToLower(tag)]
	return ok
}

// Fallback returns the color used for unmapped tags.
func (t ColorTable) Fallback() board.Color {
	return t.fallback
}

// WithFallback returns a copy of t using fallback for unmapped tags.
func (t ColorTable) WithFallback(fallback board.Color) ColorTable {
	t.fallback = fallback
	return t
}
