// Package catalog holds the compiled-in task list, the board it targets and
// the tag color table.
package catalog

import (
	"github.com/metalagman/boardfill/internal/board"
	"github.com/metalagman/boardfill/internal/labels"
	"github.com/metalagman/boardfill/internal/task"
)

// Default targets: the "Reachu Dev" board and its backlog list.
const (
	DefaultBoardID = "5dea6d99c0ea505b4c3a435e"
	DefaultListID  = "645e0787a4ef6845516d172b"
)

// FallbackColor is used for tags missing from the color table.
const FallbackColor = board.ColorNone

// Colors returns the tag color table.
func Colors() labels.ColorTable {
	return labels.NewColorTable(map[string]board.Color{
		"backend":         board.ColorRed,
		"swift":           board.ColorBlue,
		"kotlin":          board.ColorGreen,
		"sdk":             board.ColorOrange,
		"database":        board.ColorPurple,
		"api":             board.ColorPink,
		"websocket":       board.ColorYellow,
		"ui":              board.ColorSky,
		"network":         board.ColorLime,
		"realtime":        board.ColorBlack,
		"timeline":        board.ColorRed,
		"chat":            board.ColorBlue,
		"polls":           board.ColorGreen,
		"video":           board.ColorOrange,
		"integration":     board.ColorPurple,
		"auth":            board.ColorPink,
		"admin":           board.ColorYellow,
		"demo":            board.ColorSky,
		"migration":       board.ColorLime,
		"setup":           board.ColorBlack,
		"configuration":   board.ColorRed,
		"documentation":   board.ColorBlue,
		"testing":         board.ColorGreen,
		"priority-high":   board.ColorRed,
		"priority-medium": board.ColorYellow,
		"priority-low":    board.ColorGreen,
	}, FallbackColor)
}

// Tasks returns a fresh copy of the task list, in creation order.
func Tasks() []task.Task {
	src := tasks()
	out := make([]task.Task, len(src))
	for i, t := range src {
		out[i] = t.Clone()
	}
	return out
}
