// Package board defines the project-board surface consumed by boardfill and
// the session object that carries it through a run.
package board

import (
	"context"
	"strings"
	"sync"
)

// Color is a label color accepted by the board service.
type Color string

// Supported label colors. ColorNone creates an unlabeled (colorless) label.
const (
	ColorNone   Color = ""
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorOrange Color = "orange"
	ColorRed    Color = "red"
	ColorPurple Color = "purple"
	ColorBlue   Color = "blue"
	ColorSky    Color = "sky"
	ColorLime   Color = "lime"
	ColorPink   Color = "pink"
	ColorBlack  Color = "black"
)

var knownColors = []Color{
	ColorGreen, ColorYellow, ColorOrange, ColorRed, ColorPurple,
	ColorBlue, ColorSky, ColorLime, ColorPink, ColorBlack,
}

// ParseColor maps a color name to a Color. "", "none", "null" and "grey" map to
// ColorNone.
func ParseColor(name string) (Color, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "", "none", "null", "grey", "gray":
		return ColorNone, true
	}
	for _, c := range knownColors {
		if string(c) == n {
			return c, true
		}
	}
	return ColorNone, false
}

// String returns the color name, "none" for ColorNone.
func (c Color) String() string {
	if c == ColorNone {
		return "none"
	}
	return string(c)
}

// Label is a named, colored tag attachable to cards.
type Label struct {
	ID    string
	Name  string
	Color Color
}

// List is a column on a board.
type List struct {
	ID      string
	Name    string
	BoardID string
}

// Card is a tracked work item on a list.
type Card struct {
	ID       string
	ListID   string
	Name     string
	Desc     string
	LabelIDs []string
}

// NewCard describes a card to create.
type NewCard struct {
	ListID      string
	Name        string
	Description string
	LabelIDs    []string
}

// Checklist is an ordered set of items attached to a card.
type Checklist struct {
	ID     string
	CardID string
	Name   string
}

// CheckItem is a single checklist entry.
type CheckItem struct {
	ID          string
	ChecklistID string
	Name        string
	Checked     bool
}

// Service is the remote board API used by the label resolver, the card
// creator and the orchestrator.
type Service interface {
	ListLabels(ctx context.Context, boardID string) ([]Label, error)
	CreateLabel(ctx context.Context, boardID, name string, color Color) (Label, error)
	GetList(ctx context.Context, listID string) (List, error)
	ListLists(ctx context.Context, boardID string) ([]List, error)
	CreateCard(ctx context.Context, card NewCard) (Card, error)
	CreateChecklist(ctx context.Context, cardID, name string) (Checklist, error)
	AddChecklistItem(ctx context.Context, checklistID, text string) (CheckItem, error)
	Close() error
}

// Session bundles the board service with the board a run targets. It is built
// once by the caller and passed to every component operation.
type Session struct {
	Service Service
	BoardID string

	closeOnce sync.Once
	closeErr  error
}

// NewSession creates a session for boardID.
func NewSession(svc Service, boardID string) *Session {
	return &Session{Service: svc, BoardID: boardID}
}

// Close releases the underlying service. Repeated calls return the first result.
func (s *Session) Close() error {
	if s == nil || s.Service == nil {
		return nil
	}
	s.closeOnce.Do(func() {
		s.closeErr = s.Service.Close()
	})
	return s.closeErr
}
