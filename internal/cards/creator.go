// Package cards creates a card and its checklist on a board.
package cards

import (
	"context"
	"fmt"
	"strings"

	"github.com/metalagman/boardfill/internal/board"
	"github.com/rs/zerolog/log"
)

// DefaultChecklistName names the checklist attached to new cards.
const DefaultChecklistName = "Checklist"

// Request describes one card to create.
type Request struct {
	ListID      string
	Name        string
	Description string
	LabelIDs    []string
	Items       []string
}

// Result reports what was created for a request.
type Result struct {
	CardID      string
	ChecklistID string
	ItemsAdded  int
	LostItems   []string
}

// Complete reports whether every checklist item made it onto the card.
func (r Result) Complete() bool {
	return len(r.LostItems) == 0
}

// Creator creates cards with an optional checklist.
type Creator struct {
	checklistName string
}

// NewCreator returns a creator naming checklists checklistName, or
// DefaultChecklistName when empty.
func NewCreator(checklistName string) *Creator {
	name := strings.TrimSpace(checklistName)
	if name == "" {
		name = DefaultChecklistName
	}
	return &Creator{checklistName: name}
}

// Create creates the card, then the checklist and its items in order. An error
// is returned only when the card itself could not be created; checklist
// failures are logged and surface as Result.LostItems.
func (c *Creator) Create(ctx context.Context, sess *board.Session, req Request) (Result, error) {
	card, err := sess.Service.CreateCard(ctx, board.NewCard{
		ListID:      req.ListID,
		Name:        req.Name,
		Description: req.Description,
		LabelIDs:    req.LabelIDs,
	})
	if err != nil {
		return Result{}, fmt.Errorf("create card %q: %w", req.Name, err)
	}
	res := Result{CardID: card.ID}
	if len(req.Items) == 0 {
		return res, nil
	}

	checklist, err := sess.Service.CreateChecklist(ctx, card.ID, c.checklistName)
	if err != nil {
		log.Error().Err(err).Str("card_id", card.ID).Int("items", len(req.Items)).Msg("create checklist failed")
		res.LostItems = append([]string(nil), req.Items...)
		return res, nil
	}
	res.ChecklistID = checklist.ID

	for _, item := range req.Items {
		if _, err := sess.Service.AddChecklistItem(ctx, checklist.ID, item); err != nil {
			log.Error().Err(err).Str("card_id", card.ID).Str("item", item).Msg("add checklist item failed")
			res.LostItems = append(res.LostItems, item)
			continue
		}
		res.ItemsAdded++
	}
	return res, nil
}
