package cards

import (
	"context"
	"errors"
	"testing"

	"github.com/metalagman/boardfill/internal/board"
	"github.com/metalagman/boardfill/internal/board/boardtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate_AddsItemsInOrder(t *testing.T) {
	t.Parallel()

	fake := boardtest.New()
	sess := board.NewSession(fake, "board")
	items := []string{"i1", "i2", "i3", "i4"}

	res, err := NewCreator("").Create(context.Background(), sess, Request{
		ListID:   "list",
		Name:     "card",
		LabelIDs: []string{"l1", "l2"},
		Items:    items,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, res.CardID)
	assert.Equal(t, 4, res.ItemsAdded)
	assert.True(t, res.Complete())
	assert.Equal(t, items, fake.ItemsOf(res.ChecklistID))
	require.Len(t, fake.Checklists, 1)
	assert.Equal(t, DefaultChecklistName, fake.Checklists[0].Name)
	assert.Equal(t, []string{"l1", "l2"}, fake.Cards[0].LabelIDs)
}

func TestCreate_NoItemsNoChecklist(t *testing.T) {
	t.Parallel()

	fake := boardtest.New()
	sess := board.NewSession(fake, "board")

	res, err := NewCreator("Todo").Create(context.Background(), sess, Request{ListID: "list", Name: "card"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.CardID)
	assert.Empty(t, res.ChecklistID)
	assert.Zero(t, fake.Count("CreateChecklist"))
}

func TestCreate_CardFailureSkipsChecklist(t *testing.T) {
	t.Parallel()

	fake := boardtest.New()
	fake.FailCard["card"] = errors.New("rate limited")
	sess := board.NewSession(fake, "board")

	res, err := NewCreator("").Create(context.Background(), sess, Request{ListID: "list", Name: "card", Items: []string{"x"}})
	require.Error(t, err)
	assert.ErrorContains(t, err, "rate limited")
	assert.Empty(t, res.CardID)
	assert.Zero(t, fake.Count("CreateChecklist"))
	assert.Zero(t, fake.Count("AddChecklistItem"))
}

func TestCreate_ItemFailureIsRecovered(t *testing.T) {
	t.Parallel()

	fake := boardtest.New()
	fake.FailItem["i2"] = nil
	sess := board.NewSession(fake, "board")

	res, err := NewCreator("").Create(context.Background(), sess, Request{ListID: "list", Name: "card", Items: []string{"i1", "i2", "i3"}})
	require.NoError(t, err)
	assert.NotEmpty(t, res.CardID)
	assert.Equal(t, 2, res.ItemsAdded)
	assert.Equal(t, []string{"i2"}, res.LostItems)
	assert.Equal(t, []string{"i1", "i3"}, fake.ItemsOf(res.ChecklistID))
	assert.Equal(t, []string{"i1", "i2", "i3"}, fake.Args("AddChecklistItem"))
}

func TestCreate_ChecklistFailureKeepsCard(t *testing.T) {
	t.Parallel()

	fake := boardtest.New()
	fake.ChecklistErr = errors.New("boom")
	sess := board.NewSession(fake, "board")

	res, err := NewCreator("").Create(context.Background(), sess, Request{ListID: "list", Name: "card", Items: []string{"i1", "i2"}})
	require.NoError(t, err)
	assert.NotEmpty(t, res.CardID)
	assert.Equal(t, []string{"i1", "i2"}, res.LostItems)
	assert.Zero(t, fake.Count("AddChecklistItem"))
}
