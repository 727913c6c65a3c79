// Package boardtest provides an in-memory board.Service for tests.
package boardtest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/metalagman/boardfill/internal/board"
)

// ErrInjected is returned by failures configured without an explicit error.
var ErrInjected = errors.New("boardtest: injected failure")

// ErrNotFound is returned for unknown lists.
var ErrNotFound = errors.New("boardtest: not found")

// Call records a single service invocation.
type Call struct {
	Method string
	Arg    string
}

// Fake is an in-memory board. Zero value is not usable; call New.
type Fake struct {
	mu sync.Mutex

	Labels     []board.Label
	Lists      []board.List
	Cards      []board.Card
	Checklists []board.Checklist
	Items      []board.CheckItem
	Calls      []Call
	Closed     int

	// Failure injection.
	ListLabelsErr   error
	ListListsErr    error
	ChecklistErr    error
	FailLabelCreate map[string]error // by label name
	FailCard        map[string]error // by card name
	FailItem        map[string]error // by item text

	seq int
}

// New creates a fake holding the given lists.
func New(lists ...board.List) *Fake {
	return &Fake{
		Lists:           lists,
		FailLabelCreate: map[string]error{},
		FailCard:        map[string]error{},
		FailItem:        map[string]error{},
	}
}

func (f *Fake) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func (f *Fake) record(method, arg string) {
	f.Calls = append(f.Calls, Call{Method: method, Arg: arg})
}

// ListLabels implements board.Service.
func (f *Fake) ListLabels(_ context.Context, boardID string) ([]board.Label, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ListLabels", boardID)
	if f.ListLabelsErr != nil {
		return nil, f.ListLabelsErr
	}
	return append([]board.Label(nil), f.Labels...), nil
}

// CreateLabel implements board.Service.
func (f *Fake) CreateLabel(_ context.Context, _ string, name string, color board.Color) (board.Label, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("CreateLabel", name)
	if err, ok := f.FailLabelCreate[name]; ok {
		return board.Label{}, orInjected(err)
	}
	label := board.Label{ID: f.nextID("label"), Name: name, Color: color}
	f.Labels = append(f.Labels, label)
	return label, nil
}

// GetList implements board.Service.
func (f *Fake) GetList(_ context.Context, listID string) (board.List, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetList", listID)
	for _, l := range f.Lists {
		if l.ID == listID {
			return l, nil
		}
	}
	return board.List{}, fmt.Errorf("list %s: %w", listID, ErrNotFound)
}

// ListLists implements board.Service. Lists without a board id belong to
// every board.
func (f *Fake) ListLists(_ context.Context, boardID string) ([]board.List, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ListLists", boardID)
	if f.ListListsErr != nil {
		return nil, f.ListListsErr
	}
	var out []board.List
	for _, l := range f.Lists {
		if l.BoardID == "" || l.BoardID == boardID {
			out = append(out, l)
		}
	}
	return out, nil
}

// CreateCard implements board.Service.
func (f *Fake) CreateCard(_ context.Context, card board.NewCard) (board.Card, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("CreateCard", card.Name)
	if err, ok := f.FailCard[card.Name]; ok {
		return board.Card{}, orInjected(err)
	}
	created := board.Card{
		ID:       f.nextID("card"),
		ListID:   card.ListID,
		Name:     card.Name,
		Desc:     card.Description,
		LabelIDs: append([]string(nil), card.LabelIDs...),
	}
	f.Cards = append(f.Cards, created)
	return created, nil
}

// CreateChecklist implements board.Service.
func (f *Fake) CreateChecklist(_ context.Context, cardID, name string) (board.Checklist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("CreateChecklist", cardID)
	if f.ChecklistErr != nil {
		return board.Checklist{}, f.ChecklistErr
	}
	cl := board.Checklist{ID: f.nextID("checklist"), CardID: cardID, Name: name}
	f.Checklists = append(f.Checklists, cl)
	return cl, nil
}

// AddChecklistItem implements board.Service.
func (f *Fake) AddChecklistItem(_ context.Context, checklistID, text string) (board.CheckItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("AddChecklistItem", text)
	if err, ok := f.FailItem[text]; ok {
		return board.CheckItem{}, orInjected(err)
	}
	item := board.CheckItem{ID: f.nextID("item"), ChecklistID: checklistID, Name: text}
	f.Items = append(f.Items, item)
	return item, nil
}

// Close implements board.Service.
func (f *Fake) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed++
	return nil
}

// Count returns how many times method was called.
func (f *Fake) Count(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

// Args returns the recorded arguments for method in call order.
func (f *Fake) Args(method string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.Calls {
		if c.Method == method {
			out = append(out, c.Arg)
		}
	}
	return out
}

// ItemsOf returns the item texts added to checklistID, in order.
func (f *Fake) ItemsOf(checklistID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, it := range f.Items {
		if it.ChecklistID == checklistID {
			out = append(out, it.Name)
		}
	}
	return out
}

// LabelByName returns the stored label matching name case-insensitively.
func (f *Fake) LabelByName(name string) (board.Label, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.Labels {
		if strings.EqualFold(l.Name, name) {
			return l, true
		}
	}
	return board.Label{}, false
}

func orInjected(err error) error {
	if err == nil {
		return ErrInjected
	}
	return err
}
