package batch

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/metalagman/boardfill/internal/board"
	"github.com/metalagman/boardfill/internal/cards"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	dimStyle  = lipgloss.NewStyle().Faint(true)
)

// Reporter prints user-facing run progress.
type Reporter struct {
	out io.Writer
	bar progress.Model
}

// NewReporter writes progress to out. A nil out discards output.
func NewReporter(out io.Writer) *Reporter {
	if out == nil {
		out = io.Discard
	}
	return &Reporter{
		out: out,
		bar: progress.New(progress.WithDefaultGradient(), progress.WithWidth(20), progress.WithoutPercentage()),
	}
}

func (r *Reporter) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// ListFound reports a successful target list lookup.
func (r *Reporter) ListFound(list board.List) {
	r.printf("Found list: %s (ID: %s)\n", list.Name, list.ID)
}

// ListUnavailable prints the available-lists diagnostic for the fatal path.
func (r *Reporter) ListUnavailable(listID, boardID string, cause error, lists []board.List, listErr error) {
	r.printf("%s Could not access list %s: %v\n", failStyle.Render("ERROR:"), listID, cause)
	r.printf("Getting lists for board %s...\n", boardID)
	if listErr != nil {
		r.printf("%s could not list board lists: %v\n", failStyle.Render("ERROR:"), listErr)
		return
	}
	r.printf("Available lists: %s\n", FormatLists(lists))
}

// ResolvingLabels announces label pre-resolution.
func (r *Reporter) ResolvingLabels(n int) {
	r.printf("Getting/creating %d labels...\n", n)
}

// LabelResolved reports one resolved tag.
func (r *Reporter) LabelResolved(tag, id string) {
	r.printf("  Label '%s': %s\n", tag, dimStyle.Render(id))
}

// CreatingCards announces the card loop.
func (r *Reporter) CreatingCards(n int) {
	r.printf("\nCreating %d cards...\n", n)
}

// TaskStarted reports the task about to be created.
func (r *Reporter) TaskStarted(pos, total int, name string) {
	done := 0.0
	if total > 0 {
		done = float64(pos-1) / float64(total)
	}
	r.printf("\n[%d/%d] %s Creating: %s\n", pos, total, r.bar.ViewAs(done), name)
}

// TaskCreated reports a created card.
func (r *Reporter) TaskCreated(res cards.Result) {
	r.printf("  %s Created card ID: %s\n", okStyle.Render("✅"), res.CardID)
	if len(res.LostItems) > 0 {
		r.printf("  %s %d checklist item(s) not added: %s\n",
			warnStyle.Render("⚠"), len(res.LostItems), strings.Join(res.LostItems, "; "))
	}
}

// TaskFailed reports a task whose card was not created.
func (r *Reporter) TaskFailed(err error) {
	r.printf("  %s Failed to create card: %v\n", failStyle.Render("❌"), err)
}

// Summary prints the created/total line.
func (r *Reporter) Summary(s Summary) {
	r.printf("\n%s Created %d/%d cards.\n", okStyle.Render("Completed!"), s.Created, s.Total)
}

// FormatLists renders lists as "name (ID: id)" entries.
func FormatLists(lists []board.List) string {
	if len(lists) == 0 {
		return "(none)"
	}
	parts := make([]string, 0, len(lists))
	for _, l := range lists {
		parts = append(parts, fmt.Sprintf("%s (ID: %s)", l.Name, l.ID))
	}
	return strings.Join(parts, ", ")
}
