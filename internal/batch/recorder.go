package batch

import (
	"context"
	"time"

	"github.com/metalagman/boardfill/internal/task"
)

// RunInfo describes a run that passed list validation.
type RunInfo struct {
	ID        string
	BoardID   string
	ListID    string
	ListName  string
	Total     int
	StartedAt time.Time
}

// Outcome is the terminal result of one task.
type Outcome struct {
	Index     int
	Name      string
	State     task.State
	CardID    string
	LabelIDs  []string
	LostItems []string
	Err       error
}

// Summary reports a completed run. Interrupted is set when the context was
// cancelled before the run finished, even if every task was attempted.
type Summary struct {
	RunID       string
	Total       int
	Created     int
	Failed      int
	Interrupted bool
	Outcomes    []Outcome
}

func (s *Summary) add(o Outcome) {
	s.Outcomes = append(s.Outcomes, o)
	if o.State == task.StateCreated {
		s.Created++
	} else {
		s.Failed++
	}
}

// Recorder persists run progress. Recorder errors are logged and never stop a
// run.
type Recorder interface {
	RunStarted(ctx context.Context, run RunInfo) error
	TaskFinished(ctx context.Context, runID string, outcome Outcome) error
	RunFinished(ctx context.Context, summary Summary) error
}

type nopRecorder struct{}

func (nopRecorder) RunStarted(context.Context, RunInfo) error           { return nil }
func (nopRecorder) TaskFinished(context.Context, string, Outcome) error { return nil }
func (nopRecorder) RunFinished(context.Context, Summary) error          { return nil }
