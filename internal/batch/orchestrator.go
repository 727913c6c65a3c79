// Package batch drives a card-creation run: list validation, label
// pre-resolution, the sequential creation loop, pacing and the summary.
package batch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/metalagman/boardfill/internal/board"
	"github.com/metalagman/boardfill/internal/cards"
	"github.com/metalagman/boardfill/internal/labels"
	"github.com/metalagman/boardfill/internal/task"
	"github.com/rs/zerolog/log"
)

// ErrListUnavailable is returned when the target list cannot be fetched.
var ErrListUnavailable = errors.New("target list unavailable")

// ErrWrongBoard is the cause of ErrListUnavailable when the list exists on a
// board other than the session's.
var ErrWrongBoard = errors.New("list is on another board")

// Orchestrator runs a batch of tasks against one list.
type Orchestrator struct {
	resolver *labels.Resolver
	creator  *cards.Creator
	pacer    Pacer
	reporter *Reporter
	recorder Recorder
	newRunID func() string
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithPacer sets the pacer used between cards.
func WithPacer(p Pacer) Option {
	return func(o *Orchestrator) {
		if p != nil {
			o.pacer = p
		}
	}
}

// WithReporter sets the progress reporter.
func WithReporter(r *Reporter) Option {
	return func(o *Orchestrator) {
		if r != nil {
			o.reporter = r
		}
	}
}

// WithRecorder sets the run recorder.
func WithRecorder(r Recorder) Option {
	return func(o *Orchestrator) {
		if r != nil {
			o.recorder = r
		}
	}
}

// New creates an orchestrator. Without options it paces with DefaultDelay,
// discards progress output and records nothing.
func New(resolver *labels.Resolver, creator *cards.Creator, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		resolver: resolver,
		creator:  creator,
		pacer:    FixedDelay{Delay: DefaultDelay},
		reporter: NewReporter(nil),
		recorder: nopRecorder{},
		newRunID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run creates one card per task on listID, in order. Only an unavailable target
// list or an invalid task aborts the run; every other failure is recorded in
// the summary. A cancelled context stops the loop before the next task.
func (o *Orchestrator) Run(ctx context.Context, sess *board.Session, listID string, tasks []task.Task) (Summary, error) {
	for i, t := range tasks {
		if err := t.Validate(); err != nil {
			return Summary{}, fmt.Errorf("task %d: %w", i+1, err)
		}
	}

	if err := ctx.Err(); err != nil {
		return Summary{}, fmt.Errorf("run interrupted before start: %w", err)
	}

	list, err := sess.Service.GetList(ctx, listID)
	if err == nil && list.BoardID != "" && list.BoardID != sess.BoardID {
		err = fmt.Errorf("list belongs to board %s: %w", list.BoardID, ErrWrongBoard)
	}
	if err != nil {
		lists, listErr := sess.Service.ListLists(ctx, sess.BoardID)
		o.reporter.ListUnavailable(listID, sess.BoardID, err, lists, listErr)
		return Summary{}, fmt.Errorf("list %s: %w: %w", listID, ErrListUnavailable, err)
	}
	o.reporter.ListFound(list)

	if err := ctx.Err(); err != nil {
		return Summary{}, fmt.Errorf("run interrupted before start: %w", err)
	}
	tags := task.UniqueTags(tasks)
	o.reporter.ResolvingLabels(len(tags))
	cache := o.resolver.ResolveAll(ctx, sess, tags, o.reporter.LabelResolved)
	if dropped := len(tags) - len(cache); dropped > 0 {
		log.Warn().Int("dropped", dropped).Msg("some labels could not be resolved")
	}

	startedAt := time.Now()
	summary := Summary{RunID: o.newRunID(), Total: len(tasks)}
	o.record("run started", o.recorder.RunStarted(ctx, RunInfo{
		ID:        summary.RunID,
		BoardID:   sess.BoardID,
		ListID:    listID,
		ListName:  list.Name,
		Total:     len(tasks),
		StartedAt: startedAt.UTC(),
	}))
	defer func() {
		log.Info().
			Str("run_id", summary.RunID).
			Int("created", summary.Created).
			Int("total", summary.Total).
			Dur("duration", time.Since(startedAt)).
			Msg("run finished")
	}()

	o.reporter.CreatingCards(len(tasks))
	var stopErr error
	// Journal writes are not cancelled with the run.
	recordCtx := context.WithoutCancel(ctx)
	for i, t := range tasks {
		if i > 0 {
			if err := o.pacer.Pace(ctx); err != nil {
				stopErr = err
				break
			}
		}
		if err := ctx.Err(); err != nil {
			stopErr = err
			break
		}
		outcome := o.createOne(ctx, sess, listID, i, len(tasks), t, cache)
		summary.add(outcome)
		o.record("task finished", o.recorder.TaskFinished(recordCtx, summary.RunID, outcome))
	}
	if stopErr == nil {
		stopErr = ctx.Err()
	}
	summary.Interrupted = stopErr != nil

	o.reporter.Summary(summary)
	o.record("run finished", o.recorder.RunFinished(recordCtx, summary))
	if stopErr != nil {
		return summary, fmt.Errorf("run interrupted after %d/%d tasks: %w", len(summary.Outcomes), summary.Total, stopErr)
	}
	return summary, nil
}

func (o *Orchestrator) createOne(ctx context.Context, sess *board.Session, listID string, idx, total int, t task.Task, cache map[string]string) Outcome {
	state, _ := task.StatePending.Advance(task.StateCreating)
	outcome := Outcome{Index: idx, Name: t.Name, LabelIDs: labelIDsFor(t.Tags, cache)}

	o.reporter.TaskStarted(idx+1, total, t.Name)
	res, err := o.creator.Create(ctx, sess, cards.Request{
		ListID:      listID,
		Name:        t.Name,
		Description: t.Description,
		LabelIDs:    outcome.LabelIDs,
		Items:       t.Checklist,
	})
	if err != nil {
		outcome.State, _ = state.Advance(task.StateFailed)
		outcome.Err = err
		log.Error().Err(err).Int("task", idx+1).Str("name", t.Name).Msg("card creation failed")
		o.reporter.TaskFailed(err)
		return outcome
	}
	outcome.State, _ = state.Advance(task.StateCreated)
	outcome.CardID = res.CardID
	outcome.LostItems = res.LostItems
	o.reporter.TaskCreated(res)
	return outcome
}

func (o *Orchestrator) record(what string, err error) {
	if err != nil {
		log.Warn().Err(err).Msgf("journal: %s", what)
	}
}

// labelIDsFor maps tags through cache, skipping unresolved tags and duplicate ids.
func labelIDsFor(tags []string, cache map[string]string) []string {
	var ids []string
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		id, ok := cache[tag]
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
