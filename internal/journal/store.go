package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/metalagman/boardfill/internal/batch"
)

// Run statuses.
const (
	StatusRunning     = "running"
	StatusCompleted   = "completed"
	StatusInterrupted = "interrupted"
)

// ErrRunNotFound is returned for unknown run ids.
var ErrRunNotFound = errors.New("run not found")

// Store records runs. It implements batch.Recorder.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

var _ batch.Recorder = (*Store)(nil)

// NewStore wraps an open journal database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// RunRecord is a journaled run.
type RunRecord struct {
	ID         string
	CreatedAt  string
	FinishedAt string
	BoardID    string
	ListID     string
	ListName   string
	Status     string
	Total      int
	Created    int
	Failed     int
}

// TaskRecord is a journaled task outcome.
type TaskRecord struct {
	Index      int
	Name       string
	State      string
	CardID     string
	LabelIDs   []string
	LostItems  []string
	Error      string
	RecordedAt string
}

// RunStarted inserts the run row.
func (s *Store) RunStarted(ctx context.Context, run batch.RunInfo) error {
	createdAt := run.StartedAt
	if createdAt.IsZero() {
		createdAt = s.now()
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO runs(run_id, created_at, board_id, list_id, list_name, status, total)
		VALUES(?, ?, ?, ?, ?, ?, ?)`,
		run.ID, createdAt.UTC().Format(time.RFC3339), run.BoardID, run.ListID, run.ListName, StatusRunning, run.Total)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// TaskFinished inserts one task outcome.
func (s *Store) TaskFinished(ctx context.Context, runID string, o batch.Outcome) error {
	var errText any
	if o.Err != nil {
		errText = o.Err.Error()
	}
	lost, err := encodeItems(o.LostItems)
	if err != nil {
		return fmt.Errorf("encode lost items of task %d: %w", o.Index, err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO run_tasks(run_id, task_index, name, state, card_id, label_ids, lost_items, error, recorded_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, o.Index, o.Name, o.State.String(), nullableString(o.CardID),
		strings.Join(o.LabelIDs, ","), lost, errText,
		s.now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert task %d: %w", o.Index, err)
	}
	return nil
}

// RunFinished stores the final counts.
func (s *Store) RunFinished(ctx context.Context, sum batch.Summary) error {
	status := StatusCompleted
	if sum.Interrupted || len(sum.Outcomes) < sum.Total {
		status = StatusInterrupted
	}
	res, err := s.db.ExecContext(ctx, `UPDATE runs SET status=?, created=?, failed=?, finished_at=? WHERE run_id=?`,
		status, sum.Created, sum.Failed, s.now().UTC().Format(time.RFC3339), sum.RunID)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update run %s: %w", sum.RunID, ErrRunNotFound)
	}
	return nil
}

// ListRuns returns the newest runs first. limit <= 0 returns all runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	query := `SELECT run_id, created_at, COALESCE(finished_at, ''), board_id, list_id, list_name, status, total, created, failed
		FROM runs ORDER BY created_at DESC, rowid DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.FinishedAt, &r.BoardID, &r.ListID, &r.ListName, &r.Status, &r.Total, &r.Created, &r.Failed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return out, nil
}

// Run returns one run and its task outcomes in task order.
func (s *Store) Run(ctx context.Context, runID string) (RunRecord, []TaskRecord, error) {
	var r RunRecord
	err := s.db.QueryRowContext(ctx, `SELECT run_id, created_at, COALESCE(finished_at, ''), board_id, list_id, list_name, status, total, created, failed
		FROM runs WHERE run_id=?`, runID).
		Scan(&r.ID, &r.CreatedAt, &r.FinishedAt, &r.BoardID, &r.ListID, &r.ListName, &r.Status, &r.Total, &r.Created, &r.Failed)
	if errors.Is(err, sql.ErrNoRows) {
		return RunRecord{}, nil, fmt.Errorf("%s: %w", runID, ErrRunNotFound)
	}
	if err != nil {
		return RunRecord{}, nil, fmt.Errorf("get run: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT task_index, name, state, COALESCE(card_id, ''), label_ids, lost_items, COALESCE(error, ''), recorded_at
		FROM run_tasks WHERE run_id=? ORDER BY task_index`, runID)
	if err != nil {
		return RunRecord{}, nil, fmt.Errorf("list run tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []TaskRecord
	for rows.Next() {
		var t TaskRecord
		var labelIDs, lost string
		if err := rows.Scan(&t.Index, &t.Name, &t.State, &t.CardID, &labelIDs, &lost, &t.Error, &t.RecordedAt); err != nil {
			return RunRecord{}, nil, fmt.Errorf("scan run task: %w", err)
		}
		t.LabelIDs = splitNonEmpty(labelIDs, ",")
		if t.LostItems, err = decodeItems(lost); err != nil {
			return RunRecord{}, nil, fmt.Errorf("decode lost items of task %d: %w", t.Index, err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return RunRecord{}, nil, fmt.Errorf("iterate run tasks: %w", err)
	}
	return r, tasks, nil
}

func nullableString(v string) any {
	if v == "" {
		return nil
	}
	return v
}

func splitNonEmpty(s, sep string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, sep)
}

// encodeItems stores checklist items as a JSON array; no items is "".
func encodeItems(items []string) (string, error) {
	if len(items) == 0 {
		return "", nil
	}
	return sonic.MarshalString(items)
}

func decodeItems(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var items []string
	if err := sonic.UnmarshalString(s, &items); err != nil {
		return nil, err
	}
	return items, nil
}
