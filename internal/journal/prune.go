package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// RetentionPolicy controls journal cleanup. Zero values disable a rule.
type RetentionPolicy struct {
	KeepLast int
	KeepDays int
}

// Enabled reports whether any rule is set.
func (p RetentionPolicy) Enabled() bool {
	return p.KeepLast > 0 || p.KeepDays > 0
}

// PruneResult summarizes a prune.
type PruneResult struct {
	Considered int
	Kept       int
	Deleted    int
}

// Prune deletes runs outside the retention policy. A run is kept when it is
// still running, among the KeepLast newest, or younger than KeepDays. Runs with
// an unparsable timestamp are kept.
func (s *Store) Prune(ctx context.Context, policy RetentionPolicy, dryRun bool) (PruneResult, error) {
	if !policy.Enabled() {
		return PruneResult{}, nil
	}
	cutoff := time.Time{}
	if policy.KeepDays > 0 {
		cutoff = s.now().UTC().Add(-time.Duration(policy.KeepDays) * 24 * time.Hour)
	}

	runs, err := s.ListRuns(ctx, 0)
	if err != nil {
		return PruneResult{}, err
	}

	res := PruneResult{Considered: len(runs)}
	var doomed []string
	for idx, r := range runs {
		keep := r.Status == StatusRunning
		if !keep && policy.KeepLast > 0 && idx < policy.KeepLast {
			keep = true
		}
		if !keep && policy.KeepDays > 0 {
			created, perr := time.Parse(time.RFC3339, r.CreatedAt)
			keep = perr != nil || created.After(cutoff)
		}
		if keep {
			res.Kept++
			continue
		}
		doomed = append(doomed, r.ID)
	}
	res.Deleted = len(doomed)
	if dryRun || len(doomed) == 0 {
		return res, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PruneResult{}, fmt.Errorf("begin prune: %w", err)
	}
	for _, id := range doomed {
		if _, err := tx.ExecContext(ctx, `DELETE FROM run_tasks WHERE run_id=?`, id); err != nil {
			_ = tx.Rollback()
			return PruneResult{}, fmt.Errorf("delete tasks of %s: %w", id, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE run_id=?`, id); err != nil {
			_ = tx.Rollback()
			return PruneResult{}, fmt.Errorf("delete run %s: %w", id, err)
		}
		log.Debug().Str("run_id", id).Msg("journal run pruned")
	}
	if err := tx.Commit(); err != nil {
		return PruneResult{}, fmt.Errorf("commit prune: %w", err)
	}
	return res, nil
}
