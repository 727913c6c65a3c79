package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/metalagman/boardfill/internal/batch"
	"github.com/metalagman/boardfill/internal/board"
	"github.com/metalagman/boardfill/internal/cards"
	"github.com/metalagman/boardfill/internal/catalog"
	"github.com/metalagman/boardfill/internal/config"
	"github.com/metalagman/boardfill/internal/journal"
	"github.com/metalagman/boardfill/internal/labels"
	"github.com/metalagman/boardfill/internal/trello"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
)

// runGraph is what the run command needs once the app has started.
type runGraph struct {
	Session      *board.Session
	Orchestrator *batch.Orchestrator
}

// newRunApp wires the run command. service provides the board.Service; the
// CLI passes trelloService and tests pass a fake.
func newRunApp(cfg config.Config, out io.Writer, service any, graph *runGraph) *fx.App {
	return fx.New(
		fx.NopLogger,
		fx.Supply(cfg),
		fx.Provide(
			service,
			newSession,
			newRecorder,
			newPacer,
			newResolver,
			newCreator,
			func() *batch.Reporter { return batch.NewReporter(out) },
			newOrchestrator,
		),
		fx.Populate(&graph.Session, &graph.Orchestrator),
	)
}

func trelloService(cfg config.Config) (board.Service, error) {
	return trello.NewClient(trello.Config{
		BaseURL:   cfg.Trello.BaseURL,
		APIKeyEnv: cfg.Trello.APIKeyEnv,
		TokenEnv:  cfg.Trello.TokenEnv,
		Timeout:   cfg.Trello.Timeout,
	}, nil)
}

func newSession(lc fx.Lifecycle, cfg config.Config, svc board.Service) *board.Session {
	sess := board.NewSession(svc, cfg.Board.ID)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return sess.Close()
		},
	})
	return sess
}

// newRecorder locks and opens the journal when enabled. A held lock means
// another run is using the journal and fails the run; any other journal error
// is logged and the run proceeds without one.
func newRecorder(lc fx.Lifecycle, cfg config.Config) (batch.Recorder, error) {
	if !cfg.Journal.Enabled {
		return nil, nil
	}
	lock, err := journal.TryLock(cfg.Journal.Path)
	if errors.Is(err, journal.ErrLocked) {
		return nil, err
	}
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.Journal.Path).Msg("journal disabled")
		return nil, nil
	}
	db, err := journal.Open(cfg.Journal.Path)
	if err != nil {
		_ = lock.Release()
		log.Warn().Err(err).Str("path", cfg.Journal.Path).Msg("journal disabled")
		return nil, nil
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return errors.Join(db.Close(), lock.Release())
		},
	})
	return journal.NewStore(db), nil
}

func newPacer(cfg config.Config) (batch.Pacer, error) {
	return batch.NewPacer(cfg.Pacing.Policy, cfg.Pacing.Delay, cfg.Pacing.Burst)
}

func newResolver(cfg config.Config) *labels.Resolver {
	return labels.NewResolver(catalog.Colors().WithFallback(cfg.Board.FallbackColor))
}

func newCreator(cfg config.Config) *cards.Creator {
	return cards.NewCreator(cfg.Board.ChecklistName)
}

func newOrchestrator(resolver *labels.Resolver, creator *cards.Creator, pacer batch.Pacer, reporter *batch.Reporter, recorder batch.Recorder) *batch.Orchestrator {
	return batch.New(resolver, creator,
		batch.WithPacer(pacer),
		batch.WithReporter(reporter),
		batch.WithRecorder(recorder),
	)
}

// openJournal opens the journal store for the runs commands.
func openJournal(cfg config.Config) (*journal.Store, func(), error) {
	path := cfg.Journal.Path
	if _, err := os.Stat(path); err != nil {
		return nil, func() {}, fmt.Errorf("open journal: %w", err)
	}
	db, err := journal.Open(path)
	if err != nil {
		return nil, func() {}, err
	}
	return journal.NewStore(db), func() { _ = db.Close() }, nil
}
