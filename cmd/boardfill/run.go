package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/metalagman/boardfill/internal/catalog"
	"github.com/metalagman/boardfill/internal/config"
	"github.com/metalagman/boardfill/internal/task"
	"github.com/spf13/cobra"
)

const stopTimeout = 10 * time.Second

func runCmd() *cobra.Command {
	var (
		boardID   string
		listID    string
		noJournal bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Create the catalog cards on the target list",
		Long: "Create one card per catalog task on the target list. Tags become board labels, " +
			"created on demand, and each task's checklist is added to its card.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			applyTargetFlags(&cfg, boardID, listID)
			if noJournal {
				cfg.Journal.Enabled = false
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runBatch(ctx, cfg, cmd.OutOrStdout(), trelloService, catalog.Tasks())
		},
	}
	addTargetFlags(cmd, &boardID, &listID)
	cmd.Flags().BoolVar(&noJournal, "no-journal", false, "do not record the run in the local journal")
	return cmd
}

func addTargetFlags(cmd *cobra.Command, boardID, listID *string) {
	cmd.Flags().StringVar(boardID, "board", "", "board id (overrides board.id)")
	cmd.Flags().StringVar(listID, "list", "", "list id (overrides board.list_id)")
}

func applyTargetFlags(cfg *config.Config, boardID, listID string) {
	if boardID != "" {
		cfg.Board.ID = boardID
	}
	if listID != "" {
		cfg.Board.ListID = listID
	}
}

// runBatch starts the run graph, creates the cards and stops the graph, which
// closes the session and the journal. Per-card failures are reported in the
// summary and do not fail the command.
func runBatch(ctx context.Context, cfg config.Config, out io.Writer, service any, tasks []task.Task) error {
	var graph runGraph
	app := newRunApp(cfg, out, service, &graph)
	if err := app.Err(); err != nil {
		return fmt.Errorf("build run: %w", err)
	}
	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("start run: %w", err)
	}

	_, runErr := graph.Orchestrator.Run(ctx, graph.Session, cfg.Board.ListID, tasks)

	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), stopTimeout)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil && runErr == nil {
		return fmt.Errorf("stop run: %w", err)
	}
	return runErr
}
