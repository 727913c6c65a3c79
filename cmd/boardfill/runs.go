package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/metalagman/boardfill/internal/journal"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func runsCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "runs [run-id]",
		Short: "Show journaled runs, or the task outcomes of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, closeFn, err := openJournal(cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				run, tasks, err := store.Run(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printRun(out, run, tasks)
				return nil
			}
			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			printRuns(out, runs)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "show at most N runs (0 for all)")
	cmd.AddCommand(runsPruneCmd())
	return cmd
}

func runsPruneCmd() *cobra.Command {
	var keepLast int
	var keepDays int
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete old runs from the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			policy := journal.RetentionPolicy{KeepLast: keepLast, KeepDays: keepDays}
			if !policy.Enabled() {
				policy = journal.RetentionPolicy{
					KeepLast: cfg.Retention.KeepLast,
					KeepDays: cfg.Retention.KeepDays,
				}
			}
			if !policy.Enabled() {
				return fmt.Errorf("set --keep-last or --keep-days (or configure retention in %s)", viperConfigPath())
			}

			lock, err := journal.TryLock(cfg.Journal.Path)
			if err != nil {
				return err
			}
			defer func() { _ = lock.Release() }()

			store, closeFn, err := openJournal(cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			res, err := store.Prune(cmd.Context(), policy, dryRun)
			if err != nil {
				return err
			}
			mode := "deleted"
			if dryRun {
				mode = "would delete"
			}
			log.Info().Msgf("%s %d runs (kept %d of %d)", mode, res.Deleted, res.Kept, res.Considered)
			return nil
		},
	}
	cmd.Flags().IntVar(&keepLast, "keep-last", 0, "keep the newest N runs")
	cmd.Flags().IntVar(&keepDays, "keep-days", 0, "keep runs newer than N days")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would be pruned without deleting")
	return cmd
}

var headerStyle = lipgloss.NewStyle().Bold(true)

func printRuns(out io.Writer, runs []journal.RunRecord) {
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs recorded")
		return
	}
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle()
		}).
		Headers("RUN", "STARTED", "STATUS", "CREATED", "LIST")
	for _, r := range runs {
		t.Row(r.ID, r.CreatedAt, r.Status, fmt.Sprintf("%d/%d", r.Created, r.Total), listLabel(r.ListName, r.ListID))
	}
	fmt.Fprintln(out, t.String())
}

func printRun(out io.Writer, run journal.RunRecord, tasks []journal.TaskRecord) {
	fmt.Fprintf(out, "Run %s (%s)\n", run.ID, run.Status)
	fmt.Fprintf(out, "Board %s, list %s\n", run.BoardID, listLabel(run.ListName, run.ListID))
	fmt.Fprintf(out, "Started %s", run.CreatedAt)
	if run.FinishedAt != "" {
		fmt.Fprintf(out, ", finished %s", run.FinishedAt)
	}
	fmt.Fprintf(out, "\nCreated %d/%d cards\n\n", run.Created, run.Total)

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("#", "TASK", "STATE", "CARD", "NOTE")
	for _, tr := range tasks {
		note := tr.Error
		if note == "" && len(tr.LostItems) > 0 {
			note = "lost items: " + strings.Join(tr.LostItems, "; ")
		}
		t.Row(strconv.Itoa(tr.Index+1), tr.Name, tr.State, tr.CardID, note)
	}
	fmt.Fprintln(out, t.String())
}

func listLabel(name, id string) string {
	if name == "" {
		return id
	}
	return fmt.Sprintf("%s (%s)", name, id)
}
