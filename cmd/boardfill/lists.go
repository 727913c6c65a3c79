package main

import (
	"fmt"

	"github.com/metalagman/boardfill/internal/board"
	"github.com/spf13/cobra"
)

func listsCmd() *cobra.Command {
	var boardID string
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Print the open lists of the board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			applyTargetFlags(&cfg, boardID, "")

			svc, err := trelloService(cfg)
			if err != nil {
				return err
			}
			sess := board.NewSession(svc, cfg.Board.ID)
			defer func() { _ = sess.Close() }()

			lists, err := sess.Service.ListLists(cmd.Context(), sess.BoardID)
			if err != nil {
				return fmt.Errorf("list board lists: %w", err)
			}
			out := cmd.OutOrStdout()
			for _, l := range lists {
				marker := " "
				if l.ID == cfg.Board.ListID {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %s  %s\n", marker, l.ID, l.Name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&boardID, "board", "", "board id (overrides board.id)")
	return cmd
}
