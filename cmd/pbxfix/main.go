// Package main provides pbxfix, which repoints the local package reference of
// an Xcode project at the SDK root.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/metalagman/boardfill/internal/logging"
	"github.com/metalagman/boardfill/internal/manifest"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var okStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var debug bool
	cmd := &cobra.Command{
		Use:   "pbxfix <project-dir> [relative-path]",
		Short: "Point the local package reference of an Xcode project at the SDK root",
		Long: "Back up <project-dir>/" + manifest.FileName + " and rewrite every relativePath entry to " +
			"relative-path (default " + manifest.DefaultRelativePath + ").",
		Args:         cobra.RangeArgs(1, 2),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Init(debug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			relativePath := ""
			if len(args) == 2 {
				relativePath = args[1]
			}
			return patch(cmd.OutOrStdout(), args[0], relativePath)
		},
	}
	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")
	return cmd
}

func patch(out io.Writer, projectDir, relativePath string) error {
	fmt.Fprintf(out, "Fixing package reference in %s\n", manifest.Path(projectDir))
	res, err := manifest.Patch(projectDir, relativePath)
	if err != nil {
		return err
	}
	if relativePath == "" {
		relativePath = manifest.DefaultRelativePath
	}
	log.Debug().Str("manifest", res.ManifestPath).Int("replaced", res.Replaced).Msg("manifest patched")

	fmt.Fprintf(out, "Backup written to %s\n", res.BackupPath)
	if res.Replaced == 0 {
		fmt.Fprintln(out, "No relativePath entries found; manifest left unchanged.")
	} else {
		fmt.Fprintf(out, "%s Set %d relativePath entries to %s\n", okStyle.Render("Fixed!"), res.Replaced, relativePath)
	}
	fmt.Fprintln(out, "\nNext steps:")
	for i, step := range manifest.FollowUp {
		fmt.Fprintf(out, "%d. %s\n", i+1, step)
	}
	return nil
}
