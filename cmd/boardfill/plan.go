package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/metalagman/boardfill/internal/catalog"
	"github.com/metalagman/boardfill/internal/config"
	"github.com/metalagman/boardfill/internal/labels"
	"github.com/metalagman/boardfill/internal/task"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	outputMarkdown = "markdown"
	outputYAML     = "yaml"
)

// planDoc is the YAML form of a plan.
type planDoc struct {
	Board  string      `yaml:"board"`
	List   string      `yaml:"list"`
	Labels []planLabel `yaml:"labels"`
	Tasks  []task.Task `yaml:"tasks"`
}

type planLabel struct {
	Tag    string `yaml:"tag"`
	Color  string `yaml:"color"`
	Mapped bool   `yaml:"mapped"`
}

func planCmd() *cobra.Command {
	var (
		boardID string
		listID  string
		output  string
		raw     bool
	)
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the cards a run would create, without calling Trello",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			applyTargetFlags(&cfg, boardID, listID)
			return writePlan(cmd.OutOrStdout(), cfg, catalog.Tasks(), output, raw)
		},
	}
	addTargetFlags(cmd, &boardID, &listID)
	cmd.Flags().StringVarP(&output, "output", "o", outputMarkdown, "output format: markdown or yaml")
	cmd.Flags().BoolVar(&raw, "raw", false, "print markdown without terminal rendering")
	return cmd
}

func writePlan(out io.Writer, cfg config.Config, tasks []task.Task, output string, raw bool) error {
	colors := catalog.Colors().WithFallback(cfg.Board.FallbackColor)
	switch output {
	case outputYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(buildPlan(cfg, tasks, colors)); err != nil {
			return fmt.Errorf("encode plan: %w", err)
		}
		return enc.Close()
	case outputMarkdown:
		md := planMarkdown(cfg, tasks, colors)
		if !raw {
			rendered, err := renderMarkdown(out, md)
			if err != nil {
				return err
			}
			md = rendered
		}
		_, err := io.WriteString(out, md)
		return err
	default:
		return fmt.Errorf("unknown output format %q (want %s or %s)", output, outputMarkdown, outputYAML)
	}
}

func buildPlan(cfg config.Config, tasks []task.Task, colors labels.ColorTable) planDoc {
	doc := planDoc{Board: cfg.Board.ID, List: cfg.Board.ListID, Tasks: tasks}
	for _, tag := range task.UniqueTags(tasks) {
		doc.Labels = append(doc.Labels, planLabel{
			Tag:    tag,
			Color:  colors.ColorFor(tag).String(),
			Mapped: colors.Mapped(tag),
		})
	}
	return doc
}

func planMarkdown(cfg config.Config, tasks []task.Task, colors labels.ColorTable) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %d cards for list `%s`\n\n", len(tasks), cfg.Board.ListID)
	fmt.Fprintf(&b, "Board `%s`, checklist **%s**.\n\n", cfg.Board.ID, cfg.Board.ChecklistName)

	b.WriteString("## Labels\n\n| Tag | Color |\n| --- | --- |\n")
	for _, tag := range task.UniqueTags(tasks) {
		color := colors.ColorFor(tag).String()
		if !colors.Mapped(tag) {
			color += " (fallback)"
		}
		fmt.Fprintf(&b, "| %s | %s |\n", tag, color)
	}

	for i, t := range tasks {
		fmt.Fprintf(&b, "\n## %d. %s\n\n", i+1, t.Name)
		if len(t.Tags) > 0 {
			fmt.Fprintf(&b, "Labels: %s\n\n", strings.Join(t.Tags, ", "))
		}
		b.WriteString(strings.TrimSpace(t.Description))
		b.WriteString("\n")
		if len(t.Checklist) > 0 {
			b.WriteString("\n")
			for _, item := range t.Checklist {
				fmt.Fprintf(&b, "- [ ] %s\n", item)
			}
		}
	}
	return b.String()
}

func renderMarkdown(out io.Writer, md string) (string, error) {
	style := glamour.WithStandardStyle(styles.NoTTYStyle)
	if f, ok := out.(*os.File); ok {
		if info, err := f.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
			style = glamour.WithAutoStyle()
		}
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(100))
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	rendered, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render plan: %w", err)
	}
	return rendered, nil
}
