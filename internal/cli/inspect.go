package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hclayout/pkg/community"
	"github.com/matzehuels/hclayout/pkg/layout"
	"github.com/matzehuels/hclayout/pkg/pipeline"
)

// inspectCommand creates the inspect command, which prints per-level
// statistics without writing any file.
func (c *CLI) inspectCommand() *cobra.Command {
	var flags layoutFlags

	cmd := &cobra.Command{
		Use:   "inspect [graph]",
		Short: "Print the levels of the community hierarchy",
		Long: `Print the levels of the community hierarchy.

For every level the table shows the size of the graph that was clustered,
the number of communities found, how they were laid out and the modularity
of the clustering. The layout always runs; the cache is not used.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd, args[0], &flags)
		},
	}
	flags.register(cmd, false)
	return cmd
}

func (c *CLI) runInspect(cmd *cobra.Command, input string, flags *layoutFlags) error {
	ctx := cmd.Context()
	lopts, err := flags.options(cmd, *c.config)
	if err != nil {
		return err
	}
	opts := pipeline.Options{Input: input, Format: flags.format, Layout: lopts}

	runner := pipeline.NewRunner(nil, nil, inputLogger(ctx, input))
	prog := newProgress(runner.Logger)
	g, err := runner.Read(ctx, opts)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()
	restore := followLevels(spinner)
	l, err := runner.Layout(ctx, g, opts)
	restore()
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Laid out %d nodes", g.NodeCount()))

	resolution := c.config.Community.Resolution
	if cmd.Flags().Changed("resolution") {
		resolution = flags.resolution
	}

	fmt.Println(StyleTitle.Render(input))
	printKeyValue("Nodes", strconv.Itoa(g.NodeCount()))
	printKeyValue("Edges", strconv.Itoa(g.EdgeCount()))
	printKeyValue("Depth", strconv.Itoa(l.Depth()))
	if top, ok := l.TopLayout(); ok {
		printKeyValue("Radius", fmt.Sprintf("%.1f", top.Size.R))
	}
	printNewline()
	fmt.Println(levelTable(l, resolution))
	return nil
}

// levelTable renders one row per hierarchy level.
func levelTable(l *layout.Layout, resolution float64) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cell := lipgloss.NewStyle().Padding(0, 1)

	var rows [][]string
	for _, s := range l.Levels() {
		q := "-"
		if lg, clustering, ok := l.Level(s.Level); ok {
			q = fmt.Sprintf("%.3f", community.Quality(lg, clustering, resolution))
		}
		rows = append(rows, []string{
			strconv.Itoa(s.Level),
			strconv.Itoa(s.Nodes),
			strconv.Itoa(s.Edges),
			strconv.Itoa(s.Communities),
			strconv.Itoa(s.Physics),
			strconv.Itoa(s.Isolates),
			q,
			yesNo(s.CanCoarsen),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Level", "Nodes", "Edges", "Communities", "Physics", "Isolates", "Q", "Coarsen").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			if col == 7 && rows[row][col] == "no" {
				return cell.Foreground(colorDim)
			}
			return cell.Foreground(colorWhite)
		})
	return t.Render()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
