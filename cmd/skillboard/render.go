package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/skillboard/internal/observability"
	"github.com/jonathan/skillboard/internal/rendering"
	"github.com/jonathan/skillboard/internal/selection"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the skill board for one selection",
	Long: "Renders the full page, or a single region with --region, for the given group and level " +
		"selection. Values are parsed the way click events are, so anything non-numeric matches nothing.",
	RunE: runRender,
}

var (
	renderSource sourceFlags
	renderGroup  string
	renderLevel  string
	renderRegion string
	renderTitle  string
	renderOutput string
	renderText   bool
)

func init() {
	renderSource.register(renderCmd)
	renderCmd.Flags().StringVarP(&renderGroup, "group", "g", "", "Group id to show (-1 or 0 for all)")
	renderCmd.Flags().StringVarP(&renderLevel, "level", "l", "", "Level filter: -2 all, -1 uninjected, 0 injected, 1-5 trained level")
	renderCmd.Flags().StringVarP(&renderRegion, "region", "r", "", "Render only this region (skillLevelListGroup, skillGroupListGroup, skillGroupDetails)")
	renderCmd.Flags().StringVar(&renderTitle, "title", "", "Page title")
	renderCmd.Flags().StringVarP(&renderOutput, "out", "o", "", "Output file (default stdout)")
	renderCmd.Flags().BoolVar(&renderText, "text", false, "Print the detail cards as plain text instead of HTML")

	rootCmd.AddCommand(renderCmd)
}

// renderSelection builds the selection from the --group and --level flags.
func renderSelection(cmd *cobra.Command) selection.Selection {
	sel := selection.Default()
	if cmd.Flags().Changed("group") {
		sel, _ = sel.SelectGroup(selection.ParseValue(renderGroup))
	}
	if cmd.Flags().Changed("level") {
		sel, _ = sel.SelectLevel(selection.ParseValue(renderLevel))
	}
	return sel
}

func runRender(cmd *cobra.Command, _ []string) error {
	cfg, err := renderSource.settings()
	if err != nil {
		return err
	}
	if renderTitle != "" {
		cfg.Title = renderTitle
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	source, closeSource, err := openSource(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer closeSource()

	dataset, err := source.Dataset(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read dataset: %w", err)
	}

	renderer, err := newRenderer(cfg, logger)
	if err != nil {
		return err
	}

	sel := renderSelection(cmd)
	logger.Debug("rendering", zap.Int("group", sel.GroupID), zap.Int("level", sel.Level), zap.String("region", renderRegion))

	if cfg.Verbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		printer.PrintDatasetSummary(dataset)
		printer.PrintSelection(sel, selection.Details(dataset, sel, logger))
	}

	var buf bytes.Buffer
	switch {
	case renderText:
		var markup bytes.Buffer
		if err := renderer.RenderRegion(&markup, selection.RegionDetails, dataset, sel); err != nil {
			return err
		}
		text, err := rendering.DetailsText(&markup)
		if err != nil {
			return err
		}
		buf.WriteString(text)

	case renderRegion != "":
		region, ok := selection.ParseRegion(renderRegion)
		if !ok {
			return fmt.Errorf("unknown region: %s", renderRegion)
		}
		if err := renderer.RenderRegion(&buf, region, dataset, sel); err != nil {
			return err
		}

	default:
		if err := renderer.RenderPage(&buf, rendering.PageData{Title: cfg.Title, Dataset: dataset, Selection: sel}); err != nil {
			return err
		}
	}

	return writeOutput(cmd.OutOrStdout(), renderOutput, buf.Bytes())
}

// writeOutput writes data to path, or to w when path is empty.
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
