package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowlayout/pkg/pipeline"
	"github.com/matzehuels/flowlayout/pkg/sink"
)

// layoutFlags holds the command-line flags for the layout command.
type layoutFlags struct {
	output      string
	formats     string
	noCache     bool
	refresh     bool
	concurrency int
	width       int
	widthMode   string
	height      int
	heightMode  string
	hgap        int
	vgap        int
}

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var f layoutFlags

	cmd := &cobra.Command{
		Use:   "layout <document>...",
		Short: "Compute flow layouts for documents",
		Long: `Compute flow layouts for one or more documents (.json or .toml).

Each document's items are measured against its width and height constraints,
packed into rows and positioned. Outputs are written next to the input as
<input>.layout.<ext>; the table format prints to stdout.

Flags override the document's settings, which in turn override defaults
from the config file. Results are cached locally for faster subsequent runs.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.layoutOptions(cmd, f)
			if err != nil {
				return err
			}
			if f.output != "" && (len(args) > 1 || len(opts.Formats) > 1) {
				return fmt.Errorf("--output needs a single document and a single format")
			}
			return c.runLayout(cmd.Context(), args, opts, f)
		},
	}

	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (default: <input>.layout.<ext>)")
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): json (default), toml, table (comma-separated)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().IntVarP(&f.concurrency, "jobs", "j", pipeline.DefaultConcurrency, "documents laid out in parallel")
	cmd.Flags().IntVar(&f.width, "width", 0, "available width")
	cmd.Flags().StringVar(&f.widthMode, "width-mode", "", "width mode: exact, at_most, unspecified")
	cmd.Flags().IntVar(&f.height, "height", 0, "available height")
	cmd.Flags().StringVar(&f.heightMode, "height-mode", "", "height mode: exact, at_most, unspecified")
	cmd.Flags().IntVar(&f.hgap, "hgap", 0, "horizontal gap between items")
	cmd.Flags().IntVar(&f.vgap, "vgap", 0, "vertical gap between rows")

	return cmd
}

// layoutOptions merges config defaults with the flags the user set.
func (c *CLI) layoutOptions(cmd *cobra.Command, f layoutFlags) (pipeline.Options, error) {
	opts := c.Config.Layout.Options()
	flags := cmd.Flags()
	if flags.Changed("width") {
		opts.Width = &f.width
	}
	if flags.Changed("height") {
		opts.Height = &f.height
	}
	if flags.Changed("hgap") {
		opts.HorizontalGap = &f.hgap
	}
	if flags.Changed("vgap") {
		opts.VerticalGap = &f.vgap
	}
	if f.widthMode != "" {
		opts.WidthMode = f.widthMode
	}
	if f.heightMode != "" {
		opts.HeightMode = f.heightMode
	}
	opts.Formats = parseFormats(f.formats)
	opts.Refresh = f.refresh
	opts.Concurrency = f.concurrency
	opts.Logger = c.Logger
	return opts, opts.ValidateAndSetDefaults()
}

// runLayout lays out every input and writes the outputs.
func (c *CLI) runLayout(ctx context.Context, inputs []string, opts pipeline.Options, f layoutFlags) error {
	runner, err := c.newRunner(ctx, f.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	batch := make([]pipeline.Input, len(inputs))
	for i, in := range inputs {
		batch[i] = pipeline.Input{Path: in}
	}

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Laying out %d document(s)...", len(inputs)))
	spinner.Start()

	results, err := runner.ExecuteBatch(ctx, batch, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	for _, res := range results {
		if err := writeArtifacts(res, opts.Formats, f.output); err != nil {
			return err
		}
	}
	prog.done(fmt.Sprintf("Laid out %d document(s)", len(results)))

	if len(results) == 1 {
		printNewline()
		printNextStep("Explore", appName+" explore "+results[0].Source)
	}
	return nil
}

// writeArtifacts writes one result's artifacts and reports them.
func writeArtifacts(res *pipeline.Result, formats []string, output string) error {
	printSuccess("%s %s", res.Source, StyleDim.Render(sink.Summary(res.Layout)))
	for _, format := range formats {
		data := res.Artifacts[format]
		if format == sink.FormatTable && output == "" {
			fmt.Print(string(data))
			continue
		}
		path := outputPath(res.Source, format, output)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(res.Stats, res.CacheInfo.LayoutHit)
	return nil
}
