package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/reflow/pkg/pipeline"
)

// runOptions holds the flags of the run command.
type runOptions struct {
	script  string
	json    string
	svg     string
	dot     string
	png     string
	pdf     string
	labels  bool
	edges   bool
	scale   float64
	refresh bool
	quiet   bool
	cache   cacheFlags
}

// outputs maps each requested format to its destination path.
func (o *runOptions) outputs() map[string]string {
	out := make(map[string]string)
	for format, path := range map[string]string{
		pipeline.FormatJSON: o.json,
		pipeline.FormatSVG:  o.svg,
		pipeline.FormatDOT:  o.dot,
		pipeline.FormatPNG:  o.png,
		pipeline.FormatPDF:  o.pdf,
	} {
		if path != "" {
			out[format] = path
		}
	}
	return out
}

func (c *CLI) runCommand() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run SCENE",
		Short: "Lay out a scene and replay an edit script",
		Long: `Lay out a scene file (TOML, YAML or JSON), replay an optional edit script
and print the rectangles every generation changed.

Each "recompute" statement in the script runs one generation; a final
generation runs after the last statement.`,
		Example: `  reflow run window.toml
  reflow run window.toml --script edits.reflow -o layout.json --svg layout.svg`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: sceneArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRun(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.script, "script", "s", "", "edit script to replay")
	cmd.Flags().StringVarP(&opts.json, "output", "o", "", "write the JSON snapshot to this file")
	cmd.Flags().StringVar(&opts.svg, "svg", "", "write an SVG drawing to this file")
	cmd.Flags().StringVar(&opts.dot, "dot", "", "write Graphviz DOT with pinned positions to this file")
	cmd.Flags().StringVar(&opts.png, "png", "", "write a PNG drawing to this file (requires rsvg-convert)")
	cmd.Flags().StringVar(&opts.pdf, "pdf", "", "write a PDF drawing to this file (requires rsvg-convert)")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "label boxes with their ids")
	cmd.Flags().BoolVar(&opts.edges, "edges", false, "draw parent to child edges in DOT output")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "pixels per layout unit")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if the run is cached")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "do not print the changed rectangles")
	opts.cache.register(cmd)
	completeScriptFlag(cmd)

	return cmd
}

func (c *CLI) runRun(ctx context.Context, scenePath string, opts runOptions) error {
	runner, err := c.newRunner(ctx, opts.cache)
	if err != nil {
		return err
	}
	defer runner.Close()

	outputs := opts.outputs()
	formats := make([]string, 0, len(outputs))
	for f := range outputs {
		formats = append(formats, f)
	}
	slices.Sort(formats)

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Laying out "+filepath.Base(scenePath))
	spinner.Start()
	res, err := runner.Run(ctx, pipeline.Options{
		ScenePath:  scenePath,
		ScriptPath: opts.script,
		Refresh:    opts.refresh,
		Formats:    formats,
		Scale:      opts.scale,
		Labels:     opts.labels,
		Edges:      opts.edges,
		Logger:     c.Logger,
	})
	spinner.Stop()
	if err != nil {
		return err
	}

	if !opts.quiet {
		for _, g := range res.Generations() {
			printGeneration(g)
		}
	}
	printStats(len(res.Snapshot.Rects), res.Stats.Generations, res.CacheInfo.RunHit)

	for _, format := range formats {
		path := outputs[format]
		if err := os.WriteFile(path, res.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	prog.done("Laid out " + filepath.Base(scenePath))
	return nil
}
