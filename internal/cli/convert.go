package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phoscity/svg2cetz/pkg/convert"
	"github.com/phoscity/svg2cetz/pkg/pipeline"
)

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var (
		output    string
		noCache   bool
		idsStr    string
		markerStr string
		precision = pipeline.DefaultPrecision
	)
	opts := pipeline.Options{
		Wrap:        pipeline.DefaultWrap,
		DefaultFont: pipeline.DefaultFontName,
	}

	cmd := &cobra.Command{
		Use:   "convert [input.svg]",
		Short: "Convert an SVG document to a CeTZ canvas block",
		Long: `Convert an SVG document to a CeTZ canvas block.

The convert command reads an SVG file (use "-" for stdin), measures the
selected elements with Inkscape, and writes a block of CeTZ code ready to
paste into a Typst document.

By default the whole document converts; --select restricts the run to a
comma-separated list of element ids. Bounding-box measurements are cached
locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("read config: %w", err)
			}
			opts.Marker = convert.MarkerPolicy(markerStr)
			opts.Precision = &precision
			cfg.apply(&opts, cmd.Flags().Changed)
			opts.IDs = splitIDs(idsStr)
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			return c.runConvert(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable bounding-box caching")
	cmd.Flags().StringVarP(&idsStr, "select", "s", "", "element ids to convert (comma-separated)")

	cmd.Flags().IntVarP(&precision, "precision", "p", precision, "decimal digits for coordinates")
	cmd.Flags().StringVarP(&opts.Wrap, "wrap", "w", opts.Wrap, "output wrapping: none (default), figure, align")
	cmd.Flags().BoolVar(&opts.IgnoreFont, "ignore-font", opts.IgnoreFont, "omit font clauses from text output")
	cmd.Flags().StringVar(&opts.DefaultFont, "default-font", opts.DefaultFont, "replacement for generic font families")
	cmd.Flags().StringVar(&markerStr, "marker", string(pipeline.DefaultMarkerPolicy),
		fmt.Sprintf("unknown-marker policy: %s, %s", convert.MarkerFallback, convert.MarkerSkipUnknown))

	return cmd
}

// runConvert executes the conversion pipeline and writes the result.
func (c *CLI) runConvert(ctx context.Context, path string, opts pipeline.Options, output string, noCache bool) error {
	in, err := openInput(path)
	if err != nil {
		return err
	}
	defer in.Close()

	runner := c.newRunner(noCache)
	prog := newProgress(c.Logger)

	spinner := newSpinnerWithContext(ctx, "Measuring selection...")
	spinner.Start()
	result, err := runner.Run(ctx, in, opts)
	spinner.Stop()
	if err != nil {
		return err
	}
	if result.Empty {
		printInfo("Nothing to convert")
		return nil
	}
	prog.done(fmt.Sprintf("Converted %d elements", result.Stats.Elements))

	code := strings.Join(result.Lines, "\n") + "\n"
	if output == "" {
		fmt.Print(code)
		return nil
	}
	if err := os.WriteFile(output, []byte(code), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	printSuccess("Wrote CeTZ block")
	printFile(output)
	printStats(result.Stats.Elements, result.CacheHit)
	return nil
}

// openInput opens the named file, or stdin when path is "-".
func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return f, nil
}

// splitIDs parses a comma-separated id list, dropping empty entries.
func splitIDs(s string) []string {
	var ids []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
