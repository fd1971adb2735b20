// Command csvmerge merges delimited text files from the command line.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/csvmerge/csvmerge/internal/core"
	"github.com/csvmerge/csvmerge/internal/logging"
	"github.com/spf13/cobra"
)

// options collects every CLI flag so the run path is testable without cobra.
type options struct {
	inputs    []string
	pattern   string
	output    string
	delimiter string
	encoding  string
	mode      string
	how       string
	addSource bool
	dedupe    bool
	verbose   bool
}

var opts options

// rootCmd is the single csvmerge command.
var rootCmd = &cobra.Command{
	Use:   "csvmerge [inputs...]",
	Short: "Merge delimited text files into one table",
	Long: `csvmerge merges multiple delimited text files (CSV, TSV, ...) into a
single output file.

Inputs may be files, directories, or glob patterns; directories are expanded
with --pattern. Delimiter and encoding are detected per file unless fixed
with -d / --encoding.

Modes:
  fast   require identical column order in every file (default)
  smart  reconcile diverging columns with --how union|intersection|strict`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		o := opts
		o.inputs = append(o.inputs, args...)
		return run(cmd.Context(), cmd.OutOrStdout(), o)
	},
}

func init() {
	rootCmd.Flags().StringSliceVarP(&opts.inputs, "input", "i", nil, "input file, directory, or glob (repeatable)")
	rootCmd.Flags().StringVar(&opts.pattern, "pattern", "*.csv", "filename pattern used when an input is a directory")
	rootCmd.Flags().StringVarP(&opts.output, "output", "o", "merged.csv", "output file path")
	rootCmd.Flags().StringVarP(&opts.delimiter, "delimiter", "d", "auto", "field delimiter: auto, ',', ';', tab, or '|'")
	rootCmd.Flags().StringVar(&opts.encoding, "encoding", "auto", "text encoding: auto, utf-8-sig, utf-8, cp1252, latin1")
	rootCmd.Flags().StringVar(&opts.mode, "mode", "fast", "merge mode: fast or smart")
	rootCmd.Flags().StringVar(&opts.how, "how", "union", "smart-mode column strategy: union, intersection, or strict")
	rootCmd.Flags().BoolVar(&opts.addSource, "add-source", false, "add a _source_file column recording each row's origin")
	rootCmd.Flags().BoolVar(&opts.dedupe, "dedupe", false, "drop duplicate rows after merging (smart mode)")
	rootCmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
}

// run executes one merge: discover, read, merge, write, summarize.
func run(ctx context.Context, stdout io.Writer, o options) error {
	level := "warn"
	if o.verbose {
		level = "debug"
	}
	logging.Setup(level, "text")

	mode, err := core.ParseMode(o.mode)
	if err != nil {
		return err
	}
	how, err := core.ParseStrategy(o.how)
	if err != nil {
		return err
	}
	delim, err := core.ParseDelimiterOption(o.delimiter)
	if err != nil {
		return err
	}
	enc, err := core.ParseEncodingOption(o.encoding)
	if err != nil {
		return err
	}

	paths, err := discoverInputs(o.inputs, o.pattern)
	if err != nil {
		return err
	}

	inputs := make([]core.Input, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		inputs = append(inputs, core.Input{Name: filepath.Base(path), Data: data})
	}

	service := core.NewService(0)
	result, err := service.Merge(ctx, inputs, core.MergeOptions{
		Mode:            mode,
		How:             how,
		Delimiter:       delim,
		Encoding:        enc,
		AddSourceColumn: o.addSource,
		Dedupe:          o.dedupe,
	})
	if err != nil {
		return err
	}

	if dir := filepath.Dir(o.output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(o.output, result.Output, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", o.output, err)
	}

	fmt.Fprintf(stdout, "merged %d file(s) into %s: %d rows, %d columns (delimiter %q, mode %s)\n",
		len(paths), o.output, result.Rows(), result.Columns(),
		string(result.OutputDelimiter), mode)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "csvmerge:", err)
		os.Exit(1)
	}
}
