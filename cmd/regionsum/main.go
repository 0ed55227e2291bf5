// Command regionsum summarizes CSV files by region from the command line.
//
// It prints the same JSON document the server returns from POST /analyze,
// one document per input:
//
//	regionsum logins.csv other.csv
//	cat logins.csv | regionsum --pretty
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JonMunkholm/RegionAnalyzer/internal/core"
	"github.com/JonMunkholm/RegionAnalyzer/internal/logging"
	"github.com/spf13/cobra"
)

// stdinArg names standard input on the command line.
const stdinArg = "-"

type options struct {
	pretty  bool
	verbose bool
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "regionsum [file ...]",
		Short: "Summarize CSV rows by region",
		Long: `Counts the rows of each CSV file per distinct value of its "region" column
and classifies every count as Low (<= 500), Medium (<= 1000) or High.

With no file, or when a file is "-", standard input is read. "-" may be
given at most once.`,
		SilenceUsage: true,
		Args:         singleStdin,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "indent JSON output")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log per-file statistics to stderr")

	return cmd
}

// singleStdin rejects a repeated "-": stdin can only be consumed once.
func singleStdin(_ *cobra.Command, args []string) error {
	seen := false
	for _, a := range args {
		if a != stdinArg {
			continue
		}
		if seen {
			return fmt.Errorf("stdin (%q) may be given only once", stdinArg)
		}
		seen = true
	}
	return nil
}

func run(cmd *cobra.Command, args []string, opts options) error {
	if len(args) == 0 {
		args = []string{stdinArg}
	}

	level := "warn"
	if opts.verbose {
		level = "debug"
	}
	logger := logging.New(cmd.ErrOrStderr(), level, "text")

	enc := json.NewEncoder(cmd.OutOrStdout())
	if opts.pretty {
		enc.SetIndent("", "  ")
	}

	failed := 0
	for _, name := range args {
		report, err := summarizeInput(cmd.Context(), cmd.InOrStdin(), name, logger)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "regionsum: %s: %v\n", displayName(name), err)
			failed++
			continue
		}
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(args))
	}
	return nil
}

// summarizeInput reads one named input ("-" for stdin) and builds its report.
func summarizeInput(ctx context.Context, stdin io.Reader, name string, logger *slog.Logger) (core.Report, error) {
	r := stdin
	if name != stdinArg {
		f, err := os.Open(name)
		if err != nil {
			return core.Report{}, err
		}
		defer f.Close()
		r = f
	}

	start := time.Now()
	tally, err := core.CountRegions(ctx, r)
	if err != nil {
		return core.Report{}, err
	}

	logger.Debug("summarized",
		"file", displayName(name),
		"rows", tally.Rows,
		"unkeyed_rows", tally.Unkeyed,
		"regions", tally.Len(),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return tally.Report(), nil
}

func displayName(name string) string {
	if name == stdinArg {
		return "<stdin>"
	}
	return name
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
