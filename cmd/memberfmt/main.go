// Package main is the entry point for memberfmt.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/memberfmt/internal/logging"
	_ "github.com/donaldgifford/memberfmt/internal/rules" // Register rules via init().
	"github.com/donaldgifford/memberfmt/internal/runner"
)

// Build-time variables set via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// execute runs the root command with args and returns the process exit
// code.
func execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts := &runner.Options{}
	exitCode := runner.ExitOK
	var listRules bool

	cmd := &cobra.Command{
		Use:   "memberfmt [flags] [files or directories...]",
		Short: "Check and fix the ordering of C# type members",
		Long: `Check and fix the ordering of C# type members, enum members, object
initializers and parameter lists.

Directories are walked for *.cs files. With no arguments, source is read
from stdin and the fixed source is written to stdout. File arguments are
fixed in place unless --check or --diff is given.`,
		Version:       fmt.Sprintf("%s (%s) %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, paths []string) error {
			logging.Init(cmd.ErrOrStderr(), logging.Options{
				Verbose: opts.Verbose,
				Quiet:   opts.Quiet,
				NoColor: opts.NoColor,
			})
			opts.Paths = paths
			opts.Stdin = cmd.InOrStdin()
			opts.Stdout = cmd.OutOrStdout()
			opts.Stderr = cmd.ErrOrStderr()
			if listRules {
				exitCode = runner.ListRules(opts)
				return nil
			}
			exitCode = runner.Run(cmd.Context(), opts)
			return nil
		},
	}
	cmd.SetVersionTemplate("memberfmt {{.Version}}\n")

	flags := cmd.Flags()
	flags.BoolVar(&opts.Check, "check", false, "report diagnostics and exit 1 if any are found")
	flags.BoolVar(&opts.Diff, "diff", false, "print a unified diff of the fixes instead of writing them")
	flags.BoolVarP(&opts.Write, "write", "w", false, "write fixes to the files (default for file arguments; needs arguments)")
	flags.StringVar(&opts.ConfigPath, "config", "", "path to config file")
	flags.BoolVarP(&opts.Quiet, "quiet", "q", false, "suppress diagnostics and informational output")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "log files as they are processed")
	flags.IntVar(&opts.Jobs, "jobs", runtime.NumCPU(), "number of files processed in parallel")
	flags.BoolVar(&opts.NoColor, "no-color", false, "disable colored output")
	flags.BoolVar(&listRules, "list-rules", false, "list the rules with their configured levels and exit")
	cmd.MarkFlagsMutuallyExclusive("check", "diff", "write")

	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "memberfmt: %v\n", err)
		return runner.ExitError
	}
	return exitCode
}
