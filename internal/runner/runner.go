// Package runner orchestrates the parse -> check/fix -> output pipeline.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/donaldgifford/memberfmt/internal/analyzer"
	"github.com/donaldgifford/memberfmt/internal/config"
	"github.com/donaldgifford/memberfmt/internal/diag"
	"github.com/donaldgifford/memberfmt/internal/ordering"
	"github.com/donaldgifford/memberfmt/internal/parser"
	"github.com/donaldgifford/memberfmt/internal/rules"
	"github.com/donaldgifford/memberfmt/pkg/diff"
)

// Exit codes.
const (
	ExitOK         = 0
	ExitViolations = 1
	ExitError      = 2
)

// stdinName is the path reported for source read from stdin.
const stdinName = "<stdin>"

// Options configures the runner behavior.
type Options struct {
	// Paths are files or directories. Directories are walked for C#
	// sources. With no paths, source is read from Stdin.
	Paths []string
	Check bool
	Diff  bool
	// Write fixes files in place. It is the default for Paths and an
	// error without them.
	Write      bool
	ConfigPath string
	Quiet      bool
	Verbose    bool
	NoColor    bool
	// Jobs bounds the files processed concurrently. Zero or less means one.
	Jobs   int
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Parse and Rules default to the tree-sitter parser and the registered
	// rules.
	Parse analyzer.ParseFunc
	Rules []analyzer.Rule
}

// pipeline is the per-run state shared by every file.
type pipeline struct {
	opts   *Options
	cfg    *config.Config
	order  *ordering.Options
	rules  []analyzer.Rule
	parse  analyzer.ParseFunc
	stdout *printer
}

// fileResult is the outcome of one file, printed after all files finish so
// output order does not depend on scheduling.
type fileResult struct {
	path  string
	diags []diag.Diagnostic
	diff  string
	out   []byte
	code  int
	err   error
}

// Run executes the pipeline and returns an exit code.
func Run(ctx context.Context, opts *Options) int {
	opts.defaults()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		writeErr(opts.Stderr, "memberfmt: %v\n", err)
		return ExitError
	}

	p := &pipeline{
		opts:   opts,
		cfg:    cfg,
		order:  cfg.Options(),
		rules:  opts.Rules,
		parse:  opts.Parse,
		stdout: newPrinter(opts.Stdout, opts.NoColor),
	}
	if p.rules == nil {
		p.rules = rules.All()
	}
	if p.parse == nil {
		p.parse = parser.Parse
	}

	// stdin mode: no paths given.
	if len(opts.Paths) == 0 {
		if opts.Write {
			writeErr(opts.Stderr, "memberfmt: --write needs file or directory arguments\n")
			return ExitError
		}
		return p.runStdin(ctx)
	}

	files, err := collectFiles(opts.Paths, cfg)
	if err != nil {
		writeErr(opts.Stderr, "memberfmt: %v\n", err)
		return ExitError
	}
	log.Debug().Int("files", len(files)).Int("jobs", opts.Jobs).Msg("collected sources")

	results := make([]fileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Jobs, 1))
	for i, path := range files {
		g.Go(func() error {
			results[i] = p.runFile(gctx, path)
			if errors.Is(results[i].err, context.Canceled) {
				return results[i].err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		writeErr(opts.Stderr, "memberfmt: %v\n", err)
		return ExitError
	}

	exitCode := ExitOK
	var bag diag.Bag
	for _, r := range results {
		if r.err != nil {
			writeErr(opts.Stderr, "memberfmt: %s: %v\n", r.path, r.err)
		}
		if r.diff != "" {
			writeOut(opts.Stdout, r.diff)
		}
		bag.Add(r.diags...)
		exitCode = max(exitCode, r.code)
	}
	p.report(&bag)
	return exitCode
}

// defaults fills in the standard streams.
func (opts *Options) defaults() {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
}

func (p *pipeline) runStdin(ctx context.Context) int {
	raw, err := io.ReadAll(p.opts.Stdin)
	if err != nil {
		writeErr(p.opts.Stderr, "memberfmt: reading stdin: %v\n", err)
		return ExitError
	}
	src, enc, err := decodeSource(raw)
	if err != nil {
		writeErr(p.opts.Stderr, "memberfmt: %s: %v\n", stdinName, err)
		return ExitError
	}

	r := p.process(ctx, stdinName, src)
	if r.err == nil && r.out != nil {
		r.out, r.err = encodeSource(r.out, enc)
	}
	if r.err != nil {
		writeErr(p.opts.Stderr, "memberfmt: %s: %v\n", stdinName, r.err)
		return ExitError
	}

	var bag diag.Bag
	bag.Add(r.diags...)
	switch {
	case p.opts.Check:
		p.report(&bag)
	case p.opts.Diff:
		writeOut(p.opts.Stdout, r.diff)
	default:
		if _, err := p.opts.Stdout.Write(r.out); err != nil {
			writeErr(p.opts.Stderr, "memberfmt: writing stdout: %v\n", err)
			return ExitError
		}
		if !p.opts.Quiet {
			p.remaining(&bag)
		}
	}
	return r.code
}

func (p *pipeline) runFile(ctx context.Context, path string) fileResult {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fileResult{path: path, code: ExitError, err: err}
	}
	src, enc, err := decodeSource(raw)
	if err != nil {
		return fileResult{path: path, code: ExitError, err: err}
	}

	r := p.process(ctx, path, src)
	if r.err != nil || p.opts.Check || p.opts.Diff {
		return r
	}

	// Write mode (default for path args).
	if !bytes.Equal(src, r.out) {
		out, err := encodeSource(r.out, enc)
		if err != nil {
			return fileResult{path: path, code: ExitError, err: err}
		}
		info, err := os.Stat(path)
		if err != nil {
			return fileResult{path: path, code: ExitError, err: err}
		}
		if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
			return fileResult{path: path, code: ExitError, err: fmt.Errorf("writing: %w", err)}
		}
		log.Info().Str("path", path).Msg("reordered")
	}
	return r
}

// process runs the mode's analysis over src. In check mode diagnostics of
// the input are returned; otherwise the fixed output and the diagnostics
// no fix could resolve.
func (p *pipeline) process(ctx context.Context, path string, src []byte) fileResult {
	log.Debug().Str("path", path).Msg("processing")

	if p.opts.Check {
		f, err := p.parse(ctx, path, src)
		if err != nil {
			return fileResult{path: path, code: ExitError, err: err}
		}
		diags, err := analyzer.Check(f, p.order, p.rules, p.cfg)
		if err != nil {
			return fileResult{path: path, code: ExitError, err: err}
		}
		r := fileResult{path: path, diags: diags}
		if len(diags) > 0 {
			r.code = ExitViolations
		}
		return r
	}

	res, err := analyzer.Fix(ctx, path, src, p.parse, p.order, p.rules, p.cfg)
	if err != nil {
		return fileResult{path: path, code: ExitError, err: err}
	}
	r := fileResult{path: path, out: res.Output, diags: res.Remaining}
	if res.Changed() {
		log.Debug().Str("path", path).Int("passes", res.Passes).
			Int("fixed", len(res.Diagnostics)-len(res.Remaining)).Msg("fixed")
	}
	if res.Passes == analyzer.MaxPasses && len(res.Remaining) > 0 {
		log.Warn().Str("path", path).Int("passes", res.Passes).Msg("fix did not converge")
	}

	if p.opts.Diff {
		fd, err := diff.Compute(path, src, res.Output)
		if err != nil {
			return fileResult{path: path, code: ExitError, err: err}
		}
		if fd != nil {
			if r.diff, err = diff.Print(fd); err != nil {
				return fileResult{path: path, code: ExitError, err: err}
			}
			r.code = ExitViolations
			log.Debug().Str("path", path).Stringer("lines", diff.StatsOf(fd)).Msg("diff")
		}
		r.diags = nil
		return r
	}

	// Diagnostics left after fixing fail the run only at error severity.
	var left diag.Bag
	left.Add(r.diags...)
	if left.HasAtLeast(diag.SevError) {
		r.code = ExitViolations
	}
	return r
}

// report prints every diagnostic in the bag in stable order.
func (p *pipeline) report(bag *diag.Bag) {
	bag.Sort()
	bag.Dedup()
	log.Debug().Int("diagnostics", bag.Len()).Msg("report")
	if p.opts.Quiet {
		return
	}
	for _, d := range bag.Items() {
		p.stdout.diagnostic(d)
	}
}

// remaining prints diagnostics no fix could resolve to stderr, since stdout
// carries the fixed source.
func (p *pipeline) remaining(bag *diag.Bag) {
	bag.Sort()
	bag.Dedup()
	errPrinter := newPrinter(p.opts.Stderr, p.opts.NoColor)
	for _, d := range bag.Items() {
		errPrinter.diagnostic(d)
	}
}

// writeOut writes to stdout.
func writeOut(w io.Writer, s string) {
	fmt.Fprint(w, s)
}

// writeErr formats and writes to stderr.
func writeErr(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}
