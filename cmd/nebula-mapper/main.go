// Package main provides the CLI entrypoint for nebula-mapper.
//
// nebula-mapper compiles JSON or YAML documents into NebulaGraph statements:
//   - Loads and validates a YAML mapping of document paths to tags and edges
//   - Emits the schema (CREATE TAG/EDGE and indexes) derived from the mapping
//   - Compiles every input document into batched INSERT / UPSERT statements
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"nebula-mapper/internal/document"
	"nebula-mapper/internal/mapping"
	"nebula-mapper/internal/output"
	"nebula-mapper/internal/schema"
	"nebula-mapper/internal/statement"
	"nebula-mapper/internal/transform"
)

const usage = `Usage: nebula-mapper [flags] <mapping.yaml> [input.json ...]

Flags:
`

type options struct {
	schemaOnly     bool
	noSchema       bool
	cleanup        bool
	minimalQuoting bool
	verbose        bool
	batchSize      int
	jobs           int
	output         string

	mappingPath string
	inputs      []string
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}

		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}

	fs := flag.NewFlagSet("nebula-mapper", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	fs.BoolVar(&opts.schemaOnly, "schema-only", false, "emit only the schema statements")
	fs.BoolVar(&opts.noSchema, "no-schema", false, "do not emit the schema statements")
	fs.BoolVar(&opts.cleanup, "cleanup", false, "emit DROP statements for every index, tag and edge first")
	fs.BoolVar(&opts.minimalQuoting, "minimal-quoting", false, "back-tick quote only identifiers that need it")
	fs.BoolVar(&opts.verbose, "v", false, "enable debug logging")
	fs.IntVar(&opts.batchSize, "batch-size", statement.DefaultBatchSize, "rows per INSERT statement")
	fs.IntVar(&opts.jobs, "jobs", 1, "input documents compiled concurrently")
	fs.StringVar(&opts.output, "o", "", "write statements to this file instead of stdout")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return nil, errors.New("missing mapping file")
	}

	opts.mappingPath = fs.Arg(0)
	opts.inputs = fs.Args()[1:]

	switch {
	case opts.schemaOnly && opts.noSchema:
		return nil, errors.New("-schema-only and -no-schema are mutually exclusive")
	case !opts.schemaOnly && len(opts.inputs) == 0:
		return nil, errors.New("missing input document (use -schema-only to emit only the schema)")
	case opts.jobs < 1:
		return nil, fmt.Errorf("-jobs must be at least 1, got %d", opts.jobs)
	}

	return opts, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})

	return slog.New(handler).With("run_id", uuid.NewString())
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	logger := newLogger(stderr, opts.verbose)

	m, err := mapping.LoadFile(opts.mappingPath)
	if err != nil {
		return err
	}

	registry := transform.NewRegistry()

	diags := mapping.Validate(m, registry)
	for _, w := range diags.Warnings {
		logger.Warn(w.String(), "code", w.Code)
	}

	if err := diags.Error(); err != nil {
		return fmt.Errorf("invalid mapping %s: %w", opts.mappingPath, err)
	}

	var stmts []string

	if opts.cleanup {
		stmts = append(stmts, schema.GenerateCleanupStatements(m)...)
	}

	if !opts.noSchema {
		schemaStmts, err := schema.GenerateStatements(m)
		if err != nil {
			return fmt.Errorf("generating schema: %w", err)
		}

		stmts = append(stmts, schemaStmts...)
	}

	if !opts.schemaOnly {
		compiler := statement.NewCompiler(statement.CompilerConfig{
			Registry:       registry,
			Logger:         logger,
			MinimalQuoting: opts.minimalQuoting,
		})

		data, err := compileAll(ctx, compiler, m, opts, logger)
		if err != nil {
			return err
		}

		stmts = append(stmts, data...)
	}

	if opts.output != "" {
		err = output.WriteFile(opts.output, stmts)
	} else {
		err = output.WriteStatements(stdout, stmts)
	}

	if err != nil {
		return err
	}

	logger.Info("statements written", "count", len(stmts), "inputs", len(opts.inputs))

	return nil
}

// compileAll compiles the input documents with up to opts.jobs workers and
// returns their statements in input order. No new document is started once
// one has failed.
func compileAll(
	ctx context.Context,
	compiler *statement.Compiler,
	m *mapping.GraphMapping,
	opts *options,
	logger *slog.Logger,
) ([]string, error) {
	results := make([][]string, len(opts.inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs)

	for i, path := range opts.inputs {
		if ctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}

			doc, err := document.LoadFile(path)
			if err != nil {
				return err
			}

			stmts, err := compiler.Compile(m, doc, opts.batchSize)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			logger.Debug("compiled input", "input", path, "statements", len(stmts))
			results[i] = stmts

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var stmts []string
	for _, r := range results {
		stmts = append(stmts, r...)
	}

	return stmts, nil
}
