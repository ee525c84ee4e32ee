package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/lo"

	"github.com/hengadev/fieldx"
	"github.com/hengadev/fieldx/internal/schemadef"
)

const defaultSchemaPath = "fieldx.yaml"

func dumpCommand(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := fieldx.LoadConfigFromEnvironment()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	fs.SetOutput(stderr)
	schemaPath := fs.String("schema", defaultSchemaPath, "Path to schema file")
	inputPath := fs.String("input", "-", "Input file, or - for stdin")
	format := fs.String("format", string(cfg.Format), "Output format: json or yaml")
	style := fs.String("style", string(cfg.JSONStyle), "JSON style: spaced or compact")
	indent := fs.Int("indent", cfg.Indent, "Indent width, 0 for single-line output")
	only := fs.String("only", "", "Comma-separated fields to emit")
	exclude := fs.String("exclude", "", "Comma-separated fields to drop")
	lenient := fs.Bool("lenient", cfg.Coercion == fieldx.CoercionLenient, "Use lenient coercion")
	verbose := fs.Bool("v", false, "Verbose output")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.Format = fieldx.Format(*format)
	cfg.JSONStyle = fieldx.JSONStyle(*style)
	cfg.Indent = *indent
	cfg.Coercion = fieldx.CoercionStrict
	if *lenient {
		cfg.Coercion = fieldx.CoercionLenient
	}
	if *verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	logger, err := cfg.Logger(stderr, "cli")
	if err != nil {
		return err
	}

	schema, err := fieldx.LoadSchemaFile(*schemaPath)
	if err != nil {
		return err
	}

	opts := append(cfg.Options(), fieldx.WithLogger(logger))
	if *verbose {
		opts = append(opts, fieldx.WithObservability(fieldx.NewLoggingHook(logger)))
	}
	if names := splitList(*only); names != nil {
		opts = append(opts, fieldx.Only(names...))
	}
	if names := splitList(*exclude); names != nil {
		opts = append(opts, fieldx.Exclude(names...))
	}
	s, err := fieldx.New(schema, opts...)
	if err != nil {
		return err
	}

	data, err := readInput(*inputPath, stdin)
	if err != nil {
		return err
	}
	srcs, many, err := fieldx.DecodeSources(data)
	if err != nil {
		return err
	}

	ctx := context.Background()
	var out []byte
	if many {
		out, err = s.DumpsMany(ctx, srcs)
	} else {
		out, err = s.Dumps(ctx, srcs[0])
	}
	if err != nil {
		return err
	}

	if _, err := stdout.Write(out); err != nil {
		return err
	}
	if len(out) > 0 && out[len(out)-1] != '\n' {
		fmt.Fprintln(stdout)
	}
	return nil
}

func validateCommand(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	schemaPath := fs.String("schema", defaultSchemaPath, "Path to schema file")
	verbose := fs.Bool("v", false, "Verbose output")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Validating schema at %s...\n", *schemaPath)

	schema, err := fieldx.LoadSchemaFile(*schemaPath)
	if err != nil {
		return err
	}

	if *verbose {
		pre, post := schema.Hooks()
		fmt.Fprintf(stdout, "Schema %s: %d fields, %d pre-dump hooks, %d post-dump hooks\n",
			schema.Name(), len(schema.Fields()), pre, post)
		for _, f := range schema.Fields() {
			flags := lo.Compact([]string{
				lo.Ternary(f.Required, "required", ""),
				lo.Ternary(f.OutputOnly, "output-only", ""),
				lo.Ternary(f.HasDefault(), fmt.Sprintf("default=%v", f.Default), ""),
			})
			fmt.Fprintf(stdout, "  ✓ %s (%s <- %s) %s\n", f.Name, f.Kind, f.SourceAttribute(), strings.Join(flags, " "))
		}
	}

	fmt.Fprintln(stdout, "✓ Schema is valid")
	return nil
}

func initCommand(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	output := fs.String("o", defaultSchemaPath, "Path of the schema file to write")
	force := fs.Bool("force", false, "Overwrite existing schema file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if !*force {
		if _, err := os.Stat(*output); err == nil {
			return fmt.Errorf("schema file %s already exists, use -force to overwrite", *output)
		}
	}

	fmt.Fprintf(stdout, "Creating schema file at %s...\n", *output)
	if err := schemadef.Save(schemadef.Default(), *output); err != nil {
		return err
	}
	fmt.Fprintln(stdout, "Schema file created!")
	return nil
}

func versionCommand(stdout io.Writer) {
	fmt.Fprintln(stdout, fieldx.VersionInfo())
	fmt.Fprintln(stdout, "Declarative field-mapping serializer")
	fmt.Fprintln(stdout, "")
	fmt.Fprintln(stdout, "Supported kinds: string, integer, boolean, float")
	fmt.Fprintln(stdout, "Supported formats: json, yaml")
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" || path == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return data, nil
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return lo.Compact(lo.Map(strings.Split(s, ","), func(item string, _ int) string {
		return strings.TrimSpace(item)
	}))
}
