// Package main provides the ldcontext binary, which adds JSON-LD contexts to
// JSON objects using a YAML term vocabulary.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/spf13/cobra"

	"github.com/twinfer/ldcontext"
	"github.com/twinfer/ldcontext/rdf"
	"github.com/twinfer/ldcontext/vocab"
)

const appName = "ldcontext"

// Output formats for annotate.
const (
	formatJSONLD = "jsonld"
	formatNQuads = "nquads"
)

// errUncontextualized is returned by check --strict when any object has
// attributes without a term definition.
var errUncontextualized = errors.New("uncontextualized terms found")

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := rootCmd(cfg).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options are the flags shared by all subcommands.
type options struct {
	vocabPath string
	logLevel  string
	indent    bool
}

func rootCmd(cfg config) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Add JSON-LD contexts to JSON objects",
		Long: `ldcontext reads JSON objects and describes their attributes with a
JSON-LD @context built from a YAML term vocabulary.

Input is a single JSON object or an array of objects, read from the named
file or from stdin.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.vocabPath, "vocab", "v", cfg.Vocab, "Vocabulary file (YAML) [$LDCONTEXT_VOCAB]")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error) [$LDCONTEXT_LOG_LEVEL]")
	cmd.PersistentFlags().BoolVar(&opts.indent, "indent", false, "Indent JSON output")

	cmd.AddCommand(annotateCmd(opts), checkCmd(opts))
	return cmd
}

func annotateCmd(opts *options) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "annotate [file]",
		Short: "Write each object with its @context, one document per line",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatJSONLD && format != formatNQuads {
				return fmt.Errorf("unknown format %q (want %s or %s)", format, formatJSONLD, formatNQuads)
			}
			reg, objs, err := setup(cmd, opts, args)
			if err != nil {
				return err
			}
			docs, err := documents(reg, objs)
			if err != nil {
				return err
			}
			if format == formatNQuads {
				return writeNQuads(cmd.OutOrStdout(), docs)
			}
			return writeJSONLD(cmd.OutOrStdout(), docs, opts.indent)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatJSONLD, "Output format ("+formatJSONLD+", "+formatNQuads+")")
	return cmd
}

func checkCmd(opts *options) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "List attributes that have no term definition",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, objs, err := setup(cmd, opts, args)
			if err != nil {
				return err
			}
			return check(cmd.OutOrStdout(), reg, objs, strict)
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail if any attribute is uncontextualized")
	return cmd
}

// setup configures logging, loads the vocabulary into a fresh registry and
// decodes the input objects.
func setup(cmd *cobra.Command, opts *options, args []string) (*ldcontext.Registry, []ldcontext.Object, error) {
	level, err := parseLevel(opts.logLevel)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	if opts.vocabPath == "" {
		return nil, nil, fmt.Errorf("no vocabulary: set --vocab or LDCONTEXT_VOCAB")
	}
	v, err := vocab.LoadFile(opts.vocabPath)
	if err != nil {
		return nil, nil, err
	}
	reg := ldcontext.NewRegistry(ldcontext.WithLogger(logger))
	if err := v.Apply(reg, ldcontext.Object(nil)); err != nil {
		return nil, nil, fmt.Errorf("apply vocabulary: %w", err)
	}
	logger.Debug("vocabulary loaded", "path", opts.vocabPath, "terms", len(v.Terms))

	in := cmd.InOrStdin()
	name := "stdin"
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, nil, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in, name = f, args[0]
	}
	objs, err := ldcontext.DecodeObjects(in)
	if err != nil {
		return nil, nil, fmt.Errorf("decode %s: %w", name, err)
	}
	logger.Debug("objects decoded", "input", name, "count", len(objs))
	return reg, objs, nil
}

func documents(reg *ldcontext.Registry, objs []ldcontext.Object) ([]ldcontext.Document, error) {
	docs := make([]ldcontext.Document, 0, len(objs))
	for i, obj := range objs {
		doc, err := reg.AsJSONLD(obj)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// writeJSONLD writes one document per line, or indented when asked.
func writeJSONLD(w io.Writer, docs []ldcontext.Document, indent bool) error {
	var encOpts []jsontext.Options
	if indent {
		encOpts = append(encOpts, jsontext.Multiline(true), jsontext.WithIndent("  "))
	}
	enc := jsontext.NewEncoder(w, encOpts...)

	for i, doc := range docs {
		if err := json.MarshalEncode(enc, doc); err != nil {
			return fmt.Errorf("object %d: %w", i, err)
		}
	}
	return nil
}

// writeNQuads converts all documents as one dataset so blank node labels
// stay distinct across objects.
func writeNQuads(w io.Writer, docs []ldcontext.Document) error {
	out, err := rdf.NQuads(docs)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// check reports the uncontextualized attributes of each object.
func check(w io.Writer, reg *ldcontext.Registry, objs []ldcontext.Object, strict bool) error {
	found := false
	for i, obj := range objs {
		missing, err := reg.UncontextualizedTerms(obj)
		if err != nil {
			return fmt.Errorf("object %d: %w", i, err)
		}
		if len(missing) == 0 {
			continue
		}
		found = true
		fmt.Fprintf(w, "object %d: %s\n", i, strings.Join(missing, ", "))
	}
	if found && strict {
		return errUncontextualized
	}
	return nil
}
