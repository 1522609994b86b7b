package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/conduit-lang/bibkit/internal/cli/ui"
	"github.com/conduit-lang/bibkit/internal/cleanup"
	"github.com/conduit-lang/bibkit/internal/format"
	"github.com/conduit-lang/bibkit/internal/library"
	"github.com/conduit-lang/bibkit/internal/model"
)

// documentSuffixes are the extensions picked up when walking directories.
var documentSuffixes = []string{".bib.yaml", ".bib.yml", ".bib.json", ".bib.jsonc"}

type formatOptions struct {
	write   bool
	check   bool
	unified bool
	output  string
}

// NewFormatCommand creates the format command
func NewFormatCommand(g *globals) *cobra.Command {
	opts := &formatOptions{}
	cmd := &cobra.Command{
		Use:   "format [documents...]",
		Short: "Render library documents as .bib files",
		Long: `Render library documents (YAML or JSON with comments) as .bib files.

By default, shows a diff against the existing .bib file without modifying it.
Use --write to replace the file, or --check to verify it is up to date.

Examples:
  bibkit format                         # Diff every *.bib.yml below the current directory
  bibkit format --write refs.bib.yml    # Write refs.bib
  bibkit format --check                 # Exit with error if a .bib file is stale
  bibkit format -o out.bib refs.yml     # Choose the output file
  bibkit format --unified > fix.patch   # Plain unified diff for patch(1)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, g, opts, args)
		},
	}

	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "Write .bib files")
	cmd.Flags().BoolVarP(&opts.check, "check", "c", false, "Check if .bib files are up to date (exit 1 if not)")
	cmd.Flags().BoolVarP(&opts.unified, "unified", "u", false, "Print a plain unified diff instead of the colored summary")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file (single document only)")

	return cmd
}

func runFormat(cmd *cobra.Command, g *globals, opts *formatOptions, args []string) error {
	if opts.write && opts.check {
		return fmt.Errorf("--write and --check cannot be combined")
	}
	if opts.unified && (opts.write || opts.check) {
		return fmt.Errorf("--unified only applies when showing a diff")
	}
	fc, err := g.cfg.Save.FormatConfig()
	if err != nil {
		return errors.New(ui.ConfigError(err.Error(), color.NoColor))
	}

	docs, err := findDocuments(args)
	if err != nil {
		return fmt.Errorf("failed to find documents: %w", err)
	}
	if len(docs) == 0 {
		return fmt.Errorf("no library documents found")
	}
	if opts.output != "" && len(docs) > 1 {
		return fmt.Errorf("--output needs exactly one document, got %d", len(docs))
	}

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	titleColor := color.New(color.FgCyan, color.Bold)
	errorColor := color.New(color.FgRed, color.Bold)

	formatter := format.New(fc, g.logger)
	stale, errorCount := 0, 0
	for _, doc := range docs {
		target := opts.output
		if target == "" {
			target = outputPath(doc)
		}

		res, lib, err := formatter.FormatFile(doc)
		if err != nil {
			fmt.Fprint(stderr, ui.SaveError(target, err, color.NoColor))
			errorCount++
			continue
		}
		warnUnknown(stderr, lib)

		original, err := readOutput(target, res.Charset)
		if err != nil {
			errorColor.Fprintf(stderr, "Error reading %s: %v\n", target, err)
			errorCount++
			continue
		}

		diff := format.Diff(original, res.Text)
		if !diff.Changed {
			if !opts.check && !opts.unified {
				ui.WriteSuccess(stdout, target+" (no changes)", color.NoColor)
			}
			continue
		}
		stale++

		switch {
		case opts.check:
			errorColor.Fprintf(stderr, "✗ %s is out of date\n", target)
		case opts.write:
			if err := writeOutput(target, res); err != nil {
				errorColor.Fprintf(stderr, "Error writing %s: %v\n", target, err)
				errorCount++
				continue
			}
			ui.WriteSuccess(stdout, target+" written", color.NoColor)
			if err := recordChanges(cmd.Context(), g, res.Changes); err != nil {
				fmt.Fprint(stderr, ui.Warning(fmt.Sprintf("journal not updated: %v", err), color.NoColor))
			}
		default:
			titleColor.Fprintf(stdout, "\n=== %s ===\n", target)
			fmt.Fprint(stdout, diff.String())
			fmt.Fprintf(stdout, "\n%s\n", diff.Stats())
		}
	}

	if !opts.write && !opts.check && !opts.unified && stale > 0 {
		fmt.Fprintln(stdout)
		titleColor.Fprintln(stdout, "Run 'bibkit format --write' to apply changes")
	}
	if opts.check && stale > 0 {
		return fmt.Errorf("%d .bib files are out of date", stale)
	}
	if errorCount > 0 {
		return fmt.Errorf("%d documents had errors", errorCount)
	}
	return nil
}

// warnUnknown points out save actions and entry types that are probably
// typos.
func warnUnknown(w io.Writer, lib *library.Library) {
	if md := lib.MetaData; md != nil && md.SaveActions != nil && md.SaveActions.Enabled {
		_, unknown := cleanup.Resolve(md.SaveActions.Rules)
		for _, u := range unknown {
			suggestions := ui.FindSimilar(u.Formatter, cleanup.Keys(), nil)
			fmt.Fprint(w, ui.UnknownFormatterWarning(u.Field, u.Formatter, suggestions, color.NoColor))
		}
	}

	mode := lib.Mode()
	reported := make(map[string]bool)
	for _, e := range lib.Database.Entries() {
		t := strings.ToLower(e.Type())
		if reported[t] {
			continue
		}
		if _, ok := lib.Types.Enrich(t, mode); ok {
			continue
		}
		reported[t] = true
		suggestions := ui.FindSimilar(t, lib.Types.Known(mode), nil)
		fmt.Fprint(w, ui.UnknownEntryTypeWarning(e.Key(), t, suggestions, color.NoColor))
	}
}

func readOutput(path, charset string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return format.Decode(data, charset)
}

func writeOutput(path string, res *format.Result) error {
	data, err := format.Encode(res.Text, res.Charset)
	if err != nil {
		return err
	}
	return atomic.WriteFile(path, bytes.NewReader(data))
}

func recordChanges(ctx context.Context, g *globals, changes []model.FieldChange) error {
	if !g.cfg.Journal.Enabled || len(changes) == 0 {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	tracker, closeFn, err := openJournal(ctx, g)
	if err != nil {
		return err
	}
	defer closeFn()

	id, err := tracker.Record(ctx, changes)
	if err != nil {
		return err
	}
	g.logger.Debug("changes journaled", zap.String("save", id), zap.Int("changes", len(changes)))
	return nil
}

// outputPath maps refs.bib.yml and refs.yml to refs.bib.
func outputPath(doc string) string {
	base := strings.TrimSuffix(doc, filepath.Ext(doc))
	if strings.HasSuffix(base, ".bib") {
		return base
	}
	return base + ".bib"
}

func isDocument(path string) bool {
	for _, suffix := range documentSuffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}

// findDocuments expands arguments into library documents. Directories are
// walked for *.bib.{yaml,yml,json,jsonc}; files and globs are taken as is.
func findDocuments(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	var docs []string
	for _, pattern := range patterns {
		info, err := os.Stat(pattern)
		if err == nil && info.IsDir() {
			err := filepath.WalkDir(pattern, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() && path != pattern && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				if !d.IsDir() && isDocument(path) {
					docs = append(docs, path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			continue
		}

		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%s: %w", pattern, fs.ErrNotExist)
		}
		docs = append(docs, matches...)
	}

	seen := make(map[string]bool)
	unique := docs[:0]
	for _, doc := range docs {
		if !seen[doc] {
			seen[doc] = true
			unique = append(unique, doc)
		}
	}
	return unique, nil
}
