// Package save writes a library as BibTeX text.
package save

import (
	"errors"
	"io"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/conduit-lang/bibkit/internal/bibtex"
	"github.com/conduit-lang/bibkit/internal/citekey"
	"github.com/conduit-lang/bibkit/internal/cleanup"
	"github.com/conduit-lang/bibkit/internal/library"
	"github.com/conduit-lang/bibkit/internal/macros"
	"github.com/conduit-lang/bibkit/internal/metadata"
	"github.com/conduit-lang/bibkit/internal/model"
	"github.com/conduit-lang/bibkit/internal/ordering"
)

const (
	dbidPrefix     = "% DBID: "
	encodingPrefix = "% Encoding: "
)

// Writer saves libraries to a sink it does not own.
type Writer struct {
	sink    io.Writer
	cfg     Configuration
	logger  *zap.Logger
	keyGen  citekey.Generator
	changes []model.FieldChange
}

// Option customizes a Writer.
type Option func(*Writer)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(w *Writer) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithKeyGenerator replaces the pattern based key generator.
func WithKeyGenerator(g citekey.Generator) Option {
	return func(w *Writer) { w.keyGen = g }
}

// NewWriter returns a writer for sink.
func NewWriter(sink io.Writer, cfg Configuration, opts ...Option) *Writer {
	w := &Writer{sink: sink, cfg: cfg, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Changes returns the field changes made by the last write.
func (w *Writer) Changes() []model.FieldChange {
	out := make([]model.FieldChange, len(w.changes))
	copy(out, w.changes)
	return out
}

// Write saves the whole library. Entries without key and fields are skipped.
func (w *Writer) Write(lib *library.Library) error {
	var entries []*model.Entry
	for _, e := range lib.Database.Entries() {
		if !e.IsEmpty() {
			entries = append(entries, e)
		}
	}
	return w.WritePart(lib, entries)
}

// WritePart saves the library with exactly the given entries.
func (w *Writer) WritePart(lib *library.Library, entries []*model.Entry) error {
	w.changes = w.changes[:0]
	w.mutate(lib, entries)

	out := bibtex.NewWriter(w.sink, w.cfg.newline)
	codec := bibtex.NewCodec(w.cfg.fieldPrefs)
	withMeta := w.cfg.saveType == WithMetadata

	if lib.Database.SharedID != "" {
		out.WriteLine(dbidPrefix + lib.Database.SharedID)
	}
	if withMeta {
		if enc, explicit := lib.Encoding(); explicit || !isUTF8(enc) {
			out.WriteLine(encodingPrefix + enc)
		}
	}
	out.FinishBlock()

	if lib.Database.Preamble != "" {
		out.Write("@Preamble{" + lib.Database.Preamble + "}")
		out.FinishLine()
		out.FinishBlock()
	}

	if err := w.writeStrings(out, codec, lib); err != nil {
		return err
	}

	customTypes, err := w.writeEntries(out, codec, lib, entries)
	if err != nil {
		return err
	}

	if withMeta {
		if err := w.writeMetadata(out, lib.MetaData); err != nil {
			return err
		}
		for _, def := range customTypes {
			out.Write("@Comment{" + metadata.EntryTypeLine(def) + "}")
			out.FinishBlock()
		}
	}

	if lib.Database.Epilogue != "" {
		out.Write(lib.Database.Epilogue)
		out.FinishBlock()
	}

	if err := out.Err(); err != nil {
		return err
	}
	w.logger.Debug("library written",
		zap.Int("entries", len(entries)),
		zap.Int("changes", len(w.changes)))
	return nil
}

// mutate runs save actions, whitespace cleanup and key generation.
func (w *Writer) mutate(lib *library.Library, entries []*model.Entry) {
	md := lib.MetaData
	if md != nil && md.SaveActions != nil && md.SaveActions.Enabled {
		actions, unknown := cleanup.Resolve(md.SaveActions.Rules)
		for _, u := range unknown {
			w.logger.Warn("unknown formatter in save actions",
				zap.String("field", u.Field), zap.String("formatter", u.Formatter))
		}
		for _, e := range entries {
			w.changes = append(w.changes, actions.Apply(e)...)
		}
	}

	for _, e := range entries {
		w.changes = append(w.changes, cleanup.TrimWhitespace(e)...)
	}

	if !w.cfg.generateKeys {
		return
	}
	gen := w.keyGen
	if gen == nil {
		var patterns metadata.KeyPatterns
		if md != nil {
			patterns = md.KeyPatterns
		}
		gen = citekey.NewPatternGenerator(patterns, lib.Database.Keys())
	}
	for _, e := range entries {
		if e.HasKey() {
			continue
		}
		if key := gen.Generate(e); key != "" {
			if change, ok := e.SetKey(key); ok {
				w.changes = append(w.changes, change)
			}
		}
	}
}

func (w *Writer) writeStrings(out *bibtex.Writer, codec *bibtex.Codec, lib *library.Library) error {
	all := lib.Database.Strings()
	width := macros.NameWidth(all)
	for _, m := range macros.Serialize(all) {
		if err := macros.Write(out, codec, m, width, w.cfg.reformat); err != nil {
			if sinkErr := out.Err(); sinkErr != nil {
				return sinkErr
			}
			return &WriteError{Kind: KindString, Key: m.Name(), Err: err}
		}
		out.FinishBlock()
	}
	return nil
}

func (w *Writer) writeEntries(out *bibtex.Writer, codec *bibtex.Codec, lib *library.Library, entries []*model.Entry) ([]model.EntryTypeDefinition, error) {
	mode := lib.Mode()
	entryWriter := bibtex.NewEntryWriter(codec, lib.Types)
	custom := make(map[string]model.EntryTypeDefinition)

	for _, e := range ordering.Order(entries, w.cfg.order) {
		if lib.Types.IsCustom(e.Type(), mode) {
			def, _ := lib.Types.Enrich(e.Type(), mode)
			custom[def.Name] = def
		}
		if !e.HasChanged() && !w.cfg.reformat {
			w.logger.Debug("writing entry verbatim", zap.String("key", e.Key()))
		}
		if err := entryWriter.Write(out, e, mode, w.cfg.reformat); err != nil {
			if sinkErr := out.Err(); sinkErr != nil {
				return nil, sinkErr
			}
			werr := &WriteError{Kind: KindEntry, Key: e.Key(), Err: err}
			var ive *bibtex.InvalidValueError
			if errors.As(err, &ive) {
				werr.Field = ive.Field
			}
			return nil, werr
		}
		out.FinishBlock()
	}

	defs := make([]model.EntryTypeDefinition, 0, len(custom))
	for _, def := range custom {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs, nil
}

func (w *Writer) writeMetadata(out *bibtex.Writer, md *metadata.MetaData) error {
	for _, item := range metadata.Serialize(md) {
		if err := bibtex.CheckBraces(item.Key, item.Value); err != nil {
			return &WriteError{Kind: KindMetadata, Key: item.Key, Err: err}
		}
		out.Write("@Comment{" + item.Comment() + "}")
		out.FinishBlock()
	}
	return nil
}

func isUTF8(name string) bool {
	n := strings.ToLower(strings.ReplaceAll(name, "-", ""))
	return n == "utf8"
}
