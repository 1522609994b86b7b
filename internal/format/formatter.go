// Package format renders library documents as canonical .bib text and
// compares the result with what is on disk.
package format

import (
	"bytes"
	"fmt"

	"go.uber.org/zap"

	"github.com/conduit-lang/bibkit/internal/dbfile"
	"github.com/conduit-lang/bibkit/internal/library"
	"github.com/conduit-lang/bibkit/internal/model"
	"github.com/conduit-lang/bibkit/internal/save"
)

// Result is the outcome of rendering one library.
type Result struct {
	Text    string
	Charset string
	Changes []model.FieldChange
}

// Formatter renders libraries
type Formatter struct {
	config *Config
	logger *zap.Logger
}

// New creates a new Formatter with the given configuration
func New(config *Config, logger *zap.Logger) *Formatter {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Formatter{config: config, logger: logger}
}

// Format renders lib. A save order stored in the library wins over the
// configured one.
func (f *Formatter) Format(lib *library.Library) (*Result, error) {
	base, err := f.config.configuration()
	if err != nil {
		return nil, err
	}
	cfg, err := save.ConfigurationFor(lib, base)
	if err != nil {
		return nil, err
	}
	if f.config.Charset != "" && lib.MetaData != nil {
		lib.MetaData.Encoding = f.config.Charset
	}

	var buf bytes.Buffer
	w := save.NewWriter(&buf, cfg, save.WithLogger(f.logger))
	if err := w.Write(lib); err != nil {
		return nil, err
	}
	charset, _ := lib.Encoding()
	return &Result{Text: buf.String(), Charset: charset, Changes: w.Changes()}, nil
}

// FormatFile loads a library document and renders it
func (f *Formatter) FormatFile(path string) (*Result, *library.Library, error) {
	lib, err := dbfile.Load(path)
	if err != nil {
		return nil, nil, err
	}
	res, err := f.Format(lib)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, lib, nil
}
