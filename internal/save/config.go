package save

import (
	"github.com/conduit-lang/bibkit/internal/bibtex"
	"github.com/conduit-lang/bibkit/internal/library"
	"github.com/conduit-lang/bibkit/internal/model"
)

// Type selects whether library settings are written.
type Type int

const (
	// Plain writes bibliographic content only.
	Plain Type = iota
	// WithMetadata also writes the encoding prolog, metadata comments and
	// custom entry types.
	WithMetadata
)

// Configuration controls a save.
type Configuration struct {
	order        model.SaveOrder
	saveType     Type
	reformat     bool
	generateKeys bool
	newline      string
	fieldPrefs   bibtex.Preferences
}

// ConfigOption customizes a Configuration.
type ConfigOption func(*Configuration)

// WithReformat rebuilds unchanged entries and macros instead of writing
// their original text.
func WithReformat(reformat bool) ConfigOption {
	return func(c *Configuration) { c.reformat = reformat }
}

// WithKeyGeneration fills in missing citation keys before writing.
func WithKeyGeneration(enabled bool) ConfigOption {
	return func(c *Configuration) { c.generateKeys = enabled }
}

// WithNewline sets the line separator.
func WithNewline(newline string) ConfigOption {
	return func(c *Configuration) {
		if newline != "" {
			c.newline = newline
		}
	}
}

// WithFieldPreferences sets which fields resolve macro references.
func WithFieldPreferences(prefs bibtex.Preferences) ConfigOption {
	return func(c *Configuration) { c.fieldPrefs = prefs }
}

// NewConfiguration validates order and returns a configuration. The table
// order is rejected.
func NewConfiguration(order model.SaveOrder, saveType Type, opts ...ConfigOption) (Configuration, error) {
	switch order.Type {
	case model.OrderOriginal, model.OrderSpecified:
	default:
		return Configuration{}, &ConfigurationError{Order: order.Type, Err: ErrInvalidOrder}
	}
	cfg := Configuration{
		order:      order,
		saveType:   saveType,
		newline:    "\n",
		fieldPrefs: bibtex.DefaultPreferences(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg, nil
}

// ConfigurationFor returns base with the save order stored in the library
// settings, when there is one.
func ConfigurationFor(lib *library.Library, base Configuration) (Configuration, error) {
	if lib.MetaData == nil || lib.MetaData.SaveOrder == nil {
		return base, nil
	}
	cfg := base
	cfg.order = *lib.MetaData.SaveOrder
	if _, err := NewConfiguration(cfg.order, cfg.saveType); err != nil {
		return Configuration{}, err
	}
	return cfg, nil
}

// Order returns the save order.
func (c Configuration) Order() model.SaveOrder { return c.order }

// Type returns the save type.
func (c Configuration) Type() Type { return c.saveType }

// Reformat reports whether unchanged items are rebuilt.
func (c Configuration) Reformat() bool { return c.reformat }

// GenerateKeys reports whether missing keys are filled in.
func (c Configuration) GenerateKeys() bool { return c.generateKeys }

// Newline returns the line separator.
func (c Configuration) Newline() string { return c.newline }
