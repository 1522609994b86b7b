package format

import (
	"github.com/conduit-lang/bibkit/internal/bibtex"
	"github.com/conduit-lang/bibkit/internal/model"
	"github.com/conduit-lang/bibkit/internal/save"
)

// Config represents rendering options
type Config struct {
	WithMetadata bool
	Order        model.SaveOrder
	Reformat     bool
	GenerateKeys bool
	Newline      string
	// Charset overrides the encoding declared by the library.
	Charset string

	ResolveOnlySelected bool
	// ResolvableFields defaults to bibtex.DefaultResolvableFields when empty.
	ResolvableFields []string
}

// DefaultConfig returns the default rendering configuration
func DefaultConfig() *Config {
	return &Config{
		WithMetadata:        true,
		Order:               model.OriginalOrder(),
		Newline:             "\n",
		ResolveOnlySelected: true,
	}
}

func (c *Config) configuration() (save.Configuration, error) {
	saveType := save.Plain
	if c.WithMetadata {
		saveType = save.WithMetadata
	}
	prefs := bibtex.DefaultPreferences()
	prefs.ResolveOnlySelected = c.ResolveOnlySelected
	if len(c.ResolvableFields) > 0 {
		prefs.ResolvableFields = c.ResolvableFields
	}
	return save.NewConfiguration(c.Order, saveType,
		save.WithReformat(c.Reformat),
		save.WithKeyGeneration(c.GenerateKeys),
		save.WithNewline(c.Newline),
		save.WithFieldPreferences(prefs),
	)
}
