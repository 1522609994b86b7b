// Package library bundles a database with its settings and entry types.
package library

import (
	"github.com/conduit-lang/bibkit/internal/entrytypes"
	"github.com/conduit-lang/bibkit/internal/metadata"
	"github.com/conduit-lang/bibkit/internal/model"
)

// Library is everything needed to write one .bib file.
type Library struct {
	Database *model.Database
	MetaData *metadata.MetaData
	Types    *entrytypes.Manager
}

// New returns an empty library.
func New() *Library {
	return &Library{
		Database: model.NewDatabase(),
		MetaData: metadata.New(),
		Types:    entrytypes.NewManager(),
	}
}

// Mode returns the dialect stored in the metadata, defaulting to BibTeX.
func (l *Library) Mode() model.Mode {
	if l.MetaData != nil && l.MetaData.Mode != "" {
		return l.MetaData.Mode
	}
	return model.ModeBibTeX
}

// Encoding returns the declared encoding name and whether it was set
// explicitly. The default is UTF-8.
func (l *Library) Encoding() (string, bool) {
	if l.MetaData == nil || l.MetaData.Encoding == "" {
		return "UTF-8", false
	}
	return l.MetaData.Encoding, l.MetaData.EncodingExplicit
}
