// Package metadata encodes library settings as the key/value pairs stored in
// @Comment{jabref-meta: key:value} blocks.
package metadata

import (
	"github.com/conduit-lang/bibkit/internal/model"
)

// Metadata keys.
const (
	KeySaveOrder         = "saveOrderConfig"
	KeySaveActions       = "saveActions"
	KeyProtected         = "protectedFlag"
	KeyDatabaseType      = "databaseType"
	KeyKeyPatternDefault = "keypatterndefault"
	KeyKeyPatternPrefix  = "keypattern_"
	KeyFileDirectory     = "fileDirectory"
	KeyLatexDirectory    = "fileDirectoryLatex"
	KeySelectorPrefix    = "selector_"
	KeyGrouping          = "grouping"

	// MetaFlag prefixes metadata comments.
	MetaFlag = "jabref-meta: "
	// EntryTypeFlag prefixes custom entry type comments.
	EntryTypeFlag = "jabref-entrytype: "
)

// FieldFormatter applies one formatter to one field.
type FieldFormatter struct {
	Field     string
	Formatter string
}

// SaveActions are the cleanups run on every save.
type SaveActions struct {
	Enabled bool
	Rules   []FieldFormatter
}

// KeyPatterns configure citation key generation.
type KeyPatterns struct {
	Default string
	ByType  map[string]string
}

// PatternFor returns the pattern for an entry type, falling back to the
// default pattern.
func (k KeyPatterns) PatternFor(entryType string) string {
	if p, ok := k.ByType[entryType]; ok && p != "" {
		return p
	}
	return k.Default
}

// MetaData holds every known library setting. Keys this package does not
// know are kept in Unknown so they survive a save.
type MetaData struct {
	SaveOrder   *model.SaveOrder
	SaveActions *SaveActions
	Protected   bool
	Mode        model.Mode
	KeyPatterns KeyPatterns

	LibraryFileDirectory string
	// UserFileDirectories and LatexFileDirectories are keyed by user name.
	UserFileDirectories  map[string]string
	LatexFileDirectories map[string]string

	ContentSelectors map[string][]string
	Groups           *Group

	// Encoding is written as a prolog line, never as a metadata comment.
	Encoding         string
	EncodingExplicit bool

	Unknown map[string][]string
}

// New returns empty metadata.
func New() *MetaData {
	return &MetaData{
		KeyPatterns:          KeyPatterns{ByType: map[string]string{}},
		UserFileDirectories:  map[string]string{},
		LatexFileDirectories: map[string]string{},
		ContentSelectors:     map[string][]string{},
		Unknown:              map[string][]string{},
	}
}

// Item is one serialized metadata pair.
type Item struct {
	Key   string
	Value string
}

// Comment returns the body of the @Comment block for the item.
func (i Item) Comment() string {
	return MetaFlag + i.Key + ":" + i.Value
}
