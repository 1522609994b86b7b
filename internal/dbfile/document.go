// Package dbfile reads library documents: YAML or JSON-with-comments files
// that describe entries, strings and settings of a .bib file.
package dbfile

// Document is the on-disk shape of a library.
type Document struct {
	SharedID    string      `yaml:"shared_id,omitempty" json:"shared_id,omitempty"`
	Preamble    string      `yaml:"preamble,omitempty" json:"preamble,omitempty"`
	Epilogue    string      `yaml:"epilogue,omitempty" json:"epilogue,omitempty"`
	Strings     []StringDoc `yaml:"strings,omitempty" json:"strings,omitempty"`
	Entries     []EntryDoc  `yaml:"entries,omitempty" json:"entries,omitempty"`
	CustomTypes []string    `yaml:"custom_types,omitempty" json:"custom_types,omitempty"`
	Metadata    MetaDoc     `yaml:"metadata,omitempty" json:"metadata,omitempty"`
}

// StringDoc is an @String definition. Original holds the text it was read
// from, if any.
type StringDoc struct {
	Name     string `yaml:"name" json:"name"`
	Content  string `yaml:"content" json:"content"`
	Original string `yaml:"original,omitempty" json:"original,omitempty"`
	Comments string `yaml:"comments,omitempty" json:"comments,omitempty"`
}

// EntryDoc is a bibliographic entry.
type EntryDoc struct {
	Type     string            `yaml:"type" json:"type"`
	Key      string            `yaml:"key,omitempty" json:"key,omitempty"`
	Fields   map[string]string `yaml:"fields,omitempty" json:"fields,omitempty"`
	Original string            `yaml:"original,omitempty" json:"original,omitempty"`
	Comments string            `yaml:"comments,omitempty" json:"comments,omitempty"`
}

// MetaDoc holds library settings. Raw takes serialized jabref-meta pairs and
// is applied before the structured settings.
type MetaDoc struct {
	Mode             string              `yaml:"mode,omitempty" json:"mode,omitempty"`
	Encoding         string              `yaml:"encoding,omitempty" json:"encoding,omitempty"`
	EncodingExplicit bool                `yaml:"encoding_explicit,omitempty" json:"encoding_explicit,omitempty"`
	Protected        bool                `yaml:"protected,omitempty" json:"protected,omitempty"`
	SaveOrder        *SaveOrderDoc       `yaml:"save_order,omitempty" json:"save_order,omitempty"`
	SaveActions      *SaveActionsDoc     `yaml:"save_actions,omitempty" json:"save_actions,omitempty"`
	KeyPatterns      *KeyPatternsDoc     `yaml:"key_patterns,omitempty" json:"key_patterns,omitempty"`
	FileDirectory    string              `yaml:"file_directory,omitempty" json:"file_directory,omitempty"`
	UserDirectories  map[string]string   `yaml:"user_file_directories,omitempty" json:"user_file_directories,omitempty"`
	LatexDirectories map[string]string   `yaml:"latex_file_directories,omitempty" json:"latex_file_directories,omitempty"`
	Selectors        map[string][]string `yaml:"selectors,omitempty" json:"selectors,omitempty"`
	Groups           *GroupDoc           `yaml:"groups,omitempty" json:"groups,omitempty"`
	Unknown          map[string][]string `yaml:"unknown,omitempty" json:"unknown,omitempty"`
	Raw              map[string]string   `yaml:"raw,omitempty" json:"raw,omitempty"`
}

// SaveOrderDoc is a save order.
type SaveOrderDoc struct {
	Type     string         `yaml:"type" json:"type"`
	Criteria []CriterionDoc `yaml:"criteria,omitempty" json:"criteria,omitempty"`
}

// CriterionDoc sorts by one field.
type CriterionDoc struct {
	Field      string `yaml:"field" json:"field"`
	Descending bool   `yaml:"descending,omitempty" json:"descending,omitempty"`
}

// SaveActionsDoc lists formatters per field.
type SaveActionsDoc struct {
	Enabled bool      `yaml:"enabled" json:"enabled"`
	Rules   []RuleDoc `yaml:"rules,omitempty" json:"rules,omitempty"`
}

// RuleDoc applies formatters to a field in order.
type RuleDoc struct {
	Field      string   `yaml:"field" json:"field"`
	Formatters []string `yaml:"formatters" json:"formatters"`
}

// KeyPatternsDoc configures key generation.
type KeyPatternsDoc struct {
	Default string            `yaml:"default,omitempty" json:"default,omitempty"`
	Types   map[string]string `yaml:"types,omitempty" json:"types,omitempty"`
}

// GroupDoc is a node of the group tree. The root is always the all-entries
// group; its Kind may be left empty.
type GroupDoc struct {
	Kind          string     `yaml:"kind,omitempty" json:"kind,omitempty"`
	Name          string     `yaml:"name,omitempty" json:"name,omitempty"`
	Hierarchy     string     `yaml:"hierarchy,omitempty" json:"hierarchy,omitempty"`
	Expanded      bool       `yaml:"expanded,omitempty" json:"expanded,omitempty"`
	Color         string     `yaml:"color,omitempty" json:"color,omitempty"`
	Icon          string     `yaml:"icon,omitempty" json:"icon,omitempty"`
	Description   string     `yaml:"description,omitempty" json:"description,omitempty"`
	Field         string     `yaml:"field,omitempty" json:"field,omitempty"`
	Keyword       string     `yaml:"keyword,omitempty" json:"keyword,omitempty"`
	Query         string     `yaml:"query,omitempty" json:"query,omitempty"`
	CaseSensitive bool       `yaml:"case_sensitive,omitempty" json:"case_sensitive,omitempty"`
	Regex         bool       `yaml:"regex,omitempty" json:"regex,omitempty"`
	Children      []GroupDoc `yaml:"children,omitempty" json:"children,omitempty"`
}
