package model

import "unicode"

// Category groups string macros of the same kind next to each other on output.
type Category int

// Categories in output order.
const (
	CategoryAuthor Category = iota
	CategoryInstitution
	CategoryPublisher
	CategoryOther
)

// Categories lists every category in output order.
var Categories = []Category{CategoryAuthor, CategoryInstitution, CategoryPublisher, CategoryOther}

func (c Category) String() string {
	switch c {
	case CategoryAuthor:
		return "author"
	case CategoryInstitution:
		return "institution"
	case CategoryPublisher:
		return "publisher"
	default:
		return "other"
	}
}

// CategoryOf derives the category from a macro name: a lower-case prefix
// letter a, i or p followed by an upper-case letter ("aKnuth", "iMIT").
func CategoryOf(name string) Category {
	runes := []rune(name)
	if len(runes) < 2 || !unicode.IsUpper(runes[1]) {
		return CategoryOther
	}
	switch runes[0] {
	case 'a':
		return CategoryAuthor
	case 'i':
		return CategoryInstitution
	case 'p':
		return CategoryPublisher
	}
	return CategoryOther
}

// StringMacro is an @String definition.
type StringMacro struct {
	name         string
	content      string
	provenance   Provenance
	UserComments string
}

// NewStringMacro creates a macro that has no original text.
func NewStringMacro(name, content string) *StringMacro {
	return &StringMacro{name: name, content: content}
}

// ParsedStringMacro creates a macro read from original text.
func ParsedStringMacro(name, content, original string) *StringMacro {
	return &StringMacro{name: name, content: content, provenance: Parsed(original)}
}

// Name returns the macro name.
func (s *StringMacro) Name() string { return s.name }

// Content returns the macro text, which may reference other macros as #name#.
func (s *StringMacro) Content() string { return s.content }

// Category returns the derived category.
func (s *StringMacro) Category() Category { return CategoryOf(s.name) }

// SetContent replaces the text.
func (s *StringMacro) SetContent(content string) {
	if content == s.content {
		return
	}
	s.content = content
	s.provenance = s.provenance.modified()
}

// Provenance returns where the current text of the macro comes from.
func (s *StringMacro) Provenance() Provenance { return s.provenance }

// HasChanged reports whether the macro must be rebuilt from its content.
func (s *StringMacro) HasChanged() bool {
	_, ok := s.provenance.Verbatim()
	return !ok
}
