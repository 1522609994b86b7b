package model

// ProvenanceKind tags the variants of Provenance.
type ProvenanceKind int

const (
	// KindNew marks items created in memory that never had a textual form.
	KindNew ProvenanceKind = iota
	// KindParsed marks items whose original text still matches their values.
	KindParsed
	// KindModified marks parsed items whose values changed since parsing.
	KindModified
)

// String returns the lower-case variant name.
func (k ProvenanceKind) String() string {
	switch k {
	case KindParsed:
		return "parsed"
	case KindModified:
		return "modified"
	default:
		return "new"
	}
}

// Provenance tells a writer whether the original text of an item may be
// emitted instead of a reconstruction. Only the Parsed variant allows it.
type Provenance struct {
	kind     ProvenanceKind
	original string
}

// Parsed returns the variant for an item read from original text.
func Parsed(original string) Provenance {
	return Provenance{kind: KindParsed, original: original}
}

// Kind returns the variant tag.
func (p Provenance) Kind() ProvenanceKind { return p.kind }

// Verbatim returns the original text when the item may be written unchanged.
func (p Provenance) Verbatim() (string, bool) {
	if p.kind != KindParsed {
		return "", false
	}
	return p.original, true
}

func (p Provenance) modified() Provenance {
	if p.kind == KindParsed {
		p.kind = KindModified
	}
	return p
}

func (p Provenance) unchanged() Provenance {
	if p.kind == KindModified {
		p.kind = KindParsed
	}
	return p
}
