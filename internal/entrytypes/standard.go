package entrytypes

import "github.com/conduit-lang/bibkit/internal/model"

func req(groups ...string) []model.OrFields {
	out := make([]model.OrFields, 0, len(groups))
	for _, g := range groups {
		out = append(out, splitOr(g))
	}
	return out
}

func opt(fields ...string) []string { return fields }

// bibtexTypes follows the classic BibTeX style definitions.
var bibtexTypes = []model.EntryTypeDefinition{
	{Name: "article", Required: req("author", "title", "journal", "year"),
		Optional: opt("volume", "number", "pages", "month", "issn", "note")},
	{Name: "book", Required: req("title", "publisher", "year", "author/editor"),
		Optional: opt("volume", "number", "series", "address", "edition", "month", "isbn", "note")},
	{Name: "booklet", Required: req("title"),
		Optional: opt("author", "howpublished", "address", "month", "year", "note")},
	{Name: "conference", Required: req("author", "title", "booktitle", "year"),
		Optional: opt("editor", "volume", "number", "series", "pages", "address", "month", "organization", "publisher", "note")},
	{Name: "inbook", Required: req("title", "publisher", "year", "author/editor", "chapter/pages"),
		Optional: opt("volume", "number", "series", "type", "address", "edition", "month", "isbn", "note")},
	{Name: "incollection", Required: req("author", "title", "booktitle", "publisher", "year"),
		Optional: opt("editor", "volume", "number", "series", "type", "chapter", "pages", "address", "edition", "month", "isbn", "note")},
	{Name: "inproceedings", Required: req("author", "title", "booktitle", "year"),
		Optional: opt("editor", "volume", "number", "series", "pages", "address", "month", "organization", "publisher", "note")},
	{Name: "manual", Required: req("title"),
		Optional: opt("author", "organization", "address", "edition", "month", "year", "isbn", "note")},
	{Name: "mastersthesis", Required: req("author", "title", "school", "year"),
		Optional: opt("type", "address", "month", "note")},
	{Name: "misc", Required: nil,
		Optional: opt("author", "title", "howpublished", "month", "year", "note")},
	{Name: "phdthesis", Required: req("author", "title", "school", "year"),
		Optional: opt("type", "address", "month", "note")},
	{Name: "proceedings", Required: req("title", "year"),
		Optional: opt("editor", "volume", "number", "series", "address", "publisher", "note", "month", "organization", "isbn")},
	{Name: "techreport", Required: req("author", "title", "institution", "year"),
		Optional: opt("type", "number", "address", "month", "note")},
	{Name: "unpublished", Required: req("author", "title", "note"),
		Optional: opt("month", "year")},
}

// biblatexTypes follows the biblatex manual, restricted to the commonly used
// optional fields.
var biblatexTypes = []model.EntryTypeDefinition{
	{Name: "article", Required: req("author", "title", "journaltitle", "year/date"),
		Optional: opt("translator", "subtitle", "titleaddon", "editor", "issuetitle", "volume", "number", "issue", "month", "pages", "issn", "doi", "eprint", "url", "urldate", "note")},
	{Name: "book", Required: req("author", "title", "year/date"),
		Optional: opt("editor", "subtitle", "titleaddon", "volume", "part", "edition", "volumes", "series", "number", "note", "publisher", "location", "isbn", "chapter", "pages", "pagetotal", "doi", "url", "urldate")},
	{Name: "mvbook", Required: req("author", "title", "year/date"),
		Optional: opt("editor", "subtitle", "edition", "volumes", "series", "number", "note", "publisher", "location", "isbn", "pagetotal", "doi", "url")},
	{Name: "inbook", Required: req("author", "title", "booktitle", "year/date"),
		Optional: opt("bookauthor", "editor", "subtitle", "booksubtitle", "volume", "part", "edition", "series", "number", "note", "publisher", "location", "isbn", "chapter", "pages", "doi", "url")},
	{Name: "bookinbook", Required: req("author", "title", "booktitle", "year/date"),
		Optional: opt("bookauthor", "editor", "volume", "edition", "series", "publisher", "location", "pages", "doi", "url")},
	{Name: "booklet", Required: req("author/editor", "title", "year/date"),
		Optional: opt("subtitle", "howpublished", "type", "note", "location", "chapter", "pages", "pagetotal", "doi", "url")},
	{Name: "collection", Required: req("editor", "title", "year/date"),
		Optional: opt("translator", "subtitle", "volume", "edition", "volumes", "series", "number", "note", "publisher", "location", "isbn", "pages", "pagetotal", "doi", "url")},
	{Name: "incollection", Required: req("author", "title", "editor", "booktitle", "year/date"),
		Optional: opt("translator", "subtitle", "booksubtitle", "volume", "edition", "series", "number", "note", "publisher", "location", "isbn", "chapter", "pages", "doi", "url")},
	{Name: "dataset", Required: req("author/editor", "title", "year/date"),
		Optional: opt("subtitle", "edition", "type", "series", "number", "version", "note", "organization", "publisher", "location", "doi", "url", "urldate")},
	{Name: "manual", Required: req("author/editor", "title", "year/date"),
		Optional: opt("subtitle", "edition", "type", "series", "number", "version", "note", "organization", "publisher", "location", "isbn", "pages", "pagetotal", "doi", "url")},
	{Name: "misc", Required: req("author/editor", "title", "year/date"),
		Optional: opt("subtitle", "howpublished", "type", "version", "note", "organization", "location", "doi", "url", "urldate")},
	{Name: "online", Required: req("author/editor", "title", "year/date", "doi/eprint/url"),
		Optional: opt("subtitle", "titleaddon", "version", "note", "organization", "urldate")},
	{Name: "patent", Required: req("author", "title", "number", "year/date"),
		Optional: opt("holder", "subtitle", "type", "version", "location", "note", "doi", "url")},
	{Name: "periodical", Required: req("editor", "title", "year/date"),
		Optional: opt("subtitle", "issuetitle", "series", "volume", "number", "issue", "note", "issn", "doi", "url")},
	{Name: "proceedings", Required: req("title", "year/date"),
		Optional: opt("editor", "subtitle", "eventtitle", "eventdate", "venue", "volume", "part", "volumes", "series", "number", "note", "organization", "publisher", "location", "isbn", "pages", "pagetotal", "doi", "url")},
	{Name: "inproceedings", Required: req("author", "title", "booktitle", "year/date"),
		Optional: opt("editor", "subtitle", "eventtitle", "eventdate", "venue", "volume", "part", "series", "number", "note", "organization", "publisher", "location", "isbn", "pages", "doi", "url")},
	{Name: "reference", Required: req("editor", "title", "year/date"),
		Optional: opt("subtitle", "volume", "edition", "volumes", "series", "number", "note", "publisher", "location", "isbn", "pages", "doi", "url")},
	{Name: "report", Required: req("author", "title", "type", "institution", "year/date"),
		Optional: opt("subtitle", "number", "version", "note", "location", "isrn", "pages", "pagetotal", "doi", "url")},
	{Name: "software", Required: req("author/editor", "title", "year/date"),
		Optional: opt("subtitle", "version", "note", "organization", "publisher", "location", "doi", "url", "urldate")},
	{Name: "thesis", Required: req("author", "title", "type", "institution", "year/date"),
		Optional: opt("subtitle", "note", "location", "isbn", "chapter", "pages", "pagetotal", "doi", "url")},
	{Name: "mastersthesis", Required: req("author", "title", "institution", "year/date"),
		Optional: opt("type", "subtitle", "note", "location", "pages", "pagetotal", "doi", "url")},
	{Name: "phdthesis", Required: req("author", "title", "institution", "year/date"),
		Optional: opt("type", "subtitle", "note", "location", "pages", "pagetotal", "doi", "url")},
	{Name: "techreport", Required: req("author", "title", "institution", "year/date"),
		Optional: opt("type", "subtitle", "number", "version", "note", "location", "pages", "pagetotal", "doi", "url")},
	{Name: "unpublished", Required: req("author", "title", "year/date"),
		Optional: opt("subtitle", "howpublished", "note", "location", "url", "urldate")},
}

// displayNames holds the canonical spelling of standard types.
var displayNames = map[string]string{
	"article":       "Article",
	"book":          "Book",
	"bookinbook":    "BookInBook",
	"booklet":       "Booklet",
	"collection":    "Collection",
	"conference":    "Conference",
	"dataset":       "Dataset",
	"inbook":        "InBook",
	"incollection":  "InCollection",
	"inproceedings": "InProceedings",
	"manual":        "Manual",
	"mastersthesis": "MastersThesis",
	"misc":          "Misc",
	"mvbook":        "MvBook",
	"online":        "Online",
	"patent":        "Patent",
	"periodical":    "Periodical",
	"phdthesis":     "PhdThesis",
	"proceedings":   "Proceedings",
	"reference":     "Reference",
	"report":        "Report",
	"software":      "Software",
	"techreport":    "TechReport",
	"thesis":        "Thesis",
	"unpublished":   "Unpublished",
}
