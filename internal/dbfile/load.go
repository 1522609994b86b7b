package dbfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"

	"github.com/conduit-lang/bibkit/internal/library"
	"github.com/conduit-lang/bibkit/internal/metadata"
	"github.com/conduit-lang/bibkit/internal/model"
)

// Format is the syntax of a document.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

// ErrUnsupportedFormat is returned for files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// FormatOf picks the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json", ".jsonc":
		return FormatJSON, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// Load reads and converts a document.
func Load(path string) (*library.Library, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	lib, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lib, nil
}

// Parse decodes a document and builds the library it describes.
func Parse(data []byte, format Format) (*library.Library, error) {
	var doc Document
	switch format {
	case FormatJSON:
		standardized, err := hujson.Standardize(data)
		if err != nil {
			return nil, fmt.Errorf("invalid JSONC: %w", err)
		}
		if err := json.Unmarshal(standardized, &doc); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
	}
	return doc.Library()
}

// Library converts the document.
func (d *Document) Library() (*library.Library, error) {
	lib := library.New()
	db := lib.Database
	db.SharedID = d.SharedID
	db.Preamble = d.Preamble
	db.Epilogue = d.Epilogue

	for i, s := range d.Strings {
		if strings.TrimSpace(s.Name) == "" {
			return nil, fmt.Errorf("string %d: missing name", i+1)
		}
		var m *model.StringMacro
		if s.Original != "" {
			m = model.ParsedStringMacro(s.Name, s.Content, s.Original)
		} else {
			m = model.NewStringMacro(s.Name, s.Content)
		}
		m.UserComments = s.Comments
		if err := db.AddString(m); err != nil {
			return nil, err
		}
	}

	for i, e := range d.Entries {
		if strings.TrimSpace(e.Type) == "" {
			return nil, fmt.Errorf("entry %d: missing type", i+1)
		}
		var entry *model.Entry
		if e.Original != "" {
			entry = model.ParsedEntry(e.Type, e.Key, e.Fields, e.Original)
		} else {
			entry = model.NewEntry(e.Type)
			entry.SetKey(e.Key)
			for name, value := range e.Fields {
				entry.SetField(name, value)
			}
		}
		entry.UserComments = e.Comments
		db.InsertEntry(entry)
	}

	md, err := d.Metadata.metaData()
	if err != nil {
		return nil, err
	}
	lib.MetaData = md

	for _, line := range d.CustomTypes {
		def, err := metadata.ParseEntryTypeLine(line)
		if err != nil {
			return nil, err
		}
		lib.Types.AddCustom(def, lib.Mode())
	}
	return lib, nil
}

func (m MetaDoc) metaData() (*metadata.MetaData, error) {
	md := metadata.New()
	if len(m.Raw) > 0 {
		decoded, err := metadata.Deserialize(m.Raw)
		if err != nil {
			return nil, err
		}
		md = decoded
	}

	if m.Mode != "" {
		mode, err := model.ParseMode(m.Mode)
		if err != nil {
			return nil, err
		}
		md.Mode = mode
	}
	if m.Encoding != "" {
		md.Encoding = m.Encoding
		md.EncodingExplicit = m.EncodingExplicit
	}
	md.Protected = md.Protected || m.Protected

	if m.SaveOrder != nil {
		t, err := model.ParseOrderType(m.SaveOrder.Type)
		if err != nil {
			return nil, fmt.Errorf("save_order: %w", err)
		}
		order := model.SaveOrder{Type: t}
		for _, c := range m.SaveOrder.Criteria {
			order.Criteria = append(order.Criteria, model.SortCriterion{Field: c.Field, Descending: c.Descending})
		}
		md.SaveOrder = &order
	}
	if m.SaveActions != nil {
		actions := &metadata.SaveActions{Enabled: m.SaveActions.Enabled}
		for _, r := range m.SaveActions.Rules {
			for _, f := range r.Formatters {
				actions.Rules = append(actions.Rules, metadata.FieldFormatter{Field: r.Field, Formatter: f})
			}
		}
		md.SaveActions = actions
	}
	if m.KeyPatterns != nil {
		if m.KeyPatterns.Default != "" {
			md.KeyPatterns.Default = m.KeyPatterns.Default
		}
		for t, p := range m.KeyPatterns.Types {
			md.KeyPatterns.ByType[strings.ToLower(t)] = p
		}
	}
	if m.FileDirectory != "" {
		md.LibraryFileDirectory = m.FileDirectory
	}
	for user, dir := range m.UserDirectories {
		md.UserFileDirectories[user] = dir
	}
	for user, dir := range m.LatexDirectories {
		md.LatexFileDirectories[user] = dir
	}
	for field, words := range m.Selectors {
		md.ContentSelectors[field] = words
	}
	for key, lines := range m.Unknown {
		md.Unknown[key] = lines
	}
	if m.Groups != nil {
		root, err := m.Groups.group(true)
		if err != nil {
			return nil, fmt.Errorf("groups: %w", err)
		}
		md.Groups = root
	}
	return md, nil
}

var hierarchies = map[string]metadata.Hierarchy{
	"":            metadata.Independent,
	"independent": metadata.Independent,
	"refining":    metadata.Refining,
	"including":   metadata.Including,
}

var groupKinds = map[string]metadata.GroupKind{
	"static":  metadata.StaticGroup,
	"keyword": metadata.KeywordGroup,
	"search":  metadata.SearchGroup,
}

func (g GroupDoc) group(root bool) (*metadata.Group, error) {
	var node *metadata.Group
	if root {
		node = metadata.NewRootGroup()
	} else {
		kind, ok := groupKinds[strings.ToLower(g.Kind)]
		if !ok {
			return nil, fmt.Errorf("group %q: unknown kind %q", g.Name, g.Kind)
		}
		h, ok := hierarchies[strings.ToLower(g.Hierarchy)]
		if !ok {
			return nil, fmt.Errorf("group %q: unknown hierarchy %q", g.Name, g.Hierarchy)
		}
		node = &metadata.Group{
			Kind:          kind,
			Name:          g.Name,
			Hierarchy:     h,
			Expanded:      g.Expanded,
			Color:         g.Color,
			Icon:          g.Icon,
			Description:   g.Description,
			Field:         g.Field,
			Keyword:       g.Keyword,
			Query:         g.Query,
			CaseSensitive: g.CaseSensitive,
			Regex:         g.Regex,
		}
	}
	for _, c := range g.Children {
		child, err := c.group(false)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}
	return node, nil
}
