package metadata

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/conduit-lang/bibkit/internal/model"
)

const newline = "\n"

// Serialize encodes md as key/value pairs sorted by key. Settings with an
// empty value are omitted.
func Serialize(md *MetaData) []Item {
	if md == nil {
		return nil
	}
	values := make(map[string]string)
	set := func(key, value string) {
		if value != "" {
			values[key] = value
		}
	}

	if md.SaveOrder != nil {
		set(KeySaveOrder, serializeSaveOrder(*md.SaveOrder))
	}
	if md.SaveActions != nil {
		set(KeySaveActions, serializeSaveActions(*md.SaveActions))
	}
	if md.Protected {
		set(KeyProtected, QuoteList([]string{"true"}))
	}
	if md.Mode != "" {
		set(KeyDatabaseType, QuoteList([]string{string(md.Mode)}))
	}
	if md.KeyPatterns.Default != "" {
		set(KeyKeyPatternDefault, QuoteList([]string{md.KeyPatterns.Default}))
	}
	for entryType, pattern := range md.KeyPatterns.ByType {
		if pattern != "" {
			set(KeyKeyPatternPrefix+entryType, QuoteList([]string{pattern}))
		}
	}
	if md.LibraryFileDirectory != "" {
		set(KeyFileDirectory, QuoteList([]string{md.LibraryFileDirectory}))
	}
	for user, dir := range md.UserFileDirectories {
		if dir != "" {
			set(KeyFileDirectory+"-"+user, QuoteList([]string{dir}))
		}
	}
	for user, dir := range md.LatexFileDirectories {
		if dir != "" {
			set(KeyLatexDirectory+"-"+user, QuoteList([]string{dir}))
		}
	}
	for field, words := range md.ContentSelectors {
		set(KeySelectorPrefix+field, QuoteList(words))
	}
	set(KeyGrouping, serializeGroups(md.Groups, newline))
	for key, lines := range md.Unknown {
		if _, known := values[key]; !known {
			set(key, serializeUnknown(lines))
		}
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	items := make([]Item, 0, len(keys))
	for _, k := range keys {
		items = append(items, Item{Key: k, Value: values[k]})
	}
	return items
}

func serializeSaveOrder(order model.SaveOrder) string {
	parts := []string{string(order.Type)}
	for _, c := range order.Criteria {
		parts = append(parts, c.Field, strconv.FormatBool(c.Descending))
	}
	return QuoteList(parts)
}

func serializeSaveActions(actions SaveActions) string {
	var b strings.Builder
	if actions.Enabled {
		b.WriteString("enabled")
	} else {
		b.WriteString("disabled")
	}
	b.WriteByte(Separator)
	b.WriteString(newline)

	// one line per field, fields in order of first appearance
	var fields []string
	byField := make(map[string][]string)
	for _, r := range actions.Rules {
		if _, seen := byField[r.Field]; !seen {
			fields = append(fields, r.Field)
		}
		byField[r.Field] = append(byField[r.Field], r.Formatter)
	}
	for _, f := range fields {
		b.WriteString(f)
		b.WriteByte('[')
		b.WriteString(strings.Join(byField[f], ","))
		b.WriteByte(']')
		b.WriteString(newline)
	}
	b.WriteByte(Separator)
	return b.String()
}

func serializeUnknown(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(newline)
	for _, line := range lines {
		b.WriteString(strings.ReplaceAll(line, ";", `\;`))
		b.WriteByte(Separator)
		b.WriteString(newline)
	}
	return b.String()
}

// Deserialize rebuilds metadata from key/value pairs produced by Serialize.
func Deserialize(pairs map[string]string) (*MetaData, error) {
	md := New()

	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := pairs[key]
		if err := md.decode(key, value); err != nil {
			return nil, fmt.Errorf("metadata %s: %w", key, err)
		}
	}
	return md, nil
}

func first(value string) string {
	items := ParseList(value)
	if len(items) == 0 {
		return ""
	}
	return items[0]
}

func (md *MetaData) decode(key, value string) error {
	switch {
	case key == KeySaveOrder:
		order, err := parseSaveOrder(value)
		if err != nil {
			return err
		}
		md.SaveOrder = &order
	case key == KeySaveActions:
		actions, err := parseSaveActions(value)
		if err != nil {
			return err
		}
		md.SaveActions = &actions
	case key == KeyProtected:
		md.Protected = first(value) == "true"
	case key == KeyDatabaseType:
		mode, err := model.ParseMode(first(value))
		if err != nil {
			return err
		}
		md.Mode = mode
	case key == KeyKeyPatternDefault:
		md.KeyPatterns.Default = first(value)
	case strings.HasPrefix(key, KeyKeyPatternPrefix):
		md.KeyPatterns.ByType[strings.TrimPrefix(key, KeyKeyPatternPrefix)] = first(value)
	case key == KeyFileDirectory:
		md.LibraryFileDirectory = first(value)
	case strings.HasPrefix(key, KeyLatexDirectory+"-"):
		md.LatexFileDirectories[strings.TrimPrefix(key, KeyLatexDirectory+"-")] = first(value)
	case strings.HasPrefix(key, KeyFileDirectory+"-"):
		md.UserFileDirectories[strings.TrimPrefix(key, KeyFileDirectory+"-")] = first(value)
	case strings.HasPrefix(key, KeySelectorPrefix):
		md.ContentSelectors[strings.TrimPrefix(key, KeySelectorPrefix)] = ParseList(value)
	case key == KeyGrouping:
		root, err := parseGroups(value)
		if err != nil {
			return err
		}
		md.Groups = root
	default:
		md.Unknown[key] = parseUnknown(value)
	}
	return nil
}

func parseSaveOrder(value string) (model.SaveOrder, error) {
	items := ParseList(value)
	if len(items) == 0 {
		return model.SaveOrder{}, fmt.Errorf("empty save order")
	}
	t, err := model.ParseOrderType(items[0])
	if err != nil {
		return model.SaveOrder{}, err
	}
	order := model.SaveOrder{Type: t}
	rest := items[1:]
	if len(rest)%2 != 0 {
		return model.SaveOrder{}, fmt.Errorf("save order criterion %q has no direction", rest[len(rest)-1])
	}
	for i := 0; i < len(rest); i += 2 {
		desc, err := strconv.ParseBool(rest[i+1])
		if err != nil {
			return model.SaveOrder{}, fmt.Errorf("save order direction %q: %w", rest[i+1], err)
		}
		order.Criteria = append(order.Criteria, model.SortCriterion{Field: rest[i], Descending: desc})
	}
	return order, nil
}

func parseSaveActions(value string) (SaveActions, error) {
	sep := strings.IndexByte(value, Separator)
	if sep < 0 {
		return SaveActions{}, fmt.Errorf("missing enabled flag")
	}
	var actions SaveActions
	switch flag := strings.TrimSpace(value[:sep]); flag {
	case "enabled":
		actions.Enabled = true
	case "disabled":
	default:
		return SaveActions{}, fmt.Errorf("unknown flag %q", flag)
	}

	body := strings.TrimSpace(value[sep+1:])
	body = strings.TrimSuffix(body, string(Separator))
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		open := strings.IndexByte(line, '[')
		if open <= 0 || !strings.HasSuffix(line, "]") {
			return SaveActions{}, fmt.Errorf("malformed rule %q", line)
		}
		field := line[:open]
		for _, f := range strings.Split(line[open+1:len(line)-1], ",") {
			if f = strings.TrimSpace(f); f != "" {
				actions.Rules = append(actions.Rules, FieldFormatter{Field: field, Formatter: f})
			}
		}
	}
	return actions, nil
}

// parseUnknown splits at separators not preceded by a backslash. Lines that
// themselves end in a backslash do not survive the round trip.
func parseUnknown(value string) []string {
	var (
		lines []string
		cur   strings.Builder
	)
	for i := 0; i < len(value); i++ {
		switch {
		case value[i] == '\\' && i+1 < len(value) && value[i+1] == Separator:
			cur.WriteByte(Separator)
			i++
		case value[i] == Separator:
			lines = append(lines, trimNewline(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(value[i])
		}
	}
	if rest := cur.String(); strings.TrimSpace(rest) != "" {
		lines = append(lines, trimNewline(rest))
	}
	return lines
}

func trimNewline(s string) string {
	if strings.HasPrefix(s, "\r\n") {
		return s[2:]
	}
	return strings.TrimPrefix(s, "\n")
}
