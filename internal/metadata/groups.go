package metadata

import (
	"fmt"
	"strconv"
	"strings"
)

// GroupKind is the serialized type name of a group.
type GroupKind string

const (
	AllEntriesGroup GroupKind = "AllEntriesGroup"
	StaticGroup     GroupKind = "StaticGroup"
	KeywordGroup    GroupKind = "KeywordGroup"
	SearchGroup     GroupKind = "SearchGroup"
)

// Hierarchy tells how a group combines with its parent.
type Hierarchy int

const (
	Independent Hierarchy = iota
	Refining
	Including
)

// Group is a node of the group tree.
type Group struct {
	Kind        GroupKind
	Name        string
	Hierarchy   Hierarchy
	Expanded    bool
	Color       string
	Icon        string
	Description string

	// Field and Keyword apply to keyword groups, Query to search groups.
	Field         string
	Keyword       string
	Query         string
	CaseSensitive bool
	Regex         bool

	Children []*Group
}

// NewRootGroup returns the all-entries root.
func NewRootGroup() *Group {
	return &Group{Kind: AllEntriesGroup, Name: "All entries"}
}

// Add appends children and returns g.
func (g *Group) Add(children ...*Group) *Group {
	g.Children = append(g.Children, children...)
	return g
}

// Walk visits g and its descendants in pre-order.
func (g *Group) Walk(fn func(level int, node *Group)) {
	var walk func(level int, node *Group)
	walk = func(level int, node *Group) {
		fn(level, node)
		for _, c := range node.Children {
			walk(level+1, c)
		}
	}
	walk(0, g)
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// line returns the unquoted serialization of a single node.
func (g *Group) line() string {
	var b strings.Builder
	b.WriteString(string(g.Kind))
	b.WriteByte(':')
	if g.Kind == AllEntriesGroup {
		return b.String()
	}

	fields := []string{Quote(g.Name), strconv.Itoa(int(g.Hierarchy))}
	switch g.Kind {
	case StaticGroup:
		fields = append(fields, flag(g.Expanded))
	case KeywordGroup:
		fields = append(fields, Quote(g.Field), Quote(g.Keyword), flag(g.CaseSensitive), flag(g.Regex), flag(g.Expanded))
	case SearchGroup:
		fields = append(fields, Quote(g.Query), flag(g.CaseSensitive), flag(g.Regex), flag(g.Expanded))
	}
	fields = append(fields, Quote(g.Color), Quote(g.Icon), Quote(g.Description))

	for _, f := range fields {
		b.WriteString(f)
		b.WriteByte(Separator)
	}
	return b.String()
}

func serializeGroups(root *Group, newline string) string {
	if root == nil || len(root.Children) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(newline)
	root.Walk(func(level int, node *Group) {
		b.WriteString(Quote(strconv.Itoa(level) + " " + node.line()))
		b.WriteByte(Separator)
		b.WriteString(newline)
	})
	return b.String()
}

func parseGroups(value string) (*Group, error) {
	var (
		root  *Group
		stack []*Group
	)
	for _, raw := range ParseList(value) {
		raw = strings.TrimLeft(raw, "\r\n")
		if raw == "" {
			continue
		}
		space := strings.IndexByte(raw, ' ')
		if space < 0 {
			return nil, fmt.Errorf("group line %q: missing level", raw)
		}
		level, err := strconv.Atoi(raw[:space])
		if err != nil || level < 0 {
			return nil, fmt.Errorf("group line %q: invalid level", raw)
		}
		node, err := parseGroup(raw[space+1:])
		if err != nil {
			return nil, err
		}

		if level == 0 {
			if root != nil {
				return nil, fmt.Errorf("group line %q: second root", raw)
			}
			root = node
			stack = []*Group{root}
			continue
		}
		if level > len(stack) {
			return nil, fmt.Errorf("group line %q: level %d without parent", raw, level)
		}
		parent := stack[level-1]
		parent.Children = append(parent.Children, node)
		stack = append(stack[:level], node)
	}
	return root, nil
}

func parseGroup(s string) (*Group, error) {
	colon := strings.IndexByte(s, ':')
	if colon < 0 {
		return nil, fmt.Errorf("group %q: missing type", s)
	}
	g := &Group{Kind: GroupKind(s[:colon])}
	if g.Kind == AllEntriesGroup {
		g.Name = "All entries"
		return g, nil
	}

	parts := ParseList(s[colon+1:])
	get := func(i int) string {
		if i < len(parts) {
			return parts[i]
		}
		return ""
	}
	if len(parts) < 2 {
		return nil, fmt.Errorf("group %q: too few fields", s)
	}
	g.Name = get(0)
	h, err := strconv.Atoi(get(1))
	if err != nil || h < int(Independent) || h > int(Including) {
		return nil, fmt.Errorf("group %q: invalid hierarchy %q", g.Name, get(1))
	}
	g.Hierarchy = Hierarchy(h)

	var rest int
	switch g.Kind {
	case StaticGroup:
		g.Expanded = get(2) == "1"
		rest = 3
	case KeywordGroup:
		g.Field, g.Keyword = get(2), get(3)
		g.CaseSensitive, g.Regex, g.Expanded = get(4) == "1", get(5) == "1", get(6) == "1"
		rest = 7
	case SearchGroup:
		g.Query = get(2)
		g.CaseSensitive, g.Regex, g.Expanded = get(3) == "1", get(4) == "1", get(5) == "1"
		rest = 6
	default:
		return nil, fmt.Errorf("group %q: unknown type %s", g.Name, g.Kind)
	}
	g.Color, g.Icon, g.Description = get(rest), get(rest+1), get(rest+2)
	return g, nil
}
