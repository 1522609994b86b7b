package bibtex

import "strings"

// Token is a piece of a field value: either literal text or a macro reference.
type Token struct {
	Text  string
	Macro bool
}

// Tokenize splits a value into text runs and #name# macro references. Only a
// '#' at brace depth zero opens a reference; "\#" and '#' inside braces are
// literal, and "##" is dropped.
func Tokenize(field, value string) ([]Token, error) {
	return tokenize(field, value, true)
}

// References returns the macro names referenced by value in order of
// appearance. Malformed tails are ignored.
func References(value string) []string {
	tokens, _ := tokenize("", value, false)
	var names []string
	for _, t := range tokens {
		if t.Macro {
			names = append(names, t.Text)
		}
	}
	return names
}

func tokenize(field, value string, strict bool) ([]Token, error) {
	var (
		tokens []Token
		text   strings.Builder
		depth  int
	)
	flush := func() {
		if text.Len() > 0 {
			tokens = append(tokens, Token{Text: text.String()})
			text.Reset()
		}
	}

	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case c == '\\' && i+1 < len(value) && isEscapable(value[i+1]):
			text.WriteByte(c)
			text.WriteByte(value[i+1])
			i++
		case c == '{':
			depth++
			text.WriteByte(c)
		case c == '}':
			depth--
			if depth < 0 {
				if strict {
					return nil, invalid(field, value, "unexpected closing brace")
				}
				depth = 0
			}
			text.WriteByte(c)
		case c == '#' && depth == 0:
			end := closingHash(value, i+1)
			if end < 0 {
				if strict {
					return nil, invalid(field, value, "unpaired '#'")
				}
				flush()
				return tokens, nil
			}
			name := value[i+1 : end]
			if strings.ContainsAny(name, "{}") {
				if strict {
					return nil, invalid(field, value, "braces inside macro reference")
				}
				flush()
				return tokens, nil
			}
			if name != "" {
				flush()
				tokens = append(tokens, Token{Text: name, Macro: true})
			}
			i = end
		default:
			text.WriteByte(c)
		}
	}
	if depth != 0 && strict {
		return nil, invalid(field, value, "unbalanced braces")
	}
	flush()
	return tokens, nil
}

func closingHash(value string, from int) int {
	for j := from; j < len(value); j++ {
		switch value[j] {
		case '\\':
			j++
		case '#':
			return j
		}
	}
	return -1
}

func isEscapable(c byte) bool {
	return c == '#' || c == '{' || c == '}'
}

// CheckBraces verifies that unescaped braces in value are balanced.
func CheckBraces(field, value string) error {
	depth := 0
	for i := 0; i < len(value); i++ {
		switch value[i] {
		case '\\':
			if i+1 < len(value) && (value[i+1] == '{' || value[i+1] == '}') {
				i++
			}
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return invalid(field, value, "unexpected closing brace")
			}
		}
	}
	if depth != 0 {
		return invalid(field, value, "unbalanced braces")
	}
	return nil
}
