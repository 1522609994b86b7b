package format

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

func lookup(charset string) (encoding.Encoding, error) {
	if charset == "" || strings.EqualFold(charset, "UTF-8") || strings.EqualFold(charset, "UTF8") {
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil {
		return nil, fmt.Errorf("unknown charset %q: %w", charset, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("charset %q is not supported", charset)
	}
	return enc, nil
}

// Encode converts text to charset. Characters the charset cannot represent
// are an error.
func Encode(text, charset string) ([]byte, error) {
	enc, err := lookup(charset)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return []byte(text), nil
	}
	out, err := enc.NewEncoder().String(text)
	if err != nil {
		return nil, fmt.Errorf("cannot encode as %s: %w", charset, err)
	}
	return []byte(out), nil
}

// Decode converts bytes in charset to text.
func Decode(data []byte, charset string) (string, error) {
	enc, err := lookup(charset)
	if err != nil {
		return "", err
	}
	if enc == nil {
		return string(data), nil
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("cannot decode %s: %w", charset, err)
	}
	return string(out), nil
}
