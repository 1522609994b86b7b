package save

import (
	"errors"
	"fmt"

	"github.com/conduit-lang/bibkit/internal/model"
)

// ErrInvalidOrder is wrapped by ConfigurationError for orders that cannot
// be used when saving.
var ErrInvalidOrder = errors.New("order type cannot be used for saving")

// ConfigurationError reports an invalid save configuration.
type ConfigurationError struct {
	Order model.OrderType
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("save configuration: order %q: %v", e.Order, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// ErrorKind tells which part of the library failed to encode.
type ErrorKind int

const (
	KindEntry ErrorKind = iota
	KindString
	KindMetadata
)

func (k ErrorKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindMetadata:
		return "metadata"
	default:
		return "entry"
	}
}

// WriteError carries the citation key, macro name or metadata key of the
// item that could not be encoded.
type WriteError struct {
	Kind  ErrorKind
	Key   string
	Field string
	Err   error
}

func (e *WriteError) Error() string {
	key := e.Key
	if key == "" {
		key = "<no key>"
	}
	if e.Field != "" {
		return fmt.Sprintf("write %s %s, field %s: %v", e.Kind, key, e.Field, e.Err)
	}
	return fmt.Sprintf("write %s %s: %v", e.Kind, key, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
