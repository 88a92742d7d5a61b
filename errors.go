package xcstrings

import (
	"errors"
	"fmt"
)

// Resolution errors. Every failure returned by this package unwraps to one of these.
var (
	ErrKeyNotFound           = errors.New("key not found")
	ErrMissingPluralVariant  = errors.New("missing plural variant")
	ErrMalformedTemplate     = errors.New("malformed template")
	ErrArgumentCountMismatch = errors.New("argument count mismatch")
	ErrUnsupportedSpecifier  = errors.New("unsupported specifier")
	ErrArgumentTypeMismatch  = errors.New("argument type mismatch")
	ErrInvalidCatalog        = errors.New("invalid catalog")
)

// ResolveError reports which key and locale a resolution failed for.
type ResolveError struct {
	Key    string
	Locale string
	Err    error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("resolve %q (locale %q): %v", e.Key, e.Locale, e.Err)
}

func (e *ResolveError) Unwrap() error { return e.Err }

// TemplateError points at the byte offset in a template where parsing or rendering failed.
type TemplateError struct {
	Template string
	Offset   int
	Err      error
	Detail   string
}

func (e *TemplateError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%v at offset %d in %q", e.Err, e.Offset, e.Template)
	}
	return fmt.Sprintf("%v at offset %d in %q: %s", e.Err, e.Offset, e.Template, e.Detail)
}

func (e *TemplateError) Unwrap() error { return e.Err }

func templateErr(tpl string, offset int, err error, format string, a ...any) error {
	return &TemplateError{Template: tpl, Offset: offset, Err: err, Detail: fmt.Sprintf(format, a...)}
}
