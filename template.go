package xcstrings

import (
	"errors"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

///////////////////////////////////////////////////////////////////////////////
// AST DEFINITIONS
///////////////////////////////////////////////////////////////////////////////

// Node is one segment of a parsed template.
type Node interface {
	// Eval renders the node against args.
	Eval(f *Formatter, tag language.Tag, args []Arg) (string, error)
}

// TextNode is a literal run of text, with %% already collapsed to %.
type TextNode struct {
	Text string
}

func (t *TextNode) Eval(_ *Formatter, _ language.Tag, _ []Arg) (string, error) {
	return t.Text, nil
}

// FormatSpecifier describes one substitution point.
type FormatSpecifier struct {
	Kind SpecKind
	// Position is the explicit 1-based position from %n$, or 0 when implicit.
	Position int
	// Index is the 0-based argument index the specifier consumes.
	Index int
	// Precision is -1 when the specifier does not declare one.
	Precision int
	Length    string
	Verb      byte
	Offset    int
	Raw       string
}

// SpecifierNode renders one FormatSpecifier.
type SpecifierNode struct {
	Spec FormatSpecifier
}

func (s *SpecifierNode) Eval(f *Formatter, tag language.Tag, args []Arg) (string, error) {
	return f.formatArg(s.Spec, tag, args[s.Spec.Index])
}

// Template is a parsed template.
type Template struct {
	Source     string
	Nodes      []Node
	Specifiers []FormatSpecifier
	Positional bool
	// ArgCount is the minimum number of arguments rendering needs.
	ArgCount int
}

// Signature returns the kind expected at each argument index. Gaps in
// positional templates are KindUnknown.
func (t *Template) Signature() []SpecKind {
	sig := make([]SpecKind, t.ArgCount)
	for _, s := range t.Specifiers {
		if sig[s.Index] == KindUnknown {
			sig[s.Index] = s.Kind
		}
	}
	return sig
}

///////////////////////////////////////////////////////////////////////////////
// TEMPLATE PARSER
///////////////////////////////////////////////////////////////////////////////

// MaxArgPosition is the largest n accepted in %n$.
const MaxArgPosition = 1 << 16

// ParseTemplate parses printf-style specifiers in tpl:
//
//	%[n$][.p][length]verb
//
// where verb is one of d i u (integer), f F (float), @ s (string).
// A template uses either positional (%1$d) or implicit (%d) specifiers, never both.
func ParseTemplate(tpl string) (*Template, error) {
	t := &Template{Source: tpl}
	var buf strings.Builder
	implicit, positional := 0, false

	flush := func() {
		if buf.Len() > 0 {
			t.Nodes = append(t.Nodes, &TextNode{Text: buf.String()})
			buf.Reset()
		}
	}

	n := len(tpl)
	i := 0
	for i < n {
		if tpl[i] != '%' {
			buf.WriteByte(tpl[i])
			i++
			continue
		}

		start := i
		i++
		if i >= n {
			return nil, templateErr(tpl, start, ErrMalformedTemplate, "dangling '%%'")
		}
		if tpl[i] == '%' {
			buf.WriteByte('%')
			i++
			continue
		}

		spec := FormatSpecifier{Precision: -1, Offset: start}

		// %n$
		j := i
		for j < n && isDigit(tpl[j]) {
			j++
		}
		if j > i && j < n && tpl[j] == '$' {
			pos, err := strconv.Atoi(tpl[i:j])
			if err != nil || pos == 0 || pos > MaxArgPosition {
				return nil, templateErr(tpl, start, ErrMalformedTemplate, "invalid position %q", tpl[i:j])
			}
			spec.Position = pos
			i = j + 1
		}

		// .precision
		if i < n && tpl[i] == '.' {
			i++
			k := i
			for k < n && isDigit(tpl[k]) {
				k++
			}
			if k == i {
				return nil, templateErr(tpl, start, ErrMalformedTemplate, "precision without digits")
			}
			spec.Precision, _ = strconv.Atoi(tpl[i:k])
			i = k
		}

		l := i
		for i < n && isLengthByte(tpl[i]) {
			i++
		}
		spec.Length = tpl[l:i]
		if _, ok := lengthModifiers[spec.Length]; !ok {
			return nil, templateErr(tpl, start, ErrUnsupportedSpecifier, "length modifier %q", spec.Length)
		}

		if i >= n {
			if spec.Length != "" {
				return nil, templateErr(tpl, start, ErrUnsupportedSpecifier, "%q", tpl[start:])
			}
			return nil, templateErr(tpl, start, ErrMalformedTemplate, "missing conversion verb")
		}
		spec.Verb = tpl[i]
		i++
		spec.Raw = tpl[start:i]

		kind, ok := lookupVerb(spec.Verb)
		if !ok {
			return nil, templateErr(tpl, start, ErrUnsupportedSpecifier, "%q", spec.Raw)
		}
		spec.Kind = kind

		if spec.Position > 0 {
			positional = true
			spec.Index = spec.Position - 1
		} else {
			spec.Index = implicit
			implicit++
		}
		if positional && implicit > 0 {
			return nil, templateErr(tpl, start, ErrMalformedTemplate, "positional and non-positional specifiers mixed")
		}
		if spec.Index+1 > t.ArgCount {
			t.ArgCount = spec.Index + 1
		}

		flush()
		t.Specifiers = append(t.Specifiers, spec)
		t.Nodes = append(t.Nodes, &SpecifierNode{Spec: spec})
	}
	flush()

	t.Positional = positional
	return t, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// ValidateTemplate reports the first syntax problem in tpl, if any.
func ValidateTemplate(tpl string) error {
	_, err := ParseTemplate(tpl)
	return err
}

// Signature parses tpl and returns the kind expected at each argument index.
func Signature(tpl string) ([]SpecKind, error) {
	t, err := ParseTemplate(tpl)
	if err != nil {
		return nil, err
	}
	return t.Signature(), nil
}

///////////////////////////////////////////////////////////////////////////////
// FORMATTER
///////////////////////////////////////////////////////////////////////////////

// DefaultFloatPrecision applies to float specifiers that do not declare a precision.
const DefaultFloatPrecision = 2

// Formatter renders templates. It caches parsed templates and is safe for concurrent use.
type Formatter struct {
	precision int
	grouping  bool
	cache     sync.Map // string -> *Template
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter)

// WithFloatPrecision sets the precision used by %f and %lf without an explicit one.
func WithFloatPrecision(p int) FormatterOption {
	return func(f *Formatter) {
		if p >= 0 {
			f.precision = p
		}
	}
}

// WithDigitGrouping renders numbers with the locale's grouping and decimal separators.
func WithDigitGrouping(on bool) FormatterOption {
	return func(f *Formatter) {
		f.grouping = on
	}
}

// NewFormatter returns a Formatter.
func NewFormatter(opts ...FormatterOption) *Formatter {
	f := &Formatter{precision: DefaultFloatPrecision}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Parse returns the parsed template, from cache when possible.
func (f *Formatter) Parse(tpl string) (*Template, error) {
	if t, ok := f.cache.Load(tpl); ok {
		return t.(*Template), nil
	}
	t, err := ParseTemplate(tpl)
	if err != nil {
		return nil, err
	}
	f.cache.Store(tpl, t)
	return t, nil
}

// Render formats tpl with args using plain, locale-neutral number rendering.
func (f *Formatter) Render(tpl string, args ...Arg) (string, error) {
	return f.RenderLocale(language.Und, tpl, args...)
}

// RenderLocale formats tpl with args. tag only matters when digit grouping is on.
func (f *Formatter) RenderLocale(tag language.Tag, tpl string, args ...Arg) (string, error) {
	t, err := f.Parse(tpl)
	if err != nil {
		return "", err
	}
	return f.Execute(t, tag, args)
}

// Execute renders an already parsed template.
func (f *Formatter) Execute(t *Template, tag language.Tag, args []Arg) (string, error) {
	if len(args) < t.ArgCount {
		for _, s := range t.Specifiers {
			if s.Index >= len(args) {
				return "", templateErr(t.Source, s.Offset, ErrArgumentCountMismatch,
					"%s needs argument %d, got %d", s.Raw, s.Index+1, len(args))
			}
		}
	}

	var buf strings.Builder
	for _, node := range t.Nodes {
		s, err := node.Eval(f, tag, args)
		if err != nil {
			var te *TemplateError
			if errors.As(err, &te) && te.Template == "" {
				te.Template = t.Source
			}
			return "", err
		}
		buf.WriteString(s)
	}
	return buf.String(), nil
}

func (f *Formatter) formatArg(spec FormatSpecifier, tag language.Tag, a Arg) (string, error) {
	mismatch := func() error {
		return &TemplateError{
			Err:    ErrArgumentTypeMismatch,
			Offset: spec.Offset,
			Detail: spec.Raw + " expects " + spec.Kind.String() + ", got " + a.Kind().String(),
		}
	}

	switch spec.Kind {
	case KindInteger:
		v, ok := a.Int64()
		if !ok {
			return "", mismatch()
		}
		if f.grouping {
			return message.NewPrinter(tag).Sprintf("%v", number.Decimal(v)), nil
		}
		return strconv.FormatInt(v, 10), nil

	case KindFloat:
		v, ok := a.Float64()
		if !ok {
			return "", mismatch()
		}
		prec := spec.Precision
		if prec < 0 {
			prec = f.precision
		}
		if f.grouping {
			return message.NewPrinter(tag).Sprintf("%v", number.Decimal(v, number.Scale(prec))), nil
		}
		return strconv.FormatFloat(v, 'f', prec, 64), nil

	case KindString:
		if a.Kind() == ArgInvalid {
			return "", mismatch()
		}
		return a.String(), nil
	}
	return "", &TemplateError{Err: ErrUnsupportedSpecifier, Offset: spec.Offset, Detail: spec.Raw}
}
