package xcstrings

import (
	"log/slog"
	"sync/atomic"

	"golang.org/x/text/language"
)

// Engine resolves keys against a Catalog. All methods are safe for concurrent use;
// the catalog is only ever replaced whole, through Swap.
type Engine struct {
	catalog   atomic.Pointer[Catalog]
	rule      PluralRule
	formatter *Formatter
	logger    *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithPluralRule sets the strategy used to pick plural categories. The default is SimpleRule.
func WithPluralRule(r PluralRule) Option {
	return func(e *Engine) {
		if r != nil {
			e.rule = r
		}
	}
}

// WithFormatter sets the formatter used to render templates.
func WithFormatter(f *Formatter) Option {
	return func(e *Engine) {
		if f != nil {
			e.formatter = f
		}
	}
}

// WithLogger sets the logger used by Locale when a lookup fails.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an Engine serving c.
func New(c *Catalog, opts ...Option) *Engine {
	e := &Engine{
		rule:      SimpleRule{},
		formatter: NewFormatter(),
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.catalog.Store(c)
	return e
}

// Catalog returns the catalog currently being served.
func (e *Engine) Catalog() *Catalog {
	return e.catalog.Load()
}

// Swap atomically replaces the catalog and returns the previous one.
// Resolutions already in flight finish against the catalog they started with.
func (e *Engine) Swap(c *Catalog) *Catalog {
	return e.catalog.Swap(c)
}

// Resolve renders key for locale. For plural entries the first numeric
// argument is the quantity; without one the "other" variant is used.
func (e *Engine) Resolve(key, locale string, args ...Arg) (string, error) {
	q, ok := quantityFromArgs(args)
	if !ok {
		return e.resolve(key, locale, nil, args)
	}
	return e.resolve(key, locale, &q, args)
}

// ResolvePlural renders key for locale, picking the plural variant for quantity.
func (e *Engine) ResolvePlural(key, locale string, quantity float64, args ...Arg) (string, error) {
	return e.resolve(key, locale, &quantity, args)
}

func (e *Engine) resolve(key, locale string, quantity *float64, args []Arg) (string, error) {
	c := e.catalog.Load()
	if c == nil {
		return "", &ResolveError{Key: key, Locale: locale, Err: ErrKeyNotFound}
	}

	entry, found, err := c.lookup(key, locale)
	if err != nil {
		return "", err
	}
	tag := language.Make(found)

	var tpl string
	switch {
	case !entry.IsPlural():
		tpl = entry.Template
	case quantity == nil:
		var ok bool
		if tpl, ok = entry.Variants[PluralOther]; !ok {
			err = ErrMissingPluralVariant
		}
	default:
		tpl, _, err = SelectVariant(entry, *quantity, tag, e.rule)
	}
	if err != nil {
		return "", &ResolveError{Key: key, Locale: locale, Err: err}
	}

	out, err := e.formatter.RenderLocale(tag, tpl, args...)
	if err != nil {
		return "", &ResolveError{Key: key, Locale: locale, Err: err}
	}
	return out, nil
}

// Locale is a resolution view bound to one locale. Its methods never fail:
// on any error they log and return the key itself.
type Locale struct {
	engine *Engine
	lang   string
}

// Locale returns a view bound to lang, e.g. "fr" or "en-GB".
func (e *Engine) Locale(lang string) *Locale {
	return &Locale{engine: e, lang: lang}
}

// Lang returns the locale the view was created for.
func (l *Locale) Lang() string {
	return l.lang
}

// T translates key, e.g. T("numberOfItems", xcstrings.Int(4), xcstrings.String("400")).
func (l *Locale) T(key string, args ...Arg) string {
	if l.engine == nil {
		return key
	}
	out, err := l.engine.Resolve(key, l.lang, args...)
	return l.fallback(key, out, err)
}

// N translates key with an explicit plural quantity.
func (l *Locale) N(key string, quantity float64, args ...Arg) string {
	if l.engine == nil {
		return key
	}
	out, err := l.engine.ResolvePlural(key, l.lang, quantity, args...)
	return l.fallback(key, out, err)
}

func (l *Locale) fallback(key, out string, err error) string {
	if err == nil {
		return out
	}
	l.engine.logger.Warn("localized string fell back to key",
		slog.String("key", key),
		slog.String("locale", l.lang),
		slog.Any("error", err))
	return key
}
