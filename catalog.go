package xcstrings

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// Entry is one localized value: a single template, or a set of plural variants.
type Entry struct {
	Template string
	Variants map[PluralCategory]string
	// Comment is carried over from the source file for tooling; it never affects resolution.
	Comment string
}

// IsPlural reports whether the entry varies by plural category.
func (e Entry) IsPlural() bool {
	return len(e.Variants) > 0
}

func (e Entry) clone() Entry {
	if e.Variants != nil {
		e.Variants = maps.Clone(e.Variants)
	}
	return e
}

func (e Entry) validate() error {
	if !e.IsPlural() {
		return nil
	}
	if e.Template != "" {
		return errors.New("entry has both a template and plural variants")
	}
	for c := range e.Variants {
		if !c.Valid() {
			return fmt.Errorf("unknown plural category %q", string(c))
		}
	}
	if _, ok := e.Variants[PluralOther]; !ok {
		return fmt.Errorf("plural entry has no %q variant", PluralOther)
	}
	return nil
}

// Catalog is an immutable locale -> key -> Entry mapping.
// It is safe for any number of concurrent readers.
type Catalog struct {
	defaultLocale string
	messages      map[string]map[string]Entry
	fallbacks     map[string][]string
}

// DefaultLocale returns the canonical default locale.
func (c *Catalog) DefaultLocale() string {
	return c.defaultLocale
}

// Locales returns the sorted list of locales present in the catalog.
func (c *Catalog) Locales() []string {
	return slices.Sorted(maps.Keys(c.messages))
}

// Keys returns the sorted keys defined directly under locale, without fallback.
func (c *Catalog) Keys(locale string) []string {
	canon, err := CanonicalLocale(locale)
	if err != nil {
		return nil
	}
	return slices.Sorted(maps.Keys(c.messages[canon]))
}

// Entries returns a copy of the entries defined directly under locale.
func (c *Catalog) Entries(locale string) map[string]Entry {
	canon, err := CanonicalLocale(locale)
	if err != nil {
		return nil
	}
	msgs, ok := c.messages[canon]
	if !ok {
		return nil
	}
	out := make(map[string]Entry, len(msgs))
	for k, e := range msgs {
		out[k] = e.clone()
	}
	return out
}

// Has reports whether key is defined directly under locale.
func (c *Catalog) Has(locale, key string) bool {
	canon, err := CanonicalLocale(locale)
	if err != nil {
		return false
	}
	_, ok := c.messages[canon][key]
	return ok
}

// Lookup finds the entry for key. The exact locale is tried first, then each
// shorter subtag prefix down to the bare language ("en-GB" -> "en"), then any
// extra fallbacks registered with Builder.SetFallbacks, then the default locale.
func (c *Catalog) Lookup(key, locale string) (Entry, error) {
	e, _, err := c.lookup(key, locale)
	return e, err
}

// lookup also returns the locale the entry was found under.
func (c *Catalog) lookup(key, locale string) (Entry, string, error) {
	for _, l := range c.chain(locale) {
		if e, ok := c.messages[l][key]; ok {
			return e.clone(), l, nil
		}
	}
	return Entry{}, "", &ResolveError{Key: key, Locale: locale, Err: ErrKeyNotFound}
}

// chain builds the fallback chain for locale, always ending with the default locale.
func (c *Catalog) chain(locale string) []string {
	var chain []string
	if canon, err := CanonicalLocale(locale); err == nil {
		for l := canon; l != ""; l = parentLocale(l) {
			chain = append(chain, l)
		}
	}
	for _, l := range slices.Clone(chain) {
		for _, fb := range c.fallbacks[l] {
			if !slices.Contains(chain, fb) {
				chain = append(chain, fb)
			}
		}
	}
	if !slices.Contains(chain, c.defaultLocale) {
		chain = append(chain, c.defaultLocale)
	}
	return chain
}

func parentLocale(l string) string {
	i := strings.LastIndexByte(l, '-')
	if i < 0 {
		return ""
	}
	return l[:i]
}

// CanonicalLocale normalizes a locale identifier ("en_gb" -> "en-GB").
func CanonicalLocale(locale string) (string, error) {
	s := strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
	if s == "" {
		return "", errors.New("empty locale")
	}
	tag, err := language.Parse(s)
	if err != nil {
		return "", fmt.Errorf("parse locale %q: %w", locale, err)
	}
	return tag.String(), nil
}

// Builder collects entries and produces an immutable Catalog.
// A Builder is not safe for concurrent use.
type Builder struct {
	defaultLocale string
	messages      map[string]map[string]Entry
	fallbacks     map[string][]string
	errs          []error
}

// NewBuilder starts a catalog whose fallback locale is defaultLocale.
func NewBuilder(defaultLocale string) *Builder {
	return &Builder{
		defaultLocale: defaultLocale,
		messages:      make(map[string]map[string]Entry),
	}
}

// DefaultLocale returns the default locale as given, possibly empty.
func (b *Builder) DefaultLocale() string {
	return b.defaultLocale
}

// SetDefaultLocale changes the fallback locale.
func (b *Builder) SetDefaultLocale(locale string) *Builder {
	b.defaultLocale = locale
	return b
}

// SetFallbacks registers locales consulted for locale after its own subtag
// prefixes and before the default locale, e.g. SetFallbacks("gsw", "de").
// A later call for the same locale replaces the earlier one.
func (b *Builder) SetFallbacks(locale string, fallbacks ...string) *Builder {
	canon, err := CanonicalLocale(locale)
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("fallbacks: %w", err))
		return b
	}
	chain := make([]string, 0, len(fallbacks))
	for _, fb := range fallbacks {
		l, err := CanonicalLocale(fb)
		if err != nil {
			b.errs = append(b.errs, fmt.Errorf("fallbacks for %s: %w", canon, err))
			return b
		}
		chain = append(chain, l)
	}
	if b.fallbacks == nil {
		b.fallbacks = make(map[string][]string)
	}
	b.fallbacks[canon] = chain
	return b
}

// Add registers one entry. Later calls for the same locale and key win.
func (b *Builder) Add(locale, key string, e Entry) *Builder {
	canon, err := CanonicalLocale(locale)
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	if _, ok := b.messages[canon]; !ok {
		b.messages[canon] = make(map[string]Entry)
	}
	b.messages[canon][key] = e.clone()
	return b
}

// AddTemplates registers a batch of single-template entries, merging into what is already there.
func (b *Builder) AddTemplates(locale string, msgs map[string]string) *Builder {
	for k, v := range msgs {
		b.Add(locale, k, Entry{Template: v})
	}
	return b
}

// Merge registers a batch of entries.
func (b *Builder) Merge(locale string, entries map[string]Entry) *Builder {
	for k, e := range entries {
		b.Add(locale, k, e)
	}
	return b
}

// Build validates the collected entries and returns the catalog.
func (b *Builder) Build() (*Catalog, error) {
	errs := slices.Clone(b.errs)

	def, err := CanonicalLocale(b.defaultLocale)
	if err != nil {
		errs = append(errs, fmt.Errorf("default locale: %w", err))
	} else if len(b.messages[def]) == 0 {
		errs = append(errs, fmt.Errorf("default locale %q has no entries", def))
	}

	messages := make(map[string]map[string]Entry, len(b.messages))
	for _, locale := range slices.Sorted(maps.Keys(b.messages)) {
		msgs := b.messages[locale]
		out := make(map[string]Entry, len(msgs))
		for _, key := range slices.Sorted(maps.Keys(msgs)) {
			e := msgs[key]
			if err := e.validate(); err != nil {
				errs = append(errs, fmt.Errorf("%s/%s: %w", locale, key, err))
				continue
			}
			out[key] = e.clone()
		}
		messages[locale] = out
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, errors.Join(errs...))
	}
	fallbacks := make(map[string][]string, len(b.fallbacks))
	for l, chain := range b.fallbacks {
		fallbacks[l] = slices.Clone(chain)
	}
	return &Catalog{defaultLocale: def, messages: messages, fallbacks: fallbacks}, nil
}

// MustBuild is like Build but panics on error. Intended for initialization.
func (b *Builder) MustBuild() *Catalog {
	c, err := b.Build()
	if err != nil {
		panic(err)
	}
	return c
}
