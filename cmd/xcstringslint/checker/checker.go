package checker

import (
	"fmt"
	"slices"

	"github.com/lifei6671/xcstrings"
	"github.com/lifei6671/xcstrings/loader"
)

// sampleQuantities cover every CLDR category for the common rules.
var sampleQuantities = []float64{0, 1, 2, 3, 5, 11, 21, 1.5}

type Result struct {
	DefaultLocale string
	Languages     []string
	AllKeys       []string
	MissingKeys   map[string][]string
	RedundantKeys map[string][]string
	SyntaxErrors  map[string]map[string]error // lang -> key -> err
	// SignatureMismatches holds keys whose specifiers differ from the default locale's.
	SignatureMismatches map[string]map[string]string
	RenderErrors        map[string]map[string]error
}

// HasIssues reports whether any check found something.
func (r *Result) HasIssues() bool {
	for _, m := range []map[string][]string{r.MissingKeys, r.RedundantKeys} {
		for _, arr := range m {
			if len(arr) > 0 {
				return true
			}
		}
	}
	for _, errs := range r.SyntaxErrors {
		if len(errs) > 0 {
			return true
		}
	}
	for _, errs := range r.RenderErrors {
		if len(errs) > 0 {
			return true
		}
	}
	for _, m := range r.SignatureMismatches {
		if len(m) > 0 {
			return true
		}
	}
	return false
}

// CheckFiles loads the named files into one catalog and checks it.
func CheckFiles(defaultLocale string, paths []string, opts ...xcstrings.Option) (*Result, error) {
	c, err := loader.LoadFiles(defaultLocale, paths...)
	if err != nil {
		return nil, err
	}
	return Check(c, opts...), nil
}

// Check performs:
//  1. key alignment against the default locale (missing / redundant)
//  2. template syntax check via xcstrings.ValidateTemplate
//  3. specifier signature comparison against the default locale
//  4. a render of every entry through an Engine built with opts
func Check(c *xcstrings.Catalog, opts ...xcstrings.Option) *Result {
	def := c.DefaultLocale()
	defEntries := c.Entries(def)
	res := &Result{
		DefaultLocale:       def,
		Languages:           c.Locales(),
		AllKeys:             c.Keys(def),
		MissingKeys:         make(map[string][]string),
		RedundantKeys:       make(map[string][]string),
		SyntaxErrors:        make(map[string]map[string]error),
		SignatureMismatches: make(map[string]map[string]string),
		RenderErrors:        make(map[string]map[string]error),
	}

	for _, lang := range res.Languages {
		if lang == def {
			continue
		}
		for _, k := range res.AllKeys {
			if !c.Has(lang, k) {
				res.MissingKeys[lang] = append(res.MissingKeys[lang], k)
			}
		}
		for _, k := range c.Keys(lang) {
			if _, ok := defEntries[k]; !ok {
				res.RedundantKeys[lang] = append(res.RedundantKeys[lang], k)
			}
		}
	}

	engine := xcstrings.New(c, opts...)
	for _, lang := range res.Languages {
		entries := c.Entries(lang)
		for _, key := range c.Keys(lang) {
			e := entries[key]
			if err := validateEntry(e); err != nil {
				addErr(res.SyntaxErrors, lang, key, err)
				continue
			}

			ref, ok := defEntries[key]
			if !ok {
				continue
			}
			refSig, err := xcstrings.Signature(representative(ref))
			if err != nil {
				// reported against the default locale
				continue
			}
			if lang != def {
				sig, _ := xcstrings.Signature(representative(e))
				if !slices.Equal(sig, refSig) {
					if res.SignatureMismatches[lang] == nil {
						res.SignatureMismatches[lang] = make(map[string]string)
					}
					res.SignatureMismatches[lang][key] = fmt.Sprintf("%v, %s has %v", sig, def, refSig)
				}
			}

			if err := renderEntry(engine, lang, key, e, refSig); err != nil {
				addErr(res.RenderErrors, lang, key, err)
			}
		}
	}
	return res
}

func addErr(m map[string]map[string]error, lang, key string, err error) {
	if m[lang] == nil {
		m[lang] = make(map[string]error)
	}
	m[lang][key] = err
}

func validateEntry(e xcstrings.Entry) error {
	if !e.IsPlural() {
		return xcstrings.ValidateTemplate(e.Template)
	}
	for _, cat := range xcstrings.PluralCategories {
		tpl, ok := e.Variants[cat]
		if !ok {
			continue
		}
		if err := xcstrings.ValidateTemplate(tpl); err != nil {
			return fmt.Errorf("[%s] %w", cat, err)
		}
	}
	return nil
}

// representative is the template whose specifiers stand for the whole entry.
func representative(e xcstrings.Entry) string {
	if e.IsPlural() {
		return e.Variants[xcstrings.PluralOther]
	}
	return e.Template
}

func renderEntry(engine *xcstrings.Engine, lang, key string, e xcstrings.Entry, sig []xcstrings.SpecKind) error {
	quantities := []float64{1}
	if e.IsPlural() {
		quantities = sampleQuantities
	}
	for _, q := range quantities {
		if _, err := engine.ResolvePlural(key, lang, q, sampleArgs(sig, q)...); err != nil {
			return fmt.Errorf("quantity %v: %w", q, err)
		}
	}
	return nil
}

// sampleArgs builds arguments matching sig, with numeric slots set to q.
func sampleArgs(sig []xcstrings.SpecKind, q float64) []xcstrings.Arg {
	args := make([]xcstrings.Arg, len(sig))
	for i, k := range sig {
		switch k {
		case xcstrings.KindInteger:
			args[i] = xcstrings.Int(int64(q))
		case xcstrings.KindFloat:
			args[i] = xcstrings.Float(q)
		default:
			args[i] = xcstrings.String("x")
		}
	}
	return args
}
