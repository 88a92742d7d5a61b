package xcstrings

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
)

// PluralCategory is a CLDR plural category name.
type PluralCategory string

const (
	PluralZero  PluralCategory = "zero"
	PluralOne   PluralCategory = "one"
	PluralTwo   PluralCategory = "two"
	PluralFew   PluralCategory = "few"
	PluralMany  PluralCategory = "many"
	PluralOther PluralCategory = "other"
)

// PluralCategories lists every category in CLDR order.
var PluralCategories = []PluralCategory{PluralZero, PluralOne, PluralTwo, PluralFew, PluralMany, PluralOther}

// Valid reports whether c is one of the six CLDR categories.
func (c PluralCategory) Valid() bool {
	switch c {
	case PluralZero, PluralOne, PluralTwo, PluralFew, PluralMany, PluralOther:
		return true
	}
	return false
}

// PluralRule maps a quantity to a plural category for a language.
type PluralRule interface {
	Category(tag language.Tag, quantity float64) PluralCategory
}

// PluralRuleFunc adapts a function to PluralRule.
type PluralRuleFunc func(tag language.Tag, quantity float64) PluralCategory

func (f PluralRuleFunc) Category(tag language.Tag, quantity float64) PluralCategory {
	return f(tag, quantity)
}

// SimpleRule is the English rule applied to every language: "one" for exactly 1, "other" otherwise.
type SimpleRule struct{}

func (SimpleRule) Category(_ language.Tag, quantity float64) PluralCategory {
	if quantity == 1 {
		return PluralOne
	}
	return PluralOther
}

// CLDRRule selects categories with the CLDR cardinal rules shipped in golang.org/x/text.
type CLDRRule struct{}

func (CLDRRule) Category(tag language.Tag, quantity float64) PluralCategory {
	i, v, w, f, t := pluralOperands(quantity)
	switch plural.Cardinal.MatchPlural(tag, i, v, w, f, t) {
	case plural.Zero:
		return PluralZero
	case plural.One:
		return PluralOne
	case plural.Two:
		return PluralTwo
	case plural.Few:
		return PluralFew
	case plural.Many:
		return PluralMany
	default:
		return PluralOther
	}
}

// pluralOperands derives the CLDR operands from the shortest decimal form of q:
// i integer digits, v/w visible fraction digit count with/without trailing
// zeros, f/t the fraction digits with/without trailing zeros.
func pluralOperands(q float64) (i, v, w, f, t int) {
	q = math.Abs(q)
	s := strconv.FormatFloat(q, 'f', -1, 64)
	intPart, frac, _ := strings.Cut(s, ".")
	i, _ = strconv.Atoi(intPart)
	if frac == "" {
		return i, 0, 0, 0, 0
	}
	v = len(frac)
	f, _ = strconv.Atoi(frac)
	trimmed := strings.TrimRight(frac, "0")
	w = len(trimmed)
	t, _ = strconv.Atoi(trimmed)
	return i, v, w, f, t
}

// SelectVariant returns the template to render for quantity. A single-template
// entry is returned as is. For a plural entry, the variant for the rule's
// category is used, falling back to "other".
func SelectVariant(e Entry, quantity float64, tag language.Tag, rule PluralRule) (string, PluralCategory, error) {
	if !e.IsPlural() {
		return e.Template, "", nil
	}
	if rule == nil {
		rule = SimpleRule{}
	}
	cat := rule.Category(tag, quantity)
	if tpl, ok := e.Variants[cat]; ok {
		return tpl, cat, nil
	}
	if tpl, ok := e.Variants[PluralOther]; ok {
		return tpl, PluralOther, nil
	}
	return "", cat, ErrMissingPluralVariant
}

// quantityFromArgs returns the first numeric argument, which is what drives
// plural selection when the caller does not pass a quantity explicitly.
func quantityFromArgs(args []Arg) (float64, bool) {
	for _, a := range args {
		switch a.Kind() {
		case ArgInt:
			return float64(a.i), true
		case ArgFloat:
			return a.f, true
		}
	}
	return 0, false
}
