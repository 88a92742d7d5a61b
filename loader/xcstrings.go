package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/lifei6671/xcstrings"
)

// String Catalog JSON, as written by Xcode:
//
//	{
//	  "sourceLanguage": "en",
//	  "strings": {
//	    "numberOfSongs": {
//	      "extractionState": "manual",
//	      "localizations": {
//	        "en": {"variations": {"plural": {
//	          "one":   {"stringUnit": {"state": "translated", "value": "%lld song"}},
//	          "other": {"stringUnit": {"state": "translated", "value": "%lld songs"}}
//	        }}}
//	      }
//	    }
//	  },
//	  "version": "1.0"
//	}
type stringCatalog struct {
	SourceLanguage string                   `json:"sourceLanguage"`
	Strings        map[string]catalogString `json:"strings"`
	Version        string                   `json:"version"`
}

type catalogString struct {
	Comment         string                  `json:"comment"`
	ExtractionState string                  `json:"extractionState"`
	ShouldTranslate *bool                   `json:"shouldTranslate"`
	Localizations   map[string]localization `json:"localizations"`
}

type localization struct {
	StringUnit *stringUnit `json:"stringUnit"`
	Variations *variations `json:"variations"`
}

type variations struct {
	Plural map[string]localization `json:"plural"`
	Device map[string]localization `json:"device"`
}

type stringUnit struct {
	State string `json:"state"`
	Value string `json:"value"`
}

func decodeXCStrings(b *xcstrings.Builder, data []byte) error {
	var sc stringCatalog
	if err := json.Unmarshal(data, &sc); err != nil {
		return fmt.Errorf("json unmarshal: %w", err)
	}
	if sc.SourceLanguage == "" {
		return errors.New("missing sourceLanguage")
	}
	if b.DefaultLocale() == "" {
		b.SetDefaultLocale(sc.SourceLanguage)
	}

	for _, key := range slices.Sorted(maps.Keys(sc.Strings)) {
		s := sc.Strings[key]
		translate := s.ShouldTranslate == nil || *s.ShouldTranslate

		// Xcode uses the key itself as the source string until one is entered.
		if _, ok := s.Localizations[sc.SourceLanguage]; !ok {
			b.Add(sc.SourceLanguage, key, xcstrings.Entry{Template: key, Comment: s.Comment})
		}

		for _, lang := range slices.Sorted(maps.Keys(s.Localizations)) {
			if !translate && lang != sc.SourceLanguage {
				continue
			}
			e, ok, err := entryOfLocalization(s.Localizations[lang])
			if err != nil {
				return fmt.Errorf("string %q (%s): %w", key, lang, err)
			}
			if !ok {
				continue
			}
			e.Comment = s.Comment
			b.Add(lang, key, e)
		}
	}
	return nil
}

// entryOfLocalization reports ok=false when the localization carries no value.
// Device variations collapse to their "other" device.
func entryOfLocalization(l localization) (xcstrings.Entry, bool, error) {
	if l.StringUnit != nil {
		return xcstrings.Entry{Template: l.StringUnit.Value}, true, nil
	}
	if l.Variations == nil {
		return xcstrings.Entry{}, false, nil
	}
	if len(l.Variations.Plural) > 0 {
		variants := make(map[xcstrings.PluralCategory]string, len(l.Variations.Plural))
		for cat, v := range l.Variations.Plural {
			if v.StringUnit == nil {
				return xcstrings.Entry{}, false, fmt.Errorf("plural variant %q has no stringUnit", cat)
			}
			variants[xcstrings.PluralCategory(cat)] = v.StringUnit.Value
		}
		return xcstrings.Entry{Variants: variants}, true, nil
	}
	if other, ok := l.Variations.Device["other"]; ok {
		return entryOfLocalization(other)
	}
	return xcstrings.Entry{}, false, nil
}
