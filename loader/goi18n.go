package loader

import (
	"errors"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/lifei6671/xcstrings"
)

var goI18nUnmarshalers = map[string]i18n.UnmarshalFunc{
	"toml": toml.Unmarshal,
	"yaml": yaml.Unmarshal,
	"yml":  yaml.Unmarshal,
}

// decodeGoI18n reads a go-i18n message file. Template bodies are kept
// verbatim; only the plural structure is mapped.
func decodeGoI18n(b *xcstrings.Builder, name string, data []byte) error {
	mf, err := i18n.ParseMessageFileBytes(data, filepath.Base(name), goI18nUnmarshalers)
	if err != nil {
		return err
	}
	if mf.Tag == language.Und {
		return errors.New("cannot determine locale from file name; expected e.g. active.en.toml")
	}
	locale := mf.Tag.String()
	for _, m := range mf.Messages {
		b.Add(locale, m.ID, entryOfMessage(m))
	}
	return nil
}

func entryOfMessage(m *i18n.Message) xcstrings.Entry {
	variants := map[xcstrings.PluralCategory]string{}
	for cat, tpl := range map[xcstrings.PluralCategory]string{
		xcstrings.PluralZero: m.Zero,
		xcstrings.PluralOne:  m.One,
		xcstrings.PluralTwo:  m.Two,
		xcstrings.PluralFew:  m.Few,
		xcstrings.PluralMany: m.Many,
	} {
		if tpl != "" {
			variants[cat] = tpl
		}
	}
	if len(variants) == 0 {
		return xcstrings.Entry{Template: m.Other, Comment: m.Description}
	}
	variants[xcstrings.PluralOther] = m.Other
	return xcstrings.Entry{Variants: variants, Comment: m.Description}
}
