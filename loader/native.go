package loader

import (
	"fmt"
	"maps"
	"slices"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/lifei6671/xcstrings"
)

// document is the native file shape:
//
//	language: en
//	messages:
//	  greeting_message: Hello!
//	  numberOfSongs:
//	    one: "%lld song"
//	    other: "%lld songs"
type document struct {
	Language string         `yaml:"language" toml:"language"`
	Messages map[string]any `yaml:"messages" toml:"messages"`
}

func decodeYAML(b *xcstrings.Builder, name string, data []byte) error {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("yaml unmarshal: %w", err)
	}
	if doc.Language == "" {
		return decodeGoI18n(b, name, data)
	}
	return addDocument(b, doc)
}

func decodeTOML(b *xcstrings.Builder, name string, data []byte) error {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("toml unmarshal: %w", err)
	}
	if doc.Language == "" {
		return decodeGoI18n(b, name, data)
	}
	return addDocument(b, doc)
}

func addDocument(b *xcstrings.Builder, doc document) error {
	for _, key := range slices.Sorted(maps.Keys(doc.Messages)) {
		e, err := entryOf(doc.Messages[key])
		if err != nil {
			return fmt.Errorf("message %q: %w", key, err)
		}
		b.Add(doc.Language, key, e)
	}
	return nil
}

func entryOf(v any) (xcstrings.Entry, error) {
	switch m := v.(type) {
	case string:
		return xcstrings.Entry{Template: m}, nil
	case map[string]any:
		variants := make(map[xcstrings.PluralCategory]string, len(m))
		for cat, raw := range m {
			tpl, ok := raw.(string)
			if !ok {
				return xcstrings.Entry{}, fmt.Errorf("plural variant %q must be a string, got %T", cat, raw)
			}
			variants[xcstrings.PluralCategory(cat)] = tpl
		}
		return xcstrings.Entry{Variants: variants}, nil
	default:
		return xcstrings.Entry{}, fmt.Errorf("message must be a string or a plural table, got %T", v)
	}
}
