// Package loader decodes catalog files into an xcstrings.Builder.
//
// Supported formats:
//
//   - YAML and TOML files shaped as {language, messages}, where a message is a
//     template string or a table of plural category -> template
//   - Apple String Catalog (.xcstrings) JSON
//   - go-i18n message files; the locale comes from the file name (active.sw.toml).
//     YAML and TOML files without a language field are read this way too.
//
// Files are only read when named explicitly; directories are never walked.
package loader

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/lifei6671/xcstrings"
)

// Format identifies a catalog file encoding.
type Format string

const (
	FormatYAML      Format = "yaml"
	FormatTOML      Format = "toml"
	FormatXCStrings Format = "xcstrings"
	FormatGoI18n    Format = "go-i18n"
)

// FormatForPath picks the format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".xcstrings":
		return FormatXCStrings, nil
	case ".json":
		return FormatGoI18n, nil
	default:
		return "", fmt.Errorf("unsupported catalog file %s", path)
	}
}

// Decode adds the contents of one file to b. name is used for error messages
// and, for go-i18n files, to find the locale.
func Decode(b *xcstrings.Builder, format Format, name string, data []byte) error {
	var err error
	switch format {
	case FormatYAML:
		err = decodeYAML(b, name, data)
	case FormatTOML:
		err = decodeTOML(b, name, data)
	case FormatXCStrings:
		err = decodeXCStrings(b, data)
	case FormatGoI18n:
		err = decodeGoI18n(b, name, data)
	default:
		err = fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// LoadFile reads path and adds its entries to b.
func LoadFile(b *xcstrings.Builder, path string) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return Decode(b, format, path, data)
}

// LoadFS reads the named files from fsys, e.g. an embed.FS.
func LoadFS(b *xcstrings.Builder, fsys fs.FS, names ...string) error {
	for _, name := range names {
		format, err := FormatForPath(name)
		if err != nil {
			return err
		}
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}
		if err := Decode(b, format, name, data); err != nil {
			return err
		}
	}
	return nil
}

// LoadFiles builds a catalog from the given files. Later files override
// earlier ones key by key. With an empty defaultLocale the source language of
// the first .xcstrings file is used.
func LoadFiles(defaultLocale string, paths ...string) (*xcstrings.Catalog, error) {
	b := xcstrings.NewBuilder(defaultLocale)
	for _, p := range paths {
		if err := LoadFile(b, p); err != nil {
			return nil, err
		}
	}
	return b.Build()
}

// MustLoadFiles is like LoadFiles but panics on error. Intended for initialization.
func MustLoadFiles(defaultLocale string, paths ...string) *xcstrings.Catalog {
	c, err := LoadFiles(defaultLocale, paths...)
	if err != nil {
		panic(err)
	}
	return c
}
