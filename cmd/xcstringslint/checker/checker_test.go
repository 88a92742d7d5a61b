package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifei6671/xcstrings"
)

func TestCheck(t *testing.T) {
	c := xcstrings.NewBuilder("en").
		AddTemplates("en", map[string]string{
			"greeting": "Hello!",
			"songs":    "%lld songs",
			"price":    "%1$lld items, KES %2$@",
		}).
		Add("en", "files", xcstrings.Entry{Variants: map[xcstrings.PluralCategory]string{
			xcstrings.PluralOne:   "%d file",
			xcstrings.PluralOther: "%d files",
		}}).
		AddTemplates("fr", map[string]string{
			"greeting": "Bonjour !",
			"songs":    "%@ chansons",
			"price":    "KES %2$@ pour %1$lld articles",
			"extra":    "En trop",
		}).
		AddTemplates("de", map[string]string{
			"greeting": "Hallo %x",
			"songs":    "%@ Lieder %@",
			"price":    "%1$lld Artikel, KES %2$@",
			"files":    "%d Dateien",
		}).
		MustBuild()

	res := Check(c)

	assert.Equal(t, "en", res.DefaultLocale)
	assert.Equal(t, []string{"de", "en", "fr"}, res.Languages)
	assert.Equal(t, []string{"files", "greeting", "price", "songs"}, res.AllKeys)

	assert.Equal(t, []string{"files"}, res.MissingKeys["fr"])
	assert.Empty(t, res.MissingKeys["de"])
	assert.Equal(t, []string{"extra"}, res.RedundantKeys["fr"])

	require.Contains(t, res.SyntaxErrors["de"], "greeting")
	assert.ErrorIs(t, res.SyntaxErrors["de"]["greeting"], xcstrings.ErrUnsupportedSpecifier)

	// %@ where English has %lld: different signature, still renders.
	assert.Contains(t, res.SignatureMismatches["fr"], "songs")
	assert.NotContains(t, res.SignatureMismatches["fr"], "price")
	assert.NotContains(t, res.RenderErrors["fr"], "songs")

	// Two arguments where English passes one.
	assert.Contains(t, res.SignatureMismatches["de"], "songs")
	require.Contains(t, res.RenderErrors["de"], "songs")
	assert.ErrorIs(t, res.RenderErrors["de"]["songs"], xcstrings.ErrArgumentCountMismatch)

	assert.Empty(t, res.RenderErrors["en"])
	assert.Empty(t, res.SyntaxErrors["en"])
	assert.True(t, res.HasIssues())
}

func TestCheck_Clean(t *testing.T) {
	c := xcstrings.NewBuilder("en").
		AddTemplates("en", map[string]string{"songs": "%lld songs"}).
		AddTemplates("fr", map[string]string{"songs": "%lld chansons"}).
		MustBuild()

	res := Check(c, xcstrings.WithPluralRule(xcstrings.CLDRRule{}))
	assert.False(t, res.HasIssues())
}

func TestCheckFiles(t *testing.T) {
	res, err := CheckFiles("en", []string{
		"../../../loader/testdata/en.yaml",
		"../../../loader/testdata/fr.toml",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"goodbye_message"}, res.MissingKeys["fr"])
	assert.Empty(t, res.SignatureMismatches["fr"])

	_, err = CheckFiles("en", []string{"../../../loader/testdata/broken_plural.yaml"})
	require.ErrorIs(t, err, xcstrings.ErrInvalidCatalog)
}

func TestCheckFiles_SourceLanguageAsDefault(t *testing.T) {
	res, err := CheckFiles("", []string{"../../../loader/testdata/Localizable.xcstrings"})
	require.NoError(t, err)
	assert.Equal(t, "en", res.DefaultLocale)
	assert.Contains(t, res.Languages, "fr")
}

func TestCheck_HugePositionDoesNotPanic(t *testing.T) {
	c := xcstrings.NewBuilder("en").
		AddTemplates("en", map[string]string{"k": "%9223372036854775807$d"}).
		MustBuild()

	var res *Result
	require.NotPanics(t, func() { res = Check(c) })
	require.ErrorIs(t, res.SyntaxErrors["en"]["k"], xcstrings.ErrMalformedTemplate)
}
