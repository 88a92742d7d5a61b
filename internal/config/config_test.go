package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifei6671/xcstrings"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "en", cfg.DefaultLocale)
	assert.Equal(t, PluralRulesSimple, cfg.PluralRules)
	assert.Equal(t, 2, cfg.FloatPrecision)
	assert.False(t, cfg.DigitGrouping)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("XCSTRINGS_DEFAULT_LOCALE", "fr_CA")
	t.Setenv("XCSTRINGS_PLURAL_RULES", "CLDR")
	t.Setenv("XCSTRINGS_FLOAT_PRECISION", "3")
	t.Setenv("XCSTRINGS_DIGIT_GROUPING", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "fr_CA", cfg.DefaultLocale)
	assert.Equal(t, PluralRulesCLDR, cfg.PluralRules)
	assert.Equal(t, 3, cfg.FloatPrecision)
	assert.True(t, cfg.DigitGrouping)
	assert.IsType(t, xcstrings.CLDRRule{}, cfg.PluralRule())
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"plural rules":   {"XCSTRINGS_PLURAL_RULES": "gettext"},
		"precision":      {"XCSTRINGS_FLOAT_PRECISION": "-1"},
		"precision type": {"XCSTRINGS_FLOAT_PRECISION": "two"},
		"locale":         {"XCSTRINGS_DEFAULT_LOCALE": "not a locale"},
		"grouping type":  {"XCSTRINGS_DIGIT_GROUPING": "sometimes"},
	}
	for name, vars := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range vars {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestParse_FlagsOverrideBeforeValidate(t *testing.T) {
	t.Setenv("XCSTRINGS_PLURAL_RULES", "gettext")

	cfg, err := Parse()
	require.NoError(t, err)
	require.Error(t, cfg.Validate())

	cfg.PluralRules = "cldr"
	require.NoError(t, cfg.Validate())
}

func TestConfig_ValidateForFiles(t *testing.T) {
	cfg := &Config{PluralRules: PluralRulesSimple}
	require.Error(t, cfg.Validate())
	require.Error(t, cfg.ValidateForFiles([]string{"en.yaml", "fr.toml"}))
	require.NoError(t, cfg.ValidateForFiles([]string{"en.yaml", "Localizable.xcstrings"}))

	cfg.DefaultLocale = "not a locale"
	require.Error(t, cfg.ValidateForFiles([]string{"Localizable.xcstrings"}))
}

func TestConfig_EngineOptions(t *testing.T) {
	cfg := &Config{DefaultLocale: "en", PluralRules: PluralRulesSimple, FloatPrecision: 1, DigitGrouping: true}
	require.NoError(t, cfg.Validate())

	c := xcstrings.NewBuilder("en").
		AddTemplates("en", map[string]string{"size": "%lld files, %lf MB"}).
		MustBuild()
	e := xcstrings.New(c, cfg.EngineOptions()...)

	got, err := e.Resolve("size", "en", xcstrings.Int(1200), xcstrings.Float(3.5))
	require.NoError(t, err)
	assert.Equal(t, "1,200 files, 3.5 MB", got)
	assert.IsType(t, xcstrings.SimpleRule{}, cfg.PluralRule())
}
