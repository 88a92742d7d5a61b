package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/lifei6671/xcstrings"
	"github.com/lifei6671/xcstrings/loader"
)

// Plural rule names accepted by XCSTRINGS_PLURAL_RULES.
const (
	PluralRulesSimple = "simple"
	PluralRulesCLDR   = "cldr"
)

// Config holds the settings shared by the command line tools.
type Config struct {
	DefaultLocale  string `env:"XCSTRINGS_DEFAULT_LOCALE" envDefault:"en"`
	PluralRules    string `env:"XCSTRINGS_PLURAL_RULES" envDefault:"simple"`
	FloatPrecision int    `env:"XCSTRINGS_FLOAT_PRECISION" envDefault:"2"`
	DigitGrouping  bool   `env:"XCSTRINGS_DIGIT_GROUPING" envDefault:"false"`
	LogLevel       string `env:"XCSTRINGS_LOG_LEVEL" envDefault:"info"`
	LogNoColor     bool   `env:"XCSTRINGS_LOG_NO_COLOR" envDefault:"false"`
}

// Parse reads an optional .env file, then the environment. The result is not
// validated, so callers can override fields before calling Validate.
func Parse() (*Config, error) {
	// .env is optional when the variables come from the environment.
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// Load is Parse followed by Validate.
func Load() (*Config, error) {
	cfg, err := Parse()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values and normalizes the plural rule name.
func (c *Config) Validate() error {
	return c.validate(false)
}

// ValidateForFiles is Validate, except that an empty default locale is accepted
// when one of paths is a String Catalog, whose sourceLanguage then supplies it.
func (c *Config) ValidateForFiles(paths []string) error {
	return c.validate(slices.ContainsFunc(paths, isStringCatalog))
}

func isStringCatalog(path string) bool {
	f, err := loader.FormatForPath(path)
	return err == nil && f == loader.FormatXCStrings
}

func (c *Config) validate(allowEmptyLocale bool) error {
	c.DefaultLocale = strings.TrimSpace(c.DefaultLocale)
	switch {
	case c.DefaultLocale == "" && !allowEmptyLocale:
		return errors.New("config: XCSTRINGS_DEFAULT_LOCALE must not be empty")
	case c.DefaultLocale != "":
		if _, err := xcstrings.CanonicalLocale(c.DefaultLocale); err != nil {
			return fmt.Errorf("config: XCSTRINGS_DEFAULT_LOCALE: %w", err)
		}
	}

	c.PluralRules = strings.ToLower(strings.TrimSpace(c.PluralRules))
	switch c.PluralRules {
	case PluralRulesSimple, PluralRulesCLDR:
	default:
		return fmt.Errorf("config: XCSTRINGS_PLURAL_RULES must be %q or %q, got %q",
			PluralRulesSimple, PluralRulesCLDR, c.PluralRules)
	}

	if c.FloatPrecision < 0 {
		return fmt.Errorf("config: XCSTRINGS_FLOAT_PRECISION must not be negative, got %d", c.FloatPrecision)
	}
	return nil
}

// PluralRule returns the plural strategy named by PluralRules.
func (c *Config) PluralRule() xcstrings.PluralRule {
	if c.PluralRules == PluralRulesCLDR {
		return xcstrings.CLDRRule{}
	}
	return xcstrings.SimpleRule{}
}

// EngineOptions translates the config into engine options.
func (c *Config) EngineOptions() []xcstrings.Option {
	return []xcstrings.Option{
		xcstrings.WithPluralRule(c.PluralRule()),
		xcstrings.WithFormatter(xcstrings.NewFormatter(
			xcstrings.WithFloatPrecision(c.FloatPrecision),
			xcstrings.WithDigitGrouping(c.DigitGrouping),
		)),
	}
}
