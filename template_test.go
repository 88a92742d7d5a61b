package xcstrings

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestParseTemplate(t *testing.T) {
	t.Run("ParseTemplate_Positional", func(t *testing.T) {
		tpl, err := ParseTemplate("%1$lld items, KES %2$@")
		if err != nil {
			t.Fatal(err)
		}
		if !tpl.Positional {
			t.Fatal("expected positional template")
		}
		if tpl.ArgCount != 2 {
			t.Fatalf("ArgCount = %d", tpl.ArgCount)
		}
		first := tpl.Specifiers[0]
		if first.Kind != KindInteger || first.Position != 1 || first.Length != "ll" || first.Raw != "%1$lld" {
			t.Fatalf("unexpected first specifier: %+v", first)
		}
	})
	t.Run("ParseTemplate_Implicit", func(t *testing.T) {
		tpl, err := ParseTemplate("The price of %lld items is KES %@.")
		if err != nil {
			t.Fatal(err)
		}
		if tpl.Positional {
			t.Fatal("expected implicit template")
		}
		if got := tpl.Signature(); len(got) != 2 || got[0] != KindInteger || got[1] != KindString {
			t.Fatalf("Signature = %v", got)
		}
	})
	t.Run("ParseTemplate_Precision", func(t *testing.T) {
		tpl, err := ParseTemplate("%.2f and %lf")
		if err != nil {
			t.Fatal(err)
		}
		if tpl.Specifiers[0].Precision != 2 || tpl.Specifiers[1].Precision != -1 {
			t.Fatalf("unexpected precision: %+v", tpl.Specifiers)
		}
	})
	t.Run("ParseTemplate_Fail", func(t *testing.T) {
		cases := map[string]error{
			"%1$lld items, %@": ErrMalformedTemplate,
			"%@ and %2$@":      ErrMalformedTemplate,
			"100%":             ErrMalformedTemplate,
			"%0$d":             ErrMalformedTemplate,
			"%.f":              ErrMalformedTemplate,
			"%1$":              ErrMalformedTemplate,
			"%65537$d":         ErrMalformedTemplate,
			"%ll":              ErrUnsupportedSpecifier,
			"%q":               ErrUnsupportedSpecifier,
			"%z":               ErrUnsupportedSpecifier,
			"%t":               ErrUnsupportedSpecifier,
			"%10%q":            ErrUnsupportedSpecifier,
			"%x":               ErrUnsupportedSpecifier,
			"%5d":              ErrUnsupportedSpecifier,
			"%llld":            ErrUnsupportedSpecifier,
			"100% sure":        ErrUnsupportedSpecifier,
		}
		for tpl, want := range cases {
			_, err := ParseTemplate(tpl)
			if !errors.Is(err, want) {
				t.Fatalf("ParseTemplate(%q) = %v, want %v", tpl, err, want)
			}
		}
	})
}

func TestRenderTemplate(t *testing.T) {
	f := NewFormatter()

	tests := []struct {
		name string
		tpl  string
		args []Arg
		want string
	}{
		{"positional", "%1$lld items, KES %2$@", []Arg{Int(4), String("400")}, "4 items, KES 400"},
		{"positional reordered", "KES %2$@ for %1$lld items", []Arg{Int(4), String("400")}, "KES 400 for 4 items"},
		{"positional repeated", "%1$@ and %1$@", []Arg{String("a")}, "a and a"},
		{"implicit", "The price of %lld items is KES %@.", []Arg{Int(1), String("100")}, "The price of 1 items is KES 100."},
		{"float default precision", "%lf slices", []Arg{Float(4.5)}, "4.50 slices"},
		{"float declared precision", "%.1f%%", []Arg{Float(99.95)}, "100.0%"},
		{"float from integer", "%.2f", []Arg{Int(3)}, "3.00"},
		{"string from number", "%@ / %s", []Arg{Int(7), Float(2.5)}, "7 / 2.5"},
		{"escaped percent", "100%% sure", nil, "100% sure"},
		{"no grouping by default", "%d", []Arg{Int(1234567)}, "1234567"},
		{"negative", "%i", []Arg{Int(-12)}, "-12"},
		{"surplus args ignored", "%@", []Arg{String("a"), String("b")}, "a"},
		{"plain text", "Hello, world!", nil, "Hello, world!"},
		{"utf-8 text", "Bonjour, %@ ! 你好", []Arg{String("Zoé")}, "Bonjour, Zoé ! 你好"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := f.Render(tc.tpl, tc.args...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRenderTemplate_Errors(t *testing.T) {
	f := NewFormatter()

	t.Run("MixedAlwaysMalformed", func(t *testing.T) {
		for _, args := range [][]Arg{nil, {Int(1)}, {Int(1), String("x")}, {String("x"), Int(1), Float(2)}} {
			_, err := f.Render("%1$lld and %@", args...)
			require.ErrorIs(t, err, ErrMalformedTemplate)
		}
	})
	t.Run("TooFewArgs", func(t *testing.T) {
		_, err := f.Render("%1$lld items, KES %2$@", Int(4))
		require.ErrorIs(t, err, ErrArgumentCountMismatch)

		var te *TemplateError
		require.True(t, errors.As(err, &te))
		assert.Equal(t, 18, te.Offset)
	})
	t.Run("TypeMismatch", func(t *testing.T) {
		_, err := f.Render("%lld songs", String("four"))
		require.ErrorIs(t, err, ErrArgumentTypeMismatch)

		_, err = f.Render("%d", Float(1.5))
		require.ErrorIs(t, err, ErrArgumentTypeMismatch)

		_, err = f.Render("%f", String("1.5"))
		require.ErrorIs(t, err, ErrArgumentTypeMismatch)

		_, err = f.Render("%@", Arg{})
		require.ErrorIs(t, err, ErrArgumentTypeMismatch)
	})
	t.Run("Unsupported", func(t *testing.T) {
		_, err := f.Render("%q", String("x"))
		require.ErrorIs(t, err, ErrUnsupportedSpecifier)
	})
}

func TestFormatter_Options(t *testing.T) {
	t.Run("FloatPrecision", func(t *testing.T) {
		f := NewFormatter(WithFloatPrecision(0))
		got, err := f.Render("%lf", Float(4.4))
		require.NoError(t, err)
		assert.Equal(t, "4", got)

		got, err = NewFormatter(WithFloatPrecision(-1)).Render("%f", Float(1))
		require.NoError(t, err)
		assert.Equal(t, "1.00", got, "negative precision is ignored")
	})
	t.Run("DigitGrouping", func(t *testing.T) {
		f := NewFormatter(WithDigitGrouping(true))
		got, err := f.RenderLocale(language.English, "%lld songs", Int(1234567))
		require.NoError(t, err)
		assert.Equal(t, "1,234,567 songs", got)

		got, err = f.RenderLocale(language.English, "%.2f", Float(1234.5))
		require.NoError(t, err)
		assert.Equal(t, "1,234.50", got)
	})
}

func TestFormatter_Cache(t *testing.T) {
	f := NewFormatter()
	a, err := f.Parse("%@")
	require.NoError(t, err)
	b, err := f.Parse("%@")
	require.NoError(t, err)
	assert.Same(t, a, b)

	_, err = f.Parse("%")
	require.Error(t, err)
	_, ok := f.cache.Load("%")
	assert.False(t, ok, "failed parses are not cached")
}

func TestSignature_PositionBound(t *testing.T) {
	_, err := Signature("%9223372036854775807$d")
	require.ErrorIs(t, err, ErrMalformedTemplate)

	sig, err := Signature("%65536$d")
	require.NoError(t, err)
	assert.Len(t, sig, MaxArgPosition)
	assert.Equal(t, KindInteger, sig[MaxArgPosition-1])
}

func TestValidateTemplate(t *testing.T) {
	assert.NoError(t, ValidateTemplate("%1$lld items, KES %2$@"))
	assert.ErrorIs(t, ValidateTemplate("%1$lld items, KES %@"), ErrMalformedTemplate)

	sig, err := Signature("%2$@ %1$.2lf %4$d")
	require.NoError(t, err)
	assert.Equal(t, []SpecKind{KindFloat, KindString, KindUnknown, KindInteger}, sig)
}
