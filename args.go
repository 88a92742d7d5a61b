package xcstrings

import (
	"fmt"
	"math"
	"strconv"
)

// ArgKind tags the value held by an Arg.
type ArgKind uint8

const (
	ArgInvalid ArgKind = iota
	ArgInt
	ArgFloat
	ArgString
)

func (k ArgKind) String() string {
	switch k {
	case ArgInt:
		return "integer"
	case ArgFloat:
		return "float"
	case ArgString:
		return "string"
	default:
		return "invalid"
	}
}

// Arg is one substitution value: an integer, a float or a string.
// The zero value is invalid.
type Arg struct {
	kind ArgKind
	i    int64
	f    float64
	s    string
}

func Int(v int64) Arg       { return Arg{kind: ArgInt, i: v} }
func Float(v float64) Arg   { return Arg{kind: ArgFloat, f: v} }
func String(v string) Arg   { return Arg{kind: ArgString, s: v} }
func (a Arg) Kind() ArgKind { return a.kind }

// Int64 returns the integer value; ok is false for non-integer args.
func (a Arg) Int64() (int64, bool) { return a.i, a.kind == ArgInt }

// Float64 returns the numeric value of integer and float args.
func (a Arg) Float64() (float64, bool) {
	switch a.kind {
	case ArgInt:
		return float64(a.i), true
	case ArgFloat:
		return a.f, true
	}
	return 0, false
}

// Str returns the string value; ok is false for non-string args.
func (a Arg) Str() (string, bool) { return a.s, a.kind == ArgString }

// String renders the arg in its natural form, as used by %@.
func (a Arg) String() string {
	switch a.kind {
	case ArgInt:
		return strconv.FormatInt(a.i, 10)
	case ArgFloat:
		return strconv.FormatFloat(a.f, 'f', -1, 64)
	case ArgString:
		return a.s
	default:
		return ""
	}
}

// ArgsOf converts plain Go values into Args. Integers of any width, floats,
// strings and fmt.Stringer values are accepted.
func ArgsOf(values ...any) ([]Arg, error) {
	args := make([]Arg, 0, len(values))
	for i, v := range values {
		a, err := argOf(v)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		args = append(args, a)
	}
	return args, nil
}

// MustArgs is like ArgsOf but panics on an unsupported value.
func MustArgs(values ...any) []Arg {
	args, err := ArgsOf(values...)
	if err != nil {
		panic(err)
	}
	return args
}

func argOf(v any) (Arg, error) {
	switch n := v.(type) {
	case Arg:
		return n, nil
	case int:
		return Int(int64(n)), nil
	case int8:
		return Int(int64(n)), nil
	case int16:
		return Int(int64(n)), nil
	case int32:
		return Int(int64(n)), nil
	case int64:
		return Int(n), nil
	case uint:
		return uintArg(uint64(n))
	case uint8:
		return Int(int64(n)), nil
	case uint16:
		return Int(int64(n)), nil
	case uint32:
		return Int(int64(n)), nil
	case uint64:
		return uintArg(n)
	case float32:
		return Float(float64(n)), nil
	case float64:
		return Float(n), nil
	case string:
		return String(n), nil
	case fmt.Stringer:
		return String(n.String()), nil
	default:
		return Arg{}, fmt.Errorf("%w: unsupported value of type %T", ErrArgumentTypeMismatch, v)
	}
}

func uintArg(n uint64) (Arg, error) {
	if n > math.MaxInt64 {
		return Arg{}, fmt.Errorf("%w: %d overflows int64", ErrArgumentTypeMismatch, n)
	}
	return Int(int64(n)), nil
}
