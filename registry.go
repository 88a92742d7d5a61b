package xcstrings

///////////////////////////////////////////////////////////////////////////////
// SPECIFIER KINDS
///////////////////////////////////////////////////////////////////////////////

// SpecKind is the value class a format specifier expects.
type SpecKind uint8

const (
	KindUnknown SpecKind = iota
	KindInteger
	KindFloat
	KindString
)

func (k SpecKind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

///////////////////////////////////////////////////////////////////////////////
// VERB AND LENGTH TABLES
///////////////////////////////////////////////////////////////////////////////

// verbKinds maps a conversion character to its kind. Anything else is unsupported.
var verbKinds = map[byte]SpecKind{
	'd': KindInteger,
	'i': KindInteger,
	'u': KindInteger,
	'f': KindFloat,
	'F': KindFloat,
	'@': KindString,
	's': KindString,
}

// lengthModifiers are accepted and ignored: %d, %ld and %lld all take an integer.
var lengthModifiers = map[string]struct{}{
	"":   {},
	"hh": {},
	"h":  {},
	"l":  {},
	"ll": {},
	"q":  {},
	"z":  {},
	"t":  {},
	"j":  {},
	"L":  {},
}

func isLengthByte(c byte) bool {
	switch c {
	case 'h', 'l', 'q', 'z', 't', 'j', 'L':
		return true
	}
	return false
}

func lookupVerb(c byte) (SpecKind, bool) {
	k, ok := verbKinds[c]
	return k, ok
}
