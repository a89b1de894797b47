package model

// Sex is the sex encoded in an identity code.
type Sex int

// Sex values. The zero value is deliberately not a valid sex.
const (
	Male Sex = iota + 1
	Female
)

// Sexes lists every sex in display order.
var Sexes = []Sex{Female, Male}

// String returns the lowercase name of the sex.
func (s Sex) String() string {
	switch s {
	case Male:
		return "male"
	case Female:
		return "female"
	default:
		return "unknown"
	}
}

// IsValid reports whether s is Male or Female.
func (s Sex) IsValid() bool {
	return s == Male || s == Female
}

// MarshalText implements encoding.TextMarshaler so Sex works as a JSON map key.
func (s Sex) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
