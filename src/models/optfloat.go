// backend/src/models/optfloat.go
package models

import (
	"bytes"
	"math"
	"strconv"
)

// OptFloat is a numeric field that may be absent. Broker exports routinely
// carry blank cells, dashes, or junk where a number belongs; all of those
// decode as "not present" rather than failing the row.
type OptFloat struct {
	Value float64
	Valid bool
}

// Num wraps a known-good value.
func Num(v float64) OptFloat {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return OptFloat{}
	}
	return OptFloat{Value: v, Valid: true}
}

// ParseOptFloat converts a raw cell into an OptFloat. Empty strings and
// unparsable or non-finite values yield the zero OptFloat.
func ParseOptFloat(s string) OptFloat {
	if s == "" {
		return OptFloat{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return OptFloat{}
	}
	return Num(v)
}

func (f OptFloat) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(f.Value, 'f', -1, 64)), nil
}

func (f *OptFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = OptFloat{}
		return nil
	}
	// Tolerate numbers arriving as JSON strings ("123.45", "").
	if b[0] == '"' {
		s, err := strconv.Unquote(string(b))
		if err != nil {
			*f = OptFloat{}
			return nil
		}
		*f = ParseOptFloat(s)
		return nil
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		*f = OptFloat{}
		return nil
	}
	*f = Num(v)
	return nil
}
