package filter

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"
)

// Value is a filter operand: either a number or a string.
type Value struct {
	num      float64
	str      string
	isNumber bool
}

// Number creates a numeric value.
func Number(f float64) Value {
	return Value{num: f, isNumber: true}
}

// String creates a string value.
func String(s string) Value {
	return Value{str: s}
}

// IsNumber reports whether v holds a number.
func (v Value) IsNumber() bool { return v.isNumber }

// IsZero reports whether v is the zero Value (the empty string).
func (v Value) IsZero() bool { return !v.isNumber && v.str == "" }

// Float returns the numeric value. For strings it attempts a parse.
func (v Value) Float() (float64, bool) {
	if v.isNumber {
		return v.num, true
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Text returns the value as it would be written in a query.
func (v Value) Text() string {
	if v.isNumber {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return v.str
}

// String implements fmt.Stringer.
func (v Value) String() string { return v.Text() }

// Any returns the value as float64 or string.
func (v Value) Any() any {
	if v.isNumber {
		return v.num
	}
	return v.str
}

// MarshalJSON encodes numbers as JSON numbers and strings as JSON strings.
func (v Value) MarshalJSON() ([]byte, error) {
	return gojson.Marshal(v.Any())
}

// UnmarshalJSON accepts a JSON number or string.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := gojson.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ValueOf(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ValueOf converts a decoded JSON scalar into a Value.
func ValueOf(raw any) (Value, error) {
	switch x := raw.(type) {
	case float64:
		return Number(x), nil
	case float32:
		return Number(float64(x)), nil
	case int:
		return Number(float64(x)), nil
	case int64:
		return Number(float64(x)), nil
	case uint64:
		return Number(float64(x)), nil
	case gojson.Number:
		f, err := x.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("invalid number %q: %w", x.String(), err)
		}
		return Number(f), nil
	case string:
		return String(x), nil
	default:
		return Value{}, fmt.Errorf("filter value must be a number or a string, got %T", raw)
	}
}
