package filter

import "strings"

// Operator is a numeric comparison operator.
type Operator string

const (
	// OpLess represents the less than operator.
	OpLess Operator = "<"
	// OpLessEqual represents the less than or equal operator.
	OpLessEqual Operator = "<="
	// OpEqual represents the equality operator.
	OpEqual Operator = "=="
	// OpGreaterEqual represents the greater than or equal operator.
	OpGreaterEqual Operator = ">="
	// OpGreater represents the greater than operator.
	OpGreater Operator = ">"
)

// Operators lists the supported operators, longest spellings first.
var Operators = []Operator{OpLessEqual, OpGreaterEqual, OpEqual, OpLess, OpGreater}

// ParseOperator returns the operator spelled s.
func ParseOperator(s string) (Operator, bool) {
	for _, op := range Operators {
		if string(op) == s {
			return op, true
		}
	}
	return "", false
}

// Valid reports whether op is one of the supported operators.
func (op Operator) Valid() bool {
	_, ok := ParseOperator(string(op))
	return ok
}

// Compare evaluates "a op b". Unknown operators never match.
func (op Operator) Compare(a, b float64) bool {
	switch op {
	case OpLess:
		return a < b
	case OpLessEqual:
		return a <= b
	case OpEqual:
		return a == b
	case OpGreaterEqual:
		return a >= b
	case OpGreater:
		return a > b
	default:
		return false
	}
}

// SplitOperator splits a leading operator off s, e.g. ">= 50" into (">=", "50").
// ok is false when s does not start with an operator.
func SplitOperator(s string) (op Operator, rest string, ok bool) {
	s = strings.TrimSpace(s)
	for _, candidate := range Operators {
		if strings.HasPrefix(s, string(candidate)) {
			return candidate, strings.TrimSpace(s[len(candidate):]), true
		}
	}
	return "", s, false
}
