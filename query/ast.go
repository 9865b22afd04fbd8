package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bgcdb/clusterq/filter"
)

// Unknown is the category of unqualified words.
const Unknown = "unknown"

// Operator combines two terms.
type Operator string

const (
	// OpAnd intersects both sides.
	OpAnd Operator = "and"
	// OpOr unites both sides.
	OpOr Operator = "or"
	// OpExcept removes the right side from the left.
	OpExcept Operator = "except"
)

// ParseOperator parses an operator name case-insensitively.
func ParseOperator(s string) (Operator, bool) {
	switch Operator(strings.ToLower(s)) {
	case OpAnd:
		return OpAnd, true
	case OpOr:
		return OpOr, true
	case OpExcept:
		return OpExcept, true
	default:
		return "", false
	}
}

// Keyword returns the free-text spelling, e.g. "AND".
func (op Operator) Keyword() string {
	return strings.ToUpper(string(op))
}

// Term is a node of the query tree: *Expression or *Operation.
type Term interface {
	fmt.Stringer
	term()
}

// Expression is a leaf: a search term in a category.
type Expression struct {
	Category string
	Term     string
	// Comparison is empty unless the category compares numerically.
	Comparison filter.Operator
	// Count is the minimum number of occurrences; 0 means unset.
	Count   int
	Filters []filter.Instance
}

// Operation combines two terms.
type Operation struct {
	Operator Operator
	Left     Term
	Right    Term
}

func (*Expression) term() {}
func (*Operation) term()  {}

// String renders the canonical free-text form.
func (e *Expression) String() string {
	var b strings.Builder
	if e.Count > 0 {
		b.WriteString(strconv.Itoa(e.Count))
		b.WriteString(" * ")
	}
	if e.Category == Unknown && !needsCategory(e.Term) {
		b.WriteString(e.Term)
	} else {
		b.WriteByte('[')
		b.WriteString(e.Category)
		if e.Comparison != "" {
			b.WriteByte(':')
			b.WriteString(string(e.Comparison))
		}
		b.WriteByte(']')
		b.WriteString(e.Term)
	}
	for _, f := range e.Filters {
		b.WriteString(" WITH ")
		b.WriteString(f.String())
	}
	return b.String()
}

// needsCategory reports whether an unqualified term would be read back as
// something else: a category bracket or a count prefix.
func needsCategory(term string) bool {
	if strings.HasPrefix(term, "[") {
		return true
	}
	digits := 0
	for digits < len(term) && term[digits] >= '0' && term[digits] <= '9' {
		digits++
	}
	return digits > 0 && digits < len(term) && term[digits] == '*'
}

// String renders the canonical free-text form. Left operands that are
// operations are parenthesized; right operands never need to be.
func (o *Operation) String() string {
	left := o.Left.String()
	if _, ok := o.Left.(*Operation); ok {
		left = "(" + left + ")"
	}
	return left + " " + o.Operator.Keyword() + " " + o.Right.String()
}

// Expressions returns the leaves of t from left to right.
func Expressions(t Term) []*Expression {
	var out []*Expression
	var walk func(Term)
	walk = func(t Term) {
		switch n := t.(type) {
		case *Expression:
			out = append(out, n)
		case *Operation:
			walk(n.Left)
			walk(n.Right)
		}
	}
	walk(t)
	return out
}
