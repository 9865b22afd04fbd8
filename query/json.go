package query

import (
	"strings"

	"github.com/bgcdb/clusterq/filter"
	"github.com/bgcdb/clusterq/module"
	gojson "github.com/goccy/go-json"
)

const (
	termTypeExpr = "expr"
	termTypeOp   = "op"

	// maxDepth bounds the nesting of term trees.
	maxDepth = 256
)

type exprJSON struct {
	TermType   string            `json:"term_type"`
	Category   string            `json:"category"`
	Term       string            `json:"term"`
	Count      int               `json:"count,omitempty"`
	Comparison filter.Operator   `json:"comparison,omitempty"`
	Filters    []filter.Instance `json:"filters,omitempty"`
}

type opJSON struct {
	TermType  string   `json:"term_type"`
	Operation Operator `json:"operation"`
	Left      Term     `json:"left"`
	Right     Term     `json:"right"`
}

// rawTerm accepts either node shape; required keys are checked after decoding.
type rawTerm struct {
	TermType   *string           `json:"term_type"`
	Category   *string           `json:"category"`
	Term       *string           `json:"term"`
	Count      *int              `json:"count"`
	Comparison *string           `json:"comparison"`
	Filters    []filter.Instance `json:"filters"`
	Operation  *string           `json:"operation"`
	Left       gojson.RawMessage `json:"left"`
	Right      gojson.RawMessage `json:"right"`
}

// MarshalJSON encodes the expression as a term_type "expr" node.
func (e *Expression) MarshalJSON() ([]byte, error) {
	return gojson.Marshal(exprJSON{
		TermType:   termTypeExpr,
		Category:   e.Category,
		Term:       e.Term,
		Count:      e.Count,
		Comparison: e.Comparison,
		Filters:    e.Filters,
	})
}

// MarshalJSON encodes the operation as a term_type "op" node.
func (o *Operation) MarshalJSON() ([]byte, error) {
	return gojson.Marshal(opJSON{
		TermType:  termTypeOp,
		Operation: o.Operator,
		Left:      o.Left,
		Right:     o.Right,
	})
}

// ToJSON encodes a term tree.
func ToJSON(t Term, opts ...ParseOption) ([]byte, error) {
	o := applyParseOptions(opts)
	return o.codec.Marshal(t)
}

// FromJSON decodes a term tree. Filters are resolved and module queries
// validated exactly as for free text.
func FromJSON(data []byte, opts ...ParseOption) (Term, error) {
	o := applyParseOptions(opts)
	t, err := decodeTerm(o, data, 0)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func decodeTerm(o parseOptions, data []byte, depth int) (Term, *ParseError) {
	if depth > maxDepth {
		return nil, jsonError("term tree deeper than %d levels", maxDepth)
	}
	var raw rawTerm
	if err := o.codec.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Message: "malformed term: " + err.Error(), Position: -1, Err: err}
	}
	if raw.TermType == nil {
		return nil, jsonError("missing term_type")
	}

	switch *raw.TermType {
	case termTypeExpr:
		return decodeExpression(o, &raw)
	case termTypeOp:
		if raw.Operation == nil {
			return nil, jsonError("operation node without operation")
		}
		op, ok := ParseOperator(*raw.Operation)
		if !ok {
			return nil, jsonError("unknown operation %q", *raw.Operation)
		}
		if len(raw.Left) == 0 || len(raw.Right) == 0 {
			return nil, jsonError("%s operation needs left and right", op)
		}
		left, err := decodeTerm(o, raw.Left, depth+1)
		if err != nil {
			return nil, err
		}
		right, err := decodeTerm(o, raw.Right, depth+1)
		if err != nil {
			return nil, err
		}
		return &Operation{Operator: op, Left: left, Right: right}, nil
	default:
		return nil, jsonError("unknown term_type %q", *raw.TermType)
	}
}

func decodeExpression(o parseOptions, raw *rawTerm) (Term, *ParseError) {
	if raw.Category == nil || raw.Term == nil {
		return nil, jsonError("expression needs category and term")
	}
	e := &Expression{
		Category: strings.ToLower(strings.TrimSpace(*raw.Category)),
		Term:     *raw.Term,
	}
	if e.Category == "" {
		return nil, jsonError("empty category")
	}
	if strings.TrimSpace(e.Term) == "" {
		return nil, jsonError("empty search term")
	}
	if keyword(strings.TrimSpace(e.Term)) != TokenWord {
		return nil, jsonError("%q is a reserved keyword and cannot be searched for", e.Term)
	}
	if raw.Count != nil {
		if *raw.Count < 0 {
			return nil, jsonError("negative count %d", *raw.Count)
		}
		e.Count = *raw.Count
	}
	if raw.Comparison != nil && *raw.Comparison != "" {
		op, ok := filter.ParseOperator(*raw.Comparison)
		if !ok {
			return nil, jsonError("unknown comparison operator %q", *raw.Comparison)
		}
		e.Comparison = op
	}
	if len(raw.Filters) > 0 && e.Category == Unknown {
		return nil, jsonError("filters need a bracketed category")
	}
	for _, in := range raw.Filters {
		checked, err := resolveFilter(o.filters, e.Category, in)
		if err != nil {
			return nil, err
		}
		e.Filters = append(e.Filters, checked)
	}
	if e.Category == ModuleCategory {
		if err := module.Validate(e.Term); err != nil {
			return nil, &ParseError{Message: err.Error(), Position: -1, Err: err}
		}
	}
	return e, nil
}
