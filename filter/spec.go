package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bgcdb/clusterq/predicate"
)

// ErrInvalidFilter is wrapped by every filter shape or value error.
var ErrInvalidFilter = errors.New("invalid filter")

// Kind is the syntactic kind of a filter.
type Kind int

const (
	// Text filters carry a value only.
	Text Kind = iota
	// Numeric filters carry an operator and a number.
	Numeric
	// Qualitative filters carry an operator and a label or a number.
	Qualitative
)

// String returns the machine-readable kind name.
func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Numeric:
		return "numeric"
	case Qualitative:
		return "qualitative"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Choice maps a qualitative label to its numeric threshold.
type Choice struct {
	Label     string
	Threshold float64
}

// Evaluator produces the predicate a filter instance constrains its
// expression to. term is the expression's search term; op is empty for
// Text filters; value is already resolved to a number for Numeric and
// Qualitative filters.
type Evaluator func(term string, op Operator, value Value) predicate.Predicate

// Spec describes a registered filter.
type Spec struct {
	Name    string
	Kind    Kind
	Value   Value // current/default value shown to clients
	Choices []Choice
	Eval    Evaluator
}

// Instance is a filter as written in a query.
type Instance struct {
	Name     string   `json:"name"`
	Operator Operator `json:"operator,omitempty"`
	Value    Value    `json:"value"`
}

// String renders the instance in free-text syntax, e.g. "[similarity](> 50)".
func (in Instance) String() string {
	if in.Operator == "" {
		return fmt.Sprintf("[%s](%s)", in.Name, in.Value.Text())
	}
	return fmt.Sprintf("[%s](%s %s)", in.Name, in.Operator, in.Value.Text())
}

// InstanceError reports an instance that does not fit its Spec.
type InstanceError struct {
	Filter string
	Reason string
}

func (e *InstanceError) Error() string {
	return fmt.Sprintf("filter %q: %s", e.Filter, e.Reason)
}

func (e *InstanceError) Unwrap() error { return ErrInvalidFilter }

// Check validates the shape of in against s: Text needs a value and no
// operator; Numeric and Qualitative need an operator and a value.
// Values are normalized: Numeric values become numbers, Qualitative labels
// are checked against the known choices.
func (s Spec) Check(in Instance) (Instance, error) {
	if in.Value.IsZero() {
		return in, &InstanceError{Filter: s.Name, Reason: "missing value"}
	}
	switch s.Kind {
	case Text:
		if in.Operator != "" {
			return in, &InstanceError{Filter: s.Name, Reason: "text filters take no operator"}
		}
		if in.Value.IsNumber() {
			in.Value = String(in.Value.Text())
		}
		return in, nil
	case Numeric:
		if !in.Operator.Valid() {
			return in, &InstanceError{Filter: s.Name, Reason: "missing or unknown operator"}
		}
		f, ok := in.Value.Float()
		if !ok {
			return in, &InstanceError{Filter: s.Name, Reason: fmt.Sprintf("%q is not a number", in.Value.Text())}
		}
		in.Value = Number(f)
		return in, nil
	case Qualitative:
		if !in.Operator.Valid() {
			return in, &InstanceError{Filter: s.Name, Reason: "missing or unknown operator"}
		}
		if _, err := s.Threshold(in.Value); err != nil {
			return in, err
		}
		if f, ok := in.Value.Float(); ok {
			in.Value = Number(f)
		}
		return in, nil
	default:
		return in, &InstanceError{Filter: s.Name, Reason: "unsupported filter kind"}
	}
}

// Threshold resolves a qualitative value (label or number) to a number.
func (s Spec) Threshold(v Value) (float64, error) {
	if f, ok := v.Float(); ok {
		return f, nil
	}
	for _, c := range s.Choices {
		if strings.EqualFold(c.Label, v.Text()) {
			return c.Threshold, nil
		}
	}
	return 0, &InstanceError{Filter: s.Name, Reason: fmt.Sprintf("unknown choice %q", v.Text())}
}

// Apply evaluates a checked instance. A Spec without an evaluator, or an
// instance whose value cannot be resolved, matches nothing.
func (s Spec) Apply(term string, in Instance) predicate.Predicate {
	if s.Eval == nil {
		return predicate.Empty
	}
	switch s.Kind {
	case Text:
		return s.Eval(term, "", in.Value)
	case Numeric, Qualitative:
		f, err := s.Threshold(in.Value)
		if err != nil {
			return predicate.Empty
		}
		return s.Eval(term, in.Operator, Number(f))
	default:
		return predicate.Empty
	}
}

// Description is the machine-readable shape of a filter, for UI discovery.
type Description struct {
	Name    string             `json:"name"`
	Type    string             `json:"type"`
	Value   any                `json:"value"`
	Choices map[string]float64 `json:"choices,omitempty"`
}

// Describe returns the introspection view of s.
func (s Spec) Describe() Description {
	d := Description{
		Name:  s.Name,
		Type:  s.Kind.String(),
		Value: s.Value.Any(),
	}
	if s.Kind == Qualitative && len(s.Choices) > 0 {
		d.Choices = make(map[string]float64, len(s.Choices))
		for _, c := range s.Choices {
			d.Choices[c.Label] = c.Threshold
		}
	}
	return d
}
