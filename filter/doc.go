// Package filter defines the secondary, category-scoped refinements that can
// be attached to a search expression.
//
// A filter Spec is registered per category and is one of three kinds:
//
//   - Text: carries a value only, e.g. [subtype](PKS_KS_Hybrid)
//   - Numeric: carries an operator and a number, e.g. [similarity](> 50)
//   - Qualitative: carries an operator and a label or number; labels map to
//     fixed thresholds, e.g. [confidence](>= high)
//
// Operators form a closed set (<, <=, ==, >=, >) and are evaluated with a
// switch; no caller-supplied text is ever executed.
package filter
