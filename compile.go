package clusterq

import (
	"github.com/bgcdb/clusterq/predicate"
	"github.com/bgcdb/clusterq/query"
	"github.com/bgcdb/clusterq/registry"
)

// Compile evaluates a term tree against one category table.
//
// Compilation never fails: an unknown category, a count on a category
// without occurrence support, a comparison on a category that cannot
// compare, or a filter the table does not know resolves to Empty.
func Compile(table *registry.Table, t query.Term) predicate.Predicate {
	if table == nil {
		return predicate.Empty
	}
	return compileTerm(table, t)
}

func compileTerm(table *registry.Table, t query.Term) predicate.Predicate {
	switch n := t.(type) {
	case *query.Expression:
		return compileExpression(table, n)
	case *query.Operation:
		return compileOperation(table, n)
	default:
		return predicate.Empty
	}
}

func compileOperation(table *registry.Table, op *query.Operation) predicate.Predicate {
	left := compileTerm(table, op.Left)
	switch op.Operator {
	case query.OpAnd:
		if left.IsEmpty() {
			return predicate.Empty
		}
		return left.Intersect(compileTerm(table, op.Right))
	case query.OpOr:
		return left.Union(compileTerm(table, op.Right))
	case query.OpExcept:
		if left.IsEmpty() {
			return predicate.Empty
		}
		return left.Except(compileTerm(table, op.Right))
	default:
		return predicate.Empty
	}
}

func compileExpression(table *registry.Table, e *query.Expression) predicate.Predicate {
	cat, ok := table.Lookup(e.Category)
	if !ok {
		return predicate.Empty
	}

	var p predicate.Predicate
	switch {
	case e.Comparison != "":
		if cat.Compare == nil {
			return predicate.Empty
		}
		p = cat.Compare(e.Term, e.Comparison)
	case e.Count > 0:
		if cat.Count == nil {
			return predicate.Empty
		}
		p = cat.Count(e.Term, e.Count)
	default:
		p = cat.Handler(e.Term)
	}

	for _, in := range e.Filters {
		if p.IsEmpty() {
			break
		}
		spec, ok := cat.Filter(in.Name)
		if !ok {
			return predicate.Empty
		}
		p = p.Intersect(spec.Apply(e.Term, in))
	}
	return p
}
