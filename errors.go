package clusterq

import (
	"errors"
	"fmt"

	"github.com/bgcdb/clusterq/query"
)

var (
	// ErrInvalidSearchType is returned for an unknown search type.
	ErrInvalidSearchType = query.ErrInvalidSearchType

	// ErrInvalidReturnType is returned for an unknown return type.
	ErrInvalidReturnType = query.ErrInvalidReturnType

	// ErrNilQuery is returned when Search is called without a query.
	ErrNilQuery = errors.New("nil query")

	// ErrNilStore is returned when a Searcher is created without a store.
	ErrNilStore = errors.New("nil store")
)

// ErrLoad indicates that a dataset could not be loaded.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrLoad struct {
	Prefix string
	cause  error
}

func (e *ErrLoad) Error() string {
	return fmt.Sprintf("load dataset %q: %v", e.Prefix, e.cause)
}

func (e *ErrLoad) Unwrap() error { return e.cause }
