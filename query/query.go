package query

import (
	"fmt"
	"strings"

	gojson "github.com/goccy/go-json"
)

// SearchType is the entity level a query returns.
type SearchType string

const (
	SearchCluster SearchType = "cluster"
	SearchGene    SearchType = "gene"
	SearchDomain  SearchType = "domain"
)

// ReturnType is the response format requested by the client.
type ReturnType string

const (
	ReturnJSON  ReturnType = "json"
	ReturnCSV   ReturnType = "csv"
	ReturnFASTA ReturnType = "fasta"
)

// ParseSearchType parses a search type case-insensitively.
func ParseSearchType(s string) (SearchType, error) {
	switch st := SearchType(strings.ToLower(strings.TrimSpace(s))); st {
	case SearchCluster, SearchGene, SearchDomain:
		return st, nil
	case "":
		return SearchCluster, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSearchType, s)
	}
}

// ParseReturnType parses a return type case-insensitively.
func ParseReturnType(s string) (ReturnType, error) {
	switch rt := ReturnType(strings.ToLower(strings.TrimSpace(s))); rt {
	case ReturnJSON, ReturnCSV, ReturnFASTA:
		return rt, nil
	case "":
		return ReturnJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidReturnType, s)
	}
}

// Query is a parsed search request. It is immutable after construction.
type Query struct {
	Terms      Term
	SearchType SearchType
	ReturnType ReturnType
	Verbose    bool
}

// New builds a query; empty search and return types take their defaults.
func New(terms Term, search SearchType, ret ReturnType, verbose bool) (*Query, error) {
	if terms == nil {
		return nil, jsonError("query without terms")
	}
	st, err := ParseSearchType(string(search))
	if err != nil {
		return nil, err
	}
	rt, err := ParseReturnType(string(ret))
	if err != nil {
		return nil, err
	}
	return &Query{Terms: terms, SearchType: st, ReturnType: rt, Verbose: verbose}, nil
}

// FromText parses a free-text query into a default cluster/json query.
func FromText(input string, opts ...ParseOption) (*Query, error) {
	t, err := Parse(input, opts...)
	if err != nil {
		return nil, err
	}
	return New(t, SearchCluster, ReturnJSON, false)
}

type requestJSON struct {
	Search     string            `json:"search,omitempty"`
	ReturnType string            `json:"return_type,omitempty"`
	Verbose    bool              `json:"verbose"`
	Terms      gojson.RawMessage `json:"terms"`
}

// FromRequestJSON decodes a request envelope:
//
//	{"search": "cluster", "return_type": "json", "verbose": false, "terms": {...}}
//
// search defaults to cluster and return_type to json.
func FromRequestJSON(data []byte, opts ...ParseOption) (*Query, error) {
	o := applyParseOptions(opts)
	var req requestJSON
	if err := o.codec.Unmarshal(data, &req); err != nil {
		return nil, &ParseError{Message: "malformed request: " + err.Error(), Position: -1, Err: err}
	}
	if len(req.Terms) == 0 {
		return nil, jsonError("request without terms")
	}
	st, err := ParseSearchType(req.Search)
	if err != nil {
		return nil, err
	}
	rt, err := ParseReturnType(req.ReturnType)
	if err != nil {
		return nil, err
	}
	t, perr := decodeTerm(o, req.Terms, 0)
	if perr != nil {
		return nil, perr
	}
	return &Query{Terms: t, SearchType: st, ReturnType: rt, Verbose: req.Verbose}, nil
}

// MarshalJSON encodes the request envelope.
func (q *Query) MarshalJSON() ([]byte, error) {
	terms, err := gojson.Marshal(q.Terms)
	if err != nil {
		return nil, err
	}
	return gojson.Marshal(requestJSON{
		Search:     string(q.SearchType),
		ReturnType: string(q.ReturnType),
		Verbose:    q.Verbose,
		Terms:      terms,
	})
}

// String returns the canonical free-text form of the terms.
func (q *Query) String() string {
	if q == nil || q.Terms == nil {
		return ""
	}
	return q.Terms.String()
}
