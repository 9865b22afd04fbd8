package store

import "strings"

// Scope is the entity level a search returns. Lower scopes are coarser.
type Scope uint8

const (
	// ScopeCluster returns region ids.
	ScopeCluster Scope = iota
	// ScopeGene returns gene ids.
	ScopeGene
	// ScopeDomain returns domain ids.
	ScopeDomain

	numScopes = 3
)

var scopeNames = [numScopes]string{"cluster", "gene", "domain"}

// Scopes returns all scopes, coarsest first.
func Scopes() []Scope {
	return []Scope{ScopeCluster, ScopeGene, ScopeDomain}
}

// String returns the search type name.
func (s Scope) String() string {
	if s < numScopes {
		return scopeNames[s]
	}
	return "invalid"
}

// Valid reports whether s is a known scope.
func (s Scope) Valid() bool {
	return s < numScopes
}

// ParseScope parses a search type name case-insensitively.
func ParseScope(name string) (Scope, bool) {
	for i, n := range scopeNames {
		if strings.EqualFold(n, name) {
			return Scope(i), true
		}
	}
	return 0, false
}
