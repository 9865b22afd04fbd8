package module

import (
	"slices"
	"strings"
)

// Link joins two atoms inside an alternative group.
type Link int

const (
	// And requires both atoms, in any order.
	And Link = iota
	// Then requires the left atom at or before the right atom.
	Then
)

func (l Link) symbol() byte {
	if l == Then {
		return thenSymbol
	}
	return andSymbol
}

// Group is one OR-alternative: atoms joined by And/Then links.
// len(Links) == len(Atoms)-1.
type Group struct {
	Atoms []string
	Links []Link
}

// Pattern is a section's content: a list of alternative groups.
type Pattern struct {
	Groups []Group
}

// Query is a parsed module query. Sections without a pattern are unconstrained.
type Query struct {
	patterns [NumSections]*Pattern
}

// Parse parses and validates a module query such as "T=0,PP-binding".
func Parse(query string) (*Query, error) {
	raw := query
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, syntaxErrorf(raw, "empty query")
	}

	q := &Query{}
	for _, part := range splitSections(query) {
		label, content, ok := strings.Cut(part, "=")
		if !ok {
			return nil, syntaxErrorf(raw, "section %q has no '='", part)
		}
		sec, err := ParseSection(label)
		if err != nil {
			return nil, &SyntaxError{Query: raw, Message: err.Error()}
		}
		if q.patterns[sec] != nil {
			return nil, syntaxErrorf(raw, "section %s given more than once", sec.Code())
		}

		tokens, err := lex(raw, strings.TrimSpace(content))
		if err != nil {
			return nil, err
		}
		if err := validate(raw, tokens); err != nil {
			return nil, err
		}
		q.patterns[sec] = group(tokens)
	}

	if !q.restricted() {
		return nil, &SyntaxError{Query: raw, Message: ErrNoRestrictions.Error(), cause: ErrNoRestrictions}
	}
	return q, nil
}

// Validate reports whether query parses.
func Validate(query string) error {
	_, err := Parse(query)
	return err
}

// group turns alternating atom/operator tokens into OR-separated groups.
func group(tokens []token) *Pattern {
	p := &Pattern{}
	cur := Group{}
	for _, tok := range tokens {
		if tok.kind == tokenAtom {
			cur.Atoms = append(cur.Atoms, tok.text)
			continue
		}
		switch tok.text[0] {
		case orSymbol:
			p.Groups = append(p.Groups, cur)
			cur = Group{}
		case andSymbol:
			cur.Links = append(cur.Links, And)
		case thenSymbol:
			cur.Links = append(cur.Links, Then)
		}
	}
	p.Groups = append(p.Groups, cur)
	return p
}

// restricted reports whether at least one section is constrained beyond "*".
func (q *Query) restricted() bool {
	for _, p := range q.patterns {
		if p != nil && !p.isAny() {
			return true
		}
	}
	return false
}

func (p *Pattern) isAny() bool {
	return len(p.Groups) == 1 && len(p.Groups[0].Atoms) == 1 && p.Groups[0].Atoms[0] == AnyAtom
}

// Pattern returns the pattern for s, or nil when s is unconstrained.
func (q *Query) Pattern(s Section) *Pattern {
	if s < 0 || s >= NumSections {
		return nil
	}
	return q.patterns[s]
}

// Matches reports whether every populated section matches arch.
func (q *Query) Matches(arch Architecture) bool {
	for i, p := range q.patterns {
		if p == nil {
			continue
		}
		if !p.Matches(arch[Section(i)]) {
			return false
		}
	}
	return true
}

// Matches reports whether any alternative group matches the ordered domains.
func (p *Pattern) Matches(domains []string) bool {
	for _, g := range p.Groups {
		if g.Matches(domains) {
			return true
		}
	}
	return false
}

// Matches reports whether every atom is satisfied and every Then-linked pair
// of labels appears in order.
func (g Group) Matches(domains []string) bool {
	for _, atom := range g.Atoms {
		if !atomMatches(atom, domains) {
			return false
		}
	}
	for i, link := range g.Links {
		if link != Then {
			continue
		}
		left, right := g.Atoms[i], g.Atoms[i+1]
		if isSpecial(left) || isSpecial(right) {
			continue
		}
		first := slices.IndexFunc(domains, func(d string) bool { return strings.EqualFold(d, left) })
		last := lastIndexFold(domains, right)
		if first < 0 || last < 0 || first > last {
			return false
		}
	}
	return true
}

func atomMatches(atom string, domains []string) bool {
	switch atom {
	case AnyAtom:
		return true
	case SomeAtom:
		return len(domains) > 0
	case NoneAtom:
		return len(domains) == 0
	default:
		return lastIndexFold(domains, atom) >= 0
	}
}

func lastIndexFold(domains []string, label string) int {
	for i := len(domains) - 1; i >= 0; i-- {
		if strings.EqualFold(domains[i], label) {
			return i
		}
	}
	return -1
}

// String renders the query in canonical section order.
func (q *Query) String() string {
	var parts []string
	for i, p := range q.patterns {
		if p == nil {
			continue
		}
		parts = append(parts, Section(i).Code()+"="+p.String())
	}
	return strings.Join(parts, "|")
}

// String renders the pattern content.
func (p *Pattern) String() string {
	var sb strings.Builder
	for i, g := range p.Groups {
		if i > 0 {
			sb.WriteByte(orSymbol)
		}
		for j, atom := range g.Atoms {
			if j > 0 {
				sb.WriteByte(g.Links[j-1].symbol())
			}
			sb.WriteString(atom)
		}
	}
	return sb.String()
}
