package module

import "strings"

const (
	// AnyAtom matches any section content.
	AnyAtom = "*"
	// SomeAtom matches a section with at least one domain.
	SomeAtom = "?"
	// NoneAtom matches a section with no domains.
	NoneAtom = "0"
)

const (
	orSymbol   = ','
	andSymbol  = '+'
	thenSymbol = '>'
)

// forbidden lists operator/atom adjacencies that are either always false or
// that make a wildcard meaningless.
var forbidden = map[string]bool{
	"+0": true, "0+": true,
	"+?": true, "?+": true,
	"+*": true, "*+": true,
	",*": true, "*,": true,
	">*": true, "*>": true,
	",?": true, "?,": true,
}

type tokenKind int

const (
	tokenAtom tokenKind = iota
	tokenOp
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func isOperator(ch byte) bool {
	return ch == orSymbol || ch == andSymbol || ch == thenSymbol
}

func isLabelChar(ch byte) bool {
	return ch >= 'a' && ch <= 'z' ||
		ch >= 'A' && ch <= 'Z' ||
		ch >= '0' && ch <= '9' ||
		ch == '_' || ch == '-' || ch == '.'
}

func isSpecial(atom string) bool {
	return atom == AnyAtom || atom == SomeAtom || atom == NoneAtom
}

// lex splits section content into alternating atoms and operators.
// query is only used for error messages.
func lex(query, content string) ([]token, error) {
	var tokens []token
	for pos := 0; pos < len(content); {
		ch := content[pos]
		switch {
		case ch == ' ' || ch == '\t':
			pos++
		case isOperator(ch):
			tokens = append(tokens, token{kind: tokenOp, text: string(ch), pos: pos})
			pos++
		case ch == '*' || ch == '?':
			tokens = append(tokens, token{kind: tokenAtom, text: string(ch), pos: pos})
			pos++
		case isLabelChar(ch):
			start := pos
			for pos < len(content) && isLabelChar(content[pos]) {
				pos++
			}
			tokens = append(tokens, token{kind: tokenAtom, text: content[start:pos], pos: start})
		default:
			return nil, syntaxErrorf(query, "unexpected character %q in %q", ch, content)
		}
	}

	if len(tokens) == 0 {
		return nil, syntaxErrorf(query, "empty section content")
	}
	if tokens[0].kind == tokenOp {
		return nil, syntaxErrorf(query, "%q starts with operator %q", content, tokens[0].text)
	}
	if last := tokens[len(tokens)-1]; last.kind == tokenOp {
		return nil, syntaxErrorf(query, "%q ends with operator %q", content, last.text)
	}
	for i := 1; i < len(tokens); i++ {
		prev, cur := tokens[i-1], tokens[i]
		if prev.kind == cur.kind {
			if cur.kind == tokenOp {
				return nil, syntaxErrorf(query, "operators %q and %q in a row in %q", prev.text, cur.text, content)
			}
			return nil, syntaxErrorf(query, "missing operator between %q and %q", prev.text, cur.text)
		}
	}
	return tokens, nil
}

// validate rejects forbidden operator/atom adjacencies. Only the special
// atoms take part, so a label like "KR0" never collides with "0".
func validate(query string, tokens []token) error {
	for i := 1; i < len(tokens); i++ {
		prev, cur := tokens[i-1], tokens[i]
		var atom token
		if prev.kind == tokenAtom {
			atom = prev
		} else {
			atom = cur
		}
		if !isSpecial(atom.text) {
			continue
		}
		pair := prev.text + cur.text
		if forbidden[pair] {
			return syntaxErrorf(query, "invalid combination %q", pair)
		}
	}
	return nil
}

// splitSections splits the raw query on '|' into trimmed section strings.
func splitSections(query string) []string {
	parts := strings.Split(query, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
