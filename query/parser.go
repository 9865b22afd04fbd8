package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bgcdb/clusterq/codec"
	"github.com/bgcdb/clusterq/filter"
	"github.com/bgcdb/clusterq/module"
)

// ModuleCategory is validated with the module grammar at parse time.
const ModuleCategory = "modulequery"

// FilterResolver looks up the filters registered for a category.
type FilterResolver interface {
	Filter(category, name string) (filter.Spec, bool)
}

type parseOptions struct {
	filters FilterResolver
	codec   codec.Codec
}

// ParseOption configures parsing.
type ParseOption func(*parseOptions)

// WithFilters sets the resolver for WITH clauses. Without one, every
// filter is unknown.
func WithFilters(r FilterResolver) ParseOption {
	return func(o *parseOptions) {
		o.filters = r
	}
}

// WithCodec sets the JSON codec. Default: codec.Default.
func WithCodec(c codec.Codec) ParseOption {
	return func(o *parseOptions) {
		o.codec = c
	}
}

func applyParseOptions(opts []ParseOption) parseOptions {
	o := parseOptions{codec: codec.Default}
	for _, fn := range opts {
		fn(&o)
	}
	if o.codec == nil {
		o.codec = codec.Default
	}
	return o
}

// Parse parses a free-text query.
func Parse(input string, opts ...ParseOption) (Term, error) {
	p := &parser{
		tokens: Tokenize(input),
		opts:   applyParseOptions(opts),
	}
	t, err := p.parse()
	if err != nil {
		return nil, err
	}
	return t, nil
}

// parser implements a recursive descent parser over the token stream.
type parser struct {
	tokens []Token
	pos    int
	depth  int
	opts   parseOptions
}

// current returns the current token.
func (p *parser) current() Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

// advance moves to the next token and returns the previous one.
func (p *parser) advance() Token {
	token := p.current()
	p.pos++
	return token
}

func (p *parser) parse() (Term, *ParseError) {
	if p.current().Type == TokenEnd {
		return nil, errorAt(p.current(), "empty query")
	}
	t, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if tok := p.current(); tok.Type != TokenEnd {
		return nil, errorAt(tok, "unbalanced %q", tok.Value)
	}
	return t, nil
}

// parseTerm parses: primary ( keyword term | term )?
func (p *parser) parseTerm() (Term, *ParseError) {
	if p.depth > maxDepth {
		return nil, errorAt(p.current(), "query nested deeper than %d levels", maxDepth)
	}
	p.depth++
	defer func() { p.depth-- }()

	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	tok := p.current()
	switch tok.Type {
	case TokenEnd, TokenRParen:
		return left, nil
	case TokenWith:
		return nil, errorAt(tok, "WITH must follow a bracketed expression")
	case TokenAnd, TokenOr, TokenExcept:
		p.advance()
		if next := p.current(); next.Type == TokenEnd || next.Type == TokenRParen {
			return nil, errorAt(tok, "%s needs a right-hand side", tok.Value)
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		return &Operation{Operator: operatorFor(tok.Type), Left: left, Right: right}, nil
	default:
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		return &Operation{Operator: OpAnd, Left: left, Right: right}, nil
	}
}

func operatorFor(t TokenType) Operator {
	switch t {
	case TokenOr:
		return OpOr
	case TokenExcept:
		return OpExcept
	default:
		return OpAnd
	}
}

// parsePrimary parses: '(' term ')' | expression
func (p *parser) parsePrimary() (Term, *ParseError) {
	tok := p.current()
	switch tok.Type {
	case TokenLParen:
		p.advance()
		if p.current().Type == TokenRParen {
			return nil, errorAt(tok, "empty parentheses")
		}
		inner, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if p.current().Type != TokenRParen {
			return nil, errorAt(tok, "missing closing parenthesis")
		}
		p.advance()
		return inner, nil
	case TokenWord:
		return p.parseExpression()
	case TokenRParen:
		return nil, errorAt(tok, "unexpected %q", tok.Value)
	case TokenEnd:
		return nil, errorAt(tok, "unexpected end of query")
	default:
		return nil, errorAt(tok, "%q is a reserved keyword and cannot be searched for", tok.Value)
	}
}

// parseExpression parses: count? ( '[' category (':' op)? ']' word | word ) filter*
func (p *parser) parseExpression() (Term, *ParseError) {
	tok := p.advance()
	text := tok.Value

	count, rest, hasCount, err := p.parseCount(tok)
	if err != nil {
		return nil, err
	}
	if hasCount {
		if rest == "" {
			next := p.current()
			if next.Type != TokenWord {
				return nil, errorAt(tok, "count must precede an expression")
			}
			tok = p.advance()
			rest = tok.Value
		}
		text = rest
	}

	e := &Expression{Category: Unknown, Term: text, Count: count}
	if strings.HasPrefix(text, "[") {
		end := strings.IndexByte(text, ']')
		if end < 0 {
			return nil, errorAt(tok, "unterminated category bracket")
		}
		category, opText, hasOp := strings.Cut(text[1:end], ":")
		e.Category = strings.ToLower(strings.TrimSpace(category))
		if e.Category == "" {
			return nil, errorAt(tok, "empty category")
		}
		if hasOp {
			op, ok := filter.ParseOperator(strings.TrimSpace(opText))
			if !ok {
				return nil, errorAt(tok, "unknown comparison operator %q", opText)
			}
			e.Comparison = op
		}
		e.Term = text[end+1:]
		if e.Term == "" {
			next := p.current()
			if next.Type != TokenWord {
				return nil, errorAt(tok, "missing search term after [%s]", category)
			}
			e.Term = p.advance().Value
		}
	}
	if keyword(e.Term) != TokenWord {
		return nil, errorAt(tok, "%q is a reserved keyword and cannot be searched for", e.Term)
	}

	for p.current().Type == TokenWith {
		in, err := p.parseFilter(e.Category)
		if err != nil {
			return nil, err
		}
		e.Filters = append(e.Filters, in)
	}

	if e.Category == ModuleCategory {
		if err := module.Validate(e.Term); err != nil {
			return nil, &ParseError{Message: err.Error(), Position: tok.Position, Length: tok.Length, Err: err}
		}
	}
	return e, nil
}

// parseCount recognizes "N *", "N*" and "N*expr" prefixes.
func (p *parser) parseCount(tok Token) (count int, rest string, ok bool, perr *ParseError) {
	text := tok.Value
	digits := 0
	for digits < len(text) && text[digits] >= '0' && text[digits] <= '9' {
		digits++
	}
	if digits == 0 {
		return 0, "", false, nil
	}

	switch {
	case digits < len(text) && text[digits] == '*':
		rest = text[digits+1:]
	case digits == len(text) && p.current().Type == TokenWord && strings.HasPrefix(p.current().Value, "*"):
		rest = p.advance().Value[1:]
	default:
		return 0, "", false, nil
	}

	n, err := strconv.Atoi(text[:digits])
	if err != nil {
		return 0, "", false, errorAt(tok, "invalid count %q", text[:digits])
	}
	return n, rest, true, nil
}

// parseFilter parses: 'WITH' '[' name ']' '(' op? value ')'
func (p *parser) parseFilter(category string) (filter.Instance, *ParseError) {
	with := p.advance()
	if category == Unknown {
		return filter.Instance{}, errorAt(with, "filters need a bracketed category")
	}

	nameTok := p.current()
	if nameTok.Type != TokenWord || len(nameTok.Value) < 3 ||
		!strings.HasPrefix(nameTok.Value, "[") || !strings.HasSuffix(nameTok.Value, "]") {
		return filter.Instance{}, errorAt(nameTok, "expected [filter] after WITH")
	}
	p.advance()
	name := strings.TrimSpace(nameTok.Value[1 : len(nameTok.Value)-1])

	open := p.current()
	if open.Type != TokenLParen {
		return filter.Instance{}, errorAt(open, "expected ( after [%s]", name)
	}
	p.advance()

	var parts []string
	for p.current().Type != TokenRParen {
		if p.current().Type == TokenEnd {
			return filter.Instance{}, errorAt(open, "unterminated filter clause")
		}
		parts = append(parts, p.advance().Value)
	}
	p.advance()

	in := filter.Instance{Name: name}
	raw := strings.Join(parts, " ")
	if op, rest, ok := filter.SplitOperator(raw); ok {
		in.Operator = op
		raw = rest
	}
	in.Value = filter.String(strings.TrimSpace(raw))

	checked, err := resolveFilter(p.opts.filters, category, in)
	if err != nil {
		err.Position = nameTok.Position
		err.Length = nameTok.Length
		return filter.Instance{}, err
	}
	return checked, nil
}

// resolveFilter checks in against the filter registered for category.
func resolveFilter(r FilterResolver, category string, in filter.Instance) (filter.Instance, *ParseError) {
	if r == nil {
		return in, filterError(fmt.Errorf("%w: no filters registered", ErrFilter))
	}
	spec, ok := r.Filter(category, in.Name)
	if !ok {
		return in, filterError(fmt.Errorf("%w: unknown filter %q for category %q", ErrFilter, in.Name, category))
	}
	checked, err := spec.Check(in)
	if err != nil {
		return in, filterError(fmt.Errorf("%w: %w", ErrFilter, err))
	}
	checked.Name = spec.Name
	return checked, nil
}

func filterError(err error) *ParseError {
	return &ParseError{Message: err.Error(), Position: -1, Err: err}
}
