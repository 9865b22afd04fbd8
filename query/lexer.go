package query

import "strings"

// TokenType represents the type of lexical token.
type TokenType int

const (
	TokenWord TokenType = iota
	TokenLParen
	TokenRParen
	TokenAnd
	TokenOr
	TokenExcept
	TokenWith
	TokenEnd
)

// Token represents a lexical token.
type Token struct {
	Type     TokenType
	Value    string
	Position int
	Length   int
}

// IsKeyword reports whether the token is AND, OR or EXCEPT.
func (t Token) IsKeyword() bool {
	return t.Type == TokenAnd || t.Type == TokenOr || t.Type == TokenExcept
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

// keyword returns the keyword token type of a word, or TokenWord.
// AND, OR and EXCEPT are case-insensitive; WITH must be upper-case.
func keyword(word string) TokenType {
	switch strings.ToUpper(word) {
	case "AND":
		return TokenAnd
	case "OR":
		return TokenOr
	case "EXCEPT":
		return TokenExcept
	}
	if word == "WITH" {
		return TokenWith
	}
	return TokenWord
}

// Tokenize splits input on whitespace, then splits each chunk around '('
// and ')'. The last token is always TokenEnd.
func Tokenize(input string) []Token {
	var tokens []Token
	for pos := 0; pos < len(input); {
		if isSpace(input[pos]) {
			pos++
			continue
		}
		start := pos
		for pos < len(input) && !isSpace(input[pos]) {
			pos++
		}
		tokens = splitChunk(tokens, input[start:pos], start)
	}
	return append(tokens, Token{Type: TokenEnd, Position: len(input)})
}

func splitChunk(tokens []Token, chunk string, offset int) []Token {
	flush := func(start, end int) {
		if start < end {
			word := chunk[start:end]
			tokens = append(tokens, Token{Type: keyword(word), Value: word, Position: offset + start, Length: end - start})
		}
	}
	start := 0
	for i := 0; i < len(chunk); i++ {
		switch chunk[i] {
		case '(':
			flush(start, i)
			tokens = append(tokens, Token{Type: TokenLParen, Value: "(", Position: offset + i, Length: 1})
			start = i + 1
		case ')':
			flush(start, i)
			tokens = append(tokens, Token{Type: TokenRParen, Value: ")", Position: offset + i, Length: 1})
			start = i + 1
		}
	}
	flush(start, len(chunk))
	return tokens
}
