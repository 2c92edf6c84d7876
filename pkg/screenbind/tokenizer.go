package screenbind

import (
	"fmt"
	"regexp"
	"strings"
)

// TokenType identifies the kind of an expression token.
type TokenType int

const (
	TokenNumber TokenType = iota
	TokenString
	TokenBoolean
	TokenNull
	TokenIdentifier
	TokenOperator
	TokenLeftParen
	TokenRightParen
	TokenLeftBracket
	TokenRightBracket
	TokenComma
	TokenDot
	TokenQuestion
	TokenColon
	TokenEOF
)

// Token is one lexical unit of an expression. Pos is the byte offset of
// the token in the source string.
type Token struct {
	Type  TokenType
	Value string
	Pos   int
}

var (
	// Identifiers may contain letters, digits, underscore and $.
	tokenIdentifierRegex = regexp.MustCompile(`^[a-zA-Z_$][a-zA-Z0-9_$]*`)
	// Numbers are unsigned decimal literals; '-' is a unary operator.
	tokenNumberRegex = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?`)
	// Strings accept either quote style with backslash escaping of the
	// next character.
	tokenDoubleQuoteRegex = regexp.MustCompile(`^"([^"\\]|\\.)*"`)
	tokenSingleQuoteRegex = regexp.MustCompile(`^'([^'\\]|\\.)*'`)
	// Multi-character operators are matched before their single-character
	// prefixes.
	tokenOperatorRegex = regexp.MustCompile(`^(===|!==|==|!=|>=|<=|&&|\|\||[+\-*/%<>!])`)
)

// Tokenize converts an expression source string into a token list ending
// with a TokenEOF sentinel, enforcing the global token-count ceiling.
func Tokenize(source string) ([]Token, error) {
	return tokenize(source, GetGlobalConfig().MaxTokens)
}

func tokenize(source string, maxTokens int) ([]Token, error) {
	var tokens []Token
	pos := 0

	push := func(typ TokenType, value string, at int) error {
		if len(tokens) >= maxTokens {
			return NewComplexityError(LimitTokens, maxTokens)
		}
		tokens = append(tokens, Token{Type: typ, Value: value, Pos: at})
		return nil
	}

	for pos < len(source) {
		ch := source[pos]

		// Skip whitespace
		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' {
			pos++
			continue
		}

		remaining := source[pos:]

		if match := tokenIdentifierRegex.FindString(remaining); match != "" {
			typ := TokenIdentifier
			switch match {
			case "true", "false":
				typ = TokenBoolean
			case "null":
				typ = TokenNull
			}
			if err := push(typ, match, pos); err != nil {
				return nil, err
			}
			pos += len(match)
			continue
		}

		if match := tokenNumberRegex.FindString(remaining); match != "" {
			if err := push(TokenNumber, match, pos); err != nil {
				return nil, err
			}
			pos += len(match)
			continue
		}

		if match := tokenDoubleQuoteRegex.FindString(remaining); match != "" {
			if err := push(TokenString, unescapeString(match[1:len(match)-1]), pos); err != nil {
				return nil, err
			}
			pos += len(match)
			continue
		}

		if match := tokenSingleQuoteRegex.FindString(remaining); match != "" {
			if err := push(TokenString, unescapeString(match[1:len(match)-1]), pos); err != nil {
				return nil, err
			}
			pos += len(match)
			continue
		}

		if match := tokenOperatorRegex.FindString(remaining); match != "" {
			if err := push(TokenOperator, match, pos); err != nil {
				return nil, err
			}
			pos += len(match)
			continue
		}

		var punct TokenType
		switch ch {
		case '(':
			punct = TokenLeftParen
		case ')':
			punct = TokenRightParen
		case '[':
			punct = TokenLeftBracket
		case ']':
			punct = TokenRightBracket
		case ',':
			punct = TokenComma
		case '.':
			punct = TokenDot
		case '?':
			punct = TokenQuestion
		case ':':
			punct = TokenColon
		default:
			return nil, NewSyntaxError(
				fmt.Sprintf("unexpected character %q", string(ch)), string(ch), pos)
		}
		if err := push(punct, string(ch), pos); err != nil {
			return nil, err
		}
		pos++
	}

	tokens = append(tokens, Token{Type: TokenEOF, Pos: pos})
	return tokens, nil
}

// unescapeString resolves the minimal escape rule: a backslash makes the
// next character literal, whatever it is.
func unescapeString(value string) string {
	if !strings.ContainsRune(value, '\\') {
		return value
	}
	var b strings.Builder
	b.Grow(len(value))
	escaped := false
	for _, r := range value {
		if escaped {
			b.WriteRune(r)
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
