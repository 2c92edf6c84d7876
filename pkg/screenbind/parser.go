package screenbind

import (
	"fmt"
	"strconv"
	"strings"
)

// ExpressionNode is a node in the expression AST. The node set is closed:
// literal, path, call, binary, unary, ternary and array are the only
// variants the parser ever produces.
type ExpressionNode interface {
	String() string
	eval(env *evalEnv) (interface{}, error)
}

// LiteralNode represents a literal value (number, string, boolean, null).
type LiteralNode struct {
	Value interface{}
}

func (n *LiteralNode) String() string {
	if str, ok := n.Value.(string); ok {
		return fmt.Sprintf("Literal(%q)", str)
	}
	return fmt.Sprintf("Literal(%v)", n.Value)
}

// PathNode represents a dot-path reference such as state.items[0].name.
// Numeric segments address array slots at resolution time.
type PathNode struct {
	Segments []string
}

func (n *PathNode) String() string {
	return fmt.Sprintf("Path(%s)", strings.Join(n.Segments, "."))
}

// Dotted returns the path in dot notation, the form used by the static
// analysis collectors and the path resolver.
func (n *PathNode) Dotted() string {
	return strings.Join(n.Segments, ".")
}

// CallNode represents a function call against the active registry.
type CallNode struct {
	Name string
	Args []ExpressionNode
}

func (n *CallNode) String() string {
	args := make([]string, len(n.Args))
	for i, arg := range n.Args {
		args[i] = arg.String()
	}
	return fmt.Sprintf("Call(%s, [%s])", n.Name, strings.Join(args, ", "))
}

// BinaryNode represents a binary operation.
type BinaryNode struct {
	Operator string
	Left     ExpressionNode
	Right    ExpressionNode
}

func (n *BinaryNode) String() string {
	return fmt.Sprintf("Binary(%s %s %s)", n.Left.String(), n.Operator, n.Right.String())
}

// UnaryNode represents a unary operation (! or -).
type UnaryNode struct {
	Operator string
	Operand  ExpressionNode
}

func (n *UnaryNode) String() string {
	return fmt.Sprintf("Unary(%s %s)", n.Operator, n.Operand.String())
}

// TernaryNode represents a conditional expression. Only the chosen branch
// is ever evaluated.
type TernaryNode struct {
	Condition  ExpressionNode
	Consequent ExpressionNode
	Alternate  ExpressionNode
}

func (n *TernaryNode) String() string {
	return fmt.Sprintf("Ternary(%s ? %s : %s)",
		n.Condition.String(), n.Consequent.String(), n.Alternate.String())
}

// ArrayNode represents a bracketed array literal.
type ArrayNode struct {
	Elements []ExpressionNode
}

func (n *ArrayNode) String() string {
	elems := make([]string, len(n.Elements))
	for i, el := range n.Elements {
		elems[i] = el.String()
	}
	return fmt.Sprintf("Array([%s])", strings.Join(elems, ", "))
}

// Parse turns a token list into an AST, enforcing the global nesting and
// argument ceilings. Trailing tokens after a complete expression are a
// syntax error, never silently ignored.
func Parse(tokens []Token) (ExpressionNode, error) {
	cfg := GetGlobalConfig()
	return parseWithLimits(tokens, cfg.MaxParseDepth, cfg.MaxArguments)
}

// ParseExpression tokenizes and parses an expression source string.
func ParseExpression(source string) (ExpressionNode, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

func parseWithLimits(tokens []Token, maxDepth, maxArguments int) (ExpressionNode, error) {
	parser := &expressionParser{
		tokens:       tokens,
		maxDepth:     maxDepth,
		maxArguments: maxArguments,
	}

	node, err := parser.parseExpression()
	if err != nil {
		return nil, err
	}

	if token := parser.current(); token.Type != TokenEOF {
		return nil, NewSyntaxError("unexpected trailing token", token.Value, token.Pos)
	}

	return node, nil
}

// expressionParser is a recursive-descent parser over a token list.
type expressionParser struct {
	tokens       []Token
	pos          int
	depth        int
	maxDepth     int
	maxArguments int
}

func (p *expressionParser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *expressionParser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

// enter tracks structural nesting (ternaries, groups, array literals)
// against the parse-time depth ceiling. Call arguments are exempt here;
// deep call trees are caught by the evaluation-time counter instead.
func (p *expressionParser) enter() error {
	p.depth++
	if p.depth > p.maxDepth {
		return NewComplexityError(LimitDepth, p.maxDepth)
	}
	return nil
}

func (p *expressionParser) leave() {
	p.depth--
}

func (p *expressionParser) parseExpression() (ExpressionNode, error) {
	return p.parseTernary()
}

// parseTernary parses conditional expressions (lowest precedence,
// right-associative).
func (p *expressionParser) parseTernary() (ExpressionNode, error) {
	condition, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}

	if p.current().Type != TokenQuestion {
		return condition, nil
	}
	p.advance() // consume '?'

	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	consequent, err := p.parseTernary()
	if err != nil {
		return nil, err
	}

	if p.current().Type != TokenColon {
		token := p.current()
		return nil, NewSyntaxError("expected ':' in ternary expression", token.Value, token.Pos)
	}
	p.advance() // consume ':'

	alternate, err := p.parseTernary()
	if err != nil {
		return nil, err
	}

	return &TernaryNode{Condition: condition, Consequent: consequent, Alternate: alternate}, nil
}

func (p *expressionParser) parseLogicalOr() (ExpressionNode, error) {
	left, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenOperator && p.current().Value == "||" {
		p.advance()
		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Operator: "||", Left: left, Right: right}
	}

	return left, nil
}

func (p *expressionParser) parseLogicalAnd() (ExpressionNode, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenOperator && p.current().Value == "&&" {
		p.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Operator: "&&", Left: left, Right: right}
	}

	return left, nil
}

var comparisonOperators = map[string]bool{
	"==": true, "!=": true, "===": true, "!==": true,
	">": true, ">=": true, "<": true, "<=": true,
}

func (p *expressionParser) parseComparison() (ExpressionNode, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenOperator && comparisonOperators[p.current().Value] {
		op := p.current().Value
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Operator: op, Left: left, Right: right}
	}

	return left, nil
}

func (p *expressionParser) parseAdditive() (ExpressionNode, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenOperator && (p.current().Value == "+" || p.current().Value == "-") {
		op := p.current().Value
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Operator: op, Left: left, Right: right}
	}

	return left, nil
}

func (p *expressionParser) parseMultiplicative() (ExpressionNode, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenOperator &&
		(p.current().Value == "*" || p.current().Value == "/" || p.current().Value == "%") {
		op := p.current().Value
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Operator: op, Left: left, Right: right}
	}

	return left, nil
}

func (p *expressionParser) parseUnary() (ExpressionNode, error) {
	if p.current().Type == TokenOperator && (p.current().Value == "!" || p.current().Value == "-") {
		op := p.current().Value
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryNode{Operator: op, Operand: operand}, nil
	}

	return p.parsePostfix()
}

// parsePostfix parses call and member access over a primary expression.
func (p *expressionParser) parsePostfix() (ExpressionNode, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		token := p.current()

		switch {
		case token.Type == TokenLeftParen:
			path, ok := left.(*PathNode)
			if !ok {
				return left, nil
			}
			left, err = p.parseCall(path.Dotted())
			if err != nil {
				return nil, err
			}

		case token.Type == TokenDot:
			p.advance() // consume '.'
			field := p.current()
			if field.Type != TokenIdentifier {
				return nil, NewSyntaxError("expected identifier after '.'", field.Value, field.Pos)
			}
			p.advance()
			if path, ok := left.(*PathNode); ok {
				left = &PathNode{Segments: append(append([]string{}, path.Segments...), field.Value)}
			} else {
				// Historical forgiving behavior: a dot after a non-path
				// primary starts a fresh path at that field.
				left = &PathNode{Segments: []string{field.Value}}
			}

		case token.Type == TokenLeftBracket:
			path, ok := left.(*PathNode)
			if !ok {
				return left, nil
			}
			p.advance() // consume '['
			index := p.current()
			var segment string
			switch index.Type {
			case TokenNumber:
				segment = index.Value
			case TokenString:
				segment = index.Value
			default:
				return nil, NewSyntaxError("expected literal index after '['", index.Value, index.Pos)
			}
			p.advance()
			if p.current().Type != TokenRightBracket {
				token := p.current()
				return nil, NewSyntaxError("expected ']' after index", token.Value, token.Pos)
			}
			p.advance()
			left = &PathNode{Segments: append(append([]string{}, path.Segments...), segment)}

		default:
			return left, nil
		}
	}
}

func (p *expressionParser) parsePrimary() (ExpressionNode, error) {
	token := p.current()

	switch token.Type {
	case TokenNumber:
		p.advance()
		value, err := strconv.ParseFloat(token.Value, 64)
		if err != nil {
			return nil, NewSyntaxError("invalid number", token.Value, token.Pos)
		}
		return &LiteralNode{Value: value}, nil

	case TokenString:
		p.advance()
		return &LiteralNode{Value: token.Value}, nil

	case TokenBoolean:
		p.advance()
		return &LiteralNode{Value: token.Value == "true"}, nil

	case TokenNull:
		p.advance()
		return &LiteralNode{Value: nil}, nil

	case TokenIdentifier:
		p.advance()
		return &PathNode{Segments: []string{token.Value}}, nil

	case TokenLeftParen:
		p.advance()
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if p.current().Type != TokenRightParen {
			token := p.current()
			return nil, NewSyntaxError("expected ')' after expression", token.Value, token.Pos)
		}
		p.advance()
		return expr, nil

	case TokenLeftBracket:
		return p.parseArrayLiteral()

	default:
		return nil, NewSyntaxError("unexpected token", token.Value, token.Pos)
	}
}

func (p *expressionParser) parseArrayLiteral() (ExpressionNode, error) {
	p.advance() // consume '['
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	var elements []ExpressionNode

	if p.current().Type == TokenRightBracket {
		p.advance()
		return &ArrayNode{Elements: elements}, nil
	}

	for {
		element, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		elements = append(elements, element)
		if len(elements) > p.maxArguments {
			return nil, NewComplexityError(LimitArguments, p.maxArguments)
		}

		if p.current().Type == TokenComma {
			p.advance()
			continue
		}
		if p.current().Type == TokenRightBracket {
			p.advance()
			return &ArrayNode{Elements: elements}, nil
		}

		token := p.current()
		return nil, NewSyntaxError("expected ',' or ']' in array literal", token.Value, token.Pos)
	}
}

func (p *expressionParser) parseCall(name string) (ExpressionNode, error) {
	p.advance() // consume '('

	var args []ExpressionNode

	if p.current().Type == TokenRightParen {
		p.advance()
		return &CallNode{Name: name, Args: args}, nil
	}

	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if len(args) > p.maxArguments {
			return nil, NewComplexityError(LimitArguments, p.maxArguments)
		}

		if p.current().Type == TokenComma {
			p.advance()
			continue
		}
		if p.current().Type == TokenRightParen {
			p.advance()
			return &CallNode{Name: name, Args: args}, nil
		}

		token := p.current()
		return nil, NewSyntaxError("expected ',' or ')' in function arguments", token.Value, token.Pos)
	}
}
