package parser

import (
	"github.com/ardnew/impral/lang/ast"
	"github.com/ardnew/impral/lang/token"
)

// expression parses an item followed by its postfix chain.
//
// term is a symbol owned by the caller: parsing stops in front of it
// without consuming it. [token.SymbolInvalid] means no terminator.
func (p *Parser) expression(
	c *cursor,
	allowCommand, allowPipe bool,
	term token.Symbol,
) (ast.BlockRef, error) {
	tok, ok := c.peek()
	if !ok {
		return 0, errorAt(Empty, c.offset())
	}

	if err := p.enter(tok.Start); err != nil {
		return 0, err
	}
	defer p.leave()

	var (
		ref ast.BlockRef
		err error
	)

	if allowCommand && tok.Is(token.EqualSign) {
		c.next()
		ref, err = p.infix(c, token.PrecedenceNone, term)
	} else {
		ref, err = p.item(c, allowCommand, term)
	}

	if err != nil {
		return ref, err
	}

	return p.postfix(c, ref, tok.Start, allowPipe, term)
}

// item parses a single literal, group, placeholder or command.
func (p *Parser) item(
	c *cursor,
	allowCommand bool,
	term token.Symbol,
) (ast.BlockRef, error) {
	tok, ok := c.peek()
	if !ok {
		return 0, errorAt(Empty, c.offset())
	}

	if allowCommand && startsCommand(c) {
		return p.command(c, term)
	}

	c.next()

	span := ast.Span{Start: tok.Start, End: tok.End}

	switch tok.Kind {
	case token.RemainderToken:
		return 0, &Error{Kind: Unrecognized, Pos: tok.Start, Text: tok.Text}

	case token.LiteralToken:
		return p.block.Emplace(&ast.Value{Literal: tok.Literal}, span), nil

	case token.GroupToken:
		return p.group(tok)

	case token.SymbolToken:
		if tok.Is(token.Underscore) {
			return p.block.Emplace(&ast.Empty{}, span), nil
		}
	}

	return 0, unexpected(tok.Describe(), tok.Start)
}

// startsCommand reports whether the next token begins a command. A string
// directly followed by a postfix operator is a plain value instead.
func startsCommand(c *cursor) bool {
	tok, _ := c.peek()
	if _, ok := tok.CommandName(); !ok {
		return false
	}

	if tok.Kind == token.LiteralToken {
		if next, ok := c.peekAt(1); ok && isPostfix(next) {
			return false
		}
	}

	return true
}

func isPostfix(tok token.Token) bool {
	if tok.Kind != token.SymbolToken {
		return false
	}

	switch tok.Symbol {
	case token.Dot, token.Range, token.QuestionMark, token.Tilde, token.ArrowRight:
		return true
	default:
		return tok.Symbol.IsPostop()
	}
}

// group parses the contents of a bracketed group token.
func (p *Parser) group(tok token.Token) (ast.BlockRef, error) {
	c := newCursor(tok.Tokens, tok.End)
	span := ast.Span{Start: tok.Start, End: tok.End}

	switch tok.Symbol {
	case token.BraketLeft:
		return p.list(c, span)

	case token.CurlyLeft:
		return p.dict(c, span)

	default:
		ref, err := p.expression(c, true, true, token.SymbolInvalid)
		if err != nil {
			return ref, err
		}

		return ref, p.finish(c)
	}
}

// postfix applies postfix operators to ref until none match.
func (p *Parser) postfix(
	c *cursor,
	ref ast.BlockRef,
	start int,
	allowPipe bool,
	term token.Symbol,
) (ast.BlockRef, error) {
	for {
		tok, ok := c.peek()
		if !ok || tok.Kind != token.SymbolToken || tok.Symbol == term {
			return ref, nil
		}

		var err error

		switch s := tok.Symbol; {
		case s == token.Dot:
			ref, err = p.member(c, ref, start)

		case s == token.Range:
			ref, err = p.rangeTo(c, ref, start, term)

		case s == token.QuestionMark:
			c.next()
			aborts := c.accept(token.ExclamationMark)
			ref = p.emplace(&ast.Try{Target: ref, Aborts: aborts}, start, c)

		case s == token.Tilde:
			ref, err = p.relation(c, ref, start, term)

		case s.IsPostop():
			c.next()
			name, _ := s.PostopName()
			ref = p.emplace(ast.Call(name, ref), start, c)

		case s == token.ArrowRight && allowPipe:
			ref, err = p.assign(c, ref, start)

		case s == token.Pipe && allowPipe:
			ref, err = p.pipe(c, ref, start, term)

		default:
			return ref, nil
		}

		if err != nil {
			return ref, err
		}
	}
}

// member parses the operand of a '.': an index, a method call or a field.
func (p *Parser) member(
	c *cursor,
	target ast.BlockRef,
	start int,
) (ast.BlockRef, error) {
	dot, _ := c.next()

	tok, ok := c.peek()
	if !ok {
		return target, errorAt(DanglingDot, dot.Start)
	}

	switch {
	case tok.IsGroup(token.BraketLeft):
		c.next()

		inner := newCursor(tok.Tokens, tok.End)

		key, err := p.expression(inner, false, true, token.SymbolInvalid)
		if err != nil {
			return target, err
		}

		if err := p.finish(inner); err != nil {
			return target, err
		}

		return p.emplace(&ast.Index{Target: target, Key: key}, start, c), nil

	case tok.IsGroup(token.ParenLeft):
		c.next()

		inner := newCursor(tok.Tokens, tok.End)

		call, err := p.command(inner, token.SymbolInvalid)
		if err != nil {
			return target, err
		}

		if err := p.finish(inner); err != nil {
			return target, err
		}

		return p.emplace(&ast.Method{Target: target, Call: call}, start, c), nil
	}

	if name, ok := tok.Str(); ok {
		c.next()

		return p.emplace(&ast.Field{Target: target, Name: name}, start, c), nil
	}

	return target, errorAt(DanglingDot, dot.Start)
}

// rangeTo parses the end of a range whose start is ref.
func (p *Parser) rangeTo(
	c *cursor,
	ref ast.BlockRef,
	start int,
	term token.Symbol,
) (ast.BlockRef, error) {
	op, _ := c.next()
	inclusive := c.accept(token.EqualSign)

	if p.isRange(ref) {
		return ref, errorAt(NestedRange, op.Start)
	}

	tok, ok := c.peek()
	if !ok {
		return ref, expectButEnd("the end of a range", c.offset())
	}

	end, err := p.item(c, false, term)
	if err != nil {
		return ref, err
	}

	end, err = p.postfix(c, end, tok.Start, false, term)
	if err != nil {
		return ref, err
	}

	if p.isRange(end) {
		return ref, errorAt(NestedRange, op.Start)
	}

	return p.emplace(&ast.Range{Start: ref, End: end, Inclusive: inclusive}, start, c), nil
}

func (p *Parser) isRange(ref ast.BlockRef) bool {
	_, ok := p.block.Get(ref).(*ast.Range)

	return ok
}

// assign parses `-> $name` into a set command.
func (p *Parser) assign(
	c *cursor,
	ref ast.BlockRef,
	start int,
) (ast.BlockRef, error) {
	c.next()

	tok, ok := c.next()
	if !ok {
		return ref, expectButEnd("a variable reference", c.offset())
	}

	if tok.Kind != token.LiteralToken || tok.Literal.Kind() != token.KindRefVar {
		return ref, expectButGot("a variable reference", tok.Describe(), tok.Start)
	}

	name := p.block.Emplace(
		&ast.Value{Literal: tok.Literal},
		ast.Span{Start: tok.Start, End: tok.End},
	)

	return p.emplace(ast.Call(SetName, name, ref), start, c), nil
}

// relation parses the right-hand side of a '~'.
func (p *Parser) relation(
	c *cursor,
	ref ast.BlockRef,
	start int,
	term token.Symbol,
) (ast.BlockRef, error) {
	c.next()

	tok, ok := c.peek()
	if !ok {
		return ref, expectButEnd("a relation", c.offset())
	}

	if word, ok := tok.Str(); ok && token.IsBareword(word) {
		c.next()

		return p.emplace(ast.Call(RelativeToPrefix+word, ref), start, c), nil
	}

	rhs, err := p.item(c, false, term)
	if err != nil {
		return ref, err
	}

	return p.emplace(ast.Call(RelativeName, ref, rhs), start, c), nil
}

// infix parses operands joined by infix operators binding tighter than
// floor. Operators of equal precedence associate to the left.
func (p *Parser) infix(
	c *cursor,
	floor token.Precedence,
	term token.Symbol,
) (ast.BlockRef, error) {
	tok, ok := c.peek()
	if !ok {
		return 0, expectButEnd("an operand", c.offset())
	}

	if err := p.enter(tok.Start); err != nil {
		return 0, err
	}
	defer p.leave()

	lhs, err := p.operand(c, term)
	if err != nil {
		return lhs, err
	}

	for {
		op, ok := c.peek()
		if !ok || op.Kind != token.SymbolToken ||
			!op.Symbol.IsInfixOperator() || op.Symbol.Precedence() <= floor {
			return lhs, nil
		}

		c.next()

		rhs, err := p.infix(c, op.Symbol.Precedence(), term)
		if err != nil {
			return lhs, err
		}

		lhs = p.emplace(ast.Call(op.Symbol.String(), lhs, rhs), tok.Start, c)
	}
}

// operand parses one side of an infix operator. Parentheses nest another
// infix expression.
func (p *Parser) operand(c *cursor, term token.Symbol) (ast.BlockRef, error) {
	tok, _ := c.peek()

	var (
		ref ast.BlockRef
		err error
	)

	if tok.IsGroup(token.ParenLeft) {
		c.next()

		inner := newCursor(tok.Tokens, tok.End)

		if ref, err = p.infix(inner, token.PrecedenceNone, token.SymbolInvalid); err != nil {
			return ref, err
		}

		if err = p.finish(inner); err != nil {
			return ref, err
		}
	} else if ref, err = p.item(c, false, term); err != nil {
		return ref, err
	}

	return p.postfix(c, ref, tok.Start, false, term)
}
