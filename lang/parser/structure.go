package parser

import (
	"github.com/ardnew/impral/lang/ast"
	"github.com/ardnew/impral/lang/token"
)

// pipe parses the stages following source. Every stage is appended to a
// single pipe node.
func (p *Parser) pipe(
	c *cursor,
	source ast.BlockRef,
	start int,
	term token.Symbol,
) (ast.BlockRef, error) {
	ref := p.emplace(&ast.Pipe{Source: source}, start, c)
	node, _ := p.block.Get(ref).(*ast.Pipe)

	for c.accept(token.Pipe) {
		seg, err := p.stage(c, term)
		if err != nil {
			return ref, err
		}

		node.Stages = append(node.Stages, seg)
		p.block.Extend(ref, c.last)
	}

	return ref, nil
}

// stage parses one pipe stage after its '|'.
func (p *Parser) stage(c *cursor, term token.Symbol) (ast.PipeSeg, error) {
	switch {
	case c.accept(token.QuestionMark):
		if c.accept(token.ExclamationMark) {
			pred, err := p.stageCall(c, term)

			return ast.Finding{Predicate: pred}, err
		}

		pred, err := p.stageCall(c, term)

		return ast.Exclude{Predicate: pred}, err

	case c.accept(token.ExclamationMark):
		if stageEnd(c, term) {
			return ast.Collect{}, nil
		}

		init, err := p.expression(c, false, false, term)
		if err != nil {
			return nil, err
		}

		reducer, err := p.stageCall(c, term)

		return ast.Folding{Initial: init, Reducer: reducer}, err
	}

	mapper, err := p.stageCall(c, term)

	return ast.Mapping{Mapper: mapper}, err
}

func (p *Parser) stageCall(c *cursor, term token.Symbol) (ast.BlockRef, error) {
	if stageEnd(c, term) {
		return 0, expectButEnd("a pipe stage", c.offset())
	}

	return p.expression(c, true, false, term)
}

// stageEnd reports whether nothing more belongs to the current stage.
func stageEnd(c *cursor, term token.Symbol) bool {
	tok, ok := c.peek()
	if !ok {
		return true
	}

	return tok.Kind == token.SymbolToken &&
		(tok.Symbol == term || tok.Symbol == token.Pipe || tok.Symbol == token.Semicolon)
}

// list parses comma or space separated elements into a list command.
func (p *Parser) list(c *cursor, span ast.Span) (ast.BlockRef, error) {
	call := ast.Call(ast.ListName)

	for {
		tok, ok := c.peek()
		if !ok {
			break
		}

		if c.accept(token.Comma) {
			continue
		}

		if tok.Is(token.BraketRight) {
			c.next()

			break
		}

		elem, err := p.expression(c, false, true, token.Comma)
		if err != nil {
			return 0, err
		}

		call.Pos = append(call.Pos, elem)
	}

	return p.block.Emplace(call, span), nil
}

// dict parses key=value entries into a dict command.
func (p *Parser) dict(c *cursor, span ast.Span) (ast.BlockRef, error) {
	call := ast.Call(ast.DictName)

	for {
		tok, ok := c.next()
		if !ok {
			break
		}

		if tok.Is(token.Comma) {
			continue
		}

		if tok.Is(token.CurlyRight) {
			break
		}

		key, ok := tok.Str()
		if !ok {
			return 0, expectButGot("a key", tok.Describe(), tok.Start)
		}

		eq, ok := c.next()
		if !ok {
			return 0, expectButEnd("'='", c.offset())
		}

		if !eq.Is(token.EqualSign) {
			return 0, expectButGot("'='", eq.Describe(), eq.Start)
		}

		if _, ok := c.peek(); !ok {
			return 0, expectButEnd("a value", c.offset())
		}

		value, err := p.expression(c, false, true, token.Comma)
		if err != nil {
			return 0, err
		}

		call.SetArg(key, value)
	}

	return p.block.Emplace(call, span), nil
}
