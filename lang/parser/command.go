package parser

import (
	"github.com/ardnew/impral/lang/ast"
	"github.com/ardnew/impral/lang/token"
)

// command parses a command name and its arguments.
func (p *Parser) command(c *cursor, term token.Symbol) (ast.BlockRef, error) {
	tok, ok := c.next()
	if !ok {
		return 0, expectButEnd("a command name", c.offset())
	}

	if err := p.enter(tok.Start); err != nil {
		return 0, err
	}
	defer p.leave()

	if tok.Kind == token.RemainderToken {
		return 0, &Error{Kind: Unrecognized, Pos: tok.Start, Text: tok.Text}
	}

	name, ok := tok.CommandName()
	if !ok {
		return 0, expectButGot("a command name", tok.Describe(), tok.Start)
	}

	return p.body(c, ast.Call(name), tok.Start, term)
}

// body parses arguments into call until a terminator.
//
// The caller's terminator, ';', '|' and arrows are left for the caller. A
// closing delimiter is consumed. '::' appends one subcommand as the last
// positional argument, while '&&' and '||' make the call the condition of
// a conditional whose branch is the subcommand.
func (p *Parser) body(
	c *cursor,
	call *ast.FnCall,
	start int,
	term token.Symbol,
) (ast.BlockRef, error) {
	named := false

	for {
		tok, ok := c.peek()
		if !ok {
			break
		}

		if tok.Kind == token.SymbolToken {
			switch s := tok.Symbol; {
			case s == term, s == token.Semicolon, s == token.Pipe, s.IsArrow():
				return p.emplace(call, start, c), nil

			case s.IsEndDelimiter():
				c.next()

				return p.emplace(call, start, c), nil

			case s == token.DoubleColon:
				c.next()

				sub, err := p.command(c, term)
				if err != nil {
					return 0, err
				}

				call.Pos = append(call.Pos, sub)

				return p.emplace(call, start, c), nil

			case s == token.And, s == token.Or:
				cond := p.emplace(call, start, c)

				c.next()

				sub, err := p.command(c, term)
				if err != nil {
					return cond, err
				}

				name := IfThenName
				if s == token.Or {
					name = IfElseName
				}

				return p.emplace(ast.Call(name, cond, sub), start, c), nil

			case s == token.Dash, s == token.Plus:
				if err := p.flag(c, call); err != nil {
					return 0, err
				}

				named = true

				continue
			}
		}

		if err := p.argument(c, call, &named, term); err != nil {
			return 0, err
		}
	}

	return p.emplace(call, start, c), nil
}

// flag parses `-name` as name=false and `+name` as name=true.
func (p *Parser) flag(c *cursor, call *ast.FnCall) error {
	sign, _ := c.next()

	tok, ok := c.next()
	if !ok {
		return expectButEnd("a parameter name", c.offset())
	}

	name, ok := tok.Str()
	if !ok {
		return expectButGot("a parameter name", tok.Describe(), tok.Start)
	}

	value := p.block.Emplace(
		&ast.Value{Literal: token.Bool(sign.Is(token.Plus))},
		ast.Span{Start: sign.Start, End: tok.End},
	)

	call.SetArg(name, value)

	return nil
}

// argument parses one positional or named argument into call.
func (p *Parser) argument(
	c *cursor,
	call *ast.FnCall,
	named *bool,
	term token.Symbol,
) error {
	tok, _ := c.peek()

	if name, ok := tok.Str(); ok && c.is(1, token.EqualSign) {
		c.next()
		c.next()

		if _, ok := c.peek(); !ok {
			return expectButEnd("a value", c.offset())
		}

		value, err := p.expression(c, false, false, term)
		if err != nil {
			return err
		}

		call.SetArg(name, value)
		*named = true

		return nil
	}

	value, err := p.expression(c, false, false, term)
	if err != nil {
		return err
	}

	if c.is(0, token.EqualSign) {
		return expectButGot("a parameter name", tok.Describe(), tok.Start)
	}

	if *named {
		return errorAt(PosArgAfterNomArg, tok.Start)
	}

	call.Pos = append(call.Pos, value)

	return nil
}
