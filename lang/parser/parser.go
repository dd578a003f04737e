// Package parser builds [ast.Block] arenas from grouped token streams.
//
// The grammar is recursive descent over tokens already nested by
// [lexer.Group]. A command is a name followed by arguments; any item may be
// followed by a chain of postfix operators, and an expression may continue
// into a pipe of stages. The outermost expression of a successful parse
// becomes the entry of the block.
package parser

import (
	"log/slog"

	"github.com/ardnew/impral/lang/ast"
	"github.com/ardnew/impral/lang/lexer"
	"github.com/ardnew/impral/lang/token"
	"github.com/ardnew/impral/log"
)

// DefaultMaxDepth is the default bound on nesting depth.
const DefaultMaxDepth = 100

// Names of commands the parser synthesizes for syntactic sugar.
const (
	SetName          = "set"
	IfThenName       = "if-then"
	IfElseName       = "if-else"
	RelativeName     = "relative"
	RelativeToPrefix = "relative_to_"
)

// SyntheticNames returns the command names that the parser may produce
// without them appearing literally in the input.
func SyntheticNames() []string {
	names := []string{
		ast.ListName, ast.DictName,
		SetName, IfThenName, IfElseName, RelativeName,
	}

	for s := range token.Symbols() {
		if name, ok := s.PostopName(); ok {
			names = append(names, name)
		}
	}

	return names
}

// Option configures a [Parser].
type Option func(*Parser)

// WithMaxDepth bounds the nesting depth of parsed expressions.
// Values less than 1 are ignored.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		if depth > 0 {
			p.maxDepth = depth
		}
	}
}

// WithLogger sets the logger receiving trace events.
func WithLogger(logger log.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// Parser accumulates parsed expressions into a single [ast.Block].
// A Parser is not safe for concurrent use.
type Parser struct {
	block    *ast.Block
	depth    int
	maxDepth int
	logger   log.Logger
}

// New returns a Parser with an empty block.
func New(opts ...Option) *Parser {
	p := &Parser{
		block:    ast.NewBlock(),
		maxDepth: DefaultMaxDepth,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Block returns the block built so far. After a failed parse it holds the
// nodes emplaced before the failure.
func (p *Parser) Block() *ast.Block { return p.block }

// ParseExpression parses one expression from toks.
//
// With allowCommand set, a leading name starts a command. With allowPipe
// set, the expression may continue into pipe stages. Trailing semicolons
// are skipped and any other leftover token is an error. When the call is
// not nested in another parse, the result becomes the entry of the block.
func (p *Parser) ParseExpression(
	toks []token.Token,
	allowCommand, allowPipe bool,
) (ast.BlockRef, error) {
	c := newCursor(toks, streamEnd(toks))

	ref, err := p.expression(c, allowCommand, allowPipe, token.SymbolInvalid)
	if err != nil {
		return ref, err
	}

	if err := p.finish(c); err != nil {
		return ref, err
	}

	if p.depth == 0 {
		p.block.SetEntry(ref)
		p.logger.Trace("entry set",
			slog.Uint64("ref", uint64(ref)),
			slog.Int("nodes", p.block.Len()),
		)
	}

	return ref, nil
}

// Parse lexes, groups and parses text into a new block.
// The returned block is never nil, even when err is not.
func Parse(text string, opts ...Option) (*ast.Block, error) {
	p := New(opts...)

	toks, err := lexer.GroupText(text)
	if err != nil {
		return p.Block(), err
	}

	_, err = p.ParseExpression(toks, true, true)

	return p.Block(), err
}

func (p *Parser) enter(pos int) error {
	if p.depth >= p.maxDepth {
		return errorAt(DepthExceeded, pos)
	}

	p.depth++

	return nil
}

func (p *Parser) leave() { p.depth-- }

// emplace stores e spanning from start to the last token consumed by c.
func (p *Parser) emplace(e ast.Expression, start int, c *cursor) ast.BlockRef {
	return p.block.Emplace(e, ast.Span{Start: start, End: c.last})
}

// finish skips trailing semicolons and rejects anything else left in c.
func (p *Parser) finish(c *cursor) error {
	for c.accept(token.Semicolon) {
	}

	if tok, ok := c.peek(); ok {
		return unexpected(tok.Describe(), tok.Start)
	}

	return nil
}

func streamEnd(toks []token.Token) int {
	if len(toks) == 0 {
		return 0
	}

	return toks[len(toks)-1].End
}

// cursor walks a slice of grouped tokens.
type cursor struct {
	toks []token.Token
	pos  int
	end  int // offset reported once the tokens run out
	last int // end offset of the most recently consumed token
}

func newCursor(toks []token.Token, end int) *cursor {
	c := &cursor{toks: toks, end: end}
	if len(toks) > 0 {
		c.last = toks[0].Start
	}

	return c
}

func (c *cursor) peek() (token.Token, bool) { return c.peekAt(0) }

func (c *cursor) peekAt(n int) (token.Token, bool) {
	if c.pos+n >= len(c.toks) {
		return token.Token{}, false
	}

	return c.toks[c.pos+n], true
}

func (c *cursor) next() (token.Token, bool) {
	tok, ok := c.peek()
	if ok {
		c.pos++
		c.last = tok.End
	}

	return tok, ok
}

// is reports whether the token n ahead is the symbol s.
func (c *cursor) is(n int, s token.Symbol) bool {
	tok, ok := c.peekAt(n)

	return ok && tok.Is(s)
}

// accept consumes the next token if it is the symbol s.
func (c *cursor) accept(s token.Symbol) bool {
	if c.is(0, s) {
		c.next()

		return true
	}

	return false
}

// offset returns the start of the next token, or the end of the stream.
func (c *cursor) offset() int {
	if tok, ok := c.peek(); ok {
		return tok.Start
	}

	return c.end
}
