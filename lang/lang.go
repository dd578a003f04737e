package lang

import (
	"context"
	"io"
	"log/slog"

	"github.com/klauspost/readahead"

	"github.com/ardnew/impral/lang/ast"
	"github.com/ardnew/impral/lang/lexer"
	"github.com/ardnew/impral/lang/parser"
	"github.com/ardnew/impral/lang/token"
)

// Result is the outcome of parsing one source text.
//
// Results may be shared through the parse cache and must be treated as
// read-only.
type Result struct {
	// Block holds the parsed nodes. After a failed parse it holds the nodes
	// built before the failure and has no entry.
	Block *ast.Block
	// Source is the parsed text.
	Source string
	// Tokens is the grouped token stream, or nil when lexing failed.
	Tokens []token.Token
}

// Root returns the entry node of the block.
func (r *Result) Root() (ast.BlockRef, bool) {
	if r == nil || r.Block == nil {
		return 0, false
	}

	return r.Block.Entry()
}

// String returns the debug form of the entry node.
func (r *Result) String() string {
	root, ok := r.Root()
	if !ok {
		return ""
	}

	return r.Block.Debug(root)
}

// Parse lexes, groups and parses text.
//
// Unless disabled with [WithCache] or the IMPRAL_NO_CACHE environment
// variable, results are cached by a hash of the text and the options that
// affect parsing, and repeated calls return the same *Result.
//
// On failure the returned Result is still non-nil, and the error wraps one
// of [ErrLex], [ErrGroup], [ErrParse] or [ErrMaxDepthExceeded] around a
// [*SourceError].
func Parse(ctx context.Context, text string, opts ...Option) (*Result, error) {
	o := makeOptions(opts...)

	o.logger.TraceContext(
		ctx,
		"parse start",
		slog.Int("source_length", len(text)),
		slog.Bool("cache", o.cache),
	)

	if o.cache {
		return parseCached(ctx, text, o)
	}

	return parse(ctx, text, o)
}

// ParseBytes parses data as source text.
func ParseBytes(ctx context.Context, data []byte, opts ...Option) (*Result, error) {
	return Parse(ctx, string(data), opts...)
}

// ParseReader reads all of r and parses it as source text.
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*Result, error) {
	// Wrap reader with async read-ahead for concurrent I/O.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	return ParseBytes(ctx, data, opts...)
}

// parse is the uncached parsing implementation.
func parse(ctx context.Context, text string, o options) (*Result, error) {
	res := &Result{Source: text}

	toks, err := lexer.GroupText(text)
	if err != nil {
		res.Block = ast.NewBlock()

		o.logger.TraceContext(ctx, "lex failed", slog.Any("error", err))

		return res, wrapFailure(err, text)
	}

	res.Tokens = toks

	o.logger.TraceContext(
		ctx,
		"tokens grouped",
		slog.Int("tokens", len(toks)),
		slog.Int("depth", token.Depth(toks...)),
	)

	p := parser.New(
		parser.WithMaxDepth(o.maxDepth),
		parser.WithLogger(o.logger),
	)

	_, err = p.ParseExpression(toks, true, true)
	res.Block = p.Block()

	if err != nil {
		o.logger.TraceContext(ctx, "parse failed", slog.Any("error", err))

		return res, wrapFailure(err, text)
	}

	values, exprs := res.Block.Counts()

	o.logger.TraceContext(
		ctx,
		"parse complete",
		slog.Int("values", values),
		slog.Int("exprs", exprs),
	)

	return res, nil
}
