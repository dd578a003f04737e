package lexer

import (
	"io"

	"github.com/ardnew/impral/lang/token"
)

// TokenSource is a pull-based stream of tokens ending with io.EOF.
// [*Lexer] is a TokenSource.
type TokenSource interface {
	Next() (token.Token, error)
}

// SliceSource is a TokenSource over a fixed slice of tokens.
type SliceSource struct {
	toks []token.Token
}

// FromSlice returns a TokenSource yielding toks in order.
func FromSlice(toks []token.Token) *SliceSource {
	return &SliceSource{toks: toks}
}

// Next implements TokenSource.
func (s *SliceSource) Next() (token.Token, error) {
	if len(s.toks) == 0 {
		return token.Token{}, io.EOF
	}

	t := s.toks[0]
	s.toks = s.toks[1:]

	return t, nil
}

type frame struct {
	open  token.Token
	close token.Symbol
	toks  []token.Token
}

// Group drains src and nests every bracketed run of tokens into a single
// group token.
//
// A group spans from its opening bracket to the end of its last inner token,
// or one byte past the opening bracket when empty. Its closing bracket is
// consumed. Closing brackets that close nothing pass through unchanged.
// Reaching the end of src with a group still open is an [Unmatched] error.
//
// A remainder token ends grouping: it is kept in the innermost open group and
// every open group is closed around it, leaving the parser to report the
// unrecognized input.
func Group(src TokenSource) ([]token.Token, error) {
	stack := []*frame{{}}

	for {
		tok, err := src.Next()
		if err == io.EOF {
			break
		}

		if err != nil {
			return stack[0].toks, err
		}

		top := stack[len(stack)-1]

		if tok.Kind == token.SymbolToken {
			if c, ok := tok.Symbol.Delimiter(); ok {
				stack = append(stack, &frame{open: tok, close: c})

				continue
			}

			if len(stack) > 1 && tok.Symbol == top.close {
				stack = stack[:len(stack)-1]

				end := top.open.End + 1
				if n := len(top.toks); n > 0 {
					end = top.toks[n-1].End
				}

				parent := stack[len(stack)-1]
				parent.toks = append(parent.toks,
					token.NewGroup(top.open.Start, end, top.open.Symbol, top.toks))

				continue
			}
		}

		top.toks = append(top.toks, tok)

		if tok.Kind == token.RemainderToken {
			return fold(stack), nil
		}
	}

	if len(stack) > 1 {
		top := stack[len(stack)-1]

		return stack[0].toks, &Error{
			Kind: Unmatched,
			Pos:  top.open.Start,
			Text: top.close.String(),
		}
	}

	return stack[0].toks, nil
}

// fold closes every open frame of stack around its tokens and returns the
// outermost token list.
func fold(stack []*frame) []token.Token {
	for len(stack) > 1 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		end := top.open.End
		if n := len(top.toks); n > 0 {
			end = top.toks[n-1].End
		}

		parent := stack[len(stack)-1]
		parent.toks = append(parent.toks,
			token.NewGroup(top.open.Start, end, top.open.Symbol, top.toks))
	}

	return stack[0].toks
}

// GroupText lexes and groups text in one step.
func GroupText(text string) ([]token.Token, error) {
	return Group(New(text))
}
