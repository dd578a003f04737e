package lang

import (
	"encoding/json"

	"github.com/ardnew/impral/lang/ast"
	"github.com/ardnew/impral/lang/value"
)

// MarshalJSON implements json.Marshaler for Result.
func (r *Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ToMap())
}

// ToMap converts the block of the result to native Go maps and slices.
//
// The map has an "entry" key holding the entry reference, or nil, and an
// "items" key listing every node in arena order. Nodes refer to each other
// by their position in "items".
func (r *Result) ToMap() map[string]any {
	result := map[string]any{"entry": nil}

	if r == nil || r.Block == nil {
		result["items"] = []any{}

		return result
	}

	if entry, ok := r.Block.Entry(); ok {
		result["entry"] = int(entry)
	}

	items := make([]any, 0, r.Block.Len())
	for ref, e := range r.Block.All() {
		items = append(items, nodeMap(r.Block, ref, e))
	}

	result["items"] = items

	return result
}

// nodeMap converts one node to a map.
func nodeMap(b *ast.Block, ref ast.BlockRef, e ast.Expression) map[string]any {
	span := b.Span(ref)

	m := map[string]any{
		"ref":  int(ref),
		"kind": e.Kind().String(),
		"span": []int{span.Start, span.End},
	}

	switch n := e.(type) {
	case *ast.Value:
		m["type"] = n.Literal.Type()
		m["value"] = value.FromLiteral(n.Literal).Native()

	case *ast.FnCall:
		m["name"] = n.Name
		m["pos"] = refs(n.Pos)

		named := make([]any, len(n.Named))
		for i, arg := range n.Named {
			named[i] = map[string]any{"name": arg.Name, "value": int(arg.Value)}
		}

		m["named"] = named

	case *ast.Range:
		m["start"] = int(n.Start)
		m["end"] = int(n.End)
		m["inclusive"] = n.Inclusive

	case *ast.Field:
		m["target"] = int(n.Target)
		m["name"] = n.Name

	case *ast.Index:
		m["target"] = int(n.Target)
		m["key"] = int(n.Key)

	case *ast.Method:
		m["target"] = int(n.Target)
		m["call"] = int(n.Call)

	case *ast.Try:
		m["target"] = int(n.Target)
		m["aborts"] = n.Aborts

	case *ast.Pipe:
		m["source"] = int(n.Source)

		stages := make([]any, len(n.Stages))
		for i, s := range n.Stages {
			stages[i] = map[string]any{
				"kind": s.Kind().String(),
				"refs": refs(s.Refs()),
			}
		}

		m["stages"] = stages
	}

	return m
}

func refs(rs []ast.BlockRef) []int {
	out := make([]int, len(rs))
	for i, r := range rs {
		out[i] = int(r)
	}

	return out
}
