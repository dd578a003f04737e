package ast

//go:generate go tool stringer --linecomment --type NodeKind,StageKind --output node_string.go

import "github.com/ardnew/impral/lang/token"

// NodeKind names the variant of an [Expression].
type NodeKind uint8

const (
	KindEmpty  NodeKind = iota // empty
	KindValue                  // value
	KindCall                   // call
	KindRange                  // range
	KindField                  // field
	KindIndex                  // index
	KindMethod                 // method
	KindTry                    // try
	KindPipe                   // pipe
)

// Expression is a node stored in a [Block]. Nodes refer to each other only
// through [BlockRef] indices into the same block.
//
// The set of implementations is closed: [*Empty], [*Value], [*FnCall],
// [*Range], [*Field], [*Index], [*Method], [*Try] and [*Pipe].
type Expression interface {
	Kind() NodeKind
	// Refs returns the references held by the node, in evaluation order.
	Refs() []BlockRef
	expression()
}

// Empty is the placeholder written as `_`.
type Empty struct{}

// Value is a literal value.
type Value struct {
	Literal token.Literal
}

// NamedArg is a named argument of a command.
type NamedArg struct {
	Name  string
	Value BlockRef
}

// FnCall is a command invocation.
type FnCall struct {
	Name  string
	Pos   []BlockRef
	Named []NamedArg
}

// Range is `Start..End`, or `Start..=End` when Inclusive.
type Range struct {
	Start     BlockRef
	End       BlockRef
	Inclusive bool
}

// Field is the member access `Target.Name`.
type Field struct {
	Target BlockRef
	Name   string
}

// Index is the keyed access `Target.[Key]`.
type Index struct {
	Target BlockRef
	Key    BlockRef
}

// Method is the method call `Target.(Call)`.
type Method struct {
	Target BlockRef
	Call   BlockRef
}

// Try unwraps Target, written `Target?`. Aborts marks `Target?!`, which
// aborts instead of propagating a failure.
type Try struct {
	Target BlockRef
	Aborts bool
}

// Pipe feeds the items produced by Source through each stage in order.
type Pipe struct {
	Source BlockRef
	Stages []PipeSeg
}

func (*Empty) Kind() NodeKind  { return KindEmpty }
func (*Value) Kind() NodeKind  { return KindValue }
func (*FnCall) Kind() NodeKind { return KindCall }
func (*Range) Kind() NodeKind  { return KindRange }
func (*Field) Kind() NodeKind  { return KindField }
func (*Index) Kind() NodeKind  { return KindIndex }
func (*Method) Kind() NodeKind { return KindMethod }
func (*Try) Kind() NodeKind    { return KindTry }
func (*Pipe) Kind() NodeKind   { return KindPipe }

func (*Empty) Refs() []BlockRef    { return nil }
func (*Value) Refs() []BlockRef    { return nil }
func (n *Range) Refs() []BlockRef  { return []BlockRef{n.Start, n.End} }
func (n *Field) Refs() []BlockRef  { return []BlockRef{n.Target} }
func (n *Index) Refs() []BlockRef  { return []BlockRef{n.Target, n.Key} }
func (n *Method) Refs() []BlockRef { return []BlockRef{n.Target, n.Call} }
func (n *Try) Refs() []BlockRef    { return []BlockRef{n.Target} }

func (n *FnCall) Refs() []BlockRef {
	refs := make([]BlockRef, 0, len(n.Pos)+len(n.Named))
	refs = append(refs, n.Pos...)

	for _, arg := range n.Named {
		refs = append(refs, arg.Value)
	}

	return refs
}

func (n *Pipe) Refs() []BlockRef {
	refs := []BlockRef{n.Source}
	for _, s := range n.Stages {
		refs = append(refs, s.Refs()...)
	}

	return refs
}

func (*Empty) expression()  {}
func (*Value) expression()  {}
func (*FnCall) expression() {}
func (*Range) expression()  {}
func (*Field) expression()  {}
func (*Index) expression()  {}
func (*Method) expression() {}
func (*Try) expression()    {}
func (*Pipe) expression()   {}

// Call returns a command node with positional arguments.
func Call(name string, pos ...BlockRef) *FnCall {
	return &FnCall{Name: name, Pos: pos}
}

// Arg returns the value of the named argument, if present.
func (n *FnCall) Arg(name string) (BlockRef, bool) {
	for _, a := range n.Named {
		if a.Name == name {
			return a.Value, true
		}
	}

	return 0, false
}

// SetArg sets a named argument. An existing argument of the same name keeps
// its position and takes the new value.
func (n *FnCall) SetArg(name string, value BlockRef) {
	for i, a := range n.Named {
		if a.Name == name {
			n.Named[i].Value = value

			return
		}
	}

	n.Named = append(n.Named, NamedArg{Name: name, Value: value})
}

// StageKind names the variant of a [PipeSeg].
type StageKind uint8

const (
	StageCollect StageKind = iota // collect
	StageMapping                  // mapping
	StageFolding                  // folding
	StageExclude                  // exclude
	StageFinding                  // finding
)

// PipeSeg is one stage of a [Pipe]. The set of implementations is closed:
// [Collect], [Mapping], [Folding], [Exclude] and [Finding].
type PipeSeg interface {
	Kind() StageKind
	Refs() []BlockRef
	stage()
}

// Collect gathers every item of the pipe. It is written `|!` at the end of a
// pipe or before another stage.
type Collect struct{}

// Mapping replaces each item with the result of Mapper.
type Mapping struct{ Mapper BlockRef }

// Folding reduces the items, starting from Initial, with Reducer.
type Folding struct{ Initial, Reducer BlockRef }

// Exclude drops the items for which Predicate holds.
type Exclude struct{ Predicate BlockRef }

// Finding stops at the first item for which Predicate holds.
type Finding struct{ Predicate BlockRef }

func (Collect) Kind() StageKind { return StageCollect }
func (Mapping) Kind() StageKind { return StageMapping }
func (Folding) Kind() StageKind { return StageFolding }
func (Exclude) Kind() StageKind { return StageExclude }
func (Finding) Kind() StageKind { return StageFinding }

func (Collect) Refs() []BlockRef   { return nil }
func (s Mapping) Refs() []BlockRef { return []BlockRef{s.Mapper} }
func (s Folding) Refs() []BlockRef { return []BlockRef{s.Initial, s.Reducer} }
func (s Exclude) Refs() []BlockRef { return []BlockRef{s.Predicate} }
func (s Finding) Refs() []BlockRef { return []BlockRef{s.Predicate} }

func (Collect) stage() {}
func (Mapping) stage() {}
func (Folding) stage() {}
func (Exclude) stage() {}
func (Finding) stage() {}
