// Package value boxes literals into the runtime value representation used by
// consumers of a parsed block.
//
// Every [token.Literal] maps to exactly one Value, and every Value maps back
// to the literal it came from, so no type information is lost at the
// boundary between the parser and an evaluator.
package value

import (
	"bytes"
	"encoding/hex"
	"math"
	"strconv"

	"github.com/google/uuid"

	"github.com/ardnew/impral/lang/token"
)

// Kind identifies the concrete type of a [Value].
type Kind uint8

const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindDec
	KindUid
	KindStr
	KindBytes
	KindRefRes
	KindRefCtx
	KindRefVar
	KindObjIdx
	KindObjUid
	KindObjKey
)

var kindNames = [...]string{
	KindNil:    "nil",
	KindBool:   "bool",
	KindInt:    "int",
	KindDec:    "dec",
	KindUid:    "uid",
	KindStr:    "str",
	KindBytes:  "bytes",
	KindRefRes: "ref-res",
	KindRefCtx: "ref-ctx",
	KindRefVar: "ref-var",
	KindObjIdx: "obj-idx",
	KindObjUid: "obj-uid",
	KindObjKey: "obj-key",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "unknown"
}

// Value is a runtime value. The set of implementations is closed.
type Value interface {
	Kind() Kind
	// Literal returns the literal the value was boxed from.
	Literal() token.Literal
	// Native returns the payload as a plain Go value suitable for encoding.
	Native() any
	String() string

	value()
}

type (
	Nil   struct{}
	Bool  bool
	Int   int64
	Dec   float64
	Uid   uuid.UUID
	Str   string
	Bytes struct {
		Type string
		Data []byte
	}
	RefRes struct{}
	RefCtx struct{}
	RefVar string
	ObjIdx uint64
	ObjUid uuid.UUID
	ObjKey string
)

// FromLiteral boxes l.
func FromLiteral(l token.Literal) Value {
	switch l.Kind() {
	case token.KindBool:
		v, _ := l.AsBool()
		return Bool(v)
	case token.KindInt:
		v, _ := l.AsInt()
		return Int(v)
	case token.KindDec:
		v, _ := l.AsDec()
		return Dec(v)
	case token.KindUid:
		v, _ := l.UUID()
		return Uid(v)
	case token.KindStr:
		v, _ := l.AsStr()
		return Str(v)
	case token.KindByt:
		typ, data, _ := l.AsBytes()
		return Bytes{Type: typ, Data: bytes.Clone(data)}
	case token.KindRefRes:
		return RefRes{}
	case token.KindRefCtx:
		return RefCtx{}
	case token.KindRefVar:
		v, _ := l.Name()
		return RefVar(v)
	case token.KindObjIdx:
		v, _ := l.Index()
		return ObjIdx(v)
	case token.KindObjUid:
		v, _ := l.UUID()
		return ObjUid(v)
	case token.KindObjKey:
		v, _ := l.Name()
		return ObjKey(v)
	default:
		return Nil{}
	}
}

// Equal reports whether a and b box equal literals.
func Equal(a, b Value) bool {
	return a.Literal().Equal(b.Literal())
}

func (Nil) Kind() Kind    { return KindNil }
func (Bool) Kind() Kind   { return KindBool }
func (Int) Kind() Kind    { return KindInt }
func (Dec) Kind() Kind    { return KindDec }
func (Uid) Kind() Kind    { return KindUid }
func (Str) Kind() Kind    { return KindStr }
func (Bytes) Kind() Kind  { return KindBytes }
func (RefRes) Kind() Kind { return KindRefRes }
func (RefCtx) Kind() Kind { return KindRefCtx }
func (RefVar) Kind() Kind { return KindRefVar }
func (ObjIdx) Kind() Kind { return KindObjIdx }
func (ObjUid) Kind() Kind { return KindObjUid }
func (ObjKey) Kind() Kind { return KindObjKey }

func (Nil) Literal() token.Literal      { return token.Nil() }
func (v Bool) Literal() token.Literal   { return token.Bool(bool(v)) }
func (v Int) Literal() token.Literal    { return token.Int(int64(v)) }
func (v Dec) Literal() token.Literal    { return token.Dec(float64(v)) }
func (v Uid) Literal() token.Literal    { return token.Uid(uuid.UUID(v)) }
func (v Str) Literal() token.Literal    { return token.Str(string(v)) }
func (v Bytes) Literal() token.Literal  { return token.Byt(v.Type, v.Data) }
func (RefRes) Literal() token.Literal   { return token.RefRes() }
func (RefCtx) Literal() token.Literal   { return token.RefCtx() }
func (v RefVar) Literal() token.Literal { return token.RefVar(string(v)) }
func (v ObjIdx) Literal() token.Literal { return token.ObjIdx(uint64(v)) }
func (v ObjUid) Literal() token.Literal { return token.ObjUid(uuid.UUID(v)) }
func (v ObjKey) Literal() token.Literal { return token.ObjKey(string(v)) }

// Native returns nil.
func (Nil) Native() any { return nil }

// Native returns the boolean.
func (v Bool) Native() any { return bool(v) }

// Native returns the integer.
func (v Int) Native() any { return int64(v) }

// Native returns the float, or its textual form when it is not finite.
// Encoders such as encoding/json reject NaN and infinities.
func (v Dec) Native() any {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return token.FormatDec(f)
	}

	return f
}

// Native returns the canonical hyphenated UUID.
func (v Uid) Native() any { return uuid.UUID(v).String() }

// Native returns the string.
func (v Str) Native() any { return string(v) }

// Native returns the type tag and hex-encoded data.
func (v Bytes) Native() any {
	return map[string]any{"type": v.Type, "data": hex.EncodeToString(v.Data)}
}

func (v RefRes) Native() any { return v.String() }
func (v RefCtx) Native() any { return v.String() }
func (v RefVar) Native() any { return v.String() }
func (v ObjIdx) Native() any { return v.String() }
func (v ObjUid) Native() any { return v.String() }
func (v ObjKey) Native() any { return v.String() }

func (Nil) String() string      { return "null" }
func (v Bool) String() string   { return strconv.FormatBool(bool(v)) }
func (v Int) String() string    { return strconv.FormatInt(int64(v), 10) }
func (v Dec) String() string    { return token.FormatDec(float64(v)) }
func (v Uid) String() string    { return v.Literal().String() }
func (v Str) String() string    { return string(v) }
func (v Bytes) String() string  { return v.Literal().String() }
func (RefRes) String() string   { return "$" }
func (RefCtx) String() string   { return "$$" }
func (v RefVar) String() string { return v.Literal().String() }
func (v ObjIdx) String() string { return v.Literal().String() }
func (v ObjUid) String() string { return v.Literal().String() }
func (v ObjKey) String() string { return v.Literal().String() }

func (Nil) value()    {}
func (Bool) value()   {}
func (Int) value()    {}
func (Dec) value()    {}
func (Uid) value()    {}
func (Str) value()    {}
func (Bytes) value()  {}
func (RefRes) value() {}
func (RefCtx) value() {}
func (RefVar) value() {}
func (ObjIdx) value() {}
func (ObjUid) value() {}
func (ObjKey) value() {}
