package token

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// LiteralKind identifies the variant held by a [Literal].
type LiteralKind uint8

const (
	KindNil    LiteralKind = iota // nil
	KindBool                      // boolean
	KindInt                       // integer-number
	KindDec                       // decimal-number
	KindUid                       // unique-identifier
	KindStr                       // char-string
	KindByt                       // byte-string
	KindRefRes                    // ref-res
	KindRefCtx                    // ref-ctx
	KindRefVar                    // ref-var
	KindObjIdx                    // obj-idx
	KindObjUid                    // obj-uid
	KindObjKey                    // obj-key
)

var literalKindText = [...]string{
	KindNil:    "nil",
	KindBool:   "boolean",
	KindInt:    "integer-number",
	KindDec:    "decimal-number",
	KindUid:    "unique-identifier",
	KindStr:    "char-string",
	KindByt:    "byte-string",
	KindRefRes: "ref-res",
	KindRefCtx: "ref-ctx",
	KindRefVar: "ref-var",
	KindObjIdx: "obj-idx",
	KindObjUid: "obj-uid",
	KindObjKey: "obj-key",
}

// String returns the type string of the kind.
func (k LiteralKind) String() string {
	if int(k) < len(literalKindText) {
		return literalKindText[k]
	}

	return "unknown"
}

// Literal is a lexical value. The zero value is the nil literal.
//
// Exactly one payload field is meaningful for a given kind:
// num for Bool, Int and ObjIdx; dec for Dec; str for Str, RefVar, ObjKey and
// the type tag of Byt; uid for Uid and ObjUid; data for Byt.
type Literal struct {
	kind LiteralKind
	num  int64
	dec  float64
	str  string
	uid  uuid.UUID
	data []byte
}

// Nil returns the nil literal.
func Nil() Literal { return Literal{} }

// Bool returns a boolean literal.
func Bool(v bool) Literal {
	l := Literal{kind: KindBool}
	if v {
		l.num = 1
	}

	return l
}

// Int returns an integer literal.
func Int(v int64) Literal { return Literal{kind: KindInt, num: v} }

// Dec returns a decimal literal.
func Dec(v float64) Literal { return Literal{kind: KindDec, dec: v} }

// Uid returns a unique-identifier literal.
func Uid(v uuid.UUID) Literal { return Literal{kind: KindUid, uid: v} }

// Str returns a string literal.
func Str(v string) Literal { return Literal{kind: KindStr, str: v} }

// Byt returns a byte-string literal with an optional type tag.
// The data is copied.
func Byt(kind string, data []byte) Literal {
	return Literal{kind: KindByt, str: kind, data: bytes.Clone(data)}
}

// RefRes returns the result reference literal `$`.
func RefRes() Literal { return Literal{kind: KindRefRes} }

// RefCtx returns the context reference literal `$$`.
func RefCtx() Literal { return Literal{kind: KindRefCtx} }

// RefVar returns a local variable reference literal `$NAME`.
func RefVar(name string) Literal { return Literal{kind: KindRefVar, str: name} }

// ObjIdx returns an object index reference literal `@N`.
func ObjIdx(idx uint64) Literal { return Literal{kind: KindObjIdx, num: int64(idx)} }

// ObjUid returns an object UUID reference literal `@UUID`.
func ObjUid(v uuid.UUID) Literal { return Literal{kind: KindObjUid, uid: v} }

// ObjKey returns an object key reference literal `@NAME`.
func ObjKey(key string) Literal { return Literal{kind: KindObjKey, str: key} }

// Kind returns the variant of the literal.
func (l Literal) Kind() LiteralKind { return l.kind }

// Type returns the type string of the literal, e.g. "integer-number".
func (l Literal) Type() string { return l.kind.String() }

// AsBool returns the payload of a boolean literal.
func (l Literal) AsBool() (bool, bool) { return l.num != 0, l.kind == KindBool }

// AsInt returns the payload of an integer literal.
func (l Literal) AsInt() (int64, bool) { return l.num, l.kind == KindInt }

// AsDec returns the payload of a decimal literal.
func (l Literal) AsDec() (float64, bool) { return l.dec, l.kind == KindDec }

// AsStr returns the payload of a string literal.
func (l Literal) AsStr() (string, bool) { return l.str, l.kind == KindStr }

// AsBytes returns the type tag and data of a byte-string literal.
func (l Literal) AsBytes() (string, []byte, bool) {
	return l.str, l.data, l.kind == KindByt
}

// Name returns the name carried by a RefVar or ObjKey literal.
func (l Literal) Name() (string, bool) {
	return l.str, l.kind == KindRefVar || l.kind == KindObjKey
}

// Index returns the payload of an ObjIdx literal.
func (l Literal) Index() (uint64, bool) { return uint64(l.num), l.kind == KindObjIdx }

// UUID returns the payload of a Uid or ObjUid literal.
func (l Literal) UUID() (uuid.UUID, bool) {
	return l.uid, l.kind == KindUid || l.kind == KindObjUid
}

// Equal reports whether l and o are structurally equal.
// Decimals compare by bit pattern, so NaN equals NaN and 0.0 differs from -0.0.
func (l Literal) Equal(o Literal) bool {
	if l.kind != o.kind {
		return false
	}

	switch l.kind {
	case KindNil, KindRefRes, KindRefCtx:
		return true
	case KindBool, KindInt, KindObjIdx:
		return l.num == o.num
	case KindDec:
		return math.Float64bits(l.dec) == math.Float64bits(o.dec)
	case KindUid, KindObjUid:
		return l.uid == o.uid
	case KindStr, KindRefVar, KindObjKey:
		return l.str == o.str
	case KindByt:
		return l.str == o.str && bytes.Equal(l.data, o.data)
	default:
		return false
	}
}

// Key is a comparable identity of a literal, usable as a map key.
// Two literals have the same key if and only if they are [Literal.Equal].
type Key struct {
	kind LiteralKind
	num  uint64
	str  string
	uid  uuid.UUID
	data string
}

// Key returns the comparable identity of the literal.
func (l Literal) Key() Key {
	k := Key{kind: l.kind, str: l.str, uid: l.uid, data: string(l.data)}

	if l.kind == KindDec {
		k.num = math.Float64bits(l.dec)
	} else {
		k.num = uint64(l.num)
	}

	return k
}

// String returns the debug rendering of the literal.
// For the constant, number, string and reference subset the rendering lexes
// back to an equal literal.
func (l Literal) String() string {
	switch l.kind {
	case KindNil:
		return "null"
	case KindBool:
		return strconv.FormatBool(l.num != 0)
	case KindInt:
		return strconv.FormatInt(l.num, 10)
	case KindDec:
		return FormatDec(l.dec)
	case KindUid:
		return "U" + l.uid.String()
	case KindStr:
		return Bareword(l.str)
	case KindByt:
		var sb strings.Builder

		sb.WriteString("0x[")

		for i, b := range l.data {
			if i > 0 {
				sb.WriteByte(' ')
			}

			fmt.Fprintf(&sb, "%02X", b)
		}

		sb.WriteByte(']')

		return sb.String()
	case KindRefRes:
		return "$"
	case KindRefCtx:
		return "$$"
	case KindRefVar:
		return "$" + l.str
	case KindObjIdx:
		return "@" + strconv.FormatUint(uint64(l.num), 10)
	case KindObjUid:
		return "@" + l.uid.String()
	case KindObjKey:
		return "@" + Bareword(l.str)
	default:
		return "<invalid>"
	}
}

// FormatDec renders a float so that the lexer reads it back as a decimal.
func FormatDec(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	s := strconv.FormatFloat(v, 'g', -1, 64)

	mant, exp, hasExp := strings.Cut(s, "e")
	if !strings.Contains(mant, ".") {
		mant += ".0"
	}

	if hasExp {
		return mant + "e" + exp
	}

	return mant
}

// Constants maps the reserved barewords to the literal they denote.
var Constants = map[string]Literal{
	"null":     Nil(),
	"true":     Bool(true),
	"false":    Bool(false),
	"NaN":      Dec(math.NaN()),
	"inf":      Dec(math.Inf(1)),
	"infinity": Dec(math.Inf(1)),
	"PI":       Dec(math.Pi),
	"TAU":      Dec(2 * math.Pi),
	"EULER":    Dec(math.E),
	"SQRT2":    Dec(math.Sqrt2),
}

// IsBareword reports whether s lexes back as a single bareword string.
func IsBareword(s string) bool {
	if s == "" {
		return false
	}

	if _, ok := Constants[s]; ok {
		return false
	}

	for i, r := range s {
		switch {
		case i == 0 && !unicode.IsLetter(r):
			return false
		case !IsBarewordContinue(r):
			return false
		}
	}

	// A leading U followed by a UUID would lex as a Uid literal.
	if len(s) == 37 && s[0] == 'U' {
		if _, err := uuid.Parse(s[1:]); err == nil {
			return false
		}
	}

	return true
}

// IsBarewordStart reports whether r can start a bareword.
func IsBarewordStart(r rune) bool { return unicode.IsLetter(r) || r == '_' }

// IsBarewordContinue reports whether r can continue a bareword.
func IsBarewordContinue(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-'
}

// Bareword renders s as a bareword when possible, quoted otherwise.
func Bareword(s string) string {
	if IsBareword(s) {
		return s
	}

	if strings.ContainsRune(s, '"') && !strings.ContainsRune(s, '\'') {
		return "'" + s + "'"
	}

	return `"` + s + `"`
}
