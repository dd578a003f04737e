package value

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/impral/lang/token"
)

var testID = uuid.MustParse("123e4567-e89b-12d3-a456-426614174000")

func literals() []token.Literal {
	return []token.Literal{
		token.Nil(),
		token.Bool(true),
		token.Bool(false),
		token.Int(-42),
		token.Dec(1.5),
		token.Dec(math.NaN()),
		token.Dec(math.Copysign(0, -1)),
		token.Uid(testID),
		token.Str("hello world"),
		token.Byt("u8", []byte{0xAA, 0xBB}),
		token.Byt("", nil),
		token.RefRes(),
		token.RefCtx(),
		token.RefVar("x"),
		token.ObjIdx(7),
		token.ObjUid(testID),
		token.ObjKey("some key"),
	}
}

func TestFromLiteralIsLossless(t *testing.T) {
	for _, l := range literals() {
		t.Run(l.Type(), func(t *testing.T) {
			v := FromLiteral(l)

			back := v.Literal()
			assert.True(t, l.Equal(back), "%s boxed as %s came back as %s", l, v, back)
			assert.Equal(t, l.Kind(), back.Kind())
		})
	}
}

func TestKinds(t *testing.T) {
	tests := []struct {
		lit  token.Literal
		want Kind
	}{
		{token.Nil(), KindNil},
		{token.Bool(true), KindBool},
		{token.Int(1), KindInt},
		{token.Dec(1), KindDec},
		{token.Uid(testID), KindUid},
		{token.Str("s"), KindStr},
		{token.Byt("", []byte{1}), KindBytes},
		{token.RefRes(), KindRefRes},
		{token.RefCtx(), KindRefCtx},
		{token.RefVar("v"), KindRefVar},
		{token.ObjIdx(1), KindObjIdx},
		{token.ObjUid(testID), KindObjUid},
		{token.ObjKey("k"), KindObjKey},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, FromLiteral(tt.lit).Kind())
		})
	}
}

func TestUidAndObjUidStayDistinct(t *testing.T) {
	uid := FromLiteral(token.Uid(testID))
	obj := FromLiteral(token.ObjUid(testID))

	assert.False(t, Equal(uid, obj))
	assert.Equal(t, "U"+testID.String(), uid.String())
	assert.Equal(t, "@"+testID.String(), obj.String())
}

func TestBytesKeepTypeTag(t *testing.T) {
	data := []byte{1, 2}
	v := FromLiteral(token.Byt("u8", data))

	b, ok := v.(Bytes)
	require.True(t, ok)
	assert.Equal(t, "u8", b.Type)

	data[0] = 9
	assert.Equal(t, []byte{1, 2}, b.Data, "boxing copies the data")
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(Dec(math.NaN()), Dec(math.NaN())))
	assert.False(t, Equal(Dec(0), Dec(math.Copysign(0, -1))))
	assert.False(t, Equal(Int(1), Dec(1)))
	assert.True(t, Equal(Str("a"), FromLiteral(token.Str("a"))))
}

func TestNativeEncodes(t *testing.T) {
	var natives []any
	for _, l := range literals() {
		natives = append(natives, FromLiteral(l).Native())
	}

	out, err := json.Marshal(natives)
	require.NoError(t, err, "every native payload is JSON encodable")
	assert.Contains(t, string(out), `"NaN"`)
	assert.Contains(t, string(out), `{"data":"aabb","type":"u8"}`)
	assert.Contains(t, string(out), `"$x"`)
}

func TestString(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Nil{}, "null"},
		{Bool(false), "false"},
		{Int(-3), "-3"},
		{Dec(2), "2.0"},
		{Str("a b"), "a b"},
		{RefRes{}, "$"},
		{RefCtx{}, "$$"},
		{RefVar("x"), "$x"},
		{ObjIdx(3), "@3"},
		{ObjKey("k"), "@k"},
		{Bytes{Data: []byte{0xAB}}, "0x[AB]"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.v.String())
	}
}
