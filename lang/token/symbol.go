package token

import "iter"

// Symbol is a punctuation or operator mark recognized by the lexer.
type Symbol uint8

// Known symbols. The zero value is not a valid symbol.
const (
	SymbolInvalid Symbol = iota

	ParenLeft       // (
	ParenRight      // )
	BraketLeft      // [
	BraketRight     // ]
	CurlyLeft       // {
	CurlyRight      // }
	AngleLeft       // <
	AngleRight      // >
	Plus            // +
	Dash            // -
	Star            // *
	Hash            // #
	Slash           // /
	Tilde           // ~
	Comma           // ,
	Dot             // .
	Colon           // :
	Semicolon       // ;
	Underscore      // _
	EqualSign       // =
	QuestionMark    // ?
	ExclamationMark // !
	DollarSign      // $
	Percentage      // %
	Ampersand       // &
	Pipe            // |
	Caret           // ^
	At              // @
	Degrees         // °
	Squared         // ²
	Cubed           // ³

	Range        // ..
	Equal        // ==
	NotEqual     // !=
	EqLess       // <=
	EqGreater    // >=
	Diamond      // <>
	Incr         // ++
	Decr         // --
	DoubleDollar // $$
	And          // &&
	Or           // ||
	Power        // **
	DoubleColon  // ::
	ArrowRight   // ->
	ArrowTilde   // ~>
	ArrowPlus    // +>
	ArrowDouble  // =>
	ArrowHash    // #>

	symbolCount
)

// Precedence is the binding strength of an operator symbol.
// Higher values bind tighter.
type Precedence uint8

const (
	PrecedenceNone Precedence = iota
	PrecedenceSum
	PrecedenceProduct
	PrecedenceExponent
	PrecedencePostfix
)

type symbolInfo struct {
	text  string
	name  string
	attr  symbolAttr
	prec  Precedence
	close Symbol
	post  string
}

type symbolAttr uint8

const (
	attrStart symbolAttr = 1 << iota
	attrEnd
	attrOperator
	attrInfix
	attrArrow
)

var symbolTable = [symbolCount]symbolInfo{
	SymbolInvalid: {text: "", name: "Invalid"},

	ParenLeft:   {text: "(", name: "ParenLeft", attr: attrStart, close: ParenRight},
	ParenRight:  {text: ")", name: "ParenRight", attr: attrEnd},
	BraketLeft:  {text: "[", name: "BraketLeft", attr: attrStart, close: BraketRight},
	BraketRight: {text: "]", name: "BraketRight", attr: attrEnd},
	CurlyLeft:   {text: "{", name: "CurlyLeft", attr: attrStart, close: CurlyRight},
	CurlyRight:  {text: "}", name: "CurlyRight", attr: attrEnd},

	AngleLeft:       {text: "<", name: "AngleLeft", attr: attrOperator},
	AngleRight:      {text: ">", name: "AngleRight", attr: attrOperator},
	Plus:            {text: "+", name: "Plus", attr: attrOperator | attrInfix, prec: PrecedenceSum},
	Dash:            {text: "-", name: "Dash", attr: attrOperator | attrInfix, prec: PrecedenceSum},
	Star:            {text: "*", name: "Star", attr: attrOperator | attrInfix, prec: PrecedenceProduct},
	Hash:            {text: "#", name: "Hash", attr: attrOperator | attrInfix, prec: PrecedenceProduct},
	Slash:           {text: "/", name: "Slash", attr: attrOperator | attrInfix, prec: PrecedenceProduct},
	Tilde:           {text: "~", name: "Tilde", attr: attrOperator},
	Comma:           {text: ",", name: "Comma"},
	Dot:             {text: ".", name: "Dot"},
	Colon:           {text: ":", name: "Colon"},
	Semicolon:       {text: ";", name: "Semicolon"},
	Underscore:      {text: "_", name: "Underscore"},
	EqualSign:       {text: "=", name: "EqualSign", attr: attrOperator},
	QuestionMark:    {text: "?", name: "QuestionMark"},
	ExclamationMark: {text: "!", name: "ExclamationMark", attr: attrOperator},
	DollarSign:      {text: "$", name: "DollarSign"},
	Percentage:      {text: "%", name: "Percentage", attr: attrOperator, prec: PrecedencePostfix, post: "into_percent"},
	Ampersand:       {text: "&", name: "Ampersand", attr: attrOperator},
	Pipe:            {text: "|", name: "Pipe"},
	Caret:           {text: "^", name: "Caret", attr: attrOperator | attrInfix, prec: PrecedenceExponent},
	At:              {text: "@", name: "At"},
	Degrees:         {text: "°", name: "Degrees", attr: attrOperator, prec: PrecedencePostfix, post: "into_radians"},
	Squared:         {text: "²", name: "Squared", attr: attrOperator, prec: PrecedencePostfix, post: "into_squared"},
	Cubed:           {text: "³", name: "Cubed", attr: attrOperator, prec: PrecedencePostfix, post: "into_cubed"},

	Range:        {text: "..", name: "Range"},
	Equal:        {text: "==", name: "Equal", attr: attrOperator},
	NotEqual:     {text: "!=", name: "NotEqual", attr: attrOperator},
	EqLess:       {text: "<=", name: "EqLess", attr: attrOperator},
	EqGreater:    {text: ">=", name: "EqGreater", attr: attrOperator},
	Diamond:      {text: "<>", name: "Diamond", attr: attrOperator},
	Incr:         {text: "++", name: "Incr", attr: attrOperator},
	Decr:         {text: "--", name: "Decr", attr: attrOperator},
	DoubleDollar: {text: "$$", name: "DoubleDollar"},
	And:          {text: "&&", name: "And"},
	Or:           {text: "||", name: "Or"},
	Power:        {text: "**", name: "Power", attr: attrOperator | attrInfix, prec: PrecedenceExponent},
	DoubleColon:  {text: "::", name: "DoubleColon"},
	ArrowRight:   {text: "->", name: "ArrowRight", attr: attrArrow},
	ArrowTilde:   {text: "~>", name: "ArrowTilde", attr: attrArrow},
	ArrowPlus:    {text: "+>", name: "ArrowPlus", attr: attrArrow},
	ArrowDouble:  {text: "=>", name: "ArrowDouble", attr: attrArrow},
	ArrowHash:    {text: "#>", name: "ArrowHash", attr: attrArrow},
}

var (
	singles = map[rune]Symbol{}
	pairs   = map[[2]rune]Symbol{}
)

func init() {
	for s := ParenLeft; s < symbolCount; s++ {
		r := []rune(symbolTable[s].text)
		switch len(r) {
		case 1:
			singles[r[0]] = s
		case 2:
			pairs[[2]rune{r[0], r[1]}] = s
		}
	}
}

// ParseSymbol returns the single-character symbol for r.
func ParseSymbol(r rune) (Symbol, bool) {
	s, ok := singles[r]

	return s, ok
}

// ParsePair returns the two-character symbol formed by a followed by b.
func ParsePair(a, b rune) (Symbol, bool) {
	s, ok := pairs[[2]rune{a, b}]

	return s, ok
}

// Symbols returns an iterator over all valid symbols in declaration order.
func Symbols() iter.Seq[Symbol] {
	return func(yield func(Symbol) bool) {
		for s := ParenLeft; s < symbolCount; s++ {
			if !yield(s) {
				return
			}
		}
	}
}

func (s Symbol) info() symbolInfo {
	if s >= symbolCount {
		return symbolTable[SymbolInvalid]
	}

	return symbolTable[s]
}

// String returns the canonical textual rendering of the symbol.
func (s Symbol) String() string { return s.info().text }

// Name returns the identifier of the symbol, e.g. "ParenLeft".
func (s Symbol) Name() string { return s.info().name }

// IsValid reports whether s is a known symbol.
func (s Symbol) IsValid() bool { return s > SymbolInvalid && s < symbolCount }

// IsDelimiter reports whether s opens or closes a bracket pair.
func (s Symbol) IsDelimiter() bool { return s.info().attr&(attrStart|attrEnd) != 0 }

// IsStartDelimiter reports whether s opens a bracket pair.
func (s Symbol) IsStartDelimiter() bool { return s.info().attr&attrStart != 0 }

// IsEndDelimiter reports whether s closes a bracket pair.
func (s Symbol) IsEndDelimiter() bool { return s.info().attr&attrEnd != 0 }

// IsOperator reports whether s may be used as a command name.
func (s Symbol) IsOperator() bool { return s.info().attr&attrOperator != 0 }

// IsInfixOperator reports whether s takes part in precedence climbing.
func (s Symbol) IsInfixOperator() bool { return s.info().attr&attrInfix != 0 }

// IsArrow reports whether s belongs to the arrow family.
func (s Symbol) IsArrow() bool { return s.info().attr&attrArrow != 0 }

// IsPostop reports whether s is a suffix unary operator.
func (s Symbol) IsPostop() bool { return s.info().post != "" }

// PostopName returns the name of the command a postfix operator expands to.
func (s Symbol) PostopName() (string, bool) {
	name := s.info().post

	return name, name != ""
}

// Precedence returns the binding strength of s, or [PrecedenceNone].
func (s Symbol) Precedence() Precedence { return s.info().prec }

// Delimiter returns the closing symbol required by the opening symbol s.
func (s Symbol) Delimiter() (Symbol, bool) {
	c := s.info().close

	return c, c != SymbolInvalid
}
