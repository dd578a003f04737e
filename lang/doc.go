// Package lang parses IMPRAL command lines into expression blocks.
//
// IMPRAL is a small command language. A line is a command, a value, or a
// pipe of commands, and every construct is sugar over a handful of node
// kinds stored in a flat arena (see package ast).
//
// # Pipeline
//
// Parsing runs in three stages:
//
//  1. The lexer turns source text into tokens with byte spans.
//  2. The grouper nests every bracketed run of tokens into a group token.
//  3. The parser builds an [ast.Block] from the grouped tokens and marks
//     its entry node.
//
// [Parse] runs all three and caches the [Result] by content hash.
//
// # Grammar
//
// Informal EBNF:
//
//	Line       → Expression ';'*
//	Expression → ('=' Infix | Item) Postfix* Pipe?
//	Item       → Literal | '_' | Group | Command
//	Command    → Name Argument* (('::' | '&&' | '||') Command)?
//	Argument   → ('-' | '+') Name | Name '=' Expression | Expression
//	Group      → '(' Expression ')' | '[' Element* ']' | '{' Entry* '}'
//	Postfix    → '.' Name | '.' '[' Expression ']' | '.' '(' Command ')'
//	           | '..' '='? Item | '?' '!'? | '->' '$'Name | '~' Item
//	           | '%' | '°' | '²' | '³'
//	Pipe       → ('|' Stage)+
//	Stage      → Command | '?' Command | '?!' Command | '!' | '!' Item Command
//
// # Example
//
//	test 1 2 3 a=4          # (test 1 2 3 a=4)
//	[1, 2, 3]               # [1 2 3]
//	ls dir | grep x |! 0 +  # ((ls dir) | grep x |! 0 +)
//	$config.[key]?          # $config.[key]?
//	= 1 + 2 * 3             # (+ 1 (* 2 3))
//	f 1 -> $x               # (set $x (f 1))
package lang
