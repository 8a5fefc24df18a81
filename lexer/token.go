// Package lexer tokenizes Onyx source text. It mirrors the teacher's
// byte-oriented, line/column-tracking tokenizer, generalized from
// protobuf's token set to Onyx's.
package lexer

import "github.com/onyxlang/onyxc/ast"

// TokenKind classifies a lexed token.
type TokenKind int

const (
	TokEOF TokenKind = iota
	TokIdent
	TokKeyword
	TokString
	TokNumber
	TokSymbol // punctuation / operators, e.g. :: := { } ( ) , ;
	TokDirective // #foo
	TokComment
)

func (k TokenKind) String() string {
	switch k {
	case TokEOF:
		return "EOF"
	case TokIdent:
		return "identifier"
	case TokKeyword:
		return "keyword"
	case TokString:
		return "string"
	case TokNumber:
		return "number"
	case TokSymbol:
		return "symbol"
	case TokDirective:
		return "directive"
	case TokComment:
		return "comment"
	}
	return "unknown"
}

// Token is a single lexed unit of source.
type Token struct {
	Kind Kind
	Text string
	Pos  ast.Position
}

// Kind is an alias kept for readability at call sites (lexer.Kind mirrors
// TokenKind).
type Kind = TokenKind

var keywords = map[string]bool{
	"struct": true, "enum": true, "use": true, "if": true, "else": true,
	"return": true, "foreign": true, "memory": true, "global": true,
	"package": true, "error": true, "note": true, "tls": true,
}

// IsKeyword reports whether text is a reserved word in Onyx.
func IsKeyword(text string) bool { return keywords[text] }
