package lib

import (
	"fmt"
	"strconv"
)

type TokenType int

const (
	// single character
	TokenTypeLeftParen TokenType = iota
	TokenTypeRightParen
	TokenTypeLeftBrace
	TokenTypeRightBrace
	TokenTypeComma
	TokenTypeDot
	TokenTypeMinus
	TokenTypePlus
	TokenTypeSemicolon
	TokenTypeSlash
	TokenTypeStar

	// one or two characters
	TokenTypeBang
	TokenTypeBangEqual
	TokenTypeEqual
	TokenTypeEqualEqual
	TokenTypeGreater
	TokenTypeGreaterEqual
	TokenTypeLess
	TokenTypeLessEqual

	// literals
	TokenTypeIdentifier
	TokenTypeString
	TokenTypeNumber

	// keywords
	TokenTypeAnd
	TokenTypeClass
	TokenTypeElse
	TokenTypeFalse
	TokenTypeFun
	TokenTypeFor
	TokenTypeIf
	TokenTypeNil
	TokenTypeOr
	TokenTypePrint
	TokenTypeReturn
	TokenTypeSuper
	TokenTypeThis
	TokenTypeTrue
	TokenTypeVar
	TokenTypeWhile

	TokenTypeEOF
)

var tokenTypeNames = [...]string{
	TokenTypeLeftParen:    "LEFT_PAREN",
	TokenTypeRightParen:   "RIGHT_PAREN",
	TokenTypeLeftBrace:    "LEFT_BRACE",
	TokenTypeRightBrace:   "RIGHT_BRACE",
	TokenTypeComma:        "COMMA",
	TokenTypeDot:          "DOT",
	TokenTypeMinus:        "MINUS",
	TokenTypePlus:         "PLUS",
	TokenTypeSemicolon:    "SEMICOLON",
	TokenTypeSlash:        "SLASH",
	TokenTypeStar:         "STAR",
	TokenTypeBang:         "BANG",
	TokenTypeBangEqual:    "BANG_EQUAL",
	TokenTypeEqual:        "EQUAL",
	TokenTypeEqualEqual:   "EQUAL_EQUAL",
	TokenTypeGreater:      "GREATER",
	TokenTypeGreaterEqual: "GREATER_EQUAL",
	TokenTypeLess:         "LESS",
	TokenTypeLessEqual:    "LESS_EQUAL",
	TokenTypeIdentifier:   "IDENTIFIER",
	TokenTypeString:       "STRING",
	TokenTypeNumber:       "NUMBER",
	TokenTypeAnd:          "AND",
	TokenTypeClass:        "CLASS",
	TokenTypeElse:         "ELSE",
	TokenTypeFalse:        "FALSE",
	TokenTypeFun:          "FUN",
	TokenTypeFor:          "FOR",
	TokenTypeIf:           "IF",
	TokenTypeNil:          "NIL",
	TokenTypeOr:           "OR",
	TokenTypePrint:        "PRINT",
	TokenTypeReturn:       "RETURN",
	TokenTypeSuper:        "SUPER",
	TokenTypeThis:         "THIS",
	TokenTypeTrue:         "TRUE",
	TokenTypeVar:          "VAR",
	TokenTypeWhile:        "WHILE",
	TokenTypeEOF:          "EOF",
}

func (t TokenType) String() string {
	if t < 0 || int(t) >= len(tokenTypeNames) {
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
	return tokenTypeNames[t]
}

// LiteralKind says which value, if any, a Literal carries.
type LiteralKind int

const (
	LiteralKindNone LiteralKind = iota
	LiteralKindNumber
	LiteralKindString
)

// Literal is the value attached to NUMBER and STRING tokens. The zero value
// is the absent literal used by every other token.
type Literal struct {
	kind LiteralKind
	num  float64
	text string
}

var NoLiteral = Literal{}

func NumberLiteral(f float64) Literal {
	return Literal{kind: LiteralKindNumber, num: f}
}

func StringLiteral(s string) Literal {
	return Literal{kind: LiteralKindString, text: s}
}

func (l Literal) Kind() LiteralKind {
	return l.kind
}

func (l Literal) IsAbsent() bool {
	return l.kind == LiteralKindNone
}

func (l Literal) Number() (float64, bool) {
	return l.num, l.kind == LiteralKindNumber
}

func (l Literal) Text() (string, bool) {
	return l.text, l.kind == LiteralKindString
}

func (l Literal) String() string {
	switch l.kind {
	case LiteralKindNumber:
		return strconv.FormatFloat(l.num, 'g', -1, 64)
	case LiteralKindString:
		return l.text
	default:
		return "nil"
	}
}

// Token is one classified lexeme. Line is where the scanner was when the
// token was emitted, which for multi-line strings is the closing line.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal Literal
	Line    int
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %s", t.Type, t.Lexeme, t.Literal)
}

var keywords = map[string]TokenType{
	"and":    TokenTypeAnd,
	"class":  TokenTypeClass,
	"else":   TokenTypeElse,
	"false":  TokenTypeFalse,
	"for":    TokenTypeFor,
	"fun":    TokenTypeFun,
	"if":     TokenTypeIf,
	"nil":    TokenTypeNil,
	"or":     TokenTypeOr,
	"print":  TokenTypePrint,
	"return": TokenTypeReturn,
	"super":  TokenTypeSuper,
	"this":   TokenTypeThis,
	"true":   TokenTypeTrue,
	"var":    TokenTypeVar,
	"while":  TokenTypeWhile,
}

// LookupKeyword reports the keyword tag for text. Matching is exact and
// case-sensitive.
func LookupKeyword(text string) (TokenType, bool) {
	typ, ok := keywords[text]
	return typ, ok
}

func IsKeyword(t TokenType) bool {
	return t >= TokenTypeAnd && t <= TokenTypeWhile
}
