package lib

import (
	"strconv"
)

// Scan runs a fresh Scanner over source and returns its tokens.
func Scan(source string, reporter Reporter) []Token {
	return NewScanner(source, reporter).ScanTokens()
}

// Scanner turns source text into tokens. A Scanner is single use: it walks
// the source once and later calls to ScanTokens return the same result.
type Scanner struct {
	source   []rune
	length   int
	start    int
	current  int
	line     int
	reporter Reporter
	tokens   []Token
	scanned  bool
}

func NewScanner(source string, reporter Reporter) *Scanner {
	if reporter == nil {
		reporter = discardReporter{}
	}
	src := []rune(source)
	return &Scanner{
		source:   src,
		length:   len(src),
		start:    0,
		current:  0,
		line:     1,
		reporter: reporter,
		tokens:   []Token{},
	}
}

// ScanTokens returns every token in the source followed by an EOF token.
// Problems are sent to the reporter and never stop the scan.
func (s *Scanner) ScanTokens() []Token {
	if s.scanned {
		return s.tokens
	}
	s.scanned = true

	for !s.isAtEnd() {
		s.start = s.current
		s.next()
	}

	s.tokens = append(s.tokens, Token{Type: TokenTypeEOF, Lexeme: "", Literal: NoLiteral, Line: s.line})
	return s.tokens
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= s.length
}

func (s *Scanner) peek(offset int) (rune, bool) {
	i := s.current + offset
	if i >= s.length {
		return 0, false
	}
	return s.source[i], true
}

func (s *Scanner) advance() rune {
	ch := s.source[s.current]
	s.current++
	return ch
}

// match consumes the next character only if it is expected.
func (s *Scanner) match(expected rune) bool {
	ch, ok := s.peek(0)
	if !ok || ch != expected {
		return false
	}
	s.current++
	return true
}

func (s *Scanner) emit(typ TokenType) {
	s.emitLiteral(typ, NoLiteral)
}

func (s *Scanner) emitLiteral(typ TokenType, literal Literal) {
	s.tokens = append(s.tokens, Token{
		Type:    typ,
		Lexeme:  string(s.source[s.start:s.current]),
		Literal: literal,
		Line:    s.line,
	})
}

var singleCharTokens = map[rune]TokenType{
	'(': TokenTypeLeftParen,
	')': TokenTypeRightParen,
	'{': TokenTypeLeftBrace,
	'}': TokenTypeRightBrace,
	',': TokenTypeComma,
	'.': TokenTypeDot,
	'-': TokenTypeMinus,
	'+': TokenTypePlus,
	';': TokenTypeSemicolon,
	'*': TokenTypeStar,
}

// Operators that grow into a second tag when followed by '='.
var equalsPairs = map[rune][2]TokenType{
	'!': {TokenTypeBang, TokenTypeBangEqual},
	'=': {TokenTypeEqual, TokenTypeEqualEqual},
	'>': {TokenTypeGreater, TokenTypeGreaterEqual},
	'<': {TokenTypeLess, TokenTypeLessEqual},
}

func (s *Scanner) next() {
	ch := s.advance()

	if typ, ok := singleCharTokens[ch]; ok {
		s.emit(typ)
		return
	}

	if pair, ok := equalsPairs[ch]; ok {
		if s.match('=') {
			s.emit(pair[1])
		} else {
			s.emit(pair[0])
		}
		return
	}

	switch {
	case ch == '/':
		s.slash()
	case ch == ' ' || ch == '\t' || ch == '\r':
	case ch == '\n':
		s.line++
	case ch == '"':
		s.scanString()
	case isDigit(ch):
		s.scanNumber()
	case isAlpha(ch):
		s.scanIdentifier()
	default:
		s.reporter.Report(s.line, UnexpectedCharacter)
	}
}

func (s *Scanner) slash() {
	switch {
	case s.match('/'):
		for {
			ch, ok := s.peek(0)
			if !ok || ch == '\n' {
				return
			}
			s.advance()
		}
	case s.match('*'):
		s.skipBlockComment()
	default:
		s.emit(TokenTypeSlash)
	}
}

// skipBlockComment consumes up to and including the first "*/". An
// unterminated comment runs to the end of the source.
func (s *Scanner) skipBlockComment() {
	for !s.isAtEnd() {
		ch, _ := s.peek(0)
		if ch == '*' {
			if after, ok := s.peek(1); ok && after == '/' {
				s.current += 2
				return
			}
		}
		if ch == '\n' {
			s.line++
		}
		s.advance()
	}
}

func (s *Scanner) scanString() {
	for {
		ch, ok := s.peek(0)
		if !ok {
			s.reporter.Report(s.line, UnterminatedString)
			return
		}
		if ch == '"' {
			break
		}
		if ch == '\n' {
			s.line++
		}
		s.advance()
	}

	// closing quote
	s.advance()

	value := string(s.source[s.start+1 : s.current-1])
	s.emitLiteral(TokenTypeString, StringLiteral(value))
}

func (s *Scanner) scanNumber() {
	s.eatDigits()

	if dot, ok := s.peek(0); ok && dot == '.' {
		if after, ok := s.peek(1); ok && isDigit(after) {
			s.advance()
			s.eatDigits()
		}
	}

	text := string(s.source[s.start:s.current])
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		// only digits reach here, so the one failure is overflow to +Inf
		s.reporter.Report(s.line, NumberOutOfRange)
		return
	}
	s.emitLiteral(TokenTypeNumber, NumberLiteral(value))
}

func (s *Scanner) eatDigits() {
	for {
		ch, ok := s.peek(0)
		if !ok || !isDigit(ch) {
			return
		}
		s.advance()
	}
}

func (s *Scanner) scanIdentifier() {
	for {
		ch, ok := s.peek(0)
		if !ok || !isAlphaNumeric(ch) {
			break
		}
		s.advance()
	}

	text := string(s.source[s.start:s.current])
	if typ, ok := LookupKeyword(text); ok {
		s.emit(typ)
		return
	}
	s.emit(TokenTypeIdentifier)
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isAlpha(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isAlphaNumeric(ch rune) bool {
	return isAlpha(ch) || isDigit(ch)
}
