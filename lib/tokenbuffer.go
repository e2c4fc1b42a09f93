package lib

// TokenBuffer reads a finished token sequence in order. Once the sequence
// is used up every call reports done.
type TokenBuffer struct {
	tokens []Token
	pos    int
}

var _ TokenReader = (*TokenBuffer)(nil)

func NewTokenBuffer(tokens []Token) *TokenBuffer {
	return &TokenBuffer{
		tokens: tokens,
		pos:    0,
	}
}

func (tb *TokenBuffer) Next() (tok Token, done bool) {
	tok, done = tb.Peek()
	if !done {
		tb.pos++
	}
	return tok, done
}

func (tb *TokenBuffer) Peek() (Token, bool) {
	if tb.pos >= len(tb.tokens) {
		return Token{}, true
	}
	return tb.tokens[tb.pos], false
}

// Remaining is the number of tokens Next has yet to return.
func (tb *TokenBuffer) Remaining() int {
	return len(tb.tokens) - tb.pos
}
