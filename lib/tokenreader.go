package lib

// TokenReader is how a parser walks a token sequence, one token at a time.
type TokenReader interface {
	Next() (tok Token, done bool)
	Peek() (tok Token, done bool)
}
