package lib

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNext(t *testing.T) {
	buf := NewTokenBuffer(Scan("hello", nil))

	tok, done := buf.Next()
	require.False(t, done)
	require.Equal(t, TokenTypeIdentifier, tok.Type)
	require.Equal(t, "hello", tok.Lexeme)
}

func TestNextDone(t *testing.T) {
	buf := NewTokenBuffer(Scan("hello", nil))

	tok, done := buf.Next()
	require.False(t, done)
	require.Equal(t, "hello", tok.Lexeme)

	tok, done = buf.Next()
	require.False(t, done)
	require.Equal(t, TokenTypeEOF, tok.Type)

	_, done = buf.Next()
	require.True(t, done)
}

func TestNextDoneMulti(t *testing.T) {
	buf := NewTokenBuffer(Scan("", nil))

	tok, done := buf.Next()
	require.False(t, done)
	require.Equal(t, TokenTypeEOF, tok.Type)

	for i := 0; i < 3; i++ {
		_, done = buf.Next()
		require.True(t, done)
		require.Equal(t, 0, buf.Remaining())
	}
}

func TestNextEmptyBuffer(t *testing.T) {
	buf := NewTokenBuffer(nil)
	_, done := buf.Next()
	require.True(t, done)
	_, done = buf.Peek()
	require.True(t, done)
}

func TestPeek(t *testing.T) {
	buf := NewTokenBuffer(Scan("hello world", nil))
	require.Equal(t, 3, buf.Remaining())

	tok, done := buf.Peek()
	require.False(t, done)
	require.Equal(t, "hello", tok.Lexeme)

	tok, done = buf.Peek()
	require.False(t, done)
	require.Equal(t, "hello", tok.Lexeme)
	require.Equal(t, 3, buf.Remaining())

	tok, done = buf.Next()
	require.False(t, done)
	require.Equal(t, "hello", tok.Lexeme)

	tok, done = buf.Peek()
	require.False(t, done)
	require.Equal(t, "world", tok.Lexeme)
	require.Equal(t, 2, buf.Remaining())
}

func TestTokenReaderWalk(t *testing.T) {
	var reader TokenReader = NewTokenBuffer(Scan("print 1 + 2;", nil))

	lexemes := []string{}
	for {
		tok, done := reader.Next()
		if done {
			break
		}
		lexemes = append(lexemes, tok.Lexeme)
	}
	require.Equal(t, []string{"print", "1", "+", "2", ";", ""}, lexemes)
}
