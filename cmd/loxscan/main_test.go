package main

import (
	"bytes"
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestScanner() (*scanner, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return &scanner{out: &out, errOut: &errOut}, &out, &errOut
}

func TestScanSource(t *testing.T) {
	s, out, errOut := newTestScanner()

	hadError, err := s.scanSource(context.Background(), "a.lox", `print "hi";`)
	require.NoError(t, err)
	require.False(t, hadError)
	require.Equal(t, "PRINT print nil\nSTRING \"hi\" hi\nSEMICOLON ; nil\nEOF  nil\n", out.String())
	require.Empty(t, errOut.String())
}

func TestScanSourceReportsDiagnostics(t *testing.T) {
	s, out, errOut := newTestScanner()

	hadError, err := s.scanSource(context.Background(), "b.lox", "x\n@")
	require.NoError(t, err)
	require.True(t, hadError)
	require.Equal(t, "IDENTIFIER x nil\nEOF  nil\n", out.String())
	require.Equal(t, "b.lox: [line 2] Error: Unexpected character.\n", errOut.String())
}

func TestScanSourceDump(t *testing.T) {
	s, out, _ := newTestScanner()
	s.dump = true

	_, err := s.scanSource(context.Background(), "c.lox", "12")
	require.NoError(t, err)
	require.Contains(t, out.String(), "Lexeme: (string) (len=2) \"12\"")
	require.Contains(t, out.String(), "Line: (int) 1")
}

func TestRunPrompt(t *testing.T) {
	s, out, errOut := newTestScanner()

	code := s.runPrompt(context.Background(), strings.NewReader("1+2\n@\n"))
	require.Equal(t, exitOK, code)
	require.Equal(t,
		"> NUMBER 1 1\nPLUS + nil\nNUMBER 2 2\nEOF  nil\n> EOF  nil\n> \n",
		out.String())
	require.Equal(t, "<stdin:2>: [line 1] Error: Unexpected character.\n", errOut.String())
}

func TestRunFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.lox")
	bad := filepath.Join(dir, "bad.lox")
	require.NoError(t, os.WriteFile(good, []byte("var a = 1;"), 0644))
	require.NoError(t, os.WriteFile(bad, []byte(`"open`), 0644))

	logger := log.New(&bytes.Buffer{}, "", 0)

	s, _, _ := newTestScanner()
	require.Equal(t, exitOK, s.runFiles(context.Background(), []string{good}, logger))

	s, _, errOut := newTestScanner()
	require.Equal(t, exitDataErr, s.runFiles(context.Background(), []string{good, bad}, logger))
	require.Equal(t, bad+": [line 1] Error: Unterminated string.\n", errOut.String())

	s, _, _ = newTestScanner()
	require.Equal(t, exitIOErr, s.runFiles(context.Background(), []string{filepath.Join(dir, "missing.lox")}, logger))
}
