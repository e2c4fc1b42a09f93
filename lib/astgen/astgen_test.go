package astgen

import (
	"bytes"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

var exprSpec = Spec{
	Package: "ast",
	Base:    "Expr",
	Imports: []string{"github.com/graeme-hill/golox/lib"},
	Types: []string{
		"Binary    : Expr left, Token operator, Expr right",
		"Grouping  : Expr expression",
		"Literal   : Object value",
		"Unary     : Token operator, Expr right",
	},
	TypeMap: map[string]string{
		"Token":  "lib.Token",
		"Object": "lib.Literal",
	},
}

const exprSource = `// Code generated by generate_ast. DO NOT EDIT.

package ast

import (
	"github.com/graeme-hill/golox/lib"
)

type Expr interface {
	exprNode()
}

type Binary struct {
	Left     Expr
	Operator lib.Token
	Right    Expr
}

func (*Binary) exprNode() {}

type Grouping struct {
	Expression Expr
}

func (*Grouping) exprNode() {}

type Literal struct {
	Value lib.Literal
}

func (*Literal) exprNode() {}

type Unary struct {
	Operator lib.Token
	Right    Expr
}

func (*Unary) exprNode() {}
`

func TestGenerateExpr(t *testing.T) {
	var buf bytes.Buffer
	err := Generate(&buf, exprSpec)
	require.NoError(t, err)
	require.Equal(t, exprSource, buf.String())
}

func TestGenerateParses(t *testing.T) {
	var buf bytes.Buffer
	err := Generate(&buf, Spec{
		Package: "stmt",
		Base:    "Stmt",
		Types: []string{
			"Block      : []Stmt statements",
			"Expression : *Node expr",
			"Empty      :",
		},
	})
	require.NoError(t, err)

	_, err = parser.ParseFile(token.NewFileSet(), "stmt.go", buf.Bytes(), 0)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "Statements []Stmt")
	require.Contains(t, buf.String(), "Expr *Node")
	require.Contains(t, buf.String(), "type Empty struct {\n}")
	require.NotContains(t, buf.String(), "import")
}

func TestGenerateErrors(t *testing.T) {
	cases := map[string]Spec{
		"no package":     {Base: "Expr"},
		"bad base":       {Package: "ast", Base: "1Expr"},
		"missing colon":  {Package: "ast", Base: "Expr", Types: []string{"Binary Expr left"}},
		"bad node name":  {Package: "ast", Base: "Expr", Types: []string{"Bin ary : Expr left"}},
		"field one word": {Package: "ast", Base: "Expr", Types: []string{"Binary : Expr"}},
		"field too long": {Package: "ast", Base: "Expr", Types: []string{"Binary : Expr left right"}},
		"bad field name": {Package: "ast", Base: "Expr", Types: []string{"Binary : Expr 2left"}},
		"duplicate":      {Package: "ast", Base: "Expr", Types: []string{"A : Expr x", "A : Expr y"}},
	}

	for name, spec := range cases {
		var buf bytes.Buffer
		err := Generate(&buf, spec)
		require.Error(t, err, name)
		require.Zero(t, buf.Len(), name)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	dest, err := WriteFile(dir, exprSpec)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "expr.go"), dest)

	b, err := os.ReadFile(dest)
	require.NoError(t, err)
	require.Equal(t, exprSource, string(b))
}

func TestWriteFileMissingDir(t *testing.T) {
	_, err := WriteFile(filepath.Join(t.TempDir(), "missing"), exprSpec)
	require.Error(t, err)
}

func TestCaseHelpers(t *testing.T) {
	require.Equal(t, "FirstName", pascalCase("first_name"))
	require.Equal(t, "Value2", pascalCase("value2"))
	require.Equal(t, "Operator", pascalCase("operator"))
	require.Equal(t, "exprNode", camelCase("Expr")+"Node")
	require.Equal(t, "", camelCase(""))
}
