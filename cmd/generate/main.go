package main

import (
	"fmt"
	"os"

	"github.com/graeme-hill/golox/lib/astgen"
)

var expr = astgen.Spec{
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

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: generate <output directory>")
		os.Exit(64)
	}

	dest, err := astgen.WriteFile(os.Args[1], expr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate: %v\n", err)
		os.Exit(74)
	}
	fmt.Println(dest)
}
