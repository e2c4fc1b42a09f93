// Package astgen writes Go source for syntax tree node types from short
// textual descriptions such as "Binary : Expr left, Token operator, Expr right".
// It is a build-time helper and knows nothing about the scanner.
package astgen

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"
)

var templateString = `// Code generated by generate_ast. DO NOT EDIT.

package {{.Package}}
{{if .Imports}}
import (
{{range .Imports}}	"{{.}}"
{{end}})
{{end}}
type {{.Base}} interface {
	{{.Marker}}()
}
{{range .Nodes}}
type {{.Name}} struct {
{{range .Fields}}	{{.Name}} {{.Type}}
{{end}}}

func (*{{.Name}}) {{$.Marker}}() {}
{{end}}`

var nodeTemplate = template.Must(template.New("ast").Parse(templateString))

var numberSequence = regexp.MustCompile(`([a-zA-Z])(\d+)([a-zA-Z]?)`)
var numberReplacement = []byte(`$1 $2 $3`)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
var typeName = regexp.MustCompile(`^[\[\]*]*[A-Za-z_][A-Za-z0-9_.]*$`)

// Spec describes one generated file.
type Spec struct {
	Package string
	Base    string
	Imports []string
	// Types holds one "Name : Type field, Type field" line per node.
	Types []string
	// TypeMap rewrites field types as written in Types into Go types.
	TypeMap map[string]string
}

type viewModel struct {
	Package string
	Base    string
	Marker  string
	Imports []string
	Nodes   []nodeViewModel
}

type nodeViewModel struct {
	Name   string
	Fields []fieldViewModel
}

type fieldViewModel struct {
	Name string
	Type string
}

// WriteFile generates spec into dir and returns the path of the new file.
func WriteFile(dir string, spec Spec) (string, error) {
	dest := filepath.Join(dir, strings.ToLower(spec.Base)+".go")

	fileWriter, err := os.Create(dest)
	if err != nil {
		return "", err
	}
	defer fileWriter.Close()

	err = Generate(fileWriter, spec)
	if err != nil {
		return "", err
	}

	return dest, fileWriter.Close()
}

// Generate renders spec as gofmt'ed Go source.
func Generate(writer io.Writer, spec Spec) error {
	vm, err := newViewModel(spec)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	err = nodeTemplate.Execute(&buf, vm)
	if err != nil {
		return err
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("formatting generated %s: %w", spec.Base, err)
	}

	_, err = writer.Write(src)
	return err
}

func newViewModel(spec Spec) (viewModel, error) {
	if spec.Package == "" {
		return viewModel{}, fmt.Errorf("missing package name")
	}
	if !identifier.MatchString(spec.Base) {
		return viewModel{}, fmt.Errorf("invalid base name %q", spec.Base)
	}

	vm := viewModel{
		Package: spec.Package,
		Base:    pascalCase(spec.Base),
		Marker:  camelCase(spec.Base) + "Node",
		Imports: spec.Imports,
		Nodes:   []nodeViewModel{},
	}

	seen := map[string]bool{}
	for _, line := range spec.Types {
		node, err := parseType(line, spec)
		if err != nil {
			return viewModel{}, err
		}
		if seen[node.Name] {
			return viewModel{}, fmt.Errorf("duplicate node %s", node.Name)
		}
		seen[node.Name] = true
		vm.Nodes = append(vm.Nodes, node)
	}

	return vm, nil
}

// parseType reads "Name : Type field, Type field".
func parseType(line string, spec Spec) (nodeViewModel, error) {
	parts := strings.SplitN(line, ":", 2)
	if len(parts) != 2 {
		return nodeViewModel{}, fmt.Errorf("%q: expected \"Name : fields\"", line)
	}

	name := strings.TrimSpace(parts[0])
	if !identifier.MatchString(name) {
		return nodeViewModel{}, fmt.Errorf("%q: invalid node name %q", line, name)
	}

	node := nodeViewModel{Name: pascalCase(name), Fields: []fieldViewModel{}}

	fieldList := strings.TrimSpace(parts[1])
	if fieldList == "" {
		return node, nil
	}

	for _, field := range strings.Split(fieldList, ",") {
		words := strings.Fields(field)
		if len(words) != 2 {
			return nodeViewModel{}, fmt.Errorf("%q: expected \"Type name\", got %q", line, strings.TrimSpace(field))
		}
		typ, fieldName := words[0], words[1]
		if !typeName.MatchString(typ) || !identifier.MatchString(fieldName) {
			return nodeViewModel{}, fmt.Errorf("%q: invalid field %q", line, strings.TrimSpace(field))
		}

		node.Fields = append(node.Fields, fieldViewModel{
			Name: pascalCase(fieldName),
			Type: goType(typ, spec),
		})
	}

	return node, nil
}

func goType(typ string, spec Spec) string {
	if mapped, ok := spec.TypeMap[typ]; ok {
		return mapped
	}
	if typ == spec.Base {
		return pascalCase(typ)
	}
	return typ
}

func addWordBoundariesToNumbers(s string) string {
	b := []byte(s)
	b = numberSequence.ReplaceAll(b, numberReplacement)
	return string(b)
}

func toCamelInitCase(s string, initCase bool) string {
	s = addWordBoundariesToNumbers(s)
	s = strings.Trim(s, " ")
	n := ""
	capNext := initCase
	for _, v := range s {
		if v >= 'A' && v <= 'Z' {
			n += string(v)
		}
		if v >= '0' && v <= '9' {
			n += string(v)
		}
		if v >= 'a' && v <= 'z' {
			if capNext {
				n += strings.ToUpper(string(v))
			} else {
				n += string(v)
			}
		}
		if v == '_' || v == ' ' || v == '-' {
			capNext = true
		} else {
			capNext = false
		}
	}
	return n
}

func pascalCase(s string) string {
	return toCamelInitCase(s, true)
}

func camelCase(s string) string {
	if s == "" {
		return s
	}
	if r := rune(s[0]); r >= 'A' && r <= 'Z' {
		s = strings.ToLower(string(r)) + s[1:]
	}
	return toCamelInitCase(s, false)
}
