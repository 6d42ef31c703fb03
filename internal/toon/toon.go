// Package toon renders a resolved model as TOON (Token-Oriented Object
// Notation) tables or as a plain text listing.
package toon

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/phobologic/hlgen/internal/graph"
	"github.com/phobologic/hlgen/internal/model"
)

var (
	needsQuoting = regexp.MustCompile(`[,:"\\{}\[\]]`)
	looksNumeric = regexp.MustCompile(`^-?(?:0|[1-9]\d*)(?:\.\d+)?$`)
	keywords     = map[string]struct{}{
		"true":  {},
		"false": {},
		"null":  {},
	}
)

// Encode converts a resolved model into TOON. header names the root file.
func Encode(m *model.Model, header string) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("header: %s", encodeValue(header)))

	fileRows := make([][]string, 0, len(m.Files))
	for _, f := range m.Files {
		fileRows = append(fileRows, []string{f})
	}
	parts = append(parts, formatTabular("files", []string{"path"}, fileRows))

	ancestors := graph.Ancestors(m.Classes)
	var classRows, methodRows [][]string
	for i := range m.Classes {
		c := &m.Classes[i]
		classRows = append(classRows, []string{
			c.Name,
			c.Parent,
			strings.Join(ancestors[c.Name], " "),
			fmt.Sprintf("%d", len(c.Methods)),
			c.File,
			fmt.Sprintf("%d", c.Line),
		})
		for j := range c.Methods {
			meth := &c.Methods[j]
			methodRows = append(methodRows, []string{
				c.Name,
				meth.Name,
				meth.ReturnType,
				meth.CSymbol,
				FormatArgs(meth.Args),
			})
		}
	}
	parts = append(parts, formatTabular("classes", []string{"name", "parent", "ancestors", "methods", "file", "line"}, classRows))
	parts = append(parts, formatTabular("methods", []string{"class", "name", "return", "symbol", "args"}, methodRows))

	var funcRows [][]string
	for i := range m.Functions {
		fn := &m.Functions[i]
		funcRows = append(funcRows, []string{fn.CSymbol, fn.ReturnType, FormatArgs(fn.Args)})
	}
	parts = append(parts, formatTabular("functions", []string{"symbol", "return", "args"}, funcRows))

	if len(m.Unresolved) > 0 {
		var rows [][]string
		for i := range m.Unresolved {
			u := &m.Unresolved[i]
			rows = append(rows, []string{u.CSymbol, u.ClassName, u.File, fmt.Sprintf("%d", u.Line)})
		}
		parts = append(parts, formatTabular("unresolved", []string{"symbol", "class", "file", "line"}, rows))
	}

	return strings.Join(parts, "\n")
}

// EncodeText lists each class with its resolved methods, then free
// functions, then the methods whose class was not found.
func EncodeText(m *model.Model) string {
	var b strings.Builder
	for i := range m.Classes {
		c := &m.Classes[i]
		if c.Parent != "" {
			fmt.Fprintf(&b, "%s : %s\n", c.Name, c.Parent)
		} else {
			fmt.Fprintf(&b, "%s\n", c.Name)
		}
		for j := range c.Methods {
			fmt.Fprintf(&b, "  %s %s\n", c.Methods[j].ReturnType, c.Methods[j].Name)
		}
	}
	for i := range m.Functions {
		fmt.Fprintf(&b, "function: %s %s\n", m.Functions[i].ReturnType, m.Functions[i].CSymbol)
	}
	for i := range m.Unresolved {
		fmt.Fprintf(&b, "unresolved: %s (class %q)\n", m.Unresolved[i].CSymbol, m.Unresolved[i].ClassName)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// FormatArgs renders an argument list as it appeared in the header. Unparsed
// arguments are prefixed with model.UnparsedMarker.
func FormatArgs(args []model.Argument) string {
	parts := make([]string, len(args))
	for i, a := range args {
		if a.Parsed() {
			parts[i] = a.Name + " " + a.Type
		} else {
			parts[i] = model.UnparsedMarker + " " + a.Type
		}
	}
	return strings.Join(parts, ", ")
}

func formatTabular(name string, columns []string, rows [][]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s[%d]{%s}:", name, len(rows), strings.Join(columns, ","))
	for _, row := range rows {
		encoded := make([]string, len(row))
		for i, cell := range row {
			encoded[i] = encodeValue(cell)
		}
		fmt.Fprintf(&b, "\n  %s", strings.Join(encoded, ","))
	}
	return b.String()
}

func encodeValue(value string) string {
	switch {
	case value == "":
		return `""`
	case value != strings.TrimSpace(value), strings.ContainsAny(value, "\n\r\t"):
		return quote(value)
	}
	if _, ok := keywords[strings.ToLower(value)]; ok {
		return quote(value)
	}
	if looksNumeric.MatchString(value) {
		return value
	}
	if needsQuoting.MatchString(value) || strings.HasPrefix(value, "-") {
		return quote(value)
	}
	return value
}

var quoter = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`, "\t", `\t`)

func quote(value string) string {
	return `"` + quoter.Replace(value) + `"`
}
