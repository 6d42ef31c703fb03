// Package decl extracts records from header lines that the classifier has
// already identified as includes, class declarations, or declarations.
package decl

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/phobologic/hlgen/internal/model"
)

// ParseError reports a declaration line that lacks an expected delimiter.
type ParseError struct {
	Text    string
	Missing string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed declaration %q: missing %s", e.Text, e.Missing)
}

// Declaration is a declaration line split into its three pieces.
type Declaration struct {
	ReturnType string
	Symbol     string
	RawArgs    string
}

// SplitDeclaration splits "<ret> <symbol>(<args>);" into its parts.
func SplitDeclaration(line string) (Declaration, error) {
	text := strings.TrimSpace(strings.ReplaceAll(line, " (", "("))

	sp := strings.IndexByte(text, ' ')
	if sp < 0 {
		return Declaration{}, &ParseError{Text: line, Missing: "space after return type"}
	}
	ret, rest := text[:sp], text[sp+1:]

	p := strings.IndexByte(rest, '(')
	if p < 0 {
		return Declaration{}, &ParseError{Text: line, Missing: `"("`}
	}
	sym := strings.TrimSpace(rest[:p])
	if sym == "" {
		return Declaration{}, &ParseError{Text: line, Missing: "symbol name"}
	}

	return Declaration{
		ReturnType: ret,
		Symbol:     sym,
		RawArgs:    strings.TrimRight(rest[p+1:], ");"),
	}, nil
}

// ParseArgs splits a raw argument list on commas. An empty list yields no
// arguments. Segments without whitespace come back as ArgUnparsed.
func ParseArgs(raw string) []model.Argument {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var args []model.Argument
	for _, seg := range strings.Split(raw, ",") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		i := strings.IndexFunc(seg, unicode.IsSpace)
		if i < 0 {
			args = append(args, model.Argument{Type: seg, Kind: model.ArgUnparsed})
			continue
		}
		_, size := utf8.DecodeRuneInString(seg[i:])
		args = append(args, model.Argument{
			Name: seg[:i],
			Type: strings.TrimSpace(seg[i+size:]),
			Kind: model.ArgParsed,
		})
	}
	return args
}

// SplitSymbol splits a C symbol at its first underscore into class and
// method name. A symbol without an underscore has no class.
func SplitSymbol(sym string) (class, name string) {
	i := strings.IndexByte(sym, '_')
	if i < 0 {
		return "", sym
	}
	return sym[:i], sym[i+1:]
}

// ParseMethod parses a method declaration line.
func ParseMethod(line string) (model.Method, error) {
	d, err := SplitDeclaration(line)
	if err != nil {
		return model.Method{}, err
	}
	class, name := SplitSymbol(d.Symbol)
	return model.Method{
		CSymbol:    d.Symbol,
		ReturnType: d.ReturnType,
		Name:       name,
		ClassName:  class,
		Args:       ParseArgs(d.RawArgs),
	}, nil
}

// ParseFunction parses a free function declaration line.
func ParseFunction(line string) (model.Function, error) {
	d, err := SplitDeclaration(line)
	if err != nil {
		return model.Function{}, err
	}
	return model.Function{
		CSymbol:    d.Symbol,
		ReturnType: d.ReturnType,
		Args:       ParseArgs(d.RawArgs),
	}, nil
}

// ParseClass reads "TClassDef(Name)".
func ParseClass(line string) (model.ClassDef, bool) {
	b := strings.IndexByte(line, '(')
	e := strings.IndexByte(line, ')')
	if b < 0 || e <= b {
		return model.ClassDef{}, false
	}
	return model.ClassDef{Name: strings.TrimSpace(line[b+1 : e])}, true
}

// ParseExtendedClass reads "TClassDefExtend(Name,Parent)".
func ParseExtendedClass(line string) (model.ClassDef, bool) {
	b := strings.IndexByte(line, '(')
	m := strings.IndexByte(line, ',')
	if b < 0 || m <= b {
		return model.ClassDef{}, false
	}
	e := strings.IndexByte(line[m+1:], ')')
	if e < 0 {
		return model.ClassDef{}, false
	}
	return model.ClassDef{
		Name:   strings.TrimSpace(line[b+1 : m]),
		Parent: strings.TrimSpace(line[m+1 : m+1+e]),
	}, true
}

// IncludeName returns the text between the first two double quotes.
func IncludeName(line string) (string, bool) {
	start := strings.IndexByte(line, '"')
	if start < 0 {
		return "", false
	}
	end := strings.IndexByte(line[start+1:], '"')
	if end < 0 {
		return "", false
	}
	return line[start+1 : start+1+end], true
}
