// Package model defines core data structures for hlgen.
package model

// ArgKind indicates whether an argument segment could be split into two parts.
type ArgKind string

const (
	ArgParsed   ArgKind = "parsed"
	ArgUnparsed ArgKind = "unparsed"
)

// UnparsedMarker is the display name encoders use for unparsed arguments.
const UnparsedMarker = "EXPAND"

// Argument is one comma-separated segment of a declaration's argument list.
//
// Name holds the segment text before its first space and Type holds the rest.
// For wxc headers that means Name is usually the C type and Type the parameter
// name; the fields keep the split order rather than C order.
type Argument struct {
	Name string
	Type string
	Kind ArgKind
}

// Parsed reports whether the segment had a whitespace boundary.
func (a Argument) Parsed() bool {
	return a.Kind == ArgParsed
}

// Method is a declaration whose symbol names its owning class by prefix.
type Method struct {
	CSymbol    string
	ReturnType string
	Name       string
	ClassName  string
	Args       []Argument
	File       string
	Line       int
}

// Function is a free declaration with no owning class.
type Function struct {
	CSymbol    string
	ReturnType string
	Args       []Argument
	File       string
	Line       int
}

// ClassDef is a class declared with TClassDef or TClassDefExtend.
// Parent is empty when the class does not extend another one.
type ClassDef struct {
	Name    string
	Parent  string
	Methods []Method
	File    string
	Line    int
}

// Unresolved records a method whose owning class was not found.
type Unresolved struct {
	CSymbol   string
	ClassName string
	File      string
	Line      int
}

// Model is the aggregate produced by one traversal.
type Model struct {
	Classes   []ClassDef
	Methods   []Method
	Functions []Function
	Files     []string
	// Missing lists includes that could not be opened, named like Files.
	Missing    []string
	Unresolved []Unresolved
}
