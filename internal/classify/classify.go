// Package classify assigns a category to each line of a wxc-style header.
package classify

import "strings"

// Category is the semantic kind of a header line.
type Category string

const (
	Unknown           Category = "unknown"
	Include           Category = "include"
	Comment           Category = "comment"
	ClassDecl         Category = "class"
	ClassDeclExtended Category = "class-extended"
	MethodDecl        Category = "method"
	FunctionDecl      Category = "function"
)

// Markers holds the tokens the rules look for.
type Markers struct {
	Include      string   `yaml:"include"`
	Preprocessor string   `yaml:"preprocessor"`
	Comments     []string `yaml:"comments"`
	Class        string   `yaml:"class"`
	ClassExtend  string   `yaml:"class_extend"`
	Self         string   `yaml:"self"`
	Constructor  string   `yaml:"constructor"`
	Create       string   `yaml:"create"`
	Terminator   string   `yaml:"terminator"`
}

// DefaultMarkers returns the markers used by the wxc headers.
func DefaultMarkers() Markers {
	return Markers{
		Include:      "#include",
		Preprocessor: "#",
		Comments:     []string{"//", "/*"},
		Class:        "TClassDef(",
		ClassExtend:  "TClassDefExtend(",
		Self:         "TSelf(",
		Constructor:  "TClass(",
		Create:       "_Create(",
		Terminator:   ");",
	}
}

// Rule maps a line predicate to a category.
type Rule struct {
	Category Category
	Match    func(line string) bool
}

// Rules builds the ordered rule table for m. The first matching rule wins,
// so the method rule must stay ahead of the function rule.
func Rules(m Markers) []Rule {
	return []Rule{
		{Include, hasPrefix(m.Include)},
		{Comment, hasAnyPrefix(append([]string{m.Preprocessor}, m.Comments...))},
		{ClassDecl, hasPrefix(m.Class)},
		{ClassDeclExtended, hasPrefix(m.ClassExtend)},
		{MethodDecl, containsAny([]string{m.Self, m.Constructor, m.Create})},
		{FunctionDecl, hasSuffix(m.Terminator)},
	}
}

// Classifier evaluates a rule table top to bottom.
type Classifier struct {
	rules []Rule
}

// New returns a Classifier for the given markers.
func New(m Markers) *Classifier {
	return &Classifier{rules: Rules(m)}
}

// Classify returns the category of the first rule matching line, or Unknown.
func (c *Classifier) Classify(line string) Category {
	for _, r := range c.rules {
		if r.Match(line) {
			return r.Category
		}
	}
	return Unknown
}

func hasPrefix(p string) func(string) bool {
	return func(line string) bool {
		return p != "" && strings.HasPrefix(line, p)
	}
}

func hasAnyPrefix(ps []string) func(string) bool {
	return func(line string) bool {
		for _, p := range ps {
			if p != "" && strings.HasPrefix(line, p) {
				return true
			}
		}
		return false
	}
}

func containsAny(subs []string) func(string) bool {
	return func(line string) bool {
		for _, s := range subs {
			if s != "" && strings.Contains(line, s) {
				return true
			}
		}
		return false
	}
}

// hasSuffix ignores trailing whitespace so "f(x); " still counts.
func hasSuffix(s string) func(string) bool {
	return func(line string) bool {
		return s != "" && strings.HasSuffix(strings.TrimRight(line, " \t"), s)
	}
}
