package resolve

import (
	"reflect"
	"testing"

	"github.com/phobologic/hlgen/internal/model"
)

func sampleModel() *model.Model {
	return &model.Model{
		Classes: []model.ClassDef{
			{Name: "wxWindow"},
			{Name: "wxFrame", Parent: "wxWindow"},
		},
		Methods: []model.Method{
			{CSymbol: "wxFrame_Create", ClassName: "wxFrame", Name: "Create"},
			{CSymbol: "wxWindow_Show", ClassName: "wxWindow", Name: "Show"},
			{CSymbol: "wxFrame_SetTitle", ClassName: "wxFrame", Name: "SetTitle"},
			{CSymbol: "wxMissing_Run", ClassName: "wxMissing", Name: "Run"},
		},
	}
}

func methodSymbols(ms []model.Method) []string {
	var out []string
	for _, m := range ms {
		out = append(out, m.CSymbol)
	}
	return out
}

func TestResolve(t *testing.T) {
	t.Parallel()

	m := sampleModel()
	unresolved := Resolve(m)

	if got := methodSymbols(m.Classes[1].Methods); !reflect.DeepEqual(got, []string{"wxFrame_Create", "wxFrame_SetTitle"}) {
		t.Errorf("wxFrame methods = %v", got)
	}
	if got := methodSymbols(m.Classes[0].Methods); !reflect.DeepEqual(got, []string{"wxWindow_Show"}) {
		t.Errorf("wxWindow methods = %v", got)
	}

	if len(unresolved) != 1 {
		t.Fatalf("expected 1 unresolved, got %d", len(unresolved))
	}
	if unresolved[0].CSymbol != "wxMissing_Run" || unresolved[0].ClassName != "wxMissing" {
		t.Errorf("unresolved = %+v", unresolved[0])
	}
	if !reflect.DeepEqual(m.Unresolved, unresolved) {
		t.Error("model should carry the unresolved list")
	}
}

func TestResolveIdempotent(t *testing.T) {
	t.Parallel()

	m := sampleModel()
	Resolve(m)
	first := make([][]string, len(m.Classes))
	for i, c := range m.Classes {
		first[i] = methodSymbols(c.Methods)
	}

	unresolved := Resolve(m)
	for i, c := range m.Classes {
		if got := methodSymbols(c.Methods); !reflect.DeepEqual(got, first[i]) {
			t.Errorf("class %s: second pass = %v, first = %v", c.Name, got, first[i])
		}
	}
	if len(unresolved) != 1 {
		t.Errorf("expected 1 unresolved after second pass, got %d", len(unresolved))
	}
}

func TestResolveDuplicateClassLastWins(t *testing.T) {
	t.Parallel()

	m := &model.Model{
		Classes: []model.ClassDef{{Name: "wxDup"}, {Name: "wxDup", Parent: "wxObject"}},
		Methods: []model.Method{{CSymbol: "wxDup_Do", ClassName: "wxDup", Name: "Do"}},
	}
	Resolve(m)

	if len(m.Classes[0].Methods) != 0 {
		t.Errorf("earlier duplicate got methods: %v", methodSymbols(m.Classes[0].Methods))
	}
	if len(m.Classes[1].Methods) != 1 {
		t.Errorf("later duplicate should own the method")
	}
}

func TestResolveSymbolWithoutUnderscore(t *testing.T) {
	t.Parallel()

	m := &model.Model{
		Classes: []model.ClassDef{{Name: ""}, {Name: "wxApp"}},
		Methods: []model.Method{{CSymbol: "noseparator", ClassName: "", Name: "noseparator"}},
	}
	unresolved := Resolve(m)

	if len(unresolved) != 1 || unresolved[0].CSymbol != "noseparator" {
		t.Errorf("unresolved = %+v", unresolved)
	}
	for _, c := range m.Classes {
		if len(c.Methods) != 0 {
			t.Errorf("class %q should have no methods", c.Name)
		}
	}
}

func TestResolveEmptyModel(t *testing.T) {
	t.Parallel()

	m := &model.Model{}
	if got := Resolve(m); got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}
