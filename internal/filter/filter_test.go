package filter

import (
	"reflect"
	"testing"

	"github.com/phobologic/hlgen/internal/model"
)

func makeModel() *model.Model {
	return &model.Model{
		Files: []string{"wxc.h"},
		Classes: []model.ClassDef{
			{Name: "wxWindow"},
			{Name: "wxFrame", Parent: "wxWindow"},
			{Name: "wxMiniFrame", Parent: "wxFrame"},
			{Name: "ELJApp"},
		},
		Methods: []model.Method{
			{CSymbol: "wxWindow_Show", ClassName: "wxWindow"},
			{CSymbol: "wxFrame_Create", ClassName: "wxFrame"},
			{CSymbol: "wxMiniFrame_Create", ClassName: "wxMiniFrame"},
			{CSymbol: "ELJApp_MainLoop", ClassName: "ELJApp"},
		},
		Functions: []model.Function{
			{CSymbol: "wxcGetPixelRGB"},
			{CSymbol: "ELJApp_ExitMainLoop"},
		},
		Unresolved: []model.Unresolved{
			{CSymbol: "wxFrameless_Run", ClassName: "wxFrameless"},
			{CSymbol: "wxcBeep", ClassName: ""},
		},
	}
}

func classNames(m *model.Model) []string {
	var names []string
	for _, c := range m.Classes {
		names = append(names, c.Name)
	}
	return names
}

func TestSelectNoOptions(t *testing.T) {
	t.Parallel()

	m := makeModel()
	got, err := Select(m, Options{})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if got != m {
		t.Error("empty options should return original")
	}
}

func TestSelectClasses(t *testing.T) {
	t.Parallel()

	got, err := Select(makeModel(), Options{Classes: []string{"wxFrame*"}})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}

	if names := classNames(got); !reflect.DeepEqual(names, []string{"wxFrame"}) {
		t.Errorf("classes = %v", names)
	}
	if len(got.Methods) != 1 || got.Methods[0].CSymbol != "wxFrame_Create" {
		t.Errorf("methods = %+v", got.Methods)
	}
	if len(got.Unresolved) != 1 || got.Unresolved[0].ClassName != "wxFrameless" {
		t.Errorf("unresolved = %+v", got.Unresolved)
	}
	if len(got.Functions) != 2 {
		t.Errorf("functions should be untouched, got %d", len(got.Functions))
	}
	if !reflect.DeepEqual(got.Files, []string{"wxc.h"}) {
		t.Errorf("files = %v", got.Files)
	}
}

func TestSelectSubclasses(t *testing.T) {
	t.Parallel()

	got, err := Select(makeModel(), Options{Classes: []string{"wxWindow"}, Subclasses: true})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	want := []string{"wxWindow", "wxFrame", "wxMiniFrame"}
	if names := classNames(got); !reflect.DeepEqual(names, want) {
		t.Errorf("classes = %v, want %v", names, want)
	}
	if len(got.Methods) != 3 {
		t.Errorf("expected 3 methods, got %d", len(got.Methods))
	}
}

func TestSelectFunctions(t *testing.T) {
	t.Parallel()

	got, err := Select(makeModel(), Options{Functions: []string{"ELJApp_*"}})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(got.Functions) != 1 || got.Functions[0].CSymbol != "ELJApp_ExitMainLoop" {
		t.Errorf("functions = %+v", got.Functions)
	}
	if len(got.Classes) != 4 {
		t.Errorf("classes should be untouched, got %d", len(got.Classes))
	}
}

func TestSelectInvalidPattern(t *testing.T) {
	t.Parallel()

	if _, err := Select(makeModel(), Options{Classes: []string{"wx[Frame"}}); err == nil {
		t.Error("expected error for invalid pattern")
	}
}
