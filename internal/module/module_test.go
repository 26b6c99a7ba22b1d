package module

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/funvibe/modcore/internal/hashing"
	"github.com/funvibe/modcore/internal/value"
)

func call(t *testing.T, f CallableFunction, args ...any) value.Dynamic {
	t.Helper()
	dyn := make([]value.Dynamic, len(args))
	for i, a := range args {
		dyn[i] = value.From(a)
	}
	ret, err := f.Call(NewCallContext(context.Background(), "test"), dyn)
	if err != nil {
		t.Fatalf("call failed: %v", err)
	}
	return ret
}

func TestVariables(t *testing.T) {
	m := New()
	if m.ContainsVar("x") {
		t.Fatal("empty module contains x")
	}
	m.SetVar("x", int64(42)).SetVar("name", "hello")

	if !m.ContainsVar("x") {
		t.Fatal("x not found after SetVar")
	}
	x, ok := GetVarValue[int64](m, "x")
	if !ok || x != 42 {
		t.Errorf("x = %v (ok=%v), want 42", x, ok)
	}
	if _, ok := GetVarValue[bool](m, "x"); ok {
		t.Error("x cast to bool should fail")
	}
	name, ok := GetVarValue[string](m, "name")
	if !ok || name != "hello" {
		t.Errorf("name = %q, want hello", name)
	}
	if v, _ := m.GetVar("name"); v.TypeID() != value.TypeOf[value.ImmutableString]() {
		t.Errorf("string var stored as %s, want ImmutableString", v.TypeName())
	}
	if _, ok := m.GetVar("missing"); ok {
		t.Error("GetVar(missing) reported found")
	}
}

func TestOverloadDisambiguation(t *testing.T) {
	m := New()
	h1 := SetFn1(m, "f", func(a int64) (int64, error) { return 1, nil })
	h2 := SetFn2(m, "f", func(a, b int64) (int64, error) { return 2, nil })
	h3 := SetFn1(m, "f", func(s value.ImmutableString) (int64, error) { return 3, nil })

	if h1 == h2 || h1 == h3 || h2 == h3 {
		t.Fatalf("overloads share a hash: %x %x %x", h1, h2, h3)
	}
	for i, h := range []uint64{h1, h2, h3} {
		if !m.ContainsFn(h, true) {
			t.Errorf("overload %d not found", i+1)
		}
	}

	if !m.RemoveFn(h2) {
		t.Fatal("RemoveFn(h2) = false")
	}
	if !m.ContainsFn(h1, false) || !m.ContainsFn(h3, false) {
		t.Error("removing one overload hid the others")
	}
	if m.ContainsFn(h2, false) {
		t.Error("removed overload still present")
	}

	f, _ := m.GetFn(h3, true)
	if got := value.Cast[int64](call(t, f, value.ImmutableString("s"))); got != 3 {
		t.Errorf("f(String) = %d, want 3", got)
	}
}

func TestStringParamTypesCollide(t *testing.T) {
	m := New()
	h1 := SetFn1(m, "greet", func(s string) (string, error) { return "string:" + s, nil })
	h2 := SetFn1(m, "greet", func(s value.ImmutableString) (string, error) { return "imm:" + string(s), nil })
	if h1 != h2 {
		t.Fatalf("string and ImmutableString overloads must collide: %x != %x", h1, h2)
	}
	if _, fns, _ := m.Count(); fns != 1 {
		t.Fatalf("expected 1 function after collision, got %d", fns)
	}
	f, _ := m.GetFn(h1, true)
	if got := call(t, f, value.ImmutableString("x")).String(); got != "imm:x" {
		t.Errorf("last registration should win, got %q", got)
	}
}

func TestSetFnReplacesExisting(t *testing.T) {
	m := New()
	h1 := SetFn0(m, "v", func() (int64, error) { return 1, nil })
	h2 := SetFn0(m, "v", func() (int64, error) { return 2, nil })
	if h1 != h2 {
		t.Fatal("identical signatures must produce identical hashes")
	}
	f, _ := m.GetFn(h1, true)
	if got := value.Cast[int64](call(t, f)); got != 2 {
		t.Errorf("v() = %d, want 2", got)
	}
}

func TestPrivateFunctions(t *testing.T) {
	m := New()
	hash := m.SetScriptFn(&ScriptFnDef{Name: "secret", Access: Private})

	if m.ContainsFn(hash, true) {
		t.Error("private function visible with publicOnly")
	}
	if !m.ContainsFn(hash, false) {
		t.Error("private function missing without publicOnly")
	}
	if _, ok := m.GetFn(hash, true); ok {
		t.Error("GetFn returned private function with publicOnly")
	}
	if _, ok := m.GetScriptFn("secret", 0, true); ok {
		t.Error("GetScriptFn returned private function with publicOnly")
	}
	if def, ok := m.GetScriptFn("secret", 0, false); !ok || def.Name != "secret" {
		t.Error("GetScriptFn did not find private function")
	}
	if sigs := m.GenFnSignatures(); len(sigs) != 0 {
		t.Errorf("GenFnSignatures listed private functions: %v", sigs)
	}
}

func TestMutationInvalidatesIndex(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *Module, hash uint64)
	}{
		{"SetVar", func(m *Module, _ uint64) { m.SetVar("y", int64(1)) }},
		{"SetFn", func(m *Module, _ uint64) { SetFn0(m, "g", func() (bool, error) { return true, nil }) }},
		{"SetScriptFn", func(m *Module, _ uint64) { m.SetScriptFn(&ScriptFnDef{Name: "s"}) }},
		{"SetSubModule", func(m *Module, _ uint64) { m.SetSubModule("sub", New()) }},
		{"UpdateFnNamespace", func(m *Module, h uint64) { m.UpdateFnNamespace(h, Global) }},
		{"SetIter", func(m *Module, _ uint64) { SetIterable[[]int64](m) }},
		{"SubModulesMut", func(m *Module, _ uint64) { m.SubModulesMut() }},
		{"RemoveFn", func(m *Module, h uint64) { m.RemoveFn(h) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			m.SetVar("x", int64(1))
			hash := SetFn1(m, "f", func(a int64) (int64, error) { return a, nil })
			m.BuildIndex()
			if !m.IsIndexed() {
				t.Fatal("module not indexed after BuildIndex")
			}

			tt.mutate(m, hash)
			if m.IsIndexed() {
				t.Fatalf("%s did not invalidate the index", tt.name)
			}
			if len(m.allFunctions) != 0 || len(m.allVariables) != 0 || len(m.allIterators) != 0 {
				t.Fatalf("%s left stale flattened entries", tt.name)
			}
			m.BuildIndex()
			if !m.IsIndexed() {
				t.Fatal("BuildIndex did not restore the index")
			}
		})
	}
}

func TestUpdateFnMetadataKeepsIndex(t *testing.T) {
	m := New()
	hash := SetFn2(m, "add", func(a, b int64) (int64, error) { return a + b, nil })
	m.BuildIndex()

	m.UpdateFnMetadata(hash, "a: Int", "b: Int", "Int")
	if !m.IsIndexed() {
		t.Error("UpdateFnMetadata must not invalidate the index")
	}
	info, _ := m.GetFnInfo(hash)
	if got, want := info.GenSignature(), "add(a: Int, b: Int) -> Int"; got != want {
		t.Errorf("signature = %q, want %q", got, want)
	}
}

func TestUpdateFnNamespace(t *testing.T) {
	m := New()
	hash := SetFn0(m, "pi", func() (float64, error) { return 3.14, nil })
	m.UpdateFnNamespace(hash, Global)
	info, _ := m.GetFnInfo(hash)
	if !info.Namespace.IsGlobal() {
		t.Error("namespace not updated")
	}
	m.BuildIndex()
	if !m.ContainsQualifiedFn(hash) {
		t.Error("global function not flattened under its direct hash")
	}
}

func TestSubModules(t *testing.T) {
	m := New()
	sub := New().SetVar("x", int64(1))
	m.SetSubModule("a", sub).SetSubModule("b", sub)

	for _, name := range []string{"a", "b"} {
		got, ok := m.GetSubModule(name)
		if !ok || got != sub {
			t.Errorf("sub-module %s not shared", name)
		}
	}
	if m.ContainsSubModule("c") {
		t.Error("unexpected sub-module c")
	}

	names := map[string]bool{}
	for name := range m.IterSubModules() {
		names[name] = true
	}
	if diff := cmp.Diff(map[string]bool{"a": true, "b": true}, names); diff != "" {
		t.Errorf("IterSubModules mismatch (-want +got):\n%s", diff)
	}
}

func TestIsEmptyAndCount(t *testing.T) {
	m := New()
	if !m.IsEmpty() {
		t.Fatal("new module not empty")
	}
	m.SetVar("a", true)
	SetFn0(m, "f", func() (bool, error) { return true, nil })
	SetIterable[[]bool](m)
	if m.IsEmpty() {
		t.Fatal("populated module reported empty")
	}
	vars, fns, iters := m.Count()
	if vars != 1 || fns != 1 || iters != 1 {
		t.Errorf("Count() = (%d, %d, %d), want (1, 1, 1)", vars, fns, iters)
	}
}

func TestIterScriptFnInfo(t *testing.T) {
	m := New()
	m.SetScriptFn(&ScriptFnDef{Name: "pub", Params: []string{"x"}})
	m.SetScriptFn(&ScriptFnDef{Name: "priv", Access: Private})
	SetFn0(m, "native", func() (bool, error) { return true, nil })

	var all, public []string
	for info := range m.IterScriptFnInfo(false) {
		all = append(all, info.Name)
	}
	for info := range m.IterScriptFnInfo(true) {
		public = append(public, info.Name)
	}
	if len(all) != 2 {
		t.Errorf("IterScriptFnInfo(false) = %v, want 2 entries", all)
	}
	if diff := cmp.Diff([]string{"pub"}, public); diff != "" {
		t.Errorf("IterScriptFnInfo(true) mismatch (-want +got):\n%s", diff)
	}
}

func TestGetQualifiedVarNotFound(t *testing.T) {
	m := New().BuildIndex()
	_, err := m.GetQualifiedVar(hashing.HashVar([]string{"root"}, "nope"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Kind != EntryVariable {
		t.Fatalf("err = %#v, want *NotFoundError for a variable", err)
	}
	if got := nf.WithName("nope").Error(); got != "variable not found: nope" {
		t.Errorf("Error() = %q", got)
	}
}

func TestCallErrorsPassThrough(t *testing.T) {
	boom := errors.New("boom")
	m := New()
	hash := SetFn0(m, "fail", func() (int64, error) { return 0, boom })
	f, _ := m.GetFn(hash, true)
	_, err := f.Call(NewCallContext(context.Background(), "fail"), nil)
	if err != boom {
		t.Fatalf("err = %v, want the callable's own error", err)
	}
}

func TestScriptFnCannotBeCalledDirectly(t *testing.T) {
	f := FromScript(&ScriptFnDef{Name: "s"})
	if _, err := f.Call(NewCallContext(context.Background(), "s"), nil); !errors.Is(err, ErrScriptFn) {
		t.Fatalf("err = %v, want ErrScriptFn", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	m := New().SetID("orig").SetVar("x", int64(1))
	c := m.Clone()
	c.SetVar("y", int64(2))
	if m.ContainsVar("y") {
		t.Error("mutating the clone changed the original")
	}
	if c.ID() != "orig" || !c.ContainsVar("x") {
		t.Error("clone lost contents")
	}
}

func TestString(t *testing.T) {
	m := New().SetID("demo").SetVar("x", int64(1))
	m.SetSubModule("sub", New())
	s := m.String()
	for _, want := range []string{`id: "demo"`, "modules: sub", "vars: x=1"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}
