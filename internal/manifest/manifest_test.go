package manifest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/funvibe/modcore/internal/hashing"
	"github.com/funvibe/modcore/internal/module"
	"github.com/funvibe/modcore/internal/resolvers"
	"github.com/funvibe/modcore/internal/stdlib"
	"github.com/funvibe/modcore/internal/value"
)

func TestParseYAML(t *testing.T) {
	man, err := LoadManifest(filepath.Join("testdata", "modcore.yaml"))
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if man.Name != "app" || len(man.Modules) != 3 {
		t.Fatalf("unexpected manifest: %+v", man)
	}
	if man.Modules[1].Mode != ModeSubModule {
		t.Errorf("default mode = %q, want submodule", man.Modules[1].Mode)
	}
	if diff := cmp.Diff([]string{"lib/math", "lib/text"}, man.Modules[0].Packages); diff != "" {
		t.Errorf("packages mismatch (-want +got):\n%s", diff)
	}
}

func TestParseHCL(t *testing.T) {
	man, err := LoadManifest(filepath.Join("testdata", "modcore.hcl"))
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if man.Name != "app" || len(man.Modules) != 3 {
		t.Fatalf("unexpected manifest: %+v", man)
	}
	util := man.Modules[0]
	if util.Path != "util" || util.Mode != ModeCombine || len(util.Global) != 1 {
		t.Errorf("util spec = %+v", util)
	}
	if len(man.Modules[2].Vars) != 5 {
		t.Errorf("vars = %v", man.Modules[2].Vars)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"no modules", "name: x\n", "no modules defined"},
		{"unknown mode", "modules:\n  - mode: splice\n    packages: [lib/math]\n", `unknown mode "splice"`},
		{"empty spec", "modules:\n  - path: a\n", "either packages or vars is required"},
		{"bad path", "modules:\n  - path: 'a::'\n    packages: [lib/math]\n", "empty qualifier"},
		{"empty package", "modules:\n  - packages: ['']\n", "empty package path"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.yaml), "test.yaml")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestParseHCLErrors(t *testing.T) {
	if _, err := ParseHCL([]byte(`module "a" {`), "broken.hcl"); err == nil {
		t.Error("syntax error not reported")
	}
	if _, err := ParseHCL([]byte("module \"a\" {\n  vars = [1]\n}\n"), "vars.hcl"); err == nil {
		t.Error("non-object vars accepted")
	}
}

func TestAssemble(t *testing.T) {
	for _, file := range []string{"modcore.yaml", "modcore.hcl"} {
		t.Run(file, func(t *testing.T) {
			man, err := LoadManifest(filepath.Join("testdata", file))
			if err != nil {
				t.Fatalf("LoadManifest: %v", err)
			}
			libs := stdlib.Resolver(nil)
			root, err := Assemble(context.Background(), man, libs, nil)
			if err != nil {
				t.Fatalf("Assemble: %v", err)
			}
			checkTree(t, root, libs)
		})
	}
}

func checkTree(t *testing.T, root *module.Module, libs resolvers.Resolver) {
	t.Helper()
	if root.ID() != "app" || !root.IsIndexed() {
		t.Fatalf("root id=%q indexed=%v", root.ID(), root.IsIndexed())
	}
	if !root.ContainsSubModule("array") {
		t.Error("lib/array not attached as sub-module")
	}

	ints := []value.TypeID{value.TypeOf[int64](), value.TypeOf[int64]()}
	if !root.ContainsQualifiedFn(hashing.HashNativeArgs("add", ints)) {
		t.Error("promoted add not reachable without qualification")
	}
	if !root.ContainsQualifiedFn(hashing.HashQualifiedNative([]string{"root", "util"}, "add", ints)) {
		t.Error("util::add not reachable")
	}
	str := []value.TypeID{value.TypeOf[value.ImmutableString]()}
	if root.ContainsQualifiedFn(hashing.HashNativeArgs("upper", str)) {
		t.Error("upper promoted without being listed")
	}

	settings, _ := root.GetSubModule("settings")
	if n, ok := module.GetVarValue[int64](settings, "retries"); !ok || n != 3 {
		t.Errorf("retries = %v (%v)", n, ok)
	}
	if v, ok := module.GetVarValue[string](settings, "version"); !ok || v != "1.0" {
		t.Errorf("version = %q", v)
	}
	if hosts, _ := settings.GetVar("hosts"); hosts.String() != "[a, b]" {
		t.Errorf("hosts = %s", hosts)
	}
	if !root.ContainsQualifiedVar(hashing.HashVar([]string{"root", "settings"}, "debug")) {
		t.Error("settings::debug not indexed")
	}

	lib, err := libs.Resolve(context.Background(), "lib/math")
	if err != nil {
		t.Fatal(err)
	}
	info, _ := lib.GetFnInfo(hashing.HashNativeArgs("add", ints))
	if info.Namespace.IsGlobal() {
		t.Error("promotion leaked into the shared library module")
	}
}

func TestAssembleUnknownPackage(t *testing.T) {
	man := &Manifest{Modules: []ModuleSpec{{Packages: []string{"lib/nope"}, Mode: ModeCombine}}}
	_, err := Assemble(context.Background(), man, stdlib.Resolver(nil), nil)
	if !errors.Is(err, resolvers.ErrModuleNotFound) {
		t.Fatalf("err = %v, want ErrModuleNotFound", err)
	}
}

func TestAssembleModes(t *testing.T) {
	libs := resolvers.NewStaticResolver(nil)
	nested := module.New().SetVar("deep", true)
	libs.Insert("pkg", module.New().SetVar("x", int64(2)).SetSubModule("inner", nested))

	tests := []struct {
		mode     Mode
		hasInner bool
		hasDeep  bool
		x        int64
	}{
		{ModeCombine, true, false, 2},
		{ModeFlatten, false, true, 2},
		{ModeFill, true, false, 1},
		{ModeMerge, true, false, 2},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			man := &Manifest{Modules: []ModuleSpec{
				{Vars: map[string]any{"x": 1}},
				{Packages: []string{"pkg"}, Mode: tt.mode},
			}}
			root, err := Assemble(context.Background(), man, libs, nil)
			if err != nil {
				t.Fatalf("Assemble: %v", err)
			}
			if root.ContainsSubModule("inner") != tt.hasInner {
				t.Errorf("inner present = %v", !tt.hasInner)
			}
			if root.ContainsVar("deep") != tt.hasDeep {
				t.Errorf("deep present = %v", !tt.hasDeep)
			}
			if x, _ := module.GetVarValue[int64](root, "x"); x != tt.x {
				t.Errorf("x = %d, want %d", x, tt.x)
			}
		})
	}
}

func TestFindManifest(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if got, err := FindManifest(sub); err != nil || got != "" {
		t.Fatalf("FindManifest on empty tree = %q, %v", got, err)
	}

	want := filepath.Join(dir, "modcore.hcl")
	if err := os.WriteFile(want, []byte("module \"x\" {\n  vars = { a = 1 }\n}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := FindManifest(sub)
	if err != nil {
		t.Fatalf("FindManifest: %v", err)
	}
	if got != want {
		t.Errorf("FindManifest = %q, want %q", got, want)
	}
}

func TestFileResolver(t *testing.T) {
	r := resolvers.Cached(&FileResolver{Base: "testdata", Libs: stdlib.Resolver(nil)}, nil)
	m, err := r.Resolve(context.Background(), "modcore")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !m.ContainsSubModule("util") {
		t.Error("assembled tree missing util")
	}
	again, _ := r.Resolve(context.Background(), "modcore")
	if again != m {
		t.Error("cached resolver assembled the manifest twice")
	}

	if _, err := r.Resolve(context.Background(), "missing"); !errors.Is(err, resolvers.ErrModuleNotFound) {
		t.Errorf("err = %v, want ErrModuleNotFound", err)
	}
}

func fileLibs() *resolvers.CollectionResolver {
	libs := resolvers.NewCollectionResolver(stdlib.Resolver(nil))
	return libs.Push(resolvers.Cached(&FileResolver{Libs: libs}, nil))
}

func TestAssembleRelativeImport(t *testing.T) {
	man, err := LoadManifest(filepath.Join("testdata", "relative.yaml"))
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	root, err := Assemble(context.Background(), man, fileLibs(), nil)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if !root.ContainsQualifiedVar(hashing.HashVar([]string{"root", "ext", "geo"}, "origin")) {
		t.Error("ext::geo::origin not indexed")
	}
	if !root.ContainsQualifiedVar(hashing.HashVar([]string{"root", "ext", "geo", "calc"}, "pi")) {
		t.Error("nested library import not attached")
	}
}

func TestAssembleImportCycle(t *testing.T) {
	man, err := LoadManifest(filepath.Join("testdata", "libs", "loop_a.yaml"))
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	_, err = Assemble(context.Background(), man, fileLibs(), nil)
	if !errors.Is(err, ErrImportCycle) {
		t.Fatalf("err = %v, want ErrImportCycle", err)
	}
}
