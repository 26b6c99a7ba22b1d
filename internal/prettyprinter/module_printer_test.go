package prettyprinter

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/funvibe/modcore/internal/module"
	"github.com/funvibe/modcore/internal/value"
)

func sample() *module.Module {
	util := module.New()
	h := module.SetFn2(util, "add", func(a, b int64) (int64, error) { return a + b, nil })
	util.UpdateFnMetadata(h, "a: Int", "b: Int", "Int")
	util.UpdateFnNamespace(h, module.Global)
	util.SetScriptFn(&module.ScriptFnDef{Name: "helper", Access: module.Private})
	module.SetIterable[[]int64](util)

	return module.New().
		SetID("app").
		SetVar("version", value.ImmutableString("1.0")).
		SetSubModule("util", util)
}

func TestFormatModule(t *testing.T) {
	want := strings.Join([]string{
		"module app",
		"    var version = 1.0",
		"    module util",
		"        fn add(a: Int, b: Int) -> Int [global]",
		"        iter []int64",
		"",
	}, "\n")
	if diff := cmp.Diff(want, FormatModule(sample())); diff != "" {
		t.Errorf("FormatModule mismatch (-want +got):\n%s", diff)
	}
}

func TestShowPrivate(t *testing.T) {
	p := NewTreePrinter().ShowPrivate(true)
	p.PrintModule("root", sample())
	if !strings.Contains(p.String(), "fn private helper()") {
		t.Errorf("private function missing:\n%s", p)
	}
}

func TestMarshalYAML(t *testing.T) {
	out, err := MarshalYAML(sample())
	if err != nil {
		t.Fatalf("MarshalYAML: %v", err)
	}
	var got Description
	if err := yaml.Unmarshal(out, &got); err != nil {
		t.Fatalf("output is not valid YAML: %v\n%s", err, out)
	}
	want := Description{
		ID:   "app",
		Vars: map[string]string{"version": "1.0"},
		Modules: map[string]*Description{
			"util": {
				Functions: []string{"add(a: Int, b: Int) -> Int [global]"},
				Iterators: []string{"[]int64"},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("description mismatch (-want +got):\n%s", diff)
	}
}
