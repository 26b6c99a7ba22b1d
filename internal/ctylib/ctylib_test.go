package ctylib

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"

	"github.com/funvibe/modcore/internal/hashing"
	"github.com/funvibe/modcore/internal/module"
	"github.com/funvibe/modcore/internal/value"
)

func TestToDynamic(t *testing.T) {
	tests := []struct {
		name string
		in   cty.Value
		want string
	}{
		{"string", cty.StringVal("hi"), "hi"},
		{"int", cty.NumberIntVal(42), "42"},
		{"float", cty.NumberFloatVal(1.5), "1.5"},
		{"bool", cty.True, "true"},
		{"null", cty.NullVal(cty.String), "()"},
		{"list", cty.ListVal([]cty.Value{cty.StringVal("a"), cty.StringVal("b")}), "[a, b]"},
		{"tuple", cty.TupleVal([]cty.Value{cty.NumberIntVal(1), cty.StringVal("x")}), "[1, x]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToDynamic(tt.in)
			if err != nil {
				t.Fatalf("ToDynamic: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}

	if _, err := ToDynamic(cty.UnknownVal(cty.String)); err == nil {
		t.Error("unknown value converted without error")
	}
}

func TestToDynamicNumberKinds(t *testing.T) {
	d, _ := ToDynamic(cty.NumberIntVal(7))
	if _, ok := value.TryCast[int64](d); !ok {
		t.Errorf("whole number became %s, want int64", d.TypeName())
	}
	d, _ = ToDynamic(cty.NumberFloatVal(0.5))
	if _, ok := value.TryCast[float64](d); !ok {
		t.Errorf("fraction became %s, want float64", d.TypeName())
	}
}

func TestRoundTripObject(t *testing.T) {
	in := value.From(value.Map{
		"name": value.From(value.ImmutableString("mod")),
		"n":    value.From(int64(3)),
		"tags": value.From(value.Array{value.From(true)}),
	})
	v, err := FromDynamic(in)
	if err != nil {
		t.Fatalf("FromDynamic: %v", err)
	}
	if !v.Type().IsObjectType() {
		t.Fatalf("type = %s, want object", v.Type().FriendlyName())
	}
	back, err := ToDynamic(v)
	if err != nil {
		t.Fatalf("ToDynamic: %v", err)
	}
	got := value.Cast[value.Map](back)
	want := map[string]string{"name": "mod", "n": "3", "tags": "[true]"}
	gotStr := make(map[string]string, len(got))
	for k, v := range got {
		gotStr[k] = v.String()
	}
	if diff := cmp.Diff(want, gotStr); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFromDynamicGoStruct(t *testing.T) {
	type endpoint struct {
		Host string `cty:"host"`
		Port int    `cty:"port"`
	}
	v, err := FromDynamic(value.From(endpoint{Host: "localhost", Port: 80}))
	if err != nil {
		t.Fatalf("FromDynamic: %v", err)
	}
	if got := v.GetAttr("host").AsString(); got != "localhost" {
		t.Errorf("host = %q", got)
	}
}

func dynTypes(n int) []value.TypeID {
	ids := make([]value.TypeID, n)
	for i := range ids {
		ids[i] = value.TypeOf[value.Dynamic]()
	}
	return ids
}

func callCty(t *testing.T, m *module.Module, name string, args ...value.Dynamic) value.Dynamic {
	t.Helper()
	f, ok := m.GetFn(hashing.HashNativeArgs(name, dynTypes(len(args))), true)
	if !ok {
		t.Fatalf("%s/%d not registered", name, len(args))
	}
	ret, err := f.Call(module.NewCallContext(context.Background(), name), args)
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	return ret
}

func TestModuleFunctions(t *testing.T) {
	m := Module()
	str := func(s string) value.Dynamic { return value.From(value.ImmutableString(s)) }
	nums := value.From(value.Array{value.From(int64(3)), value.From(int64(9)), value.From(int64(4))})

	if got := callCty(t, m, "upper", str("abc")).String(); got != "ABC" {
		t.Errorf("upper = %s", got)
	}
	if got := callCty(t, m, "max", nums); value.Cast[int64](got) != 9 {
		t.Errorf("max = %s", got)
	}
	if got := callCty(t, m, "format", str("%s-%d"), value.From(value.Array{str("v"), value.From(int64(2))})).String(); got != "v-2" {
		t.Errorf("format = %s", got)
	}
	if got := callCty(t, m, "jsonencode", value.From(value.Map{"a": value.From(int64(1))})).String(); got != `{"a":1}` {
		t.Errorf("jsonencode = %s", got)
	}
}

func TestModuleSignatures(t *testing.T) {
	m := NewModule(map[string]function.Function{"upper": stdlib.UpperFunc})
	sigs := m.GenFnSignatures()
	if diff := cmp.Diff([]string{"upper(str: string) -> Dynamic"}, sigs); diff != "" {
		t.Errorf("signatures mismatch (-want +got):\n%s", diff)
	}
}

func TestVariadicRequiresArray(t *testing.T) {
	m := Module()
	f, _ := m.GetFn(hashing.HashNativeArgs("max", dynTypes(1)), true)
	_, err := f.Call(module.NewCallContext(context.Background(), "max"), []value.Dynamic{value.From(int64(1))})
	if err == nil {
		t.Fatal("expected error for non-array variadic argument")
	}
}

func TestFunctionsArePure(t *testing.T) {
	m := Module()
	for _, fn := range m.IterFns() {
		if !fn.Func.IsPure() {
			t.Errorf("%s registered as %s, want pure", fn.Name, fn.Func.Kind())
		}
	}
}
