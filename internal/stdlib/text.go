package stdlib

import (
	"strings"
	"unicode/utf8"

	"github.com/funvibe/modcore/internal/module"
	"github.com/funvibe/modcore/internal/value"
)

// Builder accumulates text. Scripts mutate it through push.
type Builder struct {
	parts []string
}

func (b Builder) String() string { return strings.Join(b.parts, "") }

func buildText() *module.Module {
	m := module.New()

	h := module.SetFn1(m, "upper", func(s string) (string, error) { return strings.ToUpper(s), nil })
	m.UpdateFnMetadata(h, "s: String", "String")
	h = module.SetFn1(m, "lower", func(s string) (string, error) { return strings.ToLower(s), nil })
	m.UpdateFnMetadata(h, "s: String", "String")
	h = module.SetFn1(m, "trim", func(s string) (string, error) { return strings.TrimSpace(s), nil })
	m.UpdateFnMetadata(h, "s: String", "String")
	h = module.SetFn2(m, "contains", func(s, sub string) (bool, error) { return strings.Contains(s, sub), nil })
	m.UpdateFnMetadata(h, "s: String", "sub: String", "Bool")
	h = module.SetFn3(m, "replace", func(s, old, repl string) (string, error) {
		return strings.ReplaceAll(s, old, repl), nil
	})
	m.UpdateFnMetadata(h, "s: String", "old: String", "new: String", "String")
	h = module.SetFn2(m, "repeat", func(s string, n int64) (string, error) {
		if n < 0 {
			n = 0
		}
		return strings.Repeat(s, int(n)), nil
	})
	m.UpdateFnMetadata(h, "s: String", "n: Int", "String")

	h = module.SetFn2(m, "split", func(s, sep string) (value.Array, error) {
		parts := strings.Split(s, sep)
		out := make(value.Array, len(parts))
		for i, p := range parts {
			out[i] = value.From(value.ImmutableString(p))
		}
		return out, nil
	})
	m.UpdateFnMetadata(h, "s: String", "sep: String", "Array")
	h = module.SetFn2(m, "join", func(items value.Array, sep string) (string, error) {
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = item.String()
		}
		return strings.Join(parts, sep), nil
	})
	m.UpdateFnMetadata(h, "items: Array", "sep: String", "String")

	module.SetGetterFn(m, "len", func(s *value.ImmutableString) (int64, error) {
		return int64(utf8.RuneCountInString(string(*s))), nil
	})

	h = module.SetFn0(m, "builder", func() (Builder, error) { return Builder{}, nil })
	m.UpdateFnMetadata(h, "Builder")
	h = module.SetFn2Mut(m, "push", module.Global, func(b *Builder, s string) (value.Unit, error) {
		b.parts = append(b.parts, s)
		return value.Unit{}, nil
	})
	m.UpdateFnMetadata(h, "b: Builder", "s: String", "()")
	module.SetGetterFn(m, "len", func(b *Builder) (int64, error) {
		return int64(len(b.parts)), nil
	})
	h = module.SetFn1(m, "to_string", func(b Builder) (string, error) { return b.String(), nil })
	m.UpdateFnMetadata(h, "b: Builder", "String")

	return m
}
