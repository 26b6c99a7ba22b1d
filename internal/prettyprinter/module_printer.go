// Package prettyprinter renders module trees for people and tools: an
// indented text outline and a YAML description.
package prettyprinter

import (
	"bytes"
	"slices"
	"strings"

	"github.com/funvibe/modcore/internal/module"
	"github.com/funvibe/modcore/internal/value"
)

// --- Tree Printer (indented outline) ---

type TreePrinter struct {
	buf         bytes.Buffer
	indent      int
	showPrivate bool
}

func NewTreePrinter() *TreePrinter {
	return &TreePrinter{}
}

// ShowPrivate includes private functions in the output.
func (p *TreePrinter) ShowPrivate(show bool) *TreePrinter {
	p.showPrivate = show
	return p
}

func (p *TreePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
}

func (p *TreePrinter) line(parts ...string) {
	p.writeIndent()
	for _, s := range parts {
		p.buf.WriteString(s)
	}
	p.buf.WriteByte('\n')
}

func (p *TreePrinter) String() string {
	return p.buf.String()
}

// PrintModule writes m and its sub-modules. name labels the top level;
// the module id is used when name is empty.
func (p *TreePrinter) PrintModule(name string, m *module.Module) {
	if name == "" {
		name = m.ID()
	}
	if name == "" {
		p.line("module")
	} else {
		p.line("module ", name)
	}
	p.indent++
	defer func() { p.indent-- }()

	for _, v := range sortedVars(m) {
		p.line("var ", v.name, " = ", v.value)
	}
	for _, sig := range p.signatures(m) {
		p.line("fn ", sig)
	}
	for _, typ := range sortedIterators(m) {
		p.line("iter ", typ)
	}
	for _, sub := range sortedSubModules(m) {
		p.PrintModule(sub.name, sub.module)
	}
}

func (p *TreePrinter) signatures(m *module.Module) []string {
	var sigs []string
	for _, f := range m.IterFns() {
		if f.Access.IsPrivate() && !p.showPrivate {
			continue
		}
		sig := f.GenSignature()
		if f.Access.IsPrivate() {
			sig = "private " + sig
		}
		if f.Namespace.IsGlobal() {
			sig += " [global]"
		}
		sigs = append(sigs, sig)
	}
	slices.Sort(sigs)
	return sigs
}

// FormatModule renders m as an outline.
func FormatModule(m *module.Module) string {
	p := NewTreePrinter()
	p.PrintModule("", m)
	return p.String()
}

type namedVar struct{ name, value string }

func sortedVars(m *module.Module) []namedVar {
	var vars []namedVar
	for name, v := range m.IterVars() {
		vars = append(vars, namedVar{name, v.String()})
	}
	slices.SortFunc(vars, func(a, b namedVar) int { return strings.Compare(a.name, b.name) })
	return vars
}

func sortedIterators(m *module.Module) []string {
	var types []string
	for typ := range m.IterIterators() {
		types = append(types, value.TypeName(typ))
	}
	slices.Sort(types)
	return types
}

type namedModule struct {
	name   string
	module *module.Module
}

func sortedSubModules(m *module.Module) []namedModule {
	var subs []namedModule
	for name, sub := range m.IterSubModules() {
		subs = append(subs, namedModule{name, sub})
	}
	slices.SortFunc(subs, func(a, b namedModule) int { return strings.Compare(a.name, b.name) })
	return subs
}

