package prettyprinter

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/modcore/internal/module"
)

// Description is the serializable summary of a module tree.
type Description struct {
	ID        string                  `yaml:"id,omitempty"`
	Vars      map[string]string       `yaml:"vars,omitempty"`
	Functions []string                `yaml:"functions,omitempty"`
	Iterators []string                `yaml:"iterators,omitempty"`
	Modules   map[string]*Description `yaml:"modules,omitempty"`
}

// Describe summarizes m and its sub-modules. Only public functions are
// listed; global ones carry a " [global]" suffix.
func Describe(m *module.Module) *Description {
	d := &Description{
		ID:        m.ID(),
		Functions: NewTreePrinter().signatures(m),
		Iterators: sortedIterators(m),
	}
	for _, v := range sortedVars(m) {
		if d.Vars == nil {
			d.Vars = make(map[string]string)
		}
		d.Vars[v.name] = v.value
	}
	for _, sub := range sortedSubModules(m) {
		if d.Modules == nil {
			d.Modules = make(map[string]*Description)
		}
		d.Modules[sub.name] = Describe(sub.module)
	}
	return d
}

// MarshalYAML renders the description of m as YAML.
func MarshalYAML(m *module.Module) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(Describe(m)); err != nil {
		return nil, fmt.Errorf("encoding module description: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding module description: %w", err)
	}
	return buf.Bytes(), nil
}
