// Package manifest describes a module tree in a modcore.yaml or modcore.hcl
// file and assembles it from library packages.
//
// A manifest lists module specs. Each spec names a target path in the tree,
// the packages to pull in and how to attach them:
//
//	name: app
//	modules:
//	  - path: util
//	    mode: combine
//	    packages: [lib/math, lib/text]
//	    global: [add]
//	    vars:
//	      version: "1.0"
//
// Packages starting with "." are resolved relative to the manifest's
// directory, so manifests loaded through FileResolver can import each other.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"

	"github.com/funvibe/modcore/internal/config"
	"github.com/funvibe/modcore/internal/ctylib"
	"github.com/funvibe/modcore/internal/module"
	"github.com/funvibe/modcore/internal/value"
)

// Mode selects how a package is attached to its target module.
type Mode string

const (
	// ModeSubModule attaches each package as a sub-module named after the
	// last element of its path.
	ModeSubModule Mode = "submodule"
	// ModeCombine copies package entries onto the target, overwriting.
	ModeCombine Mode = "combine"
	// ModeFlatten copies the whole package tree onto the target.
	ModeFlatten Mode = "flatten"
	// ModeFill copies only entries the target lacks.
	ModeFill Mode = "fill"
	// ModeMerge merges recursively, keeping nested sub-modules.
	ModeMerge Mode = "merge"
)

var modes = []Mode{ModeSubModule, ModeCombine, ModeFlatten, ModeFill, ModeMerge}

// Manifest is the top-level manifest.
type Manifest struct {
	// Name becomes the id of the assembled root module.
	Name    string       `yaml:"name,omitempty"`
	Modules []ModuleSpec `yaml:"modules"`

	// Dir is the directory the manifest was loaded from. Relative package
	// paths resolve against it.
	Dir string `yaml:"-"`
}

// ModuleSpec populates one module of the tree.
type ModuleSpec struct {
	// Path is the namespace of the target module, e.g. "net::http". Empty
	// means the root.
	Path string `yaml:"path,omitempty"`

	// Mode defaults to submodule.
	Mode Mode `yaml:"mode,omitempty"`

	// Packages are import paths handed to the resolver, e.g. "lib/math".
	Packages []string `yaml:"packages,omitempty"`

	// Global lists function names promoted to the global namespace once the
	// packages are attached. Only functions directly on the target are
	// affected.
	Global []string `yaml:"global,omitempty"`

	// Vars are set on the target after the packages.
	Vars map[string]any `yaml:"vars,omitempty"`
}

// LoadManifest reads a manifest, choosing the syntax from the extension.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	parse := ParseYAML
	if filepath.Ext(path) == ".hcl" {
		parse = ParseHCL
	}
	man, err := parse(data, path)
	if err != nil {
		return nil, err
	}
	man.Dir = filepath.Dir(path)
	return man, nil
}

// ParseYAML parses modcore.yaml content. The path argument is used only for
// error messages.
func ParseYAML(data []byte, path string) (*Manifest, error) {
	var man Manifest
	if err := yaml.Unmarshal(data, &man); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return finish(&man, path)
}

type hclFile struct {
	Name    string       `hcl:"name,optional"`
	Modules []*hclModule `hcl:"module,block"`
}

type hclModule struct {
	Path     string    `hcl:"path,label"`
	Mode     string    `hcl:"mode,optional"`
	Packages []string  `hcl:"packages,optional"`
	Global   []string  `hcl:"global,optional"`
	Vars     cty.Value `hcl:"vars,optional"`
}

// ParseHCL parses modcore.hcl content:
//
//	name = "app"
//	module "util" {
//	  mode     = "combine"
//	  packages = ["lib/math"]
//	  vars     = { version = "1.0" }
//	}
func ParseHCL(data []byte, path string) (*Manifest, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing %s: %w", path, diags)
	}
	var parsed hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("decoding %s: %w", path, diags)
	}

	man := &Manifest{Name: parsed.Name}
	for i, hm := range parsed.Modules {
		spec := ModuleSpec{
			Path:     hm.Path,
			Mode:     Mode(hm.Mode),
			Packages: hm.Packages,
			Global:   hm.Global,
		}
		if !hm.Vars.IsNull() {
			vars, err := ctylib.ToDynamic(hm.Vars)
			if err != nil {
				return nil, fmt.Errorf("%s: module[%d] (%s): vars: %w", path, i, hm.Path, err)
			}
			obj, ok := value.TryCast[value.Map](vars)
			if !ok {
				return nil, fmt.Errorf("%s: module[%d] (%s): vars must be an object", path, i, hm.Path)
			}
			spec.Vars = make(map[string]any, len(obj))
			for k, v := range obj {
				spec.Vars[k] = v
			}
		}
		man.Modules = append(man.Modules, spec)
	}
	return finish(man, path)
}

func finish(man *Manifest, path string) (*Manifest, error) {
	if err := man.validate(path); err != nil {
		return nil, err
	}
	man.setDefaults()
	return man, nil
}

// FindManifest searches for a manifest starting from dir and walking up to
// parent directories. It returns an empty path and nil error when none is
// found.
func FindManifest(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}
	for {
		for _, name := range config.ManifestFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// validate checks the manifest for semantic errors.
func (m *Manifest) validate(path string) error {
	if len(m.Modules) == 0 {
		return fmt.Errorf("%s: no modules defined", path)
	}
	for i, spec := range m.Modules {
		if spec.Path != "" {
			if _, err := module.ParseNamespaceRef(spec.Path); err != nil {
				return fmt.Errorf("%s: modules[%d]: %w", path, i, err)
			}
		}
		if spec.Mode != "" && !slices.Contains(modes, spec.Mode) {
			return fmt.Errorf("%s: modules[%d] (%s): unknown mode %q", path, i, spec.Path, spec.Mode)
		}
		if len(spec.Packages) == 0 && len(spec.Vars) == 0 {
			return fmt.Errorf("%s: modules[%d] (%s): either packages or vars is required", path, i, spec.Path)
		}
		for j, pkg := range spec.Packages {
			if strings.TrimSpace(pkg) == "" {
				return fmt.Errorf("%s: modules[%d].packages[%d]: empty package path", path, i, j)
			}
		}
	}
	return nil
}

// setDefaults fills in default values for omitted fields.
func (m *Manifest) setDefaults() {
	for i := range m.Modules {
		if m.Modules[i].Mode == "" {
			m.Modules[i].Mode = ModeSubModule
		}
	}
}
