package utils

import (
	"path/filepath"
	"testing"
)

func TestResolveImportPath(t *testing.T) {
	tests := []struct {
		base, path, want string
	}{
		{"libs", "./shapes", filepath.Join("libs", "shapes")},
		{"libs", "../shared/geo", filepath.Join("shared", "geo")},
		{".", "./shapes", "./shapes"},
		{"", "./shapes", "./shapes"},
		{"libs", "lib/math", "lib/math"},
	}
	for _, tt := range tests {
		if got := ResolveImportPath(tt.base, tt.path); got != tt.want {
			t.Errorf("ResolveImportPath(%q, %q) = %q, want %q", tt.base, tt.path, got, tt.want)
		}
	}
}

func TestExtractModuleName(t *testing.T) {
	tests := map[string]string{
		"lib/math":          "math",
		"./shapes":          "shapes",
		"libs/geometry.hcl": "geometry",
		"net.yaml":          "net",
		"plain":             "plain",
	}
	for in, want := range tests {
		if got := ExtractModuleName(in); got != want {
			t.Errorf("ExtractModuleName(%q) = %q, want %q", in, got, want)
		}
	}
}
