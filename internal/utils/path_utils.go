package utils

import (
	"path/filepath"

	"github.com/funvibe/modcore/internal/config"
)

// ResolveImportPath resolves an import path relative to a base directory if it starts with a dot.
// Otherwise returns the import path as is.
func ResolveImportPath(baseDir, importPath string) string {
	if len(importPath) > 0 && importPath[0] == '.' {
		if baseDir != "." && baseDir != "" {
			return filepath.Join(baseDir, importPath)
		}
	}
	return importPath
}

// ExtractModuleName derives a module name from an import path.
// It takes the last path element and removes any manifest extension.
func ExtractModuleName(path string) string {
	return config.TrimManifestExt(filepath.Base(path))
}
