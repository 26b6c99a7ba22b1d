package config

import "strings"

// NamespaceSeparator joins qualifiers in a namespace path (a::b::c).
const NamespaceSeparator = "::"

// RootQualifier seeds the qualifier stack when a module tree is indexed.
// It stands for the module being indexed and only counts towards the
// qualifier length of a hash.
const RootQualifier = "root"

// Property and indexer function names
const (
	GetterPrefix   = "get$"
	SetterPrefix   = "set$"
	IndexGetFnName = "index-get"
	IndexSetFnName = "index-set"
)

// Signature display markers
const (
	UnitTypeName    = "()"
	DynamicTypeName = "Dynamic"
	UnknownTypeName = "?"
	AnonParamName   = "_"
)

// Manifest file names searched by FindManifest, in order.
var ManifestFileNames = []string{"modcore.yaml", "modcore.yml", "modcore.hcl"}

// MakeGetter returns the registered name of a property getter.
func MakeGetter(name string) string {
	return GetterPrefix + name
}

// MakeSetter returns the registered name of a property setter.
func MakeSetter(name string) string {
	return SetterPrefix + name
}

// ManifestExtensions are the recognized manifest file extensions.
var ManifestExtensions = []string{".yaml", ".yml", ".hcl"}

// HasManifestExt reports whether path ends in a manifest extension.
func HasManifestExt(path string) bool {
	for _, ext := range ManifestExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// TrimManifestExt removes a manifest extension from name, if present.
func TrimManifestExt(name string) string {
	for _, ext := range ManifestExtensions {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext)
		}
	}
	return name
}
