package main

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/funvibe/modcore/internal/config"
	"github.com/funvibe/modcore/internal/hashing"
	"github.com/funvibe/modcore/internal/module"
	"github.com/funvibe/modcore/internal/value"
)

// typeNames maps the display names used on the command line to TypeIDs.
var typeNames = map[string]value.TypeID{
	"Int":     value.TypeOf[int64](),
	"Float":   value.TypeOf[float64](),
	"String":  value.TypeOf[value.ImmutableString](),
	"Bool":    value.TypeOf[bool](),
	"Array":   value.TypeOf[value.Array](),
	"Map":     value.TypeOf[value.Map](),
	"Dynamic": value.TypeOf[value.Dynamic](),
}

func newLookupCommand(opts *rootOptions) *cobra.Command {
	var (
		types []string
		arity int
	)
	cmd := &cobra.Command{
		Use:   "lookup <path>",
		Short: "Resolve a qualified variable or function through the index",
		Long: `Resolve a qualified name the way an engine would, through the flattened
index of the root module.

Without flags the path names a variable. --types looks up a native function
by its parameter types; --arity looks up a script function.`,
		Example: `  modcore lookup settings::version
  modcore lookup util::add --types Int,Int
  modcore lookup add --types Int,Int
  modcore lookup shapes::area --arity 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := opts.load(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			ref, err := module.ParseNamespaceRef(args[0])
			if err != nil {
				return err
			}
			names := ref.Names()
			name := names[len(names)-1]
			qualifiers := append([]string{config.RootQualifier}, names[:len(names)-1]...)

			out := cmd.OutOrStdout()
			switch {
			case cmd.Flags().Changed("types"):
				argTypes, err := parseTypes(types)
				if err != nil {
					return err
				}
				hash := hashing.HashQualifiedNative(qualifiers, name, argTypes)
				if len(qualifiers) == 1 {
					// Unqualified names only reach global functions.
					hash = hashing.HashNativeArgs(name, argTypes)
				}
				f, ok := root.GetQualifiedFn(hash)
				if !ok {
					return (&module.NotFoundError{Kind: module.EntryFunction, Hash: hash}).WithName(args[0])
				}
				fmt.Fprintf(out, "%s: %s (%#x)\n", args[0], f, hash)

			case cmd.Flags().Changed("arity"):
				hash := hashing.HashScript(qualifiers, name, arity)
				f, ok := root.GetQualifiedFn(hash)
				if !ok {
					return (&module.NotFoundError{Kind: module.EntryFunction, Hash: hash}).WithName(args[0])
				}
				fmt.Fprintf(out, "%s: %s (%#x)\n", args[0], f, hash)

			default:
				v, err := root.GetQualifiedVar(hashing.HashVar(qualifiers, name))
				if err != nil {
					var nf *module.NotFoundError
					if errors.As(err, &nf) {
						return nf.WithName(args[0])
					}
					return err
				}
				fmt.Fprintf(out, "%s = %s\n", args[0], v)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&types, "types", "t", nil, "native parameter types, e.g. Int,String")
	cmd.Flags().IntVarP(&arity, "arity", "n", 0, "script function arity")
	cmd.MarkFlagsMutuallyExclusive("types", "arity")
	return cmd
}

func parseTypes(names []string) ([]value.TypeID, error) {
	ids := make([]value.TypeID, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || n == config.UnitTypeName {
			continue
		}
		id, ok := typeNames[n]
		if !ok {
			known := sortedKeys(typeNames)
			return nil, fmt.Errorf("unknown type %q (known: %s)", n, strings.Join(known, ", "))
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func sortedNames(m *module.Module) []string {
	var names []string
	for name := range m.IterSubModules() {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
