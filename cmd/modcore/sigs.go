package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/funvibe/modcore/internal/module"
)

func newSigsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sigs [namespace]",
		Short: "List public function signatures of a module",
		Example: `  modcore sigs
  modcore sigs util::text`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := opts.load(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			target := root
			if len(args) == 1 {
				if target, err = descend(root, args[0]); err != nil {
					return err
				}
			}
			for _, sig := range target.GenFnSignatures() {
				fmt.Fprintln(cmd.OutOrStdout(), sig)
			}
			return nil
		},
	}
}

// descend walks ns from root through direct sub-modules.
func descend(root *module.Module, ns string) (*module.Module, error) {
	ref, err := module.ParseNamespaceRef(ns)
	if err != nil {
		return nil, err
	}
	cur := root
	for _, name := range ref.Names() {
		next, ok := cur.GetSubModule(name)
		if !ok {
			return nil, (&module.NotFoundError{Kind: module.EntryModule}).WithName(ns)
		}
		cur = next
	}
	return cur, nil
}
