package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/funvibe/modcore/internal/stdlib"
)

func newPackagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "packages",
		Short: "List the built-in library packages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PATH\tDESCRIPTION")
			for _, name := range stdlib.Names() {
				pkg, _ := stdlib.Lookup(name)
				fmt.Fprintf(w, "%s%s\t%s\n", stdlib.PathPrefix, name, pkg.Doc)
			}
			return w.Flush()
		},
	}
}
