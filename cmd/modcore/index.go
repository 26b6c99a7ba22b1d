package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/funvibe/modcore/internal/config"
	"github.com/funvibe/modcore/internal/module"
)

func newIndexCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Show direct and flattened table sizes of the module tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := opts.load(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "MODULE\tVARS\tFUNCTIONS\tITERATORS")
			writeCounts(w, "root", root)

			vars, fns, iters := root.BuildIndex().IndexedCount()
			fmt.Fprintf(w, "(indexed)\t%d\t%d\t%d\n", vars, fns, iters)
			return w.Flush()
		},
	}
}

func writeCounts(w *tabwriter.Writer, path string, m *module.Module) {
	vars, fns, iters := m.Count()
	fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", path, vars, fns, iters)
	for _, name := range sortedNames(m) {
		sub, _ := m.GetSubModule(name)
		writeCounts(w, path+config.NamespaceSeparator+name, sub)
	}
}
