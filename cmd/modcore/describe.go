package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/funvibe/modcore/internal/prettyprinter"
)

func newDescribeCommand(opts *rootOptions) *cobra.Command {
	var (
		format      string
		showPrivate bool
	)
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print the assembled module tree",
		Example: `  modcore describe
  modcore describe -m app.hcl --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := opts.load(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			switch format {
			case "text":
				p := prettyprinter.NewTreePrinter().ShowPrivate(showPrivate)
				p.PrintModule("", root)
				fmt.Fprint(cmd.OutOrStdout(), p.String())
			case "yaml":
				out, err := prettyprinter.MarshalYAML(root)
				if err != nil {
					return err
				}
				cmd.OutOrStdout().Write(out)
			default:
				return fmt.Errorf("unknown format %q (want text or yaml)", format)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text or yaml")
	cmd.Flags().BoolVar(&showPrivate, "private", false, "include private functions")
	return cmd
}
