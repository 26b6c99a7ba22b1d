package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/funvibe/modcore/internal/manifest"
	"github.com/funvibe/modcore/internal/module"
	"github.com/funvibe/modcore/internal/resolvers"
	"github.com/funvibe/modcore/internal/sqlsource"
	"github.com/funvibe/modcore/internal/stdlib"
)

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	manifestPath string
	libDir       string
	dbPath       string
	verbose      bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "modcore",
		Short: "Assemble and inspect module trees",
		Long: `modcore builds a module tree from a manifest (modcore.yaml or
modcore.hcl) and the built-in library packages, then prints it.

Without --manifest, the nearest manifest in the current directory or one of
its parents is used.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.manifestPath, "manifest", "m", "", "manifest file (default: nearest modcore.yaml/modcore.hcl)")
	cmd.PersistentFlags().StringVar(&opts.libDir, "lib-dir", "", "directory of additional manifests importable by path")
	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "SQLite database of module variables importable by path")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newDescribeCommand(opts))
	cmd.AddCommand(newSigsCommand(opts))
	cmd.AddCommand(newIndexCommand(opts))
	cmd.AddCommand(newLookupCommand(opts))
	cmd.AddCommand(newPackagesCommand())
	return cmd
}

// newLogger writes to w, switching to logfmt when w is not a terminal.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{Prefix: "modcore"})
	if f, ok := w.(*os.File); !ok || (!isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())) {
		logger.SetFormatter(log.LogfmtFormatter)
	}
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// load assembles the module tree selected by opts.
func (opts *rootOptions) load(ctx context.Context, stderr io.Writer) (*module.Module, error) {
	logger := newLogger(stderr, opts.verbose)
	if opts.verbose {
		module.SetLogger(logger.WithPrefix("module"))
	}

	path := opts.manifestPath
	if path == "" {
		found, err := manifest.FindManifest(".")
		if err != nil {
			return nil, err
		}
		if found == "" {
			return nil, fmt.Errorf("no manifest found; pass --manifest")
		}
		path = found
	}
	logger.Debug("loading manifest", "path", path)

	man, err := manifest.LoadManifest(path)
	if err != nil {
		return nil, err
	}

	// Library packages first, then the --db variables, then manifests on disk.
	// Relative imports ("./x") resolve against the importing manifest's
	// directory.
	libs := resolvers.NewCollectionResolver(stdlib.Resolver(logger))
	if opts.dbPath != "" {
		vars, err := sqlsource.Open(ctx, opts.dbPath, logger)
		if err != nil {
			return nil, err
		}
		defer vars.Close()
		libs.Push(vars)
	}
	libs.Push(resolvers.Cached(&manifest.FileResolver{Base: opts.libDir, Libs: libs, Logger: logger}, logger))
	return manifest.Assemble(ctx, man, libs, logger)
}
