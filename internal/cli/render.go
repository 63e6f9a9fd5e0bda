package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/resfold/resfold/pkg/errors"
	"github.com/resfold/resfold/pkg/resource"
	"github.com/resfold/resfold/pkg/scan"
	"github.com/resfold/resfold/pkg/strategy"
	"github.com/resfold/resfold/pkg/subenc"
)

// renderCommand creates the render command, the main entry point: scan
// a directory and emit it through an output strategy.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		opts          strategy.Options
		strategyName  string
		outputPath    string
		subformats    []string
		exts          []string
		keepEmptyDirs bool
	)

	cmd := &cobra.Command{
		Use:   "render <path>",
		Short: "Render a resource tree as generated source code",
		Long: `Render scans a file or directory and emits it through the selected
output strategy. By default resources become OCaml let-bindings nested
in modules mirroring the directory structure; see 'resfold list' for
the other strategies and the available sub-encodings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}

			name := strategyName
			if name == "" {
				name = cfg.Strategy
			}
			if name == "" {
				name = "bindings"
			}
			if _, ok := c.Strategies.Lookup(name); !ok {
				return errors.New(errors.ErrCodeInvalidStrategy,
					"unknown strategy %q, see 'resfold list'", name)
			}

			if opts.Width == 0 {
				opts.Width = cfg.Width
			}
			if len(exts) == 0 {
				exts = cfg.Exts
			}

			reg, err := buildSubEncodings(cfg.Subformats, subformats)
			if err != nil {
				return err
			}
			opts.SubEncodings = reg
			opts.Logger = c.Logger

			prog := newProgress(c.Logger)
			sp := newSpinner(cmd.Context(), "Scanning "+args[0])
			sp.Start()
			tree, err := scan.Scan(args[0], scan.Options{
				Exts:          exts,
				KeepEmptyDirs: keepEmptyDirs,
				Logger:        c.Logger,
			})
			if err != nil {
				sp.StopWithError("Scan failed")
				return err
			}
			sp.Stop()
			stats := resource.Count(tree)

			if outputPath != "" {
				printStats(stats)
				if stats.Errors > 0 {
					printWarning("%d entries could not be read and will render as comments", stats.Errors)
				}
				f, createErr := os.Create(outputPath)
				if createErr != nil {
					return errors.Wrap(errors.ErrCodeSinkFailed, createErr,
						"cannot create output file %s", outputPath)
				}
				opts.Out = f
				if err := c.Strategies.Run(name, tree, opts); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return errors.Wrap(errors.ErrCodeSinkFailed, err,
						"cannot finalize output file %s", outputPath)
				}
				printSuccess("Rendered with strategy %q", name)
				printFile(outputPath)
				prog.done(fmt.Sprintf("rendered %d resources", stats.Files))
				return nil
			}

			c.Logger.Debug("scan complete",
				"files", stats.Files, "dirs", stats.Dirs, "bytes", stats.Bytes)
			return c.Strategies.Run(name, tree, opts)
		},
	}

	cmd.Flags().StringVarP(&strategyName, "strategy", "s", "",
		"output strategy (default \"bindings\")")
	cmd.Flags().IntVar(&opts.Width, "width", 0,
		fmt.Sprintf("maximum output width (default %d)", strategy.DefaultWidth))
	cmd.Flags().StringVarP(&outputPath, "output", "o", "",
		"write to file instead of standard output")
	cmd.Flags().StringArrayVar(&subformats, "subformat", nil,
		"bind an extension to a sub-encoding, as ext=name (repeatable)")
	cmd.Flags().StringSliceVar(&exts, "ext", nil,
		"only scan files with these extensions")
	cmd.Flags().BoolVar(&keepEmptyDirs, "keep-empty-dirs", false,
		"keep directories with no matching files")

	for _, s := range c.Strategies.All() {
		s.RegisterFlags(cmd.Flags(), &opts)
	}

	return cmd
}

// buildSubEncodings merges config and flag extension bindings, flags
// winning, into a sub-encoding registry.
func buildSubEncodings(fromConfig map[string]string, fromFlags []string) (*subenc.Registry, error) {
	reg := subenc.NewRegistry()

	bind := func(ext, name string) error {
		enc, ok := subenc.ByName(name)
		if !ok {
			return errors.New(errors.ErrCodeInvalidSubformat,
				"unknown sub-encoding %q (available: %s)",
				name, strings.Join(subenc.Names(), ", "))
		}
		reg.Register(ext, enc)
		return nil
	}

	for ext, name := range fromConfig {
		if err := bind(ext, name); err != nil {
			return nil, err
		}
	}
	for _, pair := range fromFlags {
		ext, name, ok := strings.Cut(pair, "=")
		if !ok || ext == "" || name == "" {
			return nil, errors.New(errors.ErrCodeInvalidSubformat,
				"invalid --subformat %q, expected ext=name", pair)
		}
		if err := bind(strings.TrimPrefix(ext, "."), name); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
