package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/resfold/resfold/pkg/errors"
	"github.com/resfold/resfold/pkg/scan"
	"github.com/resfold/resfold/pkg/treeviz"
)

// graphCommand creates the graph command rendering a scanned tree as a
// Graphviz diagram.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		format     string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "graph <path>",
		Short: "Visualize a resource tree as a Graphviz diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "dot" && format != "svg" {
				return errors.New(errors.ErrCodeInvalidConfig,
					"unknown format %q, expected dot or svg", format)
			}

			tree, err := scan.Scan(args[0], scan.Options{Logger: c.Logger})
			if err != nil {
				return err
			}

			dot := treeviz.ToDOT(tree)
			out := []byte(dot)
			if format == "svg" {
				sp := newSpinner(cmd.Context(), "Rendering diagram")
				sp.Start()
				out, err = treeviz.RenderSVG(dot)
				if err != nil {
					sp.StopWithError("Diagram rendering failed")
					return err
				}
				sp.Stop()
			}

			if outputPath == "" {
				fmt.Print(string(out))
				return nil
			}
			if err := os.WriteFile(outputPath, out, 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeSinkFailed, err,
					"cannot write %s", outputPath)
			}
			printSuccess("Diagram written")
			printFile(outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot or svg")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write to file instead of standard output")

	return cmd
}
