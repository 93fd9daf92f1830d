package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regionkit/internal/writer"
	"github.com/joshuapare/regionkit/pkg/ast"
	"github.com/joshuapare/regionkit/pkg/dissect"
	"github.com/joshuapare/regionkit/pkg/printer"
)

// treeFlags are shared by every command that prints a region tree.
type treeFlags struct {
	depth         int
	values        bool
	maxValueBytes int
	hex           bool
	limits        string
}

func (f *treeFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.depth, "depth", 0, "Maximum depth to print (0 = unlimited)")
	cmd.Flags().BoolVar(&f.values, "values", false, "Show value previews")
	cmd.Flags().IntVar(&f.maxValueBytes, "max-value-bytes", printer.DefaultMaxValueBytes, "Truncate value previews (0 = no limit)")
	cmd.Flags().BoolVar(&f.hex, "hex", false, "Print offsets and lengths in hexadecimal")
	cmd.Flags().StringVar(&f.limits, "limits", "default", "Tree limits preset (default, relaxed, strict, none)")
}

func (f *treeFlags) reset() {
	*f = treeFlags{maxValueBytes: printer.DefaultMaxValueBytes, limits: "default"}
}

func (f *treeFlags) treeLimits() (ast.Limits, error) {
	return dissect.ParseLimits(f.limits)
}

// printTree writes the flattened tree to stdout, or atomically to --output,
// honoring --json.
func (f *treeFlags) printTree(node *ast.Node) error {
	opts := printer.DefaultOptions()
	opts.MaxDepth = f.depth
	opts.ShowValues = f.values
	opts.MaxValueBytes = f.maxValueBytes
	opts.HexOffsets = f.hex
	if jsonOut {
		opts.Format = printer.FormatJSON
	}
	if output != "" {
		out, err := writer.Create(output)
		if err != nil {
			return err
		}
		if err := printer.New(out, opts).PrintNode(node); err != nil {
			out.Abort()
			return err
		}
		if err := out.Commit(); err != nil {
			return err
		}
		printVerbose("Wrote %s\n", output)
		return nil
	}
	if quiet {
		return nil
	}
	return printer.New(os.Stdout, opts).PrintNode(node)
}
