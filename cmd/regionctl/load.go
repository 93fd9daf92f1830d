package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regionkit/internal/logger"
	"github.com/joshuapare/regionkit/pkg/ast"
	"github.com/joshuapare/regionkit/pkg/source/serial"
)

var (
	loadFormat string
	loadTree   treeFlags
)

func init() {
	cmd := newLoadCmd()
	cmd.Flags().StringVar(&loadFormat, "format", "", "Document syntax (json, yaml); default from the file extension")
	loadTree.register(cmd)
	rootCmd.AddCommand(cmd)
}

func newLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <tree.json|tree.yaml|->",
		Short: "Resolve a serialized region tree",
		Long: `The load command reads a region tree produced by another tool, where
each node has a name and optionally a value, offset, length, and children,
and prints it with every offset and length resolved.

Example:
  regionctl load parsed.json
  some-parser --emit-tree | regionctl load - --format yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(args)
		},
	}
}

func runLoad(args []string) error {
	path := args[0]

	format, err := loadDocFormat(path)
	if err != nil {
		return err
	}
	limits, err := loadTree.treeLimits()
	if err != nil {
		return err
	}

	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	doc, err := serial.Decode(r, format)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	node, err := ast.LoadWithLimits(doc, limits)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	if err := node.Resolve(); err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	logger.Debug("loaded tree", "input", path, "format", format.String(), "nodes", node.Count())
	return loadTree.printTree(node)
}

func loadDocFormat(path string) (serial.Format, error) {
	if loadFormat != "" {
		return serial.ParseFormat(loadFormat)
	}
	if f, ok := serial.FormatFor(path); ok {
		return f, nil
	}
	if path == "-" {
		return serial.FormatJSON, nil
	}
	return 0, fmt.Errorf("cannot tell the syntax of %s; pass --format", path)
}
