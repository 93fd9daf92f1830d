package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regionkit/internal/logger"
	"github.com/joshuapare/regionkit/pkg/dissect"
)

var (
	dissectFormat string
	dissectTree   treeFlags
)

func init() {
	cmd := newDissectCmd()
	cmd.Flags().StringVar(&dissectFormat, "format", "auto", "Input format (auto, regf, markdown, html, json, yaml)")
	dissectTree.register(cmd)
	rootCmd.AddCommand(cmd)
}

func newDissectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dissect <file>",
		Short: "Print the region tree of a file",
		Long: `The dissect command detects the format of a file, breaks it into
regions, and prints every region with its absolute offset and length.

Example:
  regionctl dissect NTUSER.DAT --depth 3
  regionctl dissect README.md --values
  regionctl dissect page.html --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDissect(args)
		},
	}
}

func runDissect(args []string) error {
	path := args[0]

	f, err := dissect.ParseFormat(dissectFormat)
	if err != nil {
		return err
	}
	limits, err := dissectTree.treeLimits()
	if err != nil {
		return err
	}

	printVerbose("Dissecting: %s\n", path)
	d := dissect.New(dissect.Options{Logger: logger.L, Limits: limits, Format: f})
	node, err := d.File(path)
	if err != nil {
		return fmt.Errorf("failed to dissect %s: %w", path, err)
	}
	return dissectTree.printTree(node)
}
