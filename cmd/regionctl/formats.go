package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regionkit/pkg/dissect"
)

type formatRow struct {
	Name        string   `json:"name"`
	Extensions  []string `json:"extensions"`
	Description string   `json:"description"`
}

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "formats",
		Short: "List the formats regionctl can dissect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormats()
		},
	})
}

func runFormats() error {
	rows := make([]formatRow, 0, len(dissect.Formats()))
	for _, f := range dissect.Formats() {
		rows = append(rows, formatRow{Name: f.String(), Extensions: f.Extensions(), Description: f.Description()})
	}
	if jsonOut {
		return printJSON(rows)
	}
	for _, r := range rows {
		printInfo("%-9s %-18s %s\n", r.Name, strings.Join(r.Extensions, ","), r.Description)
	}
	return nil
}
