package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/healix-app/healix-be/internal/diagnosis"
)

var conditionsCategory string

var conditionsCmd = &cobra.Command{
	Use:   "conditions",
	Short: "List the condition catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := diagnosis.OpenCatalog(catalogPath)
		if err != nil {
			return err
		}

		var filter diagnosis.Category
		if conditionsCategory != "" {
			if filter, err = diagnosis.ParseCategory(conditionsCategory); err != nil {
				return err
			}
		}

		printConditions(cmd.OutOrStdout(), catalog, filter)
		return nil
	},
}

func init() {
	conditionsCmd.Flags().StringVarP(&conditionsCategory, "category", "c", "", "Only list one category (e.g. respiratory)")
}

// printConditions lists the catalog; a zero filter lists everything
func printConditions(w io.Writer, catalog *diagnosis.Catalog, filter diagnosis.Category) {
	dim := color.New(color.FgHiBlack)
	_, _ = dim.Fprintf(w, "catalog %s\n", catalog.Version())

	n := 0
	for _, c := range catalog.Conditions() {
		if filter != 0 && c.Category != filter {
			continue
		}
		n++
		fmt.Fprintf(w, "%-36s %-40s %-16s ", c.ID, c.Name, c.Category)
		_, _ = severityColor(c.Severity).Fprintln(w, c.Severity)
	}
	_, _ = dim.Fprintf(w, "%d conditions\n", n)
}
