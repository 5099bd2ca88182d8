package main

import (
	"fmt"
	"unitconv"

	"github.com/spf13/cobra"
)

func newCategoriesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List unit categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range unitconv.ListCategories() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newUnitsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "units",
		Short: "List the units of a category, base unit first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := requireString(a, "category")
			if err != nil {
				return err
			}
			units, err := unitconv.ListUnits(category)
			if err != nil {
				return err
			}
			for _, name := range units {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
	cmd.Flags().String("category", "", "Unit category")
	return cmd
}

func newTableCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Convert a value into every other unit of its category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := requireString(a, "category")
			if err != nil {
				return err
			}
			from, err := requireString(a, "from")
			if err != nil {
				return err
			}
			value, err := floatSetting(a, "value")
			if err != nil {
				return err
			}
			rows, err := unitconv.ConversionTable(value, from, category)
			if err != nil {
				return err
			}
			for _, row := range rows {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", row.Unit, unitconv.FormatValue(row.Value))
			}
			return nil
		},
	}
	cmd.Flags().String("category", "", "Unit category")
	cmd.Flags().String("from", "", "Source unit")
	cmd.Flags().Float64("value", 1, "Value to convert")
	return cmd
}
