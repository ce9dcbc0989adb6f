package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/yusufkecer/eatsmart-backend/internal/bmi"
)

func addCategories(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Print the category thresholds.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			_, err := fmt.Fprintln(cmd.OutOrStdout(), legend())
			return err
		},
	}

	topLevel.AddCommand(cmd)
}

func legend() *uitable.Table {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Category"), bold.Sprint("Range"))
	for _, b := range bmi.Categories() {
		tbl.AddRow(paint(b.Category, b.Label), bandRange(b))
	}
	return tbl
}

func bandRange(b bmi.Band) string {
	switch {
	case b.Min == 0 && b.Max != nil:
		return fmt.Sprintf("< %.1f", *b.Max)
	case b.Max == nil:
		return fmt.Sprintf(">= %.1f", b.Min)
	default:
		return fmt.Sprintf("%.1f - %.1f", b.Min, *b.Max)
	}
}
