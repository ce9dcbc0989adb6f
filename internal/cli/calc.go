package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yusufkecer/eatsmart-backend/internal/bmi"
)

type calcOutput struct {
	Index    float64 `json:"index"`
	Rounded  float64 `json:"rounded"`
	Category string  `json:"category"`
	Label    string  `json:"label"`
	Color    string  `json:"color"`
}

func addCalc(topLevel *cobra.Command) {
	var (
		height string
		weight string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate the index and category for one measurement.",
		Example: `
bmi calc --height 170 --weight 70
bmi calc --height 160 --weight 45 --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			res, err := bmi.Parse(height, weight)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(calcOutput{
					Index:    res.Index,
					Rounded:  res.Rounded(),
					Category: res.Category.String(),
					Label:    res.Category.Label(),
					Color:    res.Category.Color(),
				})
			}

			_, err = fmt.Fprintf(out, "BMI %.1f  %s\n", res.Rounded(), paint(res.Category, res.Category.Label()))
			return err
		},
	}

	cmd.Flags().StringVar(&height, "height", "", "height in centimeters")
	cmd.Flags().StringVar(&weight, "weight", "", "weight in kilograms")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")

	topLevel.AddCommand(cmd)
}
