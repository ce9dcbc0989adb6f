// Package cli holds the bmi command line tool.
package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yusufkecer/eatsmart-backend/internal/bmi"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bmi",
		Short: "Evaluate body mass index from height and weight.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addCalc(topLevel)
	addCategories(topLevel)
}

var palette = map[string]color.Attribute{
	"blue":   color.FgBlue,
	"green":  color.FgGreen,
	"yellow": color.FgYellow,
	"red":    color.FgRed,
}

func paint(c bmi.Category, s string) string {
	attr, ok := palette[c.Color()]
	if !ok {
		return s
	}
	return color.New(attr, color.Bold).Sprint(s)
}
