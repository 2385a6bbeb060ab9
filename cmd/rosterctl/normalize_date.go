package main

import (
	"fmt"

	"github.com/JonMunkholm/roster/internal/roster"
	"github.com/spf13/cobra"
)

func newNormalizeDateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize-date VALUE...",
		Short: "Print how birthday values are normalized",
		Long: `Print each value next to its normalized form. Day/month/year dates
become YYYY-MM-DD; two-digit years below 50 are 20xx, others 19xx.
Unrecognized values are printed unchanged.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, v := range args {
				if _, err := fmt.Fprintf(out, "%s\t%s\n", v, roster.NormalizeDate(v)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
