package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	var (
		year   int
		yearly bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show monthly or yearly totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			if yearly {
				buckets, err := c.YearlyStats(cmd.Context())
				if err != nil {
					return signInHint(err, "view entries")
				}
				if len(buckets) == 0 {
					fmt.Println("no data")
					return nil
				}
				for _, b := range buckets {
					fmt.Printf("%d  Rs. %-10d (%d entries)\n", b.Year, b.TotalAmount, b.Count)
				}
				return nil
			}

			months, chosenYear, err := c.MonthlyStats(cmd.Context(), year)
			if err != nil {
				return signInHint(err, "view entries")
			}
			fmt.Printf("Year %d\n", chosenYear)
			for _, m := range months {
				fmt.Printf("%-10s Rs. %-10d (%d entries)\n", m.Month, m.TotalAmount, m.Count)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "year for the monthly table (default: newest with data)")
	cmd.Flags().BoolVar(&yearly, "yearly", false, "one bucket per year instead of per month")
	return cmd
}
