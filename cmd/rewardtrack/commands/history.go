package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"rewardtrack/internal/domain/types"
)

// history <id>: print transactions, most recent first.
func historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <program>",
		Short: "Print a program's transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := rewardsSvc.History(types.ProgramID(args[0]))
			if err != nil {
				return err
			}
			if len(history) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no transactions")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "DATE\tAMOUNT\tEARNED\tREDEEMED\tDISCOUNT")
			for _, tx := range history {
				fmt.Fprintf(tw, "%s\t$%s\t%d\t%d\t$%s\n",
					tx.Date, tx.Amount.StringFixed(2), tx.PointsEarned, tx.PointsRedeemed, tx.DiscountValue.StringFixed(2))
			}
			return tw.Flush()
		},
	}
}
