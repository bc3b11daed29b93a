package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"rewardtrack/internal/domain/types"
)

// balance [id]: print one balance with its tiers, or every balance.
func balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance [program]",
		Short: "Print point balances",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				for _, id := range programs.IDs() {
					bal, err := rewardsSvc.Balance(id)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "%s\t%d\n", id, bal)
				}
				return nil
			}

			id := types.ProgramID(args[0])
			bal, err := rewardsSvc.Balance(id)
			if err != nil {
				return err
			}
			tiers, err := rewardsSvc.Tiers(id)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s: %d points\n", id, bal)
			for _, t := range tiers {
				mark := " "
				if t.Affordable {
					mark = "*"
				}
				fmt.Fprintf(out, " %s %6d pts  $%s\n", mark, t.Points, t.Value.StringFixed(2))
			}
			return nil
		},
	}
}
