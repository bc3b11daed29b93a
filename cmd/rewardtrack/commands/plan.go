package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"rewardtrack/internal/domain/types"
	"rewardtrack/internal/services/rewards"
)

// plan <id>: estimate the total after paying part of a purchase with points.
func planCmd() *cobra.Command {
	var (
		amount string
		points int64
	)
	cmd := &cobra.Command{
		Use:   "plan <program>",
		Short: "Estimate savings for a prospective purchase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amt, err := rewards.ParseAmount(amount)
			if err != nil {
				return err
			}
			plan, err := rewardsSvc.PlanPurchase(types.ProgramID(args[0]), amt, points)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "using %d pts saves $%s; estimated total $%s\n",
				plan.Points, plan.Savings.StringFixed(2), plan.EstimatedTotal.StringFixed(2))
			return nil
		},
	}
	cmd.Flags().StringVar(&amount, "amount", "", "purchase amount in dollars")
	cmd.Flags().Int64Var(&points, "points", 0, "points to redeem (lowered to the balance)")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}
