package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"rewardtrack/internal/domain"
	"rewardtrack/internal/domain/types"
	"rewardtrack/internal/services/rewards"
)

// purchase <id>: record a purchase and any points redeemed against it.
func purchaseCmd() *cobra.Command {
	var (
		amount        string
		date          string
		redeem        int64
		expectBalance int64
	)
	cmd := &cobra.Command{
		Use:   "purchase <program>",
		Short: "Record a purchase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDate(date)
			if err != nil {
				return err
			}
			// An unparsable amount goes to the service as zero so that earlier
			// failures, such as a missing date, are reported first.
			amt, amountErr := rewards.ParseAmount(amount)
			if amountErr != nil {
				amt = decimal.Zero
			}
			req := domain.PurchaseRequest{
				ProgramID:    types.ProgramID(args[0]),
				Amount:       amt,
				Date:         day,
				RedeemPoints: redeem,
			}
			if cmd.Flags().Changed("expect-balance") {
				req.ExpectedBalance = &expectBalance
			}

			receipt, err := rewardsSvc.RecordPurchase(req)
			if errors.Is(err, types.ErrInvalidAmount) && amountErr != nil {
				return amountErr
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "earned %d, redeemed %d ($%s off); balance %d\n",
				receipt.Earned, receipt.Redeemed, receipt.Discount.StringFixed(2), receipt.NewBalance)
			if receipt.Warning != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", receipt.Warning)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&amount, "amount", "", "purchase amount in dollars")
	cmd.Flags().StringVar(&date, "date", "", "purchase date (YYYY-MM-DD or \"today\")")
	cmd.Flags().Int64Var(&redeem, "redeem", 0, "points to redeem against this purchase")
	cmd.Flags().Int64Var(&expectBalance, "expect-balance", 0, "fail if the balance has changed from this value")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

// parseDate accepts YYYY-MM-DD or "today". Empty input is the missing date.
func parseDate(s string) (types.Date, error) {
	switch s {
	case "":
		return types.Date{}, nil
	case "today":
		return types.DateOf(time.Now()), nil
	}
	return types.ParseDate(s)
}
