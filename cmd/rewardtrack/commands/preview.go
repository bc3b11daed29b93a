package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"rewardtrack/internal/domain/types"
)

// preview <id> <points>: value a redemption without recording it.
func previewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview <program> <points>",
		Short: "Value a redemption without recording it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			points, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("%w: %q", types.ErrInvalidRedemptionAmount, args[1])
			}
			p, err := rewardsSvc.PreviewRedemption(types.ProgramID(args[0]), points)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if p.Valid {
				fmt.Fprintf(out, "%d pts = $%s\n", p.Points, p.Value.StringFixed(2))
				return nil
			}
			fmt.Fprintf(out, "%d pts cannot be redeemed (estimate $%s)\n", p.Points, p.Value.StringFixed(2))
			return nil
		},
	}
}
