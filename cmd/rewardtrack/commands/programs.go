package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"rewardtrack/internal/policy"
)

// programs: list every program with its balance and rules.
func programsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "programs",
		Short: "List reward programs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tPOINTS\tRULES")
			for _, p := range programs.Programs() {
				bal, err := rewardsSvc.Balance(p.ID)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", p.ID, p.Name, bal, policy.Describe(p.Policy))
			}
			return tw.Flush()
		},
	}
}
