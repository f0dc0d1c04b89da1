package cli

import (
	"fmt"

	"github.com/alexanderramin/muster/internal/cli/formatter"
	"github.com/alexanderramin/muster/internal/domain"
	"github.com/spf13/cobra"
)

func newRankCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Inspect ranks and promotion requirements",
	}

	cmd.AddCommand(
		newRankListCmd(app),
		newRankSetCmd(app),
	)

	return cmd
}

func newRankListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List ranks with their promotion requirements",
		RunE: func(cmd *cobra.Command, args []string) error {
			reqs, err := app.Requirements.List(cmd.Context())
			if err != nil {
				return err
			}
			writeln(cmd, formatter.FormatRequirements(reqs))
			return nil
		},
	}
}

func newRankSetCmd(app *App) *cobra.Command {
	var months, activities, level int

	cmd := &cobra.Command{
		Use:   "set RANK",
		Short: "Set promotion requirements out of a rank (0 disables a threshold)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rank := args[0]

			current := domain.RankRequirement{Rank: rank}
			reqs, err := app.Requirements.List(ctx)
			if err != nil {
				return err
			}
			for _, r := range reqs {
				if r.Rank == rank {
					current = r
				}
			}

			flags := cmd.Flags()
			if !flags.Changed("months") && !flags.Changed("activities") && !flags.Changed("level") {
				return fmt.Errorf("nothing to set: pass --months, --activities or --level")
			}
			if flags.Changed("months") {
				current.Months = months
			}
			if flags.Changed("activities") {
				current.Activities = activities
			}
			if flags.Changed("level") {
				current.Level = level
			}

			if err := app.Requirements.Set(ctx, current); err != nil {
				return err
			}
			printf(cmd, "%s: months %d, activities %d, level %d\n",
				current.Rank, current.Months, current.Activities, current.Level)
			return nil
		},
	}

	cmd.Flags().IntVar(&months, "months", 0, "Minimum months of service")
	cmd.Flags().IntVar(&activities, "activities", 0, "Minimum number of activities")
	cmd.Flags().IntVar(&level, "level", 0, "Minimum in-game level")

	return cmd
}
