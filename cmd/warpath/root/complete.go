package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wichardvalente37/war-path-progress/internal/ui"
)

func newCompleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complete <id>",
		Short: "Complete a mission and collect the reward",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return errors.New("id must be an integer")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := strconv.ParseInt(args[0], 10, 64)

			ctx := context.Background()
			svc, userID, cleanup, err := openLocal(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.CompleteMission(ctx, userID, id)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconDone, fmt.Sprintf("Mission %d completed", res.MissionID)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("XP gained", fmt.Sprintf("+%d (total %d)", res.XPAwarded, res.XPTotal)))
			if res.LevelUp {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %d → %d\n", ui.IconSparkle, ui.BadgeLevelUp, res.LevelBefore, res.LevelAfter)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Level", res.LevelAfter))
			}
			if g := res.Goal; g != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %d/%d\n", ui.IconGoal, ui.Key.Render("Goal progress:"), g.Current, g.Target)
			}
			for i := range res.Unlocked {
				icon := ui.IconTrophy
				if res.Unlocked[i].Icon != nil {
					icon = *res.Unlocked[i].Icon
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", icon, ui.Gold.Render("Unlocked: "+res.Unlocked[i].Title))
			}
			return nil
		},
	}

	return cmd
}
