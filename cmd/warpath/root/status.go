package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wichardvalente37/war-path-progress/internal/engine"
	"github.com/wichardvalente37/war-path-progress/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show profile, progress and achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, userID, cleanup, err := openLocal(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			p, err := svc.Profile(ctx, userID)
			if err != nil {
				return err
			}
			toNext := engine.XPToNextLevel(p.XP)

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconSparkle, "Warpath Status"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Name", p.Username))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Level", p.Level))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("XP", fmt.Sprintf("%d (%d to next level)", p.XP, toNext)))
			fmt.Fprintln(cmd.OutOrStdout(), "")

			missions, err := svc.ListMissions(ctx, userID)
			if err != nil {
				return err
			}
			var pending, completed, failed int
			for i := range missions {
				switch missions[i].Status {
				case "pending":
					pending++
				case "completed":
					completed++
				case "failed":
					failed++
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render(ui.IconMission+" Missions"))
			fmt.Fprintf(cmd.OutOrStdout(), "- %s %d\n", ui.Key.Render("Pending:"), pending)
			fmt.Fprintf(cmd.OutOrStdout(), "- %s %d\n", ui.Key.Render("Completed:"), completed)
			fmt.Fprintf(cmd.OutOrStdout(), "- %s %d\n", ui.Key.Render("Failed:"), failed)
			fmt.Fprintln(cmd.OutOrStdout(), "")

			goals, err := svc.ListGoals(ctx, userID)
			if err != nil {
				return err
			}
			if len(goals) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render(ui.IconGoal+" Goals"))
				for i := range goals {
					g := &goals[i]
					mark := ""
					if g.Current >= g.Target {
						mark = " " + ui.IconDone
					}
					fmt.Fprintf(cmd.OutOrStdout(), "- %s %s%s\n", g.Title, ui.Muted.Render(fmt.Sprintf("%d/%d", g.Current, g.Target)), mark)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "")
			}

			achievements, err := svc.AchievementRepo().ListByUser(ctx, userID)
			if err != nil {
				return err
			}
			if len(achievements) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render(ui.IconTrophy+" Achievements"))
				for i := range achievements {
					a := &achievements[i]
					icon := ui.IconTrophy
					if a.Icon != nil {
						icon = *a.Icon
					}
					fmt.Fprintf(cmd.OutOrStdout(), "- %s %s %s\n", icon, a.Title, ui.Muted.Render(a.UnlockedAt.Format("2006-01-02")))
				}
			}

			return nil
		},
	}

	return cmd
}
