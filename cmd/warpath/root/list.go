package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wichardvalente37/war-path-progress/internal/ui"
)

func newListCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List missions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, userID, cleanup, err := openLocal(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			missions, err := svc.ListMissions(ctx, userID)
			if err != nil {
				return err
			}
			goals, err := svc.ListGoals(ctx, userID)
			if err != nil {
				return err
			}
			goalTitles := map[int64]string{}
			for _, g := range goals {
				goalTitles[g.ID] = g.Title
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconMission, "Missions"))
			shown := 0
			for i := range missions {
				m := &missions[i]
				if !all && m.Status != "pending" {
					continue
				}
				shown++
				line := fmt.Sprintf("%4d  %s %s  %s", m.ID, ui.StatusText(m.Status), m.Title, ui.Muted.Render(fmt.Sprintf("(%s, %d XP)", m.Difficulty, m.XP)))
				if m.DueDate != nil {
					line += " " + ui.Muted.Render("due "+m.DueDate.Format("2006-01-02"))
				}
				if m.GoalID != nil {
					if title, ok := goalTitles[*m.GoalID]; ok {
						line += " " + ui.IconGoal + " " + ui.Muted.Render(title)
					}
				}
				if m.IsRecurring {
					line += " " + ui.IconLoop
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			if shown == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(nothing here — add a mission with `warpath add`)"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include completed and failed missions")

	return cmd
}
