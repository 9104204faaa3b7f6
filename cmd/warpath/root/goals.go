package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wichardvalente37/war-path-progress/internal/engine"
	"github.com/wichardvalente37/war-path-progress/internal/ui"
)

func newGoalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Show and manage goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGoalsList(cmd)
		},
	}

	cmd.AddCommand(newGoalsAddCmd())

	return cmd
}

func runGoalsList(cmd *cobra.Command) error {
	ctx := context.Background()
	svc, userID, cleanup, err := openLocal(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	goals, err := svc.ListGoals(ctx, userID)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconGoal, "Goals"))
	if len(goals) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(no goals yet — add one with `warpath goals add`)"))
		return nil
	}
	for i := range goals {
		g := &goals[i]
		done := ""
		if g.Current >= g.Target {
			done = " " + ui.IconDone
		}
		line := fmt.Sprintf("%4d  %s  %s%s", g.ID, g.Title, ui.Muted.Render(fmt.Sprintf("%d/%d", g.Current, g.Target)), done)
		if g.Category != nil {
			line += " " + ui.Muted.Render("#"+*g.Category)
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}

func newGoalsAddCmd() *cobra.Command {
	var target int
	var category string
	var difficulty string
	var description string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a goal",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, userID, cleanup, err := openLocal(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			in := engine.CreateGoalInput{
				Title:      args[0],
				Target:     target,
				Difficulty: engine.Difficulty(strings.ToLower(difficulty)),
			}
			if category != "" {
				in.Category = &category
			}
			if description != "" {
				in.Description = &description
			}

			g, err := svc.CreateGoal(ctx, userID, in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconGoal, fmt.Sprintf("Goal %d added", g.ID)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Title", g.Title))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Target", g.Target))
			return nil
		},
	}

	cmd.Flags().IntVarP(&target, "target", "t", engine.DefaultGoalTarget, "Completions needed to finish the goal")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Goal category")
	cmd.Flags().StringVarP(&difficulty, "diff", "d", "normal", "Difficulty (easy|normal|hard|extreme)")
	cmd.Flags().StringVar(&description, "desc", "", "Goal description")

	return cmd
}
