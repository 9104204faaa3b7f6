package root

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wichardvalente37/war-path-progress/internal/engine"
	"github.com/wichardvalente37/war-path-progress/internal/ui"
)

func newAddCmd() *cobra.Command {
	var difficulty string
	var description string
	var due string
	var goalID int64
	var recurring bool
	var pattern string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a mission",
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

			in := engine.CreateMissionInput{
				Title:       args[0],
				Difficulty:  engine.Difficulty(strings.ToLower(difficulty)),
				IsRecurring: recurring,
			}
			if description != "" {
				in.Description = &description
			}
			if due != "" {
				t, err := time.Parse("2006-01-02", due)
				if err != nil {
					return fmt.Errorf("due date must be YYYY-MM-DD: %w", err)
				}
				in.DueDate = &t
			}
			if goalID > 0 {
				in.GoalID = &goalID
			}
			if recurring && pattern != "" {
				in.RecurrencePattern = &pattern
			}

			m, err := svc.CreateMission(ctx, userID, in)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconMission, fmt.Sprintf("Mission %d added", m.ID)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Title", m.Title))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Difficulty", ui.DifficultyText(m.Difficulty)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Worth", fmt.Sprintf("%d XP", m.XP)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&difficulty, "diff", "d", "normal", "Difficulty (easy|normal|hard|extreme)")
	cmd.Flags().StringVar(&description, "desc", "", "Mission description")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().Int64VarP(&goalID, "goal", "g", 0, "Goal ID this mission counts toward")
	cmd.Flags().BoolVar(&recurring, "recurring", false, "Mark the mission as recurring")
	cmd.Flags().StringVar(&pattern, "pattern", "", "Recurrence pattern (daily|weekly|monthly)")

	return cmd
}
