package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"lifequest/internal/engine"
	"lifequest/internal/ui"
)

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage daily tasks",
	}
	cmd.AddCommand(
		newTaskAddCmd(),
		newTaskListCmd(),
		newTaskDoneCmd(),
		newTaskRmCmd(),
	)
	return cmd
}

func newTaskAddCmd() *cobra.Command {
	var xp int

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a custom daily task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("task name is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			t, err := svc.AddCustomTask(ctx, args[0], xp)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render("➕ Added"), t.Name, ui.Muted.Render(fmt.Sprintf("(%d XP, id %s)", t.XP, t.ID)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&xp, "xp", "x", 100, "Base XP awarded on completion")
	return cmd
}

func newTaskListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List today's tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			p := svc.Player()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(ui.IconQuest, "Daily Tasks"))
			if len(p.CustomTasks) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("- none; add one with 'lq task add'"))
			}
			for _, t := range p.CustomTasks {
				mark := ui.Muted.Render("[ ]")
				if p.CustomTasksCompleted[t.ID] {
					mark = ui.Good.Render("[✓]")
				}
				fmt.Fprintf(out, "%s %s %s\n", mark, t.Name, ui.Muted.Render(fmt.Sprintf("(%d XP, id %s)", t.XP, t.ID)))
			}

			if len(p.RankTasks) > 0 {
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.H2.Render(ui.IconTrophy+" Rank Challenges ("+p.RankTasks[0].Tier+" tier)"))
				for _, t := range p.RankTasks {
					mark := ui.Muted.Render("[ ]")
					if p.RankTasksCompleted[t.ID] {
						mark = ui.Good.Render("[✓]")
					}
					fmt.Fprintf(out, "%s %s %s\n", mark, t.Name, ui.Muted.Render(fmt.Sprintf("(%d XP, id %s)", t.XP, t.ID)))
				}
			}
			return nil
		},
	}
	return cmd
}

func newTaskDoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Complete a task (custom or rank challenge)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("task id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id := args[0]
			res, err := svc.CompleteCustomTask(ctx, id)
			if errors.Is(err, engine.ErrItemNotFound) {
				// Rank challenge ids live in a separate set.
				res, err = svc.CompleteRankTask(ctx, id)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s %s\n", ui.Good.Render(ui.IconDone+" Done"), res.Name, ui.Muted.Render(fmt.Sprintf("(+%d XP)", res.XPAwarded)))
			fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%s %d days", ui.IconFlame, res.Streak)))
			if res.LevelsGained > 0 {
				fmt.Fprintf(out, "%s %s\n", ui.BadgeLevelUp, ui.LabelValue("Level", fmt.Sprintf("%d → %d", res.LevelBefore, res.LevelAfter)))
			}
			return nil
		},
	}
	return cmd
}

func newTaskRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a custom task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("task id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.RemoveCustomTask(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Removed "+args[0]))
			return nil
		},
	}
	return cmd
}
