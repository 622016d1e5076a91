package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"lifequest/internal/engine"
	"lifequest/internal/ui"
)

func newQuestsCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "quests",
		Short: "List quests",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			quests, err := svc.Quests(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "Quests"))
			shown := 0
			for _, q := range quests {
				if !all && (q.Status == engine.StatusCompleted || q.Status == engine.StatusFailed || q.Status == engine.StatusExpired) {
					continue
				}
				shown++
				line := fmt.Sprintf("- [%s] %s %s %s", ui.QuestStatus(q.Status), q.Name,
					ui.Muted.Render(fmt.Sprintf("(%d/%d)", q.Progress.Current, q.Progress.Target)),
					ui.Muted.Render("id "+q.ID))
				fmt.Fprintln(out, line)
				if q.ExpiresAt != nil && q.Status == engine.StatusInProgress {
					left := time.Until(*q.ExpiresAt).Round(time.Minute)
					fmt.Fprintf(out, "    %s\n", ui.Warn.Render(fmt.Sprintf("⏳ %s left", left)))
				}
			}
			if shown == 0 {
				fmt.Fprintln(out, ui.Muted.Render("- no open quests; try 'lq dungeon'"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include finished quests")
	return cmd
}

func newAcceptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accept <quest_id>",
		Short: "Accept an available quest",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("quest_id is required")
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

			q, err := svc.Accept(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render(ui.IconScroll+" Accepted"), q.Name)
			return nil
		},
	}
	return cmd
}

func newAdvanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "advance <quest_id> [delta]",
		Short: "Record manual quest progress",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 || len(args) > 2 {
				return errors.New("quest_id is required")
			}
			if len(args) == 2 {
				if _, err := strconv.Atoi(args[1]); err != nil {
					return errors.New("delta must be an integer")
				}
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

			delta := 1
			if len(args) == 2 {
				delta, _ = strconv.Atoi(args[1])
			}

			q, completed, err := svc.Advance(ctx, args[0], delta)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if completed {
				fmt.Fprintf(out, "%s %s %s\n", ui.Gold.Render(ui.IconTrophy+" Quest complete!"), q.Name,
					ui.Muted.Render(fmt.Sprintf("(+%d XP, +%d pts)", q.Reward.XP, q.Reward.Points)))
				return nil
			}
			fmt.Fprintf(out, "%s %s %s\n", ui.H2.Render("Progress"), q.Name, ui.Muted.Render(fmt.Sprintf("(%d/%d)", q.Progress.Current, q.Progress.Target)))
			return nil
		},
	}
	return cmd
}

func newDungeonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dungeon",
		Short: "Enter a random dungeon challenge",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			q, err := svc.SpawnDungeon(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", ui.Heading(ui.IconDungeon, "Dungeon entered!"), "")
			fmt.Fprintln(out, ui.LabelValue("Challenge", q.Name))
			fmt.Fprintln(out, ui.LabelValue("Goal", q.Description))
			if q.ExpiresAt != nil {
				fmt.Fprintln(out, ui.LabelValue("Time limit", time.Until(*q.ExpiresAt).Round(time.Minute)))
			}
			fmt.Fprintln(out, ui.LabelValue("Reward", fmt.Sprintf("+%d XP, +%d pts", q.Reward.XP, q.Reward.Points)))
			fmt.Fprintln(out, ui.Warn.Render(fmt.Sprintf("%s Fail and lose %d XP", ui.IconWarn, q.Penalty.XP)))
			return nil
		},
	}
	return cmd
}
