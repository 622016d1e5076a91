package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"lifequest/internal/engine"
	"lifequest/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show player stats, points and active boosts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			p := svc.Player()
			rank := svc.Rank()
			pts := svc.Points()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Player Status — "+p.Username))
			fmt.Fprintln(out, ui.LabelValue("Level", fmt.Sprintf("%d (%d/%d XP)", p.Level, p.XP, p.MaxXP)))
			fmt.Fprintln(out, ui.LabelValue("Total XP", p.TotalXP))
			fmt.Fprintln(out, ui.LabelValue("Rank", rankLine(rank)))
			fmt.Fprintln(out, ui.LabelValue("Health", fmt.Sprintf("%d/100", p.Health)))
			fmt.Fprintln(out, ui.LabelValue("Motivation", fmt.Sprintf("%d/100", p.Motivation)))
			fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%s %d days", ui.IconFlame, p.Streak)))
			fmt.Fprintln(out, ui.LabelValue("Tasks completed", fmt.Sprintf("%d total, %d today", p.TotalTasksCompleted, p.DailyTasksCompleted)))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render(ui.IconCoin+" Points"))
			fmt.Fprintf(out, "- %s %d %s\n", ui.Key.Render("Available:"), pts.Total, ui.Muted.Render(fmt.Sprintf("(lifetime %d + today %d)", pts.Lifetime, pts.Today)))
			fmt.Fprintf(out, "- %s tasks %d, xp %d, streak %d\n", ui.Key.Render("Today from:"), pts.Breakdown.Tasks, pts.Breakdown.XP, pts.Breakdown.Streak)
			fmt.Fprintln(out, "")

			effects, boosts, err := svc.ActiveBoosts(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.H2.Render(ui.IconBolt+" Active Boosts"))
			if len(effects) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("- none"))
			}
			now := time.Now()
			for _, e := range effects {
				left := e.ExpiresAt.Sub(now).Round(time.Minute)
				fmt.Fprintf(out, "- %s %s\n", e.Name, ui.Muted.Render(fmt.Sprintf("(%s left)", left)))
			}
			if len(effects) > 0 {
				fmt.Fprintf(out, "- %s ×%.2f, task bonus +%.0f%%\n", ui.Key.Render("XP multiplier:"), boosts.XPMultiplier, boosts.TaskBonus*100)
			}

			if len(p.Inventory) > 0 {
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.H2.Render(ui.IconBag+" Inventory"))
				for id, qty := range p.Inventory {
					name := id
					if item, ok := engine.FindItem(id); ok {
						name = item.Icon + " " + item.Name
					}
					fmt.Fprintf(out, "- %s ×%d %s\n", name, qty, ui.Muted.Render("(id "+id+")"))
				}
			}

			if len(p.Decorations) > 0 {
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.H2.Render("🎨 Decorations"))
				for slot, val := range p.Decorations {
					fmt.Fprintf(out, "- %s %s\n", ui.Key.Render(slot+":"), val)
				}
			}
			return nil
		},
	}
	return cmd
}

func rankLine(r engine.RankInfo) string {
	s := ui.Gold.Render(r.String())
	if r.NextThreshold > 0 {
		s += " " + ui.Muted.Render(fmt.Sprintf("(next tier at %d XP)", r.NextThreshold))
	}
	return s
}
