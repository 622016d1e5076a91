package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"lifequest/internal/engine"
	"lifequest/internal/ui"
)

func newShopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shop",
		Short: "Browse the shop",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			pts := svc.Points()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconShop, "Shop"))
			fmt.Fprintln(out, ui.LabelValue("Your points", pts.Total))
			fmt.Fprintln(out, "")

			lastKind := ""
			for _, it := range engine.ShopItems() {
				if it.Kind != lastKind {
					lastKind = it.Kind
					fmt.Fprintln(out, ui.H2.Render(shopSection(it.Kind)))
				}
				cost := ui.Gold.Render(fmt.Sprintf("%d pts", it.Cost))
				if it.Cost > pts.Total {
					cost = ui.Muted.Render(fmt.Sprintf("%d pts", it.Cost))
				}
				fmt.Fprintf(out, "- %s %s — %s %s %s\n", it.Icon, it.Name, it.Description, cost, ui.Muted.Render("(id "+it.ID+")"))
			}
			return nil
		},
	}
	return cmd
}

func shopSection(kind string) string {
	switch kind {
	case engine.KindBoost:
		return ui.IconPotion + " Boosts"
	case engine.KindInstant:
		return ui.IconHeart + " Potions"
	case engine.KindDecoration:
		return "🎨 Decorations"
	default:
		return kind
	}
}

func newBuyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buy <item_id>",
		Short: "Purchase a shop item with points",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("item_id is required")
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

			res, err := svc.Buy(ctx, args[0])
			if err != nil {
				return err
			}
			pts := svc.Points()
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render(res.Item.Icon+" "+res.Message),
				ui.Muted.Render(fmt.Sprintf("(-%d pts)", res.Item.Cost)),
				ui.Muted.Render(fmt.Sprintf("%d pts left", pts.Total)))
			return nil
		},
	}
	return cmd
}

func newUseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use <item_id>",
		Short: "Use an item from your inventory",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("item_id is required")
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

			res, err := svc.UseItem(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(res.Item.Icon+" "+res.Message))
			return nil
		},
	}
	return cmd
}

func newEquipCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "equip <item_id>",
		Short: "Equip an owned decoration",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("item_id is required")
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

			item, err := svc.Equip(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render(item.Icon+" Equipped"), item.Name, ui.Muted.Render("("+item.Slot+")"))
			return nil
		},
	}
	return cmd
}

func newClassCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "class [name]",
		Short: "Show or set your player class",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			if len(args) == 0 {
				p := svc.Player()
				fmt.Fprintln(out, ui.LabelValue("Class", p.PlayerClass))
				fmt.Fprintln(out, ui.LabelValue("Rank", rankLine(svc.Rank())))
				return nil
			}

			if err := svc.SetClass(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %s — now ranked %s\n", ui.Good.Render(ui.IconDone+" Class set:"), args[0], ui.Gold.Render(svc.Rank().String()))
			return nil
		},
	}
	return cmd
}
