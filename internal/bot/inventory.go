package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/Saucepai/BotinBlackDashboard/internal/economy"
)

func (b *Bot) handleInventory(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	actor := actorFrom(i)
	targetID := actor.ID
	targetName := actor.Username

	if target := userOption(optionMap(i), s, "user"); target != nil && target.ID != actor.ID {
		if !b.admin.Allowed(actorRoles(i)) {
			respondEphemeral(s, i, "Only admins can view someone else's inventory.")
			return nil
		}
		targetID, targetName = target.ID, target.Username
	}

	a, err := b.econ.GetAccount(ctx, targetID)
	if err != nil {
		return err
	}
	return respondEmbed(s, i, inventoryEmbed(targetName, economy.BuildInventoryView(a)), nil)
}

func inventoryEmbed(username string, v economy.InventoryView) *discordgo.MessageEmbed {
	const none = "None"
	blank := func(s string) string {
		if s == "" {
			return none
		}
		return s
	}
	return &discordgo.MessageEmbed{
		Title: username + "'s Inventory",
		Color: colorGold,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "Money",
				Value: fmt.Sprintf("Cash: %s\nBank: %s\nStash: %s\nTotal: %s",
					money(v.Cash), money(v.Bank), money(v.Stash), money(v.Total)),
				Inline: true,
			},
			{Name: "Coupons", Value: fmt.Sprintf("%d", v.Coupons), Inline: true},
			{Name: "Horses", Value: economy.FormatCounts(v.Horses, none), Inline: false},
			{Name: "Guns", Value: economy.FormatCounts(v.Guns, none), Inline: false},
			{Name: "Consumables", Value: economy.FormatCounts(v.Consumables, none), Inline: false},
			{Name: "Treasure", Value: economy.FormatCounts(v.Treasure, none), Inline: false},
			{Name: "Properties", Value: blank(v.Properties), Inline: false},
			{Name: "Licenses", Value: blank(v.Licenses), Inline: true},
			{Name: "Other", Value: blank(v.Other), Inline: true},
		},
	}
}
