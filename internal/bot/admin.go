package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/Saucepai/BotinBlackDashboard/internal/economy"
)

func (b *Bot) handleGiveMoney(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	opts := optionMap(i)
	target := userOption(opts, s, "user")
	field := stringOption(opts, "account")
	amount := intOption(opts, "amount")

	change, err := b.econ.AdjustBalance(
		ctx, actorFrom(i), "admin-give-money", target.ID, field, amount)
	if err != nil {
		return err
	}
	return respondEmbed(s, i, &discordgo.MessageEmbed{
		Title: "Balance Updated",
		Color: colorGreen,
		Description: fmt.Sprintf("Added %s to %s's %s.\n%s: %s → %s",
			money(amount), target.Username, field, field, money(change.Before), money(change.After)),
	}, nil)
}

func (b *Bot) handleRemoveMoney(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	opts := optionMap(i)
	target := userOption(opts, s, "user")
	field := stringOption(opts, "account")
	amount := intOption(opts, "amount")

	change, err := b.econ.AdjustBalance(
		ctx, actorFrom(i), "admin-remove-money", target.ID, field, -amount)
	if err != nil {
		return err
	}
	return respondEmbed(s, i, &discordgo.MessageEmbed{
		Title: "Balance Updated",
		Color: colorRed,
		Description: fmt.Sprintf("Removed %s from %s's %s.\n%s: %s → %s",
			money(amount), target.Username, field, field, money(change.Before), money(change.After)),
	}, nil)
}

func (b *Bot) handleAddFines(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	opts := optionMap(i)
	target := userOption(opts, s, "user")
	amount := intOption(opts, "amount")

	result, err := b.econ.AddFine(ctx, actorFrom(i), target.ID, amount)
	if err != nil {
		return err
	}
	desc := fmt.Sprintf("%s now owes %s in fines.", target.Username, money(result.FinesAfter))
	if result.WarrantIssued {
		desc += "\nA warrant has been issued."
	}
	return respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "Fines Added",
		Color:       colorRed,
		Description: desc,
	}, nil)
}

func (b *Bot) handleRemoveFines(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	opts := optionMap(i)
	target := userOption(opts, s, "user")
	amount := intOption(opts, "amount")

	result, err := b.econ.RemoveFine(ctx, actorFrom(i), target.ID, amount)
	if err != nil {
		return err
	}
	desc := fmt.Sprintf("%s now owes %s in fines.", target.Username, money(result.FinesAfter))
	if result.WarrantCleared {
		desc += "\nTheir warrant has been lifted."
	}
	return respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "Fines Removed",
		Color:       colorGreen,
		Description: desc,
	}, nil)
}

func (b *Bot) handleRemoveWarrant(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	opts := optionMap(i)
	target := userOption(opts, s, "user")

	cleared, err := b.econ.ClearWarrant(ctx, actorFrom(i), target.ID)
	if err != nil {
		return err
	}
	if !cleared {
		respondEphemeral(s, i, fmt.Sprintf("%s has no active warrant.", target.Username))
		return nil
	}
	return respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "Warrant Cleared",
		Color:       colorGreen,
		Description: fmt.Sprintf("The warrant on %s has been lifted.", target.Username),
	}, nil)
}

func (b *Bot) handleGiveProperty(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	opts := optionMap(i)
	target := userOption(opts, s, "user")
	name := stringOption(opts, "property")
	actor := actorFrom(i)

	p, err := b.econ.GiveProperty(ctx, actor, target.ID, name, actor.Username)
	if err != nil {
		return err
	}
	return respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "Property Assigned",
		Color:       colorGold,
		Description: fmt.Sprintf("%s now holds the deed to **%s**.", target.Username, p.Name),
	}, nil)
}

func (b *Bot) handleTakeProperty(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	opts := optionMap(i)
	target := userOption(opts, s, "user")
	name := stringOption(opts, "property")

	p, err := b.econ.RemoveProperty(ctx, actorFrom(i), target.ID, name)
	if err != nil {
		return err
	}
	return respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "Property Reclaimed",
		Color:       colorRed,
		Description: fmt.Sprintf("**%s** has been taken back from %s.", p.Name, target.Username),
	}, nil)
}

func (b *Bot) handleCreateProperty(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	opts := optionMap(i)
	in := economy.CreatePropertyInput{
		Name:     stringOption(opts, "name"),
		Price:    intOption(opts, "price"),
		Type:     stringOption(opts, "type"),
		Location: stringOption(opts, "location"),
		Details:  stringOption(opts, "details"),
	}
	p, err := b.econ.CreateProperty(ctx, actorFrom(i), in)
	if err != nil {
		return err
	}
	return respondEmbed(s, i, &discordgo.MessageEmbed{
		Title: "Property Listed",
		Color: colorGold,
		Description: fmt.Sprintf("**%s** (%s) is on the market for %s.",
			p.Name, p.Type, money(p.Price)),
	}, nil)
}

func (b *Bot) handleDeleteProperty(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	opts := optionMap(i)
	name := stringOption(opts, "property")

	if err := b.econ.DeleteProperty(ctx, actorFrom(i), name); err != nil {
		return err
	}
	return respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "Property Deleted",
		Color:       colorRed,
		Description: fmt.Sprintf("**%s** has been removed from the marketplace.", name),
	}, nil)
}

func (b *Bot) handlePropertyKey(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	opts := optionMap(i)
	name := stringOption(opts, "property")

	p, err := b.econ.GetProperty(ctx, name)
	if err != nil {
		return err
	}
	respondEphemeral(s, i, fmt.Sprintf("Key for **%s**: `%s`", p.Name, p.Key))
	return nil
}

func (b *Bot) handleInventoryUpdate(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	opts := optionMap(i)
	target := userOption(opts, s, "user")
	column := stringOption(opts, "column")
	item := stringOption(opts, "item")
	action := stringOption(opts, "action")
	qty := int(intOption(opts, "quantity"))
	if qty == 0 {
		qty = 1
	}

	_, applied, err := b.econ.UpdateInventory(
		ctx, actorFrom(i), target.ID, column, item, action, qty)
	if err != nil {
		return err
	}
	verb := "Added"
	if action == "remove" {
		verb = "Removed"
	}
	return respondEmbed(s, i, &discordgo.MessageEmbed{
		Title: "Inventory Updated",
		Color: colorGold,
		Description: fmt.Sprintf("%s %dx %s (%s) for %s.",
			verb, applied, item, column, target.Username),
	}, nil)
}
