package bot

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"github.com/Saucepai/BotinBlackDashboard/internal/economy"
)

// Nazar purchases always land in the Treasure column, one at a time.
const nazarColumn = "Treasure"

func (b *Bot) handleNazarStore(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	items, err := b.econ.ListNazarItems(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		respondEphemeral(s, i, "Madam Nazar has nothing on her table today.")
		return nil
	}
	embed, components := nazarView(items, 0, actorFrom(i).ID)
	return respondEmbed(s, i, embed, components)
}

func (b *Bot) handleNazarPage(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	page, err := strconv.Atoi(componentArg(i.MessageComponentData().CustomID))
	if err != nil {
		return fmt.Errorf("bad page custom id: %w", err)
	}
	items, itemErr := b.econ.ListNazarItems(ctx)
	if itemErr != nil {
		return itemErr
	}
	embed, components := nazarView(items, page, actorFrom(i).ID)
	return updateMessage(s, i, embed, components)
}

func nazarView(items []economy.StoreItem, page int, ownerID string) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	pages := (len(items) + storePageSize - 1) / storePageSize
	if page < 0 {
		page = 0
	}
	if page >= pages {
		page = pages - 1
	}
	start := page * storePageSize
	end := start + storePageSize
	if end > len(items) {
		end = len(items)
	}

	embed := &discordgo.MessageEmbed{
		Title: "Madam Nazar's Curiosities",
		Color: colorGold,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Page %d of %d", page+1, pages),
		},
	}
	var components []discordgo.MessageComponent
	for _, it := range items[start:end] {
		detail := money(it.Price)
		if it.Details != "" {
			detail += "\n" + it.Details
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  it.Name,
			Value: detail,
		})
		components = append(components, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Acquire " + it.Name,
					Style:    discordgo.SuccessButton,
					CustomID: buildCustomID("nazar-buy", ownerID, it.Name),
				},
				discordgo.Button{
					Label:    "Sell " + it.Name,
					Style:    discordgo.DangerButton,
					CustomID: buildCustomID("nazar-sell", ownerID, it.Name),
				},
			},
		})
	}
	if pages > 1 {
		components = append(components, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Previous",
					Style:    discordgo.SecondaryButton,
					CustomID: buildCustomID("nazar-page", ownerID, strconv.Itoa(page-1)),
					Disabled: page == 0,
				},
				discordgo.Button{
					Label:    "Next",
					Style:    discordgo.SecondaryButton,
					CustomID: buildCustomID("nazar-page", ownerID, strconv.Itoa(page+1)),
					Disabled: page == pages-1,
				},
			},
		})
	}
	return embed, components
}

func (b *Bot) handleNazarBuy(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	item, err := b.findNazarItem(ctx, componentArg(i.MessageComponentData().CustomID))
	if err != nil {
		return err
	}
	actor := actorFrom(i)
	spend, err := b.econ.BuyItem(ctx, actor, actor.ID, item, nazarColumn, 1)
	if err != nil {
		return err
	}
	respondEphemeral(s, i, fmt.Sprintf("You acquired %s for %s. Cash: %s · Bank: %s",
		item.Name, money(item.Price), money(spend.CashAfter), money(spend.BankAfter)))
	return nil
}

func (b *Bot) handleNazarSell(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	item, err := b.findNazarItem(ctx, componentArg(i.MessageComponentData().CustomID))
	if err != nil {
		return err
	}
	actor := actorFrom(i)
	change, err := b.econ.SellItem(ctx, actor, actor.ID, item, nazarColumn, 1)
	if err != nil {
		return err
	}
	respondEphemeral(s, i, fmt.Sprintf("You sold %s for %s. Cash: %s",
		item.Name, money(item.Price), money(change.After)))
	return nil
}

func (b *Bot) findNazarItem(ctx context.Context, name string) (economy.StoreItem, error) {
	items, err := b.econ.ListNazarItems(ctx)
	if err != nil {
		return economy.StoreItem{}, err
	}
	want := economy.NormalizeName(name)
	for _, it := range items {
		if economy.NormalizeName(it.Name) == want {
			return it, nil
		}
	}
	return economy.StoreItem{}, economy.ErrItemNotFound
}

func (b *Bot) handleNazarLocation(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	loc, err := b.locator.CurrentLocation(ctx)
	if err != nil {
		b.log.Warn("nazar scrape failed", "err", err)
		respondEphemeral(s, i, "Couldn't find Madam Nazar right now. Try again later.")
		return nil
	}
	embed := &discordgo.MessageEmbed{
		Title:       "Madam Nazar's Location",
		Color:       colorGold,
		Description: "Madam Nazar is in **" + loc.Region + "** today.",
	}
	if loc.MapImageURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: loc.MapImageURL}
	}
	return respondEmbed(s, i, embed, nil)
}
