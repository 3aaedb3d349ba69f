package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/Saucepai/BotinBlackDashboard/internal/economy"
)

const storePageSize = 4

// propertyFlow is the payload of a pending buy/sell confirmation.
type propertyFlow struct {
	Action string
	Name   string
}

func (b *Bot) handlePropertyStore(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	props, err := b.econ.ListProperties(ctx)
	if err != nil {
		return err
	}
	if len(props) == 0 {
		respondEphemeral(s, i, "Nothing is on the market right now.")
		return nil
	}
	embed, components := storeView(props, 0, actorFrom(i).ID)
	return respondEmbed(s, i, embed, components)
}

func (b *Bot) handleStorePage(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	page, err := strconv.Atoi(componentArg(i.MessageComponentData().CustomID))
	if err != nil {
		return fmt.Errorf("bad page custom id: %w", err)
	}
	props, propErr := b.econ.ListProperties(ctx)
	if propErr != nil {
		return propErr
	}
	embed, components := storeView(props, page, actorFrom(i).ID)
	return updateMessage(s, i, embed, components)
}

func (b *Bot) handlePropertySearch(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	query := economy.NormalizeName(stringOption(optionMap(i), "query"))
	props, err := b.econ.ListProperties(ctx)
	if err != nil {
		return err
	}
	var matches []economy.Property
	for _, p := range props {
		if strings.Contains(economy.NormalizeName(p.Name), query) {
			matches = append(matches, p)
		}
	}
	if len(matches) == 0 {
		respondEphemeral(s, i, "No properties match that name.")
		return nil
	}
	embed, components := storeView(matches, 0, actorFrom(i).ID)
	return respondEmbed(s, i, embed, components)
}

func storeView(props []economy.Property, page int, ownerID string) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	pages := (len(props) + storePageSize - 1) / storePageSize
	if page < 0 {
		page = 0
	}
	if page >= pages {
		page = pages - 1
	}
	start := page * storePageSize
	end := start + storePageSize
	if end > len(props) {
		end = len(props)
	}

	embed := &discordgo.MessageEmbed{
		Title: "Property Marketplace",
		Color: colorGold,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Page %d of %d", page+1, pages),
		},
	}
	var components []discordgo.MessageComponent
	for _, p := range props[start:end] {
		status := "For sale"
		if p.Owned() {
			status = "Owned by " + p.Owner
		}
		detail := fmt.Sprintf("%s · %s · %s\n%s", money(p.Price), p.Type, status, p.Details)
		if p.Location != "" {
			detail += "\nLocation: " + p.Location
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  p.Name,
			Value: detail,
		})
		components = append(components, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Buy " + p.Name,
					Style:    discordgo.SuccessButton,
					CustomID: buildCustomID("property-buy", ownerID, p.Name),
					Disabled: p.Owned(),
				},
				discordgo.Button{
					Label:    "Sell " + p.Name,
					Style:    discordgo.DangerButton,
					CustomID: buildCustomID("property-sell", ownerID, p.Name),
					Disabled: !p.Owned(),
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
					CustomID: buildCustomID("store-page", ownerID, strconv.Itoa(page-1)),
					Disabled: page == 0,
				},
				discordgo.Button{
					Label:    "Next",
					Style:    discordgo.SecondaryButton,
					CustomID: buildCustomID("store-page", ownerID, strconv.Itoa(page+1)),
					Disabled: page == pages-1,
				},
			},
		})
	}
	return embed, components
}

func (b *Bot) handlePropertyBuyButton(_ context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return b.beginPropertyFlow(s, i, "buy")
}

func (b *Bot) handlePropertySellButton(_ context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return b.beginPropertyFlow(s, i, "sell")
}

func (b *Bot) beginPropertyFlow(s *discordgo.Session, i *discordgo.InteractionCreate, action string) error {
	name := componentArg(i.MessageComponentData().CustomID)
	actor := actorFrom(i)
	b.flows.Begin(i.Message.ID, actor.ID, propertyFlow{Action: action, Name: name})

	verb := "buy"
	if action == "sell" {
		verb = "sell"
	}
	return updateMessage(s, i, &discordgo.MessageEmbed{
		Title:       "Confirm " + economy.CapitalizeWords(verb),
		Color:       colorGold,
		Description: fmt.Sprintf("%s, do you want to %s **%s**?", actor.Username, verb, name),
	}, []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{Label: "Confirm", Style: discordgo.SuccessButton, CustomID: buildCustomID("property-confirm", actor.ID, name)},
				discordgo.Button{Label: "Cancel", Style: discordgo.SecondaryButton, CustomID: buildCustomID("property-cancel", actor.ID, name)},
			},
		},
	})
}

func (b *Bot) handlePropertyConfirm(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	actor := actorFrom(i)
	payload, err := b.flows.Confirm(i.Message.ID, actor.ID)
	if err != nil {
		return err
	}
	pf, ok := payload.(propertyFlow)
	if !ok {
		return fmt.Errorf("unexpected flow payload %T", payload)
	}

	switch pf.Action {
	case "buy":
		purchase, err := b.econ.BuyProperty(ctx, actor, actor.ID, pf.Name)
		if err != nil {
			return err
		}
		return updateMessage(s, i, &discordgo.MessageEmbed{
			Title: "Deed Transferred",
			Color: colorGreen,
			Description: fmt.Sprintf("%s bought **%s** for %s.\nCash: %s · Bank: %s",
				actor.Username, purchase.Property.Name, money(purchase.Property.Price),
				money(purchase.Spend.CashAfter), money(purchase.Spend.BankAfter)),
		}, nil)
	case "sell":
		sale, err := b.econ.SellProperty(ctx, actor, actor.ID, pf.Name)
		if err != nil {
			return err
		}
		return updateMessage(s, i, &discordgo.MessageEmbed{
			Title: "Property Sold",
			Color: colorGreen,
			Description: fmt.Sprintf("%s sold **%s** for %s.\nCash: %s",
				actor.Username, sale.Property.Name, money(sale.Property.Price),
				money(sale.Cash.After)),
		}, nil)
	}
	return fmt.Errorf("unknown flow action %q", pf.Action)
}

func (b *Bot) handlePropertyCancel(_ context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	actor := actorFrom(i)
	if _, err := b.flows.Cancel(i.Message.ID, actor.ID); err != nil {
		return err
	}
	return updateMessage(s, i, &discordgo.MessageEmbed{
		Title:       "Cancelled",
		Color:       colorRed,
		Description: "No deed changed hands.",
	}, nil)
}
