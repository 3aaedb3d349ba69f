package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/Saucepai/BotinBlackDashboard/internal/economy"
)

func (b *Bot) handleItemSearch(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	query := stringOption(optionMap(i), "query")
	items, err := b.econ.SearchItems(ctx, query)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		respondEphemeral(s, i, "The general store doesn't carry anything like that.")
		return nil
	}

	embed := &discordgo.MessageEmbed{
		Title: "General Store",
		Color: colorGold,
	}
	ownerID := actorFrom(i).ID
	var components []discordgo.MessageComponent
	for idx, it := range items {
		detail := fmt.Sprintf("%s · %s", money(it.Price), it.Type)
		if it.Details != "" {
			detail += "\n" + it.Details
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  it.Name,
			Value: detail,
		})
		// Component rows cap out; further matches are list-only.
		if idx < storePageSize {
			components = append(components, discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Buy " + it.Name,
						Style:    discordgo.SuccessButton,
						CustomID: buildCustomID("item-buy", ownerID, it.Name),
					},
					discordgo.Button{
						Label:    "Sell " + it.Name,
						Style:    discordgo.DangerButton,
						CustomID: buildCustomID("item-sell", ownerID, it.Name),
					},
				},
			})
		}
	}
	return respondEmbed(s, i, embed, components)
}

func (b *Bot) handleItemBuyButton(_ context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return quantityModal(s, i, "buy", componentArg(i.MessageComponentData().CustomID))
}

func (b *Bot) handleItemSellButton(_ context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return quantityModal(s, i, "sell", componentArg(i.MessageComponentData().CustomID))
}

func quantityModal(s *discordgo.Session, i *discordgo.InteractionCreate, action, name string) error {
	verb := economy.CapitalizeWords(action)
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: buildCustomID("item-quantity", actorFrom(i).ID, action+":"+name),
			Title:    verb + " " + name,
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    "quantity",
							Label:       "Quantity",
							Style:       discordgo.TextInputShort,
							Placeholder: "1",
							Required:    true,
							MaxLength:   4,
						},
					},
				},
			},
		},
	})
}

func (b *Bot) handleItemQuantityModal(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	data := i.ModalSubmitData()
	action, name, ok := strings.Cut(componentArg(data.CustomID), ":")
	if !ok {
		return fmt.Errorf("bad modal custom id %q", data.CustomID)
	}
	qty, err := strconv.Atoi(strings.TrimSpace(modalInput(data, "quantity")))
	if err != nil || qty < 1 {
		respondEphemeral(s, i, "Quantity must be a positive whole number.")
		return nil
	}

	item, err := b.findItem(ctx, name)
	if err != nil {
		return err
	}
	column := itemColumn(item)
	actor := actorFrom(i)

	switch action {
	case "buy":
		spend, err := b.econ.BuyItem(ctx, actor, actor.ID, item, column, qty)
		if err != nil {
			return err
		}
		return respondEmbed(s, i, &discordgo.MessageEmbed{
			Title: "Purchase Complete",
			Color: colorGreen,
			Description: fmt.Sprintf("%s bought %dx %s for %s.\nCash: %s · Bank: %s",
				actor.Username, qty, item.Name, money(item.Price*int64(qty)),
				money(spend.CashAfter), money(spend.BankAfter)),
		}, nil)
	case "sell":
		change, err := b.econ.SellItem(ctx, actor, actor.ID, item, column, qty)
		if err != nil {
			return err
		}
		return respondEmbed(s, i, &discordgo.MessageEmbed{
			Title: "Sale Complete",
			Color: colorGreen,
			Description: fmt.Sprintf("%s sold %dx %s for %s.\nCash: %s",
				actor.Username, qty, item.Name, money(item.Price*int64(qty)),
				money(change.After)),
		}, nil)
	}
	return fmt.Errorf("unknown item action %q", action)
}

// findItem resolves an exact store item by name.
func (b *Bot) findItem(ctx context.Context, name string) (economy.StoreItem, error) {
	items, err := b.econ.SearchItems(ctx, name)
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

// itemColumn picks the inventory column for a catalog item. Types with
// no matching column (wagons and the like) land in Other.
func itemColumn(item economy.StoreItem) string {
	if col, ok := economy.CategoryColumn(item.Type); ok {
		return col
	}
	return "Other"
}

func modalInput(data discordgo.ModalSubmitInteractionData, customID string) string {
	for _, row := range data.Components {
		ar, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, c := range ar.Components {
			if in, ok := c.(*discordgo.TextInput); ok && in.CustomID == customID {
				return in.Value
			}
		}
	}
	return ""
}
