package bot

import (
	"errors"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"github.com/Saucepai/BotinBlackDashboard/internal/economy"
	"github.com/Saucepai/BotinBlackDashboard/internal/flow"
)

const (
	colorGold  = 0xc9a227
	colorRed   = 0x8a1f1f
	colorGreen = 0x2f7d46
)

// money renders a dollar amount the way the old bulletin boards did.
func money(v int64) string {
	return "$" + strconv.FormatInt(v, 10)
}

// userMessage turns a domain error into the line shown to the player.
// Unknown errors get a generic message; the real cause is already in the
// logs.
func userMessage(err error) string {
	switch {
	case errors.Is(err, economy.ErrUserNotFound):
		return "No ledger entry found for that user."
	case errors.Is(err, economy.ErrPropertyNotFound):
		return "No property by that name."
	case errors.Is(err, economy.ErrItemNotFound):
		return "No item by that name."
	case errors.Is(err, economy.ErrInsufficientFunds):
		return "Not enough money across cash and bank."
	case errors.Is(err, economy.ErrInsufficientFines):
		return "That would remove more fines than the user owes."
	case errors.Is(err, economy.ErrInsufficientItems):
		return "You don't own enough of that item."
	case errors.Is(err, economy.ErrAlreadyOwned):
		return "That property already has an owner."
	case errors.Is(err, economy.ErrNotOwner):
		return "That user does not own this property."
	case errors.Is(err, economy.ErrStillOwned):
		return "The property must be unowned before it can be deleted."
	case errors.Is(err, economy.ErrLimitExceeded):
		return "You already own the maximum for that category."
	case errors.Is(err, economy.ErrInvalidField):
		return "That balance field does not exist."
	case errors.Is(err, economy.ErrInvalidColumn):
		return "That inventory column does not exist."
	case errors.Is(err, flow.ErrNoSession):
		return "This prompt isn't yours to answer."
	case errors.Is(err, flow.ErrExpired):
		return "This prompt expired. Run the command again."
	}
	return "Something went wrong."
}

func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func respondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		},
	})
}

// updateMessage swaps the interaction's own message in place, used by
// pagination and confirm prompts.
func updateMessage(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) error {
	if components == nil {
		components = []discordgo.MessageComponent{}
	}
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		},
	})
}

// optionMap flattens an interaction's options for lookup by name.
func optionMap(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	opts := i.ApplicationCommandData().Options
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, o := range opts {
		m[o.Name] = o
	}
	return m
}

func stringOption(m map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	if o, ok := m[name]; ok {
		return o.StringValue()
	}
	return ""
}

func intOption(m map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) int64 {
	if o, ok := m[name]; ok {
		return o.IntValue()
	}
	return 0
}

func userOption(m map[string]*discordgo.ApplicationCommandInteractionDataOption, s *discordgo.Session, name string) *discordgo.User {
	if o, ok := m[name]; ok {
		return o.UserValue(s)
	}
	return nil
}
