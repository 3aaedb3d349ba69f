// Package bot wires the Discord surface: slash command registration,
// interaction dispatch, button confirm flows and the warrant broadcast.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/Saucepai/BotinBlackDashboard/internal/authz"
	"github.com/Saucepai/BotinBlackDashboard/internal/config"
	"github.com/Saucepai/BotinBlackDashboard/internal/economy"
	"github.com/Saucepai/BotinBlackDashboard/internal/flow"
	"github.com/Saucepai/BotinBlackDashboard/internal/nazar"
)

// confirmTTL bounds how long a buy/sell prompt stays answerable.
const confirmTTL = 60 * time.Second

type commandHandler func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error

// Bot owns the Discord session and routes interactions to handlers.
type Bot struct {
	cfg     config.Bot
	log     *slog.Logger
	econ    *economy.Service
	locator *nazar.Locator
	admin   authz.Policy

	session  *discordgo.Session
	flows    *flow.Store
	commands map[string]commandHandler
	// components routes by customID prefix (the part before the first colon).
	components map[string]commandHandler
	modals     map[string]commandHandler
	// adminOnly lists command names gated behind the admin role policy.
	adminOnly map[string]bool
}

func New(cfg config.Bot, logger *slog.Logger, econ *economy.Service, locator *nazar.Locator) (*Bot, error) {
	if logger == nil {
		logger = slog.Default()
	}
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	b := &Bot{
		cfg:     cfg,
		log:     logger,
		econ:    econ,
		locator: locator,
		admin:   authz.NewRoleSet(cfg.AdminRoleID),
		session: session,
		flows:   flow.NewStore(confirmTTL),
	}
	b.registerHandlers()
	session.AddHandler(b.onInteraction)
	return b, nil
}

func (b *Bot) registerHandlers() {
	b.commands = map[string]commandHandler{
		"inventory":             b.handleInventory,
		"item-search":           b.handleItemSearch,
		"property-store":        b.handlePropertyStore,
		"property-search":       b.handlePropertySearch,
		"nazar-store":           b.handleNazarStore,
		"nazar-location":        b.handleNazarLocation,
		"admin-give-money":      b.handleGiveMoney,
		"admin-remove-money":    b.handleRemoveMoney,
		"admin-add-fines":       b.handleAddFines,
		"admin-remove-fines":    b.handleRemoveFines,
		"admin-remove-warrant":  b.handleRemoveWarrant,
		"admin-give-property":   b.handleGiveProperty,
		"admin-take-property":   b.handleTakeProperty,
		"admin-create-property": b.handleCreateProperty,
		"admin-delete-property": b.handleDeleteProperty,
		"admin-property-key":    b.handlePropertyKey,
		"inventory-update":      b.handleInventoryUpdate,
	}
	b.components = map[string]commandHandler{
		"store-page":       b.handleStorePage,
		"nazar-page":       b.handleNazarPage,
		"property-buy":     b.handlePropertyBuyButton,
		"property-sell":    b.handlePropertySellButton,
		"property-confirm": b.handlePropertyConfirm,
		"property-cancel":  b.handlePropertyCancel,
		"item-buy":         b.handleItemBuyButton,
		"item-sell":        b.handleItemSellButton,
		"nazar-buy":        b.handleNazarBuy,
		"nazar-sell":       b.handleNazarSell,
	}
	b.modals = map[string]commandHandler{
		"item-quantity": b.handleItemQuantityModal,
	}
	b.adminOnly = map[string]bool{
		"admin-give-money":      true,
		"admin-remove-money":    true,
		"admin-add-fines":       true,
		"admin-remove-fines":    true,
		"admin-remove-warrant":  true,
		"admin-give-property":   true,
		"admin-take-property":   true,
		"admin-create-property": true,
		"admin-delete-property": true,
		"admin-property-key":    true,
		"inventory-update":      true,
	}
}

// Start opens the gateway connection and registers the slash commands.
func (b *Bot) Start(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord gateway: %w", err)
	}
	appID := b.session.State.User.ID
	if _, err := b.session.ApplicationCommandBulkOverwrite(appID, b.cfg.GuildID, commandDefinitions()); err != nil {
		return fmt.Errorf("register slash commands: %w", err)
	}
	b.econ.SetWarrantNotifier(&warrantAnnouncer{
		session:   b.session,
		channelID: b.cfg.WarrantChannelID,
		log:       b.log,
	})
	go b.sweepFlows(ctx)
	b.log.Info("bot ready", "guild", b.cfg.GuildID, "commands", len(b.commands))
	return nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) sweepFlows(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := b.flows.Sweep(); n > 0 {
				b.log.Debug("swept expired confirm sessions", "count", n)
			}
		}
	}
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("interaction handler panicked", "panic", r)
			respondEphemeral(s, i, "Something went wrong.")
		}
	}()

	var name string
	var handler commandHandler
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name = i.ApplicationCommandData().Name
		handler = b.commands[name]
		if b.adminOnly[name] && !b.admin.Allowed(actorRoles(i)) {
			respondEphemeral(s, i, "You are not allowed to use this command.")
			return
		}
	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		if !ownsComponent(customID, actorFrom(i).ID) {
			respondEphemeral(s, i, "This ain't your transaction, partner.")
			return
		}
		name = componentPrefix(customID)
		handler = b.components[name]
	case discordgo.InteractionModalSubmit:
		customID := i.ModalSubmitData().CustomID
		if !ownsComponent(customID, actorFrom(i).ID) {
			respondEphemeral(s, i, "This ain't your transaction, partner.")
			return
		}
		name = componentPrefix(customID)
		handler = b.modals[name]
	default:
		return
	}
	if handler == nil {
		b.log.Warn("no handler for interaction", "name", name)
		return
	}
	// Discord abandons interactions that take too long anyway.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := handler(ctx, s, i); err != nil {
		b.log.Error("interaction failed", "name", name, "user", actorFrom(i).ID, "err", err)
		respondEphemeral(s, i, userMessage(err))
	}
}

// Custom IDs are "prefix:ownerID[:arg]". The owner segment pins every
// rendered button and modal to the user who invoked the command; anyone
// else's click is rejected before a handler runs.

func buildCustomID(prefix, ownerID, arg string) string {
	id := prefix + ":" + ownerID
	if arg != "" {
		id += ":" + arg
	}
	return id
}

// componentPrefix is the routing key of a customID: everything before
// the first colon.
func componentPrefix(customID string) string {
	prefix, _, _ := strings.Cut(customID, ":")
	return prefix
}

// componentOwner is the user ID a component belongs to.
func componentOwner(customID string) string {
	_, rest, _ := strings.Cut(customID, ":")
	owner, _, _ := strings.Cut(rest, ":")
	return owner
}

// componentArg returns the payload of a customID: everything after the
// owner segment.
func componentArg(customID string) string {
	_, rest, _ := strings.Cut(customID, ":")
	_, arg, _ := strings.Cut(rest, ":")
	return arg
}

func ownsComponent(customID, userID string) bool {
	return componentOwner(customID) == userID
}

func actorFrom(i *discordgo.InteractionCreate) economy.Actor {
	var u *discordgo.User
	if i.Member != nil {
		u = i.Member.User
	} else {
		u = i.User
	}
	if u == nil {
		return economy.Actor{Source: "Bot", GuildID: i.GuildID}
	}
	return economy.Actor{
		ID:       u.ID,
		Username: u.Username,
		Source:   "Bot",
		GuildID:  i.GuildID,
	}
}

func actorRoles(i *discordgo.InteractionCreate) []string {
	if i.Member == nil {
		return nil
	}
	return i.Member.Roles
}
