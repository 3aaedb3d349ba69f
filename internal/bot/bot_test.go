package bot

import (
	"errors"
	"fmt"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/Saucepai/BotinBlackDashboard/internal/economy"
	"github.com/Saucepai/BotinBlackDashboard/internal/flow"
)

func TestComponentRouting(t *testing.T) {
	tests := []struct {
		customID string
		prefix   string
		owner    string
		arg      string
	}{
		{"property-buy:42:Valentine Ranch", "property-buy", "42", "Valentine Ranch"},
		{"store-page:42:3", "store-page", "42", "3"},
		{"item-quantity:42:buy:Hunting Knife", "item-quantity", "42", "buy:Hunting Knife"},
		{"property-cancel:42", "property-cancel", "42", ""},
	}
	for _, tt := range tests {
		if got := buildCustomID(tt.prefix, tt.owner, tt.arg); got != tt.customID {
			t.Errorf("buildCustomID(%q, %q, %q) = %q, want %q", tt.prefix, tt.owner, tt.arg, got, tt.customID)
		}
		if got := componentPrefix(tt.customID); got != tt.prefix {
			t.Errorf("componentPrefix(%q) = %q, want %q", tt.customID, got, tt.prefix)
		}
		if got := componentOwner(tt.customID); got != tt.owner {
			t.Errorf("componentOwner(%q) = %q, want %q", tt.customID, got, tt.owner)
		}
		if got := componentArg(tt.customID); got != tt.arg {
			t.Errorf("componentArg(%q) = %q, want %q", tt.customID, got, tt.arg)
		}
	}
}

func TestOwnsComponent(t *testing.T) {
	id := buildCustomID("store-page", "42", "1")
	if !ownsComponent(id, "42") {
		t.Fatalf("invoker rejected from own component %q", id)
	}
	// Anyone else clicking the invoker's buttons is turned away.
	if ownsComponent(id, "99") {
		t.Fatalf("other user accepted on %q", id)
	}
	if ownsComponent("store-page:1", "1") {
		t.Fatalf("malformed component %q treated as owned", "store-page:1")
	}
	if ownsComponent(buildCustomID("property-confirm", "42", "Ranch"), "") {
		t.Fatalf("empty user accepted")
	}
}

func TestUserMessageMapsDomainErrors(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{economy.ErrUserNotFound, "No ledger entry found for that user."},
		{fmt.Errorf("buy: %w", economy.ErrInsufficientFunds), "Not enough money across cash and bank."},
		{economy.ErrLimitExceeded, "You already own the maximum for that category."},
		{flow.ErrNoSession, "This prompt isn't yours to answer."},
		{flow.ErrExpired, "This prompt expired. Run the command again."},
		{errors.New("pq: connection refused"), "Something went wrong."},
	}
	for _, tt := range tests {
		if got := userMessage(tt.err); got != tt.want {
			t.Errorf("userMessage(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestMoney(t *testing.T) {
	if got := money(0); got != "$0" {
		t.Fatalf("money(0) = %q", got)
	}
	if got := money(1250); got != "$1250" {
		t.Fatalf("money(1250) = %q", got)
	}
	if got := money(-40); got != "$-40" {
		t.Fatalf("money(-40) = %q", got)
	}
}

func TestStoreViewPaging(t *testing.T) {
	props := make([]economy.Property, 9)
	for i := range props {
		props[i] = economy.Property{Name: fmt.Sprintf("Lot %d", i), Price: int64(100 * i)}
	}

	embed, components := storeView(props, 0, "42")
	if len(embed.Fields) != storePageSize {
		t.Fatalf("page 0 has %d fields, want %d", len(embed.Fields), storePageSize)
	}
	// 4 buy/sell rows plus a nav row.
	if len(components) != storePageSize+1 {
		t.Fatalf("page 0 has %d component rows, want %d", len(components), storePageSize+1)
	}
	if embed.Footer.Text != "Page 1 of 3" {
		t.Fatalf("footer = %q", embed.Footer.Text)
	}
	// Every button belongs to the user who opened the store.
	for _, row := range components {
		for _, c := range row.(discordgo.ActionsRow).Components {
			id := c.(discordgo.Button).CustomID
			if componentOwner(id) != "42" {
				t.Fatalf("button %q not owned by invoker", id)
			}
		}
	}

	embed, _ = storeView(props, 2, "42")
	if len(embed.Fields) != 1 {
		t.Fatalf("last page has %d fields, want 1", len(embed.Fields))
	}

	// Out-of-range pages clamp instead of panicking.
	embed, _ = storeView(props, 99, "42")
	if embed.Footer.Text != "Page 3 of 3" {
		t.Fatalf("clamped footer = %q", embed.Footer.Text)
	}
	embed, _ = storeView(props, -5, "42")
	if embed.Footer.Text != "Page 1 of 3" {
		t.Fatalf("clamped footer = %q", embed.Footer.Text)
	}
}

func TestItemColumnFallsBackToOther(t *testing.T) {
	if col := itemColumn(economy.StoreItem{Type: "pistol"}); col != "Pistol" {
		t.Fatalf("pistol column = %q", col)
	}
	if col := itemColumn(economy.StoreItem{Type: "wagon"}); col != "Other" {
		t.Fatalf("wagon column = %q", col)
	}
}

func TestInventoryEmbedSections(t *testing.T) {
	v := economy.InventoryView{
		Cash: 10, Bank: 5, Stash: 1, Total: 16,
		Horses: []economy.ItemCount{{Name: "Mustang", Count: 2}},
	}
	embed := inventoryEmbed("Dutch", v)
	if embed.Title != "Dutch's Inventory" {
		t.Fatalf("title = %q", embed.Title)
	}
	var horses, properties string
	for _, f := range embed.Fields {
		switch f.Name {
		case "Horses":
			horses = f.Value
		case "Properties":
			properties = f.Value
		}
	}
	if horses != "Mustang (2x)" {
		t.Fatalf("horses field = %q", horses)
	}
	if properties != "None" {
		t.Fatalf("empty properties field = %q", properties)
	}
}
