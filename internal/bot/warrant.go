package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/Saucepai/BotinBlackDashboard/internal/economy"
)

// warrantAnnouncer posts the public bulletin when a fine total crosses
// the warrant threshold.
type warrantAnnouncer struct {
	session   *discordgo.Session
	channelID string
	log       *slog.Logger
}

func (w *warrantAnnouncer) WarrantIssued(_ context.Context, notice economy.WarrantNotice) {
	if w.channelID == "" {
		return
	}
	name := notice.Username
	if name == "" {
		name = notice.UserID
	}
	_, err := w.session.ChannelMessageSendEmbed(w.channelID, &discordgo.MessageEmbed{
		Title: "WANTED",
		Color: colorRed,
		Description: fmt.Sprintf("A warrant has been issued for **%s**.\nOutstanding fines: %s",
			name, money(notice.TotalFines)),
	})
	if err != nil {
		w.log.Error("warrant broadcast failed", "user", notice.UserID, "err", err)
	}
}
