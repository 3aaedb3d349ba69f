package config

import "github.com/kelseyhightower/envconfig"

// Bot holds the Discord process configuration.
type Bot struct {
	DatabaseURL      string `envconfig:"DATABASE_URL" required:"true"`
	DiscordToken     string `envconfig:"DISCORD_TOKEN" required:"true"`
	GuildID          string `envconfig:"GUILD_ID"`
	AdminRoleID      string `envconfig:"ADMIN_ROLE_ID" required:"true"`
	WarrantChannelID string `envconfig:"WARRANT_CHANNEL_ID"`
	NazarWebhookURL  string `envconfig:"NAZAR_WEBHOOK_URL"`
	NazarCron        string `envconfig:"NAZAR_CRON" default:"0 14 * * *"`
	AuditLogPath     string `envconfig:"AUDIT_LOG_PATH" default:"logs/admin.log"`
}

// Dashboard holds the web process configuration.
type Dashboard struct {
	DatabaseURL   string `envconfig:"DATABASE_URL" required:"true"`
	Port          int    `envconfig:"PORT" default:"3000"`
	SessionSecret string `envconfig:"SESSION_SECRET" required:"true"`
	PasswordHash  string `envconfig:"DASHBOARD_PASSWORD_HASH" required:"true"`
	AuditLogPath  string `envconfig:"AUDIT_LOG_PATH" default:"logs/admin.log"`
}

// CLI holds the operator tool configuration.
type CLI struct {
	DashboardURL string `envconfig:"FRONTIER_DASHBOARD_URL" default:"http://localhost:3000"`
}

func LoadBot() (Bot, error) {
	var cfg Bot
	err := envconfig.Process("", &cfg)
	return cfg, err
}

func LoadDashboard() (Dashboard, error) {
	var cfg Dashboard
	err := envconfig.Process("", &cfg)
	return cfg, err
}

func LoadCLI() CLI {
	var cfg CLI
	_ = envconfig.Process("", &cfg)
	return cfg
}
