package auth

import (
	"log/slog"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"nations-server/internal/auth/providers"
	"nations-server/internal/shared/config"
)

type OAuthConfig struct {
	GoogleProvider    *providers.GoogleProvider
	DiscordProvider   *providers.DiscordProvider
	GoogleConfigured  bool
	DiscordConfigured bool
}

func InitOAuth() *OAuthConfig {
	cfg := config.GlobalConfig
	logger := slog.With("component", "oauth", "operation", "init")
	logger.Debug("Initializing OAuth configurations")

	googleConfig := &oauth2.Config{
		ClientID:     cfg.OAuth.Google.ClientID,
		ClientSecret: cfg.OAuth.Google.ClientSecret,
		RedirectURL:  cfg.OAuth.Google.RedirectURL,
		Scopes:       cfg.OAuth.Google.Scopes,
		Endpoint:     google.Endpoint,
	}

	discordConfig := &oauth2.Config{
		ClientID:     cfg.OAuth.Discord.ClientID,
		ClientSecret: cfg.OAuth.Discord.ClientSecret,
		RedirectURL:  cfg.OAuth.Discord.RedirectURL,
		Scopes:       cfg.OAuth.Discord.Scopes,
		Endpoint:     providers.DiscordEndpoint,
	}

	googleConfigured := cfg.GoogleOAuthConfigured()
	discordConfigured := cfg.DiscordOAuthConfigured()

	logger.Info("OAuth configuration completed",
		"google_configured", googleConfigured,
		"discord_configured", discordConfigured,
	)

	if !googleConfigured {
		logger.Warn("Google OAuth not configured - missing client credentials")
	}
	if !discordConfigured {
		logger.Warn("Discord OAuth not configured - missing client credentials")
	}

	return &OAuthConfig{
		GoogleProvider:    providers.NewGoogleProvider(googleConfig),
		DiscordProvider:   providers.NewDiscordProvider(discordConfig),
		GoogleConfigured:  googleConfigured,
		DiscordConfigured: discordConfigured,
	}
}
