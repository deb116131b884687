package config

// DiscordConfig contains the Discord application and guild settings the
// login flow needs.
type DiscordConfig struct {
	ClientID     string `env:"CLIENT_ID,required"`
	ClientSecret string `env:"CLIENT_SECRET,required"`
	RedirectURL  string `env:"REDIRECT_URI"  envDefault:"http://localhost:8080/auth/discord"`

	// GuildID is the guild whose membership gates access.
	GuildID string `env:"GUILD_ID,required"`

	// AllowedRoleIDs is the comma-separated allow-list of role ids. Holding
	// any one of them grants access; the highest-positioned one becomes the
	// stored role name.
	AllowedRoleIDs []string `env:"ALLOWED_ROLE_IDS,required" envSeparator:","`

	// BotToken authorizes the guild member and role lookups.
	BotToken string `env:"BOT_TOKEN,required"`

	// APIBaseURL and CDNBaseURL are overridable for tests.
	APIBaseURL string `env:"API_BASE_URL" envDefault:"https://discord.com/api"`
	CDNBaseURL string `env:"CDN_BASE_URL" envDefault:"https://cdn.discordapp.com"`
}

// TokenConfig contains session token signing configuration.
type TokenConfig struct {
	// SigningSecret is the HMAC secret for session tokens.
	SigningSecret string `env:"TOKEN_SIGNING_SECRET,required"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Discord application and guild settings.
	Discord DiscordConfig `envPrefix:"DISCORD_"`

	// Token signing settings.
	Token TokenConfig

	// SuccessURL is where the browser lands after a successful login; the
	// session token travels in its query string.
	SuccessURL string `env:"AUTH_SUCCESS_URL" envDefault:"http://localhost:3000/loading"`

	// ErrorURL is where rejected logins land, with the reason code in `msg`.
	ErrorURL string `env:"AUTH_ERROR_URL" envDefault:"http://localhost:3000/error"`
}
