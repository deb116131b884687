package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/serverside-ltd/portal-api/config"
	"github.com/serverside-ltd/portal-api/internal/adapters/discord"
	"github.com/serverside-ltd/portal-api/internal/adapters/redisstore"
	"github.com/serverside-ltd/portal-api/internal/adapters/thumbnails"
	"github.com/serverside-ltd/portal-api/internal/data"
	"github.com/serverside-ltd/portal-api/internal/ports"
	"github.com/serverside-ltd/portal-api/internal/service"
	"github.com/serverside-ltd/portal-api/internal/tokens"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth    *service.AuthService
	Games   *service.GameService
	Players *service.PlayerService
	Users   *service.UserService
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices wires adapters and repositories into the service layer. The
// user-store backend is selected here and nowhere else; everything downstream
// sees only ports.UserStore.
func NewServices(deps *ServiceDeps) (*ServiceContainer, error) {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	gateway, err := discord.NewClient(discord.Config{
		ClientID:       cfg.Auth.Discord.ClientID,
		ClientSecret:   cfg.Auth.Discord.ClientSecret,
		RedirectURL:    cfg.Auth.Discord.RedirectURL,
		GuildID:        cfg.Auth.Discord.GuildID,
		AllowedRoleIDs: cfg.Auth.Discord.AllowedRoleIDs,
		BotToken:       cfg.Auth.Discord.BotToken,
		APIBaseURL:     cfg.Auth.Discord.APIBaseURL,
		CDNBaseURL:     cfg.Auth.Discord.CDNBaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("init discord client: %w", err)
	}

	issuer, err := tokens.NewIssuer([]byte(cfg.Auth.Token.SigningSecret))
	if err != nil {
		return nil, fmt.Errorf("init token issuer: %w", err)
	}

	thumbs, err := thumbnails.NewClient(thumbnails.Config{})
	if err != nil {
		return nil, fmt.Errorf("init thumbnails client: %w", err)
	}

	userStore, err := selectUserStore(deps)
	if err != nil {
		return nil, err
	}

	return &ServiceContainer{
		Auth: service.NewAuthService(service.AuthServiceOptions{
			Gateway: gateway,
			Users:   userStore,
			Tokens:  issuer,
		}),
		Games: service.NewGameService(service.GameServiceOptions{
			Games:      data.NewGameRepo(deps.DB),
			Thumbnails: thumbs,
			Logger:     logger,
		}),
		Players: service.NewPlayerService(service.PlayerServiceOptions{
			Players:    data.NewPlayerRepo(deps.DB),
			Thumbnails: thumbs,
		}),
		Users: service.NewUserService(service.UserServiceOptions{
			Users: userStore,
		}),
	}, nil
}

//nolint:ireturn // the whole point is returning the port, not a concrete store.
func selectUserStore(deps *ServiceDeps) (ports.UserStore, error) {
	if deps.Config.UsesRedisStore() {
		if deps.RedisClient == nil {
			return nil, fmt.Errorf("redis user store selected but no redis client provided")
		}
		return redisstore.NewUserStore(deps.RedisClient), nil
	}
	if deps.DB == nil {
		return nil, fmt.Errorf("postgres user store selected but no database provided")
	}
	return data.NewUserRepo(deps.DB), nil
}
