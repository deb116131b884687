package discord

// Package discord implements the IdentityGateway port against the Discord
// OAuth2 and guild APIs. The login flow is five strictly sequential calls,
// each gated on the previous result; a failure at any step aborts the whole
// flow immediately with a typed rejection. Nothing is retried.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	domainauth "github.com/serverside-ltd/portal-api/internal/domain/auth"
	"golang.org/x/oauth2"
)

const defaultAPIBaseURL = "https://discord.com/api"

const defaultCDNBaseURL = "https://cdn.discordapp.com"

// memberPageLimit caps the guild member list fetch. Only the first page is
// ever requested; guilds larger than this are a documented limitation.
const memberPageLimit = 1000

// Config holds configuration for the Discord gateway client. Base URLs are
// overridable so tests can point the client at a local fake.
type Config struct {
	ClientID       string
	ClientSecret   string
	RedirectURL    string
	GuildID        string
	AllowedRoleIDs []string
	BotToken       string
	APIBaseURL     string       // optional, defaults to the public Discord API
	CDNBaseURL     string       // optional, defaults to the public Discord CDN
	HTTPClient     *http.Client // optional, defaults to a 30s-timeout client
}

// Client performs the OAuth code exchange and guild-role resolution.
type Client struct {
	oauth      *oauth2.Config
	guildID    string
	allowed    map[string]struct{}
	botToken   string
	apiBase    string
	cdnBase    string
	httpClient *http.Client
}

// NewClient creates a Discord gateway client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("client ID is required")
	}
	if cfg.ClientSecret == "" {
		return nil, errors.New("client secret is required")
	}
	if cfg.RedirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}
	if cfg.GuildID == "" {
		return nil, errors.New("guild ID is required")
	}
	if cfg.BotToken == "" {
		return nil, errors.New("bot token is required")
	}
	if len(cfg.AllowedRoleIDs) == 0 {
		return nil, errors.New("at least one allowed role ID is required")
	}

	apiBase := strings.TrimSuffix(cfg.APIBaseURL, "/")
	if apiBase == "" {
		apiBase = defaultAPIBaseURL
	}
	cdnBase := strings.TrimSuffix(cfg.CDNBaseURL, "/")
	if cdnBase == "" {
		cdnBase = defaultCDNBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	allowed := make(map[string]struct{}, len(cfg.AllowedRoleIDs))
	for _, id := range cfg.AllowedRoleIDs {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			allowed[trimmed] = struct{}{}
		}
	}

	return &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint: oauth2.Endpoint{
				AuthURL:   apiBase + "/oauth2/authorize",
				TokenURL:  apiBase + "/oauth2/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		guildID:    cfg.GuildID,
		allowed:    allowed,
		botToken:   cfg.BotToken,
		apiBase:    apiBase,
		cdnBase:    cdnBase,
		httpClient: httpClient,
	}, nil
}

// --- wire payloads ---

type userPayload struct {
	ID         string `json:"id"`
	GlobalName string `json:"global_name"`
	Email      string `json:"email"`
	Avatar     string `json:"avatar"`
}

type memberPayload struct {
	User  userPayload `json:"user"`
	Roles []string    `json:"roles"`
}

type rolePayload struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// Authenticate exchanges the authorization code and resolves the caller's
// highest allowed guild role. Each step depends on the prior one's output,
// so the calls run strictly in sequence.
func (c *Client) Authenticate(ctx context.Context, code string) (domainauth.Profile, error) {
	if code == "" {
		return domainauth.Profile{}, errors.New("authorization code is required")
	}

	identity, err := c.exchangeAndFetchIdentity(ctx, code)
	if err != nil {
		return domainauth.Profile{}, err
	}

	if err := c.checkGuildMembership(ctx, identity.DiscordID); err != nil {
		return domainauth.Profile{}, err
	}

	heldAllowed, err := c.fetchAllowedRoles(ctx, identity.DiscordID)
	if err != nil {
		return domainauth.Profile{}, err
	}

	highest, err := c.resolveHighestRole(ctx, heldAllowed)
	if err != nil {
		return domainauth.Profile{}, err
	}

	return domainauth.Profile{
		Identity:    identity,
		AvatarURL:   c.avatarURL(identity),
		HighestRole: highest,
	}, nil
}

// exchangeAndFetchIdentity performs steps 1 and 2: the code exchange and the
// bearer-authenticated identity fetch.
func (c *Client) exchangeAndFetchIdentity(ctx context.Context, code string) (domainauth.Identity, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	token, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return domainauth.Identity{}, domainauth.NewFailure(domainauth.FailureExchange,
			fmt.Errorf("exchange code for token: %w", err))
	}

	var user userPayload
	if err := c.getJSON(ctx, c.apiBase+"/users/@me", "Bearer "+token.AccessToken, &user); err != nil {
		return domainauth.Identity{}, domainauth.NewFailure(domainauth.FailureExchange,
			fmt.Errorf("fetch current user: %w", err))
	}

	return domainauth.Identity{
		DiscordID: user.ID,
		Username:  user.GlobalName,
		Email:     user.Email,
		Avatar:    user.Avatar,
	}, nil
}

// checkGuildMembership performs step 4: a single first-page member list
// fetch and a linear membership scan. No pagination beyond the first page.
func (c *Client) checkGuildMembership(ctx context.Context, discordID string) error {
	url := fmt.Sprintf("%s/guilds/%s/members?limit=%d", c.apiBase, c.guildID, memberPageLimit)
	var members []memberPayload
	if err := c.getJSON(ctx, url, "Bot "+c.botToken, &members); err != nil {
		return domainauth.NewFailure(domainauth.FailureGuildCheck,
			fmt.Errorf("fetch guild members: %w", err))
	}
	for _, m := range members {
		if m.User.ID == discordID {
			return nil
		}
	}
	return domainauth.NewFailure(domainauth.FailureNotInGuild, nil)
}

// fetchAllowedRoles performs step 5: fetch the member's role ids and
// intersect them with the allow-list. A 404 on the member lookup means the
// user is not in the guild.
func (c *Client) fetchAllowedRoles(ctx context.Context, discordID string) ([]string, error) {
	member, err := c.fetchMember(ctx, discordID)
	if err != nil {
		if isNotFound(err) {
			return nil, domainauth.NewFailure(domainauth.FailureNotInGuild, err)
		}
		return nil, domainauth.NewFailure(domainauth.FailureRoleFetch,
			fmt.Errorf("fetch member roles: %w", err))
	}

	held := make([]string, 0, len(member.Roles))
	for _, id := range member.Roles {
		if _, ok := c.allowed[id]; ok {
			held = append(held, id)
		}
	}
	if len(held) == 0 {
		return nil, domainauth.NewFailure(domainauth.FailureNoRolePermission, nil)
	}
	return held, nil
}

// resolveHighestRole performs step 6: fetch the guild role definitions and
// pick the name of the held allowed role with the highest position. Held ids
// missing from the definition map are skipped, never selected.
func (c *Client) resolveHighestRole(ctx context.Context, heldAllowed []string) (string, error) {
	var roles []rolePayload
	if err := c.getJSON(ctx, c.apiBase+"/guilds/"+c.guildID+"/roles", "Bot "+c.botToken, &roles); err != nil {
		return "", domainauth.NewFailure(domainauth.FailureRoleFetch,
			fmt.Errorf("fetch guild roles: %w", err))
	}

	defs := make(map[string]domainauth.GuildRole, len(roles))
	for _, r := range roles {
		defs[r.ID] = domainauth.GuildRole{ID: r.ID, Name: r.Name, Position: r.Position}
	}

	var best *domainauth.GuildRole
	for _, id := range heldAllowed {
		def, ok := defs[id]
		if !ok {
			continue
		}
		if best == nil || def.Position > best.Position {
			d := def
			best = &d
		}
	}
	if best == nil {
		// Allow-list intersection was non-empty but every id is undefined in
		// the guild's role map.
		return "", domainauth.NewFailure(domainauth.FailureRoleFetch,
			errors.New("no role definition for any held allowed role"))
	}
	return best.Name, nil
}

// VerifyMember reports whether the member currently holds an allowed role
// and has both a display name and an avatar. An absent member is (false, nil).
func (c *Client) VerifyMember(ctx context.Context, discordID string) (bool, error) {
	if discordID == "" {
		return false, errors.New("discord id is required")
	}

	member, err := c.fetchMember(ctx, discordID)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("fetch member: %w", err)
	}

	hasRole := false
	for _, id := range member.Roles {
		if _, ok := c.allowed[id]; ok {
			hasRole = true
			break
		}
	}
	return hasRole && member.User.GlobalName != "" && member.User.Avatar != "", nil
}

func (c *Client) fetchMember(ctx context.Context, discordID string) (*memberPayload, error) {
	url := c.apiBase + "/guilds/" + c.guildID + "/members/" + discordID
	var member memberPayload
	if err := c.getJSON(ctx, url, "Bot "+c.botToken, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// avatarURL derives the CDN avatar URL. A missing avatar reference selects a
// deterministic default image using the snowflake id mod 5; otherwise the
// extension precedence is animated (.gif), explicit .webp, then .png, always
// with a fixed size parameter.
func (c *Client) avatarURL(id domainauth.Identity) string {
	if id.Avatar == "" {
		return fmt.Sprintf("%s/embed/avatars/%d.png", c.cdnBase, defaultAvatarIndex(id.DiscordID))
	}
	ext := ".png"
	switch {
	case strings.HasPrefix(id.Avatar, "a_"):
		ext = ".gif"
	case strings.HasSuffix(id.Avatar, ".webp"):
		ext = ".webp"
	}
	return fmt.Sprintf("%s/avatars/%s/%s%s?size=512", c.cdnBase, id.DiscordID, id.Avatar, ext)
}

// defaultAvatarIndex maps a snowflake id onto the fixed set of five default
// avatars. Unparseable ids fall back to index 0.
func defaultAvatarIndex(discordID string) int {
	n, err := strconv.ParseUint(discordID, 10, 64)
	if err != nil {
		return 0
	}
	return int(n % 5)
}

// statusError carries an upstream HTTP status for error branching.
type statusError struct {
	status int
	url    string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("GET %s: status %d", e.url, e.status)
}

func isNotFound(err error) bool {
	var se *statusError
	return errors.As(err, &se) && se.status == http.StatusNotFound
}

// getJSON performs an authenticated GET and decodes the JSON body into v.
func (c *Client) getJSON(ctx context.Context, url, authorization string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", authorization)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return &statusError{status: resp.StatusCode, url: url}
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
