package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/serverside-ltd/portal-api/internal/domain/model"
	"github.com/serverside-ltd/portal-api/internal/ports"
	"github.com/serverside-ltd/portal-api/internal/tokens"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Gateway ports.IdentityGateway
	Users   ports.UserStore
	Tokens  ports.TokenIssuer
}

// AuthService orchestrates the login flow: identity resolution through the
// gateway, profile persistence, and session token issuance.
type AuthService struct {
	gateway ports.IdentityGateway
	users   ports.UserStore
	tokens  ports.TokenIssuer
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	return &AuthService{
		gateway: opts.Gateway,
		users:   opts.Users,
		tokens:  opts.Tokens,
	}
}

// LoginResult contains the outcome of a completed login.
type LoginResult struct {
	Token     string
	UserID    string
	DiscordID string
}

// Login exchanges an authorization code for a session. The gateway rejection
// cases come back as *domainauth.Failure; anything after a successful
// exchange (upsert, token signing) is an internal error. Exactly one upsert
// is performed per successful login, and nothing is written before the
// gateway accepts the code.
func (s *AuthService) Login(ctx context.Context, code string) (*LoginResult, error) {
	if code == "" {
		return nil, errors.New("authorization code is required")
	}

	profile, err := s.gateway.Authenticate(ctx, code)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Upsert(ctx, &model.UpsertUserRequest{
		DiscordID:       profile.DiscordID,
		DiscordUsername: profile.Username,
		Email:           profile.Email,
		Avatar:          profile.AvatarURL,
		DiscordRole:     profile.HighestRole,
	})
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID, tokens.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}

	return &LoginResult{
		Token:     token,
		UserID:    user.ID,
		DiscordID: user.DiscordID,
	}, nil
}

// Verify reports whether the given Discord id currently belongs to a guild
// member holding an allowed role with a complete profile.
func (s *AuthService) Verify(ctx context.Context, discordID string) (bool, error) {
	if discordID == "" {
		return false, errors.New("discord id is required")
	}
	return s.gateway.VerifyMember(ctx, discordID)
}
