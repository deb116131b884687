package auth

// Package auth contains simple hand-written test doubles for the login
// ports. These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"sync"
	"time"

	domainauth "github.com/serverside-ltd/portal-api/internal/domain/auth"
	"github.com/serverside-ltd/portal-api/internal/domain/model"
	"github.com/serverside-ltd/portal-api/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.IdentityGateway = (*MockIdentityGateway)(nil)
	_ ports.UserStore       = (*MemoryUserStore)(nil)
	_ ports.TokenIssuer     = (*MockTokenIssuer)(nil)
)

// MockIdentityGateway simulates the Discord gateway for tests.
type MockIdentityGateway struct {
	AuthenticateFunc func(ctx context.Context, code string) (domainauth.Profile, error)
	VerifyMemberFunc func(ctx context.Context, discordID string) (bool, error)

	// DefaultProfile is returned when AuthenticateFunc is nil.
	DefaultProfile domainauth.Profile
}

// NewMockIdentityGateway creates a MockIdentityGateway with a sensible
// default profile.
func NewMockIdentityGateway() *MockIdentityGateway {
	return &MockIdentityGateway{
		DefaultProfile: domainauth.Profile{
			Identity: domainauth.Identity{
				DiscordID: "80351110224678912",
				Username:  "mock-user",
				Email:     "mock.user@example.com",
				Avatar:    "8342729096ea3675442027381ff50dfe",
			},
			AvatarURL:   "https://cdn.example.com/avatars/80351110224678912/8342729096ea3675442027381ff50dfe.png?size=512",
			HighestRole: "Moderator",
		},
	}
}

func (m *MockIdentityGateway) Authenticate(ctx context.Context, code string) (domainauth.Profile, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, code)
	}
	return m.DefaultProfile, nil
}

func (m *MockIdentityGateway) VerifyMember(ctx context.Context, discordID string) (bool, error) {
	if m.VerifyMemberFunc != nil {
		return m.VerifyMemberFunc(ctx, discordID)
	}
	return true, nil
}

// MemoryUserStore is an in-memory UserStore for tests. It follows the
// document-backend id policy: the record id is the discord id.
type MemoryUserStore struct {
	mu    sync.Mutex
	users map[string]*model.User

	// UpsertErr forces Upsert to fail when set.
	UpsertErr error
}

// NewMemoryUserStore creates an empty in-memory user store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]*model.User)}
}

func (s *MemoryUserStore) Upsert(_ context.Context, req *model.UpsertUserRequest) (*model.User, error) {
	if s.UpsertErr != nil {
		return nil, s.UpsertErr
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	user, ok := s.users[req.DiscordID]
	if !ok {
		user = &model.User{
			ID:        req.DiscordID,
			DiscordID: req.DiscordID,
			CreatedAt: now,
		}
		s.users[req.DiscordID] = user
	}
	user.DiscordUsername = req.DiscordUsername
	user.Email = req.Email
	user.Avatar = req.Avatar
	user.DiscordRole = req.DiscordRole
	user.UpdatedAt = now

	copied := *user
	return &copied, nil
}

func (s *MemoryUserStore) GetByID(_ context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ports.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *MemoryUserStore) SetRobloxUsername(_ context.Context, id, username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ports.ErrUserNotFound
	}
	user.RobloxUsername = username
	user.UpdatedAt = time.Now().UTC()
	copied := *user
	return &copied, nil
}

// Len reports how many records the store holds.
func (s *MemoryUserStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// MockTokenIssuer issues predictable tokens for tests.
type MockTokenIssuer struct {
	IssueFunc func(subjectID string, ttl time.Duration) (string, error)
	ParseFunc func(token string) (string, error)
}

func (m *MockTokenIssuer) Issue(subjectID string, ttl time.Duration) (string, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(subjectID, ttl)
	}
	return "token-for-" + subjectID, nil
}

func (m *MockTokenIssuer) Parse(token string) (string, error) {
	if m.ParseFunc != nil {
		return m.ParseFunc(token)
	}
	return token, nil
}
