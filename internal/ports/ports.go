package ports

// Package ports defines interfaces (hexagonal ports) for the login flow and
// user persistence. Implementations live in internal/adapters and
// internal/data; orchestration in internal/service.

import (
	"context"
	"errors"
	"time"

	domainauth "github.com/serverside-ltd/portal-api/internal/domain/auth"
	"github.com/serverside-ltd/portal-api/internal/domain/model"
)

// ErrUserNotFound is returned by every UserStore backend when no record
// exists for the given id.
var ErrUserNotFound = errors.New("user not found")

// IdentityGateway performs the multi-step identity-provider flow: code
// exchange, identity fetch, guild membership check, and role resolution.
type IdentityGateway interface {
	// Authenticate exchanges an authorization code end-to-end and returns the
	// resolved profile. Rejections are returned as *domainauth.Failure.
	Authenticate(ctx context.Context, code string) (domainauth.Profile, error)

	// VerifyMember reports whether the guild member identified by discordID
	// currently holds an allowed role and has a complete profile. A member
	// absent from the guild yields (false, nil), not an error.
	VerifyMember(ctx context.Context, discordID string) (bool, error)
}

// UserStore persists user records keyed by the external Discord id. One
// interface, two interchangeable backends (relational and document-style),
// selected at composition time.
type UserStore interface {
	// Upsert creates the record on first login or refreshes
	// username/email/avatar/role in place on subsequent ones. RobloxUsername
	// and the identity key are never touched by Upsert. Returns the stored
	// record including the backend-assigned id.
	Upsert(ctx context.Context, req *model.UpsertUserRequest) (*model.User, error)

	// GetByID fetches a record by its backend-assigned id.
	GetByID(ctx context.Context, id string) (*model.User, error)

	// SetRobloxUsername updates the roblox username for the given record id.
	SetRobloxUsername(ctx context.Context, id, username string) (*model.User, error)
}

// TokenIssuer signs and validates stateless session tokens.
type TokenIssuer interface {
	// Issue signs a token embedding the subject id with the given validity.
	Issue(subjectID string, ttl time.Duration) (string, error)

	// Parse validates a token and returns the embedded subject id.
	Parse(token string) (string, error)
}
