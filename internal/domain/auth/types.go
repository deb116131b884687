package auth

// Package auth contains domain-level types for the Discord login flow.
// It is pure and free of transport/adapter concerns.

// Identity represents the authenticated principal returned by the identity
// provider's "current user" endpoint. Adapters map provider payloads into
// this shape.
type Identity struct {
	DiscordID string // provider snowflake id
	Username  string // display name (global_name)
	Email     string
	Avatar    string // raw avatar reference; empty when the user has none
}

// GuildRole is a role definition scoped to a guild. Position orders roles;
// a higher position is more senior.
type GuildRole struct {
	ID       string
	Name     string
	Position int
}

// Profile is the resolved outcome of a successful login: the provider
// identity plus the derived avatar URL and the name of the highest-ranked
// role the user holds from the configured allow-list. Identity is embedded
// so its fields read directly off the profile.
type Profile struct {
	Identity
	AvatarURL   string
	HighestRole string
}

// FailureCode identifies why a login was rejected. The string form doubles
// as the opaque reason code surfaced on the error redirect.
type FailureCode string

const (
	// FailureExchange means the provider rejected the authorization code.
	FailureExchange FailureCode = "exchange_failed"
	// FailureGuildCheck means the guild member list could not be fetched.
	FailureGuildCheck FailureCode = "guild_check_failed"
	// FailureNotInGuild means the user is not a member of the configured guild.
	FailureNotInGuild FailureCode = "not_in_guild"
	// FailureNoRolePermission means the user holds none of the allowed roles.
	FailureNoRolePermission FailureCode = "no_role_permission"
	// FailureRoleFetch means the user's roles could not be fetched.
	FailureRoleFetch FailureCode = "role_fetch_failed"
)

// Failure is a terminal authorization rejection. It is never retried; the
// caller is redirected to an error page carrying Code.
type Failure struct {
	Code FailureCode
	// Cause is the underlying error, if any. It is logged server-side and
	// never exposed past the boundary.
	Cause error
}

func (f *Failure) Error() string {
	if f.Cause != nil {
		return string(f.Code) + ": " + f.Cause.Error()
	}
	return string(f.Code)
}

func (f *Failure) Unwrap() error { return f.Cause }

// NewFailure constructs a Failure with an optional underlying cause.
func NewFailure(code FailureCode, cause error) *Failure {
	return &Failure{Code: code, Cause: cause}
}
