package discord

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainauth "github.com/serverside-ltd/portal-api/internal/domain/auth"
)

// fakeDiscord is a configurable stand-in for the Discord API.
type fakeDiscord struct {
	user userPayload

	// guild member list (first page)
	members []memberPayload
	// per-member endpoint: nil entry means 404
	memberRoles map[string][]string
	roles       []rolePayload

	rejectExchange  bool
	failMemberList  bool
	failMemberFetch bool
	failRoleList    bool
}

func (f *fakeDiscord) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("POST /oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		if f.rejectExchange {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at-1","token_type":"Bearer"}`))
	})

	mux.HandleFunc("GET /users/@me", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer at-1", r.Header.Get("Authorization"))
		writeJSON(t, w, f.user)
	})

	mux.HandleFunc("GET /guilds/{gid}/members", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bot bot-token", r.Header.Get("Authorization"))
		assert.Equal(t, "1000", r.URL.Query().Get("limit"))
		if f.failMemberList {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		writeJSON(t, w, f.members)
	})

	mux.HandleFunc("GET /guilds/{gid}/members/{id}", func(w http.ResponseWriter, r *http.Request) {
		if f.failMemberFetch {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		roles, ok := f.memberRoles[r.PathValue("id")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		writeJSON(t, w, memberPayload{User: f.user, Roles: roles})
	})

	mux.HandleFunc("GET /guilds/{gid}/roles", func(w http.ResponseWriter, r *http.Request) {
		if f.failRoleList {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		writeJSON(t, w, f.roles)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func newTestClient(t *testing.T, f *fakeDiscord, allowed ...string) *Client {
	t.Helper()
	srv := f.server(t)
	if len(allowed) == 0 {
		allowed = []string{"role-a", "role-b"}
	}
	c, err := NewClient(Config{
		ClientID:       "client-1",
		ClientSecret:   "secret-1",
		RedirectURL:    "http://localhost:3000/auth/discord",
		GuildID:        "guild-1",
		AllowedRoleIDs: allowed,
		BotToken:       "bot-token",
		APIBaseURL:     srv.URL,
		CDNBaseURL:     "https://cdn.example.com",
		HTTPClient:     srv.Client(),
	})
	require.NoError(t, err)
	return c
}

func defaultFake() *fakeDiscord {
	return &fakeDiscord{
		user: userPayload{
			ID:         "80351110224678912",
			GlobalName: "nelly",
			Email:      "nelly@example.com",
			Avatar:     "8342729096ea3675442027381ff50dfe",
		},
		members: []memberPayload{
			{User: userPayload{ID: "80351110224678912"}},
			{User: userPayload{ID: "155149108183695360"}},
		},
		memberRoles: map[string][]string{
			"80351110224678912": {"role-b", "role-c"},
		},
		roles: []rolePayload{
			{ID: "role-a", Name: "Admin", Position: 10},
			{ID: "role-b", Name: "Moderator", Position: 5},
			{ID: "role-c", Name: "Member", Position: 1},
		},
	}
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)

	_, err = NewClient(Config{
		ClientID:     "c",
		ClientSecret: "s",
		RedirectURL:  "http://localhost/cb",
		GuildID:      "g",
		BotToken:     "b",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "allowed role")
}

func TestAuthenticate_Success(t *testing.T) {
	c := newTestClient(t, defaultFake())

	profile, err := c.Authenticate(context.Background(), "code-1")
	require.NoError(t, err)

	assert.Equal(t, "80351110224678912", profile.Identity.DiscordID)
	assert.Equal(t, "nelly", profile.Identity.Username)
	assert.Equal(t, "nelly@example.com", profile.Identity.Email)
	// User holds role-b and role-c; only role-b is allowed, so its name wins.
	assert.Equal(t, "Moderator", profile.HighestRole)
	assert.Equal(t,
		"https://cdn.example.com/avatars/80351110224678912/8342729096ea3675442027381ff50dfe.png?size=512",
		profile.AvatarURL)
}

func TestAuthenticate_HighestOfMultipleAllowedRoles(t *testing.T) {
	f := defaultFake()
	f.memberRoles["80351110224678912"] = []string{"role-a", "role-b"}
	c := newTestClient(t, f)

	profile, err := c.Authenticate(context.Background(), "code-1")
	require.NoError(t, err)
	assert.Equal(t, "Admin", profile.HighestRole)
}

func TestAuthenticate_SkipsUndefinedRoleIDs(t *testing.T) {
	f := defaultFake()
	// role-a is allowed and held but has no definition in the guild role map;
	// the resolver must fall through to role-b rather than select a missing
	// definition.
	f.memberRoles["80351110224678912"] = []string{"role-a", "role-b"}
	f.roles = []rolePayload{
		{ID: "role-b", Name: "Moderator", Position: 5},
	}
	c := newTestClient(t, f)

	profile, err := c.Authenticate(context.Background(), "code-1")
	require.NoError(t, err)
	assert.Equal(t, "Moderator", profile.HighestRole)
}

func TestAuthenticate_ExchangeRejected(t *testing.T) {
	f := defaultFake()
	f.rejectExchange = true
	c := newTestClient(t, f)

	_, err := c.Authenticate(context.Background(), "expired-code")
	requireFailure(t, err, domainauth.FailureExchange)
}

func TestAuthenticate_NotInGuild(t *testing.T) {
	f := defaultFake()
	f.members = []memberPayload{{User: userPayload{ID: "155149108183695360"}}}
	c := newTestClient(t, f)

	_, err := c.Authenticate(context.Background(), "code-1")
	requireFailure(t, err, domainauth.FailureNotInGuild)
}

func TestAuthenticate_GuildCheckFailed(t *testing.T) {
	f := defaultFake()
	f.failMemberList = true
	c := newTestClient(t, f)

	_, err := c.Authenticate(context.Background(), "code-1")
	requireFailure(t, err, domainauth.FailureGuildCheck)
}

func TestAuthenticate_NoRolePermission(t *testing.T) {
	f := defaultFake()
	// No overlap with the {role-a, role-b} allow-list.
	f.memberRoles["80351110224678912"] = []string{"role-c", "role-d"}
	c := newTestClient(t, f)

	_, err := c.Authenticate(context.Background(), "code-1")
	requireFailure(t, err, domainauth.FailureNoRolePermission)
}

func TestAuthenticate_MemberLookup404MeansNotInGuild(t *testing.T) {
	f := defaultFake()
	delete(f.memberRoles, "80351110224678912")
	c := newTestClient(t, f)

	_, err := c.Authenticate(context.Background(), "code-1")
	requireFailure(t, err, domainauth.FailureNotInGuild)
}

func TestAuthenticate_RoleFetchFailed(t *testing.T) {
	f := defaultFake()
	f.failMemberFetch = true
	c := newTestClient(t, f)

	_, err := c.Authenticate(context.Background(), "code-1")
	requireFailure(t, err, domainauth.FailureRoleFetch)
}

func TestAuthenticate_RoleListFetchFailed(t *testing.T) {
	f := defaultFake()
	f.failRoleList = true
	c := newTestClient(t, f)

	_, err := c.Authenticate(context.Background(), "code-1")
	requireFailure(t, err, domainauth.FailureRoleFetch)
}

func requireFailure(t *testing.T, err error, code domainauth.FailureCode) {
	t.Helper()
	require.Error(t, err)
	var failure *domainauth.Failure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, code, failure.Code)
}

func TestAvatarURL(t *testing.T) {
	c := &Client{cdnBase: "https://cdn.example.com"}

	tests := []struct {
		name     string
		identity domainauth.Identity
		want     string
	}{
		{
			name:     "no avatar picks default by id mod 5",
			identity: domainauth.Identity{DiscordID: "7"},
			want:     "https://cdn.example.com/embed/avatars/2.png",
		},
		{
			name:     "animated avatar gets gif",
			identity: domainauth.Identity{DiscordID: "42", Avatar: "a_deadbeef"},
			want:     "https://cdn.example.com/avatars/42/a_deadbeef.gif?size=512",
		},
		{
			name:     "webp reference keeps webp",
			identity: domainauth.Identity{DiscordID: "42", Avatar: "deadbeef.webp"},
			want:     "https://cdn.example.com/avatars/42/deadbeef.webp.webp?size=512",
		},
		{
			name:     "plain avatar gets png",
			identity: domainauth.Identity{DiscordID: "42", Avatar: "deadbeef"},
			want:     "https://cdn.example.com/avatars/42/deadbeef.png?size=512",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, c.avatarURL(tc.identity))
		})
	}
}

func TestDefaultAvatarIndex(t *testing.T) {
	assert.Equal(t, 2, defaultAvatarIndex("7"))
	assert.Equal(t, 0, defaultAvatarIndex("80351110224678910"))
	assert.Equal(t, 0, defaultAvatarIndex("not-a-snowflake"))
}

func TestVerifyMember(t *testing.T) {
	t.Run("valid member", func(t *testing.T) {
		c := newTestClient(t, defaultFake())
		valid, err := c.VerifyMember(context.Background(), "80351110224678912")
		require.NoError(t, err)
		assert.True(t, valid)
	})

	t.Run("absent member is false without error", func(t *testing.T) {
		c := newTestClient(t, defaultFake())
		valid, err := c.VerifyMember(context.Background(), "155149108183695360")
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("no allowed role", func(t *testing.T) {
		f := defaultFake()
		f.memberRoles["80351110224678912"] = []string{"role-c"}
		c := newTestClient(t, f)
		valid, err := c.VerifyMember(context.Background(), "80351110224678912")
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("missing display name", func(t *testing.T) {
		f := defaultFake()
		f.user.GlobalName = ""
		c := newTestClient(t, f)
		valid, err := c.VerifyMember(context.Background(), "80351110224678912")
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("missing avatar", func(t *testing.T) {
		f := defaultFake()
		f.user.Avatar = ""
		c := newTestClient(t, f)
		valid, err := c.VerifyMember(context.Background(), "80351110224678912")
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("upstream failure surfaces", func(t *testing.T) {
		f := defaultFake()
		f.failMemberFetch = true
		c := newTestClient(t, f)
		_, err := c.VerifyMember(context.Background(), "80351110224678912")
		assert.Error(t, err)
	})

	t.Run("empty id", func(t *testing.T) {
		c := newTestClient(t, defaultFake())
		_, err := c.VerifyMember(context.Background(), "")
		assert.Error(t, err)
	})
}
