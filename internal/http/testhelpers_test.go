package httpx

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/serverside-ltd/portal-api/internal/domain/model"
	mocks "github.com/serverside-ltd/portal-api/internal/mocks/auth"
	"github.com/serverside-ltd/portal-api/internal/service"
)

// stubThumbnails resolves every lookup URL to a fixed image URL.
type stubThumbnails struct {
	resolveFunc func(context.Context, string) (string, error)
}

func (s *stubThumbnails) GameIconURL(placeID int64) string {
	return fmt.Sprintf("https://thumbnails.example.com/v1/places/gameicons?placeIds=%d", placeID)
}

func (s *stubThumbnails) Resolve(ctx context.Context, lookupURL string) (string, error) {
	if s.resolveFunc != nil {
		return s.resolveFunc(ctx, lookupURL)
	}
	return "https://cdn.example.com/icon.png", nil
}

// stubGameRepo keeps games in a slice in insertion order.
type stubGameRepo struct {
	games     []*model.Game
	upsertErr error
}

func (s *stubGameRepo) Upsert(_ context.Context, game *model.Game) (*model.Game, error) {
	if s.upsertErr != nil {
		return nil, s.upsertErr
	}
	for i, existing := range s.games {
		if existing.ID == game.ID {
			s.games[i] = game
			return game, nil
		}
	}
	s.games = append(s.games, game)
	return game, nil
}

func (s *stubGameRepo) List(_ context.Context) ([]*model.Game, error) {
	return s.games, nil
}

// stubPlayerRepo keeps players in a slice.
type stubPlayerRepo struct {
	players []*model.Player
}

func (s *stubPlayerRepo) Create(_ context.Context, player *model.Player) (*model.Player, error) {
	copied := *player
	copied.ID = fmt.Sprintf("player-%d", len(s.players)+1)
	s.players = append(s.players, &copied)
	return &copied, nil
}

func (s *stubPlayerRepo) ExistsByNameOrThumbnail(_ context.Context, name, thumbnail string) (bool, error) {
	for _, p := range s.players {
		if p.Name == name || p.Thumbnail == thumbnail {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubPlayerRepo) DeleteBySelector(_ context.Context, name, thumbnail string) (int64, error) {
	kept := s.players[:0]
	var removed int64
	for _, p := range s.players {
		match := (name != "" && p.Name == name) || (thumbnail != "" && p.Thumbnail == thumbnail)
		if name != "" && thumbnail != "" {
			match = p.Name == name && p.Thumbnail == thumbnail
		}
		if match {
			removed++
			continue
		}
		kept = append(kept, p)
	}
	s.players = kept
	return removed, nil
}

func (s *stubPlayerRepo) ListByOwner(_ context.Context, owner string) ([]*model.Player, error) {
	var out []*model.Player
	for _, p := range s.players {
		if p.Owner == owner {
			out = append(out, p)
		}
	}
	return out, nil
}

// testEnv bundles a router with the doubles behind it so tests can reach in.
type testEnv struct {
	router     http.Handler
	gateway    *mocks.MockIdentityGateway
	users      *mocks.MemoryUserStore
	games      *stubGameRepo
	players    *stubPlayerRepo
	thumbnails *stubThumbnails
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		gateway:    mocks.NewMockIdentityGateway(),
		users:      mocks.NewMemoryUserStore(),
		games:      &stubGameRepo{},
		players:    &stubPlayerRepo{},
		thumbnails: &stubThumbnails{},
	}

	env.router = NewRouter(RouterServices{
		Auth: service.NewAuthService(service.AuthServiceOptions{
			Gateway: env.gateway,
			Users:   env.users,
			Tokens:  &mocks.MockTokenIssuer{},
		}),
		Games: service.NewGameService(service.GameServiceOptions{
			Games:      env.games,
			Thumbnails: env.thumbnails,
		}),
		Players: service.NewPlayerService(service.PlayerServiceOptions{
			Players:    env.players,
			Thumbnails: env.thumbnails,
		}),
		Users: service.NewUserService(service.UserServiceOptions{
			Users: env.users,
		}),
		SuccessURL: "https://portal.example.com/loading",
		ErrorURL:   "https://portal.example.com/error",
	})
	return env
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}
