// Package httpx provides HTTP handlers and utilities for the portal API.
package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	domainauth "github.com/serverside-ltd/portal-api/internal/domain/auth"
	"github.com/serverside-ltd/portal-api/internal/service"
)

// AuthHandlers provides HTTP handlers for the Discord login flow.
type AuthHandlers struct {
	Svc        *service.AuthService
	SuccessURL string
	ErrorURL   string
	Logger     *slog.Logger
}

// LoginDiscord completes the OAuth callback. On success the browser is
// redirected to the success page with the session token in the query string;
// any authorization rejection redirects to the error page carrying only the
// opaque reason code. A failure to persist the profile is not a rejection
// and surfaces as a 500 instead.
func (h *AuthHandlers) LoginDiscord(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		h.redirectError(w, r, domainauth.FailureExchange)
		return
	}

	result, err := h.Svc.Login(r.Context(), code)
	if err != nil {
		var failure *domainauth.Failure
		if errors.As(err, &failure) {
			h.logger().Warn("login rejected",
				slog.String("code", string(failure.Code)),
				slog.Any("error", err))
			h.redirectError(w, r, failure.Code)
			return
		}
		h.logger().Error("login failed", slog.Any("error", err))
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "store_write_failed", Err: err})
		return
	}

	h.redirectSuccess(w, r, result)
}

// VerifyDiscord reports whether a Discord id still maps to a guild member
// holding an allowed role.
func (h *AuthHandlers) VerifyDiscord(w http.ResponseWriter, r *http.Request) {
	discordID := r.URL.Query().Get("discordId")
	if discordID == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_discord_id",
			Err:     errors.New("discordId query parameter is required"),
		})
		return
	}

	valid, err := h.Svc.Verify(r.Context(), discordID)
	if err != nil {
		h.logger().Error("member verification failed",
			slog.String("discord_id", discordID),
			slog.Any("error", err))
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "verify_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"valid": valid})
}

func (h *AuthHandlers) redirectSuccess(w http.ResponseWriter, r *http.Request, result *service.LoginResult) {
	http.Redirect(w, r, withQuery(h.SuccessURL, url.Values{
		"token":     {result.Token},
		"userId":    {result.UserID},
		"discordId": {result.DiscordID},
	}), http.StatusFound)
}

func (h *AuthHandlers) redirectError(w http.ResponseWriter, r *http.Request, code domainauth.FailureCode) {
	http.Redirect(w, r, withQuery(h.ErrorURL, url.Values{
		"msg": {string(code)},
	}), http.StatusFound)
}

// withQuery appends params to a destination URL, preserving any query the
// configured URL already carries.
func withQuery(dest string, params url.Values) string {
	u, err := url.Parse(dest)
	if err != nil {
		return dest + "?" + params.Encode()
	}
	q := u.Query()
	for k, vs := range params {
		for _, v := range vs {
			q.Set(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}
