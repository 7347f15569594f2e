package controllers

import (
	"net/http"

	"github.com/avelarsoto/leadpipe-backend/api/middleware"
	"github.com/avelarsoto/leadpipe-backend/api/responses"
	"github.com/avelarsoto/leadpipe-backend/api/validators"
	"github.com/avelarsoto/leadpipe-backend/internal/auth"
	pkgAuth "github.com/avelarsoto/leadpipe-backend/pkg/auth"
	"github.com/avelarsoto/leadpipe-backend/pkg/config"
	pkgerrors "github.com/avelarsoto/leadpipe-backend/pkg/errors"
	"github.com/avelarsoto/leadpipe-backend/pkg/logger"
	"github.com/google/uuid"
)

// AuthRegister creates a new account and signs it in via the auth cookie.
func AuthRegister(svc auth.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body auth.RegisterRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Register(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pkgAuth.SetAuthCookie(w, cfg.Cookie, cfg.JWT, result.AccessToken, cfg.App.IsDev())
		responses.WriteSuccessStatus(w, http.StatusCreated, result.User)
	}
}

// AuthLogin verifies credentials and sets the auth cookie.
func AuthLogin(svc auth.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pkgAuth.SetAuthCookie(w, cfg.Cookie, cfg.JWT, result.AccessToken, cfg.App.IsDev())
		responses.WriteSuccess(w, result.User)
	}
}

// AuthLogout revokes the current session and clears the cookie. It succeeds
// even for anonymous callers so a stale client can always reset itself.
func AuthLogout(svc auth.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc != nil {
			if accessID := middleware.AccessIDFromContext(r.Context()); accessID != "" {
				if err := svc.Logout(r.Context(), accessID); err != nil {
					responses.WriteError(r.Context(), logg, w, err)
					return
				}
			}
		}

		pkgAuth.ClearAuthCookie(w, cfg.Cookie, cfg.App.IsDev())
		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}

// AuthCurrentUser returns the authenticated user's profile.
func AuthCurrentUser(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		userID, err := uuid.Parse(middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}

		user, err := svc.CurrentUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, user)
	}
}
