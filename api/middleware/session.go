package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avelarsoto/leadpipe-backend/api/responses"
	pkgAuth "github.com/avelarsoto/leadpipe-backend/pkg/auth"
	"github.com/avelarsoto/leadpipe-backend/pkg/config"
	"github.com/avelarsoto/leadpipe-backend/pkg/db/models"
	pkgerrors "github.com/avelarsoto/leadpipe-backend/pkg/errors"
	"github.com/avelarsoto/leadpipe-backend/pkg/logger"
)

type userLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type sessionChecker interface {
	HasSession(ctx context.Context, accessID string) (bool, error)
}

// Session resolves the auth cookie into a request identity. It never rejects:
// requests without a usable credential proceed anonymously and the downstream
// authorization gate decides whether that is acceptable. A cookie that fails
// verification, or whose user no longer exists, is cleared before proceeding.
func Session(cfg *config.Config, users userLoader, sessions sessionChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := pkgAuth.TokenFromRequest(r, cfg.Cookie)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg.JWT, token)
			if err != nil {
				pkgAuth.ClearAuthCookie(w, cfg.Cookie, cfg.App.IsDev())
				next.ServeHTTP(w, r)
				return
			}

			if sessions != nil {
				active, err := sessions.HasSession(r.Context(), claims.ID)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session"))
					return
				}
				if !active {
					pkgAuth.ClearAuthCookie(w, cfg.Cookie, cfg.App.IsDev())
					next.ServeHTTP(w, r)
					return
				}
			}

			user, err := users.FindByID(r.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					// valid token for a deleted user counts as no credential
					pkgAuth.ClearAuthCookie(w, cfg.Cookie, cfg.App.IsDev())
					next.ServeHTTP(w, r)
					return
				}
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user"))
				return
			}

			ctx := WithUserID(r.Context(), user.ID.String())
			ctx = WithAccessID(ctx, claims.ID)
			if logg != nil {
				ctx = logg.WithUserID(ctx, user.ID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuthenticated rejects requests that resolved to an anonymous identity.
func RequireAuthenticated(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if UserIDFromContext(r.Context()) == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
