package auth

import (
	"net/http"
	"time"

	"github.com/avelarsoto/leadpipe-backend/pkg/config"
)

// SetAuthCookie writes the bearer token as an HTTP-only cookie. SameSite is
// always Strict; Secure is dropped only for local development so the cookie
// survives plain-HTTP dev servers.
func SetAuthCookie(w http.ResponseWriter, cfg config.CookieConfig, jwtCfg config.JWTConfig, token string, dev bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.Name,
		Value:    token,
		Path:     "/",
		Domain:   cfg.Domain,
		MaxAge:   int(jwtCfg.TokenTTL() / time.Second),
		HttpOnly: true,
		Secure:   !dev,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearAuthCookie expires the auth cookie client-side.
func ClearAuthCookie(w http.ResponseWriter, cfg config.CookieConfig, dev bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.Name,
		Value:    "",
		Path:     "/",
		Domain:   cfg.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   !dev,
		SameSite: http.SameSiteStrictMode,
	})
}

// TokenFromRequest extracts the bearer token from the auth cookie, returning
// an empty string when no credential is present.
func TokenFromRequest(r *http.Request, cfg config.CookieConfig) string {
	cookie, err := r.Cookie(cfg.Name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
