package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgAuth "github.com/avelarsoto/leadpipe-backend/pkg/auth"
	"github.com/avelarsoto/leadpipe-backend/pkg/config"
	"github.com/avelarsoto/leadpipe-backend/pkg/db/models"
)

func testConfig() *config.Config {
	return &config.Config{
		App:    config.AppConfig{Env: config.AppEnvDev},
		JWT:    config.JWTConfig{Secret: "secret", Issuer: "leadpipe", ExpirationMinutes: 60},
		Cookie: config.CookieConfig{Name: "leadpipe_token"},
	}
}

type stubUserLoader struct {
	user *models.User
}

func (s stubUserLoader) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

type stubSessionChecker struct {
	ok bool
}

func (s stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return s.ok, nil
}

func mintTestToken(t *testing.T, cfg *config.Config, userID uuid.UUID) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID: userID,
		JTI:    uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func captureHandler(captured *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestSessionWithoutCookieIsAnonymous(t *testing.T) {
	cfg := testConfig()
	var captured string
	handler := Session(cfg, stubUserLoader{}, stubSessionChecker{ok: true}, nil)(captureHandler(&captured))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected pass-through 200, got %d", resp.Code)
	}
	if captured != "" {
		t.Fatalf("expected anonymous context, got user %q", captured)
	}
}

func TestSessionInvalidTokenClearsCookie(t *testing.T) {
	cfg := testConfig()
	var captured string
	handler := Session(cfg, stubUserLoader{}, stubSessionChecker{ok: true}, nil)(captureHandler(&captured))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cfg.Cookie.Name, Value: "garbage"})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected pass-through 200, got %d", resp.Code)
	}
	if captured != "" {
		t.Fatalf("expected anonymous context, got user %q", captured)
	}
	if !cookieCleared(resp.Result().Cookies(), cfg.Cookie.Name) {
		t.Fatalf("expected auth cookie to be cleared")
	}
}

func TestSessionMissingUserClearsCookie(t *testing.T) {
	cfg := testConfig()
	token := mintTestToken(t, cfg, uuid.New())

	var captured string
	handler := Session(cfg, stubUserLoader{}, stubSessionChecker{ok: true}, nil)(captureHandler(&captured))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cfg.Cookie.Name, Value: token})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected pass-through 200, got %d", resp.Code)
	}
	if captured != "" {
		t.Fatalf("expected anonymous context for deleted user, got %q", captured)
	}
	if !cookieCleared(resp.Result().Cookies(), cfg.Cookie.Name) {
		t.Fatalf("expected auth cookie to be cleared")
	}
}

func TestSessionRevokedSessionIsAnonymous(t *testing.T) {
	cfg := testConfig()
	user := &models.User{ID: uuid.New(), Username: "carla"}
	token := mintTestToken(t, cfg, user.ID)

	var captured string
	handler := Session(cfg, stubUserLoader{user: user}, stubSessionChecker{ok: false}, nil)(captureHandler(&captured))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cfg.Cookie.Name, Value: token})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if captured != "" {
		t.Fatalf("expected anonymous context after revocation, got %q", captured)
	}
}

func TestSessionAttachesUser(t *testing.T) {
	cfg := testConfig()
	user := &models.User{ID: uuid.New(), Username: "carla"}
	token := mintTestToken(t, cfg, user.ID)

	var captured string
	handler := Session(cfg, stubUserLoader{user: user}, stubSessionChecker{ok: true}, nil)(captureHandler(&captured))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cfg.Cookie.Name, Value: token})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if captured != user.ID.String() {
		t.Fatalf("expected user %s in context, got %q", user.ID, captured)
	}
}

func TestRequireAuthenticatedGatesAnonymous(t *testing.T) {
	handler := RequireAuthenticated(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithUserID(req.Context(), uuid.NewString()))
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for authenticated, got %d", resp.Code)
	}
}

func cookieCleared(cookies []*http.Cookie, name string) bool {
	for _, c := range cookies {
		if c.Name == name && c.MaxAge < 0 {
			return true
		}
	}
	return false
}
