package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avelarsoto/leadpipe-backend/internal/users"
	pkgAuth "github.com/avelarsoto/leadpipe-backend/pkg/auth"
	"github.com/avelarsoto/leadpipe-backend/pkg/config"
	"github.com/avelarsoto/leadpipe-backend/pkg/db/models"
	pkgerrors "github.com/avelarsoto/leadpipe-backend/pkg/errors"
	"github.com/avelarsoto/leadpipe-backend/pkg/security"
)

func TestServiceLoginMintsTokenAndRegistersSession(t *testing.T) {
	password := "agent-secret"
	user := &models.User{
		ID:           uuid.New(),
		Username:     "carla",
		PasswordHash: mustHashPassword(t, password),
	}
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "leadpipe",
		ExpirationMinutes: 30,
	}

	svc, sessions, err := buildTestService(user, cfg)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	resp, err := svc.Login(context.Background(), LoginRequest{
		Username: "  Carla  ",
		Password: password,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgAuth.ParseAccessToken(cfg, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("expected user claim %s, got %s", user.ID, claims.UserID)
	}
	if len(sessions.registered) != 1 || sessions.registered[0] != claims.ID {
		t.Fatalf("expected session registered under jti %q, got %v", claims.ID, sessions.registered)
	}
	if resp.User == nil || resp.User.Username != "carla" {
		t.Fatalf("expected sanitized user in response, got %+v", resp.User)
	}
}

func TestServiceLoginWrongPasswordIsUnauthorized(t *testing.T) {
	user := &models.User{
		ID:           uuid.New(),
		Username:     "carla",
		PasswordHash: mustHashPassword(t, "right-password"),
	}

	svc, _, err := buildTestService(user, testJWTConfig())
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{
		Username: "carla",
		Password: "wrong-password",
	})
	requireCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestServiceLoginUnknownUserIsUnauthorized(t *testing.T) {
	svc, _, err := buildTestService(nil, testJWTConfig())
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{
		Username: "ghost",
		Password: "whatever",
	})
	requireCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestServiceRegisterSignsNewUserIn(t *testing.T) {
	svc, sessions, err := buildTestService(nil, testJWTConfig())
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Username: "NewUser",
		Password: "long-enough-password",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatalf("expected access token after register")
	}
	if resp.User == nil || resp.User.Username != "newuser" {
		t.Fatalf("expected lowercased username, got %+v", resp.User)
	}
	if len(sessions.registered) != 1 {
		t.Fatalf("expected one registered session, got %d", len(sessions.registered))
	}
}

func TestServiceRegisterDuplicateUsernameConflicts(t *testing.T) {
	existing := &models.User{
		ID:           uuid.New(),
		Username:     "taken",
		PasswordHash: mustHashPassword(t, "some-password"),
	}

	svc, _, err := buildTestService(existing, testJWTConfig())
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.Register(context.Background(), RegisterRequest{
		Username: "Taken",
		Password: "another-password",
	})
	requireCode(t, err, pkgerrors.CodeConflict)
}

func TestServiceLogoutRevokesSession(t *testing.T) {
	svc, sessions, err := buildTestService(nil, testJWTConfig())
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	if err := svc.Logout(context.Background(), "jti-123"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "jti-123" {
		t.Fatalf("expected revoked session jti-123, got %v", sessions.revoked)
	}

	// blank access ID is a no-op, not an error
	if err := svc.Logout(context.Background(), ""); err != nil {
		t.Fatalf("logout with blank id: %v", err)
	}
	if len(sessions.revoked) != 1 {
		t.Fatalf("expected no extra revocations, got %v", sessions.revoked)
	}
}

func TestServiceCurrentUserMissingIsUnauthorized(t *testing.T) {
	svc, _, err := buildTestService(nil, testJWTConfig())
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.CurrentUser(context.Background(), uuid.New())
	requireCode(t, err, pkgerrors.CodeUnauthorized)
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "leadpipe",
		ExpirationMinutes: 30,
	}
}

func buildTestService(user *models.User, jwtCfg config.JWTConfig) (Service, *stubSessionManager, error) {
	userRepo := &stubUserRepo{user: user}
	sessionMgr := &stubSessionManager{}
	svc, err := NewService(ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionMgr,
		JWTConfig:      jwtCfg,
		PasswordConfig: config.PasswordConfig{},
	})
	return svc, sessionMgr, err
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

func requireCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != code {
		t.Fatalf("expected %s error, got %v", code, err)
	}
}

type stubUserRepo struct {
	user *models.User
}

func (s *stubUserRepo) Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error) {
	created := dto.ToModel()
	s.user = created
	return created, nil
}

func (s *stubUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if s.user == nil || s.user.Username != username {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

type stubSessionManager struct {
	registered []string
	revoked    []string
}

func (s *stubSessionManager) Register(ctx context.Context, accessID string) error {
	s.registered = append(s.registered, accessID)
	return nil
}

func (s *stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}
