package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yungbote/portfolio-backend/internal/data/repos"
	types "github.com/yungbote/portfolio-backend/internal/domain"
	"github.com/yungbote/portfolio-backend/internal/platform/ctxutil"
	"github.com/yungbote/portfolio-backend/internal/platform/errs"
)

func newAuth(e *env) *authService {
	return NewAuthService(
		e.db,
		e.log,
		repos.NewUserRepo(e.db, e.log),
		repos.NewUserTokenRepo(e.db, e.log),
		"test-secret",
		15*time.Minute,
		24*time.Hour,
	).(*authService)
}

func TestCreateAdminAndLogin(t *testing.T) {
	e := newEnv(t)
	svc := newAuth(e)
	ctx := context.Background()

	if _, err := svc.CreateAdmin(ctx, "admin@example.com", "short", "", ""); !errs.IsValidation(err) {
		t.Fatalf("short password: want validation error got=%v", err)
	}
	u, err := svc.CreateAdmin(ctx, " Admin@Example.com ", "correct horse", "Ada", "Lovelace")
	if err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}
	if u.Role != types.RoleAdmin || u.Email != "admin@example.com" {
		t.Fatalf("admin: got role=%q email=%q", u.Role, u.Email)
	}

	if _, _, err := svc.LoginUser(ctx, "admin@example.com", "wrong password"); !errors.Is(err, errs.ErrUnauthorized) {
		t.Fatalf("wrong password: want unauthorized got=%v", err)
	}
	if _, _, err := svc.LoginUser(ctx, "nobody@example.com", "correct horse"); !errors.Is(err, errs.ErrUnauthorized) {
		t.Fatalf("unknown email: want unauthorized got=%v", err)
	}

	access, refresh, err := svc.LoginUser(ctx, "ADMIN@example.com", "correct horse")
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatalf("tokens: want both set")
	}

	authed, err := svc.SetContextFromToken(ctx, access)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	rd := ctxutil.GetRequestData(authed)
	if rd == nil || rd.UserID != u.ID || rd.Role != types.RoleAdmin || rd.RefreshToken != refresh {
		t.Fatalf("request data: got=%+v", rd)
	}
}

func TestCreateAdminPromotesExisting(t *testing.T) {
	e := newEnv(t)
	svc := newAuth(e)
	ctx := context.Background()

	if _, err := svc.CreateAdmin(ctx, "owner@example.com", "first password", "", ""); err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}
	again, err := svc.CreateAdmin(ctx, "owner@example.com", "second password", "", "")
	if err != nil {
		t.Fatalf("CreateAdmin again: %v", err)
	}
	if again.Role != types.RoleAdmin {
		t.Fatalf("role: want=%q got=%q", types.RoleAdmin, again.Role)
	}
	if _, _, err := svc.LoginUser(ctx, "owner@example.com", "first password"); !errors.Is(err, errs.ErrUnauthorized) {
		t.Fatalf("old password: want unauthorized got=%v", err)
	}
	if _, _, err := svc.LoginUser(ctx, "owner@example.com", "second password"); err != nil {
		t.Fatalf("new password: %v", err)
	}
}

func TestRefreshRotatesTokens(t *testing.T) {
	e := newEnv(t)
	svc := newAuth(e)
	ctx := context.Background()

	if _, err := svc.CreateAdmin(ctx, "a@example.com", "long enough", "", ""); err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}
	access, refresh, err := svc.LoginUser(ctx, "a@example.com", "long enough")
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}

	newAccess, newRefresh, err := svc.RefreshUser(ctx, refresh)
	if err != nil {
		t.Fatalf("RefreshUser: %v", err)
	}
	if newAccess == access || newRefresh == refresh {
		t.Fatalf("refresh: want rotated tokens")
	}
	if _, _, err := svc.RefreshUser(ctx, refresh); !errors.Is(err, errs.ErrUnauthorized) {
		t.Fatalf("reused refresh token: want unauthorized got=%v", err)
	}
	if _, err := svc.SetContextFromToken(ctx, access); !errors.Is(err, errs.ErrUnauthorized) {
		t.Fatalf("old access token: want unauthorized got=%v", err)
	}
	if _, err := svc.SetContextFromToken(ctx, newAccess); err != nil {
		t.Fatalf("new access token: %v", err)
	}
}

func TestRefreshRejectsNearExpiry(t *testing.T) {
	e := newEnv(t)
	svc := newAuth(e)
	svc.refreshTTL = 2 * time.Minute
	ctx := context.Background()

	if _, err := svc.CreateAdmin(ctx, "b@example.com", "long enough", "", ""); err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}
	_, refresh, err := svc.LoginUser(ctx, "b@example.com", "long enough")
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}
	if _, _, err := svc.RefreshUser(ctx, refresh); !errors.Is(err, errs.ErrUnauthorized) {
		t.Fatalf("near-expiry refresh: want unauthorized got=%v", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	e := newEnv(t)
	svc := newAuth(e)
	ctx := context.Background()

	if _, err := svc.CreateAdmin(ctx, "c@example.com", "long enough", "", ""); err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}
	access, _, err := svc.LoginUser(ctx, "c@example.com", "long enough")
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}
	authed, err := svc.SetContextFromToken(ctx, access)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	if err := svc.LogoutUser(authed); err != nil {
		t.Fatalf("LogoutUser: %v", err)
	}
	if _, err := svc.SetContextFromToken(ctx, access); !errors.Is(err, errs.ErrUnauthorized) {
		t.Fatalf("after logout: want unauthorized got=%v", err)
	}
	if err := svc.LogoutUser(ctx); !errors.Is(err, errs.ErrUnauthorized) {
		t.Fatalf("logout without session: want unauthorized got=%v", err)
	}
}

func TestSetContextFromTokenRejectsForeignSignature(t *testing.T) {
	e := newEnv(t)
	svc := newAuth(e)
	other := newAuth(e)
	other.jwtSecretKey = "another-secret"
	ctx := context.Background()

	u, err := svc.CreateAdmin(ctx, "d@example.com", "long enough", "", "")
	if err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}
	forged, err := other.generateAccessToken(u)
	if err != nil {
		t.Fatalf("generateAccessToken: %v", err)
	}
	if _, err := svc.SetContextFromToken(ctx, forged); !errors.Is(err, errs.ErrUnauthorized) {
		t.Fatalf("foreign signature: want unauthorized got=%v", err)
	}
	if _, err := svc.SetContextFromToken(ctx, ""); !errors.Is(err, errs.ErrUnauthorized) {
		t.Fatalf("empty token: want unauthorized got=%v", err)
	}
}
