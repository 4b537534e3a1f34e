package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/portfolio-backend/internal/data/repos"
	types "github.com/yungbote/portfolio-backend/internal/domain"
	"github.com/yungbote/portfolio-backend/internal/platform/ctxutil"
	"github.com/yungbote/portfolio-backend/internal/platform/dbctx"
	"github.com/yungbote/portfolio-backend/internal/platform/errs"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
)

const (
	minPasswordLength = 8
	// refresh tokens inside this window of expiry are treated as expired.
	refreshExpiryBuffer = 5 * time.Minute
)

type JWTClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	LoginUser(ctx context.Context, email, password string) (string, string, error)
	// RefreshUser rotates the token pair. refreshToken falls back to the one
	// attached to ctx by SetContextFromToken.
	RefreshUser(ctx context.Context, refreshToken string) (string, string, error)
	LogoutUser(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	// GetMe loads the user attached to ctx.
	GetMe(ctx context.Context) (*types.User, error)
	// CreateAdmin creates an admin user, or promotes and resets an existing one.
	CreateAdmin(ctx context.Context, email, password, firstName, lastName string) (*types.User, error)
	// PruneExpiredTokens deletes token rows that expired before now.
	PruneExpiredTokens(ctx context.Context) (int64, error)
	GetAccessTTL() time.Duration
	GetRefreshTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

func unauthorized(msg string) error {
	return fmt.Errorf("%s: %w", msg, errs.ErrUnauthorized)
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := errs.Required("email", email, "password", password); err != nil {
		return "", "", err
	}

	users, err := as.userRepo.GetByEmails(dbctx.Context{Ctx: ctx}, []string{email})
	if err != nil {
		return "", "", err
	}
	if len(users) == 0 {
		return "", "", unauthorized("invalid email or password")
	}
	user := users[0]
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", unauthorized("invalid email or password")
	}

	var accessToken, refreshToken string
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inner := dbctx.Context{Ctx: ctx, Tx: tx}
		found, err := as.userTokenRepo.GetByUserIDs(inner, []uuid.UUID{user.ID})
		if err != nil {
			return err
		}
		var expired []*types.UserToken
		for _, t := range found {
			if t != nil && t.ExpiresAt.Before(as.now()) {
				expired = append(expired, t)
			}
		}
		if err := as.userTokenRepo.FullDeleteByTokens(inner, expired); err != nil {
			return err
		}
		accessToken, refreshToken, err = as.issueTokens(inner, user)
		return err
	})
	if err != nil {
		as.log.Warn("Login failed", "user_id", user.ID.String(), "error", err)
		return "", "", err
	}
	as.log.Info("User logged in", "user_id", user.ID.String(), "role", user.Role)
	return accessToken, refreshToken, nil
}

func (as *authService) RefreshUser(ctx context.Context, refreshToken string) (string, string, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		if rd := ctxutil.GetRequestData(ctx); rd != nil {
			refreshToken = rd.RefreshToken
		}
	}
	if refreshToken == "" {
		return "", "", unauthorized("refresh token required")
	}

	var accessToken, newRefreshToken string
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inner := dbctx.Context{Ctx: ctx, Tx: tx}
		found, err := as.userTokenRepo.GetByRefreshTokens(inner, []string{refreshToken})
		if err != nil {
			return err
		}
		if len(found) == 0 || found[0] == nil {
			return unauthorized("unknown refresh token")
		}
		existing := found[0]
		if existing.ExpiresAt.Before(as.now().Add(refreshExpiryBuffer)) {
			if err := as.userTokenRepo.FullDeleteByTokens(inner, []*types.UserToken{existing}); err != nil {
				return err
			}
			return unauthorized("refresh token expired")
		}
		users, err := as.userRepo.GetByIDs(inner, []uuid.UUID{existing.UserID})
		if err != nil {
			return err
		}
		if len(users) == 0 {
			return unauthorized("no user for refresh token")
		}
		if err := as.userTokenRepo.FullDeleteByTokens(inner, []*types.UserToken{existing}); err != nil {
			return err
		}
		accessToken, newRefreshToken, err = as.issueTokens(inner, users[0])
		return err
	})
	if err != nil {
		as.log.Warn("Token refresh failed", "error", err)
		return "", "", err
	}
	return accessToken, newRefreshToken, nil
}

func (as *authService) LogoutUser(ctx context.Context) error {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.TokenString == "" {
		return unauthorized("no session in request")
	}
	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inner := dbctx.Context{Ctx: ctx, Tx: tx}
		found, err := as.userTokenRepo.GetByAccessTokens(inner, []string{rd.TokenString})
		if err != nil {
			return err
		}
		if err := as.userTokenRepo.FullDeleteByTokens(inner, found); err != nil {
			return err
		}
		as.log.Info("User logged out", "user_id", rd.UserID.String())
		return nil
	})
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, unauthorized("missing token")
	}
	claims := &JWTClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(as.now))
	if err != nil || !parsed.Valid {
		return ctx, unauthorized("invalid or expired token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, unauthorized("invalid subject in token")
	}

	found, err := as.userTokenRepo.GetByAccessTokens(dbctx.Context{Ctx: ctx}, []string{tokenString})
	if err != nil {
		return ctx, err
	}
	if len(found) == 0 || found[0] == nil {
		return ctx, unauthorized("token revoked")
	}
	rd := &ctxutil.RequestData{
		TokenString:  tokenString,
		RefreshToken: found[0].RefreshToken,
		UserID:       userID,
		Role:         claims.Role,
	}
	return ctxutil.WithRequestData(ctx, rd), nil
}

func (as *authService) GetMe(ctx context.Context) (*types.User, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, unauthorized("no session")
	}
	users, err := as.userRepo.GetByIDs(dbctx.Context{Ctx: ctx}, []uuid.UUID{rd.UserID})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 || users[0] == nil {
		return nil, errs.ErrNotFound
	}
	return users[0], nil
}

func (as *authService) CreateAdmin(ctx context.Context, email, password, firstName, lastName string) (*types.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := errs.Required("email", email, "password", password); err != nil {
		return nil, err
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, errs.Invalid("email", "is not a valid address")
	}
	if len(password) < minPasswordLength {
		return nil, errs.Invalid("password", "must be at least %d characters", minPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var out *types.User
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inner := dbctx.Context{Ctx: ctx, Tx: tx}
		existing, err := as.userRepo.GetByEmails(inner, []string{email})
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			u := existing[0]
			if err := as.userRepo.UpdateRole(inner, u.ID, types.RoleAdmin); err != nil {
				return err
			}
			if err := as.userRepo.UpdatePassword(inner, u.ID, string(hash)); err != nil {
				return err
			}
			u.Role = types.RoleAdmin
			out = u
			return nil
		}
		created, err := as.userRepo.Create(inner, []*types.User{{
			Email:     email,
			Password:  string(hash),
			FirstName: strings.TrimSpace(firstName),
			LastName:  strings.TrimSpace(lastName),
			Role:      types.RoleAdmin,
		}})
		if err != nil {
			return err
		}
		out = created[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	as.log.Info("Admin user ready", "user_id", out.ID.String())
	return out, nil
}

func (as *authService) PruneExpiredTokens(ctx context.Context) (int64, error) {
	return as.userTokenRepo.FullDeleteExpired(dbctx.Context{Ctx: ctx}, as.now())
}

func (as *authService) GetAccessTTL() time.Duration  { return as.accessTTL }
func (as *authService) GetRefreshTTL() time.Duration { return as.refreshTTL }

// issueTokens signs an access token and stores it with a fresh refresh token.
func (as *authService) issueTokens(dbc dbctx.Context, user *types.User) (string, string, error) {
	access, err := as.generateAccessToken(user)
	if err != nil {
		return "", "", fmt.Errorf("generate access token: %w", err)
	}
	refresh := uuid.New().String()
	token := &types.UserToken{
		UserID:       user.ID,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    as.now().Add(as.refreshTTL),
	}
	if _, err := as.userTokenRepo.Create(dbc, []*types.UserToken{token}); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	if user == nil {
		return "", errors.New("user required")
	}
	now := as.now()
	claims := JWTClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}
