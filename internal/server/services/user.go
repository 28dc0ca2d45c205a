// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, caller resolution, and
// issuing/refreshing JWTs plus server-stored refresh tokens.
package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/gophdrop/internal/common"
	"github.com/dmitrijs2005/gophdrop/internal/cryptox"
	"github.com/dmitrijs2005/gophdrop/internal/dbx"
	"github.com/dmitrijs2005/gophdrop/internal/server/auth"
	"github.com/dmitrijs2005/gophdrop/internal/server/config"
	"github.com/dmitrijs2005/gophdrop/internal/server/models"
	"github.com/dmitrijs2005/gophdrop/internal/server/repositories/repomanager"
)

const maxUsernameLen = 64

var usernameRe = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

// validUsername also excludes "." and "..", which would escape a
// directory-backed namespace.
func validUsername(s string) bool {
	return usernameRe.MatchString(s) && s != "." && s != ".."
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return validUsername(fl.Field().String())
	})
	return v
}

type registration struct {
	Username string `validate:"required,username"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// UserService provides authentication-related operations:
// - Register / Login / LoginExternal: create or verify accounts and mint tokens
// - RefreshToken / Logout: rotate or revoke refresh tokens
// - ResolveCaller: turn an access token into the caller's username
type UserService struct {
	repomanager                  repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		repomanager:                  m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// Register validates and stores a password account, then logs it in.
// A taken username or email yields common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.TokenPair, error) {
	in := registration{Username: username, Email: email, Password: password}
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user, err := s.repomanager.Users(s.repomanager.DB()).Create(ctx, &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return s.generateTokenPair(ctx, user, s.repomanager.DB())
}

// Login verifies email and password. Unknown emails, accounts without a
// password and wrong passwords are all common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.TokenPair, error) {
	user, err := s.repomanager.Users(s.repomanager.DB()).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	if user.PasswordHash == "" {
		return nil, common.ErrorUnauthorized
	}
	if err := cryptox.CheckPassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return nil, err
		}
		return nil, common.ErrorInternal
	}
	return s.generateTokenPair(ctx, user, s.repomanager.DB())
}

// LoginExternal finds or creates the account bound to an identity asserted
// by an external provider. The username is derived from displayName; when
// that name is taken a suffix from externalID is tried once.
func (s *UserService) LoginExternal(ctx context.Context, provider, externalID, email, displayName string) (*models.TokenPair, error) {
	if provider == "" || externalID == "" {
		return nil, fmt.Errorf("%w: provider and external id are required", common.ErrorValidation)
	}
	if err := validate.Var(email, "required,email"); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	repo := s.repomanager.Users(s.repomanager.DB())
	candidate := &models.User{
		Username:   deriveUsername(displayName, provider, externalID),
		Email:      email,
		Provider:   provider,
		ExternalID: externalID,
	}

	user, err := repo.CreateOrGetExternal(ctx, candidate)
	if errors.Is(err, common.ErrorAlreadyExists) {
		candidate.Username = withSuffix(candidate.Username, sanitizeUsername(externalID))
		user, err = repo.CreateOrGetExternal(ctx, candidate)
	}
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error linking external account: %w", err)
	}

	return s.generateTokenPair(ctx, user, s.repomanager.DB())
}

// RefreshToken redeems a refresh token and returns a fresh TokenPair, all
// in one transaction. Unknown tokens are common.ErrorUnauthorized and
// expired ones common.ErrRefreshTokenExpired.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	var pair *models.TokenPair
	err := s.repomanager.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		token, err := s.repomanager.RefreshTokens(tx).Consume(ctx, refreshToken)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorUnauthorized
			}
			return fmt.Errorf("error consuming refresh token: %w", err)
		}
		if token.Expired(time.Now()) {
			return common.ErrRefreshTokenExpired
		}

		user, err := s.repomanager.Users(tx).GetByID(ctx, token.UserID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorUnauthorized
			}
			return fmt.Errorf("error loading user: %w", err)
		}

		pair, err = s.generateTokenPair(ctx, user, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

// Logout revokes a refresh token. Revoking an unknown token is not an error.
func (s *UserService) Logout(ctx context.Context, refreshToken string) error {
	if err := s.repomanager.RefreshTokens(s.repomanager.DB()).Delete(ctx, refreshToken); err != nil {
		return fmt.Errorf("error deleting refresh token: %w", err)
	}
	return nil
}

// ResolveCaller returns the username carried by a valid access token.
// Every failure wraps common.ErrorUnauthorized; expiry additionally wraps
// common.ErrTokenExpired so clients know to refresh.
func (s *UserService) ResolveCaller(ctx context.Context, accessToken string) (string, error) {
	if accessToken == "" {
		return "", common.ErrorUnauthorized
	}
	id, err := auth.ParseToken(accessToken, s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}
	return id.Username, nil
}

// --- helpers below ---

func (s *UserService) generateAccessToken(user *models.User) (string, error) {
	return auth.GenerateToken(auth.Identity{UserID: user.ID, Username: user.Username},
		s.jwtSecret, s.accessTokenValidityDuration)
}

func (s *UserService) generateRefreshToken() (string, error) {
	return common.MakeRandHexString(32)
}

func (s *UserService) generateTokenPair(ctx context.Context, user *models.User, tx dbx.DBTX) (*models.TokenPair, error) {
	access, err := s.generateAccessToken(user)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := s.generateRefreshToken()
	if err != nil {
		return nil, common.ErrorInternal
	}
	refreshRepo := s.repomanager.RefreshTokens(tx)
	if err := refreshRepo.Create(ctx, user.ID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &models.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// sanitizeUsername maps every disallowed rune to '_' and truncates.
func sanitizeUsername(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := b.String()
	if len(out) > maxUsernameLen {
		out = out[:maxUsernameLen]
	}
	return out
}

func deriveUsername(displayName, provider, externalID string) string {
	if name := sanitizeUsername(displayName); validUsername(name) {
		return name
	}
	return sanitizeUsername(provider + "-" + externalID)
}

func withSuffix(name, suffix string) string {
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	suffix = "-" + suffix
	if len(name)+len(suffix) > maxUsernameLen {
		name = name[:maxUsernameLen-len(suffix)]
	}
	return name + suffix
}
