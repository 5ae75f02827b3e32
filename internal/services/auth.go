package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"inkpost/internal/logger"
	"inkpost/internal/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrLoginDisabled      = errors.New("operator login is not configured")
)

// AuthService authenticates the single blog operator configured through
// ADMIN_USERNAME and ADMIN_PASSWORD_HASH.
type AuthService struct {
	username     string
	passwordHash string
	jwtSecret    string
	accessTTL    time.Duration
}

func NewAuthService(username, passwordHash, jwtSecret string, accessTTL time.Duration) *AuthService {
	return &AuthService{
		username:     strings.TrimSpace(username),
		passwordHash: passwordHash,
		jwtSecret:    jwtSecret,
		accessTTL:    accessTTL,
	}
}

type LoginResult struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	log := logger.WithCtx(ctx)
	log.Info("Login attempt (service)", zap.String("username", username))

	if s.passwordHash == "" || s.jwtSecret == "" {
		log.Warn("Login rejected, operator credentials are not configured")
		return nil, ErrLoginDisabled
	}

	userOK := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(username)), []byte(s.username)) == 1
	// bcrypt runs even for an unknown username so both failures cost the same.
	passOK := utils.CheckPasswordHash(password, s.passwordHash)
	if !userOK || !passOK {
		log.Warn("Invalid credentials (service)", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	token, exp, err := utils.GenerateToken(s.jwtSecret, s.username, utils.RoleAdmin, s.accessTTL)
	if err != nil {
		log.Error("Failed to generate access token", zap.Error(err))
		return nil, err
	}

	log.Info("Login succeeded (service)", zap.String("username", s.username), zap.Time("expires_at", exp))
	return &LoginResult{AccessToken: token, ExpiresAt: exp}, nil
}
