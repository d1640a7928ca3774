// Package auth provides admin dashboard authentication. There is a single
// operator account configured through the environment (username plus bcrypt
// password hash); successful login yields a short-lived JWT access token.
package auth

import (
	"context"
	"time"

	"freight_leads_backend/platform/apperr"
	"freight_leads_backend/platform/config"
	"freight_leads_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const accessTokenType = "access"

const msgInvalidCredentials = "invalid credentials"

// Service validates operator credentials and issues access tokens.
type Service struct {
	cfg    config.AuthConfig
	logger *logger.Logger
}

// NewService creates a new auth service.
func NewService(cfg config.AuthConfig, log *logger.Logger) *Service {
	return &Service{cfg: cfg, logger: log}
}

// Login checks the credentials against the configured operator account and
// returns a signed access token with its expiry.
func (s *Service) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	if username != s.cfg.GetAdminUsername() {
		// Burn a bcrypt comparison anyway so unknown usernames are not
		// distinguishable from wrong passwords by timing.
		_ = bcrypt.CompareHashAndPassword([]byte(s.cfg.GetAdminPasswordHash()), []byte(password))
		s.logger.WithContext(ctx).AuthEvent("login", username, false, "unknown username")
		return "", time.Time{}, apperr.Unauthorized(msgInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.GetAdminPasswordHash()), []byte(password)); err != nil {
		s.logger.WithContext(ctx).AuthEvent("login", username, false, "wrong password")
		return "", time.Time{}, apperr.Unauthorized(msgInvalidCredentials)
	}

	expiresAt := time.Now().Add(s.cfg.GetAccessTokenTTL())
	token, err := s.signJWT(username, expiresAt)
	if err != nil {
		return "", time.Time{}, apperr.Wrap(apperr.KindInternal, "failed to issue token", err)
	}

	s.logger.WithContext(ctx).AuthEvent("login", username, true, "")
	return token, expiresAt, nil
}

func (s *Service) signJWT(username string, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":  username,
		"type": accessTokenType,
		"exp":  expiresAt.Unix(),
		"iat":  time.Now().Unix(),
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenObj.SignedString([]byte(s.cfg.GetJWTSecret()))
}
