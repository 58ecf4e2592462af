package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/SAMSGit/sams_api/internal/models"
	"github.com/SAMSGit/sams_api/internal/utils"
)

// PrincipalStore is the persistence contract for login lookups.
type PrincipalStore interface {
	GetByUsername(username string) (*models.Principal, error)
	GetByID(id int) (*models.Principal, error)
	UpdateLastLogin(id int) error
}

// TokenRevoker tracks revoked token IDs so logged-out tokens stop working.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthService authenticates principals and manages their tokens.
type AuthService struct {
	principals PrincipalStore
	tokens     TokenRevoker
}

// NewAuthService constructs an AuthService.
func NewAuthService(principals PrincipalStore, tokens TokenRevoker) *AuthService {
	return &AuthService{principals: principals, tokens: tokens}
}

// Login verifies the username/password pair and returns a signed token.
// Unknown usernames, wrong passwords and inactive accounts all surface the
// same invalid-credentials error so callers cannot probe for accounts.
func (s *AuthService) Login(username, password string) (string, error) {
	principal, err := s.principals.GetByUsername(username)
	if err != nil {
		log.Warn().Str("username", username).Msg("login attempt for unknown username")
		return "", utils.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(principal.PasswordHash), []byte(password)); err != nil {
		log.Warn().Str("username", username).Msg("login attempt with wrong password")
		return "", utils.ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(principal.ID, principal.Username, principal.IsStaff, principal.IsSuperuser)
	if err != nil {
		return "", err
	}

	if err := s.principals.UpdateLastLogin(principal.ID); err != nil {
		// Login still succeeds; the timestamp is bookkeeping only.
		log.Error().Err(err).Int("principal_id", principal.ID).Msg("failed to update last_login")
	}

	log.Info().Str("username", username).Msg("login successful")
	return token, nil
}

// Logout revokes the presented token until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, claims *utils.Claims) error {
	if claims.ExpiresAt == nil {
		return nil
	}
	return s.tokens.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

// IsTokenRevoked reports whether the token has been revoked by a logout.
func (s *AuthService) IsTokenRevoked(ctx context.Context, claims *utils.Claims) (bool, error) {
	if claims.ID == "" {
		return false, nil
	}
	return s.tokens.IsRevoked(ctx, claims.ID)
}

// Me returns the principal behind a validated token.
func (s *AuthService) Me(userID int) (*models.Principal, error) {
	return s.principals.GetByID(userID)
}
