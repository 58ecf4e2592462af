package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/SAMSGit/sams_api/internal/models"
	"github.com/SAMSGit/sams_api/internal/utils"
)

type fakePrincipalStore struct {
	byUsername map[string]*models.Principal
	byID       map[int]*models.Principal
	lastLogin  map[int]time.Time
}

func newFakePrincipalStore(principals ...*models.Principal) *fakePrincipalStore {
	s := &fakePrincipalStore{
		byUsername: make(map[string]*models.Principal),
		byID:       make(map[int]*models.Principal),
		lastLogin:  make(map[int]time.Time),
	}
	for _, p := range principals {
		s.byUsername[p.Username] = p
		s.byID[p.ID] = p
	}
	return s
}

func (s *fakePrincipalStore) GetByUsername(username string) (*models.Principal, error) {
	p, ok := s.byUsername[username]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return p, nil
}

func (s *fakePrincipalStore) GetByID(id int) (*models.Principal, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return p, nil
}

func (s *fakePrincipalStore) UpdateLastLogin(id int) error {
	s.lastLogin[id] = time.Now()
	return nil
}

type fakeRevoker struct {
	revoked map[string]bool
}

func newFakeRevoker() *fakeRevoker {
	return &fakeRevoker{revoked: make(map[string]bool)}
}

func (r *fakeRevoker) Revoke(_ context.Context, jti string, _ time.Time) error {
	r.revoked[jti] = true
	return nil
}

func (r *fakeRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	return r.revoked[jti], nil
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLogin(t *testing.T) {
	utils.SetJWTSecret("test-secret")
	principal := &models.Principal{
		ID:           7,
		Username:     "jdoe",
		PasswordHash: hashPassword(t, "correct-pw"),
		IsStaff:      true,
	}
	store := newFakePrincipalStore(principal)
	svc := NewAuthService(store, newFakeRevoker())

	token, err := svc.Login("jdoe", "correct-pw")
	require.NoError(t, err)

	claims, err := utils.ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "jdoe", claims.Username)
	assert.True(t, claims.IsStaff)
	assert.Contains(t, store.lastLogin, 7, "last login recorded")
}

func TestLoginWrongPassword(t *testing.T) {
	utils.SetJWTSecret("test-secret")
	store := newFakePrincipalStore(&models.Principal{
		ID:           7,
		Username:     "jdoe",
		PasswordHash: hashPassword(t, "correct-pw"),
	})
	svc := NewAuthService(store, newFakeRevoker())

	_, err := svc.Login("jdoe", "wrong-pw")
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestLoginUnknownUsername(t *testing.T) {
	utils.SetJWTSecret("test-secret")
	svc := NewAuthService(newFakePrincipalStore(), newFakeRevoker())

	_, err := svc.Login("nobody", "whatever")
	// Same error as a wrong password so callers cannot probe for accounts.
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestLogoutRevokesToken(t *testing.T) {
	utils.SetJWTSecret("test-secret")
	store := newFakePrincipalStore(&models.Principal{
		ID:           7,
		Username:     "jdoe",
		PasswordHash: hashPassword(t, "correct-pw"),
	})
	revoker := newFakeRevoker()
	svc := NewAuthService(store, revoker)

	token, err := svc.Login("jdoe", "correct-pw")
	require.NoError(t, err)
	claims, err := utils.ValidateJWT(token)
	require.NoError(t, err)

	ctx := context.Background()
	revoked, err := svc.IsTokenRevoked(ctx, claims)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, svc.Logout(ctx, claims))

	revoked, err = svc.IsTokenRevoked(ctx, claims)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestMe(t *testing.T) {
	principal := &models.Principal{ID: 7, Username: "jdoe"}
	svc := NewAuthService(newFakePrincipalStore(principal), newFakeRevoker())

	got, err := svc.Me(7)
	require.NoError(t, err)
	assert.Equal(t, "jdoe", got.Username)

	_, err = svc.Me(99)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}
