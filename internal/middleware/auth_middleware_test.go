package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAMSGit/sams_api/internal/models"
	"github.com/SAMSGit/sams_api/internal/service"
	"github.com/SAMSGit/sams_api/internal/utils"
)

type nopPrincipalStore struct{}

func (nopPrincipalStore) GetByUsername(string) (*models.Principal, error) {
	return nil, utils.ErrNotFound
}
func (nopPrincipalStore) GetByID(int) (*models.Principal, error) { return nil, utils.ErrNotFound }
func (nopPrincipalStore) UpdateLastLogin(int) error              { return nil }

type memRevoker struct {
	revoked map[string]bool
	err     error
}

func (r *memRevoker) Revoke(_ context.Context, jti string, _ time.Time) error {
	r.revoked[jti] = true
	return nil
}

func (r *memRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	return r.revoked[jti], nil
}

// newTestRouter builds a fresh router per test so the invalid-auth rate
// limiter never carries state across tests.
func newTestRouter() (*gin.Engine, *memRevoker) {
	gin.SetMode(gin.TestMode)
	revoker := &memRevoker{revoked: make(map[string]bool)}
	authSvc := service.NewAuthService(nopPrincipalStore{}, revoker)
	mw := NewAuthMiddleware(authSvc)

	ok := func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) }
	router := gin.New()
	router.GET("/protected", mw.Handle(), ok)
	router.GET("/staff", mw.Handle(), mw.RequireStaff(), ok)
	router.GET("/optional", mw.HandleOptional(), func(c *gin.Context) {
		claims := Caller(c)
		if claims == nil {
			c.JSON(200, gin.H{"caller": "anonymous"})
			return
		}
		c.JSON(200, gin.H{"caller": claims.Username})
	})
	return router, revoker
}

func doRequest(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleRejectsMissingToken(t *testing.T) {
	router, _ := newTestRouter()
	w := doRequest(router, "/protected", "")
	assert.Equal(t, 401, w.Code)
}

func TestHandleRejectsGarbageToken(t *testing.T) {
	router, _ := newTestRouter()
	w := doRequest(router, "/protected", "not-a-token")
	assert.Equal(t, 401, w.Code)
}

func TestHandleAcceptsValidToken(t *testing.T) {
	utils.SetJWTSecret("test-secret")
	router, _ := newTestRouter()

	token, err := utils.GenerateJWT(7, "jdoe", false, false)
	require.NoError(t, err)

	w := doRequest(router, "/protected", token)
	assert.Equal(t, 200, w.Code)
}

func TestHandleRejectsRevokedToken(t *testing.T) {
	utils.SetJWTSecret("test-secret")
	router, revoker := newTestRouter()

	token, err := utils.GenerateJWT(7, "jdoe", false, false)
	require.NoError(t, err)
	claims, err := utils.ValidateJWT(token)
	require.NoError(t, err)
	revoker.revoked[claims.ID] = true

	w := doRequest(router, "/protected", token)
	assert.Equal(t, 401, w.Code)
}

func TestHandleDenylistOutageIsInternalError(t *testing.T) {
	utils.SetJWTSecret("test-secret")
	router, revoker := newTestRouter()
	revoker.err = errors.New("connection refused")

	token, err := utils.GenerateJWT(7, "jdoe", false, false)
	require.NoError(t, err)

	// An unreachable denylist still blocks the request, but as an internal
	// error rather than a revoked or invalid credential.
	w := doRequest(router, "/protected", token)
	assert.Equal(t, 500, w.Code)
	assert.NotContains(t, w.Body.String(), "revoked")
}

func TestRequireStaff(t *testing.T) {
	utils.SetJWTSecret("test-secret")

	router, _ := newTestRouter()
	nonStaff, err := utils.GenerateJWT(7, "jdoe", false, false)
	require.NoError(t, err)
	w := doRequest(router, "/staff", nonStaff)
	assert.Equal(t, 403, w.Code)

	staff, err := utils.GenerateJWT(8, "admin", true, false)
	require.NoError(t, err)
	w = doRequest(router, "/staff", staff)
	assert.Equal(t, 200, w.Code)
}

func TestHandleOptional(t *testing.T) {
	utils.SetJWTSecret("test-secret")
	router, _ := newTestRouter()

	// Anonymous requests pass through.
	w := doRequest(router, "/optional", "")
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "anonymous")

	// Presented credentials are still validated.
	w = doRequest(router, "/optional", "garbage")
	assert.Equal(t, 401, w.Code)

	token, err := utils.GenerateJWT(7, "jdoe", false, false)
	require.NoError(t, err)
	w = doRequest(router, "/optional", token)
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "jdoe")
}
