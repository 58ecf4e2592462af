package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAMSGit/sams_api/internal/models"
	"github.com/SAMSGit/sams_api/internal/service"
	"github.com/SAMSGit/sams_api/internal/utils"
)

// stubAdminStore holds a single seeded profile/principal pair.
type stubAdminStore struct {
	profile   models.AdminUser
	principal models.Principal
}

func (s *stubAdminStore) CreateWithPrincipal(*models.Principal, *models.AdminUser) error {
	return nil
}

func (s *stubAdminStore) GetByID(id int) (*models.AdminUser, error) {
	if id != s.profile.ID {
		return nil, utils.ErrNotFound
	}
	cp := s.profile
	cp.Derive()
	return &cp, nil
}

func (s *stubAdminStore) List() ([]*models.AdminUser, error) {
	cp := s.profile
	cp.Derive()
	return []*models.AdminUser{&cp}, nil
}

func (s *stubAdminStore) ListByCreator(int) ([]*models.AdminUser, error) {
	return s.List()
}

func (s *stubAdminStore) Update(profile *models.AdminUser, newPasswordHash *string) error {
	s.profile = *profile
	if newPasswordHash != nil {
		s.principal.PasswordHash = *newPasswordHash
	}
	return nil
}

func (s *stubAdminStore) Delete(int) error { return nil }

func newAdminUserTestRouter(store *stubAdminStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAdminUserHandler(service.NewAdminUserService(store))

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("claims", &utils.Claims{UserID: 1, Username: "root", IsStaff: true, IsSuperuser: true})
	})
	router.PUT("/admin-users/:id", h.ReplaceAdminUser)
	router.PATCH("/admin-users/:id", h.UpdateAdminUser)
	return router
}

func seededAdminStore() *stubAdminStore {
	return &stubAdminStore{
		profile: models.AdminUser{
			ID:          5,
			PrincipalID: 5,
			Role:        models.RoleAdmin,
			Status:      models.StatusActive,
			Notes:       "keeps the keys",
			Username:    "jdoe",
			Email:       "jdoe@example.com",
			FirstName:   "Jane",
			LastName:    "Doe",
			IsStaff:     true,
		},
		principal: models.Principal{ID: 5, Username: "jdoe", PasswordHash: "hash"},
	}
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestReplaceAdminUserResetsOmittedFields(t *testing.T) {
	store := seededAdminStore()
	router := newAdminUserTestRouter(store)

	w := doJSON(router, http.MethodPut, "/admin-users/5",
		`{"role": "staff", "status": "inactive"}`)
	require.Equal(t, 200, w.Code)

	// A full replacement zeroes everything the payload left out.
	assert.Equal(t, models.RoleStaff, store.profile.Role)
	assert.Equal(t, models.StatusInactive, store.profile.Status)
	assert.Empty(t, store.profile.Notes)
	assert.Empty(t, store.profile.Email)
	assert.Empty(t, store.profile.FirstName)
	assert.False(t, store.profile.IsStaff)
}

func TestReplaceAdminUserRequiresRoleAndStatus(t *testing.T) {
	store := seededAdminStore()
	router := newAdminUserTestRouter(store)

	w := doJSON(router, http.MethodPut, "/admin-users/5", `{"notes": "partial"}`)
	assert.Equal(t, 400, w.Code)
	assert.Equal(t, "keeps the keys", store.profile.Notes, "rejected replace leaves the record untouched")
}

func TestPatchAdminUserLeavesOmittedFields(t *testing.T) {
	store := seededAdminStore()
	router := newAdminUserTestRouter(store)

	w := doJSON(router, http.MethodPatch, "/admin-users/5", `{"notes": "rotated badge"}`)
	require.Equal(t, 200, w.Code)

	assert.Equal(t, "rotated badge", store.profile.Notes)
	assert.Equal(t, models.RoleAdmin, store.profile.Role)
	assert.Equal(t, "jdoe@example.com", store.profile.Email)
	assert.True(t, store.profile.IsStaff)
}
