package service

import (
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/SAMSGit/sams_api/internal/models"
	"github.com/SAMSGit/sams_api/internal/utils"
)

// MinPasswordLength is the minimum accepted password length for admin accounts.
const MinPasswordLength = 6

// AdminUserStore is the persistence contract the provisioning service relies
// on. *repository.AdminUserRepository satisfies it; tests substitute a fake.
type AdminUserStore interface {
	CreateWithPrincipal(principal *models.Principal, profile *models.AdminUser) error
	GetByID(id int) (*models.AdminUser, error)
	List() ([]*models.AdminUser, error)
	ListByCreator(creatorID int) ([]*models.AdminUser, error)
	Update(profile *models.AdminUser, newPasswordHash *string) error
	Delete(id int) error
}

// AdminUserService provisions administrative accounts. Each account is a
// principal (the authentication identity) plus an admin profile (the business
// record); the service keeps the pair synchronized and applies the caller's
// visibility policy on reads.
type AdminUserService struct {
	store AdminUserStore
}

// NewAdminUserService constructs an AdminUserService.
func NewAdminUserService(store AdminUserStore) *AdminUserService {
	return &AdminUserService{store: store}
}

// CreateAdminUserRequest carries the input for provisioning a new account.
// Password is write-only and never appears in any response.
type CreateAdminUserRequest struct {
	Username    string             `json:"username" binding:"required"`
	Email       string             `json:"email" binding:"omitempty,email"`
	FirstName   string             `json:"first_name"`
	LastName    string             `json:"last_name"`
	Password    string             `json:"password" binding:"required"`
	Role        models.AdminRole   `json:"role"`
	Status      models.AdminStatus `json:"status"`
	Notes       string             `json:"notes"`
	IsStaff     bool               `json:"is_staff"`
	IsSuperuser bool               `json:"is_superuser"`
}

// UpdateAdminUserRequest carries a partial update. Nil fields are left
// untouched; identity fields propagate to the linked principal.
type UpdateAdminUserRequest struct {
	Email       *string             `json:"email" binding:"omitempty,email"`
	FirstName   *string             `json:"first_name"`
	LastName    *string             `json:"last_name"`
	Password    *string             `json:"password"`
	Role        *models.AdminRole   `json:"role"`
	Status      *models.AdminStatus `json:"status"`
	Notes       *string             `json:"notes"`
	IsStaff     *bool               `json:"is_staff"`
	IsSuperuser *bool               `json:"is_superuser"`
}

// Create provisions a new admin account: a principal with the hashed
// password plus a profile recording the requesting principal as creator.
// Both records are persisted atomically; neither survives a failure.
func (s *AdminUserService) Create(req *CreateAdminUserRequest, requester *models.Principal) (*models.AdminUser, error) {
	if len(req.Password) < MinPasswordLength {
		return nil, utils.NewValidationError("password", "must be at least 6 characters")
	}
	role := req.Role
	if role == "" {
		role = models.RoleStaff
	}
	if !models.ValidRole(role) {
		return nil, utils.NewValidationError("role", "must be one of super_admin, admin, staff")
	}
	status := req.Status
	if status == "" {
		status = models.StatusActive
	}
	if !models.ValidStatus(status) {
		return nil, utils.NewValidationError("status", "must be active or inactive")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	principal := &models.Principal{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		IsStaff:      req.IsStaff,
		IsSuperuser:  req.IsSuperuser,
	}
	profile := &models.AdminUser{
		Role:   role,
		Status: status,
		Notes:  req.Notes,
	}
	if requester != nil {
		profile.CreatedBy = &requester.ID
		profile.CreatorUsername = &requester.Username
	}

	if err := s.store.CreateWithPrincipal(principal, profile); err != nil {
		return nil, err
	}

	log.Info().
		Str("username", principal.Username).
		Str("role", string(profile.Role)).
		Msg("admin user provisioned")
	return profile, nil
}

// Get fetches one profile, applying the requester's visibility: profiles
// outside a non-superuser's created set read as not found.
func (s *AdminUserService) Get(id int, requester *models.Principal) (*models.AdminUser, error) {
	profile, err := s.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !s.visible(profile, requester) {
		return nil, utils.ErrNotFound
	}
	return profile, nil
}

// List returns the profiles visible to the requester: all of them for a
// superuser, otherwise only the ones the requester provisioned.
func (s *AdminUserService) List(requester *models.Principal) ([]*models.AdminUser, error) {
	if requester.IsSuperuser {
		return s.store.List()
	}
	return s.store.ListByCreator(requester.ID)
}

// Update applies a partial update to a visible profile. Identity fields
// propagate to the linked principal; a supplied password is re-hashed and
// replaces the stored hash; omitted fields are left untouched.
func (s *AdminUserService) Update(id int, req *UpdateAdminUserRequest, requester *models.Principal) (*models.AdminUser, error) {
	profile, err := s.Get(id, requester)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		profile.Email = *req.Email
	}
	if req.FirstName != nil {
		profile.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		profile.LastName = *req.LastName
	}
	if req.IsStaff != nil {
		profile.IsStaff = *req.IsStaff
	}
	if req.IsSuperuser != nil {
		profile.IsSuperuser = *req.IsSuperuser
	}
	if req.Role != nil {
		if !models.ValidRole(*req.Role) {
			return nil, utils.NewValidationError("role", "must be one of super_admin, admin, staff")
		}
		profile.Role = *req.Role
	}
	if req.Status != nil {
		if !models.ValidStatus(*req.Status) {
			return nil, utils.NewValidationError("status", "must be active or inactive")
		}
		profile.Status = *req.Status
	}
	if req.Notes != nil {
		profile.Notes = *req.Notes
	}

	// Hash up front so the store can commit the rotation together with the
	// rest of the pair; a failed update must not leave a new hash behind.
	var newHash *string
	if req.Password != nil {
		if len(*req.Password) < MinPasswordLength {
			return nil, utils.NewValidationError("password", "must be at least 6 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		h := string(hash)
		newHash = &h
	}

	if err := s.store.Update(profile, newHash); err != nil {
		return nil, err
	}
	return profile, nil
}

// Delete removes a visible profile together with its linked principal.
func (s *AdminUserService) Delete(id int, requester *models.Principal) error {
	if _, err := s.Get(id, requester); err != nil {
		return err
	}
	if err := s.store.Delete(id); err != nil {
		return err
	}
	log.Info().Int("admin_user_id", id).Msg("admin user deleted")
	return nil
}

// visible applies the role-scoped visibility policy: superusers see every
// profile, other callers only the profiles they created.
func (s *AdminUserService) visible(profile *models.AdminUser, requester *models.Principal) bool {
	if requester == nil {
		return false
	}
	if requester.IsSuperuser {
		return true
	}
	return profile.CreatedBy != nil && *profile.CreatedBy == requester.ID
}
