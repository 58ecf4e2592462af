package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/SAMSGit/sams_api/internal/models"
	"github.com/SAMSGit/sams_api/internal/utils"
)

// fakeAdminStore is an in-memory AdminUserStore. It mirrors the repository's
// contract: the principal and profile are created and deleted as a pair.
type fakeAdminStore struct {
	principals map[int]*models.Principal
	profiles   map[int]*models.AdminUser
	nextID     int
}

func newFakeAdminStore() *fakeAdminStore {
	return &fakeAdminStore{
		principals: make(map[int]*models.Principal),
		profiles:   make(map[int]*models.AdminUser),
	}
}

func (f *fakeAdminStore) CreateWithPrincipal(principal *models.Principal, profile *models.AdminUser) error {
	for _, p := range f.principals {
		if p.Username == principal.Username {
			return utils.ErrConflict
		}
	}
	f.nextID++
	principal.ID = f.nextID
	profile.ID = f.nextID
	profile.PrincipalID = principal.ID
	profile.Username = principal.Username
	profile.Email = principal.Email
	profile.FirstName = principal.FirstName
	profile.LastName = principal.LastName
	profile.IsStaff = principal.IsStaff
	profile.IsSuperuser = principal.IsSuperuser

	pCopy := *principal
	aCopy := *profile
	f.principals[principal.ID] = &pCopy
	f.profiles[profile.ID] = &aCopy
	return nil
}

func (f *fakeAdminStore) GetByID(id int) (*models.AdminUser, error) {
	profile, ok := f.profiles[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *profile
	cp.Derive()
	return &cp, nil
}

func (f *fakeAdminStore) List() ([]*models.AdminUser, error) {
	out := make([]*models.AdminUser, 0, len(f.profiles))
	for _, p := range f.profiles {
		cp := *p
		cp.Derive()
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeAdminStore) ListByCreator(creatorID int) ([]*models.AdminUser, error) {
	var out []*models.AdminUser
	for _, p := range f.profiles {
		if p.CreatedBy != nil && *p.CreatedBy == creatorID {
			cp := *p
			cp.Derive()
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeAdminStore) Update(profile *models.AdminUser, newPasswordHash *string) error {
	stored, ok := f.profiles[profile.ID]
	if !ok {
		return utils.ErrNotFound
	}
	cp := *profile
	f.profiles[profile.ID] = &cp
	if principal, ok := f.principals[stored.PrincipalID]; ok {
		principal.Email = profile.Email
		principal.FirstName = profile.FirstName
		principal.LastName = profile.LastName
		principal.IsStaff = profile.IsStaff
		principal.IsSuperuser = profile.IsSuperuser
		if newPasswordHash != nil {
			principal.PasswordHash = *newPasswordHash
		}
	}
	return nil
}

func (f *fakeAdminStore) Delete(id int) error {
	profile, ok := f.profiles[id]
	if !ok {
		return utils.ErrNotFound
	}
	delete(f.principals, profile.PrincipalID)
	delete(f.profiles, id)
	return nil
}

func testRequester(id int, username string, superuser bool) *models.Principal {
	return &models.Principal{ID: id, Username: username, IsSuperuser: superuser}
}

func TestCreateAdminUser(t *testing.T) {
	store := newFakeAdminStore()
	svc := NewAdminUserService(store)
	requester := testRequester(1, "root", true)

	profile, err := svc.Create(&CreateAdminUserRequest{
		Username:  "jdoe",
		Email:     "jdoe@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
		Password:  "s3cret-pw",
		IsStaff:   true,
	}, requester)
	require.NoError(t, err)

	assert.Len(t, store.principals, 1)
	assert.Len(t, store.profiles, 1)
	require.NotNil(t, profile.CreatedBy)
	assert.Equal(t, requester.ID, *profile.CreatedBy)
	assert.Equal(t, models.RoleStaff, profile.Role, "role defaults to staff")
	assert.Equal(t, models.StatusActive, profile.Status, "status defaults to active")
	assert.Equal(t, profile.PrincipalID, store.profiles[profile.ID].PrincipalID)

	stored := store.principals[profile.PrincipalID]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-pw")))
	assert.NotContains(t, stored.PasswordHash, "s3cret-pw")
}

func TestCreateAdminUserRejectsShortPassword(t *testing.T) {
	store := newFakeAdminStore()
	svc := NewAdminUserService(store)

	_, err := svc.Create(&CreateAdminUserRequest{
		Username: "jdoe",
		Password: "abc",
	}, testRequester(1, "root", true))

	var verr *utils.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "password")
	assert.Empty(t, store.principals, "no principal on validation failure")
	assert.Empty(t, store.profiles, "no profile on validation failure")
}

func TestCreateAdminUserAcceptsMinimumPassword(t *testing.T) {
	store := newFakeAdminStore()
	svc := NewAdminUserService(store)

	_, err := svc.Create(&CreateAdminUserRequest{
		Username: "jdoe",
		Password: "abcdef",
	}, testRequester(1, "root", true))
	assert.NoError(t, err)
}

func TestCreateAdminUserRejectsUnknownRole(t *testing.T) {
	svc := NewAdminUserService(newFakeAdminStore())

	_, err := svc.Create(&CreateAdminUserRequest{
		Username: "jdoe",
		Password: "abcdef",
		Role:     "principal",
	}, testRequester(1, "root", true))

	var verr *utils.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "role")
}

func TestUpdateAdminUserNotesOnlyKeepsPassword(t *testing.T) {
	store := newFakeAdminStore()
	svc := NewAdminUserService(store)
	requester := testRequester(1, "root", true)

	profile, err := svc.Create(&CreateAdminUserRequest{
		Username: "jdoe",
		Password: "original-pw",
	}, requester)
	require.NoError(t, err)
	hashBefore := store.principals[profile.PrincipalID].PasswordHash

	notes := "promoted to term lead"
	updated, err := svc.Update(profile.ID, &UpdateAdminUserRequest{Notes: &notes}, requester)
	require.NoError(t, err)
	assert.Equal(t, notes, updated.Notes)
	assert.Equal(t, hashBefore, store.principals[profile.PrincipalID].PasswordHash)
}

func TestUpdateAdminUserPasswordRehashes(t *testing.T) {
	store := newFakeAdminStore()
	svc := NewAdminUserService(store)
	requester := testRequester(1, "root", true)

	profile, err := svc.Create(&CreateAdminUserRequest{
		Username: "jdoe",
		Password: "original-pw",
	}, requester)
	require.NoError(t, err)

	newPassword := "rotated-pw"
	_, err = svc.Update(profile.ID, &UpdateAdminUserRequest{Password: &newPassword}, requester)
	require.NoError(t, err)

	hash := []byte(store.principals[profile.PrincipalID].PasswordHash)
	assert.Error(t, bcrypt.CompareHashAndPassword(hash, []byte("original-pw")))
	assert.NoError(t, bcrypt.CompareHashAndPassword(hash, []byte("rotated-pw")))
}

// failingUpdateStore simulates a store whose update transaction rolls back.
type failingUpdateStore struct {
	*fakeAdminStore
}

func (f *failingUpdateStore) Update(*models.AdminUser, *string) error {
	return errors.New("update failed")
}

func TestUpdateAdminUserFailedUpdateKeepsPassword(t *testing.T) {
	store := newFakeAdminStore()
	requester := testRequester(1, "root", true)

	profile, err := NewAdminUserService(store).Create(&CreateAdminUserRequest{
		Username: "jdoe",
		Password: "original-pw",
	}, requester)
	require.NoError(t, err)
	hashBefore := store.principals[profile.PrincipalID].PasswordHash

	svc := NewAdminUserService(&failingUpdateStore{store})
	newPassword := "rotated-pw"
	_, err = svc.Update(profile.ID, &UpdateAdminUserRequest{Password: &newPassword}, requester)
	require.Error(t, err)

	// The rotation must roll back with the rest of the update.
	hash := []byte(store.principals[profile.PrincipalID].PasswordHash)
	assert.Equal(t, hashBefore, string(hash))
	assert.NoError(t, bcrypt.CompareHashAndPassword(hash, []byte("original-pw")))
}

func TestUpdateAdminUserRejectsShortPassword(t *testing.T) {
	store := newFakeAdminStore()
	svc := NewAdminUserService(store)
	requester := testRequester(1, "root", true)

	profile, err := svc.Create(&CreateAdminUserRequest{
		Username: "jdoe",
		Password: "original-pw",
	}, requester)
	require.NoError(t, err)
	hashBefore := store.principals[profile.PrincipalID].PasswordHash

	short := "abc"
	_, err = svc.Update(profile.ID, &UpdateAdminUserRequest{Password: &short}, requester)
	var verr *utils.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, hashBefore, store.principals[profile.PrincipalID].PasswordHash)
}

func TestAdminUserVisibility(t *testing.T) {
	store := newFakeAdminStore()
	svc := NewAdminUserService(store)

	creatorA := testRequester(100, "alice", false)
	creatorB := testRequester(200, "bob", false)
	super := testRequester(300, "root", true)

	madeByA, err := svc.Create(&CreateAdminUserRequest{Username: "a-staff", Password: "abcdef"}, creatorA)
	require.NoError(t, err)
	madeByB, err := svc.Create(&CreateAdminUserRequest{Username: "b-staff", Password: "abcdef"}, creatorB)
	require.NoError(t, err)

	// Creators see their own, invisible profiles read as not found.
	_, err = svc.Get(madeByA.ID, creatorA)
	assert.NoError(t, err)
	_, err = svc.Get(madeByA.ID, creatorB)
	assert.ErrorIs(t, err, utils.ErrNotFound)

	// Superusers see everything.
	_, err = svc.Get(madeByA.ID, super)
	assert.NoError(t, err)
	_, err = svc.Get(madeByB.ID, super)
	assert.NoError(t, err)

	listA, err := svc.List(creatorA)
	require.NoError(t, err)
	require.Len(t, listA, 1)
	assert.Equal(t, madeByA.ID, listA[0].ID)

	listSuper, err := svc.List(super)
	require.NoError(t, err)
	assert.Len(t, listSuper, 2)
}

func TestUpdateAdminUserInvisibleReadsAsNotFound(t *testing.T) {
	store := newFakeAdminStore()
	svc := NewAdminUserService(store)

	creatorA := testRequester(100, "alice", false)
	creatorB := testRequester(200, "bob", false)

	madeByA, err := svc.Create(&CreateAdminUserRequest{Username: "a-staff", Password: "abcdef"}, creatorA)
	require.NoError(t, err)

	notes := "should not apply"
	_, err = svc.Update(madeByA.ID, &UpdateAdminUserRequest{Notes: &notes}, creatorB)
	assert.ErrorIs(t, err, utils.ErrNotFound)
	assert.Empty(t, store.profiles[madeByA.ID].Notes)
}

func TestDeleteAdminUserRemovesPair(t *testing.T) {
	store := newFakeAdminStore()
	svc := NewAdminUserService(store)
	requester := testRequester(1, "root", true)

	profile, err := svc.Create(&CreateAdminUserRequest{Username: "jdoe", Password: "abcdef"}, requester)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(profile.ID, requester))
	assert.Empty(t, store.profiles)
	assert.Empty(t, store.principals, "linked principal deleted with the profile")
}

func TestDeleteAdminUserInvisibleReadsAsNotFound(t *testing.T) {
	store := newFakeAdminStore()
	svc := NewAdminUserService(store)

	creatorA := testRequester(100, "alice", false)
	creatorB := testRequester(200, "bob", false)

	madeByA, err := svc.Create(&CreateAdminUserRequest{Username: "a-staff", Password: "abcdef"}, creatorA)
	require.NoError(t, err)

	err = svc.Delete(madeByA.ID, creatorB)
	assert.ErrorIs(t, err, utils.ErrNotFound)
	assert.Len(t, store.profiles, 1)
}
