package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdminUserDerive(t *testing.T) {
	creator := "root"

	tests := []struct {
		name          string
		user          AdminUser
		wantFullName  string
		wantActive    bool
		wantCreatedBy string
	}{
		{
			name: "full name from first and last",
			user: AdminUser{
				Username:        "jdoe",
				FirstName:       "Jane",
				LastName:        "Doe",
				Status:          StatusActive,
				CreatorUsername: &creator,
			},
			wantFullName:  "Jane Doe",
			wantActive:    true,
			wantCreatedBy: "root",
		},
		{
			name: "falls back to username when names empty",
			user: AdminUser{
				Username: "jdoe",
				Status:   StatusActive,
			},
			wantFullName:  "jdoe",
			wantActive:    true,
			wantCreatedBy: "System",
		},
		{
			name: "first name only",
			user: AdminUser{
				Username:  "jdoe",
				FirstName: "Jane",
				Status:    StatusInactive,
			},
			wantFullName:  "Jane",
			wantActive:    false,
			wantCreatedBy: "System",
		},
		{
			name: "inactive status",
			user: AdminUser{
				Username: "ghost",
				Status:   StatusInactive,
			},
			wantFullName:  "ghost",
			wantActive:    false,
			wantCreatedBy: "System",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.user.Derive()
			assert.Equal(t, tt.wantFullName, tt.user.FullName)
			assert.Equal(t, tt.wantActive, tt.user.IsActive)
			assert.Equal(t, tt.wantCreatedBy, tt.user.CreatedByName)
		})
	}
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleSuperAdmin))
	assert.True(t, ValidRole(RoleAdmin))
	assert.True(t, ValidRole(RoleStaff))
	assert.False(t, ValidRole("principal"))
	assert.False(t, ValidRole(""))
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusActive))
	assert.True(t, ValidStatus(StatusInactive))
	assert.False(t, ValidStatus("suspended"))
}
