package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/SAMSGit/sams_api/internal/models"
)

// AdminUserRepository provides data access for admin-user profiles and their
// linked principals. The pair is always created, updated and deleted inside a
// single transaction so that no principal can exist without its profile or
// vice versa.
type AdminUserRepository struct {
	db *sqlx.DB
}

// NewAdminUserRepository creates a new AdminUserRepository.
func NewAdminUserRepository(db *sqlx.DB) *AdminUserRepository {
	return &AdminUserRepository{db: db}
}

const adminUserSelect = `
	SELECT a.id, a.principal_id, a.role, a.status, a.notes, a.created_by, a.created_at, a.updated_at,
	       p.username, p.email, p.first_name, p.last_name, p.is_staff, p.is_superuser,
	       cb.username AS creator_username
	FROM admin_users a
	JOIN principals p ON p.id = a.principal_id
	LEFT JOIN principals cb ON cb.id = a.created_by`

func scanAdminUser(row interface {
	Scan(dest ...interface{}) error
}) (*models.AdminUser, error) {
	var a models.AdminUser
	err := row.Scan(
		&a.ID,
		&a.PrincipalID,
		&a.Role,
		&a.Status,
		&a.Notes,
		&a.CreatedBy,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.Username,
		&a.Email,
		&a.FirstName,
		&a.LastName,
		&a.IsStaff,
		&a.IsSuperuser,
		&a.CreatorUsername,
	)
	if err != nil {
		return nil, err
	}
	a.Derive()
	return &a, nil
}

// CreateWithPrincipal inserts a new principal and its admin profile in one
// transaction. On success both records are populated with their generated
// ids and timestamps; on failure neither persists.
func (r *AdminUserRepository) CreateWithPrincipal(principal *models.Principal, profile *models.AdminUser) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowx(`
		INSERT INTO principals (username, email, password_hash, first_name, last_name, is_staff, is_superuser)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, date_joined`,
		principal.Username,
		principal.Email,
		principal.PasswordHash,
		principal.FirstName,
		principal.LastName,
		principal.IsStaff,
		principal.IsSuperuser,
	).Scan(&principal.ID, &principal.DateJoined)
	if err != nil {
		return translateWrite(err)
	}

	profile.PrincipalID = principal.ID
	err = tx.QueryRowx(`
		INSERT INTO admin_users (principal_id, role, status, notes, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		profile.PrincipalID,
		profile.Role,
		profile.Status,
		profile.Notes,
		profile.CreatedBy,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return translateWrite(err)
	}

	if err := tx.Commit(); err != nil {
		return translateWrite(err)
	}

	profile.Username = principal.Username
	profile.Email = principal.Email
	profile.FirstName = principal.FirstName
	profile.LastName = principal.LastName
	profile.IsStaff = principal.IsStaff
	profile.IsSuperuser = principal.IsSuperuser
	profile.Derive()
	return nil
}

// GetByID fetches one admin profile with its principal identity joined in.
func (r *AdminUserRepository) GetByID(id int) (*models.AdminUser, error) {
	row := r.db.QueryRowx(adminUserSelect+` WHERE a.id = $1`, id)
	a, err := scanAdminUser(row)
	if err != nil {
		return nil, translateRead(err)
	}
	return a, nil
}

// list runs the base select with an optional WHERE clause, ordered by
// creation time for deterministic output.
func (r *AdminUserRepository) list(where string, args ...interface{}) ([]*models.AdminUser, error) {
	rows, err := r.db.Queryx(adminUserSelect+where+` ORDER BY a.created_at, a.id`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.AdminUser
	for rows.Next() {
		a, err := scanAdminUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, a)
	}
	return users, rows.Err()
}

// List retrieves all admin profiles.
func (r *AdminUserRepository) List() ([]*models.AdminUser, error) {
	return r.list("")
}

// ListByCreator retrieves only the profiles provisioned by the given principal.
func (r *AdminUserRepository) ListByCreator(creatorID int) ([]*models.AdminUser, error) {
	return r.list(` WHERE a.created_by = $1`, creatorID)
}

// Update writes the full state of a profile and its linked principal in one
// transaction, including a password rotation when newPasswordHash is non-nil.
// The caller loads the record, applies its changes and passes the result
// here. created_by and username are never touched. On failure nothing
// persists, the stored hash included.
func (r *AdminUserRepository) Update(profile *models.AdminUser, newPasswordHash *string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE principals
		SET email = $1, first_name = $2, last_name = $3, is_staff = $4, is_superuser = $5
		WHERE id = $6`,
		profile.Email,
		profile.FirstName,
		profile.LastName,
		profile.IsStaff,
		profile.IsSuperuser,
		profile.PrincipalID,
	)
	if err != nil {
		return translateWrite(err)
	}

	if newPasswordHash != nil {
		_, err = tx.Exec(`UPDATE principals SET password_hash = $1 WHERE id = $2`,
			*newPasswordHash, profile.PrincipalID)
		if err != nil {
			return translateWrite(err)
		}
	}

	err = tx.QueryRowx(`
		UPDATE admin_users
		SET role = $1, status = $2, notes = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at`,
		profile.Role,
		profile.Status,
		profile.Notes,
		profile.ID,
	).Scan(&profile.UpdatedAt)
	if err != nil {
		return translateWrite(err)
	}

	if err := tx.Commit(); err != nil {
		return translateWrite(err)
	}
	profile.Derive()
	return nil
}

// Delete removes a profile together with its linked principal in one
// transaction. The profile row goes first to satisfy the foreign key, but
// the transaction guarantees that a principal never survives its profile.
func (r *AdminUserRepository) Delete(id int) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var principalID int
	err = tx.QueryRowx(`DELETE FROM admin_users WHERE id = $1 RETURNING principal_id`, id).Scan(&principalID)
	if err != nil {
		return translateRead(err)
	}

	if _, err := tx.Exec(`DELETE FROM principals WHERE id = $1`, principalID); err != nil {
		return translateDelete(err)
	}

	return tx.Commit()
}
