package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/SAMSGit/sams_api/internal/models"
)

// PrincipalRepository provides data access methods for the principals table.
// Principals are created only through the admin-user provisioning path; this
// repository covers the read and login-bookkeeping side.
type PrincipalRepository struct {
	db *sqlx.DB
}

// NewPrincipalRepository creates a new PrincipalRepository.
func NewPrincipalRepository(db *sqlx.DB) *PrincipalRepository {
	return &PrincipalRepository{db: db}
}

const principalColumns = `id, username, email, password_hash, first_name, last_name,
	is_staff, is_superuser, date_joined, last_login`

// GetByUsername finds a login-eligible principal by its unique username.
// Principals whose admin profile is inactive are treated as absent, so
// inactive accounts cannot authenticate and cannot be probed for.
func (r *PrincipalRepository) GetByUsername(username string) (*models.Principal, error) {
	var p models.Principal
	err := r.db.Get(&p, `
		SELECT p.id, p.username, p.email, p.password_hash, p.first_name, p.last_name,
		       p.is_staff, p.is_superuser, p.date_joined, p.last_login
		FROM principals p
		JOIN admin_users a ON a.principal_id = p.id
		WHERE p.username = $1 AND a.status = 'active'`, username)
	if err != nil {
		return nil, translateRead(err)
	}
	return &p, nil
}

// GetByID finds a principal by numeric id.
func (r *PrincipalRepository) GetByID(id int) (*models.Principal, error) {
	var p models.Principal
	err := r.db.Get(&p, `SELECT `+principalColumns+` FROM principals WHERE id = $1`, id)
	if err != nil {
		return nil, translateRead(err)
	}
	return &p, nil
}

// UpdateLastLogin stamps the principal's last successful login time.
func (r *PrincipalRepository) UpdateLastLogin(id int) error {
	_, err := r.db.Exec(`UPDATE principals SET last_login = NOW() WHERE id = $1`, id)
	return err
}

// Count returns the total number of principals. Used at startup to decide
// whether the bootstrap superuser should be provisioned.
func (r *PrincipalRepository) Count() (int, error) {
	var n int
	if err := r.db.Get(&n, `SELECT COUNT(*) FROM principals`); err != nil {
		return 0, err
	}
	return n, nil
}
