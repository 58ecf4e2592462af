package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/SAMSGit/sams_api/internal/models"
	"github.com/SAMSGit/sams_api/internal/utils"
)

// ClassroomRepository provides data access methods for the classrooms table.
type ClassroomRepository struct {
	db *sqlx.DB
}

// NewClassroomRepository creates a new ClassroomRepository.
func NewClassroomRepository(db *sqlx.DB) *ClassroomRepository {
	return &ClassroomRepository{db: db}
}

// List retrieves one page of classrooms plus the total count.
func (r *ClassroomRepository) List(page, limit int) ([]*models.ClassRoom, int, error) {
	var total int
	if err := r.db.Get(&total, `SELECT COUNT(*) FROM classrooms`); err != nil {
		return nil, 0, err
	}

	var classrooms []*models.ClassRoom
	err := r.db.Select(&classrooms, `
		SELECT id, name, section FROM classrooms
		ORDER BY name, section
		LIMIT $1 OFFSET $2`, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	return classrooms, total, nil
}

// GetByID finds a classroom by numeric id.
func (r *ClassroomRepository) GetByID(id int) (*models.ClassRoom, error) {
	var c models.ClassRoom
	err := r.db.Get(&c, `SELECT id, name, section FROM classrooms WHERE id = $1`, id)
	if err != nil {
		return nil, translateRead(err)
	}
	return &c, nil
}

// Create creates a new classroom.
func (r *ClassroomRepository) Create(c *models.ClassRoom) error {
	err := r.db.QueryRowx(`
		INSERT INTO classrooms (name, section) VALUES ($1, $2)
		RETURNING id`, c.Name, c.Section).Scan(&c.ID)
	if err != nil {
		return translateWrite(err)
	}
	return nil
}

// Update updates an existing classroom.
func (r *ClassroomRepository) Update(c *models.ClassRoom) error {
	res, err := r.db.Exec(`UPDATE classrooms SET name = $1, section = $2 WHERE id = $3`,
		c.Name, c.Section, c.ID)
	if err != nil {
		return translateWrite(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return utils.ErrNotFound
	}
	return nil
}

// Delete removes a classroom. Classrooms with enrolled students are
// protected and refuse deletion.
func (r *ClassroomRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM classrooms WHERE id = $1`, id)
	if err != nil {
		return translateDelete(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return utils.ErrNotFound
	}
	return nil
}
