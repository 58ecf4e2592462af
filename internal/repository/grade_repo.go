package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/SAMSGit/sams_api/internal/models"
	"github.com/SAMSGit/sams_api/internal/utils"
)

// GradeRepository provides data access methods for the grades table.
type GradeRepository struct {
	db *sqlx.DB
}

// NewGradeRepository creates a new GradeRepository.
func NewGradeRepository(db *sqlx.DB) *GradeRepository {
	return &GradeRepository{db: db}
}

const gradeSelect = `
	SELECT g.id, g.student_id, g.subject, g.term, g.score, g.max_score, g.recorded_at,
	       s.id, s.first_name, s.last_name, s.date_of_birth, s.roll_number, s.classroom_id,
	       s.guardian_name, s.contact_phone, s.contact_email, s.address, s.created_at, s.updated_at,
	       c.id, c.name, c.section
	FROM grades g
	JOIN students s ON s.id = g.student_id
	JOIN classrooms c ON c.id = s.classroom_id`

func scanGrade(row interface {
	Scan(dest ...interface{}) error
}) (*models.Grade, error) {
	var g models.Grade
	var s models.Student
	var c models.ClassRoom
	err := row.Scan(
		&g.ID,
		&g.StudentID,
		&g.Subject,
		&g.Term,
		&g.Score,
		&g.MaxScore,
		&g.RecordedAt,
		&s.ID,
		&s.FirstName,
		&s.LastName,
		&s.DateOfBirth,
		&s.RollNumber,
		&s.ClassroomID,
		&s.GuardianName,
		&s.ContactPhone,
		&s.ContactEmail,
		&s.Address,
		&s.CreatedAt,
		&s.UpdatedAt,
		&c.ID,
		&c.Name,
		&c.Section,
	)
	if err != nil {
		return nil, err
	}
	s.ClassroomDetail = &c
	g.StudentDetail = &s
	return &g, nil
}

// List retrieves one page of grades plus the total count, newest first.
func (r *GradeRepository) List(page, limit int) ([]*models.Grade, int, error) {
	var total int
	if err := r.db.Get(&total, `SELECT COUNT(*) FROM grades`); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Queryx(gradeSelect+`
		ORDER BY g.recorded_at DESC, g.id DESC
		LIMIT $1 OFFSET $2`, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var grades []*models.Grade
	for rows.Next() {
		g, err := scanGrade(rows)
		if err != nil {
			return nil, 0, err
		}
		grades = append(grades, g)
	}
	return grades, total, rows.Err()
}

// GetByID finds a grade by numeric id.
func (r *GradeRepository) GetByID(id int) (*models.Grade, error) {
	row := r.db.QueryRowx(gradeSelect+` WHERE g.id = $1`, id)
	g, err := scanGrade(row)
	if err != nil {
		return nil, translateRead(err)
	}
	return g, nil
}

// Create creates a new grade. A second grade for the same student, subject
// and term is rejected as a conflict.
func (r *GradeRepository) Create(g *models.Grade) error {
	if g.MaxScore == 0 {
		g.MaxScore = 100
	}
	err := r.db.QueryRowx(`
		INSERT INTO grades (student_id, subject, term, score, max_score)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, recorded_at`,
		g.StudentID, g.Subject, g.Term, g.Score, g.MaxScore,
	).Scan(&g.ID, &g.RecordedAt)
	if err != nil {
		return translateWrite(err)
	}
	return nil
}

// Update updates an existing grade.
func (r *GradeRepository) Update(g *models.Grade) error {
	res, err := r.db.Exec(`
		UPDATE grades SET student_id = $1, subject = $2, term = $3, score = $4, max_score = $5
		WHERE id = $6`,
		g.StudentID, g.Subject, g.Term, g.Score, g.MaxScore, g.ID)
	if err != nil {
		return translateWrite(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return utils.ErrNotFound
	}
	return nil
}

// Delete removes a grade.
func (r *GradeRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM grades WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return utils.ErrNotFound
	}
	return nil
}
