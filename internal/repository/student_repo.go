package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/SAMSGit/sams_api/internal/models"
	"github.com/SAMSGit/sams_api/internal/utils"
)

// StudentRepository provides data access methods for the students table.
// Reads join the classroom so responses can embed classroom_detail.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

const studentSelect = `
	SELECT s.id, s.first_name, s.last_name, s.date_of_birth, s.roll_number, s.classroom_id,
	       s.guardian_name, s.contact_phone, s.contact_email, s.address, s.created_at, s.updated_at,
	       c.id, c.name, c.section
	FROM students s
	JOIN classrooms c ON c.id = s.classroom_id`

func scanStudent(row interface {
	Scan(dest ...interface{}) error
}) (*models.Student, error) {
	var s models.Student
	var c models.ClassRoom
	err := row.Scan(
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
	return &s, nil
}

// List retrieves one page of students plus the total count, ordered by name.
func (r *StudentRepository) List(page, limit int) ([]*models.Student, int, error) {
	var total int
	if err := r.db.Get(&total, `SELECT COUNT(*) FROM students`); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Queryx(studentSelect+`
		ORDER BY s.last_name, s.first_name
		LIMIT $1 OFFSET $2`, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, 0, err
		}
		students = append(students, s)
	}
	return students, total, rows.Err()
}

// GetByID finds a student by numeric id.
func (r *StudentRepository) GetByID(id int) (*models.Student, error) {
	row := r.db.QueryRowx(studentSelect+` WHERE s.id = $1`, id)
	s, err := scanStudent(row)
	if err != nil {
		return nil, translateRead(err)
	}
	return s, nil
}

// Create creates a new student.
func (r *StudentRepository) Create(s *models.Student) error {
	err := r.db.QueryRowx(`
		INSERT INTO students (first_name, last_name, date_of_birth, roll_number, classroom_id,
		                      guardian_name, contact_phone, contact_email, address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`,
		s.FirstName,
		s.LastName,
		s.DateOfBirth,
		s.RollNumber,
		s.ClassroomID,
		s.GuardianName,
		s.ContactPhone,
		s.ContactEmail,
		s.Address,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return translateWrite(err)
	}
	return nil
}

// Update updates an existing student.
func (r *StudentRepository) Update(s *models.Student) error {
	err := r.db.QueryRowx(`
		UPDATE students
		SET first_name = $1, last_name = $2, date_of_birth = $3, roll_number = $4, classroom_id = $5,
		    guardian_name = $6, contact_phone = $7, contact_email = $8, address = $9, updated_at = NOW()
		WHERE id = $10
		RETURNING updated_at`,
		s.FirstName,
		s.LastName,
		s.DateOfBirth,
		s.RollNumber,
		s.ClassroomID,
		s.GuardianName,
		s.ContactPhone,
		s.ContactEmail,
		s.Address,
		s.ID,
	).Scan(&s.UpdatedAt)
	if err != nil {
		return translateWrite(err)
	}
	return nil
}

// Delete removes a student. Attendance, grades and payments cascade.
func (r *StudentRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return translateDelete(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return utils.ErrNotFound
	}
	return nil
}
