package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/SAMSGit/sams_api/internal/models"
	"github.com/SAMSGit/sams_api/internal/utils"
)

// AttendanceRepository provides data access methods for the attendance table.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository creates a new AttendanceRepository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

const attendanceSelect = `
	SELECT a.id, a.student_id, a.date, a.status, a.notes,
	       s.id, s.first_name, s.last_name, s.date_of_birth, s.roll_number, s.classroom_id,
	       s.guardian_name, s.contact_phone, s.contact_email, s.address, s.created_at, s.updated_at,
	       c.id, c.name, c.section
	FROM attendance a
	JOIN students s ON s.id = a.student_id
	JOIN classrooms c ON c.id = s.classroom_id`

func scanAttendance(row interface {
	Scan(dest ...interface{}) error
}) (*models.Attendance, error) {
	var rec models.Attendance
	var s models.Student
	var c models.ClassRoom
	err := row.Scan(
		&rec.ID,
		&rec.StudentID,
		&rec.Date,
		&rec.Status,
		&rec.Notes,
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
	rec.StudentDetail = &s
	return &rec, nil
}

// List retrieves one page of attendance records plus the total count,
// newest date first.
func (r *AttendanceRepository) List(page, limit int) ([]*models.Attendance, int, error) {
	var total int
	if err := r.db.Get(&total, `SELECT COUNT(*) FROM attendance`); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Queryx(attendanceSelect+`
		ORDER BY a.date DESC, a.id DESC
		LIMIT $1 OFFSET $2`, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []*models.Attendance
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}
	return records, total, rows.Err()
}

// GetByID finds an attendance record by numeric id.
func (r *AttendanceRepository) GetByID(id int) (*models.Attendance, error) {
	row := r.db.QueryRowx(attendanceSelect+` WHERE a.id = $1`, id)
	rec, err := scanAttendance(row)
	if err != nil {
		return nil, translateRead(err)
	}
	return rec, nil
}

// Create creates a new attendance record. A second record for the same
// student and date is rejected as a conflict.
func (r *AttendanceRepository) Create(rec *models.Attendance) error {
	err := r.db.QueryRowx(`
		INSERT INTO attendance (student_id, date, status, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		rec.StudentID, rec.Date, rec.Status, rec.Notes,
	).Scan(&rec.ID)
	if err != nil {
		return translateWrite(err)
	}
	return nil
}

// Update updates an existing attendance record.
func (r *AttendanceRepository) Update(rec *models.Attendance) error {
	res, err := r.db.Exec(`
		UPDATE attendance SET student_id = $1, date = $2, status = $3, notes = $4
		WHERE id = $5`,
		rec.StudentID, rec.Date, rec.Status, rec.Notes, rec.ID)
	if err != nil {
		return translateWrite(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return utils.ErrNotFound
	}
	return nil
}

// Delete removes an attendance record.
func (r *AttendanceRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM attendance WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return utils.ErrNotFound
	}
	return nil
}
