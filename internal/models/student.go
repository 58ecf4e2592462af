package models

import "time"

// Student is an enrolled pupil. Roll numbers are unique within a classroom.
type Student struct {
	ID           int       `db:"id" json:"id"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	DateOfBirth  Date      `db:"date_of_birth" json:"date_of_birth"`
	RollNumber   string    `db:"roll_number" json:"roll_number"`
	ClassroomID  int       `db:"classroom_id" json:"classroom"`
	GuardianName string    `db:"guardian_name" json:"guardian_name"`
	ContactPhone string    `db:"contact_phone" json:"contact_phone"`
	ContactEmail string    `db:"contact_email" json:"contact_email"`
	Address      string    `db:"address" json:"address"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`

	// ClassroomDetail embeds the full classroom representation on reads.
	ClassroomDetail *ClassRoom `db:"-" json:"classroom_detail,omitempty"`
}

// FullName concatenates first and last name.
func (s *Student) FullName() string {
	if s.LastName == "" {
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}
