package models

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
)

// ValidAttendanceStatus reports whether s is a known attendance status.
func ValidAttendanceStatus(s AttendanceStatus) bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate:
		return true
	}
	return false
}

// Attendance records one student's presence on one date. A student has at
// most one record per date.
type Attendance struct {
	ID        int              `db:"id" json:"id"`
	StudentID int              `db:"student_id" json:"student"`
	Date      Date             `db:"date" json:"date"`
	Status    AttendanceStatus `db:"status" json:"status"`
	Notes     string           `db:"notes" json:"notes"`

	StudentDetail *Student `db:"-" json:"student_detail,omitempty"`
}
