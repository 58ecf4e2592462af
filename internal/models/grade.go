package models

import "time"

// Grade is a score awarded to a student for a subject in a term. The
// (student, subject, term) triple is unique.
type Grade struct {
	ID         int       `db:"id" json:"id"`
	StudentID  int       `db:"student_id" json:"student"`
	Subject    string    `db:"subject" json:"subject"`
	Term       string    `db:"term" json:"term"`
	Score      float64   `db:"score" json:"score"`
	MaxScore   float64   `db:"max_score" json:"max_score"`
	RecordedAt time.Time `db:"recorded_at" json:"recorded_at"`

	StudentDetail *Student `db:"-" json:"student_detail,omitempty"`
}
