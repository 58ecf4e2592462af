package models

// FeeStructure defines a fee charged for a classroom, e.g. tuition billed
// monthly. Each classroom has at most one structure per fee type.
type FeeStructure struct {
	ID          int     `db:"id" json:"id"`
	ClassroomID int     `db:"classroom_id" json:"classroom"`
	FeeType     string  `db:"fee_type" json:"fee_type"`
	Amount      float64 `db:"amount" json:"amount"`
	Frequency   string  `db:"frequency" json:"frequency"`
	Description string  `db:"description" json:"description"`

	ClassroomDetail *ClassRoom `db:"-" json:"classroom_detail,omitempty"`
}
