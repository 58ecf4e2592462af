package models

import "time"

// Payment records money received from a student against a fee type.
// Balance is the amount still owed after this payment.
type Payment struct {
	ID            int       `db:"id" json:"id"`
	StudentID     int       `db:"student_id" json:"student"`
	FeeType       string    `db:"fee_type" json:"fee_type"`
	Amount        float64   `db:"amount" json:"amount"`
	PaymentDate   Date      `db:"payment_date" json:"payment_date"`
	PaymentMethod string    `db:"payment_method" json:"payment_method"`
	ReceiptNumber string    `db:"receipt_number" json:"receipt_number"`
	DueDate       *Date     `db:"due_date" json:"due_date,omitempty"`
	Balance       float64   `db:"balance" json:"balance"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`

	// IsOverdue is computed on read, never persisted.
	IsOverdue bool `db:"-" json:"is_overdue"`

	StudentDetail *Student `db:"-" json:"student_detail,omitempty"`
}

// Overdue reports whether the payment is past due with money still owed,
// evaluated against the given date.
func (p *Payment) Overdue(today Date) bool {
	return p.DueDate != nil && p.DueDate.Before(today) && p.Balance > 0
}

// Derive fills the computed IsOverdue field against the current date.
func (p *Payment) Derive() {
	p.IsOverdue = p.Overdue(Today())
}
