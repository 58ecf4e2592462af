package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/SAMSGit/sams_api/internal/models"
	"github.com/SAMSGit/sams_api/internal/utils"
)

// PaymentRepository provides data access methods for the payments table.
// The is_overdue flag is derived on read and never stored.
type PaymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

const paymentSelect = `
	SELECT p.id, p.student_id, p.fee_type, p.amount, p.payment_date, p.payment_method,
	       p.receipt_number, p.due_date, p.balance, p.created_at,
	       s.id, s.first_name, s.last_name, s.date_of_birth, s.roll_number, s.classroom_id,
	       s.guardian_name, s.contact_phone, s.contact_email, s.address, s.created_at, s.updated_at,
	       c.id, c.name, c.section
	FROM payments p
	JOIN students s ON s.id = p.student_id
	JOIN classrooms c ON c.id = s.classroom_id`

func scanPayment(row interface {
	Scan(dest ...interface{}) error
}) (*models.Payment, error) {
	var p models.Payment
	var s models.Student
	var c models.ClassRoom
	err := row.Scan(
		&p.ID,
		&p.StudentID,
		&p.FeeType,
		&p.Amount,
		&p.PaymentDate,
		&p.PaymentMethod,
		&p.ReceiptNumber,
		&p.DueDate,
		&p.Balance,
		&p.CreatedAt,
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
	p.StudentDetail = &s
	p.Derive()
	return &p, nil
}

// List retrieves one page of payments plus the total count, newest first.
func (r *PaymentRepository) List(page, limit int) ([]*models.Payment, int, error) {
	var total int
	if err := r.db.Get(&total, `SELECT COUNT(*) FROM payments`); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Queryx(paymentSelect+`
		ORDER BY p.payment_date DESC, p.id DESC
		LIMIT $1 OFFSET $2`, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, 0, err
		}
		payments = append(payments, p)
	}
	return payments, total, rows.Err()
}

// GetByID finds a payment by numeric id.
func (r *PaymentRepository) GetByID(id int) (*models.Payment, error) {
	row := r.db.QueryRowx(paymentSelect+` WHERE p.id = $1`, id)
	p, err := scanPayment(row)
	if err != nil {
		return nil, translateRead(err)
	}
	return p, nil
}

// Create creates a new payment.
func (r *PaymentRepository) Create(p *models.Payment) error {
	err := r.db.QueryRowx(`
		INSERT INTO payments (student_id, fee_type, amount, payment_date, payment_method,
		                      receipt_number, due_date, balance)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`,
		p.StudentID,
		p.FeeType,
		p.Amount,
		p.PaymentDate,
		p.PaymentMethod,
		p.ReceiptNumber,
		p.DueDate,
		p.Balance,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return translateWrite(err)
	}
	p.Derive()
	return nil
}

// Update updates an existing payment.
func (r *PaymentRepository) Update(p *models.Payment) error {
	res, err := r.db.Exec(`
		UPDATE payments
		SET student_id = $1, fee_type = $2, amount = $3, payment_date = $4, payment_method = $5,
		    receipt_number = $6, due_date = $7, balance = $8
		WHERE id = $9`,
		p.StudentID,
		p.FeeType,
		p.Amount,
		p.PaymentDate,
		p.PaymentMethod,
		p.ReceiptNumber,
		p.DueDate,
		p.Balance,
		p.ID)
	if err != nil {
		return translateWrite(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return utils.ErrNotFound
	}
	p.Derive()
	return nil
}

// Delete removes a payment.
func (r *PaymentRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return utils.ErrNotFound
	}
	return nil
}
