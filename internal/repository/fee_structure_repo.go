package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/SAMSGit/sams_api/internal/models"
	"github.com/SAMSGit/sams_api/internal/utils"
)

// FeeStructureRepository provides data access methods for the fee_structures table.
type FeeStructureRepository struct {
	db *sqlx.DB
}

// NewFeeStructureRepository creates a new FeeStructureRepository.
func NewFeeStructureRepository(db *sqlx.DB) *FeeStructureRepository {
	return &FeeStructureRepository{db: db}
}

const feeStructureSelect = `
	SELECT f.id, f.classroom_id, f.fee_type, f.amount, f.frequency, f.description,
	       c.id, c.name, c.section
	FROM fee_structures f
	JOIN classrooms c ON c.id = f.classroom_id`

func scanFeeStructure(row interface {
	Scan(dest ...interface{}) error
}) (*models.FeeStructure, error) {
	var f models.FeeStructure
	var c models.ClassRoom
	err := row.Scan(
		&f.ID,
		&f.ClassroomID,
		&f.FeeType,
		&f.Amount,
		&f.Frequency,
		&f.Description,
		&c.ID,
		&c.Name,
		&c.Section,
	)
	if err != nil {
		return nil, err
	}
	f.ClassroomDetail = &c
	return &f, nil
}

// List retrieves one page of fee structures plus the total count.
func (r *FeeStructureRepository) List(page, limit int) ([]*models.FeeStructure, int, error) {
	var total int
	if err := r.db.Get(&total, `SELECT COUNT(*) FROM fee_structures`); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Queryx(feeStructureSelect+`
		ORDER BY c.name, c.section, f.fee_type
		LIMIT $1 OFFSET $2`, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var fees []*models.FeeStructure
	for rows.Next() {
		f, err := scanFeeStructure(rows)
		if err != nil {
			return nil, 0, err
		}
		fees = append(fees, f)
	}
	return fees, total, rows.Err()
}

// GetByID finds a fee structure by numeric id.
func (r *FeeStructureRepository) GetByID(id int) (*models.FeeStructure, error) {
	row := r.db.QueryRowx(feeStructureSelect+` WHERE f.id = $1`, id)
	f, err := scanFeeStructure(row)
	if err != nil {
		return nil, translateRead(err)
	}
	return f, nil
}

// Create creates a new fee structure. A second structure for the same
// classroom and fee type is rejected as a conflict.
func (r *FeeStructureRepository) Create(f *models.FeeStructure) error {
	err := r.db.QueryRowx(`
		INSERT INTO fee_structures (classroom_id, fee_type, amount, frequency, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		f.ClassroomID, f.FeeType, f.Amount, f.Frequency, f.Description,
	).Scan(&f.ID)
	if err != nil {
		return translateWrite(err)
	}
	return nil
}

// Update updates an existing fee structure.
func (r *FeeStructureRepository) Update(f *models.FeeStructure) error {
	res, err := r.db.Exec(`
		UPDATE fee_structures
		SET classroom_id = $1, fee_type = $2, amount = $3, frequency = $4, description = $5
		WHERE id = $6`,
		f.ClassroomID, f.FeeType, f.Amount, f.Frequency, f.Description, f.ID)
	if err != nil {
		return translateWrite(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return utils.ErrNotFound
	}
	return nil
}

// Delete removes a fee structure.
func (r *FeeStructureRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM fee_structures WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return utils.ErrNotFound
	}
	return nil
}
