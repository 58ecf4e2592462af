package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/SAMSGit/sams_api/internal/models"
	"github.com/SAMSGit/sams_api/internal/repository"
	"github.com/SAMSGit/sams_api/internal/utils"
)

// PaymentHandler handles payment CRUD HTTP endpoints.
type PaymentHandler struct {
	repo *repository.PaymentRepository
}

// NewPaymentHandler constructs a PaymentHandler.
func NewPaymentHandler(repo *repository.PaymentRepository) *PaymentHandler {
	return &PaymentHandler{repo: repo}
}

// PaymentRequest is the write payload for payments.
type PaymentRequest struct {
	Student       int          `json:"student" binding:"required"`
	FeeType       string       `json:"fee_type" binding:"required"`
	Amount        float64      `json:"amount" binding:"required,min=0"`
	PaymentDate   models.Date  `json:"payment_date" binding:"required"`
	PaymentMethod string       `json:"payment_method"`
	ReceiptNumber string       `json:"receipt_number" binding:"required"`
	DueDate       *models.Date `json:"due_date"`
	Balance       float64      `json:"balance" binding:"omitempty,min=0"`
}

// PaymentPatch is the partial-update payload for payments.
type PaymentPatch struct {
	Student       *int         `json:"student"`
	FeeType       *string      `json:"fee_type"`
	Amount        *float64     `json:"amount" binding:"omitempty,min=0"`
	PaymentDate   *models.Date `json:"payment_date"`
	PaymentMethod *string      `json:"payment_method"`
	ReceiptNumber *string      `json:"receipt_number"`
	DueDate       *models.Date `json:"due_date"`
	Balance       *float64     `json:"balance" binding:"omitempty,min=0"`
}

// ListPayments handles GET /v1/payments
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	page, limit := pagination(c)
	payments, total, err := h.repo.List(page, limit)
	if err != nil {
		writeError(c, err, "Payment")
		return
	}
	utils.SuccessWithPagination(c, 200, "Payments retrieved", payments, page, limit, total)
}

// GetPayment handles GET /v1/payments/:id
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	payment, err := h.repo.GetByID(id)
	if err != nil {
		writeError(c, err, "Payment")
		return
	}
	utils.Success(c, 200, "Payment retrieved", payment)
}

// CreatePayment handles POST /v1/payments
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req PaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	payment := &models.Payment{
		StudentID:     req.Student,
		FeeType:       req.FeeType,
		Amount:        req.Amount,
		PaymentDate:   req.PaymentDate,
		PaymentMethod: req.PaymentMethod,
		ReceiptNumber: req.ReceiptNumber,
		DueDate:       req.DueDate,
		Balance:       req.Balance,
	}
	if payment.PaymentMethod == "" {
		payment.PaymentMethod = "cash"
	}
	if err := h.repo.Create(payment); err != nil {
		writeError(c, err, "Payment")
		return
	}

	created, err := h.repo.GetByID(payment.ID)
	if err != nil {
		writeError(c, err, "Payment")
		return
	}
	utils.Success(c, 201, "Payment recorded successfully", created)
}

// UpdatePayment handles PUT /v1/payments/:id
func (h *PaymentHandler) UpdatePayment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req PaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	payment := &models.Payment{
		ID:            id,
		StudentID:     req.Student,
		FeeType:       req.FeeType,
		Amount:        req.Amount,
		PaymentDate:   req.PaymentDate,
		PaymentMethod: req.PaymentMethod,
		ReceiptNumber: req.ReceiptNumber,
		DueDate:       req.DueDate,
		Balance:       req.Balance,
	}
	if payment.PaymentMethod == "" {
		payment.PaymentMethod = "cash"
	}
	if err := h.repo.Update(payment); err != nil {
		writeError(c, err, "Payment")
		return
	}

	updated, err := h.repo.GetByID(id)
	if err != nil {
		writeError(c, err, "Payment")
		return
	}
	utils.Success(c, 200, "Payment updated successfully", updated)
}

// PatchPayment handles PATCH /v1/payments/:id
func (h *PaymentHandler) PatchPayment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req PaymentPatch
	if !bindJSON(c, &req) {
		return
	}

	payment, err := h.repo.GetByID(id)
	if err != nil {
		writeError(c, err, "Payment")
		return
	}
	if req.Student != nil {
		payment.StudentID = *req.Student
	}
	if req.FeeType != nil {
		payment.FeeType = *req.FeeType
	}
	if req.Amount != nil {
		payment.Amount = *req.Amount
	}
	if req.PaymentDate != nil {
		payment.PaymentDate = *req.PaymentDate
	}
	if req.PaymentMethod != nil {
		payment.PaymentMethod = *req.PaymentMethod
	}
	if req.ReceiptNumber != nil {
		payment.ReceiptNumber = *req.ReceiptNumber
	}
	if req.DueDate != nil {
		payment.DueDate = req.DueDate
	}
	if req.Balance != nil {
		payment.Balance = *req.Balance
	}
	if err := h.repo.Update(payment); err != nil {
		writeError(c, err, "Payment")
		return
	}

	updated, err := h.repo.GetByID(id)
	if err != nil {
		writeError(c, err, "Payment")
		return
	}
	utils.Success(c, 200, "Payment updated successfully", updated)
}

// DeletePayment handles DELETE /v1/payments/:id
func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.repo.Delete(id); err != nil {
		writeError(c, err, "Payment")
		return
	}
	utils.Success(c, 200, "Payment deleted successfully", nil)
}
