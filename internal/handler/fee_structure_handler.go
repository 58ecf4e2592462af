package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/SAMSGit/sams_api/internal/models"
	"github.com/SAMSGit/sams_api/internal/repository"
	"github.com/SAMSGit/sams_api/internal/utils"
)

// FeeStructureHandler handles fee-structure CRUD HTTP endpoints.
type FeeStructureHandler struct {
	repo *repository.FeeStructureRepository
}

// NewFeeStructureHandler constructs a FeeStructureHandler.
func NewFeeStructureHandler(repo *repository.FeeStructureRepository) *FeeStructureHandler {
	return &FeeStructureHandler{repo: repo}
}

// FeeStructureRequest is the write payload for fee structures.
type FeeStructureRequest struct {
	Classroom   int     `json:"classroom" binding:"required"`
	FeeType     string  `json:"fee_type" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,min=0"`
	Frequency   string  `json:"frequency"`
	Description string  `json:"description"`
}

// FeeStructurePatch is the partial-update payload for fee structures.
type FeeStructurePatch struct {
	Classroom   *int     `json:"classroom"`
	FeeType     *string  `json:"fee_type"`
	Amount      *float64 `json:"amount" binding:"omitempty,min=0"`
	Frequency   *string  `json:"frequency"`
	Description *string  `json:"description"`
}

// ListFeeStructures handles GET /v1/fee-structure
func (h *FeeStructureHandler) ListFeeStructures(c *gin.Context) {
	page, limit := pagination(c)
	fees, total, err := h.repo.List(page, limit)
	if err != nil {
		writeError(c, err, "Fee structure")
		return
	}
	utils.SuccessWithPagination(c, 200, "Fee structures retrieved", fees, page, limit, total)
}

// GetFeeStructure handles GET /v1/fee-structure/:id
func (h *FeeStructureHandler) GetFeeStructure(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	fee, err := h.repo.GetByID(id)
	if err != nil {
		writeError(c, err, "Fee structure")
		return
	}
	utils.Success(c, 200, "Fee structure retrieved", fee)
}

// CreateFeeStructure handles POST /v1/fee-structure
func (h *FeeStructureHandler) CreateFeeStructure(c *gin.Context) {
	var req FeeStructureRequest
	if !bindJSON(c, &req) {
		return
	}

	fee := &models.FeeStructure{
		ClassroomID: req.Classroom,
		FeeType:     req.FeeType,
		Amount:      req.Amount,
		Frequency:   req.Frequency,
		Description: req.Description,
	}
	if err := h.repo.Create(fee); err != nil {
		writeError(c, err, "Fee structure")
		return
	}

	created, err := h.repo.GetByID(fee.ID)
	if err != nil {
		writeError(c, err, "Fee structure")
		return
	}
	utils.Success(c, 201, "Fee structure created successfully", created)
}

// UpdateFeeStructure handles PUT /v1/fee-structure/:id
func (h *FeeStructureHandler) UpdateFeeStructure(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req FeeStructureRequest
	if !bindJSON(c, &req) {
		return
	}

	fee := &models.FeeStructure{
		ID:          id,
		ClassroomID: req.Classroom,
		FeeType:     req.FeeType,
		Amount:      req.Amount,
		Frequency:   req.Frequency,
		Description: req.Description,
	}
	if err := h.repo.Update(fee); err != nil {
		writeError(c, err, "Fee structure")
		return
	}

	updated, err := h.repo.GetByID(id)
	if err != nil {
		writeError(c, err, "Fee structure")
		return
	}
	utils.Success(c, 200, "Fee structure updated successfully", updated)
}

// PatchFeeStructure handles PATCH /v1/fee-structure/:id
func (h *FeeStructureHandler) PatchFeeStructure(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req FeeStructurePatch
	if !bindJSON(c, &req) {
		return
	}

	fee, err := h.repo.GetByID(id)
	if err != nil {
		writeError(c, err, "Fee structure")
		return
	}
	if req.Classroom != nil {
		fee.ClassroomID = *req.Classroom
	}
	if req.FeeType != nil {
		fee.FeeType = *req.FeeType
	}
	if req.Amount != nil {
		fee.Amount = *req.Amount
	}
	if req.Frequency != nil {
		fee.Frequency = *req.Frequency
	}
	if req.Description != nil {
		fee.Description = *req.Description
	}
	if err := h.repo.Update(fee); err != nil {
		writeError(c, err, "Fee structure")
		return
	}

	updated, err := h.repo.GetByID(id)
	if err != nil {
		writeError(c, err, "Fee structure")
		return
	}
	utils.Success(c, 200, "Fee structure updated successfully", updated)
}

// DeleteFeeStructure handles DELETE /v1/fee-structure/:id
func (h *FeeStructureHandler) DeleteFeeStructure(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.repo.Delete(id); err != nil {
		writeError(c, err, "Fee structure")
		return
	}
	utils.Success(c, 200, "Fee structure deleted successfully", nil)
}
