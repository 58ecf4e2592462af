package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/SAMSGit/sams_api/internal/models"
	"github.com/SAMSGit/sams_api/internal/repository"
	"github.com/SAMSGit/sams_api/internal/utils"
)

// GradeHandler handles grade CRUD HTTP endpoints.
type GradeHandler struct {
	repo *repository.GradeRepository
}

// NewGradeHandler constructs a GradeHandler.
func NewGradeHandler(repo *repository.GradeRepository) *GradeHandler {
	return &GradeHandler{repo: repo}
}

// GradeRequest is the write payload for grades.
type GradeRequest struct {
	Student  int     `json:"student" binding:"required"`
	Subject  string  `json:"subject" binding:"required"`
	Term     string  `json:"term" binding:"required"`
	Score    float64 `json:"score" binding:"min=0"`
	MaxScore float64 `json:"max_score" binding:"omitempty,min=0"`
}

// GradePatch is the partial-update payload for grades.
type GradePatch struct {
	Student  *int     `json:"student"`
	Subject  *string  `json:"subject"`
	Term     *string  `json:"term"`
	Score    *float64 `json:"score"`
	MaxScore *float64 `json:"max_score"`
}

// ListGrades handles GET /v1/grades
func (h *GradeHandler) ListGrades(c *gin.Context) {
	page, limit := pagination(c)
	grades, total, err := h.repo.List(page, limit)
	if err != nil {
		writeError(c, err, "Grade")
		return
	}
	utils.SuccessWithPagination(c, 200, "Grades retrieved", grades, page, limit, total)
}

// GetGrade handles GET /v1/grades/:id
func (h *GradeHandler) GetGrade(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	grade, err := h.repo.GetByID(id)
	if err != nil {
		writeError(c, err, "Grade")
		return
	}
	utils.Success(c, 200, "Grade retrieved", grade)
}

// CreateGrade handles POST /v1/grades
func (h *GradeHandler) CreateGrade(c *gin.Context) {
	var req GradeRequest
	if !bindJSON(c, &req) {
		return
	}

	grade := &models.Grade{
		StudentID: req.Student,
		Subject:   req.Subject,
		Term:      req.Term,
		Score:     req.Score,
		MaxScore:  req.MaxScore,
	}
	if err := h.repo.Create(grade); err != nil {
		writeError(c, err, "Grade")
		return
	}

	created, err := h.repo.GetByID(grade.ID)
	if err != nil {
		writeError(c, err, "Grade")
		return
	}
	utils.Success(c, 201, "Grade created successfully", created)
}

// UpdateGrade handles PUT /v1/grades/:id
func (h *GradeHandler) UpdateGrade(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req GradeRequest
	if !bindJSON(c, &req) {
		return
	}

	grade, err := h.repo.GetByID(id)
	if err != nil {
		writeError(c, err, "Grade")
		return
	}
	grade.StudentID = req.Student
	grade.Subject = req.Subject
	grade.Term = req.Term
	grade.Score = req.Score
	if req.MaxScore != 0 {
		grade.MaxScore = req.MaxScore
	}
	if err := h.repo.Update(grade); err != nil {
		writeError(c, err, "Grade")
		return
	}

	updated, err := h.repo.GetByID(id)
	if err != nil {
		writeError(c, err, "Grade")
		return
	}
	utils.Success(c, 200, "Grade updated successfully", updated)
}

// PatchGrade handles PATCH /v1/grades/:id
func (h *GradeHandler) PatchGrade(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req GradePatch
	if !bindJSON(c, &req) {
		return
	}

	grade, err := h.repo.GetByID(id)
	if err != nil {
		writeError(c, err, "Grade")
		return
	}
	if req.Student != nil {
		grade.StudentID = *req.Student
	}
	if req.Subject != nil {
		grade.Subject = *req.Subject
	}
	if req.Term != nil {
		grade.Term = *req.Term
	}
	if req.Score != nil {
		grade.Score = *req.Score
	}
	if req.MaxScore != nil {
		grade.MaxScore = *req.MaxScore
	}
	if err := h.repo.Update(grade); err != nil {
		writeError(c, err, "Grade")
		return
	}

	updated, err := h.repo.GetByID(id)
	if err != nil {
		writeError(c, err, "Grade")
		return
	}
	utils.Success(c, 200, "Grade updated successfully", updated)
}

// DeleteGrade handles DELETE /v1/grades/:id
func (h *GradeHandler) DeleteGrade(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.repo.Delete(id); err != nil {
		writeError(c, err, "Grade")
		return
	}
	utils.Success(c, 200, "Grade deleted successfully", nil)
}
