package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/SAMSGit/sams_api/internal/models"
	"github.com/SAMSGit/sams_api/internal/repository"
	"github.com/SAMSGit/sams_api/internal/utils"
)

// AttendanceHandler handles attendance CRUD HTTP endpoints.
type AttendanceHandler struct {
	repo *repository.AttendanceRepository
}

// NewAttendanceHandler constructs an AttendanceHandler.
func NewAttendanceHandler(repo *repository.AttendanceRepository) *AttendanceHandler {
	return &AttendanceHandler{repo: repo}
}

// AttendanceRequest is the write payload for attendance records.
type AttendanceRequest struct {
	Student int                     `json:"student" binding:"required"`
	Date    models.Date             `json:"date" binding:"required"`
	Status  models.AttendanceStatus `json:"status"`
	Notes   string                  `json:"notes"`
}

// AttendancePatch is the partial-update payload for attendance records.
type AttendancePatch struct {
	Student *int                     `json:"student"`
	Date    *models.Date             `json:"date"`
	Status  *models.AttendanceStatus `json:"status"`
	Notes   *string                  `json:"notes"`
}

// ListAttendance handles GET /v1/attendance
func (h *AttendanceHandler) ListAttendance(c *gin.Context) {
	page, limit := pagination(c)
	records, total, err := h.repo.List(page, limit)
	if err != nil {
		writeError(c, err, "Attendance record")
		return
	}
	utils.SuccessWithPagination(c, 200, "Attendance records retrieved", records, page, limit, total)
}

// GetAttendance handles GET /v1/attendance/:id
func (h *AttendanceHandler) GetAttendance(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	rec, err := h.repo.GetByID(id)
	if err != nil {
		writeError(c, err, "Attendance record")
		return
	}
	utils.Success(c, 200, "Attendance record retrieved", rec)
}

// CreateAttendance handles POST /v1/attendance
func (h *AttendanceHandler) CreateAttendance(c *gin.Context) {
	var req AttendanceRequest
	if !bindJSON(c, &req) {
		return
	}
	status := req.Status
	if status == "" {
		status = models.AttendancePresent
	}
	if !models.ValidAttendanceStatus(status) {
		utils.ErrorWithFields(c, 400, "VALIDATION_ERROR", "Validation failed",
			map[string]string{"status": "must be one of present, absent, late"})
		return
	}

	rec := &models.Attendance{
		StudentID: req.Student,
		Date:      req.Date,
		Status:    status,
		Notes:     req.Notes,
	}
	if err := h.repo.Create(rec); err != nil {
		writeError(c, err, "Attendance record")
		return
	}

	created, err := h.repo.GetByID(rec.ID)
	if err != nil {
		writeError(c, err, "Attendance record")
		return
	}
	utils.Success(c, 201, "Attendance record created successfully", created)
}

// UpdateAttendance handles PUT /v1/attendance/:id
func (h *AttendanceHandler) UpdateAttendance(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req AttendanceRequest
	if !bindJSON(c, &req) {
		return
	}
	status := req.Status
	if status == "" {
		status = models.AttendancePresent
	}
	if !models.ValidAttendanceStatus(status) {
		utils.ErrorWithFields(c, 400, "VALIDATION_ERROR", "Validation failed",
			map[string]string{"status": "must be one of present, absent, late"})
		return
	}

	rec := &models.Attendance{
		ID:        id,
		StudentID: req.Student,
		Date:      req.Date,
		Status:    status,
		Notes:     req.Notes,
	}
	if err := h.repo.Update(rec); err != nil {
		writeError(c, err, "Attendance record")
		return
	}

	updated, err := h.repo.GetByID(id)
	if err != nil {
		writeError(c, err, "Attendance record")
		return
	}
	utils.Success(c, 200, "Attendance record updated successfully", updated)
}

// PatchAttendance handles PATCH /v1/attendance/:id
func (h *AttendanceHandler) PatchAttendance(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req AttendancePatch
	if !bindJSON(c, &req) {
		return
	}

	rec, err := h.repo.GetByID(id)
	if err != nil {
		writeError(c, err, "Attendance record")
		return
	}
	if req.Student != nil {
		rec.StudentID = *req.Student
	}
	if req.Date != nil {
		rec.Date = *req.Date
	}
	if req.Status != nil {
		if !models.ValidAttendanceStatus(*req.Status) {
			utils.ErrorWithFields(c, 400, "VALIDATION_ERROR", "Validation failed",
				map[string]string{"status": "must be one of present, absent, late"})
			return
		}
		rec.Status = *req.Status
	}
	if req.Notes != nil {
		rec.Notes = *req.Notes
	}
	if err := h.repo.Update(rec); err != nil {
		writeError(c, err, "Attendance record")
		return
	}

	updated, err := h.repo.GetByID(id)
	if err != nil {
		writeError(c, err, "Attendance record")
		return
	}
	utils.Success(c, 200, "Attendance record updated successfully", updated)
}

// DeleteAttendance handles DELETE /v1/attendance/:id
func (h *AttendanceHandler) DeleteAttendance(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.repo.Delete(id); err != nil {
		writeError(c, err, "Attendance record")
		return
	}
	utils.Success(c, 200, "Attendance record deleted successfully", nil)
}
