package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/SAMSGit/sams_api/internal/models"
	"github.com/SAMSGit/sams_api/internal/repository"
	"github.com/SAMSGit/sams_api/internal/utils"
)

// ClassroomHandler handles classroom CRUD HTTP endpoints. Reads are public;
// writes require a staff caller.
type ClassroomHandler struct {
	repo *repository.ClassroomRepository
}

// NewClassroomHandler constructs a ClassroomHandler.
func NewClassroomHandler(repo *repository.ClassroomRepository) *ClassroomHandler {
	return &ClassroomHandler{repo: repo}
}

// ClassroomRequest is the write payload for classrooms.
type ClassroomRequest struct {
	Name    string `json:"name" binding:"required"`
	Section string `json:"section"`
}

// ClassroomPatch is the partial-update payload for classrooms.
type ClassroomPatch struct {
	Name    *string `json:"name"`
	Section *string `json:"section"`
}

// ListClassrooms handles GET /v1/classrooms
func (h *ClassroomHandler) ListClassrooms(c *gin.Context) {
	page, limit := pagination(c)
	classrooms, total, err := h.repo.List(page, limit)
	if err != nil {
		writeError(c, err, "Classroom")
		return
	}
	utils.SuccessWithPagination(c, 200, "Classrooms retrieved", classrooms, page, limit, total)
}

// GetClassroom handles GET /v1/classrooms/:id
func (h *ClassroomHandler) GetClassroom(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	classroom, err := h.repo.GetByID(id)
	if err != nil {
		writeError(c, err, "Classroom")
		return
	}
	utils.Success(c, 200, "Classroom retrieved", classroom)
}

// CreateClassroom handles POST /v1/classrooms
func (h *ClassroomHandler) CreateClassroom(c *gin.Context) {
	var req ClassroomRequest
	if !bindJSON(c, &req) {
		return
	}

	classroom := &models.ClassRoom{Name: req.Name, Section: req.Section}
	if err := h.repo.Create(classroom); err != nil {
		writeError(c, err, "Classroom")
		return
	}
	utils.Success(c, 201, "Classroom created successfully", classroom)
}

// UpdateClassroom handles PUT /v1/classrooms/:id
func (h *ClassroomHandler) UpdateClassroom(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req ClassroomRequest
	if !bindJSON(c, &req) {
		return
	}

	classroom := &models.ClassRoom{ID: id, Name: req.Name, Section: req.Section}
	if err := h.repo.Update(classroom); err != nil {
		writeError(c, err, "Classroom")
		return
	}
	utils.Success(c, 200, "Classroom updated successfully", classroom)
}

// PatchClassroom handles PATCH /v1/classrooms/:id
func (h *ClassroomHandler) PatchClassroom(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req ClassroomPatch
	if !bindJSON(c, &req) {
		return
	}

	classroom, err := h.repo.GetByID(id)
	if err != nil {
		writeError(c, err, "Classroom")
		return
	}
	if req.Name != nil {
		classroom.Name = *req.Name
	}
	if req.Section != nil {
		classroom.Section = *req.Section
	}
	if err := h.repo.Update(classroom); err != nil {
		writeError(c, err, "Classroom")
		return
	}
	utils.Success(c, 200, "Classroom updated successfully", classroom)
}

// DeleteClassroom handles DELETE /v1/classrooms/:id
func (h *ClassroomHandler) DeleteClassroom(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.repo.Delete(id); err != nil {
		writeError(c, err, "Classroom")
		return
	}
	utils.Success(c, 200, "Classroom deleted successfully", nil)
}
