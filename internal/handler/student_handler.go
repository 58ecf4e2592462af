package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/SAMSGit/sams_api/internal/models"
	"github.com/SAMSGit/sams_api/internal/repository"
	"github.com/SAMSGit/sams_api/internal/utils"
)

// StudentHandler handles student CRUD HTTP endpoints.
type StudentHandler struct {
	repo *repository.StudentRepository
}

// NewStudentHandler constructs a StudentHandler.
func NewStudentHandler(repo *repository.StudentRepository) *StudentHandler {
	return &StudentHandler{repo: repo}
}

// StudentRequest is the write payload for students.
type StudentRequest struct {
	FirstName    string      `json:"first_name" binding:"required"`
	LastName     string      `json:"last_name" binding:"required"`
	DateOfBirth  models.Date `json:"date_of_birth" binding:"required"`
	RollNumber   string      `json:"roll_number" binding:"required"`
	Classroom    int         `json:"classroom" binding:"required"`
	GuardianName string      `json:"guardian_name"`
	ContactPhone string      `json:"contact_phone"`
	ContactEmail string      `json:"contact_email" binding:"omitempty,email"`
	Address      string      `json:"address"`
}

// StudentPatch is the partial-update payload for students.
type StudentPatch struct {
	FirstName    *string      `json:"first_name"`
	LastName     *string      `json:"last_name"`
	DateOfBirth  *models.Date `json:"date_of_birth"`
	RollNumber   *string      `json:"roll_number"`
	Classroom    *int         `json:"classroom"`
	GuardianName *string      `json:"guardian_name"`
	ContactPhone *string      `json:"contact_phone"`
	ContactEmail *string      `json:"contact_email" binding:"omitempty,email"`
	Address      *string      `json:"address"`
}

// ListStudents handles GET /v1/students
func (h *StudentHandler) ListStudents(c *gin.Context) {
	page, limit := pagination(c)
	students, total, err := h.repo.List(page, limit)
	if err != nil {
		writeError(c, err, "Student")
		return
	}
	utils.SuccessWithPagination(c, 200, "Students retrieved", students, page, limit, total)
}

// GetStudent handles GET /v1/students/:id
func (h *StudentHandler) GetStudent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	student, err := h.repo.GetByID(id)
	if err != nil {
		writeError(c, err, "Student")
		return
	}
	utils.Success(c, 200, "Student retrieved", student)
}

// CreateStudent handles POST /v1/students
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var req StudentRequest
	if !bindJSON(c, &req) {
		return
	}

	student := &models.Student{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		DateOfBirth:  req.DateOfBirth,
		RollNumber:   req.RollNumber,
		ClassroomID:  req.Classroom,
		GuardianName: req.GuardianName,
		ContactPhone: req.ContactPhone,
		ContactEmail: req.ContactEmail,
		Address:      req.Address,
	}
	if err := h.repo.Create(student); err != nil {
		writeError(c, err, "Student")
		return
	}

	// Re-read to embed classroom_detail in the response.
	created, err := h.repo.GetByID(student.ID)
	if err != nil {
		writeError(c, err, "Student")
		return
	}
	utils.Success(c, 201, "Student created successfully", created)
}

// UpdateStudent handles PUT /v1/students/:id
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req StudentRequest
	if !bindJSON(c, &req) {
		return
	}

	student := &models.Student{
		ID:           id,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		DateOfBirth:  req.DateOfBirth,
		RollNumber:   req.RollNumber,
		ClassroomID:  req.Classroom,
		GuardianName: req.GuardianName,
		ContactPhone: req.ContactPhone,
		ContactEmail: req.ContactEmail,
		Address:      req.Address,
	}
	if err := h.repo.Update(student); err != nil {
		writeError(c, err, "Student")
		return
	}

	updated, err := h.repo.GetByID(id)
	if err != nil {
		writeError(c, err, "Student")
		return
	}
	utils.Success(c, 200, "Student updated successfully", updated)
}

// PatchStudent handles PATCH /v1/students/:id
func (h *StudentHandler) PatchStudent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req StudentPatch
	if !bindJSON(c, &req) {
		return
	}

	student, err := h.repo.GetByID(id)
	if err != nil {
		writeError(c, err, "Student")
		return
	}
	if req.FirstName != nil {
		student.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		student.LastName = *req.LastName
	}
	if req.DateOfBirth != nil {
		student.DateOfBirth = *req.DateOfBirth
	}
	if req.RollNumber != nil {
		student.RollNumber = *req.RollNumber
	}
	if req.Classroom != nil {
		student.ClassroomID = *req.Classroom
	}
	if req.GuardianName != nil {
		student.GuardianName = *req.GuardianName
	}
	if req.ContactPhone != nil {
		student.ContactPhone = *req.ContactPhone
	}
	if req.ContactEmail != nil {
		student.ContactEmail = *req.ContactEmail
	}
	if req.Address != nil {
		student.Address = *req.Address
	}
	if err := h.repo.Update(student); err != nil {
		writeError(c, err, "Student")
		return
	}

	updated, err := h.repo.GetByID(id)
	if err != nil {
		writeError(c, err, "Student")
		return
	}
	utils.Success(c, 200, "Student updated successfully", updated)
}

// DeleteStudent handles DELETE /v1/students/:id
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.repo.Delete(id); err != nil {
		writeError(c, err, "Student")
		return
	}
	utils.Success(c, 200, "Student deleted successfully", nil)
}
