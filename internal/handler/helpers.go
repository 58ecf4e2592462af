package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/SAMSGit/sams_api/internal/utils"
)

const (
	defaultPage  = 1
	defaultLimit = 50
	maxLimit     = 200
)

// pagination parses the page/limit query parameters with sane bounds.
func pagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	if page <= 0 {
		page = defaultPage
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

// pathID parses the :id path parameter.
func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		utils.Error(c, 400, "INVALID_ID", "Invalid resource ID")
		return 0, false
	}
	return id, true
}

// bindJSON binds the request body and writes a field-detailed validation
// error on failure.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[strings.ToLower(fe.Field())] = fe.Tag()
			}
			utils.ErrorWithFields(c, 400, "VALIDATION_ERROR", "Invalid request body", fields)
			return false
		}
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return false
	}
	return true
}

// writeError maps application errors onto HTTP responses. Anything outside
// the known taxonomy is a 500 with a generic message.
func writeError(c *gin.Context, err error, resource string) {
	if ve := utils.AsValidationError(err); ve != nil {
		utils.ErrorWithFields(c, 400, "VALIDATION_ERROR", "Validation failed", ve.Fields)
		return
	}
	switch {
	case errors.Is(err, utils.ErrNotFound):
		utils.Error(c, 404, "NOT_FOUND", resource+" not found")
	case errors.Is(err, utils.ErrConflict):
		utils.Error(c, 409, "CONFLICT", resource+" conflicts with an existing record")
	case errors.Is(err, utils.ErrProtected):
		utils.Error(c, 409, "PROTECTED", resource+" is referenced by other records and cannot be deleted")
	case errors.Is(err, utils.ErrForbidden):
		utils.Error(c, 403, "FORBIDDEN", "Insufficient permissions")
	default:
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to process "+strings.ToLower(resource))
	}
}
