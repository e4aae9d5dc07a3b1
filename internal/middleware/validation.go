package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/eventvault/backend/internal/app/models/dto"
	"github.com/eventvault/backend/internal/pkg/validation"
)

// RegisterValidators adds the custom tags to gin's binding validator
func RegisterValidators() error {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		return validation.RegisterCustomValidators(v)
	}
	return nil
}

// BindJSON binds and validates a JSON body. On failure it writes a 400
// response and returns false.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return false
	}
	return true
}
