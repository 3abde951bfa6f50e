package middleware

import (
	stderrors "errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"audio2num/internal/api/errors"
)

// Validator is implemented by requests with rules beyond struct tags.
type Validator interface {
	Validate() error
}

var tagMessages = map[string]string{
	"required": "is required",
	"max":      "is too long",
	"oneof":    "must be one of the allowed values",
}

// ValidateRequest binds the JSON body, then runs struct tag and domain
// validation.
func ValidateRequest(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return errors.NewValidationError("Validation failed", describeBindError(err))
	}

	if v, ok := req.(Validator); ok {
		return v.Validate()
	}
	return nil
}

func describeBindError(err error) map[string]string {
	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return map[string]string{"request": "invalid JSON format"}
	}

	details := make(map[string]string, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		msg, ok := tagMessages[fieldErr.Tag()]
		if !ok {
			msg = "is invalid"
		}
		details[strings.ToLower(fieldErr.Field())] = msg
	}
	return details
}
