package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

type BadRequestErrorResponse struct {
	Message string            `json:"message"`
	Details []ValidationError `json:"details"`
}

// toValidationErrors turns a binding error into per-field details.
// Errors that are not validator errors (malformed JSON, wrong types) yield nil.
func toValidationErrors(err error) []ValidationError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}
	var res []ValidationError
	for _, fieldErr := range validationErrors {
		res = append(res, ValidationError{
			Field:   fieldErr.Field(),
			Message: getErrorMsg(fieldErr),
			Type:    fieldErr.Tag(),
		})
	}
	return res
}

func getErrorMsg(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "max":
		return "Value is too long"
	default:
		return "Invalid value"
	}
}

// RespondWithBindingError answers 400, with field details when the body was
// well formed but invalid.
func RespondWithBindingError(c *gin.Context, err error) {
	details := toValidationErrors(err)
	if details == nil {
		RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	c.JSON(http.StatusBadRequest, BadRequestErrorResponse{
		Message: "Invalid request data",
		Details: details,
	})
}

func RespondWithError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"message": message,
	})
}
