package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"healthscore/internal/questionnaire"
)

// Error codes returned in the envelope
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeBadRequest   = "BAD_REQUEST"
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeRateLimited  = "RATE_LIMITED"
	CodeInternal     = "INTERNAL_ERROR"
)

type APIError struct {
	Message string                     `json:"message"`
	Code    string                     `json:"code,omitempty"`
	Fields  []questionnaire.FieldError `json:"fields,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondValidation reports every invalid answer field
func RespondValidation(c *gin.Context, verr *questionnaire.ValidationError) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorEnvelope{
		Error: APIError{
			Message: "invalid answers",
			Code:    CodeValidation,
			Fields:  verr.Fields,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
