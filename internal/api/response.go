package api

import (
	"errors"
	"net/http"

	"alphacloud/assessment-portal/internal/service"

	"github.com/gin-gonic/gin"
)

// errorBody is the uniform failure envelope: {"error":{"code","message"}}.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondOK writes the uniform success envelope. Data and message are
// omitted when empty so pure reads stay compact.
func respondOK(c *gin.Context, data interface{}, message string) {
	body := gin.H{"success": true}
	if data != nil {
		body["data"] = data
	}
	if message != "" {
		body["message"] = message
	}
	c.JSON(http.StatusOK, body)
}

// respondError writes the failure envelope with the given status.
func respondError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": errorBody{Code: code, Message: message}})
}

// respondServiceError maps a service-layer error onto the failure
// envelope. Everything is reported as HTTP 500 with a stable code; only
// login failures use a different status and shape (see AuthHandler).
func respondServiceError(c *gin.Context, err error) {
	code := "INTERNAL_ERROR"
	switch {
	case errors.Is(err, service.ErrStoreUnavailable):
		code = "STORE_UNAVAILABLE"
	case errors.Is(err, service.ErrStoreWriteFailed):
		code = "STORE_WRITE_FAILED"
	case errors.Is(err, service.ErrNotSubmittedYet):
		code = "NOT_SUBMITTED"
	case errors.Is(err, service.ErrAssessmentNotFound):
		code = "ASSESSMENT_NOT_FOUND"
	case errors.Is(err, service.ErrMissingFileData):
		code = "MISSING_FILE_DATA"
	case errors.Is(err, service.ErrBlobStore):
		code = "BLOB_STORE_ERROR"
	case errors.Is(err, service.ErrTemplateInvalid):
		code = "TEMPLATE_INVALID"
	case errors.Is(err, service.ErrTemplateNotFound):
		code = "TEMPLATE_NOT_FOUND"
	case errors.Is(err, service.ErrUnknownNotificationType):
		code = "UNKNOWN_NOTIFICATION_TYPE"
	}
	respondError(c, http.StatusInternalServerError, code, err.Error())
}

// methodNotAllowed answers requests whose method has no route handler.
func methodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{
		"success": false,
		"message": "Method not allowed",
	})
}
