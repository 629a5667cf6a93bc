package util

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"feedback-portal-backend/service"
	"feedback-portal-backend/store"
)

// ErrorResponse is the generic error body sent to clients.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationResponse itemizes every violated field.
type ValidationResponse struct {
	Errors []service.FieldError `json:"errors"`
}

// Client-facing messages. Store detail never leaves the server.
const (
	ErrMsgDatabase     = "Database error"
	ErrMsgNotFound     = "Feedback not found"
	ErrMsgUnauthorized = "Invalid credentials"
)

// HandleError logs the detailed error and returns a generic message to the
// client.
func HandleError(c *gin.Context, statusCode int, userMessage string, detailedError error) {
	if detailedError != nil {
		log.WithError(detailedError).Error(userMessage)
	}
	c.JSON(statusCode, ErrorResponse{Error: userMessage})
}

// RespondServiceError maps the service error taxonomy onto HTTP: itemized
// 400 for validation, 404 for missing records, 500 with a generic body for
// anything from the store.
func RespondServiceError(c *gin.Context, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, ValidationResponse{Errors: verr.Fields})
		return
	}
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: ErrMsgNotFound})
		return
	}
	HandleError(c, http.StatusInternalServerError, ErrMsgDatabase, err)
}
