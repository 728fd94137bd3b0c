package api

import (
	"errors"                               // Error inspection
	"net/http"                             // HTTP status codes
	"referral_rewards/internal/middleware" // Request identifiers
	"referral_rewards/internal/service"    // Domain errors
	"strconv"                              // Path parameter parsing

	"github.com/gin-gonic/gin"               // Gin web framework
	"github.com/go-playground/validator/v10" // Binding validation errors
	"github.com/sirupsen/logrus"             // Logging library
)

// statusOf maps validation errors to HTTP statuses; zero means unexpected
func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrAccountNotActive):
		return http.StatusForbidden
	case errors.Is(err, service.ErrMissingFields),
		errors.Is(err, service.ErrDuplicateEmail),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrAlreadyApplied),
		errors.Is(err, service.ErrSelfReferral),
		errors.Is(err, service.ErrInvalidCode),
		errors.Is(err, service.ErrInvalidStatus):
		return http.StatusBadRequest
	}
	return 0
}

// respondError writes a validation error verbatim, or a generic 500 for anything else
func respondError(c *gin.Context, err error) {
	if status := statusOf(err); status != 0 {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	// Log the cause; the client only sees an opaque message
	logrus.WithFields(logrus.Fields{
		"request_id": c.GetString(middleware.RequestIDKey),
		"route":      c.FullPath(),
		"error":      err.Error(),
	}).Error("Request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
}

// bindJSON decodes and validates the body, answering 400 itself on failure
func bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			// Any missing required field collapses to one message
			if fe.Tag() == "required" || fe.Tag() == "required_without" {
				c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrMissingFields.Error()})
				return false
			}
		}
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
	return false
}

// pathUserID parses the :userId path parameter
func pathUserID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return 0, false
	}
	return uint(id), true
}
