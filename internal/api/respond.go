package api

import (
	"net/http"

	"fitai/plan-service/internal/apperr"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every failed request. Error is meant for the
// end user; Code and MissingFields are for the frontend to branch on.
type ErrorResponse struct {
	Error         string      `json:"error"`
	Code          apperr.Code `json:"code,omitempty"`
	MissingFields []string    `json:"missingFields,omitempty"`
	Retryable     bool        `json:"retryable,omitempty"`
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, ErrorResponse{Error: message})
}

// respondError maps err onto its status and user message. Server-side
// failures are logged with the request id; caller errors are not.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("request_id", requestID(c)),
			zap.String("code", string(apperr.CodeOf(err))),
			zap.Error(err))
	} else {
		logger.Debug("request rejected",
			zap.String("request_id", requestID(c)),
			zap.String("code", string(apperr.CodeOf(err))),
			zap.Error(err))
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:         apperr.UserMessage(err),
		Code:          apperr.CodeOf(err),
		MissingFields: apperr.FieldsOf(err),
		Retryable:     apperr.IsRetryable(err),
	})
}
