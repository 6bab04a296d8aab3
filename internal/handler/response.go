package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"equitylens/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
// Codes are the domain.FailureReason values.
func MapDomainError(err error) (status int, code, msg string) {
	reason := string(domain.ReasonOf(err))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, reason, "analysis not found"
	case errors.Is(err, domain.ErrMissingFile):
		return http.StatusBadRequest, reason, "no file was uploaded; send one file in the 'file' field"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, reason, "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrEmptyInput):
		return http.StatusUnprocessableEntity, reason, "the spreadsheet is empty or invalid"
	case errors.Is(err, domain.ErrUnreadableFormat):
		return http.StatusUnprocessableEntity, reason, "unsupported format or invalid file; allowed: csv, xls, xlsx, pdf, jpg, png"
	case errors.Is(err, domain.ErrNoClassifiableStructure):
		return http.StatusUnprocessableEntity, reason, "could not identify asset and liability columns automatically"
	case errors.Is(err, domain.ErrVisionFailure):
		return http.StatusBadGateway, reason, "the AI vision service could not read the document"
	default:
		return http.StatusInternalServerError, string(domain.ReasonInternal), "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
