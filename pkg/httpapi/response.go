package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jejutic/tg_vampires/pkg/game"
)

// Success represents a successful response with data.
type Success struct {
	Data any `json:"data"`
}

// Error represents an error response.
type Error struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	// Code is a machine-readable error code (e.g., "NOT_FOUND", "INVALID_ACTION")
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Field is the field that caused the error (for validation errors)
	Field string `json:"field,omitempty"`

	// RequestID is the request ID for debugging
	RequestID string `json:"request_id,omitempty"`
}

// OK sends a 200 response with data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Success{Data: data})
}

// Created sends a 201 response with the created resource.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Success{Data: data})
}

// NoContent sends a 204 response with no body.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func abort(c *gin.Context, status int, detail ErrorDetail) {
	detail.RequestID = GetRequestID(c)
	c.JSON(status, Error{Error: detail})
}

// BadRequest sends a 400 response.
func BadRequest(c *gin.Context, message string) {
	abort(c, http.StatusBadRequest, ErrorDetail{Code: "BAD_REQUEST", Message: message})
}

// ValidationError sends a 400 response for rejected settings or names.
func ValidationError(c *gin.Context, field, message string) {
	abort(c, http.StatusBadRequest, ErrorDetail{Code: "VALIDATION_ERROR", Message: message, Field: field})
}

// NotFound sends a 404 response.
func NotFound(c *gin.Context, message string) {
	abort(c, http.StatusNotFound, ErrorDetail{Code: "NOT_FOUND", Message: message})
}

// InvalidAction sends a 409 response: the game is not in a state allowing it.
func InvalidAction(c *gin.Context, message string) {
	abort(c, http.StatusConflict, ErrorDetail{Code: "INVALID_ACTION", Message: message})
}

// InternalError sends a 500 response.
func InternalError(c *gin.Context) {
	abort(c, http.StatusInternalServerError, ErrorDetail{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"})
}

// FromGameError converts an engine error to an appropriate HTTP response.
func FromGameError(c *gin.Context, err error) {
	_ = c.Error(err)

	var configErr *game.ConfigError
	switch {
	case errors.As(err, &configErr):
		ValidationError(c, configErr.Field, configErr.Message)
	case game.IsInvalidAction(err):
		InvalidAction(c, err.Error())
	default:
		InternalError(c)
	}
}
