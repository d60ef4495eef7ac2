package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the generic JSON body for unexpected failures.
type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// AppError is a typed application error. Fields is populated for validation
// failures and maps field names to human-readable messages.
type AppError struct {
	Code    string
	Message string
	Fields  map[string][]string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Error codes recognized by the request boundary.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeCredentials  = "INVALID_CREDENTIALS"
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeInternal     = "INTERNAL_ERROR"
)

// NewValidationError wraps per-field validation messages.
func NewValidationError(fields map[string][]string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: "The given data was invalid",
		Fields:  fields,
	}
}

// NewCredentialsError signals an email/password mismatch. It is deliberately
// not field-specific.
func NewCredentialsError() *AppError {
	return &AppError{
		Code:    CodeCredentials,
		Message: "Invalid credentials",
	}
}

func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: resource + " not found",
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// IsCode reports whether err is an *AppError carrying the given code.
func IsCode(err error, code string) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code == code
}

// FieldsOf returns the field messages of a validation *AppError, or nil.
func FieldsOf(err error) map[string][]string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Fields
	}
	return nil
}

// RespondInternalError renders an unexpected failure as an explicit 500 body.
// Expected conditions (validation, credentials, not-found) are rendered by the
// handlers with their endpoint-specific envelopes and never reach this path.
func RespondInternalError(c *fiber.Ctx, err error) error {
	resp := ErrorResponse{Error: true, Message: "Internal server error"}
	if appErr, ok := err.(*AppError); ok {
		resp.Code = appErr.Code
	}
	return c.Status(fiber.StatusInternalServerError).JSON(resp)
}
