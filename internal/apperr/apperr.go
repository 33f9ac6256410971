package apperr

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Kind labels the failure class surfaced to clients. Authentication and
// authorization are deliberately distinct so a caller can tell "who are you"
// failures from "you can't touch that" failures.
const (
	KindValidation     = "validation_error"
	KindAuthentication = "authentication_error"
	KindAuthorization  = "authorization_error"
	KindInternal       = "internal_error"
)

// Error is a request-terminal failure carrying the HTTP status it maps to.
type Error struct {
	Kind    string
	Message string
	Status  int
	cause   error
}

func (e *Error) Error() string { return e.Message }

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error { return e.cause }

// Validation reports a malformed or incomplete request body/path.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message, Status: http.StatusBadRequest}
}

// Authentication reports a failed credential or token check. The status is
// caller-chosen: a missing token maps to 401 while a present-but-invalid one
// maps to 403.
func Authentication(status int, message string) *Error {
	return &Error{Kind: KindAuthentication, Message: message, Status: status}
}

// Authorization reports a valid identity acting on a resource it does not own.
func Authorization(message string) *Error {
	return &Error{Kind: KindAuthorization, Message: message, Status: http.StatusForbidden}
}

// Internal wraps a server-side fault. The cause is logged by the error
// handler, never echoed to the client.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", Status: http.StatusInternalServerError, cause: err}
}

// Handler builds the fiber error handler that converts taxonomy errors into
// JSON responses. Errors outside the taxonomy are treated as internal.
func Handler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var appErr *Error
		if errors.As(err, &appErr) {
			if appErr.Kind == KindInternal && logger != nil {
				logger.Error("internal error", slog.String("path", c.Path()), slog.Any("error", appErr.cause))
			}
			return c.Status(appErr.Status).JSON(fiber.Map{
				"error":   appErr.Kind,
				"message": appErr.Message,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"error":   kindForStatus(fiberErr.Code),
				"message": fiberErr.Message,
			})
		}

		if logger != nil {
			logger.Error("unhandled request error", slog.String("path", c.Path()), slog.Any("error", err))
		}
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error":   KindInternal,
			"message": "internal error",
		})
	}
}

func kindForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return KindValidation
	case http.StatusUnauthorized:
		return KindAuthentication
	case http.StatusForbidden:
		return KindAuthorization
	default:
		return KindInternal
	}
}
