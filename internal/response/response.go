// Package response fixes the API's error envelope: every failure, from any
// endpoint, is `{"status":"error","message":...}` with the class carried by
// the HTTP status code. Success bodies vary per endpoint and are written by
// the handlers directly.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorBody is the error response shape shared by every endpoint.
type ErrorBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Error sends a JSON error body with the given HTTP status. Only the message
// string of the underlying failure is exposed, never a stack trace.
func Error(c echo.Context, status int, message string) error {
	return c.JSON(status, ErrorBody{Status: "error", Message: message})
}

// BadRequest sends 400; used for malformed payloads and query parameters.
func BadRequest(c echo.Context, message string) error {
	return Error(c, http.StatusBadRequest, message)
}

// NotFound sends 404; used when a required blob (the catalog) is absent.
func NotFound(c echo.Context, message string) error {
	return Error(c, http.StatusNotFound, message)
}

// InternalError sends 500; used for backend I/O and parse failures.
func InternalError(c echo.Context, message string) error {
	return Error(c, http.StatusInternalServerError, message)
}
