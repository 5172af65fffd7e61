// error.go
//
// Family photo sharing backend for kids' memories.

package types

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// CustomError is the structured error every service raises. The fiber error
// handler maps it onto the standard JSON error envelope.
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// NotFound marks a record as absent or inaccessible. The two cases are
// intentionally indistinguishable to the caller.
func NotFound(message string) *CustomError {
	return &CustomError{Code: fiber.StatusNotFound, Message: message, Type: "not_found"}
}

// Forbidden marks a disallowed action on a visible resource.
func Forbidden(message string) *CustomError {
	return &CustomError{Code: fiber.StatusForbidden, Message: message, Type: "forbidden"}
}

// BadRequest marks malformed input at the domain level.
func BadRequest(message string) *CustomError {
	return &CustomError{Code: fiber.StatusBadRequest, Message: message, Type: "bad_request"}
}

// Conflict marks a uniqueness violation surfaced from the store.
func Conflict(message string) *CustomError {
	return &CustomError{Code: fiber.StatusConflict, Message: message, Type: "conflict"}
}

// Unauthorized marks a missing or invalid identity.
func Unauthorized(message string) *CustomError {
	return &CustomError{Code: fiber.StatusUnauthorized, Message: message, Type: "unauthorized"}
}

// AsCustom unwraps err into a *CustomError when possible.
func AsCustom(err error) (*CustomError, bool) {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
