package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Sentinel errors services return; the handler maps them to status
// codes so controllers can just bubble errors up.
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidSession = errors.New("invalid session id")
	ErrUnknownTable   = errors.New("unknown catalog table")
	ErrInvalidOTP     = errors.New("invalid or expired otp")
	ErrTooManyOTP     = errors.New("too many otp requests")
)

// ErrorHandlerMiddleware converts errors bubbled out of handlers into
// JSON responses with mapped status codes.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return ErrorHandler(ctx, err)
	}
}

func ErrorHandler(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"

	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	case errors.Is(err, ErrNotFound):
		code = fiber.StatusNotFound
		message = err.Error()
	case errors.Is(err, ErrInvalidSession), errors.Is(err, ErrUnknownTable):
		code = fiber.StatusBadRequest
		message = err.Error()
	case errors.Is(err, ErrInvalidOTP):
		code = fiber.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, ErrTooManyOTP):
		code = fiber.StatusTooManyRequests
		message = err.Error()
	}

	return ctx.Status(code).JSON(ErrorResponse(code, message))
}
