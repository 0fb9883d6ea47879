// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/scoutbase/scoutbase/app/dto"
	businessflow "github.com/scoutbase/scoutbase/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

const requestTimeout = 30 * time.Second

func errorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.NewErrorResponse(message, errorCode, details))
}

func successResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.NewSuccessResponse(message, data))
}

func clientMetadata(c fiber.Ctx) *businessflow.ClientMetadata {
	return businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"), c.Get("X-Request-ID"))
}

// createRequestContext builds a per-request context carrying the
// request id and bounded by the handler timeout.
func createRequestContext(c fiber.Ctx) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	return context.WithValue(ctx, businessflow.RequestIDKey, c.Get("X-Request-ID")), cancel
}

// validationMessages flattens validator errors into readable strings.
func validationMessages(err error) []string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			out = append(out, fmt.Sprintf("%s is required", fe.Field()))
		case "email":
			out = append(out, fmt.Sprintf("%s must be a valid email address", fe.Field()))
		case "min":
			out = append(out, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		case "max":
			out = append(out, fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param()))
		case "oneof":
			out = append(out, fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param()))
		case "datetime":
			out = append(out, fmt.Sprintf("%s must match the format %s", fe.Field(), fe.Param()))
		default:
			out = append(out, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return out
}

// mapFlowError translates business errors into the HTTP surface.
// Anything unrecognized becomes a 500 with a generic message.
func mapFlowError(c fiber.Ctx, err error, logPrefix string) error {
	switch {
	case businessflow.IsValidationError(err):
		return errorResponse(c, fiber.StatusBadRequest, err.Error(), dto.ErrCodeValidation, nil)
	case businessflow.IsConflict(err):
		return errorResponse(c, fiber.StatusConflict, err.Error(), dto.ErrCodeDuplicate, nil)
	case businessflow.IsNotFound(err):
		return errorResponse(c, fiber.StatusNotFound, "Not found", dto.ErrCodeNotFound, nil)
	case errors.Is(err, businessflow.ErrInvalidCredentials):
		return errorResponse(c, fiber.StatusUnauthorized, err.Error(), dto.ErrCodeInvalidLogin, nil)
	case businessflow.IsAuthError(err):
		return errorResponse(c, fiber.StatusUnauthorized, err.Error(), dto.ErrCodeUnauthenticated, nil)
	case errors.Is(err, businessflow.ErrForbidden):
		return errorResponse(c, fiber.StatusForbidden, "Insufficient privileges", dto.ErrCodeForbidden, nil)
	case errors.Is(err, businessflow.ErrAccountDisabled):
		return errorResponse(c, fiber.StatusForbidden, "Account is disabled", dto.ErrCodeForbidden, nil)
	}
	return internalError(c, err, logPrefix)
}

func internalError(c fiber.Ctx, err error, logPrefix string) error {
	log.Println(logPrefix, err)
	return errorResponse(c, fiber.StatusInternalServerError, "Internal error", dto.ErrCodeInternal, nil)
}
