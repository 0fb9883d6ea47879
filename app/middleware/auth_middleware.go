// Package middleware contains HTTP middleware functions for request processing
package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/scoutbase/scoutbase/app/dto"
	businessflow "github.com/scoutbase/scoutbase/business_flow"
)

// AuthMiddleware resolves opaque session tokens through the session
// gate and places the identity in request locals.
type AuthMiddleware struct {
	gate businessflow.SessionGate
}

func NewAuthMiddleware(gate businessflow.SessionGate) *AuthMiddleware {
	return &AuthMiddleware{gate: gate}
}

// Authenticate requires a valid bearer session token.
func (m *AuthMiddleware) Authenticate() fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(
				dto.NewErrorResponse("Authorization header is required", "MISSING_AUTHORIZATION_HEADER", nil))
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(
				dto.NewErrorResponse("Invalid authorization header format. Expected 'Bearer <token>'", "INVALID_AUTHORIZATION_FORMAT", nil))
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(
				dto.NewErrorResponse("Session token is required", "MISSING_SESSION_TOKEN", nil))
		}

		identity, err := m.gate.Resolve(context.Background(), token)
		if err != nil {
			if errors.Is(err, businessflow.ErrSessionExpired) {
				CountSessionResolution("expired")
			} else {
				CountSessionResolution("rejected")
			}
			return unauthorized(c, err)
		}
		CountSessionResolution("ok")

		c.Locals("identity", identity)
		c.Locals("session_token", token)
		return c.Next()
	}
}

// RequireRole gates a route group to the given roles. Must run after
// Authenticate.
func (m *AuthMiddleware) RequireRole(roles ...string) fiber.Handler {
	return func(c fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(
				dto.NewErrorResponse("Authentication required", dto.ErrCodeUnauthenticated, nil))
		}
		if err := m.gate.RequireRole(identity, roles...); err != nil {
			return c.Status(fiber.StatusForbidden).JSON(
				dto.NewErrorResponse("Insufficient privileges", dto.ErrCodeForbidden, nil))
		}
		return c.Next()
	}
}

func unauthorized(c fiber.Ctx, err error) error {
	code := dto.ErrCodeUnauthenticated
	message := "Invalid session"
	if errors.Is(err, businessflow.ErrSessionExpired) {
		code = "SESSION_EXPIRED"
		message = "Session has expired"
	}
	return c.Status(fiber.StatusUnauthorized).JSON(dto.NewErrorResponse(message, code, nil))
}

// IdentityFromContext extracts the resolved identity from request locals
func IdentityFromContext(c fiber.Ctx) (*businessflow.Identity, bool) {
	identity, ok := c.Locals("identity").(*businessflow.Identity)
	return identity, ok
}

// TokenFromContext extracts the raw session token from request locals
func TokenFromContext(c fiber.Ctx) string {
	token, _ := c.Locals("session_token").(string)
	return token
}
