package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/scoutbase/scoutbase/app/dto"
	"github.com/scoutbase/scoutbase/app/middleware"
	businessflow "github.com/scoutbase/scoutbase/business_flow"
)

// AuthHandlerInterface defines the contract for authentication handlers
type AuthHandlerInterface interface {
	Register(c fiber.Ctx) error
	Login(c fiber.Ctx) error
	Logout(c fiber.Ctx) error
	LogoutAll(c fiber.Ctx) error
}

// AuthHandler handles registration and session endpoints
type AuthHandler struct {
	signupFlow businessflow.SignupFlow
	loginFlow  businessflow.LoginFlow
	validator  *validator.Validate
}

func NewAuthHandler(signupFlow businessflow.SignupFlow, loginFlow businessflow.LoginFlow) *AuthHandler {
	return &AuthHandler{
		signupFlow: signupFlow,
		loginFlow:  loginFlow,
		validator:  validator.New(),
	}
}

// Register handles self-service account creation
func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Validation failed", dto.ErrCodeValidation, validationMessages(err))
	}

	ctx, cancel := createRequestContext(c)
	defer cancel()

	result, err := h.signupFlow.Register(ctx, &req, clientMetadata(c))
	if err != nil {
		return mapFlowError(c, err, "Registration failed")
	}
	return successResponse(c, fiber.StatusCreated, "Account created", result)
}

// Login verifies credentials and returns an opaque session token
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Validation failed", dto.ErrCodeValidation, validationMessages(err))
	}

	ctx, cancel := createRequestContext(c)
	defer cancel()

	result, err := h.loginFlow.Login(ctx, &req, clientMetadata(c))
	if err != nil {
		return mapFlowError(c, err, "Login failed")
	}
	return successResponse(c, fiber.StatusOK, "Login successful", result)
}

// Logout ends the presented session
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, "Authentication required", dto.ErrCodeUnauthenticated, nil)
	}

	ctx, cancel := createRequestContext(c)
	defer cancel()

	if err := h.loginFlow.Logout(ctx, identity, middleware.TokenFromContext(c), clientMetadata(c)); err != nil {
		return mapFlowError(c, err, "Logout failed")
	}
	return successResponse(c, fiber.StatusOK, "Logged out", nil)
}

// LogoutAll ends every session of the authenticated user
func (h *AuthHandler) LogoutAll(c fiber.Ctx) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, "Authentication required", dto.ErrCodeUnauthenticated, nil)
	}

	ctx, cancel := createRequestContext(c)
	defer cancel()

	if err := h.loginFlow.LogoutAll(ctx, identity, clientMetadata(c)); err != nil {
		return mapFlowError(c, err, "Logout all failed")
	}
	return successResponse(c, fiber.StatusOK, "All sessions ended", nil)
}
