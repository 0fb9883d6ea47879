package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/scoutbase/scoutbase/app/dto"
	"github.com/scoutbase/scoutbase/app/middleware"
	businessflow "github.com/scoutbase/scoutbase/business_flow"
)

// ProfileHandler serves the authenticated user's own profile
type ProfileHandler struct {
	profileFlow businessflow.ProfileFlow
	validator   *validator.Validate
}

func NewProfileHandler(profileFlow businessflow.ProfileFlow) *ProfileHandler {
	return &ProfileHandler{
		profileFlow: profileFlow,
		validator:   validator.New(),
	}
}

// Me returns the authenticated user's profile
func (h *ProfileHandler) Me(c fiber.Ctx) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, "Authentication required", dto.ErrCodeUnauthenticated, nil)
	}

	ctx, cancel := createRequestContext(c)
	defer cancel()

	result, err := h.profileFlow.Get(ctx, identity)
	if err != nil {
		return mapFlowError(c, err, "Profile load failed")
	}
	return successResponse(c, fiber.StatusOK, "Profile", result)
}

// UpdateMe replaces the mutable profile fields
func (h *ProfileHandler) UpdateMe(c fiber.Ctx) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, "Authentication required", dto.ErrCodeUnauthenticated, nil)
	}

	var req dto.UpdateProfileRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Validation failed", dto.ErrCodeValidation, validationMessages(err))
	}

	ctx, cancel := createRequestContext(c)
	defer cancel()

	result, err := h.profileFlow.Update(ctx, identity, &req, clientMetadata(c))
	if err != nil {
		return mapFlowError(c, err, "Profile update failed")
	}
	return successResponse(c, fiber.StatusOK, "Profile updated", result)
}
