package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/scoutbase/scoutbase/app/dto"
	businessflow "github.com/scoutbase/scoutbase/business_flow"
)

// SearchHandler serves the player directory
type SearchHandler struct {
	searchFlow businessflow.SearchFlow
	validator  *validator.Validate
}

func NewSearchHandler(searchFlow businessflow.SearchFlow) *SearchHandler {
	return &SearchHandler{
		searchFlow: searchFlow,
		validator:  validator.New(),
	}
}

// SearchPlayers lists players matching the query-string filter
func (h *SearchHandler) SearchPlayers(c fiber.Ctx) error {
	req, err := bindSearchRequest(c, h.validator)
	if err != nil {
		return respondBindError(c, err)
	}

	ctx, cancel := createRequestContext(c)
	defer cancel()

	result, err := h.searchFlow.SearchPlayers(ctx, req)
	if err != nil {
		return mapFlowError(c, err, "Player search failed")
	}
	return successResponse(c, fiber.StatusOK, "Players", result)
}

// SearchScouts lists scouts matching the query-string filter
func (h *SearchHandler) SearchScouts(c fiber.Ctx) error {
	req, err := bindSearchRequest(c, h.validator)
	if err != nil {
		return respondBindError(c, err)
	}

	ctx, cancel := createRequestContext(c)
	defer cancel()

	result, err := h.searchFlow.SearchScouts(ctx, req)
	if err != nil {
		return mapFlowError(c, err, "Scout search failed")
	}
	return successResponse(c, fiber.StatusOK, "Scouts", result)
}

// SearchClubs lists club accounts matching the query-string filter
func (h *SearchHandler) SearchClubs(c fiber.Ctx) error {
	req, err := bindSearchRequest(c, h.validator)
	if err != nil {
		return respondBindError(c, err)
	}

	ctx, cancel := createRequestContext(c)
	defer cancel()

	result, err := h.searchFlow.SearchClubs(ctx, req)
	if err != nil {
		return mapFlowError(c, err, "Club search failed")
	}
	return successResponse(c, fiber.StatusOK, "Clubs", result)
}

// PlayerByUsername returns one player's public profile
func (h *SearchHandler) PlayerByUsername(c fiber.Ctx) error {
	username := c.Params("username")
	if username == "" {
		return errorResponse(c, fiber.StatusBadRequest, "Username is required", dto.ErrCodeValidation, nil)
	}

	ctx, cancel := createRequestContext(c)
	defer cancel()

	result, err := h.searchFlow.PlayerByUsername(ctx, username)
	if err != nil {
		return mapFlowError(c, err, "Player lookup failed")
	}
	return successResponse(c, fiber.StatusOK, "Player", result)
}

// bindSearchRequest binds and validates the shared query-string filter.
func bindSearchRequest(c fiber.Ctx, v *validator.Validate) (*dto.SearchRequest, error) {
	var req dto.SearchRequest
	if err := c.Bind().Query(&req); err != nil {
		return nil, err
	}
	if err := v.Struct(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func respondBindError(c fiber.Ctx, err error) error {
	if _, ok := err.(validator.ValidationErrors); ok {
		return errorResponse(c, fiber.StatusBadRequest, "Validation failed", dto.ErrCodeValidation, validationMessages(err))
	}
	return errorResponse(c, fiber.StatusBadRequest, "Invalid query parameters", "INVALID_REQUEST", err.Error())
}
