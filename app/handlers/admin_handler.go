package handlers

import (
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/scoutbase/scoutbase/app/dto"
	"github.com/scoutbase/scoutbase/app/middleware"
	businessflow "github.com/scoutbase/scoutbase/business_flow"
	"github.com/scoutbase/scoutbase/utils"
)

// AdminHandler serves the back-office endpoints. The admin role gate
// runs in the router; handlers only read the identity for auditing.
type AdminHandler struct {
	adminFlow businessflow.AdminFlow
	validator *validator.Validate
}

func NewAdminHandler(adminFlow businessflow.AdminFlow) *AdminHandler {
	return &AdminHandler{
		adminFlow: adminFlow,
		validator: validator.New(),
	}
}

// Dashboard returns the aggregate counts and distributions
func (h *AdminHandler) Dashboard(c fiber.Ctx) error {
	ctx, cancel := createRequestContext(c)
	defer cancel()

	result, err := h.adminFlow.Dashboard(ctx)
	if err != nil {
		return mapFlowError(c, err, "Dashboard failed")
	}
	return successResponse(c, fiber.StatusOK, "Dashboard", result)
}

// ListUsers lists accounts, optionally restricted to one role
func (h *AdminHandler) ListUsers(c fiber.Ctx) error {
	req, err := bindSearchRequest(c, h.validator)
	if err != nil {
		return respondBindError(c, err)
	}
	role := c.Query("role")

	ctx, cancel := createRequestContext(c)
	defer cancel()

	result, err := h.adminFlow.ListUsers(ctx, role, req)
	if err != nil {
		return mapFlowError(c, err, "User listing failed")
	}
	return successResponse(c, fiber.StatusOK, "Users", result)
}

// Activity returns the recent activity feed
func (h *AdminHandler) Activity(c fiber.Ctx) error {
	limit, err := queryInt(c, "limit", utils.DefaultPageSize)
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "limit must be a non-negative integer", dto.ErrCodeValidation, nil)
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "offset must be a non-negative integer", dto.ErrCodeValidation, nil)
	}

	ctx, cancel := createRequestContext(c)
	defer cancel()

	result, err := h.adminFlow.Activity(ctx, limit, offset)
	if err != nil {
		return mapFlowError(c, err, "Activity feed failed")
	}
	return successResponse(c, fiber.StatusOK, "Activity", result)
}

// Matches returns upcoming fixtures
func (h *AdminHandler) Matches(c fiber.Ctx) error {
	limit, err := queryInt(c, "limit", utils.DefaultPageSize)
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "limit must be a non-negative integer", dto.ErrCodeValidation, nil)
	}

	ctx, cancel := createRequestContext(c)
	defer cancel()

	result, err := h.adminFlow.UpcomingMatches(ctx, limit)
	if err != nil {
		return mapFlowError(c, err, "Match listing failed")
	}
	return successResponse(c, fiber.StatusOK, "Matches", result)
}

// DeleteUser removes an account and everything cascading from it
func (h *AdminHandler) DeleteUser(c fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid user id", dto.ErrCodeValidation, nil)
	}
	identity, _ := middleware.IdentityFromContext(c)

	ctx, cancel := createRequestContext(c)
	defer cancel()

	if err := h.adminFlow.DeleteUser(ctx, identity, uint(id), clientMetadata(c)); err != nil {
		return mapFlowError(c, err, "User deletion failed")
	}
	return successResponse(c, fiber.StatusOK, "User deleted", nil)
}

// ExportUsers streams the user listing as an XLSX workbook
func (h *AdminHandler) ExportUsers(c fiber.Ctx) error {
	role := c.Query("role")
	identity, _ := middleware.IdentityFromContext(c)

	ctx, cancel := createRequestContext(c)
	defer cancel()

	workbook, err := h.adminFlow.ExportUsersXLSX(ctx, identity, role, clientMetadata(c))
	if err != nil {
		return mapFlowError(c, err, "Export failed")
	}

	filename := "users.xlsx"
	if role != "" {
		filename = fmt.Sprintf("users_%s.xlsx", role)
	}
	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(workbook)
}

// queryInt parses a non-negative integer query parameter.
func queryInt(c fiber.Ctx, key string, fallback int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return v, nil
}
