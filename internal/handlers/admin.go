// admin.go
//
// Family photo sharing backend for kids' memories.

package handlers

import (
	"strconv"

	"github.com/NgocTV11/kids-memories-backend/internal/services"
	"github.com/NgocTV11/kids-memories-backend/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminHandler handles the dashboard routes. Routing mounts these behind
// the admin-only middleware so the handlers themselves do not re-check.
type AdminHandler struct {
	DB *gorm.DB
}

// Stats handles GET /api/admin/stats
// @Summary Platform-wide dashboard counters
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.DashboardStats
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := services.GetDashboardStats(h.DB)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, stats, fiber.StatusOK)
}

// Users handles GET /api/admin/users
// @Summary Paginated user listing with content counts
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 20, max 100)"
// @Success 200 {object} services.AdminUserPage
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /admin/users [get]
func (h *AdminHandler) Users(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	result, err := services.AdminListUsers(h.DB, page, limit)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, result, fiber.StatusOK)
}

// Families handles GET /api/admin/families
// @Summary Paginated family listing with member and kid counts
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 20, max 100)"
// @Success 200 {object} services.AdminFamilyPage
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /admin/families [get]
func (h *AdminHandler) Families(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	result, err := services.AdminListFamilies(h.DB, page, limit)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, result, fiber.StatusOK)
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// UpdateRole handles PUT /api/admin/users/:id/role
// @Summary Change a user's role
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param body body updateRoleRequest true "New role"
// @Success 200 {object} models.User
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /admin/users/{id}/role [put]
func (h *AdminHandler) UpdateRole(c *fiber.Ctx) error {
	var in updateRoleRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}

	user, err := services.UpdateUserRole(h.DB, c.Params("id"), in.Role)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, user, fiber.StatusOK)
}

// DeleteUser handles DELETE /api/admin/users/:id
// @Summary Soft-delete any account
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	userID, role := identity(c)
	if err := services.SoftDeleteUser(h.DB, userID, role, c.Params("id")); err != nil {
		return err
	}
	return utils.MessageResponse(c, "User đã được xóa thành công")
}
