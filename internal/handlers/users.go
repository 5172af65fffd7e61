// users.go
//
// Family photo sharing backend for kids' memories.

package handlers

import (
	"github.com/NgocTV11/kids-memories-backend/internal/services"
	"github.com/NgocTV11/kids-memories-backend/internal/storage"
	"github.com/NgocTV11/kids-memories-backend/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UsersHandler handles profile and account routes
type UsersHandler struct {
	DB    *gorm.DB
	Store storage.Storage
}

// Me handles GET /api/users/me
// @Summary Get own profile
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/me [get]
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	userID, _ := identity(c)
	user, err := services.GetUserProfile(h.DB, userID)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, user, fiber.StatusOK)
}

// UpdateMe handles PUT /api/users/me
// @Summary Update own profile
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ProfileUpdateInput true "Profile fields"
// @Success 200 {object} models.User
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /users/me [put]
func (h *UsersHandler) UpdateMe(c *fiber.Ctx) error {
	var in services.ProfileUpdateInput
	if err := parseBody(c, &in); err != nil {
		return err
	}

	userID, _ := identity(c)
	user, err := services.UpdateUserProfile(h.DB, userID, in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, user, fiber.StatusOK)
}

// ChangePassword handles PUT /api/users/me/password
// @Summary Change own password
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ChangePasswordInput true "Current and new password"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /users/me/password [put]
func (h *UsersHandler) ChangePassword(c *fiber.Ctx) error {
	var in services.ChangePasswordInput
	if err := parseBody(c, &in); err != nil {
		return err
	}

	userID, _ := identity(c)
	if err := services.ChangePassword(h.DB, userID, in); err != nil {
		return err
	}
	return utils.MessageResponse(c, "Đổi mật khẩu thành công")
}

// UploadAvatar handles POST /api/users/me/avatar
// @Summary Upload own avatar
// @Tags Users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Avatar image"
// @Success 200 {object} services.AvatarResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /users/me/avatar [post]
func (h *UsersHandler) UploadAvatar(c *fiber.Ctx) error {
	data, filename, err := readFormFile(c, "file")
	if err != nil {
		return err
	}

	userID, _ := identity(c)
	result, err := services.UploadAvatar(c.Context(), h.DB, h.Store, userID, data, filename)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, result, fiber.StatusOK)
}

// List handles GET /api/users
// @Summary List accounts
// @Description Admin only; used by invite pickers
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.User
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /users [get]
func (h *UsersHandler) List(c *fiber.Ctx) error {
	_, role := identity(c)
	users, err := services.ListUsers(h.DB, role)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, users, fiber.StatusOK)
}

// Get handles GET /api/users/:id
// @Summary Get one account
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{id} [get]
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	_, role := identity(c)
	user, err := services.GetUserByID(h.DB, role, c.Params("id"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, user, fiber.StatusOK)
}

// Delete handles DELETE /api/users/:id
// @Summary Soft-delete an account
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /users/{id} [delete]
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	userID, role := identity(c)
	if err := services.SoftDeleteUser(h.DB, userID, role, c.Params("id")); err != nil {
		return err
	}
	return utils.MessageResponse(c, "Xóa người dùng thành công")
}
