// kids.go
//
// Family photo sharing backend for kids' memories.

package handlers

import (
	"path"
	"strings"

	"github.com/NgocTV11/kids-memories-backend/internal/services"
	"github.com/NgocTV11/kids-memories-backend/internal/storage"
	"github.com/NgocTV11/kids-memories-backend/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// KidsHandler handles kid profile and growth tracking routes
type KidsHandler struct {
	DB    *gorm.DB
	Store storage.Storage
}

// Create handles POST /api/kids
// @Summary Create a kid profile
// @Tags Kids
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.KidInput true "Kid fields"
// @Success 201 {object} services.KidWithAge
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /kids [post]
func (h *KidsHandler) Create(c *fiber.Ctx) error {
	var in services.KidInput
	if err := parseBody(c, &in); err != nil {
		return err
	}

	userID, _ := identity(c)
	kid, err := services.CreateKid(h.DB, userID, in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, kid, fiber.StatusCreated)
}

// List handles GET /api/kids
// @Summary List visible kids
// @Tags Kids
// @Produce json
// @Security BearerAuth
// @Success 200 {array} services.KidWithAge
// @Router /kids [get]
func (h *KidsHandler) List(c *fiber.Ctx) error {
	userID, role := identity(c)
	kids, err := services.ListKids(h.DB, userID, role)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, kids, fiber.StatusOK)
}

// Get handles GET /api/kids/:id
// @Summary Get one kid
// @Tags Kids
// @Produce json
// @Security BearerAuth
// @Param id path string true "Kid ID"
// @Success 200 {object} services.KidWithAge
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /kids/{id} [get]
func (h *KidsHandler) Get(c *fiber.Ctx) error {
	userID, role := identity(c)
	kid, err := services.GetKid(h.DB, userID, role, c.Params("id"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, kid, fiber.StatusOK)
}

// Update handles PUT /api/kids/:id
// @Summary Update a kid
// @Tags Kids
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Kid ID"
// @Param body body services.KidUpdateInput true "Fields to update"
// @Success 200 {object} services.KidWithAge
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /kids/{id} [put]
func (h *KidsHandler) Update(c *fiber.Ctx) error {
	var in services.KidUpdateInput
	if err := parseBody(c, &in); err != nil {
		return err
	}

	userID, role := identity(c)
	kid, err := services.UpdateKid(h.DB, userID, role, c.Params("id"), in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, kid, fiber.StatusOK)
}

// Delete handles DELETE /api/kids/:id
// @Summary Delete a kid and everything hanging off it
// @Description Creator or admin only; cascades albums, photos, milestones and growth entries
// @Tags Kids
// @Produce json
// @Security BearerAuth
// @Param id path string true "Kid ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /kids/{id} [delete]
func (h *KidsHandler) Delete(c *fiber.Ctx) error {
	userID, role := identity(c)
	if err := services.DeleteKid(h.DB, userID, role, c.Params("id")); err != nil {
		return err
	}
	return utils.MessageResponse(c, "Đã xóa hồ sơ trẻ thành công")
}

// AddGrowth handles POST /api/kids/:id/growth
// @Summary Append a growth entry
// @Tags Kids
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Kid ID"
// @Param body body services.GrowthInput true "Growth entry"
// @Success 201 {object} services.GrowthHistoryResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /kids/{id}/growth [post]
func (h *KidsHandler) AddGrowth(c *fiber.Ctx) error {
	var in services.GrowthInput
	if err := parseBody(c, &in); err != nil {
		return err
	}

	userID, role := identity(c)
	result, err := services.AddGrowthEntry(h.DB, userID, role, c.Params("id"), in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, result, fiber.StatusCreated)
}

// GrowthHistory handles GET /api/kids/:id/growth
// @Summary Get the growth log, newest first
// @Tags Kids
// @Produce json
// @Security BearerAuth
// @Param id path string true "Kid ID"
// @Success 200 {object} services.GrowthHistoryResult
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /kids/{id}/growth [get]
func (h *KidsHandler) GrowthHistory(c *fiber.Ctx) error {
	userID, role := identity(c)
	result, err := services.GrowthHistory(h.DB, userID, role, c.Params("id"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, result, fiber.StatusOK)
}

// UploadAvatar handles POST /api/kids/:id/avatar
// @Summary Upload a kid profile picture
// @Tags Kids
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Kid ID"
// @Param file formData file true "Profile picture"
// @Success 200 {object} services.KidWithAge
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /kids/{id}/avatar [post]
func (h *KidsHandler) UploadAvatar(c *fiber.Ctx) error {
	data, filename, err := readFormFile(c, "file")
	if err != nil {
		return err
	}

	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	url, err := h.Store.Upload(c.Context(), data, storage.FolderAvatars, uuid.NewString()+ext)
	if err != nil {
		return err
	}

	userID, role := identity(c)
	kid, err := services.SetKidAvatar(h.DB, userID, role, c.Params("id"), url)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, kid, fiber.StatusOK)
}
