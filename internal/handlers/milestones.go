// milestones.go
//
// Family photo sharing backend for kids' memories.

package handlers

import (
	"github.com/NgocTV11/kids-memories-backend/internal/services"
	"github.com/NgocTV11/kids-memories-backend/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// MilestonesHandler handles milestone routes, including photo attachment
type MilestonesHandler struct {
	DB *gorm.DB
}

// Create handles POST /api/milestones
// @Summary Record a milestone
// @Tags Milestones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.MilestoneInput true "Milestone fields"
// @Success 201 {object} services.MilestoneDetail
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /milestones [post]
func (h *MilestonesHandler) Create(c *fiber.Ctx) error {
	var in services.MilestoneInput
	if err := parseBody(c, &in); err != nil {
		return err
	}

	userID, role := identity(c)
	milestone, err := services.CreateMilestone(h.DB, userID, role, in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, milestone, fiber.StatusCreated)
}

// List handles GET /api/milestones
// @Summary List visible milestones
// @Tags Milestones
// @Produce json
// @Security BearerAuth
// @Param kid_id query string false "Filter by kid"
// @Success 200 {array} services.MilestoneSummary
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /milestones [get]
func (h *MilestonesHandler) List(c *fiber.Ctx) error {
	userID, role := identity(c)
	milestones, err := services.ListMilestones(h.DB, userID, role, queryPtr(c, "kid_id"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, milestones, fiber.StatusOK)
}

// Get handles GET /api/milestones/:id
// @Summary Get one milestone with its photos
// @Tags Milestones
// @Produce json
// @Security BearerAuth
// @Param id path string true "Milestone ID"
// @Success 200 {object} services.MilestoneDetail
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /milestones/{id} [get]
func (h *MilestonesHandler) Get(c *fiber.Ctx) error {
	userID, role := identity(c)
	milestone, err := services.GetMilestone(h.DB, userID, role, c.Params("id"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, milestone, fiber.StatusOK)
}

// Update handles PUT /api/milestones/:id
// @Summary Update a milestone
// @Tags Milestones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Milestone ID"
// @Param body body services.MilestoneUpdateInput true "Fields to update"
// @Success 200 {object} services.MilestoneDetail
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /milestones/{id} [put]
func (h *MilestonesHandler) Update(c *fiber.Ctx) error {
	var in services.MilestoneUpdateInput
	if err := parseBody(c, &in); err != nil {
		return err
	}

	userID, role := identity(c)
	milestone, err := services.UpdateMilestone(h.DB, userID, role, c.Params("id"), in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, milestone, fiber.StatusOK)
}

// Delete handles DELETE /api/milestones/:id
// @Summary Delete a milestone
// @Tags Milestones
// @Produce json
// @Security BearerAuth
// @Param id path string true "Milestone ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /milestones/{id} [delete]
func (h *MilestonesHandler) Delete(c *fiber.Ctx) error {
	userID, _ := identity(c)
	if err := services.DeleteMilestone(h.DB, userID, c.Params("id")); err != nil {
		return err
	}
	return utils.MessageResponse(c, "Milestone deleted successfully")
}

type milestonePhotosRequest struct {
	PhotoIDs []string `json:"photo_ids" validate:"required,min=1"`
}

// AttachPhotos handles POST /api/milestones/:id/photos
// @Summary Attach photos to a milestone
// @Tags Milestones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Milestone ID"
// @Param body body milestonePhotosRequest true "Photo IDs"
// @Success 200 {object} services.MilestoneDetail
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /milestones/{id}/photos [post]
func (h *MilestonesHandler) AttachPhotos(c *fiber.Ctx) error {
	var in milestonePhotosRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}

	userID, role := identity(c)
	milestone, err := services.AttachPhotos(h.DB, userID, role, c.Params("id"), in.PhotoIDs)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, milestone, fiber.StatusOK)
}

// DetachPhotos handles DELETE /api/milestones/:id/photos
// @Summary Detach photos from a milestone
// @Tags Milestones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Milestone ID"
// @Param body body milestonePhotosRequest true "Photo IDs"
// @Success 200 {object} services.MilestoneDetail
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /milestones/{id}/photos [delete]
func (h *MilestonesHandler) DetachPhotos(c *fiber.Ctx) error {
	var in milestonePhotosRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}

	userID, role := identity(c)
	milestone, err := services.DetachPhotos(h.DB, userID, role, c.Params("id"), in.PhotoIDs)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, milestone, fiber.StatusOK)
}
