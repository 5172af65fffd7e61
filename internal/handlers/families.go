// families.go
//
// Family photo sharing backend for kids' memories.

package handlers

import (
	"github.com/NgocTV11/kids-memories-backend/internal/services"
	"github.com/NgocTV11/kids-memories-backend/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// FamiliesHandler handles family CRUD and the membership workflow routes
type FamiliesHandler struct {
	DB *gorm.DB
}

// Create handles POST /api/families
// @Summary Create a family
// @Description The creator becomes owner with an active membership in the same transaction
// @Tags Families
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.FamilyInput true "Family fields"
// @Success 201 {object} models.Family
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /families [post]
func (h *FamiliesHandler) Create(c *fiber.Ctx) error {
	var in services.FamilyInput
	if err := parseBody(c, &in); err != nil {
		return err
	}

	userID, _ := identity(c)
	family, err := services.CreateFamily(h.DB, userID, in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, family, fiber.StatusCreated)
}

// List handles GET /api/families
// @Summary List the actor's families
// @Tags Families
// @Produce json
// @Security BearerAuth
// @Success 200 {array} services.FamilySummary
// @Router /families [get]
func (h *FamiliesHandler) List(c *fiber.Ctx) error {
	userID, _ := identity(c)
	families, err := services.ListFamilies(h.DB, userID)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, families, fiber.StatusOK)
}

// Get handles GET /api/families/:id
// @Summary Get one family with its active members
// @Tags Families
// @Produce json
// @Security BearerAuth
// @Param id path string true "Family ID"
// @Success 200 {object} models.Family
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /families/{id} [get]
func (h *FamiliesHandler) Get(c *fiber.Ctx) error {
	userID, _ := identity(c)
	family, err := services.GetFamily(h.DB, userID, c.Params("id"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, family, fiber.StatusOK)
}

// Update handles PUT /api/families/:id
// @Summary Update a family
// @Tags Families
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Family ID"
// @Param body body services.FamilyUpdateInput true "Fields to update"
// @Success 200 {object} models.Family
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /families/{id} [put]
func (h *FamiliesHandler) Update(c *fiber.Ctx) error {
	var in services.FamilyUpdateInput
	if err := parseBody(c, &in); err != nil {
		return err
	}

	userID, _ := identity(c)
	family, err := services.UpdateFamily(h.DB, userID, c.Params("id"), in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, family, fiber.StatusOK)
}

// Delete handles DELETE /api/families/:id
// @Summary Soft-delete a family
// @Tags Families
// @Produce json
// @Security BearerAuth
// @Param id path string true "Family ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /families/{id} [delete]
func (h *FamiliesHandler) Delete(c *fiber.Ctx) error {
	userID, _ := identity(c)
	if err := services.SoftDeleteFamily(h.DB, userID, c.Params("id")); err != nil {
		return err
	}
	return utils.MessageResponse(c, "Đã xóa family thành công")
}

// Invite handles POST /api/families/:id/members
// @Summary Invite a user into the family
// @Tags Families
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Family ID"
// @Param body body services.InviteMemberInput true "User and role"
// @Success 201 {object} models.FamilyMember
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /families/{id}/members [post]
func (h *FamiliesHandler) Invite(c *fiber.Ctx) error {
	var in services.InviteMemberInput
	if err := parseBody(c, &in); err != nil {
		return err
	}

	userID, _ := identity(c)
	member, err := services.InviteMember(h.DB, userID, c.Params("id"), in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, member, fiber.StatusCreated)
}

// Accept handles POST /api/families/:id/accept
// @Summary Accept a pending invitation
// @Tags Families
// @Produce json
// @Security BearerAuth
// @Param id path string true "Family ID"
// @Success 200 {object} models.FamilyMember
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /families/{id}/accept [post]
func (h *FamiliesHandler) Accept(c *fiber.Ctx) error {
	userID, _ := identity(c)
	member, err := services.AcceptInvitation(h.DB, userID, c.Params("id"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, member, fiber.StatusOK)
}

// RemoveMember handles DELETE /api/families/:id/members/:memberId
// @Summary Remove a member
// @Tags Families
// @Produce json
// @Security BearerAuth
// @Param id path string true "Family ID"
// @Param memberId path string true "Member user ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /families/{id}/members/{memberId} [delete]
func (h *FamiliesHandler) RemoveMember(c *fiber.Ctx) error {
	userID, _ := identity(c)
	if err := services.RemoveMember(h.DB, userID, c.Params("id"), c.Params("memberId")); err != nil {
		return err
	}
	return utils.MessageResponse(c, "Đã xóa thành viên khỏi family")
}

// Leave handles POST /api/families/:id/leave
// @Summary Leave a family
// @Tags Families
// @Produce json
// @Security BearerAuth
// @Param id path string true "Family ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /families/{id}/leave [post]
func (h *FamiliesHandler) Leave(c *fiber.Ctx) error {
	userID, _ := identity(c)
	if err := services.LeaveFamily(h.DB, userID, c.Params("id")); err != nil {
		return err
	}
	return utils.MessageResponse(c, "Đã rời family thành công")
}

// Invitations handles GET /api/families/invitations
// @Summary List the actor's pending invitations
// @Tags Families
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.FamilyMember
// @Router /families/invitations [get]
func (h *FamiliesHandler) Invitations(c *fiber.Ctx) error {
	userID, _ := identity(c)
	invitations, err := services.MyInvitations(h.DB, userID)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, invitations, fiber.StatusOK)
}
