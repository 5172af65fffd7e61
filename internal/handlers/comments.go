// comments.go
//
// Family photo sharing backend for kids' memories.

package handlers

import (
	"github.com/NgocTV11/kids-memories-backend/internal/services"
	"github.com/NgocTV11/kids-memories-backend/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CommentsHandler handles the threaded comment routes
type CommentsHandler struct {
	DB *gorm.DB
}

// Create handles POST /api/comments
// @Summary Comment on a photo, optionally as a reply
// @Tags Comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CommentInput true "Comment fields"
// @Success 201 {object} services.CommentNode
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /comments [post]
func (h *CommentsHandler) Create(c *fiber.Ctx) error {
	var in services.CommentInput
	if err := parseBody(c, &in); err != nil {
		return err
	}

	userID, _ := identity(c)
	comment, err := services.CreateComment(h.DB, userID, in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, comment, fiber.StatusCreated)
}

// ByPhoto handles GET /api/comments/photo/:photoId
// @Summary Get the photo's comment tree
// @Tags Comments
// @Produce json
// @Security BearerAuth
// @Param photoId path string true "Photo ID"
// @Success 200 {array} services.CommentNode
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /comments/photo/{photoId} [get]
func (h *CommentsHandler) ByPhoto(c *fiber.Ctx) error {
	userID, _ := identity(c)
	comments, err := services.CommentsByPhoto(h.DB, userID, c.Params("photoId"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, comments, fiber.StatusOK)
}

// Get handles GET /api/comments/:id
// @Summary Get one comment with its replies
// @Tags Comments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Success 200 {object} services.CommentNode
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /comments/{id} [get]
func (h *CommentsHandler) Get(c *fiber.Ctx) error {
	userID, _ := identity(c)
	comment, err := services.GetComment(h.DB, userID, c.Params("id"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, comment, fiber.StatusOK)
}

type updateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// Update handles PUT /api/comments/:id
// @Summary Edit own comment
// @Tags Comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Param body body updateCommentRequest true "New content"
// @Success 200 {object} services.CommentNode
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /comments/{id} [put]
func (h *CommentsHandler) Update(c *fiber.Ctx) error {
	var in updateCommentRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}

	userID, _ := identity(c)
	comment, err := services.UpdateComment(h.DB, userID, c.Params("id"), in.Content)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, comment, fiber.StatusOK)
}

// Delete handles DELETE /api/comments/:id
// @Summary Soft-delete own comment
// @Tags Comments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /comments/{id} [delete]
func (h *CommentsHandler) Delete(c *fiber.Ctx) error {
	userID, _ := identity(c)
	if err := services.SoftDeleteComment(h.DB, userID, c.Params("id")); err != nil {
		return err
	}
	return utils.MessageResponse(c, "Comment deleted successfully")
}
