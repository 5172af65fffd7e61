// photos.go
//
// Family photo sharing backend for kids' memories.

package handlers

import (
	"strconv"

	"github.com/NgocTV11/kids-memories-backend/internal/services"
	"github.com/NgocTV11/kids-memories-backend/internal/storage"
	"github.com/NgocTV11/kids-memories-backend/internal/types"
	"github.com/NgocTV11/kids-memories-backend/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// PhotosHandler handles upload, listing and the photo-level social routes
type PhotosHandler struct {
	DB    *gorm.DB
	Store storage.Storage
}

// Upload handles POST /api/photos/upload
// @Summary Upload a photo
// @Description Multipart form: file plus album_id, optional caption, date_taken, kids_tagged and tags (JSON-encoded arrays)
// @Tags Photos
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image file"
// @Param album_id formData string true "Target album"
// @Success 201 {object} services.PhotoView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /photos/upload [post]
func (h *PhotosHandler) Upload(c *fiber.Ctx) error {
	data, filename, err := readFormFile(c, "file")
	if err != nil {
		return err
	}

	albumID := c.FormValue("album_id")
	if albumID == "" {
		return types.BadRequest("album_id is required")
	}

	in := services.PhotoUploadInput{
		Caption:    formPtr(c, "caption"),
		DateTaken:  formPtr(c, "date_taken"),
		KidsTagged: formList(c, "kids_tagged"),
		Tags:       formList(c, "tags"),
	}

	userID, role := identity(c)
	photo, err := services.UploadPhoto(c.Context(), h.DB, h.Store, userID, role, albumID, data, filename, in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, photo, fiber.StatusCreated)
}

// List handles GET /api/photos
// @Summary List visible photos
// @Tags Photos
// @Produce json
// @Security BearerAuth
// @Param album_id query string false "Filter by album"
// @Param kid_id query string false "Filter by tagged kid"
// @Param limit query int false "Page size (default 50)"
// @Param offset query int false "Offset"
// @Success 200 {object} services.PhotoList
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /photos [get]
func (h *PhotosHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	userID, role := identity(c)
	result, err := services.ListPhotos(h.DB, userID, role,
		queryPtr(c, "album_id"), queryPtr(c, "kid_id"), limit, offset)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, result, fiber.StatusOK)
}

// Get handles GET /api/photos/:id
// @Summary Get one photo
// @Description Every successful read increments the view counter
// @Tags Photos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Photo ID"
// @Success 200 {object} services.PhotoView
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /photos/{id} [get]
func (h *PhotosHandler) Get(c *fiber.Ctx) error {
	userID, role := identity(c)
	photo, err := services.GetPhoto(h.DB, userID, role, c.Params("id"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, photo, fiber.StatusOK)
}

// Update handles PUT /api/photos/:id
// @Summary Update photo metadata
// @Tags Photos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Photo ID"
// @Param body body services.PhotoUpdateInput true "Fields to update"
// @Success 200 {object} services.PhotoView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /photos/{id} [put]
func (h *PhotosHandler) Update(c *fiber.Ctx) error {
	var in services.PhotoUpdateInput
	if err := parseBody(c, &in); err != nil {
		return err
	}

	userID, _ := identity(c)
	photo, err := services.UpdatePhoto(h.DB, userID, c.Params("id"), in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, photo, fiber.StatusOK)
}

// Delete handles DELETE /api/photos/:id
// @Summary Soft-delete a photo
// @Tags Photos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Photo ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /photos/{id} [delete]
func (h *PhotosHandler) Delete(c *fiber.Ctx) error {
	userID, _ := identity(c)
	if err := services.SoftDeletePhoto(h.DB, userID, c.Params("id")); err != nil {
		return err
	}
	return utils.MessageResponse(c, "Photo deleted successfully")
}

type tagKidsRequest struct {
	KidsTagged []string `json:"kids_tagged" validate:"required"`
}

// TagKids handles POST /api/photos/:id/tag-kids
// @Summary Replace the photo's tagged kid set
// @Tags Photos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Photo ID"
// @Param body body tagKidsRequest true "Kid IDs"
// @Success 200 {object} services.PhotoView
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /photos/{id}/tag-kids [post]
func (h *PhotosHandler) TagKids(c *fiber.Ctx) error {
	var in tagKidsRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}

	userID, _ := identity(c)
	photo, err := services.TagKids(h.DB, userID, c.Params("id"), in.KidsTagged)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, photo, fiber.StatusOK)
}

// Like handles POST /api/photos/:id/like
// @Summary Like a photo
// @Tags Photos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Photo ID"
// @Success 200 {object} services.LikeResult
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /photos/{id}/like [post]
func (h *PhotosHandler) Like(c *fiber.Ctx) error {
	userID, _ := identity(c)
	result, err := services.LikePhoto(h.DB, userID, c.Params("id"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, result, fiber.StatusOK)
}

// Unlike handles DELETE /api/photos/:id/like
// @Summary Remove a like
// @Tags Photos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Photo ID"
// @Success 200 {object} services.LikeResult
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /photos/{id}/like [delete]
func (h *PhotosHandler) Unlike(c *fiber.Ctx) error {
	userID, _ := identity(c)
	result, err := services.UnlikePhoto(h.DB, userID, c.Params("id"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, result, fiber.StatusOK)
}

// CheckLike handles GET /api/photos/:id/like/check
// @Summary Check whether the actor liked a photo
// @Tags Photos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Photo ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /photos/{id}/like/check [get]
func (h *PhotosHandler) CheckLike(c *fiber.Ctx) error {
	userID, _ := identity(c)
	liked, err := services.IsLiked(h.DB, userID, c.Params("id"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.Map{"isLiked": liked}, fiber.StatusOK)
}

// Comments handles GET /api/photos/:id/comments
// @Summary List the photo's comments, newest first
// @Tags Photos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Photo ID"
// @Success 200 {array} models.Comment
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /photos/{id}/comments [get]
func (h *PhotosHandler) Comments(c *fiber.Ctx) error {
	comments, err := services.GetPhotoComments(h.DB, c.Params("id"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, comments, fiber.StatusOK)
}

type addCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// AddComment handles POST /api/photos/:id/comments
// @Summary Comment on a photo
// @Tags Photos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Photo ID"
// @Param body body addCommentRequest true "Comment content"
// @Success 201 {object} models.Comment
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /photos/{id}/comments [post]
func (h *PhotosHandler) AddComment(c *fiber.Ctx) error {
	var in addCommentRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}

	userID, _ := identity(c)
	comment, err := services.AddPhotoComment(h.DB, userID, c.Params("id"), in.Content)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, comment, fiber.StatusCreated)
}

// TrackView handles POST /api/photos/:id/views
// @Summary Track a photo view
// @Tags Photos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Photo ID"
// @Success 200 {object} services.ViewResult
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /photos/{id}/views [post]
func (h *PhotosHandler) TrackView(c *fiber.Ctx) error {
	result, err := services.TrackView(h.DB, c.Params("id"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, result, fiber.StatusOK)
}
