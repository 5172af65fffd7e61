// albums.go
//
// Family photo sharing backend for kids' memories.

package handlers

import (
	"github.com/NgocTV11/kids-memories-backend/internal/config"
	"github.com/NgocTV11/kids-memories-backend/internal/services"
	"github.com/NgocTV11/kids-memories-backend/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AlbumsHandler handles album CRUD and the public sharing routes
type AlbumsHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// Create handles POST /api/albums
// @Summary Create an album
// @Tags Albums
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.AlbumInput true "Album fields"
// @Success 201 {object} models.Album
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /albums [post]
func (h *AlbumsHandler) Create(c *fiber.Ctx) error {
	var in services.AlbumInput
	if err := parseBody(c, &in); err != nil {
		return err
	}

	userID, role := identity(c)
	album, err := services.CreateAlbum(h.DB, userID, role, in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, album, fiber.StatusCreated)
}

// List handles GET /api/albums
// @Summary List visible albums
// @Tags Albums
// @Produce json
// @Security BearerAuth
// @Param kid_id query string false "Filter by kid"
// @Success 200 {array} services.AlbumSummary
// @Router /albums [get]
func (h *AlbumsHandler) List(c *fiber.Ctx) error {
	userID, role := identity(c)
	albums, err := services.ListAlbums(h.DB, userID, role, queryPtr(c, "kid_id"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, albums, fiber.StatusOK)
}

// Get handles GET /api/albums/:id
// @Summary Get one album
// @Tags Albums
// @Produce json
// @Security BearerAuth
// @Param id path string true "Album ID"
// @Success 200 {object} services.AlbumSummary
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /albums/{id} [get]
func (h *AlbumsHandler) Get(c *fiber.Ctx) error {
	userID, role := identity(c)
	album, err := services.GetAlbum(h.DB, userID, role, c.Params("id"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, album, fiber.StatusOK)
}

// Update handles PUT /api/albums/:id
// @Summary Update an album
// @Tags Albums
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Album ID"
// @Param body body services.AlbumUpdateInput true "Fields to update"
// @Success 200 {object} models.Album
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /albums/{id} [put]
func (h *AlbumsHandler) Update(c *fiber.Ctx) error {
	var in services.AlbumUpdateInput
	if err := parseBody(c, &in); err != nil {
		return err
	}

	userID, role := identity(c)
	album, err := services.UpdateAlbum(h.DB, userID, role, c.Params("id"), in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, album, fiber.StatusOK)
}

// Delete handles DELETE /api/albums/:id
// @Summary Delete an album and its photos
// @Tags Albums
// @Produce json
// @Security BearerAuth
// @Param id path string true "Album ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /albums/{id} [delete]
func (h *AlbumsHandler) Delete(c *fiber.Ctx) error {
	userID, role := identity(c)
	if err := services.DeleteAlbum(h.DB, userID, role, c.Params("id")); err != nil {
		return err
	}
	return utils.MessageResponse(c, "Xóa album thành công")
}

// Share handles POST /api/albums/:id/share
// @Summary Create or replace the album share link
// @Description Mints a fresh token every call; the previous link stops working immediately
// @Tags Albums
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Album ID"
// @Param body body services.ShareInput true "Optional password and expiry"
// @Success 200 {object} services.ShareResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /albums/{id}/share [post]
func (h *AlbumsHandler) Share(c *fiber.Ctx) error {
	var in services.ShareInput
	if err := parseBody(c, &in); err != nil {
		return err
	}

	userID, _ := identity(c)
	result, err := services.ShareAlbum(h.DB, userID, c.Params("id"), h.Cfg.FrontendURL, in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, result, fiber.StatusOK)
}

// Unshare handles DELETE /api/albums/:id/share
// @Summary Stop sharing an album
// @Tags Albums
// @Produce json
// @Security BearerAuth
// @Param id path string true "Album ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /albums/{id}/share [delete]
func (h *AlbumsHandler) Unshare(c *fiber.Ctx) error {
	userID, _ := identity(c)
	if err := services.RemoveShare(h.DB, userID, c.Params("id")); err != nil {
		return err
	}
	return utils.MessageResponse(c, "Đã ngừng chia sẻ album")
}

// GetShared handles GET /api/albums/shared/:token
// @Summary View a shared album
// @Description Public route; the token is the capability. Password-protected shares read the password from the query string
// @Tags Albums
// @Produce json
// @Param token path string true "Share token"
// @Param password query string false "Share password"
// @Success 200 {object} services.SharedAlbum
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /albums/shared/{token} [get]
func (h *AlbumsHandler) GetShared(c *fiber.Ctx) error {
	album, err := services.GetSharedAlbum(h.DB, c.Params("token"), queryPtr(c, "password"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, album, fiber.StatusOK)
}
