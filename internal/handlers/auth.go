// auth.go
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

// AuthHandler handles registration, login and token lifecycle routes
type AuthHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// Register handles POST /api/auth/register
// @Summary Register a new account
// @Description Create an account with email and password, returning the user and a token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.RegisterInput true "Registration fields"
// @Success 201 {object} services.AuthResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in services.RegisterInput
	if err := parseBody(c, &in); err != nil {
		return err
	}

	lang, _ := c.Locals("lang").(string)
	result, err := services.Register(h.DB, h.Cfg, in, lang)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, result, fiber.StatusCreated)
}

// Login handles POST /api/auth/login
// @Summary Log in
// @Description Verify credentials and return the user and a token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Credentials"
// @Success 200 {object} services.AuthResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in services.LoginInput
	if err := parseBody(c, &in); err != nil {
		return err
	}

	result, err := services.Login(h.DB, h.Cfg, in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, result, fiber.StatusOK)
}

// Profile handles GET /api/auth/profile
// @Summary Get the authenticated profile
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/profile [get]
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	userID, _ := identity(c)
	user, err := services.AuthProfile(h.DB, userID)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, user, fiber.StatusOK)
}

// Refresh handles POST /api/auth/refresh
// @Summary Refresh the token pair
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.TokenPair
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	userID, _ := identity(c)
	tokens, err := services.RefreshTokens(h.DB, h.Cfg, userID)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, tokens, fiber.StatusOK)
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// ForgotPassword handles POST /api/auth/forgot-password
// @Summary Request a password reset
// @Description Always answers with the same message; never reveals whether the email exists
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body forgotPasswordRequest true "Account email"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var in forgotPasswordRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}

	if _, err := services.ForgotPassword(h.DB, h.Cfg, in.Email); err != nil {
		return err
	}
	return utils.MessageResponse(c,
		"Nếu email tồn tại, bạn sẽ nhận được link đặt lại mật khẩu trong vài phút")
}

// ResetPassword handles POST /api/auth/reset-password
// @Summary Reset the password with a reset token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body resetPasswordRequest true "Reset token and new password"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var in resetPasswordRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}

	if err := services.ResetPassword(h.DB, in.Token, in.Password); err != nil {
		return err
	}
	return utils.MessageResponse(c,
		"Mật khẩu đã được đặt lại thành công. Bạn có thể đăng nhập ngay.")
}
