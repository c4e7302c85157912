package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/leads-api/internal/application/auth"
	"github.com/jhoicas/leads-api/internal/application/dto"
	"github.com/jhoicas/leads-api/pkg/logger"
)

// AuthHandler handles registration, login, logout and the current-user lookup.
type AuthHandler struct {
	uc     *auth.UseCase
	log    *logger.Logger
	cookie CookieConfig
}

// NewAuthHandler builds the auth handler.
func NewAuthHandler(uc *auth.UseCase, log *logger.Logger, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{uc: uc, log: log, cookie: cookie}
}

// Register godoc
// @Summary      Register a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, name"
// @Success      201   {object}  dto.UserEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	out, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return writeDomainError(c, h.log, err)
	}
	setAuthCookie(c, h.cookie, out.Token)
	return c.Status(fiber.StatusCreated).JSON(dto.UserEnvelope{
		Message: "User created successfully",
		User:    out.User,
	})
}

// Login godoc
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.UserEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return writeDomainError(c, h.log, err)
	}
	setAuthCookie(c, h.cookie, out.Token)
	return c.JSON(dto.UserEnvelope{
		Message: "Login successful",
		User:    out.User,
	})
}

// Logout godoc
// @Summary      Log out (clears the cookie; issued tokens stay valid until expiry)
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	clearAuthCookie(c, h.cookie)
	return c.JSON(dto.MessageResponse{Message: "Logged out successfully"})
}

// Me godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.UserEnvelope
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.uc.Me(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeDomainError(c, h.log, err)
	}
	return c.JSON(dto.UserEnvelope{User: *user})
}
