package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/estoque-cliente/internal/application/dto"
	"github.com/jhoicas/estoque-cliente/internal/application/usecase"
)

// AuthHandler maneja login, refresh y logout.
type AuthHandler struct {
	uc *usecase.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login POST /api/auth/login/ → 200 {"access", "refresh"}; 401 credenciales inválidas.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Refresh POST /api/auth/refresh/ → 200 {"access"}.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var in dto.RefreshRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Refresh(c.UserContext(), in)
	if err != nil {
		var detailErr *usecase.DetailError
		if errors.As(err, &detailErr) {
			c.Set(fiber.HeaderWWWAuthenticate, `Bearer realm="api"`)
			return c.Status(statusFor(detailErr.Err)).JSON(dto.DetailResponse{Detail: detailErr.Detail, Code: "token_not_valid"})
		}
		return err
	}
	return c.JSON(out)
}

// Logout POST /api/auth/logout/ (protegido) revoca el refresh token → 205.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var in dto.RefreshRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	if err := h.uc.Logout(c.UserContext(), in); err != nil {
		return err
	}
	return c.Status(fiber.StatusResetContent).JSON(dto.DetailResponse{Detail: "Logout realizado com sucesso."})
}
