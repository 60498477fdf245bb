package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/estoque-cliente/internal/application/dto"
	"github.com/jhoicas/estoque-cliente/pkg/jwt"
)

// Locals keys para UserID y Username en Fiber.
const (
	LocalUserID   = "user_id"
	LocalUsername = "username"
)

const (
	msgMissingCredentials = "As credenciais de autenticação não foram fornecidas."
	msgTokenNotValid      = "O token informado não é válido para qualquer tipo de token"
)

// AuthMiddleware valida el Bearer Token JWT de tipo access y carga UserID y Username en
// c.Locals. Un refresh token no sirve como credencial.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return unauthorized(c, dto.DetailResponse{Detail: msgMissingCredentials})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return unauthorized(c, dto.DetailResponse{Detail: msgMissingCredentials})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return unauthorized(c, dto.DetailResponse{Detail: msgMissingCredentials})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString, jwt.TypeAccess)
		if err != nil {
			return unauthorized(c, dto.DetailResponse{Detail: msgTokenNotValid, Code: "token_not_valid"})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalUsername, claims.Username)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, body dto.DetailResponse) error {
	c.Set(fiber.HeaderWWWAuthenticate, `Bearer realm="api"`)
	return c.Status(fiber.StatusUnauthorized).JSON(body)
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth), 0 si no hay.
func GetUserID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(LocalUserID).(int64)
	return id
}

// GetUsername devuelve el username del token.
func GetUsername(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUsername).(string)
	return s
}
