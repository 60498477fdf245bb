package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-cliente/internal/application/dto"
	"github.com/jhoicas/estoque-cliente/internal/application/usecase"
	"github.com/jhoicas/estoque-cliente/internal/domain"
	"github.com/jhoicas/estoque-cliente/pkg/logger"
)

const msgInternal = "Erro interno do servidor."

// ErrorHandler traduce los errores devueltos por los handlers al formato del backend:
// errores de campo como mapa {"campo": ["mensagem"]} y el resto como {"detail": "..."}.
// Los 5xx se registran; el cliente solo recibe el mensaje genérico.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fieldErrs usecase.FieldErrors
		if errors.As(err, &fieldErrs) {
			return c.Status(fiber.StatusBadRequest).JSON(fieldErrs)
		}
		var detailErr *usecase.DetailError
		if errors.As(err, &detailErr) {
			return c.Status(statusFor(detailErr.Err)).JSON(dto.DetailResponse{Detail: detailErr.Detail})
		}
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(dto.DetailResponse{Detail: fiberErr.Message})
		}
		status := statusFor(err)
		if status >= fiber.StatusInternalServerError {
			log.Error().Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("error no controlado")
			return c.Status(status).JSON(dto.DetailResponse{Detail: msgInternal})
		}
		return c.Status(status).JSON(dto.DetailResponse{Detail: err.Error()})
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrDuplicate),
		errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// parseBody decodifica el cuerpo JSON. Un cuerpo vacío equivale a {}.
func parseBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return &usecase.DetailError{Err: domain.ErrInvalidInput, Detail: "JSON parse error - " + err.Error()}
	}
	return nil
}

// paramID lee el :id de la ruta. Un id no numérico es un 404 como cualquier objeto inexistente.
func paramID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, &usecase.DetailError{Err: domain.ErrNotFound, Detail: "Não encontrado."}
	}
	return int64(id), nil
}
