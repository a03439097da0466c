package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Timesheet-api/internal/application/dto"
	"github.com/jhoicas/Timesheet-api/internal/domain"
)

type errorMapping struct {
	target error
	status int
	code   string
}

// Orden: el primer match gana.
var errorTable = []errorMapping{
	{domain.ErrMixedCurrency, fiber.StatusBadRequest, "MIXED_CURRENCY"},
	{domain.ErrNoEligibleEntries, fiber.StatusBadRequest, "NO_ELIGIBLE_ENTRIES"},
	{domain.ErrImmutableInvoice, fiber.StatusBadRequest, "IMMUTABLE_INVOICE"},
	{domain.ErrInvalidState, fiber.StatusBadRequest, "INVALID_STATE"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrUserNotFound, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
}

// respondError traduce un error de dominio a status + código estable.
// Los errores no mapeados se registran y responden 500 sin exponer el detalle.
func respondError(c *fiber.Ctx, err error) error {
	for _, m := range errorTable {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Str("owner_id", GetOwnerID(c)).
		Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
